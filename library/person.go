package library

// Person is a registered library user. The borrowed slice holds ISBNs in
// borrow order without duplicates and is mutated only through the
// catalog's borrow/return operations.
//
// A person may optionally carry a staff profile (librarian) and a bcrypt
// password hash. Neither changes how catalog operations treat the person.
type Person struct {
	id           string
	name         string
	borrowed     []string
	passwordHash string
	staff        *StaffProfile
}

func NewPerson(id, name string) (*Person, error) {
	p := &Person{}
	if err := p.SetID(id); err != nil {
		return nil, err
	}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Person) ID() string   { return p.id }
func (p *Person) Name() string { return p.name }

// Borrowed returns a copy of the borrowed ISBNs in borrow order.
func (p *Person) Borrowed() []string {
	isbns := make([]string, len(p.borrowed))
	copy(isbns, p.borrowed)
	return isbns
}

// HasBorrowed reports whether the person currently holds the given ISBN.
func (p *Person) HasBorrowed(isbn string) bool {
	for _, b := range p.borrowed {
		if b == isbn {
			return true
		}
	}
	return false
}

func (p *Person) SetID(id string) error {
	trimmed, err := requireText("person id", id)
	if err != nil {
		return err
	}
	p.id = trimmed
	return nil
}

func (p *Person) SetName(name string) error {
	trimmed, err := requireText("person name", name)
	if err != nil {
		return err
	}
	p.name = trimmed
	return nil
}

// addBorrowed appends the ISBN unless already present.
func (p *Person) addBorrowed(isbn string) {
	if !p.HasBorrowed(isbn) {
		p.borrowed = append(p.borrowed, isbn)
	}
}

// removeBorrowed drops the ISBN, preserving the order of the rest.
func (p *Person) removeBorrowed(isbn string) {
	for i, b := range p.borrowed {
		if b == isbn {
			p.borrowed = append(p.borrowed[:i], p.borrowed[i+1:]...)
			return
		}
	}
}

// Staff returns the attached staff profile, if any.
func (p *Person) Staff() (*StaffProfile, bool) {
	if p.staff == nil {
		return nil, false
	}
	return p.staff, true
}

// AttachStaff marks the person as library staff. Passing nil detaches.
func (p *Person) AttachStaff(profile *StaffProfile) {
	p.staff = profile
}

// StaffProfile holds the extra fields a librarian carries on top of a
// regular person. It attaches by composition, not inheritance.
type StaffProfile struct {
	employeeID string
	position   string
}

func NewStaffProfile(employeeID, position string) (*StaffProfile, error) {
	s := &StaffProfile{}
	if err := s.SetEmployeeID(employeeID); err != nil {
		return nil, err
	}
	if err := s.SetPosition(position); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StaffProfile) EmployeeID() string { return s.employeeID }
func (s *StaffProfile) Position() string   { return s.position }

func (s *StaffProfile) SetEmployeeID(employeeID string) error {
	trimmed, err := requireText("employee id", employeeID)
	if err != nil {
		return err
	}
	s.employeeID = trimmed
	return nil
}

func (s *StaffProfile) SetPosition(position string) error {
	trimmed, err := requireText("position", position)
	if err != nil {
		return err
	}
	s.position = trimmed
	return nil
}
