package library

import (
	"fmt"
	"time"
)

// Record types are the flat persistence shape of each entity: primitive
// fields only, with cross-entity references reduced to their natural
// keys. Stores serialize these; the Import* functions rebuild validated
// entities from them, resolving keys against caller-supplied lookup
// tables.

type AuthorRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BirthYear *int   `json:"birth_year,omitempty"`
	Country   string `json:"country,omitempty"`
}

type GenreRecord struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type PublisherRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

type BookRecord struct {
	ISBN        string   `json:"isbn"`
	Title       string   `json:"title"`
	AuthorIDs   []string `json:"author_ids"`
	Genre       string   `json:"genre"`
	PublisherID string   `json:"publisher_id"`
	Year        int      `json:"year"`
	Pages       *int     `json:"pages,omitempty"`
}

type StaffRecord struct {
	EmployeeID string `json:"employee_id"`
	Position   string `json:"position"`
}

type PersonRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Borrowed     []string     `json:"borrowed,omitempty"`
	Staff        *StaffRecord `json:"staff,omitempty"`
	PasswordHash string       `json:"-"` // Don't serialize password hash
}

type LoanRecord struct {
	ID         string     `json:"id"`
	BookISBN   string     `json:"book_isbn"`
	PersonID   string     `json:"person_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

type FineRecord struct {
	ID       string  `json:"id"`
	PersonID string  `json:"person_id"`
	LoanID   string  `json:"loan_id"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`
	Paid     bool    `json:"paid"`
}

type ReservationRecord struct {
	ID              string    `json:"id"`
	PersonID        string    `json:"person_id"`
	BookISBN        string    `json:"book_isbn"`
	ReservationDate time.Time `json:"reservation_date"`
	ExpiryDate      time.Time `json:"expiry_date"`
	Active          bool      `json:"active"`
}

type ReviewRecord struct {
	ID         string    `json:"id"`
	PersonID   string    `json:"person_id"`
	BookISBN   string    `json:"book_isbn"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	ReviewDate time.Time `json:"review_date"`
}

// Snapshot is the catalog's bulk export: one ordered slice per entity
// kind, each slice in the source collection's insertion order.
type Snapshot struct {
	Name         string              `json:"name"`
	Authors      []AuthorRecord      `json:"authors"`
	Genres       []GenreRecord       `json:"genres"`
	Publishers   []PublisherRecord   `json:"publishers"`
	Books        []BookRecord        `json:"books"`
	Persons      []PersonRecord      `json:"persons"`
	Loans        []LoanRecord        `json:"loans"`
	Fines        []FineRecord        `json:"fines"`
	Reservations []ReservationRecord `json:"reservations"`
	Reviews      []ReviewRecord      `json:"reviews"`
}

// ---------------------------------------------------------------------------
// Per-entity export
// ---------------------------------------------------------------------------

func (a *Author) Export() AuthorRecord {
	rec := AuthorRecord{ID: a.id, Name: a.name, Country: a.country}
	if a.birthYear != nil {
		y := *a.birthYear
		rec.BirthYear = &y
	}
	return rec
}

func (g *Genre) Export() GenreRecord {
	return GenreRecord{Name: g.name, Description: g.description}
}

func (p *Publisher) Export() PublisherRecord {
	return PublisherRecord{ID: p.id, Name: p.name, Location: p.location}
}

func (b *Book) Export() BookRecord {
	rec := BookRecord{
		ISBN:        b.isbn,
		Title:       b.title,
		AuthorIDs:   b.AuthorIDs(),
		Genre:       b.genre,
		PublisherID: b.publisherID,
		Year:        b.year,
	}
	if b.pages != nil {
		pg := *b.pages
		rec.Pages = &pg
	}
	return rec
}

func (p *Person) Export() PersonRecord {
	rec := PersonRecord{
		ID:           p.id,
		Name:         p.name,
		Borrowed:     p.Borrowed(),
		PasswordHash: p.passwordHash,
	}
	if p.staff != nil {
		rec.Staff = &StaffRecord{EmployeeID: p.staff.employeeID, Position: p.staff.position}
	}
	return rec
}

func (l *Loan) Export() LoanRecord {
	rec := LoanRecord{
		ID:         l.id,
		BookISBN:   l.bookISBN,
		PersonID:   l.personID,
		BorrowDate: l.borrowDate,
		DueDate:    l.dueDate,
	}
	if l.returnDate != nil {
		t := *l.returnDate
		rec.ReturnDate = &t
	}
	return rec
}

func (f *Fine) Export() FineRecord {
	return FineRecord{
		ID:       f.id,
		PersonID: f.personID,
		LoanID:   f.loanID,
		Amount:   f.amount,
		Reason:   f.reason,
		Paid:     f.paid,
	}
}

func (r *Reservation) Export() ReservationRecord {
	return ReservationRecord{
		ID:              r.id,
		PersonID:        r.personID,
		BookISBN:        r.bookISBN,
		ReservationDate: r.reservationDate,
		ExpiryDate:      r.expiryDate,
		Active:          r.active,
	}
}

func (r *Review) Export() ReviewRecord {
	return ReviewRecord{
		ID:         r.id,
		PersonID:   r.personID,
		BookISBN:   r.bookISBN,
		Rating:     r.rating,
		Comment:    r.comment,
		ReviewDate: r.reviewDate,
	}
}

// ---------------------------------------------------------------------------
// Per-entity import with reference resolution
// ---------------------------------------------------------------------------

func ImportAuthor(rec AuthorRecord) (*Author, error) {
	return NewAuthor(rec.ID, rec.Name, rec.BirthYear, rec.Country)
}

func ImportGenre(rec GenreRecord) (*Genre, error) {
	return NewGenre(rec.Name, rec.Description)
}

func ImportPublisher(rec PublisherRecord) (*Publisher, error) {
	return NewPublisher(rec.ID, rec.Name, rec.Location)
}

// ImportBook resolves the record's author, genre and publisher keys
// against the given lookup tables before constructing the book.
func ImportBook(rec BookRecord, authors map[string]*Author, genres map[string]*Genre, publishers map[string]*Publisher) (*Book, error) {
	for _, aid := range rec.AuthorIDs {
		if _, ok := authors[aid]; !ok {
			return nil, unresolvedf("author", aid)
		}
	}
	if _, ok := genres[rec.Genre]; !ok {
		return nil, unresolvedf("genre", rec.Genre)
	}
	if _, ok := publishers[rec.PublisherID]; !ok {
		return nil, unresolvedf("publisher", rec.PublisherID)
	}
	return NewBook(rec.ISBN, rec.Title, rec.AuthorIDs, rec.Genre, rec.PublisherID, rec.Year, rec.Pages)
}

// ImportPerson resolves each borrowed ISBN against books. Borrow order
// is preserved; duplicates collapse.
func ImportPerson(rec PersonRecord, books map[string]*Book) (*Person, error) {
	person, err := NewPerson(rec.ID, rec.Name)
	if err != nil {
		return nil, err
	}
	for _, isbn := range rec.Borrowed {
		if _, ok := books[isbn]; !ok {
			return nil, unresolvedf("book", isbn)
		}
		person.addBorrowed(isbn)
	}
	if rec.Staff != nil {
		staff, err := NewStaffProfile(rec.Staff.EmployeeID, rec.Staff.Position)
		if err != nil {
			return nil, err
		}
		person.AttachStaff(staff)
	}
	person.passwordHash = rec.PasswordHash
	return person, nil
}

func ImportLoan(rec LoanRecord, books map[string]*Book, persons map[string]*Person) (*Loan, error) {
	if _, ok := books[rec.BookISBN]; !ok {
		return nil, unresolvedf("book", rec.BookISBN)
	}
	if _, ok := persons[rec.PersonID]; !ok {
		return nil, unresolvedf("person", rec.PersonID)
	}
	loan, err := NewLoan(rec.ID, rec.BookISBN, rec.PersonID, rec.BorrowDate, rec.DueDate)
	if err != nil {
		return nil, err
	}
	if rec.ReturnDate != nil {
		if err := loan.MarkReturned(*rec.ReturnDate); err != nil {
			return nil, err
		}
	}
	return loan, nil
}

func ImportFine(rec FineRecord, persons map[string]*Person, loans map[string]*Loan) (*Fine, error) {
	if _, ok := persons[rec.PersonID]; !ok {
		return nil, unresolvedf("person", rec.PersonID)
	}
	if _, ok := loans[rec.LoanID]; !ok {
		return nil, unresolvedf("loan", rec.LoanID)
	}
	fine, err := NewFine(rec.ID, rec.PersonID, rec.LoanID, rec.Amount, rec.Reason)
	if err != nil {
		return nil, err
	}
	if rec.Paid {
		fine.MarkPaid()
	}
	return fine, nil
}

func ImportReservation(rec ReservationRecord, persons map[string]*Person, books map[string]*Book) (*Reservation, error) {
	if _, ok := persons[rec.PersonID]; !ok {
		return nil, unresolvedf("person", rec.PersonID)
	}
	if _, ok := books[rec.BookISBN]; !ok {
		return nil, unresolvedf("book", rec.BookISBN)
	}
	res, err := NewReservation(rec.ID, rec.PersonID, rec.BookISBN, rec.ReservationDate, rec.ExpiryDate)
	if err != nil {
		return nil, err
	}
	if !rec.Active {
		res.Cancel()
	}
	return res, nil
}

func ImportReview(rec ReviewRecord, persons map[string]*Person, books map[string]*Book) (*Review, error) {
	if _, ok := persons[rec.PersonID]; !ok {
		return nil, unresolvedf("person", rec.PersonID)
	}
	if _, ok := books[rec.BookISBN]; !ok {
		return nil, unresolvedf("book", rec.BookISBN)
	}
	return NewReview(rec.ID, rec.PersonID, rec.BookISBN, rec.Rating, rec.Comment, rec.ReviewDate)
}

// ---------------------------------------------------------------------------
// Bulk export / import
// ---------------------------------------------------------------------------

// Export builds a snapshot of every collection in insertion order.
func (c *Catalog) Export() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := &Snapshot{Name: c.name}
	for _, a := range c.authors.values() {
		snap.Authors = append(snap.Authors, a.Export())
	}
	for _, g := range c.genres.values() {
		snap.Genres = append(snap.Genres, g.Export())
	}
	for _, p := range c.publishers.values() {
		snap.Publishers = append(snap.Publishers, p.Export())
	}
	for _, b := range c.books.values() {
		snap.Books = append(snap.Books, b.Export())
	}
	for _, p := range c.persons.values() {
		snap.Persons = append(snap.Persons, p.Export())
	}
	for _, l := range c.loans.values() {
		snap.Loans = append(snap.Loans, l.Export())
	}
	for _, f := range c.fines.values() {
		snap.Fines = append(snap.Fines, f.Export())
	}
	for _, r := range c.reservations.values() {
		snap.Reservations = append(snap.Reservations, r.Export())
	}
	for _, r := range c.reviews.values() {
		snap.Reviews = append(snap.Reviews, r.Export())
	}
	return snap
}

// Import loads the snapshot into the catalog in dependency order:
// authors, genres and publishers first, then books, persons, loans,
// fines, reservations and reviews, so every reference resolves against
// records imported before it.
//
// The first failing record stops the import and its error is returned;
// records imported before it stay in the catalog untouched. Callers that
// want skip-and-continue semantics import records individually.
func (c *Catalog) Import(snap *Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, rec := range snap.Authors {
		author, err := ImportAuthor(rec)
		if err != nil {
			return fmt.Errorf("author %q: %w", rec.ID, err)
		}
		if err := c.authors.add(author.ID(), author); err != nil {
			return err
		}
	}
	for _, rec := range snap.Genres {
		genre, err := ImportGenre(rec)
		if err != nil {
			return fmt.Errorf("genre %q: %w", rec.Name, err)
		}
		if err := c.genres.add(genre.Name(), genre); err != nil {
			return err
		}
	}
	for _, rec := range snap.Publishers {
		pub, err := ImportPublisher(rec)
		if err != nil {
			return fmt.Errorf("publisher %q: %w", rec.ID, err)
		}
		if err := c.publishers.add(pub.ID(), pub); err != nil {
			return err
		}
	}
	for _, rec := range snap.Books {
		book, err := ImportBook(rec, c.authors.items, c.genres.items, c.publishers.items)
		if err != nil {
			return fmt.Errorf("book %q: %w", rec.ISBN, err)
		}
		if err := c.books.add(book.ISBN(), book); err != nil {
			return err
		}
	}
	for _, rec := range snap.Persons {
		person, err := ImportPerson(rec, c.books.items)
		if err != nil {
			return fmt.Errorf("person %q: %w", rec.ID, err)
		}
		if err := c.persons.add(person.ID(), person); err != nil {
			return err
		}
	}
	for _, rec := range snap.Loans {
		loan, err := ImportLoan(rec, c.books.items, c.persons.items)
		if err != nil {
			return fmt.Errorf("loan %q: %w", rec.ID, err)
		}
		if err := c.loans.add(loan.ID(), loan); err != nil {
			return err
		}
	}
	for _, rec := range snap.Fines {
		fine, err := ImportFine(rec, c.persons.items, c.loans.items)
		if err != nil {
			return fmt.Errorf("fine %q: %w", rec.ID, err)
		}
		if err := c.fines.add(fine.ID(), fine); err != nil {
			return err
		}
	}
	for _, rec := range snap.Reservations {
		res, err := ImportReservation(rec, c.persons.items, c.books.items)
		if err != nil {
			return fmt.Errorf("reservation %q: %w", rec.ID, err)
		}
		if err := c.reservations.add(res.ID(), res); err != nil {
			return err
		}
	}
	for _, rec := range snap.Reviews {
		review, err := ImportReview(rec, c.persons.items, c.books.items)
		if err != nil {
			return fmt.Errorf("review %q: %w", rec.ID, err)
		}
		if err := c.reviews.add(review.ID(), review); err != nil {
			return err
		}
	}
	return nil
}

// NewCatalogFromSnapshot builds a fresh catalog from a snapshot.
func NewCatalogFromSnapshot(snap *Snapshot) (*Catalog, error) {
	catalog, err := NewCatalog(snap.Name)
	if err != nil {
		return nil, err
	}
	if err := catalog.Import(snap); err != nil {
		return nil, err
	}
	return catalog, nil
}
