package library

import "time"

// Loan records a book borrowed by a person for a bounded period. It
// references both by key. A loan is Active until MarkReturned sets the
// return date; the transition is one-way.
//
// Overdue state is derived against a caller-supplied "now", never cached.
type Loan struct {
	id         string
	bookISBN   string
	personID   string
	borrowDate time.Time
	dueDate    time.Time
	returnDate *time.Time
}

// NewLoan validates that dueDate is strictly later than borrowDate, the
// same predicate both date setters re-apply.
func NewLoan(id, bookISBN, personID string, borrowDate, dueDate time.Time) (*Loan, error) {
	trimmedID, err := requireText("loan id", id)
	if err != nil {
		return nil, err
	}
	trimmedISBN, err := requireText("book isbn", bookISBN)
	if err != nil {
		return nil, err
	}
	trimmedPerson, err := requireText("person id", personID)
	if err != nil {
		return nil, err
	}
	if err := checkDateOrder("borrow date", "due date", borrowDate, dueDate); err != nil {
		return nil, err
	}
	return &Loan{
		id:         trimmedID,
		bookISBN:   trimmedISBN,
		personID:   trimmedPerson,
		borrowDate: borrowDate,
		dueDate:    dueDate,
	}, nil
}

func (l *Loan) ID() string            { return l.id }
func (l *Loan) BookISBN() string      { return l.bookISBN }
func (l *Loan) PersonID() string      { return l.personID }
func (l *Loan) BorrowDate() time.Time { return l.borrowDate }
func (l *Loan) DueDate() time.Time    { return l.dueDate }

// ReturnDate returns the return date and whether the loan was returned.
func (l *Loan) ReturnDate() (time.Time, bool) {
	if l.returnDate == nil {
		return time.Time{}, false
	}
	return *l.returnDate, true
}

func (l *Loan) SetID(id string) error {
	trimmed, err := requireText("loan id", id)
	if err != nil {
		return err
	}
	l.id = trimmed
	return nil
}

func (l *Loan) SetBorrowDate(borrowDate time.Time) error {
	if err := checkDateOrder("borrow date", "due date", borrowDate, l.dueDate); err != nil {
		return err
	}
	l.borrowDate = borrowDate
	return nil
}

func (l *Loan) SetDueDate(dueDate time.Time) error {
	if err := checkDateOrder("borrow date", "due date", l.borrowDate, dueDate); err != nil {
		return err
	}
	l.dueDate = dueDate
	return nil
}

// MarkReturned closes the loan at the given time. The return date may not
// precede the borrow date, and a returned loan stays returned.
func (l *Loan) MarkReturned(at time.Time) error {
	if l.returnDate != nil {
		return validationf("loan %s already returned", l.id)
	}
	if at.Before(l.borrowDate) {
		return validationf("return date must not precede borrow date")
	}
	l.returnDate = &at
	return nil
}

// IsReturned reports whether the loan is closed.
func (l *Loan) IsReturned() bool { return l.returnDate != nil }

// IsOverdue reports whether the loan ran past its due date: the return
// date for closed loans, now for active ones.
func (l *Loan) IsOverdue(now time.Time) bool {
	if l.returnDate != nil {
		return l.returnDate.After(l.dueDate)
	}
	return now.After(l.dueDate)
}

// DaysOverdue returns the whole days past due, 0 when not overdue.
// Partial days truncate.
func (l *Loan) DaysOverdue(now time.Time) int {
	if !l.IsOverdue(now) {
		return 0
	}
	ref := now
	if l.returnDate != nil {
		ref = *l.returnDate
	}
	return int(ref.Sub(l.dueDate) / (24 * time.Hour))
}
