package library

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// FinePerDay is the flat daily rate charged for overdue loans.
const FinePerDay = 10.0

// Catalog is the single authoritative owner of every entity collection.
// All cross-entity mutations (borrow, return, reserve) go through it so
// referential integrity holds; entities reference each other by key and
// are resolved here.
//
// A coarse mutex guards the collections, making the catalog safe to share
// between a CLI command and a store. Entities are handed out by pointer
// and assume a single mutating actor.
type Catalog struct {
	mu   sync.Mutex
	name string
	now  func() time.Time

	authors      *collection[*Author]
	genres       *collection[*Genre]
	publishers   *collection[*Publisher]
	books        *collection[*Book]
	persons      *collection[*Person]
	loans        *collection[*Loan]
	fines        *collection[*Fine]
	reservations *collection[*Reservation]
	reviews      *collection[*Review]
}

// NewCatalog creates an empty catalog with the given library name.
func NewCatalog(name string) (*Catalog, error) {
	trimmed, err := requireText("library name", name)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		name:         trimmed,
		now:          time.Now,
		authors:      newCollection[*Author]("author"),
		genres:       newCollection[*Genre]("genre"),
		publishers:   newCollection[*Publisher]("publisher"),
		books:        newCollection[*Book]("book"),
		persons:      newCollection[*Person]("person"),
		loans:        newCollection[*Loan]("loan"),
		fines:        newCollection[*Fine]("fine"),
		reservations: newCollection[*Reservation]("reservation"),
		reviews:      newCollection[*Review]("review"),
	}, nil
}

// Name returns the library name.
func (c *Catalog) Name() string { return c.name }

// SetName renames the library.
func (c *Catalog) SetName(name string) error {
	trimmed, err := requireText("library name", name)
	if err != nil {
		return err
	}
	c.name = trimmed
	return nil
}

// ---------------------------------------------------------------------------
// Authors
// ---------------------------------------------------------------------------

func (c *Catalog) AddAuthor(a *Author) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authors.add(a.ID(), a)
}

func (c *Catalog) Author(id string) (*Author, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authors.get(id)
}

func (c *Catalog) UpdateAuthor(id string, a *Author) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authors.update(id, a.ID(), a)
}

// DeleteAuthor removes an author unless a book still references it.
func (c *Catalog) DeleteAuthor(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.books.values() {
		for _, aid := range b.AuthorIDs() {
			if aid == id {
				return fmt.Errorf("%w: author %q referenced by book %q", ErrInUse, id, b.ISBN())
			}
		}
	}
	return c.authors.remove(id)
}

func (c *Catalog) Authors() []*Author {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authors.values()
}

// ---------------------------------------------------------------------------
// Genres
// ---------------------------------------------------------------------------

func (c *Catalog) AddGenre(g *Genre) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.genres.add(g.Name(), g)
}

func (c *Catalog) Genre(name string) (*Genre, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.genres.get(name)
}

func (c *Catalog) UpdateGenre(name string, g *Genre) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.genres.update(name, g.Name(), g)
}

func (c *Catalog) DeleteGenre(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.books.values() {
		if b.Genre() == name {
			return fmt.Errorf("%w: genre %q referenced by book %q", ErrInUse, name, b.ISBN())
		}
	}
	return c.genres.remove(name)
}

func (c *Catalog) Genres() []*Genre {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.genres.values()
}

// ---------------------------------------------------------------------------
// Publishers
// ---------------------------------------------------------------------------

func (c *Catalog) AddPublisher(p *Publisher) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publishers.add(p.ID(), p)
}

func (c *Catalog) Publisher(id string) (*Publisher, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publishers.get(id)
}

func (c *Catalog) UpdatePublisher(id string, p *Publisher) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publishers.update(id, p.ID(), p)
}

func (c *Catalog) DeletePublisher(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range c.books.values() {
		if b.PublisherID() == id {
			return fmt.Errorf("%w: publisher %q referenced by book %q", ErrInUse, id, b.ISBN())
		}
	}
	return c.publishers.remove(id)
}

func (c *Catalog) Publishers() []*Publisher {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.publishers.values()
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

// AddBook inserts the book after checking that its author, genre and
// publisher keys resolve. The key-based counterpart of requiring live
// referenced objects at construction time.
func (c *Catalog) AddBook(b *Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkBookRefs(b); err != nil {
		return err
	}
	return c.books.add(b.ISBN(), b)
}

func (c *Catalog) Book(isbn string) (*Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.books.get(isbn)
}

func (c *Catalog) UpdateBook(isbn string, b *Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkBookRefs(b); err != nil {
		return err
	}
	return c.books.update(isbn, b.ISBN(), b)
}

// DeleteBook removes a book unless an active loan or an active
// reservation still references it. Closed loans and past reviews keep
// their (now dangling) ISBN; readers tolerate that.
func (c *Catalog) DeleteBook(isbn string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for _, l := range c.loans.values() {
		if l.BookISBN() == isbn && !l.IsReturned() {
			return fmt.Errorf("%w: book %q on active loan %q", ErrInUse, isbn, l.ID())
		}
	}
	for _, r := range c.reservations.values() {
		if r.BookISBN() == isbn && r.IsActive(now) {
			return fmt.Errorf("%w: book %q held by reservation %q", ErrInUse, isbn, r.ID())
		}
	}
	return c.books.remove(isbn)
}

func (c *Catalog) Books() []*Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.books.values()
}

func (c *Catalog) checkBookRefs(b *Book) error {
	for _, aid := range b.AuthorIDs() {
		if _, ok := c.authors.get(aid); !ok {
			return notFoundf("author", aid)
		}
	}
	if _, ok := c.genres.get(b.Genre()); !ok {
		return notFoundf("genre", b.Genre())
	}
	if _, ok := c.publishers.get(b.PublisherID()); !ok {
		return notFoundf("publisher", b.PublisherID())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Persons
// ---------------------------------------------------------------------------

func (c *Catalog) AddPerson(p *Person) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persons.add(p.ID(), p)
}

func (c *Catalog) Person(id string) (*Person, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persons.get(id)
}

func (c *Catalog) UpdatePerson(id string, p *Person) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persons.update(id, p.ID(), p)
}

// DeletePerson removes a person unless an active loan or an active
// reservation still references them.
func (c *Catalog) DeletePerson(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for _, l := range c.loans.values() {
		if l.PersonID() == id && !l.IsReturned() {
			return fmt.Errorf("%w: person %q has active loan %q", ErrInUse, id, l.ID())
		}
	}
	for _, r := range c.reservations.values() {
		if r.PersonID() == id && r.IsActive(now) {
			return fmt.Errorf("%w: person %q has reservation %q", ErrInUse, id, r.ID())
		}
	}
	return c.persons.remove(id)
}

func (c *Catalog) Persons() []*Person {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persons.values()
}

// ---------------------------------------------------------------------------
// Loans, fines, reservations, reviews: plain collection access
// ---------------------------------------------------------------------------

func (c *Catalog) AddLoan(l *Loan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loans.add(l.ID(), l)
}

func (c *Catalog) Loan(id string) (*Loan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loans.get(id)
}

func (c *Catalog) UpdateLoan(id string, l *Loan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loans.update(id, l.ID(), l)
}

func (c *Catalog) DeleteLoan(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loans.remove(id)
}

func (c *Catalog) Loans() []*Loan {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loans.values()
}

func (c *Catalog) AddFine(f *Fine) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fines.add(f.ID(), f)
}

func (c *Catalog) Fine(id string) (*Fine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fines.get(id)
}

func (c *Catalog) UpdateFine(id string, f *Fine) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fines.update(id, f.ID(), f)
}

func (c *Catalog) DeleteFine(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fines.remove(id)
}

func (c *Catalog) Fines() []*Fine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fines.values()
}

func (c *Catalog) AddReservation(r *Reservation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reservations.add(r.ID(), r)
}

func (c *Catalog) Reservation(id string) (*Reservation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reservations.get(id)
}

func (c *Catalog) UpdateReservation(id string, r *Reservation) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reservations.update(id, r.ID(), r)
}

func (c *Catalog) DeleteReservation(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reservations.remove(id)
}

func (c *Catalog) Reservations() []*Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reservations.values()
}

// AddReview records the review, stamping a zero review date with the
// current clock time.
func (c *Catalog) AddReview(r *Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.reviews.add(r.ID(), r); err != nil {
		return err
	}
	if r.reviewDate.IsZero() {
		r.reviewDate = c.now()
	}
	return nil
}

func (c *Catalog) Review(id string) (*Review, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reviews.get(id)
}

func (c *Catalog) UpdateReview(id string, r *Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reviews.update(id, r.ID(), r)
}

func (c *Catalog) DeleteReview(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reviews.remove(id)
}

func (c *Catalog) Reviews() []*Review {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reviews.values()
}

// ---------------------------------------------------------------------------
// Circulation
// ---------------------------------------------------------------------------

// nextID returns the first unused sequential id for the collection,
// starting at count+1. Deletes can leave later ids occupied, so probe
// forward until a free one turns up. Caller holds the catalog lock.
func nextID[T any](c *collection[T], prefix string) string {
	for n := c.len() + 1; ; n++ {
		id := fmt.Sprintf("%s_%d", prefix, n)
		if _, taken := c.items[id]; !taken {
			return id
		}
	}
}

// BorrowBook lends the book to the person until due. The loan gets the
// next free sequential id ("br_1", "br_2", ...), borrows at the current
// clock time, and the ISBN is appended to the person's borrowed set (no
// duplicate entry if it is already there).
func (c *Catalog) BorrowBook(personID, isbn string, due time.Time) (*Loan, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	person, ok := c.persons.get(personID)
	if !ok {
		return nil, notFoundf("person", personID)
	}
	book, ok := c.books.get(isbn)
	if !ok {
		return nil, notFoundf("book", isbn)
	}

	loan, err := NewLoan(nextID(c.loans, "br"), book.ISBN(), person.ID(), c.now(), due)
	if err != nil {
		return nil, err
	}
	if err := c.loans.add(loan.ID(), loan); err != nil {
		return nil, err
	}
	person.addBorrowed(book.ISBN())
	return loan, nil
}

// ReturnBook closes the loan at the current clock time and removes the
// book from the borrower's set. When the loan comes back at least one
// whole day late a fine is created ("fine_1", "fine_2", ...) at
// FinePerDay per day, unpaid. The returned fine is nil when none was due.
//
// The fine is built before the loan is touched, so an error leaves the
// loan open and the borrower's set intact.
func (c *Catalog) ReturnBook(loanID string) (*Fine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	loan, ok := c.loans.get(loanID)
	if !ok {
		return nil, notFoundf("loan", loanID)
	}
	now := c.now()

	var fine *Fine
	if days := loan.DaysOverdue(now); days >= 1 {
		f, err := NewFine(nextID(c.fines, "fine"), loan.PersonID(), loan.ID(),
			float64(days)*FinePerDay, fmt.Sprintf("returned %d days overdue", days))
		if err != nil {
			return nil, err
		}
		fine = f
	}

	if err := loan.MarkReturned(now); err != nil {
		return nil, err
	}
	if person, ok := c.persons.get(loan.PersonID()); ok {
		person.removeBorrowed(loan.BookISBN())
	}
	if fine != nil {
		if err := c.fines.add(fine.ID(), fine); err != nil {
			return nil, err
		}
	}
	return fine, nil
}

// ReserveBook places a hold on the book for the person until expiry. The
// reservation gets the next free sequential id ("res_1", "res_2", ...)
// and starts at the current clock time.
func (c *Catalog) ReserveBook(personID, isbn string, expiry time.Time) (*Reservation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	person, ok := c.persons.get(personID)
	if !ok {
		return nil, notFoundf("person", personID)
	}
	book, ok := c.books.get(isbn)
	if !ok {
		return nil, notFoundf("book", isbn)
	}

	res, err := NewReservation(nextID(c.reservations, "res"), person.ID(), book.ISBN(), c.now(), expiry)
	if err != nil {
		return nil, err
	}
	if err := c.reservations.add(res.ID(), res); err != nil {
		return nil, err
	}
	return res, nil
}

// CancelReservation clears the reservation's active flag.
func (c *Catalog) CancelReservation(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.reservations.get(id)
	if !ok {
		return notFoundf("reservation", id)
	}
	res.Cancel()
	return nil
}

// ReactivateReservation sets the reservation's active flag again.
func (c *Catalog) ReactivateReservation(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.reservations.get(id)
	if !ok {
		return notFoundf("reservation", id)
	}
	res.Reactivate()
	return nil
}

// PayFine settles the fine.
func (c *Catalog) PayFine(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	fine, ok := c.fines.get(id)
	if !ok {
		return notFoundf("fine", id)
	}
	fine.MarkPaid()
	return nil
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// SearchBooks matches books against the supplied criteria, each a
// case-insensitive substring test. Empty criteria match everything and
// all supplied criteria must hold. The author criterion matches any of
// the book's resolved author names; author IDs that no longer resolve
// are skipped. Results come back in insertion order.
func (c *Catalog) SearchBooks(title, author, genre string) []*Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	title = strings.ToLower(strings.TrimSpace(title))
	author = strings.ToLower(strings.TrimSpace(author))
	genre = strings.ToLower(strings.TrimSpace(genre))

	var matches []*Book
	for _, b := range c.books.values() {
		if title != "" && !strings.Contains(strings.ToLower(b.Title()), title) {
			continue
		}
		if genre != "" && !strings.Contains(strings.ToLower(b.Genre()), genre) {
			continue
		}
		if author != "" && !c.anyAuthorMatches(b, author) {
			continue
		}
		matches = append(matches, b)
	}
	return matches
}

func (c *Catalog) anyAuthorMatches(b *Book, query string) bool {
	for _, aid := range b.AuthorIDs() {
		a, ok := c.authors.get(aid)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(a.Name()), query) {
			return true
		}
	}
	return false
}

// UserFines returns the person's unpaid fines in insertion order; paid
// fines are excluded.
func (c *Catalog) UserFines(personID string) []*Fine {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*Fine
	for _, f := range c.fines.values() {
		if f.PersonID() == personID && !f.Paid() {
			out = append(out, f)
		}
	}
	return out
}

// AverageBookRating returns the arithmetic mean of all review ratings
// for the ISBN. The second result is false when the book has no reviews;
// zero is a valid mean only in the sense that it never occurs.
func (c *Catalog) AverageBookRating(isbn string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum, count int
	for _, r := range c.reviews.values() {
		if r.BookISBN() == isbn {
			sum += r.Rating()
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

// Statistics is a snapshot of aggregate catalog counts, recomputed on
// every call.
type Statistics struct {
	Books              int `json:"books"`
	Authors            int `json:"authors"`
	Genres             int `json:"genres"`
	Publishers         int `json:"publishers"`
	Persons            int `json:"persons"`
	Loans              int `json:"loans"`
	ActiveLoans        int `json:"active_loans"`
	OverdueLoans       int `json:"overdue_loans"`
	Reservations       int `json:"reservations"`
	ActiveReservations int `json:"active_reservations"`
	Fines              int `json:"fines"`
	UnpaidFines        int `json:"unpaid_fines"`
	Reviews            int `json:"reviews"`
}

// Statistics recomputes the aggregate counts at the current clock time.
func (c *Catalog) Statistics() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := Statistics{
		Books:        c.books.len(),
		Authors:      c.authors.len(),
		Genres:       c.genres.len(),
		Publishers:   c.publishers.len(),
		Persons:      c.persons.len(),
		Loans:        c.loans.len(),
		Reservations: c.reservations.len(),
		Fines:        c.fines.len(),
		Reviews:      c.reviews.len(),
	}
	for _, l := range c.loans.values() {
		if !l.IsReturned() {
			stats.ActiveLoans++
		}
		if l.IsOverdue(now) {
			stats.OverdueLoans++
		}
	}
	for _, r := range c.reservations.values() {
		if r.IsActive(now) {
			stats.ActiveReservations++
		}
	}
	for _, f := range c.fines.values() {
		if !f.Paid() {
			stats.UnpaidFines++
		}
	}
	return stats
}
