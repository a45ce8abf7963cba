package library

import (
	"errors"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestAuthorValidation(t *testing.T) {
	if _, err := NewAuthor("", "Tolkien", nil, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty id: want ErrValidation, got %v", err)
	}
	if _, err := NewAuthor("a1", "   ", nil, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name: want ErrValidation, got %v", err)
	}
	if _, err := NewAuthor("a1", "Tolkien", intPtr(-1), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative birth year: want ErrValidation, got %v", err)
	}
	future := time.Now().Year() + 1
	if _, err := NewAuthor("a1", "Tolkien", intPtr(future), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("future birth year: want ErrValidation, got %v", err)
	}

	a, err := NewAuthor("  a1  ", "  Tolkien  ", intPtr(1892), "UK")
	if err != nil {
		t.Fatalf("valid author: %v", err)
	}
	if a.ID() != "a1" || a.Name() != "Tolkien" {
		t.Fatalf("fields not trimmed: %q %q", a.ID(), a.Name())
	}
	if y, ok := a.BirthYear(); !ok || y != 1892 {
		t.Fatalf("birth year = %d, %t", y, ok)
	}
}

// Whatever a setter rejects, the constructor must reject too.
func TestAuthorSetterSymmetry(t *testing.T) {
	a, err := NewAuthor("a1", "Tolkien", nil, "")
	if err != nil {
		t.Fatalf("author: %v", err)
	}
	if err := a.SetName(" "); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetName blank: want ErrValidation, got %v", err)
	}
	if _, err := NewAuthor("a1", " ", nil, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("constructor must reject what SetName rejects")
	}
	if err := a.SetBirthYear(intPtr(-5)); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetBirthYear: want ErrValidation, got %v", err)
	}
	// Failed setter leaves the old value in place.
	if a.Name() != "Tolkien" {
		t.Fatalf("name changed after rejected set: %q", a.Name())
	}
	if err := a.SetBirthYear(nil); err != nil {
		t.Fatalf("clearing birth year: %v", err)
	}
	if _, ok := a.BirthYear(); ok {
		t.Fatalf("birth year should be cleared")
	}
}

func TestGenreValidation(t *testing.T) {
	if _, err := NewGenre("  ", "desc"); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank genre name: want ErrValidation, got %v", err)
	}
	g, err := NewGenre(" Fantasy ", "  dragons and such  ")
	if err != nil {
		t.Fatalf("valid genre: %v", err)
	}
	if g.Name() != "Fantasy" || g.Description() != "dragons and such" {
		t.Fatalf("fields not trimmed: %q %q", g.Name(), g.Description())
	}
	if err := g.SetName(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetName empty: want ErrValidation, got %v", err)
	}
}

func TestPublisherValidation(t *testing.T) {
	if _, err := NewPublisher("", "Ace", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty id: want ErrValidation, got %v", err)
	}
	if _, err := NewPublisher("p1", " ", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name: want ErrValidation, got %v", err)
	}
	p, err := NewPublisher("p1", "Ace Books", "New York")
	if err != nil {
		t.Fatalf("valid publisher: %v", err)
	}
	if p.Location() != "New York" {
		t.Fatalf("location = %q", p.Location())
	}
}

func TestBookValidation(t *testing.T) {
	authors := []string{"a1"}
	cases := []struct {
		name string
		fn   func() error
	}{
		{"empty isbn", func() error {
			_, err := NewBook(" ", "T", authors, "g", "p1", 2020, nil)
			return err
		}},
		{"empty title", func() error {
			_, err := NewBook("978-1", "", authors, "g", "p1", 2020, nil)
			return err
		}},
		{"no authors", func() error {
			_, err := NewBook("978-1", "T", nil, "g", "p1", 2020, nil)
			return err
		}},
		{"blank author id", func() error {
			_, err := NewBook("978-1", "T", []string{" "}, "g", "p1", 2020, nil)
			return err
		}},
		{"negative year", func() error {
			_, err := NewBook("978-1", "T", authors, "g", "p1", -1, nil)
			return err
		}},
		{"future year", func() error {
			_, err := NewBook("978-1", "T", authors, "g", "p1", time.Now().Year()+1, nil)
			return err
		}},
		{"zero pages", func() error {
			_, err := NewBook("978-1", "T", authors, "g", "p1", 2020, intPtr(0))
			return err
		}},
	}
	for _, tc := range cases {
		if err := tc.fn(); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: want ErrValidation, got %v", tc.name, err)
		}
	}

	b, err := NewBook(" 978-1 ", " The Hobbit ", []string{"a1", "a1", "a2"}, "Fantasy", "p1", 1937, intPtr(310))
	if err != nil {
		t.Fatalf("valid book: %v", err)
	}
	if b.ISBN() != "978-1" || b.Title() != "The Hobbit" {
		t.Fatalf("fields not trimmed: %q %q", b.ISBN(), b.Title())
	}
	ids := b.AuthorIDs()
	if len(ids) != 2 || ids[0] != "a1" || ids[1] != "a2" {
		t.Fatalf("duplicate authors not collapsed: %v", ids)
	}
	if pg, ok := b.Pages(); !ok || pg != 310 {
		t.Fatalf("pages = %d, %t", pg, ok)
	}

	// Returned slice is a copy; mutating it must not affect the book.
	ids[0] = "hacked"
	if b.AuthorIDs()[0] != "a1" {
		t.Fatalf("AuthorIDs leaked internal slice")
	}
}

func TestBookSetterSymmetry(t *testing.T) {
	b, err := NewBook("978-1", "T", []string{"a1"}, "g", "p1", 2020, nil)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if err := b.SetAuthorIDs(nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetAuthorIDs nil: want ErrValidation, got %v", err)
	}
	if err := b.SetYear(time.Now().Year() + 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetYear future: want ErrValidation, got %v", err)
	}
	if err := b.SetPages(intPtr(-3)); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetPages negative: want ErrValidation, got %v", err)
	}
	if b.Year() != 2020 || len(b.AuthorIDs()) != 1 {
		t.Fatalf("rejected setters must not change state")
	}
}

func TestPersonValidation(t *testing.T) {
	if _, err := NewPerson("", "Alice"); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty id: want ErrValidation, got %v", err)
	}
	if _, err := NewPerson("u1", "  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank name: want ErrValidation, got %v", err)
	}

	p, err := NewPerson(" u1 ", " Alice ")
	if err != nil {
		t.Fatalf("valid person: %v", err)
	}
	if p.ID() != "u1" || p.Name() != "Alice" {
		t.Fatalf("fields not trimmed: %q %q", p.ID(), p.Name())
	}
	if len(p.Borrowed()) != 0 {
		t.Fatalf("new person should have no borrowed books")
	}

	p.addBorrowed("978-1")
	p.addBorrowed("978-2")
	p.addBorrowed("978-1") // no duplicates
	if got := p.Borrowed(); len(got) != 2 || got[0] != "978-1" || got[1] != "978-2" {
		t.Fatalf("borrowed = %v", got)
	}
	p.removeBorrowed("978-1")
	if got := p.Borrowed(); len(got) != 1 || got[0] != "978-2" {
		t.Fatalf("after remove, borrowed = %v", got)
	}
}

func TestStaffProfile(t *testing.T) {
	if _, err := NewStaffProfile("", "Head Librarian"); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty employee id: want ErrValidation, got %v", err)
	}
	p, _ := NewPerson("u1", "Alice")
	if _, ok := p.Staff(); ok {
		t.Fatalf("person should not be staff by default")
	}
	staff, err := NewStaffProfile("e42", "Head Librarian")
	if err != nil {
		t.Fatalf("staff profile: %v", err)
	}
	p.AttachStaff(staff)
	got, ok := p.Staff()
	if !ok || got.EmployeeID() != "e42" || got.Position() != "Head Librarian" {
		t.Fatalf("staff = %+v, %t", got, ok)
	}
	p.AttachStaff(nil)
	if _, ok := p.Staff(); ok {
		t.Fatalf("staff should be detached")
	}
}
