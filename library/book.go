package library

import (
	"strings"
	"time"
)

// Book is keyed by ISBN. It references authors, genre and publisher by
// their keys; the catalog resolves them when needed.
type Book struct {
	isbn        string
	title       string
	authorIDs   []string
	genre       string
	publisherID string
	year        int
	pages       *int
}

// NewBook validates all fields and returns the book, or ErrValidation.
// At least one author ID is required; pages is optional and must be
// positive when present. Referential existence of the author, genre and
// publisher keys is the catalog's concern, not the book's.
func NewBook(isbn, title string, authorIDs []string, genre, publisherID string, year int, pages *int) (*Book, error) {
	b := &Book{}
	if err := b.SetISBN(isbn); err != nil {
		return nil, err
	}
	if err := b.SetTitle(title); err != nil {
		return nil, err
	}
	if err := b.SetAuthorIDs(authorIDs); err != nil {
		return nil, err
	}
	if err := b.SetGenre(genre); err != nil {
		return nil, err
	}
	if err := b.SetPublisherID(publisherID); err != nil {
		return nil, err
	}
	if err := b.SetYear(year); err != nil {
		return nil, err
	}
	if err := b.SetPages(pages); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Book) ISBN() string        { return b.isbn }
func (b *Book) Title() string       { return b.title }
func (b *Book) Genre() string       { return b.genre }
func (b *Book) PublisherID() string { return b.publisherID }
func (b *Book) Year() int           { return b.year }

// AuthorIDs returns a copy so callers cannot bypass validation.
func (b *Book) AuthorIDs() []string {
	ids := make([]string, len(b.authorIDs))
	copy(ids, b.authorIDs)
	return ids
}

// Pages returns the page count and whether one is set.
func (b *Book) Pages() (int, bool) {
	if b.pages == nil {
		return 0, false
	}
	return *b.pages, true
}

func (b *Book) SetISBN(isbn string) error {
	trimmed, err := requireText("isbn", isbn)
	if err != nil {
		return err
	}
	b.isbn = trimmed
	return nil
}

func (b *Book) SetTitle(title string) error {
	trimmed, err := requireText("title", title)
	if err != nil {
		return err
	}
	b.title = trimmed
	return nil
}

// SetAuthorIDs requires at least one non-empty author ID. Duplicates are
// collapsed, keeping first occurrence order.
func (b *Book) SetAuthorIDs(authorIDs []string) error {
	if len(authorIDs) == 0 {
		return validationf("book needs at least one author")
	}
	seen := make(map[string]bool, len(authorIDs))
	cleaned := make([]string, 0, len(authorIDs))
	for _, id := range authorIDs {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			return validationf("author id must not be empty")
		}
		if !seen[trimmed] {
			seen[trimmed] = true
			cleaned = append(cleaned, trimmed)
		}
	}
	b.authorIDs = cleaned
	return nil
}

func (b *Book) SetGenre(genre string) error {
	trimmed, err := requireText("genre", genre)
	if err != nil {
		return err
	}
	b.genre = trimmed
	return nil
}

func (b *Book) SetPublisherID(publisherID string) error {
	trimmed, err := requireText("publisher id", publisherID)
	if err != nil {
		return err
	}
	b.publisherID = trimmed
	return nil
}

func (b *Book) SetYear(year int) error {
	if err := checkYear("publication year", &year, time.Now()); err != nil {
		return err
	}
	b.year = year
	return nil
}

func (b *Book) SetPages(pages *int) error {
	if err := checkPositive("pages", pages); err != nil {
		return err
	}
	if pages == nil {
		b.pages = nil
		return nil
	}
	p := *pages
	b.pages = &p
	return nil
}
