package library

import "time"

// Author is a validated author record. Books reference authors by ID.
type Author struct {
	id        string
	name      string
	birthYear *int
	country   string
}

// NewAuthor validates all fields and returns the author, or ErrValidation.
// birthYear is optional and must fall in [0, current year] when present.
func NewAuthor(id, name string, birthYear *int, country string) (*Author, error) {
	a := &Author{}
	if err := a.SetID(id); err != nil {
		return nil, err
	}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	if err := a.SetBirthYear(birthYear); err != nil {
		return nil, err
	}
	a.SetCountry(country)
	return a, nil
}

func (a *Author) ID() string      { return a.id }
func (a *Author) Name() string    { return a.name }
func (a *Author) Country() string { return a.country }

// BirthYear returns the birth year and whether one is set.
func (a *Author) BirthYear() (int, bool) {
	if a.birthYear == nil {
		return 0, false
	}
	return *a.birthYear, true
}

func (a *Author) SetID(id string) error {
	trimmed, err := requireText("author id", id)
	if err != nil {
		return err
	}
	a.id = trimmed
	return nil
}

func (a *Author) SetName(name string) error {
	trimmed, err := requireText("author name", name)
	if err != nil {
		return err
	}
	a.name = trimmed
	return nil
}

func (a *Author) SetBirthYear(year *int) error {
	if err := checkYear("birth year", year, time.Now()); err != nil {
		return err
	}
	if year == nil {
		a.birthYear = nil
		return nil
	}
	y := *year
	a.birthYear = &y
	return nil
}

func (a *Author) SetCountry(country string) {
	a.country = country
}
