package library

import "strings"

// Genre is keyed by its name; the description is free text.
type Genre struct {
	name        string
	description string
}

func NewGenre(name, description string) (*Genre, error) {
	g := &Genre{}
	if err := g.SetName(name); err != nil {
		return nil, err
	}
	g.SetDescription(description)
	return g, nil
}

func (g *Genre) Name() string        { return g.name }
func (g *Genre) Description() string { return g.description }

func (g *Genre) SetName(name string) error {
	trimmed, err := requireText("genre name", name)
	if err != nil {
		return err
	}
	g.name = trimmed
	return nil
}

func (g *Genre) SetDescription(description string) {
	g.description = strings.TrimSpace(description)
}
