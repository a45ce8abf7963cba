package library

// Publisher is a validated publisher record. Books reference publishers by ID.
type Publisher struct {
	id       string
	name     string
	location string
}

func NewPublisher(id, name, location string) (*Publisher, error) {
	p := &Publisher{}
	if err := p.SetID(id); err != nil {
		return nil, err
	}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	p.SetLocation(location)
	return p, nil
}

func (p *Publisher) ID() string       { return p.id }
func (p *Publisher) Name() string     { return p.name }
func (p *Publisher) Location() string { return p.location }

func (p *Publisher) SetID(id string) error {
	trimmed, err := requireText("publisher id", id)
	if err != nil {
		return err
	}
	p.id = trimmed
	return nil
}

func (p *Publisher) SetName(name string) error {
	trimmed, err := requireText("publisher name", name)
	if err != nil {
		return err
	}
	p.name = trimmed
	return nil
}

func (p *Publisher) SetLocation(location string) {
	p.location = location
}
