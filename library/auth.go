package library

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned when a password does not match the
// stored hash.
var ErrBadCredentials = errors.New("invalid credentials")

// PasswordHash returns the stored bcrypt hash, empty when no password
// was ever set.
func (p *Person) PasswordHash() string { return p.passwordHash }

// SetPasswordHash installs an already-computed hash, used when loading
// persisted persons.
func (p *Person) SetPasswordHash(hash string) { p.passwordHash = hash }

// SetPersonPassword hashes the password with bcrypt and stores it on the
// person.
func (c *Catalog) SetPersonPassword(personID, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	person, ok := c.persons.get(personID)
	if !ok {
		return notFoundf("person", personID)
	}
	if password == "" {
		return validationf("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	person.passwordHash = string(hash)
	return nil
}

// AuthenticatePerson checks the password against the person's stored
// hash. Persons without a password never authenticate.
func (c *Catalog) AuthenticatePerson(personID, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	person, ok := c.persons.get(personID)
	if !ok {
		return notFoundf("person", personID)
	}
	if person.passwordHash == "" {
		return fmt.Errorf("%w: no password set for %q", ErrBadCredentials, personID)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(person.passwordHash), []byte(password)); err != nil {
		return fmt.Errorf("%w: %q", ErrBadCredentials, personID)
	}
	return nil
}
