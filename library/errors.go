package library

import (
	"errors"
	"fmt"
)

// Error kinds returned by the library package. Callers match them with
// errors.Is; the wrapped message carries the offending field or key.
var (
	// ErrValidation covers invalid entity construction or mutation input.
	// It is raised before any state changes, never partially applied.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate is returned by catalog add operations when the key is
	// already taken. The existing entity is left untouched.
	ErrDuplicate = errors.New("duplicate key")

	// ErrNotFound is returned by catalog update/delete/borrow/return
	// operations when a referenced key is absent.
	ErrNotFound = errors.New("not found")

	// ErrUnresolvedRef is returned during bulk import when a record
	// references a key that is missing from the supplied lookup tables.
	ErrUnresolvedRef = errors.New("unresolved reference")

	// ErrInUse is returned when deleting a book or person that is still
	// referenced by an active loan or an active reservation.
	ErrInUse = errors.New("entity in use")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func duplicatef(kind, key string) error {
	return fmt.Errorf("%w: %s %q already exists", ErrDuplicate, kind, key)
}

func notFoundf(kind, key string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, key)
}

func unresolvedf(kind, key string) error {
	return fmt.Errorf("%w: %s %q", ErrUnresolvedRef, kind, key)
}
