package library

import (
	"strings"
	"time"
)

// requireText trims value and fails when nothing is left. Every identifier
// and name field goes through this, both in constructors and setters.
func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", validationf("%s must not be empty", field)
	}
	return trimmed, nil
}

// checkYear validates an optional year against [0, current year].
func checkYear(field string, year *int, now time.Time) error {
	if year == nil {
		return nil
	}
	if *year < 0 || *year > now.Year() {
		return validationf("%s %d out of range [0, %d]", field, *year, now.Year())
	}
	return nil
}

// checkPositive validates an optional strictly positive integer.
func checkPositive(field string, value *int) error {
	if value != nil && *value <= 0 {
		return validationf("%s must be positive, got %d", field, *value)
	}
	return nil
}

// checkDateOrder fails unless after is strictly later than before.
func checkDateOrder(beforeField, afterField string, before, after time.Time) error {
	if !after.After(before) {
		return validationf("%s must be later than %s", afterField, beforeField)
	}
	return nil
}
