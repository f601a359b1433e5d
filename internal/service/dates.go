package service

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate parses a required YYYY-MM-DD value.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date: %w", field, ErrValidation)
	}
	return t, nil
}

// parseOptionalDate parses an optional YYYY-MM-DD value, returning nil when
// the value is empty.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
