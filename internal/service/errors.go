package service

import "errors"

// Error kinds surfaced by the core. Handlers translate these to HTTP statuses;
// services wrap them with entity context via fmt.Errorf("...: %w", Err...).
// Anything not matching one of these kinds is a persistence failure and the
// enclosing transaction, if any, has been rolled back.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflicting state")
)
