// Package domain holds the task board's core entities: users, boards,
// columns, and tasks, together with the validation rules they enforce.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for entity validation. Specific failures wrap these
// so callers can group them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID reports a malformed identifier, usually a path or
	// body parameter that is not a UUID.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthorized reports an operation the caller may not perform.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError describes a single invalid field on an entity or a
// missing service dependency.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel so errors.Is works against
// ErrValidation and friends.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError wrapping the given sentinel.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
