package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Specific validation failures wrap this error.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is malformed.
	ErrInvalidID = errors.New("invalid ID")
)

// ValidationError carries field-level context for a validation
// failure so the API layer can report which input was rejected.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for the given field.
// The wrapped err may be nil.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error, or ErrValidation when none was
// supplied, so errors.Is(err, ErrValidation) holds for every
// ValidationError.
func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrValidation
}
