package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskora/task-api/internal/api/shared"
	"github.com/taskora/task-api/internal/domain"
	"github.com/taskora/task-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Validation errors, matching the semantics of invalid request content
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()

	// Not found errors
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Validation errors; field-level details travel separately
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid task ID format"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError reduces a validator error to a short,
// user-friendly message naming the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param()))
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// ValidationDetails extracts per-field failure details from a validation
// error, for either validator errors on request payloads or domain
// validation errors surfaced by the store.
func ValidationDetails(err error) []shared.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]shared.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, shared.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: getValidationTagMessage(fe.Tag(), fe.Param()),
			})
		}
		return details
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return []shared.FieldError{{Field: validationErr.Field, Message: validationErr.Message}}
	}

	switch {
	case errors.Is(err, domain.ErrTitleTooShort):
		return []shared.FieldError{{
			Field:   "title",
			Message: fmt.Sprintf("must be at least %d characters", domain.TitleMinLength),
		}}
	case errors.Is(err, domain.ErrTitleTooLong):
		return []shared.FieldError{{
			Field:   "title",
			Message: fmt.Sprintf("must be at most %d characters", domain.TitleMaxLength),
		}}
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return []shared.FieldError{{
			Field:   "description",
			Message: fmt.Sprintf("must be at most %d characters", domain.DescriptionMaxLength),
		}}
	}

	return nil
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		if param != "" {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return "too short"
	case "max":
		if param != "" {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
