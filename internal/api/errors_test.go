package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskora/task-api/internal/api/shared"
	"github.com/taskora/task-api/internal/domain"
	"github.com/taskora/task-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError, // Default to 500 for nil error
		},
		{
			name:           "task not found",
			err:            store.ErrTaskNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "wrapped not found",
			err:            fmt.Errorf("get task: %w", store.ErrNotFound),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "domain validation sentinel",
			err:            domain.ErrTitleTooShort,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "domain validation error",
			err:            domain.NewValidationError("title", "contains invalid characters", nil),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid ID",
			err:            fmt.Errorf("%w: %q", domain.ErrInvalidID, "not-a-uuid"),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid entity from store",
			err:            fmt.Errorf("%w: check constraint violation", store.ErrInvalidEntity),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "unknown error",
			err:            errors.New("database connection failed"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "An unexpected error occurred",
		},
		{
			name:     "domain validation error keeps its message",
			err:      domain.NewValidationError("title", "contains invalid characters", nil),
			expected: "Invalid title: contains invalid characters",
		},
		{
			name:     "task not found",
			err:      store.ErrTaskNotFound,
			expected: "Task not found",
		},
		{
			name:     "generic not found",
			err:      store.ErrNotFound,
			expected: "Resource not found",
		},
		{
			name:     "invalid ID",
			err:      fmt.Errorf("%w: %q", domain.ErrInvalidID, "nope"),
			expected: "Invalid task ID format",
		},
		{
			name:     "validation sentinel",
			err:      domain.ErrDescriptionTooLong,
			expected: "Validation error",
		},
		{
			name:     "invalid entity",
			err:      fmt.Errorf("%w: not null violation", store.ErrInvalidEntity),
			expected: "Invalid task data",
		},
		{
			name:     "unknown error is never exposed",
			err:      errors.New("pq: connection refused to host db.internal:5432"),
			expected: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Run("missing required field", func(t *testing.T) {
		err := shared.ValidateRequest(CreateTaskRequest{})
		require.Error(t, err)

		assert.Equal(t, "Invalid Title: required field", SanitizeValidationError(err))
	})

	t.Run("field too short", func(t *testing.T) {
		err := shared.ValidateRequest(CreateTaskRequest{Title: "ab"})
		require.Error(t, err)

		assert.Equal(t, "Invalid Title: must be at least 3 characters", SanitizeValidationError(err))
	})

	t.Run("non-validator error", func(t *testing.T) {
		assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
	})
}

func TestValidationDetails(t *testing.T) {
	t.Run("validator errors yield one detail per field", func(t *testing.T) {
		longDesc := strings.Repeat("d", 501)
		err := shared.ValidateRequest(CreateTaskRequest{Title: "", Description: &longDesc})
		require.Error(t, err)

		details := ValidationDetails(err)
		require.Len(t, details, 2)
		assert.Equal(t, shared.FieldError{Field: "title", Message: "required field"}, details[0])
		assert.Equal(
			t,
			shared.FieldError{Field: "description", Message: "must be at most 500 characters"},
			details[1],
		)
	})

	t.Run("domain validation error", func(t *testing.T) {
		err := domain.NewValidationError("title", "contains invalid characters", nil)

		details := ValidationDetails(err)
		require.Len(t, details, 1)
		assert.Equal(t, "title", details[0].Field)
		assert.Equal(t, "contains invalid characters", details[0].Message)
	})

	t.Run("domain sentinels", func(t *testing.T) {
		tests := []struct {
			err     error
			field   string
			message string
		}{
			{domain.ErrTitleTooShort, "title", "must be at least 3 characters"},
			{domain.ErrTitleTooLong, "title", "must be at most 100 characters"},
			{domain.ErrDescriptionTooLong, "description", "must be at most 500 characters"},
		}

		for _, tt := range tests {
			details := ValidationDetails(fmt.Errorf("create task: %w", tt.err))
			require.Len(t, details, 1)
			assert.Equal(t, tt.field, details[0].Field)
			assert.Equal(t, tt.message, details[0].Message)
		}
	})

	t.Run("non-validation error yields nil", func(t *testing.T) {
		assert.Nil(t, ValidationDetails(errors.New("boom")))
	})
}
