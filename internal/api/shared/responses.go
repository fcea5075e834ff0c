package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskora/task-api/internal/redact"
)

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    int          `json:"-"` // Not serialized to JSON, used for logging
	TraceID string       `json:"trace_id,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	details []FieldError
}

// WithValidationDetails returns a ResponseOption that attaches per-field
// validation failures to the error response body.
func WithValidationDetails(details []FieldError) ResponseOption {
	return func(opts *responseOptions) {
		opts.details = details
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code and message.
// It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	// Get trace ID from context if available
	traceID := GetTraceID(r.Context())

	// Create the error response
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		TraceID: traceID,
	}

	// Log the error with trace ID for correlation
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, errorResponse)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the detailed error.
// This is useful for handling errors where you want to log the full error but only
// expose a sanitized version to the client.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: Logged at DEBUG level
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	// Get trace ID from context if available
	traceID := GetTraceID(r.Context())

	// Apply any option overrides
	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	// Create the error response with only the safe message
	// Note: We never include the raw error string in the response
	errorResponse := ErrorResponse{
		Error:   userMessage,
		Code:    status,
		TraceID: traceID,
		Details: responseOpts.details,
	}

	// Set up common log attributes
	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}

	// Include the redacted error details (but only in the logs)
	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", redact.Error(err)))

		// Include the error type for debugging context (safe)
		logAttrs = append(logAttrs, slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	// Log with the determined level
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	// Send sanitized response to client
	RespondWithJSON(w, r, status, errorResponse)
}
