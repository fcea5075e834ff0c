package logger

import (
	"context"
	"log/slog"
)

// loggerContextKey is an unexported type so no other package can
// collide with the context key.
type loggerContextKey struct{}

// WithLogger returns a new context carrying the given logger.
// Middleware uses this to propagate a request-scoped logger (for
// example one enriched with a trace ID) to stores and handlers.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the logger stored in the context.
// If the context is nil or carries no logger, the process-wide default
// logger is returned so callers can always log safely.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if log, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger stored in the context,
// falling back to the provided logger when none is present. Components
// pass their own component-scoped logger as the fallback.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerContextKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
