package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/taskora/task-api/internal/api/shared"
	"github.com/taskora/task-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that adds a trace ID to the
// request context and stores a request-scoped logger carrying that
// trace ID, so every log line downstream can be correlated with the
// response. Each request is also logged on completion with its status
// and duration. It should be applied early in the middleware chain.
func NewTraceMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Add a trace ID to the context
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := baseLogger
			if log == nil {
				log = slog.Default()
			}
			log = log.With(slog.String("trace_id", traceID))

			// Make the request-scoped logger available to handlers
			ctx = logger.WithLogger(ctx, log)

			// Log the incoming request with trace ID
			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			// Continue with the updated context
			next.ServeHTTP(ww, r.WithContext(ctx))

			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		})
	}
}
