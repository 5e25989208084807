package middleware

import (
	"log/slog"
	"net/http"

	"github.com/sarmadH97/keeyu-task-board/internal/api/shared"
)

// NewTraceMiddleware returns middleware that stamps every request
// context with a fresh trace ID and logs the request start against it.
// Apply it before any handler that writes responses, since the shared
// response helpers read the trace ID back out of the context.
func NewTraceMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())

			logger.Debug("request started",
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
