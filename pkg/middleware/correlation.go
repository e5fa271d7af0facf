package middleware

import (
	"net/http"
	"time"

	"shortlink/pkg/logging"
)

// CorrelationID tags every request context with a correlation ID and logs
// the request once the handler returns.
func CorrelationID(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logging.WithCorrelationID(r.Context())
			start := time.Now()

			next.ServeHTTP(w, r.WithContext(ctx))

			logger.Info(ctx, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
