// Package middleware provides the HTTP middleware chain: trace IDs,
// request-scoped logging, and bearer-token authentication.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"taskflow/internal/api/shared"
	"taskflow/internal/platform/logger"
)

// TraceID assigns each request a trace identifier and stashes a
// request-scoped logger carrying it, so every log line downstream can
// be correlated back to the request.
func TraceID(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			reqLogger := base.With(
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			ctx = logger.WithLogger(ctx, reqLogger)

			start := time.Now()
			reqLogger.Debug("request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			reqLogger.Debug("request finished",
				slog.Duration("elapsed", time.Since(start)))
		})
	}
}
