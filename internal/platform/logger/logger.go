// Package logger provides structured logging setup and context carrying
// for the application. All diagnostic output goes through log/slog; the
// operation audit trail is separate (see internal/audit).
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// contextKey is the private type for the logger context key.
type contextKey struct{}

var loggerKey = contextKey{}

// Setup configures the application logger from the given level string
// and sets it as the process default. Output is JSON on stdout unless
// out overrides it (tests pass a buffer). Unknown levels fall back to
// info with a warning.
func Setup(level string, out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stdout
	}

	parsed := slog.LevelInfo
	known := true
	switch strings.ToLower(level) {
	case "debug":
		parsed = slog.LevelDebug
	case "info":
		parsed = slog.LevelInfo
	case "warn":
		parsed = slog.LevelWarn
	case "error":
		parsed = slog.LevelError
	default:
		known = false
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parsed})
	log := slog.New(handler)
	slog.SetDefault(log)

	if !known && level != "" {
		log.Warn("invalid log level configured, using info",
			slog.String("configured_level", level))
	}
	return log
}

// WithLogger returns a context carrying the given logger. Middleware uses
// this to attach a request-scoped logger with the trace id already bound.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger carried by ctx, or nil.
func FromContext(ctx context.Context) *slog.Logger {
	log, _ := ctx.Value(loggerKey).(*slog.Logger)
	return log
}

// FromContextOrDefault returns the context logger when present, otherwise
// fallback (or slog.Default when fallback is nil).
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log := FromContext(ctx); log != nil {
		return log
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
