// Package api provides the HTTP handlers and the boundary error
// interceptor.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"taskflow/internal/api/shared"
	"taskflow/internal/apperr"
	"taskflow/internal/audit"
	"taskflow/internal/platform/logger"
	"taskflow/internal/redact"
)

// ErrorWriter is the single place typed errors become HTTP responses.
// Typed errors map to their fixed status with message and details;
// anything else becomes a generic 500 that leaks nothing unless DevMode
// adds a diagnostic string.
type ErrorWriter struct {
	// DevMode includes diagnostic text in 500 responses.
	DevMode bool
	// Audit receives one error entry per unclassified failure, matching
	// the operation log's historical behavior.
	Audit  audit.Recorder
	Logger *slog.Logger
}

// NewErrorWriter builds the boundary interceptor.
func NewErrorWriter(devMode bool, recorder audit.Recorder, log *slog.Logger) *ErrorWriter {
	if recorder == nil {
		recorder = audit.Discard{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ErrorWriter{
		DevMode: devMode,
		Audit:   recorder,
		Logger:  log.With(slog.String("component", "error_writer")),
	}
}

// Write maps err to the uniform error envelope.
func (ew *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOrDefault(r.Context(), ew.Logger)

	if appErr, ok := apperr.From(err); ok {
		level := slog.LevelDebug
		if appErr.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(r.Context(), level, "request failed",
			slog.String("kind", appErr.Kind.String()),
			slog.Int("status", appErr.Status()),
			slog.String("error", redact.Error(err)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path))

		shared.RespondWithError(w, r, appErr.Status(), appErr.Message, appErr.Details...)
		return
	}

	// Unclassified failure: generic 500, full detail only in the logs
	// (and the audit trail, as the original error log did).
	log.Error("unhandled error",
		slog.String("error", redact.Error(err)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	ew.Audit.Record(audit.Entry{
		Kind:        audit.KindError,
		Description: "internal server error",
		Details: map[string]any{
			"metodo":  r.Method,
			"ruta":    r.URL.Path,
			"mensaje": redact.Error(err),
		},
	})

	response := shared.ErrorResponse{
		Error:     "internal server error",
		Timestamp: time.Now().UTC(),
	}
	if ew.DevMode && err != nil {
		response.Diagnostic = err.Error()
	}
	shared.RespondWithJSON(w, r, http.StatusInternalServerError, response)
}
