package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// ErrorResponse is the uniform error envelope. Details carries
// field-level violation strings; Diagnostic is populated only in
// development mode for unclassified failures.
type ErrorResponse struct {
	Error      string    `json:"error"`
	Details    []string  `json:"detalles,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Diagnostic string    `json:"diagnostic,omitempty"`
}

// RouteNotFoundResponse is the envelope for unmatched routes.
type RouteNotFoundResponse struct {
	Error     string    `json:"error"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// RespondWithJSON writes data as a JSON response with the given status.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path))
	}
}

// RespondWithError writes the uniform error envelope.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string, details ...string) {
	RespondWithJSON(w, r, status, ErrorResponse{
		Error:     message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
