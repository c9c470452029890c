package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskflow/internal/api/shared"
	"taskflow/internal/apperr"
	"taskflow/internal/service/stats"
)

// StatsHandler exposes the reporting endpoints.
type StatsHandler struct {
	service stats.Service
	errs    *ErrorWriter
}

// NewStatsHandler builds the handler.
func NewStatsHandler(service stats.Service, errs *ErrorWriter) *StatsHandler {
	if service == nil {
		panic("api.NewStatsHandler: service is required")
	}
	if errs == nil {
		panic("api.NewStatsHandler: error writer is required")
	}
	return &StatsHandler{service: service, errs: errs}
}

// UserProductivity handles GET /api/stats/productividad/usuario/{id}.
func (h *StatsHandler) UserProductivity(w http.ResponseWriter, r *http.Request) {
	callerID, ok := shared.UserID(r.Context())
	if !ok {
		h.errs.Write(w, r, apperr.Unauthorized("authentication required"))
		return
	}

	targetID, err := pathID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	report, err := h.service.UserProductivity(r.Context(), callerID, targetID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// CompletedPerDay handles GET /api/stats/tareas_completadas_por_dia.
func (h *StatsHandler) CompletedPerDay(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.CompletedPerDay(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, completedPerDayResponse{
		Description: "completed task count by creation date",
		Counts:      counts,
	})
}
