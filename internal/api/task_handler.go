package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskflow/internal/api/shared"
	"taskflow/internal/apperr"
	"taskflow/internal/domain"
	"taskflow/internal/service/tasks"
)

// TaskHandler exposes the task CRUD and query endpoints.
type TaskHandler struct {
	service tasks.Service
	errs    *ErrorWriter
}

// NewTaskHandler builds the handler. Both dependencies are required.
func NewTaskHandler(service tasks.Service, errs *ErrorWriter) *TaskHandler {
	if service == nil {
		panic("api.NewTaskHandler: service is required")
	}
	if errs == nil {
		panic("api.NewTaskHandler: error writer is required")
	}
	return &TaskHandler{service: service, errs: errs}
}

// List handles GET /api/tareas.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		h.errs.Write(w, r, apperr.Unauthorized("authentication required"))
		return
	}

	query, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), userID, query)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newListResponse(page))
}

// Get handles GET /api/tareas/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		h.errs.Write(w, r, apperr.Unauthorized("authentication required"))
		return
	}

	taskID, err := pathID(chi.URLParam(r, "id"), "task id")
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	task, err := h.service.Get(r.Context(), userID, taskID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Create handles POST /api/tareas.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		h.errs.Write(w, r, apperr.Unauthorized("authentication required"))
		return
	}

	var req createTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.errs.Write(w, r, apperr.Validation("invalid request body"))
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		h.errs.Write(w, r, apperr.Validation("invalid task data",
			shared.ViolationList(err, wireFieldNames)...))
		return
	}

	input := tasks.CreateInput{
		Title:      *req.Title,
		Completed:  req.Completed,
		CategoryID: req.CategoryID,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.service.Create(r.Context(), userID, input)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Replace handles PUT /api/tareas/{id}. All mutable fields must be
// present; a partial body is rejected before the service runs.
func (h *TaskHandler) Replace(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		h.errs.Write(w, r, apperr.Unauthorized("authentication required"))
		return
	}

	taskID, err := pathID(chi.URLParam(r, "id"), "task id")
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	var req replaceTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.errs.Write(w, r, apperr.Validation("invalid request body"))
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		h.errs.Write(w, r, apperr.Validation("invalid task data",
			shared.ViolationList(err, wireFieldNames)...))
		return
	}

	input := tasks.ReplaceInput{
		Title:      *req.Title,
		Priority:   domain.Priority(*req.Priority),
		Completed:  *req.Completed,
		CategoryID: *req.CategoryID,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}

	task, err := h.service.Replace(r.Context(), userID, taskID, input)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Patch handles PATCH /api/tareas/{id}. The body is kept as raw fields
// so the service can distinguish absent fields from explicit nulls and
// reject unknown names.
func (h *TaskHandler) Patch(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		h.errs.Write(w, r, apperr.Unauthorized("authentication required"))
		return
	}

	taskID, err := pathID(chi.URLParam(r, "id"), "task id")
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	var fields map[string]json.RawMessage
	if err := shared.DecodeJSON(r, &fields); err != nil {
		h.errs.Write(w, r, apperr.Validation("invalid request body"))
		return
	}

	task, err := h.service.Patch(r.Context(), userID, taskID, fields)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tareas/{id} and returns the removed task's
// final snapshot with a confirmation message.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		h.errs.Write(w, r, apperr.Unauthorized("authentication required"))
		return
	}

	taskID, err := pathID(chi.URLParam(r, "id"), "task id")
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	task, err := h.service.Delete(r.Context(), userID, taskID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deleteTaskResponse{
		Message: "task deleted",
		Task:    task,
	})
}
