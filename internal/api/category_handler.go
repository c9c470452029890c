package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskflow/internal/api/shared"
	"taskflow/internal/apperr"
	"taskflow/internal/audit"
	"taskflow/internal/domain"
	"taskflow/internal/store"
)

// CategoryHandler exposes the category endpoints. Reading is open to any
// authenticated user; creation is restricted to the administrator.
type CategoryHandler struct {
	categories *store.CategoryStore
	audit      audit.Recorder
	errs       *ErrorWriter
}

// NewCategoryHandler builds the handler.
func NewCategoryHandler(categories *store.CategoryStore, recorder audit.Recorder, errs *ErrorWriter) *CategoryHandler {
	if categories == nil {
		panic("api.NewCategoryHandler: category store is required")
	}
	if errs == nil {
		panic("api.NewCategoryHandler: error writer is required")
	}
	if recorder == nil {
		recorder = audit.Discard{}
	}
	return &CategoryHandler{categories: categories, audit: recorder, errs: errs}
}

// List handles GET /api/categorias. Categories are a small fixed set,
// so the response is the plain array without pagination metadata.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.categories.List())
}

// Get handles GET /api/categorias/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(chi.URLParam(r, "id"), "category id")
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	category, err := h.categories.Get(categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			h.errs.Write(w, r, apperr.NotFound("category"))
			return
		}
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// Create handles POST /api/categorias. Admin only.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		h.errs.Write(w, r, apperr.Unauthorized("authentication required"))
		return
	}
	if !domain.IsAdmin(userID) {
		h.errs.Write(w, r, apperr.Forbidden("only the administrator can create categories"))
		return
	}

	var req createCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.errs.Write(w, r, apperr.Validation("invalid request body"))
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		h.errs.Write(w, r, apperr.Validation("invalid category data",
			shared.ViolationList(err, wireFieldNames)...))
		return
	}

	name := strings.TrimSpace(*req.Name)
	var description string
	if req.Description != nil {
		description = strings.TrimSpace(*req.Description)
	}

	var violations []string
	if v := domain.ValidateCategoryName(name); v != "" {
		violations = append(violations, v)
	}
	if v := domain.ValidateCategoryDescription(description); v != "" {
		violations = append(violations, v)
	}
	if len(violations) > 0 {
		h.errs.Write(w, r, apperr.Validation("invalid category data", violations...))
		return
	}

	category := h.categories.Create(domain.Category{
		Name:        name,
		Description: description,
	})
	h.audit.Record(audit.Entry{
		Kind:        audit.KindCreate,
		Description: fmt.Sprintf("category #%d created", category.ID),
		Details: map[string]any{
			"nombre": category.Name,
			"userId": userID,
		},
	})
	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}
