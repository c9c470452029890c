package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"taskflow/internal/api/shared"
	"taskflow/internal/apperr"
	"taskflow/internal/store"
)

// UserHandler exposes the user profile endpoint.
type UserHandler struct {
	users *store.UserStore
	errs  *ErrorWriter
}

// NewUserHandler builds the handler.
func NewUserHandler(users *store.UserStore, errs *ErrorWriter) *UserHandler {
	if users == nil {
		panic("api.NewUserHandler: user store is required")
	}
	if errs == nil {
		panic("api.NewUserHandler: error writer is required")
	}
	return &UserHandler{users: users, errs: errs}
}

// Get handles GET /api/usuarios/{id}. Profiles carry only id, name and
// email, so any authenticated caller may read any of them.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathID(chi.URLParam(r, "id"), "user id")
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	user, err := h.users.Get(targetID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.errs.Write(w, r, apperr.NotFound("user"))
			return
		}
		h.errs.Write(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
