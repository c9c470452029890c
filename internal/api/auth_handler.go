package api

import (
	"errors"
	"net/http"

	"taskflow/internal/api/shared"
	"taskflow/internal/apperr"
	"taskflow/internal/platform/logger"
	"taskflow/internal/service/auth"
	"taskflow/internal/store"
)

// AuthHandler exposes the login endpoint. Credentials are checked
// against the user store; the issuer decides the token format.
type AuthHandler struct {
	users     *store.UserStore
	passwords auth.PasswordVerifier
	issuer    auth.TokenIssuer
	errs      *ErrorWriter
}

// NewAuthHandler builds the handler.
func NewAuthHandler(users *store.UserStore, passwords auth.PasswordVerifier, issuer auth.TokenIssuer, errs *ErrorWriter) *AuthHandler {
	if users == nil {
		panic("api.NewAuthHandler: user store is required")
	}
	if passwords == nil {
		panic("api.NewAuthHandler: password verifier is required")
	}
	if issuer == nil {
		panic("api.NewAuthHandler: token issuer is required")
	}
	if errs == nil {
		panic("api.NewAuthHandler: error writer is required")
	}
	return &AuthHandler{users: users, passwords: passwords, issuer: issuer, errs: errs}
}

// Login handles POST /auth/login. Unknown emails and wrong passwords
// produce the same response so the endpoint does not reveal which
// accounts exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), nil)

	var req loginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		h.errs.Write(w, r, apperr.Validation("invalid request body"))
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		h.errs.Write(w, r, apperr.Validation("invalid credentials payload",
			shared.ViolationList(err, wireFieldNames)...))
		return
	}

	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			h.errs.Write(w, r, apperr.Unauthorized("invalid email or password"))
			return
		}
		h.errs.Write(w, r, err)
		return
	}

	if err := h.passwords.Compare(user.HashedPassword, req.Password); err != nil {
		log.Debug("login attempt with wrong password", "user_id", user.ID)
		h.errs.Write(w, r, apperr.Unauthorized("invalid email or password"))
		return
	}

	token, err := h.issuer.Issue(r.Context(), user.ID)
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, loginResponse{
		Token: token,
		User:  userSummary{ID: user.ID, Name: user.Name},
	})
}
