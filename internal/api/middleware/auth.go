package middleware

import (
	"errors"
	"net/http"
	"strings"

	"taskflow/internal/api/shared"
	"taskflow/internal/platform/logger"
	"taskflow/internal/service/auth"
)

// Authenticate extracts the bearer token from the Authorization header,
// resolves it to a user through the verifier, and stores the user ID in
// the request context. Requests without a valid token never reach the
// protected handlers.
func Authenticate(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	if verifier == nil {
		panic("middleware.Authenticate: verifier is required")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContextOrDefault(r.Context(), nil)

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Debug("missing or malformed authorization header")
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"authentication token required")
				return
			}

			userID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				message := "invalid authentication token"
				if errors.Is(err, auth.ErrExpiredToken) {
					message = "authentication token expired"
				}
				log.Debug("token verification failed", "error", err)
				shared.RespondWithError(w, r, http.StatusUnauthorized, message)
				return
			}

			ctx := shared.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken splits an Authorization header of the form
// "Bearer <token>" and reports whether a non-empty token was present.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
