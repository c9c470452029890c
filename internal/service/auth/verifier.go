// Package auth resolves bearer tokens to user identities and issues
// tokens at login. Identity resolution is pluggable: the static verifier
// reproduces the historical stub, the JWT verifier does real HMAC-SHA256
// token validation when a signing secret is configured.
package auth

import (
	"context"
	"errors"
)

// Common authentication errors.
var (
	// ErrInvalidToken indicates the token is malformed, unsigned by us,
	// or carries no usable identity.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (int64, error)
}

// TokenIssuer produces the token handed out at login for a given user.
type TokenIssuer interface {
	Issue(ctx context.Context, userID int64) (string, error)
}

// Static token literals kept from the original stub.
const (
	StaticAdminToken = "admin-token"
	StaticUserToken  = "user-token"
)

// StaticVerifier is the stand-in identity resolver: the admin token maps
// to user 1, any other non-empty token to user 2.
type StaticVerifier struct{}

var _ TokenVerifier = StaticVerifier{}

// Verify implements TokenVerifier.
func (StaticVerifier) Verify(_ context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidToken
	}
	if token == StaticAdminToken {
		return 1, nil
	}
	return 2, nil
}

// StaticIssuer hands out the fixed token literals.
type StaticIssuer struct{}

var _ TokenIssuer = StaticIssuer{}

// Issue implements TokenIssuer.
func (StaticIssuer) Issue(_ context.Context, userID int64) (string, error) {
	if userID == 1 {
		return StaticAdminToken, nil
	}
	return StaticUserToken, nil
}
