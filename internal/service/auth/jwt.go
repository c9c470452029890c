package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAuthority signs and verifies HMAC-SHA256 tokens carrying the user
// id as the subject claim. It implements both TokenVerifier and
// TokenIssuer so a single instance serves the middleware and the login
// endpoint.
type JWTAuthority struct {
	signingKey []byte
	lifetime   time.Duration
	// timeFunc is injectable for tests.
	timeFunc func() time.Time
}

var (
	_ TokenVerifier = (*JWTAuthority)(nil)
	_ TokenIssuer   = (*JWTAuthority)(nil)
)

// NewJWTAuthority builds a JWT authority from the signing secret and the
// token lifetime. The secret must be at least 32 bytes.
func NewJWTAuthority(secret string, lifetime time.Duration) (*JWTAuthority, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	return &JWTAuthority{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		timeFunc:   time.Now,
	}, nil
}

// Issue implements TokenIssuer.
func (a *JWTAuthority) Issue(_ context.Context, userID int64) (string, error) {
	now := a.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.lifetime)),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify implements TokenVerifier.
func (a *JWTAuthority) Verify(_ context.Context, tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return a.timeFunc() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpiredToken
		}
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID < 1 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
