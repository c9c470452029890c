package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the private key type for request context values.
type ContextKey string

const (
	// UserIDContextKey carries the authenticated caller's user id, set
	// by the auth middleware.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey carries the request trace id. Trace ids appear in logs
	// only; the response envelopes are closed shapes.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID attaches a fresh trace id to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID returns the trace id from the context, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// UserID returns the authenticated user id from the context. The second
// return is false when the auth middleware has not run.
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(int64)
	return userID, ok && userID > 0
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}
