// Package apperr defines the application's error taxonomy. Every component
// below the HTTP boundary raises one of these typed errors; the boundary
// interceptor in internal/api maps them to status codes and the uniform
// error envelope without leaking internal detail.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure. It is the tag of the error sum type: the
// boundary switches on the kind, never on dynamic error identity.
type Kind int

const (
	// KindInternal is the default for unclassified failures.
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindForbidden
	KindUnauthorized
)

// String returns the kind's name for logging.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code fixed for the kind.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a typed application failure. Message is safe to show to callers.
// Details carries field-level violation strings for validation failures.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	// Err is the wrapped cause, if any. Never serialized to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// NotFound reports that the named resource does not exist.
func NotFound(resource string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Validation reports one or more field-level violations. Callers checking
// several fields together must accumulate every violation into details
// rather than raising on the first.
func Validation(message string, details ...string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Details: details,
	}
}

// Forbidden reports an ownership or role violation.
func Forbidden(message string) *Error {
	return &Error{
		Kind:    KindForbidden,
		Message: message,
	}
}

// Unauthorized reports missing or malformed credentials.
func Unauthorized(message string) *Error {
	return &Error{
		Kind:    KindUnauthorized,
		Message: message,
	}
}

// Internal wraps an unclassified failure. The message shown to callers is
// generic; the cause stays in the logs.
func Internal(message string, err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// From extracts the typed error from err's chain. The second return is
// false when err carries no *Error, in which case the boundary treats it
// as an unclassified 500.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries a typed error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := From(err)
	return ok && appErr.Kind == kind
}
