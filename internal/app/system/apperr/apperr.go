// Package apperr defines the typed error kinds surfaced by the GraphQL layer.
//
// Every failure a caller can observe maps to exactly one Kind. The Kind is
// exposed to clients as extensions.code so they never have to match on the
// human-readable message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind string

const (
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindNotFound           Kind = "NOT_FOUND"
	KindNoFieldsProvided   Kind = "NO_FIELDS_PROVIDED"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindEmailTaken         Kind = "EMAIL_TAKEN"
	KindRateLimited        Kind = "RATE_LIMITED"
)

// Error is an operation-level failure with a stable Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause; logged, never shown to clients
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can write errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Extensions implements graphql-go's extension hook. The map is copied into
// the "extensions" member of the GraphQL error.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.Kind)}
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated, Message: "Authentication Error. Please sign in."}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "Invalid Credentials"}
	ErrNotFound           = &Error{Kind: KindNotFound, Message: "not found"}
	ErrNoFieldsProvided   = &Error{Kind: KindNoFieldsProvided, Message: "no fields provided to update"}
	ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable, Message: "storage unavailable, please try again"}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrEmailTaken         = &Error{Kind: KindEmailTaken, Message: "a user with this email already exists"}
	ErrRateLimited        = &Error{Kind: KindRateLimited, Message: "too many attempts"}
)

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports that an entity id did not resolve, e.g. NotFound("Project").
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Invalid %s ID provided", entity)}
}

// InvalidInput reports a malformed or missing input value.
func InvalidInput(format string, args ...interface{}) *Error {
	return New(KindInvalidInput, format, args...)
}

// NoFieldsProvided reports an update call that names nothing to update.
func NoFieldsProvided(fields ...string) *Error {
	return &Error{
		Kind:    KindNoFieldsProvided,
		Message: fmt.Sprintf("Please provide at least one of %v to update", fields),
	}
}

// Storage wraps a repository failure. The cause is kept for logging only.
func Storage(err error) *Error {
	return &Error{Kind: KindStorageUnavailable, Message: ErrStorageUnavailable.Message, Err: err}
}

// RateLimited reports a throttled request with a caller-facing reason.
func RateLimited(reason string) *Error {
	return &Error{Kind: KindRateLimited, Message: reason}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
