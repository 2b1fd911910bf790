package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error for transport mapping.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindConflict       Kind = "conflict"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindExhausted      Kind = "exhausted"
	KindUnavailable    Kind = "unavailable"
	KindInternal       Kind = "internal"
)

// Error is the error type returned by the application layer.
// Message is safe to show to clients; Err is kept for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind so callers can write errors.Is(err, apperror.ErrNotFound).
// A conflict is also a validation failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind == t.Kind {
		return true
	}
	return e.Kind == KindConflict && t.Kind == KindValidation
}

var (
	ErrValidation     = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrConflict       = &Error{Kind: KindConflict, Message: "already exists"}
	ErrAuthentication = &Error{Kind: KindAuthentication, Message: "invalid credentials"}
	ErrNotFound       = &Error{Kind: KindNotFound, Message: "not found"}
	ErrExhausted      = &Error{Kind: KindExhausted, Message: "retries exhausted"}
	ErrUnavailable    = &Error{Kind: KindUnavailable, Message: "service unavailable"}
)

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

func Authentication(msg string, cause error) error {
	return &Error{Kind: KindAuthentication, Message: msg, Err: cause}
}

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

func Exhausted(msg string, cause error) error {
	return &Error{Kind: KindExhausted, Message: msg, Err: cause}
}

func Unavailable(msg string) error { return &Error{Kind: KindUnavailable, Message: msg} }

func Internal(msg string, cause error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// PublicMessage returns the client-facing message for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
