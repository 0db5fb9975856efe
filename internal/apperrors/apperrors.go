package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every error crossing a service boundary wraps exactly one
// of these sentinels so handlers can map it to an HTTP status with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Error carries a human-readable message together with its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...interface{}) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a NotFoundError with a formatted message.
func NotFound(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Conflict builds a ConflictError with a formatted message.
func Conflict(format string, args ...interface{}) error {
	return &Error{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

// Internal builds an InternalError wrapping an unexpected failure.
// The underlying detail stays in the message for logs; handlers must not
// forward it to callers.
func Internal(format string, args ...interface{}) error {
	return &Error{kind: ErrInternal, msg: fmt.Sprintf(format, args...)}
}

// StatusCode maps an error to the HTTP status its kind corresponds to.
// Unclassified errors surface as 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
