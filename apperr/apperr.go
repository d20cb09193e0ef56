// Package apperr defines the error taxonomy surfaced by the API.
//
// Every business error wraps one of the sentinel kinds below, so callers can
// branch with errors.Is while the message stays user-displayable.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound - the entity is absent.
	ErrNotFound = errors.New("not found")
	// ErrForbidden - the entity exists but the caller does not own it, or the role is wrong.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation - the request payload is malformed or inconsistent.
	ErrValidation = errors.New("validation failed")
	// ErrIllegalTransition - the requested status change violates the flow.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrPreconditionFailed - the target entity is in a state that rejects the operation.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrConflict - a uniqueness constraint would be violated.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized - the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error couples a sentinel kind with a user-displayable message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

func Forbidden(msg string) error { return &Error{Kind: ErrForbidden, Message: msg} }

func Validation(msg string) error { return &Error{Kind: ErrValidation, Message: msg} }

func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }

func IllegalTransition(msg string) error {
	return &Error{Kind: ErrIllegalTransition, Message: msg}
}

func PreconditionFailed(msg string) error {
	return &Error{Kind: ErrPreconditionFailed, Message: msg}
}

var httpStatus = map[error]int{
	ErrNotFound:           http.StatusNotFound,
	ErrForbidden:          http.StatusForbidden,
	ErrValidation:         http.StatusBadRequest,
	ErrIllegalTransition:  http.StatusUnprocessableEntity,
	ErrPreconditionFailed: http.StatusBadRequest,
	ErrConflict:           http.StatusConflict,
	ErrUnauthorized:       http.StatusUnauthorized,
}

// HTTPStatus maps an error to the response code for its kind.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	for kind, status := range httpStatus {
		if errors.Is(err, kind) {
			return status
		}
	}
	return http.StatusInternalServerError
}
