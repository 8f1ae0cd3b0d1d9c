// internal/domain/faults/faults.go

// Package faults defines the error taxonomy shared by the stores and the
// HTTP layer. Every recoverable failure in a mutating operation is one of
// five kinds; handlers map kinds onto status codes and never inspect error
// strings.
package faults

import "errors"

// Kind sentinels. Stores wrap these with context via New/errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error carries a caller-facing message alongside its kind. The kind is
// reachable through errors.Is; the message is safe to return to clients.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind sentinel for errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// New builds a fault of the given kind with a client-safe message.
func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Validation, NotFound, Conflict, Forbidden and Unauthorized are shorthands
// for New with the matching kind.
func Validation(msg string) error   { return New(ErrValidation, msg) }
func NotFound(msg string) error     { return New(ErrNotFound, msg) }
func Conflict(msg string) error     { return New(ErrConflict, msg) }
func Forbidden(msg string) error    { return New(ErrForbidden, msg) }
func Unauthorized(msg string) error { return New(ErrUnauthorized, msg) }

// Message returns the client-safe message for a fault, or fallback when the
// error is not a fault (unexpected errors must not leak internals).
func Message(err error, fallback string) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.msg
	}
	return fallback
}

// IsFault reports whether err belongs to the taxonomy.
func IsFault(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrUnauthorized)
}
