package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared across services and repositories. Controllers branch
// on these with errors.Is to pick the HTTP status; anything else is treated
// as an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrNotRegistered      = errors.New("not registered for this event")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError reports one message per failed input field. It is always a
// client error (400-class).
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// NewValidationError returns a ValidationError with the given field messages.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
