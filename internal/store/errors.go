package store

import (
	"errors"
	"fmt"
)

// Error is a storage-layer error with a stable sentinel for errors.Is checks.
type Error struct {
	Message string
	Err     error // underlying cause (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same message, so sentinel variants created
// with WithCause still satisfy errors.Is against the sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Message == t.Message
	}
	return false
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Message: e.Message, Err: err}
}

// Sentinel errors. Services translate these into domain error codes;
// anything else coming out of the store is treated as a transient
// store failure and surfaced without retry.
var (
	ErrNotFound      = &Error{Message: "not found"}
	ErrAlreadyExists = &Error{Message: "already exists"}
)
