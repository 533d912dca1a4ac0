package appointments

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// ConflictError means another non-canceled appointment sits inside the
// owner's configured gap window. The message names the gap so the caller can
// show it as is.
type ConflictError struct {
	GapMinutes int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("another appointment is within %d minutes of that time", e.GapMinutes)
}

// ErrNotOwner is returned whenever the target appointment belongs to a
// different user, regardless of whether it exists from the caller's point of
// view.
var ErrNotOwner = errors.New("appointment belongs to a different user")
