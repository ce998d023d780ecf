package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAuthRequired indicates the action needs a signed-in user.
	ErrAuthRequired = errors.New("authentication required")
)

// ValidationError carries a server or client business-rule rejection. The
// message is surfaced to the user verbatim and the action is not retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports a status change requested from an incompatible
// state. Current and Action are set when the check happened locally; a
// server-side rejection only carries Message.
type TransitionError struct {
	Current Status
	Action  Action
	Message string
}

func (e *TransitionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("cannot %s a sub-order in status %q", e.Action, e.Current)
}

// NetworkError wraps a transport failure or a non-2xx response without a
// structured body. Callers surface it as a generic retry-suggesting message.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
