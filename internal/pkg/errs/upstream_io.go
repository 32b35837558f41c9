package errs

import (
	"errors"
	"fmt"
)

// ErrUpstreamIO is the sentinel error for failures of external collaborators
// such as media storage or search indexing.
var ErrUpstreamIO = errors.New("upstream io failure")

// UpstreamIOError indicates that a call to an external collaborator failed
// before or outside the atomic unit; no document state was mutated.
type UpstreamIOError struct {
	Operation string
	Cause     error
}

// NewUpstreamIOError creates an UpstreamIOError without an underlying cause.
func NewUpstreamIOError(operation string) *UpstreamIOError {
	return &UpstreamIOError{
		Operation: operation,
	}
}

// NewUpstreamIOErrorWithCause creates an UpstreamIOError wrapping an underlying cause.
func NewUpstreamIOErrorWithCause(operation string, cause error) *UpstreamIOError {
	return &UpstreamIOError{
		Operation: operation,
		Cause:     cause,
	}
}

// Error formats the error message, appending the cause when present.
func (e *UpstreamIOError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrUpstreamIO, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrUpstreamIO, e.Operation))
}

// Unwrap returns the sentinel error to support errors.Is classification.
func (e *UpstreamIOError) Unwrap() error {
	return ErrUpstreamIO
}
