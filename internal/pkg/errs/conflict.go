package errs

import (
	"errors"
	"fmt"
)

// ErrConflict is the sentinel error for transaction conflicts.
// A conflict means another operation committed a change to a document this
// operation read; the whole read-compute-write unit may be retried.
var ErrConflict = errors.New("transaction conflict")

// ConflictError indicates that an atomic operation lost a serialization race.
// Attempts records how many times the unit was tried before giving up;
// zero means the conflict is being surfaced before any retry accounting.
type ConflictError struct {
	Operation string
	Attempts  int
	Cause     error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(operation string, attempts int) *ConflictError {
	return &ConflictError{
		Operation: operation,
		Attempts:  attempts,
	}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(operation string, attempts int, cause error) *ConflictError {
	return &ConflictError{
		Operation: operation,
		Attempts:  attempts,
		Cause:     cause,
	}
}

// Error formats the error message, appending the cause when present.
func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s after %d attempts (cause: %s)",
			ErrConflict, e.Operation, e.Attempts, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s after %d attempts", ErrConflict, e.Operation, e.Attempts))
}

// Unwrap returns the sentinel error to support errors.Is classification.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
