package errs

import (
	"errors"
	"fmt"
)

// ErrObjectNotFound is the sentinel error for all object lookup failures.
// Use errors.Is(err, ErrObjectNotFound) to classify errors of this kind.
var ErrObjectNotFound = errors.New("object not found")

// ObjectNotFoundError indicates that an object with the given identifier
// could not be found. ParamName describes which lookup parameter was used.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

// Error formats the error message. The short form is used when no cause is
// present; the long form includes the parameter name and the cause.
func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

// Unwrap returns the sentinel error to support errors.Is classification.
func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}
