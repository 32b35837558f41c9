package errs

import (
	"errors"
	"fmt"
)

// ErrVersionIsInvalid is the sentinel error for all version validation failures.
var ErrVersionIsInvalid = errors.New("version is invalid")

// VersionIsInvalidError indicates that a document version check failed,
// typically when reconstructing an aggregate from persistence.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
	}
}

// Error formats the error message, appending the cause when present.
func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

// Unwrap returns the sentinel error to support errors.Is classification.
func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}
