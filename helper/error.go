package helper

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingConfig is returned when a required configuration value is absent.
	ErrMissingConfig = errors.New("missing required configuration")
	// ErrInvalidDocument is returned when a document fails structural validation.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvariantViolation marks programmer errors such as a feature value kind mismatch.
	ErrInvariantViolation = errors.New("invariant violation")
)

// NewError wraps err with the operation that failed.
// A nil err yields nil so call sites can wrap unconditionally.
func NewError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// InvariantViolation builds an error for an unrecoverable internal inconsistency.
func InvariantViolation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
