package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// NewNotFoundError wraps ErrNotFound with a message.
func NewNotFoundError(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// NewValidationError wraps ErrValidation with a message.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// RateNotFoundError reports the currency pair for which no rate could be resolved.
// It matches ErrNotFound with errors.Is.
type RateNotFoundError struct {
	From string
	To   string
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("no exchange rate found for %s to %s", e.From, e.To)
}

// Is lets callers treat an unresolvable rate as a generic not-found condition.
func (e *RateNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
