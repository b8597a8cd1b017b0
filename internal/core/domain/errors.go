package domain

import (
	"errors"
	"fmt"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrStoreUnavailable marks failures of the backing store itself
	// (unreachable, misconfigured, timed out). Never returned for a
	// missing record.
	ErrStoreUnavailable = errors.New("record store unavailable")

	// ErrValidation is the sentinel all ValidationError values wrap, so
	// callers can match the whole class with errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports malformed input attributable to a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a field-level validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
