package validate

import (
	"errors"
	"fmt"
)

// ErrValidationFailed is the sentinel every chain failure wraps; use
// errors.As with *ValidationError to recover which check failed.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError reports the failing check and the reason.
type ValidationError struct {
	Check  string
	Reason string
}

func newValidationError(check, reason string) *ValidationError {
	return &ValidationError{Check: check, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Check, e.Reason)
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error { return ErrValidationFailed }
