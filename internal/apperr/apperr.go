// Package apperr defines the error taxonomy shared by the order, cart and
// HTTP layers. Expected conditions (not found, invalid state, bad input) are
// sentinel errors checked with errors.Is; infrastructure failures are wrapped
// with ErrStore so callers can distinguish them from contract errors.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced order/product/partner does not exist
	// where existence is required.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates the operation is not legal in the entity's
	// current lifecycle state, e.g. mutating a placed order.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation indicates a structural precondition was violated.
	// Recoverable by the caller correcting input.
	ErrValidation = errors.New("validation failed")

	// ErrStore indicates the underlying persistence or catalog call failed.
	ErrStore = errors.New("store failure")
)

// NotFoundf wraps ErrNotFound with a formatted reason.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// InvalidStatef wraps ErrInvalidState with a formatted reason.
func InvalidStatef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidState)...)
}

// Validationf wraps ErrValidation with a human-readable reason.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Store wraps an infrastructure error with ErrStore. The cause stays in the
// chain so callers can still match it, e.g. context.DeadlineExceeded.
func Store(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, err, ErrStore)
}
