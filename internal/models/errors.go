package models

import (
	"errors"
	"fmt"
)

// ErrGeometryConflict is returned when a committed geometry batch would
// overlap another zone or leave the canvas. During interactive drags
// conflicts are silently dropped per tick; this error only surfaces for
// discrete commit commands.
var ErrGeometryConflict = errors.New("geometry conflicts with canvas bounds or another zone")

// ErrCascadeNotAcknowledged is returned when a delete would remove
// descendants but the caller did not pass the cascade acknowledgment flag.
var ErrCascadeNotAcknowledged = errors.New("node has descendants; cascade delete must be acknowledged")

// ValidationError reports a rejected hierarchy mutation. It always names the
// offending field and is surfaced before any state change is applied.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// CapacityViolation reports a stock assignment that would exceed a bin's
// capacity. The mutation is rejected, never silently truncated.
type CapacityViolation struct {
	BinCode   string `json:"bin_code"`
	Capacity  int    `json:"capacity"`
	Requested int    `json:"requested"`
}

func (e *CapacityViolation) Error() string {
	return fmt.Sprintf("bin %s: requested stock %d exceeds capacity %d", e.BinCode, e.Requested, e.Capacity)
}

// AsCapacityViolation unwraps err into a *CapacityViolation if it is one.
func AsCapacityViolation(err error) (*CapacityViolation, bool) {
	var cv *CapacityViolation
	if errors.As(err, &cv) {
		return cv, true
	}
	return nil, false
}
