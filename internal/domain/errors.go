package domain

import (
	"errors"
	"fmt"
)

// Validation error codes surfaced to the client.
const (
	CodeArchetypeRequired = "archetype-required"
	CodeNoHabitsSelected  = "no-habits"
	CodeEmptyHabitName    = "empty-name"
	CodeEmptyDays         = "empty-days"
	CodeInvalidDay        = "invalid-day"
	CodeInvalidTime       = "invalid-time"
	CodeInvalidStep       = "invalid-step"
	CodeUnknownArchetype  = "unknown-archetype"
	CodeUnknownAccessory  = "unknown-accessory"
)

// ValidationError blocks a state transition. The wizard state is unchanged
// and the user can correct the input and retry.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError is an infrastructure failure during commit. The controller
// stays in the Commit step so the same payload can be retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Retryable is always true: the payload is still in memory and no partial
// write happened.
func (e *PersistenceError) Retryable() bool {
	return true
}

func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// ErrCommitInFlight rejects a second Commit while one is outstanding.
var ErrCommitInFlight = errors.New("commit already in progress")

// ErrSessionNotFound is returned for unknown or expired wizard sessions.
var ErrSessionNotFound = errors.New("onboarding session not found")
