// Package error defines domain-specific errors for the Habit Tracker application.
package error

import "errors"

// Habit domain errors.
var (
	// ErrInvalidArgument is returned when a habit field or completion date fails validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrHabitNotFound is returned when no habit with the given name exists in the collection.
	ErrHabitNotFound = errors.New("habit not found")

	// ErrHabitAlreadyExists is returned when a habit name is already taken in the collection.
	ErrHabitAlreadyExists = errors.New("habit already exists")
)

// HabitErrorCode defines error codes for habit errors.
// Format: HAB-XXYYYY where XX is category and YYYY is specific error.
type HabitErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidHabitName       HabitErrorCode = "HAB-010001"
	ErrCodeInvalidPeriodicity     HabitErrorCode = "HAB-010002"
	ErrCodeInvalidStartDate       HabitErrorCode = "HAB-010003"
	ErrCodeInvalidCompletionDate  HabitErrorCode = "HAB-010004"
	ErrCodeCompletionBeforeStart  HabitErrorCode = "HAB-010005"
	ErrCodeInvalidHabitRecord     HabitErrorCode = "HAB-010006"
	ErrCodeMissingHabitFields     HabitErrorCode = "HAB-010007"
	ErrCodeInvalidDateFormat      HabitErrorCode = "HAB-010008"

	// Collection errors (02XXXX)
	ErrCodeHabitNotFound      HabitErrorCode = "HAB-020001"
	ErrCodeHabitAlreadyExists HabitErrorCode = "HAB-020002"

	// Request errors (03XXXX)
	ErrCodeRateLimited HabitErrorCode = "HAB-030001"
)

// HabitError represents a habit error with code and message.
type HabitError struct {
	Code    HabitErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HabitError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *HabitError) Unwrap() error {
	return e.Err
}

// NewHabitError creates a new HabitError with the given code and message.
func NewHabitError(code HabitErrorCode, message string, err error) *HabitError {
	return &HabitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInvalidArgumentError creates a HabitError wrapping ErrInvalidArgument.
func NewInvalidArgumentError(code HabitErrorCode, message string) *HabitError {
	return NewHabitError(code, message, ErrInvalidArgument)
}
