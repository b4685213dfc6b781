// Package errors provides structured errors with stable codes for the
// gobarman CLI. Codes allow callers and tests to match on error categories
// without parsing message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Output errors
	ErrUnsupportedCommand ErrorCode = "UNSUPPORTED_COMMAND"
	ErrUnknownWriter      ErrorCode = "UNKNOWN_WRITER"

	// Catalog errors
	ErrServerNotFound ErrorCode = "SERVER_NOT_FOUND"
	ErrBackupNotFound ErrorCode = "BACKUP_NOT_FOUND"
	ErrCatalogAccess  ErrorCode = "CATALOG_ACCESS"
	ErrCatalogParse   ErrorCode = "CATALOG_PARSE"
)

// BarmanError represents a structured error with code and details
type BarmanError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BarmanError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BarmanError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BarmanError) Is(target error) bool {
	var targetErr *BarmanError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BarmanError with the given code and message
func New(code ErrorCode, message string) *BarmanError {
	return &BarmanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BarmanError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BarmanError {
	return &BarmanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BarmanError
func Wrap(err error, code ErrorCode, message string) *BarmanError {
	if err == nil {
		return nil
	}
	return &BarmanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BarmanError {
	if err == nil {
		return nil
	}
	return &BarmanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error and returns it for chaining
func (e *BarmanError) WithDetail(key string, value interface{}) *BarmanError {
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown
// for errors that are not BarmanErrors
func GetCode(err error) ErrorCode {
	var barmanErr *BarmanError
	if errors.As(err, &barmanErr) {
		return barmanErr.Code
	}
	return ErrUnknown
}

// IsCode checks whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
