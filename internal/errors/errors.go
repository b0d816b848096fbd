package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeAuthentication indicates the upstream rejected credentials or the
	// session is no longer valid. Message is user-displayable.
	ErrCodeAuthentication ErrorCode = "authentication"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeTransport indicates a network failure or an unexpected upstream
	// status outside the handled 401 path.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeNotFound indicates a resource was not found upstream.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeInternal indicates an internal client error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError is a structured application error with a code, message, and
// optional cause. It supports errors.Is and errors.As through Unwrap.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Authentication creates a new Authentication error carrying a
// user-displayable message.
func Authentication(message string) *AppError {
	return &AppError{Code: ErrCodeAuthentication, Message: message}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Transport creates a new Transport error.
func Transport(message string) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: message}
}

// Transportf creates a new Transport error with formatted message.
func Transportf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsAuthentication checks if an error is an Authentication error.
func IsAuthentication(err error) bool {
	return isCode(err, ErrCodeAuthentication)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
