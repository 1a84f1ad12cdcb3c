package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeCSRFMismatch indicates the anti-forgery state returned by the
	// provider did not match the value held by the client.
	ErrCodeCSRFMismatch ErrorCode = "csrf_mismatch"
	// ErrCodeRemoteAuth indicates a non-success HTTP response from the platform.
	ErrCodeRemoteAuth ErrorCode = "remote_auth"
	// ErrCodeInvalidResponse indicates the platform returned a non-JSON response.
	ErrCodeInvalidResponse ErrorCode = "invalid_response"
	// ErrCodeMalformedIdentity indicates a decoded identity payload is missing
	// required fields.
	ErrCodeMalformedIdentity ErrorCode = "malformed_identity"
	// ErrCodePersistence indicates the backing store is unreachable or corrupt.
	ErrCodePersistence ErrorCode = "persistence"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and
// optional cause. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
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

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// CSRFMismatch creates a new CSRFMismatch error.
func CSRFMismatch(message string) *AppError {
	return &AppError{Code: ErrCodeCSRFMismatch, Message: message}
}

// InvalidResponse creates a new InvalidResponse error with the given cause.
func InvalidResponse(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeInvalidResponse, Message: message, Cause: cause}
}

// MalformedIdentity creates a new MalformedIdentity error.
func MalformedIdentity(message string) *AppError {
	return &AppError{Code: ErrCodeMalformedIdentity, Message: message}
}

// Persistence creates a new Persistence error wrapping the given cause.
func Persistence(message string, cause error) *AppError {
	return &AppError{Code: ErrCodePersistence, Message: message, Cause: cause}
}

// Internal creates a new Internal error wrapping the given cause.
func Internal(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Cause: cause}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal when err is not
// an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
