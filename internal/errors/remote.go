package errors

import (
	"errors"
	"fmt"
)

// RemoteError is a non-success HTTP response from the platform. It keeps the
// provider's status code and raw body for diagnostics; callers classify it by
// status rather than parsing the body.
type RemoteError struct {
	// Op names the remote call that failed (e.g. "exchange code").
	Op string
	// Status is the HTTP status code returned by the provider.
	Status int
	// Body is the raw response body, possibly truncated.
	Body string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: [%d] %s", e.Op, e.Status, e.Body)
}

// Remote creates a RemoteAuth AppError wrapping a RemoteError.
func Remote(op string, status int, body string) *AppError {
	return &AppError{
		Code:    ErrCodeRemoteAuth,
		Message: fmt.Sprintf("%s failed", op),
		Cause:   &RemoteError{Op: op, Status: status, Body: body},
	}
}

// RemoteStatus extracts the provider status code from err, or 0 when err does
// not wrap a RemoteError.
func RemoteStatus(err error) int {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Status
	}
	return 0
}
