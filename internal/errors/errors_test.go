package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "token record not found",
			},
			want: "token record not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to synchronize",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to synchronize: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{Code: ErrCodeInternal, Message: "wrapped", Cause: cause}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
	}{
		{"not found", NotFound("missing"), ErrCodeNotFound},
		{"validation", Validation("bad input"), ErrCodeValidation},
		{"csrf", CSRFMismatch("state mismatch"), ErrCodeCSRFMismatch},
		{"invalid response", InvalidResponse("not json", errors.New("html")), ErrCodeInvalidResponse},
		{"malformed identity", MalformedIdentity("missing username"), ErrCodeMalformedIdentity},
		{"persistence", Persistence("store down", errors.New("dial")), ErrCodePersistence},
		{"internal", Internal("boom", errors.New("cause")), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %v) = false, want true", tt.code)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NotFound("missing")); got != ErrCodeNotFound {
		t.Errorf("CodeOf(NotFound) = %v, want %v", got, ErrCodeNotFound)
	}
	// Wrapped AppErrors still classify.
	wrapped := fmt.Errorf("outer: %w", CSRFMismatch("mismatch"))
	if got := CodeOf(wrapped); got != ErrCodeCSRFMismatch {
		t.Errorf("CodeOf(wrapped) = %v, want %v", got, ErrCodeCSRFMismatch)
	}
	if got := CodeOf(errors.New("plain")); got != ErrCodeInternal {
		t.Errorf("CodeOf(plain) = %v, want %v", got, ErrCodeInternal)
	}
}

func TestRemote(t *testing.T) {
	err := Remote("exchange code", 429, `{"message":"rate limited"}`)
	if err.Code != ErrCodeRemoteAuth {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRemoteAuth)
	}
	if got := RemoteStatus(err); got != 429 {
		t.Errorf("RemoteStatus() = %d, want 429", got)
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatal("expected RemoteError cause")
	}
	if remoteErr.Body != `{"message":"rate limited"}` {
		t.Errorf("Body = %q", remoteErr.Body)
	}
	if got := RemoteStatus(errors.New("plain")); got != 0 {
		t.Errorf("RemoteStatus(plain) = %d, want 0", got)
	}
}
