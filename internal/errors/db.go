package errors

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapDBError maps database errors to AppError instances:
// - pgx.ErrNoRows → NotFound
// - serialization/deadlock failures → Persistence (retryable by the caller)
// - context timeouts/cancellations → Timeout/Canceled
// - anything else → Persistence
//
// If the error is nil it returns nil.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "store operation timed out", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "store operation canceled", Cause: err}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{Code: ErrCodeNotFound, Message: "record not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return &AppError{Code: ErrCodePersistence, Message: "store contention", Cause: err}
		case pgerrcode.UniqueViolation:
			return &AppError{Code: ErrCodeValidation, Message: "record already exists", Cause: err}
		}
	}

	return &AppError{Code: ErrCodePersistence, Message: "store operation failed", Cause: err}
}
