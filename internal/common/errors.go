package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorKind classifies failures surfaced by the stores. Handlers map kinds to
// HTTP statuses; the kind of a store-level error is never rewritten on the way up.
type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindDuplicateKey   ErrorKind = "duplicate_key"
	KindInvalidInput   ErrorKind = "invalid_input"
	KindPartialFailure ErrorKind = "partial_failure"
	KindTimeout        ErrorKind = "timeout"
	KindInternal       ErrorKind = "internal"
)

// Error is the structured failure carried across the service boundary.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFoundError(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func DuplicateKeyError(field string) *Error {
	return &Error{Kind: KindDuplicateKey, Message: fmt.Sprintf("%s already exists", field)}
}

func InvalidInputError(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

func PartialFailureError(message string, err error) *Error {
	return &Error{Kind: KindPartialFailure, Message: message, Err: err}
}

func TimeoutError(operation string, err error) *Error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf("%s timed out", operation), Err: err}
}

// KindOf reports the kind of err, or KindInternal for anything unclassified.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// uniqueViolation is the SQLSTATE raised by Postgres on unique-index conflicts.
const uniqueViolation = "23505"

// FromDatabase translates driver-level errors into the error kinds the callers
// understand. The resource name feeds the NotFound/DuplicateKey messages.
func FromDatabase(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFoundError(resource)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TimeoutError(resource+" lookup", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return DuplicateKeyError(resource)
	}
	return &Error{Kind: KindInternal, Message: fmt.Sprintf("%s store error", resource), Err: err}
}
