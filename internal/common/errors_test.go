package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestFromDatabase(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"no rows", pgx.ErrNoRows, KindNotFound},
		{"wrapped no rows", fmt.Errorf("query: %w", pgx.ErrNoRows), KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, KindDuplicateKey},
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"other pg error", &pgconn.PgError{Code: "23503"}, KindInternal},
		{"plain error", errors.New("connection refused"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDatabase(tt.err, "widget")
			assert.Equal(t, tt.want, KindOf(got))
		})
	}
}

func TestFromDatabaseNil(t *testing.T) {
	assert.NoError(t, FromDatabase(nil, "widget"))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFoundError("widget")))
	assert.Equal(t, KindInvalidInput, KindOf(InvalidInputError("bad")))
	assert.Equal(t, KindPartialFailure, KindOf(PartialFailureError("half done", nil)))
	assert.Equal(t, KindInternal, KindOf(errors.New("anything")))

	wrapped := fmt.Errorf("outer: %w", DuplicateKeyError("sku"))
	assert.Equal(t, KindDuplicateKey, KindOf(wrapped))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := PartialFailureError("write failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "write failed")
	assert.Contains(t, err.Error(), "disk full")
}
