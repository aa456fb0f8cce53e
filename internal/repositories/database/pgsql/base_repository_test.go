package pgsql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
)

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"connection exception class", &pgconn.PgError{Code: "08006"}, true},
		{"insufficient resources class", &pgconn.PgError{Code: "53300"}, true},
		{"operator intervention class", &pgconn.PgError{Code: "57P01"}, true},
		{"constraint violation is not connection", &pgconn.PgError{Code: "23505"}, false},
		{"zero-value pg error", &pgconn.PgError{}, false},
		{"short code", &pgconn.PgError{Code: "5"}, false},
		{"dial failure string", errors.New("dial tcp: connection refused"), true},
		{"unrelated error", errors.New("no rows"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isConnectionError(tt.err))
		})
	}
}

func TestClassifyError(t *testing.T) {
	outage := classifyError(&pgconn.PgError{Code: "08001"})
	assert.ErrorIs(t, outage, apperrors.ErrStorageUnavailable)

	plain := errors.New("syntax error")
	assert.Equal(t, plain, classifyError(plain))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: idempotencyKeyConstraint}
	assert.True(t, isUniqueViolation(dup, idempotencyKeyConstraint))
	assert.True(t, isUniqueViolation(dup, ""))
	assert.False(t, isUniqueViolation(dup, "some_other_constraint"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
}
