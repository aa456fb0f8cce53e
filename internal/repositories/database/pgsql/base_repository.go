package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ponmobiz/ponmo_books_app/internal/apperrors"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(503, "failed to begin transaction", errors.Join(apperrors.ErrStorageUnavailable, err))
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint violation,
// optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// isConnectionError reports whether err indicates the database itself is
// unreachable rather than the statement being at fault. SQLSTATE classes:
// 08 connection exception, 53 insufficient resources, 57 operator intervention.
func isConnectionError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		class := pgErr.Code[:2]
		return class == "08" || class == "53" || class == "57"
	}
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "closed pool")
}

// classifyError wraps storage-level failures in the matching sentinel so
// callers can distinguish retryable outages from permanent errors.
func classifyError(err error) error {
	if isConnectionError(err) {
		return errors.Join(apperrors.ErrStorageUnavailable, err)
	}
	return err
}
