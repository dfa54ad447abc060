package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dokani-app/dokani_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// txDeadline bounds every write transaction. A transaction that cannot finish
// in this window is rolled back by context cancellation.
const txDeadline = 20 * time.Second

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// BeginTx starts a new database transaction with the write deadline applied.
// The returned cancel func must be deferred by the caller.
func (r *BaseRepository) BeginTx(ctx context.Context) (pgx.Tx, context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, txDeadline)
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		cancel()
		return nil, nil, nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, ctx, cancel, nil
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
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}
