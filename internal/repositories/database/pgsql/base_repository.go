package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxAttemptCount = 3

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so statement helpers can run in or out of a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
	log  *slog.Logger
}

// withTX runs fn inside a transaction. The deferred rollback is a no-op once the transaction is committed.
func withTX[T any](ctx context.Context, r *BaseRepository,
	fn func(ctx context.Context, tx pgx.Tx) (T, error),
) (T, error) {
	var zero T

	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return zero, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.log.LogAttrs(ctx,
				slog.LevelError,
				"failed to rollback transaction",
				slog.String("error", rbErr.Error()),
			)
		}
	}()

	res, err := fn(ctx, tx)
	if err != nil {
		return zero, err
	}

	if err = tx.Commit(ctx); err != nil {
		return zero, apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return res, nil
}

// withRetry re-runs op while it fails with a transient database error.
func withRetry[T any](ctx context.Context, log *slog.Logger, op func() (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		res, err := op()
		if err == nil {
			return res, nil
		}
		if !isRetryableError(err) {
			return zero, err
		}
		if attempt+1 >= maxAttemptCount {
			return zero, fmt.Errorf("giving up after %d attempts: %w", attempt+1, err)
		}

		delay := retryDelay(attempt)
		log.LogAttrs(ctx,
			slog.LevelWarn,
			"retrying database operation",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)
		select {
		case <-ctx.Done():
			return zero, errors.Join(err, ctx.Err())
		case <-time.After(delay):
		}
	}
}

// retryDelay is 50ms, 150ms, 250ms for attempts 0, 1, 2.
func retryDelay(attempt int) time.Duration {
	return time.Duration(attempt*2+1) * 50 * time.Millisecond
}

// isRetryableError reports errors after which nothing of the unit of work was applied.
// Connection-class SQLSTATEs are left out: a COMMIT may have gone through before the link broke.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure,
			pgerrcode.DeadlockDetected:
			return true
		}
		return false
	}
	return pgconn.SafeToRetry(err)
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
