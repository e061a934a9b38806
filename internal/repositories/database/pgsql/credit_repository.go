package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	"github.com/bilgisen/bookshall-sub000/internal/models"
	"github.com/bilgisen/bookshall-sub000/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultHistoryLimit    = 10
	defaultMaxHistoryLimit = 100
)

// CreditRepositoryOptions configures ledger behaviour that is policy rather than schema.
type CreditRepositoryOptions struct {
	// StartingBalance is granted, as an INITIAL_BALANCE earn entry, when a balance row is first created.
	StartingBalance int64
	// MaxHistoryLimit caps the page size of GetTransactionHistory.
	MaxHistoryLimit int
}

// PgxCreditRepository implements the ledger on PostgreSQL.
type PgxCreditRepository struct {
	BaseRepository
	startingBalance int64
	maxHistoryLimit int
}

// NewCreditRepository creates a PgxCreditRepository.
func NewCreditRepository(pool *pgxpool.Pool, opts CreditRepositoryOptions, logger *slog.Logger) *PgxCreditRepository {
	if opts.MaxHistoryLimit <= 0 {
		opts.MaxHistoryLimit = defaultMaxHistoryLimit
	}
	if opts.StartingBalance < 0 {
		opts.StartingBalance = 0
	}
	return &PgxCreditRepository{
		BaseRepository:  BaseRepository{Pool: pool, log: logger},
		startingBalance: opts.StartingBalance,
		maxHistoryLimit: opts.MaxHistoryLimit,
	}
}

var _ portsrepo.CreditRepositoryFacade = (*PgxCreditRepository)(nil)

const (
	balanceExistsQuery = `SELECT EXISTS (SELECT 1 FROM user_balances WHERE user_id = $1);`

	ensureUserQuery = `
		INSERT INTO users (user_id, created_at, updated_at)
		VALUES ($1, $2, $2)
		ON CONFLICT (user_id) DO NOTHING;`

	insertBalanceQuery = `
		INSERT INTO user_balances (user_id, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO NOTHING;`

	selectBalanceQuery = `
		SELECT user_id, balance, created_at, updated_at
		FROM user_balances
		WHERE user_id = $1;`

	selectBalanceForUpdateQuery = `
		SELECT user_id, balance, created_at, updated_at
		FROM user_balances
		WHERE user_id = $1
		FOR UPDATE;`

	incrementBalanceQuery = `
		UPDATE user_balances
		SET balance = balance + $2, updated_at = $3
		WHERE user_id = $1
		RETURNING balance;`

	insertTransactionQuery = `
		INSERT INTO credit_transactions (id, user_id, type, amount, reason, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7);`

	historyWhere = `
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)`

	countHistoryQuery = `SELECT COUNT(*) FROM credit_transactions` + historyWhere + `;`

	selectHistoryQuery = `
		SELECT id, user_id, type, amount, reason, metadata, created_at, updated_at
		FROM credit_transactions` + historyWhere + `
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5;`

	summaryQuery = `
		SELECT type, COALESCE(SUM(amount), 0)::BIGINT
		FROM credit_transactions
		WHERE user_id = $1
		GROUP BY type;`

	ledgerPositionsQuery = `
		SELECT b.user_id, b.balance,
		       COALESCE(SUM(CASE WHEN t.type = 'earn' THEN t.amount ELSE -t.amount END), 0)::BIGINT
		FROM user_balances b
		LEFT JOIN credit_transactions t ON t.user_id = b.user_id
		WHERE ($1::text IS NULL OR b.user_id = $1)
		GROUP BY b.user_id, b.balance
		ORDER BY b.user_id;`
)

// ensureUserBalance creates the balance row on first touch. Concurrent first touches are
// serialised by the primary key: exactly one insert wins and only the winner records the
// starting balance in the ledger.
func (r *PgxCreditRepository) ensureUserBalance(ctx context.Context, q querier, userID string) error {
	var exists bool
	if err := q.QueryRow(ctx, balanceExistsQuery, userID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check balance row for user %s: %w", userID, err)
	}
	if exists {
		return nil
	}

	now := time.Now().UTC()
	// The user directory is owned elsewhere; a stub row keeps the foreign keys satisfied until it syncs.
	if _, err := q.Exec(ctx, ensureUserQuery, userID, now); err != nil {
		return fmt.Errorf("failed to ensure user %s: %w", userID, err)
	}

	tag, err := q.Exec(ctx, insertBalanceQuery, userID, r.startingBalance, now)
	if err != nil {
		return fmt.Errorf("failed to create balance row for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 || r.startingBalance == 0 {
		return nil
	}

	_, err = insertTransaction(ctx, q, domain.CreditTransaction{
		UserID:   userID,
		Type:     domain.TransactionTypeEarn,
		Amount:   r.startingBalance,
		Reason:   domain.ReasonInitialBalance,
		Metadata: domain.Metadata{"source": "starting_balance"},
	})
	return err
}

func selectBalance(ctx context.Context, q querier, query, userID string) (*domain.Balance, error) {
	var m models.UserBalance
	err := q.QueryRow(ctx, query, userID).Scan(&m.UserID, &m.Balance, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read balance for user %s: %w", userID, err)
	}
	b := mapping.ToDomainBalance(m)
	return &b, nil
}

func incrementBalance(ctx context.Context, q querier, userID string, delta int64) (int64, error) {
	var newBalance int64
	err := q.QueryRow(ctx, incrementBalanceQuery, userID, delta, time.Now().UTC()).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("balance row missing for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to update balance for user %s: %w", userID, err)
	}
	return newBalance, nil
}

// insertTransaction fills in the id and timestamps. Ids are UUIDv7 so that ties on
// created_at still sort in insertion order.
func insertTransaction(ctx context.Context, q querier, txn domain.CreditTransaction) (*domain.CreditTransaction, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction id: %w", err)
	}
	now := time.Now().UTC()
	txn.ID = id.String()
	txn.CreatedAt = now
	txn.UpdatedAt = now

	m := mapping.ToModelCreditTransaction(txn)
	_, err = q.Exec(ctx, insertTransactionQuery,
		m.ID,
		m.UserID,
		m.Type,
		m.Amount,
		m.Reason,
		m.Metadata,
		m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s transaction for user %s: %w", txn.Type, txn.UserID, err)
	}
	stored := mapping.ToDomainCreditTransaction(m)
	return &stored, nil
}

// GetUserBalance reads the balance row, creating it with the starting balance when absent.
func (r *PgxCreditRepository) GetUserBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	b, err := selectBalance(ctx, r.Pool, selectBalanceQuery, userID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return withRetry(ctx, r.log, func() (*domain.Balance, error) {
		return withTX(ctx, &r.BaseRepository, func(ctx context.Context, tx pgx.Tx) (*domain.Balance, error) {
			if err := r.ensureUserBalance(ctx, tx, userID); err != nil {
				return nil, err
			}
			return selectBalance(ctx, tx, selectBalanceQuery, userID)
		})
	})
}

// UpdateUserBalance adds delta to the balance in its own transaction.
func (r *PgxCreditRepository) UpdateUserBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	return withRetry(ctx, r.log, func() (int64, error) {
		return withTX(ctx, &r.BaseRepository, func(ctx context.Context, tx pgx.Tx) (int64, error) {
			if err := r.ensureUserBalance(ctx, tx, userID); err != nil {
				return 0, err
			}
			return incrementBalance(ctx, tx, userID, delta)
		})
	})
}

// CreateTransaction appends one ledger entry outside of any unit of work.
func (r *PgxCreditRepository) CreateTransaction(ctx context.Context, txn domain.CreditTransaction) (*domain.CreditTransaction, error) {
	return insertTransaction(ctx, r.Pool, txn)
}

// GetTransactionHistory returns one page of history and the total count, read in a single batch.
func (r *PgxCreditRepository) GetTransactionHistory(ctx context.Context, userID string, filter domain.HistoryFilter) ([]domain.CreditTransaction, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > r.maxHistoryLimit {
		limit = r.maxHistoryLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	batch := &pgx.Batch{}
	batch.Queue(countHistoryQuery, userID, filter.StartDate, filter.EndDate)
	batch.Queue(selectHistoryQuery, userID, filter.StartDate, filter.EndDate, limit, offset)

	br := r.Pool.SendBatch(ctx, batch)
	defer func() {
		if err := br.Close(); err != nil {
			r.log.LogAttrs(ctx, slog.LevelWarn, "failed to close history batch", slog.String("error", err.Error()))
		}
	}()

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for user %s: %w", userID, err)
	}

	rows, err := br.Query()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	modelTxns, err := pgx.CollectRows(rows, scanCreditTransaction)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan transactions for user %s: %w", userID, err)
	}

	return mapping.ToDomainCreditTransactionSlice(modelTxns), total, nil
}

func scanCreditTransaction(row pgx.CollectableRow) (models.CreditTransaction, error) {
	var m models.CreditTransaction
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Type,
		&m.Amount,
		&m.Reason,
		&m.Metadata,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// GetCreditSummary sums earned and spent amounts with one grouped aggregate.
func (r *PgxCreditRepository) GetCreditSummary(ctx context.Context, userID string) (*domain.CreditTotals, error) {
	rows, err := r.Pool.Query(ctx, summaryQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit summary for user %s: %w", userID, err)
	}
	defer rows.Close()

	totals := &domain.CreditTotals{}
	for rows.Next() {
		var (
			txnType string
			sum     int64
		)
		if err := rows.Scan(&txnType, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan credit summary row: %w", err)
		}
		switch domain.TransactionType(txnType) {
		case domain.TransactionTypeEarn:
			totals.Earned = sum
		case domain.TransactionTypeSpend:
			totals.Spent = sum
		}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating credit summary rows: %w", rows.Err())
	}
	return totals, nil
}

// GetLedgerPosition compares one user's cached balance with its ledger sum.
func (r *PgxCreditRepository) GetLedgerPosition(ctx context.Context, userID string) (*domain.LedgerPosition, error) {
	positions, err := r.queryLedgerPositions(ctx, &userID)
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &positions[0], nil
}

// ListLedgerPositions compares every cached balance with its ledger sum.
func (r *PgxCreditRepository) ListLedgerPositions(ctx context.Context) ([]domain.LedgerPosition, error) {
	return r.queryLedgerPositions(ctx, nil)
}

func (r *PgxCreditRepository) queryLedgerPositions(ctx context.Context, userID *string) ([]domain.LedgerPosition, error) {
	rows, err := r.Pool.Query(ctx, ledgerPositionsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger positions: %w", err)
	}
	positions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerPosition, error) {
		var p domain.LedgerPosition
		err := row.Scan(&p.UserID, &p.CachedBalance, &p.LedgerBalance)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger positions: %w", err)
	}
	return positions, nil
}

// RunInTx runs fn in one transaction, retrying the whole unit on transient failures.
func (r *PgxCreditRepository) RunInTx(ctx context.Context, fn portsrepo.CreditTxFunc) error {
	_, err := withRetry(ctx, r.log, func() (struct{}, error) {
		return withTX(ctx, &r.BaseRepository, func(ctx context.Context, tx pgx.Tx) (struct{}, error) {
			return struct{}{}, fn(ctx, &pgxCreditTx{tx: tx, repo: r})
		})
	})
	return err
}
