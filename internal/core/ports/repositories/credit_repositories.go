package repositories

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
)

// CreditReader defines read operations over balances and the ledger
type CreditReader interface {
	// GetUserBalance returns the balance row, creating it with the starting balance on first access.
	GetUserBalance(ctx context.Context, userID string) (*domain.Balance, error)

	// GetTransactionHistory returns a newest-first page and the total number of matching entries.
	GetTransactionHistory(ctx context.Context, userID string, filter domain.HistoryFilter) ([]domain.CreditTransaction, int, error)

	// GetCreditSummary sums earned and spent amounts. Missing types count as zero.
	GetCreditSummary(ctx context.Context, userID string) (*domain.CreditTotals, error)
}

// CreditWriter defines standalone ledger writes, each in its own transaction
type CreditWriter interface {
	// UpdateUserBalance atomically adds delta to the balance and returns the new value.
	UpdateUserBalance(ctx context.Context, userID string, delta int64) (int64, error)

	// CreateTransaction appends one ledger entry with a generated id and timestamps.
	CreateTransaction(ctx context.Context, txn domain.CreditTransaction) (*domain.CreditTransaction, error)
}

// CreditReconciler compares cached balances with ledger sums
type CreditReconciler interface {
	// GetLedgerPosition returns the position of one user, or apperrors.ErrNotFound when no balance row exists.
	GetLedgerPosition(ctx context.Context, userID string) (*domain.LedgerPosition, error)

	// ListLedgerPositions returns the position of every user with a balance row.
	ListLedgerPositions(ctx context.Context) ([]domain.LedgerPosition, error)
}

// CreditRepositoryFacade combines all credit-related repository interfaces
type CreditRepositoryFacade interface {
	CreditReader
	CreditWriter
	CreditUnitOfWork
	CreditReconciler
}
