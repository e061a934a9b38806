package repositories

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
)

// CreditTxFunc is the body of a ledger unit of work. Returning an error rolls the unit back.
// The function may be invoked more than once when the unit is retried after a transient failure.
type CreditTxFunc func(ctx context.Context, tx CreditTxRepository) error

// CreditUnitOfWork runs a function inside one database transaction.
type CreditUnitOfWork interface {
	RunInTx(ctx context.Context, fn CreditTxFunc) error
}

// CreditTxRepository exposes the ledger writes that must share one transaction.
type CreditTxRepository interface {
	// LockUserBalance ensures the balance row exists and locks it until the transaction ends.
	LockUserBalance(ctx context.Context, userID string) (*domain.Balance, error)

	// IncrementUserBalance ensures the balance row exists and adds delta in one statement.
	IncrementUserBalance(ctx context.Context, userID string, delta int64) (int64, error)

	// CreateTransaction appends one ledger entry.
	CreateTransaction(ctx context.Context, txn domain.CreditTransaction) (*domain.CreditTransaction, error)
}
