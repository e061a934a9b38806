package pgsql

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// pgxCreditTx scopes ledger writes to one open transaction.
type pgxCreditTx struct {
	tx   pgx.Tx
	repo *PgxCreditRepository
}

var _ portsrepo.CreditTxRepository = (*pgxCreditTx)(nil)

func (t *pgxCreditTx) LockUserBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	if err := t.repo.ensureUserBalance(ctx, t.tx, userID); err != nil {
		return nil, err
	}
	return selectBalance(ctx, t.tx, selectBalanceForUpdateQuery, userID)
}

func (t *pgxCreditTx) IncrementUserBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	if err := t.repo.ensureUserBalance(ctx, t.tx, userID); err != nil {
		return 0, err
	}
	return incrementBalance(ctx, t.tx, userID, delta)
}

func (t *pgxCreditTx) CreateTransaction(ctx context.Context, txn domain.CreditTransaction) (*domain.CreditTransaction, error) {
	return insertTransaction(ctx, t.tx, txn)
}
