package services

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
)

// ReconciliationSvc compares cached balances with the sum of their ledgers.
type ReconciliationSvc interface {
	CheckUser(ctx context.Context, userID string) (*domain.ReconciliationReport, error)
	CheckAll(ctx context.Context) (*domain.ReconciliationReport, error)
}
