package services

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
)

// CreditReaderSvc defines read operations on the credit ledger.
// Every error returned is an *apperrors.CreditSystemError.
type CreditReaderSvc interface {
	// GetBalance returns the current balance, initialising it on first access.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// GetBalanceWithDetails returns the balance together with its last update time and currency label.
	GetBalanceWithDetails(ctx context.Context, userID string) (*domain.BalanceDetails, error)

	// GetTransactionHistory returns one page of the user's ledger, newest first.
	GetTransactionHistory(ctx context.Context, userID string, filter domain.HistoryFilter) (*domain.TransactionHistory, error)

	// GetCreditSummary returns lifetime earned and spent totals plus the live balance.
	GetCreditSummary(ctx context.Context, userID string) (*domain.CreditSummary, error)
}

// CreditWriterSvc defines mutating operations on the credit ledger.
// Each call is one atomic unit: the balance change and its ledger entry commit together or not at all.
type CreditWriterSvc interface {
	// EarnCredits adds amount to the balance and records an earn entry.
	EarnCredits(ctx context.Context, userID string, amount int64, reason string, metadata domain.Metadata) (*domain.OperationResult, error)

	// SpendCredits subtracts amount and records a spend entry, failing with INSUFFICIENT_CREDITS
	// when the balance does not cover it.
	SpendCredits(ctx context.Context, userID string, amount int64, reason string, metadata domain.Metadata) (*domain.OperationResult, error)
}

// CreditSvcFacade combines all credit-related service interfaces
type CreditSvcFacade interface {
	CreditReaderSvc
	CreditWriterSvc
}
