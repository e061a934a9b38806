package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/platform/metrics"
	"github.com/bilgisen/bookshall-sub000/internal/utils"
	"github.com/bilgisen/bookshall-sub000/internal/utils/pagination"
)

const (
	opGetBalance = "get_balance"
	opEarn       = "earn"
	opSpend      = "spend"
	opHistory    = "history"
	opSummary    = "summary"

	eventCreditsEarned = "credits_earned"
	eventCreditsSpent  = "credits_spent"
)

// creditService implements the CreditSvcFacade interface.
// It is the only place where repository errors are translated to CreditSystemError.
type creditService struct {
	BaseService
	creditRepo      portsrepo.CreditRepositoryFacade
	maxHistoryLimit int
	metrics         *metrics.Metrics
	analytics       *utils.PosthogClientWrapper
}

// CreditServiceOption is a functional option for configuring the credit service
type CreditServiceOption func(*creditService)

// WithCreditMetrics records ledger operations on m.
func WithCreditMetrics(m *metrics.Metrics) CreditServiceOption {
	return func(s *creditService) {
		s.metrics = m
	}
}

// WithCreditAnalytics sends credits_earned and credits_spent events.
func WithCreditAnalytics(client *utils.PosthogClientWrapper) CreditServiceOption {
	return func(s *creditService) {
		s.analytics = client
	}
}

// WithMaxHistoryLimit caps the page size of GetTransactionHistory.
func WithMaxHistoryLimit(limit int) CreditServiceOption {
	return func(s *creditService) {
		if limit > 0 {
			s.maxHistoryLimit = limit
		}
	}
}

// NewCreditService creates a new credit service with the provided options
func NewCreditService(repo portsrepo.CreditRepositoryFacade, options ...CreditServiceOption) portssvc.CreditSvcFacade {
	svc := &creditService{
		creditRepo:      repo,
		maxHistoryLimit: 100,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

func (s *creditService) GetBalance(ctx context.Context, userID string) (int64, error) {
	b, err := s.creditRepo.GetUserBalance(ctx, userID)
	if err != nil {
		return 0, s.databaseError(ctx, opGetBalance, userID, err)
	}
	return b.Balance, nil
}

func (s *creditService) GetBalanceWithDetails(ctx context.Context, userID string) (*domain.BalanceDetails, error) {
	b, err := s.creditRepo.GetUserBalance(ctx, userID)
	if err != nil {
		return nil, s.databaseError(ctx, opGetBalance, userID, err)
	}

	details := &domain.BalanceDetails{
		UserID:   b.UserID,
		Balance:  b.Balance,
		Currency: domain.CreditCurrency,
	}
	if !b.UpdatedAt.IsZero() {
		lastUpdated := b.UpdatedAt.UTC()
		details.LastUpdated = &lastUpdated
	}
	return details, nil
}

func (s *creditService) EarnCredits(ctx context.Context, userID string, amount int64, reason string, metadata domain.Metadata) (*domain.OperationResult, error) {
	if err := validateEntry(amount, reason); err != nil {
		return nil, s.rejected(ctx, opEarn, userID, err)
	}

	var result domain.OperationResult
	err := s.creditRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.CreditTxRepository) error {
		newBalance, err := tx.IncrementUserBalance(ctx, userID, amount)
		if err != nil {
			return err
		}
		txn, err := tx.CreateTransaction(ctx, domain.CreditTransaction{
			UserID:   userID,
			Type:     domain.TransactionTypeEarn,
			Amount:   amount,
			Reason:   reason,
			Metadata: metadata,
		})
		if err != nil {
			return err
		}
		result = domain.OperationResult{Balance: newBalance, Transaction: txn}
		return nil
	})
	if err != nil {
		return nil, s.transactionError(ctx, opEarn, userID, err)
	}

	s.committed(ctx, opEarn, eventCreditsEarned, userID, amount, reason, result.Balance)
	return &result, nil
}

func (s *creditService) SpendCredits(ctx context.Context, userID string, amount int64, reason string, metadata domain.Metadata) (*domain.OperationResult, error) {
	if err := validateEntry(amount, reason); err != nil {
		return nil, s.rejected(ctx, opSpend, userID, err)
	}

	var result domain.OperationResult
	err := s.creditRepo.RunInTx(ctx, func(ctx context.Context, tx portsrepo.CreditTxRepository) error {
		// The row lock is held until commit, so the check and the decrement see the same balance.
		current, err := tx.LockUserBalance(ctx, userID)
		if err != nil {
			return err
		}
		if current.Balance < amount {
			return apperrors.NewInsufficientCreditsError(current.Balance, amount)
		}

		newBalance, err := tx.IncrementUserBalance(ctx, userID, -amount)
		if err != nil {
			return err
		}
		txn, err := tx.CreateTransaction(ctx, domain.CreditTransaction{
			UserID:   userID,
			Type:     domain.TransactionTypeSpend,
			Amount:   amount,
			Reason:   reason,
			Metadata: metadata,
		})
		if err != nil {
			return err
		}
		result = domain.OperationResult{Balance: newBalance, Transaction: txn}
		return nil
	})
	if err != nil {
		return nil, s.transactionError(ctx, opSpend, userID, err)
	}

	s.committed(ctx, opSpend, eventCreditsSpent, userID, amount, reason, result.Balance)
	return &result, nil
}

func (s *creditService) GetTransactionHistory(ctx context.Context, userID string, filter domain.HistoryFilter) (*domain.TransactionHistory, error) {
	filter.Limit, filter.Offset = pagination.Normalize(filter.Limit, filter.Offset, s.maxHistoryLimit)

	txns, total, err := s.creditRepo.GetTransactionHistory(ctx, userID, filter)
	if err != nil {
		return nil, s.databaseError(ctx, opHistory, userID, err)
	}
	if txns == nil {
		txns = []domain.CreditTransaction{}
	}

	return &domain.TransactionHistory{
		Transactions: txns,
		Total:        total,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
		HasMore:      pagination.HasMore(filter.Offset, filter.Limit, total),
	}, nil
}

func (s *creditService) GetCreditSummary(ctx context.Context, userID string) (*domain.CreditSummary, error) {
	// The balance read seeds a first-time user, so it must precede the aggregate.
	b, err := s.creditRepo.GetUserBalance(ctx, userID)
	if err != nil {
		return nil, s.databaseError(ctx, opSummary, userID, err)
	}
	totals, err := s.creditRepo.GetCreditSummary(ctx, userID)
	if err != nil {
		return nil, s.databaseError(ctx, opSummary, userID, err)
	}

	return &domain.CreditSummary{
		Earned:    totals.Earned,
		Spent:     totals.Spent,
		Available: b.Balance,
		Currency:  domain.CreditCurrency,
	}, nil
}

func validateEntry(amount int64, reason string) *apperrors.CreditSystemError {
	if amount <= 0 {
		return apperrors.NewInvalidAmountError(amount)
	}
	if strings.TrimSpace(reason) == "" {
		return apperrors.NewInvalidReasonError()
	}
	return nil
}

func (s *creditService) rejected(ctx context.Context, op, userID string, cse *apperrors.CreditSystemError) error {
	s.LogWarn(ctx, "Credit operation rejected",
		slog.String("operation", op),
		slog.String("user_id", userID),
		slog.String("code", cse.Code),
		slog.String("error", cse.Message))
	s.metrics.ObserveCreditOperation(op, cse.Code)
	return cse
}

// transactionError passes business failures through and hides everything else behind TRANSACTION_FAILED.
func (s *creditService) transactionError(ctx context.Context, op, userID string, err error) error {
	if cse, ok := apperrors.AsCreditSystemError(err); ok {
		return s.rejected(ctx, op, userID, cse)
	}
	cse := apperrors.NewTransactionFailedError(err)
	s.LogError(ctx, err, "Credit transaction failed",
		slog.String("operation", op),
		slog.String("user_id", userID),
		slog.String("correlation_id", cse.CorrelationID))
	s.metrics.ObserveCreditOperation(op, cse.Code)
	return cse
}

func (s *creditService) databaseError(ctx context.Context, op, userID string, err error) error {
	cse := apperrors.NewDatabaseError(err)
	s.LogError(ctx, err, "Credit ledger read failed",
		slog.String("operation", op),
		slog.String("user_id", userID),
		slog.String("correlation_id", cse.CorrelationID))
	s.metrics.ObserveCreditOperation(op, cse.Code)
	return cse
}

func (s *creditService) committed(ctx context.Context, op, event, userID string, amount int64, reason string, balance int64) {
	s.LogInfo(ctx, "Credit transaction committed",
		slog.String("operation", op),
		slog.String("user_id", userID),
		slog.Int64("amount", amount),
		slog.String("reason", reason),
		slog.Int64("balance", balance))
	s.metrics.ObserveCreditOperation(op, metrics.OutcomeSuccess)
	s.metrics.AddCreditVolume(op, amount)
	s.analytics.CaptureCreditEvent(userID, event, amount, balance, reason)
}
