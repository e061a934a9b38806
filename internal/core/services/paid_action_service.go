package services

import (
	"context"
	"log/slog"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/platform/metrics"
	"github.com/bilgisen/bookshall-sub000/internal/platform/pricing"
)

// paidActionService turns billable resource lifecycle events into ledger entries.
type paidActionService struct {
	BaseService
	credits portssvc.CreditWriterSvc
	prices  *pricing.Table
	metrics *metrics.Metrics
}

// NewPaidActionService creates a paid action service. m may be nil.
func NewPaidActionService(credits portssvc.CreditWriterSvc, prices *pricing.Table, m *metrics.Metrics) portssvc.PaidActionSvc {
	return &paidActionService{credits: credits, prices: prices, metrics: m}
}

var _ portssvc.PaidActionSvc = (*paidActionService)(nil)

func (s *paidActionService) Charge(ctx context.Context, userID string, action domain.PaidAction, resourceID string, metadata domain.Metadata) (*domain.ChargeResult, error) {
	cost, ok := s.prices.Cost(action)
	if !ok {
		return nil, apperrors.NewUnknownActionError(string(action))
	}

	res, err := s.credits.SpendCredits(ctx, userID, cost, string(action), withResource(metadata, resourceID, action))
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Paid action charged",
		slog.String("user_id", userID),
		slog.String("action", string(action)),
		slog.String("resource_id", resourceID),
		slog.Int64("cost", cost))
	return &domain.ChargeResult{
		Action:      action,
		Cost:        cost,
		Balance:     res.Balance,
		Transaction: res.Transaction,
	}, nil
}

func (s *paidActionService) Refund(ctx context.Context, userID string, resource domain.ResourceType, resourceID string, metadata domain.Metadata) *domain.RefundResult {
	reason := resource.RefundReason()
	logger := s.GetLogger(ctx).With(
		slog.String("user_id", userID),
		slog.String("resource_type", string(resource)),
		slog.String("resource_id", resourceID))

	action, ok := resource.PaidAction()
	if !ok {
		logger.Warn("Refund skipped for unknown resource type")
		s.metrics.IncRefundFailures()
		return &domain.RefundResult{Reason: reason}
	}
	cost, ok := s.prices.Cost(action)
	if !ok {
		logger.Warn("Refund skipped for unpriced action", slog.String("action", string(action)))
		s.metrics.IncRefundFailures()
		return &domain.RefundResult{Reason: reason}
	}

	res, err := s.credits.EarnCredits(ctx, userID, cost, reason, withResource(metadata, resourceID, action))
	if err != nil {
		out := &domain.RefundResult{Amount: cost, Reason: reason}
		attrs := []any{slog.String("error", err.Error()), slog.Int64("amount", cost)}
		if cse, ok := apperrors.AsCreditSystemError(err); ok {
			out.CorrelationID = cse.CorrelationID
			attrs = append(attrs, slog.String("code", cse.Code), slog.String("correlation_id", cse.CorrelationID))
		}
		// The deletion goes ahead; the missing refund is left for manual reconciliation.
		logger.Error("Refund failed", attrs...)
		s.metrics.IncRefundFailures()
		return out
	}

	logger.Info("Deletion refunded", slog.Int64("amount", cost))
	return &domain.RefundResult{
		Refunded: true,
		Amount:   cost,
		Balance:  res.Balance,
		Reason:   reason,
	}
}

// withResource copies metadata and tags it with the resource and action.
func withResource(metadata domain.Metadata, resourceID string, action domain.PaidAction) domain.Metadata {
	out := make(domain.Metadata, len(metadata)+2)
	for k, v := range metadata {
		out[k] = v
	}
	out["resourceId"] = resourceID
	out["action"] = string(action)
	return out
}
