package services

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
)

// PaidActionSvc charges for billable actions and refunds them when the resource is deleted.
type PaidActionSvc interface {
	// Charge spends the configured cost of action. Insufficient credits is returned as an error
	// so that the caller can abort the action.
	Charge(ctx context.Context, userID string, action domain.PaidAction, resourceID string, metadata domain.Metadata) (*domain.ChargeResult, error)

	// Refund returns the cost of the action that created the resource. It never fails the
	// deletion: problems are reported through RefundResult.Refunded.
	Refund(ctx context.Context, userID string, resource domain.ResourceType, resourceID string, metadata domain.Metadata) *domain.RefundResult
}
