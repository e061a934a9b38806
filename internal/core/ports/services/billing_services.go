package services

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
)

// BillingWebhookSvc applies billing provider events to the ledger.
type BillingWebhookSvc interface {
	// VerifySignature checks the signature header against the raw request body.
	VerifySignature(payload []byte, signatureHeader string) error

	// HandleEvent grants plan allotments for active subscriptions. Events that cannot be
	// attributed to a user or plan are acknowledged with Processed=false.
	HandleEvent(ctx context.Context, event domain.BillingEvent) (*domain.WebhookOutcome, error)
}
