package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/platform/metrics"
	"github.com/bilgisen/bookshall-sub000/internal/platform/pricing"
)

const signaturePrefix = "sha256="

// billingWebhookService grants subscription allotments from billing provider events.
type billingWebhookService struct {
	BaseService
	secret   []byte
	userRepo portsrepo.UserRepositoryFacade
	credits  portssvc.CreditWriterSvc
	prices   *pricing.Table
	metrics  *metrics.Metrics
}

// NewBillingWebhookService creates a webhook service. An empty secret rejects every signature.
func NewBillingWebhookService(secret string, userRepo portsrepo.UserRepositoryFacade, credits portssvc.CreditWriterSvc, prices *pricing.Table, m *metrics.Metrics) portssvc.BillingWebhookSvc {
	return &billingWebhookService{
		secret:   []byte(secret),
		userRepo: userRepo,
		credits:  credits,
		prices:   prices,
		metrics:  m,
	}
}

var _ portssvc.BillingWebhookSvc = (*billingWebhookService)(nil)

// SignPayload returns the signature header value for payload, in the form sha256=<hex>.
func SignPayload(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

func (s *billingWebhookService) VerifySignature(payload []byte, signatureHeader string) error {
	if len(s.secret) == 0 {
		return fmt.Errorf("webhook secret not configured: %w", apperrors.ErrUnauthorized)
	}
	hexSig, ok := strings.CutPrefix(strings.TrimSpace(signatureHeader), signaturePrefix)
	if !ok {
		return fmt.Errorf("malformed signature header: %w", apperrors.ErrUnauthorized)
	}
	got, err := hex.DecodeString(hexSig)
	if err != nil {
		return fmt.Errorf("malformed signature: %w", apperrors.ErrUnauthorized)
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return fmt.Errorf("signature mismatch: %w", apperrors.ErrUnauthorized)
	}
	return nil
}

func (s *billingWebhookService) HandleEvent(ctx context.Context, event domain.BillingEvent) (*domain.WebhookOutcome, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("event_id", event.ID),
		slog.String("event_type", event.Type))
	outcome := &domain.WebhookOutcome{EventID: event.ID}

	if !event.GrantsCredits() {
		logger.Info("Billing event ignored", slog.String("status", event.Data.Status))
		outcome.Note = "event does not grant credits"
		s.metrics.ObserveWebhookEvent(event.Type, false)
		return outcome, nil
	}

	user, err := s.resolveUser(ctx, event.Data)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Billing event for unknown customer",
				slog.String("customer_id", event.Data.CustomerID))
			outcome.Note = "unknown customer"
			s.metrics.ObserveWebhookEvent(event.Type, false)
			return outcome, nil
		}
		return nil, fmt.Errorf("failed to resolve billing customer: %w", err)
	}
	outcome.UserID = user.UserID

	allotment, ok := s.prices.PlanAllotment(event.Data.PlanID)
	if !ok || allotment == 0 {
		logger.Warn("Billing event for plan without allotment", slog.String("plan_id", event.Data.PlanID))
		outcome.Note = "unknown plan"
		s.metrics.ObserveWebhookEvent(event.Type, false)
		return outcome, nil
	}

	res, err := s.credits.EarnCredits(ctx, user.UserID, allotment, event.SubscriptionReason(), subscriptionMetadata(event))
	if err != nil {
		return nil, err
	}

	logger.Info("Subscription allotment granted",
		slog.String("user_id", user.UserID),
		slog.String("plan_id", event.Data.PlanID),
		slog.Int64("credits", allotment))
	s.metrics.ObserveWebhookEvent(event.Type, true)

	outcome.Processed = true
	outcome.CreditsGranted = allotment
	outcome.Balance = res.Balance
	return outcome, nil
}

// resolveUser finds the subscriber by billing customer id, then by email. An email match
// links the customer id so later events resolve directly.
func (s *billingWebhookService) resolveUser(ctx context.Context, data domain.SubscriptionData) (*domain.User, error) {
	if data.CustomerID != "" {
		user, err := s.userRepo.FindUserByBillingCustomerID(ctx, data.CustomerID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if data.Email == "" {
		return nil, apperrors.ErrNotFound
	}

	user, err := s.userRepo.FindUserByEmail(ctx, data.Email)
	if err != nil {
		return nil, err
	}
	if data.CustomerID != "" && user.BillingCustomerID == "" {
		if err := s.userRepo.LinkBillingCustomer(ctx, user.UserID, data.CustomerID); err != nil {
			s.LogError(ctx, err, "Failed to link billing customer",
				slog.String("user_id", user.UserID),
				slog.String("customer_id", data.CustomerID))
		} else {
			user.BillingCustomerID = data.CustomerID
		}
	}
	return user, nil
}

func subscriptionMetadata(event domain.BillingEvent) domain.Metadata {
	return domain.Metadata{
		"eventId":        event.ID,
		"subscriptionId": event.Data.SubscriptionID,
		"planId":         event.Data.PlanID,
		"billingCycle":   event.Data.BillingCycle,
		"amount":         event.Data.Amount.String(),
		"currency":       event.Data.Currency,
		"status":         event.Data.Status,
	}
}
