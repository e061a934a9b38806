package domain

import "github.com/shopspring/decimal"

// Billing event types that grant a plan allotment.
const (
	BillingEventSubscriptionActive  = "subscription.active"
	BillingEventSubscriptionRenewed = "subscription.renewed"
)

// SubscriptionStatusActive is the only status that grants credits.
const SubscriptionStatusActive = "active"

// BillingEvent is the ledger-facing subset of a billing provider webhook.
type BillingEvent struct {
	ID   string           `json:"id"`
	Type string           `json:"type"`
	Data SubscriptionData `json:"data"`
}

// SubscriptionData describes the subscription a billing event refers to.
type SubscriptionData struct {
	SubscriptionID string          `json:"subscriptionId"`
	CustomerID     string          `json:"customerId"`
	Email          string          `json:"email"`
	PlanID         string          `json:"planId"`
	BillingCycle   string          `json:"billingCycle"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
}

// GrantsCredits reports whether the event should credit the subscriber.
func (e BillingEvent) GrantsCredits() bool {
	if e.Type != BillingEventSubscriptionActive && e.Type != BillingEventSubscriptionRenewed {
		return false
	}
	return e.Data.Status == SubscriptionStatusActive
}

// SubscriptionReason is the ledger reason for a plan allotment, e.g. subscription_pro.
func (e BillingEvent) SubscriptionReason() string {
	return "subscription_" + e.Data.PlanID
}

// WebhookOutcome reports what a billing event did to the ledger.
type WebhookOutcome struct {
	EventID        string `json:"eventId"`
	Processed      bool   `json:"processed"`
	UserID         string `json:"userId,omitempty"`
	CreditsGranted int64  `json:"creditsGranted,omitempty"`
	Balance        int64  `json:"balance,omitempty"`
	Note           string `json:"note,omitempty"`
}
