package domain

import "strings"

// PaidAction names a business action that costs credits. It doubles as the ledger reason.
type PaidAction string

const (
	ActionBookCreation    PaidAction = "BOOK_CREATION"
	ActionChapterCreation PaidAction = "CHAPTER_CREATION"
	ActionEbookPublishing PaidAction = "EBOOK_PUBLISHING"
)

// ResourceType is the kind of resource whose lifecycle events drive charges and refunds.
type ResourceType string

const (
	ResourceBook    ResourceType = "book"
	ResourceChapter ResourceType = "chapter"
	ResourceEbook   ResourceType = "ebook"
)

// PaidAction returns the action charged when a resource of this type is created.
func (r ResourceType) PaidAction() (PaidAction, bool) {
	switch r {
	case ResourceBook:
		return ActionBookCreation, true
	case ResourceChapter:
		return ActionChapterCreation, true
	case ResourceEbook:
		return ActionEbookPublishing, true
	}
	return "", false
}

// RefundReason is the ledger reason used when a resource of this type is deleted,
// e.g. REFUND_BOOK_DELETION.
func (r ResourceType) RefundReason() string {
	return "REFUND_" + strings.ToUpper(string(r)) + "_DELETION"
}

// ResourceEventKind is the lifecycle transition reported for a resource.
type ResourceEventKind string

const (
	ResourceCreated ResourceEventKind = "created"
	ResourceDeleted ResourceEventKind = "deleted"
)

// ChargeResult describes a successful paid action.
type ChargeResult struct {
	Action      PaidAction         `json:"action"`
	Cost        int64              `json:"cost"`
	Balance     int64              `json:"balance"`
	Transaction *CreditTransaction `json:"transaction,omitempty"`
}

// RefundResult describes the outcome of a deletion refund. A failed refund is reported, not raised.
type RefundResult struct {
	Refunded      bool   `json:"refunded"`
	Amount        int64  `json:"amount"`
	Balance       int64  `json:"balance,omitempty"`
	Reason        string `json:"reason"`
	CorrelationID string `json:"correlationId,omitempty"`
}
