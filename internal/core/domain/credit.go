package domain

import "time"

// CreditCurrency is the unit label attached to every balance presented to callers.
const CreditCurrency = "credits"

// ReasonInitialBalance marks the ledger entry that records a seeded starting balance.
const ReasonInitialBalance = "INITIAL_BALANCE"

// TransactionType carries the direction of a ledger entry; amounts are always positive.
type TransactionType string

const (
	TransactionTypeEarn  TransactionType = "earn"
	TransactionTypeSpend TransactionType = "spend"
)

// Sign returns +1 for earn and -1 for spend.
func (t TransactionType) Sign() int64 {
	if t == TransactionTypeSpend {
		return -1
	}
	return 1
}

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeEarn || t == TransactionTypeSpend
}

// Metadata is an opaque document attached to a ledger entry. The ledger never interprets it.
type Metadata map[string]any

// Balance is the cached per-user projection of the transaction log.
type Balance struct {
	UserID    string    `json:"userId"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreditTransaction is one immutable ledger entry.
type CreditTransaction struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Type      TransactionType `json:"type"`
	Amount    int64           `json:"amount"`
	Reason    string          `json:"reason"`
	Metadata  Metadata        `json:"metadata"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SignedAmount is the entry's contribution to the balance.
func (t CreditTransaction) SignedAmount() int64 {
	return t.Type.Sign() * t.Amount
}

// OperationResult is returned by successful earn and spend operations.
type OperationResult struct {
	Balance     int64              `json:"balance"`
	Transaction *CreditTransaction `json:"transaction,omitempty"`
}

// BalanceDetails is the presentation shape of a balance.
type BalanceDetails struct {
	UserID      string     `json:"userId"`
	Balance     int64      `json:"balance"`
	LastUpdated *time.Time `json:"lastUpdated"`
	Currency    string     `json:"currency"`
}

// HistoryFilter selects a page of a user's transactions, newest first.
// StartDate and EndDate are inclusive bounds on creation time.
type HistoryFilter struct {
	Limit     int
	Offset    int
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionHistory is a page of transactions plus pagination bookkeeping.
type TransactionHistory struct {
	Transactions []CreditTransaction `json:"transactions"`
	Total        int                 `json:"total"`
	Limit        int                 `json:"limit"`
	Offset       int                 `json:"offset"`
	HasMore      bool                `json:"hasMore"`
}

// CreditTotals holds the per-type sums of a user's ledger.
type CreditTotals struct {
	Earned int64
	Spent  int64
}

// CreditSummary combines lifetime totals with the live balance.
type CreditSummary struct {
	Earned    int64  `json:"earned"`
	Spent     int64  `json:"spent"`
	Available int64  `json:"available"`
	Currency  string `json:"currency"`
}

// LedgerPosition compares the cached balance of a user with the sum of its ledger.
type LedgerPosition struct {
	UserID        string `json:"userId"`
	CachedBalance int64  `json:"cachedBalance"`
	LedgerBalance int64  `json:"ledgerBalance"`
}

// Drift is cached minus ledger; zero when the balance is consistent.
func (p LedgerPosition) Drift() int64 {
	return p.CachedBalance - p.LedgerBalance
}

// Consistent reports whether the cached balance matches the ledger.
func (p LedgerPosition) Consistent() bool {
	return p.Drift() == 0
}

// ReconciliationReport lists the users whose cached balance disagrees with their ledger.
type ReconciliationReport struct {
	CheckedAt time.Time        `json:"checkedAt"`
	Checked   int              `json:"checked"`
	Drifted   []LedgerPosition `json:"drifted"`
}

// HasDrift reports whether any checked balance was inconsistent.
func (r ReconciliationReport) HasDrift() bool {
	return len(r.Drifted) > 0
}
