package models

import "time"

// UserBalance is a row of user_balances.
type UserBalance struct {
	UserID    string    `db:"user_id"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CreditTransaction is a row of credit_transactions.
// Metadata is stored as JSONB and decoded into a generic map.
type CreditTransaction struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Type      string         `db:"type"`
	Amount    int64          `db:"amount"`
	Reason    string         `db:"reason"`
	Metadata  map[string]any `db:"metadata"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
