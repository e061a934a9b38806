package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
)

// EarnCreditsRequest grants credits. UserID defaults to the caller when empty.
type EarnCreditsRequest struct {
	UserID   string          `json:"userId"`
	Amount   int64           `json:"amount" binding:"required,gt=0" example:"500"`
	Reason   string          `json:"reason" binding:"required,notblank" example:"ADMIN_GRANT"`
	Metadata domain.Metadata `json:"metadata" binding:"omitempty,flatmetadata" swaggertype:"object"`
}

// HistoryQuery holds the query parameters of the transaction history endpoints.
// Dates are RFC3339 and inclusive.
type HistoryQuery struct {
	Limit     int    `form:"limit,default=10" binding:"min=1,max=100"`
	Offset    int    `form:"offset,default=0" binding:"min=0"`
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// ToHistoryFilter converts the query to a domain filter.
func (q HistoryQuery) ToHistoryFilter() (domain.HistoryFilter, error) {
	filter := domain.HistoryFilter{Limit: q.Limit, Offset: q.Offset}
	var err error
	if filter.StartDate, err = parseOptionalTime(q.StartDate); err != nil {
		return filter, fmt.Errorf("startDate: %w", err)
	}
	if filter.EndDate, err = parseOptionalTime(q.EndDate); err != nil {
		return filter, fmt.Errorf("endDate: %w", err)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, fmt.Errorf("endDate must not be before startDate")
	}
	return filter, nil
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// BalanceQuery holds the query parameters of the balance endpoints.
// Include is a comma separated list of "history" and "summary".
type BalanceQuery struct {
	Include string `form:"include"`
}

// Includes reports whether part was requested.
func (q BalanceQuery) Includes(part string) bool {
	for _, p := range strings.Split(q.Include, ",") {
		if strings.EqualFold(strings.TrimSpace(p), part) {
			return true
		}
	}
	return false
}

// BalanceResponse is the balance of one user, optionally with recent history and totals.
type BalanceResponse struct {
	domain.BalanceDetails
	History *domain.TransactionHistory `json:"history,omitempty"`
	Summary *domain.CreditSummary      `json:"summary,omitempty"`
}

// EarnCreditsResponse is returned by a successful grant.
type EarnCreditsResponse struct {
	Balance     int64                     `json:"balance"`
	Transaction *domain.CreditTransaction `json:"transaction,omitempty"`
}

// ToEarnCreditsResponse converts a service result to the response shape.
func ToEarnCreditsResponse(res *domain.OperationResult) EarnCreditsResponse {
	return EarnCreditsResponse{Balance: res.Balance, Transaction: res.Transaction}
}
