package apperrors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Machine-readable ledger failure codes.
const (
	CodeInvalidAmount        = "INVALID_AMOUNT"
	CodeInsufficientCredits  = "INSUFFICIENT_CREDITS"
	CodeInvalidReason        = "INVALID_REASON"
	CodeUnknownAction        = "UNKNOWN_ACTION"
	CodeTransactionFailed    = "TRANSACTION_FAILED"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeUnknownDatabaseError = "UNKNOWN_DATABASE_ERROR"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrTransactionFailed   = errors.New("credit transaction failed")
	ErrDatabase            = errors.New("database error")
)

// CreditSystemError is the single error type returned by the credit service.
// Code is stable and meant for programmatic branching; Details is safe to show to callers.
type CreditSystemError struct {
	Message       string
	Code          string
	Details       map[string]any
	CorrelationID string
	Err           error
}

func (e *CreditSystemError) Error() string {
	return e.Message
}

// Unwrap exposes both the code sentinel and the underlying cause to errors.Is.
func (e *CreditSystemError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := sentinelForCode(e.Code); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func sentinelForCode(code string) error {
	switch code {
	case CodeInvalidAmount:
		return ErrInvalidAmount
	case CodeInsufficientCredits:
		return ErrInsufficientCredits
	case CodeInvalidReason, CodeUnknownAction:
		return ErrValidation
	case CodeTransactionFailed:
		return ErrTransactionFailed
	case CodeDatabaseError, CodeUnknownDatabaseError:
		return ErrDatabase
	}
	return nil
}

// NewInvalidAmountError reports a non-positive amount.
func NewInvalidAmountError(amount int64) *CreditSystemError {
	return &CreditSystemError{
		Message: fmt.Sprintf("Invalid amount: %d. Amount must be a positive integer.", amount),
		Code:    CodeInvalidAmount,
		Details: map[string]any{"amount": amount},
	}
}

// NewInvalidReasonError reports a ledger entry without a reason label.
func NewInvalidReasonError() *CreditSystemError {
	return &CreditSystemError{
		Message: "Invalid reason. Reason must be a non-empty string.",
		Code:    CodeInvalidReason,
	}
}

// NewUnknownActionError reports a paid action or resource type without a price.
func NewUnknownActionError(action string) *CreditSystemError {
	return &CreditSystemError{
		Message: fmt.Sprintf("Unknown paid action: %s", action),
		Code:    CodeUnknownAction,
		Details: map[string]any{"action": action},
	}
}

// NewInsufficientCreditsError reports a spend that would drive the balance negative.
func NewInsufficientCreditsError(available, required int64) *CreditSystemError {
	return &CreditSystemError{
		Message: fmt.Sprintf("Insufficient credits. Available: %d, Required: %d", available, required),
		Code:    CodeInsufficientCredits,
		Details: map[string]any{"available": available, "required": required},
	}
}

// NewTransactionFailedError hides a storage failure behind a correlation id.
func NewTransactionFailedError(err error) *CreditSystemError {
	correlationID := uuid.NewString()
	return &CreditSystemError{
		Message:       "Failed to process credit transaction",
		Code:          CodeTransactionFailed,
		Details:       map[string]any{"correlationId": correlationID},
		CorrelationID: correlationID,
		Err:           err,
	}
}

// NewDatabaseError wraps a failed read. A nil cause yields UNKNOWN_DATABASE_ERROR.
func NewDatabaseError(err error) *CreditSystemError {
	correlationID := uuid.NewString()
	if err == nil {
		return &CreditSystemError{
			Message:       "An unknown database error occurred",
			Code:          CodeUnknownDatabaseError,
			Details:       map[string]any{"correlationId": correlationID},
			CorrelationID: correlationID,
		}
	}
	return &CreditSystemError{
		Message:       "A database error occurred",
		Code:          CodeDatabaseError,
		Details:       map[string]any{"correlationId": correlationID},
		CorrelationID: correlationID,
		Err:           err,
	}
}

// AsCreditSystemError is a shorthand for errors.As on *CreditSystemError.
func AsCreditSystemError(err error) (*CreditSystemError, bool) {
	var cse *CreditSystemError
	if errors.As(err, &cse) {
		return cse, true
	}
	return nil, false
}

// IsBusinessError reports whether err is a caller or business-rule rejection rather than an infrastructure fault.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientCredits) ||
		errors.Is(err, ErrValidation)
}
