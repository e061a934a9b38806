package dto

import "github.com/bilgisen/bookshall-sub000/internal/apperrors"

// Codes used by the HTTP layer for failures that never reach the credit service.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// SuccessResponse is the envelope of every successful API response.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
	Data    any  `json:"data"`
}

// ErrorResponse is the envelope of every failed API response.
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// NewSuccessResponse wraps data in the success envelope.
func NewSuccessResponse(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// NewErrorResponse builds the failure envelope for err. Credit system errors keep their
// code and details; anything else is reported under fallbackCode without leaking its text.
func NewErrorResponse(err error, fallbackCode, fallbackMessage string) ErrorResponse {
	if cse, ok := apperrors.AsCreditSystemError(err); ok {
		return ErrorResponse{Error: cse.Message, Code: cse.Code, Details: cse.Details}
	}
	return ErrorResponse{Error: fallbackMessage, Code: fallbackCode}
}
