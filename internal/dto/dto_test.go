package dto_test

import (
	"errors"
	"testing"
	"time"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	"github.com/bilgisen/bookshall-sub000/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, dto.RegisterValidations(v))
	return v
}

func TestEarnCreditsRequest_Validation(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		req     dto.EarnCreditsRequest
		wantErr bool
	}{
		{"valid", dto.EarnCreditsRequest{Amount: 10, Reason: "ADMIN_GRANT", Metadata: domain.Metadata{"note": "x", "n": 1.0, "ok": true, "nil": nil}}, false},
		{"no metadata", dto.EarnCreditsRequest{Amount: 10, Reason: "ADMIN_GRANT"}, false},
		{"zero amount", dto.EarnCreditsRequest{Amount: 0, Reason: "ADMIN_GRANT"}, true},
		{"negative amount", dto.EarnCreditsRequest{Amount: -5, Reason: "ADMIN_GRANT"}, true},
		{"blank reason", dto.EarnCreditsRequest{Amount: 5, Reason: "   "}, true},
		{"nested metadata", dto.EarnCreditsRequest{Amount: 5, Reason: "R", Metadata: domain.Metadata{"obj": map[string]any{"a": 1}}}, true},
		{"array metadata", dto.EarnCreditsRequest{Amount: 5, Reason: "R", Metadata: domain.Metadata{"list": []any{1, 2}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHistoryQuery_ToHistoryFilter(t *testing.T) {
	q := dto.HistoryQuery{Limit: 20, Offset: 40, StartDate: "2024-01-01T00:00:00Z", EndDate: "2024-02-01T00:00:00Z"}

	filter, err := q.ToHistoryFilter()
	require.NoError(t, err)
	assert.Equal(t, 20, filter.Limit)
	assert.Equal(t, 40, filter.Offset)
	require.NotNil(t, filter.StartDate)
	require.NotNil(t, filter.EndDate)
	assert.True(t, filter.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	empty, err := dto.HistoryQuery{Limit: 10}.ToHistoryFilter()
	require.NoError(t, err)
	assert.Nil(t, empty.StartDate)
	assert.Nil(t, empty.EndDate)

	_, err = dto.HistoryQuery{StartDate: "2024-02-01T00:00:00Z", EndDate: "2024-01-01T00:00:00Z"}.ToHistoryFilter()
	assert.Error(t, err)
}

func TestHistoryQuery_Validation(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Struct(dto.HistoryQuery{Limit: 100}))
	assert.Error(t, v.Struct(dto.HistoryQuery{Limit: 0}))
	assert.Error(t, v.Struct(dto.HistoryQuery{Limit: 101}))
	assert.Error(t, v.Struct(dto.HistoryQuery{Limit: 10, Offset: -1}))
	assert.Error(t, v.Struct(dto.HistoryQuery{Limit: 10, StartDate: "yesterday"}))
}

func TestBalanceQuery_Includes(t *testing.T) {
	q := dto.BalanceQuery{Include: "history, Summary"}
	assert.True(t, q.Includes("history"))
	assert.True(t, q.Includes("summary"))
	assert.False(t, dto.BalanceQuery{}.Includes("history"))
}

func TestNewErrorResponse(t *testing.T) {
	resp := dto.NewErrorResponse(apperrors.NewInvalidAmountError(0), dto.CodeInternalError, "boom")
	assert.Equal(t, apperrors.CodeInvalidAmount, resp.Code)

	resp = dto.NewErrorResponse(errors.New("secret driver text"), dto.CodeInternalError, "Internal server error")
	assert.Equal(t, dto.CodeInternalError, resp.Code)
	assert.Equal(t, "Internal server error", resp.Error)
}

func TestSyncUserRequest_ToDomainUser(t *testing.T) {
	email := "a@example.com"
	u := dto.SyncUserRequest{Email: &email}.ToDomainUser("u1")
	assert.Equal(t, "u1", u.UserID)
	assert.Equal(t, email, u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
}
