package handlers_test

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CreditService ---
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) GetBalance(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditService) GetBalanceWithDetails(ctx context.Context, userID string) (*domain.BalanceDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceDetails), args.Error(1)
}

func (m *MockCreditService) GetTransactionHistory(ctx context.Context, userID string, filter domain.HistoryFilter) (*domain.TransactionHistory, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionHistory), args.Error(1)
}

func (m *MockCreditService) GetCreditSummary(ctx context.Context, userID string) (*domain.CreditSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditSummary), args.Error(1)
}

func (m *MockCreditService) EarnCredits(ctx context.Context, userID string, amount int64, reason string, metadata domain.Metadata) (*domain.OperationResult, error) {
	args := m.Called(ctx, userID, amount, reason, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationResult), args.Error(1)
}

func (m *MockCreditService) SpendCredits(ctx context.Context, userID string, amount int64, reason string, metadata domain.Metadata) (*domain.OperationResult, error) {
	args := m.Called(ctx, userID, amount, reason, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationResult), args.Error(1)
}

var _ portssvc.CreditSvcFacade = (*MockCreditService)(nil)

// --- Mock PaidActionService ---
type MockPaidActionService struct {
	mock.Mock
}

func (m *MockPaidActionService) Charge(ctx context.Context, userID string, action domain.PaidAction, resourceID string, metadata domain.Metadata) (*domain.ChargeResult, error) {
	args := m.Called(ctx, userID, action, resourceID, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChargeResult), args.Error(1)
}

func (m *MockPaidActionService) Refund(ctx context.Context, userID string, resource domain.ResourceType, resourceID string, metadata domain.Metadata) *domain.RefundResult {
	args := m.Called(ctx, userID, resource, resourceID, metadata)
	return args.Get(0).(*domain.RefundResult)
}

var _ portssvc.PaidActionSvc = (*MockPaidActionService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) SyncUser(ctx context.Context, userID string, req dto.SyncUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock BillingWebhookService ---
type MockBillingWebhookService struct {
	mock.Mock
}

func (m *MockBillingWebhookService) VerifySignature(payload []byte, signatureHeader string) error {
	args := m.Called(payload, signatureHeader)
	return args.Error(0)
}

func (m *MockBillingWebhookService) HandleEvent(ctx context.Context, event domain.BillingEvent) (*domain.WebhookOutcome, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WebhookOutcome), args.Error(1)
}

var _ portssvc.BillingWebhookSvc = (*MockBillingWebhookService)(nil)
