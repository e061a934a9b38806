package services_test

import (
	"context"

	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portsrepo "github.com/bilgisen/bookshall-sub000/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockCreditRepository is a mock type for the CreditRepositoryFacade interface.
// RunInTx hands Tx to the unit of work unless the expectation returns an error.
type MockCreditRepository struct {
	mock.Mock
	Tx *MockCreditTx
}

func NewMockCreditRepository() *MockCreditRepository {
	return &MockCreditRepository{Tx: new(MockCreditTx)}
}

func (m *MockCreditRepository) GetUserBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockCreditRepository) GetTransactionHistory(ctx context.Context, userID string, filter domain.HistoryFilter) ([]domain.CreditTransaction, int, error) {
	args := m.Called(ctx, userID, filter)
	var txns []domain.CreditTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.CreditTransaction)
	}
	return txns, args.Int(1), args.Error(2)
}

func (m *MockCreditRepository) GetCreditSummary(ctx context.Context, userID string) (*domain.CreditTotals, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTotals), args.Error(1)
}

func (m *MockCreditRepository) UpdateUserBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditRepository) CreateTransaction(ctx context.Context, txn domain.CreditTransaction) (*domain.CreditTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransaction), args.Error(1)
}

func (m *MockCreditRepository) RunInTx(ctx context.Context, fn portsrepo.CreditTxFunc) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.Tx)
}

func (m *MockCreditRepository) GetLedgerPosition(ctx context.Context, userID string) (*domain.LedgerPosition, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerPosition), args.Error(1)
}

func (m *MockCreditRepository) ListLedgerPositions(ctx context.Context) ([]domain.LedgerPosition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerPosition), args.Error(1)
}

// MockCreditTx is a mock type for the CreditTxRepository interface
type MockCreditTx struct {
	mock.Mock
}

func (m *MockCreditTx) LockUserBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockCreditTx) IncrementUserBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditTx) CreateTransaction(ctx context.Context, txn domain.CreditTransaction) (*domain.CreditTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditTransaction), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) findResult(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return m.findResult(m.Called(ctx, userID))
}

func (m *MockUserRepository) FindUserByBillingCustomerID(ctx context.Context, customerID string) (*domain.User, error) {
	return m.findResult(m.Called(ctx, customerID))
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.findResult(m.Called(ctx, email))
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (*domain.User, error) {
	return m.findResult(m.Called(ctx, user))
}

func (m *MockUserRepository) LinkBillingCustomer(ctx context.Context, userID, customerID string) error {
	args := m.Called(ctx, userID, customerID)
	return args.Error(0)
}

// MockCreditService is a mock type for the CreditSvcFacade interface
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
