package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/core/services"
	"github.com/bilgisen/bookshall-sub000/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestSyncUser_Success() {
	email := "writer@example.com"
	customer := "cus_9"
	req := dto.SyncUserRequest{Email: &email, Role: domain.RoleAdmin, BillingCustomerID: &customer}
	saved := &domain.User{UserID: "user-1", Email: email, Role: domain.RoleAdmin, BillingCustomerID: customer}

	suite.mockRepo.On("SaveUser", suite.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == "user-1" && u.Email == email && u.Role == domain.RoleAdmin && u.BillingCustomerID == customer
	})).Return(saved, nil).Once()

	user, err := suite.service.SyncUser(suite.ctx, "user-1", req)

	suite.Require().NoError(err)
	suite.Same(saved, user)
}

func (suite *UserServiceTestSuite) TestSyncUser_DuplicateEmail() {
	suite.mockRepo.On("SaveUser", suite.ctx, mock.Anything).
		Return(nil, fmt.Errorf("email taken: %w", apperrors.ErrDuplicate)).Once()

	_, err := suite.service.SyncUser(suite.ctx, "user-1", dto.SyncUserRequest{})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestGetUserByID() {
	suite.mockRepo.On("FindUserByID", suite.ctx, "user-1").Return(&domain.User{UserID: "user-1"}, nil).Once()
	suite.mockRepo.On("FindUserByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(suite.ctx, "user-1")
	suite.Require().NoError(err)
	suite.Equal("user-1", user.UserID)

	_, err = suite.service.GetUserByID(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
