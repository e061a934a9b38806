package services_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/bilgisen/bookshall-sub000/internal/apperrors"
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	portssvc "github.com/bilgisen/bookshall-sub000/internal/core/ports/services"
	"github.com/bilgisen/bookshall-sub000/internal/core/services"
	"github.com/bilgisen/bookshall-sub000/internal/platform/metrics"
	"github.com/bilgisen/bookshall-sub000/internal/platform/pricing"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaidActionServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	mockCredits *MockCreditService
	metrics     *metrics.Metrics
	service     portssvc.PaidActionSvc
}

func (suite *PaidActionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockCredits = new(MockCreditService)
	suite.metrics = metrics.New()
	suite.service = services.NewPaidActionService(suite.mockCredits, pricing.Default(), suite.metrics)
}

func (suite *PaidActionServiceTestSuite) TearDownTest() {
	suite.mockCredits.AssertExpectations(suite.T())
}

func resourceMeta(resourceID string, action domain.PaidAction) any {
	return mock.MatchedBy(func(m domain.Metadata) bool {
		return m["resourceId"] == resourceID && m["action"] == string(action)
	})
}

func (suite *PaidActionServiceTestSuite) assertRefundFailures(n int) {
	expected := "# HELP bookshall_credits_refund_failures_total Deletion refunds that failed and need manual reconciliation.\n" +
		"# TYPE bookshall_credits_refund_failures_total counter\n" +
		"bookshall_credits_refund_failures_total " + strconv.Itoa(n) + "\n"
	suite.NoError(testutil.GatherAndCompare(suite.metrics.Registry(), strings.NewReader(expected), "bookshall_credits_refund_failures_total"))
}

func (suite *PaidActionServiceTestSuite) TestCharge_BookCreation() {
	txn := &domain.CreditTransaction{ID: "t1", Type: domain.TransactionTypeSpend, Amount: 200, Reason: "BOOK_CREATION"}
	suite.mockCredits.On("SpendCredits", suite.ctx, "user-1", int64(200), "BOOK_CREATION", resourceMeta("book-9", domain.ActionBookCreation)).
		Return(&domain.OperationResult{Balance: 800, Transaction: txn}, nil).Once()

	res, err := suite.service.Charge(suite.ctx, "user-1", domain.ActionBookCreation, "book-9", domain.Metadata{"title": "Dune"})

	suite.Require().NoError(err)
	suite.Equal(int64(200), res.Cost)
	suite.Equal(int64(800), res.Balance)
	suite.Equal(domain.ActionBookCreation, res.Action)
	suite.Same(txn, res.Transaction)
}

func (suite *PaidActionServiceTestSuite) TestCharge_DoesNotMutateCallerMetadata() {
	meta := domain.Metadata{"title": "Dune"}
	suite.mockCredits.On("SpendCredits", suite.ctx, "user-1", int64(50), "CHAPTER_CREATION", mock.Anything).
		Return(&domain.OperationResult{Balance: 950}, nil).Once()

	_, err := suite.service.Charge(suite.ctx, "user-1", domain.ActionChapterCreation, "ch-1", meta)

	suite.Require().NoError(err)
	suite.Equal(domain.Metadata{"title": "Dune"}, meta)
}

func (suite *PaidActionServiceTestSuite) TestCharge_InsufficientCredits() {
	suite.mockCredits.On("SpendCredits", suite.ctx, "user-1", int64(100), "EBOOK_PUBLISHING", mock.Anything).
		Return(nil, apperrors.NewInsufficientCreditsError(40, 100)).Once()

	res, err := suite.service.Charge(suite.ctx, "user-1", domain.ActionEbookPublishing, "eb-1", nil)

	suite.Nil(res)
	suite.ErrorIs(err, apperrors.ErrInsufficientCredits)
}

func (suite *PaidActionServiceTestSuite) TestCharge_UnknownAction() {
	_, err := suite.service.Charge(suite.ctx, "user-1", domain.PaidAction("PODCAST_CREATION"), "p-1", nil)

	cse, ok := apperrors.AsCreditSystemError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.CodeUnknownAction, cse.Code)
	suite.mockCredits.AssertNotCalled(suite.T(), "SpendCredits", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaidActionServiceTestSuite) TestRefund_ChapterDeletion() {
	suite.mockCredits.On("EarnCredits", suite.ctx, "user-1", int64(50), "REFUND_CHAPTER_DELETION", resourceMeta("ch-7", domain.ActionChapterCreation)).
		Return(&domain.OperationResult{Balance: 1000}, nil).Once()

	res := suite.service.Refund(suite.ctx, "user-1", domain.ResourceChapter, "ch-7", nil)

	suite.True(res.Refunded)
	suite.Equal(int64(50), res.Amount)
	suite.Equal(int64(1000), res.Balance)
	suite.Equal("REFUND_CHAPTER_DELETION", res.Reason)
	suite.assertRefundFailures(0)
}

func (suite *PaidActionServiceTestSuite) TestRefund_FailureIsReportedNotRaised() {
	failure := apperrors.NewTransactionFailedError(errors.New("connection reset"))
	suite.mockCredits.On("EarnCredits", suite.ctx, "user-1", int64(200), "REFUND_BOOK_DELETION", mock.Anything).
		Return(nil, failure).Once()

	res := suite.service.Refund(suite.ctx, "user-1", domain.ResourceBook, "book-1", nil)

	suite.False(res.Refunded)
	suite.Equal(int64(200), res.Amount)
	suite.Equal(failure.CorrelationID, res.CorrelationID)
	suite.assertRefundFailures(1)
}

func (suite *PaidActionServiceTestSuite) TestRefund_UnknownResourceType() {
	res := suite.service.Refund(suite.ctx, "user-1", domain.ResourceType("podcast"), "p-1", nil)

	suite.False(res.Refunded)
	suite.Equal("REFUND_PODCAST_DELETION", res.Reason)
	suite.assertRefundFailures(1)
}

func TestPaidActionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaidActionServiceTestSuite))
}
