package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/cashflow_app/internal/core/ports/services"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
	"github.com/SscSPs/cashflow_app/internal/core/services"
	"github.com/SscSPs/cashflow_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo      *MockTransactionRepository
	categoryRepo *MockCategoryRepository
	publisher    *MockPublisher
	service      portssvc.TransactionSvcFacade
	ctx          context.Context
	userID       string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.txnRepo = new(MockTransactionRepository)
	suite.categoryRepo = new(MockCategoryRepository)
	suite.publisher = new(MockPublisher)
	suite.service = services.NewTransactionService(
		suite.txnRepo,
		suite.categoryRepo,
		services.WithEventPublisher(suite.publisher),
		services.WithTransactionEngine(reporting.NewEngine(reporting.WithClock(fixedClock))),
		services.WithTransactionClock(fixedClock),
	)
	suite.ctx = context.Background()
	suite.userID = "user-1"
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (suite *TransactionServiceTestSuite) groceries() *domain.Category {
	return &domain.Category{ID: 7, Name: "Groceries", Type: domain.CategoryTypeOutcome}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	total := decimal.RequireFromString("150000")
	req := dto.CreateTransactionRequest{
		Total:        &total,
		CategoryID:   int64Ptr(7),
		CategoryType: "outcome",
		Notes:        "weekly groceries",
		Date:         "2024-03-05T10:00:00Z",
	}

	suite.categoryRepo.On("FindCategoryByID", suite.ctx, suite.userID, int64(7)).Return(suite.groceries(), nil).Once()
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.UserID == suite.userID && txn.Date == "2024-03-05" && txn.Total.Decimal.Equal(total)
	})).Return(int64(42), nil).Once()
	suite.publisher.On("PublishChange", suite.ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
		return e.Action == domain.ChangeCreated && e.TransactionID == 42 && e.UserID == suite.userID && e.Date == "2024-03-05" && e.ID != ""
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(int64(42), txn.ID)
	suite.Equal(domain.CategoryTypeOutcome, txn.CategoryType)
	suite.Equal("2024-03-05", txn.Date)
	suite.Equal(fixedNow, txn.CreatedAt)
	suite.Equal(fixedNow, txn.UpdatedAt)
	suite.txnRepo.AssertExpectations(suite.T())
	suite.categoryRepo.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ValidationErrors() {
	negative := decimal.RequireFromString("-1")
	positive := decimal.RequireFromString("10")
	tests := []struct {
		name string
		req  dto.CreateTransactionRequest
	}{
		{name: "missing total", req: dto.CreateTransactionRequest{CategoryType: "income", Date: "2024-03-05"}},
		{name: "unknown type", req: dto.CreateTransactionRequest{Total: &positive, CategoryType: "transfer", Date: "2024-03-05"}},
		{name: "negative total", req: dto.CreateTransactionRequest{Total: &negative, CategoryType: "income", Date: "2024-03-05"}},
		{name: "bad date", req: dto.CreateTransactionRequest{Total: &positive, CategoryType: "income", Date: "05/03/2024"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, tt.req)
			suite.Nil(txn)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownCategory() {
	total := decimal.RequireFromString("10")
	req := dto.CreateTransactionRequest{Total: &total, CategoryID: int64Ptr(99), CategoryType: "outcome", Date: "2024-03-05"}

	suite.categoryRepo.On("FindCategoryByID", suite.ctx, suite.userID, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.txnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RefundKeepsOwnDirection() {
	total := decimal.RequireFromString("10")
	req := dto.CreateTransactionRequest{Total: &total, CategoryID: int64Ptr(7), CategoryType: "income", Notes: "grocery refund", Date: "2024-03-05"}

	suite.categoryRepo.On("FindCategoryByID", suite.ctx, suite.userID, int64(7)).Return(suite.groceries(), nil).Once()
	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.CategoryType == domain.CategoryTypeIncome && *txn.CategoryID == 7
	})).Return(int64(43), nil).Once()
	suite.publisher.On("PublishChange", suite.ctx, mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryTypeIncome, txn.CategoryType)
	suite.Equal(int64(43), txn.ID)
	suite.txnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SaveError() {
	total := decimal.RequireFromString("10")
	req := dto.CreateTransactionRequest{Total: &total, CategoryType: "income", Date: "2024-03-05"}

	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(int64(0), assert.AnError).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Nil(txn)
	suite.ErrorIs(err, assert.AnError)
	suite.publisher.AssertNotCalled(suite.T(), "PublishChange", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_PublishFailureDoesNotFailWrite() {
	total := decimal.RequireFromString("10")
	req := dto.CreateTransactionRequest{Total: &total, CategoryType: "income", Date: "2024-03-05"}

	suite.txnRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction")).Return(int64(5), nil).Once()
	suite.publisher.On("PublishChange", suite.ctx, mock.AnythingOfType("domain.ChangeEvent")).Return(assert.AnError).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(int64(5), txn.ID)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	suite.txnRepo.On("FindTransactionByID", suite.ctx, suite.userID, int64(3)).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.UpdateTransaction(suite.ctx, suite.userID, 3, dto.UpdateTransactionRequest{Notes: strPtr("x")})

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_MovesMonthPublishesBoth() {
	existing := &domain.Transaction{
		ID:           3,
		Total:        decimal.NewNullDecimal(decimal.RequireFromString("10")),
		CategoryID:   int64Ptr(7),
		CategoryType: domain.CategoryTypeOutcome,
		Date:         "2024-03-05",
		UserID:       suite.userID,
	}
	newTotal := decimal.RequireFromString("25")
	req := dto.UpdateTransactionRequest{Total: &newTotal, ClearCategory: true, Date: strPtr("2024-04-01")}

	suite.txnRepo.On("FindTransactionByID", suite.ctx, suite.userID, int64(3)).Return(existing, nil).Once()
	suite.txnRepo.On("UpdateTransaction", suite.ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.ID == 3 && txn.CategoryID == nil && txn.Date == "2024-04-01" && txn.Total.Decimal.Equal(newTotal)
	})).Return(nil).Once()
	suite.publisher.On("PublishChange", suite.ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
		return e.Action == domain.ChangeUpdated && e.Date == "2024-04-01"
	})).Return(nil).Once()
	suite.publisher.On("PublishChange", suite.ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
		return e.Action == domain.ChangeUpdated && e.Date == "2024-03-05"
	})).Return(nil).Once()

	txn, err := suite.service.UpdateTransaction(suite.ctx, suite.userID, 3, req)

	suite.Require().NoError(err)
	suite.Nil(txn.CategoryID)
	suite.Equal(fixedNow, txn.UpdatedAt)
	suite.categoryRepo.AssertNotCalled(suite.T(), "FindCategoryByID", mock.Anything, mock.Anything, mock.Anything)
	suite.txnRepo.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	existing := &domain.Transaction{ID: 3, CategoryType: domain.CategoryTypeIncome, Date: "2024-03-05", UserID: suite.userID}

	suite.txnRepo.On("FindTransactionByID", suite.ctx, suite.userID, int64(3)).Return(existing, nil).Once()
	suite.txnRepo.On("SoftDeleteTransaction", suite.ctx, suite.userID, int64(3), fixedNow).Return(nil).Once()
	suite.publisher.On("PublishChange", suite.ctx, mock.MatchedBy(func(e domain.ChangeEvent) bool {
		return e.Action == domain.ChangeDeleted && e.TransactionID == 3
	})).Return(nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, suite.userID, 3)

	suite.Require().NoError(err)
	suite.txnRepo.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	suite.txnRepo.On("FindTransactionByID", suite.ctx, suite.userID, int64(3)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(suite.ctx, suite.userID, 3)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.txnRepo.AssertNotCalled(suite.T(), "SoftDeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsToCurrentMonth() {
	june := domain.MonthRange(2024, 6)
	rows := []domain.Transaction{
		{ID: 1, Total: decimal.NewNullDecimal(decimal.RequireFromString("100")), CategoryType: domain.CategoryTypeIncome, Date: "2024-06-02"},
		{ID: 2, Total: decimal.NewNullDecimal(decimal.RequireFromString("30")), CategoryType: domain.CategoryTypeOutcome, Date: "2024-06-02"},
		{ID: 3, Total: decimal.NewNullDecimal(decimal.RequireFromString("20")), CategoryType: domain.CategoryTypeOutcome, Date: "2024-06-01"},
		{ID: 4, Total: decimal.NewNullDecimal(decimal.RequireFromString("5")), CategoryType: domain.CategoryTypeOutcome, Date: "not-a-date"},
	}
	suite.txnRepo.On("FindTransactions", suite.ctx, suite.userID, domain.TransactionQuery{Range: june}).Return(rows, nil).Once()

	listing, err := suite.service.ListTransactions(suite.ctx, suite.userID, domain.TransactionQuery{})

	suite.Require().NoError(err)
	suite.Equal(june, listing.Range)
	suite.Len(listing.Transactions, 3)
	suite.Require().Len(listing.Days, 2)
	suite.Equal("2024-06-02", listing.Days[0].Date)
	suite.True(listing.Days[0].OutcomeTotal.Equal(decimal.RequireFromString("30")))
	suite.True(listing.Flow.Inflow.Equal(decimal.RequireFromString("100")))
	suite.True(listing.Flow.Outflow.Equal(decimal.RequireFromString("50")))
}

func (suite *TransactionServiceTestSuite) TestListTransactions_InvalidRange() {
	q := domain.TransactionQuery{Range: domain.DateRange{StartDate: fixedNow, EndDate: fixedNow.AddDate(0, 0, -1)}}

	_, err := suite.service.ListTransactions(suite.ctx, suite.userID, q)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.txnRepo.AssertNotCalled(suite.T(), "FindTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_RepositoryError() {
	suite.txnRepo.On("FindTransactions", suite.ctx, suite.userID, mock.Anything).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListTransactions(suite.ctx, suite.userID, domain.TransactionQuery{})

	suite.ErrorIs(err, assert.AnError)
}
