package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsexport "github.com/SscSPs/cashflow_app/internal/core/ports/export"
	portsmsg "github.com/SscSPs/cashflow_app/internal/core/ports/messaging"
	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactions(ctx context.Context, userID string, q domain.TransactionQuery) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID string, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SoftDeleteTransaction(ctx context.Context, userID string, id int64, at time.Time) error {
	args := m.Called(ctx, userID, id, at)
	return args.Error(0)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID string, t domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, userID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, userID string, id int64) (*domain.Category, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// MockPublisher is a mock type for the EventPublisher interface
type MockPublisher struct {
	mock.Mock
}

var _ portsmsg.EventPublisher = (*MockPublisher)(nil)

func (m *MockPublisher) PublishChange(ctx context.Context, event domain.ChangeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockRenderer is a mock type for the ReportRenderer interface
type MockRenderer struct {
	mock.Mock
}

var _ portsexport.ReportRenderer = (*MockRenderer)(nil)

func (m *MockRenderer) Render(report domain.Report) ([]byte, error) {
	args := m.Called(report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) ContentType() string {
	return "application/octet-stream"
}

func (m *MockRenderer) FileExtension() string {
	return "bin"
}

var fixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
