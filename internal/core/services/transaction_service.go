package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsmsg "github.com/SscSPs/cashflow_app/internal/core/ports/messaging"
	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_app/internal/core/ports/services"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
	"github.com/SscSPs/cashflow_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	publisher    portsmsg.EventPublisher
	engine       *reporting.Engine
	now          func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithEventPublisher sets where change events are sent after a write.
func WithEventPublisher(p portsmsg.EventPublisher) TransactionServiceOption {
	return func(s *transactionService) {
		s.publisher = p
	}
}

// WithTransactionEngine sets the engine used to filter and group listings.
func WithTransactionEngine(e *reporting.Engine) TransactionServiceOption {
	return func(s *transactionService) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithTransactionClock overrides the clock used for audit timestamps.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, categoryRepo portsrepo.CategoryReader, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		engine:       reporting.NewEngine(),
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Total == nil {
		return nil, apperrors.NewValidationFailedError("total is required")
	}
	categoryType, err := domain.ParseCategoryType(req.CategoryType)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	txn := domain.Transaction{
		Total:        decimal.NewNullDecimal(*req.Total),
		CategoryID:   req.CategoryID,
		CategoryType: categoryType,
		Notes:        req.Notes,
		Date:         req.Date,
		UserID:       userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.prepare(ctx, &txn); err != nil {
		return nil, err
	}

	id, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	txn.ID = id

	s.LogInfo(ctx, "Transaction created",
		slog.Int64("transaction_id", txn.ID),
		slog.String("user_id", userID),
		slog.String("category_type", string(txn.CategoryType)))

	s.publish(ctx, txn, domain.ChangeCreated, txn.Date)
	return &txn, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.txnRepo.FindTransactionByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to load transaction for update", slog.Int64("transaction_id", id))
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}

	txn := *existing
	previousDate := txn.Date
	if req.Total != nil {
		txn.Total = decimal.NewNullDecimal(*req.Total)
	}
	if req.ClearCategory {
		txn.CategoryID = nil
	} else if req.CategoryID != nil {
		txn.CategoryID = req.CategoryID
	}
	if req.CategoryType != nil {
		t, err := domain.ParseCategoryType(*req.CategoryType)
		if err != nil {
			return nil, err
		}
		txn.CategoryType = t
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	txn.UpdatedAt = s.now().UTC()

	if err := s.prepare(ctx, &txn); err != nil {
		return nil, err
	}

	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update transaction", slog.Int64("transaction_id", id))
		return nil, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}

	s.publish(ctx, txn, domain.ChangeUpdated, txn.Date)
	if !sameMonth(previousDate, txn.Date) {
		s.publish(ctx, txn, domain.ChangeUpdated, previousDate)
	}
	return &txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, id int64) error {
	existing, err := s.txnRepo.FindTransactionByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get transaction %d: %w", id, err)
	}

	if err := s.txnRepo.SoftDeleteTransaction(ctx, userID, id, s.now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete transaction", slog.Int64("transaction_id", id))
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}

	s.LogInfo(ctx, "Transaction deleted", slog.Int64("transaction_id", id), slog.String("user_id", userID))
	s.publish(ctx, *existing, domain.ChangeDeleted, existing.Date)
	return nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID string, id int64) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, q domain.TransactionQuery) (*domain.TransactionListing, error) {
	if err := q.Range.Validate(); err != nil {
		return nil, err
	}
	if q.CategoryType != "" && !q.CategoryType.IsValid() {
		return nil, apperrors.NewValidationFailedError("categoryType must be 'income' or 'outcome'")
	}
	q.Range = s.engine.NormalizeRange(q.Range)

	txns, err := s.txnRepo.FindTransactions(ctx, userID, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	filtered := s.engine.FilterByDateAndType(txns, q.Range, q.CategoryType)
	return &domain.TransactionListing{
		Transactions: filtered,
		Days:         reporting.GroupByDay(filtered),
		Flow:         reporting.Flow(filtered),
		Range:        q.Range,
	}, nil
}

// prepare normalizes the date, validates the record and checks that its
// category, if any, is visible to the owner. The category's own type is not
// compared: a refund is an income against an outcome category.
func (s *transactionService) prepare(ctx context.Context, txn *domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}
	day, _ := txn.Day()
	txn.Date = day.Format(domain.DateLayout)

	if txn.CategoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindCategoryByID(ctx, txn.UserID, *txn.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError(fmt.Sprintf("category %d does not exist", *txn.CategoryID))
		}
		return fmt.Errorf("failed to check category %d: %w", *txn.CategoryID, err)
	}
	return nil
}

// publish emits a change event. Failures are logged and never fail the write.
func (s *transactionService) publish(ctx context.Context, txn domain.Transaction, action domain.ChangeAction, date string) {
	if s.publisher == nil {
		return
	}
	event := domain.ChangeEvent{
		ID:            uuid.NewString(),
		UserID:        txn.UserID,
		TransactionID: txn.ID,
		Action:        action,
		Date:          date,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.PublishChange(ctx, event); err != nil {
		s.LogWarn(ctx, err, "Failed to publish change event",
			slog.String("event_id", event.ID),
			slog.Int64("transaction_id", txn.ID),
			slog.String("action", string(action)))
	}
}

func sameMonth(a, b string) bool {
	da, okA := domain.ParseDay(a)
	db, okB := domain.ParseDay(b)
	if !okA || !okB {
		return a == b
	}
	return da.Year() == db.Year() && da.Month() == db.Month()
}
