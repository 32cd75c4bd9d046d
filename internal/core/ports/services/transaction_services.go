package services

import (
	"context"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/SscSPs/cashflow_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// ListTransactions returns the caller's transactions matching q together
	// with the per-day grouping and flow totals of the transaction page.
	ListTransactions(ctx context.Context, userID string, q domain.TransactionQuery) (*domain.TransactionListing, error)

	// GetTransaction returns one of the caller's transactions.
	GetTransaction(ctx context.Context, userID string, id int64) (*domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction records a transaction owned by userID.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction changes a transaction owned by userID.
	UpdateTransaction(ctx context.Context, userID string, id int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction soft deletes a transaction owned by userID.
	DeleteTransaction(ctx context.Context, userID string, id int64) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
