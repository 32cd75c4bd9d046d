package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data. Soft
// deleted rows and rows of other users are never returned.
type TransactionReader interface {
	// FindTransactions returns the user's live transactions matching q,
	// newest first.
	FindTransactions(ctx context.Context, userID string, q domain.TransactionQuery) ([]domain.Transaction, error)

	// FindTransactionByID returns one live transaction owned by userID.
	FindTransactionByID(ctx context.Context, userID string, id int64) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction inserts a new transaction and returns its id.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error)

	// UpdateTransaction rewrites a live transaction owned by txn.UserID.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// SoftDeleteTransaction marks a live transaction owned by userID as deleted.
	SoftDeleteTransaction(ctx context.Context, userID string, id int64, at time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
