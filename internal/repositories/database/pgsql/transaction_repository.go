package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashflow_app/internal/models"
	"github.com/SscSPs/cashflow_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, total, category_id, category_type, notes, to_char(date, 'YYYY-MM-DD') AS date,
	user_id, created_at, updated_at, deleted_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// FindTransactions returns the user's live transactions matching q, newest first.
func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, userID string, q domain.TransactionQuery) ([]domain.Transaction, error) {
	conditions := []string{"user_id = $1", "deleted_at IS NULL"}
	args := []any{userID}

	if !q.Range.StartDate.IsZero() {
		args = append(args, q.Range.StartDate.Format(domain.DateLayout))
		conditions = append(conditions, fmt.Sprintf("date >= $%d::date", len(args)))
	}
	if !q.Range.EndDate.IsZero() {
		args = append(args, q.Range.EndDate.Format(domain.DateLayout))
		conditions = append(conditions, fmt.Sprintf("date <= $%d::date", len(args)))
	}
	if q.CategoryType != "" {
		args = append(args, string(q.CategoryType))
		conditions = append(conditions, fmt.Sprintf("category_type = $%d", len(args)))
	}
	if q.Uncategorized {
		conditions = append(conditions, "category_id IS NULL")
	} else if q.CategoryID != nil {
		args = append(args, *q.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY date DESC, id DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// FindTransactionByID retrieves one live transaction owned by userID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID string, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL;`

	rows, err := r.Pool.Query(ctx, query, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", id, err)
	}
	modelTxn, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", id, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// SaveTransaction inserts a new transaction and returns its id.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (total, category_id, category_type, notes, date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8)
		RETURNING id;
	`

	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.Total,
		m.CategoryID,
		m.CategoryType,
		m.Notes,
		m.Date,
		m.UserID,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, r.mapWriteError(err, "failed to insert transaction")
	}
	return id, nil
}

// UpdateTransaction rewrites a live transaction owned by txn.UserID. The
// owner itself is never changed.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET total = $1, category_id = $2, category_type = $3, notes = $4, date = $5::date, updated_at = $6
		WHERE id = $7 AND user_id = $8 AND deleted_at IS NULL;
	`
	err := r.execOne(ctx, query,
		m.Total,
		m.CategoryID,
		m.CategoryType,
		m.Notes,
		m.Date,
		m.UpdatedAt,
		m.ID,
		m.UserID,
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return r.mapWriteError(err, fmt.Sprintf("failed to update transaction %d", txn.ID))
	}
	return nil
}

// SoftDeleteTransaction marks a live transaction as deleted.
func (r *PgxTransactionRepository) SoftDeleteTransaction(ctx context.Context, userID string, id int64, at time.Time) error {
	query := `
		UPDATE transactions
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL;
	`
	if err := r.execOne(ctx, query, at, id, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}

func (r *PgxTransactionRepository) mapWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return apperrors.NewValidationFailedError("category does not exist")
		case "23514", "22007", "22008": // check_violation, invalid date
			return apperrors.NewValidationFailedError(pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
