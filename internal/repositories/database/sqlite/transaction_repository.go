package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashflow_app/internal/models"
	"github.com/SscSPs/cashflow_app/internal/utils/mapping"
)

const transactionColumns = `id, total, category_id, category_type, notes, date, user_id, created_at, updated_at, deleted_at`

// TransactionRepository implements the transaction ports on SQLite.
type TransactionRepository struct {
	db *sql.DB
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		m                    models.Transaction
		createdAt, updatedAt string
		deletedAt            sql.NullString
	)
	if err := row.Scan(&m.ID, &m.Total, &m.CategoryID, &m.CategoryType, &m.Notes, &m.Date, &m.UserID, &createdAt, &updatedAt, &deletedAt); err != nil {
		return domain.Transaction{}, err
	}
	var err error
	if m.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	if m.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid updated_at %q: %w", updatedAt, err)
	}
	if deletedAt.Valid {
		at, err := time.Parse(timeLayout, deletedAt.String)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid deleted_at %q: %w", deletedAt.String, err)
		}
		m.DeletedAt = &at
	}
	return mapping.ToDomainTransaction(m), nil
}

// FindTransactions returns the user's live transactions matching q, newest
// first. Range bounds compare the first ten characters of the stored date,
// so rows whose date does not start with YYYY-MM-DD never match a range.
func (r *TransactionRepository) FindTransactions(ctx context.Context, userID string, q domain.TransactionQuery) ([]domain.Transaction, error) {
	conditions := []string{"user_id = ?", "deleted_at IS NULL"}
	args := []any{userID}

	if !q.Range.StartDate.IsZero() {
		conditions = append(conditions, "substr(date, 1, 10) >= ?")
		args = append(args, q.Range.StartDate.Format(domain.DateLayout))
	}
	if !q.Range.EndDate.IsZero() {
		conditions = append(conditions, "substr(date, 1, 10) <= ?")
		args = append(args, q.Range.EndDate.Format(domain.DateLayout))
	}
	if q.CategoryType != "" {
		conditions = append(conditions, "category_type = ?")
		args = append(args, string(q.CategoryType))
	}
	if q.Uncategorized {
		conditions = append(conditions, "category_id IS NULL")
	} else if q.CategoryID != nil {
		conditions = append(conditions, "category_id = ?")
		args = append(args, *q.CategoryID)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}

// FindTransactionByID retrieves one live transaction owned by userID.
func (r *TransactionRepository) FindTransactionByID(ctx context.Context, userID string, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = ? AND user_id = ? AND deleted_at IS NULL`
	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", id, err)
	}
	return &txn, nil
}

// SaveTransaction inserts a new transaction and returns its id.
func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	m := mapping.ToModelTransaction(txn)
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (total, category_id, category_type, notes, date, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Total, m.CategoryID, m.CategoryType, m.Notes, m.Date, m.UserID,
		m.CreatedAt.UTC().Format(timeLayout), m.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, mapWriteError(err, "failed to insert transaction")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted transaction id: %w", err)
	}
	return id, nil
}

// UpdateTransaction rewrites a live transaction owned by txn.UserID.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET total = ?, category_id = ?, category_type = ?, notes = ?, date = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL`,
		m.Total, m.CategoryID, m.CategoryType, m.Notes, m.Date, m.UpdatedAt.UTC().Format(timeLayout),
		m.ID, m.UserID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("failed to update transaction %d", txn.ID))
	}
	return expectOne(res)
}

// SoftDeleteTransaction marks a live transaction as deleted.
func (r *TransactionRepository) SoftDeleteTransaction(ctx context.Context, userID string, id int64, at time.Time) error {
	stamp := at.UTC().Format(timeLayout)
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL`,
		stamp, stamp, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func mapWriteError(err error, msg string) error {
	text := err.Error()
	switch {
	case strings.Contains(text, "FOREIGN KEY constraint failed"):
		return apperrors.NewValidationFailedError("category does not exist")
	case strings.Contains(text, "CHECK constraint failed"):
		return apperrors.NewValidationFailedError("invalid transaction fields")
	}
	return fmt.Errorf("%s: %w", msg, err)
}
