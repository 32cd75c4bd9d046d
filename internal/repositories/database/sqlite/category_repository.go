package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashflow_app/internal/models"
	"github.com/SscSPs/cashflow_app/internal/utils/mapping"
)

// CategoryRepository implements the category ports on SQLite.
type CategoryRepository struct {
	db *sql.DB
}

var _ portsrepo.CategoryRepositoryFacade = (*CategoryRepository)(nil)

func (r *CategoryRepository) ListCategories(ctx context.Context, userID string, t domain.CategoryType) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, user_id FROM categories
		WHERE (user_id IS NULL OR user_id = ?) AND (? = '' OR type = ?)
		ORDER BY id`,
		userID, string(t), string(t),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	ms := make([]models.Category, 0)
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.ID, &m.Name, &m.Type, &m.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return mapping.ToDomainCategorySlice(ms), nil
}

func (r *CategoryRepository) FindCategoryByID(ctx context.Context, userID string, id int64) (*domain.Category, error) {
	var m models.Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, type, user_id FROM categories
		WHERE id = ? AND (user_id IS NULL OR user_id = ?)`,
		id, userID,
	).Scan(&m.ID, &m.Name, &m.Type, &m.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %d: %w", id, err)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}
