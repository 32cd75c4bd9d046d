package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/cashflow_app/internal/models"
	"github.com/SscSPs/cashflow_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// ListCategories retrieves global categories and those owned by userID.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, userID string, t domain.CategoryType) ([]domain.Category, error) {
	query := `
		SELECT id, name, type, user_id
		FROM categories
		WHERE (user_id IS NULL OR user_id = $1)
		  AND ($2 = '' OR type = $2)
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(t))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	modelCategories, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return mapping.ToDomainCategorySlice(modelCategories), nil
}

// FindCategoryByID retrieves one category visible to userID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, userID string, id int64) (*domain.Category, error) {
	query := `
		SELECT id, name, type, user_id
		FROM categories
		WHERE id = $1 AND (user_id IS NULL OR user_id = $2);
	`
	var m models.Category
	err := r.Pool.QueryRow(ctx, query, id, userID).Scan(&m.ID, &m.Name, &m.Type, &m.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %d: %w", id, err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}
