package repositories

import (
	"context"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
)

// CategoryReader defines read operations for category data. A category is
// visible to a user when it is global or owned by that user.
type CategoryReader interface {
	// ListCategories returns the visible categories, optionally of one type.
	ListCategories(ctx context.Context, userID string, t domain.CategoryType) ([]domain.Category, error)

	// FindCategoryByID returns one visible category.
	FindCategoryByID(ctx context.Context, userID string, id int64) (*domain.Category, error)
}

// CategoryRepositoryFacade is kept as its own name so a writer can be added
// without touching callers.
type CategoryRepositoryFacade interface {
	CategoryReader
}
