package services

import (
	"context"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
)

// CategorySvcFacade defines read operations for categories
type CategorySvcFacade interface {
	// ListCategories returns the categories visible to userID, optionally of one type.
	ListCategories(ctx context.Context, userID string, t domain.CategoryType) ([]domain.Category, error)
}
