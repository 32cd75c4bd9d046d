package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_app/internal/core/ports/services"
)

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryReader
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryReader) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: repo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context, userID string, t domain.CategoryType) ([]domain.Category, error) {
	if t != "" && !t.IsValid() {
		return nil, apperrors.NewValidationFailedError("type must be 'income' or 'outcome'")
	}
	categories, err := s.categoryRepo.ListCategories(ctx, userID, t)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	// Return empty slice if no categories found, not nil
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}
