package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/SscSPs/cashflow_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("returns repository rows", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("ListCategories", ctx, "user-1", domain.CategoryTypeOutcome).Return(testCategories[1:], nil).Once()

		got, err := services.NewCategoryService(repo).ListCategories(ctx, "user-1", domain.CategoryTypeOutcome)

		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertExpectations(t)
	})

	t.Run("nil becomes empty", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("ListCategories", ctx, "user-1", domain.CategoryType("")).Return(nil, nil).Once()

		got, err := services.NewCategoryService(repo).ListCategories(ctx, "user-1", "")

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("invalid type", func(t *testing.T) {
		repo := new(MockCategoryRepository)

		_, err := services.NewCategoryService(repo).ListCategories(ctx, "user-1", domain.CategoryType("transfer"))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		repo.AssertNotCalled(t, "ListCategories", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		repo.On("ListCategories", ctx, "user-1", domain.CategoryType("")).Return(nil, assert.AnError).Once()

		_, err := services.NewCategoryService(repo).ListCategories(ctx, "user-1", "")

		assert.ErrorIs(t, err, assert.AnError)
	})
}
