package dto

import (
	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/SscSPs/cashflow_app/internal/core/reporting"
)

// ListCategoriesParams are the query parameters of the category list.
type ListCategoriesParams struct {
	Type string `form:"type" binding:"omitempty,categorytype"`
}

// CategoryResponse defines the data returned for a category, including its
// display icon and color.
type CategoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Global bool   `json:"global"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}

// ToCategoryResponse converts a domain category, resolving its style under
// the same name the aggregations use.
func ToCategoryResponse(c domain.Category, r *reporting.Resolver) CategoryResponse {
	style := r.Resolve(reporting.DisplayName(c.Name, c.Type))
	return CategoryResponse{
		ID:     c.ID,
		Name:   c.Name,
		Type:   string(c.Type),
		Global: c.IsGlobal(),
		Icon:   style.Icon,
		Color:  style.Color,
	}
}

// ToListCategoryResponse converts a slice of categories, never returning nil.
func ToListCategoryResponse(categories []domain.Category, r *reporting.Resolver) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(c, r)
	}
	return res
}
