package dto

import (
	"time"

	"github.com/finbook/finbook_api/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name         string                 `json:"name" binding:"required"`
	CategoryType domain.TransactionType `json:"categoryType" binding:"required,oneof=INCOME EXPENSE"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name         *string                 `json:"name"`
	CategoryType *domain.TransactionType `json:"categoryType" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID    string                 `json:"categoryID"`
	Name          string                 `json:"name"`
	CategoryType  domain.TransactionType `json:"categoryType"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:    cat.CategoryID,
		Name:          cat.Name,
		CategoryType:  cat.CategoryType,
		CreatedAt:     cat.CreatedAt,
		LastUpdatedAt: cat.LastUpdatedAt,
	}
}

// ToListCategoriesResponse converts a slice of domain.Category to the list DTO.
func ToListCategoriesResponse(categories []domain.Category) ListCategoriesResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return ListCategoriesResponse{Categories: res}
}
