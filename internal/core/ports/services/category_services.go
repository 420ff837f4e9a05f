package services

import (
	"context"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/dto"
)

// CategorySvc exposes category CRUD, scoped to the calling user.
type CategorySvc interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}
