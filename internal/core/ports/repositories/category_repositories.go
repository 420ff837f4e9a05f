package repositories

import (
	"context"

	"github.com/finbook/finbook_api/internal/core/domain"
)

// CategoryRepository persists categories, owner-scoped like accounts.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error)
	ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	// DeleteCategory removes the category. It returns ErrConflict while
	// transactions still reference it.
	DeleteCategory(ctx context.Context, categoryID string, userID string) error
	CountTransactionsByCategory(ctx context.Context, categoryID string, userID string) (int64, error)
}
