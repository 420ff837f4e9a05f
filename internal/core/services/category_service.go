package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/middleware"
)

// categoryService provides category CRUD on top of the repository.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvc {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvc = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		CategoryType: req.CategoryType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Warn("Failed to save category", slog.String("category_name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	return s.categoryRepo.ListCategoriesByUser(ctx, userID)
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.CategoryType != nil {
		category.CategoryType = *req.CategoryType
	}

	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		logger.Warn("Failed to update category", slog.String("category_id", categoryID), slog.String("error", err.Error()))
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category unless transactions still reference it.
func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.categoryRepo.FindCategoryByID(ctx, categoryID, userID); err != nil {
		return err
	}

	count, err := s.categoryRepo.CountTransactionsByCategory(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: category has %d transactions and cannot be deleted", apperrors.ErrConflict, count)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID, userID); err != nil {
		logger.Error("Failed to delete category", slog.String("category_id", categoryID), slog.String("error", err.Error()))
		return err
	}

	return nil
}
