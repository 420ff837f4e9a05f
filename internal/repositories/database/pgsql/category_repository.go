package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	"github.com/finbook/finbook_api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCategoryRepository persists categories in Postgres, owner-scoped.
type PgxCategoryRepository struct {
	BaseRepository
}

// NewPgxCategoryRepository creates a new repository for category data.
func NewPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:   m.CategoryID,
		UserID:       m.UserID,
		Name:         m.Name,
		CategoryType: domain.TransactionType(m.CategoryType),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const categoryColumns = `category_id, user_id, name, category_type, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID, &m.UserID, &m.Name, &m.CategoryType,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan category row: %w", err)
	}
	d := toDomainCategory(m)
	return &d, nil
}

// SaveCategory inserts a new category. A duplicate name for the same owner
// surfaces as ErrDuplicate.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.UserID, category.Name, string(category.CategoryType),
		category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by ID, scoped to the owner.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1 AND user_id = $2;`
	return scanCategory(r.Pool.QueryRow(ctx, query, categoryID, userID))
}

// ListCategoriesByUser retrieves every category of the user, ordered by name.
func (r *PgxCategoryRepository) ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for user %s: %w", userID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

// UpdateCategory updates the mutable fields of a category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `
		UPDATE categories
		SET name = $3, category_type = $4, last_updated_at = $5, last_updated_by = $6
		WHERE category_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.UserID, category.Name, string(category.CategoryType),
		category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes the category. Foreign key violations from still
// referencing transactions surface as ErrConflict.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string, userID string) error {
	query := `DELETE FROM categories WHERE category_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, categoryID, userID)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("%w: category still has transactions", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountTransactionsByCategory counts the transactions referencing the category.
func (r *PgxCategoryRepository) CountTransactionsByCategory(ctx context.Context, categoryID string, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE category_id = $1 AND user_id = $2;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, categoryID, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for category %s: %w", categoryID, err)
	}
	return count, nil
}
