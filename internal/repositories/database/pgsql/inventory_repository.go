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

// PgxInventoryRepository persists inventory items in Postgres, owner-scoped.
type PgxInventoryRepository struct {
	BaseRepository
}

// NewPgxInventoryRepository creates a new repository for inventory data.
func NewPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepository {
	return &PgxInventoryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepository = (*PgxInventoryRepository)(nil)

func toDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:      m.ItemID,
		UserID:      m.UserID,
		Name:        m.Name,
		Category:    m.Category,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		Priority:    m.Priority,
		ListType:    m.ListType,
		NeededBy:    m.NeededBy,
		TargetValue: m.TargetValue,
		Purchased:   m.Purchased,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const inventoryColumns = `item_id, user_id, name, category, quantity, unit, priority, list_type, needed_by, target_value, purchased, created_at, created_by, last_updated_at, last_updated_by`

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ItemID, &m.UserID, &m.Name, &m.Category, &m.Quantity, &m.Unit,
		&m.Priority, &m.ListType, &m.NeededBy, &m.TargetValue, &m.Purchased,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan inventory item row: %w", err)
	}
	d := toDomainInventoryItem(m)
	return &d, nil
}

// SaveItem inserts a new inventory item.
func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID, item.UserID, item.Name, item.Category, item.Quantity, item.Unit,
		item.Priority, item.ListType, item.NeededBy, item.TargetValue, item.Purchased,
		item.CreatedAt, item.CreatedBy, item.LastUpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save inventory item %s: %w", item.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves an inventory item by ID, scoped to the owner.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string, userID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE item_id = $1 AND user_id = $2;`
	return scanInventoryItem(r.Pool.QueryRow(ctx, query, itemID, userID))
}

// ListItemsByUser retrieves every inventory item of the user.
func (r *PgxInventoryRepository) ListItemsByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE user_id = $1 ORDER BY needed_by ASC NULLS LAST, created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items for user %s: %w", userID, err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory item rows: %w", err)
	}
	return items, nil
}

// UpdateItem updates the mutable fields of an inventory item.
func (r *PgxInventoryRepository) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $3, category = $4, quantity = $5, unit = $6, priority = $7, list_type = $8, needed_by = $9, target_value = $10, purchased = $11, last_updated_at = $12, last_updated_by = $13
		WHERE item_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		item.ItemID, item.UserID, item.Name, item.Category, item.Quantity, item.Unit,
		item.Priority, item.ListType, item.NeededBy, item.TargetValue, item.Purchased,
		item.LastUpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item %s: %w", item.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteItem removes an inventory item.
func (r *PgxInventoryRepository) DeleteItem(ctx context.Context, itemID string, userID string) error {
	query := `DELETE FROM inventory_items WHERE item_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item %s: %w", itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
