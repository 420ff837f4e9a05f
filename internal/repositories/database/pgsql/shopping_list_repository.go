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

// PgxShoppingListRepository persists shopping lists and their items. Items
// are reached only through their owning list, which carries the user scope.
type PgxShoppingListRepository struct {
	BaseRepository
}

// NewPgxShoppingListRepository creates a new repository for shopping list data.
func NewPgxShoppingListRepository(pool *pgxpool.Pool) portsrepo.ShoppingListRepository {
	return &PgxShoppingListRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ShoppingListRepository = (*PgxShoppingListRepository)(nil)

func toDomainShoppingList(m models.ShoppingList) domain.ShoppingList {
	return domain.ShoppingList{
		ListID:      m.ListID,
		UserID:      m.UserID,
		Name:        m.Name,
		Description: m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainShoppingItem(m models.ShoppingItem) domain.ShoppingItem {
	return domain.ShoppingItem{
		ItemID:         m.ItemID,
		ListID:         m.ListID,
		Name:           m.Name,
		Quantity:       m.Quantity,
		EstimatedPrice: m.EstimatedPrice,
		ActualPrice:    m.ActualPrice,
		Purchased:      m.Purchased,
		PurchaseDate:   m.PurchaseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const shoppingListColumns = `list_id, user_id, name, description, created_at, created_by, last_updated_at, last_updated_by`

func scanShoppingList(row pgx.Row) (*domain.ShoppingList, error) {
	var m models.ShoppingList
	err := row.Scan(
		&m.ListID, &m.UserID, &m.Name, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan shopping list row: %w", err)
	}
	d := toDomainShoppingList(m)
	return &d, nil
}

const shoppingItemColumns = `item_id, list_id, name, quantity, estimated_price, actual_price, purchased, purchase_date, created_at, created_by, last_updated_at, last_updated_by`

func scanShoppingItem(row pgx.Row) (*domain.ShoppingItem, error) {
	var m models.ShoppingItem
	err := row.Scan(
		&m.ItemID, &m.ListID, &m.Name, &m.Quantity, &m.EstimatedPrice,
		&m.ActualPrice, &m.Purchased, &m.PurchaseDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan shopping item row: %w", err)
	}
	d := toDomainShoppingItem(m)
	return &d, nil
}

// SaveList inserts a new shopping list.
func (r *PgxShoppingListRepository) SaveList(ctx context.Context, list domain.ShoppingList) error {
	query := `
		INSERT INTO shopping_lists (` + shoppingListColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		list.ListID, list.UserID, list.Name, list.Description,
		list.CreatedAt, list.CreatedBy, list.LastUpdatedAt, list.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save shopping list %s: %w", list.ListID, err)
	}
	return nil
}

// FindListByID retrieves a shopping list by ID, scoped to the owner.
func (r *PgxShoppingListRepository) FindListByID(ctx context.Context, listID string, userID string) (*domain.ShoppingList, error) {
	query := `SELECT ` + shoppingListColumns + ` FROM shopping_lists WHERE list_id = $1 AND user_id = $2;`
	return scanShoppingList(r.Pool.QueryRow(ctx, query, listID, userID))
}

// ListListsByUser retrieves every shopping list of the user, newest first.
func (r *PgxShoppingListRepository) ListListsByUser(ctx context.Context, userID string) ([]domain.ShoppingList, error) {
	query := `SELECT ` + shoppingListColumns + ` FROM shopping_lists WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping lists for user %s: %w", userID, err)
	}
	defer rows.Close()

	lists := []domain.ShoppingList{}
	for rows.Next() {
		list, err := scanShoppingList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shopping list rows: %w", err)
	}
	return lists, nil
}

// UpdateList updates the mutable fields of a shopping list.
func (r *PgxShoppingListRepository) UpdateList(ctx context.Context, list domain.ShoppingList) error {
	query := `
		UPDATE shopping_lists
		SET name = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE list_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		list.ListID, list.UserID, list.Name, list.Description,
		list.LastUpdatedAt, list.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update shopping list %s: %w", list.ListID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteList removes a shopping list. Its items go with it via ON DELETE CASCADE.
func (r *PgxShoppingListRepository) DeleteList(ctx context.Context, listID string, userID string) error {
	query := `DELETE FROM shopping_lists WHERE list_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list %s: %w", listID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveItem inserts a new item into a shopping list.
func (r *PgxShoppingListRepository) SaveItem(ctx context.Context, item domain.ShoppingItem) error {
	query := `
		INSERT INTO shopping_list_items (` + shoppingItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID, item.ListID, item.Name, item.Quantity, item.EstimatedPrice,
		item.ActualPrice, item.Purchased, item.PurchaseDate,
		item.CreatedAt, item.CreatedBy, item.LastUpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("%w: shopping list %s does not exist", apperrors.ErrNotFound, item.ListID)
		}
		return fmt.Errorf("failed to save shopping item %s: %w", item.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves a shopping item, scoped to its list.
func (r *PgxShoppingListRepository) FindItemByID(ctx context.Context, itemID string, listID string) (*domain.ShoppingItem, error) {
	query := `SELECT ` + shoppingItemColumns + ` FROM shopping_list_items WHERE item_id = $1 AND list_id = $2;`
	return scanShoppingItem(r.Pool.QueryRow(ctx, query, itemID, listID))
}

// ListItemsByList retrieves every item of a shopping list.
func (r *PgxShoppingListRepository) ListItemsByList(ctx context.Context, listID string) ([]domain.ShoppingItem, error) {
	query := `SELECT ` + shoppingItemColumns + ` FROM shopping_list_items WHERE list_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for shopping list %s: %w", listID, err)
	}
	defer rows.Close()

	items := []domain.ShoppingItem{}
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shopping item rows: %w", err)
	}
	return items, nil
}

// UpdateItem updates the mutable fields of a shopping item.
func (r *PgxShoppingListRepository) UpdateItem(ctx context.Context, item domain.ShoppingItem) error {
	query := `
		UPDATE shopping_list_items
		SET name = $3, quantity = $4, estimated_price = $5, actual_price = $6, purchased = $7, purchase_date = $8, last_updated_at = $9, last_updated_by = $10
		WHERE item_id = $1 AND list_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		item.ItemID, item.ListID, item.Name, item.Quantity, item.EstimatedPrice,
		item.ActualPrice, item.Purchased, item.PurchaseDate,
		item.LastUpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update shopping item %s: %w", item.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteItem removes a shopping item from its list.
func (r *PgxShoppingListRepository) DeleteItem(ctx context.Context, itemID string, listID string) error {
	query := `DELETE FROM shopping_list_items WHERE item_id = $1 AND list_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, itemID, listID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item %s: %w", itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
