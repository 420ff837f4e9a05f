package repositories

import (
	"context"

	"github.com/finbook/finbook_api/internal/core/domain"
)

// ShoppingListRepository persists shopping lists and their items.
// Item access is always authorized through the owning list.
type ShoppingListRepository interface {
	SaveList(ctx context.Context, list domain.ShoppingList) error
	FindListByID(ctx context.Context, listID string, userID string) (*domain.ShoppingList, error)
	ListListsByUser(ctx context.Context, userID string) ([]domain.ShoppingList, error)
	UpdateList(ctx context.Context, list domain.ShoppingList) error
	DeleteList(ctx context.Context, listID string, userID string) error

	SaveItem(ctx context.Context, item domain.ShoppingItem) error
	FindItemByID(ctx context.Context, itemID string, listID string) (*domain.ShoppingItem, error)
	ListItemsByList(ctx context.Context, listID string) ([]domain.ShoppingItem, error)
	UpdateItem(ctx context.Context, item domain.ShoppingItem) error
	DeleteItem(ctx context.Context, itemID string, listID string) error
}

// BillRepository persists bills payable.
type BillRepository interface {
	SaveBill(ctx context.Context, bill domain.Bill) error
	FindBillByID(ctx context.Context, billID string, userID string) (*domain.Bill, error)
	ListBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error)
	UpdateBill(ctx context.Context, bill domain.Bill) error
	DeleteBill(ctx context.Context, billID string, userID string) error
}

// GoalRepository persists savings goals.
type GoalRepository interface {
	SaveGoal(ctx context.Context, goal domain.Goal) error
	FindGoalByID(ctx context.Context, goalID string, userID string) (*domain.Goal, error)
	ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, goal domain.Goal) error
	DeleteGoal(ctx context.Context, goalID string, userID string) error
}

// InventoryRepository persists inventory items.
type InventoryRepository interface {
	SaveItem(ctx context.Context, item domain.InventoryItem) error
	FindItemByID(ctx context.Context, itemID string, userID string) (*domain.InventoryItem, error)
	ListItemsByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	UpdateItem(ctx context.Context, item domain.InventoryItem) error
	DeleteItem(ctx context.Context, itemID string, userID string) error
}
