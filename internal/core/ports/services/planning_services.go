package services

import (
	"context"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/dto"
)

// ShoppingListSvc exposes shopping list and item CRUD. Item operations
// authorize through the owning list.
type ShoppingListSvc interface {
	CreateList(ctx context.Context, userID string, req dto.CreateShoppingListRequest) (*domain.ShoppingList, error)
	GetListByID(ctx context.Context, userID string, listID string) (*domain.ShoppingList, []domain.ShoppingItem, error)
	ListLists(ctx context.Context, userID string) ([]domain.ShoppingList, error)
	UpdateList(ctx context.Context, userID string, listID string, req dto.UpdateShoppingListRequest) (*domain.ShoppingList, error)
	DeleteList(ctx context.Context, userID string, listID string) error

	AddItem(ctx context.Context, userID string, listID string, req dto.CreateShoppingItemRequest) (*domain.ShoppingItem, error)
	UpdateItem(ctx context.Context, userID string, listID string, itemID string, req dto.UpdateShoppingItemRequest) (*domain.ShoppingItem, error)
	DeleteItem(ctx context.Context, userID string, listID string, itemID string) error
}

// BillSvc exposes bill CRUD.
type BillSvc interface {
	CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error)
	GetBillByID(ctx context.Context, userID string, billID string) (*domain.Bill, error)
	ListBills(ctx context.Context, userID string) ([]domain.Bill, error)
	UpdateBill(ctx context.Context, userID string, billID string, req dto.UpdateBillRequest) (*domain.Bill, error)
	DeleteBill(ctx context.Context, userID string, billID string) error
}

// GoalSvc exposes savings goal CRUD.
type GoalSvc interface {
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error)
	GetGoalByID(ctx context.Context, userID string, goalID string) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID string, goalID string) error
}

// InventorySvc exposes inventory item CRUD.
type InventorySvc interface {
	CreateItem(ctx context.Context, userID string, req dto.CreateInventoryItemRequest) (*domain.InventoryItem, error)
	GetItemByID(ctx context.Context, userID string, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	UpdateItem(ctx context.Context, userID string, itemID string, req dto.UpdateInventoryItemRequest) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, userID string, itemID string) error
}
