package dto

import (
	"time"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateShoppingListRequest defines the data needed to create a list.
type CreateShoppingListRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateShoppingListRequest defines the data allowed for updating a list.
type UpdateShoppingListRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateShoppingItemRequest defines the data needed to add an item.
type CreateShoppingItemRequest struct {
	Name           string          `json:"name" binding:"required"`
	Quantity       int             `json:"quantity"`
	EstimatedPrice decimal.Decimal `json:"estimatedPrice"`
}

// UpdateShoppingItemRequest defines the data allowed for updating an item.
type UpdateShoppingItemRequest struct {
	Name           *string          `json:"name"`
	Quantity       *int             `json:"quantity"`
	EstimatedPrice *decimal.Decimal `json:"estimatedPrice"`
	ActualPrice    *decimal.Decimal `json:"actualPrice"`
	Purchased      *bool            `json:"purchased"`
	PurchaseDate   *string          `json:"purchaseDate"`
}

// ShoppingItemResponse defines the data returned for a shopping item.
type ShoppingItemResponse struct {
	ItemID         string          `json:"itemID"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	EstimatedPrice decimal.Decimal `json:"estimatedPrice"`
	ActualPrice    decimal.Decimal `json:"actualPrice"`
	Purchased      bool            `json:"purchased"`
	PurchaseDate   string          `json:"purchaseDate,omitempty"`
}

// ShoppingListResponse defines the data returned for a list, items included.
type ShoppingListResponse struct {
	ListID      string                 `json:"listID"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatedAt   time.Time              `json:"createdAt"`
	Items       []ShoppingItemResponse `json:"items"`
}

// ToShoppingItemResponse converts a domain.ShoppingItem to its DTO.
func ToShoppingItemResponse(item *domain.ShoppingItem) ShoppingItemResponse {
	return ShoppingItemResponse{
		ItemID:         item.ItemID,
		Name:           item.Name,
		Quantity:       item.Quantity,
		EstimatedPrice: item.EstimatedPrice,
		ActualPrice:    item.ActualPrice,
		Purchased:      item.Purchased,
		PurchaseDate:   formatDate(item.PurchaseDate),
	}
}

// ToShoppingListResponse converts a domain.ShoppingList plus its items to a DTO.
func ToShoppingListResponse(list *domain.ShoppingList, items []domain.ShoppingItem) ShoppingListResponse {
	res := ShoppingListResponse{
		ListID:      list.ListID,
		Name:        list.Name,
		Description: list.Description,
		CreatedAt:   list.CreatedAt,
		Items:       make([]ShoppingItemResponse, len(items)),
	}
	for i := range items {
		res.Items[i] = ToShoppingItemResponse(&items[i])
	}
	return res
}
