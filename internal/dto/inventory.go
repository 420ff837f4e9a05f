package dto

import (
	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest defines the data needed to track an item.
type CreateInventoryItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	Priority    string          `json:"priority"`
	ListType    string          `json:"listType"`
	NeededBy    string          `json:"neededBy"`
	TargetValue decimal.Decimal `json:"targetValue"`
}

// UpdateInventoryItemRequest defines the data allowed for updating an item.
type UpdateInventoryItemRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Quantity    *int             `json:"quantity"`
	Unit        *string          `json:"unit"`
	Priority    *string          `json:"priority"`
	ListType    *string          `json:"listType"`
	NeededBy    *string          `json:"neededBy"`
	TargetValue *decimal.Decimal `json:"targetValue"`
	Purchased   *bool            `json:"purchased"`
}

// InventoryItemResponse defines the data returned for an inventory item.
type InventoryItemResponse struct {
	ItemID      string          `json:"itemID"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	Priority    string          `json:"priority"`
	ListType    string          `json:"listType"`
	NeededBy    string          `json:"neededBy,omitempty"`
	TargetValue decimal.Decimal `json:"targetValue"`
	Purchased   bool            `json:"purchased"`
}

// ToInventoryItemResponse converts a domain.InventoryItem to its DTO.
func ToInventoryItemResponse(item *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:      item.ItemID,
		Name:        item.Name,
		Category:    item.Category,
		Quantity:    item.Quantity,
		Unit:        item.Unit,
		Priority:    item.Priority,
		ListType:    item.ListType,
		NeededBy:    formatDate(item.NeededBy),
		TargetValue: item.TargetValue,
		Purchased:   item.Purchased,
	}
}
