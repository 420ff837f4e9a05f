package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShoppingList groups shopping items under a named list.
type ShoppingList struct {
	ListID      string `json:"listID"` // Primary key (UUID)
	UserID      string `json:"userID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// ShoppingItem is a single entry on a shopping list.
type ShoppingItem struct {
	ItemID         string          `json:"itemID"` // Primary key (UUID)
	ListID         string          `json:"listID"` // FK -> shopping_lists.list_id
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	EstimatedPrice decimal.Decimal `json:"estimatedPrice"`
	ActualPrice    decimal.Decimal `json:"actualPrice"`
	Purchased      bool            `json:"purchased"`
	PurchaseDate   *time.Time      `json:"purchaseDate"`
	AuditFields
}

// Bill represents a payable, possibly split into installments.
type Bill struct {
	BillID            string          `json:"billID"` // Primary key (UUID)
	UserID            string          `json:"userID"`
	Description       string          `json:"description"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Installments      int             `json:"installments"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	StartDate         *time.Time      `json:"startDate"`
	EndDate           *time.Time      `json:"endDate"`
	Recurring         bool            `json:"recurring"`
	AuditFields
}

// Goal is a savings target the user is reserving money toward.
type Goal struct {
	GoalID         string          `json:"goalID"` // Primary key (UUID)
	UserID         string          `json:"userID"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	ReservedAmount decimal.Decimal `json:"reservedAmount"`
	TargetAccount  string          `json:"targetAccount"` // Free-form label, not an account FK
	Achieved       bool            `json:"achieved"`
	TargetDate     *time.Time      `json:"targetDate"`
	AuditFields
}

// InventoryItem is a planned purchase tracked outside any shopping list.
type InventoryItem struct {
	ItemID      string          `json:"itemID"` // Primary key (UUID)
	UserID      string          `json:"userID"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	Priority    string          `json:"priority"`
	ListType    string          `json:"listType"`
	NeededBy    *time.Time      `json:"neededBy"`
	TargetValue decimal.Decimal `json:"targetValue"`
	Purchased   bool            `json:"purchased"`
	AuditFields
}
