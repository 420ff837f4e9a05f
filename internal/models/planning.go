package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShoppingList is the database representation of a shopping list.
type ShoppingList struct {
	ListID      string `db:"list_id"`
	UserID      string `db:"user_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	AuditFields
}

// ShoppingItem is the database representation of a shopping list entry.
type ShoppingItem struct {
	ItemID         string          `db:"item_id"`
	ListID         string          `db:"list_id"`
	Name           string          `db:"name"`
	Quantity       int             `db:"quantity"`
	EstimatedPrice decimal.Decimal `db:"estimated_price"`
	ActualPrice    decimal.Decimal `db:"actual_price"`
	Purchased      bool            `db:"purchased"`
	PurchaseDate   *time.Time      `db:"purchase_date"`
	AuditFields
}

// Bill is the database representation of a payable.
type Bill struct {
	BillID            string          `db:"bill_id"`
	UserID            string          `db:"user_id"`
	Description       string          `db:"description"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	Installments      int             `db:"installments"`
	InstallmentAmount decimal.Decimal `db:"installment_amount"`
	StartDate         *time.Time      `db:"start_date"`
	EndDate           *time.Time      `db:"end_date"`
	Recurring         bool            `db:"recurring"`
	AuditFields
}

// Goal is the database representation of a savings goal.
type Goal struct {
	GoalID         string          `db:"goal_id"`
	UserID         string          `db:"user_id"`
	Title          string          `db:"title"`
	Description    string          `db:"description"`
	TargetAmount   decimal.Decimal `db:"target_amount"`
	ReservedAmount decimal.Decimal `db:"reserved_amount"`
	TargetAccount  string          `db:"target_account"`
	Achieved       bool            `db:"achieved"`
	TargetDate     *time.Time      `db:"target_date"`
	AuditFields
}

// InventoryItem is the database representation of a tracked purchase.
type InventoryItem struct {
	ItemID      string          `db:"item_id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	Category    string          `db:"category"`
	Quantity    int             `db:"quantity"`
	Unit        string          `db:"unit"`
	Priority    string          `db:"priority"`
	ListType    string          `db:"list_type"`
	NeededBy    *time.Time      `db:"needed_by"`
	TargetValue decimal.Decimal `db:"target_value"`
	Purchased   bool            `db:"purchased"`
	AuditFields
}
