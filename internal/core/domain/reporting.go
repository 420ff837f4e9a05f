package domain

import "github.com/shopspring/decimal"

// CategorySummary is a grouped total for one category over a period.
type CategorySummary struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlyTotal holds the settled income and expense sums for one month.
type MonthlyTotal struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// AccountBalance is a point-in-time balance snapshot for the dashboard.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}
