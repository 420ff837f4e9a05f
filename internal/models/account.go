package models

import (
	"github.com/shopspring/decimal"
)

// Account is the database representation of a financial account.
type Account struct {
	AccountID      string          `db:"account_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	AccountType    string          `db:"account_type"`
	Institution    string          `db:"institution"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	Notes          string          `db:"notes"`
	AuditFields
}
