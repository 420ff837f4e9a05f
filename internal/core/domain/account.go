package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a financial account.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	Wallet     AccountType = "WALLET"
	CreditCard AccountType = "CREDIT_CARD"
	Investment AccountType = "INVESTMENT"
	OtherAcct  AccountType = "OTHER"
)

// Account represents a financial account within the core domain.
// CurrentBalance is derived state: it starts at OpeningBalance and is only
// mutated by posted transaction effects (or an explicit override on update).
type Account struct {
	AccountID      string          `json:"accountID"` // Primary key (UUID)
	UserID         string          `json:"userID"`    // Owner, FK -> users.user_id
	Name           string          `json:"name"`      // Unique per owner
	AccountType    AccountType     `json:"accountType"`
	Institution    string          `json:"institution"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Notes          string          `json:"notes"`
	AuditFields
}
