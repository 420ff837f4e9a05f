package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a money movement.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionStatus tracks the settlement state of a scheduled transaction.
// Only Paid and Received count toward account balances in the scheduled flow.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusPaid      TransactionStatus = "PAID"
	StatusReceived  TransactionStatus = "RECEIVED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Settled reports whether the status represents money that has actually moved.
func (s TransactionStatus) Settled() bool {
	return s == StatusPaid || s == StatusReceived
}

// Valid reports whether s is one of the known statuses.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusReceived, StatusCancelled:
		return true
	}
	return false
}

// Transaction represents a single money movement against one account.
// Amount is always non-negative; the direction comes from Type.
type Transaction struct {
	TransactionID       string            `json:"transactionID"` // Primary key (UUID)
	UserID              string            `json:"userID"`        // Owner, FK -> users.user_id
	AccountID           string            `json:"accountID"`     // FK -> accounts.account_id
	CategoryID          string            `json:"categoryID"`    // Nullable FK -> categories.category_id
	Description         string            `json:"description"`
	Amount              decimal.Decimal   `json:"amount"`
	Type                TransactionType   `json:"type"`
	Status              TransactionStatus `json:"status"`
	Date                time.Time         `json:"date"`
	DueDate             *time.Time        `json:"dueDate"`
	SettlementDate      *time.Time        `json:"settlementDate"`
	Counterparty        string            `json:"counterparty"`
	Notes               string            `json:"notes"`
	IsInstallment       bool              `json:"isInstallment"`
	InstallmentNumber   int               `json:"installmentNumber"`
	InstallmentCount    int               `json:"installmentCount"`
	ParentTransactionID string            `json:"parentTransactionID"` // Nullable, self-referencing; single level only
	AuditFields
}
