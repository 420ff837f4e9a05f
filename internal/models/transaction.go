package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of a money movement.
// Nullable columns use pointers so pgx scans NULL cleanly.
type Transaction struct {
	TransactionID       string          `db:"transaction_id"`
	UserID              string          `db:"user_id"`
	AccountID           string          `db:"account_id"`
	CategoryID          *string         `db:"category_id"`
	Description         string          `db:"description"`
	Amount              decimal.Decimal `db:"amount"`
	TxnType             string          `db:"txn_type"`
	Status              string          `db:"status"`
	TxnDate             time.Time       `db:"txn_date"`
	DueDate             *time.Time      `db:"due_date"`
	SettlementDate      *time.Time      `db:"settlement_date"`
	Counterparty        string          `db:"counterparty"`
	Notes               string          `db:"notes"`
	IsInstallment       bool            `db:"is_installment"`
	InstallmentNumber   int             `db:"installment_number"`
	InstallmentCount    int             `db:"installment_count"`
	ParentTransactionID *string         `db:"parent_transaction_id"`
	AuditFields
}
