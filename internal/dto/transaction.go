package dto

import (
	"time"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates in requests, responses
// and CSV files.
const DateLayout = "2006-01-02"

// CreateTransactionRequest defines the data needed to record a transaction.
// Dates travel as YYYY-MM-DD strings; status is optional on the immediate
// flow and validated against the enum when present.
type CreateTransactionRequest struct {
	Description         string                   `json:"description" binding:"required"`
	Amount              decimal.Decimal          `json:"amount" binding:"required"`
	Type                domain.TransactionType   `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Status              domain.TransactionStatus `json:"status"`
	Date                string                   `json:"date" binding:"required"`
	AccountID           string                   `json:"accountID" binding:"required"`
	CategoryID          string                   `json:"categoryID"`
	DueDate             string                   `json:"dueDate"`
	SettlementDate      string                   `json:"settlementDate"`
	Counterparty        string                   `json:"counterparty"`
	Notes               string                   `json:"notes"`
	IsInstallment       bool                     `json:"isInstallment"`
	InstallmentNumber   int                      `json:"installmentNumber"`
	InstallmentCount    int                      `json:"installmentCount"`
	ParentTransactionID string                   `json:"parentTransactionID"`
}

// UpdateTransactionRequest defines the data allowed for updating a
// transaction. Pointers distinguish omitted fields from zero values.
type UpdateTransactionRequest struct {
	Description         *string                   `json:"description"`
	Amount              *decimal.Decimal          `json:"amount"`
	Type                *domain.TransactionType   `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Status              *domain.TransactionStatus `json:"status"`
	Date                *string                   `json:"date"`
	AccountID           *string                   `json:"accountID"`
	CategoryID          *string                   `json:"categoryID"`
	DueDate             *string                   `json:"dueDate"`
	SettlementDate      *string                   `json:"settlementDate"`
	Counterparty        *string                   `json:"counterparty"`
	Notes               *string                   `json:"notes"`
	IsInstallment       *bool                     `json:"isInstallment"`
	InstallmentNumber   *int                      `json:"installmentNumber"`
	InstallmentCount    *int                      `json:"installmentCount"`
	ParentTransactionID *string                   `json:"parentTransactionID"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID       string                   `json:"transactionID"`
	Description         string                   `json:"description"`
	Amount              decimal.Decimal          `json:"amount"`
	Type                domain.TransactionType   `json:"type"`
	Status              domain.TransactionStatus `json:"status"`
	Date                string                   `json:"date"`
	AccountID           string                   `json:"accountID"`
	CategoryID          string                   `json:"categoryID,omitempty"`
	DueDate             string                   `json:"dueDate,omitempty"`
	SettlementDate      string                   `json:"settlementDate,omitempty"`
	Counterparty        string                   `json:"counterparty,omitempty"`
	Notes               string                   `json:"notes,omitempty"`
	IsInstallment       bool                     `json:"isInstallment"`
	InstallmentNumber   int                      `json:"installmentNumber,omitempty"`
	InstallmentCount    int                      `json:"installmentCount,omitempty"`
	ParentTransactionID string                   `json:"parentTransactionID,omitempty"`
	CreatedAt           time.Time                `json:"createdAt"`
	LastUpdatedAt       time.Time                `json:"lastUpdatedAt"`
}

// AgendaEntryResponse is a scheduled transaction embellished with its
// account name for list views.
type AgendaEntryResponse struct {
	TransactionResponse
	AccountName string `json:"accountName"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ImportRowError identifies one rejected CSV row. Row numbering counts the
// header as row 1, so the first data row is row 2.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult is the multi-status report for a bulk import. Imported counts
// the rows that were (or would have been) committed; when Errors is
// non-empty nothing was written.
type ImportResult struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors"`
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       txn.TransactionID,
		Description:         txn.Description,
		Amount:              txn.Amount,
		Type:                txn.Type,
		Status:              txn.Status,
		Date:                txn.Date.Format(DateLayout),
		AccountID:           txn.AccountID,
		CategoryID:          txn.CategoryID,
		DueDate:             formatDate(txn.DueDate),
		SettlementDate:      formatDate(txn.SettlementDate),
		Counterparty:        txn.Counterparty,
		Notes:               txn.Notes,
		IsInstallment:       txn.IsInstallment,
		InstallmentNumber:   txn.InstallmentNumber,
		InstallmentCount:    txn.InstallmentCount,
		ParentTransactionID: txn.ParentTransactionID,
		CreatedAt:           txn.CreatedAt,
		LastUpdatedAt:       txn.LastUpdatedAt,
	}
}

// ToListTransactionsResponse converts a slice of domain.Transaction to the list DTO.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res}
}
