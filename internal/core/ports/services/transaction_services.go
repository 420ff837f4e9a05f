package services

import (
	"context"
	"io"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/dto"
)

// TransactionSvc exposes the transaction lifecycle. Two implementations
// exist behind this interface: one posting every transaction to account
// balances immediately, one posting only settled (paid/received) ones.
type TransactionSvc interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
	ListChildTransactions(ctx context.Context, userID string, transactionID string) ([]domain.Transaction, error)
	// AccountNames resolves account IDs to display names for list views.
	AccountNames(ctx context.Context, userID string, accountIDs []string) (map[string]string, error)
	// ImportCSV stages every row of r, then commits all of them atomically
	// when no row failed. The result reports per-row errors either way.
	ImportCSV(ctx context.Context, userID string, r io.Reader) (*dto.ImportResult, error)
	// ExportCSV writes every transaction of the user to w using the same
	// column layout ImportCSV accepts.
	ExportCSV(ctx context.Context, userID string, w io.Writer) error
}
