package repositories

import (
	"context"
	"time"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository persists transactions together with the account
// balance deltas the write implies. Every mutating method applies the row
// change and the delta map in a single database transaction, locking the
// affected account rows first so concurrent writers serialize.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error
	// SaveTransactions inserts a whole batch plus its net deltas atomically.
	// Nothing is written if any insert fails.
	SaveTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error
	// DeleteTransaction stamps the affected accounts with deletedAt, keeping
	// the audit timestamp under the caller's control like Save/Update do.
	DeleteTransaction(ctx context.Context, transactionID string, userID string, balanceChanges map[string]decimal.Decimal, deletedAt time.Time) error
	FindTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error)
	// ListTransactionsByUser orders by transaction date descending when
	// orderByDueDate is false, by due date ascending otherwise.
	ListTransactionsByUser(ctx context.Context, userID string, orderByDueDate bool) ([]domain.Transaction, error)
	ListChildTransactions(ctx context.Context, parentTransactionID string, userID string) ([]domain.Transaction, error)
}
