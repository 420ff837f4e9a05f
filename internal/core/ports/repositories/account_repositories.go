package repositories

import (
	"context"

	"github.com/finbook/finbook_api/internal/core/domain"
)

// AccountRepository persists accounts. All lookups are owner-scoped: a row
// belonging to another user is reported as not found.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string, userID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	// DeleteAccount removes the account. It returns ErrConflict while
	// transactions still reference it.
	DeleteAccount(ctx context.Context, accountID string, userID string) error
	CountTransactionsByAccount(ctx context.Context, accountID string, userID string) (int64, error)
}
