package repositories

import (
	"context"

	"github.com/finbook/finbook_api/internal/core/domain"
)

// UserRepository persists users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
