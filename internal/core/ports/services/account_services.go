package services

import (
	"context"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/dto"
)

// AccountSvc exposes account CRUD, always scoped to the calling user.
type AccountSvc interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}
