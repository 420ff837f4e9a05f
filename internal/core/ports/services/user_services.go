package services

import (
	"context"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/dto"
)

// UserSvc exposes registration, login and user lookup.
type UserSvc interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	// Login verifies the credentials and returns a signed access token
	// alongside the user.
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
