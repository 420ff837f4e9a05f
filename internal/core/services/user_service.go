package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/finbook/finbook_api/internal/middleware"
	"github.com/finbook/finbook_api/internal/utils"
)

// UserServiceConfig carries the token-signing parameters for login.
type UserServiceConfig struct {
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
}

// userService provides registration, authentication and user lookup.
type userService struct {
	userRepo portsrepo.UserRepository
	cfg      UserServiceConfig
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository, cfg UserServiceConfig) portssvc.UserSvc {
	return &userService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.UserSvc = (*userService)(nil)

// Register creates a new user. Duplicate usernames or emails surface as
// ErrDuplicate from the store's unique constraints.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: failed to hash password", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Warn("Failed to register user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Login verifies the credentials and issues a signed access token.
// A wrong email and a wrong password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return "", nil, err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Login failed, password mismatch", slog.String("user_id", user.UserID))
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to sign access token", slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("%w: failed to sign token", apperrors.ErrInternal)
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	return token, user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}
