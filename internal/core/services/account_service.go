package services

import (
	"context"
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
)

// accountService provides account CRUD on top of the repository.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvc {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvc = (*accountService)(nil)

// CreateAccount creates an account with its current balance seeded from the
// opening balance. The per-owner name uniqueness is enforced by the store
// and surfaces as ErrDuplicate.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		AccountType:    req.AccountType,
		Institution:    req.Institution,
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Warn("Failed to save account", slog.String("account_name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID, userID)
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccountsByUser(ctx, userID)
}

// UpdateAccount patches the provided fields. A balance override replaces the
// derived current balance directly and is applied after everything else.
func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	if req.Institution != nil {
		account.Institution = *req.Institution
	}
	if req.OpeningBalance != nil {
		account.OpeningBalance = *req.OpeningBalance
	}
	if req.Notes != nil {
		account.Notes = *req.Notes
	}
	if req.BalanceOverride != nil {
		logger.Warn("Applying direct balance override",
			slog.String("account_id", accountID),
			slog.String("old_balance", account.CurrentBalance.String()),
			slog.String("new_balance", req.BalanceOverride.String()),
		)
		account.CurrentBalance = *req.BalanceOverride
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Warn("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account unless transactions still reference it.
func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID, userID); err != nil {
		return err
	}

	count, err := s.accountRepo.CountTransactionsByAccount(ctx, accountID, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: account has %d transactions and cannot be deleted", apperrors.ErrConflict, count)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID, userID); err != nil {
		logger.Error("Failed to delete account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}
