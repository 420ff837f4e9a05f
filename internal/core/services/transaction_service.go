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

// transactionService implements the transaction lifecycle for one posting
// policy. The immediate and scheduled flows are the same service with a
// different policy value.
type transactionService struct {
	policy       PostingPolicy
	txnRepo      portsrepo.TransactionRepository
	accountRepo  portsrepo.AccountRepository
	categoryRepo portsrepo.CategoryRepository
}

// NewTransactionService creates the immediate-posting transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountRepository, categoryRepo portsrepo.CategoryRepository) portssvc.TransactionSvc {
	return &transactionService{
		policy:       PostImmediately,
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// NewAgendaService creates the scheduled-transaction service, which posts
// balance effects only for settled transactions.
func NewAgendaService(txnRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountRepository, categoryRepo portsrepo.CategoryRepository) portssvc.TransactionSvc {
	return &transactionService{
		policy:       PostWhenSettled,
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.TransactionSvc = (*transactionService)(nil)

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return t, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// validateAmount enforces the per-flow amount rule: never negative, and the
// scheduled flow additionally rejects zero.
func (s *transactionService) validateAmount(txn domain.Transaction) error {
	if txn.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if s.policy == PostWhenSettled && !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	return nil
}

// validateReferences checks that the account, optional category and optional
// parent transaction exist and belong to the user. A parent that is itself
// an installment child is rejected so the linkage stays one level deep.
func (s *transactionService) validateReferences(ctx context.Context, txn domain.Transaction) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID, txn.UserID); err != nil {
		return fmt.Errorf("account %s: %w", txn.AccountID, err)
	}
	if txn.CategoryID != "" {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, txn.CategoryID, txn.UserID); err != nil {
			return fmt.Errorf("category %s: %w", txn.CategoryID, err)
		}
	}
	if txn.ParentTransactionID != "" {
		parent, err := s.txnRepo.FindTransactionByID(ctx, txn.ParentTransactionID, txn.UserID)
		if err != nil {
			return fmt.Errorf("parent transaction %s: %w", txn.ParentTransactionID, err)
		}
		if parent.ParentTransactionID != "" {
			return fmt.Errorf("%w: parent transaction %s is itself an installment child", apperrors.ErrValidation, txn.ParentTransactionID)
		}
	}
	return nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// An omitted status stays Pending on both flows. The immediate flow
	// posts the balance effect regardless of status, so a pending row there
	// still counts.
	status := req.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	settlementDate, err := parseOptionalDate(req.SettlementDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:       uuid.NewString(),
		UserID:              userID,
		AccountID:           req.AccountID,
		CategoryID:          req.CategoryID,
		Description:         req.Description,
		Amount:              req.Amount,
		Type:                req.Type,
		Status:              status,
		Date:                date,
		DueDate:             dueDate,
		SettlementDate:      settlementDate,
		Counterparty:        req.Counterparty,
		Notes:               req.Notes,
		IsInstallment:       req.IsInstallment,
		InstallmentNumber:   req.InstallmentNumber,
		InstallmentCount:    req.InstallmentCount,
		ParentTransactionID: req.ParentTransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.validateAmount(txn); err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, txn); err != nil {
		return nil, err
	}

	changes := s.policy.CreateDeltas(txn)
	if err := s.txnRepo.SaveTransaction(ctx, txn, changes); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return s.txnRepo.ListTransactionsByUser(ctx, userID, s.policy == PostWhenSettled)
}

func (s *transactionService) ListChildTransactions(ctx context.Context, userID string, transactionID string) ([]domain.Transaction, error) {
	if _, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID); err != nil {
		return nil, err
	}
	return s.txnRepo.ListChildTransactions(ctx, transactionID, userID)
}

// applyUpdate copies the provided fields of req onto a copy of old.
func applyUpdate(old domain.Transaction, req dto.UpdateTransactionRequest) (domain.Transaction, error) {
	updated := old
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return domain.Transaction{}, err
		}
		updated.Date = date
	}
	if req.AccountID != nil {
		updated.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		updated.CategoryID = *req.CategoryID
	}
	if req.DueDate != nil {
		dueDate, err := parseOptionalDate(*req.DueDate)
		if err != nil {
			return domain.Transaction{}, err
		}
		updated.DueDate = dueDate
	}
	if req.SettlementDate != nil {
		settlementDate, err := parseOptionalDate(*req.SettlementDate)
		if err != nil {
			return domain.Transaction{}, err
		}
		updated.SettlementDate = settlementDate
	}
	if req.Counterparty != nil {
		updated.Counterparty = *req.Counterparty
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}
	if req.IsInstallment != nil {
		updated.IsInstallment = *req.IsInstallment
	}
	if req.InstallmentNumber != nil {
		updated.InstallmentNumber = *req.InstallmentNumber
	}
	if req.InstallmentCount != nil {
		updated.InstallmentCount = *req.InstallmentCount
	}
	if req.ParentTransactionID != nil {
		updated.ParentTransactionID = *req.ParentTransactionID
	}
	return updated, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	old, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := applyUpdate(*old, req)
	if err != nil {
		return nil, err
	}
	if !updated.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, updated.Status)
	}
	if err := s.validateAmount(updated); err != nil {
		return nil, err
	}
	if err := s.validateReferences(ctx, updated); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	changes := s.policy.UpdateDeltas(*old, updated)
	if err := s.txnRepo.UpdateTransaction(ctx, updated, changes); err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	changes := s.policy.DeleteDeltas(*txn)
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, userID, changes, time.Now().UTC()); err != nil {
		logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) AccountNames(ctx context.Context, userID string, accountIDs []string) (map[string]string, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, userID, accountIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(accounts))
	for id, acc := range accounts {
		names[id] = acc.Name
	}
	return names, nil
}
