package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	"github.com/finbook/finbook_api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository persists transactions in Postgres. Every mutation
// runs in one database transaction: the affected account rows are locked
// first, then the transaction row change and the balance deltas are applied
// together, so balances and rows can never drift apart.
type PgxTransactionRepository struct {
	BaseRepository
}

// NewPgxTransactionRepository creates a new repository for transaction data.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strFromPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:       d.TransactionID,
		UserID:              d.UserID,
		AccountID:           d.AccountID,
		CategoryID:          strPtrOrNil(d.CategoryID),
		Description:         d.Description,
		Amount:              d.Amount,
		TxnType:             string(d.Type),
		Status:              string(d.Status),
		TxnDate:             d.Date,
		DueDate:             d.DueDate,
		SettlementDate:      d.SettlementDate,
		Counterparty:        d.Counterparty,
		Notes:               d.Notes,
		IsInstallment:       d.IsInstallment,
		InstallmentNumber:   d.InstallmentNumber,
		InstallmentCount:    d.InstallmentCount,
		ParentTransactionID: strPtrOrNil(d.ParentTransactionID),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:       m.TransactionID,
		UserID:              m.UserID,
		AccountID:           m.AccountID,
		CategoryID:          strFromPtr(m.CategoryID),
		Description:         m.Description,
		Amount:              m.Amount,
		Type:                domain.TransactionType(m.TxnType),
		Status:              domain.TransactionStatus(m.Status),
		Date:                m.TxnDate,
		DueDate:             m.DueDate,
		SettlementDate:      m.SettlementDate,
		Counterparty:        m.Counterparty,
		Notes:               m.Notes,
		IsInstallment:       m.IsInstallment,
		InstallmentNumber:   m.InstallmentNumber,
		InstallmentCount:    m.InstallmentCount,
		ParentTransactionID: strFromPtr(m.ParentTransactionID),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, user_id, account_id, category_id, description, amount, txn_type, status, txn_date, due_date, settlement_date, counterparty, notes, is_installment, installment_number, installment_count, parent_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.UserID, &m.AccountID, &m.CategoryID, &m.Description,
		&m.Amount, &m.TxnType, &m.Status, &m.TxnDate, &m.DueDate, &m.SettlementDate,
		&m.Counterparty, &m.Notes, &m.IsInstallment, &m.InstallmentNumber,
		&m.InstallmentCount, &m.ParentTransactionID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction row: %w", err)
	}
	d := toDomainTransaction(m)
	return &d, nil
}

// lockAccounts locks the given account rows FOR UPDATE inside tx and fails
// with ErrNotFound when any of them is missing for this owner.
func (r *PgxTransactionRepository) lockAccounts(ctx context.Context, tx pgx.Tx, userID string, balanceChanges map[string]decimal.Decimal) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}

	query := `SELECT account_id FROM accounts WHERE account_id = ANY($1) AND user_id = $2 FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs, userID)
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked account rows: %w", err)
	}
	if locked != len(accountIDs) {
		return fmt.Errorf("%w: could not find or lock all affected accounts", apperrors.ErrNotFound)
	}
	return nil
}

// applyBalanceChanges batches balance updates for the locked accounts.
func (r *PgxTransactionRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, userID string, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	query := `
		UPDATE accounts
		SET current_balance = COALESCE(current_balance, 0) + $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND user_id = $2;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, userID, delta, now, userID)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}

func insertTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID, m.UserID, m.AccountID, m.CategoryID, m.Description,
		m.Amount, m.TxnType, m.Status, m.TxnDate, m.DueDate, m.SettlementDate,
		m.Counterparty, m.Notes, m.IsInstallment, m.InstallmentNumber,
		m.InstallmentCount, m.ParentTransactionID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SaveTransaction inserts the row and applies its balance deltas atomically.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, txn.UserID, balanceChanges); err != nil {
		return err
	}
	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := r.applyBalanceChanges(ctx, tx, txn.UserID, balanceChanges, txn.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveTransactions inserts a whole batch plus its net balance deltas in one
// database transaction. Nothing is written if any insert fails.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	if len(txns) == 0 {
		return nil
	}
	userID := txns[0].UserID
	now := txns[0].LastUpdatedAt

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, userID, balanceChanges); err != nil {
		return err
	}
	for _, txn := range txns {
		if err := insertTransactionTx(ctx, tx, txn); err != nil {
			return err
		}
	}
	if err := r.applyBalanceChanges(ctx, tx, userID, balanceChanges, now); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateTransaction replaces the row and applies the net balance deltas of
// the change atomically.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	m := toModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, txn.UserID, balanceChanges); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET account_id = $3, category_id = $4, description = $5, amount = $6, txn_type = $7, status = $8,
			txn_date = $9, due_date = $10, settlement_date = $11, counterparty = $12, notes = $13,
			is_installment = $14, installment_number = $15, installment_count = $16, parent_transaction_id = $17,
			last_updated_at = $18, last_updated_by = $19
		WHERE transaction_id = $1 AND user_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID, m.UserID, m.AccountID, m.CategoryID, m.Description,
		m.Amount, m.TxnType, m.Status, m.TxnDate, m.DueDate, m.SettlementDate,
		m.Counterparty, m.Notes, m.IsInstallment, m.InstallmentNumber,
		m.InstallmentCount, m.ParentTransactionID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, txn.UserID, balanceChanges, txn.LastUpdatedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the row and applies the reversal deltas
// atomically. A row still referenced as installment parent surfaces as
// ErrConflict.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, userID string, balanceChanges map[string]decimal.Decimal, deletedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.lockAccounts(ctx, tx, userID, balanceChanges); err != nil {
		return err
	}

	query := `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	cmdTag, err := tx.Exec(ctx, query, transactionID, userID)
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("%w: transaction still has installment children", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.applyBalanceChanges(ctx, tx, userID, balanceChanges, deletedAt); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by ID, scoped to the owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	return scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
}

// ListTransactionsByUser retrieves every transaction of the user, newest
// first, or by due date ascending for the scheduled view.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, orderByDueDate bool) ([]domain.Transaction, error) {
	order := `ORDER BY txn_date DESC, created_at DESC`
	if orderByDueDate {
		order = `ORDER BY due_date ASC NULLS LAST, txn_date ASC`
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 ` + order + `;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// ListChildTransactions retrieves the installment children of a transaction.
func (r *PgxTransactionRepository) ListChildTransactions(ctx context.Context, parentTransactionID string, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE parent_transaction_id = $1 AND user_id = $2 ORDER BY installment_number ASC;`

	rows, err := r.Pool.Query(ctx, query, parentTransactionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child transactions of %s: %w", parentTransactionID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating child transaction rows: %w", err)
	}
	return txns, nil
}
