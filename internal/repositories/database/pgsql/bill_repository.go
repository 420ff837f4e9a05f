package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbook/finbook_api/internal/apperrors"
	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	"github.com/finbook/finbook_api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBillRepository persists bills in Postgres, owner-scoped.
type PgxBillRepository struct {
	BaseRepository
}

// NewPgxBillRepository creates a new repository for bill data.
func NewPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepository {
	return &PgxBillRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BillRepository = (*PgxBillRepository)(nil)

func toDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:            m.BillID,
		UserID:            m.UserID,
		Description:       m.Description,
		TotalAmount:       m.TotalAmount,
		Installments:      m.Installments,
		InstallmentAmount: m.InstallmentAmount,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		Recurring:         m.Recurring,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const billColumns = `bill_id, user_id, description, total_amount, installments, installment_amount, start_date, end_date, recurring, created_at, created_by, last_updated_at, last_updated_by`

func scanBill(row pgx.Row) (*domain.Bill, error) {
	var m models.Bill
	err := row.Scan(
		&m.BillID, &m.UserID, &m.Description, &m.TotalAmount, &m.Installments,
		&m.InstallmentAmount, &m.StartDate, &m.EndDate, &m.Recurring,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan bill row: %w", err)
	}
	d := toDomainBill(m)
	return &d, nil
}

// SaveBill inserts a new bill.
func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		bill.BillID, bill.UserID, bill.Description, bill.TotalAmount, bill.Installments,
		bill.InstallmentAmount, bill.StartDate, bill.EndDate, bill.Recurring,
		bill.CreatedAt, bill.CreatedBy, bill.LastUpdatedAt, bill.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bill %s: %w", bill.BillID, err)
	}
	return nil
}

// FindBillByID retrieves a bill by ID, scoped to the owner.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, billID string, userID string) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE bill_id = $1 AND user_id = $2;`
	return scanBill(r.Pool.QueryRow(ctx, query, billID, userID))
}

// ListBillsByUser retrieves every bill of the user, earliest start date first.
func (r *PgxBillRepository) ListBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE user_id = $1 ORDER BY start_date ASC NULLS LAST, created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills for user %s: %w", userID, err)
	}
	defer rows.Close()

	bills := []domain.Bill{}
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill rows: %w", err)
	}
	return bills, nil
}

// UpdateBill updates the mutable fields of a bill.
func (r *PgxBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	query := `
		UPDATE bills
		SET description = $3, total_amount = $4, installments = $5, installment_amount = $6, start_date = $7, end_date = $8, recurring = $9, last_updated_at = $10, last_updated_by = $11
		WHERE bill_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		bill.BillID, bill.UserID, bill.Description, bill.TotalAmount, bill.Installments,
		bill.InstallmentAmount, bill.StartDate, bill.EndDate, bill.Recurring,
		bill.LastUpdatedAt, bill.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill %s: %w", bill.BillID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBill removes a bill.
func (r *PgxBillRepository) DeleteBill(ctx context.Context, billID string, userID string) error {
	query := `DELETE FROM bills WHERE bill_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, billID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bill %s: %w", billID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
