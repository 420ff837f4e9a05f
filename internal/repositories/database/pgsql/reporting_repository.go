package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository runs the dashboard aggregation queries. Only settled
// transactions count toward the reported totals.
type PgxReportingRepository struct {
	BaseRepository
}

// NewPgxReportingRepository creates a new repository for reporting queries.
func NewPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// SumByCategory groups settled transaction amounts of the given type by
// category. Uncategorized transactions are excluded.
func (r *PgxReportingRepository) SumByCategory(ctx context.Context, userID string, txnType domain.TransactionType, from, to *time.Time) ([]domain.CategorySummary, error) {
	query := `
		SELECT c.category_id, c.name, COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1
		  AND t.txn_type = $2
		  AND t.status IN ('PAID', 'RECEIVED')
		  AND ($3::timestamptz IS NULL OR t.txn_date >= $3)
		  AND ($4::timestamptz IS NULL OR t.txn_date <= $4)
		GROUP BY c.category_id, c.name
		ORDER BY 3 DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(txnType), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query category sums for user %s: %w", userID, err)
	}
	defer rows.Close()

	summaries := []domain.CategorySummary{}
	for rows.Next() {
		var s domain.CategorySummary
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category summary row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category summary rows: %w", err)
	}
	return summaries, nil
}

// MonthlyTotals returns income and expense sums per month over the last
// `months` calendar months, oldest first. Months with no settled activity
// are absent from the result.
func (r *PgxReportingRepository) MonthlyTotals(ctx context.Context, userID string, months int) ([]domain.MonthlyTotal, error) {
	query := `
		SELECT to_char(t.txn_date, 'YYYY-MM') AS month,
			COALESCE(SUM(t.amount) FILTER (WHERE t.txn_type = 'INCOME'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.txn_type = 'EXPENSE'), 0)
		FROM transactions t
		WHERE t.user_id = $1
		  AND t.status IN ('PAID', 'RECEIVED')
		  AND t.txn_date >= date_trunc('month', now()) - ($2 - 1) * INTERVAL '1 month'
		GROUP BY 1
		ORDER BY 1 ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, months)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals for user %s: %w", userID, err)
	}
	defer rows.Close()

	totals := []domain.MonthlyTotal{}
	for rows.Next() {
		var t domain.MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Income, &t.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly total rows: %w", err)
	}
	return totals, nil
}
