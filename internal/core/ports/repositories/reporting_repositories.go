package repositories

import (
	"context"
	"time"

	"github.com/finbook/finbook_api/internal/core/domain"
)

// ReportingRepository runs the read-only aggregation queries behind the
// dashboard endpoints.
type ReportingRepository interface {
	// SumByCategory groups settled transaction amounts of the given type by
	// category. Nil bounds leave that side of the date range open.
	SumByCategory(ctx context.Context, userID string, txnType domain.TransactionType, from, to *time.Time) ([]domain.CategorySummary, error)
	// MonthlyTotals returns income/expense sums per month for the last
	// `months` calendar months, oldest first.
	MonthlyTotals(ctx context.Context, userID string, months int) ([]domain.MonthlyTotal, error)
}
