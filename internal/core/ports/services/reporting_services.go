package services

import (
	"context"
	"time"

	"github.com/finbook/finbook_api/internal/core/domain"
)

// ReportingSvc exposes the dashboard aggregations.
type ReportingSvc interface {
	CategorySpending(ctx context.Context, userID string, from, to *time.Time) ([]domain.CategorySummary, error)
	CategoryIncome(ctx context.Context, userID string, from, to *time.Time) ([]domain.CategorySummary, error)
	// IncomeVsExpense returns monthly totals for the last six months.
	IncomeVsExpense(ctx context.Context, userID string) ([]domain.MonthlyTotal, error)
	AccountBalances(ctx context.Context, userID string) ([]domain.AccountBalance, error)
}
