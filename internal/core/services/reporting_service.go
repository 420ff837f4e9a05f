package services

import (
	"context"
	"time"

	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
)

// incomeVsExpenseMonths is the window of the dashboard month-by-month chart.
const incomeVsExpenseMonths = 6

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepository) portssvc.ReportingSvc {
	return &reportingService{reportingRepo: reportingRepo, accountRepo: accountRepo}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

func (s *reportingService) CategorySpending(ctx context.Context, userID string, from, to *time.Time) ([]domain.CategorySummary, error) {
	return s.reportingRepo.SumByCategory(ctx, userID, domain.Expense, from, to)
}

func (s *reportingService) CategoryIncome(ctx context.Context, userID string, from, to *time.Time) ([]domain.CategorySummary, error) {
	return s.reportingRepo.SumByCategory(ctx, userID, domain.Income, from, to)
}

func (s *reportingService) IncomeVsExpense(ctx context.Context, userID string) ([]domain.MonthlyTotal, error) {
	return s.reportingRepo.MonthlyTotals(ctx, userID, incomeVsExpenseMonths)
}

func (s *reportingService) AccountBalances(ctx context.Context, userID string) ([]domain.AccountBalance, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	balances := make([]domain.AccountBalance, len(accounts))
	for i, acc := range accounts {
		balances[i] = domain.AccountBalance{
			AccountID: acc.AccountID,
			Name:      acc.Name,
			Balance:   acc.CurrentBalance,
		}
	}
	return balances, nil
}
