package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
)

type billService struct {
	billRepo portsrepo.BillRepository
}

// NewBillService creates a new bill service.
func NewBillService(billRepo portsrepo.BillRepository) portssvc.BillSvc {
	return &billService{billRepo: billRepo}
}

var _ portssvc.BillSvc = (*billService)(nil)

func (s *billService) CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error) {
	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	installments := req.Installments
	if installments <= 0 {
		installments = 1
	}
	installmentAmount := req.InstallmentAmount
	if installmentAmount.IsZero() {
		installmentAmount = req.TotalAmount.DivRound(decimal.NewFromInt(int64(installments)), 2)
	}

	now := time.Now().UTC()
	bill := domain.Bill{
		BillID:            uuid.NewString(),
		UserID:            userID,
		Description:       req.Description,
		TotalAmount:       req.TotalAmount,
		Installments:      installments,
		InstallmentAmount: installmentAmount,
		StartDate:         startDate,
		EndDate:           endDate,
		Recurring:         req.Recurring,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *billService) GetBillByID(ctx context.Context, userID string, billID string) (*domain.Bill, error) {
	return s.billRepo.FindBillByID(ctx, billID, userID)
}

func (s *billService) ListBills(ctx context.Context, userID string) ([]domain.Bill, error) {
	return s.billRepo.ListBillsByUser(ctx, userID)
}

func (s *billService) UpdateBill(ctx context.Context, userID string, billID string, req dto.UpdateBillRequest) (*domain.Bill, error) {
	bill, err := s.billRepo.FindBillByID(ctx, billID, userID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		bill.Description = *req.Description
	}
	if req.TotalAmount != nil {
		bill.TotalAmount = *req.TotalAmount
	}
	if req.Installments != nil {
		bill.Installments = *req.Installments
	}
	if req.InstallmentAmount != nil {
		bill.InstallmentAmount = *req.InstallmentAmount
	}
	if req.StartDate != nil {
		startDate, err := parseOptionalDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		bill.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseOptionalDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		bill.EndDate = endDate
	}
	if req.Recurring != nil {
		bill.Recurring = *req.Recurring
	}
	bill.LastUpdatedAt = time.Now().UTC()
	bill.LastUpdatedBy = userID

	if err := s.billRepo.UpdateBill(ctx, *bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) DeleteBill(ctx context.Context, userID string, billID string) error {
	if _, err := s.billRepo.FindBillByID(ctx, billID, userID); err != nil {
		return err
	}
	return s.billRepo.DeleteBill(ctx, billID, userID)
}
