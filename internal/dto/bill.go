package dto

import (
	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBillRequest defines the data needed to register a bill.
type CreateBillRequest struct {
	Description       string          `json:"description" binding:"required"`
	TotalAmount       decimal.Decimal `json:"totalAmount" binding:"required"`
	Installments      int             `json:"installments"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	Recurring         bool            `json:"recurring"`
}

// UpdateBillRequest defines the data allowed for updating a bill.
type UpdateBillRequest struct {
	Description       *string          `json:"description"`
	TotalAmount       *decimal.Decimal `json:"totalAmount"`
	Installments      *int             `json:"installments"`
	InstallmentAmount *decimal.Decimal `json:"installmentAmount"`
	StartDate         *string          `json:"startDate"`
	EndDate           *string          `json:"endDate"`
	Recurring         *bool            `json:"recurring"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	BillID            string          `json:"billID"`
	Description       string          `json:"description"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Installments      int             `json:"installments"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	StartDate         string          `json:"startDate,omitempty"`
	EndDate           string          `json:"endDate,omitempty"`
	Recurring         bool            `json:"recurring"`
}

// ToBillResponse converts a domain.Bill to BillResponse DTO.
func ToBillResponse(bill *domain.Bill) BillResponse {
	return BillResponse{
		BillID:            bill.BillID,
		Description:       bill.Description,
		TotalAmount:       bill.TotalAmount,
		Installments:      bill.Installments,
		InstallmentAmount: bill.InstallmentAmount,
		StartDate:         formatDate(bill.StartDate),
		EndDate:           formatDate(bill.EndDate),
		Recurring:         bill.Recurring,
	}
}
