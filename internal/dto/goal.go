package dto

import (
	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to create a savings goal.
type CreateGoalRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"targetAmount" binding:"required"`
	TargetAccount string          `json:"targetAccount"`
	TargetDate    string          `json:"targetDate"`
}

// UpdateGoalRequest defines the data allowed for updating a goal.
type UpdateGoalRequest struct {
	Title          *string          `json:"title"`
	Description    *string          `json:"description"`
	TargetAmount   *decimal.Decimal `json:"targetAmount"`
	ReservedAmount *decimal.Decimal `json:"reservedAmount"`
	TargetAccount  *string          `json:"targetAccount"`
	Achieved       *bool            `json:"achieved"`
	TargetDate     *string          `json:"targetDate"`
}

// GoalResponse defines the data returned for a goal.
type GoalResponse struct {
	GoalID         string          `json:"goalID"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	TargetAmount   decimal.Decimal `json:"targetAmount"`
	ReservedAmount decimal.Decimal `json:"reservedAmount"`
	TargetAccount  string          `json:"targetAccount"`
	Achieved       bool            `json:"achieved"`
	TargetDate     string          `json:"targetDate,omitempty"`
}

// ToGoalResponse converts a domain.Goal to GoalResponse DTO.
func ToGoalResponse(goal *domain.Goal) GoalResponse {
	return GoalResponse{
		GoalID:         goal.GoalID,
		Title:          goal.Title,
		Description:    goal.Description,
		TargetAmount:   goal.TargetAmount,
		ReservedAmount: goal.ReservedAmount,
		TargetAccount:  goal.TargetAccount,
		Achieved:       goal.Achieved,
		TargetDate:     formatDate(goal.TargetDate),
	}
}
