package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook_api/internal/core/domain"
	portsrepo "github.com/finbook/finbook_api/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_api/internal/core/ports/services"
	"github.com/finbook/finbook_api/internal/dto"
	"github.com/shopspring/decimal"
)

type goalService struct {
	goalRepo portsrepo.GoalRepository
}

// NewGoalService creates a new goal service.
func NewGoalService(goalRepo portsrepo.GoalRepository) portssvc.GoalSvc {
	return &goalService{goalRepo: goalRepo}
}

var _ portssvc.GoalSvc = (*goalService)(nil)

func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	goal := domain.Goal{
		GoalID:         uuid.NewString(),
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		TargetAmount:   req.TargetAmount,
		ReservedAmount: decimal.Zero,
		TargetAccount:  req.TargetAccount,
		TargetDate:     targetDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *goalService) GetGoalByID(ctx context.Context, userID string, goalID string) (*domain.Goal, error) {
	return s.goalRepo.FindGoalByID(ctx, goalID, userID)
}

func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goalRepo.ListGoalsByUser(ctx, userID)
}

func (s *goalService) UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
	}
	if req.ReservedAmount != nil {
		goal.ReservedAmount = *req.ReservedAmount
	}
	if req.TargetAccount != nil {
		goal.TargetAccount = *req.TargetAccount
	}
	if req.Achieved != nil {
		goal.Achieved = *req.Achieved
	}
	if req.TargetDate != nil {
		targetDate, err := parseOptionalDate(*req.TargetDate)
		if err != nil {
			return nil, err
		}
		goal.TargetDate = targetDate
	}
	goal.LastUpdatedAt = time.Now().UTC()
	goal.LastUpdatedBy = userID

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	if _, err := s.goalRepo.FindGoalByID(ctx, goalID, userID); err != nil {
		return err
	}
	return s.goalRepo.DeleteGoal(ctx, goalID, userID)
}
