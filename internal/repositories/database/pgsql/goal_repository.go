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

// PgxGoalRepository persists savings goals in Postgres, owner-scoped.
type PgxGoalRepository struct {
	BaseRepository
}

// NewPgxGoalRepository creates a new repository for goal data.
func NewPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepository {
	return &PgxGoalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.GoalRepository = (*PgxGoalRepository)(nil)

func toDomainGoal(m models.Goal) domain.Goal {
	return domain.Goal{
		GoalID:         m.GoalID,
		UserID:         m.UserID,
		Title:          m.Title,
		Description:    m.Description,
		TargetAmount:   m.TargetAmount,
		ReservedAmount: m.ReservedAmount,
		TargetAccount:  m.TargetAccount,
		Achieved:       m.Achieved,
		TargetDate:     m.TargetDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const goalColumns = `goal_id, user_id, title, description, target_amount, reserved_amount, target_account, achieved, target_date, created_at, created_by, last_updated_at, last_updated_by`

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var m models.Goal
	err := row.Scan(
		&m.GoalID, &m.UserID, &m.Title, &m.Description, &m.TargetAmount,
		&m.ReservedAmount, &m.TargetAccount, &m.Achieved, &m.TargetDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan goal row: %w", err)
	}
	d := toDomainGoal(m)
	return &d, nil
}

// SaveGoal inserts a new goal.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		goal.GoalID, goal.UserID, goal.Title, goal.Description, goal.TargetAmount,
		goal.ReservedAmount, goal.TargetAccount, goal.Achieved, goal.TargetDate,
		goal.CreatedAt, goal.CreatedBy, goal.LastUpdatedAt, goal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save goal %s: %w", goal.GoalID, err)
	}
	return nil
}

// FindGoalByID retrieves a goal by ID, scoped to the owner.
func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID string, userID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1 AND user_id = $2;`
	return scanGoal(r.Pool.QueryRow(ctx, query, goalID, userID))
}

// ListGoalsByUser retrieves every goal of the user, nearest target date first.
func (r *PgxGoalRepository) ListGoalsByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY target_date ASC NULLS LAST, created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals for user %s: %w", userID, err)
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal rows: %w", err)
	}
	return goals, nil
}

// UpdateGoal updates the mutable fields of a goal.
func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	query := `
		UPDATE goals
		SET title = $3, description = $4, target_amount = $5, reserved_amount = $6, target_account = $7, achieved = $8, target_date = $9, last_updated_at = $10, last_updated_by = $11
		WHERE goal_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		goal.GoalID, goal.UserID, goal.Title, goal.Description, goal.TargetAmount,
		goal.ReservedAmount, goal.TargetAccount, goal.Achieved, goal.TargetDate,
		goal.LastUpdatedAt, goal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal %s: %w", goal.GoalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID string, userID string) error {
	query := `DELETE FROM goals WHERE goal_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
