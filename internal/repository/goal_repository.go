package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/savezra/whatsapp-bot/internal/models"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO goals (whatsapp_id, goal_name, goal_amount, goal_target_date, saved_so_far, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		goal.WhatsappID, goal.GoalName, goal.GoalAmount, goal.GoalTargetDate,
		goal.SavedSoFar, goal.IsActive,
	).Scan(&goal.ID, &goal.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// GetActiveGoals returns active goals, earliest target date first; goals
// without a target date sort last.
func (r *GoalRepository) GetActiveGoals(ctx context.Context, whatsappID string) ([]models.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, whatsapp_id, goal_name, goal_amount, goal_target_date, saved_so_far, is_active, created_at
		 FROM goals WHERE whatsapp_id = $1 AND is_active = TRUE
		 ORDER BY goal_target_date ASC NULLS LAST, created_at ASC`,
		whatsappID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		goal := models.Goal{}
		var target sql.NullTime
		err := rows.Scan(&goal.ID, &goal.WhatsappID, &goal.GoalName, &goal.GoalAmount,
			&target, &goal.SavedSoFar, &goal.IsActive, &goal.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if target.Valid {
			goal.GoalTargetDate = &target.Time
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}
