package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/repository"
)

type GoalService struct {
	goalRepo *repository.GoalRepository
	log      *zap.Logger
}

func NewGoalService(goalRepo *repository.GoalRepository, log *zap.Logger) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		log:      log.Named("goals"),
	}
}

// LogGoal records a new savings goal, active from creation.
func (s *GoalService) LogGoal(ctx context.Context, user *models.User, goal *models.Goal) (*models.Goal, error) {
	goal.WhatsappID = user.WhatsappID
	if goal.GoalName == "" {
		goal.GoalName = "My Goal"
	}
	goal.IsActive = true

	if _, err := s.goalRepo.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}

	s.log.Info("goal logged",
		zap.String("whatsapp_id", user.WhatsappID),
		zap.String("goal", goal.GoalName),
		zap.Float64("amount", goal.GoalAmount))

	return goal, nil
}

// ActiveGoals lists active goals, earliest target date first.
func (s *GoalService) ActiveGoals(ctx context.Context, whatsappID string) ([]models.Goal, error) {
	return s.goalRepo.GetActiveGoals(ctx, whatsappID)
}

// EarliestTargetGoal returns the active goal with the nearest target date,
// or nil when the user has no dated active goal.
func (s *GoalService) EarliestTargetGoal(ctx context.Context, whatsappID string) (*models.Goal, error) {
	goals, err := s.goalRepo.GetActiveGoals(ctx, whatsappID)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		if goals[i].GoalTargetDate != nil {
			return &goals[i], nil
		}
	}
	return nil, nil
}
