package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/repository"
)

type UserService struct {
	userRepo *repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log.Named("users"),
	}
}

// FindOrCreateUser resolves a WhatsApp identity to a user document, creating
// one on first contact and backfilling the display name when it arrives later.
func (s *UserService) FindOrCreateUser(ctx context.Context, whatsappID, profileName string) (*models.User, error) {
	user, err := s.userRepo.GetUserByWhatsappID(ctx, whatsappID)
	if err == nil {
		if profileName != "" && user.Name == nil {
			user.Name = &profileName
			if err := s.userRepo.SaveUser(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = &models.User{
		ID:                uuid.NewString(),
		WhatsappID:        whatsappID,
		PreferredLanguage: models.LanguageEnglish,
		WorkHoursPerDay:   8,
		WorkDaysPerMonth:  22,
	}
	if profileName != "" {
		user.Name = &profileName
	}

	if _, err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("new user created", zap.String("whatsapp_id", whatsappID))
	return user, nil
}

// Save persists the user's mutable state (streak, history, salary, flags).
func (s *UserService) Save(ctx context.Context, user *models.User) error {
	return s.userRepo.SaveUser(ctx, user)
}

// UpdateSalary sets the monthly salary and persists it.
func (s *UserService) UpdateSalary(ctx context.Context, user *models.User, amount float64) error {
	user.MonthlySalary = &amount
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return err
	}
	s.log.Info("salary updated",
		zap.String("whatsapp_id", user.WhatsappID),
		zap.Float64("amount", amount))
	return nil
}
