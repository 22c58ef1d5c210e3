package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/repository"
)

type DebtService struct {
	debtRepo *repository.DebtRepository
	log      *zap.Logger
}

func NewDebtService(debtRepo *repository.DebtRepository, log *zap.Logger) *DebtService {
	return &DebtService{
		debtRepo: debtRepo,
		log:      log.Named("debts"),
	}
}

// ClassifyDebt buckets a debt by annual interest rate. Both boundaries are
// inclusive on the higher tier: exactly 20 is toxic, exactly 10 is neutral.
func ClassifyDebt(interestRate *float64) models.DebtClassification {
	if interestRate == nil {
		return models.DebtUnknown
	}
	switch {
	case *interestRate >= 20:
		return models.DebtToxic
	case *interestRate >= 10:
		return models.DebtNeutral
	default:
		return models.DebtPotentiallyGood
	}
}

// LogDebt records a debt with its classification derived once at creation.
func (s *DebtService) LogDebt(ctx context.Context, user *models.User, debt *models.Debt) (*models.Debt, error) {
	debt.WhatsappID = user.WhatsappID
	if debt.LenderName == "" {
		debt.LenderName = "Unknown"
	}
	debt.Classification = ClassifyDebt(debt.InterestRate)
	debt.IsActive = true

	if _, err := s.debtRepo.CreateDebt(ctx, debt); err != nil {
		return nil, err
	}

	s.log.Info("debt logged",
		zap.String("whatsapp_id", user.WhatsappID),
		zap.String("lender", debt.LenderName),
		zap.Float64("total_amount", debt.TotalAmount),
		zap.String("classification", string(debt.Classification)))

	return debt, nil
}

// ActiveDebts lists the user's active debts.
func (s *DebtService) ActiveDebts(ctx context.Context, whatsappID string) ([]models.Debt, error) {
	return s.debtRepo.GetActiveDebts(ctx, whatsappID)
}
