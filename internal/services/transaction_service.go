package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/repository"
)

type TransactionService struct {
	txnRepo  *repository.TransactionRepository
	userRepo *repository.UserRepository
	log      *zap.Logger
}

func NewTransactionService(txnRepo *repository.TransactionRepository, userRepo *repository.UserRepository, log *zap.Logger) *TransactionService {
	return &TransactionService{
		txnRepo:  txnRepo,
		userRepo: userRepo,
		log:      log.Named("transactions"),
	}
}

// LogTransaction records a money movement at processing time (not message
// time) and refreshes the user's lastTransactionAt marker.
func (s *TransactionService) LogTransaction(ctx context.Context, user *models.User, item string, amount float64, category string, txnType models.TransactionType) (*models.Transaction, error) {
	if item == "" {
		item = "Unnamed"
	}
	if category == "" {
		category = "Uncategorized"
	}

	txn := &models.Transaction{
		WhatsappID: user.WhatsappID,
		Item:       item,
		Amount:     amount,
		Category:   category,
		Type:       txnType,
		Date:       time.Now(),
	}

	if _, err := s.txnRepo.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	user.LastTransactionAt = &txn.Date
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("transaction logged",
		zap.String("whatsapp_id", user.WhatsappID),
		zap.String("item", item),
		zap.Float64("amount", amount),
		zap.String("category", category),
		zap.String("type", string(txnType)))

	return txn, nil
}
