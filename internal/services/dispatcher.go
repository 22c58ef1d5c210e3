package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
)

const dispatchFallbackMessage = "I noted that, but my brain glitched on how to respond. Could you try saying that again in a slightly different way?"

// Dispatcher applies a parsed action to the ledger and decides the final
// reply text. It never returns an error: a failed mutation still leaves the
// user with something to read.
type Dispatcher struct {
	userService *UserService
	txnService  *TransactionService
	debtService *DebtService
	goalService *GoalService
	log         *zap.Logger
}

func NewDispatcher(userService *UserService, txnService *TransactionService, debtService *DebtService, goalService *GoalService, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		userService: userService,
		txnService:  txnService,
		debtService: debtService,
		goalService: goalService,
		log:         log.Named("dispatch"),
	}
}

// Dispatch executes the action's side effect and returns the message to send.
// For expense logs the model's text is kept, minus the advisory disclaimer,
// with the impact block appended.
func (d *Dispatcher) Dispatch(ctx context.Context, user *models.User, action models.Action) string {
	messageToSend := action.Message

	switch action.Type {
	case models.ActionLogTransaction:
		if action.Amount <= 0 {
			d.log.Warn("log_transaction missing valid amount", zap.String("whatsapp_id", user.WhatsappID))
			break
		}

		txn, err := d.txnService.LogTransaction(ctx, user, action.Item, action.Amount, action.Category, action.TxnType)
		if err != nil {
			d.log.Error("failed to log transaction", zap.Error(err))
			break
		}

		messageToSend = StripExpenseDisclaimer(messageToSend, txn.Type)

		goal, err := d.goalService.EarliestTargetGoal(ctx, user.WhatsappID)
		if err != nil {
			d.log.Error("failed to load goal for impact", zap.Error(err))
			goal = nil
		}

		if impact := BuildTransactionImpact(user, txn, goal, time.Now()); impact != "" {
			if messageToSend != "" {
				messageToSend += "\n\n"
			}
			messageToSend += impact
		}

	case models.ActionUpdateSalary:
		if action.Amount <= 0 {
			d.log.Warn("update_salary missing valid amount", zap.String("whatsapp_id", user.WhatsappID))
			break
		}
		if err := d.userService.UpdateSalary(ctx, user, action.Amount); err != nil {
			d.log.Error("failed to update salary", zap.Error(err))
		}

	case models.ActionLogDebt:
		if action.TotalAmount <= 0 {
			d.log.Warn("log_debt missing valid totalAmount", zap.String("whatsapp_id", user.WhatsappID))
			break
		}
		debt := &models.Debt{
			LenderName:   action.LenderName,
			TotalAmount:  action.TotalAmount,
			InterestRate: action.InterestRate,
			EmiAmount:    action.EmiAmount,
			TenureMonths: action.TenureMonths,
			DueDate:      action.DueDate,
		}
		if _, err := d.debtService.LogDebt(ctx, user, debt); err != nil {
			d.log.Error("failed to log debt", zap.Error(err))
		}

	case models.ActionLogGoal:
		if action.GoalAmount <= 0 {
			d.log.Warn("log_goal missing valid goalAmount", zap.String("whatsapp_id", user.WhatsappID))
			break
		}
		goal := &models.Goal{
			GoalName:       action.GoalName,
			GoalAmount:     action.GoalAmount,
			GoalTargetDate: action.GoalTargetDate,
		}
		if _, err := d.goalService.LogGoal(ctx, user, goal); err != nil {
			d.log.Error("failed to log goal", zap.Error(err))
		}

	case models.ActionChat:
		// coaching reply, nothing to mutate
	}

	if messageToSend == "" {
		messageToSend = dispatchFallbackMessage
	}

	return messageToSend
}
