package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
)

// These cases never reach a repository: invalid preconditions short-circuit
// before any mutation, and chat actions have no side effect at all.

func testDispatcher() *Dispatcher {
	return NewDispatcher(nil, nil, nil, nil, zap.NewNop())
}

func TestDispatchChatKeepsMessage(t *testing.T) {
	user := &models.User{WhatsappID: "911234567890"}
	action := models.Action{Type: models.ActionChat, Message: "Let's look at your food spends."}

	reply := testDispatcher().Dispatch(context.Background(), user, action)

	assert.Equal(t, "Let's look at your food spends.", reply)
}

func TestDispatchTransactionWithoutAmountSkipsMutation(t *testing.T) {
	user := &models.User{WhatsappID: "911234567890"}
	action := models.Action{
		Type:    models.ActionLogTransaction,
		Message: "Noted your pizza.",
		Item:    "Pizza",
		Amount:  0,
	}

	reply := testDispatcher().Dispatch(context.Background(), user, action)

	// the model's text still goes out even though nothing was logged
	assert.Equal(t, "Noted your pizza.", reply)
}

func TestDispatchEmptyMessageGetsFallback(t *testing.T) {
	user := &models.User{WhatsappID: "911234567890"}
	action := models.Action{Type: models.ActionUpdateSalary, Message: "", Amount: -5}

	reply := testDispatcher().Dispatch(context.Background(), user, action)

	assert.Equal(t, dispatchFallbackMessage, reply)
}
