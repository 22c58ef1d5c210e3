package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActionDirectJSON(t *testing.T) {
	raw := `{"action":"log_transaction","message":"Got it!","item":"Pizza","amount":790,"category":"Food","type":"Expense"}`

	action := ParseAction(raw)

	assert.Equal(t, ActionLogTransaction, action.Type)
	assert.Equal(t, "Got it!", action.Message)
	assert.Equal(t, "Pizza", action.Item)
	assert.Equal(t, 790.0, action.Amount)
	assert.Equal(t, TransactionExpense, action.TxnType)
}

func TestParseActionJSONWithSurroundingProse(t *testing.T) {
	raw := "Sure, here you go:\n```json\n{\"action\":\"chat\",\"message\":\"Hello!\"}\n```"

	action := ParseAction(raw)

	assert.Equal(t, ActionChat, action.Type)
	assert.Equal(t, "Hello!", action.Message)
}

func TestParseActionGarbageFallsBackToChat(t *testing.T) {
	action := ParseAction("not json at all")

	assert.Equal(t, ActionChat, action.Type)
	assert.Equal(t, fallbackConfusedMessage, action.Message)
}

func TestParseActionMissingMessageGetsFallback(t *testing.T) {
	action := ParseAction(`{"action":"chat"}`)

	assert.Equal(t, ActionChat, action.Type)
	assert.Equal(t, fallbackHiccupMessage, action.Message)
}

func TestParseActionUnknownActionCoercedToChat(t *testing.T) {
	action := ParseAction(`{"action":"delete_everything","message":"sure"}`)

	assert.Equal(t, ActionChat, action.Type)
	assert.Equal(t, "sure", action.Message)
}

func TestParseActionTypeDefaultsToExpense(t *testing.T) {
	action := ParseAction(`{"action":"log_transaction","message":"ok","amount":100,"type":"Refund"}`)
	assert.Equal(t, TransactionExpense, action.TxnType)

	action = ParseAction(`{"action":"log_transaction","message":"ok","amount":100,"type":"Income"}`)
	assert.Equal(t, TransactionIncome, action.TxnType)
}

func TestParseActionDates(t *testing.T) {
	action := ParseAction(`{"action":"log_goal","message":"ok","goalName":"Trip","goalAmount":50000,"goalTargetDate":"2027-06-01"}`)

	require.NotNil(t, action.GoalTargetDate)
	assert.Equal(t, 2027, action.GoalTargetDate.Year())

	action = ParseAction(`{"action":"log_goal","message":"ok","goalAmount":1,"goalTargetDate":"someday"}`)
	assert.Nil(t, action.GoalTargetDate)
}
