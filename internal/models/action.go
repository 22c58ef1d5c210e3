package models

import (
	"encoding/json"
	"strings"
	"time"
)

// ActionType tags the structured outcome of interpreting a message.
type ActionType string

const (
	ActionLogTransaction ActionType = "log_transaction"
	ActionUpdateSalary   ActionType = "update_salary"
	ActionLogDebt        ActionType = "log_debt"
	ActionLogGoal        ActionType = "log_goal"
	ActionChat           ActionType = "chat"
)

const (
	fallbackConfusedMessage = "Sorry, I got confused for a moment. Could you say that again in simpler words?"
	fallbackHiccupMessage   = "Sorry, I had a small hiccup. Could you try saying that again?"
)

// Action is the validated, typed form of a model completion. Only the fields
// relevant to Type carry meaning; Message is always present.
type Action struct {
	Type    ActionType
	Message string

	// log_transaction / update_salary
	Item     string
	Amount   float64
	Category string
	TxnType  TransactionType

	// log_debt
	LenderName   string
	TotalAmount  float64
	InterestRate *float64
	EmiAmount    *float64
	TenureMonths *int
	DueDate      *time.Time

	// log_goal
	GoalName       string
	GoalAmount     float64
	GoalTargetDate *time.Time
}

// rawAction mirrors the JSON contract the model is instructed to follow.
type rawAction struct {
	Action  string `json:"action"`
	Message string `json:"message"`

	Item     string  `json:"item"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Type     string  `json:"type"`

	LenderName   string   `json:"lenderName"`
	TotalAmount  float64  `json:"totalAmount"`
	InterestRate *float64 `json:"interestRate"`
	EmiAmount    *float64 `json:"emiAmount"`
	TenureMonths *int     `json:"tenureMonths"`
	DueDate      string   `json:"dueDate"`

	GoalName       string  `json:"goalName"`
	GoalAmount     float64 `json:"goalAmount"`
	GoalTargetDate string  `json:"goalTargetDate"`
}

// ParseAction turns a raw completion into a valid Action. It never fails:
// unparseable input, a missing tag, or an unknown tag all degrade to a chat
// action carrying whatever message text could be salvaged.
func ParseAction(response string) Action {
	var raw rawAction
	if err := json.Unmarshal([]byte(response), &raw); err != nil {
		span := extractJSONObject(response)
		if span == "" || json.Unmarshal([]byte(span), &raw) != nil {
			return Action{Type: ActionChat, Message: fallbackConfusedMessage}
		}
	}

	if raw.Message == "" {
		raw.Message = fallbackHiccupMessage
	}

	actionType := ActionType(raw.Action)
	switch actionType {
	case ActionLogTransaction, ActionUpdateSalary, ActionLogDebt, ActionLogGoal, ActionChat:
	default:
		actionType = ActionChat
	}

	txnType := TransactionType(raw.Type)
	if txnType != TransactionIncome {
		txnType = TransactionExpense
	}

	return Action{
		Type:           actionType,
		Message:        raw.Message,
		Item:           raw.Item,
		Amount:         raw.Amount,
		Category:       raw.Category,
		TxnType:        txnType,
		LenderName:     raw.LenderName,
		TotalAmount:    raw.TotalAmount,
		InterestRate:   raw.InterestRate,
		EmiAmount:      raw.EmiAmount,
		TenureMonths:   raw.TenureMonths,
		DueDate:        parseActionDate(raw.DueDate),
		GoalName:       raw.GoalName,
		GoalAmount:     raw.GoalAmount,
		GoalTargetDate: parseActionDate(raw.GoalTargetDate),
	}
}

// FallbackChatAction is the safe reply used when the inference call itself fails.
func FallbackChatAction() Action {
	return Action{
		Type:    ActionChat,
		Message: "I'm having a moment. Could you send that again in a few seconds? 🙏",
	}
}

// extractJSONObject returns the first top-level {...} span, or "".
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end <= start {
		return ""
	}
	return s[start : end+1]
}

func parseActionDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
