package models

import "time"

// ConversationRole is the author of a history entry.
type ConversationRole string

const (
	RoleUser      ConversationRole = "user"
	RoleAssistant ConversationRole = "assistant"
	RoleSystem    ConversationRole = "system"
)

// MaxConversationHistory caps the per-user history; oldest entries drop first.
const MaxConversationHistory = 40

type ConversationMessage struct {
	Role      ConversationRole `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
}

type PreferredLanguage string

const (
	LanguageEnglish  PreferredLanguage = "english"
	LanguageHinglish PreferredLanguage = "hinglish"
)

// User - a WhatsApp user and their coaching state
type User struct {
	ID                  string
	WhatsappID          string
	Name                *string
	MonthlySalary       *float64
	PreferredLanguage   PreferredLanguage
	Streak              int
	LastActiveDate      *time.Time
	ConversationHistory []ConversationMessage
	WorkHoursPerDay     int
	WorkDaysPerMonth    int
	StrictMode          bool
	LastTransactionAt   *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// AddToConversation appends a history entry, evicting the oldest past the cap.
func (u *User) AddToConversation(role ConversationRole, content string) {
	u.ConversationHistory = append(u.ConversationHistory, ConversationMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	if len(u.ConversationHistory) > MaxConversationHistory {
		u.ConversationHistory = u.ConversationHistory[len(u.ConversationHistory)-MaxConversationHistory:]
	}
}

// UpdateStreak advances the daily streak: same day keeps it, exactly one day
// since last activity extends it, any longer gap resets to 1.
func (u *User) UpdateStreak(now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if u.LastActiveDate != nil {
		last := *u.LastActiveDate
		lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, now.Location())
		diffDays := int(today.Sub(lastDay).Hours() / 24)

		if diffDays == 1 {
			u.Streak++
		} else if diffDays > 1 {
			u.Streak = 1
		}
	} else {
		u.Streak = 1
	}

	u.LastActiveDate = &now
}

type TransactionType string

const (
	TransactionExpense TransactionType = "Expense"
	TransactionIncome  TransactionType = "Income"
)

// Transaction - a single money movement; immutable once logged
type Transaction struct {
	ID         int64
	WhatsappID string
	Item       string
	Amount     float64
	Category   string
	Type       TransactionType
	Date       time.Time
	CreatedAt  time.Time
}

type DebtClassification string

const (
	DebtToxic           DebtClassification = "toxic"
	DebtNeutral         DebtClassification = "neutral"
	DebtPotentiallyGood DebtClassification = "potentially_good"
	DebtUnknown         DebtClassification = "unknown"
)

// Debt - a loan or credit line; classification is derived once at creation
type Debt struct {
	ID             int64
	WhatsappID     string
	LenderName     string
	TotalAmount    float64
	InterestRate   *float64
	EmiAmount      *float64
	TenureMonths   *int
	DueDate        *time.Time
	Classification DebtClassification
	IsActive       bool
	CreatedAt      time.Time
}

// Goal - a savings target
type Goal struct {
	ID             int64
	WhatsappID     string
	GoalName       string
	GoalAmount     float64
	GoalTargetDate *time.Time
	SavedSoFar     float64
	IsActive       bool
	CreatedAt      time.Time
}
