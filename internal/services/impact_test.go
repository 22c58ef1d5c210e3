package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savezra/whatsapp-bot/internal/models"
)

func impactUser(salary float64, strict bool) *models.User {
	return &models.User{
		WhatsappID:       "911234567890",
		MonthlySalary:    &salary,
		WorkDaysPerMonth: 22,
		WorkHoursPerDay:  8,
		StrictMode:       strict,
	}
}

func expense(amount float64, category string) *models.Transaction {
	return &models.Transaction{
		Amount:   amount,
		Category: category,
		Type:     models.TransactionExpense,
	}
}

var impactNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestImpactHoursLine(t *testing.T) {
	// hourly rate 60000/(22*8) ~= 340.9, so 1000 is ~2.9 hours
	text := BuildTransactionImpact(impactUser(60000, false), expense(1000, "Food"), nil, impactNow)

	assert.Contains(t, text, "about 2.9 hours of your work")
	// 1.7% of salary stays under the 5% threshold
	assert.NotContains(t, text, "monthly salary")
}

func TestImpactNoSalaryNoLines(t *testing.T) {
	user := &models.User{WorkDaysPerMonth: 22, WorkHoursPerDay: 8}
	text := BuildTransactionImpact(user, expense(5000, "Food"), nil, impactNow)
	assert.Empty(t, text)
}

func TestImpactIncomeIgnored(t *testing.T) {
	txn := &models.Transaction{Amount: 50000, Category: "Salary", Type: models.TransactionIncome}
	text := BuildTransactionImpact(impactUser(60000, false), txn, nil, impactNow)
	assert.Empty(t, text)
}

func TestImpactTinySpendBelowThreshold(t *testing.T) {
	// 50 rupees is ~0.15 hours, under the 0.3 floor
	text := BuildTransactionImpact(impactUser(60000, false), expense(50, "Food"), nil, impactNow)
	assert.Empty(t, text)
}

func TestImpactSalaryPercentageLine(t *testing.T) {
	text := BuildTransactionImpact(impactUser(60000, false), expense(3500, "Shopping"), nil, impactNow)

	assert.Contains(t, text, "5.8% of your monthly salary")
}

func TestImpactStrictModeNudge(t *testing.T) {
	soft := BuildTransactionImpact(impactUser(60000, false), expense(6500, "Shopping"), nil, impactNow)
	assert.NotContains(t, soft, "small L")

	strict := BuildTransactionImpact(impactUser(60000, true), expense(6500, "Shopping"), nil, impactNow)
	assert.Contains(t, strict, "Savings just took a small L here")

	// strict mode without a discretionary category stays quiet
	rent := BuildTransactionImpact(impactUser(60000, true), expense(6500, "Rent"), nil, impactNow)
	assert.NotContains(t, rent, "small L")
}

func TestImpactGoalDelay(t *testing.T) {
	target := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	goal := &models.Goal{
		GoalName:       "Goa Trip",
		GoalAmount:     30000,
		GoalTargetDate: &target,
		IsActive:       true,
	}

	// 6 months left -> 5000/month -> ~166.7/day -> 1000 is a 6 day delay
	text := BuildTransactionImpact(impactUser(60000, false), expense(1000, "Zomato"), goal, impactNow)

	require.True(t, strings.Contains(text, `"Goa Trip"`))
	assert.Contains(t, text, "6 day(s) earlier")
}

func TestImpactGoalDelaySkipsEssentials(t *testing.T) {
	target := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	goal := &models.Goal{GoalName: "Goa Trip", GoalAmount: 30000, GoalTargetDate: &target}

	text := BuildTransactionImpact(impactUser(60000, false), expense(1000, "Rent"), goal, impactNow)
	assert.NotContains(t, text, "Goa Trip")
}

func TestIsDiscretionaryCategory(t *testing.T) {
	assert.True(t, isDiscretionaryCategory("Food Delivery"))
	assert.True(t, isDiscretionaryCategory("Online Shopping"))
	assert.True(t, isDiscretionaryCategory("swiggy order"))
	assert.False(t, isDiscretionaryCategory("Rent"))
	assert.False(t, isDiscretionaryCategory("Electricity"))
}

func TestStripExpenseDisclaimer(t *testing.T) {
	msg := "Logged! Pizza for ₹790.\n\nNote: I am not a SEBI/RBI registered advisor. Treat this as education."

	stripped := StripExpenseDisclaimer(msg, models.TransactionExpense)
	assert.Equal(t, "Logged! Pizza for ₹790.", stripped)

	// income keeps the message untouched
	assert.Equal(t, msg, StripExpenseDisclaimer(msg, models.TransactionIncome))

	// no needle, no change
	assert.Equal(t, "Just logged it.", StripExpenseDisclaimer("Just logged it.", models.TransactionExpense))
}
