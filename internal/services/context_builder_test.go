package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savezra/whatsapp-bot/internal/models"
)

func TestRenderUserContextFullPicture(t *testing.T) {
	name := "Priya"
	salary := 50000.0
	user := &models.User{
		WhatsappID:        "911234567890",
		Name:              &name,
		MonthlySalary:     &salary,
		PreferredLanguage: models.LanguageEnglish,
		Streak:            3,
	}

	date := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{Item: "Pizza", Amount: 790, Category: "Food", Type: models.TransactionExpense, Date: date},
		{Item: "Salary", Amount: 50000, Category: "Salary", Type: models.TransactionIncome, Date: date},
		{Item: "Groceries", Amount: 2100, Category: "Groceries", Type: models.TransactionExpense, Date: date},
	}

	ir := 36.0
	emi := 3000.0
	debts := []models.Debt{{
		LenderName:     "CardCo",
		TotalAmount:    45000,
		InterestRate:   &ir,
		EmiAmount:      &emi,
		Classification: models.DebtToxic,
	}}

	target := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	goals := []models.Goal{{
		GoalName:       "Emergency Fund",
		GoalAmount:     90000,
		GoalTargetDate: &target,
		SavedSoFar:     15000,
	}}

	block := RenderUserContext(user, txns, debts, goals)

	require.True(t, strings.HasPrefix(block, "--- USER CONTEXT (System-provided, factual) ---"))
	require.True(t, strings.HasSuffix(block, "--- END USER CONTEXT ---"))

	assert.Contains(t, block, "Name: Priya")
	assert.Contains(t, block, "Monthly Salary: ₹50,000")
	assert.Contains(t, block, "Streak: 3 day(s)")
	assert.Contains(t, block, "Expenses This Month: ₹2,890")
	assert.Contains(t, block, "Income Logged This Month: ₹50,000")
	assert.Contains(t, block, "  - Groceries: ₹2,100")
	assert.Contains(t, block, "  - 2 Mar: Pizza ₹790 [Food] (Expense)")
	assert.Contains(t, block, "  - CardCo: ₹45,000 @ 36%, EMI ₹3,000 [toxic]")
	assert.Contains(t, block, "  - Emergency Fund: Target ₹90,000 by Dec 2026, Saved so far ₹15,000")
}

func TestRenderUserContextCategoryBreakdownSorted(t *testing.T) {
	user := &models.User{PreferredLanguage: models.LanguageEnglish}
	txns := []models.Transaction{
		{Item: "Chai", Amount: 40, Category: "Food", Type: models.TransactionExpense, Date: time.Now()},
		{Item: "Flight", Amount: 9000, Category: "Travel", Type: models.TransactionExpense, Date: time.Now()},
	}

	block := RenderUserContext(user, txns, nil, nil)

	travelIdx := strings.Index(block, "- Travel:")
	foodIdx := strings.Index(block, "- Food:")
	require.NotEqual(t, -1, travelIdx)
	require.NotEqual(t, -1, foodIdx)
	assert.Less(t, travelIdx, foodIdx, "largest category first")
}

func TestRenderUserContextEmptyState(t *testing.T) {
	user := &models.User{PreferredLanguage: models.LanguageEnglish}

	block := RenderUserContext(user, nil, nil, nil)

	assert.Contains(t, block, "Monthly Salary: Not set")
	assert.Contains(t, block, "Recent Transactions: None logged yet.")
	assert.Contains(t, block, "Active Debts: None recorded.")
	assert.Contains(t, block, "Active Goals: None set.")
	assert.NotContains(t, block, "Name:")
}
