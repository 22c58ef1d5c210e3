package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/savezra/whatsapp-bot/internal/models"
)

func TestExtractAmount(t *testing.T) {
	assert.Equal(t, 2000.0, ExtractAmount("impact 2000"))
	assert.Equal(t, 1500.0, ExtractAmount("plan save 1,500 per month"))
	assert.Equal(t, 1501.0, ExtractAmount("impact 1500.50"))
	assert.Equal(t, 0.0, ExtractAmount("plan"))
	assert.Equal(t, 0.0, ExtractAmount("save more please"))
}

func TestIsPerWeek(t *testing.T) {
	assert.True(t, IsPerWeek("plan save 500 per week"))
	assert.True(t, IsPerWeek("500/week"))
	assert.True(t, IsPerWeek("saving 500 WEEKLY"))
	assert.False(t, IsPerWeek("impact 2000"))
}

func TestSummarizeMonth(t *testing.T) {
	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{Amount: 50000, Type: models.TransactionIncome},
		{Amount: 30000, Type: models.TransactionExpense},
		{Amount: 17000, Type: models.TransactionExpense},
	}

	summary := SummarizeMonth(txns, monthStart)

	assert.Equal(t, "Feb 2026", summary.MonthLabel)
	assert.Equal(t, 50000.0, summary.Income)
	assert.Equal(t, 47000.0, summary.Expenses)
	assert.Equal(t, 3000.0, summary.Savings)
}

func TestSummarizeMonthNeverNegativeSavings(t *testing.T) {
	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	txns := []models.Transaction{
		{Amount: 10000, Type: models.TransactionIncome},
		{Amount: 25000, Type: models.TransactionExpense},
	}

	summary := SummarizeMonth(txns, monthStart)
	assert.Equal(t, 0.0, summary.Savings)
}

func TestBuildForecastTextMonthly(t *testing.T) {
	user := &models.User{}
	lastMonth := MonthSummary{Savings: 3000, Expenses: 20000}

	text := BuildForecastText(user, "impact 2000", 2000, lastMonth)

	// (3000 + 2000) * 6 and * 12
	assert.Contains(t, text, "₹30,000")
	assert.Contains(t, text, "₹60,000")
	assert.Contains(t, text, "extra ₹2,000 per month")
	assert.Contains(t, text, "rough forecast, not a guarantee")
}

func TestBuildForecastTextWeeklyScalesByFour(t *testing.T) {
	user := &models.User{}
	lastMonth := MonthSummary{Savings: 0, Expenses: 20000}

	text := BuildForecastText(user, "plan save 500 per week", 500, lastMonth)

	assert.Contains(t, text, "extra ₹2,000 per month")
	assert.Contains(t, text, "₹12,000") // 2000 * 6
}

func TestBuildForecastTextFallsBackToSalaryCoverage(t *testing.T) {
	salary := 40000.0
	user := &models.User{MonthlySalary: &salary}
	lastMonth := MonthSummary{Savings: 0, Expenses: 0}

	text := BuildForecastText(user, "impact 2000", 2000, lastMonth)

	// 12000 saved over 6 months vs 40000 monthly need -> 0.3 months
	assert.Contains(t, text, "0.3 months of basic expenses")
}
