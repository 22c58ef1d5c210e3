package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savezra/whatsapp-bot/internal/models"
)

var healthNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func txn(amount float64, txnType models.TransactionType) models.Transaction {
	return models.Transaction{Amount: amount, Type: txnType, Date: healthNow}
}

func TestComputeMonthlyHealthEmptyMonth(t *testing.T) {
	result := ComputeMonthlyHealth(nil, nil, 0, healthNow)

	// base 40 plus the zero-EMI bonus
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, "March 2026", result.MonthLabel)
	assert.NotEmpty(t, result.Suggestions)
}

func TestComputeMonthlyHealthTypicalMonth(t *testing.T) {
	txns := []models.Transaction{
		txn(50000, models.TransactionIncome),
		txn(45000, models.TransactionExpense),
	}

	result := ComputeMonthlyHealth(txns, nil, 50000, healthNow)

	// saving rate 10% -> 15, emi 0% -> 10, emergency coverage ~3.7% -> 0
	assert.Equal(t, 40+15+10, result.Score)
	assert.InDelta(t, 0.1, result.SavingRate, 1e-9)
	assert.Equal(t, 5000.0, result.Savings)
}

func TestComputeMonthlyHealthSavingRateTiers(t *testing.T) {
	cases := []struct {
		expenses float64
		want     int
	}{
		{70000, 40 + 30 + 10}, // 30% saved
		{78000, 40 + 25 + 10}, // 22% saved
		{88000, 40 + 15 + 10}, // 12% saved
		{94000, 40 + 10 + 10}, // 6% saved
		{98000, 40 + 0 + 10},  // 2% saved
	}

	for _, tc := range cases {
		txns := []models.Transaction{
			txn(100000, models.TransactionIncome),
			txn(tc.expenses, models.TransactionExpense),
		}
		result := ComputeMonthlyHealth(txns, nil, 100000, healthNow)
		assert.Equal(t, tc.want, result.Score, "expenses %.0f", tc.expenses)
	}
}

func TestComputeMonthlyHealthEmiBurden(t *testing.T) {
	emi := 25000.0
	debts := []models.Debt{{EmiAmount: &emi, IsActive: true}}
	txns := []models.Transaction{
		txn(100000, models.TransactionIncome),
		txn(100000, models.TransactionExpense),
	}

	result := ComputeMonthlyHealth(txns, debts, 100000, healthNow)

	// emi rate 25% lands in the <=0.3 tier
	assert.InDelta(t, 0.25, result.EmiRate, 1e-9)
	assert.Equal(t, 40+0+4, result.Score)
}

func TestComputeMonthlyHealthScoreBounds(t *testing.T) {
	// strong month: 40% saved, no EMIs, full emergency coverage
	txns := []models.Transaction{
		txn(100000, models.TransactionIncome),
		txn(20000, models.TransactionExpense),
	}
	result := ComputeMonthlyHealth(txns, nil, 100000, healthNow)
	assert.LessOrEqual(t, result.Score, 100)
	assert.GreaterOrEqual(t, result.Score, 0)

	// coverage: savings 80000 vs 3x20000 -> >=1 adds 10
	assert.Equal(t, 40+30+10+10, result.Score)
}

func TestBuildHealthSummaryText(t *testing.T) {
	txns := []models.Transaction{
		txn(50000, models.TransactionIncome),
		txn(45000, models.TransactionExpense),
	}
	result := ComputeMonthlyHealth(txns, nil, 50000, healthNow)

	text := BuildHealthSummaryText(result)

	require.True(t, strings.Contains(text, "Financial health for March 2026"))
	assert.Contains(t, text, "Your Money Health Score: 65/100")
	assert.Contains(t, text, "Income: ₹50,000")
	assert.Contains(t, text, "Next steps:")
}
