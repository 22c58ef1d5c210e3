package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/repository"
)

// HealthResult is the monthly financial health breakdown behind the score.
type HealthResult struct {
	MonthLabel        string
	Income            float64
	Expenses          float64
	Savings           float64
	SavingRate        float64
	MonthlyEmi        float64
	EmiRate           float64
	EmergencyCoverage float64
	Score             int
	Suggestions       []string
}

type HealthService struct {
	txnRepo  *repository.TransactionRepository
	debtRepo *repository.DebtRepository
	log      *zap.Logger
}

func NewHealthService(txnRepo *repository.TransactionRepository, debtRepo *repository.DebtRepository, log *zap.Logger) *HealthService {
	return &HealthService{
		txnRepo:  txnRepo,
		debtRepo: debtRepo,
		log:      log.Named("health"),
	}
}

// MonthlyHealthText loads this month's ledger slice and renders the score summary.
func (s *HealthService) MonthlyHealthText(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	txns, err := s.txnRepo.ListSince(ctx, user.WhatsappID, startOfMonth, 0)
	if err != nil {
		return "", fmt.Errorf("failed to load month transactions: %w", err)
	}

	debts, err := s.debtRepo.GetActiveDebts(ctx, user.WhatsappID)
	if err != nil {
		return "", fmt.Errorf("failed to load active debts: %w", err)
	}

	salary := 0.0
	if user.MonthlySalary != nil {
		salary = *user.MonthlySalary
	}

	result := ComputeMonthlyHealth(txns, debts, salary, now)
	s.log.Info("health score computed",
		zap.String("whatsapp_id", user.WhatsappID),
		zap.Int("score", result.Score))

	return BuildHealthSummaryText(result), nil
}

// ComputeMonthlyHealth scores the month from 0 to 100: a base of 40 plus
// tiered bonuses for saving rate, EMI burden, and emergency readiness.
// Pure and deterministic given its inputs.
func ComputeMonthlyHealth(txns []models.Transaction, debts []models.Debt, monthlySalary float64, now time.Time) HealthResult {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var income, expenses float64
	for _, t := range txns {
		switch t.Type {
		case models.TransactionIncome:
			income += t.Amount
		case models.TransactionExpense:
			expenses += t.Amount
		}
	}
	savings := math.Max(income-expenses, 0)

	savingRate := 0.0
	if income > 0 {
		savingRate = clamp(savings/income, 0, 1)
	}

	var monthlyEmi float64
	for _, d := range debts {
		if d.EmiAmount != nil {
			monthlyEmi += *d.EmiAmount
		}
	}
	emiRate := 0.0
	if income > 0 {
		emiRate = clamp(monthlyEmi/income, 0, 1)
	}

	score := 40.0

	var savePoints float64
	switch {
	case savingRate >= 0.3:
		savePoints = 30
	case savingRate >= 0.2:
		savePoints = 25
	case savingRate >= 0.1:
		savePoints = 15
	case savingRate >= 0.05:
		savePoints = 10
	}
	score += savePoints

	var emiPoints float64
	switch {
	case emiRate <= 0.1:
		emiPoints = 10
	case emiRate <= 0.2:
		emiPoints = 7
	case emiRate <= 0.3:
		emiPoints = 4
	}
	score += emiPoints

	// Emergency readiness against a 3x monthly-expense target; salary stands
	// in when no expenses were logged yet.
	monthlyExpenses := expenses
	if monthlyExpenses == 0 {
		monthlyExpenses = monthlySalary
	}
	targetEmergency := monthlyExpenses * 3
	emergencyCoverage := 0.0
	if targetEmergency > 0 {
		emergencyCoverage = savings / targetEmergency
	}

	switch {
	case emergencyCoverage >= 1:
		score += 10
	case emergencyCoverage >= 0.5:
		score += 5
	}

	final := int(clamp(math.Round(score), 0, 100))

	var suggestions []string
	if savingRate < 0.1 {
		suggestions = append(suggestions,
			"Your saving rate is quite low. Target saving at least 10–20% of your income. We can start by finding one leak to cut this month.")
	} else if savingRate < 0.2 {
		suggestions = append(suggestions,
			"You are saving something, which is good. Pushing this towards 20% of income will give you more security.")
	} else {
		suggestions = append(suggestions,
			"Your saving rate looks healthy. The next focus can be building or topping up your emergency fund.")
	}

	if emiRate > 0.3 {
		suggestions = append(suggestions,
			"EMI/loan burden is on the heavier side. Try not to take new loans and prioritise clearing the highest-interest ones.")
	} else if emiRate > 0.2 {
		suggestions = append(suggestions,
			"EMI burden is moderate. Keep an eye that it does not cross ~30% of your income.")
	}

	if emergencyCoverage < 0.5 {
		suggestions = append(suggestions,
			"Emergency readiness is weak. Aim to build at least 3 months of essential expenses as a buffer.")
	}

	return HealthResult{
		MonthLabel:        startOfMonth.Format("January 2006"),
		Income:            income,
		Expenses:          expenses,
		Savings:           savings,
		SavingRate:        savingRate,
		MonthlyEmi:        monthlyEmi,
		EmiRate:           emiRate,
		EmergencyCoverage: emergencyCoverage,
		Score:             final,
		Suggestions:       suggestions,
	}
}

// BuildHealthSummaryText renders the score breakdown as a WhatsApp reply.
func BuildHealthSummaryText(result HealthResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Financial health for %s:\n\n", result.MonthLabel)
	fmt.Fprintf(&b, "• Income: ₹%s\n", FormatRupees(result.Income))
	fmt.Fprintf(&b, "• Expenses: ₹%s\n", FormatRupees(result.Expenses))
	fmt.Fprintf(&b, "• Savings: ₹%s (%.1f%% of income)\n", FormatRupees(result.Savings), result.SavingRate*100)
	fmt.Fprintf(&b, "• Total EMIs (per month): ₹%s (%.1f%% of income)\n", FormatRupees(result.MonthlyEmi), result.EmiRate*100)
	fmt.Fprintf(&b, "• Emergency coverage (this month vs 3 months target): %.1f%%\n\n", math.Min(result.EmergencyCoverage, 1)*100)
	fmt.Fprintf(&b, "Your Money Health Score: %d/100\n\n", result.Score)

	if len(result.Suggestions) > 0 {
		b.WriteString("Next steps:\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&b, "• %s\n", s)
		}
	}

	b.WriteString("\nThis score is a rough guide, not a judgment. Use it to track your direction month by month.")

	return b.String()
}

func clamp(x, min, max float64) float64 {
	return math.Max(min, math.Min(max, x))
}
