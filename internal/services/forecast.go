package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/repository"
)

const forecastUsageHint = "To see impact, please add an amount. Example:\n" +
	"• impact 2000  (extra ₹2000 per month)\n" +
	"• plan save 500 per week"

// MonthSummary aggregates one calendar month of transactions.
type MonthSummary struct {
	MonthLabel string
	Income     float64
	Expenses   float64
	Savings    float64
}

type ForecastService struct {
	txnRepo *repository.TransactionRepository
	log     *zap.Logger
}

func NewForecastService(txnRepo *repository.TransactionRepository, log *zap.Logger) *ForecastService {
	return &ForecastService{
		txnRepo: txnRepo,
		log:     log.Named("forecast"),
	}
}

// SavingsImpactText answers "impact 2000" style requests: what an extra
// monthly saving would add up to over 6 and 12 months, anchored on the prior
// full month's savings. A missing amount short-circuits to a usage hint
// without touching the ledger.
func (s *ForecastService) SavingsImpactText(ctx context.Context, user *models.User, text string) (string, error) {
	extra := ExtractAmount(text)
	if extra == 0 {
		return forecastUsageHint, nil
	}

	lastMonth, err := s.lastMonthSummary(ctx, user.WhatsappID)
	if err != nil {
		return "", fmt.Errorf("failed to load last month summary: %w", err)
	}

	s.log.Info("savings forecast computed",
		zap.String("whatsapp_id", user.WhatsappID),
		zap.Float64("extra", extra))

	return BuildForecastText(user, text, extra, lastMonth), nil
}

func (s *ForecastService) lastMonthSummary(ctx context.Context, whatsappID string) (MonthSummary, error) {
	now := time.Now()
	startOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfThisMonth.AddDate(0, -1, 0)

	txns, err := s.txnRepo.ListBetween(ctx, whatsappID, startOfLastMonth, startOfThisMonth)
	if err != nil {
		return MonthSummary{}, err
	}

	return SummarizeMonth(txns, startOfLastMonth), nil
}

// SummarizeMonth reduces a month's transactions to income, expenses and savings.
func SummarizeMonth(txns []models.Transaction, monthStart time.Time) MonthSummary {
	var income, expenses float64
	for _, t := range txns {
		switch t.Type {
		case models.TransactionIncome:
			income += t.Amount
		case models.TransactionExpense:
			expenses += t.Amount
		}
	}

	return MonthSummary{
		MonthLabel: monthStart.Format("Jan 2006"),
		Income:     income,
		Expenses:   expenses,
		Savings:    math.Max(income-expenses, 0),
	}
}

var amountPattern = regexp.MustCompile(`(\d[\d,.]*)`)

// ExtractAmount pulls the first numeric amount out of free text, tolerating
// comma grouping and decimals. Returns 0 when nothing usable is found.
func ExtractAmount(text string) float64 {
	match := amountPattern.FindString(text)
	if match == "" {
		return 0
	}

	cleaned := strings.ReplaceAll(match, ",", "")
	amt, err := strconv.ParseFloat(strings.TrimSuffix(cleaned, "."), 64)
	if err != nil || amt <= 0 {
		return 0
	}
	return math.Round(amt)
}

// IsPerWeek reports whether the text describes a weekly amount.
func IsPerWeek(text string) bool {
	t := strings.ToLower(text)
	return strings.Contains(t, "per week") || strings.Contains(t, "/week") || strings.Contains(t, "weekly")
}

// BuildForecastText projects 6- and 12-month savings linearly, with no
// compounding, and expresses each as months of basic expenses covered.
func BuildForecastText(user *models.User, text string, extra float64, lastMonth MonthSummary) string {
	extraPerMonth := extra
	if IsPerWeek(text) {
		extraPerMonth = extra * 4 // rough 4 weeks
	}

	baseSavings := lastMonth.Savings
	sixMonthsTotal := baseSavings*6 + extraPerMonth*6
	twelveMonthsTotal := baseSavings*12 + extraPerMonth*12

	monthlyExpenses := lastMonth.Expenses
	if monthlyExpenses == 0 && user.MonthlySalary != nil {
		monthlyExpenses = *user.MonthlySalary
	}
	oneMonthNeed := monthlyExpenses
	if oneMonthNeed == 0 {
		oneMonthNeed = 1
	}

	sixCover := sixMonthsTotal / oneMonthNeed
	twelveCover := twelveMonthsTotal / oneMonthNeed

	var b strings.Builder
	fmt.Fprintf(&b, "If you consistently save an extra ₹%s per month:\n\n", FormatRupees(extraPerMonth))
	fmt.Fprintf(&b, "• In 6 months you could have about ₹%s saved (≈ %.1f months of basic expenses).\n",
		FormatRupees(sixMonthsTotal), sixCover)
	fmt.Fprintf(&b, "• In 12 months you could have about ₹%s saved (≈ %.1f months of basic expenses).\n\n",
		FormatRupees(twelveMonthsTotal), twelveCover)
	b.WriteString("This is a rough forecast, not a guarantee. Real results depend on your actual income, spending and whether you invest this money or keep it in savings.")

	return b.String()
}
