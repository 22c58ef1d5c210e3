package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/savezra/whatsapp-bot/internal/models"
)

const (
	defaultWorkDaysPerMonth = 22
	defaultWorkHoursPerDay  = 8

	expenseDisclaimerNeedle = "note: i am not a sebi/rbi registered advisor"
)

var discretionaryCategories = []string{
	"food",
	"food delivery",
	"restaurant",
	"swiggy",
	"zomato",
	"shopping",
	"online shopping",
	"entertainment",
	"travel",
	"movie",
	"uber",
	"ola",
	"cab",
	"subscription",
}

func isDiscretionaryCategory(category string) bool {
	cat := strings.ToLower(category)
	for _, c := range discretionaryCategories {
		if strings.Contains(cat, c) {
			return true
		}
	}
	return false
}

// StripExpenseDisclaimer cuts the advisory disclaimer from plain expense
// confirmations. Debt and goal replies keep it.
func StripExpenseDisclaimer(message string, txnType models.TransactionType) string {
	if message == "" || txnType != models.TransactionExpense {
		return message
	}
	idx := strings.Index(strings.ToLower(message), expenseDisclaimerNeedle)
	if idx == -1 {
		return message
	}
	return strings.TrimSpace(message[:idx])
}

// BuildTransactionImpact translates an expense into felt terms: hours of work,
// share of salary, a strict-mode nudge, and how many days it pushes the
// earliest dated goal back. Returns "" when nothing crosses a threshold.
func BuildTransactionImpact(user *models.User, txn *models.Transaction, goal *models.Goal, now time.Time) string {
	var lines []string

	var salary float64
	if user.MonthlySalary != nil {
		salary = *user.MonthlySalary
	}

	if salary > 0 && txn.Type == models.TransactionExpense {
		workDays := user.WorkDaysPerMonth
		if workDays == 0 {
			workDays = defaultWorkDaysPerMonth
		}
		workHours := user.WorkHoursPerDay
		if workHours == 0 {
			workHours = defaultWorkHoursPerDay
		}
		hourlyRate := salary / float64(workDays*workHours)

		if hourlyRate > 0 {
			hours := txn.Amount / hourlyRate
			if hours >= 0.3 {
				lines = append(lines, fmt.Sprintf("This spend equals about %s hours of your work.", formatHours(hours)))

				pct := txn.Amount / salary * 100
				if pct >= 5 {
					lines = append(lines, fmt.Sprintf("That’s about %.1f%% of your monthly salary in one shot.", pct))
				}

				if user.StrictMode && pct >= 10 && isDiscretionaryCategory(txn.Category) {
					lines = append(lines, "Savings just took a small L here 😅 Next time, ping me before such a big swipe.")
				}
			}
		}
	}

	if goal != nil && goal.GoalTargetDate != nil &&
		txn.Type == models.TransactionExpense && isDiscretionaryCategory(txn.Category) {
		target := *goal.GoalTargetDate
		monthsLeft := (target.Year()-now.Year())*12 + int(target.Month()) - int(now.Month())
		if monthsLeft < 1 {
			monthsLeft = 1
		}

		monthlyNeed := goal.GoalAmount / float64(monthsLeft)
		dailyNeed := monthlyNeed / 30

		if dailyNeed > 0 {
			daysDelay := txn.Amount / dailyNeed
			if daysDelay >= 1 {
				lines = append(lines, fmt.Sprintf(
					"If you had saved this ₹%s for your goal %q, you could reach it roughly %d day(s) earlier instead of spending it.",
					FormatRupees(txn.Amount), goal.GoalName, int(math.Round(daysDelay))))
			}
		}
	}

	return strings.Join(lines, "\n")
}
