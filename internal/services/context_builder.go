package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/repository"
)

const contextErrorBlock = "--- USER CONTEXT ---\nError loading context.\n--- END USER CONTEXT ---"

// ContextBuilder assembles the factual snapshot injected into the system
// prompt so the model never has to guess the user's numbers.
type ContextBuilder struct {
	txnRepo  *repository.TransactionRepository
	debtRepo *repository.DebtRepository
	goalRepo *repository.GoalRepository
	log      *zap.Logger
}

func NewContextBuilder(txnRepo *repository.TransactionRepository, debtRepo *repository.DebtRepository, goalRepo *repository.GoalRepository, log *zap.Logger) *ContextBuilder {
	return &ContextBuilder{
		txnRepo:  txnRepo,
		debtRepo: debtRepo,
		goalRepo: goalRepo,
		log:      log.Named("context"),
	}
}

// BuildUserContext loads the current month's activity plus active debts and
// goals and renders them as a text block. Failures degrade to a stub block
// rather than blocking the conversation.
func (b *ContextBuilder) BuildUserContext(ctx context.Context, user *models.User) string {
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	txns, err := b.txnRepo.ListSince(ctx, user.WhatsappID, startOfMonth, 30)
	if err != nil {
		b.log.Error("failed to load monthly transactions", zap.Error(err))
		return contextErrorBlock
	}

	debts, err := b.debtRepo.GetActiveDebts(ctx, user.WhatsappID)
	if err != nil {
		b.log.Error("failed to load active debts", zap.Error(err))
		return contextErrorBlock
	}

	goals, err := b.goalRepo.GetActiveGoals(ctx, user.WhatsappID)
	if err != nil {
		b.log.Error("failed to load active goals", zap.Error(err))
		return contextErrorBlock
	}

	return RenderUserContext(user, txns, debts, goals)
}

// RenderUserContext formats the context block from already-loaded data.
func RenderUserContext(user *models.User, txns []models.Transaction, debts []models.Debt, goals []models.Goal) string {
	var totalExpenses, totalIncome float64
	breakdown := map[string]float64{}
	for _, t := range txns {
		switch t.Type {
		case models.TransactionExpense:
			totalExpenses += t.Amount
			cat := t.Category
			if cat == "" {
				cat = "Uncategorized"
			}
			breakdown[cat] += t.Amount
		case models.TransactionIncome:
			totalIncome += t.Amount
		}
	}

	lines := []string{"--- USER CONTEXT (System-provided, factual) ---"}

	if user.Name != nil {
		lines = append(lines, "Name: "+*user.Name)
	}
	lines = append(lines, "Preferred Language: "+string(user.PreferredLanguage))

	if user.MonthlySalary != nil {
		lines = append(lines, "Monthly Salary: ₹"+FormatRupees(*user.MonthlySalary))
	} else {
		lines = append(lines, "Monthly Salary: Not set")
	}

	lines = append(lines, fmt.Sprintf("Streak: %d day(s)", user.Streak))
	lines = append(lines, "Expenses This Month: ₹"+FormatRupees(totalExpenses))
	lines = append(lines, "Income Logged This Month: ₹"+FormatRupees(totalIncome))

	if len(breakdown) > 0 {
		lines = append(lines, "Category Breakdown This Month:")
		type catAmt struct {
			cat string
			amt float64
		}
		cats := make([]catAmt, 0, len(breakdown))
		for cat, amt := range breakdown {
			cats = append(cats, catAmt{cat, amt})
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i].amt > cats[j].amt })
		for _, c := range cats {
			lines = append(lines, fmt.Sprintf("  - %s: ₹%s", c.cat, FormatRupees(c.amt)))
		}
	}

	if len(txns) > 0 {
		lines = append(lines, "Recent Transactions (latest first):")
		recent := txns
		if len(recent) > 10 {
			recent = recent[:10]
		}
		for _, t := range recent {
			lines = append(lines, fmt.Sprintf("  - %s: %s ₹%s [%s] (%s)",
				t.Date.Format("2 Jan"), t.Item, FormatRupees(t.Amount), t.Category, t.Type))
		}
	} else {
		lines = append(lines, "Recent Transactions: None logged yet.")
	}

	if len(debts) > 0 {
		lines = append(lines, "Active Debts:")
		for _, d := range debts {
			line := fmt.Sprintf("  - %s: ₹%s", d.LenderName, FormatRupees(d.TotalAmount))
			if d.InterestRate != nil {
				line += fmt.Sprintf(" @ %g%%", *d.InterestRate)
			}
			if d.EmiAmount != nil {
				line += ", EMI ₹" + FormatRupees(*d.EmiAmount)
			}
			if d.Classification != models.DebtUnknown {
				line += fmt.Sprintf(" [%s]", d.Classification)
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "Active Debts: None recorded.")
	}

	if len(goals) > 0 {
		lines = append(lines, "Active Goals:")
		for _, g := range goals {
			line := fmt.Sprintf("  - %s: Target ₹%s", g.GoalName, FormatRupees(g.GoalAmount))
			if g.GoalTargetDate != nil {
				line += " by " + g.GoalTargetDate.Format("Jan 2006")
			}
			line += ", Saved so far ₹" + FormatRupees(g.SavedSoFar)
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "Active Goals: None set.")
	}

	lines = append(lines, "--- END USER CONTEXT ---")

	return strings.Join(lines, "\n")
}
