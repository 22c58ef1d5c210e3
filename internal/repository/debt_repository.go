package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/savezra/whatsapp-bot/internal/models"
)

type DebtRepository struct {
	db *sql.DB
}

func NewDebtRepository(db *sql.DB) *DebtRepository {
	return &DebtRepository{db: db}
}

func (r *DebtRepository) CreateDebt(ctx context.Context, debt *models.Debt) (*models.Debt, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO debts (whatsapp_id, lender_name, total_amount, interest_rate, emi_amount, tenure_months, due_date, classification, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		debt.WhatsappID, debt.LenderName, debt.TotalAmount, debt.InterestRate,
		debt.EmiAmount, debt.TenureMonths, debt.DueDate, debt.Classification, debt.IsActive,
	).Scan(&debt.ID, &debt.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	return debt, nil
}

func (r *DebtRepository) GetActiveDebts(ctx context.Context, whatsappID string) ([]models.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, whatsapp_id, lender_name, total_amount, interest_rate, emi_amount, tenure_months, due_date, classification, is_active, created_at
		 FROM debts WHERE whatsapp_id = $1 AND is_active = TRUE ORDER BY created_at ASC`,
		whatsappID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []models.Debt
	for rows.Next() {
		debt := models.Debt{}
		var (
			rate   sql.NullFloat64
			emi    sql.NullFloat64
			tenure sql.NullInt64
			due    sql.NullTime
		)
		err := rows.Scan(&debt.ID, &debt.WhatsappID, &debt.LenderName, &debt.TotalAmount,
			&rate, &emi, &tenure, &due, &debt.Classification, &debt.IsActive, &debt.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		if rate.Valid {
			debt.InterestRate = &rate.Float64
		}
		if emi.Valid {
			debt.EmiAmount = &emi.Float64
		}
		if tenure.Valid {
			months := int(tenure.Int64)
			debt.TenureMonths = &months
		}
		if due.Valid {
			debt.DueDate = &due.Time
		}
		debts = append(debts, debt)
	}

	return debts, rows.Err()
}
