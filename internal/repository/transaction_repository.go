package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/savezra/whatsapp-bot/internal/models"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) CreateTransaction(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO transactions (whatsapp_id, item, amount, category, type, date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		txn.WhatsappID, txn.Item, txn.Amount, txn.Category, txn.Type, txn.Date,
	).Scan(&txn.ID, &txn.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return txn, nil
}

// ListSince returns transactions on or after `since`, newest first.
// A limit of 0 means no limit.
func (r *TransactionRepository) ListSince(ctx context.Context, whatsappID string, since time.Time, limit int) ([]models.Transaction, error) {
	query := `SELECT id, whatsapp_id, item, amount, category, type, date, created_at
		 FROM transactions WHERE whatsapp_id = $1 AND date >= $2 ORDER BY date DESC`
	args := []any{whatsappID, since}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListBetween returns transactions with from <= date < to, newest first.
func (r *TransactionRepository) ListBetween(ctx context.Context, whatsappID string, from, to time.Time) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, whatsapp_id, item, amount, category, type, date, created_at
		 FROM transactions WHERE whatsapp_id = $1 AND date >= $2 AND date < $3
		 ORDER BY date DESC`,
		whatsappID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) CountTransactions(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	var txns []models.Transaction
	for rows.Next() {
		txn := models.Transaction{}
		err := rows.Scan(&txn.ID, &txn.WhatsappID, &txn.Item, &txn.Amount,
			&txn.Category, &txn.Type, &txn.Date, &txn.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}
