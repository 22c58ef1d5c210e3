package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/savezra/whatsapp-bot/internal/models"
)

// ErrUserNotFound is returned when no user exists for the given identity.
var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, whatsapp_id, name, monthly_salary, preferred_language, streak,
	last_active_date, conversation_history, work_hours_per_day, work_days_per_month,
	strict_mode, last_transaction_at, created_at, updated_at`

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	history, err := json.Marshal(user.ConversationHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO users (id, whatsapp_id, name, preferred_language, work_hours_per_day, work_days_per_month, conversation_history)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		user.ID, user.WhatsappID, user.Name, user.PreferredLanguage,
		user.WorkHoursPerDay, user.WorkDaysPerMonth, history,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetUserByWhatsappID(ctx context.Context, whatsappID string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE whatsapp_id = $1`, whatsappID)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// SaveUser persists every mutable field of the user document.
func (r *UserRepository) SaveUser(ctx context.Context, user *models.User) error {
	history, err := json.Marshal(user.ConversationHistory)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE users
		 SET name = $1, monthly_salary = $2, preferred_language = $3, streak = $4,
		     last_active_date = $5, conversation_history = $6, work_hours_per_day = $7,
		     work_days_per_month = $8, strict_mode = $9, last_transaction_at = $10,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE whatsapp_id = $11`,
		user.Name, user.MonthlySalary, user.PreferredLanguage, user.Streak,
		user.LastActiveDate, history, user.WorkHoursPerDay,
		user.WorkDaysPerMonth, user.StrictMode, user.LastTransactionAt,
		user.WhatsappID,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

func (r *UserRepository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE last_active_date >= $1`, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}
	return total, nil
}

// ListRecentUsers returns the newest users first, capped at limit.
func (r *UserRepository) ListRecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var (
		name       sql.NullString
		salary     sql.NullFloat64
		lastActive sql.NullTime
		lastTxn    sql.NullTime
		historyRaw []byte
		language   string
	)

	err := row.Scan(&user.ID, &user.WhatsappID, &name, &salary, &language,
		&user.Streak, &lastActive, &historyRaw, &user.WorkHoursPerDay,
		&user.WorkDaysPerMonth, &user.StrictMode, &lastTxn,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if name.Valid {
		user.Name = &name.String
	}
	if salary.Valid {
		user.MonthlySalary = &salary.Float64
	}
	if lastActive.Valid {
		user.LastActiveDate = &lastActive.Time
	}
	if lastTxn.Valid {
		user.LastTransactionAt = &lastTxn.Time
	}
	user.PreferredLanguage = models.PreferredLanguage(language)

	if len(historyRaw) > 0 {
		if err := json.Unmarshal(historyRaw, &user.ConversationHistory); err != nil {
			return nil, fmt.Errorf("failed to decode history: %w", err)
		}
	}

	return user, nil
}
