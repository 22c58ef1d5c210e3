package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/savezra/whatsapp-bot/internal/models"
	"github.com/savezra/whatsapp-bot/internal/repository"
)

const defaultUsersLimit = 100

// AdminHandler serves the read-only operator endpoints.
type AdminHandler struct {
	userRepo *repository.UserRepository
	txnRepo  *repository.TransactionRepository
	log      *zap.Logger
}

func NewAdminHandler(userRepo *repository.UserRepository, txnRepo *repository.TransactionRepository, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		userRepo: userRepo,
		txnRepo:  txnRepo,
		log:      log.Named("admin"),
	}
}

type statsResponse struct {
	TotalUsers        int64 `json:"totalUsers"`
	TotalTransactions int64 `json:"totalTransactions"`
	ActiveLast7Days   int64 `json:"activeLast7Days"`
}

// Stats returns headline counts: users, transactions, active last 7 days.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalUsers, err := h.userRepo.CountUsers(ctx)
	if err != nil {
		h.internalError(w, "failed to count users", err)
		return
	}

	totalTxns, err := h.txnRepo.CountTransactions(ctx)
	if err != nil {
		h.internalError(w, "failed to count transactions", err)
		return
	}

	sevenDaysAgo := time.Now().Add(-7 * 24 * time.Hour)
	active, err := h.userRepo.CountActiveSince(ctx, sevenDaysAgo)
	if err != nil {
		h.internalError(w, "failed to count active users", err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalUsers:        totalUsers,
		TotalTransactions: totalTxns,
		ActiveLast7Days:   active,
	})
}

type userSummary struct {
	WhatsappID        string     `json:"whatsappId"`
	Name              *string    `json:"name"`
	LastActiveDate    *time.Time `json:"lastActiveDate"`
	LastTransactionAt *time.Time `json:"lastTransactionAt"`
	Streak            int        `json:"streak"`
	CreatedAt         time.Time  `json:"createdAt"`
}

type usersResponse struct {
	TotalUsers int64         `json:"totalUsers"`
	Returned   int           `json:"returned"`
	Users      []userSummary `json:"users"`
}

// Users lists recent users, newest first. Optional ?limit= caps the page.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultUsersLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	totalUsers, err := h.userRepo.CountUsers(ctx)
	if err != nil {
		h.internalError(w, "failed to count users", err)
		return
	}

	users, err := h.userRepo.ListRecentUsers(ctx, limit)
	if err != nil {
		h.internalError(w, "failed to list users", err)
		return
	}

	summaries := make([]userSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, summarizeUser(u))
	}

	writeJSON(w, http.StatusOK, usersResponse{
		TotalUsers: totalUsers,
		Returned:   len(summaries),
		Users:      summaries,
	})
}

func summarizeUser(u models.User) userSummary {
	return userSummary{
		WhatsappID:        u.WhatsappID,
		Name:              u.Name,
		LastActiveDate:    u.LastActiveDate,
		LastTransactionAt: u.LastTransactionAt,
		Streak:            u.Streak,
		CreatedAt:         u.CreatedAt,
	}
}

func (h *AdminHandler) internalError(w http.ResponseWriter, msg string, err error) {
	h.log.Error(msg, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
