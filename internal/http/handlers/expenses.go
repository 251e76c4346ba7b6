package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"farmstead/internal/domain"
	"farmstead/internal/livefeed"
)

type expenseRequest struct {
	Date     string      `json:"date"`
	Category string      `json:"category"`
	Amount   json.Number `json:"amount"`
	Notes    string      `json:"notes"`
}

type expenseDTO struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	Amount    string    `json:"amount"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func toExpenseDTO(e domain.Expense) expenseDTO {
	return expenseDTO{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Date:      e.Date,
		Category:  string(e.Category),
		Amount:    e.Amount.String(),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

// parseExpenseRequest validates the submitted fields before any write:
// date and a non-negative amount are required, the category falls back to
// Other, notes are optional.
func parseExpenseRequest(req expenseRequest) (*domain.Expense, string) {
	if req.Date == "" || req.Amount == "" {
		return nil, "date and amount are required"
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, "date must be YYYY-MM-DD"
	}
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		return nil, "amount must be numeric"
	}
	if amount.IsNegative() {
		return nil, "amount must not be negative"
	}
	return &domain.Expense{
		Date:     req.Date,
		Category: domain.ParseCategory(req.Category),
		Amount:   amount,
		Notes:    req.Notes,
	}, ""
}

// ListExpenses returns the owner's expenses, date-descending.
func (a *App) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := a.Expenses.ListByOwner(r.Context(), a.currentUserID(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list expenses failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load expenses")
		return
	}
	out := make([]expenseDTO, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseDTO(e))
	}
	a.json(w, http.StatusOK, out)
}

// CreateExpense validates and persists a new expense. The mirror held by
// connected clients updates through the watch stream, not the response.
func (a *App) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	expense, msg := parseExpenseRequest(req)
	if msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	expense.ID = uuid.NewString()
	expense.OwnerID = a.currentUserID(r)

	if err := a.Expenses.Create(r.Context(), expense); err != nil {
		a.Logger.Error().Err(err).Msg("create expense failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save expense")
		return
	}
	a.Feed.Notify(expense.OwnerID, livefeed.CollectionExpenses)
	a.json(w, http.StatusCreated, toExpenseDTO(*expense))
}

// UpdateExpense overwrites the mutable fields of an expense.
func (a *App) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	expense, msg := parseExpenseRequest(req)
	if msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	expense.ID = chi.URLParam(r, "id")
	expense.OwnerID = a.currentUserID(r)

	if err := a.Expenses.Update(r.Context(), expense); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "expense not found")
			return
		}
		a.Logger.Error().Err(err).Msg("update expense failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save expense")
		return
	}
	a.Feed.Notify(expense.OwnerID, livefeed.CollectionExpenses)
	a.json(w, http.StatusOK, toExpenseDTO(*expense))
}

// DeleteExpense removes an expense.
func (a *App) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	ownerID := a.currentUserID(r)
	if err := a.Expenses.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "expense not found")
			return
		}
		a.Logger.Error().Err(err).Msg("delete expense failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete expense")
		return
	}
	a.Feed.Notify(ownerID, livefeed.CollectionExpenses)
	w.WriteHeader(http.StatusNoContent)
}

type categoryStatDTO struct {
	Category string  `json:"category"`
	Total    string  `json:"total"`
	Percent  float64 `json:"percent"`
}

type expenseSummaryDTO struct {
	Month      string            `json:"month"`
	Total      string            `json:"total"`
	Count      int               `json:"count"`
	Average    string            `json:"average"`
	Categories []categoryStatDTO `json:"categories"`
}

// ExpenseSummary returns the derived metrics for one month. Defaults to the
// current month when no month parameter is given.
func (a *App) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "month must be YYYY-MM")
		return
	}

	expenses, err := a.Expenses.ListByOwner(r.Context(), a.currentUserID(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list expenses failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load expenses")
		return
	}

	summary := domain.Summarize(expenses, month)
	out := expenseSummaryDTO{
		Month:      summary.Month,
		Total:      summary.Total.String(),
		Count:      summary.Count,
		Average:    summary.Average.String(),
		Categories: make([]categoryStatDTO, 0, len(summary.Categories)),
	}
	for _, stat := range summary.Categories {
		out.Categories = append(out.Categories, categoryStatDTO{
			Category: string(stat.Category),
			Total:    stat.Total.String(),
			Percent:  stat.Percent,
		})
	}
	a.json(w, http.StatusOK, out)
}

// WatchExpenses streams full expense snapshots over SSE.
func (a *App) WatchExpenses(w http.ResponseWriter, r *http.Request) {
	a.stream(w, r, livefeed.CollectionExpenses, func(ownerID string) (any, error) {
		expenses, err := a.Expenses.ListByOwner(r.Context(), ownerID)
		if err != nil {
			return nil, err
		}
		out := make([]expenseDTO, 0, len(expenses))
		for _, e := range expenses {
			out = append(out, toExpenseDTO(e))
		}
		return out, nil
	})
}
