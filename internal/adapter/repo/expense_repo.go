package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"farmstead/internal/domain"
)

// ExpenseRepositoryPG implements domain.ExpenseRepository backed by PostgreSQL.
type ExpenseRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepositoryPG.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepositoryPG {
	return &ExpenseRepositoryPG{pool: pool}
}

// Create inserts an expense and reads back the server-assigned timestamp.
func (r *ExpenseRepositoryPG) Create(ctx context.Context, expense *domain.Expense) error {
	query := `
INSERT INTO expenses (id, owner_id, expense_date, category, amount, notes)
VALUES ($1, $2, $3, $4, $5::numeric, $6)
RETURNING created_at;
`
	return r.pool.QueryRow(ctx, query,
		expense.ID,
		expense.OwnerID,
		expense.Date,
		string(expense.Category),
		expense.Amount.String(),
		expense.Notes,
	).Scan(&expense.CreatedAt)
}

// Update overwrites the mutable fields of an owner's expense.
func (r *ExpenseRepositoryPG) Update(ctx context.Context, expense *domain.Expense) error {
	query := `
UPDATE expenses
SET expense_date = $3, category = $4, amount = $5::numeric, notes = $6
WHERE id = $1 AND owner_id = $2;
`
	tag, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.OwnerID,
		expense.Date,
		string(expense.Category),
		expense.Amount.String(),
		expense.Notes,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an owner's expense.
func (r *ExpenseRepositoryPG) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND owner_id = $2;`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner returns all of an owner's expenses, date-descending.
func (r *ExpenseRepositoryPG) ListByOwner(ctx context.Context, ownerID string) ([]domain.Expense, error) {
	query := `
SELECT id, owner_id, expense_date, category, amount::text, notes, created_at
FROM expenses
WHERE owner_id = $1
ORDER BY expense_date DESC, created_at DESC;
`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var (
			e      domain.Expense
			date   time.Time
			cat    string
			amount string
		)
		if err := rows.Scan(&e.ID, &e.OwnerID, &date, &cat, &amount, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Date = date.Format("2006-01-02")
		e.Category = domain.ParseCategory(cat)
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

var _ domain.ExpenseRepository = (*ExpenseRepositoryPG)(nil)
