package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"farmstead/internal/domain"
)

// InventoryRepositoryPG implements domain.InventoryRepository backed by PostgreSQL.
type InventoryRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepositoryPG.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepositoryPG {
	return &InventoryRepositoryPG{pool: pool}
}

// Create inserts an item and reads back the server-assigned timestamps.
func (r *InventoryRepositoryPG) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `
INSERT INTO inventory_items (id, owner_id, item_name, quantity, unit)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, updated_at;
`
	return r.pool.QueryRow(ctx, query,
		item.ID,
		item.OwnerID,
		item.ItemName,
		item.Quantity,
		string(item.Unit),
	).Scan(&item.CreatedAt, &item.UpdatedAt)
}

// Update overwrites the mutable fields of an owner's item and bumps updated_at.
func (r *InventoryRepositoryPG) Update(ctx context.Context, item *domain.InventoryItem) error {
	query := `
UPDATE inventory_items
SET item_name = $3, quantity = $4, unit = $5, updated_at = NOW()
WHERE id = $1 AND owner_id = $2;
`
	tag, err := r.pool.Exec(ctx, query,
		item.ID,
		item.OwnerID,
		item.ItemName,
		item.Quantity,
		string(item.Unit),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an owner's item.
func (r *InventoryRepositoryPG) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1 AND owner_id = $2;`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner returns all of an owner's items. No order is imposed beyond
// insertion order; low-stock filtering happens in the handler.
func (r *InventoryRepositoryPG) ListByOwner(ctx context.Context, ownerID string) ([]domain.InventoryItem, error) {
	query := `
SELECT id, owner_id, item_name, quantity, unit, created_at, updated_at
FROM inventory_items
WHERE owner_id = $1
ORDER BY created_at;
`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var (
			item domain.InventoryItem
			unit string
		)
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.ItemName, &item.Quantity, &unit, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		item.Unit = domain.InventoryUnit(unit)
		items = append(items, item)
	}
	return items, rows.Err()
}

var _ domain.InventoryRepository = (*InventoryRepositoryPG)(nil)
