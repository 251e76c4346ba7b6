package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"farmstead/internal/domain"
)

// DiaryRepositoryPG implements domain.DiaryRepository backed by PostgreSQL.
type DiaryRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDiaryRepository creates a new DiaryRepositoryPG.
func NewDiaryRepository(pool *pgxpool.Pool) *DiaryRepositoryPG {
	return &DiaryRepositoryPG{pool: pool}
}

// Create inserts an entry and reads back the server-assigned timestamp.
func (r *DiaryRepositoryPG) Create(ctx context.Context, entry *domain.DiaryEntry) error {
	query := `
INSERT INTO diary_entries (id, owner_id, entry_date, entry_time, crop_name, activity)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at;
`
	return r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.OwnerID,
		entry.Date,
		entry.Time,
		entry.CropName,
		entry.Activity,
	).Scan(&entry.CreatedAt)
}

// Delete removes an owner's entry.
func (r *DiaryRepositoryPG) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM diary_entries WHERE id = $1 AND owner_id = $2;`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner returns all of an owner's entries, newest first.
func (r *DiaryRepositoryPG) ListByOwner(ctx context.Context, ownerID string) ([]domain.DiaryEntry, error) {
	query := `
SELECT id, owner_id, entry_date, entry_time, crop_name, activity, created_at
FROM diary_entries
WHERE owner_id = $1
ORDER BY created_at DESC;
`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.DiaryEntry
	for rows.Next() {
		var (
			e    domain.DiaryEntry
			date time.Time
		)
		if err := rows.Scan(&e.ID, &e.OwnerID, &date, &e.Time, &e.CropName, &e.Activity, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Date = date.Format("2006-01-02")
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ domain.DiaryRepository = (*DiaryRepositoryPG)(nil)
