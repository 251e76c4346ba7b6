package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	UpsertByGoogleSub(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// ExpenseRepository defines persistence for expenses. Update and Delete are
// owner-checked: a mismatched owner behaves like a missing row.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) error
	Update(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]Expense, error)
}

// InventoryRepository defines persistence for inventory items.
type InventoryRepository interface {
	Create(ctx context.Context, item *InventoryItem) error
	Update(ctx context.Context, item *InventoryItem) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]InventoryItem, error)
}

// DiaryRepository defines persistence for diary entries. Entries have no
// update path.
type DiaryRepository interface {
	Create(ctx context.Context, entry *DiaryEntry) error
	Delete(ctx context.Context, ownerID, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]DiaryEntry, error)
}
