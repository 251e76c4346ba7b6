package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"farmstead/internal/domain"
	"farmstead/internal/livefeed"
	"farmstead/internal/middleware"
	"farmstead/internal/providers/chat"
)

// In-memory repositories backing the handler tests.

type memExpenseRepo struct {
	mu       sync.Mutex
	expenses map[string]domain.Expense
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{expenses: make(map[string]domain.Expense)}
}

func (m *memExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expenses[e.ID] = *e
	return nil
}

func (m *memExpenseRepo) Update(ctx context.Context, e *domain.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.expenses[e.ID]
	if !ok || existing.OwnerID != e.OwnerID {
		return domain.ErrNotFound
	}
	e.CreatedAt = existing.CreatedAt
	m.expenses[e.ID] = *e
	return nil
}

func (m *memExpenseRepo) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.expenses[id]
	if !ok || existing.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

func (m *memExpenseRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Expense
	for _, e := range m.expenses {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

type memInventoryRepo struct {
	mu    sync.Mutex
	items map[string]domain.InventoryItem
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{items: make(map[string]domain.InventoryItem)}
}

func (m *memInventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = *item
	return nil
}

func (m *memInventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[item.ID]
	if !ok || existing.OwnerID != item.OwnerID {
		return domain.ErrNotFound
	}
	item.CreatedAt = existing.CreatedAt
	m.items[item.ID] = *item
	return nil
}

func (m *memInventoryRepo) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.items[id]
	if !ok || existing.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memInventoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.InventoryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.InventoryItem
	for _, item := range m.items {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}

type memDiaryRepo struct {
	mu      sync.Mutex
	entries map[string]domain.DiaryEntry
}

func newMemDiaryRepo() *memDiaryRepo {
	return &memDiaryRepo{entries: make(map[string]domain.DiaryEntry)}
}

func (m *memDiaryRepo) Create(ctx context.Context, e *domain.DiaryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = *e
	return nil
}

func (m *memDiaryRepo) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.entries[id]
	if !ok || existing.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memDiaryRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.DiaryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.DiaryEntry
	for _, e := range m.entries {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var (
	_ domain.ExpenseRepository   = (*memExpenseRepo)(nil)
	_ domain.InventoryRepository = (*memInventoryRepo)(nil)
	_ domain.DiaryRepository     = (*memDiaryRepo)(nil)
)

func newTestApp() *App {
	return &App{
		Logger:    zerolog.Nop(),
		JWTSecret: "test-secret",
		Users:     newMemUserRepo(),
		Expenses:  newMemExpenseRepo(),
		Inventory: newMemInventoryRepo(),
		Diary:     newMemDiaryRepo(),
		Feed:      livefeed.NewHub(),
		Chat:      chat.NewStaticResponder(),
	}
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (m *memUserRepo) UpsertByGoogleSub(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.GoogleSub == user.GoogleSub {
			existing.Email = user.Email
			existing.Name = user.Name
			existing.Picture = user.Picture
			m.users[existing.ID] = existing
			return &existing, nil
		}
	}
	m.users[user.ID] = *user
	out := *user
	return &out, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

var _ domain.UserRepository = (*memUserRepo)(nil)

// authedRoutes mounts the handlers the way the router does, with the owner
// id injected directly instead of going through the JWT middleware.
func authedRoutes(app *App, ownerID string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.ContextWithUserID(req.Context(), ownerID)))
		})
	})
	r.Get("/expenses", app.ListExpenses)
	r.Post("/expenses", app.CreateExpense)
	r.Get("/expenses/summary", app.ExpenseSummary)
	r.Put("/expenses/{id}", app.UpdateExpense)
	r.Delete("/expenses/{id}", app.DeleteExpense)
	r.Get("/inventory", app.ListInventory)
	r.Post("/inventory", app.CreateInventoryItem)
	r.Put("/inventory/{id}", app.UpdateInventoryItem)
	r.Delete("/inventory/{id}", app.DeleteInventoryItem)
	r.Get("/diary", app.ListDiary)
	r.Post("/diary", app.CreateDiaryEntry)
	r.Delete("/diary/{id}", app.DeleteDiaryEntry)
	r.Get("/weather", app.WeatherCurrent)
	r.Post("/chat", app.ChatSend)
	return r
}
