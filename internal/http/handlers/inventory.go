package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"farmstead/internal/domain"
	"farmstead/internal/livefeed"
)

type inventoryRequest struct {
	ItemName string   `json:"item_name"`
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
}

type inventoryDTO struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	ItemName  string    `json:"item_name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	LowStock  bool      `json:"low_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toInventoryDTO(item domain.InventoryItem) inventoryDTO {
	return inventoryDTO{
		ID:        item.ID,
		OwnerID:   item.OwnerID,
		ItemName:  item.ItemName,
		Quantity:  item.Quantity,
		Unit:      string(item.Unit),
		LowStock:  item.LowStock(),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func parseInventoryRequest(req inventoryRequest) (*domain.InventoryItem, string) {
	if strings.TrimSpace(req.ItemName) == "" || req.Quantity == nil {
		return nil, "item_name and quantity are required"
	}
	if *req.Quantity < 0 {
		return nil, "quantity must not be negative"
	}
	if !domain.ValidUnit(req.Unit) {
		return nil, "unknown unit"
	}
	return &domain.InventoryItem{
		ItemName: strings.TrimSpace(req.ItemName),
		Quantity: *req.Quantity,
		Unit:     domain.InventoryUnit(req.Unit),
	}, ""
}

// ListInventory returns the owner's items. With ?low_stock=true only the
// below-threshold partition is returned; the flag itself is derived per
// item either way.
func (a *App) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := a.Inventory.ListByOwner(r.Context(), a.currentUserID(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list inventory failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load inventory")
		return
	}
	if r.URL.Query().Get("low_stock") == "true" {
		items, _ = domain.PartitionStock(items)
	}
	out := make([]inventoryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toInventoryDTO(item))
	}
	a.json(w, http.StatusOK, out)
}

// CreateInventoryItem validates and persists a new item.
func (a *App) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	item, msg := parseInventoryRequest(req)
	if msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	item.ID = uuid.NewString()
	item.OwnerID = a.currentUserID(r)

	if err := a.Inventory.Create(r.Context(), item); err != nil {
		a.Logger.Error().Err(err).Msg("create inventory item failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save item")
		return
	}
	a.Feed.Notify(item.OwnerID, livefeed.CollectionInventory)
	a.json(w, http.StatusCreated, toInventoryDTO(*item))
}

// UpdateInventoryItem overwrites the mutable fields of an item.
func (a *App) UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req inventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	item, msg := parseInventoryRequest(req)
	if msg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", msg)
		return
	}
	item.ID = chi.URLParam(r, "id")
	item.OwnerID = a.currentUserID(r)

	if err := a.Inventory.Update(r.Context(), item); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "item not found")
			return
		}
		a.Logger.Error().Err(err).Msg("update inventory item failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save item")
		return
	}
	a.Feed.Notify(item.OwnerID, livefeed.CollectionInventory)
	a.json(w, http.StatusOK, toInventoryDTO(*item))
}

// DeleteInventoryItem removes an item immediately; inventory has no
// confirmation step.
func (a *App) DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	ownerID := a.currentUserID(r)
	if err := a.Inventory.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "item not found")
			return
		}
		a.Logger.Error().Err(err).Msg("delete inventory item failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete item")
		return
	}
	a.Feed.Notify(ownerID, livefeed.CollectionInventory)
	w.WriteHeader(http.StatusNoContent)
}

// WatchInventory streams full inventory snapshots over SSE.
func (a *App) WatchInventory(w http.ResponseWriter, r *http.Request) {
	a.stream(w, r, livefeed.CollectionInventory, func(ownerID string) (any, error) {
		items, err := a.Inventory.ListByOwner(r.Context(), ownerID)
		if err != nil {
			return nil, err
		}
		out := make([]inventoryDTO, 0, len(items))
		for _, item := range items {
			out = append(out, toInventoryDTO(item))
		}
		return out, nil
	})
}
