package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInventoryLowStockLifecycle(t *testing.T) {
	app := newTestApp()
	h := authedRoutes(app, "owner-1")

	rec := postJSON(t, h, "/inventory", `{"item_name":"Urea","quantity":3,"unit":"kg"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d: %s", rec.Code, rec.Body.String())
	}
	var created inventoryDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if !created.LowStock {
		t.Fatalf("quantity 3 should be flagged low stock: %+v", created)
	}

	var low []inventoryDTO
	getJSON(t, h, "/inventory?low_stock=true", &low)
	if len(low) != 1 || low[0].ID != created.ID {
		t.Fatalf("low stock list = %+v, want the Urea item", low)
	}

	req := httptest.NewRequest(http.MethodPut, "/inventory/"+created.ID, strings.NewReader(`{"item_name":"Urea","quantity":10,"unit":"kg"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update: got %d: %s", w.Code, w.Body.String())
	}
	var updated inventoryDTO
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.LowStock {
		t.Fatalf("quantity 10 should not be low stock: %+v", updated)
	}

	low = nil
	getJSON(t, h, "/inventory?low_stock=true", &low)
	if len(low) != 0 {
		t.Fatalf("low stock list after restock = %+v, want empty", low)
	}

	var all []inventoryDTO
	getJSON(t, h, "/inventory", &all)
	if len(all) != 1 || all[0].Quantity != 10 {
		t.Fatalf("full list = %+v", all)
	}
}

func TestInventoryValidation(t *testing.T) {
	app := newTestApp()
	h := authedRoutes(app, "owner-1")

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"quantity":3,"unit":"kg"}`},
		{"missing quantity", `{"item_name":"Urea","unit":"kg"}`},
		{"negative quantity", `{"item_name":"Urea","quantity":-1,"unit":"kg"}`},
		{"unknown unit", `{"item_name":"Urea","quantity":3,"unit":"barrels"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h, "/inventory", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("got %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestInventoryZeroQuantityAllowed(t *testing.T) {
	app := newTestApp()
	h := authedRoutes(app, "owner-1")

	rec := postJSON(t, h, "/inventory", `{"item_name":"Compost","quantity":0,"unit":"bags"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created inventoryDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if !created.LowStock {
		t.Fatalf("zero quantity should be low stock: %+v", created)
	}
}

func TestInventoryDeleteImmediate(t *testing.T) {
	app := newTestApp()
	h := authedRoutes(app, "owner-1")

	rec := postJSON(t, h, "/inventory", `{"item_name":"Urea","quantity":3,"unit":"kg"}`)
	var created inventoryDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/inventory/"+created.ID, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d, want 204", w.Code)
	}

	var all []inventoryDTO
	getJSON(t, h, "/inventory", &all)
	if len(all) != 0 {
		t.Fatalf("list after delete = %+v, want empty", all)
	}
}
