package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiaryCreateAndList(t *testing.T) {
	app := newTestApp()
	h := authedRoutes(app, "owner-1")

	rec := postJSON(t, h, "/diary", `{"date":"2024-06-02","time":"07:30","crop_name":"Tomato","activity":"Watered the seedlings"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d: %s", rec.Code, rec.Body.String())
	}
	var created diaryDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.CropName != "Tomato" || created.Time != "07:30" {
		t.Fatalf("created = %+v", created)
	}

	var list []diaryDTO
	getJSON(t, h, "/diary", &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}
}

func TestDiaryValidation(t *testing.T) {
	app := newTestApp()
	h := authedRoutes(app, "owner-1")

	tests := []struct {
		name string
		body string
	}{
		{"missing crop", `{"date":"2024-06-02","time":"07:30","activity":"Watering"}`},
		{"missing activity", `{"date":"2024-06-02","time":"07:30","crop_name":"Tomato"}`},
		{"blank activity", `{"date":"2024-06-02","time":"07:30","crop_name":"Tomato","activity":"   "}`},
		{"bad date", `{"date":"June 2","time":"07:30","crop_name":"Tomato","activity":"Watering"}`},
		{"bad time", `{"date":"2024-06-02","time":"7:30am","crop_name":"Tomato","activity":"Watering"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h, "/diary", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("got %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestDiaryDeleteOwnerScoped(t *testing.T) {
	app := newTestApp()
	owner := authedRoutes(app, "owner-1")
	other := authedRoutes(app, "owner-2")

	rec := postJSON(t, owner, "/diary", `{"date":"2024-06-02","time":"07:30","crop_name":"Tomato","activity":"Watering"}`)
	var created diaryDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/diary/"+created.ID, nil)
	w := httptest.NewRecorder()
	other.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-owner delete: got %d, want 404", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/diary/"+created.ID, nil)
	w = httptest.NewRecorder()
	owner.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("owner delete: got %d, want 204", w.Code)
	}
}
