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

type diaryRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	CropName string `json:"crop_name"`
	Activity string `json:"activity"`
}

type diaryDTO struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CropName  string    `json:"crop_name"`
	Activity  string    `json:"activity"`
	CreatedAt time.Time `json:"created_at"`
}

func toDiaryDTO(e domain.DiaryEntry) diaryDTO {
	return diaryDTO{
		ID:        e.ID,
		OwnerID:   e.OwnerID,
		Date:      e.Date,
		Time:      e.Time,
		CropName:  e.CropName,
		Activity:  e.Activity,
		CreatedAt: e.CreatedAt,
	}
}

// ListDiary returns the owner's entries, newest first.
func (a *App) ListDiary(w http.ResponseWriter, r *http.Request) {
	entries, err := a.Diary.ListByOwner(r.Context(), a.currentUserID(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list diary failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load diary")
		return
	}
	out := make([]diaryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDiaryDTO(e))
	}
	a.json(w, http.StatusOK, out)
}

// CreateDiaryEntry appends an entry. Every field is required; entries are
// never edited afterwards.
func (a *App) CreateDiaryEntry(w http.ResponseWriter, r *http.Request) {
	var req diaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Date == "" || req.Time == "" || strings.TrimSpace(req.CropName) == "" || strings.TrimSpace(req.Activity) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "date, time, crop_name and activity are required")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "date must be YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "time must be HH:MM")
		return
	}

	entry := &domain.DiaryEntry{
		ID:       uuid.NewString(),
		OwnerID:  a.currentUserID(r),
		Date:     req.Date,
		Time:     req.Time,
		CropName: strings.TrimSpace(req.CropName),
		Activity: strings.TrimSpace(req.Activity),
	}
	if err := a.Diary.Create(r.Context(), entry); err != nil {
		a.Logger.Error().Err(err).Msg("create diary entry failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to save entry")
		return
	}
	a.Feed.Notify(entry.OwnerID, livefeed.CollectionDiary)
	a.json(w, http.StatusCreated, toDiaryDTO(*entry))
}

// DeleteDiaryEntry removes an entry.
func (a *App) DeleteDiaryEntry(w http.ResponseWriter, r *http.Request) {
	ownerID := a.currentUserID(r)
	if err := a.Diary.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "entry not found")
			return
		}
		a.Logger.Error().Err(err).Msg("delete diary entry failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to delete entry")
		return
	}
	a.Feed.Notify(ownerID, livefeed.CollectionDiary)
	w.WriteHeader(http.StatusNoContent)
}

// WatchDiary streams full diary snapshots over SSE.
func (a *App) WatchDiary(w http.ResponseWriter, r *http.Request) {
	a.stream(w, r, livefeed.CollectionDiary, func(ownerID string) (any, error) {
		entries, err := a.Diary.ListByOwner(r.Context(), ownerID)
		if err != nil {
			return nil, err
		}
		out := make([]diaryDTO, 0, len(entries))
		for _, e := range entries {
			out = append(out, toDiaryDTO(e))
		}
		return out, nil
	})
}
