package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"farmstead/internal/domain"
	"farmstead/internal/infra/geoip"
	"farmstead/internal/infra/google"
	"farmstead/internal/livefeed"
	"farmstead/internal/middleware"
	"farmstead/internal/providers/chat"
	"farmstead/internal/providers/weather"
)

// GoogleVerifier validates Google ID tokens during sign-in.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (*google.IDClaims, error)
}

// App bundles the dependencies shared by every handler.
type App struct {
	Logger         zerolog.Logger
	JWTSecret      string
	Users          domain.UserRepository
	Expenses       domain.ExpenseRepository
	Inventory      domain.InventoryRepository
	Diary          domain.DiaryRepository
	Feed           *livefeed.Hub
	GoogleVerifier GoogleVerifier
	Weather        *weather.Client
	Chat           chat.Responder
	Geo            geoip.LocationResolver
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// Health reports liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
