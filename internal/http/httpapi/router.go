package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"farmstead/internal/http/handlers"
	"farmstead/internal/middleware"
)

// Options carries the router-level settings.
type Options struct {
	Logger          zerolog.Logger
	JWTSecret       string
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter wires middleware and routes. Everything under /v1 except health
// and sign-in requires a session token.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.RateLimit(opts.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	r.Post("/v1/auth/google", app.AuthGoogleVerify)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.JWTSecret))

		r.Get("/v1/me", app.Me)

		r.Route("/v1/expenses", func(r chi.Router) {
			r.Get("/", app.ListExpenses)
			r.Post("/", app.CreateExpense)
			r.Get("/summary", app.ExpenseSummary)
			r.Get("/watch", app.WatchExpenses)
			r.Put("/{id}", app.UpdateExpense)
			r.Delete("/{id}", app.DeleteExpense)
		})

		r.Route("/v1/inventory", func(r chi.Router) {
			r.Get("/", app.ListInventory)
			r.Post("/", app.CreateInventoryItem)
			r.Get("/watch", app.WatchInventory)
			r.Put("/{id}", app.UpdateInventoryItem)
			r.Delete("/{id}", app.DeleteInventoryItem)
		})

		r.Route("/v1/diary", func(r chi.Router) {
			r.Get("/", app.ListDiary)
			r.Post("/", app.CreateDiaryEntry)
			r.Get("/watch", app.WatchDiary)
			r.Delete("/{id}", app.DeleteDiaryEntry)
		})

		r.Get("/v1/weather", app.WeatherCurrent)
		r.Post("/v1/chat", app.ChatSend)
	})

	return r
}
