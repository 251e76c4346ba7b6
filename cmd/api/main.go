package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"farmstead/internal/adapter/repo"
	"farmstead/internal/http/handlers"
	"farmstead/internal/http/httpapi"
	"farmstead/internal/infra"
	"farmstead/internal/infra/geoip"
	"farmstead/internal/infra/google"
	"farmstead/internal/livefeed"
	"farmstead/internal/providers/chat"
	"farmstead/internal/providers/weather"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	if err := infra.Migrate(ctx, dbpool); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	geo, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip unavailable, weather default location disabled")
	}

	var weatherClient *weather.Client
	if cfg.WeatherAPIKey != "" {
		weatherClient, err = weather.NewClient(weather.Options{
			APIKey:  cfg.WeatherAPIKey,
			BaseURL: cfg.WeatherBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build weather client")
		}
	} else {
		logger.Warn().Msg("WEATHER_API_KEY unset, weather lookup disabled")
	}

	var responder chat.Responder = chat.NewStaticResponder()
	if cfg.GeminiAPIKey != "" {
		responder, err = chat.NewGeminiResponder(chat.GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build chat responder")
		}
	} else {
		logger.Warn().Msg("GEMINI_API_KEY unset, chatbot uses static replies")
	}

	app := &handlers.App{
		Logger:         logger,
		JWTSecret:      cfg.JWTSecret,
		Users:          repo.NewUserRepository(dbpool),
		Expenses:       repo.NewExpenseRepository(dbpool),
		Inventory:      repo.NewInventoryRepository(dbpool),
		Diary:          repo.NewDiaryRepository(dbpool),
		Feed:           livefeed.NewHub(),
		GoogleVerifier: google.NewVerifier(cfg.GoogleIssuer, cfg.GoogleClientID),
		Weather:        weatherClient,
		Chat:           responder,
		Geo:            geo,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
