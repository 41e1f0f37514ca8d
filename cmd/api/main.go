package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fitvision/internal/batch"
	httpapi "fitvision/internal/http"
	"fitvision/internal/http/handlers"
	"fitvision/internal/infra"
	"fitvision/internal/providers/action"
	"fitvision/internal/providers/genai"
	"fitvision/internal/providers/image"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set, AI endpoints will return configuration errors")
	}

	// One client per boundary: the image model tolerates a longer backoff
	// between rate-limited attempts than the text model.
	actionClient := genai.NewClient(genai.Options{
		APIKey:       cfg.GeminiAPIKey,
		BaseURL:      cfg.GeminiBaseURL,
		Logger:       logger,
		MaxRetries:   cfg.ActionRetries,
		RetryBackoff: cfg.ActionBackoff,
	})
	imageClient := genai.NewClient(genai.Options{
		APIKey:       cfg.GeminiAPIKey,
		BaseURL:      cfg.GeminiBaseURL,
		Logger:       logger,
		MaxRetries:   cfg.ImageRetries,
		RetryBackoff: cfg.ImageBackoff,
	})

	resolver, err := action.NewGemini(action.GeminiOptions{
		Client: actionClient,
		Model:  cfg.GeminiTextModel,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build action resolver")
	}
	renderer, err := image.NewGemini(image.GeminiOptions{
		Client: imageClient,
		Model:  cfg.GeminiImageModel,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build image renderer")
	}

	orchestrator, err := batch.New(batch.Options{
		Resolver:     resolver,
		Renderer:     renderer,
		ItemInterval: cfg.BatchItemDelay,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build batch orchestrator")
	}

	app := &handlers.App{
		Logger:         logger,
		Orchestrator:   orchestrator,
		Resolver:       resolver,
		Renderer:       renderer,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
