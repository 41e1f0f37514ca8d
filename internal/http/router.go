// Package http wires the handler set into the chi router with the service
// middleware stack.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"fitvision/internal/http/handlers"
	"fitvision/internal/infra"
	"fitvision/internal/middleware"
)

// NewRouter builds the API surface.
func NewRouter(app *handlers.App, cfg *infra.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-action", app.GenerateAction)
		r.Post("/generate-image", app.GenerateImage)

		r.Get("/options", app.StyleOptions)

		r.Route("/batch", func(r chi.Router) {
			r.Post("/", app.BatchSubmit)
			r.Get("/", app.BatchSnapshot)
			r.Get("/stream", app.BatchStream)
			r.Put("/config", app.BatchConfig)
			r.Get("/export/markdown", app.BatchExportMarkdown)
		})

		r.Route("/items/{id}", func(r chi.Router) {
			r.Put("/prompt", app.ItemPrompt)
			r.Post("/image", app.ItemImage)
			r.Get("/image/download", app.ItemImageDownload)
		})
	})

	return r
}
