// Package httpapi wires the clipgen HTTP surface: routing, middleware and
// handler dependencies.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"clipgen/internal/config"
	"clipgen/internal/httpapi/handlers"
	"clipgen/internal/httpkit"
	"clipgen/internal/pkg/logger"
	"clipgen/internal/pkg/middleware"
)

// NewRouter assembles the full route table with the standard middleware
// stack.
func NewRouter(cfg *config.Config, h *handlers.Handler, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Recovery(log))
	r.Use(httpkit.CORS(httpkit.CORSOptions{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		ExposedHeaders: []string{"X-Request-ID"},
	}))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Post("/generate-videos", h.GenerateVideos)
	r.Get("/status/{jobID}", h.JobStatus)
	r.Get("/jobs", h.ListJobs)
	r.Get("/files/*", h.StreamArtifact)

	return r
}
