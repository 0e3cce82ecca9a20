// Package api exposes the scrape and query operations over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// BatchScraper runs one scrape batch.
type BatchScraper interface {
	ScrapeBatch(ctx context.Context, urls []string) (*models.BatchResult, error)
}

// MediaQuerier reads persisted media.
type MediaQuerier interface {
	ParseParams(page, pageSize, mediaType, search string) models.QueryParams
	Query(ctx context.Context, params models.QueryParams) (*models.QueryResult, error)
}

// NewRouter wires middleware and routes.
func NewRouter(cfg config.ServerConfig, scraper BatchScraper, querier MediaQuerier, logger zerolog.Logger) http.Handler {
	logger = logger.With().Str("component", "API").Logger()
	h := NewMediaHandler(scraper, querier)

	r := chi.NewRouter()
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("HTTP request")
	}))
	r.Use(middleware.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if cfg.AuthEnabled() {
			r.Use(BasicAuth(cfg.AuthUser, cfg.AuthPass))
		}
		RegisterRoutes(r, h)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// RegisterRoutes mounts the media endpoints on r.
func RegisterRoutes(r chi.Router, h *MediaHandler) {
	r.Post("/api/media/scrape", h.Scrape)
	// The gallery front-end posts here.
	r.Post("/api/scrape", h.Scrape)
	r.Get("/api/media", h.List)
}
