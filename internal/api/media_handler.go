package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/rs/zerolog/hlog"
)

const maxScrapeBodyBytes = 1 << 20

const unexpectedErrorMessage = "An unexpected error occurred!"

// MediaHandler serves the scrape and list endpoints.
type MediaHandler struct {
	scraper BatchScraper
	querier MediaQuerier
}

// NewMediaHandler creates the media endpoints. Request-scoped loggers come
// from hlog.
func NewMediaHandler(scraper BatchScraper, querier MediaQuerier) *MediaHandler {
	return &MediaHandler{
		scraper: scraper,
		querier: querier,
	}
}

type scrapeRequest struct {
	URLs []string `json:"urls"`
}

type scrapeResponse struct {
	Success    bool                  `json:"success"`
	Error      string                `json:"error,omitempty"`
	Data       []models.BatchOutcome `json:"data"`
	TotalItems int                   `json:"totalItems"`
	FailedURLs int                   `json:"failedUrls"`
	Persisted  bool                  `json:"persisted"`

	// Set only when the caller asked for a page of the extraction.
	Items       []models.MediaItem `json:"items,omitzero"`
	CurrentPage int                `json:"currentPage,omitempty"`
	TotalPages  int                `json:"totalPages,omitempty"`
}

// POST /api/media/scrape?page=&pageSize=
func (h *MediaHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	logger := hlog.FromRequest(r)

	var req scrapeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxScrapeBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be JSON of the form {\"urls\": [...]}")
		return
	}

	// A batch takes up to one page timeout per URL, which can outlast the
	// server write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		logger.Debug().Err(err).Msg("Could not lift write deadline for scrape batch")
	}

	result, err := h.scraper.ScrapeBatch(r.Context(), req.URLs)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, common.ErrSessionLaunch):
		logger.Error().Err(err).Msg("Scrape batch could not start a browser session")
		writeError(w, http.StatusBadGateway, "Browser session could not be started")
		return
	case errors.Is(err, common.ErrPersistence) && result != nil:
		logger.Error().Err(err).Msg("Scrape batch extracted media but failed to persist it")
		resp := newScrapeResponse(result, r)
		resp.Error = err.Error()
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Msg("Scrape batch cancelled")
		writeError(w, http.StatusServiceUnavailable, "Scrape cancelled before completion")
		return
	default:
		logger.Error().Err(err).Msg("Scrape batch failed")
		writeError(w, http.StatusInternalServerError, unexpectedErrorMessage)
		return
	}

	resp := newScrapeResponse(result, r)
	resp.Success = true
	writeJSON(w, http.StatusOK, resp)
}

func newScrapeResponse(result *models.BatchResult, r *http.Request) scrapeResponse {
	resp := scrapeResponse{
		Data:       result.Outcomes,
		TotalItems: result.TotalExtracted,
		FailedURLs: result.FailedURLs,
		Persisted:  result.Persisted,
	}

	q := r.URL.Query()
	if q.Get("pageSize") == "" {
		return resp
	}
	pageSize, err := strconv.Atoi(q.Get("pageSize"))
	if err != nil || pageSize < 1 {
		return resp
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	items, total := result.Slice(page, pageSize)
	resp.Items = items
	resp.CurrentPage = page
	resp.TotalPages = models.TotalPages(total, pageSize)
	return resp
}

// GET /api/media?page=&pageSize=&type=&search=
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := h.querier.ParseParams(q.Get("page"), q.Get("pageSize"), q.Get("type"), q.Get("search"))

	result, err := h.querier.Query(r.Context(), params)
	if err != nil {
		if errors.Is(err, common.ErrStorageUnavailable) {
			hlog.FromRequest(r).Error().Err(err).Msg("Media store unavailable")
			writeError(w, http.StatusServiceUnavailable, "Media storage is unavailable")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("Media query failed")
		writeError(w, http.StatusInternalServerError, unexpectedErrorMessage)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
