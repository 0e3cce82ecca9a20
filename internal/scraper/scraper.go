// Package scraper runs a batch of page URLs through one browser session and
// persists everything extracted in a single write.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aleister1102/monstermedia/internal/browser"
	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/aleister1102/monstermedia/internal/datastore"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/aleister1102/monstermedia/internal/urlhandler"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// MediaExtractor reads media from a page after navigating it to url.
type MediaExtractor interface {
	Extract(ctx context.Context, page browser.Page, url string) ([]models.MediaItem, error)
}

// Archiver receives each successfully persisted batch.
type Archiver interface {
	Archive(ctx context.Context, items []models.MediaItem) (string, error)
}

// Service is the scrape orchestrator.
type Service struct {
	launcher  browser.Launcher
	extractor MediaExtractor
	store     datastore.MediaStore
	archiver  Archiver
	config    config.ScrapeConfig
	logger    zerolog.Logger
}

// NewService creates a new scrape orchestrator
func NewService(
	launcher browser.Launcher,
	extractor MediaExtractor,
	store datastore.MediaStore,
	cfg config.ScrapeConfig,
	logger zerolog.Logger,
) *Service {
	return &Service{
		launcher:  launcher,
		extractor: extractor,
		store:     store,
		config:    cfg,
		logger:    logger.With().Str("component", "ScrapeService").Logger(),
	}
}

// WithArchiver enables archiving of persisted batches.
func (s *Service) WithArchiver(archiver Archiver) *Service {
	s.archiver = archiver
	return s
}

// ValidateBatch rejects an empty list or any blank entry.
func ValidateBatch(urls []string) error {
	if len(urls) == 0 {
		return common.NewValidationError("urls", urls, "must be a non-empty list of URLs")
	}
	for i, u := range urls {
		if strings.TrimSpace(u) == "" {
			return common.NewValidationError(fmt.Sprintf("urls[%d]", i), u, "must not be blank")
		}
	}
	return nil
}

// ScrapeBatch extracts media from every URL in order and persists the union.
//
// Per-URL failures are recorded on that URL's outcome. The batch itself fails
// only on invalid input, session launch failure, cancellation, or persistence
// failure. On persistence failure the extracted result is still returned.
func (s *Service) ScrapeBatch(ctx context.Context, urls []string) (*models.BatchResult, error) {
	if err := ValidateBatch(urls); err != nil {
		return nil, err
	}

	start := time.Now()
	outcomes, err := s.runSession(ctx, urls)
	if err != nil && outcomes == nil {
		return nil, err
	}
	result := models.NewBatchResult(outcomes)
	if err != nil {
		s.logger.Warn().Err(err).Int("urls", len(urls)).Msg("Batch interrupted, nothing persisted")
		return result, err
	}

	items := result.Items()
	if err := s.store.BulkInsert(ctx, items); err != nil {
		s.logger.Error().Err(err).Int("items", len(items)).Msg("Failed to persist batch")
		return result, common.Classify(common.ErrPersistence, err)
	}
	result.AdoptStored(items)
	result.Persisted = true

	s.archive(ctx, items)

	s.logger.Info().
		Int("urls", len(urls)).
		Int("failed_urls", result.FailedURLs).
		Int("items", result.TotalExtracted).
		Dur("duration", time.Since(start)).
		Msg("Batch completed")
	return result, nil
}

// runSession holds one browser session open for the whole batch and releases
// it on every exit path.
func (s *Service) runSession(ctx context.Context, urls []string) ([]models.BatchOutcome, error) {
	session, err := s.launcher.Launch(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to launch browser session")
		return nil, common.Classify(common.ErrSessionLaunch, err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close browser session")
		}
	}()

	outcomes := make([]models.BatchOutcome, len(urls))
	var g errgroup.Group
	g.SetLimit(s.config.WorkerCount())

	for i, rawURL := range urls {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcomes[i] = s.scrapeOne(ctx, session, rawURL)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := range outcomes {
			if outcomes[i].URL == "" {
				outcomes[i] = models.BatchOutcome{URL: urls[i], Error: "batch cancelled before this URL was processed"}
			}
		}
		return outcomes, common.WrapError(err, "batch cancelled")
	}
	return outcomes, nil
}

// scrapeOne never fails the batch: every error, including a panic inside the
// extractor, becomes the outcome's error text.
func (s *Service) scrapeOne(ctx context.Context, session browser.Session, rawURL string) (outcome models.BatchOutcome) {
	start := time.Now()
	logger := s.logger.With().Str("url", rawURL).Logger()
	outcome.URL = rawURL

	fail := func(err error) models.BatchOutcome {
		logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("Failed to scrape URL")
		return models.BatchOutcome{URL: rawURL, Error: err.Error()}
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = fail(common.Classify(common.ErrExtractionFailure, fmt.Errorf("panic: %v", r)))
		}
	}()

	if err := urlhandler.ValidateURLFormat(rawURL); err != nil {
		return fail(common.Classify(common.ErrNavigationFailure, err))
	}

	pageCtx, cancel := context.WithTimeout(ctx, s.config.PageTimeout())
	defer cancel()

	page, err := session.NewPage(pageCtx)
	if err != nil {
		return fail(common.Classify(common.ErrNavigationFailure, err))
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.Debug().Err(err).Msg("Failed to close page")
		}
	}()

	items, err := s.extractor.Extract(pageCtx, page, rawURL)
	if err != nil {
		if !errors.Is(err, common.ErrNavigationFailure) && !errors.Is(err, common.ErrExtractionFailure) {
			err = common.Classify(common.ErrExtractionFailure, err)
		}
		return fail(err)
	}
	if items == nil {
		items = []models.MediaItem{}
	}

	outcome.Extracted = items
	logger.Info().Int("items", len(items)).Dur("duration", time.Since(start)).Msg("Scraped URL")
	return outcome
}

func (s *Service) archive(ctx context.Context, items []models.MediaItem) {
	if s.archiver == nil || len(items) == 0 {
		return
	}
	if _, err := s.archiver.Archive(ctx, items); err != nil {
		s.logger.Warn().Err(err).Int("items", len(items)).Msg("Failed to archive persisted batch")
	}
}
