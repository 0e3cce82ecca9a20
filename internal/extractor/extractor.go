// Package extractor turns a rendered page into MediaItem records.
package extractor

import (
	"context"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/monstermedia/internal/browser"
	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/rs/zerolog"
)

// Extractor loads pages and scans them for media references.
type Extractor struct {
	logger          zerolog.Logger
	resolveRelative bool
}

// NewExtractor creates a new media extractor
func NewExtractor(cfg config.ScrapeConfig, logger zerolog.Logger) *Extractor {
	return &Extractor{
		logger:          logger.With().Str("component", "Extractor").Logger(),
		resolveRelative: cfg.ResolveRelative,
	}
}

// Extract navigates page to sourceURL and returns its media in document
// order. A page without media yields an empty, non-nil slice.
func (e *Extractor) Extract(ctx context.Context, page browser.Page, sourceURL string) ([]models.MediaItem, error) {
	if err := page.Goto(ctx, sourceURL); err != nil {
		if errors.Is(err, common.ErrExtractionFailure) {
			return nil, err
		}
		return nil, common.Classify(common.ErrNavigationFailure, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, common.Classify(common.ErrExtractionFailure, common.WrapError(err, "failed to read rendered page"))
	}

	return e.ExtractFromHTML(html, sourceURL)
}

// ExtractFromHTML applies the strategy chosen for sourceURL to an already
// rendered document.
func (e *Extractor) ExtractFromHTML(html string, sourceURL string) ([]models.MediaItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, common.Classify(common.ErrExtractionFailure, common.WrapError(err, "failed to parse HTML content"))
	}

	strategy := Classify(sourceURL)
	var items []models.MediaItem
	switch strategy {
	case StrategyVideoHost:
		items = extractVideoHost(doc, sourceURL)
	default:
		items = e.extractGeneric(doc, sourceURL)
	}

	e.logger.Debug().
		Str("url", sourceURL).
		Stringer("strategy", strategy).
		Int("items", len(items)).
		Msg("Extracted media from page")
	return items, nil
}
