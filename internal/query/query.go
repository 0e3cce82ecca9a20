// Package query serves paginated, filtered reads of persisted media.
package query

import (
	"context"
	"strconv"
	"strings"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/aleister1102/monstermedia/internal/datastore"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/rs/zerolog"
)

// Service answers media queries against a MediaStore.
type Service struct {
	store           datastore.MediaStore
	defaultPageSize int
	logger          zerolog.Logger
}

// NewService creates a new query service
func NewService(store datastore.MediaStore, cfg config.QueryConfig, logger zerolog.Logger) *Service {
	pageSize := cfg.DefaultPageSize
	if pageSize < 1 {
		pageSize = config.DefaultQueryPageSize
	}
	return &Service{
		store:           store,
		defaultPageSize: pageSize,
		logger:          logger.With().Str("component", "QueryService").Logger(),
	}
}

// ParseParams builds QueryParams from raw request values. A missing,
// non-numeric or non-positive page becomes 1 and the same for pageSize
// becomes the configured default. There is no upper bound on pageSize.
func (s *Service) ParseParams(page, pageSize, mediaType, search string) models.QueryParams {
	return models.QueryParams{
		Page:     positiveOr(page, 1),
		PageSize: positiveOr(pageSize, s.defaultPageSize),
		Type:     mediaType,
		Search:   search,
	}
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Query returns one page of matching media. Store failures are reported as
// ErrStorageUnavailable, never as an empty page.
func (s *Service) Query(ctx context.Context, params models.QueryParams) (*models.QueryResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = s.defaultPageSize
	}

	filter := datastore.MediaFilter{Type: params.Type, Search: params.Search}
	items, total, err := s.store.FindPage(ctx, filter, params.PageSize, params.Offset())
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", params.Page).
			Int("page_size", params.PageSize).
			Msg("Media query failed")
		return nil, common.Classify(common.ErrStorageUnavailable, err)
	}
	if items == nil {
		items = []models.MediaItem{}
	}

	return &models.QueryResult{
		Items:       items,
		TotalItems:  total,
		TotalPages:  models.TotalPages(total, params.PageSize),
		CurrentPage: params.Page,
	}, nil
}
