// Package datastore persists extracted media records.
package datastore

import (
	"context"

	"github.com/aleister1102/monstermedia/internal/models"
)

// MediaFilter narrows a page query. Empty fields apply no restriction.
type MediaFilter struct {
	// Type must equal the stored media type exactly.
	Type string
	// Search must occur in the asset reference (case-sensitive).
	Search string
}

// MediaStore is the record store used by the scrape and query paths.
type MediaStore interface {
	// BulkInsert writes all items atomically and fills in their ID and
	// CreatedAt on success.
	BulkInsert(ctx context.Context, items []models.MediaItem) error
	// FindPage returns up to limit matching items after skipping offset, in
	// insertion order, plus the total number of matches. A limit below 1
	// returns every match.
	FindPage(ctx context.Context, filter MediaFilter, limit, offset int) ([]models.MediaItem, int, error)
	Close() error
}
