package models

import (
	"fmt"
	"time"
)

// MediaType enumerates the kinds of media references the extractor emits.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// UnknownTitle is stored when a video-hosting page carries no title tag.
const UnknownTitle = "Unknown"

// IsValid reports whether t is one of the known media types.
func (t MediaType) IsValid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// MediaItem is one extracted image or video reference.
// ID and CreatedAt are assigned by the store on persistence.
type MediaItem struct {
	ID        string    `json:"id,omitempty"`
	SourceURL string    `json:"sourceUrl"`
	Type      MediaType `json:"type"`
	AssetRef  string    `json:"assetRef"`
	Title     *string   `json:"title,omitempty"`
	Thumbnail *string   `json:"thumbnail,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Validate checks the invariants a MediaItem must satisfy before it is persisted.
func (m MediaItem) Validate() error {
	if m.SourceURL == "" {
		return fmt.Errorf("media item has empty source URL")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("media item from %s has invalid type %q", m.SourceURL, m.Type)
	}
	if m.AssetRef == "" {
		return fmt.Errorf("media item from %s has empty asset reference", m.SourceURL)
	}
	return nil
}

// NewImageItem builds an image MediaItem.
func NewImageItem(sourceURL, src string) MediaItem {
	return MediaItem{SourceURL: sourceURL, Type: MediaTypeImage, AssetRef: src}
}

// NewVideoItem builds a video MediaItem.
func NewVideoItem(sourceURL, src string) MediaItem {
	return MediaItem{SourceURL: sourceURL, Type: MediaTypeVideo, AssetRef: src}
}
