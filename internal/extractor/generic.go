package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/aleister1102/monstermedia/internal/urlhandler"
)

// mediaSelector matches every element whose src is a media reference, in one
// document-order pass.
const mediaSelector = "img[src], video[src], video source[src]"

// extractGeneric emits one item per non-empty src. Repeated values produce
// repeated items.
func (e *Extractor) extractGeneric(doc *goquery.Document, sourceURL string) []models.MediaItem {
	items := make([]models.MediaItem, 0, 16)

	doc.Find(mediaSelector).Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			return
		}

		assetRef, ok := e.resolve(src, sourceURL)
		if !ok {
			return
		}

		switch goquery.NodeName(s) {
		case "img":
			items = append(items, models.NewImageItem(sourceURL, assetRef))
		case "video", "source":
			items = append(items, models.NewVideoItem(sourceURL, assetRef))
		}
	})

	return items
}

// resolve applies the relative-URL policy. With resolution off, src is kept
// exactly as the page wrote it.
func (e *Extractor) resolve(src, sourceURL string) (string, bool) {
	if !e.resolveRelative {
		return src, true
	}

	base, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil {
		return src, true
	}
	resolved, err := urlhandler.ResolveURL(src, base)
	if err != nil {
		e.logger.Debug().Err(err).Str("src", src).Msg("Skipping unresolvable media reference")
		return "", false
	}
	return resolved, true
}
