package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/monstermedia/internal/models"
)

const (
	embedURLFormat     = "https://www.youtube.com/embed/%s"
	thumbnailURLFormat = "https://img.youtube.com/vi/%s/hqdefault.jpg"
)

// extractVideoHost emits the single embeddable video of a watch page, or
// nothing when the page carries no video id.
func extractVideoHost(doc *goquery.Document, sourceURL string) []models.MediaItem {
	videoID := firstMetaContent(doc, `meta[itemprop="videoId"]`, `meta[itemprop="identifier"]`)
	if videoID == "" {
		return []models.MediaItem{}
	}

	title := firstMetaContent(doc, `meta[name="title"]`, `meta[property="og:title"]`)
	if title == "" {
		title = models.UnknownTitle
	}
	thumbnail := fmt.Sprintf(thumbnailURLFormat, videoID)

	item := models.NewVideoItem(sourceURL, fmt.Sprintf(embedURLFormat, videoID))
	item.Title = &title
	item.Thumbnail = &thumbnail
	return []models.MediaItem{item}
}

// firstMetaContent returns the first non-empty content attribute among the
// selectors, tried in order.
func firstMetaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		content := strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
		if content != "" {
			return content
		}
	}
	return ""
}
