package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPage struct {
	html    string
	gotoErr error
	htmlErr error
	visited string
}

func (p *stubPage) Goto(ctx context.Context, url string) error {
	p.visited = url
	return p.gotoErr
}

func (p *stubPage) HTML() (string, error) {
	return p.html, p.htmlErr
}

func (p *stubPage) Close() error { return nil }

func newTestExtractor(resolveRelative bool) *Extractor {
	cfg := config.NewDefaultScrapeConfig()
	cfg.ResolveRelative = resolveRelative
	return NewExtractor(cfg, zerolog.Nop())
}

const galleryHTML = `<html><body>
<img src="/a.png">
<video src="v.mp4"><source src="v.webm"></video>
<img src="">
<img alt="no src">
<picture><source src="ignored.avif"></picture>
<img src="/a.png">
</body></html>`

func TestExtract_Generic(t *testing.T) {
	page := &stubPage{html: galleryHTML}
	items, err := newTestExtractor(false).Extract(context.Background(), page, "https://example.com/gallery")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/gallery", page.visited)

	require.Len(t, items, 4)
	assert.Equal(t, models.NewImageItem("https://example.com/gallery", "/a.png"), items[0])
	assert.Equal(t, models.NewVideoItem("https://example.com/gallery", "v.mp4"), items[1])
	assert.Equal(t, models.NewVideoItem("https://example.com/gallery", "v.webm"), items[2])
	assert.Equal(t, models.NewImageItem("https://example.com/gallery", "/a.png"), items[3])
	for _, item := range items {
		assert.NoError(t, item.Validate())
	}
}

func TestExtract_GenericResolveRelative(t *testing.T) {
	page := &stubPage{html: `<img src="/a.png"><img src="data:image/png;base64,AAA"><video src="clips/v.mp4"></video>`}
	items, err := newTestExtractor(true).Extract(context.Background(), page, "https://example.com/pages/gallery")
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "https://example.com/a.png", items[0].AssetRef)
	assert.Equal(t, "data:image/png;base64,AAA", items[1].AssetRef)
	assert.Equal(t, "https://example.com/pages/clips/v.mp4", items[2].AssetRef)
}

func TestExtract_NoMediaIsEmptyNotError(t *testing.T) {
	items, err := newTestExtractor(false).Extract(context.Background(), &stubPage{html: "<p>text only</p>"}, "https://example.com")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestExtract_VideoHost(t *testing.T) {
	html := `<html><head>
<meta name="title" content="Never Gonna Give You Up">
<meta itemprop="videoId" content="dQw4w9WgXcQ">
</head><body><img src="/ignored.png"></body></html>`

	items, err := newTestExtractor(false).Extract(context.Background(), &stubPage{html: html}, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, models.MediaTypeVideo, item.Type)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", item.SourceURL)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", item.AssetRef)
	require.NotNil(t, item.Title)
	assert.Equal(t, "Never Gonna Give You Up", *item.Title)
	require.NotNil(t, item.Thumbnail)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", *item.Thumbnail)
}

func TestExtract_VideoHostFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantItems int
		wantTitle string
	}{
		{
			name:      "missing title",
			html:      `<meta itemprop="videoId" content="abc">`,
			wantItems: 1,
			wantTitle: models.UnknownTitle,
		},
		{
			name:      "og title and identifier",
			html:      `<meta property="og:title" content="Clip"><meta itemprop="identifier" content="abc">`,
			wantItems: 1,
			wantTitle: "Clip",
		},
		{
			name:      "missing id",
			html:      `<meta name="title" content="Clip"><video src="v.mp4"></video>`,
			wantItems: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := newTestExtractor(false).ExtractFromHTML(tt.html, "https://youtube.com/watch?v=abc")
			require.NoError(t, err)
			require.Len(t, items, tt.wantItems)
			assert.NotNil(t, items)
			if tt.wantItems == 1 {
				assert.Equal(t, tt.wantTitle, *items[0].Title)
				assert.Equal(t, "https://www.youtube.com/embed/abc", items[0].AssetRef)
			}
		})
	}
}

func TestExtract_Failures(t *testing.T) {
	ex := newTestExtractor(false)

	_, err := ex.Extract(context.Background(), &stubPage{gotoErr: common.NewNetworkError("https://x", "navigation timed out", context.DeadlineExceeded)}, "https://x")
	assert.ErrorIs(t, err, common.ErrNavigationFailure)
	assert.NotErrorIs(t, err, common.ErrExtractionFailure)

	_, err = ex.Extract(context.Background(), &stubPage{gotoErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}, "https://x")
	assert.ErrorIs(t, err, common.ErrNavigationFailure)

	_, err = ex.Extract(context.Background(), &stubPage{htmlErr: errors.New("target closed")}, "https://x")
	assert.ErrorIs(t, err, common.ErrExtractionFailure)
	assert.Contains(t, err.Error(), "target closed")

	oversized := common.Classify(common.ErrExtractionFailure, errors.New("page https://x exceeds the 1024 byte body limit"))
	_, err = ex.Extract(context.Background(), &stubPage{gotoErr: oversized}, "https://x")
	assert.ErrorIs(t, err, common.ErrExtractionFailure)
	assert.NotErrorIs(t, err, common.ErrNavigationFailure)
}
