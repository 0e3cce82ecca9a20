package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/gallery", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><img src="/cat.png"><video src="/clip.mp4"></video></body></html>`))
	})
	mux.HandleFunc("/scripted", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><script>
var img = document.createElement("img");
img.src = "/late.png";
document.body.appendChild(img);
</script></body></html>`))
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func staticConfig() config.BrowserConfig {
	cfg := config.NewDefaultBrowserConfig()
	cfg.Renderer = config.RendererStatic
	return cfg
}

func TestNewLauncher_SelectsRenderer(t *testing.T) {
	assert.IsType(t, &StaticLauncher{}, NewLauncher(staticConfig(), zerolog.Nop()))
	assert.IsType(t, &RodLauncher{}, NewLauncher(config.NewDefaultBrowserConfig(), zerolog.Nop()))
}

func TestStaticPage_LoadsHTML(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	session, err := NewStaticLauncher(staticConfig(), zerolog.Nop()).Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	page, err := session.NewPage(ctx)
	require.NoError(t, err)
	defer page.Close()

	require.NoError(t, page.Goto(ctx, srv.URL+"/gallery"))
	html, err := page.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `<img src="/cat.png">`)
}

func TestStaticPage_DoesNotRunScripts(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	session, err := NewStaticLauncher(staticConfig(), zerolog.Nop()).Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	page, err := session.NewPage(ctx)
	require.NoError(t, err)

	require.NoError(t, page.Goto(ctx, srv.URL+"/scripted"))
	html, err := page.HTML()
	require.NoError(t, err)
	assert.NotContains(t, html, `<img src="/late.png">`)
}

func TestStaticPage_NotFound(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	session, err := NewStaticLauncher(staticConfig(), zerolog.Nop()).Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	page, err := session.NewPage(ctx)
	require.NoError(t, err)

	err = page.Goto(ctx, srv.URL+"/missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNavigationFailure)
	assert.Contains(t, err.Error(), "Not Found")

	_, err = page.HTML()
	assert.Error(t, err)
}

func TestStaticPage_Timeout(t *testing.T) {
	srv := newTestServer(t)

	session, err := NewStaticLauncher(staticConfig(), zerolog.Nop()).Launch(context.Background())
	require.NoError(t, err)
	defer session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	page, err := session.NewPage(ctx)
	require.NoError(t, err)

	err = page.Goto(ctx, srv.URL+"/slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNavigationFailure)
}

func TestStaticLauncher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticLauncher(staticConfig(), zerolog.Nop()).Launch(ctx)
	assert.ErrorIs(t, err, common.ErrSessionLaunch)
}

func newLargePageServer(t *testing.T, padding int) *httptest.Server {
	t.Helper()
	body := `<html><body><img src="first.png">` + strings.Repeat(" ", padding) + `<img src="last.png"></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStaticPage_UnlimitedBodyKeepsWholePage(t *testing.T) {
	// Larger than colly's own 10 MiB default.
	srv := newLargePageServer(t, 11*1024*1024)
	ctx := context.Background()

	session, err := NewStaticLauncher(staticConfig(), zerolog.Nop()).Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	page, err := session.NewPage(ctx)
	require.NoError(t, err)

	require.NoError(t, page.Goto(ctx, srv.URL))
	html, err := page.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, `<img src="last.png">`)
}

func TestStaticPage_BodyLimit(t *testing.T) {
	srv := newLargePageServer(t, 4096)
	ctx := context.Background()

	cfg := staticConfig()
	cfg.MaxBodyBytes = 1024
	session, err := NewStaticLauncher(cfg, zerolog.Nop()).Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	page, err := session.NewPage(ctx)
	require.NoError(t, err)

	err = page.Goto(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtractionFailure)
	assert.NotErrorIs(t, err, common.ErrNavigationFailure)
	assert.Contains(t, err.Error(), "1024 byte body limit")

	_, err = page.HTML()
	assert.Error(t, err)
}

func TestStaticPage_BodyExactlyAtLimit(t *testing.T) {
	srv := newLargePageServer(t, 0)
	size := len(`<html><body><img src="first.png"><img src="last.png"></body></html>`)
	ctx := context.Background()

	cfg := staticConfig()
	cfg.MaxBodyBytes = size
	session, err := NewStaticLauncher(cfg, zerolog.Nop()).Launch(ctx)
	require.NoError(t, err)
	defer session.Close()

	page, err := session.NewPage(ctx)
	require.NoError(t, err)

	require.NoError(t, page.Goto(ctx, srv.URL))
	html, err := page.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "last.png")
}
