// Package browser owns the rendering engine used to load pages before media
// extraction. One Session lives for a whole batch; each URL gets its own Page.
package browser

import (
	"context"

	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/rs/zerolog"
)

// Launcher starts rendering sessions.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// Session is one running rendering engine. It is safe to open pages from
// several goroutines; each Page must be used by a single goroutine.
type Session interface {
	NewPage(ctx context.Context) (Page, error)
	Close() error
}

// Page is one isolated document context.
type Page interface {
	// Goto navigates to url and blocks until the page is network-quiescent
	// or ctx expires.
	Goto(ctx context.Context, url string) error
	// HTML returns the rendered document.
	HTML() (string, error)
	Close() error
}

// NewLauncher returns the launcher selected by cfg.Renderer.
func NewLauncher(cfg config.BrowserConfig, logger zerolog.Logger) Launcher {
	if cfg.Renderer == config.RendererStatic {
		return NewStaticLauncher(cfg, logger)
	}
	return NewRodLauncher(cfg, logger)
}
