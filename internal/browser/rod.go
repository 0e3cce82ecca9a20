package browser

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// RodLauncher starts a headless Chrome through go-rod.
type RodLauncher struct {
	config config.BrowserConfig
	logger zerolog.Logger
}

// NewRodLauncher creates a launcher for headless Chrome sessions
func NewRodLauncher(cfg config.BrowserConfig, logger zerolog.Logger) *RodLauncher {
	return &RodLauncher{
		config: cfg,
		logger: logger.With().Str("component", "RodLauncher").Logger(),
	}
}

// Launch starts one browser process configured for container execution
// (no OS sandbox, no /dev/shm dependency).
func (rl *RodLauncher) Launch(ctx context.Context) (Session, error) {
	l := launcher.New().
		Context(ctx).
		Headless(rl.config.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	if rl.config.ChromePath != "" {
		l = l.Bin(rl.config.ChromePath)
	}
	if rl.config.UserDataDir != "" {
		l = l.UserDataDir(rl.config.UserDataDir)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, common.Classify(common.ErrSessionLaunch, fmt.Errorf("failed to launch browser: %w", err))
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, common.Classify(common.ErrSessionLaunch, fmt.Errorf("failed to connect browser: %w", err))
	}

	if rl.config.InsecureSkipTLS {
		if err := browser.IgnoreCertErrors(true); err != nil {
			rl.logger.Warn().Err(err).Msg("Failed to ignore certificate errors")
		}
	}

	rl.logger.Info().Str("control_url", controlURL).Msg("Browser session started")
	return &rodSession{
		browser:  browser,
		launcher: l,
		config:   rl.config,
		logger:   rl.logger,
	}, nil
}

type rodSession struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	config   config.BrowserConfig
	logger   zerolog.Logger
	closed   atomic.Bool
}

// NewPage opens a tab bound to the session rather than to ctx, so the tab can
// still be closed after ctx has expired. ctx only gates creation.
func (s *rodSession) NewPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.NewNetworkError("about:blank", "failed to create page", err)
	}
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, common.NewNetworkError("about:blank", "failed to create page", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  s.config.WindowWidth,
		Height: s.config.WindowHeight,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to set viewport")
	}

	if s.config.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: s.config.UserAgent}); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to set user agent")
		}
	}

	if s.config.DisableJavaScript {
		if err := (proto.EmulationSetScriptExecutionDisabled{Value: true}).Call(page); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to disable JavaScript")
		}
	}

	return &rodPage{page: page, config: s.config}, nil
}

func (s *rodSession) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	s.logger.Info().Msg("Browser session closed")
	return err
}

type rodPage struct {
	page   *rod.Page
	config config.BrowserConfig
}

// Goto navigates and waits until no request has been in flight for the
// configured settle period, then for the load event.
func (p *rodPage) Goto(ctx context.Context, url string) error {
	page := p.page.Context(ctx)

	var status atomic.Int64
	go page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type == proto.NetworkResourceTypeDocument && e.FrameID == page.FrameID {
			status.CompareAndSwap(0, int64(e.Response.Status))
		}
		return false
	})()

	waitIdle := page.WaitRequestIdle(p.config.NetworkIdle(), nil, nil, nil)
	if err := page.Navigate(url); err != nil {
		return navigationError(ctx, url, err)
	}
	waitIdle()

	if err := page.WaitLoad(); err != nil {
		return navigationError(ctx, url, err)
	}
	if err := ctx.Err(); err != nil {
		return navigationError(ctx, url, err)
	}

	if code := status.Load(); code >= 400 {
		return common.NewNetworkError(url, fmt.Sprintf("HTTP status %d", code), nil)
	}
	return nil
}

func (p *rodPage) HTML() (string, error) {
	return p.page.HTML()
}

// Close destroys the tab even when the navigation context is already done.
func (p *rodPage) Close() error {
	return p.page.Context(context.Background()).Close()
}
