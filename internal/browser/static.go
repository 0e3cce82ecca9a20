package browser

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
)

// StaticLauncher loads raw HTML with colly and never executes scripts.
// Media inserted by JavaScript is therefore invisible to it.
type StaticLauncher struct {
	config config.BrowserConfig
	logger zerolog.Logger
}

// NewStaticLauncher creates a launcher for plain HTTP page loads
func NewStaticLauncher(cfg config.BrowserConfig, logger zerolog.Logger) *StaticLauncher {
	return &StaticLauncher{
		config: cfg,
		logger: logger.With().Str("component", "StaticLauncher").Logger(),
	}
}

// Launch builds the shared HTTP transport; there is no process to start.
func (sl *StaticLauncher) Launch(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Classify(common.ErrSessionLaunch, err)
	}

	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: sl.config.InsecureSkipTLS},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}
	return &staticSession{config: sl.config, transport: transport}, nil
}

type staticSession struct {
	config    config.BrowserConfig
	transport *http.Transport
}

func (s *staticSession) NewPage(ctx context.Context) (Page, error) {
	return &staticPage{session: s}, nil
}

func (s *staticSession) Close() error {
	s.transport.CloseIdleConnections()
	return nil
}

type staticPage struct {
	session *staticSession
	body    []byte
}

func (p *staticPage) Goto(ctx context.Context, url string) error {
	limit := p.session.config.MaxBodyBytes
	bodySize := 0
	if limit > 0 {
		// One byte over the limit tells a truncated body from one that fits exactly.
		bodySize = limit + 1
	}
	collector := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
		colly.MaxBodySize(bodySize),
	)
	collector.WithTransport(p.session.transport)
	if p.session.config.UserAgent != "" {
		collector.UserAgent = p.session.config.UserAgent
	}
	if deadline, ok := ctx.Deadline(); ok {
		collector.SetRequestTimeout(time.Until(deadline))
	}

	var status int
	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		p.body = r.Body
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := collector.Visit(url); err != nil {
		if status >= 400 {
			return common.NewNetworkError(url, http.StatusText(status), err)
		}
		return navigationError(ctx, url, err)
	}
	if limit > 0 && len(p.body) > limit {
		p.body = nil
		return common.Classify(common.ErrExtractionFailure,
			fmt.Errorf("page %s exceeds the %d byte body limit", url, limit))
	}
	return nil
}

func (p *staticPage) HTML() (string, error) {
	if p.body == nil {
		return "", errors.New("page has not been loaded")
	}
	return string(p.body), nil
}

func (p *staticPage) Close() error {
	p.body = nil
	return nil
}
