package config

import "time"

// ScrapeConfig controls batch processing.
type ScrapeConfig struct {
	// Workers is the number of URLs processed at once; 1 keeps processing sequential.
	Workers         int  `json:"workers,omitempty" yaml:"workers,omitempty" validate:"omitempty,min=1"`
	PageTimeoutSecs int  `json:"page_timeout_secs,omitempty" yaml:"page_timeout_secs,omitempty" validate:"omitempty,min=1"`
	ResolveRelative bool `json:"resolve_relative" yaml:"resolve_relative"`
}

// NewDefaultScrapeConfig creates default scrape configuration
func NewDefaultScrapeConfig() ScrapeConfig {
	return ScrapeConfig{
		Workers:         DefaultScrapeWorkers,
		PageTimeoutSecs: DefaultScrapePageTimeoutSecs,
		ResolveRelative: false,
	}
}

// PageTimeout returns the per-URL navigation budget.
func (c ScrapeConfig) PageTimeout() time.Duration {
	secs := c.PageTimeoutSecs
	if secs <= 0 {
		secs = DefaultScrapePageTimeoutSecs
	}
	return time.Duration(secs) * time.Second
}

// WorkerCount returns the configured worker count, at least 1.
func (c ScrapeConfig) WorkerCount() int {
	if c.Workers < 1 {
		return DefaultScrapeWorkers
	}
	return c.Workers
}
