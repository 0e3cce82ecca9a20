package config

import "time"

// BrowserConfig controls how pages are rendered before extraction.
type BrowserConfig struct {
	Renderer          string `json:"renderer,omitempty" yaml:"renderer,omitempty" validate:"omitempty,renderer"`
	ChromePath        string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	UserDataDir       string `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	Headless          bool   `json:"headless" yaml:"headless"`
	UserAgent         string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	WindowWidth       int    `json:"window_width,omitempty" yaml:"window_width,omitempty" validate:"omitempty,min=100"`
	WindowHeight      int    `json:"window_height,omitempty" yaml:"window_height,omitempty" validate:"omitempty,min=100"`
	NetworkIdleMs     int    `json:"network_idle_ms,omitempty" yaml:"network_idle_ms,omitempty" validate:"omitempty,min=0"`
	InsecureSkipTLS   bool   `json:"insecure_skip_tls" yaml:"insecure_skip_tls"`
	DisableJavaScript bool   `json:"disable_javascript" yaml:"disable_javascript"`
	// MaxBodyBytes caps a page fetched by the static renderer; 0 means no limit.
	MaxBodyBytes      int    `json:"max_body_bytes,omitempty" yaml:"max_body_bytes,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultBrowserConfig creates default browser configuration
func NewDefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Renderer:        DefaultBrowserRenderer,
		Headless:        true,
		UserAgent:       DefaultBrowserUserAgent,
		WindowWidth:     DefaultBrowserWindowWidth,
		WindowHeight:    DefaultBrowserWindowHeight,
		NetworkIdleMs:   DefaultBrowserNetworkIdleMs,
		InsecureSkipTLS: DefaultBrowserInsecureSkipTLS,
		MaxBodyBytes:    DefaultBrowserMaxBodyBytes,
	}
}

// NetworkIdle is the settle period with no network activity before a page
// counts as loaded.
func (c BrowserConfig) NetworkIdle() time.Duration {
	return time.Duration(c.NetworkIdleMs) * time.Millisecond
}
