package config

const (
	// Mode values
	ModeServe   = "serve"
	ModeOnetime = "onetime"

	// Renderer values
	RendererHeadless = "headless"
	RendererStatic   = "static"

	// Browser Defaults
	DefaultBrowserRenderer        = RendererHeadless
	DefaultBrowserUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultBrowserWindowWidth     = 1920
	DefaultBrowserWindowHeight    = 1080
	DefaultBrowserNetworkIdleMs   = 500
	DefaultBrowserInsecureSkipTLS = true
	DefaultBrowserMaxBodyBytes    = 0

	// Scrape Defaults
	DefaultScrapeWorkers         = 1
	DefaultScrapePageTimeoutSecs = 30

	// Storage Defaults
	DefaultStorageSQLiteDBPath       = "database/media.db"
	DefaultStorageArchiveCompression = "zstd"

	// Query Defaults
	DefaultQueryPageSize = 10

	// Server Defaults
	DefaultServerListenAddr          = ":4000"
	DefaultServerReadTimeoutSecs     = 15
	DefaultServerWriteTimeoutSecs    = 300
	DefaultServerShutdownTimeoutSecs = 10

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)
