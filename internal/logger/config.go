package logger

import (
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/rs/zerolog"
)

// LogFormat is how records are rendered on a writer.
type LogFormat int

const (
	FormatConsole LogFormat = iota
	FormatJSON
	// FormatText is the console layout without colors.
	FormatText
)

// settings is a LogConfig resolved into the values the writers need.
// An empty filePath disables file output.
type settings struct {
	level      zerolog.Level
	format     LogFormat
	filePath   string
	maxSizeMB  int
	maxBackups int
}

func resolveSettings(cfg config.LogConfig) settings {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	s := settings{
		level:      level,
		format:     ParseFormat(cfg.LogFormat),
		filePath:   cfg.LogFile,
		maxSizeMB:  cfg.MaxLogSizeMB,
		maxBackups: cfg.MaxLogBackups,
	}
	if s.maxSizeMB <= 0 {
		s.maxSizeMB = config.DefaultMaxLogSizeMB
	}
	if s.maxBackups < 0 {
		s.maxBackups = 0
	}
	return s
}
