package logger

import (
	"io"
	stdlog "log"
	"os"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	settings settings
	console  io.Writer
}

// NewLoggerBuilder creates a builder using the default log configuration
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		settings: resolveSettings(config.NewDefaultLogConfig()),
		console:  os.Stderr,
	}
}

// WithConfig applies the application log configuration
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	lb.settings = resolveSettings(cfg)
	return lb
}

// WithConsoleOutput redirects console output, mainly for tests. nil disables it.
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.console = w
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	var writers []io.Writer
	if lb.console != nil {
		writers = append(writers, newFormatWriter(lb.settings.format, lb.console, false))
	}
	if lb.settings.filePath != "" {
		writers = append(writers, newFileWriter(lb.settings))
	}
	if len(writers) == 0 {
		return zerolog.Nop(), common.NewError("no output writers configured")
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lb.settings.level).
		With().
		Timestamp().
		Logger()

	// Route the standard library logger (net/http, rod) through zerolog.
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}
