package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newFormatWriter wraps output according to the configured format.
// File output never carries color codes.
func newFormatWriter(format LogFormat, output io.Writer, noColor bool) io.Writer {
	switch format {
	case FormatJSON:
		return output
	case FormatText:
		return zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339, NoColor: noColor}
	}
}

// newFileWriter creates a rotating file writer; lumberjack creates missing directories.
func newFileWriter(s settings) io.Writer {
	rotating := &lumberjack.Logger{
		Filename:   s.filePath,
		MaxSize:    s.maxSizeMB,
		MaxBackups: s.maxBackups,
		LocalTime:  true,
	}
	return newFormatWriter(s.format, rotating, true)
}
