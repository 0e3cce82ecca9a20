package urlhandler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Custom errors for file operations
var (
	ErrFileNotFound   = errors.New("input file not found")
	ErrFilePermission = errors.New("permission denied reading input file")
	ErrFileEmpty      = errors.New("input file is empty or contains no valid URLs")
	ErrReadingFile    = errors.New("error reading input file")
)

// ReadURLsFromFile reads a file line by line, normalizes each line as a URL,
// and returns the valid ones in file order. Blank lines and lines starting
// with '#' are skipped.
func ReadURLsFromFile(filePath string, logger zerolog.Logger) ([]string, error) {
	fileLogger := logger.With().Str("filePath", filePath).Logger()

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		fileLogger.Error().Err(err).Msg("Input file not found")
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filePath)
	}
	if err != nil {
		return nil, fmt.Errorf("error checking file %s: %w", filePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input path is a directory, not a file: %s", filePath)
	}
	if info.Size() == 0 {
		fileLogger.Warn().Msg("Input file is empty (0 bytes)")
		return nil, fmt.Errorf("%w: %s (size is 0)", ErrFileEmpty, filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrFilePermission, filePath)
		}
		return nil, fmt.Errorf("%w: %s (cause: %v)", ErrReadingFile, filePath, err)
	}
	defer file.Close()

	urls, err := ReadURLs(file, fileLogger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return urls, nil
}

// ReadURLs reads newline-separated URLs from r.
func ReadURLs(r io.Reader, logger zerolog.Logger) ([]string, error) {
	var normalizedURLs []string
	scanner := bufio.NewScanner(r)

	lineNumber := 0
	skippedCount := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		normalizedURL, normErr := NormalizeURL(line)
		if normErr != nil {
			logger.Warn().Err(normErr).Int("lineNumber", lineNumber).Str("originalURL", line).Msg("Error normalizing URL, skipping")
			skippedCount++
			continue
		}
		normalizedURLs = append(normalizedURLs, normalizedURL)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadingFile, err)
	}

	logger.Info().
		Int("totalLinesRead", lineNumber).
		Int("normalizedCount", len(normalizedURLs)).
		Int("skippedCount", skippedCount).
		Msg("Finished reading URL list")

	if len(normalizedURLs) == 0 {
		return nil, ErrFileEmpty
	}
	return normalizedURLs, nil
}
