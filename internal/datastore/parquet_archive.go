package datastore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// MediaArchiveRecord is the Parquet row layout of an archived MediaItem.
type MediaArchiveRecord struct {
	ID        string  `parquet:"id"`
	SourceURL string  `parquet:"source_url"`
	Type      string  `parquet:"type"`
	AssetRef  string  `parquet:"asset_ref"`
	Title     *string `parquet:"title,optional"`
	Thumbnail *string `parquet:"thumbnail,optional"`
	CreatedAt int64   `parquet:"created_at"` // Unix milliseconds
}

func toArchiveRecord(item models.MediaItem) MediaArchiveRecord {
	return MediaArchiveRecord{
		ID:        item.ID,
		SourceURL: item.SourceURL,
		Type:      string(item.Type),
		AssetRef:  item.AssetRef,
		Title:     item.Title,
		Thumbnail: item.Thumbnail,
		CreatedAt: item.CreatedAt.UnixMilli(),
	}
}

func (r MediaArchiveRecord) toMediaItem() models.MediaItem {
	return models.MediaItem{
		ID:        r.ID,
		SourceURL: r.SourceURL,
		Type:      models.MediaType(r.Type),
		AssetRef:  r.AssetRef,
		Title:     r.Title,
		Thumbnail: r.Thumbnail,
		CreatedAt: time.UnixMilli(r.CreatedAt).UTC(),
	}
}

// ParquetArchiver writes each persisted batch to its own Parquet file so
// batches can be exported without touching the live database.
type ParquetArchiver struct {
	dir         string
	compression parquet.WriterOption
	logger      zerolog.Logger
}

// NewParquetArchiver creates the archive directory and returns an archiver
// writing into it.
func NewParquetArchiver(cfg config.StorageConfig, logger zerolog.Logger) (*ParquetArchiver, error) {
	logger = logger.With().Str("component", "ParquetArchiver").Logger()
	if cfg.ArchiveDir == "" {
		return nil, errors.New("archive directory is not configured")
	}
	if err := os.MkdirAll(cfg.ArchiveDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", cfg.ArchiveDir, err)
	}

	return &ParquetArchiver{
		dir:         cfg.ArchiveDir,
		compression: compressionOption(cfg.ArchiveCompression, logger),
		logger:      logger,
	}, nil
}

func compressionOption(codec string, logger zerolog.Logger) parquet.WriterOption {
	switch strings.ToLower(codec) {
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "none", "uncompressed", "":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		logger.Warn().Str("codec", codec).Msg("Unsupported compression codec, defaulting to uncompressed")
		return parquet.Compression(&parquet.Uncompressed)
	}
}

// Archive writes items to a new file and returns its path. The file appears
// under its final name only once it is complete.
func (pa *ParquetArchiver) Archive(ctx context.Context, items []models.MediaItem) (string, error) {
	if len(items) == 0 {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("media_%s_%s.parquet", time.Now().UTC().Format("20060102T150405"), uuid.NewString()[:8])
	finalPath := filepath.Join(pa.dir, name)
	tmpPath := finalPath + ".tmp"

	if err := pa.writeFile(tmpPath, items); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize archive %s: %w", finalPath, err)
	}

	pa.logger.Info().Str("path", finalPath).Int("records", len(items)).Msg("Archived media batch")
	return finalPath, nil
}

func (pa *ParquetArchiver) writeFile(path string, items []models.MediaItem) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create archive file %s: %w", path, err)
	}
	defer file.Close()

	writer := parquet.NewWriter(file, parquet.SchemaOf(MediaArchiveRecord{}), pa.compression)
	for _, item := range items {
		if err := writer.Write(toArchiveRecord(item)); err != nil {
			return fmt.Errorf("failed to write archive record %s: %w", item.ID, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close Parquet writer: %w", err)
	}
	return file.Sync()
}

// ReadArchive loads every record of an archive file in write order.
func ReadArchive(path string) ([]models.MediaItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive %s: %w", path, err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file %s: %w", path, err)
	}

	reader := parquet.NewReader(pqFile)
	defer reader.Close()

	items := make([]models.MediaItem, 0, pqFile.NumRows())
	for {
		var record MediaArchiveRecord
		if err := reader.Read(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read archive record from %s: %w", path, err)
		}
		items = append(items, record.toMediaItem())
	}
	return items, nil
}
