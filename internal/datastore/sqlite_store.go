package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

const createMediaTable = `
CREATE TABLE IF NOT EXISTS media_items (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	source_url TEXT NOT NULL CHECK (source_url <> ''),
	type TEXT NOT NULL CHECK (type IN ('image', 'video')),
	asset_ref TEXT NOT NULL CHECK (asset_ref <> ''),
	title TEXT,
	thumbnail TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_media_items_type ON media_items (type);
`

const dedupeIndex = "idx_media_items_source_asset"

// SQLiteMediaStore stores media records in a single SQLite table. Rows are
// returned in insertion order.
type SQLiteMediaStore struct {
	db          *sql.DB
	logger      zerolog.Logger
	deduplicate bool
}

// NewSQLiteMediaStore opens (creating if needed) the database at
// cfg.SQLiteDBPath and ensures the schema exists.
func NewSQLiteMediaStore(cfg config.StorageConfig, logger zerolog.Logger) (*SQLiteMediaStore, error) {
	logger = logger.With().Str("component", "SQLiteMediaStore").Logger()
	dbPath := cfg.SQLiteDBPath
	if dbPath == "" {
		return nil, common.NewValidationError("sqlite_db_path", dbPath, "database path cannot be empty")
	}

	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create database directory")
		return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?"+sqlitePragmas)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dbPath).Msg("Failed to open media database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dbPath, err)
	}
	// SQLite allows one writer; a single connection keeps bulk inserts from
	// contending with each other.
	db.SetMaxOpenConns(1)

	store := &SQLiteMediaStore{
		db:          db,
		logger:      logger,
		deduplicate: cfg.Deduplicate,
	}

	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		logger.Error().Err(err).Msg("Failed to initialize database schema")
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info().Str("path", dbPath).Bool("deduplicate", cfg.Deduplicate).Msg("Media database ready")
	return store, nil
}

func (s *SQLiteMediaStore) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createMediaTable); err != nil {
		return err
	}

	indexStmt := "DROP INDEX IF EXISTS " + dedupeIndex
	if s.deduplicate {
		indexStmt = "CREATE UNIQUE INDEX IF NOT EXISTS " + dedupeIndex + " ON media_items (source_url, asset_ref)"
	}
	_, err := s.db.ExecContext(ctx, indexStmt)
	return err
}

// BulkInsert writes items in one transaction. Either every row is stored or
// none is. With deduplication on, an item that already exists keeps the ID of
// the stored row.
func (s *SQLiteMediaStore) BulkInsert(ctx context.Context, items []models.MediaItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return common.WrapErrorf(err, "item %d rejected", i)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	verb := "INSERT"
	if s.deduplicate {
		verb = "INSERT OR IGNORE"
	}
	stmt, err := tx.PrepareContext(ctx, verb+` INTO media_items
		(id, source_url, type, asset_ref, title, thumbnail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	stored := make([]models.MediaItem, len(items))
	duplicates := 0
	for i, item := range items {
		item.ID = uuid.NewString()
		item.CreatedAt = now

		res, err := stmt.ExecContext(ctx,
			item.ID, item.SourceURL, string(item.Type), item.AssetRef,
			nullString(item.Title), nullString(item.Thumbnail),
			item.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to insert media item %d (%s): %w", i, item.AssetRef, err)
		}

		if s.deduplicate {
			if n, _ := res.RowsAffected(); n == 0 {
				existing, err := s.findExisting(ctx, tx, item.SourceURL, item.AssetRef)
				if err != nil {
					return err
				}
				item.ID = existing.ID
				item.CreatedAt = existing.CreatedAt
				duplicates++
			}
		}
		stored[i] = item
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit media items: %w", err)
	}
	copy(items, stored)

	s.logger.Debug().Int("count", len(items)).Int("duplicates", duplicates).Msg("Stored media items")
	return nil
}

func (s *SQLiteMediaStore) findExisting(ctx context.Context, tx *sql.Tx, sourceURL, assetRef string) (models.MediaItem, error) {
	row := tx.QueryRowContext(ctx, `SELECT id, source_url, type, asset_ref, title, thumbnail, created_at
		FROM media_items WHERE source_url = ? AND asset_ref = ?`, sourceURL, assetRef)
	item, err := scanMediaItem(row)
	if err != nil {
		return models.MediaItem{}, fmt.Errorf("failed to look up existing media item %s: %w", assetRef, err)
	}
	return item, nil
}

// FindPage runs the count and the page query against the same filter.
func (s *SQLiteMediaStore) FindPage(ctx context.Context, filter MediaFilter, limit, offset int) ([]models.MediaItem, int, error) {
	where, args := buildWhere(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM media_items"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count media items: %w", err)
	}

	if limit < 1 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, source_url, type, asset_ref, title, thumbnail, created_at
		FROM media_items` + where + ` ORDER BY seq LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query media items: %w", err)
	}
	defer rows.Close()

	items := make([]models.MediaItem, 0)
	for rows.Next() {
		item, err := scanMediaItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read media items: %w", err)
	}

	return items, total, nil
}

// Close closes the database connection.
func (s *SQLiteMediaStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func buildWhere(filter MediaFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Search != "" {
		// instr is case-sensitive, unlike LIKE.
		conditions = append(conditions, "instr(asset_ref, ?) > 0")
		args = append(args, filter.Search)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMediaItem(row rowScanner) (models.MediaItem, error) {
	var (
		item      models.MediaItem
		mediaType string
		title     sql.NullString
		thumbnail sql.NullString
		createdAt string
	)
	if err := row.Scan(&item.ID, &item.SourceURL, &mediaType, &item.AssetRef, &title, &thumbnail, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, err
		}
		return item, fmt.Errorf("failed to scan media item: %w", err)
	}

	item.Type = models.MediaType(mediaType)
	if title.Valid {
		item.Title = &title.String
	}
	if thumbnail.Valid {
		item.Thumbnail = &thumbnail.String
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		item.CreatedAt = t
	}
	return item, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
