package config

// StorageConfig defines configuration for the media record store
type StorageConfig struct {
	SQLiteDBPath string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty" validate:"required"`
	// Deduplicate rejects a second row with the same source URL and asset reference.
	Deduplicate bool `json:"deduplicate" yaml:"deduplicate"`
	// ArchiveDir, when set, receives one Parquet file per persisted batch.
	ArchiveDir         string `json:"archive_dir,omitempty" yaml:"archive_dir,omitempty"`
	ArchiveCompression string `json:"archive_compression,omitempty" yaml:"archive_compression,omitempty" validate:"omitempty,oneof=zstd snappy gzip none"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		SQLiteDBPath:       DefaultStorageSQLiteDBPath,
		Deduplicate:        false,
		ArchiveCompression: DefaultStorageArchiveCompression,
	}
}

// QueryConfig defines defaults for the media query interface
type QueryConfig struct {
	DefaultPageSize int `json:"default_page_size,omitempty" yaml:"default_page_size,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultQueryConfig creates default query configuration
func NewDefaultQueryConfig() QueryConfig {
	return QueryConfig{DefaultPageSize: DefaultQueryPageSize}
}
