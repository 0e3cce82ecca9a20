package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aleister1102/monstermedia/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// maxConfigFileSize caps the size of a config file read from disk.
const maxConfigFileSize = 10 * 1024 * 1024

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	Mode          string        `json:"mode,omitempty" yaml:"mode,omitempty" validate:"required,mode"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	BrowserConfig BrowserConfig `json:"browser_config,omitempty" yaml:"browser_config,omitempty"`
	ScrapeConfig  ScrapeConfig  `json:"scrape_config,omitempty" yaml:"scrape_config,omitempty"`
	StorageConfig StorageConfig `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	QueryConfig   QueryConfig   `json:"query_config,omitempty" yaml:"query_config,omitempty"`
	ServerConfig  ServerConfig  `json:"server_config,omitempty" yaml:"server_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Mode:          ModeServe,
		LogConfig:     NewDefaultLogConfig(),
		BrowserConfig: NewDefaultBrowserConfig(),
		ScrapeConfig:  NewDefaultScrapeConfig(),
		StorageConfig: NewDefaultStorageConfig(),
		QueryConfig:   NewDefaultQueryConfig(),
		ServerConfig:  NewDefaultServerConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// Values absent from the file keep their defaults. YAML is used for .yaml/.yml
// files and JSON otherwise.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		logger.Debug().Msg("No config file found, using defaults")
		return cfg, nil
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, common.NewValidationError("config_file", filePath, "config file does not exist")
	}
	if info.Size() > maxConfigFileSize {
		return nil, common.NewValidationError("config_file", filePath, "config file is too large")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	logger.Info().Str("path", filePath).Msg("Loaded config file")
	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
