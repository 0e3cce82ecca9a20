package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/monstermedia/internal/api"
	"github.com/aleister1102/monstermedia/internal/browser"
	"github.com/aleister1102/monstermedia/internal/config"
	"github.com/aleister1102/monstermedia/internal/datastore"
	"github.com/aleister1102/monstermedia/internal/extractor"
	"github.com/aleister1102/monstermedia/internal/logger"
	"github.com/aleister1102/monstermedia/internal/models"
	"github.com/aleister1102/monstermedia/internal/query"
	"github.com/aleister1102/monstermedia/internal/scraper"
	"github.com/aleister1102/monstermedia/internal/urlhandler"
	"github.com/rs/zerolog"
)

func main() {
	flags, err := ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("[FATAL] Main: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flags, os.Stdout); err != nil {
		stop()
		log.Fatalf("[FATAL] Main: %v", err)
	}
}

func run(ctx context.Context, flags AppFlags, stdout io.Writer) error {
	if flags.ArchiveFile != "" {
		return dumpArchive(flags.ArchiveFile, stdout)
	}

	bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootLogger)
	if err != nil {
		return fmt.Errorf("could not load global config using path '%s': %w", flags.GlobalConfigFile, err)
	}
	if flags.Mode != "" {
		gCfg.Mode = flags.Mode
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		return err
	}

	appLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}
	appLogger.Info().Str("mode", gCfg.Mode).Str("renderer", gCfg.BrowserConfig.Renderer).Msg("monstermedia starting")

	store, err := datastore.NewSQLiteMediaStore(gCfg.StorageConfig, appLogger)
	if err != nil {
		return fmt.Errorf("could not open media store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			appLogger.Warn().Err(err).Msg("Failed to close media store")
		}
	}()

	scrapeService := scraper.NewService(
		browser.NewLauncher(gCfg.BrowserConfig, appLogger),
		extractor.NewExtractor(gCfg.ScrapeConfig, appLogger),
		store,
		gCfg.ScrapeConfig,
		appLogger,
	)
	if gCfg.StorageConfig.ArchiveDir != "" {
		archiver, err := datastore.NewParquetArchiver(gCfg.StorageConfig, appLogger)
		if err != nil {
			return fmt.Errorf("could not initialize batch archive: %w", err)
		}
		scrapeService.WithArchiver(archiver)
	}

	switch gCfg.Mode {
	case config.ModeOnetime:
		return runOnetime(ctx, scrapeService, flags, stdout, appLogger)
	default:
		queryService := query.NewService(store, gCfg.QueryConfig, appLogger)
		router := api.NewRouter(gCfg.ServerConfig, scrapeService, queryService, appLogger)
		err := api.NewServer(gCfg.ServerConfig, router, appLogger).Run(ctx)
		appLogger.Info().Msg("monstermedia stopped")
		return err
	}
}

// onetimeOutput is printed to stdout after a onetime batch.
type onetimeOutput struct {
	Success    bool                  `json:"success"`
	Error      string                `json:"error,omitempty"`
	Data       []models.BatchOutcome `json:"data"`
	TotalItems int                   `json:"totalItems"`
	Items      []models.MediaItem    `json:"items,omitzero"`
}

func runOnetime(ctx context.Context, svc *scraper.Service, flags AppFlags, stdout io.Writer, appLogger zerolog.Logger) error {
	if flags.URLFile == "" {
		return errors.New("onetime mode requires -scan-targets (or -st) with a URL list file")
	}

	urls, err := urlhandler.ReadURLsFromFile(flags.URLFile, appLogger)
	if err != nil {
		return fmt.Errorf("failed to load URLs from file '%s': %w", flags.URLFile, err)
	}
	appLogger.Info().Int("count", len(urls)).Str("file", flags.URLFile).Msg("Starting onetime batch")

	result, batchErr := svc.ScrapeBatch(ctx, urls)
	if result != nil {
		out := onetimeOutput{
			Success:    batchErr == nil,
			Data:       result.Outcomes,
			TotalItems: result.TotalExtracted,
		}
		if batchErr != nil {
			out.Error = batchErr.Error()
		}
		if flags.PageSize > 0 {
			out.Items, _ = result.Slice(max(flags.Page, 1), flags.PageSize)
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if batchErr != nil {
		return batchErr
	}
	appLogger.Info().Msg("monstermedia finished (onetime mode)")
	return nil
}

// dumpArchive prints the records of one batch archive in write order.
func dumpArchive(path string, stdout io.Writer) error {
	items, err := datastore.ReadArchive(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("failed to write archive records: %w", err)
	}
	return nil
}
