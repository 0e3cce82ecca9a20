package main

import (
	"flag"
	"fmt"
	"io"
)

// AppFlags holds the parsed command line.
type AppFlags struct {
	URLFile          string
	GlobalConfigFile string
	Mode             string
	Page             int
	PageSize         int
	ArchiveFile      string
}

// ParseFlags parses args (without the program name). Long flags win over
// their short aliases.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("monstermedia", flag.ContinueOnError)
	fs.SetOutput(output)

	urlFile := fs.String("scan-targets", "", "Path to a text file with one page URL per line (onetime mode)")
	urlFileAlias := fs.String("st", "", "Alias for -scan-targets")

	globalConfigFile := fs.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("gc", "", "Alias for -globalconfig")

	modeFlag := fs.String("mode", "", "Mode to run: serve or onetime (overrides config file if set)")
	modeFlagAlias := fs.String("m", "", "Alias for -mode")

	page := fs.Int("page", 0, "Print only this page of the extracted media (onetime mode)")
	pageSize := fs.Int("page-size", 0, "Page size for -page (onetime mode)")

	archiveFile := fs.String("dump-archive", "", "Print the media records of a Parquet batch archive as JSON and exit")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{
		URLFile:          firstNonEmpty(*urlFile, *urlFileAlias),
		GlobalConfigFile: firstNonEmpty(*globalConfigFile, *globalConfigFileAlias),
		Mode:             firstNonEmpty(*modeFlag, *modeFlagAlias),
		Page:             *page,
		PageSize:         *pageSize,
		ArchiveFile:      *archiveFile,
	}

	if flags.PageSize < 0 || flags.Page < 0 {
		return AppFlags{}, fmt.Errorf("-page and -page-size must not be negative")
	}
	return flags, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
