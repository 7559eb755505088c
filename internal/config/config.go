package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Fixed input and intermediate file names. The input is not configurable.
const (
	InputPath      = "time_series_covid_19_confirmed_US.csv"
	SeriesFileName = "cases_by_date.csv"
)

// Config holds the report settings, populated from environment variables.
type Config struct {
	LogLevel  string
	LogFormat string

	// OutputDir receives the series file and both chart images.
	OutputDir string

	// AnnotationsFile overrides the embedded chart annotation dates.
	AnnotationsFile string

	// MetricsTextfile, when set, receives run metrics in Prometheus text format.
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:        strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "json")),
		OutputDir:       sharedcfg.EnvOrDefault("OUTPUT_DIR", "."),
		AnnotationsFile: os.Getenv("ANNOTATIONS_FILE"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR must not be empty")
	}
	info, err := os.Stat(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("OUTPUT_DIR: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("OUTPUT_DIR %q is not a directory", cfg.OutputDir)
	}

	return cfg, nil
}
