// Command casereport builds the COVID-19 case report for a single county:
// it writes the county's cumulative series to cases_by_date.csv and renders
// cumulative and daily-new case charts as PNG files.
//
// It takes no arguments. Ambient settings (LOG_LEVEL, LOG_FORMAT, OUTPUT_DIR,
// ANNOTATIONS_FILE, METRICS_TEXTFILE) are read from the environment.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/covid-case-report/internal/adapter/chart"
	"github.com/couchcryptid/covid-case-report/internal/adapter/csvfile"
	"github.com/couchcryptid/covid-case-report/internal/config"
	"github.com/couchcryptid/covid-case-report/internal/domain"
	"github.com/couchcryptid/covid-case-report/internal/observability"
	"github.com/couchcryptid/covid-case-report/internal/pipeline"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg).With("run_id", uuid.NewString())
	metrics := observability.NewMetrics()

	annotations, err := chart.LoadAnnotations(cfg.AnnotationsFile)
	if err != nil {
		logger.Error("failed to load annotations", "error", err)
		os.Exit(1)
	}

	p := pipeline.New(
		csvfile.NewCaseFile(config.InputPath),
		csvfile.NewSeriesFile(filepath.Join(cfg.OutputDir, config.SeriesFileName)),
		chart.NewRenderer(cfg.OutputDir, annotations),
		domain.DefaultTarget,
		logger,
		metrics,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, runErr := p.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("metrics export failed", "error", err)
		}
	}

	if runErr != nil {
		var stageErr *pipeline.StageError
		if errors.As(runErr, &stageErr) {
			logger.Error("report failed", "stage", stageErr.Stage, "error", stageErr.Err)
		} else {
			logger.Error("report failed", "error", runErr)
		}
		stop()
		os.Exit(1)
	}
}
