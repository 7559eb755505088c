package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/covid-case-report/internal/domain"
	"github.com/couchcryptid/covid-case-report/internal/observability"
	"golang.org/x/sync/errgroup"
)

// Stage names used in errors, logs and metrics.
const (
	StageLoad      = "load"
	StageSelect    = "select"
	StageNormalize = "normalize"
	StagePersist   = "persist"
	StageDerive    = "derive"
	StageRender    = "render"
)

// Loader reads the wide case table.
type Loader interface {
	Load(ctx context.Context) (domain.CaseTable, error)
}

// SeriesStore persists the normalized series and reads it back date-indexed.
type SeriesStore interface {
	Write(ctx context.Context, series domain.NormalizedSeries) error
	Read(ctx context.Context) (domain.DatedSeries, error)
}

// ChartRenderer draws both report charts and returns the written paths.
type ChartRenderer interface {
	RenderCumulative(ctx context.Context, displayName string, series domain.DatedSeries) (string, error)
	RenderDaily(ctx context.Context, displayName string, series domain.DeltaSeries) (string, error)
}

// StageError reports which stage of a run failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

// Report is the outcome of a successful run.
type Report struct {
	DisplayName     string
	Cumulative      domain.DatedSeries
	Daily           domain.DeltaSeries
	CumulativeChart string
	DailyChart      string
}

// Pipeline runs load, select, normalize, persist, derive and render once.
type Pipeline struct {
	loader   Loader
	store    SeriesStore
	renderer ChartRenderer
	target   domain.Target
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline for target with the given stages and observability.
func New(l Loader, s SeriesStore, r ChartRenderer, target domain.Target, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:   l,
		store:    s,
		renderer: r,
		target:   target,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run executes every stage in order and stops at the first failure, which
// is returned as a *StageError.
func (p *Pipeline) Run(ctx context.Context) (report Report, err error) {
	defer func() {
		if err != nil {
			p.metrics.RunSuccess.Set(0)
		} else {
			p.metrics.RunSuccess.Set(1)
		}
		p.metrics.LastRun.Set(float64(clock.Now().Unix()))
	}()

	var table domain.CaseTable
	if err := p.stage(ctx, StageLoad, func() (err error) {
		table, err = p.loader.Load(ctx)
		return err
	}); err != nil {
		return Report{}, err
	}
	p.metrics.RowsLoaded.Set(float64(len(table.Rows)))
	p.logger.Info("case table loaded", "rows", len(table.Rows), "dates", len(table.Dates))

	var selected domain.SelectedSeries
	if err := p.stage(ctx, StageSelect, func() (err error) {
		selected, err = p.target.Select(table)
		return err
	}); err != nil {
		return Report{}, err
	}
	p.logger.Info("county selected", "display_name", selected.DisplayName, "region", p.target.Region)

	var normalized domain.NormalizedSeries
	if err := p.stage(ctx, StageNormalize, func() (err error) {
		normalized, err = domain.Normalize(selected)
		return err
	}); err != nil {
		return Report{}, err
	}
	p.metrics.SeriesPoints.Set(float64(len(normalized)))

	var cumulative domain.DatedSeries
	if err := p.stage(ctx, StagePersist, func() error {
		if err := p.store.Write(ctx, normalized); err != nil {
			return err
		}
		var err error
		cumulative, err = p.store.Read(ctx)
		return err
	}); err != nil {
		return Report{}, err
	}

	var daily domain.DeltaSeries
	if err := p.stage(ctx, StageDerive, func() error {
		daily = domain.DeriveDeltas(normalized)
		return nil
	}); err != nil {
		return Report{}, err
	}
	p.metrics.DeltaPoints.Set(float64(len(daily)))

	report = Report{DisplayName: selected.DisplayName, Cumulative: cumulative, Daily: daily}
	if err := p.stage(ctx, StageRender, func() error {
		return p.render(ctx, &report)
	}); err != nil {
		return Report{}, err
	}

	peak := peakDelta(daily)
	p.logger.Info("report complete",
		"display_name", report.DisplayName,
		"points", len(cumulative),
		"daily_points", len(daily),
		"peak_daily_cases", peak.Cases,
		"peak_daily_date", peak.Date,
		"cumulative_chart", report.CumulativeChart,
		"daily_chart", report.DailyChart,
	)
	return report, nil
}

// render draws both charts concurrently; they share no mutable state.
func (p *Pipeline) render(ctx context.Context, report *Report) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := p.renderer.RenderCumulative(gctx, report.DisplayName, report.Cumulative)
		if err != nil {
			return fmt.Errorf("cumulative chart: %w", err)
		}
		report.CumulativeChart = path
		p.metrics.ChartsRendered.Inc()
		return nil
	})
	g.Go(func() error {
		path, err := p.renderer.RenderDaily(gctx, report.DisplayName, report.Daily)
		if err != nil {
			return fmt.Errorf("daily chart: %w", err)
		}
		report.DailyChart = path
		p.metrics.ChartsRendered.Inc()
		return nil
	})
	return g.Wait()
}

// stage times fn, records the duration and wraps any failure with the stage name.
func (p *Pipeline) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return &StageError{Stage: name, Err: err}
	}

	start := clock.Now()
	err := fn()
	elapsed := clock.Since(start)
	p.metrics.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	if err != nil {
		return &StageError{Stage: name, Err: err}
	}
	p.logger.Debug("stage complete", "stage", name, "duration", elapsed)
	return nil
}

func peakDelta(series domain.DeltaSeries) domain.Point {
	var peak domain.Point
	for i, pt := range series {
		if i == 0 || pt.Cases > peak.Cases {
			peak = pt
		}
	}
	return peak
}
