package chart

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/covid-case-report/internal/domain"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Output file name templates; %s is the county display name.
const (
	CumulativeFileTemplate = "total_cases_line_plot_%s.png"
	DailyFileTemplate      = "average_cases_line_plot_%s.png"
)

var (
	seriesColor = drawing.ColorFromHex("4287f5")
	gridColor   = drawing.ColorFromHex("d9d9d9")
)

// Renderer draws the cumulative and daily-new case charts as PNG files.
// It implements pipeline.ChartRenderer.
type Renderer struct {
	outputDir   string
	annotations AnnotationSet
}

// NewRenderer creates a Renderer writing into outputDir.
func NewRenderer(outputDir string, annotations AnnotationSet) *Renderer {
	return &Renderer{outputDir: outputDir, annotations: annotations}
}

// RenderCumulative draws the cumulative series and returns the file path.
func (r *Renderer) RenderCumulative(ctx context.Context, displayName string, series domain.DatedSeries) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c, err := cumulativeChart(displayName, series, r.annotations.Cumulative)
	if err != nil {
		return "", err
	}
	return r.save(c, fmt.Sprintf(CumulativeFileTemplate, displayName))
}

// RenderDaily draws the daily-new series and returns the file path.
func (r *Renderer) RenderDaily(ctx context.Context, displayName string, series domain.DeltaSeries) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dated, err := datedDeltas(series)
	if err != nil {
		return "", err
	}
	c, err := dailyChart(displayName, dated, r.annotations.Daily)
	if err != nil {
		return "", err
	}
	return r.save(c, fmt.Sprintf(DailyFileTemplate, displayName))
}

// save renders into memory first so a failed render leaves any previous
// image in place.
func (r *Renderer) save(c gochart.Chart, name string) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(gochart.PNG, &buf); err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrRender, name, err)
	}

	path := filepath.Join(r.outputDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: write %s: %v", domain.ErrIO, path, err)
	}
	return path, nil
}

func cumulativeChart(displayName string, series domain.DatedSeries, points []AnnotationPoint) (gochart.Chart, error) {
	if len(series) == 0 {
		return gochart.Chart{}, fmt.Errorf("%w: empty cumulative series", domain.ErrRender)
	}

	marks, err := annotate(series, points, func(p AnnotationPoint, v int64) string {
		return fmt.Sprintf("*%s: %d", p.Label, v)
	})
	if err != nil {
		return gochart.Chart{}, err
	}

	c := gochart.Chart{
		Title:      fmt.Sprintf("Total COVID-19 Cases in %s (%s)", displayName, period(series)),
		TitleStyle: gochart.Style{FontSize: 18},
		Width:      1600,
		Height:     1200,
		Background: gochart.Style{Padding: gochart.Box{Top: 60, Left: 30, Right: 40, Bottom: 30}},
		XAxis: gochart.XAxis{
			Name:           "Year-Month",
			NameStyle:      gochart.Style{FontSize: 18},
			Style:          gochart.Style{FontSize: 14},
			ValueFormatter: gochart.TimeValueFormatterWithFormat("2006-01"),
			GridMajorStyle: gridStyle(),
		},
		YAxis: gochart.YAxis{
			Name:           "Cases",
			NameStyle:      gochart.Style{FontSize: 18},
			Style:          gochart.Style{FontSize: 20},
			ValueFormatter: plainInt,
			GridMajorStyle: gridStyle(),
		},
		Series: plotted(
			timeSeries("COVID-19 Cases Per Day", series),
			legendOnly("Total COVID-19 Cases", series[0]),
			marks, 14,
		),
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c, legendStyle())}
	return c, nil
}

func dailyChart(displayName string, series domain.DatedSeries, points []AnnotationPoint) (gochart.Chart, error) {
	if len(series) == 0 {
		return gochart.Chart{}, fmt.Errorf("%w: empty daily series", domain.ErrRender)
	}

	marks, err := annotate(series, points, func(_ AnnotationPoint, v int64) string {
		return fmt.Sprintf("*%d", v)
	})
	if err != nil {
		return gochart.Chart{}, err
	}

	ticks := make([]gochart.Tick, len(points))
	for i, p := range points {
		ticks[i] = gochart.Tick{Value: gochart.TimeToFloat64(p.Day()), Label: p.Label}
	}

	c := gochart.Chart{
		Title:      fmt.Sprintf("New COVID-19 Cases Per Day in %s (%s)", displayName, period(series)),
		TitleStyle: gochart.Style{FontSize: 18},
		Width:      2400,
		Height:     1000,
		Background: gochart.Style{Padding: gochart.Box{Top: 60, Left: 30, Right: 60, Bottom: 30}},
		XAxis: gochart.XAxis{
			Name:           "Date",
			NameStyle:      gochart.Style{FontSize: 18},
			Style:          gochart.Style{FontSize: 14},
			Ticks:          ticks,
			GridMajorStyle: gridStyle(),
		},
		YAxis: gochart.YAxis{
			Name:           "Cases",
			NameStyle:      gochart.Style{FontSize: 18},
			Style:          gochart.Style{FontSize: 20},
			ValueFormatter: plainInt,
			GridMajorStyle: gridStyle(),
		},
		Series: plotted(
			timeSeries("New COVID-19 Cases Per Day", series),
			legendOnly("Total New COVID-19 Cases", series[0]),
			marks, 20,
		),
	}
	c.Elements = []gochart.Renderable{gochart.Legend(&c, legendStyle())}
	return c, nil
}

// annotate resolves every point against the series. A date with no data is
// an error rather than a skipped mark.
func annotate(series domain.DatedSeries, points []AnnotationPoint, label func(AnnotationPoint, int64) string) ([]gochart.Value2, error) {
	marks := make([]gochart.Value2, 0, len(points))
	for _, p := range points {
		v, ok := series.Lookup(p.Day())
		if !ok {
			return nil, fmt.Errorf("%w: annotation %q: no data for %s", domain.ErrRender, p.Label, p.Day().Format("2006-01-02"))
		}
		marks = append(marks, gochart.Value2{
			XValue: gochart.TimeToFloat64(p.Day()),
			YValue: float64(v),
			Label:  label(p, v),
		})
	}
	return marks, nil
}

// timeSeries plots the series with dot markers over a thin line. go-chart
// needs two distinct x values, so a single point is repeated one second later.
func timeSeries(name string, series domain.DatedSeries) gochart.TimeSeries {
	xs := make([]time.Time, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.Date
		ys[i] = float64(p.Cases)
	}
	if len(series) == 1 {
		xs = append(xs, xs[0].Add(time.Second))
		ys = append(ys, ys[0])
	}
	return gochart.TimeSeries{
		Name: name,
		Style: gochart.Style{
			StrokeColor: seriesColor,
			StrokeWidth: 1,
			DotColor:    seriesColor,
			DotWidth:    2,
		},
		XValues: xs,
		YValues: ys,
	}
}

// legendOnly is a single-point series with no dots: nothing is drawn on
// the canvas, but the legend gets an entry for the "*" value marks.
func legendOnly(name string, at domain.DatedPoint) gochart.TimeSeries {
	return gochart.TimeSeries{
		Name:    name,
		Style:   gochart.Style{StrokeColor: drawing.ColorBlack, StrokeWidth: 1},
		XValues: []time.Time{at.Date},
		YValues: []float64{float64(at.Cases)},
	}
}

func plotted(line, legend gochart.TimeSeries, marks []gochart.Value2, fontSize float64) []gochart.Series {
	series := []gochart.Series{line, legend}
	if len(marks) > 0 {
		series = append(series, valueMarks(marks, fontSize))
	}
	return series
}

// valueMarks draws the "*" labels. go-chart leaves annotation series out of
// the legend.
func valueMarks(marks []gochart.Value2, fontSize float64) gochart.AnnotationSeries {
	return gochart.AnnotationSeries{
		Name: "values",
		Style: gochart.Style{
			StrokeColor: drawing.ColorBlack,
			FontSize:    fontSize,
			FontColor:   drawing.ColorBlack,
		},
		Annotations: marks,
	}
}

func gridStyle() gochart.Style {
	return gochart.Style{StrokeColor: gridColor, StrokeWidth: 1}
}

func legendStyle() gochart.Style {
	return gochart.Style{
		FontSize:    22,
		FillColor:   drawing.ColorWhite,
		StrokeColor: drawing.ColorBlack,
		Padding:     gochart.Box{Top: 10, Left: 10, Right: 10, Bottom: 10},
	}
}

// plainInt formats axis values without exponent or decimals.
func plainInt(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(v)
}

// period renders the covered months as "1/2020-5/2021".
func period(series domain.DatedSeries) string {
	first, last := series[0].Date, series[len(series)-1].Date
	return fmt.Sprintf("%d/%d-%d/%d", int(first.Month()), first.Year(), int(last.Month()), last.Year())
}

func datedDeltas(series domain.DeltaSeries) (domain.DatedSeries, error) {
	out := make(domain.DatedSeries, len(series))
	for i, p := range series {
		day, err := domain.ParseSeriesDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
		}
		out[i] = domain.DatedPoint{Date: day, Cases: p.Cases}
	}
	return out, nil
}
