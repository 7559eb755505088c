package chart

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/covid-case-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const testDisplayName = "Los Angeles, California, US"

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// dailySeries returns n consecutive days starting 2020-03-01 with counts
// growing by 10 per day.
func dailySeries(n int) domain.DatedSeries {
	start := time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)
	series := make(domain.DatedSeries, n)
	for i := range series {
		series[i] = domain.DatedPoint{Date: start.AddDate(0, 0, i), Cases: int64(i * 10)}
	}
	return series
}

func testAnnotations(t *testing.T) AnnotationSet {
	t.Helper()
	set, err := ParseAnnotations([]byte(`
cumulative:
  - date: "2020-03-01"
  - date: "2020-03-15"
    label: "mid March"
daily:
  - date: "2020-03-2"
  - date: "2020-03-20"
`))
	require.NoError(t, err)
	return set
}

func deltasFrom(series domain.DatedSeries) domain.DeltaSeries {
	normalized := make(domain.NormalizedSeries, len(series))
	for i, p := range series {
		normalized[i] = domain.Point{Date: p.Date.Format("2006-01-2"), Cases: p.Cases}
	}
	return domain.DeriveDeltas(normalized)
}

func TestCumulativeChart(t *testing.T) {
	set := testAnnotations(t)

	c, err := cumulativeChart(testDisplayName, dailySeries(31), set.Cumulative)
	require.NoError(t, err)

	assert.Equal(t, "Total COVID-19 Cases in Los Angeles, California, US (3/2020-3/2020)", c.Title)
	assert.Equal(t, 1600, c.Width)
	assert.Equal(t, 1200, c.Height)
	assert.Equal(t, "Year-Month", c.XAxis.Name)
	assert.Equal(t, "Cases", c.YAxis.Name)
	require.Len(t, c.Series, 3)
	assert.Equal(t, "COVID-19 Cases Per Day", c.Series[0].GetName())
	assert.Equal(t, "Total COVID-19 Cases", c.Series[1].GetName())

	marks, ok := c.Series[2].(gochart.AnnotationSeries)
	require.True(t, ok)
	require.Len(t, marks.Annotations, 2)
	assert.Equal(t, "*2020-03-01: 0", marks.Annotations[0].Label)
	assert.Equal(t, "*mid March: 140", marks.Annotations[1].Label)
	assert.Equal(t, 140.0, marks.Annotations[1].YValue)
}

func TestDailyChart(t *testing.T) {
	set := testAnnotations(t)
	dated, err := datedDeltas(deltasFrom(dailySeries(31)))
	require.NoError(t, err)

	c, err := dailyChart(testDisplayName, dated, set.Daily)
	require.NoError(t, err)

	assert.Equal(t, "New COVID-19 Cases Per Day in Los Angeles, California, US (3/2020-3/2020)", c.Title)
	assert.Equal(t, 2400, c.Width)
	assert.Equal(t, 1000, c.Height)
	require.Len(t, c.XAxis.Ticks, 2)
	assert.Equal(t, "2020-03-2", c.XAxis.Ticks[0].Label)

	marks, ok := c.Series[2].(gochart.AnnotationSeries)
	require.True(t, ok)
	assert.Equal(t, "*10", marks.Annotations[0].Label)
}

func TestCharts_MissingAnnotationDate(t *testing.T) {
	set, err := ParseAnnotations([]byte(`
cumulative:
  - date: "2020-03-01"
  - date: "2021-01-01"
daily:
  - date: "2020-03-01"
`))
	require.NoError(t, err)

	_, err = cumulativeChart(testDisplayName, dailySeries(10), set.Cumulative)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRender)
	assert.Contains(t, err.Error(), "2021-01-01")

	// The daily series starts one day after the cumulative one.
	dated, err := datedDeltas(deltasFrom(dailySeries(10)))
	require.NoError(t, err)
	_, err = dailyChart(testDisplayName, dated, set.Daily)
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestCharts_EmptySeries(t *testing.T) {
	_, err := cumulativeChart(testDisplayName, nil, nil)
	assert.ErrorIs(t, err, domain.ErrRender)

	_, err = dailyChart(testDisplayName, domain.DatedSeries{}, nil)
	assert.ErrorIs(t, err, domain.ErrRender)
}

func TestCharts_NoAnnotations(t *testing.T) {
	c, err := cumulativeChart(testDisplayName, dailySeries(5), nil)
	require.NoError(t, err)
	assert.Len(t, c.Series, 2)
}

func TestTimeSeries_SinglePointPadded(t *testing.T) {
	ts := timeSeries("one", dailySeries(1))

	require.Len(t, ts.XValues, 2)
	assert.Equal(t, time.Second, ts.XValues[1].Sub(ts.XValues[0]))
	assert.Equal(t, []float64{0, 0}, ts.YValues)
}

func TestRenderer_SinglePointSeries(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, AnnotationSet{})

	cumulativePath, err := r.RenderCumulative(context.Background(), testDisplayName, dailySeries(1))
	require.NoError(t, err)

	dailyPath, err := r.RenderDaily(context.Background(), testDisplayName, domain.DeltaSeries{{Date: "2020-01-23", Cases: 1}})
	require.NoError(t, err)

	for _, path := range []string{cumulativePath, dailyPath} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic), "%s is not a PNG", path)
	}
}

func TestPlainInt(t *testing.T) {
	assert.Equal(t, "1250000", plainInt(1.25e6))
	assert.Equal(t, "0", plainInt(0.4))
	assert.Equal(t, "x", plainInt("x"))
}

func TestRenderer_WritesPNGs(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, testAnnotations(t))
	series := dailySeries(31)

	cumulativePath, err := r.RenderCumulative(context.Background(), testDisplayName, series)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "total_cases_line_plot_Los Angeles, California, US.png"), cumulativePath)

	dailyPath, err := r.RenderDaily(context.Background(), testDisplayName, deltasFrom(series))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "average_cases_line_plot_Los Angeles, California, US.png"), dailyPath)

	for _, path := range []string{cumulativePath, dailyPath} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic), "%s is not a PNG", path)
	}
}

func TestRenderer_FailedRenderKeepsPreviousImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "total_cases_line_plot_"+testDisplayName+".png")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	set, err := ParseAnnotations([]byte("cumulative:\n  - date: \"2022-01-01\"\n"))
	require.NoError(t, err)

	_, err = NewRenderer(dir, set).RenderCumulative(context.Background(), testDisplayName, dailySeries(5))
	require.ErrorIs(t, err, domain.ErrRender)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestRenderer_MissingOutputDir(t *testing.T) {
	r := NewRenderer(filepath.Join(t.TempDir(), "missing"), testAnnotations(t))
	_, err := r.RenderCumulative(context.Background(), testDisplayName, dailySeries(31))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer(t.TempDir(), AnnotationSet{}).RenderDaily(ctx, testDisplayName, domain.DeltaSeries{})
	assert.ErrorIs(t, err, context.Canceled)
}
