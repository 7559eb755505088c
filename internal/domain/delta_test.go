package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDeriveDeltas(t *testing.T) {
	t.Run("absolute differences", func(t *testing.T) {
		series := NormalizedSeries{
			{Date: "2020-01-22", Cases: 100},
			{Date: "2020-01-23", Cases: 100},
			{Date: "2020-01-24", Cases: 150},
			{Date: "2020-01-25", Cases: 140},
		}

		result := DeriveDeltas(series)

		want := DeltaSeries{
			{Date: "2020-01-23", Cases: 0},
			{Date: "2020-01-24", Cases: 50},
			{Date: "2020-01-25", Cases: 10},
		}
		if diff := cmp.Diff(want, result); diff != "" {
			t.Fatalf("deltas mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("keyed by later date", func(t *testing.T) {
		result := DeriveDeltas(NormalizedSeries{
			{Date: "2020-01-22", Cases: 0},
			{Date: "2020-01-23", Cases: 1},
		})
		assert.Equal(t, "2020-01-23", result[0].Date)
	})

	t.Run("single point", func(t *testing.T) {
		assert.Empty(t, DeriveDeltas(NormalizedSeries{{Date: "2020-01-22", Cases: 5}}))
	})

	t.Run("empty", func(t *testing.T) {
		result := DeriveDeltas(nil)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestDeriveDeltas_LengthAndSign(t *testing.T) {
	counts := []int64{0, 3, 3, 10, 7, 7, 50, 49, 120}
	series := make(NormalizedSeries, len(counts))
	for i, c := range counts {
		series[i] = Point{Date: "2020-02-" + itoa(i+1), Cases: c}
	}

	result := DeriveDeltas(series)

	assert.Len(t, result, len(series)-1)
	for _, p := range result {
		assert.GreaterOrEqual(t, p.Cases, int64(0), p.Date)
	}
}

func TestDatedSeries_Lookup(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2020, time.March, d, 0, 0, 0, 0, time.UTC) }
	series := DatedSeries{
		{Date: day(1), Cases: 4},
		{Date: day(2), Cases: 9},
		{Date: day(3), Cases: 2},
	}

	v, ok := series.Lookup(day(2))
	assert.True(t, ok)
	assert.Equal(t, int64(9), v)

	_, ok = series.Lookup(day(4))
	assert.False(t, ok)
}
