package domain

import (
	"fmt"
	"strings"
	"time"
)

// SeriesDateLayout parses normalized date keys. The single "2" day verb
// accepts both padded and unpadded days.
const SeriesDateLayout = "2006-01-2"

// yearSuffixes maps the two-digit year suffixes present in the dataset.
var yearSuffixes = map[string]string{
	"20": "2020",
	"21": "2021",
}

// NormalizeDate rewrites an M/D/YY source key as YYYY-MM-D. The month is
// zero-padded to two digits; the day is kept exactly as written.
func NormalizeDate(key string) (string, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q is not M/D/YY", ErrDateFormat, key)
	}
	month, day, suffix := parts[0], parts[1], parts[2]

	if !isShortNumber(month) || !isShortNumber(day) {
		return "", fmt.Errorf("%w: %q is not M/D/YY", ErrDateFormat, key)
	}
	year, ok := yearSuffixes[suffix]
	if !ok {
		return "", fmt.Errorf("%w: unsupported year suffix %q in %q", ErrDateFormat, suffix, key)
	}

	if len(month) == 1 {
		month = "0" + month
	}
	normalized := year + "-" + month + "-" + day
	if _, err := time.Parse(SeriesDateLayout, normalized); err != nil {
		return "", fmt.Errorf("%w: %q is not a calendar date", ErrDateFormat, key)
	}
	return normalized, nil
}

// NormalizeDates normalizes every key, preserving order.
func NormalizeDates(keys []string) ([]string, error) {
	out := make([]string, len(keys))
	for i, k := range keys {
		d, err := NormalizeDate(k)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// Normalize pairs the selected counts with their normalized dates.
func Normalize(sel SelectedSeries) (NormalizedSeries, error) {
	if len(sel.Dates) != len(sel.Counts) {
		return nil, fmt.Errorf("%w: %d dates for %d counts", ErrDateFormat, len(sel.Dates), len(sel.Counts))
	}
	dates, err := NormalizeDates(sel.Dates)
	if err != nil {
		return nil, err
	}
	series := make(NormalizedSeries, len(dates))
	for i, d := range dates {
		series[i] = Point{Date: d, Cases: sel.Counts[i]}
	}
	return series, nil
}

// ParseSeriesDate parses a normalized date key into a UTC midnight time.
func ParseSeriesDate(s string) (time.Time, error) {
	t, err := time.Parse(SeriesDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrDateFormat, s, err)
	}
	return t, nil
}

// isShortNumber reports whether s is one or two ASCII digits.
func isShortNumber(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
