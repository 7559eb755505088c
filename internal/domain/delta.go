package domain

// DeriveDeltas returns |c[i] - c[i-1]| for each consecutive pair, keyed by
// the later date. The result has one fewer entry than the input and is
// empty for inputs shorter than two points.
func DeriveDeltas(series NormalizedSeries) DeltaSeries {
	if len(series) < 2 {
		return DeltaSeries{}
	}
	out := make(DeltaSeries, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		out = append(out, Point{
			Date:  series[i].Date,
			Cases: absDiff(series[i].Cases, series[i-1].Cases),
		})
	}
	return out
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
