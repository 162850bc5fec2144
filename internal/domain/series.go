package domain

// AppendPoint adds one sample to a chronological series and evicts the
// oldest past limit points. Points already in the series are never
// rewritten.
func AppendPoint(series []SeriesPoint, p SeriesPoint, limit int) []SeriesPoint {
	series = append(series, p)
	if len(series) > limit {
		series = series[len(series)-limit:]
	}
	return series
}
