package domain

// Default classification thresholds, in meters.
const (
	DefaultAlertLevel   = 1.20
	DefaultSurgePerTick = 0.15

	// watchFraction scales surge-per-tick down to the single-cycle rise
	// that is notable before the absolute threshold is reached.
	watchFraction = 0.75
)

// Thresholds hold the classification cut lines.
type Thresholds struct {
	AlertLevel   float64 // absolute level at or above which a station is alert
	SurgePerTick float64 // expected full-surge rise per cycle
}

// DefaultThresholds returns the standard cut lines (alert 1.20, surge 0.15).
func DefaultThresholds() Thresholds {
	return Thresholds{AlertLevel: DefaultAlertLevel, SurgePerTick: DefaultSurgePerTick}
}

// WatchDelta is the single-cycle rise that classifies as watch.
func (t Thresholds) WatchDelta() float64 {
	return t.SurgePerTick * watchFraction
}

// Classify maps a (level, prevLevel) pair to a status. The alert condition
// is checked first and is exclusive with watch: a station at or above the
// absolute threshold is alert even when its delta also qualifies.
func Classify(level, prevLevel float64, t Thresholds) Status {
	switch {
	case level >= t.AlertLevel:
		return StatusAlert
	case level-prevLevel >= t.WatchDelta():
		return StatusWatch
	default:
		return StatusOK
	}
}
