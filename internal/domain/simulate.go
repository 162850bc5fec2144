package domain

import "math"

// Simulation model constants. See the package documentation for the full
// reading model.
const (
	driftBias         = 0.45 // subtracted from U(0,1); >0.5 would bias upward
	driftSpan         = 0.08 // width multiplier of the base drift term
	surgeProbability  = 0.08
	surgeMax          = 0.18 // upper bound of the one-sided surge addition
	onlineProbability = 0.98

	initLevelMin = 0.7
	initLevelMax = 1.1
)

// NewStation seeds a station from its descriptor: a uniformly random level
// in [0.7, 1.1), prevLevel equal to it, status ok, online.
func NewStation(d StationDescriptor, rng Source) Station {
	level := round2(initLevelMin + rng.Float64()*(initLevelMax-initLevelMin))
	return Station{
		ID:        d.ID,
		Name:      d.Name,
		Lat:       d.Lat,
		Lon:       d.Lon,
		Level:     level,
		PrevLevel: level,
		Online:    true,
		Status:    StatusOK,
	}
}

// AdvanceReading applies one simulation step: remembers the previous level,
// draws the biased delta plus an occasional surge, clamps and rounds the new
// level, and flips the online coin. Draw order is fixed (drift, surge gate,
// surge amount when the gate passes, online) so scripted sources replay
// exactly.
func AdvanceReading(st Station, rng Source) Station {
	st.PrevLevel = st.Level

	delta := (rng.Float64() - driftBias) * driftSpan
	if rng.Float64() < surgeProbability {
		delta += rng.Float64() * surgeMax
	}

	st.Level = max(0, round2(st.Level+delta))
	st.Online = rng.Float64() < onlineProbability
	return st
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
