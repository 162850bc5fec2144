package domain

import "math/rand"

// Source yields the uniform draws the simulator consumes. Satisfied by
// *rand.Rand; tests substitute a scripted sequence for reproducibility.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded pseudo-random source. Seed 0 derives one from
// the current clock so unattended runs differ between launches.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = clock.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
