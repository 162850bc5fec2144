package engine

import (
	"sync"
	"time"

	"github.com/tidemarsh/floodwatch/internal/domain"
)

// Registry holds the authoritative fleet state: station records in
// descriptor order, one reading series per station, the bounded alert log,
// and the time of the last completed cycle. Cycles mutate it under the
// write lock; Snapshot and the query helpers copy under the read lock, so
// consumers only ever observe fully pre- or post-cycle state.
type Registry struct {
	mu          sync.RWMutex
	order       []string
	stations    map[string]domain.Station
	series      map[string][]domain.SeriesPoint
	alertLog    []domain.AlertEvent
	lastUpdated time.Time
}

// NewRegistry returns an empty registry. Initialize must run before the
// first cycle.
func NewRegistry() *Registry {
	return &Registry{
		stations: make(map[string]domain.Station),
		series:   make(map[string][]domain.SeriesPoint),
	}
}

// Initialize seeds the fleet from its descriptors. Each station starts at a
// random level with prevLevel equal to it, status ok, and an empty series.
// Descriptor order fixes the processing and reporting order for the whole
// session.
func (r *Registry) Initialize(descs []domain.StationDescriptor, rng domain.Source) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = make([]string, 0, len(descs))
	for _, d := range descs {
		r.order = append(r.order, d.ID)
		r.stations[d.ID] = domain.NewStation(d, rng)
		r.series[d.ID] = nil
	}
}

// Len returns the fleet size.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Snapshot returns a deep copy of the current view.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() Snapshot {
	stations := make([]domain.Station, 0, len(r.order))
	online := 0
	for _, id := range r.order {
		st := r.stations[id]
		if st.Online {
			online++
		}
		stations = append(stations, st)
	}

	series := make(map[string][]domain.SeriesPoint, len(r.series))
	for id, pts := range r.series {
		series[id] = append([]domain.SeriesPoint(nil), pts...)
	}

	recent := r.alertLog
	if len(recent) > maxRecentAlerts {
		recent = recent[:maxRecentAlerts]
	}

	return Snapshot{
		TotalStations: len(stations),
		OnlineCount:   online,
		AlertLogSize:  len(r.alertLog),
		LastUpdated:   r.lastUpdated,
		Stations:      stations,
		Series:        series,
		RecentAlerts:  append([]domain.AlertEvent(nil), recent...),
	}
}

// Alerts returns a copy of up to limit entries from the head of the
// most-recent-first alert log. A limit of zero or less, or beyond the log
// size, returns the whole log.
func (r *Registry) Alerts(limit int) []domain.AlertEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.alertLog) {
		limit = len(r.alertLog)
	}
	return append([]domain.AlertEvent(nil), r.alertLog[:limit]...)
}

// SeriesFor returns a copy of one station's reading series. ok is false for
// an unknown station id.
func (r *Registry) SeriesFor(id string) ([]domain.SeriesPoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pts, ok := r.series[id]
	if !ok {
		return nil, false
	}
	return append([]domain.SeriesPoint(nil), pts...), true
}
