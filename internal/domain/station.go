package domain

import "time"

// Buffer caps. Both are count-based; eviction drops the oldest entries.
const (
	MaxAlertLogEntries = 200
	MaxSeriesPoints    = 60
)

// Status is a station's discrete classification.
type Status string

const (
	StatusOK    Status = "ok"
	StatusWatch Status = "watch"
	StatusAlert Status = "alert"
)

// StationDescriptor is the immutable identity a fleet source supplies at
// startup. Lat/Lon are optional and passed through untouched for map
// renderers.
type StationDescriptor struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat,omitempty"`
	Lon  float64 `json:"lon,omitempty"`
}

// Station holds one gauge's live fields. Owned by the registry; mutated
// only inside a cycle.
type Station struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat,omitempty"`
	Lon       float64 `json:"lon,omitempty"`
	Level     float64 `json:"level"`
	PrevLevel float64 `json:"prev_level"`
	Online    bool    `json:"online"`
	Status    Status  `json:"status"`
}

// AlertEvent records one surfaced transition. Immutable once created.
type AlertEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	StationID   string    `json:"station_id"`
	StationName string    `json:"station_name"`
	Kind        Status    `json:"kind"`
	Level       float64   `json:"level"`
	Delta       float64   `json:"delta"`
}

// SeriesPoint is one sample in a station's rolling trend series.
type SeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Status    Status    `json:"status"`
}
