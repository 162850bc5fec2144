package engine

import (
	"time"

	"github.com/tidemarsh/floodwatch/internal/domain"
)

// maxRecentAlerts caps the alert list embedded in a snapshot. The full log
// stays queryable through Registry.Alerts.
const maxRecentAlerts = 10

// Snapshot is the consistent read-only view published after each cycle and
// served to dashboards.
type Snapshot struct {
	TotalStations int                             `json:"total_stations"`
	OnlineCount   int                             `json:"online_count"`
	AlertLogSize  int                             `json:"alert_log_size"`
	LastUpdated   time.Time                       `json:"last_updated"`
	Stations      []domain.Station                `json:"stations"`
	Series        map[string][]domain.SeriesPoint `json:"series"`
	RecentAlerts  []domain.AlertEvent             `json:"recent_alerts"`
}
