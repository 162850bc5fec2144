package domain

import "time"

// NewAlertEvent captures a station's surfaced transition at the given cycle
// time. The delta is rounded to two decimals like the level itself.
func NewAlertEvent(st Station, at time.Time) AlertEvent {
	return AlertEvent{
		Timestamp:   at,
		StationID:   st.ID,
		StationName: st.Name,
		Kind:        st.Status,
		Level:       st.Level,
		Delta:       round2(st.Level - st.PrevLevel),
	}
}

// PrependAlerts places a cycle's events, in station processing order, at the
// head of the most-recent-first log and truncates to limit entries. Neither
// input slice is modified.
func PrependAlerts(log, cycle []AlertEvent, limit int) []AlertEvent {
	merged := make([]AlertEvent, 0, len(cycle)+len(log))
	merged = append(merged, cycle...)
	merged = append(merged, log...)
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
