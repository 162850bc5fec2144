package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlertEvent(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("alert kind with rising delta", func(t *testing.T) {
		st := Station{
			ID:        "wl-09",
			Name:      "Miller Bend",
			Level:     1.25,
			PrevLevel: 1.10,
			Status:    StatusAlert,
		}

		ev := NewAlertEvent(st, at)

		assert.Equal(t, at, ev.Timestamp)
		assert.Equal(t, "wl-09", ev.StationID)
		assert.Equal(t, "Miller Bend", ev.StationName)
		assert.Equal(t, StatusAlert, ev.Kind)
		assert.Equal(t, 1.25, ev.Level)
		assert.Equal(t, 0.15, ev.Delta)
	})

	t.Run("watch kind", func(t *testing.T) {
		st := Station{ID: "wl-02", Name: "East Race", Level: 0.95, PrevLevel: 0.80, Status: StatusWatch}

		ev := NewAlertEvent(st, at)

		assert.Equal(t, StatusWatch, ev.Kind)
		assert.Equal(t, 0.15, ev.Delta)
	})

	t.Run("negative delta rounded", func(t *testing.T) {
		st := Station{ID: "wl-02", Name: "East Race", Level: 1.21, PrevLevel: 1.334, Status: StatusAlert}

		ev := NewAlertEvent(st, at)

		assert.Equal(t, -0.12, ev.Delta)
	})
}

func TestPrependAlerts(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	mkEvent := func(id string, offset int) AlertEvent {
		return AlertEvent{
			Timestamp: at.Add(time.Duration(offset) * 5 * time.Second),
			StationID: id,
			Kind:      StatusWatch,
		}
	}

	t.Run("cycle events lead in processing order", func(t *testing.T) {
		log := []AlertEvent{mkEvent("old-1", 0)}
		cycle := []AlertEvent{mkEvent("new-a", 1), mkEvent("new-b", 1)}

		merged := PrependAlerts(log, cycle, MaxAlertLogEntries)

		require.Len(t, merged, 3)
		assert.Equal(t, "new-a", merged[0].StationID)
		assert.Equal(t, "new-b", merged[1].StationID)
		assert.Equal(t, "old-1", merged[2].StationID)
	})

	t.Run("oldest evicted past the cap", func(t *testing.T) {
		log := []AlertEvent{mkEvent("b", 2), mkEvent("c", 1), mkEvent("d", 0)}
		cycle := []AlertEvent{mkEvent("a", 3)}

		merged := PrependAlerts(log, cycle, 3)

		require.Len(t, merged, 3)
		assert.Equal(t, "a", merged[0].StationID)
		assert.Equal(t, "c", merged[2].StationID)
	})

	t.Run("empty cycle leaves log unchanged", func(t *testing.T) {
		log := []AlertEvent{mkEvent("only", 0)}

		merged := PrependAlerts(log, nil, MaxAlertLogEntries)

		assert.Empty(t, cmp.Diff(log, merged))
	})

	t.Run("inputs not modified", func(t *testing.T) {
		log := []AlertEvent{mkEvent("x", 0), mkEvent("y", 1)}
		cycle := []AlertEvent{mkEvent("z", 2)}
		logBefore := append([]AlertEvent(nil), log...)
		cycleBefore := append([]AlertEvent(nil), cycle...)

		_ = PrependAlerts(log, cycle, 2)

		assert.Empty(t, cmp.Diff(logBefore, log))
		assert.Empty(t, cmp.Diff(cycleBefore, cycle))
	})
}

func TestPrependAlerts_LogStabilizesAtCap(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	var log []AlertEvent
	for i := range 250 {
		ev := AlertEvent{
			Timestamp: at.Add(time.Duration(i) * 5 * time.Second),
			StationID: fmt.Sprintf("wl-%03d", i),
			Kind:      StatusAlert,
		}
		log = PrependAlerts(log, []AlertEvent{ev}, MaxAlertLogEntries)
	}

	require.Len(t, log, MaxAlertLogEntries)
	// Newest first: the head is cycle 249, the tail is cycle 50; 0–49 evicted.
	assert.Equal(t, "wl-249", log[0].StationID)
	assert.Equal(t, "wl-050", log[len(log)-1].StationID)
}
