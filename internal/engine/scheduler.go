package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tidemarsh/floodwatch/internal/domain"
	"github.com/tidemarsh/floodwatch/internal/observability"
)

// AlertSink receives each cycle's fresh alert events, for example a Kafka
// forwarder. Sink errors are logged and counted but never fail a cycle.
type AlertSink interface {
	PublishAlerts(ctx context.Context, events []domain.AlertEvent) error
}

// Scheduler drives the fixed-period update cycle over the registry:
// simulate, classify, record alerts, append series points, publish a
// snapshot. It is the registry's only mutator. The timer for the next cycle
// is armed only after the current cycle has published, so cycles never
// overlap.
type Scheduler struct {
	registry   *Registry
	rng        domain.Source
	thresholds domain.Thresholds
	period     time.Duration
	sink       AlertSink
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics

	ready   atomic.Bool
	running atomic.Bool

	subMu sync.Mutex
	subs  []chan Snapshot
}

// New creates a Scheduler over an initialized registry.
func New(
	registry *Registry,
	rng domain.Source,
	thresholds domain.Thresholds,
	period time.Duration,
	sink AlertSink,
	clk clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Scheduler {
	return &Scheduler{
		registry:   registry,
		rng:        rng,
		thresholds: thresholds,
		period:     period,
		sink:       sink,
		clock:      clk,
		logger:     logger,
		metrics:    metrics,
	}
}

// Run executes the bootstrap cycle immediately, then one cycle per period
// until the context is cancelled. It always returns nil; cancellation is
// the normal way to stop.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"period", s.period,
		"stations", s.registry.Len(),
		"alert_level", s.thresholds.AlertLevel,
	)
	s.metrics.EngineRunning.Set(1)
	defer s.metrics.EngineRunning.Set(0)

	s.runCycle(ctx, true)

	for {
		timer := s.clock.NewTimer(s.period)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopping", "reason", ctx.Err())
			return nil
		case <-timer.Chan():
			s.runCycle(ctx, false)
		}
	}
}

// CheckReadiness reports nil once the bootstrap cycle has published, so
// load balancers only route to an engine with a coherent snapshot.
func (s *Scheduler) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("bootstrap cycle has not completed")
	}
	return nil
}

// Subscribe registers a channel that receives every published snapshot for
// the scheduler's lifetime. Sends never block: a subscriber that has not
// drained the previous frame loses the new one.
func (s *Scheduler) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

// runCycle advances every station one tick and publishes the result. The
// registry lock is held across the mutation and the snapshot copy, so
// readers see the cycle as atomic.
func (s *Scheduler) runCycle(ctx context.Context, bootstrap bool) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Error("cycle already in flight, skipping")
		return
	}
	defer s.running.Store(false)

	start := s.clock.Now()
	r := s.registry

	r.mu.Lock()
	var cycleAlerts []domain.AlertEvent
	online := 0
	for _, id := range r.order {
		st, ok := s.advanceStation(r.stations[id])
		r.stations[id] = st
		if st.Online {
			online++
		}
		if ok && !bootstrap && st.Status != domain.StatusOK {
			cycleAlerts = append(cycleAlerts, domain.NewAlertEvent(st, start))
		}
		r.series[id] = domain.AppendPoint(r.series[id], domain.SeriesPoint{
			Timestamp: start,
			Value:     st.Level,
			Status:    st.Status,
		}, domain.MaxSeriesPoints)
	}
	if len(cycleAlerts) > 0 {
		r.alertLog = domain.PrependAlerts(r.alertLog, cycleAlerts, domain.MaxAlertLogEntries)
	}
	r.lastUpdated = start
	snap := r.snapshotLocked()
	r.mu.Unlock()

	s.ready.Store(true)
	s.publish(snap)
	s.forwardAlerts(ctx, cycleAlerts)

	s.metrics.CyclesTotal.Inc()
	s.metrics.CycleDuration.Observe(s.clock.Since(start).Seconds())
	s.metrics.StationsOnline.Set(float64(online))
	s.metrics.AlertLogSize.Set(float64(snap.AlertLogSize))
	for _, ev := range cycleAlerts {
		s.metrics.AlertsEmitted.WithLabelValues(string(ev.Kind)).Inc()
	}

	if len(cycleAlerts) > 0 {
		s.logger.Info("cycle produced alerts",
			"count", len(cycleAlerts),
			"log_size", snap.AlertLogSize,
		)
	}
	s.logger.Debug("cycle complete",
		"bootstrap", bootstrap,
		"online", online,
		"alerts", len(cycleAlerts),
	)
}

// advanceStation runs the pure per-station step, isolating panics so one
// bad station cannot halt the cycle. On failure the station keeps its last
// known state and ok is false, which also suppresses alert emission.
func (s *Scheduler) advanceStation(st domain.Station) (next domain.Station, ok bool) {
	next, ok = st, false
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Warn("station update failed, keeping last state",
				"station_id", st.ID,
				"panic", rec,
			)
			s.metrics.StationErrors.Inc()
			next, ok = st, false
		}
	}()

	next = domain.AdvanceReading(st, s.rng)
	next.Status = domain.Classify(next.Level, next.PrevLevel, s.thresholds)
	return next, true
}

func (s *Scheduler) publish(snap Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			s.metrics.FramesDropped.Inc()
		}
	}
}

// forwardAlerts hands the cycle's fresh events to the sink. The cycle has
// already published by this point, so forwarding problems only log and
// count.
func (s *Scheduler) forwardAlerts(ctx context.Context, events []domain.AlertEvent) {
	if s.sink == nil || len(events) == 0 {
		return
	}

	if err := s.sink.PublishAlerts(ctx, events); err != nil {
		s.logger.Warn("alert forwarding failed", "error", err, "count", len(events))
		s.metrics.ForwardErrors.Inc()
		return
	}
	s.metrics.AlertsForwarded.Add(float64(len(events)))
}
