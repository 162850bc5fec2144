package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tidemarsh/floodwatch/internal/domain"
	"github.com/tidemarsh/floodwatch/internal/engine"
)

// maxAlertsLimit bounds the alerts endpoint's limit parameter to the alert
// log capacity.
const maxAlertsLimit = domain.MaxAlertLogEntries

// defaultAlertsLimit applies when the alerts endpoint is called without a
// limit parameter.
const defaultAlertsLimit = 10

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SnapshotSource provides the engine views the dashboard API serves.
type SnapshotSource interface {
	Snapshot() engine.Snapshot
	Alerts(limit int) []domain.AlertEvent
	SeriesFor(id string) ([]domain.SeriesPoint, bool)
}

// Server exposes health, readiness, metrics, and dashboard API endpoints.
type Server struct {
	httpServer *http.Server
	source     SnapshotSource
	logger     *slog.Logger
}

// NewServer creates the HTTP server. stream handles the WebSocket snapshot
// feed and may be nil to leave the route unregistered.
func NewServer(addr string, ready ReadinessChecker, source SnapshotSource, stream http.Handler, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source: source,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/v1/stations", s.handleStations)
	mux.HandleFunc("GET /api/v1/stations/{id}/series", s.handleSeries)
	mux.HandleFunc("GET /api/v1/alerts", s.handleAlerts)
	if stream != nil {
		mux.Handle("GET /api/v1/stream", stream)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.source.Snapshot())
}

func (s *Server) handleStations(w http.ResponseWriter, _ *http.Request) {
	snap := s.source.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"total":    snap.TotalStations,
		"online":   snap.OnlineCount,
		"stations": snap.Stations,
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	points, ok := s.source.SeriesFor(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown station"})
		return
	}
	if points == nil {
		points = []domain.SeriesPoint{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"station_id": id,
		"points":     points,
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	limit := defaultAlertsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAlertsLimit {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "limit must be an integer between 1 and " + strconv.Itoa(maxAlertsLimit),
			})
			return
		}
		limit = n
	}

	alerts := s.source.Alerts(limit)
	if alerts == nil {
		alerts = []domain.AlertEvent{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort JSON response
}
