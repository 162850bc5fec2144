package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/tidemarsh/floodwatch/internal/adapter/http"
	kafkaadapter "github.com/tidemarsh/floodwatch/internal/adapter/kafka"
	"github.com/tidemarsh/floodwatch/internal/adapter/ws"
	"github.com/tidemarsh/floodwatch/internal/config"
	"github.com/tidemarsh/floodwatch/internal/domain"
	"github.com/tidemarsh/floodwatch/internal/engine"
	"github.com/tidemarsh/floodwatch/internal/fleet"
	"github.com/tidemarsh/floodwatch/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	descriptors, err := fleet.Load(cfg.StationsFile)
	if err != nil {
		logger.Error("failed to load station fleet", "error", err)
		os.Exit(1)
	}

	rng := domain.NewSource(cfg.SimSeed)
	registry := engine.NewRegistry()
	registry.Initialize(descriptors, rng)
	logger.Info("station fleet initialized", "stations", registry.Len(), "seed", cfg.SimSeed)

	// Alert forwarding (feature-flagged via KAFKA_BROKERS).
	var sink engine.AlertSink
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		metrics.ForwarderEnabled.Set(1)
		logger.Info("kafka alert forwarding enabled", "topic", cfg.KafkaAlertsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka alert forwarding disabled")
	}

	thresholds := domain.Thresholds{AlertLevel: cfg.AlertLevel, SurgePerTick: cfg.SurgePerTick}
	sched := engine.New(registry, rng, thresholds, cfg.CyclePeriod, sink, clockwork.NewRealClock(), logger, metrics)

	hub := ws.NewHub(registry.Snapshot, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, sched, registry, hub, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Fan snapshot frames out to websocket clients.
	go hub.Run(ctx, sched.Subscribe())

	// Start the simulation engine.
	go func() {
		if err := sched.Run(ctx); err != nil {
			logger.Error("engine error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
