// floodwatch-top is a terminal dashboard over an in-process simulation
// engine. It runs the same cycle loop as floodwatchd without the HTTP
// and Kafka surfaces.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/tidemarsh/floodwatch/internal/domain"
	"github.com/tidemarsh/floodwatch/internal/engine"
	"github.com/tidemarsh/floodwatch/internal/fleet"
	"github.com/tidemarsh/floodwatch/internal/observability"
	"github.com/tidemarsh/floodwatch/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	period := flag.Duration("period", 5*time.Second, "Time between simulation cycles")
	seed := flag.Int64("seed", 0, "Simulation seed (0 = derive from current time)")
	stations := flag.String("stations", "", "Path to a station fleet JSON file (default: built-in fleet)")
	flag.Parse()

	if *period <= 0 {
		return errors.New("period must be positive")
	}

	descriptors, err := fleet.Load(*stations)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so engine logs are discarded.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetrics()

	rng := domain.NewSource(*seed)
	registry := engine.NewRegistry()
	registry.Initialize(descriptors, rng)

	sched := engine.New(registry, rng, domain.DefaultThresholds(), *period, nil, clockwork.NewRealClock(), logger, metrics)
	frames := sched.Subscribe()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() { _ = sched.Run(ctx) }()

	p := tea.NewProgram(tui.NewModel(frames), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
