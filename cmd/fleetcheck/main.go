// Command fleetcheck validates a station fleet file the way floodwatchd
// will consume it: structural checks on the descriptors, then a dry run
// of the real simulation engine with every published snapshot verified
// against the classifier and buffer caps.
//
// Usage:
//
//	go run ./cmd/fleetcheck -file deploy/fleet.json -cycles 50
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/jonboulle/clockwork"

	"github.com/tidemarsh/floodwatch/internal/domain"
	"github.com/tidemarsh/floodwatch/internal/engine"
	"github.com/tidemarsh/floodwatch/internal/fleet"
	"github.com/tidemarsh/floodwatch/internal/observability"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "fleet JSON file to check (default: built-in fleet)")
	cycles := flag.Int("cycles", 25, "number of simulation cycles to dry-run")
	seed := flag.Int64("seed", 1, "simulation seed for the dry run")
	flag.Parse()

	if *cycles < 1 {
		fmt.Fprintln(os.Stderr, "FATAL: cycles must be positive")
		os.Exit(1)
	}

	if code := run(*file, *cycles, *seed); code != 0 {
		os.Exit(code)
	}
}

func run(path string, cycles int, seed int64) int {
	fmt.Println("=== Station Fleet Validation ===")
	fmt.Println()

	descs, err := fleet.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateNaming(descs),
		validateGeo(descs),
		dryRun(descs, cycles, seed),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Fleet: %d stations\n", len(descs))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Naming & Identifiers ──
// fleet.Load already rejects missing and duplicate ids; this phase catches
// the mistakes that survive parsing but confuse dashboards and Kafka keys.

func validateNaming(descs []domain.StationDescriptor) *phase {
	p := &phase{name: "Phase 1: Naming & Identifiers"}

	names := map[string]string{}
	for i, d := range descs {
		if d.ID != strings.TrimSpace(d.ID) {
			p.errorf("station %d: id %q has surrounding whitespace", i, d.ID)
		}
		if strings.ContainsAny(d.ID, " \t") {
			p.errorf("station %d: id %q contains whitespace", i, d.ID)
		}
		if d.Name != strings.TrimSpace(d.Name) {
			p.errorf("station %d: name %q has surrounding whitespace", i, d.Name)
		}
		if strings.ContainsFunc(d.Name, unicode.IsControl) {
			p.errorf("station %d: name %q contains control characters", i, d.Name)
		}
		if prev, dup := names[d.Name]; dup {
			p.errorf("station %d: name %q duplicates station %s", i, d.Name, prev)
		}
		names[d.Name] = d.ID
	}
	return p
}

// ── Phase 2: Geographic Bounds ──

func validateGeo(descs []domain.StationDescriptor) *phase {
	p := &phase{name: "Phase 2: Geographic Bounds"}

	for _, d := range descs {
		hasLat := d.Lat != 0
		hasLon := d.Lon != 0
		if hasLat != hasLon {
			p.errorf("station %s: only one of lat/lon is set", d.ID)
		}
		if d.Lat < -90 || d.Lat > 90 {
			p.errorf("station %s: lat %g out of range", d.ID, d.Lat)
		}
		if d.Lon < -180 || d.Lon > 180 {
			p.errorf("station %s: lon %g out of range", d.ID, d.Lon)
		}
	}
	return p
}

// ── Phase 3: Engine Dry Run ──
// Runs the real engine over the fleet and re-derives each station's status
// with the real classifier, so a fleet that parses but breaks simulation
// invariants fails here rather than in production.

func dryRun(descs []domain.StationDescriptor, cycles int, seed int64) *phase {
	p := &phase{name: fmt.Sprintf("Phase 3: Engine Dry Run (%d cycles)", cycles)}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := observability.NewMetrics()
	thresholds := domain.DefaultThresholds()

	rng := domain.NewSource(seed)
	reg := engine.NewRegistry()
	reg.Initialize(descs, rng)

	sched := engine.New(reg, rng, thresholds, time.Millisecond, nil, clockwork.NewRealClock(), logger, metrics)
	frames := sched.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sched.Run(ctx) }()

	for i := 0; i < cycles; i++ {
		select {
		case snap := <-frames:
			checkFrame(p, i, snap, len(descs), thresholds)
		case <-time.After(5 * time.Second):
			p.errorf("frame %d: timed out waiting for a snapshot", i)
			return p
		}
	}
	return p
}

func checkFrame(p *phase, i int, snap engine.Snapshot, fleetSize int, th domain.Thresholds) {
	if snap.TotalStations != fleetSize {
		p.errorf("frame %d: snapshot has %d stations, fleet has %d", i, snap.TotalStations, fleetSize)
	}
	if snap.LastUpdated.IsZero() {
		p.errorf("frame %d: lastUpdated is zero", i)
	}
	if snap.AlertLogSize > domain.MaxAlertLogEntries {
		p.errorf("frame %d: alert log size %d exceeds cap %d", i, snap.AlertLogSize, domain.MaxAlertLogEntries)
	}

	for _, st := range snap.Stations {
		if st.Level < 0 {
			p.errorf("frame %d: station %s level %.2f below zero", i, st.ID, st.Level)
		}
		if got := domain.Classify(st.Level, st.PrevLevel, th); got != st.Status {
			p.errorf("frame %d: station %s has status %q, classifier says %q", i, st.ID, st.Status, got)
		}
	}

	for id, series := range snap.Series {
		if len(series) > domain.MaxSeriesPoints {
			p.errorf("frame %d: station %s series has %d points, cap is %d", i, id, len(series), domain.MaxSeriesPoints)
		}
		for j := 1; j < len(series); j++ {
			if series[j].Timestamp.Before(series[j-1].Timestamp) {
				p.errorf("frame %d: station %s series not chronological at point %d", i, id, j)
			}
		}
	}
}
