// Command genfleet generates station fleet fixtures for floodwatchd and
// the test suites. Output is validated with the same checks the daemon
// applies to STATIONS_FILE at startup.
//
// Usage:
//
//	go run ./cmd/genfleet -count 25 -out testdata/fleet_large.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/tidemarsh/floodwatch/internal/domain"
	"github.com/tidemarsh/floodwatch/internal/fleet"
)

var waterways = []string{
	"Alder Creek",
	"Sorrel River",
	"Kestrel Slough",
	"Bray River",
	"Tidemarsh Canal",
	"Foss Creek",
	"Hollis Fork",
	"Winnow Creek",
	"Pelly Slough",
	"Marrow Creek",
	"Dunn River",
	"Lantern Creek",
	"Vesper River",
	"Gault Fork",
	"Quill Creek",
	"Cutbank Slough",
}

var sites = []string{
	"at Millhaven",
	"at Dunmore",
	"at Point Harrow",
	"below Coldwater Dam",
	"at Lock 4",
	"near Barren Flats",
	"at Ember Bend",
	"above Granton",
	"at Old Mill Road",
	"at Saltway Narrows",
	"at Weir Crossing",
	"at Ferry Landing",
	"below Stone Weir",
	"headwater gauge",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	count := flag.Int("count", 12, "number of stations to generate")
	out := flag.String("out", "", "output path for the fleet JSON file")
	seed := flag.Int64("seed", 1, "generator seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *count < 1 || *count > 999 {
		return fmt.Errorf("count must be between 1 and 999")
	}

	descs := generate(*count, rand.New(rand.NewSource(*seed)))

	data, err := json.MarshalIndent(descs, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	// Generated fixtures must pass the daemon's own startup validation.
	if _, err := fleet.Parse(data); err != nil {
		return fmt.Errorf("generated fleet failed validation: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o600); err != nil {
		return err
	}

	log.Printf("wrote %d stations: %s", len(descs), *out)
	return nil
}

func generate(count int, rng *rand.Rand) []domain.StationDescriptor {
	used := map[string]bool{}
	descs := make([]domain.StationDescriptor, 0, count)

	for i := 0; i < count; i++ {
		name := waterways[rng.Intn(len(waterways))] + " " + sites[rng.Intn(len(sites))]
		if used[name] {
			// Waterway and site combinations run out before 999 stations do.
			name = fmt.Sprintf("%s %d", name, i+1)
		}
		used[name] = true

		descs = append(descs, domain.StationDescriptor{
			ID:   fmt.Sprintf("wl-%03d", i+1),
			Name: name,
			Lat:  round3(45.5 + rng.Float64()*2.0),
			Lon:  round3(-124.0 + rng.Float64()*2.5),
		})
	}
	return descs
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
