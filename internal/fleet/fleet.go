// Package fleet supplies the station descriptors the engine monitors,
// either from an operator-provided JSON file or from the built-in default
// fleet.
package fleet

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidemarsh/floodwatch/internal/domain"
)

//go:embed fleet.json
var defaultFleet []byte

// Load returns the station descriptors from path, or the embedded default
// fleet when path is empty. Any failure is fatal to startup: the engine
// never runs without a valid fleet.
func Load(path string) ([]domain.StationDescriptor, error) {
	data := defaultFleet
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read stations file: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates a descriptor list: it must be non-empty with
// unique, non-empty ids and non-empty names.
func Parse(data []byte) ([]domain.StationDescriptor, error) {
	var descs []domain.StationDescriptor
	if err := json.Unmarshal(data, &descs); err != nil {
		return nil, fmt.Errorf("parse stations: %w", err)
	}

	if len(descs) == 0 {
		return nil, errors.New("station list is empty")
	}

	seen := make(map[string]struct{}, len(descs))
	for i, d := range descs {
		if d.ID == "" {
			return nil, fmt.Errorf("station at index %d: missing id", i)
		}
		if d.Name == "" {
			return nil, fmt.Errorf("station %q: missing name", d.ID)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("station %q: duplicate id", d.ID)
		}
		seen[d.ID] = struct{}{}
	}

	return descs, nil
}
