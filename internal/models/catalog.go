package models

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Meter domains. Every meter is clamped to its closed interval after each mutation.
const (
	MinTemperature  = 65
	MaxTemperature  = 100
	MinBiodiversity = 0
	MaxBiodiversity = 100
	MinCommunity    = 0
	MaxCommunity    = 100
	MinResources    = 0
	MaxResources    = 150
)

// ErrInvalidCatalog is wrapped by every validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// DefaultCatalog returns a fresh copy of the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog from path. An empty path selects the embedded default.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the load-time invariants of the catalog and reports all
// violations at once.
func (c *Catalog) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidCatalog}, args...)...))
	}

	r := c.Rules
	if !within(r.Start.Temperature, MinTemperature, MaxTemperature) {
		bad("starting temperature %d outside [%d, %d]", r.Start.Temperature, MinTemperature, MaxTemperature)
	}
	if !within(r.Start.Biodiversity, MinBiodiversity, MaxBiodiversity) {
		bad("starting biodiversity %d outside [%d, %d]", r.Start.Biodiversity, MinBiodiversity, MaxBiodiversity)
	}
	if !within(r.Start.Community, MinCommunity, MaxCommunity) {
		bad("starting community %d outside [%d, %d]", r.Start.Community, MinCommunity, MaxCommunity)
	}
	if !within(r.Start.Resources, MinResources, MaxResources) {
		bad("starting resources %d outside [%d, %d]", r.Start.Resources, MinResources, MaxResources)
	}
	if r.SeasonSeconds <= 0 {
		bad("season_seconds must be positive, got %d", r.SeasonSeconds)
	}
	if r.SeasonStipend < 0 {
		bad("season_stipend must not be negative, got %d", r.SeasonStipend)
	}
	if r.InteractRadius <= 0 {
		bad("interact_radius must be positive, got %d", r.InteractRadius)
	}
	if r.WorldBound <= 0 {
		bad("world_bound must be positive, got %d", r.WorldBound)
	}

	if len(c.Seasons) == 0 {
		bad("no seasons")
	}
	for i, s := range c.Seasons {
		if s.Name == "" {
			bad("season %d has no name", i)
		}
	}

	if len(c.Archetypes) == 0 {
		bad("no archetypes")
	}
	seen := make(map[LocationType]bool)
	for _, a := range c.Archetypes {
		if !a.Type.Valid() {
			bad("unknown archetype type %q", a.Type)
		}
		if seen[a.Type] {
			bad("duplicate archetype type %q", a.Type)
		}
		seen[a.Type] = true
		if len(a.Scenarios) == 0 {
			bad("archetype %q has no scenarios", a.Type)
		}
		for si, s := range a.Scenarios {
			if len(s.Options) == 0 {
				bad("%s scenario %d (%q) has no options", a.Type, si, s.Title)
			}
			for oi, o := range s.Options {
				if o.Title == "" {
					bad("%s scenario %d option %d has no title", a.Type, si, oi)
				}
				if o.Cost < 0 {
					bad("%s option %q has negative cost %d", a.Type, o.Title, o.Cost)
				}
			}
		}
	}

	if len(c.Placements) == 0 {
		bad("no placements")
	}
	for _, p := range c.Placements {
		if abs(p.X) > r.WorldBound || abs(p.Z) > r.WorldBound {
			bad("placement (%d, %d) outside world bound %d", p.X, p.Z, r.WorldBound)
		}
	}

	return errors.Join(errs...)
}

func within(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
