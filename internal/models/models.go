package models

// LocationType tags which kind of landmark an archetype describes.
type LocationType string

const (
	LocationBackyard LocationType = "backyard"
	LocationPark     LocationType = "park"
	LocationStreet   LocationType = "street"
	LocationBuilding LocationType = "building"
	LocationWaterway LocationType = "waterway"
)

// Valid reports whether t is one of the known landmark kinds.
func (t LocationType) Valid() bool {
	switch t {
	case LocationBackyard, LocationPark, LocationStreet, LocationBuilding, LocationWaterway:
		return true
	}
	return false
}

// Effects are the meter deltas an option applies. Values may be negative.
type Effects struct {
	Temp      int `yaml:"temp"`
	Bio       int `yaml:"bio"`
	Community int `yaml:"community"`
}

// Option is one selectable resolution of a scenario.
type Option struct {
	Title       string  `yaml:"title"`
	Icon        string  `yaml:"icon,omitempty"`
	Description string  `yaml:"description"`
	Cost        int     `yaml:"cost"`
	Effects     Effects `yaml:"effects"`
	Message     string  `yaml:"message"`
	Risks       string  `yaml:"risks,omitempty"`
}

// Scenario is a narrative decision point offered by a location.
type Scenario struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Context     string   `yaml:"context"`
	Options     []Option `yaml:"options"`
}

// Archetype is a location category: a name, an icon and an ordered list of scenarios.
type Archetype struct {
	Type      LocationType `yaml:"type"`
	Name      string       `yaml:"name"`
	Icon      string       `yaml:"icon"`
	Glyph     string       `yaml:"glyph"` // single-cell map marker
	Color     string       `yaml:"color"` // hex color used by the map renderer
	Scenarios []Scenario   `yaml:"scenarios"`
}

// Season is one phase of the year. TempModifier is applied once when the season begins.
type Season struct {
	Name         string `yaml:"name"`
	Icon         string `yaml:"icon"`
	TempModifier int    `yaml:"temp_modifier"`
	Color        string `yaml:"color"`
}

// Position is a point on the ground plane of the world.
type Position struct {
	X int `yaml:"x"`
	Z int `yaml:"z"`
}

// StartingMeters are the meter values a new game begins with.
type StartingMeters struct {
	Temperature  int `yaml:"temperature"`
	Biodiversity int `yaml:"biodiversity"`
	Community    int `yaml:"community"`
	Resources    int `yaml:"resources"`
}

// Rules holds the balance constants that are not tied to a single scenario.
type Rules struct {
	Start          StartingMeters `yaml:"start"`
	SeasonSeconds  int            `yaml:"season_seconds"`
	SeasonStipend  int            `yaml:"season_stipend"`
	InteractRadius int            `yaml:"interact_radius"`
	WorldBound     int            `yaml:"world_bound"`
	Trees          int            `yaml:"trees"`
	TreeClearance  int            `yaml:"tree_clearance"`
}

// Catalog is the load-time table of everything the game is balanced on.
// It is read-only once loaded.
type Catalog struct {
	Rules      Rules       `yaml:"rules"`
	Seasons    []Season    `yaml:"seasons"`
	Archetypes []Archetype `yaml:"archetypes"`
	Placements []Position  `yaml:"placements"` // archetypes are cycled across placements
}

// Archetype returns the archetype with the given type tag.
func (c *Catalog) Archetype(t LocationType) (*Archetype, bool) {
	for i := range c.Archetypes {
		if c.Archetypes[i].Type == t {
			return &c.Archetypes[i], true
		}
	}
	return nil, false
}

// Meters is a plain snapshot of the four global meters.
type Meters struct {
	Temperature  int `yaml:"temperature"`
	Biodiversity int `yaml:"biodiversity"`
	Community    int `yaml:"community"`
	Resources    int `yaml:"resources"`
}

// HistoryEntry records a single resolved decision or season change.
type HistoryEntry struct {
	At       string  `yaml:"at"`
	Kind     string  `yaml:"kind"` // "decision" or "season"
	Location string  `yaml:"location,omitempty"`
	Scenario string  `yaml:"scenario,omitempty"`
	Option   string  `yaml:"option,omitempty"`
	Cost     int     `yaml:"cost,omitempty"`
	Effects  Effects `yaml:"effects,omitempty"`
	Season   string  `yaml:"season,omitempty"`
	Outcome  string  `yaml:"outcome"`
	Status   string  `yaml:"status"` // "PLAYING", "WON", "LOST"
	Meters   Meters  `yaml:"meters"`
}

// RunJournal is the record of one finished (or abandoned) game.
type RunJournal struct {
	StartedAt       string         `yaml:"started_at"`
	EndedAt         string         `yaml:"ended_at,omitempty"`
	Status          string         `yaml:"status"`
	Reason          string         `yaml:"reason,omitempty"`
	SeasonsSurvived int            `yaml:"seasons_survived"`
	LocationsHelped int            `yaml:"locations_helped"`
	TotalLocations  int            `yaml:"total_locations"`
	Achievements    []string       `yaml:"achievements,omitempty"`
	Final           Meters         `yaml:"final"`
	Entries         []HistoryEntry `yaml:"entries"`
}
