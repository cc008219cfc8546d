package engine

import (
	"math"

	"github.com/tatianab/climate-quest/internal/models"
)

// Location is a placed, stateful occurrence of an archetype.
type Location struct {
	ID        int
	Archetype *models.Archetype
	Position  models.Position

	scenarioIndex int
	completed     bool
}

func (l *Location) Name() string       { return l.Archetype.Name }
func (l *Location) ScenarioIndex() int { return l.scenarioIndex }
func (l *Location) Completed() bool    { return l.completed }

// CurrentScenario returns the scenario waiting at this location, or false
// once every scenario has been resolved.
func (l *Location) CurrentScenario() (*models.Scenario, bool) {
	if l.completed || l.scenarioIndex >= len(l.Archetype.Scenarios) {
		return nil, false
	}
	return &l.Archetype.Scenarios[l.scenarioIndex], true
}

// advance moves the scenario cursor and marks the location completed when
// the last scenario has been resolved.
func (l *Location) advance() {
	if l.completed {
		return
	}
	l.scenarioIndex++
	if l.scenarioIndex >= len(l.Archetype.Scenarios) {
		l.completed = true
	}
}

// Registry holds every location instance placed in the world.
type Registry struct {
	locations []*Location
}

// NewRegistry places one location per catalog placement, cycling through the archetypes.
func NewRegistry(c *models.Catalog) *Registry {
	r := &Registry{}
	if len(c.Archetypes) == 0 {
		return r
	}
	for i, pos := range c.Placements {
		r.locations = append(r.locations, &Location{
			ID:        i,
			Archetype: &c.Archetypes[i%len(c.Archetypes)],
			Position:  pos,
		})
	}
	return r
}

// Get returns the location with the given id.
func (r *Registry) Get(id int) (*Location, bool) {
	if id < 0 || id >= len(r.locations) {
		return nil, false
	}
	return r.locations[id], true
}

// All returns the locations in placement order. Callers must not modify the slice.
func (r *Registry) All() []*Location {
	return r.locations
}

func (r *Registry) Len() int {
	return len(r.locations)
}

func (r *Registry) CompletedCount() int {
	n := 0
	for _, l := range r.locations {
		if l.completed {
			n++
		}
	}
	return n
}

// Nearest returns the closest location that is not completed and lies
// strictly within radius of pos.
func (r *Registry) Nearest(pos models.Position, radius float64) (*Location, bool) {
	var nearest *Location
	best := math.Inf(1)
	for _, l := range r.locations {
		if l.completed {
			continue
		}
		d := Distance(pos, l.Position)
		if d < radius && d < best {
			best = d
			nearest = l
		}
	}
	return nearest, nearest != nil
}

// Distance is the euclidean distance between two points on the ground plane.
func Distance(a, b models.Position) float64 {
	dx := float64(a.X - b.X)
	dz := float64(a.Z - b.Z)
	return math.Sqrt(dx*dx + dz*dz)
}
