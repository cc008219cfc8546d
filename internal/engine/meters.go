package engine

import (
	"errors"

	"github.com/tatianab/climate-quest/internal/models"
)

var (
	// ErrInsufficientResources is returned when an option costs more than the
	// resources on hand. It is an expected outcome, not a failure.
	ErrInsufficientResources = errors.New("insufficient resources")

	// ErrFrozen is returned by mutations attempted after the game has ended.
	ErrFrozen = errors.New("game is over")
)

// Delta is the single unit of meter mutation. A negative ResourceCost grants resources.
type Delta struct {
	Temp         int
	Bio          int
	Community    int
	ResourceCost int
}

// Store holds the four global meters and the season clock.
//
// ApplyDelta is the only way meters change; every call leaves all four
// meters inside their domains.
type Store struct {
	meters      models.Meters
	seasonIndex int
	seasonTimer int
	frozen      bool
}

// NewStore returns a store initialised from the catalog's starting values.
func NewStore(rules models.Rules) *Store {
	s := &Store{
		meters: models.Meters{
			Temperature:  rules.Start.Temperature,
			Biodiversity: rules.Start.Biodiversity,
			Community:    rules.Start.Community,
			Resources:    rules.Start.Resources,
		},
		seasonTimer: rules.SeasonSeconds,
	}
	s.clamp()
	return s
}

// Meters returns a snapshot of the current meter values.
func (s *Store) Meters() models.Meters {
	return s.meters
}

func (s *Store) SeasonIndex() int { return s.seasonIndex }
func (s *Store) SeasonTimer() int { return s.seasonTimer }
func (s *Store) Frozen() bool     { return s.frozen }

// Freeze makes the store read-only. It cannot be undone; a restart builds a new store.
func (s *Store) Freeze() {
	s.frozen = true
}

// ApplyDelta charges d.ResourceCost and applies the three meter deltas.
// Nothing changes when the store is frozen or the cost cannot be covered.
func (s *Store) ApplyDelta(d Delta) error {
	if s.frozen {
		return ErrFrozen
	}
	if s.meters.Resources < d.ResourceCost {
		return ErrInsufficientResources
	}

	s.meters.Resources -= d.ResourceCost
	s.meters.Temperature += d.Temp
	s.meters.Biodiversity += d.Bio
	s.meters.Community += d.Community
	s.clamp()
	return nil
}

func (s *Store) clamp() {
	s.meters.Temperature = clamp(s.meters.Temperature, models.MinTemperature, models.MaxTemperature)
	s.meters.Biodiversity = clamp(s.meters.Biodiversity, models.MinBiodiversity, models.MaxBiodiversity)
	s.meters.Community = clamp(s.meters.Community, models.MinCommunity, models.MaxCommunity)
	s.meters.Resources = clamp(s.meters.Resources, models.MinResources, models.MaxResources)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
