package engine

import (
	"errors"
	"fmt"

	"github.com/tatianab/climate-quest/internal/models"
)

var (
	ErrLocationCompleted = errors.New("location already completed")
	ErrUnknownOption     = errors.New("option does not belong to the current scenario")
	ErrUnknownLocation   = errors.New("unknown location")
)

// Resolution is what the result modal shows after a decision.
type Resolution struct {
	Location  *Location
	Scenario  *models.Scenario
	Option    *models.Option
	Before    models.Meters
	After     models.Meters
	Completed bool // location finished its last scenario
}

func (r Resolution) Message() string         { return r.Option.Message }
func (r Resolution) Cost() int               { return r.Option.Cost }
func (r Resolution) Effects() models.Effects { return r.Option.Effects }

// Resolve applies option optionIndex of loc's current scenario to the store.
//
// When the option is unaffordable it returns ErrInsufficientResources and
// neither the meters nor the location change. Resolve never retries.
func Resolve(store *Store, loc *Location, optionIndex int) (Resolution, error) {
	scenario, ok := loc.CurrentScenario()
	if !ok {
		return Resolution{}, fmt.Errorf("resolve %s #%d: %w", loc.Name(), loc.ID, ErrLocationCompleted)
	}
	if optionIndex < 0 || optionIndex >= len(scenario.Options) {
		return Resolution{}, fmt.Errorf("resolve %q option %d: %w", scenario.Title, optionIndex, ErrUnknownOption)
	}
	option := &scenario.Options[optionIndex]

	before := store.Meters()
	err := store.ApplyDelta(Delta{
		Temp:         option.Effects.Temp,
		Bio:          option.Effects.Bio,
		Community:    option.Effects.Community,
		ResourceCost: option.Cost,
	})
	if err != nil {
		return Resolution{}, err
	}

	loc.advance()

	return Resolution{
		Location:  loc,
		Scenario:  scenario,
		Option:    option,
		Before:    before,
		After:     store.Meters(),
		Completed: loc.Completed(),
	}, nil
}
