package engine

import (
	"github.com/tatianab/climate-quest/internal/models"
)

// ClockState is the run state of the season timer.
type ClockState int

const (
	ClockActive ClockState = iota
	ClockPaused
	ClockStopped // terminal; never leaves this state
)

func (s ClockState) String() string {
	switch s {
	case ClockActive:
		return "active"
	case ClockPaused:
		return "paused"
	case ClockStopped:
		return "stopped"
	}
	return "unknown"
}

// SeasonEvent describes what a tick did.
type SeasonEvent struct {
	Ticked   bool // the timer was decremented
	Advanced bool // a new season began
	Finished bool // the last season ended; the game is won
	Season   models.Season
	Index    int
	Stipend  int
}

// SeasonController counts the season timer down one second per tick and
// rolls the store over to the next season when it expires.
type SeasonController struct {
	store   *Store
	seasons []models.Season
	length  int
	stipend int
	state   ClockState
}

func NewSeasonController(store *Store, seasons []models.Season, rules models.Rules) *SeasonController {
	return &SeasonController{
		store:   store,
		seasons: seasons,
		length:  rules.SeasonSeconds,
		stipend: rules.SeasonStipend,
		state:   ClockActive,
	}
}

func (c *SeasonController) State() ClockState { return c.state }

// Current returns the season the store is in.
func (c *SeasonController) Current() models.Season {
	i := c.store.SeasonIndex()
	if i >= len(c.seasons) {
		i = len(c.seasons) - 1
	}
	return c.seasons[i]
}

func (c *SeasonController) Pause() {
	if c.state == ClockActive {
		c.state = ClockPaused
	}
}

func (c *SeasonController) Resume() {
	if c.state == ClockPaused {
		c.state = ClockActive
	}
}

// Stop halts the timer permanently.
func (c *SeasonController) Stop() {
	c.state = ClockStopped
}

// Tick is the one-second heartbeat. It does nothing unless the clock is active.
func (c *SeasonController) Tick() SeasonEvent {
	if c.state != ClockActive || c.store.Frozen() {
		return SeasonEvent{}
	}
	c.store.seasonTimer--
	if c.store.seasonTimer > 0 {
		return SeasonEvent{Ticked: true, Index: c.store.seasonIndex}
	}
	ev := c.AdvanceSeason()
	ev.Ticked = true
	return ev
}

// AdvanceSeason ends the current season. Past the last season the game is
// won and the clock stops; otherwise the timer resets and the new season's
// temperature modifier and resource stipend are applied.
func (c *SeasonController) AdvanceSeason() SeasonEvent {
	if c.state == ClockStopped || c.store.Frozen() {
		return SeasonEvent{}
	}

	c.store.seasonIndex++
	if c.store.seasonIndex >= len(c.seasons) {
		c.store.seasonTimer = 0
		c.Stop()
		return SeasonEvent{Finished: true, Index: c.store.seasonIndex}
	}

	season := c.seasons[c.store.seasonIndex]
	c.store.seasonTimer = c.length
	// A negative cost is a grant, so the affordability check always passes.
	if err := c.store.ApplyDelta(Delta{Temp: season.TempModifier, ResourceCost: -c.stipend}); err != nil {
		return SeasonEvent{}
	}
	return SeasonEvent{
		Advanced: true,
		Season:   season,
		Index:    c.store.seasonIndex,
		Stipend:  c.stipend,
	}
}
