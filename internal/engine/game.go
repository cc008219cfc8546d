// Package engine holds the game state and the rules that change it: the
// meter store, the location registry, decision resolution, the season clock
// and the win/loss evaluator.
//
// A Game is driven by one caller at a time (the TUI update loop or the
// headless simulator) and is not safe for concurrent use.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tatianab/climate-quest/internal/models"
)

// Choice is one option as presented in the decision modal.
type Choice struct {
	Index      int
	Option     *models.Option
	Affordable bool
}

// Prompt is the payload for the decision modal.
type Prompt struct {
	Location *Location
	Scenario *models.Scenario
	Step     int // 1-based scenario number at this location
	Steps    int
	Choices  []Choice
}

// Snapshot is the read-only view the HUD renders every frame.
type Snapshot struct {
	Meters          models.Meters
	Season          models.Season
	SeasonIndex     int
	SeasonCount     int
	TimerSeconds    int
	Clock           ClockState
	Status          Status
	Reason          LossReason
	LocationsHelped int
	TotalLocations  int
}

// Summary is the payload for the win and loss screens.
type Summary struct {
	Status          Status
	Reason          LossReason
	Message         string
	Final           models.Meters
	SeasonsSurvived int
	LocationsHelped int
	TotalLocations  int
	Achievements    []Achievement
}

type GameOption func(*Game)

func WithLogger(l *slog.Logger) GameOption {
	return func(g *Game) { g.logger = l }
}

// WithClock sets the wall clock used for journal timestamps.
func WithClock(now func() time.Time) GameOption {
	return func(g *Game) { g.now = now }
}

// Game ties the store, registry, season controller and evaluator together
// and tracks which overlay, if any, is suspending play.
type Game struct {
	catalog *models.Catalog
	logger  *slog.Logger
	now     func() time.Time

	store    *Store
	registry *Registry
	seasons  *SeasonController
	verdict  Verdict

	prompt     *Location // decision modal open for this location
	resultOpen bool
	held       bool // paused by the presentation (help, command bar)

	journal models.RunJournal
}

// NewGame starts a fresh game from the catalog. The catalog must already be validated.
func NewGame(c *models.Catalog, opts ...GameOption) *Game {
	g := &Game{
		catalog: c,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.store = NewStore(g.catalog.Rules)
	g.registry = NewRegistry(g.catalog)
	g.seasons = NewSeasonController(g.store, g.catalog.Seasons, g.catalog.Rules)
	g.verdict = Verdict{Status: StatusPlaying}
	g.prompt = nil
	g.resultOpen = false
	g.held = false
	g.journal = models.RunJournal{
		StartedAt:      g.timestamp(),
		Status:         StatusPlaying.String(),
		TotalLocations: g.registry.Len(),
	}
	g.logger.Info("game started",
		"locations", g.registry.Len(),
		"seasons", len(g.catalog.Seasons),
		"season_seconds", g.catalog.Rules.SeasonSeconds,
	)
}

// Restart discards all state and begins again from the catalog's starting values.
func (g *Game) Restart() {
	g.logger.Info("game restarted", "previous_status", g.verdict.Status.String())
	g.reset()
}

func (g *Game) Catalog() *models.Catalog { return g.catalog }
func (g *Game) Locations() []*Location   { return g.registry.All() }
func (g *Game) Status() Status           { return g.verdict.Status }

func (g *Game) Location(id int) (*Location, bool) {
	return g.registry.Get(id)
}

// Nearest returns the open location the player at pos can interact with.
func (g *Game) Nearest(pos models.Position) (*Location, bool) {
	return g.registry.Nearest(pos, float64(g.catalog.Rules.InteractRadius))
}

// Active reports whether the world is live: no overlay open and no terminal state.
func (g *Game) Active() bool {
	return g.seasons.State() == ClockActive
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Meters:          g.store.Meters(),
		Season:          g.seasons.Current(),
		SeasonIndex:     g.store.SeasonIndex(),
		SeasonCount:     len(g.catalog.Seasons),
		TimerSeconds:    g.store.SeasonTimer(),
		Clock:           g.seasons.State(),
		Status:          g.verdict.Status,
		Reason:          g.verdict.Reason,
		LocationsHelped: g.registry.CompletedCount(),
		TotalLocations:  g.registry.Len(),
	}
}

// Interact opens the decision modal for a location and pauses the season clock.
func (g *Game) Interact(id int) (Prompt, error) {
	if g.verdict.Status.Terminal() {
		return Prompt{}, ErrFrozen
	}
	loc, ok := g.registry.Get(id)
	if !ok {
		return Prompt{}, fmt.Errorf("interact %d: %w", id, ErrUnknownLocation)
	}
	scenario, ok := loc.CurrentScenario()
	if !ok {
		return Prompt{}, fmt.Errorf("interact %s #%d: %w", loc.Name(), id, ErrLocationCompleted)
	}

	g.prompt = loc
	g.seasons.Pause()

	resources := g.store.Meters().Resources
	p := Prompt{
		Location: loc,
		Scenario: scenario,
		Step:     loc.ScenarioIndex() + 1,
		Steps:    len(loc.Archetype.Scenarios),
	}
	for i := range scenario.Options {
		p.Choices = append(p.Choices, Choice{
			Index:      i,
			Option:     &scenario.Options[i],
			Affordable: resources >= scenario.Options[i].Cost,
		})
	}
	g.logger.Debug("decision opened", "location", loc.Name(), "id", id, "scenario", scenario.Title)
	return p, nil
}

// Choose resolves an option at the location whose prompt is open.
//
// ErrInsufficientResources leaves the prompt open so another option can be
// picked. After the game has ended Choose changes nothing and returns ErrFrozen.
func (g *Game) Choose(id, optionIndex int) (Resolution, error) {
	if g.verdict.Status.Terminal() {
		return Resolution{}, ErrFrozen
	}
	loc, ok := g.registry.Get(id)
	if !ok {
		return Resolution{}, fmt.Errorf("choose at %d: %w", id, ErrUnknownLocation)
	}

	res, err := Resolve(g.store, loc, optionIndex)
	if errors.Is(err, ErrInsufficientResources) {
		g.logger.Info("option rejected",
			"location", loc.Name(),
			"option", optionIndex,
			"resources", g.store.Meters().Resources,
		)
		return Resolution{}, err
	}
	if err != nil {
		return Resolution{}, err
	}

	g.prompt = nil
	g.resultOpen = true
	g.seasons.Pause()

	g.logger.Info("decision resolved",
		"location", loc.Name(),
		"scenario", res.Scenario.Title,
		"option", res.Option.Title,
		"cost", res.Option.Cost,
		"temperature", res.After.Temperature,
		"biodiversity", res.After.Biodiversity,
		"community", res.After.Community,
		"resources", res.After.Resources,
		"completed", res.Completed,
	)

	g.evaluate()
	g.record(models.HistoryEntry{
		Kind:     "decision",
		Location: loc.Name(),
		Scenario: res.Scenario.Title,
		Option:   res.Option.Title,
		Cost:     res.Option.Cost,
		Effects:  res.Option.Effects,
		Outcome:  res.Option.Message,
	})
	return res, nil
}

// Cancel closes the decision modal without choosing.
func (g *Game) Cancel() {
	if g.prompt == nil {
		return
	}
	g.prompt = nil
	g.resume()
}

// Acknowledge closes the result modal.
func (g *Game) Acknowledge() {
	if !g.resultOpen {
		return
	}
	g.resultOpen = false
	g.resume()
}

// Hold pauses the clock for an overlay the engine does not know about.
func (g *Game) Hold() {
	g.held = true
	g.seasons.Pause()
}

func (g *Game) Release() {
	g.held = false
	g.resume()
}

func (g *Game) resume() {
	if g.prompt != nil || g.resultOpen || g.held || g.verdict.Status.Terminal() {
		return
	}
	g.seasons.Resume()
}

// Tick is the one-second heartbeat. It is a no-op while paused or after the game ends.
func (g *Game) Tick() SeasonEvent {
	if g.verdict.Status.Terminal() {
		return SeasonEvent{}
	}
	ev := g.seasons.Tick()
	g.afterSeason(ev)
	return ev
}

// AdvanceSeason ends the current season immediately.
func (g *Game) AdvanceSeason() SeasonEvent {
	if g.verdict.Status.Terminal() {
		return SeasonEvent{}
	}
	ev := g.seasons.AdvanceSeason()
	g.afterSeason(ev)
	return ev
}

func (g *Game) afterSeason(ev SeasonEvent) {
	switch {
	case ev.Finished:
		g.logger.Info("all seasons completed")
		g.end(Verdict{Status: StatusWon})
		g.record(models.HistoryEntry{Kind: "season", Outcome: "All seasons completed"})
	case ev.Advanced:
		g.logger.Info("season changed",
			"season", ev.Season.Name,
			"temp_modifier", ev.Season.TempModifier,
			"stipend", ev.Stipend,
		)
		g.evaluate()
		g.record(models.HistoryEntry{
			Kind:    "season",
			Season:  ev.Season.Name,
			Effects: models.Effects{Temp: ev.Season.TempModifier},
			Cost:    -ev.Stipend,
			Outcome: SeasonAnnouncement(ev.Season, ev.Stipend),
		})
	}
}

// SeasonAnnouncement is the notification text for a season change.
func SeasonAnnouncement(s models.Season, stipend int) string {
	dir := "decreases"
	if s.TempModifier > 0 {
		dir = "increases"
	}
	mod := s.TempModifier
	if mod < 0 {
		mod = -mod
	}
	return fmt.Sprintf("%s has arrived! Temperature %s by %d°F. +%d Resources replenished.", s.Name, dir, mod, stipend)
}

func (g *Game) evaluate() {
	v := Evaluate(g.store.Meters())
	if v.Status == StatusLost {
		g.end(v)
	}
}

// end enters a terminal state: the store freezes and the clock stops for good.
func (g *Game) end(v Verdict) {
	if g.verdict.Status.Terminal() {
		return
	}
	g.verdict = v
	g.store.Freeze()
	g.seasons.Stop()

	s := g.Summary()
	g.journal.EndedAt = g.timestamp()
	g.journal.Status = v.Status.String()
	g.journal.Reason = string(v.Reason)
	g.journal.SeasonsSurvived = s.SeasonsSurvived
	g.journal.LocationsHelped = s.LocationsHelped
	g.journal.Final = s.Final
	g.journal.Achievements = nil
	for _, a := range s.Achievements {
		g.journal.Achievements = append(g.journal.Achievements, a.String())
	}

	g.logger.Info("game over",
		"status", v.Status.String(),
		"reason", string(v.Reason),
		"season", g.store.SeasonIndex(),
		"locations_helped", s.LocationsHelped,
	)
}

// Summary returns the end-screen payload. It is meaningful once Status is terminal.
func (g *Game) Summary() Summary {
	m := g.store.Meters()
	s := Summary{
		Status:          g.verdict.Status,
		Reason:          g.verdict.Reason,
		Final:           m,
		SeasonsSurvived: g.store.SeasonIndex(),
		LocationsHelped: g.registry.CompletedCount(),
		TotalLocations:  g.registry.Len(),
	}
	switch g.verdict.Status {
	case StatusLost:
		s.Message = g.verdict.Reason.Message()
	case StatusWon:
		s.Message = "You guided the neighborhood through a full year of climate action!"
		s.Achievements = Achievements(m, s.LocationsHelped, s.TotalLocations)
	}
	return s
}

// Journal returns a copy of the run journal so far.
func (g *Game) Journal() models.RunJournal {
	j := g.journal
	j.Entries = append([]models.HistoryEntry(nil), g.journal.Entries...)
	j.Achievements = append([]string(nil), g.journal.Achievements...)
	return j
}

func (g *Game) record(e models.HistoryEntry) {
	e.At = g.timestamp()
	e.Status = g.verdict.Status.String()
	e.Meters = g.store.Meters()
	g.journal.Entries = append(g.journal.Entries, e)
}

func (g *Game) timestamp() string {
	return g.now().UTC().Format(time.RFC3339)
}
