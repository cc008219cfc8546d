package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/climate-quest/internal/engine"
	"github.com/tatianab/climate-quest/internal/models"
)

type fakeNarrator struct{}

func (fakeNarrator) FieldNote(context.Context, engine.Resolution, models.Season) (string, error) {
	return "Bees everywhere today.", nil
}

func (fakeNarrator) Epilogue(context.Context, engine.Summary, models.RunJournal) (string, error) {
	return "A cooler year.", nil
}

func newTestModel(t *testing.T, opts Options) model {
	t.Helper()
	cat, err := models.DefaultCatalog()
	require.NoError(t, err)
	opts.Seed = 7
	m := NewModel(engine.NewGame(cat), opts)
	return update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

// playing skips the intro screens.
func playing(t *testing.T, opts Options) model {
	t.Helper()
	m := press(t, newTestModel(t, opts), "enter", "enter")
	require.Equal(t, screenPlaying, m.screen)
	return m
}

func TestIntroScreens(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Contains(t, m.View(), "WREN'S CLIMATE QUEST")

	m = press(t, m, "enter")
	assert.Equal(t, screenInstructions, m.screen)
	assert.Contains(t, m.View(), "HOW TO PLAY")

	m = press(t, m, "esc")
	assert.Equal(t, screenStory, m.screen)

	m = press(t, m, "enter", "enter")
	assert.Equal(t, screenPlaying, m.screen)
	assert.Equal(t, 1, m.tickID)
	assert.Len(t, m.gameLog, 1)
}

func TestMovementStaysInBounds(t *testing.T) {
	m := playing(t, Options{})
	m = press(t, m, "d", "d", "s")
	assert.Equal(t, models.Position{X: 2, Z: 1}, m.player)

	m.player = models.Position{X: 90, Z: -90}
	m = press(t, m, "d", "w")
	assert.Equal(t, models.Position{X: 90, Z: -90}, m.player)
}

func TestTickCountsDownAndIgnoresStaleTicks(t *testing.T) {
	m := playing(t, Options{})

	m = update(t, m, tickMsg{id: m.tickID})
	assert.Equal(t, 119, m.game.Snapshot().TimerSeconds)

	m = update(t, m, tickMsg{id: m.tickID - 1})
	assert.Equal(t, 119, m.game.Snapshot().TimerSeconds)
}

func TestDecisionFlow(t *testing.T) {
	m := playing(t, Options{})
	m.player = models.Position{X: 20, Z: 20}
	assert.Contains(t, m.View(), "Press SPACE to visit")

	m = press(t, m, " ")
	require.Equal(t, screenDecision, m.screen)
	assert.Contains(t, m.View(), "Plant Native Pollinator Garden")
	assert.False(t, m.game.Active())

	// the clock does not run while the modal is open
	m = update(t, m, tickMsg{id: m.tickID})
	assert.Equal(t, 120, m.game.Snapshot().TimerSeconds)

	m = press(t, m, "1")
	require.Equal(t, screenResult, m.screen)
	assert.Equal(t, models.Meters{Temperature: 73, Biodiversity: 58, Community: 55, Resources: 60}, m.game.Snapshot().Meters)
	assert.Contains(t, m.View(), "pollinators")

	m = press(t, m, "enter")
	assert.Equal(t, screenPlaying, m.screen)
	assert.True(t, m.game.Active())
	assert.Len(t, m.game.Journal().Entries, 1)
}

func TestDecisionCancel(t *testing.T) {
	m := playing(t, Options{})
	m.player = models.Position{X: 21, Z: 19}
	m = press(t, m, " ", "esc")

	assert.Equal(t, screenPlaying, m.screen)
	assert.True(t, m.game.Active())
	assert.Equal(t, 100, m.game.Snapshot().Meters.Resources)
}

func TestDecisionInsufficientResources(t *testing.T) {
	m := playing(t, Options{})
	m.player = models.Position{X: 20, Z: 20}
	m = press(t, m, " ", "1", "enter")

	// the park's wetland restoration costs 80 and only 60 are left
	m.player = models.Position{X: -30, Z: 25}
	m = press(t, m, " ")
	require.Equal(t, screenDecision, m.screen)
	assert.Contains(t, m.View(), "not enough resources")

	m = press(t, m, "1")
	assert.Equal(t, screenDecision, m.screen)
	assert.True(t, m.noticeIsErr)
	assert.Equal(t, "Not enough resources for this option!", m.notice)
	assert.Equal(t, 60, m.game.Snapshot().Meters.Resources)

	m = press(t, m, "2")
	assert.Equal(t, screenResult, m.screen)
	assert.Equal(t, 25, m.game.Snapshot().Meters.Resources)
}

func TestFieldNote(t *testing.T) {
	m := playing(t, Options{Narrator: fakeNarrator{}})
	m.player = models.Position{X: 20, Z: 20}
	m = press(t, m, " ")

	next, cmd := m.Update(keyMsg("1"))
	m = next.(model)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "writing a field note")

	msg := cmd()
	m = update(t, m, msg)
	assert.Equal(t, "Bees everywhere today.", m.note)
	assert.Contains(t, m.View(), "Bees everywhere today.")

	m = update(t, m, fieldNoteMsg{seq: m.decisionSeq - 1, note: "stale"})
	assert.Equal(t, "Bees everywhere today.", m.note)
}

func TestOverlaysHoldTheClock(t *testing.T) {
	m := playing(t, Options{})

	m = press(t, m, "?")
	assert.Equal(t, screenHelp, m.screen)
	assert.False(t, m.game.Active())
	assert.Contains(t, m.View(), "COMMANDS")

	m = press(t, m, "esc")
	assert.Equal(t, screenPlaying, m.screen)
	assert.True(t, m.game.Active())

	m = press(t, m, "j")
	assert.Equal(t, screenJournal, m.screen)
	assert.Contains(t, m.View(), "no decisions yet")
	m = press(t, m, "esc")

	m = press(t, m, "p")
	assert.True(t, m.paused)
	assert.False(t, m.game.Active())
	m = press(t, m, "d")
	assert.Equal(t, models.Position{}, m.player)

	m = press(t, m, "p")
	assert.True(t, m.game.Active())
}

func TestCommands(t *testing.T) {
	m := playing(t, Options{})
	m.player = models.Position{X: 20, Z: 20}
	m = press(t, m, " ", "1", "enter")

	m = press(t, m, "/")
	assert.True(t, m.commanding)
	assert.False(t, m.game.Active())
	m = press(t, m, "esc")
	assert.False(t, m.commanding)
	assert.True(t, m.game.Active())

	next, _ := m.runCommand("xyzzy")
	m = next.(model)
	assert.True(t, m.noticeIsErr)

	next, _ = m.runCommand("jour")
	m = next.(model)
	assert.Equal(t, screenJournal, m.screen)
	m = press(t, m, "esc")

	tickID := m.tickID
	next, _ = m.runCommand("restart")
	m = next.(model)
	assert.Equal(t, screenPlaying, m.screen)
	assert.Equal(t, tickID+1, m.tickID)
	assert.Equal(t, models.Position{}, m.player)
	assert.Equal(t, models.Meters{Temperature: 75, Biodiversity: 50, Community: 50, Resources: 100}, m.game.Snapshot().Meters)
	assert.Empty(t, m.game.Journal().Entries)
}

func TestSurvivingAllSeasonsWins(t *testing.T) {
	dir := t.TempDir()
	m := playing(t, Options{JournalDir: dir, Narrator: fakeNarrator{}})

	for range 3 {
		m.game.AdvanceSeason()
	}
	require.Equal(t, "Winter", m.game.Snapshot().Season.Name)

	var cmd tea.Cmd
	for range 120 {
		var next tea.Model
		next, cmd = m.Update(tickMsg{id: m.tickID})
		m = next.(model)
	}
	require.Equal(t, screenWon, m.screen)
	assert.Contains(t, m.View(), "NEIGHBORHOOD TRANSFORMED")
	assert.Contains(t, m.View(), "Resource Manager")

	require.NotEmpty(t, m.savedAs)
	names, err := models.ListJournals(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{m.savedAs}, names)

	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, "A cooler year.", m.epilogue)

	// the tick loop has ended
	m = update(t, m, tickMsg{id: m.tickID})
	assert.Equal(t, screenWon, m.screen)

	m = press(t, m, "r")
	assert.Equal(t, screenPlaying, m.screen)
	assert.Equal(t, engine.StatusPlaying, m.game.Status())
	assert.Empty(t, m.epilogue)
}

func TestDecisionLossShowsGameOver(t *testing.T) {
	m := playing(t, Options{})
	for range 2 {
		m.game.AdvanceSeason()
	}
	require.Equal(t, 82, m.game.Snapshot().Meters.Temperature)

	// street: Add More Parking, +4°F
	m.player = models.Position{X: 40, Z: -25}
	m = press(t, m, " ", "3")
	require.Equal(t, screenResult, m.screen)
	assert.Equal(t, engine.StatusLost, m.game.Status())

	m = press(t, m, "enter")
	assert.Equal(t, screenLost, m.screen)
	assert.Contains(t, m.View(), "GAME OVER")
	assert.Contains(t, m.View(), "Seasons survived")
}

func TestPlantTreesKeepsClearance(t *testing.T) {
	cat, err := models.DefaultCatalog()
	require.NoError(t, err)

	trees := plantTrees(cat, 42)
	assert.NotEmpty(t, trees)
	assert.Equal(t, trees, plantTrees(cat, 42))
	for p := range trees {
		assert.False(t, nearPlacement(cat.Placements, p, float64(cat.Rules.TreeClearance)), "tree at %v", p)
		assert.NotEqual(t, models.Position{}, p)
	}
}

func TestMiniCell(t *testing.T) {
	c, r := miniCell(models.Position{X: -90, Z: -90}, 90, 20, 10)
	assert.Equal(t, 0, c)
	assert.Equal(t, 0, r)

	c, r = miniCell(models.Position{X: 90, Z: 90}, 90, 20, 10)
	assert.Equal(t, 19, c)
	assert.Equal(t, 9, r)
}
