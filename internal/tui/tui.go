package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tatianab/climate-quest/internal/command"
	"github.com/tatianab/climate-quest/internal/engine"
	"github.com/tatianab/climate-quest/internal/models"
	"github.com/tatianab/climate-quest/internal/narrator"
)

type screen int

const (
	screenStory screen = iota
	screenInstructions
	screenPlaying
	screenDecision
	screenResult
	screenHelp
	screenJournal
	screenWon
	screenLost
)

const narratorTimeout = 20 * time.Second

// Options configures the presentation around a game.
type Options struct {
	Narrator   narrator.Narrator // nil disables field notes and the epilogue
	JournalDir string            // empty disables saving run journals
	Seed       uint64
	Logger     *slog.Logger
}

type model struct {
	screen   screen
	game     *engine.Game
	narrator narrator.Narrator
	commands *command.Registry
	logger   *slog.Logger

	journalDir string
	savedAs    string

	player models.Position
	trees  map[models.Position]bool

	prompt      engine.Prompt
	result      engine.Resolution
	decisionSeq int
	note        string
	epilogue    string

	notice      string
	noticeIsErr bool

	paused     bool
	commanding bool
	tickID     int
	back       screen // where help/journal return to

	keys      keyMap
	help      help.Model
	textInput textinput.Model
	viewport  viewport.Model
	bars      map[string]progress.Model
	gameLog   []string
	width     int
	height    int
}

func NewModel(g *engine.Game, opts Options) model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "restart, journal, pause, help, quit"
	ti.CharLimit = 40
	ti.Width = 40

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	bars := make(map[string]progress.Model)
	for name, colors := range map[string][2]string{
		"temperature":  {"#FFD700", "#FF5F5F"},
		"biodiversity": {"#A5D6A7", "#2E7D32"},
		"community":    {"#90CAF9", "#1565C0"},
		"resources":    {"#FFE082", "#FF8F00"},
	} {
		bars[name] = progress.New(
			progress.WithGradient(colors[0], colors[1]),
			progress.WithWidth(20),
			progress.WithoutPercentage(),
		)
	}

	return model{
		screen:     screenStory,
		game:       g,
		narrator:   opts.Narrator,
		commands:   command.Default(),
		logger:     logger,
		journalDir: opts.JournalDir,
		trees:      plantTrees(g.Catalog(), opts.Seed),
		keys:       defaultKeyMap(),
		help:       help.New(),
		textInput:  ti,
		viewport:   viewport.New(40, 8),
		bars:       bars,
		width:      100,
		height:     32,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

type tickMsg struct {
	id int
	at time.Time
}

type fieldNoteMsg struct {
	seq  int
	note string
	err  error
}

type epilogueMsg struct {
	text string
	err  error
}

func (m model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{id: id, at: t}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = m.sideWidth()
		m.viewport.Height = m.logHeight()
		m.refreshLog()
		return m, nil

	case tickMsg:
		if msg.id != m.tickID || m.game.Status().Terminal() {
			return m, nil
		}
		ev := m.game.Tick()
		if ev.Advanced {
			text := engine.SeasonAnnouncement(ev.Season, ev.Stipend)
			m.setNotice(ev.Season.Icon+" "+text, false)
			m.appendLog(text)
		}
		if m.game.Status().Terminal() {
			return m.finish()
		}
		return m, m.tick()

	case fieldNoteMsg:
		if msg.seq != m.decisionSeq {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("field note failed", "err", msg.err)
			return m, nil
		}
		m.note = msg.note
		return m, nil

	case epilogueMsg:
		if msg.err != nil {
			m.logger.Warn("epilogue failed", "err", msg.err)
			return m, nil
		}
		m.epilogue = msg.text
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.commanding {
			return m.updateCommand(msg)
		}
		switch m.screen {
		case screenStory:
			if key.Matches(msg, m.keys.Confirm) {
				m.screen = screenInstructions
			}
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			return m, nil
		case screenInstructions:
			if key.Matches(msg, m.keys.Confirm) {
				return m.start()
			}
			if key.Matches(msg, m.keys.Back) {
				m.screen = screenStory
			}
			return m, nil
		case screenPlaying:
			return m.updatePlaying(msg)
		case screenDecision:
			return m.updateDecision(msg)
		case screenResult:
			if key.Matches(msg, m.keys.Confirm, m.keys.Back) {
				m.game.Acknowledge()
				m.note = ""
				if m.game.Status().Terminal() {
					return m.finish()
				}
				m.screen = screenPlaying
			}
			return m, nil
		case screenHelp, screenJournal:
			if key.Matches(msg, m.keys.Back, m.keys.Confirm, m.keys.Help, m.keys.Journal) {
				m.screen = m.back
				m.syncHold()
			}
			return m, nil
		case screenWon, screenLost:
			switch {
			case key.Matches(msg, m.keys.Command):
				return m.openCommand()
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case msg.String() == "r":
				return m.restart()
			}
			return m, nil
		}
	}

	return m, nil
}

// start leaves the intro screens and starts the season heartbeat.
func (m model) start() (tea.Model, tea.Cmd) {
	m.screen = screenPlaying
	m.tickID++
	snap := m.game.Snapshot()
	m.appendLog(fmt.Sprintf("%s %s begins. %d locations need your help.", snap.Season.Icon, snap.Season.Name, snap.TotalLocations))
	return m, m.tick()
}

func (m model) restart() (tea.Model, tea.Cmd) {
	m.game.Restart()
	m.player = models.Position{}
	m.prompt = engine.Prompt{}
	m.result = engine.Resolution{}
	m.note = ""
	m.epilogue = ""
	m.savedAs = ""
	m.paused = false
	m.gameLog = nil
	m.refreshLog()
	m.setNotice("New game started.", false)
	return m.start()
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	bound := m.game.Catalog().Rules.WorldBound
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Command):
		return m.openCommand()
	case key.Matches(msg, m.keys.Help):
		m.openOverlay(screenHelp)
		return m, nil
	case key.Matches(msg, m.keys.Journal):
		m.openOverlay(screenJournal)
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		m.togglePause()
		return m, nil
	}

	// the world is frozen while paused
	if m.paused {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.player = step(m.player, 0, -1, bound)
	case key.Matches(msg, m.keys.Down):
		m.player = step(m.player, 0, 1, bound)
	case key.Matches(msg, m.keys.Left):
		m.player = step(m.player, -1, 0, bound)
	case key.Matches(msg, m.keys.Right):
		m.player = step(m.player, 1, 0, bound)
	case key.Matches(msg, m.keys.Interact):
		loc, ok := m.game.Nearest(m.player)
		if !ok {
			return m, nil
		}
		p, err := m.game.Interact(loc.ID)
		if err != nil {
			m.logger.Warn("interact rejected", "location", loc.ID, "err", err)
			return m, nil
		}
		m.prompt = p
		m.notice = ""
		m.screen = screenDecision
	}
	return m, nil
}

func (m model) updateDecision(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.game.Cancel()
		m.notice = ""
		m.screen = screenPlaying
		return m, nil
	}
	if !key.Matches(msg, m.keys.Choose) {
		return m, nil
	}

	idx := int(msg.Runes[0] - '1')
	if idx >= len(m.prompt.Choices) {
		return m, nil
	}

	res, err := m.game.Choose(m.prompt.Location.ID, idx)
	switch {
	case errors.Is(err, engine.ErrInsufficientResources):
		m.setNotice("Not enough resources for this option!", true)
		return m, nil
	case err != nil:
		m.logger.Error("choose failed", "location", m.prompt.Location.ID, "option", idx, "err", err)
		m.setNotice(err.Error(), true)
		return m, nil
	}

	m.result = res
	m.notice = ""
	m.note = ""
	m.decisionSeq++
	m.screen = screenResult
	line := fmt.Sprintf("%s: %s. %s", res.Location.Name(), res.Option.Title, res.Option.Message)
	if res.Completed {
		line += fmt.Sprintf(" %s is fully transformed!", res.Location.Name())
	}
	m.appendLog(line)
	return m, m.fetchFieldNote(res)
}

func (m model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeCommand()
		return m, nil
	case tea.KeyEnter:
		input := m.textInput.Value()
		m.closeCommand()
		return m.runCommand(input)
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) runCommand(input string) (tea.Model, tea.Cmd) {
	name, err := m.commands.Parse(input)
	if errors.Is(err, command.ErrEmpty) {
		return m, nil
	}
	if err != nil {
		m.setNotice(err.Error(), true)
		return m, nil
	}

	m.logger.Debug("command", "name", string(name))
	switch name {
	case command.Quit:
		return m, tea.Quit
	case command.Restart:
		return m.restart()
	case command.Help:
		m.openOverlay(screenHelp)
	case command.Journal:
		m.openOverlay(screenJournal)
	case command.Pause:
		if m.screen == screenPlaying {
			m.togglePause()
		}
	}
	return m, nil
}

func (m model) openCommand() (tea.Model, tea.Cmd) {
	m.commanding = true
	m.textInput.Reset()
	m.syncHold()
	return m, m.textInput.Focus()
}

func (m *model) closeCommand() {
	m.commanding = false
	m.textInput.Blur()
	m.textInput.Reset()
	m.syncHold()
}

func (m *model) openOverlay(s screen) {
	if m.screen == screenHelp || m.screen == screenJournal {
		m.screen = s
		return
	}
	m.back = m.screen
	m.screen = s
	m.syncHold()
}

func (m *model) togglePause() {
	m.paused = !m.paused
	if m.paused {
		m.setNotice("Paused. Press p to resume.", false)
	} else {
		m.notice = ""
	}
	m.syncHold()
}

// syncHold pauses the season clock whenever an overlay the engine does not
// track is up.
func (m *model) syncHold() {
	if m.paused || m.commanding || m.screen == screenHelp || m.screen == screenJournal {
		m.game.Hold()
		return
	}
	m.game.Release()
}

// finish shows the end screen, saves the journal and asks for an epilogue.
func (m model) finish() (tea.Model, tea.Cmd) {
	sum := m.game.Summary()
	if sum.Status == engine.StatusWon {
		m.screen = screenWon
	} else {
		m.screen = screenLost
	}
	m.paused = false
	m.appendLog(fmt.Sprintf("Game over: %s. %s", sum.Status, sum.Message))

	journal := m.game.Journal()
	if m.journalDir != "" {
		name := "run-" + time.Now().UTC().Format("20060102-150405")
		if err := journal.Save(m.journalDir, name); err != nil {
			m.logger.Error("saving journal failed", "dir", m.journalDir, "err", err)
			m.setNotice("Could not save run journal: "+err.Error(), true)
		} else {
			m.savedAs = name
			m.logger.Info("journal saved", "dir", m.journalDir, "name", name)
		}
	}
	return m, m.fetchEpilogue(sum, journal)
}

func (m model) fetchFieldNote(res engine.Resolution) tea.Cmd {
	if m.narrator == nil {
		return nil
	}
	n := m.narrator
	seq := m.decisionSeq
	season := m.game.Snapshot().Season
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), narratorTimeout)
		defer cancel()
		note, err := n.FieldNote(ctx, res, season)
		return fieldNoteMsg{seq: seq, note: note, err: err}
	}
}

func (m model) fetchEpilogue(sum engine.Summary, journal models.RunJournal) tea.Cmd {
	if m.narrator == nil {
		return nil
	}
	n := m.narrator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), narratorTimeout)
		defer cancel()
		text, err := n.Epilogue(ctx, sum, journal)
		return epilogueMsg{text: text, err: err}
	}
}

func (m *model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeIsErr = isErr
}

func (m *model) appendLog(line string) {
	m.gameLog = append(m.gameLog, line)
	m.refreshLog()
}

func (m *model) refreshLog() {
	m.viewport.SetContent(textStyle.Width(m.viewport.Width).Render(strings.Join(m.gameLog, "\n\n")))
	m.viewport.GotoBottom()
}

func Run(g *engine.Game, opts Options) error {
	p := tea.NewProgram(NewModel(g, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
