package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/climate-quest/internal/engine"
	"github.com/tatianab/climate-quest/internal/models"
)

const (
	hudHeight    = 3
	footerHeight = 3
	miniHeight   = 11
)

func (m model) sideWidth() int {
	return min(44, max(24, m.width/3))
}

func (m model) mapWidth() int {
	return max(20, m.width-m.sideWidth()-3)
}

func (m model) mapHeight() int {
	return max(8, m.height-hudHeight-footerHeight-2)
}

func (m model) logHeight() int {
	return max(3, m.mapHeight()-miniHeight-2)
}

func (m model) View() string {
	var s string

	switch m.screen {
	case screenStory:
		s = m.renderStory()
	case screenInstructions:
		s = m.renderInstructions()
	case screenWon, screenLost:
		s = m.renderEnd()
	default:
		s = lipgloss.JoinVertical(lipgloss.Left,
			m.renderHUD(),
			lipgloss.JoinHorizontal(lipgloss.Top, m.renderMain(), m.renderSide()),
			m.renderFooter(),
		)
	}

	return "\n" + s + "\n"
}

func (m model) renderStory() string {
	story := textStyle.Width(min(72, m.width-4)).Render(
		"Wren's neighborhood is heating up. Lawns are thirsty, the creek is a concrete ditch, " +
			"and the pollinators are disappearing.\n\n" +
			"Over one year (four seasons) you will walk the neighborhood and help each backyard, park, " +
			"street, community center and creek make a choice. Every choice costs resources and moves " +
			"four meters: temperature, biodiversity, community support and resources.\n\n" +
			"Keep the neighborhood cool, alive and on your side until winter ends.")
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("WREN'S CLIMATE QUEST"),
		"",
		story,
		"",
		helpStyle.Render("Press enter to continue, q to quit."),
	)
}

func (m model) renderInstructions() string {
	rules := m.game.Catalog().Rules
	lines := []string{
		titleStyle.Render("HOW TO PLAY"),
		"",
		"Move with WASD or the arrow keys. Walk up to a red marker and press space to visit it.",
		"Pick an option with its number. Options you cannot afford are greyed out.",
		fmt.Sprintf("Each season lasts %d seconds and brings +%d resources. The clock stops while you read.", rules.SeasonSeconds, rules.SeasonStipend),
		"",
		titleStyle.Render("YOU LOSE IF"),
		"",
		fmt.Sprintf("  🌡️  temperature reaches %d°F", engine.MaxSafeTemperature),
		fmt.Sprintf("  🦋  biodiversity drops below %d%%", engine.MinBiodiversity),
		fmt.Sprintf("  👥  community support drops below %d%%", engine.MinCommunity),
		"",
		fmt.Sprintf("Survive all %d seasons to win.", len(m.game.Catalog().Seasons)),
		"",
		helpStyle.Render("Press enter to start, esc to go back. Type / during play for commands."),
	}
	return textStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderHUD() string {
	snap := m.game.Snapshot()
	meters := snap.Meters

	season := fmt.Sprintf("%s %s  %d/%d  %s",
		snap.Season.Icon, snap.Season.Name, snap.SeasonIndex+1, snap.SeasonCount, formatTimer(snap.TimerSeconds))
	if snap.Clock == engine.ClockPaused {
		season += mutedStyle.Render("  (paused)")
	}

	temp := float64(meters.Temperature-models.MinTemperature) / float64(models.MaxTemperature-models.MinTemperature)
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		m.meter("temperature", fmt.Sprintf("🌡️ %d°F", meters.Temperature), temp),
		m.meter("biodiversity", fmt.Sprintf("🦋 %d%%", meters.Biodiversity), float64(meters.Biodiversity)/models.MaxBiodiversity),
		m.meter("community", fmt.Sprintf("👥 %d%%", meters.Community), float64(meters.Community)/models.MaxCommunity),
		m.meter("resources", fmt.Sprintf("💰 %d", meters.Resources), float64(meters.Resources)/models.MaxResources),
	)

	helped := mutedStyle.Render(fmt.Sprintf("Locations helped %d/%d", snap.LocationsHelped, snap.TotalLocations))
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(season)+"   "+helped,
		row,
	)
}

func (m model) meter(name, label string, pct float64) string {
	return lipgloss.NewStyle().Width(24).Render(label + "\n" + m.bars[name].ViewAs(pct))
}

func formatTimer(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func (m model) renderMain() string {
	w, h := m.mapWidth(), m.mapHeight()
	var body string
	switch m.screen {
	case screenDecision:
		body = m.renderDecision(w)
	case screenResult:
		body = m.renderResult(w)
	case screenHelp:
		body = m.renderHelp()
	case screenJournal:
		body = m.renderJournal(w)
	default:
		return m.renderMap(w, h)
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, body)
}

// renderMap draws the world around the player, one cell per world unit.
func (m model) renderMap(w, h int) string {
	bound := m.game.Catalog().Rules.WorldBound
	nearest, _ := m.game.Nearest(m.player)

	locs := make(map[models.Position]*engine.Location)
	for _, l := range m.game.Locations() {
		locs[l.Position] = l
	}

	left := m.player.X - w/2
	top := m.player.Z - h/2

	var b strings.Builder
	for row := range h {
		for col := range w {
			p := models.Position{X: left + col, Z: top + row}
			b.WriteString(m.cell(p, bound, locs, nearest))
		}
		if row < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m model) cell(p models.Position, bound int, locs map[models.Position]*engine.Location, nearest *engine.Location) string {
	switch {
	case p == m.player:
		return playerStyle.Render("@")
	case p.X < -bound || p.X > bound || p.Z < -bound || p.Z > bound:
		return edgeStyle.Render("░")
	}
	if l, ok := locs[p]; ok {
		glyph := l.Archetype.Glyph
		if glyph == "" {
			glyph = "?"
		}
		switch {
		case l.Completed():
			return doneStyle.Render(glyph)
		case l == nearest:
			return nearStyle.Render(glyph)
		default:
			return lipgloss.NewStyle().Foreground(lipgloss.Color(l.Archetype.Color)).Bold(true).Render(glyph)
		}
	}
	if m.trees[p] {
		return treeStyle.Render("♣")
	}
	if (p.X+p.Z)%7 == 0 {
		return groundStyle.Render("·")
	}
	return " "
}

func (m model) renderSide() string {
	w := m.sideWidth()
	mini := m.renderMinimap(w-4, miniHeight-2)
	log := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("LOG"),
		m.viewport.View(),
	)
	return panelStyle.Width(w).Height(m.mapHeight()).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("MAP"), mini, "", log),
	)
}

func (m model) renderMinimap(w, h int) string {
	bound := m.game.Catalog().Rules.WorldBound
	grid := make([][]string, h)
	for r := range grid {
		grid[r] = make([]string, w)
		for c := range grid[r] {
			grid[r][c] = groundStyle.Render("·")
		}
	}
	for _, l := range m.game.Locations() {
		c, r := miniCell(l.Position, bound, w, h)
		if l.Completed() {
			grid[r][c] = doneStyle.Render("•")
		} else {
			grid[r][c] = openStyle.Render("•")
		}
	}
	c, r := miniCell(m.player, bound, w, h)
	grid[r][c] = playerStyle.Render("@")

	rows := make([]string, h)
	for r := range grid {
		rows[r] = strings.Join(grid[r], "")
	}
	return strings.Join(rows, "\n")
}

func (m model) renderFooter() string {
	var status string
	switch {
	case m.notice != "" && m.noticeIsErr:
		status = errorStyle.Render(m.notice)
	case m.notice != "":
		status = noticeStyle.Render(m.notice)
	case m.screen == screenPlaying:
		if loc, ok := m.game.Nearest(m.player); ok {
			status = promptStyle.Render(fmt.Sprintf("Press SPACE to visit %s %s", loc.Archetype.Icon, loc.Name()))
		}
	}

	bottom := m.help.View(m.keys)
	if m.commanding {
		bottom = m.textInput.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, "", status, bottom)
}

func (m model) renderDecision(w int) string {
	p := m.prompt
	if p.Location == nil {
		return ""
	}
	inner := min(w-8, 90)

	header := titleStyle.Render(fmt.Sprintf("%s %s", p.Location.Archetype.Icon, p.Location.Name())) +
		mutedStyle.Render(fmt.Sprintf("  scenario %d of %d", p.Step, p.Steps))

	var cards []string
	for _, c := range p.Choices {
		cards = append(cards, renderChoice(c, inner))
	}

	parts := []string{
		header,
		textStyle.Bold(true).Render(p.Scenario.Title),
		textStyle.Width(inner).Render(p.Scenario.Description),
		helpStyle.Width(inner).Render(p.Scenario.Context),
		"",
		lipgloss.JoinVertical(lipgloss.Left, cards...),
	}
	if m.notice != "" {
		parts = append(parts, errorStyle.Render(m.notice))
	}
	parts = append(parts, helpStyle.Render(fmt.Sprintf("Press 1-%d to choose, esc to walk away.", len(p.Choices))))
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderChoice(c engine.Choice, width int) string {
	o := c.Option
	lines := []string{
		fmt.Sprintf("[%d] %s %s", c.Index+1, o.Icon, o.Title),
		o.Description,
		fmt.Sprintf("💰 %d   %s", o.Cost, formatEffects(o.Effects, c.Affordable)),
	}
	if o.Risks != "" {
		lines = append(lines, "⚠ "+o.Risks)
	}
	if !c.Affordable {
		lines = append(lines, "(not enough resources)")
		return disabledCardStyle.Width(width).Render(strings.Join(lines, "\n"))
	}
	return cardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// formatEffects renders meter deltas, green when the change helps.
func formatEffects(e models.Effects, colored bool) string {
	paint := func(good bool, s string) string {
		if !colored {
			return s
		}
		if good {
			return positiveStyle.Render(s)
		}
		return negativeStyle.Render(s)
	}
	return strings.Join([]string{
		paint(e.Temp <= 0, fmt.Sprintf("🌡️ %+d°F", e.Temp)),
		paint(e.Bio >= 0, fmt.Sprintf("🦋 %+d%%", e.Bio)),
		paint(e.Community >= 0, fmt.Sprintf("👥 %+d%%", e.Community)),
	}, "   ")
}

func (m model) renderResult(w int) string {
	r := m.result
	if r.Option == nil {
		return ""
	}
	inner := min(w-8, 80)

	parts := []string{
		titleStyle.Render(fmt.Sprintf("%s %s", r.Option.Icon, r.Option.Title)),
		"",
		textStyle.Width(inner).Render(r.Option.Message),
		"",
		negativeStyle.Render(fmt.Sprintf("💰 Resources used  -%d", r.Option.Cost)),
		formatEffects(r.Option.Effects, true),
	}
	if r.Completed {
		parts = append(parts, "", positiveStyle.Render(fmt.Sprintf("✔ %s is fully transformed!", r.Location.Name())))
	}
	switch {
	case m.note != "":
		parts = append(parts, "", helpStyle.Width(inner).Render("Field note: "+m.note))
	case m.narrator != nil:
		parts = append(parts, "", helpStyle.Render("Wren is writing a field note..."))
	}
	if m.game.Status().Terminal() {
		parts = append(parts, "", errorStyle.Render(m.game.Summary().Message))
	}
	parts = append(parts, "", helpStyle.Render("Press enter to continue."))
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m model) renderHelp() string {
	lines := []string{titleStyle.Render("CONTROLS"), "", m.help.FullHelpView(m.keys.FullHelp()), "", titleStyle.Render("COMMANDS"), ""}
	for _, d := range m.commands.Defs() {
		lines = append(lines, fmt.Sprintf("/%-8s %s", d.Name, d.Usage))
	}
	lines = append(lines, "", helpStyle.Render("Press esc to close."))
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderJournal(w int) string {
	j := m.game.Journal()
	lines := []string{titleStyle.Render("JOURNAL"), ""}
	if len(j.Entries) == 0 {
		lines = append(lines, mutedStyle.Render("(no decisions yet)"))
	}
	for i, e := range j.Entries {
		switch e.Kind {
		case "decision":
			lines = append(lines, fmt.Sprintf("%2d. %s: %s  %s", i+1, e.Location, e.Option, formatEffects(e.Effects, true)))
		default:
			lines = append(lines, fmt.Sprintf("%2d. %s", i+1, noticeStyle.Render(e.Outcome)))
		}
	}
	lines = append(lines, "", helpStyle.Render("Press esc to close."))
	return modalStyle.Width(min(w-4, 100)).Render(strings.Join(lines, "\n"))
}

func (m model) renderEnd() string {
	sum := m.game.Summary()
	f := sum.Final

	var lines []string
	if sum.Status == engine.StatusWon {
		lines = append(lines,
			titleStyle.Render("🌍 NEIGHBORHOOD TRANSFORMED!"),
			"",
			positiveStyle.Render(sum.Message),
			"",
		)
		if len(sum.Achievements) > 0 {
			lines = append(lines, titleStyle.Render("ACHIEVEMENTS"))
			for _, a := range sum.Achievements {
				lines = append(lines, "  "+a.String())
			}
			lines = append(lines, "")
		}
	} else {
		lines = append(lines,
			titleStyle.Render("GAME OVER"),
			"",
			errorStyle.Render(sum.Message),
			"",
		)
	}

	lines = append(lines,
		fmt.Sprintf("Final temperature    %d°F", f.Temperature),
		fmt.Sprintf("Biodiversity         %d%%", f.Biodiversity),
		fmt.Sprintf("Community support    %d%%", f.Community),
	)
	if sum.Status == engine.StatusWon {
		lines = append(lines, fmt.Sprintf("Locations helped     %d/%d", sum.LocationsHelped, sum.TotalLocations))
	} else {
		lines = append(lines, fmt.Sprintf("Seasons survived     %d", sum.SeasonsSurvived))
	}

	if m.epilogue != "" {
		lines = append(lines, "", helpStyle.Width(min(72, m.width-4)).Render(m.epilogue))
	}
	if m.savedAs != "" {
		lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("Run journal saved to %s/%s", m.journalDir, m.savedAs)))
	}
	if m.notice != "" && m.noticeIsErr {
		lines = append(lines, "", errorStyle.Render(m.notice))
	}

	bottom := helpStyle.Render("Press r to play again, q to quit.")
	if m.commanding {
		bottom = m.textInput.View()
	}
	lines = append(lines, "", bottom)
	return textStyle.Render(strings.Join(lines, "\n"))
}
