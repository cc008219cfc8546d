package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ADE80")).
			Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			Padding(0, 1)

	disabledCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("#3C3C3C")).
				Foreground(lipgloss.Color("#666666"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

	groundStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7CB342"))
	treeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")).Bold(true)
	edgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3C3C3C"))
	playerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	nearStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFD700")).Bold(true)
	openStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)
