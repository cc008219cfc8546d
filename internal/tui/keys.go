package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Interact key.Binding
	Choose   key.Binding
	Confirm  key.Binding
	Back     key.Binding
	Command  key.Binding
	Journal  key.Binding
	Pause    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("w", "up"), key.WithHelp("w/↑", "north")),
		Down:     key.NewBinding(key.WithKeys("s", "down"), key.WithHelp("s/↓", "south")),
		Left:     key.NewBinding(key.WithKeys("a", "left"), key.WithHelp("a/←", "west")),
		Right:    key.NewBinding(key.WithKeys("d", "right"), key.WithHelp("d/→", "east")),
		Interact: key.NewBinding(key.WithKeys(" ", "e"), key.WithHelp("space", "visit")),
		Choose:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "choose")),
		Confirm:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "continue")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Command:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Journal:  key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "journal")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Down, k.Right, k.Interact, k.Command, k.Journal, k.Pause, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Interact, k.Choose, k.Confirm, k.Back},
		{k.Command, k.Journal, k.Pause, k.Help, k.Quit},
	}
}
