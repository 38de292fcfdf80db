package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for nav mode.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PrevTable   key.Binding
	NextTable   key.Binding
	Sort        key.Binding
	Direction   key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Select      key.Binding
	Action      key.Binding
	HistoryBack key.Binding
	HistoryFwd  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PrevTable: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev table"),
		),
		NextTable: key.NewBinding(
			key.WithKeys("l", "right", "tab"),
			key.WithHelp("l/→", "next table"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort key"),
		),
		Direction: key.NewBinding(
			key.WithKeys("S", "d"),
			key.WithHelp("S", "asc/desc"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/", "f"),
			key.WithHelp("/", "filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("esc", "N"),
			key.WithHelp("esc", "clear filter"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "first action"),
		),
		Action: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "row action"),
		),
		HistoryBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "history back"),
		),
		HistoryFwd: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "history fwd"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.NextTable, k.Sort, k.Direction, k.Filter, k.Action, k.HistoryBack, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevTable, k.NextTable},
		{k.Sort, k.Direction, k.Filter, k.ClearFilter},
		{k.Select, k.Action, k.HistoryBack, k.HistoryFwd},
		{k.Help, k.Quit},
	}
}

// FilterKeyMap defines keybindings while the filter input has focus.
type FilterKeyMap struct {
	Apply  key.Binding
	Cancel key.Binding
}

// DefaultFilterKeyMap returns the default filter keybindings.
func DefaultFilterKeyMap() FilterKeyMap {
	return FilterKeyMap{
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "keep filter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k FilterKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k FilterKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Apply, k.Cancel}}
}
