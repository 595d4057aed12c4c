package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the ticket list.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Selection
	Toggle    key.Binding
	ToggleAll key.Binding

	// Row actions
	Delete key.Binding
	Take   key.Binding
	Open   key.Binding
	Detail key.Binding

	// Bulk actions
	BulkDelete key.Binding
	BulkClose  key.Binding

	// List
	Filter    key.Binding
	Mine      key.Binding
	Refresh   key.Binding
	ExportCSV key.Binding
	ExportPDF key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Dialog
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous ticket"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next ticket"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first ticket"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last ticket"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "x"),
			key.WithHelp("space/x", "select ticket"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete ticket"),
		),
		Take: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "take ticket"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view ticket"),
		),
		BulkDelete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete selected"),
		),
		BulkClose: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "close selected"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter tickets"),
		),
		Mine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "only mine"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		ExportPDF: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "export pdf"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.BulkDelete, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Detail},
		{k.Toggle, k.ToggleAll, k.BulkDelete, k.BulkClose},
		{k.Delete, k.Take, k.Open, k.Refresh},
		{k.Filter, k.Mine, k.ExportCSV, k.ExportPDF, k.Help, k.Quit},
	}
}
