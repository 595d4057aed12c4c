package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// helpOverlayStyle frames the full key reference.
var helpOverlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2)

// HelpModel wraps the bubbles help component for the ticket list keymap.
type HelpModel struct {
	help   help.Model
	keymap KeyMap
}

// NewHelpModel creates a new help model.
func NewHelpModel(keymap KeyMap) HelpModel {
	return HelpModel{
		help:   help.New(),
		keymap: keymap,
	}
}

// View renders the full help overlay.
func (m HelpModel) View(width int) string {
	m.help.ShowAll = true
	m.help.Width = width - 8 // Account for padding and border
	return helpOverlayStyle.Render(m.help.View(m.keymap))
}

// ShortView renders the one-line footer hint.
func (m HelpModel) ShortView(width int) string {
	m.help.ShowAll = false
	m.help.Width = width
	return m.help.View(m.keymap)
}
