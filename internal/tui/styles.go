package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")) // Purple

	// SelectedItemStyle is used for the row under the cursor.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for other rows.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// SuccessStyle is used for success banners.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")). // Green
			Bold(true)

	// HelpStyle is used for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")) // Dark gray

	// ColumnHeaderStyle is used for the table header row.
	ColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	// DimStyle is used for secondary text and closed tickets.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// TriggerStyle renders the enabled bulk action trigger.
	TriggerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("205")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	// TriggerDisabledStyle renders the disabled bulk action trigger.
	TriggerDisabledStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("238")).
				Foreground(lipgloss.Color("245")).
				Padding(0, 1)

	// BadgeStyle renders the selection count inside the trigger.
	BadgeStyle = lipgloss.NewStyle().
			Bold(true)

	// DialogStyle frames the confirmation dialog.
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 2)
)
