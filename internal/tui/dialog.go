package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/h0rv/hdesk/internal/action"
)

// Modal ids. Each maps to one reusable dialog target slot in the binder.
const (
	modalDelete = "ticket-delete"
	modalClose  = "ticket-close"
	modalTake   = "ticket-take"
)

// minDialogWidth is the narrowest box that still fits its padding and text.
const minDialogWidth = 12

// Dialog is the confirmation modal. It implements action.Presenter and is
// shared by pointer so every copy of the list model sees the same dialog.
type Dialog struct {
	cmd        action.Command
	visible    bool
	submitting bool
}

// Present fills the dialog from cmd and shows it.
func (d *Dialog) Present(cmd action.Command) {
	d.cmd = cmd
	d.visible = true
	d.submitting = false
}

// Close hides the dialog. Its last command is kept until the next Present.
func (d *Dialog) Close() {
	d.visible = false
	d.submitting = false
}

// Visible reports whether the dialog is shown.
func (d *Dialog) Visible() bool {
	return d.visible
}

// Command returns the command the dialog was last presented with.
func (d *Dialog) Command() action.Command {
	return d.cmd
}

// View renders the dialog box.
func (d *Dialog) View(width int, spinner string) string {
	boxWidth := width / 2
	if boxWidth < 40 {
		boxWidth = 40
	}
	// The border adds two columns outside the style width.
	if boxWidth > width-2 {
		boxWidth = width - 2
	}
	if boxWidth < minDialogWidth {
		boxWidth = minDialogWidth
	}
	inner := boxWidth - 4 // horizontal padding

	var b strings.Builder
	b.WriteString(TitleStyle.Render(d.cmd.Title))
	b.WriteString("\n\n")
	b.WriteString(wordwrap.String(d.cmd.Message, inner))
	b.WriteString("\n\n")

	if d.cmd.SubmitTarget != "" {
		b.WriteString(DimStyle.Render(wordwrap.String("POST "+d.cmd.SubmitTarget, inner)))
		b.WriteString("\n\n")
	}

	if d.submitting {
		b.WriteString(spinner + " Submitting...")
	} else {
		b.WriteString(HelpStyle.Render("[y]es  [n]o"))
	}

	return DialogStyle.Width(boxWidth).Render(b.String())
}

// Place centers the dialog in an area of the given size.
func (d *Dialog) Place(width, height int, spinner string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, d.View(width, spinner))
}
