package tui

import "fmt"

// BulkButton is the bulk action trigger shown above the ticket table.
// It implements selection.Trigger.
type BulkButton struct {
	label   string
	count   int
	enabled bool
}

// NewBulkButton creates a disabled trigger.
func NewBulkButton(label string) *BulkButton {
	return &BulkButton{label: label}
}

// SetCount updates the badge.
func (b *BulkButton) SetCount(n int) {
	b.count = n
}

// SetEnabled enables or disables the trigger.
func (b *BulkButton) SetEnabled(enabled bool) {
	b.enabled = enabled
}

// Count returns the badge value.
func (b *BulkButton) Count() int {
	return b.count
}

// Badge returns the badge text.
func (b *BulkButton) Badge() string {
	return fmt.Sprintf("%d", b.count)
}

// Enabled reports whether bulk actions can be started.
func (b *BulkButton) Enabled() bool {
	return b.enabled
}

// View renders the trigger with its badge.
func (b *BulkButton) View() string {
	text := fmt.Sprintf("%s %s", b.label, BadgeStyle.Render(b.Badge()))
	if !b.enabled {
		return TriggerDisabledStyle.Render(text)
	}
	return TriggerStyle.Render(text)
}
