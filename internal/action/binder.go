package action

import (
	"github.com/h0rv/hdesk/internal/logging"
)

// State is the interaction state of a bound dialog.
type State int

const (
	Idle State = iota
	Resolving
	Displaying
)

func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Displaying:
		return "displaying"
	default:
		return "idle"
	}
}

// Command is the dialog content handed to the presentation layer.
type Command struct {
	ModalID      string
	Title        string
	Message      string
	SubmitTarget string   // Empty when no target has ever been resolved
	IDs          []string // Row ids the command applies to, in table order
}

// Presenter displays a confirmation dialog.
type Presenter interface {
	Present(cmd Command)
}

// SelectionSource supplies the selected row ids in table order.
type SelectionSource interface {
	SelectedIDs() []string
}

// Dialog configures the modal opened by one bound trigger.
type Dialog struct {
	ModalID string
	Title   string
	Message string // Bulk messages may use {0} for the selection count
	Action  Action
}

// Binder builds click handlers that fill and show a reusable dialog.
// Submit targets are remembered per modal so an unresolved action keeps
// the previous one. Only one dialog is assumed to be active at a time.
type Binder struct {
	presenter Presenter
	targets   map[string]string
	state     State
	active    string // Modal currently displayed
}

// NewBinder creates a binder that presents dialogs through p.
func NewBinder(p Presenter) *Binder {
	return &Binder{
		presenter: p,
		targets:   make(map[string]string),
	}
}

// BindRow returns a handler for a single-row trigger. The handler receives
// the id of the row the trigger belongs to.
func (b *Binder) BindRow(d Dialog) func(rowID string) {
	return func(rowID string) {
		b.activate(d, []string{rowID}, d.Message)
	}
}

// BindBulk returns a handler for a bulk trigger. The selection is read from
// src at activation time and the message is formatted with its size.
func (b *Binder) BindBulk(d Dialog, src SelectionSource) func() {
	return func() {
		var ids []string
		if src != nil {
			ids = src.SelectedIDs()
		}
		b.activate(d, ids, Format(d.Message, len(ids)))
	}
}

func (b *Binder) activate(d Dialog, ids []string, message string) {
	b.state = Resolving

	if target, ok := d.Action.Resolve(ids); ok {
		b.targets[d.ModalID] = target
	} else {
		logging.Debug().
			Str("modal", d.ModalID).
			Str("action", d.Action.String()).
			Msg("action unresolved, keeping previous target")
	}

	cmd := Command{
		ModalID:      d.ModalID,
		Title:        d.Title,
		Message:      message,
		SubmitTarget: b.targets[d.ModalID],
		IDs:          ids,
	}

	if b.presenter == nil {
		b.state = Idle
		return
	}
	b.presenter.Present(cmd)
	b.state = Displaying
	b.active = d.ModalID
}

// Dismiss records that the dialog for modalID was closed. Closing a modal
// that is not the one displayed is ignored.
func (b *Binder) Dismiss(modalID string) {
	if b.state != Displaying || modalID != b.active {
		return
	}
	b.state = Idle
	b.active = ""
}

// State returns the current interaction state.
func (b *Binder) State() State {
	return b.state
}

// Target returns the submit target currently held for a modal.
func (b *Binder) Target(modalID string) string {
	return b.targets[modalID]
}

// SetTarget seeds a modal's submit target, e.g. the form's initial action.
func (b *Binder) SetTarget(modalID, target string) {
	b.targets[modalID] = target
}
