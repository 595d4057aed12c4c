// Package selection tracks checkbox state for a table of rows and keeps the
// header "select all" checkbox and a bulk-action trigger in sync with it.
package selection

// Row is one table entry with its checkbox state.
type Row struct {
	ID       string
	Selected bool
}

// Trigger is the control that starts a bulk action. It shows the number of
// selected rows and is only enabled while that number is positive.
type Trigger interface {
	SetCount(n int)
	SetEnabled(enabled bool)
}

// Tracker owns the ordered rows of one table and the header checkbox.
// Every row event re-derives the header and trigger state from the rows;
// neither is authoritative on its own.
type Tracker struct {
	rows    []Row
	index   map[string]int // row ID -> position in rows
	header  bool
	trigger Trigger
}

// NewTracker creates an empty tracker. trigger may be nil.
func NewTracker(trigger Trigger) *Tracker {
	t := &Tracker{
		index:   make(map[string]int),
		trigger: trigger,
	}
	t.sync()
	return t
}

// SetRows replaces the table rows. Rows whose ID was already selected stay
// selected; everything else starts unchecked. Duplicate IDs keep the first
// occurrence.
func (t *Tracker) SetRows(ids []string) {
	prev := make(map[string]bool, len(t.rows))
	for _, r := range t.rows {
		if r.Selected {
			prev[r.ID] = true
		}
	}

	t.rows = make([]Row, 0, len(ids))
	t.index = make(map[string]int, len(ids))
	for _, id := range ids {
		if _, dup := t.index[id]; dup {
			continue
		}
		t.index[id] = len(t.rows)
		t.rows = append(t.rows, Row{ID: id, Selected: prev[id]})
	}

	t.header = len(t.rows) > 0 && t.NonSelectedCount() == 0
	t.sync()
}

// Select checks the row's checkbox. Unknown IDs are ignored.
func (t *Tracker) Select(id string) {
	i, ok := t.index[id]
	if !ok || t.rows[i].Selected {
		return
	}
	t.rows[i].Selected = true
	t.onSelect()
}

// Deselect unchecks the row's checkbox. Unknown IDs are ignored.
func (t *Tracker) Deselect(id string) {
	i, ok := t.index[id]
	if !ok || !t.rows[i].Selected {
		return
	}
	t.rows[i].Selected = false
	t.onDeselect()
}

// Toggle flips the row's checkbox and returns its new state.
func (t *Tracker) Toggle(id string) bool {
	i, ok := t.index[id]
	if !ok {
		return false
	}
	if t.rows[i].Selected {
		t.Deselect(id)
		return false
	}
	t.Select(id)
	return true
}

// SetAll applies a header checkbox click to every row. Each changed row
// produces its own select or deselect event.
func (t *Tracker) SetAll(checked bool) {
	for i := range t.rows {
		if checked {
			t.Select(t.rows[i].ID)
		} else {
			t.Deselect(t.rows[i].ID)
		}
	}
	if !checked {
		// No row changed when nothing was selected; the click still clears
		// the header.
		t.header = false
	}
}

// Count returns the size of the selection set.
func (t *Tracker) Count() int {
	n := 0
	for _, r := range t.rows {
		if r.Selected {
			n++
		}
	}
	return n
}

// NonSelectedCount returns the number of unchecked rows.
func (t *Tracker) NonSelectedCount() int {
	return len(t.rows) - t.Count()
}

// Len returns the number of rows in the table.
func (t *Tracker) Len() int {
	return len(t.rows)
}

// IsSelected reports whether the row is checked.
func (t *Tracker) IsSelected(id string) bool {
	i, ok := t.index[id]
	return ok && t.rows[i].Selected
}

// SelectedIDs returns the IDs of checked rows in table order.
func (t *Tracker) SelectedIDs() []string {
	ids := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		if r.Selected {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Rows returns a copy of the rows in table order.
func (t *Tracker) Rows() []Row {
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// HeaderChecked reports the header checkbox state.
func (t *Tracker) HeaderChecked() bool {
	return t.header
}

func (t *Tracker) onSelect() {
	t.sync()
	// An empty table never counts as "all selected".
	if t.NonSelectedCount() == 0 && len(t.rows) > 0 {
		t.header = true
	}
}

func (t *Tracker) onDeselect() {
	// A single deselection always breaks "all selected".
	t.header = false
	t.sync()
}

// sync pushes the current selection size to the trigger.
func (t *Tracker) sync() {
	if t.trigger == nil {
		return
	}
	n := t.Count()
	t.trigger.SetCount(n)
	t.trigger.SetEnabled(n > 0)
}
