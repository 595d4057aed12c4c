package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"github.com/h0rv/hdesk/internal/action"
	"github.com/h0rv/hdesk/internal/domain"
	"github.com/h0rv/hdesk/internal/export"
	"github.com/h0rv/hdesk/internal/logging"
	"github.com/h0rv/hdesk/internal/selection"
	"github.com/h0rv/hdesk/internal/store"
)

// Layout constants
const (
	chromeLines  = 4 // header, trigger bar, column header, footer
	idWidth      = 6
	queueWidth   = 14
	statusWidth  = 10
	ownerWidth   = 12
	minTitleWide = 10
	toastTTL     = 4 * time.Second
)

// Backend is the subset of the helpdesk client the TUI needs.
type Backend interface {
	ListTickets(ctx context.Context) ([]domain.Ticket, error)
	Viewer(ctx context.Context) (string, error)
	Submit(ctx context.Context, target string) error
}

// ListOptions configures exports from the ticket list.
type ListOptions struct {
	Saver      export.Saver
	PDFOptions []export.PDFOption
	Now        func() time.Time
}

// toast is the alert banner shown below the header.
type toast struct {
	text    string
	isError bool
	expires time.Time
}

type clearToastMsg struct{ expires time.Time }

// ListModel is the ticket table with row selection and bulk actions.
type ListModel struct {
	// Dependencies
	backend Backend
	store   *store.Store
	ctx     context.Context
	opts    ListOptions

	// UI components
	keymap      KeyMap
	help        HelpModel
	spinner     spinner.Model
	filterInput textinput.Model

	// Selection and dialog wiring
	tracker *selection.Tracker
	bulk    *BulkButton
	dialog  *Dialog
	binder  *action.Binder

	deleteRow  func(rowID string)
	takeRow    func(rowID string)
	bulkDelete func()
	bulkClose  func()

	// Table state
	rows   []string // visible ticket IDs in table order
	cursor int
	offset int

	// View state
	width      int
	height     int
	showHelp   bool
	filterMode bool
	filterText string
	mineOnly   bool
	loading    bool
	toast      toast
}

// NewListModel creates the ticket list.
func NewListModel(backend Backend, s *store.Store, ctx context.Context, opts ListOptions) ListModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "/ "

	if opts.Now == nil {
		opts.Now = time.Now
	}

	bulk := NewBulkButton("Bulk actions")
	dialog := &Dialog{}
	binder := action.NewBinder(dialog)
	tracker := selection.NewTracker(bulk)

	m := ListModel{
		backend:     backend,
		store:       s,
		ctx:         ctx,
		opts:        opts,
		keymap:      DefaultKeyMap(),
		help:        NewHelpModel(DefaultKeyMap()),
		spinner:     sp,
		filterInput: ti,
		tracker:     tracker,
		bulk:        bulk,
		dialog:      dialog,
		binder:      binder,
	}

	m.deleteRow = binder.BindRow(action.Dialog{
		ModalID: modalDelete,
		Title:   "Delete ticket",
		Message: "Are you sure you want to delete this ticket? This cannot be undone.",
		Action:  action.PerRow(func(id string) (string, bool) { return domain.DeleteEndpoint(id), true }),
	})
	m.takeRow = binder.BindRow(action.Dialog{
		ModalID: modalTake,
		Title:   "Take ticket",
		Message: "Assign this ticket to yourself?",
		Action:  action.PerRow(func(id string) (string, bool) { return domain.TakeEndpoint(id), true }),
	})
	m.bulkDelete = binder.BindBulk(action.Dialog{
		ModalID: modalDelete,
		Title:   "Delete tickets",
		Message: "Are you sure you want to delete {0} tickets? This cannot be undone.",
		Action:  action.Template(domain.BulkDeleteTemplate),
	}, tracker)
	m.bulkClose = binder.BindBulk(action.Dialog{
		ModalID: modalClose,
		Title:   "Close tickets",
		Message: "Close {0} tickets?",
		Action:  action.Template(domain.BulkCloseTemplate),
	}, tracker)

	m.refreshRows()
	return m
}

// Init starts loading tickets.
func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.WindowSize(), m.loadTickets())
}

// Update handles messages
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		(&m).adjustScroll()
		return m, nil

	case ticketsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			cmd := m.showToast(fmt.Sprintf("Load failed: %v", msg.err), true)
			return m, cmd
		}
		ptrs := make([]*domain.Ticket, len(msg.tickets))
		for i := range msg.tickets {
			ptrs[i] = &msg.tickets[i]
		}
		m.store.Clear()
		m.store.UpsertTickets(ptrs)
		(&m).refreshRows()
		return m, nil

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case exportDoneMsg:
		if msg.err != nil {
			cmd := m.showToast(fmt.Sprintf("%s export failed: %v", msg.kind, msg.err), true)
			return m, cmd
		}
		cmd := m.showToast(fmt.Sprintf("Exported %s", msg.path), false)
		return m, cmd

	case clearToastMsg:
		if msg.expires.Equal(m.toast.expires) {
			m.toast = toast{}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m ListModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.dialog.Visible() {
		return m.handleDialogKey(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Quit, m.keymap.Cancel) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.filterMode {
		switch msg.String() {
		case "enter":
			m.filterMode = false
			m.filterText = m.filterInput.Value()
			(&m).refreshRows()
			return m, nil
		case "esc":
			m.filterMode = false
			m.filterInput.SetValue(m.filterText)
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
	case key.Matches(msg, m.keymap.Filter):
		m.filterMode = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keymap.Up):
		(&m).moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		(&m).moveCursor(1)
	case key.Matches(msg, m.keymap.Top):
		(&m).moveCursor(-len(m.rows))
	case key.Matches(msg, m.keymap.Bottom):
		(&m).moveCursor(len(m.rows))
	case key.Matches(msg, m.keymap.Toggle):
		if id, ok := m.currentID(); ok {
			m.tracker.Toggle(id)
		}
	case key.Matches(msg, m.keymap.ToggleAll):
		m.tracker.SetAll(!m.tracker.HeaderChecked())
	case key.Matches(msg, m.keymap.Delete):
		if id, ok := m.currentID(); ok {
			m.deleteRow(id)
		}
	case key.Matches(msg, m.keymap.Take):
		if id, ok := m.currentID(); ok {
			m.takeRow(id)
		}
	case key.Matches(msg, m.keymap.BulkDelete):
		cmd := (&m).runBulk(m.bulkDelete)
		return m, cmd
	case key.Matches(msg, m.keymap.BulkClose):
		cmd := (&m).runBulk(m.bulkClose)
		return m, cmd
	case key.Matches(msg, m.keymap.Mine):
		m.mineOnly = !m.mineOnly
		(&m).refreshRows()
	case key.Matches(msg, m.keymap.Refresh):
		m.loading = true
		return m, m.loadTickets()
	case key.Matches(msg, m.keymap.ExportCSV):
		return m, m.exportCSV()
	case key.Matches(msg, m.keymap.ExportPDF):
		return m, m.exportPDF()
	case key.Matches(msg, m.keymap.Open):
		if t := m.currentTicket(); t != nil && t.URL != "" {
			if err := browser.OpenURL(t.URL); err != nil {
				cmd := m.showToast(fmt.Sprintf("Open failed: %v", err), true)
				return m, cmd
			}
		}
	case key.Matches(msg, m.keymap.Detail):
		if t := m.currentTicket(); t != nil {
			return m, func() tea.Msg { return openDetailMsg{ticket: t} }
		}
	}

	return m, nil
}

// handleDialogKey routes keys while the confirmation dialog is open.
func (m ListModel) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialog.submitting {
		return m, nil
	}

	pending := m.dialog.Command()
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		if pending.SubmitTarget == "" {
			m.closeDialog()
			cmd := m.showToast("Nothing to submit", true)
			return m, cmd
		}
		m.dialog.submitting = true
		return m, m.submit(pending)
	case key.Matches(msg, m.keymap.Cancel), key.Matches(msg, m.keymap.Quit):
		m.closeDialog()
	}
	return m, nil
}

// runBulk invokes a bulk handler if the trigger is enabled.
func (m *ListModel) runBulk(handler func()) tea.Cmd {
	if !m.bulk.Enabled() {
		return m.showToast("Select tickets first (space)", true)
	}
	handler()
	return nil
}

func (m ListModel) closeDialog() {
	m.binder.Dismiss(m.dialog.Command().ModalID)
	m.dialog.Close()
}

// handleSubmitDone applies a confirmed action locally and reports it.
func (m ListModel) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	m.closeDialog()

	if msg.err != nil {
		logging.Error().Err(msg.err).Str("target", msg.cmd.SubmitTarget).Msg("submit failed")
		cmd := m.showToast(fmt.Sprintf("%s failed: %v", msg.cmd.Title, msg.err), true)
		return m, cmd
	}

	logging.Info().Str("target", msg.cmd.SubmitTarget).Strs("ids", msg.cmd.IDs).Msg("submitted")

	var text string
	switch msg.cmd.ModalID {
	case modalDelete:
		n := m.store.RemoveTickets(msg.cmd.IDs)
		text = fmt.Sprintf("[%d] Tickets deleted!", n)
	case modalClose:
		m.store.MarkClosed(msg.cmd.IDs)
		text = fmt.Sprintf("[%d] Tickets closed!", len(msg.cmd.IDs))
	case modalTake:
		for _, id := range msg.cmd.IDs {
			if err := m.store.Assign(id, m.store.GetViewerLogin()); err != nil && !errors.Is(err, store.ErrTicketNotFound) {
				cmd := m.showToast(err.Error(), true)
				return m, cmd
			}
		}
		text = "Ticket taken"
	default:
		text = msg.cmd.Title + " done"
	}

	(&m).refreshRows()
	cmd := m.showToast(text, false)
	return m, cmd
}

// showToast sets the alert banner and schedules its removal.
func (m *ListModel) showToast(text string, isError bool) tea.Cmd {
	expires := m.opts.Now().Add(toastTTL)
	m.toast = toast{text: text, isError: isError, expires: expires}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return clearToastMsg{expires: expires} })
}

// refreshRows recomputes the visible rows and pushes them to the tracker.
func (m *ListModel) refreshRows() {
	m.rows = m.store.Filter(m.filterText, m.mineOnly)
	m.tracker.SetRows(m.rows)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScroll()
}

func (m *ListModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.adjustScroll()
}

// visibleRows returns how many table rows fit on screen.
func (m ListModel) visibleRows() int {
	h := m.height
	if h == 0 {
		h = 24
	}
	n := h - chromeLines
	if m.filterMode {
		n--
	}
	if n < 3 {
		n = 3
	}
	return n
}

// adjustScroll ensures the cursor row is visible.
func (m *ListModel) adjustScroll() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m ListModel) currentID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return "", false
	}
	return m.rows[m.cursor], true
}

func (m ListModel) currentTicket() *domain.Ticket {
	id, ok := m.currentID()
	if !ok {
		return nil
	}
	t, err := m.store.GetTicket(id)
	if err != nil {
		return nil
	}
	return t
}

// visibleTickets returns the tickets in the current table, in order.
func (m ListModel) visibleTickets() []*domain.Ticket {
	tickets := make([]*domain.Ticket, 0, len(m.rows))
	for _, id := range m.rows {
		if t, err := m.store.GetTicket(id); err == nil {
			tickets = append(tickets, t)
		}
	}
	return tickets
}

// View renders the list
func (m ListModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var sections []string
	sections = append(sections, m.renderHeader(width))
	sections = append(sections, m.renderTriggerBar(width))

	if m.filterMode {
		sections = append(sections, m.filterInput.View())
	}

	bodyHeight := height - len(sections) - 1 // footer
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	var body string
	switch {
	case m.dialog.Visible():
		body = m.dialog.Place(width, bodyHeight, m.spinner.View())
	case m.showHelp:
		body = m.help.View(width)
	case m.loading && m.store.Len() == 0:
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Loading tickets...")
	case len(m.rows) == 0:
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, "No tickets. Press 'r' to refresh.")
	default:
		body = m.renderTable(width)
	}
	sections = append(sections, body)
	sections = append(sections, HelpStyle.Render(m.help.ShortView(width)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title line with status on the right.
func (m ListModel) renderHeader(width int) string {
	title := TitleStyle.Render("Tickets")

	var statusParts []string
	if m.loading {
		statusParts = append(statusParts, m.spinner.View()+"loading")
	}
	statusParts = append(statusParts, fmt.Sprintf("%d/%d", len(m.rows), m.store.Len()))
	if m.mineOnly {
		statusParts = append(statusParts, "mine")
	}
	if m.filterText != "" {
		statusParts = append(statusParts, "/"+m.filterText)
	}
	status := DimStyle.Render(strings.Join(statusParts, " | "))

	padding := width - lipgloss.Width(title) - lipgloss.Width(status) - 1
	if padding < 1 {
		padding = 1
	}
	return title + strings.Repeat(" ", padding) + status
}

// renderTriggerBar renders the bulk trigger and the alert banner.
func (m ListModel) renderTriggerBar(width int) string {
	bar := m.bulk.View()
	if m.toast.text != "" {
		style := SuccessStyle
		if m.toast.isError {
			style = ErrorStyle
		}
		bar += "  " + style.Render(truncate(m.toast.text, width-lipgloss.Width(bar)-2))
	}
	return bar
}

// renderTable renders the column header and the visible rows.
func (m ListModel) renderTable(width int) string {
	titleWidth := width - 4 - idWidth - queueWidth - statusWidth - ownerWidth - 5
	if titleWidth < minTitleWide {
		titleWidth = minTitleWide
	}

	lines := []string{ColumnHeaderStyle.Render(
		"  " + checkbox(m.tracker.HeaderChecked()) + " " + formatRow("ID", "Title", "Queue", "Status", "Owner", titleWidth),
	)}

	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		t, err := m.store.GetTicket(m.rows[i])
		if err != nil {
			continue
		}
		line := checkbox(m.tracker.IsSelected(t.ID)) + " " +
			formatRow("#"+t.ID, t.Title, t.Queue, t.StatusDisplay(), t.AssignedTo, titleWidth)

		switch {
		case i == m.cursor:
			lines = append(lines, SelectedItemStyle.Render("> "+line))
		case t.IsClosed():
			lines = append(lines, DimStyle.Render("  "+line))
		default:
			lines = append(lines, NormalItemStyle.Render("  "+line))
		}
	}

	return strings.Join(lines, "\n")
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func formatRow(id, title, queue, status, owner string, titleWidth int) string {
	return pad(id, idWidth) + " " +
		pad(title, titleWidth) + " " +
		pad(queue, queueWidth) + " " +
		pad(status, statusWidth) + " " +
		pad(owner, ownerWidth)
}

// pad truncates or right-pads s to exactly width runes.
func pad(s string, width int) string {
	s = truncate(s, width)
	if n := len([]rune(s)); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

// truncate shortens s to width runes, ending in an ellipsis when cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

// loadTickets fetches all tickets from the helpdesk.
func (m ListModel) loadTickets() tea.Cmd {
	return func() tea.Msg {
		tickets, err := m.backend.ListTickets(m.ctx)
		return ticketsLoadedMsg{tickets: tickets, err: err}
	}
}

// submit posts the confirmed dialog to its target.
func (m ListModel) submit(cmd action.Command) tea.Cmd {
	return func() tea.Msg {
		err := m.backend.Submit(m.ctx, cmd.SubmitTarget)
		return submitDoneMsg{cmd: cmd, err: err}
	}
}

func (m ListModel) exportCSV() tea.Cmd {
	records := export.TicketRecords(m.visibleTickets())
	name := export.Filename("tickets", "csv", m.opts.Now())
	saver := m.opts.Saver
	return func() tea.Msg {
		path, err := export.CSV(saver, name, domain.TicketColumns, records)
		return exportDoneMsg{kind: "CSV", path: path, err: err}
	}
}

func (m ListModel) exportPDF() tea.Cmd {
	records := export.TicketRecords(m.visibleTickets())
	now := m.opts.Now()
	name := export.Filename("tickets", "pdf", now)
	title := "Tickets " + now.Format("2006-01-02 15:04")
	saver := m.opts.Saver
	opts := m.opts.PDFOptions
	return func() tea.Msg {
		path, err := export.PDF(saver, name, title, domain.TicketColumns, records, opts...)
		return exportDoneMsg{kind: "PDF", path: path, err: err}
	}
}
