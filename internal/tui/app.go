package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/h0rv/hdesk/internal/logging"
	"github.com/h0rv/hdesk/internal/store"
)

// AppScreen represents the different screens in the application flow.
type AppScreen int

const (
	ScreenLoading AppScreen = iota
	ScreenList
	ScreenDetail
)

// AppModel is the root Bubble Tea model that manages screen transitions.
// It orchestrates the flow from connecting -> ticket list <-> ticket detail.
type AppModel struct {
	// Dependencies
	backend Backend
	store   *store.Store
	ctx     context.Context
	opts    ListOptions

	// Current state
	currentScreen AppScreen
	currentModel  tea.Model
	loadingMsg    string

	// Cached list model to preserve selection across screen transitions
	listModel *ListModel
}

// NewAppModel creates a new app model.
func NewAppModel(backend Backend, s *store.Store, ctx context.Context, opts ListOptions) AppModel {
	return AppModel{
		backend:       backend,
		store:         s,
		ctx:           ctx,
		opts:          opts,
		currentScreen: ScreenLoading,
		loadingMsg:    "Connecting to helpdesk...",
	}
}

// Init resolves the current user before showing the list.
func (m AppModel) Init() tea.Cmd {
	return m.fetchViewer()
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.currentScreen == ScreenLoading {
			return m, tea.Quit
		}

	case viewerLoadedMsg:
		m.store.SetViewerLogin(msg.login)
		m.currentScreen = ScreenList
		list := NewListModel(m.backend, m.store, m.ctx, m.opts)
		list.loading = true
		m.listModel = &list
		m.currentModel = list
		return m, list.Init()

	case openDetailMsg:
		m.currentScreen = ScreenDetail
		detail := NewDetailModel(msg.ticket)
		m.currentModel = detail
		return m, detail.Init()

	case closeDetailMsg:
		m.currentScreen = ScreenList
		m.currentModel = *m.listModel
		// Request window size to ensure proper rendering
		return m, tea.WindowSize()
	}

	// List commands can finish while another screen is shown.
	if m.currentScreen != ScreenList && m.listModel != nil && ownedByList(msg) {
		model, cmd := m.listModel.Update(msg)
		if lm, ok := model.(ListModel); ok {
			m.listModel = &lm
		}
		return m, cmd
	}

	if m.currentModel != nil {
		var cmd tea.Cmd
		m.currentModel, cmd = m.currentModel.Update(msg)
		// Keep listModel in sync when on list screen
		if m.currentScreen == ScreenList {
			if lm, ok := m.currentModel.(ListModel); ok {
				m.listModel = &lm
			}
		}
		return m, cmd
	}

	return m, nil
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.currentModel != nil {
		return m.currentModel.View()
	}

	return m.loadingMsg + "\n\nPress Ctrl+C to quit"
}

// ownedByList reports whether msg is the result of a list command.
func ownedByList(msg tea.Msg) bool {
	switch msg.(type) {
	case ticketsLoadedMsg, submitDoneMsg, exportDoneMsg, clearToastMsg, spinner.TickMsg:
		return true
	}
	return false
}

// fetchViewer creates a command that resolves the authenticated user.
// Failure is not fatal; "mine only" filtering is just unavailable.
func (m AppModel) fetchViewer() tea.Cmd {
	return func() tea.Msg {
		login, err := m.backend.Viewer(m.ctx)
		if err != nil {
			logging.Warn().Err(err).Msg("could not resolve viewer")
		}
		return viewerLoadedMsg{login: login}
	}
}
