package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/browser"

	"github.com/h0rv/hdesk/internal/domain"
)

// Detail view styles
var (
	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Width(10)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))
)

// DetailModel shows one ticket with its description in a scrollable viewport.
type DetailModel struct {
	ticket   *domain.Ticket
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewDetailModel creates a detail view for ticket.
func NewDetailModel(ticket *domain.Ticket) DetailModel {
	return DetailModel{ticket: ticket}
}

// Init requests the window size so the viewport can be laid out.
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := msg.Height - lipgloss.Height(m.renderHeader()) - 2
		if bodyHeight < 3 {
			bodyHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		m.viewport.SetContent(m.renderBody(msg.Width))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "q", "backspace":
			return m, func() tea.Msg { return closeDetailMsg{} }
		case "o":
			if m.ticket.URL != "" {
				_ = browser.OpenURL(m.ticket.URL)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the ticket.
func (m DetailModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	footer := HelpStyle.Render(fmt.Sprintf("esc:back o:open  %3.f%%", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View(), footer)
}

func (m DetailModel) renderHeader() string {
	t := m.ticket
	title := TitleStyle.Render(fmt.Sprintf("#%s %s", t.ID, t.Title))

	field := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return detailLabelStyle.Render(label) + detailValueStyle.Render(value)
	}

	return strings.Join([]string{
		title,
		field("Queue", t.Queue),
		field("Status", t.StatusDisplay()),
		field("Priority", t.PriorityDisplay()),
		field("Owner", t.AssignedTo),
		field("Created", t.Created),
		field("Due", t.Due),
	}, "\n")
}

func (m DetailModel) renderBody(width int) string {
	if strings.TrimSpace(m.ticket.Description) == "" {
		return DimStyle.Render("(no description)")
	}
	return renderMarkdown(m.ticket.Description, width-2)
}

// renderMarkdown renders a ticket description as markdown, falling back to
// plain wrapped text when the renderer fails.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wordwrap.String(text, width)
	}
	out, err := r.Render(text)
	if err != nil {
		return wordwrap.String(text, width)
	}
	return strings.TrimRight(out, "\n")
}
