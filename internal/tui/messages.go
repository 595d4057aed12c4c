// Package tui provides Bubble Tea models for the interactive ticket list.
package tui

import (
	"github.com/h0rv/hdesk/internal/action"
	"github.com/h0rv/hdesk/internal/domain"
)

// Custom messages for list and app transitions.
type (
	viewerLoadedMsg struct {
		login string
	}

	ticketsLoadedMsg struct {
		tickets []domain.Ticket
		err     error
	}

	submitDoneMsg struct {
		cmd action.Command
		err error
	}

	exportDoneMsg struct {
		kind string
		path string
		err  error
	}

	openDetailMsg  struct{ ticket *domain.Ticket }
	closeDetailMsg struct{}
)
