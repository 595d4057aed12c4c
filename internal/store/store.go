// Package store provides an in-memory state management layer for helpdesk tickets.
// It keeps tickets in list order and answers the filtered views the ticket
// table needs, following the "deep modules" principle.
package store

import (
	"errors"
	"strings"

	"github.com/h0rv/hdesk/internal/domain"
)

var (
	// ErrTicketNotFound indicates the requested ticket does not exist.
	ErrTicketNotFound = errors.New("ticket not found")
)

// Store manages the in-memory ticket list.
type Store struct {
	// Current user (viewer) login for "mine only" filtering
	viewerLogin string

	// Ticket storage
	tickets map[string]*domain.Ticket // ID -> Ticket
	order   []string                  // IDs in list order
}

// New creates a new empty Store instance.
func New() *Store {
	return &Store{
		tickets: make(map[string]*domain.Ticket),
	}
}

// SetViewerLogin sets the current authenticated user's login.
func (s *Store) SetViewerLogin(login string) {
	s.viewerLogin = login
}

// GetViewerLogin returns the current authenticated user's login.
func (s *Store) GetViewerLogin() string {
	return s.viewerLogin
}

// UpsertTickets adds or updates tickets. New tickets are appended in the
// order given; existing ones keep their position.
func (s *Store) UpsertTickets(tickets []*domain.Ticket) {
	for _, t := range tickets {
		if _, exists := s.tickets[t.ID]; !exists {
			s.order = append(s.order, t.ID)
		}
		s.tickets[t.ID] = t
	}
}

// GetTicket retrieves a ticket by ID, returning ErrTicketNotFound if not found.
func (s *Store) GetTicket(id string) (*domain.Ticket, error) {
	t, exists := s.tickets[id]
	if !exists {
		return nil, ErrTicketNotFound
	}
	return t, nil
}

// GetAllTickets returns all tickets in list order.
func (s *Store) GetAllTickets() []*domain.Ticket {
	result := make([]*domain.Ticket, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.tickets[id])
	}
	return result
}

// Len returns the number of stored tickets.
func (s *Store) Len() int {
	return len(s.order)
}

// RemoveTickets drops tickets after a delete. Unknown IDs are ignored.
// Returns the number of tickets removed.
func (s *Store) RemoveTickets(ids []string) int {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.tickets[id]; ok {
			drop[id] = true
			delete(s.tickets, id)
		}
	}
	if len(drop) == 0 {
		return 0
	}

	kept := s.order[:0]
	for _, id := range s.order {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	s.order = kept
	return len(drop)
}

// MarkClosed sets the status of the given tickets to closed.
func (s *Store) MarkClosed(ids []string) {
	for _, id := range ids {
		if t, ok := s.tickets[id]; ok {
			t.Status = domain.StatusClosed
		}
	}
}

// Assign sets the owner of a ticket.
func (s *Store) Assign(id, login string) error {
	t, ok := s.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	t.AssignedTo = login
	return nil
}

// Filter returns the IDs of tickets matching text (case-insensitive, on
// title and queue) and, when mineOnly is set, assigned to the viewer.
// The result keeps list order.
func (s *Store) Filter(text string, mineOnly bool) []string {
	text = strings.ToLower(text)
	result := make([]string, 0, len(s.order))

	for _, id := range s.order {
		t := s.tickets[id]

		if text != "" &&
			!strings.Contains(strings.ToLower(t.Title), text) &&
			!strings.Contains(strings.ToLower(t.Queue), text) {
			continue
		}

		if mineOnly && s.viewerLogin != "" && !strings.EqualFold(t.AssignedTo, s.viewerLogin) {
			continue
		}

		result = append(result, id)
	}
	return result
}

// Clear removes all tickets, preserving the viewer login.
func (s *Store) Clear() {
	s.tickets = make(map[string]*domain.Ticket)
	s.order = nil
}
