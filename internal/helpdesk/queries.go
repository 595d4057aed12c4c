package helpdesk

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/h0rv/hdesk/internal/domain"
)

// ticketJSON is the wire shape of one ticket in the staff API.
type ticketJSON struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Queue       string  `json:"queue"`
	Priority    int     `json:"priority"`
	Status      int     `json:"status"`
	Created     string  `json:"created"`
	DueDate     *string `json:"due_date"`
	AssignedTo  *string `json:"assigned_to"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
}

// ListTickets returns the tickets visible to the authenticated staff user.
func (c *Client) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	var resp []ticketJSON
	if err := c.do(ctx, http.MethodGet, "/api/tickets/", nil, "", &resp); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(resp))
	for _, t := range resp {
		ticket := domain.Ticket{
			ID:          strconv.Itoa(t.ID),
			Title:       t.Title,
			Queue:       t.Queue,
			Priority:    t.Priority,
			Status:      t.Status,
			Created:     t.Created,
			Description: t.Description,
			URL:         t.URL,
		}
		if t.DueDate != nil {
			ticket.Due = *t.DueDate
		}
		if t.AssignedTo != nil {
			ticket.AssignedTo = *t.AssignedTo
		}
		if ticket.URL == "" {
			ticket.URL = c.Resolve("/tickets/" + ticket.ID + "/")
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// Viewer returns the username of the authenticated user.
func (c *Client) Viewer(ctx context.Context) (string, error) {
	var resp struct {
		Username string `json:"username"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/me/", nil, "", &resp); err != nil {
		return "", fmt.Errorf("failed to get viewer: %w", err)
	}
	return resp.Username, nil
}
