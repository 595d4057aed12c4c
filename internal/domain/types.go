// Package domain defines the normalized domain types for helpdesk tickets.
// These types represent the core concepts independent of the helpdesk HTTP API structure.
package domain

import (
	"strconv"
)

// Ticket represents a helpdesk ticket in a normalized format.
type Ticket struct {
	ID          string // Ticket primary key, used as the row identifier
	Title       string // Ticket title
	Queue       string // Queue title (e.g., "Support")
	Priority    int    // Priority 1 (critical) to 5 (very low)
	Status      int    // Status code, see Status* constants
	Created     string // ISO8601 timestamp of creation
	Due         string // ISO8601 due date, empty if unset
	AssignedTo  string // Owner username, empty if unassigned
	Description string // Ticket body (for detail view)
	URL         string // Ticket URL on the helpdesk web UI
}

// Status constants, matching the helpdesk status codes.
const (
	StatusOpen      = 1
	StatusReopened  = 2
	StatusResolved  = 3
	StatusClosed    = 4
	StatusDuplicate = 5
)

var statusNames = map[int]string{
	StatusOpen:      "Open",
	StatusReopened:  "Reopened",
	StatusResolved:  "Resolved",
	StatusClosed:    "Closed",
	StatusDuplicate: "Duplicate",
}

var priorityNames = map[int]string{
	1: "1. Critical",
	2: "2. High",
	3: "3. Normal",
	4: "4. Low",
	5: "5. Very Low",
}

// StatusDisplay returns the human-readable status name.
func (t Ticket) StatusDisplay() string {
	if name, ok := statusNames[t.Status]; ok {
		return name
	}
	return strconv.Itoa(t.Status)
}

// PriorityDisplay returns the human-readable priority name.
func (t Ticket) PriorityDisplay() string {
	if name, ok := priorityNames[t.Priority]; ok {
		return name
	}
	return strconv.Itoa(t.Priority)
}

// IsClosed reports whether the ticket no longer needs work.
func (t Ticket) IsClosed() bool {
	return t.Status == StatusClosed || t.Status == StatusResolved || t.Status == StatusDuplicate
}

// Column describes one exported ticket attribute.
type Column struct {
	Name  string // Field key used in Record
	Title string // Header shown to users
}

// TicketColumns is the column set used by the ticket list exports.
var TicketColumns = []Column{
	{Name: "id", Title: "ID"},
	{Name: "title", Title: "Title"},
	{Name: "queue", Title: "Queue"},
	{Name: "priority", Title: "Priority"},
	{Name: "status", Title: "Status"},
	{Name: "created", Title: "Created"},
	{Name: "due_date", Title: "Due"},
	{Name: "assigned_to", Title: "Owner"},
}

// Record maps the ticket onto TicketColumns keys with display values.
func (t Ticket) Record() map[string]string {
	return map[string]string{
		"id":          t.ID,
		"title":       t.Title,
		"queue":       t.Queue,
		"priority":    t.PriorityDisplay(),
		"status":      t.StatusDisplay(),
		"created":     t.Created,
		"due_date":    t.Due,
		"assigned_to": t.AssignedTo,
	}
}

// Helpdesk endpoints. Bulk templates end in a "0/" placeholder that is
// replaced by the comma-joined ticket ids.
const (
	BulkDeleteTemplate = "/ticket/delete/bulk/0/"
	BulkCloseTemplate  = "/ticket/close/bulk/0/"
)

// DeleteEndpoint returns the single-ticket delete endpoint.
func DeleteEndpoint(id string) string {
	return "/ticket/delete/" + id + "/"
}

// TakeEndpoint returns the endpoint that assigns a ticket to the viewer.
func TakeEndpoint(id string) string {
	return "/ticket/take/" + id + "/"
}
