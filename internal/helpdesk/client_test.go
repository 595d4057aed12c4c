package helpdesk

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/hdesk/internal/logging"
)

// fakeHelpdesk serves a tiny subset of the staff API.
type fakeHelpdesk struct {
	mu      sync.Mutex
	deleted []string
	auth    []string
}

func (f *fakeHelpdesk) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/helpdesk/api/tickets/", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 3, "title": "Printer jammed", "queue": "Facilities", "priority": 2, "status": 1,
			 "created": "2024-01-02T10:00:00Z", "due_date": null, "assigned_to": "alex", "description": "It is stuck"},
			{"id": 7, "title": "VPN drops", "queue": "Network", "priority": 3, "status": 2,
			 "created": "2024-01-03T10:00:00Z", "due_date": "2024-02-01", "assigned_to": null,
			 "url": "https://desk.example.com/tickets/7/"}
		]`))
	})
	mux.HandleFunc("/helpdesk/api/me/", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_, _ = w.Write([]byte(`{"username": "alex"}`))
	})
	mux.HandleFunc("/helpdesk/ticket/delete/bulk/", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		ids := parseBulkIDs(strings.TrimPrefix(r.URL.Path, "/helpdesk/ticket/delete/bulk/"))
		f.mu.Lock()
		f.deleted = append(f.deleted, ids...)
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/helpdesk/ticket/delete/", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		http.Error(w, "no access to queue", http.StatusForbidden)
	})
	return mux
}

// parseBulkIDs extracts ticket ids from a bulk path segment such as "3,7/".
func parseBulkIDs(segment string) []string {
	segment = strings.Trim(segment, "/")
	if segment == "" {
		return nil
	}
	return strings.Split(segment, ",")
}

func (f *fakeHelpdesk) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))
}

func newTestClient(t *testing.T) (*Client, *fakeHelpdesk) {
	t.Helper()
	fake := &fakeHelpdesk{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/helpdesk/", "secret", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c, fake
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New("/relative", "t")
	assert.Error(t, err)

	_, err = New("://bad", "t")
	assert.Error(t, err)
}

func TestClient_Resolve(t *testing.T) {
	c, err := New("https://desk.example.com/helpdesk/", "t")
	require.NoError(t, err)

	assert.Equal(t, "https://desk.example.com/helpdesk", c.BaseURL())
	assert.Equal(t, "https://desk.example.com/helpdesk/ticket/delete/42/", c.Resolve("/ticket/delete/42/"))
	assert.Equal(t, "https://desk.example.com/helpdesk/api/me/", c.Resolve("api/me/"))
	assert.Equal(t, "https://other.example.com/x/", c.Resolve("https://other.example.com/x/"))
}

func TestClient_ListTickets(t *testing.T) {
	c, fake := newTestClient(t)

	tickets, err := c.ListTickets(context.Background())

	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "3", tickets[0].ID)
	assert.Equal(t, "alex", tickets[0].AssignedTo)
	assert.Equal(t, "", tickets[0].Due)
	assert.Equal(t, c.Resolve("/tickets/3/"), tickets[0].URL)
	assert.Equal(t, "2024-02-01", tickets[1].Due)
	assert.Equal(t, "", tickets[1].AssignedTo)
	assert.Equal(t, "https://desk.example.com/tickets/7/", tickets[1].URL)
	assert.Equal(t, []string{"Token secret"}, fake.auth)
}

func TestClient_Viewer(t *testing.T) {
	c, _ := newTestClient(t)

	login, err := c.Viewer(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alex", login)
}

func TestClient_Submit(t *testing.T) {
	c, fake := newTestClient(t)

	err := c.Submit(context.Background(), "/ticket/delete/bulk/3,7/")

	require.NoError(t, err)
	assert.Equal(t, []string{"3", "7"}, fake.deleted)
}

func TestClient_SubmitEmptyTarget(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.Submit(context.Background(), "  ")

	assert.ErrorIs(t, err, ErrEmptyTarget)
}

func TestClient_SubmitAPIError(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.Submit(context.Background(), "/ticket/delete/42/")

	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, http.MethodPost, apiErr.Method)
	assert.Contains(t, apiErr.Error(), "no access to queue")
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTickets(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_LogsWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() {
		logging.Logger = zerolog.New(io.Discard)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})

	c, _ := newTestClient(t)
	_, err := c.Viewer(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"helpdesk"`)
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, "/helpdesk/api/me/")
}
