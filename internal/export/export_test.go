package export

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/h0rv/hdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = []Column{
	{Name: "id", Title: "ID"},
	{Name: "title", Title: "Title"},
}

var testRecords = []Record{
	{"id": "3", "title": "Printer jammed"},
	{"id": "7", "title": "VPN, again"},
	{"id": "9"},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, testColumns, testRecords))

	assert.Equal(t, "ID,Title\n3,Printer jammed\n7,\"VPN, again\"\n9,\n", buf.String())
}

func TestWriteCSV_NoRecords(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, testColumns, nil))

	assert.Equal(t, "ID,Title\n", buf.String())
}

func TestCSV_RequiresSaver(t *testing.T) {
	_, err := CSV(nil, "tickets.csv", testColumns, testRecords)
	assert.ErrorIs(t, err, ErrNoSaver)

	_, err = PDF(nil, "tickets.pdf", "Tickets", testColumns, testRecords)
	assert.ErrorIs(t, err, ErrNoSaver)
}

func TestDirSaver_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := CSV(DirSaver{Dir: dir}, "tickets.csv", testColumns, testRecords[:1])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tickets.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID,Title\n3,Printer jammed\n", string(data))
}

func TestDirSaver_RemovesFileOnError(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")

	_, err := DirSaver{Dir: dir}.Save("broken.csv", func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	_, statErr := os.Stat(filepath.Join(dir, "broken.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDirSaver_StripsDirectoryFromName(t *testing.T) {
	dir := t.TempDir()

	path, err := DirSaver{Dir: dir}.Save("../escape.csv", func(w io.Writer) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.csv"), path)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer

	err := WritePDF(&buf, "Tickets", testColumns, testRecords)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWritePDF_ManyRowsAndOptions(t *testing.T) {
	records := make([]Record, 0, 200)
	for i := 0; i < 200; i++ {
		records = append(records, Record{"id": "1", "title": "A rather long ticket title that will not fit in a narrow column"})
	}
	var buf bytes.Buffer

	err := WritePDF(&buf, "Tickets", testColumns, records,
		WithTheme("striped"),
		WithHeaderFill(RGB{0, 0, 0}),
		WithStripeFill(RGB{200, 200, 200}),
		WithOrientation("P"),
		WithColumnWidths(15, 40),
	)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFOptions(t *testing.T) {
	style := DefaultPDFStyle()
	assert.Equal(t, ThemeGrid, style.Theme)
	assert.Equal(t, RGB{41, 128, 185}, style.HeaderFill)
	assert.Equal(t, RGB{245, 245, 245}, style.StripeFill)

	WithTheme("PLAIN")(&style)
	assert.Equal(t, ThemePlain, style.Theme)

	WithTheme("unknown")(&style)
	assert.Equal(t, ThemePlain, style.Theme)

	WithOrientation("X")(&style)
	assert.Equal(t, "L", style.Orientation)
}

func TestColumnWidths(t *testing.T) {
	style := DefaultPDFStyle()
	assert.Equal(t, []float64{50, 50}, columnWidths(style, 2, 100))

	style.ColumnWidths = []float64{10, 90}
	assert.Equal(t, []float64{10, 90}, columnWidths(style, 2, 100))

	// Mismatched count falls back to an even split.
	assert.Equal(t, []float64{25, 25, 25, 25}, columnWidths(style, 4, 100))
	assert.Nil(t, columnWidths(style, 0, 100))
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 1, 31, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "tickets-20240131153000.csv", Filename("", "csv", now))
	assert.Equal(t, "queue-20240131153000.pdf", Filename("queue", "pdf", now))
}

func TestTicketRecords(t *testing.T) {
	tickets := []*domain.Ticket{
		{ID: "1", Title: "A", Priority: 2, Status: domain.StatusClosed, AssignedTo: "sam"},
	}

	recs := TicketRecords(tickets)

	require.Len(t, recs, 1)
	assert.Equal(t, "2. High", recs[0]["priority"])
	assert.Equal(t, "Closed", recs[0]["status"])
	assert.Equal(t, "sam", recs[0]["assigned_to"])
}
