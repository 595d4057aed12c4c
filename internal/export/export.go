// Package export writes ticket tables to CSV and PDF files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/h0rv/hdesk/internal/domain"
)

// ErrNoSaver is returned when an export is requested without a place to
// save the file.
var ErrNoSaver = errors.New("export requires a file saver")

// Column names a record field and its header title.
type Column = domain.Column

// Record maps column names to cell values.
type Record = map[string]string

// Saver persists an exported file. It returns where the file ended up.
type Saver interface {
	Save(name string, write func(io.Writer) error) (string, error)
}

// DirSaver writes exports into a directory.
type DirSaver struct {
	Dir string
}

// Save creates name inside the directory and streams the export into it.
// A partially written file is removed on error.
func (d DirSaver) Save(name string, write func(io.Writer) error) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// Filename builds the default export name, e.g. tickets-20240131153000.csv.
func Filename(prefix, ext string, now time.Time) string {
	if prefix == "" {
		prefix = "tickets"
	}
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("20060102150405"), ext)
}

// TicketRecords converts tickets into export records.
func TicketRecords(tickets []*domain.Ticket) []Record {
	records := make([]Record, 0, len(tickets))
	for _, t := range tickets {
		records = append(records, t.Record())
	}
	return records
}
