package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes a header row of column titles followed by one row per
// record. Missing fields are written as empty cells.
func WriteCSV(w io.Writer, columns []Column, records []Record) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Title
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range records {
		for i, c := range columns {
			row[i] = rec[c.Name]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSV exports records through saver under filename.
func CSV(saver Saver, filename string, columns []Column, records []Record) (string, error) {
	if saver == nil {
		return "", ErrNoSaver
	}
	return saver.Save(filename, func(w io.Writer) error {
		return WriteCSV(w, columns, records)
	})
}
