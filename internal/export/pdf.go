package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// RGB is a fill color.
type RGB struct {
	R, G, B int
}

// Table themes.
const (
	ThemeGrid    = "grid"    // Borders on every cell
	ThemeStriped = "striped" // Alternating row fill, no inner borders
	ThemePlain   = "plain"   // No fill, no borders
)

const (
	pageMargin = 10.0
	rowHeight  = 6.0
	titleSize  = 14.0
)

// PDFStyle controls the table rendering.
type PDFStyle struct {
	HeaderFill   RGB
	StripeFill   RGB
	Theme        string
	Orientation  string // "L" or "P"
	FontSize     float64
	ColumnWidths []float64 // Millimetres; empty spreads columns evenly
}

// DefaultPDFStyle returns the style used unless overridden.
func DefaultPDFStyle() PDFStyle {
	return PDFStyle{
		HeaderFill:  RGB{41, 128, 185},
		StripeFill:  RGB{245, 245, 245},
		Theme:       ThemeGrid,
		Orientation: "L",
		FontSize:    9,
	}
}

// PDFOption overrides part of the default style.
type PDFOption func(*PDFStyle)

// WithHeaderFill sets the header row color.
func WithHeaderFill(c RGB) PDFOption {
	return func(s *PDFStyle) { s.HeaderFill = c }
}

// WithStripeFill sets the alternating row color.
func WithStripeFill(c RGB) PDFOption {
	return func(s *PDFStyle) { s.StripeFill = c }
}

// WithTheme selects grid, striped or plain. Unknown themes are ignored.
func WithTheme(theme string) PDFOption {
	return func(s *PDFStyle) {
		switch strings.ToLower(theme) {
		case ThemeGrid, ThemeStriped, ThemePlain:
			s.Theme = strings.ToLower(theme)
		}
	}
}

// WithOrientation sets "L" (landscape) or "P" (portrait).
func WithOrientation(o string) PDFOption {
	return func(s *PDFStyle) {
		if o == "L" || o == "P" {
			s.Orientation = o
		}
	}
}

// WithColumnWidths fixes the column widths in millimetres. Ignored unless
// there is exactly one width per column.
func WithColumnWidths(widths ...float64) PDFOption {
	return func(s *PDFStyle) { s.ColumnWidths = widths }
}

// WritePDF renders records as a single table below title.
func WritePDF(w io.Writer, title string, columns []Column, records []Record, opts ...PDFOption) error {
	style := DefaultPDFStyle()
	for _, opt := range opts {
		opt(&style)
	}

	pdf := fpdf.New(style.Orientation, "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(style, len(columns), pageW-2*pageMargin)

	border := "1"
	if style.Theme != ThemeGrid {
		border = ""
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", style.FontSize)
		pdf.SetFillColor(style.HeaderFill.R, style.HeaderFill.G, style.HeaderFill.B)
		pdf.SetTextColor(255, 255, 255)
		fill := style.Theme != ThemePlain
		if !fill {
			pdf.SetTextColor(0, 0, 0)
		}
		for i, c := range columns {
			pdf.CellFormat(widths[i], rowHeight+1, tr(fit(pdf, c.Title, widths[i])), border, 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", style.FontSize)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.AddPage()
	if title != "" {
		pdf.SetFont("Helvetica", "B", titleSize)
		pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	}
	header()

	pdf.SetFillColor(style.StripeFill.R, style.StripeFill.G, style.StripeFill.B)
	for n, rec := range records {
		if pdf.GetY()+rowHeight > pageH-pageMargin {
			pdf.AddPage()
			header()
			pdf.SetFillColor(style.StripeFill.R, style.StripeFill.G, style.StripeFill.B)
		}
		fill := style.Theme != ThemePlain && n%2 == 1
		for i, c := range columns {
			pdf.CellFormat(widths[i], rowHeight, tr(fit(pdf, rec[c.Name], widths[i])), border, 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

// PDF exports records through saver under filename.
func PDF(saver Saver, filename, title string, columns []Column, records []Record, opts ...PDFOption) (string, error) {
	if saver == nil {
		return "", ErrNoSaver
	}
	return saver.Save(filename, func(w io.Writer) error {
		return WritePDF(w, title, columns, records, opts...)
	})
}

// columnWidths uses the configured widths when they match the column
// count, otherwise splits the printable width evenly.
func columnWidths(style PDFStyle, n int, printable float64) []float64 {
	if n == 0 {
		return nil
	}
	if len(style.ColumnWidths) == n {
		return style.ColumnWidths
	}
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = printable / float64(n)
	}
	return widths
}

// fit truncates s with an ellipsis so it fits inside a cell.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	const padding = 2.0
	if pdf.GetStringWidth(s) <= width-padding {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width-padding {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
