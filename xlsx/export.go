// Package xlsx exports detected tables to an Excel workbook and reads them
// back.
//
// Each table becomes one sheet named "Table 1", "Table 2" and so on, with
// the first row styled as a header.
package xlsx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/pdfword/model"
)

// ErrNoTables is returned when there is nothing to export.
var ErrNoTables = errors.New("xlsx: no tables to export")

const (
	defaultSheet = "Sheet1"
	minColWidth  = 8
	maxColWidth  = 60
)

// SheetName returns the sheet name used for the i-th table (0-indexed).
func SheetName(i int) string {
	return fmt.Sprintf("Table %d", i+1)
}

// Export writes every table to its own sheet and returns the workbook bytes.
// Tables without rows are skipped; ErrNoTables is returned when none remain.
func Export(tables []*model.Table, meta model.Metadata) ([]byte, error) {
	var buf bytes.Buffer
	if err := ExportTo(&buf, tables, meta); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportDocument exports the tables of doc.
func ExportDocument(doc *model.Document) ([]byte, error) {
	return Export(doc.Tables(), doc.Metadata)
}

// ExportTo writes the workbook to w.
func ExportTo(w io.Writer, tables []*model.Table, meta model.Metadata) error {
	var kept []*model.Table
	for _, t := range tables {
		if t != nil && t.RowCount() > 0 && t.ColCount() > 0 {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return ErrNoTables
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E7E6E6"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, t := range kept {
		name := SheetName(i)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeTable(f, name, t, header); err != nil {
			return fmt.Errorf("write sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:       meta.Title,
		Subject:     meta.Subject,
		Creator:     "pdfword",
		Description: "Tables detected in the source PDF",
	}); err != nil {
		return fmt.Errorf("set document properties: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, t *model.Table, headerStyle int) error {
	cols := t.ColCount()
	widths := make([]int, cols)

	for r := range t.Rows {
		row := make([]any, cols)
		for c := 0; c < cols; c++ {
			text := t.Cell(r, c)
			row[c] = text
			if n := utf8.RuneCountInString(text); n > widths[c] {
				widths[c] = n
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for c, w := range widths {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := float64(min(max(w+2, minColWidth), maxColWidth))
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// Read returns the tables stored in a workbook, one per sheet in sheet
// order. Trailing empty cells are not padded.
func Read(r io.Reader) ([]*model.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var tables []*model.Table
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		tables = append(tables, &model.Table{Rows: rows})
	}
	return tables, nil
}

// Open reads the tables of a workbook file.
func Open(filename string) ([]*model.Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return Read(file)
}
