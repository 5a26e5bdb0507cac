package model

import (
	"fmt"
	"strings"
)

// Table is a grid of cell text recovered from aligned lines.
type Table struct {
	Rows    [][]string
	Columns []float64 // X positions of the column boundaries on the source page
}

func (t *Table) Kind() NodeKind { return KindTable }

// NewTable creates an empty table with the given dimensions.
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows: make([][]string, rows),
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]string, cols)
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the widest row's cell count.
func (t *Table) ColCount() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// Cell returns the text at the given position, or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// SetCell sets the text at the given position
func (t *Table) SetCell(row, col int, text string) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	t.Rows[row][col] = text
	return nil
}

// Text returns the table as tab-separated lines.
func (t *Table) Text() string {
	var sb strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(row, "\t"))
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format, treating the first row
// as the header.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}
	cols := t.ColCount()

	var sb strings.Builder
	writeRow := func(row []string) {
		for j := 0; j < cols; j++ {
			cell := ""
			if j < len(row) {
				cell = strings.ReplaceAll(row[j], "|", `\|`)
			}
			sb.WriteString("| ")
			sb.WriteString(cell)
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(t.Rows[0])
	for j := 0; j < cols; j++ {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range t.Rows[1:] {
		writeRow(row)
	}
	return sb.String()
}
