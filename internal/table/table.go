// Package table renders aligned text tables for the terminal.
package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Column represents a table column with its configuration.
type Column struct {
	Header   string
	MinWidth int
	MaxWidth int
	Align    Alignment
}

// Alignment specifies how content should be aligned within a column.
type Alignment int

const (
	// AlignLeft aligns content to the left.
	AlignLeft Alignment = iota
	// AlignRight aligns content to the right.
	AlignRight
)

const (
	cellSeparator = " │ "
	ellipsis      = "…"
)

// Table represents a table with columns and rows. Widths are measured in
// terminal cells, so wide glyphs and braille patterns line up.
type Table struct {
	columns []Column
	rows    [][]string
	widths  []int
}

// New creates a new table with the specified columns.
func New(columns ...Column) *Table {
	t := &Table{
		columns: columns,
		widths:  make([]int, len(columns)),
	}

	for i, col := range columns {
		t.widths[i] = max(runewidth.StringWidth(col.Header), col.MinWidth)
	}
	return t
}

// AddRow adds a row of values. Missing values are blank and extras are dropped.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	copy(row, values)

	for i, val := range row {
		t.widths[i] = max(t.widths[i], runewidth.StringWidth(val))
	}
	t.rows = append(t.rows, row)
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int {
	return len(t.rows)
}

func (t *Table) finalWidths() []int {
	widths := make([]int, len(t.widths))
	for i, col := range t.columns {
		widths[i] = t.widths[i]
		if col.MaxWidth > 0 && widths[i] > col.MaxWidth {
			widths[i] = col.MaxWidth
		}
	}
	return widths
}

func formatCell(value string, width int, align Alignment) string {
	value = runewidth.Truncate(value, width, ellipsis)
	if align == AlignRight {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}

func (t *Table) cells(values []string, widths []int) []string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = formatCell(values[i], widths[i], col.Align)
	}
	return parts
}

func (t *Table) headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	return headers
}

// Style controls how Print decorates the table.
type Style struct {
	// Indent is the prefix added to each line.
	Indent string
	// Header is applied to the header row.
	Header lipgloss.Style
	// HighlightColumn is the index of the column to highlight, or -1 for none.
	HighlightColumn int
	// Highlight is applied to the highlighted column of every row.
	Highlight lipgloss.Style
}

// DefaultStyle returns a style with a bold header and a yellow highlight
// rendered through r.
func DefaultStyle(r *lipgloss.Renderer) Style {
	return Style{
		Indent:          "  ",
		Header:          r.NewStyle().Bold(true),
		HighlightColumn: -1,
		Highlight:       r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// Render returns the undecorated table.
func (t *Table) Render() string {
	widths := t.finalWidths()
	lines := make([]string, 0, len(t.rows)+2)

	lines = append(lines, strings.Join(t.cells(t.headers(), widths), cellSeparator))
	lines = append(lines, separator(widths))
	for _, row := range t.rows {
		lines = append(lines, strings.Join(t.cells(row, widths), cellSeparator))
	}
	return strings.Join(lines, "\n")
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "─┼─")
}

// Print writes the table to w using style.
func (t *Table) Print(w io.Writer, style Style) error {
	widths := t.finalWidths()

	header := style.Header.Render(strings.Join(t.cells(t.headers(), widths), cellSeparator))
	if _, err := fmt.Fprintf(w, "%s%s\n%s%s\n", style.Indent, header, style.Indent, separator(widths)); err != nil {
		return err
	}

	for _, row := range t.rows {
		parts := t.cells(row, widths)
		if hc := style.HighlightColumn; hc >= 0 && hc < len(parts) {
			parts[hc] = style.Highlight.Render(parts[hc])
		}
		if _, err := fmt.Fprintf(w, "%s%s\n", style.Indent, strings.Join(parts, cellSeparator)); err != nil {
			return err
		}
	}
	return nil
}
