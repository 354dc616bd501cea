// Package workbook holds spreadsheet sheets in memory as ordered tables and
// converts them to and from xlsx files.
package workbook

import (
	"fmt"
	"strconv"
)

// Table is one sheet: the header row and the data rows beneath it.
// A cell is nil (empty), a string, a float64 or a bool.
type Table struct {
	Columns []string
	Rows    [][]any
}

// NewTable creates an empty table with the given header.
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the first column called name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Get returns the cell at row i, column idx. Out of range columns are empty.
func (t *Table) Get(i, idx int) any {
	if idx < 0 || idx >= len(t.Rows[i]) {
		return nil
	}
	return t.Rows[i][idx]
}

// Value returns the cell at row i under the column called name.
func (t *Table) Value(i int, name string) any {
	return t.Get(i, t.Index(name))
}

// AppendRow adds a row, padding or truncating it to the header width.
func (t *Table) AppendRow(values ...any) {
	t.Rows = append(t.Rows, pad(values, len(t.Columns)))
}

// Concat returns a new table with the rows of a followed by the rows of b.
// Columns are matched by name; columns only b has are appended after a's.
func Concat(a, b *Table) *Table {
	out := NewTable(a.Columns...)
	pos := make([]int, len(b.Columns))
	for j, name := range b.Columns {
		idx := out.Index(name)
		if idx < 0 {
			out.Columns = append(out.Columns, name)
			idx = len(out.Columns) - 1
		}
		pos[j] = idx
	}

	out.Rows = make([][]any, 0, len(a.Rows)+len(b.Rows))
	for _, row := range a.Rows {
		out.Rows = append(out.Rows, pad(row, len(out.Columns)))
	}
	for _, row := range b.Rows {
		r := make([]any, len(out.Columns))
		for j, v := range row {
			if j < len(pos) {
				r[pos[j]] = v
			}
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// Text renders a cell the way it reads in the sheet. Empty cells are "".
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func pad(row []any, width int) []any {
	out := make([]any, width)
	copy(out, row)
	return out
}
