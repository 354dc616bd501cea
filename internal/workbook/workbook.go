package workbook

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Workbook is an ordered set of named sheets.
type Workbook struct {
	names  []string
	sheets map[string]*Table
}

// New creates an empty workbook.
func New() *Workbook {
	return &Workbook{sheets: make(map[string]*Table)}
}

// Names returns the sheet names in workbook order.
func (w *Workbook) Names() []string {
	return append([]string(nil), w.names...)
}

// Sheet returns the table stored under name.
func (w *Workbook) Sheet(name string) (*Table, bool) {
	t, ok := w.sheets[name]
	return t, ok
}

// Set stores t under name. An existing sheet keeps its position; a new one
// goes last.
func (w *Workbook) Set(name string, t *Table) {
	if _, ok := w.sheets[name]; !ok {
		w.names = append(w.names, name)
	}
	w.sheets[name] = t
}

// Clone returns a workbook sharing the same tables, so sheets can be replaced
// without touching w.
func (w *Workbook) Clone() *Workbook {
	out := New()
	for _, name := range w.names {
		out.Set(name, w.sheets[name])
	}
	return out
}

// Read parses every sheet of an xlsx file. The first row of a sheet is its
// header.
func Read(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer closeFile(f)

	wb := New()
	for _, name := range f.GetSheetList() {
		t, err := readSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		wb.Set(name, t)
	}
	return wb, nil
}

// WriteTo encodes the workbook as xlsx.
func (w *Workbook) WriteTo(dst io.Writer) (int64, error) {
	if len(w.names) == 0 {
		return 0, errors.New("workbook has no sheets")
	}

	f := excelize.NewFile()
	defer closeFile(f)

	first := f.GetSheetName(0)
	for i, name := range w.names {
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return 0, fmt.Errorf("name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return 0, fmt.Errorf("create sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, w.sheets[name]); err != nil {
			return 0, fmt.Errorf("write sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)
	return f.WriteTo(dst)
}

func readSheet(f *excelize.File, sheet string) (*Table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	t := &Table{}
	if len(rows) == 0 {
		return t, nil
	}

	t.Columns = append([]string(nil), rows[0]...)
	for r := 1; r < len(rows); r++ {
		raw := rows[r]
		row := make([]any, len(raw))
		for c, text := range raw {
			if text == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, err
			}
			row[c] = decodeCell(typ, text)
		}
		// data wider than the header keeps its cells under unnamed columns
		for len(t.Columns) < len(row) {
			t.Columns = append(t.Columns, "")
		}
		t.Rows = append(t.Rows, row)
	}
	for i, row := range t.Rows {
		if len(row) < len(t.Columns) {
			t.Rows[i] = pad(row, len(t.Columns))
		}
	}
	return t, nil
}

func decodeCell(typ excelize.CellType, text string) any {
	switch typ {
	case excelize.CellTypeBool:
		return text == "1" || strings.EqualFold(text, "true")
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return v
		}
	}
	return text
}

func writeSheet(f *excelize.File, sheet string, t *Table) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if len(t.Columns) > 0 {
		header := make([]any, len(t.Columns))
		for i, c := range t.Columns {
			header[i] = c
		}
		if err := sw.SetRow("A1", header); err != nil {
			return err
		}
	}
	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	return sw.Flush()
}

func closeFile(f *excelize.File) {
	if err := f.Close(); err != nil {
		zap.S().Warnw("closing workbook", "error", err)
	}
}
