package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"kwmerge/config"
	"kwmerge/internal/keywords"
	"kwmerge/internal/workbook"
)

// MissingSheetError lists the required sheets absent from the input workbook.
type MissingSheetError struct {
	Names []string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("required sheet(s) missing from workbook: %s", strings.Join(e.Names, ", "))
}

// Sheets is the loaded input workbook with the sheets the run works on.
type Sheets struct {
	Workbook    *workbook.Workbook
	Keywords    *workbook.Table
	NoKeywords  *workbook.Table
	Journals    *workbook.Table
	Diagnostics *workbook.Table
}

// Load reads the input workbook and checks the required sheets are present.
// A missing diagnostics sheet is replaced by an empty metric/value table.
func Load(ctx context.Context, src Source, cfg *config.AppConfig) (*Sheets, error) {
	data, err := src.Read(ctx, cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.InputPath, err)
	}
	wb, err := workbook.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", cfg.InputPath, err)
	}

	var missing []string
	sheet := func(name string) *workbook.Table {
		t, ok := wb.Sheet(name)
		if !ok {
			missing = append(missing, name)
		}
		return t
	}
	s := &Sheets{
		Workbook:   wb,
		Keywords:   sheet(cfg.Sheets.Keywords),
		NoKeywords: sheet(cfg.Sheets.NoKeywords),
		Journals:   sheet(cfg.Sheets.Journals),
	}
	if len(missing) > 0 {
		return nil, &MissingSheetError{Names: missing}
	}

	if diag, ok := wb.Sheet(cfg.Sheets.Diagnostics); ok {
		s.Diagnostics = diag
	} else {
		s.Diagnostics = keywords.EmptyDiagnostics()
	}
	return s, nil
}
