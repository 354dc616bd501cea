// Package pipeline runs a keyword merge over a workbook: load, expand the
// manual keywords, merge, find the residual articles, append diagnostics and
// write the new workbook.
package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/uniplaces/carbon"
	"go.uber.org/zap"

	"kwmerge/config"
	"kwmerge/internal/helpers"
	"kwmerge/internal/keywords"
)

// Source reads whole files.
type Source interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// Files reads and writes whole files.
type Files interface {
	Source
	Write(ctx context.Context, location string, data []byte) error
}

// Result is what a run produced besides the workbook itself.
type Result struct {
	Summary     Summary
	Frequencies []keywords.Frequency
}

// Pipeline runs one merge per call to Run.
type Pipeline struct {
	cfg   *config.AppConfig
	files Files
	log   *zap.SugaredLogger
}

// New creates a Pipeline. cfg must already be validated.
func New(cfg *config.AppConfig, files Files, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{cfg: cfg, files: files, log: log}
}

// Run executes the merge and writes the output workbook. Nothing is written
// when loading fails.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	mode, err := keywords.ParseMode(p.cfg.Normalize)
	if err != nil {
		return nil, err
	}
	cols := p.cfg.KeywordColumns()

	sheets, err := Load(ctx, p.files, p.cfg)
	if err != nil {
		return nil, err
	}
	p.log.Infow("workbook loaded",
		"input", p.cfg.InputPath,
		"sheets", len(sheets.Workbook.Names()),
		"keyword_rows", sheets.Keywords.Len(),
		"no_keyword_rows", sheets.NoKeywords.Len(),
		"journal_rows", sheets.Journals.Len())

	manual := keywords.ExpandManual(sheets.NoKeywords, cols, p.cfg.ManualColumn, mode)
	if sheets.NoKeywords.Index(p.cfg.ManualColumn) < 0 {
		p.log.Warnw("manual keyword column not found", "sheet", p.cfg.Sheets.NoKeywords, "column", p.cfg.ManualColumn)
	}
	p.log.Infow("manual keywords expanded", "records", len(manual), "mode", mode)

	merged := keywords.Merge(sheets.Keywords, manual, cols)
	freqs := keywords.Frequencies(merged, cols.Keyword, mode)
	p.log.Infow("keywords merged", "rows", merged.Len(), "unique", len(freqs))

	residual := keywords.Residual(merged, sheets.Journals, cols)
	diag := keywords.Diagnose(merged, freqs, residual, sheets.Journals, cols)
	p.log.Infow("residual articles found", "rows", len(residual), "distinct", diag.ResidualArticles, "pct", diag.ResidualPct)

	out := sheets.Workbook.Clone()
	out.Set(p.cfg.Sheets.Keywords, merged)
	out.Set(p.cfg.Sheets.Frequency, keywords.FrequencyTable(freqs, cols))
	out.Set(p.cfg.Sheets.NoKeywords, sheets.NoKeywords)
	out.Set(p.cfg.Sheets.Residual, keywords.ResidualTable(residual, cols))
	out.Set(p.cfg.Sheets.Diagnostics, keywords.AppendDiagnostics(sheets.Diagnostics, diag))

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode output workbook: %w", err)
	}
	if err := p.files.Write(ctx, p.cfg.OutputPath, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write %s: %w", p.cfg.OutputPath, err)
	}
	p.log.Infow("output workbook written", "output", p.cfg.OutputPath, "bytes", buf.Len(), "sheets", len(out.Names()))

	return &Result{
		Summary: Summary{
			RunID:       helpers.GenerateRandomString(14),
			Input:       p.cfg.InputPath,
			Output:      p.cfg.OutputPath,
			Diagnostics: diag,
			FinishedAt:  carbon.Now().DateTimeString(),
		},
		Frequencies: freqs,
	}, nil
}
