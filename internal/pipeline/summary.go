package pipeline

import (
	"fmt"
	"io"
	"strconv"

	"kwmerge/internal/keywords"
)

// Summary describes a finished run.
type Summary struct {
	RunID  string `json:"run_id"`
	Input  string `json:"input"`
	Output string `json:"output"`
	keywords.Diagnostics
	FinishedAt string `json:"finished_at"`
}

// WriteReport prints the human-readable completion summary.
func (s Summary) WriteReport(w io.Writer) error {
	_, err := fmt.Fprintf(w, `Keyword merge complete.
Output file: %s
Post-merge summary:
 - %s: %d
 - %s: %d
 - %s: %d
 - %s: %s %%
`,
		s.Output,
		keywords.MetricKeywordRows, s.KeywordRows,
		keywords.MetricUniqueKeywords, s.UniqueKeywords,
		keywords.MetricResidualArticles, s.ResidualArticles,
		keywords.MetricResidualPct, strconv.FormatFloat(s.ResidualPct, 'f', -1, 64))
	return err
}
