package keywords

import (
	"math"

	"kwmerge/internal/workbook"
)

// Metric names appended to the diagnostics sheet.
const (
	MetricKeywordRows      = "linhas_keywords_por_artigo_pos_merge"
	MetricUniqueKeywords   = "keywords_unicas_pos_merge"
	MetricResidualArticles = "artigos_sem_keywords_dois_unicos_pos_merge"
	MetricResidualPct      = "artigos_sem_keywords_pct_dos_nao_conferencia_pos_merge"
)

// Diagnostic sheet columns.
const (
	ColumnMetric = "metric"
	ColumnValue  = "value"
)

// Diagnostics are the post-merge coverage metrics of one run.
type Diagnostics struct {
	KeywordRows      int     `json:"keyword_rows"`
	UniqueKeywords   int     `json:"unique_keywords"`
	ResidualArticles int     `json:"residual_articles"`
	ResidualPct      float64 `json:"residual_pct"`
}

// Diagnose computes the metrics. ResidualPct is the share of distinct
// journal articles still without keywords, in percent with two decimals,
// and 0 when the journal listing has no identifiers.
func Diagnose(merged *workbook.Table, freqs []Frequency, residual []ResidualRecord, journals *workbook.Table, cols Columns) Diagnostics {
	left := make(map[string]struct{})
	for _, r := range residual {
		if v, ok := r.DOI.Value(); ok {
			left[v] = struct{}{}
		}
	}
	population := len(distinctIDs(journals, cols.DOI))

	d := Diagnostics{
		KeywordRows:      merged.Len(),
		UniqueKeywords:   len(freqs),
		ResidualArticles: len(left),
	}
	if population > 0 {
		d.ResidualPct = round2(100 * float64(len(left)) / float64(population))
	}
	return d
}

// Table returns the metrics as metric/value rows.
func (d Diagnostics) Table() *workbook.Table {
	t := workbook.NewTable(ColumnMetric, ColumnValue)
	t.AppendRow(MetricKeywordRows, d.KeywordRows)
	t.AppendRow(MetricUniqueKeywords, d.UniqueKeywords)
	t.AppendRow(MetricResidualArticles, d.ResidualArticles)
	t.AppendRow(MetricResidualPct, d.ResidualPct)
	return t
}

// AppendDiagnostics returns prior followed by this run's metrics. Prior rows
// are never changed.
func AppendDiagnostics(prior *workbook.Table, d Diagnostics) *workbook.Table {
	return workbook.Concat(prior, d.Table())
}

// EmptyDiagnostics is used when the workbook has no diagnostics sheet yet.
func EmptyDiagnostics() *workbook.Table {
	return workbook.NewTable(ColumnMetric, ColumnValue)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
