package keywords

import (
	"strings"

	"kwmerge/internal/workbook"
)

// ExpandManual turns the free-text manual keyword column of the no-keyword
// sheet into one record per keyword, in row order then fragment order.
// A missing column or empty cell contributes nothing. noKw is not modified.
func ExpandManual(noKw *workbook.Table, cols Columns, manualColumn string, mode Mode) []Record {
	manual := noKw.Index(manualColumn)
	doi := noKw.Index(cols.DOI)
	pmid := noKw.Index(cols.PMID)
	journal := noKw.Index(cols.Journal)
	domain := noKw.Index(cols.PublisherDomain)

	var out []Record
	for i := range noKw.Rows {
		raw := strings.TrimSpace(workbook.Text(noKw.Get(i, manual)))
		if raw == "" {
			continue
		}
		for _, part := range SplitManual(raw) {
			kw := Normalize(part, mode)
			if kw == "" {
				continue
			}
			out = append(out, Record{
				DOI:             IDFromCell(noKw.Get(i, doi)),
				PMID:            noKw.Get(i, pmid),
				Journal:         noKw.Get(i, journal),
				PublisherDomain: noKw.Get(i, domain),
				Keyword:         kw,
				Source:          SourceManual,
			})
		}
	}
	return out
}
