package keywords

import "kwmerge/internal/workbook"

// ResidualRecord is a journal-listing row whose article still has no keyword.
type ResidualRecord struct {
	DOI             ArticleID
	PMID            any
	Journal         any
	PublisherDomain any
}

// Residual returns every journal row, duplicates included, whose identifier
// does not appear in the merged keyword table. Rows with an absent
// identifier cannot be matched and are always returned.
func Residual(merged, journals *workbook.Table, cols Columns) []ResidualRecord {
	covered := distinctIDs(merged, cols.DOI)

	doi := journals.Index(cols.DOI)
	pmid := journals.Index(cols.PMID)
	journal := journals.Index(cols.Journal)
	domain := journals.Index(cols.PublisherDomain)

	var out []ResidualRecord
	for i := range journals.Rows {
		id := IDFromCell(journals.Get(i, doi))
		if v, ok := id.Value(); ok {
			if _, found := covered[v]; found {
				continue
			}
		}
		out = append(out, ResidualRecord{
			DOI:             id,
			PMID:            journals.Get(i, pmid),
			Journal:         journals.Get(i, journal),
			PublisherDomain: journals.Get(i, domain),
		})
	}
	return out
}

// ResidualTable lays residual records out with the fixed note column.
func ResidualTable(records []ResidualRecord, cols Columns) *workbook.Table {
	t := workbook.NewTable(cols.DOI, cols.PMID, cols.Journal, cols.PublisherDomain, cols.Note)
	for _, r := range records {
		t.AppendRow(r.DOI.Cell(), r.PMID, r.Journal, r.PublisherDomain, ResidualNote)
	}
	return t
}
