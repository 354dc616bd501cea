// Package keywords merges manually entered article keywords into the
// extracted keyword table and derives frequency, residual and diagnostic
// tables from the result.
package keywords

import "kwmerge/internal/workbook"

const (
	// SourceManual tags keyword records typed in by hand.
	SourceManual = "manual"
	// ResidualNote marks journal rows still without keywords after the merge.
	ResidualNote = "continua_sem_keywords_apos_uniao"
)

// Columns names the sheet columns the merge reads and writes.
type Columns struct {
	DOI             string
	PMID            string
	Journal         string
	PublisherDomain string
	Keyword         string
	Source          string
	Frequency       string
	Note            string
}

// ArticleID is an article identifier that may be absent. Absent identifiers
// never match anything and are not counted as distinct articles.
type ArticleID struct {
	value   string
	present bool
}

// IDFromCell reads an identifier from a sheet cell. Empty cells are absent.
func IDFromCell(v any) ArticleID {
	if v == nil {
		return ArticleID{}
	}
	return ArticleID{value: workbook.Text(v), present: true}
}

// Value returns the identifier text and whether it is present.
func (id ArticleID) Value() (string, bool) {
	return id.value, id.present
}

func (id ArticleID) String() string {
	return id.value
}

// Cell returns the identifier as a sheet cell.
func (id ArticleID) Cell() any {
	if !id.present {
		return nil
	}
	return id.value
}

// Record is one (article, keyword) pair.
type Record struct {
	DOI             ArticleID
	PMID            any
	Journal         any
	PublisherDomain any
	Keyword         string
	Source          string
}

// RecordTable lays records out under the keyword sheet columns.
func RecordTable(records []Record, cols Columns) *workbook.Table {
	t := workbook.NewTable(cols.DOI, cols.PMID, cols.Journal, cols.PublisherDomain, cols.Keyword, cols.Source)
	for _, r := range records {
		t.AppendRow(r.DOI.Cell(), r.PMID, r.Journal, r.PublisherDomain, r.Keyword, r.Source)
	}
	return t
}

// distinctIDs collects the present identifiers of a column.
func distinctIDs(t *workbook.Table, column string) map[string]struct{} {
	idx := t.Index(column)
	seen := make(map[string]struct{})
	for i := range t.Rows {
		if v, ok := IDFromCell(t.Get(i, idx)).Value(); ok {
			seen[v] = struct{}{}
		}
	}
	return seen
}
