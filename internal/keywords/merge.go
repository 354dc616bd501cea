package keywords

import (
	"sort"

	"kwmerge/internal/workbook"
)

// Frequency is the number of keyword records sharing one normalized keyword.
type Frequency struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Merge appends the manual records to the original keyword table. Columns
// are matched by name.
func Merge(original *workbook.Table, manual []Record, cols Columns) *workbook.Table {
	return workbook.Concat(original, RecordTable(manual, cols))
}

// Frequencies counts merged rows per normalized keyword, sorted by count
// descending then keyword ascending. Rows without a keyword are counted
// under the empty keyword so every row is counted exactly once.
func Frequencies(merged *workbook.Table, keywordColumn string, mode Mode) []Frequency {
	idx := merged.Index(keywordColumn)
	counts := make(map[string]int)
	for i := range merged.Rows {
		counts[Normalize(workbook.Text(merged.Get(i, idx)), mode)]++
	}

	out := make([]Frequency, 0, len(counts))
	for kw, n := range counts {
		out = append(out, Frequency{Keyword: kw, Count: n})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Keyword < out[b].Keyword
	})
	return out
}

// FrequencyTable lays frequencies out as a two-column sheet.
func FrequencyTable(freqs []Frequency, cols Columns) *workbook.Table {
	t := workbook.NewTable(cols.Keyword, cols.Frequency)
	for _, f := range freqs {
		var kw any
		if f.Keyword != "" {
			kw = f.Keyword
		}
		t.AppendRow(kw, f.Count)
	}
	return t
}
