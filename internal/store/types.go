package store

// Run is one keyword merge run as stored in keyword_merge_runs.
type Run struct {
	ID               int64   `json:"id"`
	Slug             string  `json:"slug"`
	InputLocation    string  `json:"input_location"`
	OutputLocation   string  `json:"output_location"`
	KeywordRows      int     `json:"keyword_rows"`
	UniqueKeywords   int     `json:"unique_keywords"`
	ResidualArticles int     `json:"residual_articles"`
	ResidualPct      float64 `json:"residual_pct"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}
