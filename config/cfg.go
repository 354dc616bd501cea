package config

// AppConfig is everything a keyword merge run needs.
type AppConfig struct {
	InputPath    string         `yaml:"input_path"`
	OutputPath   string         `yaml:"output_path"`
	Sheets       SheetConfig    `yaml:"sheets"`
	Columns      ColumnConfig   `yaml:"columns"`
	ManualColumn string         `yaml:"manual_column"`
	Normalize    string         `yaml:"normalize"`
	AWS          AWSConfig      `yaml:"aws"`
	Database     DatabaseConfig `yaml:"database"`
}

// SheetConfig names the sheets the run reads or rewrites.
type SheetConfig struct {
	Keywords    string `yaml:"keywords"`
	Frequency   string `yaml:"frequency"`
	NoKeywords  string `yaml:"no_keywords"`
	Journals    string `yaml:"journals"`
	Diagnostics string `yaml:"diagnostics"`
	Residual    string `yaml:"residual"`
}

// ColumnConfig names the columns shared by the keyword, no-keyword and
// journal sheets, plus the derived columns the run writes.
type ColumnConfig struct {
	DOI             string `yaml:"doi"`
	PMID            string `yaml:"pmid"`
	Journal         string `yaml:"journal"`
	PublisherDomain string `yaml:"publisher_domain"`
	Keyword         string `yaml:"keyword"`
	Source          string `yaml:"source"`
	Frequency       string `yaml:"frequency"`
	Note            string `yaml:"note"`
}

// AWSConfig is only needed for s3:// locations or a results queue.
type AWSConfig struct {
	Region          string `yaml:"region"`
	ResultsQueueURL string `yaml:"results_queue_url"`
}

// DatabaseConfig enables the MySQL run log when DSN is set.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}
