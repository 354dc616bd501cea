package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"kwmerge/internal/envHelper"
	"kwmerge/internal/keywords"
)

// DefaultConfigFile is read when KWMERGE_CONFIG is unset. It may be absent.
const DefaultConfigFile = "kwmerge.yaml"

// ErrSameLocation is returned when the output would overwrite the input.
var ErrSameLocation = errors.New("output location must differ from input location")

// Default returns the settings of the literature review workbook this tool
// was written for.
func Default() *AppConfig {
	return &AppConfig{
		InputPath:  "RP11(final antes de unir KWs).xlsx",
		OutputPath: "RP12[KWs unidas com manuais].xlsx",
		Sheets: SheetConfig{
			Keywords:    "keywords_por_artigo",
			Frequency:   "keywords_frequencia",
			NoKeywords:  "artigos_sem_keywords",
			Journals:    "revistas_por_artigo",
			Diagnostics: "diagnostico",
			Residual:    "artigos_sem_keywords_restantes",
		},
		Columns: ColumnConfig{
			DOI:             "doi",
			PMID:            "pmid",
			Journal:         "revista",
			PublisherDomain: "publisher_domain",
			Keyword:         "keyword",
			Source:          "fonte_keyword",
			Frequency:       "frequencia",
			Note:            "observacao",
		},
		ManualColumn: "KW - busca manual",
		Normalize:    string(keywords.ModeUpper),
	}
}

// Load builds the configuration: defaults, then the optional YAML file, then
// .env and process environment overrides. The result is validated.
func Load() (*AppConfig, error) {
	envHelper.LoadEnv()

	cfg := Default()
	path := envHelper.GetEnvVariable("KWMERGE_CONFIG", DefaultConfigFile)
	if err := cfg.mergeFile(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the keys present in a YAML file. A missing file is not an error.
func (c *AppConfig) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *AppConfig) applyEnvOverrides() {
	override := func(dst *string, key string) {
		*dst = envHelper.GetEnvVariable(key, *dst)
	}
	override(&c.InputPath, "INPUT_XLSX")
	override(&c.OutputPath, "OUTPUT_XLSX")
	override(&c.Normalize, "KEYWORD_NORMALIZE")
	override(&c.AWS.Region, "AWS_REGION")
	override(&c.AWS.ResultsQueueURL, "RESULTS_QUEUE_URL")
	override(&c.Database.DSN, "DB_DSN")
}

// Validate checks the settings a run cannot proceed without.
func (c *AppConfig) Validate() error {
	if c.InputPath == "" || c.OutputPath == "" {
		return errors.New("input and output paths are required")
	}
	if c.InputPath == c.OutputPath {
		return fmt.Errorf("%w: %s", ErrSameLocation, c.InputPath)
	}
	if _, err := keywords.ParseMode(c.Normalize); err != nil {
		return err
	}
	if c.ManualColumn == "" {
		return errors.New("manual keyword column name is required")
	}

	sheets := []string{
		c.Sheets.Keywords, c.Sheets.Frequency, c.Sheets.NoKeywords,
		c.Sheets.Journals, c.Sheets.Diagnostics, c.Sheets.Residual,
	}
	seen := make(map[string]bool, len(sheets))
	for _, name := range sheets {
		if name == "" {
			return errors.New("all sheet names are required")
		}
		if seen[name] {
			return fmt.Errorf("sheet name %q is used twice", name)
		}
		seen[name] = true
	}

	cols := []string{
		c.Columns.DOI, c.Columns.PMID, c.Columns.Journal, c.Columns.PublisherDomain,
		c.Columns.Keyword, c.Columns.Source, c.Columns.Frequency, c.Columns.Note,
	}
	for _, name := range cols {
		if name == "" {
			return errors.New("all column names are required")
		}
	}
	return nil
}

// NeedsAWS reports whether any configured location or channel is on AWS.
func (c *AppConfig) NeedsAWS() bool {
	return strings.HasPrefix(c.InputPath, "s3://") ||
		strings.HasPrefix(c.OutputPath, "s3://") ||
		c.AWS.ResultsQueueURL != ""
}

// KeywordColumns maps the column settings onto the merge's column names.
func (c *AppConfig) KeywordColumns() keywords.Columns {
	return keywords.Columns{
		DOI:             c.Columns.DOI,
		PMID:            c.Columns.PMID,
		Journal:         c.Columns.Journal,
		PublisherDomain: c.Columns.PublisherDomain,
		Keyword:         c.Columns.Keyword,
		Source:          c.Columns.Source,
		Frequency:       c.Columns.Frequency,
		Note:            c.Columns.Note,
	}
}
