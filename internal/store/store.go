package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uniplaces/carbon"
	"go.uber.org/zap"

	"kwmerge/internal/helpers"
	"kwmerge/internal/keywords"
)

// Store is the MySQL run log.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetDB returns the underlying sql.DB instance
func (store *Store) GetDB() *sql.DB {
	return store.db
}

// CreateRun inserts a run and returns it with its id and slug filled in.
func (store *Store) CreateRun(ctx context.Context, run Run) (Run, error) {
	if run.InputLocation == "" || run.OutputLocation == "" {
		return Run{}, errors.New("missing required fields")
	}
	if run.Slug == "" {
		run.Slug = helpers.GenerateRandomString(14)
	}
	now := carbon.Now().DateTimeString()
	if run.CreatedAt == "" {
		run.CreatedAt = now
	}
	run.UpdatedAt = now

	res, err := store.db.ExecContext(ctx,
		"INSERT INTO keyword_merge_runs (slug, input_location, output_location, keyword_rows, unique_keywords, residual_articles, residual_pct, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.Slug, run.InputLocation, run.OutputLocation,
		int64(run.KeywordRows), int64(run.UniqueKeywords), int64(run.ResidualArticles), run.ResidualPct,
		run.CreatedAt, run.UpdatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	run.ID, err = res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("run id: %w", err)
	}
	return run, nil
}

// SaveFrequencies stores the keyword frequency table of a run in one
// transaction.
func (store *Store) SaveFrequencies(ctx context.Context, runID int64, freqs []keywords.Frequency) error {
	if runID == 0 {
		return errors.New("missing run id")
	}
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, f := range freqs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO keyword_merge_frequencies (run_id, keyword, frequency) VALUES (?, ?, ?)",
			runID, f.Keyword, int64(f.Count))
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				zap.S().Warnw("rollback keyword frequencies", "run_id", runID, "error", rbErr)
			}
			return fmt.Errorf("insert frequency %q: %w", f.Keyword, err)
		}
	}
	return tx.Commit()
}
