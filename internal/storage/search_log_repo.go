package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"cvsearch/internal/models"
)

// Execer is the slice of pgxpool.Pool the search log needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const searchRunsSchema = `
CREATE TABLE IF NOT EXISTS search_runs (
	run_id      uuid PRIMARY KEY,
	keyword     text NOT NULL,
	variants    text[] NOT NULL,
	scanned     integer NOT NULL,
	matched     integer NOT NULL,
	top_file    text,
	duration_ms integer NOT NULL,
	created_at  timestamptz NOT NULL DEFAULT now()
)`

// SearchLogRepo appends one row per finished search. Extracted text is never
// stored.
type SearchLogRepo struct {
	db Execer
}

func NewSearchLogRepo(db *DB) *SearchLogRepo {
	return &SearchLogRepo{db: db.Pool}
}

func NewSearchLogRepoWith(db Execer) *SearchLogRepo {
	return &SearchLogRepo{db: db}
}

func (r *SearchLogRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, searchRunsSchema); err != nil {
		return fmt.Errorf("create search_runs: %w", err)
	}
	return nil
}

func (r *SearchLogRepo) Insert(ctx context.Context, run models.SearchRun) error {
	variants := run.Variants
	if variants == nil {
		variants = []string{}
	}
	_, err := r.db.Exec(ctx, `
INSERT INTO search_runs(run_id, keyword, variants, scanned, matched, top_file, duration_ms)
VALUES ($1::uuid, $2, $3, $4, $5, NULLIF($6,''), $7)`,
		run.RunID, run.Keyword, variants, run.Scanned, run.Matched, run.TopFile, run.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert search run: %w", err)
	}
	return nil
}
