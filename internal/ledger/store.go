package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun inserts a running entry. An empty run.ID is replaced by a new
// UUID; a zero StartedAt by the current time. The stored run is returned.
func (s *Store) BeginRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.Mode == "" {
		run.Mode = ModeMatch
	}
	run.StartedAt = run.StartedAt.UTC()
	run.Status = RunRunning

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, mode, status, input_dir, output_dir, started_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Mode,
		run.Status,
		nullableString(run.InputDir),
		nullableString(run.OutputDir),
		run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordSource stores the outcome of one source for a run.
func (s *Store) RecordSource(ctx context.Context, result SourceResult) error {
	if result.RunID == "" {
		return errors.New("source result has no run id")
	}
	if result.RecordedAt.IsZero() {
		result.RecordedAt = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO source_results (
            run_id, source, status, dataset_path, match_column,
            row_count, file_count, matched, unmatched, multi_matched,
            duplicate_files, duplicate_values, error_message, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RunID,
		result.Source,
		result.Status,
		nullableString(result.DatasetPath),
		nullableString(result.MatchColumn),
		result.Rows,
		result.Files,
		result.Counts.Matched,
		result.Counts.Unmatched,
		result.Counts.MultiMatched,
		result.DuplicateFiles,
		result.DuplicateValues,
		nullableString(result.ErrorMessage),
		result.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert source result: %w", err)
	}
	return nil
}

// FinishRun closes a run with its final status and totals.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs
         SET status = ?, finished_at = ?, sources = ?, failed_sources = ?,
             matched = ?, unmatched = ?, multi_matched = ?, error_message = ?
         WHERE id = ?`,
		run.Status,
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Sources,
		run.FailedSources,
		run.Counts.Matched,
		run.Counts.Unmatched,
		run.Counts.MultiMatched,
		nullableString(run.ErrorMessage),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", run.ID, sql.ErrNoRows)
	}
	return nil
}

const runColumns = "id, mode, status, input_dir, output_dir, started_at, finished_at, sources, failed_sources, matched, unmatched, multi_matched, error_message"

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches one run. A missing run yields (nil, nil).
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

const sourceColumns = "id, run_id, source, status, dataset_path, match_column, row_count, file_count, matched, unmatched, multi_matched, duplicate_files, duplicate_values, error_message, recorded_at"

// Sources returns the recorded source outcomes of a run in recording order.
func (s *Store) Sources(ctx context.Context, runID string) ([]SourceResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sourceColumns+` FROM source_results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list source results: %w", err)
	}
	defer rows.Close()

	var results []SourceResult
	for rows.Next() {
		result, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
