package ledger_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"pdfmatch/internal/ledger"
)

func openStore(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "state", "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	run, err := store.BeginRun(ctx, ledger.Run{InputDir: "/in", OutputDir: "/out"})
	if err != nil {
		t.Fatalf("BeginRun: %v", err)
	}
	if run.ID == "" || run.Status != ledger.RunRunning || run.Mode != ledger.ModeMatch {
		t.Fatalf("unexpected run %+v", run)
	}

	results := []ledger.SourceResult{
		{RunID: run.ID, Source: "DSS", Status: ledger.SourceCompleted, DatasetPath: "/d/scopus_dss.csv", MatchColumn: "Title", Rows: 10, Files: 8, Counts: ledger.Counts{Matched: 7, Unmatched: 2, MultiMatched: 1}, DuplicateValues: 1},
		{RunID: run.ID, Source: "ISJ", Status: ledger.SourceFailed, ErrorMessage: "missing column DOI"},
	}
	for _, r := range results {
		if err := store.RecordSource(ctx, r); err != nil {
			t.Fatalf("RecordSource: %v", err)
		}
	}

	run.Status = ledger.RunPartial
	run.Sources = 2
	run.FailedSources = 1
	run.Counts = results[0].Counts
	if err := store.FinishRun(ctx, run); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	fetched, err := store.GetRun(ctx, run.ID)
	if err != nil || fetched == nil {
		t.Fatalf("GetRun: %v %v", fetched, err)
	}
	if fetched.Status != ledger.RunPartial || fetched.Counts.Total() != 10 || fetched.FinishedAt.IsZero() {
		t.Fatalf("unexpected finished run %+v", fetched)
	}
	if fetched.InputDir != "/in" || fetched.ErrorMessage != "" {
		t.Fatalf("unexpected run fields %+v", fetched)
	}

	sources, err := store.Sources(ctx, run.ID)
	if err != nil {
		t.Fatalf("Sources: %v", err)
	}
	if len(sources) != 2 || sources[0].Source != "DSS" || sources[1].Status != ledger.SourceFailed {
		t.Fatalf("unexpected sources %+v", sources)
	}
	if sources[0].Counts.Matched != 7 || sources[0].Rows != 10 || sources[0].DuplicateValues != 1 {
		t.Fatalf("unexpected DSS result %+v", sources[0])
	}
	if sources[1].ErrorMessage != "missing column DOI" {
		t.Fatalf("unexpected ISJ error %q", sources[1].ErrorMessage)
	}
}

func TestRunsNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := store.BeginRun(ctx, ledger.Run{ID: string(rune('a' + i)), StartedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("BeginRun: %v", err)
		}
	}

	runs, err := store.Runs(ctx, 2)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Fatalf("unexpected runs %+v", runs)
	}

	missing, err := store.GetRun(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("expected nil run, got %v %v", missing, err)
	}
}

func TestFinishUnknownRun(t *testing.T) {
	store := openStore(t)
	err := store.FinishRun(context.Background(), ledger.Run{ID: "ghost", Status: ledger.RunCompleted})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := ledger.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = db.Close()

	if _, err := ledger.Open(path); !errors.Is(err, ledger.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
