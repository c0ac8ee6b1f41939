package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdfmatch/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckReadableDirectory("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWritableTargetMissingButCreatable(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "out")
	result := CheckWritableTarget("Output", target)
	if !result.Passed || !strings.Contains(result.Detail, "will be created") {
		t.Fatalf("expected creatable target, got %+v", result)
	}
}

func TestCheckDatasets(t *testing.T) {
	dir := t.TempDir()
	if r := CheckDatasets("Datasets", dir, "scopus_*.csv"); r.Passed {
		t.Fatalf("expected failure with no datasets, got %+v", r)
	}
	if err := os.WriteFile(filepath.Join(dir, "scopus_dss.csv"), []byte("Title\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckDatasets("Datasets", dir, "scopus_*.csv"); !r.Passed {
		t.Fatalf("expected pass, got %+v", r)
	}
}

func TestRunAll(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "pdfs")
	cfg.Paths.DatasetDir = filepath.Join(base, "datasets")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = ""
	cfg.Matching.Sources = []string{"DSS", "ISJ"}

	for _, dir := range []string{filepath.Join(cfg.Paths.InputDir, "DSS"), cfg.Paths.DatasetDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(cfg.Paths.DatasetDir, "scopus_all.csv"), []byte("Title\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := RunAll(&cfg)
	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d: %+v", len(results), results)
	}
	failed := Failures(results)
	if len(failed) != 1 || failed[0].Name != "Source ISJ" {
		t.Fatalf("expected only ISJ to fail, got %+v", failed)
	}
	if summary := Summary(results); !strings.HasPrefix(summary, "Source ISJ: ") {
		t.Fatalf("unexpected summary %q", summary)
	}
}
