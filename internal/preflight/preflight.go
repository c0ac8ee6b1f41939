package preflight

import (
	"strings"

	"pdfmatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config. Explicitly
// configured sources are checked individually; otherwise the input
// directory must simply be readable.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableDirectory("Input directory", cfg.Paths.InputDir),
		CheckReadableDirectory("Dataset directory", cfg.Paths.DatasetDir),
		CheckDatasets("Dataset files", cfg.Paths.DatasetDir, cfg.Dataset.Pattern),
		CheckWritableTarget("Output directory", cfg.Paths.OutputDir),
		CheckWritableTarget("State directory", cfg.Paths.StateDir),
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckWritableTarget("Log directory", cfg.Paths.LogDir))
	}
	for _, source := range cfg.Matching.Sources {
		results = append(results, CheckSourceDirectory(cfg.Paths.InputDir, source))
	}
	return results
}

// Failures returns the results that did not pass.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Summary joins failed results into one line for error messages.
func Summary(results []Result) string {
	parts := make([]string, 0, len(results))
	for _, r := range Failures(results) {
		parts = append(parts, r.Name+": "+r.Detail)
	}
	return strings.Join(parts, "; ")
}
