package workflow

import (
	"time"

	"pdfmatch/internal/aggregate"
	"pdfmatch/internal/duplicates"
	"pdfmatch/internal/ledger"
	"pdfmatch/internal/profile"
)

// SourceReport describes how one source went.
type SourceReport struct {
	Source      string
	Profile     profile.SourceProfile
	DatasetPath string
	MatchColumn string
	Rows        int
	Files       int
	Counts      ledger.Counts
	Duplicates  duplicates.Report
	// Written lists the partition files stored for the source.
	Written []string
	Status  ledger.SourceStatus
	Err     error
}

// Completed reports whether the source produced partitions.
func (s SourceReport) Completed() bool {
	return s.Status == ledger.SourceCompleted
}

func (s SourceReport) ledgerEntry(runID string) ledger.SourceResult {
	entry := ledger.SourceResult{
		RunID:           runID,
		Source:          s.Source,
		Status:          s.Status,
		DatasetPath:     s.DatasetPath,
		MatchColumn:     s.MatchColumn,
		Rows:            s.Rows,
		Files:           s.Files,
		Counts:          s.Counts,
		DuplicateFiles:  len(s.Duplicates.Files),
		DuplicateValues: len(s.Duplicates.Values),
	}
	if s.Err != nil {
		entry.ErrorMessage = s.Err.Error()
	}
	return entry
}

// RunReport is the result of Runner.Run.
type RunReport struct {
	RunID      string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Sources    []SourceReport
	// Aggregate holds the merged tables of the completed sources.
	Aggregate aggregate.Result
	// Files lists the aggregate outputs written, including the workbook.
	Files []string
}

// Totals sums the counts of every completed source.
func (r *RunReport) Totals() ledger.Counts {
	var total ledger.Counts
	for _, s := range r.Sources {
		if s.Completed() {
			total = total.Add(s.Counts)
		}
	}
	return total
}

// Failed returns the sources that did not complete.
func (r *RunReport) Failed() []SourceReport {
	var failed []SourceReport
	for _, s := range r.Sources {
		if !s.Completed() {
			failed = append(failed, s)
		}
	}
	return failed
}

// Status derives the ledger status of the run.
func (r *RunReport) Status() ledger.RunStatus {
	failed := len(r.Failed())
	switch {
	case failed == 0:
		return ledger.RunCompleted
	case failed == len(r.Sources):
		return ledger.RunFailed
	default:
		return ledger.RunPartial
	}
}

// Percent returns part as a percentage of whole, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}

// MergeReport is the result of Runner.Merge.
type MergeReport struct {
	RunID     string
	Sources   []string
	Aggregate aggregate.Result
	Files     []string
}
