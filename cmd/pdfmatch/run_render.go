package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"pdfmatch/internal/aggregate"
	"pdfmatch/internal/workflow"
)

var sourceTableHeaders = []string{"Source", "Profile", "Column", "Rows", "Files", "Matched", "Unmatched", "Multi", "Status"}

var sourceTableAligns = []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft}

func renderRunReport(out io.Writer, report *workflow.RunReport, logPath string, colorize bool) {
	title := "Run " + report.RunID
	if report.DryRun {
		title += " (dry run)"
	}
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}

	rows := make([][]string, 0, len(report.Sources))
	var totalRows, totalFiles int
	for _, s := range report.Sources {
		rows = append(rows, []string{
			s.Source,
			s.Profile.Describe(),
			s.MatchColumn,
			strconv.Itoa(s.Rows),
			strconv.Itoa(s.Files),
			strconv.Itoa(s.Counts.Matched),
			strconv.Itoa(s.Counts.Unmatched),
			strconv.Itoa(s.Counts.MultiMatched),
			string(s.Status),
		})
		if s.Completed() {
			totalRows += s.Rows
			totalFiles += s.Files
		}
	}
	totals := report.Totals()
	whole := totals.Total()
	footer := []string{
		"Total", "", "",
		strconv.Itoa(totalRows),
		strconv.Itoa(totalFiles),
		countWithPercent(totals.Matched, whole),
		countWithPercent(totals.Unmatched, whole),
		countWithPercent(totals.MultiMatched, whole),
		string(report.Status()),
	}
	fmt.Fprintln(out, renderTableWithFooter(sourceTableHeaders, rows, footer, sourceTableAligns))

	for _, s := range report.Failed() {
		fmt.Fprintln(out, renderStatusLine(s.Source, sourceStatusKind(s.Status), errorText(s.Err), colorize))
	}

	fmt.Fprintln(out)
	renderAggregate(out, report.Aggregate, report.Files, colorize)
	if !report.FinishedAt.IsZero() {
		elapsed := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)
		fmt.Fprintln(out, renderStatusLine("Elapsed", statusInfo, elapsed.String(), colorize))
	}
	if logPath != "" {
		fmt.Fprintln(out, renderStatusLine("Log", statusInfo, logPath, colorize))
	}
}

func renderAggregate(out io.Writer, result aggregate.Result, files []string, colorize bool) {
	fmt.Fprintln(out, renderStatusLine(aggregate.FileMatched, statusOK, fmt.Sprintf("%d row(s)", len(result.Matched.Rows)), colorize))
	unmatchedKind := statusOK
	if !result.Unmatched.Empty() {
		unmatchedKind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine(aggregate.FileUnmatched, unmatchedKind,
		fmt.Sprintf("%d row(s), %d satisfied by another source", len(result.Unmatched.Rows), result.Excluded), colorize))
	multiKind := statusOK
	if !result.MultiMatched.Empty() {
		multiKind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine(aggregate.FileMultiMatched, multiKind, fmt.Sprintf("%d row(s)", len(result.MultiMatched.Rows)), colorize))
	for _, path := range files {
		fmt.Fprintln(out, renderStatusLine("Wrote", statusInfo, filepath.Base(path), colorize))
	}
}

func countWithPercent(part, whole int) string {
	return fmt.Sprintf("%d (%.1f%%)", part, workflow.Percent(part, whole))
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

type sourceSummary struct {
	Source       string `json:"source"`
	Profile      string `json:"profile"`
	MatchColumn  string `json:"match_column"`
	Dataset      string `json:"dataset,omitempty"`
	Rows         int    `json:"rows"`
	Files        int    `json:"files"`
	Matched      int    `json:"matched"`
	Unmatched    int    `json:"unmatched"`
	MultiMatched int    `json:"multi_matched"`
	Duplicates   int    `json:"duplicates"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

type runSummary struct {
	RunID        string          `json:"run_id"`
	DryRun       bool            `json:"dry_run"`
	Status       string          `json:"status"`
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at,omitzero"`
	Sources      []sourceSummary `json:"sources"`
	Matched      int             `json:"matched"`
	Unmatched    int             `json:"unmatched"`
	MultiMatched int             `json:"multi_matched"`
	Excluded     int             `json:"excluded"`
	Files        []string        `json:"files,omitempty"`
	LogPath      string          `json:"log_path,omitempty"`
}

func newRunSummary(report *workflow.RunReport, logPath string) runSummary {
	summary := runSummary{
		RunID:        report.RunID,
		DryRun:       report.DryRun,
		Status:       string(report.Status()),
		StartedAt:    report.StartedAt,
		FinishedAt:   report.FinishedAt,
		Sources:      make([]sourceSummary, 0, len(report.Sources)),
		Matched:      len(report.Aggregate.Matched.Rows),
		Unmatched:    len(report.Aggregate.Unmatched.Rows),
		MultiMatched: len(report.Aggregate.MultiMatched.Rows),
		Excluded:     report.Aggregate.Excluded,
		Files:        report.Files,
		LogPath:      logPath,
	}
	for _, s := range report.Sources {
		summary.Sources = append(summary.Sources, sourceSummary{
			Source:       s.Source,
			Profile:      s.Profile.Describe(),
			MatchColumn:  s.MatchColumn,
			Dataset:      s.DatasetPath,
			Rows:         s.Rows,
			Files:        s.Files,
			Matched:      s.Counts.Matched,
			Unmatched:    s.Counts.Unmatched,
			MultiMatched: s.Counts.MultiMatched,
			Duplicates:   len(s.Duplicates.Files) + len(s.Duplicates.Values),
			Status:       string(s.Status),
			Error:        errorText(s.Err),
		})
	}
	return summary
}
