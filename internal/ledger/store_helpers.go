package ledger

import (
	"database/sql"
	"time"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run         Run
		status      string
		inputDir    sql.NullString
		outputDir   sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
		errorMsg    sql.NullString
	)
	if err := sc.Scan(
		&run.ID,
		&run.Mode,
		&status,
		&inputDir,
		&outputDir,
		&startedRaw,
		&finishedRaw,
		&run.Sources,
		&run.FailedSources,
		&run.Counts.Matched,
		&run.Counts.Unmatched,
		&run.Counts.MultiMatched,
		&errorMsg,
	); err != nil {
		return Run{}, err
	}
	run.Status = RunStatus(status)
	run.InputDir = inputDir.String
	run.OutputDir = outputDir.String
	run.StartedAt = parseTime(startedRaw)
	if finishedRaw.Valid {
		run.FinishedAt = parseTime(finishedRaw.String)
	}
	run.ErrorMessage = errorMsg.String
	return run, nil
}

func scanSource(sc scanner) (SourceResult, error) {
	var (
		result      SourceResult
		status      string
		datasetPath sql.NullString
		column      sql.NullString
		errorMsg    sql.NullString
		recordedRaw string
	)
	if err := sc.Scan(
		&result.ID,
		&result.RunID,
		&result.Source,
		&status,
		&datasetPath,
		&column,
		&result.Rows,
		&result.Files,
		&result.Counts.Matched,
		&result.Counts.Unmatched,
		&result.Counts.MultiMatched,
		&result.DuplicateFiles,
		&result.DuplicateValues,
		&errorMsg,
		&recordedRaw,
	); err != nil {
		return SourceResult{}, err
	}
	result.Status = SourceStatus(status)
	result.DatasetPath = datasetPath.String
	result.MatchColumn = column.String
	result.ErrorMessage = errorMsg.String
	result.RecordedAt = parseTime(recordedRaw)
	return result, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts
	}
	return time.Time{}
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
