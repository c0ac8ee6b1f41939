package workflow

import (
	"context"
	"fmt"
	"path/filepath"

	"pdfmatch/internal/dataset"
	"pdfmatch/internal/duplicates"
	"pdfmatch/internal/inventory"
	"pdfmatch/internal/ledger"
	"pdfmatch/internal/logging"
	"pdfmatch/internal/matching"
	"pdfmatch/internal/partition"
)

// ProcessSource runs the full pipeline for one source: load, duplicate
// check, match, and partition. Partitions are written unless dryRun is set.
// Failures are reported on the returned SourceReport, wrapped in a
// SourceError; the returned Set is only meaningful for completed sources.
func (r *Runner) ProcessSource(ctx context.Context, source, datasetPath string, dryRun bool) (SourceReport, partition.Set) {
	ctx = logging.ContextWithSource(ctx, source)
	logger := logging.WithContext(ctx, r.logger)

	p := r.profiles.Resolve(source)
	report := SourceReport{
		Source:      source,
		Profile:     p,
		DatasetPath: datasetPath,
		MatchColumn: p.MatchColumn(r.cfg.Dataset.TitleColumn, r.cfg.Dataset.IdentifierColumn),
	}
	fail := func(status ledger.SourceStatus, err error) (SourceReport, partition.Set) {
		report.Status = status
		report.Err = sourceErr(source, err)
		logging.ErrorWithContext(logger, "source failed", "source_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(status)),
		)
		return report, partition.Set{}
	}

	logger.Info("source started",
		logging.String("profile", p.Describe()),
		logging.String("match_column", report.MatchColumn),
		logging.Bool("known_profile", r.profiles.Known(source)),
		logging.String(logging.FieldEventType, "source_started"),
	)

	files, err := inventory.ListFiles(filepath.Join(r.cfg.Paths.InputDir, source), r.cfg.Dataset.FileExtension)
	if err != nil {
		return fail(ledger.SourceFailed, fmt.Errorf("%w: document directory: %v", ErrConfiguration, err))
	}
	report.Files = len(files)

	if datasetPath == "" {
		return fail(ledger.SourceFailed, configErrorf("no dataset file in %s matches %q for this source", r.cfg.Paths.DatasetDir, r.cfg.Dataset.Pattern))
	}
	table, err := dataset.LoadTable(datasetPath)
	if err != nil {
		return fail(ledger.SourceFailed, fmt.Errorf("load dataset: %w", err))
	}
	report.Rows = table.Len()
	if !table.HasColumn(report.MatchColumn) {
		return fail(ledger.SourceFailed, configErrorf("dataset %s has no %q column", filepath.Base(datasetPath), report.MatchColumn))
	}

	report.Duplicates = duplicates.Check(source, files, table.Rows, report.MatchColumn, p.RetainDigits())
	if !report.Duplicates.Empty() {
		logging.WarnWithContext(logger, "duplicate keys found", "duplicates_found",
			logging.Int("duplicate_files", len(report.Duplicates.Files)),
			logging.Int("duplicate_values", len(report.Duplicates.Values)),
			logging.String(logging.FieldErrorHint, "rename or remove duplicates to avoid ambiguous matches"),
			logging.String(logging.FieldImpact, "affected rows may be reported as multi matched"),
		)
		if r.cfg.Matching.RequireAcknowledgment {
			ok, err := r.acknowledge(ctx, report.Duplicates)
			if err != nil {
				return fail(ledger.SourceDeclined, fmt.Errorf("%w: %v", ErrNotAcknowledged, err))
			}
			if !ok {
				return fail(ledger.SourceDeclined, ErrNotAcknowledged)
			}
		}
	}

	result := matching.Match(files, table.Rows, report.MatchColumn, p, logging.NewComponentLogger(logger, "matching"))
	report.Counts = ledger.Counts{
		Matched:      len(result.Matched),
		Unmatched:    len(result.Unmatched),
		MultiMatched: len(result.MultiMatched),
	}

	set := partition.Build(source, table.Headers, result)
	if !dryRun {
		written, err := partition.Writer{Root: r.cfg.Paths.OutputDir}.Write(set)
		report.Written = written
		if err != nil {
			return fail(ledger.SourceFailed, err)
		}
	}

	report.Status = ledger.SourceCompleted
	logger.Info("source finished",
		logging.Int("rows", report.Rows),
		logging.Int("files", report.Files),
		logging.Int("matched", report.Counts.Matched),
		logging.Int("unmatched", report.Counts.Unmatched),
		logging.Int("multi_matched", report.Counts.MultiMatched),
		logging.Float64("match_rate", Percent(report.Counts.Matched, report.Counts.Total())),
		logging.String(logging.FieldEventType, "source_finished"),
	)
	return report, set
}

func (r *Runner) acknowledge(ctx context.Context, report duplicates.Report) (bool, error) {
	if r.ack == nil {
		return false, nil
	}
	return r.ack.Acknowledge(ctx, report)
}

func hintFor(status ledger.SourceStatus) string {
	if status == ledger.SourceDeclined {
		return "resolve the duplicates or rerun with --yes"
	}
	return "fix the reported path, dataset, or column and rerun"
}
