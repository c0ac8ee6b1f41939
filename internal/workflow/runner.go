package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfmatch/internal/aggregate"
	"pdfmatch/internal/config"
	"pdfmatch/internal/export"
	"pdfmatch/internal/inventory"
	"pdfmatch/internal/ledger"
	"pdfmatch/internal/logging"
	"pdfmatch/internal/partition"
	"pdfmatch/internal/profile"
)

// Runner executes match and merge runs for one configuration.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	ledger   *ledger.Store
	ack      Acknowledger
	profiles *profile.Table
	now      func() time.Time
}

// RunnerOption configures optional Runner behavior.
type RunnerOption func(*Runner)

// WithLedger records runs in store.
func WithLedger(store *ledger.Store) RunnerOption {
	return func(r *Runner) { r.ledger = store }
}

// WithAcknowledger sets the duplicate-warning gate. Without one, sources
// with duplicates are declined whenever acknowledgment is required.
func WithAcknowledger(ack Acknowledger) RunnerOption {
	return func(r *Runner) { r.ack = ack }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// NewRunner constructs a Runner. logger may be nil.
func NewRunner(cfg *config.Config, logger *slog.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "workflow"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.profiles = ProfileTable(cfg)
	return r
}

// ProfileTable builds the profile table described by cfg.
func ProfileTable(cfg *config.Config) *profile.Table {
	custom := make(map[string]profile.SourceProfile, len(cfg.Profiles))
	for name, p := range cfg.Profiles {
		custom[name] = profile.SourceProfile{
			HasYearPattern:         p.HasYearPattern,
			UsesIdentifierMatching: p.UsesIdentifierMatching,
			UsesSpecialEncoding:    p.UsesSpecialEncoding,
		}
	}
	return profile.NewTable(custom, profile.Overrides{
		Identifier: cfg.Matching.IdentifierSources,
		Encoding:   cfg.Matching.EncodingSources,
	})
}

// RunOptions controls a single match run.
type RunOptions struct {
	// Sources overrides matching.sources from the config.
	Sources []string
	// DryRun matches and reports without writing anything.
	DryRun bool
}

// Run processes every source and merges the completed ones.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*RunReport, error) {
	report := &RunReport{DryRun: opts.DryRun, StartedAt: r.now()}

	if err := r.runPreflightChecks(); err != nil {
		return nil, err
	}

	sources, err := r.resolveSources(opts.Sources)
	if err != nil {
		return nil, err
	}
	mapping, err := inventory.MapDatasets(r.cfg.Paths.DatasetDir, r.cfg.Dataset.Pattern, sources)
	if err != nil {
		return nil, fmt.Errorf("%w: map datasets: %v", ErrConfiguration, err)
	}

	if !opts.DryRun {
		release, err := acquireOutputLock(r.cfg.Paths.OutputDir)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	run, err := r.beginRun(ctx, ledger.ModeMatch, opts.DryRun)
	if err != nil {
		return nil, err
	}
	report.RunID = run.ID
	ctx = logging.ContextWithRunID(ctx, run.ID)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("run started",
		logging.Int("sources", len(sources)),
		logging.Bool("dry_run", opts.DryRun),
		logging.Bool("shared_dataset", mapping.Shared),
		logging.String(logging.FieldEventType, "run_started"),
	)

	var completed []partition.Set
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			r.finishRun(ctx, run, report, err)
			return report, err
		}
		datasetPath, _ := mapping.Dataset(source)
		sourceReport, set := r.ProcessSource(ctx, source, datasetPath, opts.DryRun)
		report.Sources = append(report.Sources, sourceReport)
		r.recordSource(ctx, run, sourceReport, opts.DryRun)
		if sourceReport.Completed() {
			completed = append(completed, set)
		}
	}

	report.Aggregate = r.Aggregate(completed)
	if !opts.DryRun {
		files, err := r.writeAggregate(report.Aggregate)
		report.Files = files
		if err != nil {
			r.finishRun(ctx, run, report, err)
			return report, err
		}
	}

	report.FinishedAt = r.now()
	r.finishRun(ctx, run, report, nil)
	totals := report.Totals()
	logger.Info("run finished",
		logging.String("status", string(report.Status())),
		logging.Int("matched", totals.Matched),
		logging.Int("unmatched", totals.Unmatched),
		logging.Int("multi_matched", totals.MultiMatched),
		logging.Int("failed_sources", len(report.Failed())),
		logging.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
		logging.String(logging.FieldEventType, "run_finished"),
	)
	if failed := report.Failed(); len(failed) > 0 {
		logging.WarnWithContext(logger, "sources did not complete", "run_sources_failed",
			logging.Int("failed_sources", len(failed)),
			logging.String("sources", strings.Join(sourceNames(failed), ",")),
			logging.Alert("source_failure"),
			logging.String(logging.FieldErrorHint, "see the source_failed entries above"),
			logging.String(logging.FieldImpact, "aggregates exclude the failed sources"),
		)
	}
	return report, nil
}

// Aggregate merges the partitions of completed sources in processing order.
func (r *Runner) Aggregate(sets []partition.Set) aggregate.Result {
	var matched, unmatched, multi []partition.Partition
	for _, set := range sets {
		matched = append(matched, set.Matched)
		unmatched = append(unmatched, set.Unmatched)
		multi = append(multi, set.MultiMatched)
	}
	return aggregate.Merge(matched, unmatched, multi, r.aggregateOptions())
}

// Merge rebuilds the aggregates from the partition files already stored in
// the output directory.
func (r *Runner) Merge(ctx context.Context) (*MergeReport, error) {
	release, err := acquireOutputLock(r.cfg.Paths.OutputDir)
	if err != nil {
		return nil, err
	}
	defer release()

	run, err := r.beginRun(ctx, ledger.ModeMerge, false)
	if err != nil {
		return nil, err
	}
	logger := logging.WithContext(logging.ContextWithRunID(ctx, run.ID), r.logger)

	result, err := aggregate.MergeDir(r.cfg.Paths.OutputDir, r.aggregateOptions())
	if err != nil {
		r.finishMerge(ctx, run, result, err)
		return nil, err
	}
	files, err := r.writeAggregate(result)
	r.finishMerge(ctx, run, result, err)
	if err != nil {
		return nil, err
	}

	report := &MergeReport{RunID: run.ID, Aggregate: result, Files: files, Sources: sourcesIn(result)}
	logger.Info("merge finished",
		logging.Int("matched", len(result.Matched.Rows)),
		logging.Int("unmatched", len(result.Unmatched.Rows)),
		logging.Int("multi_matched", len(result.MultiMatched.Rows)),
		logging.Int("excluded", result.Excluded),
		logging.String(logging.FieldEventType, "merge_finished"),
	)
	return report, nil
}

func (r *Runner) aggregateOptions() aggregate.Options {
	return aggregate.Options{
		IdentifierColumn: r.cfg.Dataset.IdentifierColumn,
		ResolverBase:     r.cfg.Links.ResolverBase,
	}
}

func (r *Runner) writeAggregate(result aggregate.Result) ([]string, error) {
	files, err := aggregate.Write(r.cfg.Paths.OutputDir, result)
	if err != nil {
		return files, err
	}
	if r.cfg.Export.Workbook {
		path := r.cfg.WorkbookPath()
		if err := export.WriteWorkbook(path, result); err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

func (r *Runner) resolveSources(requested []string) ([]string, error) {
	switch {
	case len(requested) > 0:
		return requested, nil
	case len(r.cfg.Matching.Sources) > 0:
		return r.cfg.Matching.Sources, nil
	}
	sources, err := inventory.DiscoverSources(r.cfg.Paths.InputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: discover sources: %v", ErrConfiguration, err)
	}
	if len(sources) == 0 {
		return nil, configErrorf("no source directories under %s", r.cfg.Paths.InputDir)
	}
	return sources, nil
}

func (r *Runner) beginRun(ctx context.Context, mode string, dryRun bool) (ledger.Run, error) {
	run := ledger.Run{
		Mode:      mode,
		InputDir:  r.cfg.Paths.InputDir,
		OutputDir: r.cfg.Paths.OutputDir,
		StartedAt: r.now(),
	}
	if dryRun || r.ledger == nil {
		run.ID = newRunID()
		return run, nil
	}
	stored, err := r.ledger.BeginRun(ctx, run)
	if err != nil {
		return ledger.Run{}, fmt.Errorf("record run: %w", err)
	}
	return stored, nil
}

func (r *Runner) recordSource(ctx context.Context, run ledger.Run, s SourceReport, dryRun bool) {
	if dryRun || r.ledger == nil {
		return
	}
	if err := r.ledger.RecordSource(ctx, s.ledgerEntry(run.ID)); err != nil {
		logging.WarnWithContext(r.logger, "ledger write failed", "ledger_write_failed",
			logging.String(logging.FieldSource, s.Source),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check state_dir permissions"),
			logging.String(logging.FieldImpact, "source outcome missing from history"),
		)
	}
}

func (r *Runner) finishRun(ctx context.Context, run ledger.Run, report *RunReport, runErr error) {
	if report.DryRun || r.ledger == nil {
		return
	}
	run.Status = report.Status()
	run.Sources = len(report.Sources)
	run.FailedSources = len(report.Failed())
	run.Counts = report.Totals()
	run.FinishedAt = r.now()
	if runErr != nil {
		run.Status = ledger.RunFailed
		run.ErrorMessage = runErr.Error()
	}
	r.closeRun(ctx, run)
}

func (r *Runner) finishMerge(ctx context.Context, run ledger.Run, result aggregate.Result, mergeErr error) {
	if r.ledger == nil {
		return
	}
	run.Status = ledger.RunCompleted
	run.Sources = len(sourcesIn(result))
	run.Counts = ledger.Counts{
		Matched:      len(result.Matched.Rows),
		Unmatched:    len(result.Unmatched.Rows),
		MultiMatched: len(result.MultiMatched.Rows),
	}
	run.FinishedAt = r.now()
	if mergeErr != nil {
		run.Status = ledger.RunFailed
		run.ErrorMessage = mergeErr.Error()
	}
	r.closeRun(ctx, run)
}

func (r *Runner) closeRun(ctx context.Context, run ledger.Run) {
	// The ledger write must land even when ctx was cancelled mid-run.
	if err := r.ledger.FinishRun(context.WithoutCancel(ctx), run); err != nil {
		logging.WarnWithContext(r.logger, "ledger write failed", "ledger_write_failed",
			logging.String(logging.FieldRunID, run.ID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check state_dir permissions"),
			logging.String(logging.FieldImpact, "run left as running in history"),
		)
	}
}

func sourcesIn(result aggregate.Result) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, table := range []aggregate.Table{result.Matched, result.Unmatched, result.MultiMatched} {
		for _, row := range table.Rows {
			source := row.Get(aggregate.ColumnJournal)
			if _, ok := seen[source]; ok {
				continue
			}
			seen[source] = struct{}{}
			out = append(out, source)
		}
	}
	return out
}

func sourceNames(reports []SourceReport) []string {
	names := make([]string, 0, len(reports))
	for _, s := range reports {
		names = append(names, s.Source)
	}
	return names
}

func newRunID() string {
	return uuid.NewString()
}
