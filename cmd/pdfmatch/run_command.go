package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pdfmatch/internal/config"
	"pdfmatch/internal/ledger"
	"pdfmatch/internal/workflow"
)

type runFlags struct {
	sources           []string
	identifierSources []string
	encodingSources   []string
	inputDir          string
	datasetDir        string
	outputDir         string
	dryRun            bool
	assumeYes         bool
	workbook          bool
	jsonOutput        bool
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match every source's documents against its dataset",
		Long: `Match every source's documents against its dataset.

Each subdirectory of the input directory is a source unless --sources names
them. Per-source partitions are written under the output directory, then
merged into ALL_MATCHED.csv, ALL_UNMATCHED.csv, and ALL_MULTI_MATCHED.csv.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}
			if !flags.dryRun {
				if err := cfg.EnsureDirectories(); err != nil {
					return err
				}
			}

			logger, logPath, err := newLogger(cfg)
			if err != nil {
				return err
			}

			opts := []workflow.RunnerOption{
				workflow.WithAcknowledger(chooseAcknowledger(flags.assumeYes, cmd.InOrStdin(), cmd.OutOrStdout())),
			}
			if !flags.dryRun {
				store, err := openLedger(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
				opts = append(opts, workflow.WithLedger(store))
			}

			runner := workflow.NewRunner(cfg, logger, opts...)
			report, err := runner.Run(cmd.Context(), workflow.RunOptions{DryRun: flags.dryRun})
			if err != nil {
				return err
			}

			if flags.jsonOutput {
				if err := writeJSON(cmd, newRunSummary(report, logPath)); err != nil {
					return err
				}
			} else {
				renderRunReport(cmd.OutOrStdout(), report, logPath, shouldColorize(cmd.OutOrStdout()))
			}

			if report.Status() == ledger.RunFailed {
				return fmt.Errorf("all %d source(s) failed", len(report.Sources))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&flags.sources, "sources", "s", nil, "Sources to process (default: every subdirectory of the input directory)")
	cmd.Flags().StringSliceVar(&flags.identifierSources, "identifier-sources", nil, "Sources to match by identifier instead of title")
	cmd.Flags().StringSliceVar(&flags.encodingSources, "encoding-sources", nil, "Sources whose filenames carry #x..; escapes")
	cmd.Flags().StringVarP(&flags.inputDir, "input", "i", "", "Directory holding one document folder per source")
	cmd.Flags().StringVar(&flags.datasetDir, "datasets", "", "Directory holding the dataset files")
	cmd.Flags().StringVarP(&flags.outputDir, "output", "o", "", "Directory receiving partitions and aggregates")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Match and report without writing anything")
	cmd.Flags().BoolVarP(&flags.assumeYes, "yes", "y", false, "Continue past duplicate warnings without prompting")
	cmd.Flags().BoolVar(&flags.workbook, "workbook", false, "Also write the aggregate workbook")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

// apply layers the flags over cfg and revalidates it.
func (f runFlags) apply(cfg *config.Config) error {
	if len(f.sources) > 0 {
		cfg.Matching.Sources = f.sources
	}
	cfg.Matching.IdentifierSources = append(cfg.Matching.IdentifierSources, f.identifierSources...)
	cfg.Matching.EncodingSources = append(cfg.Matching.EncodingSources, f.encodingSources...)
	if v := strings.TrimSpace(f.inputDir); v != "" {
		cfg.Paths.InputDir = v
	}
	if v := strings.TrimSpace(f.datasetDir); v != "" {
		cfg.Paths.DatasetDir = v
	}
	if v := strings.TrimSpace(f.outputDir); v != "" {
		cfg.Paths.OutputDir = v
	}
	if f.workbook {
		cfg.Export.Workbook = true
	}
	if err := cfg.Normalize(); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	return nil
}
