package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pdfmatch/internal/workflow"
)

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var workbook bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Rebuild the ALL_* aggregates from stored partitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if v := strings.TrimSpace(outputDir); v != "" {
				cfg.Paths.OutputDir = v
			}
			if workbook {
				cfg.Export.Workbook = true
			}
			if err := cfg.Normalize(); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, logPath, err := newLogger(cfg)
			if err != nil {
				return err
			}
			store, err := openLedger(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := workflow.NewRunner(cfg, logger, workflow.WithLedger(store)).Merge(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Merge "+report.RunID, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Sources", statusInfo, strings.Join(report.Sources, ", "), colorize))
			renderAggregate(out, report.Aggregate, report.Files, colorize)
			if logPath != "" {
				fmt.Fprintln(out, renderStatusLine("Log", statusInfo, logPath, colorize))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory holding the matched/unmatched/multi_matched partitions")
	cmd.Flags().BoolVar(&workbook, "workbook", false, "Also write the aggregate workbook")
	return cmd
}
