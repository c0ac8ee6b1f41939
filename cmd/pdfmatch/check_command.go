package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfmatch/internal/inventory"
	"pdfmatch/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify directories and datasets before a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cfg)
			for _, res := range results {
				kind := statusOK
				if !res.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(res.Name, kind, res.Detail, colorize))
			}

			sources := cfg.Matching.Sources
			if len(sources) == 0 {
				sources, _ = inventory.DiscoverSources(cfg.Paths.InputDir)
			}
			if len(sources) > 0 {
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Datasets", colorize) {
					fmt.Fprintln(out, line)
				}
				mapping, err := inventory.MapDatasets(cfg.Paths.DatasetDir, cfg.Dataset.Pattern, sources)
				if err != nil {
					fmt.Fprintln(out, renderStatusLine("Mapping", statusError, err.Error(), colorize))
				} else {
					for _, source := range sources {
						path, ok := mapping.Dataset(source)
						if !ok {
							fmt.Fprintln(out, renderStatusLine(source, statusWarn, "no dataset file", colorize))
							continue
						}
						fmt.Fprintln(out, renderStatusLine(source, statusOK, path, colorize))
					}
				}
			}

			if failed := preflight.Failures(results); len(failed) > 0 {
				return fmt.Errorf("%d preflight check(s) failed", len(failed))
			}
			return nil
		},
	}
}
