package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pdfmatch/internal/ledger"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded runs, or the sources of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openLedger(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return showRun(cmd, store, args[0], jsonOutput)
			}

			runs, err := store.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.Mode,
					string(run.Status),
					formatTimestamp(run.StartedAt),
					strconv.Itoa(run.Sources),
					strconv.Itoa(run.FailedSources),
					strconv.Itoa(run.Counts.Matched),
					strconv.Itoa(run.Counts.Unmatched),
					strconv.Itoa(run.Counts.MultiMatched),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Mode", "Status", "Started", "Sources", "Failed", "Matched", "Unmatched", "Multi"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print as JSON")
	return cmd
}

func showRun(cmd *cobra.Command, store *ledger.Store, id string, jsonOutput bool) error {
	run, err := store.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", id)
	}
	sources, err := store.Sources(cmd.Context(), id)
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd, struct {
			Run     *ledger.Run           `json:"run"`
			Sources []ledger.SourceResult `json:"sources"`
		}{run, sources})
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader("Run "+run.ID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Status", runStatusKind(run.Status), string(run.Status), colorize))
	fmt.Fprintln(out, renderStatusLine("Mode", statusInfo, run.Mode, colorize))
	fmt.Fprintln(out, renderStatusLine("Started", statusInfo, formatTimestamp(run.StartedAt), colorize))
	if !run.FinishedAt.IsZero() {
		fmt.Fprintln(out, renderStatusLine("Finished", statusInfo, formatTimestamp(run.FinishedAt), colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Output", statusInfo, run.OutputDir, colorize))
	if run.ErrorMessage != "" {
		fmt.Fprintln(out, renderStatusLine("Error", statusError, run.ErrorMessage, colorize))
	}
	if len(sources) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, []string{
			s.Source,
			s.MatchColumn,
			strconv.Itoa(s.Rows),
			strconv.Itoa(s.Files),
			strconv.Itoa(s.Counts.Matched),
			strconv.Itoa(s.Counts.Unmatched),
			strconv.Itoa(s.Counts.MultiMatched),
			strconv.Itoa(s.DuplicateFiles + s.DuplicateValues),
			string(s.Status),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Source", "Column", "Rows", "Files", "Matched", "Unmatched", "Multi", "Duplicates", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	))
	for _, s := range sources {
		if s.ErrorMessage != "" {
			fmt.Fprintln(out, renderStatusLine(s.Source, sourceStatusKind(s.Status), s.ErrorMessage, colorize))
		}
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
