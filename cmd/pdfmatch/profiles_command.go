package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdfmatch/internal/inventory"
	"pdfmatch/internal/profile"
	"pdfmatch/internal/workflow"
)

func newProfilesCommand(ctx *commandContext) *cobra.Command {
	var discovered bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the naming profile each source resolves to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			table := workflow.ProfileTable(cfg)

			names := table.Names()
			if discovered {
				names, err = inventory.DiscoverSources(cfg.Paths.InputDir)
				if err != nil {
					return err
				}
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				p := table.Resolve(name)
				rows = append(rows, []string{
					name,
					p.MatchColumn(cfg.Dataset.TitleColumn, cfg.Dataset.IdentifierColumn),
					yesNo(p.HasYearPattern),
					yesNo(p.UsesIdentifierMatching),
					yesNo(p.UsesSpecialEncoding),
					yesNo(table.Known(name)),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Source", "Column", "Year pattern", "Identifier", "Encoding", "Known"},
				rows,
				nil,
			))
			fallback := profile.Fallback()
			fmt.Fprintf(out, "Unknown sources use: %s\n", fallback.Describe())
			return nil
		},
	}

	cmd.Flags().BoolVar(&discovered, "discovered", false, "List the sources found in the input directory instead of the profile table")
	return cmd
}
