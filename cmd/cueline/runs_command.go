package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cueline/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent pipeline runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := runlog.Open(cfg.Paths.RunDBPath)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limitFlag)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.Project,
					run.StartedAt.Local().Format(time.DateTime),
					strconv.Itoa(run.Segments),
					strconv.Itoa(run.Cues),
					fmt.Sprintf("%.1fs", run.Duration),
					run.Status,
					fmt.Sprintf("%d/%d", run.Errors, run.Warnings),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Project", "Started", "Segs", "Cues", "Length", "Status", "Err/Warn"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
