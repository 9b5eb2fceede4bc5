package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cueline/internal/pipeline"
	"cueline/internal/runlog"
	"cueline/internal/timecode"
	"cueline/internal/timeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var subtitlesFlag string

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run the full alignment pipeline",
		Long: `Parse the narration script, resolve synthesized audio clips, build the
placement timeline, align source subtitles onto it, and write the timeline
CSV, FCP7 XML, and re-timed SRT to the output directory.`,
		Args: cobra.ExactArgs(1),
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

			p := pipeline.New(cfg, ctx.ensureLogger())
			p.Store = store

			outcome, err := p.Run(cmd.Context(), pipeline.Inputs{
				ScriptPath:   args[0],
				SubtitlePath: subtitlesFlag,
			})
			if outcome != nil {
				printOutcome(cmd, cfg.FrameRate(), outcome)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&subtitlesFlag, "subtitles", "s", "", "Source SRT to align onto the timeline")
	return cmd
}

func printOutcome(cmd *cobra.Command, rate float64, outcome *pipeline.Outcome) {
	out := cmd.OutOrStdout()

	rows := [][]string{
		{"Run", outcome.RunID},
		{"Segments", strconv.Itoa(len(outcome.Segments))},
		{"Scenes", strconv.Itoa(timeline.SceneCount(outcome.Segments))},
		{"Duration", timecode.FormatFrames(outcome.Duration, rate)},
	}
	if len(outcome.Cues) > 0 {
		rows = append(rows, []string{"Cues", strconv.Itoa(len(outcome.Cues))})
	}
	fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))

	for _, path := range []string{outcome.CSVPath, outcome.XMLPath, outcome.SRTPath} {
		if path != "" {
			fmt.Fprintf(out, "Wrote %s\n", path)
		}
	}
	for _, warning := range outcome.Consistency.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", warning)
	}
	for _, errMsg := range outcome.Consistency.Errors {
		fmt.Fprintf(out, "Error: %s\n", errMsg)
	}
}
