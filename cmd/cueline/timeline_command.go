package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cueline/internal/pipeline"
	"cueline/internal/timecode"
	"cueline/internal/timeline"
)

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var subtitlesFlag string

	cmd := &cobra.Command{
		Use:   "timeline <script>",
		Short: "Preview clip placement without writing artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			p := pipeline.New(cfg, ctx.ensureLogger())
			segments, err := p.Preview(cmd.Context(), pipeline.Inputs{
				ScriptPath:   args[0],
				SubtitlePath: subtitlesFlag,
			})
			if err != nil {
				return err
			}

			rate := cfg.FrameRate()
			rows := make([][]string, 0, len(segments))
			for _, seg := range segments {
				scene := ""
				if seg.SceneStart {
					scene = "scene"
				}
				rows = append(rows, []string{
					strconv.Itoa(seg.Index),
					seg.Filename,
					seg.StartTimecode(rate),
					seg.EndTimecode(rate),
					fmt.Sprintf("%.2f", seg.Duration),
					scene,
					truncateText(seg.Text, 40),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Clip", "Start", "End", "Sec", "", "Text"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Total %s over %d segments\n",
				timecode.FormatFrames(timeline.TotalDuration(segments), rate), len(segments))
			return nil
		},
	}

	cmd.Flags().StringVarP(&subtitlesFlag, "subtitles", "s", "", "Source SRT used for scene detection")
	return cmd
}

func truncateText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
