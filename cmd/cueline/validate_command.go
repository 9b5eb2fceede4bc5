package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cueline/internal/consistency"
	"cueline/internal/subtitle"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <source.srt> <aligned.srt>",
		Short: "Check an aligned subtitle file against its source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source, err := readCues(args[0])
			if err != nil {
				return err
			}
			output, err := readCues(args[1])
			if err != nil {
				return err
			}

			result := consistency.Compare(source, output, consistency.Options{
				CountTolerance: cfg.Validation.CountTolerance,
				SimilarityMin:  cfg.Validation.SimilarityMin,
			})

			out := cmd.OutOrStdout()
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "Warning: %s\n", warning)
			}
			for _, errMsg := range result.Errors {
				fmt.Fprintf(out, "Error: %s\n", errMsg)
			}
			if !result.OK() {
				return fmt.Errorf("consistency check failed: %s", result.Summary())
			}
			fmt.Fprintln(out, result.Summary())
			return nil
		},
	}
}

func readCues(path string) ([]subtitle.Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cues, err := subtitle.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cues, nil
}
