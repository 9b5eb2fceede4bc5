// Package consistency compares a re-timed cue sequence against its source
// and reports whether the output is still faithful: entry count within
// tolerance, aggregate text similarity above a floor, and clean timecode
// continuity. Findings are collected, never raised, so the caller decides
// severity.
package consistency

import (
	"fmt"
	"math"
	"strings"

	"cueline/internal/subtitle"
	"cueline/internal/textutil"
)

// Options configures the comparison thresholds.
type Options struct {
	// CountTolerance is the acceptable relative entry-count difference.
	CountTolerance float64
	// SimilarityMin is the minimum acceptable aggregate text similarity.
	SimilarityMin float64
}

// DefaultOptions returns the production thresholds: 5% count tolerance,
// 95% minimum similarity.
func DefaultOptions() Options {
	return Options{CountTolerance: 0.05, SimilarityMin: 0.95}
}

// Result accumulates findings from the independent checks.
type Result struct {
	Errors   []string
	Warnings []string
}

// OK reports whether no errors were found. Warnings do not fail a result.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Summary renders a human-readable pass/fail report.
func (r Result) Summary() string {
	var b strings.Builder
	if r.OK() {
		b.WriteString("PASS")
	} else {
		b.WriteString("FAIL")
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "\n  errors (%d):", len(r.Errors))
		for _, e := range r.Errors {
			b.WriteString("\n    - " + e)
		}
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\n  warnings (%d):", len(r.Warnings))
		for _, w := range r.Warnings {
			b.WriteString("\n    - " + w)
		}
	}
	return b.String()
}

// Compare runs the three checks independently and accumulates their
// findings. source is the original cue sequence, output the re-timed one.
func Compare(source, output []subtitle.Cue, opts Options) Result {
	var result Result

	if len(source) == 0 {
		result.Errors = append(result.Errors, "source has no entries")
		return result
	}

	diff := math.Abs(float64(len(output)-len(source))) / float64(len(source))
	switch {
	case diff > opts.CountTolerance:
		result.Errors = append(result.Errors, fmt.Sprintf(
			"entry count mismatch: source=%d output=%d (diff=%.1f%%)",
			len(source), len(output), diff*100))
	case diff > 0:
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"entry count difference: source=%d output=%d (diff=%.1f%%)",
			len(source), len(output), diff*100))
	}

	similarity := textutil.NormalizedSimilarity(joinText(source), joinText(output))
	if similarity < opts.SimilarityMin {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"low text similarity: %.2f%% (expected >= %.0f%%)",
			similarity*100, opts.SimilarityMin*100))
	} else if warnAt := math.Min(opts.SimilarityMin+0.02, 0.99); similarity < warnAt {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"moderate text similarity: %.2f%%", similarity*100))
	}

	result.Errors = append(result.Errors, subtitle.Continuity(output)...)

	return result
}

func joinText(cues []subtitle.Cue) string {
	parts := make([]string, len(cues))
	for i, cue := range cues {
		parts[i] = cue.Text
	}
	return strings.Join(parts, " ")
}
