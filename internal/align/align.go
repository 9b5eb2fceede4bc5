package align

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strings"

	"cueline/internal/subtitle"
	"cueline/internal/textutil"
	"cueline/internal/timeline"
)

var (
	// ErrEmptyInput reports that there were no cues or no segments to align.
	ErrEmptyInput = errors.New("alignment: empty input")
	// ErrCoverage reports that the committed assignment did not place every
	// cue. It indicates an implementation bug, not bad input.
	ErrCoverage = errors.New("alignment: coverage invariant violated")
)

// Similarity thresholds for the text-matching phase.
const (
	candidateThreshold  = 0.5
	maxClaimsPerSegment = 5
)

// Assignment maps one cue (by position in the input slice) to a sub-interval
// of one segment (by position in the segment slice). Times are absolute
// seconds.
type Assignment struct {
	CuePos  int
	Segment int
	Start   float64
	End     float64
}

// Result is the committed alignment. TextMatched counts the cues the
// similarity phase claimed; it is diagnostic only and has no bearing on
// Assignments.
type Result struct {
	Assignments []Assignment
	Counts      []int
	TextMatched int
}

// Align assigns every cue to a segment sub-interval. It fails fast with
// ErrEmptyInput when either list is empty and with ErrCoverage when the
// committed pass somehow leaves cues unplaced.
func Align(cues []subtitle.Cue, segments []timeline.Segment, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if len(cues) == 0 || len(segments) == 0 {
		return Result{}, fmt.Errorf("%w: %d cues, %d segments", ErrEmptyInput, len(cues), len(segments))
	}

	matched := matchByText(cues, segments)
	if matched != len(cues) {
		logger.Warn("text match incomplete, committing duration-proportional assignment",
			slog.Int("matched", matched),
			slog.Int("cues", len(cues)))
	}

	durations := make([]float64, len(segments))
	for i, seg := range segments {
		durations[i] = math.Max(0, seg.End-seg.Start)
	}
	counts := DistributeCounts(len(cues), durations)

	assignments := commit(cues, segments, counts)
	if len(assignments) != len(cues) {
		return Result{}, fmt.Errorf("%w: placed %d of %d cues", ErrCoverage, len(assignments), len(cues))
	}

	return Result{Assignments: assignments, Counts: counts, TextMatched: matched}, nil
}

// matchByText runs the best-effort similarity phase and returns how many
// cues it claimed. A cue is a candidate when its normalized text and the
// segment's normalized text are substrings of one another (similarity 1.0)
// or their similarity ratio exceeds the threshold; each segment claims at
// most the top candidates, and claimed cues leave the pool.
func matchByText(cues []subtitle.Cue, segments []timeline.Segment) int {
	normCues := make([]string, len(cues))
	for i, cue := range cues {
		normCues[i] = textutil.Normalize(cue.Text)
	}

	claimed := make([]bool, len(cues))
	total := 0

	for _, seg := range segments {
		segNorm := textutil.Normalize(seg.Text)
		if segNorm == "" {
			continue
		}

		type candidate struct {
			pos   int
			score float64
		}
		var candidates []candidate

		for pos, cueNorm := range normCues {
			if claimed[pos] || cueNorm == "" {
				continue
			}
			var score float64
			if strings.Contains(segNorm, cueNorm) || strings.Contains(cueNorm, segNorm) {
				score = 1.0
			} else {
				score = textutil.SimilarityRatio(cueNorm, segNorm)
			}
			if score > candidateThreshold {
				candidates = append(candidates, candidate{pos: pos, score: score})
			}
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})
		for i, c := range candidates {
			if i >= maxClaimsPerSegment {
				break
			}
			claimed[c.pos] = true
			total++
		}
	}
	return total
}

// commit walks cues and segments sequentially, assigning contiguous runs
// according to the desired counts. A segment due zero cues while cues
// remain is forced to take one so no segment is starved; leftovers land on
// the final segment.
func commit(cues []subtitle.Cue, segments []timeline.Segment, counts []int) []Assignment {
	total := len(cues)
	runs := make([][]int, len(segments))
	cursor := 0

	for segIdx, desired := range counts {
		if cursor >= total {
			break
		}
		take := desired
		if take > total-cursor {
			take = total - cursor
		}
		if take <= 0 {
			take = 1
		}
		for i := 0; i < take; i++ {
			runs[segIdx] = append(runs[segIdx], cursor+i)
		}
		cursor += take
	}
	if cursor < total {
		last := len(runs) - 1
		for ; cursor < total; cursor++ {
			runs[last] = append(runs[last], cursor)
		}
	}

	var assignments []Assignment
	for segIdx, run := range runs {
		seg := segments[segIdx]
		span := seg.End - seg.Start
		n := len(run)
		for j, cuePos := range run {
			start := seg.Start
			end := seg.End
			if n > 1 {
				start = seg.Start + span*float64(j)/float64(n)
				end = seg.Start + span*float64(j+1)/float64(n)
			}
			assignments = append(assignments, Assignment{
				CuePos:  cuePos,
				Segment: segIdx,
				Start:   start,
				End:     end,
			})
		}
	}
	return assignments
}

// DistributeCounts apportions total items across buckets proportionally to
// duration using the largest-remainder method. When total >= len(durations)
// every bucket gets at least one item; when total is smaller, the longest
// buckets win whole items outright. The returned counts always sum to
// total (or to zero for empty input).
func DistributeCounts(total int, durations []float64) []int {
	n := len(durations)
	counts := make([]int, n)
	if n == 0 || total <= 0 {
		return counts
	}

	weights := make([]float64, n)
	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	if sum <= 0 {
		// All-zero durations degrade to an even split.
		for i := range weights {
			weights[i] = 1.0 / float64(n)
		}
	} else {
		for i, d := range durations {
			weights[i] = d / sum
		}
	}

	if total < n {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return durations[order[a]] > durations[order[b]]
		})
		for i := 0; i < total; i++ {
			counts[order[i]] = 1
		}
		return counts
	}

	for i := range counts {
		counts[i] = 1
	}
	remaining := total - n

	raw := make([]float64, n)
	assigned := 0
	for i, w := range weights {
		raw[i] = w * float64(remaining)
		floor := int(raw[i])
		counts[i] += floor
		assigned += floor
	}

	leftover := remaining - assigned
	if leftover > 0 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		// Ties on the fractional remainder go to the later segment.
		sort.SliceStable(order, func(a, b int) bool {
			ra := raw[order[a]] - math.Floor(raw[order[a]])
			rb := raw[order[b]] - math.Floor(raw[order[b]])
			if ra != rb {
				return ra > rb
			}
			return order[a] > order[b]
		})
		for i := 0; i < leftover; i++ {
			counts[order[i]]++
		}
	}
	return counts
}

// Retime realizes the committed assignment as re-timed cues: original text
// verbatim, new start and end times, entries renumbered in order.
func Retime(cues []subtitle.Cue, result Result) []subtitle.Cue {
	retimed := make([]subtitle.Cue, 0, len(result.Assignments))
	for i, a := range result.Assignments {
		src := cues[a.CuePos]
		retimed = append(retimed, subtitle.Cue{
			Index:   i + 1,
			StartMS: int(math.Round(a.Start * 1000)),
			EndMS:   int(math.Round(a.End * 1000)),
			Text:    src.Text,
		})
	}
	return retimed
}
