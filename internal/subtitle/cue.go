package subtitle

import (
	"fmt"
	"regexp"
	"strings"

	"cueline/internal/timecode"
)

// Cue duration bounds in milliseconds. Cues outside these bounds are
// unreadable on screen and rejected at parse time.
const (
	MinDurationMS = 100
	MaxDurationMS = 15000
)

// Cue is a single timed subtitle entry. Start and End are offsets from the
// timeline origin in milliseconds; Text may span multiple display lines.
// Cues are immutable once parsed.
type Cue struct {
	Index   int
	StartMS int
	EndMS   int
	Text    string
}

// StartSeconds returns the start offset in seconds.
func (c Cue) StartSeconds() float64 { return float64(c.StartMS) / 1000 }

// EndSeconds returns the end offset in seconds.
func (c Cue) EndSeconds() float64 { return float64(c.EndMS) / 1000 }

// DurationMS returns the cue duration in milliseconds.
func (c Cue) DurationMS() int { return c.EndMS - c.StartMS }

// LineCount returns the number of non-blank display lines.
func (c Cue) LineCount() int {
	count := 0
	for _, line := range strings.Split(c.Text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

var whitespaceRe = regexp.MustCompile(`\s`)

// CharCount returns the number of characters excluding whitespace, never
// less than 1 so it can serve as a proportional weight.
func (c Cue) CharCount() int {
	n := len([]rune(whitespaceRe.ReplaceAllString(c.Text, "")))
	if n == 0 {
		return 1
	}
	return n
}

// Validate checks the per-cue invariants: start before end, duration within
// bounds, and non-empty trimmed text.
func (c Cue) Validate() error {
	if c.StartMS >= c.EndMS {
		return fmt.Errorf("start %s >= end %s",
			timecode.FormatMillisFromInt(c.StartMS), timecode.FormatMillisFromInt(c.EndMS))
	}
	if d := c.DurationMS(); d < MinDurationMS {
		return fmt.Errorf("duration too short: %dms", d)
	} else if d > MaxDurationMS {
		return fmt.Errorf("duration too long: %dms", d)
	}
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("empty text")
	}
	return nil
}

// Continuity checks sequence-level invariants across cues: strictly
// ascending start times and no cue running past the next cue's start.
// Defects are returned as human-readable strings, never as an error, so a
// caller can choose to treat them as warnings.
func Continuity(cues []Cue) []string {
	var defects []string
	for i := 0; i+1 < len(cues); i++ {
		cur, next := cues[i], cues[i+1]
		if cur.StartMS >= next.StartMS {
			defects = append(defects, fmt.Sprintf(
				"entry %d -> %d: start times not ascending (%s >= %s)",
				cur.Index, next.Index,
				timecode.FormatMillisFromInt(cur.StartMS), timecode.FormatMillisFromInt(next.StartMS)))
		}
		if cur.EndMS > next.StartMS {
			defects = append(defects, fmt.Sprintf(
				"entry %d -> %d: overlapping timecodes (%s > %s)",
				cur.Index, next.Index,
				timecode.FormatMillisFromInt(cur.EndMS), timecode.FormatMillisFromInt(next.StartMS)))
		}
	}
	return defects
}
