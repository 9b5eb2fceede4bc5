package subtitle

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cueline/internal/timecode"
)

// ErrFormat marks an unrecoverable parse failure in a cue block.
var ErrFormat = errors.New("invalid subtitle block")

var (
	fenceOpenRe  = regexp.MustCompile("```srt\\s*")
	fenceCloseRe = regexp.MustCompile("(?m)```\\s*$")
	blockSplitRe = regexp.MustCompile(`\n\s*\n`)
	timingRe     = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})`)
)

// Parse reads blank-line-delimited cue blocks. Blocks with fewer than three
// lines are skipped; a malformed ordinal or timing line, or a cue violating
// the per-cue invariants, fails the parse naming the offending block.
func Parse(content string) ([]Cue, error) {
	content = fenceOpenRe.ReplaceAllString(content, "")
	content = fenceCloseRe.ReplaceAllString(content, "")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: no cue blocks found", ErrFormat)
	}

	var cues []Cue
	for blockNum, block := range blockSplitRe.Split(trimmed, -1) {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: bad ordinal %q", ErrFormat, blockNum+1, lines[0])
		}

		timing := timingRe.FindStringSubmatch(lines[1])
		if timing == nil {
			return nil, fmt.Errorf("%w: block %d: bad timing line %q", ErrFormat, blockNum+1, lines[1])
		}
		startMS, err := timecode.ParseMillisAsInt(timing[1])
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrFormat, blockNum+1, err)
		}
		endMS, err := timecode.ParseMillisAsInt(timing[2])
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrFormat, blockNum+1, err)
		}

		cue := Cue{
			Index:   index,
			StartMS: startMS,
			EndMS:   endMS,
			Text:    strings.TrimSpace(strings.Join(lines[2:], "\n")),
		}
		if err := cue.Validate(); err != nil {
			return nil, fmt.Errorf("%w: block %d (entry %d): %v", ErrFormat, blockNum+1, index, err)
		}
		cues = append(cues, cue)
	}

	if len(cues) == 0 {
		return nil, fmt.Errorf("%w: no valid cue blocks found", ErrFormat)
	}
	return cues, nil
}

// Render formats cues back to SubRip text, renumbering entries 1..N while
// leaving cue text untouched.
func Render(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(timecode.FormatMillisFromInt(cue.StartMS))
		b.WriteString(" --> ")
		b.WriteString(timecode.FormatMillisFromInt(cue.EndMS))
		b.WriteByte('\n')
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
