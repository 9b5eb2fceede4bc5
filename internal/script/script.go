// Package script parses authored narration sources: line-per-segment
// markdown scripts, structured YAML narration, and the time-coded section
// headers that mark scene starts in the original production script.
package script

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSpeaker is the role assigned to lines without an explicit speaker.
const DefaultSpeaker = "Narrator"

// ErrNoLines reports that a narration source contained no usable lines.
var ErrNoLines = errors.New("script: no narration lines found")

// Line is one narration line, synthesized into exactly one audio clip.
// Index is 1-based and dense in authored order.
type Line struct {
	Index   int
	Text    string
	Speaker string
}

// CharCount returns the number of characters excluding whitespace.
func (l Line) CharCount() int {
	return len([]rune(strings.Join(strings.Fields(l.Text), "")))
}

// AudioFilename derives the clip filename for this line within a project.
func (l Line) AudioFilename(project string) string {
	return fmt.Sprintf("%s_%03d.mp3", project, l.Index)
}

var (
	headingRe = regexp.MustCompile(`^#{1,6}\s+`)
	hruleRe   = regexp.MustCompile(`^[-—━─]{3,}$`)
	sectionRe = regexp.MustCompile(`^【\d{2}:\d{2}-\d{2}:\d{2}】`)
	bracketRe = regexp.MustCompile(`^【[^】]*】`)
)

// ParseMarkdown reads a line-per-segment narration script. Blank lines,
// comments, headings, horizontal rules, and bracketed section headers are
// skipped; every remaining line becomes one narration line. The skip rules
// mirror SectionMarkers so line indices and scene markers stay aligned.
func ParseMarkdown(content string) ([]Line, error) {
	var lines []Line
	index := 1
	for _, raw := range strings.Split(content, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") || headingRe.MatchString(text) || hruleRe.MatchString(text) || bracketRe.MatchString(text) {
			continue
		}
		lines = append(lines, Line{Index: index, Text: text, Speaker: DefaultSpeaker})
		index++
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	return lines, nil
}

type yamlSegment struct {
	Text    string `yaml:"text"`
	Speaker string `yaml:"speaker"`
}

type yamlNarration struct {
	Segments []yamlSegment `yaml:"segments"`
	TTS      struct {
		Segments []yamlSegment `yaml:"segments"`
	} `yaml:"tts"`
	Episodes []struct {
		Segments []yamlSegment `yaml:"segments"`
	} `yaml:"episodes"`
}

// ParseYAML reads structured YAML narration. Segments may live at the top
// level, under a tts block, or under the first episode.
func ParseYAML(data []byte) ([]Line, error) {
	var doc yamlNarration
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("script: parse yaml: %w", err)
	}

	segments := doc.Segments
	if len(segments) == 0 {
		segments = doc.TTS.Segments
	}
	if len(segments) == 0 && len(doc.Episodes) > 0 {
		segments = doc.Episodes[0].Segments
	}
	if len(segments) == 0 {
		return nil, ErrNoLines
	}

	lines := make([]Line, 0, len(segments))
	for i, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			return nil, fmt.Errorf("script: segment %d has empty text", i+1)
		}
		speaker := strings.TrimSpace(seg.Speaker)
		if speaker == "" {
			speaker = DefaultSpeaker
		}
		lines = append(lines, Line{Index: i + 1, Text: text, Speaker: speaker})
	}
	return lines, nil
}

// SectionMarkers scans the original production script for time-coded
// section headers like 【00:00-01:00】 and returns the 1-based narration
// line indices at which each section starts. Bracketed annotation lines
// that are not time-coded are skipped without counting as narration.
func SectionMarkers(content string) []int {
	var markers []int
	narrationCount := 0

	for _, raw := range strings.Split(content, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" || strings.HasPrefix(text, "#") || hruleRe.MatchString(text) {
			continue
		}
		if sectionRe.MatchString(text) {
			markers = append(markers, narrationCount+1)
			continue
		}
		if bracketRe.MatchString(text) {
			continue
		}
		narrationCount++
	}
	return markers
}

// SceneSet converts 1-based section markers into the 0-based segment index
// set the timeline builder consumes. A marker on the opening segment is
// kept so the segment carries its scene flag; the builder suppresses the
// lead-in for index 0 on its own.
func SceneSet(markers []int) map[int]bool {
	set := make(map[int]bool, len(markers))
	for _, m := range markers {
		if m >= 1 {
			set[m-1] = true
		}
	}
	return set
}
