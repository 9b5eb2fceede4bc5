package timeline

import (
	"cueline/internal/timecode"
)

// Clip is one synthesized audio clip, in narration order. Duration and
// SampleRate are measured from the produced audio, never assumed.
type Clip struct {
	Index      int
	Filename   string
	Duration   float64
	SampleRate int
}

// Line carries the narration text placed alongside a clip for display and
// matching purposes.
type Line struct {
	Speaker string
	Text    string
}

// Segment is a placed interval on the output timeline. Segments are built
// once and never mutated; Start/End are absolute seconds.
type Segment struct {
	Index      int
	Filename   string
	Duration   float64
	Start      float64
	End        float64
	SceneStart bool
	LeadIn     float64
	AudioIn    float64
	AudioOut   float64
	Speaker    string
	Text       string
}

// StartTimecode renders the segment start as frame timecode at the rate.
func (s Segment) StartTimecode(rate float64) string {
	return timecode.FormatFrames(s.Start, rate)
}

// EndTimecode renders the segment end as frame timecode at the rate.
func (s Segment) EndTimecode(rate float64) string {
	return timecode.FormatFrames(s.End, rate)
}

// DurationFrames returns the segment length in frames at the rate.
func (s Segment) DurationFrames(rate float64) int {
	return timecode.SecondsToFrames(s.End-s.Start, rate)
}

// GapFunc computes a content-driven pause to insert after a segment carrying
// the given narration line. sceneEnd reports whether the following segment
// starts a new scene.
type GapFunc func(line Line, sceneEnd bool) float64

// Builder places clips sequentially. Exactly one of ClipGapFrames or Gap
// should be configured; when both are set the content-driven gap wins.
type Builder struct {
	FrameRate     float64
	SceneLeadIn   float64
	ClipGapFrames int
	Gap           GapFunc
}

// NewBuilder returns a builder with the given frame rate and scene lead-in
// and no inter-clip gap.
func NewBuilder(frameRate, sceneLeadIn float64) *Builder {
	return &Builder{FrameRate: frameRate, SceneLeadIn: sceneLeadIn}
}

// Build places the ordered clips, pairing each with its narration line when
// one is supplied. scenes holds 0-based clip positions that start a new
// scene. An empty clip list yields an empty timeline.
func (b *Builder) Build(clips []Clip, lines []Line, scenes map[int]bool) []Segment {
	segments := make([]Segment, 0, len(clips))
	cursor := 0.0

	for i, clip := range clips {
		sceneStart := scenes[i]
		leadIn := 0.0
		if sceneStart && i > 0 {
			leadIn = b.SceneLeadIn
		}
		cursor += leadIn

		seg := Segment{
			Index:      clip.Index,
			Filename:   clip.Filename,
			Duration:   clip.Duration,
			Start:      cursor,
			End:        cursor + clip.Duration,
			SceneStart: sceneStart,
			LeadIn:     leadIn,
			AudioOut:   clip.Duration,
		}
		if i < len(lines) {
			seg.Speaker = lines[i].Speaker
			seg.Text = lines[i].Text
		}
		segments = append(segments, seg)

		cursor = seg.End
		if i < len(clips)-1 {
			cursor += b.interClipGap(Line{Speaker: seg.Speaker, Text: seg.Text}, scenes[i+1])
		}
	}
	return segments
}

func (b *Builder) interClipGap(line Line, nextSceneStart bool) float64 {
	if b.Gap != nil {
		return b.Gap(line, nextSceneStart)
	}
	if b.ClipGapFrames > 0 && b.FrameRate > 0 {
		return float64(b.ClipGapFrames) / b.FrameRate
	}
	return 0
}

// Allocation is a pre-computed duration share for one cue, referencing the
// clip whose audio backs it. Multiple allocations may draw on one clip;
// their in/out offsets into that clip accumulate in order.
type Allocation struct {
	CueIndex  int
	ClipIndex int
	Duration  float64
}

// BuildAllocations places cue-level allocations with the same lead-in
// semantics as Build. scenes holds cue indices (as found in Allocation
// .CueIndex) that start a new scene.
func (b *Builder) BuildAllocations(allocs []Allocation, scenes map[int]bool) []Segment {
	segments := make([]Segment, 0, len(allocs))
	cursor := 0.0
	clipOffsets := make(map[int]float64)

	for _, alloc := range allocs {
		sceneStart := scenes[alloc.CueIndex]
		leadIn := 0.0
		if sceneStart && len(segments) > 0 {
			leadIn = b.SceneLeadIn
		}
		cursor += leadIn

		audioIn := clipOffsets[alloc.ClipIndex]
		audioOut := audioIn + alloc.Duration
		clipOffsets[alloc.ClipIndex] = audioOut

		segments = append(segments, Segment{
			Index:      alloc.CueIndex,
			Duration:   alloc.Duration,
			Start:      cursor,
			End:        cursor + alloc.Duration,
			SceneStart: sceneStart,
			LeadIn:     leadIn,
			AudioIn:    audioIn,
			AudioOut:   audioOut,
		})
		cursor += alloc.Duration
	}
	return segments
}

// TotalDuration returns the end of the final segment, or 0 for an empty
// timeline.
func TotalDuration(segments []Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].End
}

// SceneCount returns how many segments start a scene.
func SceneCount(segments []Segment) int {
	count := 0
	for _, seg := range segments {
		if seg.SceneStart {
			count++
		}
	}
	return count
}
