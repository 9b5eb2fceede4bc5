package timeline

import (
	"math"
	"testing"

	"cueline/internal/gap"
	"cueline/internal/subtitle"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func fourClips() []Clip {
	return []Clip{
		{Index: 1, Filename: "ep_001.mp3", Duration: 5.0},
		{Index: 2, Filename: "ep_002.mp3", Duration: 7.5},
		{Index: 3, Filename: "ep_003.mp3", Duration: 4.2},
		{Index: 4, Filename: "ep_004.mp3", Duration: 6.3},
	}
}

func TestBuildSceneLeadIn(t *testing.T) {
	b := NewBuilder(29.97, 3.0)
	segments := b.Build(fourClips(), nil, map[int]bool{2: true})

	wantStarts := []float64{0.0, 5.0, 15.5, 19.7}
	wantEnds := []float64{5.0, 12.5, 19.7, 26.0}
	if len(segments) != 4 {
		t.Fatalf("Build returned %d segments, want 4", len(segments))
	}
	for i, seg := range segments {
		if !almostEqual(seg.Start, wantStarts[i]) {
			t.Errorf("segment %d start = %v, want %v", i, seg.Start, wantStarts[i])
		}
		if !almostEqual(seg.End, wantEnds[i]) {
			t.Errorf("segment %d end = %v, want %v", i, seg.End, wantEnds[i])
		}
	}
	if !segments[2].SceneStart || !almostEqual(segments[2].LeadIn, 3.0) {
		t.Errorf("segment 2 scene metadata = (%v, %v), want (true, 3.0)", segments[2].SceneStart, segments[2].LeadIn)
	}
}

func TestBuildNoLeadInOnFirstSegment(t *testing.T) {
	b := NewBuilder(29.97, 3.0)
	segments := b.Build(fourClips(), nil, map[int]bool{0: true})
	if !almostEqual(segments[0].Start, 0.0) {
		t.Errorf("first segment start = %v, want 0 even when flagged", segments[0].Start)
	}
	if segments[0].LeadIn != 0 {
		t.Errorf("first segment lead-in = %v, want 0", segments[0].LeadIn)
	}
	if !segments[0].SceneStart {
		t.Error("first segment should still carry the scene flag")
	}
}

func TestBuildNonOverlap(t *testing.T) {
	b := NewBuilder(29.97, 3.0)
	b.ClipGapFrames = 15
	segments := b.Build(fourClips(), nil, map[int]bool{1: true, 3: true})
	for i := 0; i+1 < len(segments); i++ {
		if segments[i].End > segments[i+1].Start+1e-9 {
			t.Errorf("segment %d end %v > segment %d start %v", i, segments[i].End, i+1, segments[i+1].Start)
		}
	}
}

func TestBuildUniformClipGap(t *testing.T) {
	b := NewBuilder(30, 3.0)
	b.ClipGapFrames = 15
	segments := b.Build(fourClips()[:2], nil, nil)
	if !almostEqual(segments[1].Start, 5.5) {
		t.Errorf("segment 1 start = %v, want 5.5 (0.5s gap at 30fps)", segments[1].Start)
	}
}

func TestBuildContentGap(t *testing.T) {
	rules := gap.DefaultRules()
	b := NewBuilder(29.97, 3.0)
	b.Gap = func(line Line, sceneEnd bool) float64 {
		return rules.Gap(line.Text, gap.RoleNarration, sceneEnd)
	}
	lines := []Line{
		{Speaker: "Narrator", Text: "最初の問いかけ？"},
		{Speaker: "Narrator", Text: "続き"},
	}
	segments := b.Build(fourClips()[:2], lines, nil)

	wantGap := rules.Gap(lines[0].Text, gap.RoleNarration, false)
	if !almostEqual(segments[1].Start, 5.0+wantGap) {
		t.Errorf("segment 1 start = %v, want %v", segments[1].Start, 5.0+wantGap)
	}
	if segments[0].Text != lines[0].Text || segments[0].Speaker != "Narrator" {
		t.Errorf("segment 0 did not carry narration line: %+v", segments[0])
	}
}

func TestBuildEmpty(t *testing.T) {
	b := NewBuilder(29.97, 3.0)
	if segments := b.Build(nil, nil, nil); len(segments) != 0 {
		t.Errorf("Build(empty) = %d segments, want 0", len(segments))
	}
}

func TestBuildAllocationsSharedClipOffsets(t *testing.T) {
	b := NewBuilder(29.97, 3.0)
	allocs := []Allocation{
		{CueIndex: 1, ClipIndex: 1, Duration: 2.0},
		{CueIndex: 2, ClipIndex: 1, Duration: 3.0},
		{CueIndex: 3, ClipIndex: 2, Duration: 4.0},
	}
	segments := b.BuildAllocations(allocs, map[int]bool{3: true})

	if !almostEqual(segments[1].AudioIn, 2.0) || !almostEqual(segments[1].AudioOut, 5.0) {
		t.Errorf("allocation 2 offsets = [%v, %v], want [2, 5]", segments[1].AudioIn, segments[1].AudioOut)
	}
	// Lead-in applies before cue 3, which starts a scene.
	if !almostEqual(segments[2].Start, 2.0+3.0+3.0) {
		t.Errorf("allocation 3 start = %v, want 8.0", segments[2].Start)
	}
	if !almostEqual(segments[2].AudioIn, 0) {
		t.Errorf("allocation 3 audio in = %v, want 0 (fresh clip)", segments[2].AudioIn)
	}
}

func TestDetectSceneMarkers(t *testing.T) {
	cues := []subtitle.Cue{
		{Index: 1, StartMS: 0, EndMS: 2000, Text: "a"},
		{Index: 2, StartMS: 2500, EndMS: 4000, Text: "b"},
		{Index: 3, StartMS: 10000, EndMS: 12000, Text: "c"},
		{Index: 4, StartMS: 12400, EndMS: 14000, Text: "d"},
	}
	markers := DetectSceneMarkers(cues, 5.0)
	if len(markers) != 1 || markers[0] != 2 {
		t.Errorf("DetectSceneMarkers = %v, want [2]", markers)
	}
}

func TestDetectSceneMarkersIgnoresOrdinaryPauses(t *testing.T) {
	cues := []subtitle.Cue{
		{Index: 1, StartMS: 0, EndMS: 2000, Text: "a"},
		{Index: 2, StartMS: 4000, EndMS: 6000, Text: "b"},
		{Index: 3, StartMS: 8000, EndMS: 10000, Text: "c"},
	}
	if markers := DetectSceneMarkers(cues, 5.0); len(markers) != 0 {
		t.Errorf("DetectSceneMarkers = %v, want none for 2s pauses", markers)
	}
}

func TestTotalDurationAndSceneCount(t *testing.T) {
	b := NewBuilder(29.97, 3.0)
	segments := b.Build(fourClips(), nil, map[int]bool{0: true, 2: true})
	if got := TotalDuration(segments); !almostEqual(got, 26.0) {
		t.Errorf("TotalDuration = %v, want 26.0", got)
	}
	if got := SceneCount(segments); got != 2 {
		t.Errorf("SceneCount = %d, want 2", got)
	}
	if got := TotalDuration(nil); got != 0 {
		t.Errorf("TotalDuration(nil) = %v, want 0", got)
	}
}
