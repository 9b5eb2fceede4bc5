package export

import (
	"encoding/csv"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"cueline/internal/subtitle"
	"cueline/internal/timeline"
)

func sampleSegments() []timeline.Segment {
	return []timeline.Segment{
		{
			Index:    1,
			Filename: "demo_001.mp3",
			Duration: 5.0,
			Start:    0.0,
			End:      5.0,
			AudioOut: 5.0,
			Speaker:  "Narrator",
			Text:     "First line.",
		},
		{
			Index:      2,
			Filename:   "demo_002.mp3",
			Duration:   7.5,
			Start:      8.0,
			End:        15.5,
			SceneStart: true,
			LeadIn:     3.0,
			AudioOut:   7.5,
			Speaker:    "Narrator",
			Text:       "Second line.",
		},
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "demo.srt")
	cues := []subtitle.Cue{
		{Index: 1, StartMS: 0, EndMS: 2500, Text: "Hello."},
		{Index: 2, StartMS: 2500, EndMS: 5000, Text: "World."},
	}
	if err := WriteSRT(path, cues); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	parsed, err := subtitle.Parse(string(data))
	if err != nil {
		t.Fatalf("parse written srt: %v", err)
	}
	if len(parsed) != len(cues) {
		t.Fatalf("round trip cue count = %d, want %d", len(parsed), len(cues))
	}
	if parsed[1].Text != "World." {
		t.Errorf("cue text = %q", parsed[1].Text)
	}
}

func TestWriteTimelineCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timeline.csv")
	if err := WriteTimelineCSV(path, sampleSegments(), 30.0); err != nil {
		t.Fatalf("WriteTimelineCSV: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "index" || rows[0][6] != "is_scene_start" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][6] != "NO" || rows[2][6] != "YES" {
		t.Errorf("scene flags = %q, %q", rows[1][6], rows[2][6])
	}
	if rows[2][3] != "00:00:08:00" {
		t.Errorf("start timecode = %q", rows[2][3])
	}
	if rows[2][7] != "3.00" {
		t.Errorf("lead-in = %q", rows[2][7])
	}
}

func TestWriteFCP7XML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.xml")
	opts := XMLOptions{
		ProjectName: "demo",
		FrameRate:   30.0,
		Timebase:    30,
		NTSC:        false,
		SampleRate:  44100,
		AudioDir:    "/media/demo/audio",
	}
	if err := WriteFCP7XML(path, sampleSegments(), opts); err != nil {
		t.Fatalf("WriteFCP7XML: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var doc xmlXMEML
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Version != "4" {
		t.Errorf("xmeml version = %q", doc.Version)
	}
	seq := doc.Sequence
	if seq.Name != "demo_timeline" {
		t.Errorf("sequence name = %q", seq.Name)
	}
	if seq.UUID == "" {
		t.Error("sequence uuid is empty")
	}
	if seq.Rate.Timebase != 30 || seq.Rate.NTSC != "FALSE" {
		t.Errorf("sequence rate = %+v", seq.Rate)
	}
	if got, want := seq.Duration, 465; got != want { // 15.5s at 30fps
		t.Errorf("sequence duration = %d frames, want %d", got, want)
	}
	if len(seq.Media.Audio.Tracks) != 1 {
		t.Fatalf("track count = %d", len(seq.Media.Audio.Tracks))
	}
	clips := seq.Media.Audio.Tracks[0].ClipItems
	if len(clips) != 2 {
		t.Fatalf("clip count = %d", len(clips))
	}
	second := clips[1]
	if second.Start != 240 || second.End != 465 {
		t.Errorf("clip placement = [%d, %d], want [240, 465]", second.Start, second.End)
	}
	if second.Out-second.In != second.Duration {
		t.Errorf("in/out span %d does not match duration %d", second.Out-second.In, second.Duration)
	}
	if second.File.PathURL != "file:///media/demo/audio/demo_002.mp3" {
		t.Errorf("pathurl = %q", second.File.PathURL)
	}
	if second.File.Media.Audio.SampleCharacteristics.SampleRate != 44100 {
		t.Errorf("sample rate = %d", second.File.Media.Audio.SampleCharacteristics.SampleRate)
	}
}
