package script

import (
	"errors"
	"testing"
)

const sampleMarkdown = `
# Narration draft

専門を深めるべきか？視野を広げるべきか？
キャリアプランの迷いは、優柔不断なのか、それとも時代の要請なのか？

---

ようこそ、会議室へ。
`

func TestParseMarkdown(t *testing.T) {
	lines, err := ParseMarkdown(sampleMarkdown)
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("ParseMarkdown returned %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if line.Index != i+1 {
			t.Errorf("line %d index = %d, want dense 1-based", i, line.Index)
		}
		if line.Speaker != DefaultSpeaker {
			t.Errorf("line %d speaker = %q, want %q", i, line.Speaker, DefaultSpeaker)
		}
	}
	if lines[2].Text != "ようこそ、会議室へ。" {
		t.Errorf("line 3 text = %q", lines[2].Text)
	}
}

func TestParseMarkdownEmpty(t *testing.T) {
	if _, err := ParseMarkdown("# only a heading\n\n---\n"); !errors.Is(err, ErrNoLines) {
		t.Errorf("ParseMarkdown(no lines) error = %v, want ErrNoLines", err)
	}
}

func TestParseYAMLShapes(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"top level", "segments:\n  - text: 一行目\n  - text: 二行目\n    speaker: 上司\n"},
		{"tts block", "tts:\n  segments:\n    - text: 一行目\n    - text: 二行目\n      speaker: 上司\n"},
		{"episodes", "episodes:\n  - segments:\n      - text: 一行目\n      - text: 二行目\n        speaker: 上司\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := ParseYAML([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("ParseYAML: %v", err)
			}
			if len(lines) != 2 {
				t.Fatalf("ParseYAML returned %d lines, want 2", len(lines))
			}
			if lines[0].Speaker != DefaultSpeaker {
				t.Errorf("default speaker = %q, want %q", lines[0].Speaker, DefaultSpeaker)
			}
			if lines[1].Speaker != "上司" {
				t.Errorf("explicit speaker = %q, want 上司", lines[1].Speaker)
			}
		})
	}
}

func TestParseYAMLRejectsEmptyText(t *testing.T) {
	if _, err := ParseYAML([]byte("segments:\n  - text: ''\n")); err == nil {
		t.Error("ParseYAML(empty text) = nil error, want failure")
	}
	if _, err := ParseYAML([]byte("other: thing\n")); !errors.Is(err, ErrNoLines) {
		t.Errorf("ParseYAML(no segments) error = %v, want ErrNoLines", err)
	}
}

func TestSectionMarkers(t *testing.T) {
	content := `【00:00-01:00】アバン
一行目のナレーション。
二行目のナレーション。
【01:00-02:30】本編
【テロップ】画面注記はナレーションではない
三行目のナレーション。
四行目のナレーション。
【02:30-03:00】まとめ
五行目のナレーション。
`
	markers := SectionMarkers(content)
	want := []int{1, 3, 5}
	if len(markers) != len(want) {
		t.Fatalf("SectionMarkers = %v, want %v", markers, want)
	}
	for i := range want {
		if markers[i] != want[i] {
			t.Errorf("SectionMarkers = %v, want %v", markers, want)
			break
		}
	}
}

func TestSceneSetKeepsOpeningSection(t *testing.T) {
	set := SceneSet([]int{1, 3, 5})
	if !set[0] {
		t.Error("SceneSet must keep the opening section's scene flag")
	}
	if !set[2] || !set[4] {
		t.Errorf("SceneSet = %v, want 0-based indices 0, 2 and 4", set)
	}
	if set[1] || set[3] {
		t.Errorf("SceneSet = %v, unexpected indices flagged", set)
	}
}

func TestLineHelpers(t *testing.T) {
	line := Line{Index: 7, Text: "専門を 深める", Speaker: DefaultSpeaker}
	if got := line.CharCount(); got != 6 {
		t.Errorf("CharCount = %d, want 6", got)
	}
	if got := line.AudioFilename("Ep11"); got != "Ep11_007.mp3" {
		t.Errorf("AudioFilename = %q, want Ep11_007.mp3", got)
	}
}
