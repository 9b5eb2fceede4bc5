package consistency

import (
	"strings"
	"testing"

	"cueline/internal/subtitle"
)

func cueSeq(texts ...string) []subtitle.Cue {
	cues := make([]subtitle.Cue, len(texts))
	for i, text := range texts {
		cues[i] = subtitle.Cue{
			Index:   i + 1,
			StartMS: i * 3000,
			EndMS:   i*3000 + 2000,
			Text:    text,
		}
	}
	return cues
}

func TestCompareIdentical(t *testing.T) {
	source := cueSeq("first line", "second line", "third line")
	result := Compare(source, source, DefaultOptions())
	if !result.OK() {
		t.Errorf("Compare(identical) failed: %v", result.Errors)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Compare(identical) warnings: %v", result.Warnings)
	}
}

func TestComparePunctuationOnlyDrift(t *testing.T) {
	source := cueSeq("Hello, world!", "How are you today?")
	output := cueSeq("Hello world", "How are you today")
	result := Compare(source, output, DefaultOptions())
	if !result.OK() {
		t.Errorf("punctuation-only drift should pass: %v", result.Errors)
	}
}

func TestCompareCountTolerance(t *testing.T) {
	source := cueSeq(make([]string, 100)...)
	for i := range source {
		source[i].Text = "line"
	}

	// 3% drop: warning, not error.
	within := Compare(source, source[:97], DefaultOptions())
	if !within.OK() {
		t.Errorf("3%% drop should not error: %v", within.Errors)
	}
	if len(within.Warnings) == 0 {
		t.Error("3% drop should warn")
	}

	// 10% drop: hard error.
	beyond := Compare(source, source[:90], DefaultOptions())
	if beyond.OK() {
		t.Error("10% drop should fail")
	}
}

func TestCompareTextDrift(t *testing.T) {
	source := cueSeq("the quick brown fox jumps over the lazy dog")
	output := cueSeq("completely unrelated replacement text here")
	result := Compare(source, output, DefaultOptions())
	if result.OK() {
		t.Error("unrelated text should fail the similarity check")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "similarity") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a similarity error, got %v", result.Errors)
	}
}

func TestCompareContinuityDefectsAreErrors(t *testing.T) {
	source := cueSeq("a", "b")
	output := []subtitle.Cue{
		{Index: 1, StartMS: 0, EndMS: 5000, Text: "a"},
		{Index: 2, StartMS: 4000, EndMS: 6000, Text: "b"},
	}
	result := Compare(source, output, DefaultOptions())
	if result.OK() {
		t.Error("overlapping output should fail")
	}
}

func TestCompareEmptySource(t *testing.T) {
	result := Compare(nil, cueSeq("a"), DefaultOptions())
	if result.OK() {
		t.Error("empty source should fail")
	}
}

func TestSummary(t *testing.T) {
	result := Result{Errors: []string{"boom"}, Warnings: []string{"meh"}}
	summary := result.Summary()
	if !strings.HasPrefix(summary, "FAIL") {
		t.Errorf("Summary = %q, want FAIL prefix", summary)
	}
	if !strings.Contains(summary, "boom") || !strings.Contains(summary, "meh") {
		t.Errorf("Summary missing findings: %q", summary)
	}
	if pass := (Result{}).Summary(); pass != "PASS" {
		t.Errorf("empty Summary = %q, want PASS", pass)
	}
}
