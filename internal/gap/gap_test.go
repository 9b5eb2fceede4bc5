package gap

import (
	"math"
	"strings"
	"testing"
)

func TestGapRoleBases(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		role Role
		want float64
	}{
		{"narration", RoleNarration, 0.35},
		{"dialogue", RoleDialogue, 0.60},
		{"dialogue lowercase", Role("dl"), 0.60},
		{"question role", Role("Q"), 0.60},
		{"unknown role defaults to narration", Role("HOST"), 0.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.Gap("", tt.role, false); got != tt.want {
				t.Errorf("Gap(empty, %q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestGapQuestionBonus(t *testing.T) {
	rules := DefaultRules()

	plain := rules.Gap("どうする", RoleNarration, false)
	ascii := rules.Gap("どうする?", RoleNarration, false)
	fullwidth := rules.Gap("どうする？", RoleNarration, false)

	if ascii < plain {
		t.Errorf("question gap %v < plain gap %v", ascii, plain)
	}
	if fullwidth < plain {
		t.Errorf("fullwidth question gap %v < plain gap %v", fullwidth, plain)
	}
}

func TestGapMonotonicInLength(t *testing.T) {
	rules := DefaultRules()
	prev := 0.0
	for n := 0; n <= 200; n += 10 {
		got := rules.Gap(strings.Repeat("あ", n), RoleNarration, false)
		if got < prev {
			t.Fatalf("gap decreased at length %d: %v < %v", n, got, prev)
		}
		prev = got
	}
}

func TestGapLengthBonusCapped(t *testing.T) {
	rules := DefaultRules()
	long := rules.Gap(strings.Repeat("あ", 1000), RoleNarration, false)
	want := rules.NarrationBase + rules.LongTextMax
	if math.Abs(long-want) > 1e-9 {
		t.Errorf("Gap(very long) = %v, want capped %v", long, want)
	}
}

func TestGapSceneFloor(t *testing.T) {
	rules := DefaultRules()

	if got := rules.Gap("短い", RoleNarration, true); got < rules.SceneMinimum {
		t.Errorf("scene gap = %v, want >= %v", got, rules.SceneMinimum)
	}

	// A gap already above the floor must not be lowered.
	longQuestion := strings.Repeat("あ", 500) + "？"
	withScene := rules.Gap(longQuestion, RoleDialogue, true)
	withoutScene := rules.Gap(longQuestion, RoleDialogue, false)
	if withScene < withoutScene {
		t.Errorf("scene flag lowered gap: %v < %v", withScene, withoutScene)
	}
}

func TestGapMillisecondRounding(t *testing.T) {
	rules := DefaultRules()
	got := rules.Gap("abc", RoleNarration, false)
	scaled := got * 1000
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		t.Errorf("Gap not rounded to milliseconds: %v", got)
	}
}
