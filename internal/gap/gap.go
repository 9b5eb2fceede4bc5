// Package gap computes the pause inserted after a narration segment from its
// text, speaker role, and scene position. The rule is purely additive: a
// role-dependent base, a question bonus, and a capped length bonus, with a
// scene-transition floor that can raise but never lower the total.
package gap

import (
	"math"
	"strings"
)

// Role classifies who is speaking for gap purposes. Anything that is not
// dialogue-like gets the narration base.
type Role string

const (
	RoleNarration Role = "NA"
	RoleDialogue  Role = "DL"
)

// Rules holds the gap constants, all in seconds (LongTextRate is seconds
// per character). Values are configuration; the additive shape of the rule
// is the contract.
type Rules struct {
	NarrationBase float64
	DialogueBase  float64
	QuestionBonus float64
	LongTextRate  float64
	LongTextMax   float64
	SceneMinimum  float64
}

// DefaultRules returns the production gap constants.
func DefaultRules() Rules {
	return Rules{
		NarrationBase: 0.35,
		DialogueBase:  0.60,
		QuestionBonus: 0.30,
		LongTextRate:  0.004,
		LongTextMax:   0.40,
		SceneMinimum:  1.80,
	}
}

// Gap returns the pause in seconds to insert after a segment, rounded to
// millisecond precision. sceneEnd raises the result to at least
// SceneMinimum.
func (r Rules) Gap(text string, role Role, sceneEnd bool) float64 {
	base := r.NarrationBase
	if isDialogueLike(role) {
		base = r.DialogueBase
	}

	bonus := 0.0
	if strings.ContainsAny(text, "?？") {
		bonus += r.QuestionBonus
	}
	if text != "" {
		bonus += math.Min(r.LongTextMax, float64(len([]rune(text)))*r.LongTextRate)
	}

	total := base + bonus
	if sceneEnd && total < r.SceneMinimum {
		total = r.SceneMinimum
	}
	return math.Round(total*1000) / 1000
}

func isDialogueLike(role Role) bool {
	switch strings.ToUpper(strings.TrimSpace(string(role))) {
	case "DL", "Q", "DIALOGUE":
		return true
	}
	return false
}
