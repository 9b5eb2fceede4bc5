package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for failure classification. Every error leaving the
// pipeline wraps exactly one of these.
var (
	ErrInput       = errors.New("input error")
	ErrAudio       = errors.New("audio error")
	ErrAlignment   = errors.New("alignment error")
	ErrExport      = errors.New("export error")
	ErrConsistency = errors.New("consistency error")
	ErrLocked      = errors.New("project locked")
)

// Wrap builds an error message that includes phase context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, phase, message string, err error) error {
	detail := buildDetail(phase, message)
	if marker == nil {
		marker = ErrInput
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(phase, message string) string {
	parts := make([]string, 0, 2)
	if phase = strings.TrimSpace(phase); phase != "" {
		parts = append(parts, phase)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
