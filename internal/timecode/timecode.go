package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrFormat marks a malformed textual timecode. Errors produced by the parse
// functions wrap this sentinel and name the offending input.
var ErrFormat = errors.New("invalid timecode")

// SecondsToFrames converts elapsed seconds to a total frame count at the
// given rate. The count is truncated, not rounded.
func SecondsToFrames(seconds, rate float64) int {
	if seconds <= 0 || rate <= 0 {
		return 0
	}
	return int(seconds * rate)
}

// FramesToSeconds converts a frame count back to seconds at the given rate.
func FramesToSeconds(frames int, rate float64) float64 {
	if frames <= 0 || rate <= 0 {
		return 0
	}
	return float64(frames) / rate
}

// FormatFrames renders seconds as "HH:MM:SS:FF" frame timecode. The total
// frame count is computed at the exact rate; the display buckets use the
// rounded integer rate as the modulus, so sub-second timing stays
// frame-accurate while whole seconds line up with the nominal rate.
func FormatFrames(seconds, rate float64) string {
	totalFrames := SecondsToFrames(seconds, rate)
	rounded := int(math.Round(rate))
	if rounded <= 0 {
		rounded = 1
	}

	frames := totalFrames % rounded
	totalSeconds := totalFrames / rounded

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, secs, frames)
}

// ParseFrames parses an "HH:MM:SS:FF" frame timecode into seconds at the
// given rate.
func ParseFrames(value string, rate float64) (float64, error) {
	if rate <= 0 {
		return 0, fmt.Errorf("%w: non-positive frame rate %g", ErrFormat, rate)
	}
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, value)
	}
	fields := make([]int, 4)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrFormat, value)
		}
		fields[i] = n
	}
	seconds := float64(fields[0]*3600 + fields[1]*60 + fields[2])
	return seconds + float64(fields[3])/rate, nil
}

// FormatMillis renders seconds as "HH:MM:SS,mmm" millisecond timecode using
// a truncating integer split.
func FormatMillis(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMS := int(seconds * 1000)

	millis := totalMS % 1000
	totalSeconds := totalMS / 1000

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseMillis parses an "HH:MM:SS,mmm" millisecond timecode into seconds.
func ParseMillis(value string) (float64, error) {
	ms, err := ParseMillisAsInt(value)
	if err != nil {
		return 0, err
	}
	return float64(ms) / 1000, nil
}

// ParseMillisAsInt parses an "HH:MM:SS,mmm" timecode into total milliseconds.
func ParseMillisAsInt(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	halves := strings.Split(trimmed, ",")
	if len(halves) != 2 || len(halves[1]) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, value)
	}
	hms := strings.Split(halves[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(halves[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("%w: %q", ErrFormat, value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, value)
	}
	return hours*3_600_000 + minutes*60_000 + seconds*1_000 + millis, nil
}

// FormatMillisFromInt renders total milliseconds as "HH:MM:SS,mmm".
func FormatMillisFromInt(ms int) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	seconds := ms / 1_000
	millis := ms % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
