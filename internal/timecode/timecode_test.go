package timecode

import (
	"errors"
	"math"
	"testing"
)

func TestFormatFramesNTSC(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		rate    float64
		want    string
	}{
		{"zero", 0, 29.97, "00:00:00:00"},
		{"one hour one minute", 3661.5, 29.97, "01:01:01:15"},
		{"half second", 0.5, 29.97, "00:00:00:14"},
		{"integer rate", 10.0, 24, "00:00:10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatFrames(tt.seconds, tt.rate)
			if got != tt.want {
				t.Errorf("FormatFrames(%v, %v) = %q, want %q", tt.seconds, tt.rate, got, tt.want)
			}
		})
	}
}

func TestFrameRoundTripWithinOneFrame(t *testing.T) {
	rates := []float64{24, 25, 29.97, 30, 59.94}
	seconds := []float64{0, 0.04, 1.5, 59.999, 61.2, 3599.97, 3661.5}

	for _, rate := range rates {
		for _, sec := range seconds {
			encoded := FormatFrames(sec, rate)
			decoded, err := ParseFrames(encoded, rate)
			if err != nil {
				t.Fatalf("ParseFrames(%q, %v): %v", encoded, rate, err)
			}
			if diff := math.Abs(decoded - sec); diff >= 1/rate+1e-9 {
				t.Errorf("round trip %v @ %v fps drifted by %v (tc %q)", sec, rate, diff, encoded)
			}
		}
	}
}

func TestParseFramesRejectsMalformed(t *testing.T) {
	inputs := []string{"", "01:02:03", "aa:bb:cc:dd", "01:02:03:04:05", "-1:00:00:00"}
	for _, input := range inputs {
		if _, err := ParseFrames(input, 29.97); !errors.Is(err, ErrFormat) {
			t.Errorf("ParseFrames(%q) error = %v, want ErrFormat", input, err)
		}
	}
}

func TestMillisTimecode(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{5.5, "00:00:05,500"},
		{65.25, "00:01:05,250"},
		{3661.5, "01:01:01,500"},
	}

	for _, tt := range tests {
		got := FormatMillis(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatMillis(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
		back, err := ParseMillis(got)
		if err != nil {
			t.Fatalf("ParseMillis(%q): %v", got, err)
		}
		if math.Abs(back-tt.seconds) >= 0.001+1e-9 {
			t.Errorf("round trip %v drifted to %v", tt.seconds, back)
		}
	}
}

func TestParseMillisAsInt(t *testing.T) {
	ms, err := ParseMillisAsInt("00:01:23,456")
	if err != nil {
		t.Fatalf("ParseMillisAsInt: %v", err)
	}
	if ms != 83456 {
		t.Errorf("ParseMillisAsInt = %d, want 83456", ms)
	}

	bad := []string{"00:01:23.456", "00:01:23,45", "99:99:99,999", "x"}
	for _, input := range bad {
		if _, err := ParseMillisAsInt(input); !errors.Is(err, ErrFormat) {
			t.Errorf("ParseMillisAsInt(%q) error = %v, want ErrFormat", input, err)
		}
	}
}

func TestFramesSecondsConversions(t *testing.T) {
	if got := SecondsToFrames(2.0, 29.97); got != 59 {
		t.Errorf("SecondsToFrames(2.0, 29.97) = %d, want 59", got)
	}
	if got := SecondsToFrames(-1, 30); got != 0 {
		t.Errorf("SecondsToFrames(-1, 30) = %d, want 0", got)
	}
	if got := FramesToSeconds(60, 30); got != 2.0 {
		t.Errorf("FramesToSeconds(60, 30) = %v, want 2.0", got)
	}
}
