// Package ffprobe shells out to ffprobe to measure produced audio files.
// Clip durations and sample rates must come from the actual audio, never
// from assumptions about the synthesis service.
package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Result is the parsed ffprobe output for one audio file.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes one stream in the probed container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Duration   string `json:"duration"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// Format captures container-level metadata.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Inspect runs ffprobe against the given path and decodes its JSON output.
func Inspect(ctx context.Context, binary, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error", "-hide_banner",
		"-select_streams", "a:0",
		"-show_format", "-show_streams",
		"-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// DurationSeconds returns the container duration, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// AudioSampleRate returns the sample rate of the first audio stream, or 0
// when no audio stream reports one.
func (r Result) AudioSampleRate() int {
	for _, stream := range r.Streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		rate, err := strconv.Atoi(strings.TrimSpace(stream.SampleRate))
		if err == nil && rate > 0 {
			return rate
		}
	}
	return 0
}

// ProbeAudio measures an audio file, failing when either the duration or
// the sample rate cannot be read.
func ProbeAudio(ctx context.Context, binary, path string) (float64, int, error) {
	result, err := Inspect(ctx, binary, path)
	if err != nil {
		return 0, 0, err
	}
	duration := result.DurationSeconds()
	if duration <= 0 {
		return 0, 0, fmt.Errorf("ffprobe: no duration reported for %s", path)
	}
	rate := result.AudioSampleRate()
	if rate <= 0 {
		return 0, 0, fmt.Errorf("ffprobe: no audio sample rate reported for %s", path)
	}
	return duration, rate, nil
}
