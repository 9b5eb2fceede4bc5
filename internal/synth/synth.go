// Package synth models the narration-to-speech collaborator. The pipeline
// only requires that each narration line eventually yields a measured audio
// clip; retries, quotas, and vendor specifics stay behind the Synthesizer
// interface. The bundled implementation reuses audio files that already
// exist on disk, probing their real duration and sample rate.
package synth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cueline/internal/media/ffprobe"
	"cueline/internal/script"
	"cueline/internal/timeline"
)

// ErrClipMissing reports that no audio file exists for a narration line.
var ErrClipMissing = errors.New("synth: audio clip missing")

// Synthesizer turns one narration line into one measured audio clip.
type Synthesizer interface {
	Synthesize(ctx context.Context, line script.Line) (timeline.Clip, error)
}

// Prober measures an audio file's duration in seconds and its sample rate.
type Prober func(ctx context.Context, path string) (float64, int, error)

// Library resolves narration lines against pre-generated audio files in a
// directory, named {project}_{index:03d} with an audio extension.
type Library struct {
	Dir     string
	Project string
	Probe   Prober
}

var clipExtensions = []string{".mp3", ".wav", ".flac"}

// NewLibrary builds a Library that measures clips with the given ffprobe
// binary.
func NewLibrary(dir, project, ffprobeBinary string) *Library {
	return &Library{
		Dir:     dir,
		Project: project,
		Probe: func(ctx context.Context, path string) (float64, int, error) {
			return ffprobe.ProbeAudio(ctx, ffprobeBinary, path)
		},
	}
}

// Synthesize locates and measures the audio file backing the line.
func (l *Library) Synthesize(ctx context.Context, line script.Line) (timeline.Clip, error) {
	path, err := l.locate(line.Index)
	if err != nil {
		return timeline.Clip{}, err
	}
	duration, sampleRate, err := l.Probe(ctx, path)
	if err != nil {
		return timeline.Clip{}, fmt.Errorf("synth: measure %s: %w", filepath.Base(path), err)
	}
	return timeline.Clip{
		Index:      line.Index,
		Filename:   filepath.Base(path),
		Duration:   duration,
		SampleRate: sampleRate,
	}, nil
}

func (l *Library) locate(index int) (string, error) {
	stem := fmt.Sprintf("%s_%03d", l.Project, index)
	for _, ext := range clipExtensions {
		path := filepath.Join(l.Dir, stem+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s.* in %s", ErrClipMissing, stem, l.Dir)
}

// SynthesizeAll runs the synthesizer over every line in order. The first
// failure aborts the batch; clips are returned in line order.
func SynthesizeAll(ctx context.Context, s Synthesizer, lines []script.Line) ([]timeline.Clip, error) {
	clips := make([]timeline.Clip, 0, len(lines))
	for _, line := range lines {
		clip, err := s.Synthesize(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line.Index, err)
		}
		clips = append(clips, clip)
	}
	return clips, nil
}
