// Package export writes the computed timeline and re-timed cues to the
// formats the editing workflow consumes: SubRip subtitles, a timeline CSV,
// and a Final Cut Pro 7 XML sequence for NLE import. The writers are thin
// adapters over already-computed data; no timing decisions happen here.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cueline/internal/subtitle"
	"cueline/internal/timeline"
)

// WriteSRT writes cues as a SubRip file, creating parent directories.
func WriteSRT(path string, cues []subtitle.Cue) error {
	return writeFile(path, []byte(subtitle.Render(cues)))
}

// WriteTimelineCSV writes one row per segment with timecodes at the given
// frame rate.
func WriteTimelineCSV(path string, segments []timeline.Segment, rate float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: ensure directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"index", "audio_filename", "duration_sec",
		"start_timecode", "end_timecode", "duration_frames",
		"is_scene_start", "scene_lead_in_sec", "speaker", "text",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("export: write csv header: %w", err)
	}

	for _, seg := range segments {
		sceneFlag := "NO"
		if seg.SceneStart {
			sceneFlag = "YES"
		}
		row := []string{
			strconv.Itoa(seg.Index),
			seg.Filename,
			fmt.Sprintf("%.2f", seg.Duration),
			seg.StartTimecode(rate),
			seg.EndTimecode(rate),
			strconv.Itoa(seg.DurationFrames(rate)),
			sceneFlag,
			fmt.Sprintf("%.2f", seg.LeadIn),
			seg.Speaker,
			seg.Text,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("export: write csv row %d: %w", seg.Index, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export: flush csv: %w", err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: ensure directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", filepath.Base(path), err)
	}
	return nil
}
