package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Project contains identity settings for the production being aligned.
type Project struct {
	Name           string `toml:"name"`
	DefaultSpeaker string `toml:"default_speaker"`
}

// Paths contains directory configuration.
type Paths struct {
	AudioDir  string `toml:"audio_dir"`
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	RunDBPath string `toml:"run_db_path"`
}

// Timeline contains sequence timing configuration.
type Timeline struct {
	Timebase          int     `toml:"timebase"`
	NTSC              bool    `toml:"ntsc"`
	SceneLeadIn       float64 `toml:"scene_lead_in"`
	ClipGapFrames     int     `toml:"clip_gap_frames"`
	SceneGapThreshold float64 `toml:"scene_gap_threshold"`
}

// Gaps contains the pause model applied between narration clips.
type Gaps struct {
	Narration     float64 `toml:"narration"`
	Dialogue      float64 `toml:"dialogue"`
	QuestionBonus float64 `toml:"question_bonus"`
	PerChar       float64 `toml:"per_char"`
	PerCharCap    float64 `toml:"per_char_cap"`
	SceneFloor    float64 `toml:"scene_floor"`
}

// Validation contains thresholds for the subtitle consistency check.
type Validation struct {
	CountTolerance float64 `toml:"count_tolerance"`
	SimilarityMin  float64 `toml:"similarity_min"`
}

// Audio contains settings for clip measurement and synthesis output.
type Audio struct {
	FFprobeBinary string `toml:"ffprobe_binary"`
	SampleRate    int    `toml:"sample_rate"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for cueline.
//
// Configuration sections by subsystem:
//   - Project: production name and speaker defaults
//   - Paths: audio, output, log, and run database locations
//   - Timeline: timebase, NTSC flag, scene lead-in, and clip gaps
//   - Gaps: content-driven pause model between clips
//   - Validation: subtitle consistency thresholds
//   - Audio: ffprobe binary and synthesis sample rate
//   - Logging: log format and level
type Config struct {
	Project    Project    `toml:"project"`
	Paths      Paths      `toml:"paths"`
	Timeline   Timeline   `toml:"timeline"`
	Gaps       Gaps       `toml:"gaps"`
	Validation Validation `toml:"validation"`
	Audio      Audio      `toml:"audio"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cueline/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cueline.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// FrameRate returns the effective sequence frame rate. NTSC timebases run
// at timebase*1000/1001 (29.97 for a timebase of 30).
func (c *Config) FrameRate() float64 {
	if c.Timeline.NTSC {
		return float64(c.Timeline.Timebase) * 1000.0 / 1001.0
	}
	return float64(c.Timeline.Timebase)
}

// EnsureDirectories creates the directories a run writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir}
	if db := strings.TrimSpace(c.Paths.RunDBPath); db != "" {
		dirs = append(dirs, filepath.Dir(db))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFprobeBinary returns the ffprobe executable used for clip measurement.
func (c *Config) FFprobeBinary() string {
	if bin := strings.TrimSpace(c.Audio.FFprobeBinary); bin != "" {
		return bin
	}
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
