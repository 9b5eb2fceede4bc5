package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validateGaps(); err != nil {
		return err
	}
	if err := c.validateValidation(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTimeline() error {
	if c.Timeline.Timebase <= 0 {
		return errors.New("timeline.timebase must be positive")
	}
	if c.Timeline.SceneLeadIn < 0 {
		return errors.New("timeline.scene_lead_in must be >= 0")
	}
	if c.Timeline.ClipGapFrames < 0 {
		return errors.New("timeline.clip_gap_frames must be >= 0")
	}
	if c.Timeline.SceneGapThreshold <= 0 {
		return errors.New("timeline.scene_gap_threshold must be positive")
	}
	return nil
}

func (c *Config) validateGaps() error {
	if err := ensureNonNegativeMap(map[string]float64{
		"gaps.narration":      c.Gaps.Narration,
		"gaps.dialogue":       c.Gaps.Dialogue,
		"gaps.question_bonus": c.Gaps.QuestionBonus,
		"gaps.per_char":       c.Gaps.PerChar,
		"gaps.per_char_cap":   c.Gaps.PerCharCap,
		"gaps.scene_floor":    c.Gaps.SceneFloor,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateValidation() error {
	if c.Validation.CountTolerance < 0 || c.Validation.CountTolerance > 1 {
		return errors.New("validation.count_tolerance must be between 0 and 1")
	}
	if c.Validation.SimilarityMin <= 0 || c.Validation.SimilarityMin > 1 {
		return errors.New("validation.similarity_min must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensureNonNegativeMap(values map[string]float64) error {
	for key, value := range values {
		if value < 0 {
			return fmt.Errorf("%s must be >= 0", key)
		}
	}
	return nil
}
