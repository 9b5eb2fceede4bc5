package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cueline/internal/align"
	"cueline/internal/config"
	"cueline/internal/consistency"
	"cueline/internal/export"
	"cueline/internal/gap"
	"cueline/internal/logging"
	"cueline/internal/runlog"
	"cueline/internal/script"
	"cueline/internal/subtitle"
	"cueline/internal/synth"
	"cueline/internal/textutil"
	"cueline/internal/timeline"
)

// Phase names used for logging and error context.
const (
	PhaseScript   = "script"
	PhaseSynth    = "synth"
	PhaseTimeline = "timeline"
	PhaseAlign    = "align"
	PhaseExport   = "export"
	PhaseValidate = "validate"
)

// Inputs names the source material for one run. SubtitlePath is optional;
// without it the run produces only the timeline artifacts.
type Inputs struct {
	ScriptPath   string
	SubtitlePath string
}

// Outcome collects everything a completed run produced.
type Outcome struct {
	RunID       string
	Segments    []timeline.Segment
	Cues        []subtitle.Cue
	Consistency consistency.Result
	Duration    float64
	CSVPath     string
	XMLPath     string
	SRTPath     string
}

// Pipeline orchestrates one full run: parse the script, resolve audio,
// build the timeline, align subtitles, write artifacts, and validate.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger

	// Synth resolves narration lines to audio clips. Defaults to the
	// audio-directory library when nil.
	Synth synth.Synthesizer
	// Store records run history when set.
	Store *runlog.Store
}

// New constructs a pipeline for the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run executes the pipeline once. The project output directory is guarded
// by a file lock so concurrent runs against the same project fail fast.
func (p *Pipeline) Run(ctx context.Context, inputs Inputs) (*Outcome, error) {
	if err := p.cfg.EnsureDirectories(); err != nil {
		return nil, Wrap(ErrInput, "", "ensure directories", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.OutputDir, ".cueline.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, Wrap(ErrLocked, "", "acquire project lock", err)
	}
	if !locked {
		return nil, Wrap(ErrLocked, "", "another run holds the project lock", nil)
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger)

	started := time.Now().UTC()
	outcome, runErr := p.run(ctx, logger, runID, inputs)

	if p.Store != nil {
		record := runlog.Run{
			ID:         runID,
			Project:    p.cfg.Project.Name,
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
			Status:     runlog.StatusCompleted,
		}
		if outcome != nil {
			record.Segments = len(outcome.Segments)
			record.Cues = len(outcome.Cues)
			record.Duration = outcome.Duration
			record.Errors = len(outcome.Consistency.Errors)
			record.Warnings = len(outcome.Consistency.Warnings)
		}
		if runErr != nil {
			record.Status = runlog.StatusFailed
			if record.Errors == 0 {
				record.Errors = 1
			}
		}
		if err := p.Store.Record(ctx, record); err != nil {
			logger.Warn("failed to record run history", logging.Error(err))
		}
	}

	return outcome, runErr
}

// Preview parses the script, resolves audio, and builds the timeline
// without taking the project lock or writing any artifacts.
func (p *Pipeline) Preview(ctx context.Context, inputs Inputs) ([]timeline.Segment, error) {
	lines, scriptBody, err := p.loadScript(inputs.ScriptPath)
	if err != nil {
		return nil, err
	}

	var sourceCues []subtitle.Cue
	if inputs.SubtitlePath != "" {
		data, err := os.ReadFile(inputs.SubtitlePath)
		if err != nil {
			return nil, Wrap(ErrInput, PhaseScript, "read subtitles", err)
		}
		sourceCues, err = subtitle.Parse(string(data))
		if err != nil {
			return nil, Wrap(ErrInput, PhaseScript, "parse subtitles", err)
		}
	}

	clips, err := p.resolveClips(ctx, lines)
	if err != nil {
		return nil, Wrap(ErrAudio, PhaseSynth, "resolve audio clips", err)
	}
	return p.buildTimeline(clips, lines, scriptBody, sourceCues), nil
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, runID string, inputs Inputs) (*Outcome, error) {
	lines, scriptBody, err := p.loadScript(inputs.ScriptPath)
	if err != nil {
		return nil, err
	}
	logger.Info("script parsed",
		logging.String(logging.FieldPhase, PhaseScript),
		logging.Int("lines", len(lines)))

	var sourceCues []subtitle.Cue
	if inputs.SubtitlePath != "" {
		data, err := os.ReadFile(inputs.SubtitlePath)
		if err != nil {
			return nil, Wrap(ErrInput, PhaseScript, "read subtitles", err)
		}
		sourceCues, err = subtitle.Parse(string(data))
		if err != nil {
			return nil, Wrap(ErrInput, PhaseScript, "parse subtitles", err)
		}
	}

	clips, err := p.resolveClips(ctx, lines)
	if err != nil {
		return nil, Wrap(ErrAudio, PhaseSynth, "resolve audio clips", err)
	}
	logger.Info("audio clips resolved",
		logging.String(logging.FieldPhase, PhaseSynth),
		logging.Int("clips", len(clips)))

	segments := p.buildTimeline(clips, lines, scriptBody, sourceCues)
	duration := timeline.TotalDuration(segments)
	logger.Info("timeline built",
		logging.String(logging.FieldPhase, PhaseTimeline),
		logging.Int("segments", len(segments)),
		logging.Int("scenes", timeline.SceneCount(segments)),
		logging.Float64("duration_seconds", duration))

	outcome := &Outcome{
		RunID:    runID,
		Segments: segments,
		Duration: duration,
	}

	if len(sourceCues) > 0 {
		result, err := align.Align(sourceCues, segments, logger)
		if err != nil {
			return outcome, Wrap(ErrAlignment, PhaseAlign, "align subtitles", err)
		}
		outcome.Cues = align.Retime(sourceCues, result)
		logger.Info("subtitles aligned",
			logging.String(logging.FieldPhase, PhaseAlign),
			logging.Int("cues", len(outcome.Cues)),
			logging.Int("text_matched", result.TextMatched))
	}

	if err := p.export(outcome); err != nil {
		return outcome, err
	}

	if len(sourceCues) > 0 {
		opts := consistency.Options{
			CountTolerance: p.cfg.Validation.CountTolerance,
			SimilarityMin:  p.cfg.Validation.SimilarityMin,
		}
		outcome.Consistency = consistency.Compare(sourceCues, outcome.Cues, opts)
		for _, warning := range outcome.Consistency.Warnings {
			logger.Warn(warning, logging.String(logging.FieldPhase, PhaseValidate))
		}
		if !outcome.Consistency.OK() {
			return outcome, Wrap(ErrConsistency, PhaseValidate, outcome.Consistency.Summary(), nil)
		}
		logger.Info("consistency check passed",
			logging.String(logging.FieldPhase, PhaseValidate),
			logging.Int("warnings", len(outcome.Consistency.Warnings)))
	}

	return outcome, nil
}

func (p *Pipeline) loadScript(path string) ([]script.Line, string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, "", Wrap(ErrInput, PhaseScript, "script path is required", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", Wrap(ErrInput, PhaseScript, "read script", err)
	}

	var lines []script.Line
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		lines, err = script.ParseYAML(data)
	default:
		lines, err = script.ParseMarkdown(string(data))
	}
	if err != nil {
		return nil, "", Wrap(ErrInput, PhaseScript, "parse script", err)
	}

	speaker := p.cfg.Project.DefaultSpeaker
	if speaker != "" {
		for i := range lines {
			if strings.TrimSpace(lines[i].Speaker) == "" || lines[i].Speaker == script.DefaultSpeaker {
				lines[i].Speaker = speaker
			}
		}
	}
	return lines, string(data), nil
}

func (p *Pipeline) resolveClips(ctx context.Context, lines []script.Line) ([]timeline.Clip, error) {
	synthesizer := p.Synth
	if synthesizer == nil {
		synthesizer = synth.NewLibrary(p.cfg.Paths.AudioDir, p.cfg.Project.Name, p.cfg.FFprobeBinary())
	}
	return synth.SynthesizeAll(ctx, synthesizer, lines)
}

// buildTimeline places clips with scene markers from the script sections
// when present, falling back to subtitle gap detection when the cue count
// matches the clip count.
func (p *Pipeline) buildTimeline(clips []timeline.Clip, lines []script.Line, scriptBody string, sourceCues []subtitle.Cue) []timeline.Segment {
	scenes := script.SceneSet(script.SectionMarkers(scriptBody))
	if len(scenes) == 0 && len(sourceCues) == len(clips) {
		scenes = timeline.MarkerSet(timeline.DetectSceneMarkers(sourceCues, p.cfg.Timeline.SceneGapThreshold))
	}

	builder := timeline.NewBuilder(p.cfg.FrameRate(), p.cfg.Timeline.SceneLeadIn)
	if p.cfg.Timeline.ClipGapFrames > 0 {
		builder.ClipGapFrames = p.cfg.Timeline.ClipGapFrames
	} else {
		rules := p.gapRules()
		builder.Gap = func(line timeline.Line, sceneEnd bool) float64 {
			return rules.Gap(line.Text, speakerRole(line.Speaker, p.cfg.Project.DefaultSpeaker), sceneEnd)
		}
	}

	narration := make([]timeline.Line, len(lines))
	for i, line := range lines {
		narration[i] = timeline.Line{Speaker: line.Speaker, Text: line.Text}
	}
	return builder.Build(clips, narration, scenes)
}

func (p *Pipeline) gapRules() gap.Rules {
	return gap.Rules{
		NarrationBase: p.cfg.Gaps.Narration,
		DialogueBase:  p.cfg.Gaps.Dialogue,
		QuestionBonus: p.cfg.Gaps.QuestionBonus,
		LongTextRate:  p.cfg.Gaps.PerChar,
		LongTextMax:   p.cfg.Gaps.PerCharCap,
		SceneMinimum:  p.cfg.Gaps.SceneFloor,
	}
}

// speakerRole maps a script speaker to a gap role. The configured default
// speaker narrates; everything else is treated as dialogue.
func speakerRole(speaker, defaultSpeaker string) gap.Role {
	trimmed := strings.TrimSpace(speaker)
	if trimmed == "" || strings.EqualFold(trimmed, defaultSpeaker) || strings.EqualFold(trimmed, script.DefaultSpeaker) {
		return gap.RoleNarration
	}
	return gap.RoleDialogue
}

func (p *Pipeline) export(outcome *Outcome) error {
	project := textutil.SanitizeFileName(p.cfg.Project.Name)
	if project == "" {
		project = "project"
	}
	outDir := p.cfg.Paths.OutputDir

	outcome.CSVPath = filepath.Join(outDir, fmt.Sprintf("%s_timeline.csv", project))
	if err := export.WriteTimelineCSV(outcome.CSVPath, outcome.Segments, p.cfg.FrameRate()); err != nil {
		return Wrap(ErrExport, PhaseExport, "write timeline csv", err)
	}

	outcome.XMLPath = filepath.Join(outDir, fmt.Sprintf("%s.xml", project))
	opts := export.XMLOptions{
		ProjectName: project,
		FrameRate:   p.cfg.FrameRate(),
		Timebase:    p.cfg.Timeline.Timebase,
		NTSC:        p.cfg.Timeline.NTSC,
		SampleRate:  p.cfg.Audio.SampleRate,
		AudioDir:    p.cfg.Paths.AudioDir,
	}
	if err := export.WriteFCP7XML(outcome.XMLPath, outcome.Segments, opts); err != nil {
		return Wrap(ErrExport, PhaseExport, "write fcp7 xml", err)
	}

	if len(outcome.Cues) > 0 {
		outcome.SRTPath = filepath.Join(outDir, fmt.Sprintf("%s_aligned.srt", project))
		if err := export.WriteSRT(outcome.SRTPath, outcome.Cues); err != nil {
			return Wrap(ErrExport, PhaseExport, "write aligned srt", err)
		}
	}
	return nil
}
