package config

const (
	defaultProjectName       = "project"
	defaultSpeaker           = "Narrator"
	defaultAudioDir          = "audio"
	defaultOutputDir         = "output"
	defaultLogDir            = "~/.local/share/cueline/logs"
	defaultRunDBPath         = "~/.local/share/cueline/runs.db"
	defaultTimebase          = 30
	defaultNTSC              = true
	defaultSceneLeadIn       = 3.0
	defaultSceneGapThreshold = 5.0
	defaultGapNarration      = 0.35
	defaultGapDialogue       = 0.60
	defaultGapQuestionBonus  = 0.30
	defaultGapPerChar        = 0.004
	defaultGapPerCharCap     = 0.40
	defaultGapSceneFloor     = 1.80
	defaultCountTolerance    = 0.05
	defaultSimilarityMin     = 0.95
	defaultSampleRate        = 44100
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Project: Project{
			Name:           defaultProjectName,
			DefaultSpeaker: defaultSpeaker,
		},
		Paths: Paths{
			AudioDir:  defaultAudioDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			RunDBPath: defaultRunDBPath,
		},
		Timeline: Timeline{
			Timebase:          defaultTimebase,
			NTSC:              defaultNTSC,
			SceneLeadIn:       defaultSceneLeadIn,
			SceneGapThreshold: defaultSceneGapThreshold,
		},
		Gaps: Gaps{
			Narration:     defaultGapNarration,
			Dialogue:      defaultGapDialogue,
			QuestionBonus: defaultGapQuestionBonus,
			PerChar:       defaultGapPerChar,
			PerCharCap:    defaultGapPerCharCap,
			SceneFloor:    defaultGapSceneFloor,
		},
		Validation: Validation{
			CountTolerance: defaultCountTolerance,
			SimilarityMin:  defaultSimilarityMin,
		},
		Audio: Audio{
			FFprobeBinary: "ffprobe",
			SampleRate:    defaultSampleRate,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
