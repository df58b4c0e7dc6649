package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Timing: TetrisTiming{
			FallDelayMs:   1000,
			RepeatSlowMs:  200,
			RepeatFastMs:  100,
			RepeatRapidMs: 40,
		},
		Input: TetrisInput{
			HoldMs: 120,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 4.0,
				MinFallDelayMs:  100,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
