// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Timing     TetrisTiming     `yaml:"timing"`
	Input      TetrisInput      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisTiming defines the simulation pacing in milliseconds.
type TetrisTiming struct {
	FallDelayMs   int `yaml:"fall_delay_ms"`   // Gravity interval
	RepeatSlowMs  int `yaml:"repeat_slow_ms"`  // Delay before a held key repeats
	RepeatFastMs  int `yaml:"repeat_fast_ms"`  // Repeat interval for shift/rotate
	RepeatRapidMs int `yaml:"repeat_rapid_ms"` // Repeat interval for soft drop
}

// TetrisInput defines how terminal key presses become held keys.
type TetrisInput struct {
	// HoldMs is how long a key counts as held after its last press or
	// auto-repeat event. Terminals report presses only, never releases.
	HoldMs int `yaml:"hold_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Lines/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"`  // Gravity speed added at max difficulty
	MinFallDelayMs  int     `yaml:"min_fall_delay_ms"` // Gravity interval floor
}

// Validate checks that timing values are usable.
func (c TetrisConfig) Validate() error {
	var errs []error
	check := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	check("timing.fall_delay_ms", c.Timing.FallDelayMs)
	check("timing.repeat_slow_ms", c.Timing.RepeatSlowMs)
	check("timing.repeat_fast_ms", c.Timing.RepeatFastMs)
	check("timing.repeat_rapid_ms", c.Timing.RepeatRapidMs)
	check("input.hold_ms", c.Input.HoldMs)

	switch c.Difficulty.Progression.Type {
	case "", "none", "lines", "time":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of none, lines, time", c.Difficulty.Progression.Type))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		errs = append(errs, fmt.Errorf("difficulty.initial_level must be within [0, 1], got %g", c.Difficulty.InitialLevel))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid tetris config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name is allowed and means
// "keep the config as loaded".
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
