package config

import "math"

// DifficultyManager calculates dynamic game parameters based on lines/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on lines/ticks.
func (d *DifficultyManager) Level(lines int, ticks int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "lines":
		progress = float64(lines) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FallDelay returns the gravity interval in milliseconds for the current level.
// Gravity speed grows from 1x to (1 + speed_multiplier)x; the interval never
// drops below min_fall_delay_ms.
func (d *DifficultyManager) FallDelay(baseMs int, lines int, ticks int) int {
	level := d.Level(lines, ticks)
	delay := int(math.Round(float64(baseMs) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier)))
	if floor := min(d.cfg.Scaling.MinFallDelayMs, baseMs); floor > 0 && delay < floor {
		delay = floor
	}
	return max(delay, 1)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
