package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TetrisConfig
	require.NoError(t, yaml.Unmarshal(GetDefaultYAML("tetris"), &cfg))
	assert.Equal(t, DefaultTetrisConfig(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Nil(t, GetDefaultYAML("pong"))
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	data := []byte("timing:\n  fall_delay_ms: 500\ninput:\n  hold_ms: 80\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadTetris(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Timing.FallDelayMs)
	assert.Equal(t, 80, cfg.Input.HoldMs)
	// fields absent from the file keep their defaults
	assert.Equal(t, 200, cfg.Timing.RepeatSlowMs)
	assert.Equal(t, 40, cfg.Timing.RepeatRapidMs)
}

func TestLoadTetrisErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTetris(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("timing: [1, 2"), 0o600))
	_, err = LoadTetris(bad)
	assert.ErrorContains(t, err, "failed to parse")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("timing:\n  repeat_fast_ms: 0\n"), 0o600))
	_, err = LoadTetris(invalid)
	assert.ErrorContains(t, err, "timing.repeat_fast_ms")
}

func TestLoadTetrisFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
}

func TestLoadTetrisLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "tetris.yaml"), []byte("timing:\n  fall_delay_ms: 750\n"), 0o600))

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, 750, cfg.Timing.FallDelayMs)
}

func TestLoadTetrisReportsBrokenUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	dir := filepath.Join(home, ".arcade", "configs")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "tetris.yaml")

	require.NoError(t, os.WriteFile(path, []byte("timing:\n  fall_delay_ms: 0\n"), 0o600))
	_, err := LoadTetris("")
	assert.ErrorContains(t, err, path)
	assert.ErrorContains(t, err, "timing.fall_delay_ms")

	require.NoError(t, os.WriteFile(path, []byte("timing: [1, 2"), 0o600))
	_, err = LoadTetris("")
	assert.ErrorContains(t, err, "failed to parse")
}

func TestValidate(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Timing.FallDelayMs = -1
	cfg.Difficulty.Progression.Type = "score"
	cfg.Difficulty.InitialLevel = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timing.fall_delay_ms")
	assert.Contains(t, err.Error(), `"score"`)
	assert.Contains(t, err.Error(), "initial_level")
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		p, err := ParsePreset(name)
		assert.NoError(t, err, name)
		assert.Equal(t, DifficultyPreset(name), p)
	}
	_, err := ParsePreset("insane")
	assert.Error(t, err)
}

func TestApplyTetrisPreset(t *testing.T) {
	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyHard)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.Equal(t, 0.7, cfg.Difficulty.InitialLevel)
	assert.Equal(t, "lines", cfg.Difficulty.Progression.Type)

	ApplyTetrisPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)

	before := cfg
	ApplyTetrisPreset(&cfg, "")
	assert.Equal(t, before, cfg)
}

func TestApplyTetrisPresetKeepsConfiguredProgression(t *testing.T) {
	cfg := DefaultTetrisConfig()
	cfg.Difficulty.Progression.Type = "time"
	ApplyTetrisPreset(&cfg, DifficultyEasy)
	assert.Equal(t, "time", cfg.Difficulty.Progression.Type)

	cfg = DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyFixed)
	assert.Equal(t, "none", cfg.Difficulty.Progression.Type)
}

func TestPresetFallDelayDropsWithLines(t *testing.T) {
	for _, preset := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		t.Run(string(preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			ApplyTetrisPreset(&cfg, preset)
			dm := NewDifficultyManager(cfg.Difficulty)

			assert.True(t, dm.IsEnabled())
			start := dm.FallDelay(cfg.Timing.FallDelayMs, 0, 0)
			later := dm.FallDelay(cfg.Timing.FallDelayMs, 50, 0)
			assert.Less(t, later, start)
		})
	}
}

func TestDifficultyFallDelay(t *testing.T) {
	tests := []struct {
		name     string
		cfg      DifficultyConfig
		lines    int
		expected int
	}{
		{
			name:     "constant by default",
			cfg:      DefaultTetrisConfig().Difficulty,
			lines:    500,
			expected: 1000,
		},
		{
			name: "lines progression halfway",
			cfg: DifficultyConfig{
				Enabled:     true,
				Progression: ProgressionConfig{Type: "lines", MaxAt: 100},
				Scaling:     ScalingConfig{SpeedMultiplier: 2.0, MinFallDelayMs: 100},
			},
			lines:    50,
			expected: 500,
		},
		{
			name: "clamped to floor",
			cfg: DifficultyConfig{
				Enabled:     true,
				Progression: ProgressionConfig{Type: "lines", MaxAt: 10},
				Scaling:     ScalingConfig{SpeedMultiplier: 100.0, MinFallDelayMs: 100},
			},
			lines:    10,
			expected: 100,
		},
		{
			name: "fixed keeps initial level",
			cfg: DifficultyConfig{
				Enabled:      false,
				InitialLevel: 0.5,
				Progression:  ProgressionConfig{Type: "lines", MaxAt: 10},
				Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
			},
			lines:    10,
			expected: 667,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dm := NewDifficultyManager(tc.cfg)
			assert.Equal(t, tc.expected, dm.FallDelay(1000, tc.lines, 0))
		})
	}
}

func TestDifficultyLevelTime(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 600},
	})

	assert.True(t, dm.IsEnabled())
	assert.InDelta(t, 0.5, dm.Level(0, 0), 1e-9)
	assert.InDelta(t, 0.75, dm.Level(0, 300), 1e-9)
	assert.InDelta(t, 1.0, dm.Level(0, 6000), 1e-9)
}
