// Package tetris adapts the falling-block engine to the arcade platform: it
// owns the frame buffer and line counter, feeds the engine a tick-derived
// clock and a controller mask built from platform actions, and draws the
// frame buffer onto the character screen.
package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry identifier.
const GameID = "tetris"

var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets the custom config file used by subsequently reset games.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on top of the config.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game around engine.Engine.
type Game struct {
	eng        *engine.Engine
	fb         engine.FrameBuffer
	lines      uint32
	cfg        config.TetrisConfig
	loadCfg    bool // re-read config files on every Reset
	difficulty *config.DifficultyManager

	tickRate int
	tick     uint64
	mask     engine.Mask
	paused   bool
}

// New creates a Tetris game using the package-level config path and preset.
// The config is read on Reset.
func New() *Game {
	return &Game{cfg: config.DefaultTetrisConfig(), loadCfg: true}
}

// NewWithConfig creates a Tetris game with an explicit config.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Config returns the configuration in effect.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Reset loads the config, builds a fresh engine and starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.loadCfg {
		g.loadConfig()
	}

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.mask = 0
	g.paused = false
	g.fb = engine.FrameBuffer{}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.eng = engine.New(&g.fb, &g.lines, g, g,
		engine.WithSeed(cfg.Seed),
		engine.WithTiming(timingFromConfig(g.cfg.Timing)),
	)
	g.eng.Init()
	g.applyDifficulty()
}

// loadConfig reads the package-level config path. A file that cannot be
// loaded leaves the current config in place; the CLI validates it up front.
func (g *Game) loadConfig() {
	if loaded, err := config.LoadTetris(configPath); err == nil {
		g.cfg = loaded
	}
	if preset, err := config.ParsePreset(difficultyPreset); err == nil {
		config.ApplyTetrisPreset(&g.cfg, preset)
	}
}

// Step advances the game by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.eng.GameOver() {
		g.paused = !g.paused
	}
	if g.paused && !in.Has(core.ActionRestart) {
		return core.StepResult{State: g.State()}
	}
	g.paused = false

	g.tick++
	g.mask = MaskFromFrame(in)

	before := g.lines
	g.eng.Tick()

	cleared := 0
	if !g.mask.Has(engine.KeyReset) && g.lines > before {
		cleared = int(g.lines - before)
	}
	if g.difficulty.IsEnabled() {
		g.applyDifficulty()
	}

	return core.StepResult{State: g.State(), Cleared: cleared}
}

// applyDifficulty updates the gravity interval from the difficulty curve.
// Reset applies it once; Step only while a progression is active.
func (g *Game) applyDifficulty() {
	delay := g.difficulty.FallDelay(g.cfg.Timing.FallDelayMs, int(g.lines), int(g.tick))
	if uint32(delay) != g.eng.FallDelay() {
		g.eng.SetFallDelay(uint32(delay))
	}
}

// Now implements engine.Clock with milliseconds derived from the tick count,
// so a replay with the same inputs is deterministic.
func (g *Game) Now() uint32 {
	return uint32(g.tick * 1000 / uint64(g.tickRate))
}

// Input implements engine.InputSource.
func (g *Game) Input() engine.Mask {
	return g.mask
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.lines),
		GameOver: g.eng != nil && g.eng.GameOver(),
		Paused:   g.paused,
	}
}

// Lines returns the number of cleared rows.
func (g *Game) Lines() int {
	return int(g.lines)
}

// FrameBuffer returns a copy of the current frame.
func (g *Game) FrameBuffer() engine.FrameBuffer {
	return g.fb
}

// MaskFromFrame converts platform actions into the engine controller mask.
func MaskFromFrame(in core.InputFrame) engine.Mask {
	var m engine.Mask
	if in.Has(core.ActionLeft) {
		m |= engine.KeyLeft
	}
	if in.Has(core.ActionRotate) {
		m |= engine.KeyUp
	}
	if in.Has(core.ActionRight) {
		m |= engine.KeyRight
	}
	if in.Has(core.ActionDown) {
		m |= engine.KeyDown
	}
	if in.Has(core.ActionRestart) {
		m |= engine.KeyReset
	}
	return m
}

func timingFromConfig(t config.TetrisTiming) engine.Timing {
	return engine.Timing{
		FallDelay:   uint32(t.FallDelayMs),
		RepeatSlow:  uint32(t.RepeatSlowMs),
		RepeatFast:  uint32(t.RepeatFastMs),
		RepeatRapid: uint32(t.RepeatRapidMs),
	}
}
