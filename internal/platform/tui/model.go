package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// DefaultHold is how long a movement key counts as held after a press when
// Options.Hold is not set.
const DefaultHold = 120 * time.Millisecond

// Options configures the game host.
type Options struct {
	// Hold is how long a movement key stays down after its last key event.
	// Terminals report presses (and OS auto-repeat) but never releases.
	Hold time.Duration
	// Logger receives lifecycle events. Nil discards them.
	Logger *log.Logger
}

// Model is the Bubble Tea model for running arcade games.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	logger    *log.Logger
	hold      time.Duration
	held      map[core.Action]time.Time // movement keys and their last event time
	pending   core.InputFrame           // one-shot actions for the next tick
	gameState core.GameState
	quitting  bool
	now       func() time.Time
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		logger:  opts.Logger.With("game", game.ID()),
		hold:    opts.Hold,
		held:    make(map[core.Action]time.Time),
		pending: core.NewInputFrame(),
		now:     time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "seed", m.config.Seed, "fps", m.config.TickRate)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.logger.Info("quit", "lines", m.gameState.Score)
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	case isHeld(action):
		m.held[action] = m.now()
	case action != core.ActionNone:
		m.pending.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The game keeps running; it
// adapts its layout on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width

	return m, nil
}

// frame builds the input for one tick: movement keys still inside the hold
// window plus pending one-shot actions.
func (m Model) frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for action, at := range m.held {
		if now.Sub(at) <= m.hold {
			f.Set(action)
		} else {
			delete(m.held, action)
		}
	}
	for action := range m.pending.Actions {
		f.Set(action)
	}
	return f
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.frame(m.now()))
	prev := m.gameState
	m.gameState = result.State

	if result.Cleared > 0 {
		m.logger.Debug("lines cleared", "count", result.Cleared, "total", result.State.Score)
	}
	switch {
	case result.State.GameOver && !prev.GameOver:
		m.logger.Info("game over", "lines", result.State.Score)
	case !result.State.GameOver && prev.GameOver:
		m.logger.Info("game restarted")
	case result.State.Paused != prev.Paused:
		m.logger.Debug("pause toggled", "paused", result.State.Paused)
	}

	m.pending.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
