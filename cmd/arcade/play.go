package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Smallest terminal that can show the playfield plus status and help rows.
const (
	minTermW = 24
	minTermH = 25
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: tetris).

Controls:
  Left/A     - Move left
  Right/D    - Move right
  Up/W       - Rotate
  Down/S     - Soft drop
  R/Esc      - Restart
  P          - Pause
  Ctrl+S     - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest speed, speeds up with cleared lines
  normal - Start at 30% speed-up, speeds up with cleared lines
  hard   - Start at 70% speed-up, speeds up with cleared lines
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play
  arcade play tetris --difficulty hard
  arcade play --config ./my-tetris.yaml --log-file arcade.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := tetris.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	// Validate config and preset before taking over the terminal
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	gameCfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	if width < minTermW || height < minTermH {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", width, height, minTermW, minTermH)
	}

	logger, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	return tui.Run(game, cfg, tui.Options{
		Hold:   time.Duration(gameCfg.Input.HoldMs) * time.Millisecond,
		Logger: logger,
	})
}
