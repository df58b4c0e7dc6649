package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config [game]",
	Short: "Print the default config for a game",
	Long: `Print the embedded default YAML config (default: tetris).

Save it to ~/.arcade/configs/<game>.yaml or ./configs/<game>.yaml to
customize timings, key hold time and difficulty.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	gameID := "tetris"
	if len(args) > 0 {
		gameID = args[0]
	}
	if _, ok := registry.Lookup(gameID); !ok {
		return fmt.Errorf("unknown game %q", gameID)
	}

	data := config.GetDefaultYAML(gameID)
	if data == nil {
		return fmt.Errorf("no config for game %q", gameID)
	}
	_, err := cmd.OutOrStdout().Write(data)
	return err
}
