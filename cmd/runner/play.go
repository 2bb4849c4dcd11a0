package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a run straight away.

Controls:
  Left/Right, A/D  - Change lane
  Space/Up/W       - Jump over low obstacles
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.runner/screenshots
  Q/Ctrl+C         - Quit

Difficulty presets (--preset):
  easy   - 3 hits, no fireballs, chunks start at level 0
  normal - 2 hits, chunks start at level 3
  hard   - 1 hit, chunks start at level 8, the chaser stays close
  fixed  - No progression, every chunk uses the configured level

Examples:
  runner play
  runner play --preset hard
  runner play --seed 42
  runner play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("runner", true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStoreOrWarn(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(cfg, preset, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
