package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the runner with a difficulty picker menu",
	Long: `Start the runner in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select. Esc leaves a finished
or paused run, the scoreboard or the layout preview and returns here.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  V            - Layout preview
  Q            - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	// The menu picks the preset itself; --config still applies.
	cfg, _, err := loadConfig()
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

	return tui.RunSession(cfg, store, runtimeConfig(), logger)
}
