// runner is a three-lane endless runner for the terminal, built on a
// procedural chunk layout generator.
//
// Usage:
//
//	runner play              - Play a run directly
//	runner menu              - Difficulty picker, scoreboard and layout preview
//	runner serve             - Start SSH server for remote play
//	runner api               - Serve chunk layouts over HTTP
//	runner generate          - Print generated chunks as text, JSON or YAML
//	runner catalog           - Show the obstacle and power-up catalog
//	runner scores            - Show, summarize or clear run history
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set run seed for reproducible tracks
//	--db <path>          - Set database path (default: ~/.runner/runs.db)
//	--config <path>      - Use a custom runner.yaml
//	--preset <name>      - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Lane Runner - an endless runner in your terminal",
	Long: `Lane Runner is a three-lane endless runner. The track is laid out
chunk by chunk by a seeded generator, so every seed always produces the
same run.

Available commands:
  play      - Play a run directly
  menu      - Interactive menu with scores and layout preview
  serve     - Start SSH server for remote play
  api       - Serve chunk layouts over HTTP
  generate  - Print generated chunks
  catalog   - Show the obstacle and power-up catalog
  scores    - View or clear run history

Examples:
  runner play --preset hard
  runner menu
  runner generate --seed 42 --chunks 4
  runner serve --ssh :2222
  runner api --addr :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "Run seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.runner/runs.db", "Path to run history database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	pf.StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (terminal modes log nowhere by default)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads runner.yaml and applies --preset.
func loadConfig() (config.RunnerConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, "", err
	}

	if flagPreset == "" {
		return cfg, "", nil
	}
	preset, ok := config.ParsePreset(strings.ToLower(flagPreset))
	if !ok {
		return config.RunnerConfig{}, "", fmt.Errorf("unknown preset %q (want easy, normal, hard or fixed)", flagPreset)
	}
	config.ApplyRunnerPreset(&cfg, preset)
	return cfg, preset, nil
}

// newLogger builds the charm logger. Terminal modes pass interactive=true so
// log lines never land on the game screen unless --log-file is set.
func newLogger(prefix string, interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStoreOrWarn opens the run database; games still work without it.
func openStoreOrWarn(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		logger.Warn("could not open run database", "error", err)
		return nil
	}
	return store
}
