package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagYes         bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show the best runs",
	Long: `Display the best runs, optionally for a single difficulty preset.

Examples:
  runner scores
  runner scores hard
  runner scores stats
  runner scores show <run-id>
  runner scores clear --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

var scoresStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize run history",
	Args:  cobra.NoArgs,
	RunE:  runScoresStats,
}

var scoresShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run and how to replay its track",
	Args:  cobra.ExactArgs(1),
	RunE:  runScoresShow,
}

var scoresClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored run",
	Args:  cobra.NoArgs,
	RunE:  runScoresClear,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresClearCmd.Flags().BoolVar(&flagYes, "yes", false, "Confirm deletion")

	scoresCmd.AddCommand(scoresStatsCmd)
	scoresCmd.AddCommand(scoresShowCmd)
	scoresCmd.AddCommand(scoresClearCmd)
}

func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening run database: %w", err)
	}
	return store, nil
}

func runScores(_ *cobra.Command, args []string) error {
	preset := ""
	if len(args) == 1 {
		p, ok := config.ParsePreset(strings.ToLower(args[0]))
		if !ok {
			return fmt.Errorf("unknown preset %q (want easy, normal, hard or fixed)", args[0])
		}
		preset = string(p)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.TopRuns(preset, flagScoresLimit)
	if err != nil {
		return err
	}

	title := "all presets"
	if preset != "" {
		title = preset
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-6s  %-16s  %s\n", "Rank", "Score", "Coins", "Distance", "Preset", "Date", "ID")
	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-6s  %-16s  %s\n", "----", "-----", "-----", "--------", "------", "----", "--")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %-8d  %-6s  %-16s  %s\n",
			i+1, r.Score, r.Coins, r.Distance, r.Preset, r.CreatedAt.Format("2006-01-02 15:04"), r.ID)
	}
	return nil
}

func runScoresStats(_ *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Runs:             %d\n", stats.Runs)
	if stats.Runs == 0 {
		return nil
	}
	fmt.Printf("Best score:       %d\n", stats.HighScore)
	fmt.Printf("Average score:    %.0f\n", stats.AvgScore)
	fmt.Printf("Coins collected:  %d\n", stats.TotalCoins)
	fmt.Printf("Longest distance: %d\n", stats.LongestDistance)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played:      %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func runScoresShow(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.RunByID(args[0])
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no run with id %s", args[0])
	}

	fmt.Printf("Run %s\n\n", r.ID)
	fmt.Printf("  Score:    %d\n", r.Score)
	fmt.Printf("  Coins:    %d\n", r.Coins)
	fmt.Printf("  Distance: %d\n", r.Distance)
	fmt.Printf("  Chunks:   %d\n", r.Chunks)
	fmt.Printf("  Preset:   %s\n", r.Preset)
	fmt.Printf("  Seed:     %d\n", r.Seed)
	fmt.Printf("  Played:   %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println()

	replay := fmt.Sprintf("runner generate --seed %d --chunks %d", r.Seed, max(r.Chunks, 1))
	if r.Preset != "" {
		replay += " --preset " + r.Preset
	}
	fmt.Printf("Track: %s\n", replay)
	return nil
}

func runScoresClear(_ *cobra.Command, _ []string) error {
	if !flagYes {
		return fmt.Errorf("refusing to delete run history without --yes")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ClearRuns(); err != nil {
		return err
	}
	fmt.Println("Run history cleared.")
	return nil
}
