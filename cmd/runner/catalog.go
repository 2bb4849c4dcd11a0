package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the obstacle and power-up catalog",
	Long:  `Shows the obstacles, coins and power-ups the generator may place, and reports catalog entries that can never be placed.`,
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func runCatalog(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	c := cfg.Catalog

	fmt.Println("Obstacles:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, o := range c.Obstacles {
		maxIDLen = max(maxIDLen, len(o.ID))
	}

	fmt.Printf("  %-*s  %-5s  %-5s  %-8s  %s\n", maxIDLen, "ID", "Glyph", "Width", "Jumpable", "Placements")
	fmt.Printf("  %-*s  %-5s  %-5s  %-8s  %s\n", maxIDLen, "--", "-----", "-----", "--------", "----------")
	for _, o := range c.Obstacles {
		jump := "no"
		if o.Jumpable {
			jump = "yes"
		}
		fmt.Printf("  %-*s  %-5s  %-5d  %-8s  %s\n", maxIDLen, o.ID, o.Glyph, o.LaneWidth, jump, o.Placements)
	}

	fmt.Println()
	if c.Coin {
		fmt.Println("Coins: enabled")
	} else {
		fmt.Println("Coins: disabled")
	}

	fmt.Println()
	fmt.Println("Power-ups:")
	if len(c.Powerups) == 0 {
		fmt.Println("  none")
	}
	for _, p := range c.Powerups {
		fmt.Printf("  %-*s  %-16s  %d ticks\n", maxIDLen, p.ID, p.Kind, p.DurationTicks)
	}

	if err := c.Validate(); err != nil {
		fmt.Println()
		fmt.Println("Problems:")
		fmt.Println(err)
	}
	return nil
}
