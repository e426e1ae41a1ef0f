package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balance-runner/internal/config"
	"github.com/vovakirdan/balance-runner/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows the registered runner variants and the balance rule each one uses.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Balance")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-------")

	for _, g := range games {
		policy := "?"
		if cfg, ok := config.DefaultConfig(g.ID); ok {
			policy = fmt.Sprintf("%s, %d colors", cfg.BalancePolicy, len(cfg.Colors))
		}
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, policy)
		if g.Tagline != "" {
			fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "", maxTitleLen, "", g.Tagline)
		}
	}

	fmt.Println()
	fmt.Println("Run 'runner play <id>' to play a variant.")
}
