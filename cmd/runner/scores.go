package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balance-runner/internal/registry"
	"github.com/vovakirdan/balance-runner/internal/storage"
)

var (
	flagRuns  int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <variant>",
	Short: "Show high scores for a variant",
	Long: `Display the top 10 high scores for the specified variant.

With --runs the most recent runs are listed as well; 'runner run <id>'
shows one of them in full. --clear deletes the scores and run history
of the variant.

Examples:
  runner scores color-rush
  runner scores ghost-run --runs 5
  runner scores ghost-run --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 0, "Also list this many recent runs")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scores and run history of the variant")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if variant exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	if flagClear {
		err := store.ClearScores(gameID)
		if err == nil {
			err = store.ClearRuns(gameID)
		}
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores and run history for %s.\n", title)
		return
	}

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to set the first high score!\n", gameID)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Distance", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "--------", "----")
		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}

		fmt.Println()
		if stats, err := store.GetGameStats(gameID); err == nil {
			fmt.Printf("Best: %d  Average: %.0f  Scored runs: %d\n", stats.HighScore, stats.AvgScore, stats.GamesCount)
		}
	}

	if flagRuns <= 0 {
		return
	}

	runs, err := store.RecentRuns(gameID, flagRuns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-8s  %-8s  %-6s  %-8s  %-10s  %s\n", "Distance", "Time", "Tokens", "Max Diff", "Ended", "Run")
	for _, r := range runs {
		fmt.Printf("  %-8d  %-8s  %-6d  %-8s  %-10s  %s\n",
			r.Score,
			fmt.Sprintf("%.1fs", r.DurationSecs),
			r.TokensCollected,
			fmt.Sprintf("%.1f%%", r.MaxImbalance),
			r.LossReason,
			r.RunID,
		)
	}
}
