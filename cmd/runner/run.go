package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/balance-runner/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one recorded run",
	Long: `Display a run from the run history by its ID. IDs are listed by
'runner scores <variant> --runs N'.

Examples:
  runner run 0b6f7a52-3d1e-4c1a-9a51-2f0f4b8c9e11`,
	Args: cobra.ExactArgs(1),
	Run:  showRun,
}

func showRun(_ *cobra.Command, args []string) {
	id, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid run ID %q: %v\n", args[0], err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	r, err := store.RunByID(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if r == nil {
		fmt.Printf("No run with ID %s.\n", id)
		return
	}

	fmt.Printf("Run %s\n\n", r.RunID)
	fmt.Printf("  Variant:   %s\n", r.Variant)
	fmt.Printf("  Seed:      %d\n", r.Seed)
	fmt.Printf("  Distance:  %d (%.1f)\n", r.Score, r.Distance)
	fmt.Printf("  Time:      %.1fs\n", r.DurationSecs)
	fmt.Printf("  Tokens:    %d\n", r.TokensCollected)
	fmt.Printf("  Max diff:  %.1f%%\n", r.MaxImbalance)
	fmt.Printf("  Ended:     %s\n", r.LossReason)
	fmt.Printf("  Date:      %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
}
