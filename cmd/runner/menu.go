package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balance-runner/internal/audio"
	"github.com/vovakirdan/balance-runner/internal/games/balance"
	"github.com/vovakirdan/balance-runner/internal/platform/tui"
	"github.com/vovakirdan/balance-runner/internal/registry"
	"github.com/vovakirdan/balance-runner/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
After a run ends, press B to return to the menu and play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Scoreboard
  Q            - Quit

Examples:
  runner menu
  runner menu --fps 30
  runner menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}

	balance.SetConfigPath(flagConfig)
	balance.SetDifficultyPreset(flagDifficulty)

	cfg := terminalConfig()
	fixedSeed := cfg.Seed != 0
	var sound *audio.Sink // opened on the first run
	audioTried := false
	restoreLogger := useFileLogger()

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants scoreboard
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			break
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh track for each run unless --seed pins it
		if !fixedSeed {
			cfg.Seed = time.Now().UnixNano()
		}

		// The speaker is initialized once per process
		switch {
		case !audioTried:
			sound = openAudio(gameID)
			audioTried = true
		case sound != nil:
			sound.SetCueLength(cueLength(gameID))
		}

		if err := tui.Run(game, store, cfg, sound); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	restoreLogger()
	if sound != nil {
		sound.Close()
	}
	if store != nil {
		store.Close()
	}
}
