package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/balance-runner/internal/audio"
	"github.com/vovakirdan/balance-runner/internal/config"
	"github.com/vovakirdan/balance-runner/internal/core"
	"github.com/vovakirdan/balance-runner/internal/games/balance"
	"github.com/vovakirdan/balance-runner/internal/platform/tui"
	"github.com/vovakirdan/balance-runner/internal/registry"
	"github.com/vovakirdan/balance-runner/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Controls:
  Space/Up/W   - Start, jump (again in the air for a double jump)
  Down/S       - Duck
  O            - Toggle obstacles
  P/Esc        - Pause
  R            - Restart (after game over)
  B/Esc        - Leave (while paused or after game over)
  D            - Debug panel
  M            - Mute
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Looser balance threshold, slower spawns
  normal - The variant's defaults
  hard   - Tighter threshold, harsher penalty, faster spawns

Examples:
  runner play color-rush
  runner play ghost-run --difficulty hard
  runner play color-rush --mute --seed 42
  runner play ghost-run --config ./my-ghost-run.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom variant config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with audio muted")
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom variant config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with audio muted")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if variant exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available variants.")
		os.Exit(1)
	}

	balance.SetConfigPath(flagConfig)
	balance.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	sound := openAudio(gameID)
	restoreLogger := useFileLogger()

	runErr := tui.Run(game, store, terminalConfig(), sound)

	restoreLogger()
	if sound != nil {
		sound.Close()
	}
	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Mute:     flagMute,
	}
}

// openAudio starts the speaker for a local session. Returns nil when the
// machine has no usable audio device; the game runs silent.
func openAudio(variant string) *audio.Sink {
	sound := audio.NewSink(cueLength(variant))
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return nil
	}
	sound.SetMuted(flagMute)
	return sound
}

// cueLength returns the rival cue duration configured for variant.
func cueLength(variant string) time.Duration {
	cfg, err := config.Load(variant, flagConfig)
	if err != nil {
		return time.Second
	}
	return time.Duration(cfg.RivalCueDuration * float64(time.Second))
}
