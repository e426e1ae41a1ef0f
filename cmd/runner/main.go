// runner is a terminal endless runner where speed depends on keeping the
// collected colors in balance.
//
// Usage:
//
//	runner list                  - List available variants
//	runner play <variant>        - Play a variant
//	runner menu                  - Start menu to pick variants interactively
//	runner serve                 - Start SSH server for remote play
//	runner scores <variant>      - Show high scores for a variant
//	runner simulate <variant>    - Let the autopilot play a headless run
//	runner config <variant>      - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.balance-runner/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/balance-runner/internal/games/balance"
	"github.com/vovakirdan/balance-runner/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Balance Runner - keep your colors even to keep your speed",
	Long: `Balance Runner is a terminal endless runner. Every pickup joins a
queue of the last 13 colors and the balance of that queue sets how fast
you run. Lean too hard on one color and the world pushes you off the track.

Available commands:
  list      - Show all variants
  play      - Play a variant directly
  menu      - Interactive variant picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Headless run played by the autopilot
  config    - Print the effective configuration

Examples:
  runner list
  runner play color-rush
  runner play ghost-run --difficulty hard
  runner menu
  runner serve --ssh :2222
  runner simulate ghost-run --seed 42 --seconds 60`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "runner",
			Level:           level,
		})
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/"+tui.DataDir+"/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// useFileLogger routes game and TUI logs to a file while the alternate
// screen is active. The returned function closes the file.
func useFileLogger() func() {
	discard := func() {}
	home, err := os.UserHomeDir()
	if err != nil {
		return discard
	}
	dir := filepath.Join(home, tui.DataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("cannot create data directory", "dir", dir, "err", err)
		return discard
	}
	f, err := os.OpenFile(filepath.Join(dir, "runner.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.Warn("cannot open log file", "err", err)
		return discard
	}

	fileLogger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
		Level:           logger.GetLevel(),
	})
	balance.SetLogger(fileLogger)
	tui.SetLogger(fileLogger)
	return func() {
		balance.SetLogger(logger)
		tui.SetLogger(logger)
		f.Close()
	}
}
