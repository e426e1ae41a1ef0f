package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balance-runner/internal/core"
	"github.com/vovakirdan/balance-runner/internal/games/balance"
	"github.com/vovakirdan/balance-runner/internal/platform/tui"
	"github.com/vovakirdan/balance-runner/internal/registry"
	"github.com/vovakirdan/balance-runner/internal/sim"
	"github.com/vovakirdan/balance-runner/internal/storage"
)

var (
	flagSeconds   float64
	flagSave      bool
	flagObstacles bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <variant>",
	Short: "Let the autopilot play a headless run",
	Long: `Run a variant without a terminal UI. The autopilot jumps obstacles,
ducks drones and steers toward the colors the queue lacks. The run is
deterministic for a given --seed and --fps, so simulate doubles as a
balance tuning tool for custom configs.

Examples:
  runner simulate color-rush --seed 42
  runner simulate ghost-run --seconds 120 --difficulty hard
  runner simulate ghost-run --config ./tuned.yaml --save`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagSeconds, "seconds", 60, "Simulated seconds before the run is stopped")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the scores database")
	simulateCmd.Flags().BoolVar(&flagObstacles, "obstacles", true, "Enable obstacles from the start")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom variant config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runSimulate(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available variants.")
		os.Exit(1)
	}

	balance.SetLogger(logger)
	balance.SetConfigPath(flagConfig)
	balance.SetDifficultyPreset(flagDifficulty)

	g, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := g.(*balance.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %q cannot be simulated\n", gameID)
		os.Exit(1)
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var store *storage.Store
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
		game.Subscribe(tui.NewHistorySink(store, gameID, logger))
	}

	game.Subscribe(sim.SinkFunc(func(ev sim.Event) {
		switch e := ev.(type) {
		case sim.ObstaclesToggled:
			logger.Debug(sim.EventName(ev), "enabled", e.Enabled, "auto", e.Auto)
		case sim.RivalChanged:
			logger.Debug(sim.EventName(ev), "phase", e.Rival.Phase, "active", e.Active)
		case sim.TimeBonusAwarded:
			logger.Debug(sim.EventName(ev), "bonus", e.TimeBonus)
		case sim.ImbalanceChanged:
			logger.Debug(sim.EventName(ev), "zone", e.Assessment.Zone, "diff", e.Assessment.Difference)
		}
	}))

	bot := game.EnableAutopilot()
	game.Reset(cfg)
	if flagObstacles {
		in := core.NewInputFrame()
		in.Set(core.ActionToggleObstacles)
		game.Step(in)
	}

	ticks := int(flagSeconds * float64(cfg.TickRate))
	started := time.Now()
	for i := 0; i < ticks && !game.State().GameOver; i++ {
		game.Step(core.NewInputFrame())
	}

	s := game.Snapshot()
	logger.Info("simulation finished",
		"variant", gameID,
		"seed", cfg.Seed,
		"ticks", s.Tick,
		"distance", s.Score,
		"ended", s.Phase == sim.PhaseGameOver,
		"loss", s.Loss,
		"tokens", s.Stats.TokensCollected,
		"max_diff", fmt.Sprintf("%.1f%%", s.Stats.MaxImbalance),
		"jumps", bot.Jumps,
		"ducks", bot.Ducks,
		"wall", time.Since(started).Round(time.Millisecond),
	)

	// Finished runs are saved by the history sink; a run still going is
	// recorded as stopped here
	if store != nil && s.Phase != sim.PhaseGameOver {
		_, err := store.SaveRun(storage.RunRecord{
			RunID:           game.Run().ID(),
			Variant:         gameID,
			Seed:            cfg.Seed,
			Score:           s.Score,
			Distance:        s.Stats.Distance,
			DurationSecs:    s.Stats.Elapsed,
			TokensCollected: s.Stats.TokensCollected,
			MaxImbalance:    s.Stats.MaxImbalance,
			LossReason:      sim.LossNone.String(),
		})
		if err != nil {
			logger.Error("cannot save run", "err", err)
		}
	}
}
