// Package balance adapts the balance runner simulation to the platform:
// it maps terminal actions to run input handlers, drives one simulation
// frame per tick and renders the run onto a character screen.
package balance

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/balance-runner/internal/config"
	"github.com/vovakirdan/balance-runner/internal/core"
	"github.com/vovakirdan/balance-runner/internal/physics"
	"github.com/vovakirdan/balance-runner/internal/registry"
	"github.com/vovakirdan/balance-runner/internal/sim"
)

// Game implements registry.Game for one runner variant.
type Game struct {
	variant string
	title   string

	runtime core.RuntimeConfig
	cfg     config.RunnerConfig
	run     *sim.Run
	body    *physics.Arcade
	sinks   []sim.Sink

	autopilot *Autopilot // nil unless the bot plays
	duckTicks int        // ticks left before a synthesized duck release
	showDebug bool
	legFrame  int
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParseDifficultyPreset(preset)
}

// SetLogger sets the logger handed to every new run.
func SetLogger(l *log.Logger) {
	logger = l
}

// New creates a game for the given variant.
func New(variant, title string) *Game {
	return &Game{variant: variant, title: title}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Subscribe adds a sink to the current run and to every run created by a
// later Reset.
func (g *Game) Subscribe(s sim.Sink) {
	if s == nil {
		return
	}
	g.sinks = append(g.sinks, s)
	if g.run != nil {
		g.run.Subscribe(s)
	}
}

// EnableAutopilot lets the bot play the run and returns it.
func (g *Game) EnableAutopilot() *Autopilot {
	g.autopilot = NewAutopilot()
	return g.autopilot
}

// Run exposes the underlying simulation, nil before the first Reset.
func (g *Game) Run() *sim.Run {
	return g.run
}

// Config returns the configuration of the current run.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Snapshot captures the current run state.
func (g *Game) Snapshot() sim.Snapshot {
	if g.run == nil {
		return sim.Snapshot{}
	}
	return g.run.Snapshot()
}

// Reset builds a fresh run in the START phase. A config that cannot be
// loaded or fails validation falls back to the variant defaults; the
// difficulty preset applies either way.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(g.variant, configPath)
	if err == nil {
		err = g.buildRun(cfg, runtime.Seed)
	}
	if err != nil {
		if logger != nil {
			logger.Warn("using default config", "variant", g.variant, "err", err)
		}
		def, ok := config.DefaultConfig(g.variant)
		if !ok {
			err = fmt.Errorf("balance: unknown variant %q", g.variant)
		} else {
			err = g.buildRun(def, runtime.Seed)
		}
	}
	if err != nil {
		if logger != nil {
			logger.Error("cannot build run", "variant", g.variant, "err", err)
		}
		g.run = nil
	}

	g.duckTicks = 0
	g.legFrame = 0
	if g.autopilot != nil {
		g.autopilot.Reset()
	}
}

// buildRun applies the difficulty preset to cfg and creates the run.
func (g *Game) buildRun(cfg config.RunnerConfig, seed int64) error {
	config.ApplyDifficultyPreset(&cfg, difficultyPreset)
	body := physics.NewArcade(physics.ParamsFromConfig(cfg))
	opts := []sim.Option{sim.WithLogger(logger)}
	for _, s := range g.sinks {
		opts = append(opts, sim.WithSink(s))
	}
	run, err := sim.NewRun(cfg, body, seed, opts...)
	if err != nil {
		return err
	}
	g.cfg, g.body, g.run = cfg, body, run
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.run == nil {
		return core.StepResult{}
	}
	if g.autopilot != nil {
		for _, a := range g.autopilot.Decide(g.run.Snapshot(), g.cfg) {
			in.Set(a)
		}
	}

	if in.Has(core.ActionDebug) {
		g.showDebug = !g.showDebug
	}
	if in.Has(core.ActionToggleObstacles) {
		g.run.ToggleObstacles()
	}

	switch g.run.Phase() {
	case sim.PhaseStart:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.run.Start()
		}
		return core.StepResult{State: g.State()}
	case sim.PhaseGameOver:
		// Back to the start screen; the next start input begins the run
		if in.Has(core.ActionRestart) {
			g.run.Restart()
			g.duckTicks = 0
		}
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.run.TogglePause()
	}
	if g.run.Phase() != sim.PhasePlaying {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.run.Jump()
	}
	g.handleDuck(in.Has(core.ActionDuck))

	g.run.Update(g.runtime.FrameDelta())
	g.legFrame = (g.legFrame + 1) % 10

	return core.StepResult{State: g.State()}
}

// handleDuck keeps the crouch alive while the key repeats and releases it
// DuckHoldTicks after the last press.
func (g *Game) handleDuck(pressed bool) {
	w := g.run.World()
	if pressed && (w.Ducking || g.run.DuckStart()) {
		g.duckTicks = g.cfg.DuckHoldTicks
		return
	}
	if !w.Ducking {
		return
	}
	g.duckTicks--
	if g.duckTicks <= 0 {
		g.run.DuckEnd()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.run.Score(),
		GameOver: g.run.Phase() == sim.PhaseGameOver,
		Paused:   g.run.Phase() == sim.PhasePaused,
	}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:      config.VariantColorRush,
		Title:   "Color Rush",
		Tagline: "four colors, fall behind past the threshold",
	}, func() registry.Game {
		return New(config.VariantColorRush, "Color Rush")
	})
	registry.Register(registry.GameInfo{
		ID:      config.VariantGhostRun,
		Title:   "Ghost Run",
		Tagline: "three colors, a ghost when you lag",
	}, func() registry.Game {
		return New(config.VariantGhostRun, "Ghost Run")
	})
}
