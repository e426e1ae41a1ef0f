package sim

import (
	"math/rand"

	"github.com/vovakirdan/balance-runner/internal/config"
)

// animationInterval is the collectible animation frame period in seconds.
const animationInterval = 0.12

// RunStats are the per-run figures kept for the run history.
type RunStats struct {
	TokensCollected int
	MaxImbalance    float64 // largest balance difference seen, percent
	Elapsed         float64 // playing seconds
	Distance        float64
}

// World is the simulation context of one run. Every subsystem receives it
// explicitly; nothing in the package keeps state of its own.
type World struct {
	Cfg     config.RunnerConfig
	Palette Palette
	Queue   *TokenQueue
	Clock   *Clock
	Rng     *rand.Rand

	Speed            SpeedState
	TimeBonus        float64
	PlayerX          float64
	ObstaclesEnabled bool
	Entities         []*Entity
	Rival            RivalAgent
	Spawner          SpawnScheduler

	Distance float64
	Elapsed  float64
	Tick     int
	Stats    RunStats

	Jumps    int
	Airborne bool
	Ducking  bool

	speedCtl       *SpeedController
	pool           *Pool[EntityKind, *Entity]
	seed           int64
	nextID         uint64
	autoEnabled    bool
	lastZone       Zone
	lastImbalanced bool
}

// NewWorld validates cfg and builds a world ready to start.
func NewWorld(cfg config.RunnerConfig, seed int64) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := NewBalancePolicy(cfg)
	if err != nil {
		return nil, err
	}

	w := &World{
		Cfg:      cfg,
		Palette:  NewPalette(cfg.Colors),
		Queue:    NewTokenQueue(cfg.QueueCapacity),
		Clock:    NewClock(),
		speedCtl: NewSpeedController(cfg, policy),
		pool:     newEntityPool(),
		seed:     seed,
	}
	w.Reset()
	return w, nil
}

// Policy returns the balance policy driving character speed.
func (w *World) Policy() BalancePolicy {
	return w.speedCtl.Policy()
}

// Counts returns the current color counts.
func (w *World) Counts() map[Token]int {
	return w.Queue.Counts(w.Palette)
}

// Reset cancels all timers and restores the initial state, reseeding the
// random source so every run from a given seed replays identically.
func (w *World) Reset() {
	w.Clock.Reset()
	w.Rng = rand.New(rand.NewSource(w.seed))

	w.Queue.Reset()
	if w.Cfg.SeedBalanced {
		w.Queue.Seed(BalancedSeed(w.Palette, w.Queue.Cap()))
	}

	w.releaseAll()
	w.Rival.Reset()
	w.Spawner.Reset()

	w.TimeBonus = 0
	w.PlayerX = w.Cfg.StartX
	w.ObstaclesEnabled = false
	w.Distance = 0
	w.Elapsed = 0
	w.Tick = 0
	w.Stats = RunStats{}
	w.Jumps = 0
	w.Airborne = false
	w.Ducking = false
	w.nextID = 0
	w.autoEnabled = false

	w.Speed = w.speedCtl.Recompute(w)
	w.lastZone = w.Speed.Assessment.Zone
	w.lastImbalanced = w.Speed.Assessment.Imbalanced
}

// find returns the active entity with the given ID.
func (w *World) find(id uint64) *Entity {
	for _, e := range w.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}
