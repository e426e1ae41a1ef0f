package balance

import (
	"github.com/vovakirdan/balance-runner/internal/config"
	"github.com/vovakirdan/balance-runner/internal/core"
	"github.com/vovakirdan/balance-runner/internal/sim"
)

// Reaction windows in seconds of closing distance.
const (
	jumpWindow = 0.15
	duckWindow = 0.3
	apexMargin = 80 // highest pickup reachable by a single jump, above the head
)

// Autopilot is a simple bot for headless runs and demos. It jumps low
// obstacles, ducks under drones and steers toward the colors the queue
// lacks by jumping for them or dodging the others.
type Autopilot struct {
	Jumps int
	Ducks int
}

// NewAutopilot creates a bot.
func NewAutopilot() *Autopilot {
	return &Autopilot{}
}

// Reset clears the action counters.
func (b *Autopilot) Reset() {
	b.Jumps = 0
	b.Ducks = 0
}

// Decide returns the actions for the next tick.
func (b *Autopilot) Decide(s sim.Snapshot, cfg config.RunnerConfig) []core.Action {
	switch s.Phase {
	case sim.PhaseStart:
		return []core.Action{core.ActionConfirm}
	case sim.PhasePlaying:
	default:
		return nil
	}

	closing := s.Speed.CharacterSpeed
	if closing < 1 {
		closing = 1
	}
	front := s.PlayerX + cfg.PlayerWidth/2
	back := s.PlayerX - cfg.PlayerWidth/2
	head := cfg.GroundY - cfg.PlayerHeight
	duckHead := cfg.GroundY - cfg.DuckHeight

	jump, duck := false, false
	for _, e := range s.Entities {
		gap := (e.X - e.W/2) - front
		passed := e.X+e.W/2 < back

		switch e.Kind {
		case sim.KindObstacle:
			if passed {
				continue
			}
			if e.Obstacle.Low() {
				jump = jump || (gap > 0 && gap <= closing*jumpWindow)
			} else {
				duck = duck || gap <= closing*duckWindow
			}
		case sim.KindCollectible:
			if e.Collected || passed || gap > closing*jumpWindow || gap < 0 {
				continue
			}
			top, bottom := e.Y-e.H/2, e.Y+e.H/2
			hitsStanding := bottom > head
			if wanted(s, e.Color) {
				jump = jump || (!hitsStanding && top > head-apexMargin)
				continue
			}
			if hitsStanding {
				if bottom <= duckHead {
					duck = true
				} else {
					jump = true
				}
			}
		}
	}

	var actions []core.Action
	switch {
	case duck && s.Grounded:
		actions = append(actions, core.ActionDuck)
		b.Ducks++
	case jump && s.Grounded && !s.Ducking:
		actions = append(actions, core.ActionJump)
		b.Jumps++
	}
	return actions
}

// wanted reports whether collecting c moves the queue toward balance.
func wanted(s sim.Snapshot, c sim.Token) bool {
	if len(s.Palette) == 0 {
		return false
	}
	return s.Counts[c]*len(s.Palette) <= len(s.Queue)
}
