// Package physics provides the arcade gravity and collision oracle used by
// the runner: a single player body falling onto a flat ground line, plus
// axis-aligned overlap tests.
package physics

import (
	"github.com/vovakirdan/balance-runner/internal/config"
	"github.com/vovakirdan/balance-runner/internal/core"
)

// Params are the player and ground dimensions in track units.
type Params struct {
	GroundY      float64 // top of the ground; y grows downward
	Gravity      float64 // units per second squared
	MaxFallSpeed float64 // 0 means unlimited
	Width        float64
	Height       float64
	CrouchHeight float64
	Floorless    bool // no ground: the body falls forever
}

// ParamsFromConfig extracts physics parameters from a runner config.
func ParamsFromConfig(cfg config.RunnerConfig) Params {
	return Params{
		GroundY:      cfg.GroundY,
		Gravity:      cfg.Gravity,
		MaxFallSpeed: cfg.MaxFallSpeed,
		Width:        cfg.PlayerWidth,
		Height:       cfg.PlayerHeight,
		CrouchHeight: cfg.DuckHeight,
		Floorless:    cfg.Floorless,
	}
}

// Arcade is a minimal platformer body: gravity while airborne, landing on
// the ground line, an instant crouch that shrinks the body from the top.
type Arcade struct {
	params   Params
	y        float64 // bottom of the body
	vy       float64
	grounded bool
	crouched bool
}

// NewArcade creates a body standing on the ground.
func NewArcade(p Params) *Arcade {
	a := &Arcade{params: p}
	a.Reset()
	return a
}

// Reset puts the body back on the ground at rest.
func (a *Arcade) Reset() {
	a.y = a.params.GroundY
	a.vy = 0
	a.grounded = !a.params.Floorless
	a.crouched = false
}

// Step integrates velocity and position over dt seconds.
func (a *Arcade) Step(dt float64) {
	if a.grounded {
		return
	}

	a.vy += a.params.Gravity * dt
	if a.params.MaxFallSpeed > 0 && a.vy > a.params.MaxFallSpeed {
		a.vy = a.params.MaxFallSpeed
	}
	a.y += a.vy * dt

	// Check if landed
	if !a.params.Floorless && a.y >= a.params.GroundY {
		a.y = a.params.GroundY
		a.vy = 0
		a.grounded = true
	}
}

// IsGrounded reports whether the body rests on the ground.
func (a *Arcade) IsGrounded() bool {
	return a.grounded
}

// SetVelocityY sets the vertical velocity. Negative values go up and lift
// the body off the ground.
func (a *Arcade) SetVelocityY(v float64) {
	a.vy = v
	if v < 0 {
		a.grounded = false
	}
}

// SetCrouched switches between the standing and crouched body.
func (a *Arcade) SetCrouched(crouched bool) {
	a.crouched = crouched
}

// PlayerY returns the bottom of the body.
func (a *Arcade) PlayerY() float64 {
	return a.y
}

// PlayerBody returns the body rectangle for a player centered on x.
func (a *Arcade) PlayerBody(x float64) core.RectF {
	h := a.params.Height
	if a.crouched {
		h = a.params.CrouchHeight
	}
	return core.RectF{X: x - a.params.Width/2, Y: a.y - h, W: a.params.Width, H: h}
}

// Overlap returns the indices of targets that intersect body.
func (a *Arcade) Overlap(body core.RectF, targets []core.RectF) []int {
	var hits []int
	for i, t := range targets {
		if body.Intersects(t) {
			hits = append(hits, i)
		}
	}
	return hits
}
