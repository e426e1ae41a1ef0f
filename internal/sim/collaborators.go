package sim

import "github.com/vovakirdan/balance-runner/internal/core"

// Physics is the collision and gravity oracle the run queries each frame.
// Vertical positions are track units with y growing downward; PlayerY is
// the bottom of the player body.
type Physics interface {
	Step(dt float64)
	IsGrounded() bool
	SetVelocityY(v float64)
	SetCrouched(crouched bool)
	PlayerY() float64
	PlayerBody(x float64) core.RectF
	// Overlap returns the indices of targets that intersect body.
	Overlap(body core.RectF, targets []core.RectF) []int
	Reset()
}

// Sink receives run notifications. Handle is called synchronously from the
// frame and input handlers and must not call back into the run.
type Sink interface {
	Handle(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

// Handle implements Sink.
func (f SinkFunc) Handle(ev Event) { f(ev) }
