package sim

// RivalPhase is the state of the ghost rival.
type RivalPhase int

const (
	RivalApproaching RivalPhase = iota
	RivalRunningWith
	RivalRunningAway
)

// String returns a human-readable phase name.
func (p RivalPhase) String() string {
	switch p {
	case RivalApproaching:
		return "approaching"
	case RivalRunningWith:
		return "running-with"
	case RivalRunningAway:
		return "running-away"
	default:
		return "unknown"
	}
}

// Rival is the visible state of the ghost.
type Rival struct {
	Phase RivalPhase
	X     float64
	Color Token // least represented color, refreshed every frame
}

// RivalAgent runs at most one ghost per trigger. The trigger fires when the
// player drifts to the losing side while holding tokens, and re-arms once
// the player is back past the start offset.
type RivalAgent struct {
	armed  bool
	active bool
	rival  Rival
	cue    Handle
}

// NewRivalAgent creates an armed agent.
func NewRivalAgent() RivalAgent {
	return RivalAgent{armed: true}
}

// Active reports whether a ghost is in play.
func (ra *RivalAgent) Active() bool {
	return ra.active
}

// Armed reports whether the next trigger condition spawns a ghost.
func (ra *RivalAgent) Armed() bool {
	return ra.armed
}

// Rival returns the ghost state. Only meaningful while Active.
func (ra *RivalAgent) Rival() Rival {
	return ra.rival
}

// Update advances the ghost by one frame. playerDelta is the player's net
// displacement this frame. Returns true when the ghost spawned, changed
// phase or despawned.
func (ra *RivalAgent) Update(w *World, dt, playerDelta float64) bool {
	cfg := &w.Cfg
	if !ra.armed && w.PlayerX > cfg.StartX {
		ra.armed = true
	}

	changed := false
	if !ra.active {
		if !ra.armed || w.PlayerX > cfg.RivalTriggerX || w.Queue.Len() == 0 {
			return false
		}
		ra.armed = false
		ra.active = true
		ra.rival = Rival{Phase: RivalApproaching, X: cfg.RivalSpawnX}
		changed = true
	}

	ra.rival.Color = LeastRepresented(w.Queue.Counts(w.Palette), w.Palette)

	switch ra.rival.Phase {
	case RivalApproaching:
		target := w.PlayerX + cfg.RivalLeadOffset
		ra.rival.X += cfg.RivalApproachSpeed * dt
		if ra.rival.X >= target {
			ra.rival.X = target
			ra.rival.Phase = RivalRunningWith
			ra.cue = w.Clock.ScheduleOnce(cfg.RivalCueDuration, TimerRivalCueEnd)
			changed = true
		}
	case RivalRunningWith:
		ra.rival.X += playerDelta
	case RivalRunningAway:
		ra.rival.X += cfg.RivalRunAwaySpeed * dt
		if ra.rival.X > cfg.TrackWidth+cfg.RivalDespawnMargin {
			ra.active = false
			changed = true
		}
	}
	return changed
}

// CueEnded switches a ghost running with the player to running away.
func (ra *RivalAgent) CueEnded(h Handle) bool {
	if !ra.active || h != ra.cue || ra.rival.Phase != RivalRunningWith {
		return false
	}
	ra.rival.Phase = RivalRunningAway
	ra.cue = 0
	return true
}

// Reset removes the ghost and re-arms the trigger.
func (ra *RivalAgent) Reset() {
	*ra = NewRivalAgent()
}
