package sim

import "github.com/google/uuid"

// Event is a notification emitted to subscribed sinks.
type Event interface {
	eventName() string
}

// PhaseChanged is emitted on every run state transition.
type PhaseChanged struct {
	From, To Phase
}

// TokenCollected is emitted after a token enters the queue.
type TokenCollected struct {
	Token   Token
	Evicted Token // empty when nothing was evicted
	Queue   []Token
}

// ImbalanceChanged is emitted when the balance zone or imbalance flag flips.
type ImbalanceChanged struct {
	Assessment Assessment
}

// ObstaclesToggled is emitted when obstacle spawning is switched.
type ObstaclesToggled struct {
	Enabled bool
	Auto    bool // switched on by reaching max speed
}

// EntitySpawned is emitted when an obstacle or collectible enters play.
type EntitySpawned struct {
	Entity Entity
}

// EntityReleased is emitted when an entity leaves play and returns to the pool.
type EntityReleased struct {
	Entity Entity
}

// RivalChanged is emitted when the ghost spawns, changes phase or leaves.
type RivalChanged struct {
	Active bool
	Rival  Rival
}

// TimeBonusAwarded is emitted every time the shared time bonus grows.
type TimeBonusAwarded struct {
	TimeBonus float64
}

// GameOver is emitted once per run when it ends.
type GameOver struct {
	RunID  uuid.UUID
	Seed   int64
	Reason LossReason
	Score  int
	Stats  RunStats
}

// Frame is emitted at the end of every playing frame.
type Frame struct {
	Snapshot Snapshot
}

func (PhaseChanged) eventName() string     { return "phase-changed" }
func (TokenCollected) eventName() string   { return "token-collected" }
func (ImbalanceChanged) eventName() string { return "imbalance-changed" }
func (ObstaclesToggled) eventName() string { return "obstacles-toggled" }
func (EntitySpawned) eventName() string    { return "entity-spawned" }
func (EntityReleased) eventName() string   { return "entity-released" }
func (RivalChanged) eventName() string     { return "rival-changed" }
func (TimeBonusAwarded) eventName() string { return "time-bonus-awarded" }
func (GameOver) eventName() string         { return "game-over" }
func (Frame) eventName() string            { return "frame" }

// EventName returns a stable name for logging.
func EventName(ev Event) string {
	return ev.eventName()
}
