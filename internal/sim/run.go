package sim

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/balance-runner/internal/config"
	"github.com/vovakirdan/balance-runner/internal/core"
)

// Phase is the run state.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// LossReason records why a run ended.
type LossReason int

const (
	LossNone      LossReason = iota
	LossPushedOff            // drifted past the losing edge
	LossFell                 // dropped below the track
	LossObstacle             // hit an obstacle
)

// String returns a human-readable loss reason.
func (l LossReason) String() string {
	switch l {
	case LossNone:
		return "none"
	case LossPushedOff:
		return "pushed-off"
	case LossFell:
		return "fell"
	case LossObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

var (
	// ErrUnknownToken is returned when a token outside the palette is collected.
	ErrUnknownToken = errors.New("sim: unknown token")
	// ErrRunInactive is returned when tokens are collected while paused or over.
	ErrRunInactive = errors.New("sim: run is not active")
)

// Run is the top-level state machine. It owns the World and drives every
// subsystem from Update, once per frame. All methods must be called from a
// single goroutine.
type Run struct {
	id      uuid.UUID
	started bool
	phase   Phase
	loss    LossReason
	world   *World
	physics Physics
	sinks   []Sink
	logger  *log.Logger
}

// Option configures a Run.
type Option func(*Run)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(r *Run) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSink subscribes s from the start.
func WithSink(s Sink) Option {
	return func(r *Run) {
		r.Subscribe(s)
	}
}

// NewRun creates a run in the START phase.
func NewRun(cfg config.RunnerConfig, physics Physics, seed int64, opts ...Option) (*Run, error) {
	if physics == nil {
		return nil, errors.New("sim: physics is required")
	}
	w, err := NewWorld(cfg, seed)
	if err != nil {
		return nil, fmt.Errorf("sim: cannot create run: %w", err)
	}
	r := &Run{
		phase:   PhaseStart,
		world:   w,
		physics: physics,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	physics.Reset()
	return r, nil
}

// Subscribe adds a sink for run notifications.
func (r *Run) Subscribe(s Sink) {
	if s != nil {
		r.sinks = append(r.sinks, s)
	}
}

// ID returns the identifier of the current run, uuid.Nil before the first start.
func (r *Run) ID() uuid.UUID { return r.id }

// Phase returns the current run state.
func (r *Run) Phase() Phase { return r.phase }

// Loss returns why the run ended, LossNone while it has not.
func (r *Run) Loss() LossReason { return r.loss }

// World exposes the simulation context.
func (r *Run) World() *World { return r.world }

// Config returns the configuration the run was built with.
func (r *Run) Config() config.RunnerConfig { return r.world.Cfg }

// Distance returns the distance covered.
func (r *Run) Distance() float64 { return r.world.Distance }

// Score returns the floor of the distance covered.
func (r *Run) Score() int { return int(math.Floor(r.world.Distance)) }

// Stats returns the run statistics so far.
func (r *Run) Stats() RunStats {
	s := r.world.Stats
	s.Elapsed = r.world.Elapsed
	s.Distance = r.world.Distance
	return s
}

// Start begins a run from START.
func (r *Run) Start() bool {
	if r.phase != PhaseStart {
		return false
	}
	w := r.world
	r.id = uuid.New()
	r.started = true

	w.Spawner.Start(w)
	w.Clock.ScheduleOnce(w.Cfg.TimeBonusInterval, TimerTimeBonus)
	w.Clock.ScheduleOnce(animationInterval, TimerAnimation)
	w.Speed = w.speedCtl.Recompute(w)

	r.setPhase(PhasePlaying)
	return true
}

// TogglePause switches between PLAYING and PAUSED. Other phases ignore it.
func (r *Run) TogglePause() bool {
	switch r.phase {
	case PhasePlaying:
		r.setPhase(PhasePaused)
	case PhasePaused:
		r.setPhase(PhasePlaying)
	default:
		return false
	}
	return true
}

// ToggleObstacles switches obstacle spawning before or during a run.
func (r *Run) ToggleObstacles() bool {
	if r.phase != PhaseStart && r.phase != PhasePlaying {
		return false
	}
	r.setObstacles(!r.world.ObstaclesEnabled, false)
	return true
}

// Jump starts a jump, or a further jump in the air up to MaxJumps.
func (r *Run) Jump() bool {
	w := r.world
	if r.phase != PhasePlaying || w.Ducking {
		return false
	}
	if r.physics.IsGrounded() {
		w.Jumps = 0
	}
	if w.Jumps >= w.Cfg.MaxJumps {
		return false
	}
	r.physics.SetVelocityY(-w.Cfg.JumpForce)
	w.Jumps++
	w.Airborne = true
	return true
}

// DuckStart crouches. Only possible on the ground.
func (r *Run) DuckStart() bool {
	w := r.world
	if r.phase != PhasePlaying || w.Ducking || w.Airborne || !r.physics.IsGrounded() {
		return false
	}
	w.Ducking = true
	r.physics.SetCrouched(true)
	return true
}

// DuckEnd stands back up.
func (r *Run) DuckEnd() bool {
	w := r.world
	if r.phase != PhasePlaying || !w.Ducking {
		return false
	}
	w.Ducking = false
	r.physics.SetCrouched(false)
	return true
}

// Restart cancels pending timers and resets everything to START.
func (r *Run) Restart() {
	r.world.Clock.Reset()
	r.world.Reset()
	r.physics.Reset()
	r.loss = LossNone
	r.started = false
	r.id = uuid.Nil
	r.setPhase(PhaseStart)
}

// Pickup collects the collectible with the given ID. Repeated reports for
// the same entity are ignored.
func (r *Run) Pickup(id uint64) bool {
	if r.phase != PhasePlaying {
		return false
	}
	e := r.world.find(id)
	if e == nil || e.Kind != KindCollectible || e.Collected {
		return false
	}
	e.Collected = true
	return r.collect(e.Color) == nil
}

// ObstacleHit ends the run if id is an obstacle in play.
func (r *Run) ObstacleHit(id uint64) bool {
	if r.phase != PhasePlaying {
		return false
	}
	e := r.world.find(id)
	if e == nil || e.Kind != KindObstacle {
		return false
	}
	r.gameOver(LossObstacle)
	return true
}

// Fall ends the run because the player dropped below the track.
func (r *Run) Fall() bool {
	if r.phase != PhasePlaying {
		return false
	}
	r.gameOver(LossFell)
	return true
}

// CollectToken enqueues t directly, outside the pickup path.
func (r *Run) CollectToken(t Token) error {
	if r.phase != PhaseStart && r.phase != PhasePlaying {
		return ErrRunInactive
	}
	return r.collect(t)
}

func (r *Run) collect(t Token) error {
	w := r.world
	if !w.Palette.Contains(t) {
		if w.Cfg.Debug {
			panic(fmt.Sprintf("sim: unknown token %q", t))
		}
		r.logger.Warn("ignoring unknown token", "token", t)
		return fmt.Errorf("%w: %q", ErrUnknownToken, t)
	}
	evicted, _ := w.Queue.Enqueue(t)
	w.Stats.TokensCollected++
	r.emit(TokenCollected{Token: t, Evicted: evicted, Queue: w.Queue.Tokens()})
	return nil
}

// Update advances a playing run by dt seconds. Paused and finished runs
// are left untouched.
func (r *Run) Update(dt float64) {
	if r.phase != PhasePlaying || dt <= 0 {
		return
	}
	w := r.world
	w.Tick++
	w.Elapsed += dt

	w.Speed = w.speedCtl.Recompute(w)
	r.trackImbalance()

	if w.Cfg.AutoEnableObstacles && !w.autoEnabled && w.Speed.CharacterSpeed >= w.Cfg.MaxSpeed {
		w.autoEnabled = true
		if !w.ObstaclesEnabled {
			r.setObstacles(true, true)
		}
	}

	r.physics.Step(dt)
	if w.Airborne && r.physics.IsGrounded() {
		w.Airborne = false
		w.Jumps = 0
	}

	prevX := w.PlayerX
	w.PlayerX += w.Speed.Differential() * dt
	if w.Cfg.SyncReset && w.PlayerX >= w.Cfg.SyncThresholdX {
		r.logger.Debug("sync reset", "x", w.PlayerX)
		w.PlayerX = w.Cfg.StartX
	}
	w.PlayerX = core.ClampF(w.PlayerX, 0, w.Cfg.TrackWidth)
	delta := w.PlayerX - prevX

	w.moveEntities(dt, func(e Entity) {
		r.emit(EntityReleased{Entity: e})
	})

	w.Clock.Advance(dt, r.fire)

	r.checkOverlaps()

	// A losing frame earns no distance
	if r.phase == PhasePlaying {
		switch {
		case w.PlayerX <= 0:
			r.gameOver(LossPushedOff)
		case r.physics.PlayerY() > w.Cfg.TrackHeight+w.Cfg.FallMargin:
			r.gameOver(LossFell)
		}
	}

	if r.phase == PhasePlaying {
		w.Distance += w.Speed.CharacterSpeed * dt

		if w.Cfg.RivalEnabled && w.Rival.Update(w, dt, delta) {
			r.emit(RivalChanged{Active: w.Rival.Active(), Rival: w.Rival.Rival()})
		}
	}

	if len(r.sinks) > 0 {
		r.emit(Frame{Snapshot: r.Snapshot()})
	}
}

func (r *Run) fire(t Timer) {
	w := r.world
	switch t.Kind {
	case TimerObstacleSpawn, TimerCollectibleSpawn:
		if e := w.Spawner.Fire(w, t); e != nil {
			r.emit(EntitySpawned{Entity: *e})
		}
	case TimerTimeBonus:
		w.TimeBonus += w.Cfg.TimeBonusStep
		w.Clock.ScheduleOnce(w.Cfg.TimeBonusInterval, TimerTimeBonus)
		r.emit(TimeBonusAwarded{TimeBonus: w.TimeBonus})
	case TimerRivalCueEnd:
		if w.Rival.CueEnded(t.Handle) {
			r.emit(RivalChanged{Active: true, Rival: w.Rival.Rival()})
		}
	case TimerAnimation:
		for _, e := range w.Entities {
			if e.Kind == KindCollectible {
				e.AnimFrame = (e.AnimFrame + 1) % AnimationFrames
			}
		}
		w.Clock.ScheduleOnce(animationInterval, TimerAnimation)
	}
}

// checkOverlaps asks the physics oracle for obstacle hits first, then pickups.
func (r *Run) checkOverlaps() {
	w := r.world
	if len(w.Entities) == 0 {
		return
	}
	body := r.physics.PlayerBody(w.PlayerX)

	var obstacleIDs, collectibleIDs []uint64
	var obstacles, collectibles []core.RectF
	for _, e := range w.Entities {
		switch {
		case e.Kind == KindObstacle:
			obstacleIDs = append(obstacleIDs, e.ID)
			obstacles = append(obstacles, e.Body())
		case !e.Collected:
			collectibleIDs = append(collectibleIDs, e.ID)
			collectibles = append(collectibles, e.Body())
		}
	}

	if len(obstacles) > 0 {
		for _, i := range r.physics.Overlap(body, obstacles) {
			if i >= 0 && i < len(obstacleIDs) && r.ObstacleHit(obstacleIDs[i]) {
				return
			}
		}
	}
	if len(collectibles) > 0 {
		for _, i := range r.physics.Overlap(body, collectibles) {
			if i >= 0 && i < len(collectibleIDs) {
				r.Pickup(collectibleIDs[i])
			}
		}
	}
}

func (r *Run) trackImbalance() {
	w := r.world
	a := w.Speed.Assessment
	if a.Difference > w.Stats.MaxImbalance {
		w.Stats.MaxImbalance = a.Difference
	}
	if a.Zone != w.lastZone || a.Imbalanced != w.lastImbalanced {
		w.lastZone = a.Zone
		w.lastImbalanced = a.Imbalanced
		r.emit(ImbalanceChanged{Assessment: a})
	}
}

func (r *Run) setObstacles(enabled, auto bool) {
	w := r.world
	w.ObstaclesEnabled = enabled
	w.Spawner.SetObstaclesEnabled(w, enabled)
	if auto {
		r.logger.Info("obstacles enabled at max speed", "speed", w.Speed.CharacterSpeed)
	} else {
		r.logger.Debug("obstacles toggled", "enabled", enabled)
	}
	r.emit(ObstaclesToggled{Enabled: enabled, Auto: auto})
}

func (r *Run) gameOver(reason LossReason) {
	r.loss = reason
	r.setPhase(PhaseGameOver)
	stats := r.Stats()
	r.logger.Info("run over",
		"id", r.id,
		"variant", r.world.Cfg.Variant,
		"reason", reason,
		"score", r.Score(),
		"elapsed", stats.Elapsed,
	)
	r.emit(GameOver{RunID: r.id, Seed: r.world.seed, Reason: reason, Score: r.Score(), Stats: stats})
}

func (r *Run) setPhase(p Phase) {
	from := r.phase
	r.phase = p
	r.logger.Debug("phase", "from", from, "to", p)
	r.emit(PhaseChanged{From: from, To: p})
}

func (r *Run) emit(ev Event) {
	for _, s := range r.sinks {
		s.Handle(ev)
	}
}
