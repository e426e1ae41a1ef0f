package sim

import (
	"math/rand"

	"github.com/vovakirdan/balance-runner/internal/core"
)

// EntityKind separates obstacles from collectibles.
type EntityKind int

const (
	KindObstacle EntityKind = iota
	KindCollectible
)

// String returns a human-readable kind name.
func (k EntityKind) String() string {
	if k == KindObstacle {
		return "obstacle"
	}
	return "collectible"
}

// ObstacleType is the visual and collision variant of an obstacle.
type ObstacleType int

const (
	ObstacleHydrant ObstacleType = iota // low
	ObstacleTrash                       // low
	ObstacleDrone                       // high
)

// String returns a human-readable obstacle name.
func (o ObstacleType) String() string {
	switch o {
	case ObstacleHydrant:
		return "hydrant"
	case ObstacleTrash:
		return "trash"
	case ObstacleDrone:
		return "drone"
	default:
		return "unknown"
	}
}

// Low reports whether the obstacle sits on the ground.
func (o ObstacleType) Low() bool {
	return o != ObstacleDrone
}

// Size returns the obstacle body in track units.
func (o ObstacleType) Size() (w, h float64) {
	switch o {
	case ObstacleHydrant:
		return 20, 32
	case ObstacleTrash:
		return 24, 32
	default:
		return 32, 12
	}
}

// CollectibleSize is the edge length of a collectible body.
const CollectibleSize = 16

// AnimationFrames is the number of collectible animation frames.
const AnimationFrames = 4

// Entity is an obstacle or collectible in play. X and Y are the body
// center. ID changes on every activation, so a stale overlap report for a
// recycled entity never matches.
type Entity struct {
	ID        uint64
	Kind      EntityKind
	Obstacle  ObstacleType // obstacles only
	Color     Token        // collectibles only
	X, Y      float64
	W, H      float64
	VX        float64
	Collected bool
	AnimFrame int
}

// Body returns the collision rectangle.
func (e *Entity) Body() core.RectF {
	return core.CenteredRectF(e.X, e.Y, e.W, e.H)
}

// PickColor chooses a collectible color with weight count+1 per palette
// color, so colors already held spawn more often.
func PickColor(rng *rand.Rand, counts map[Token]int, p Palette) Token {
	if len(p) == 0 {
		return ""
	}
	total := 0
	for _, c := range p {
		total += counts[c] + 1
	}
	r := rng.Intn(total)
	for _, c := range p {
		r -= counts[c] + 1
		if r < 0 {
			return c
		}
	}
	return p[len(p)-1]
}

// PickObstacle chooses a low obstacle with probability lowChance, split
// evenly between the two low types, else a drone.
func PickObstacle(rng *rand.Rand, lowChance float64) ObstacleType {
	if rng.Float64() < lowChance {
		if rng.Intn(2) == 0 {
			return ObstacleHydrant
		}
		return ObstacleTrash
	}
	return ObstacleDrone
}

// SpawnScheduler owns the two self-rescheduling spawn timers. The obstacle
// timer stays armed for the whole run and is paused while obstacles are
// disabled.
type SpawnScheduler struct {
	obstacleTimer    Handle
	collectibleTimer Handle
}

// Start arms both timers.
func (s *SpawnScheduler) Start(w *World) {
	s.obstacleTimer = w.Clock.ScheduleOnce(s.obstacleDelay(w), TimerObstacleSpawn)
	s.collectibleTimer = w.Clock.ScheduleOnce(s.collectibleDelay(w), TimerCollectibleSpawn)
	if !w.ObstaclesEnabled {
		w.Clock.Pause(s.obstacleTimer)
	}
}

// SetObstaclesEnabled pauses or resumes the obstacle timer.
func (s *SpawnScheduler) SetObstaclesEnabled(w *World, enabled bool) {
	if enabled {
		w.Clock.Resume(s.obstacleTimer)
	} else {
		w.Clock.Pause(s.obstacleTimer)
	}
}

// NextObstacle returns the delay before the obstacle timer fires. It
// reports false before the run starts and while obstacles are disabled.
func (s *SpawnScheduler) NextObstacle(w *World) (float64, bool) {
	if !w.Clock.Pending(s.obstacleTimer) || w.Clock.Paused(s.obstacleTimer) {
		return 0, false
	}
	return w.Clock.Remaining(s.obstacleTimer)
}

// Fire handles a spawn timer and reschedules it. Returns the spawned entity.
func (s *SpawnScheduler) Fire(w *World, t Timer) *Entity {
	switch t.Kind {
	case TimerObstacleSpawn:
		s.obstacleTimer = w.Clock.ScheduleOnce(s.obstacleDelay(w), TimerObstacleSpawn)
		if !w.ObstaclesEnabled {
			w.Clock.Pause(s.obstacleTimer)
			return nil
		}
		return w.spawnObstacle(PickObstacle(w.Rng, w.Cfg.LowObstacleChance))
	case TimerCollectibleSpawn:
		s.collectibleTimer = w.Clock.ScheduleOnce(s.collectibleDelay(w), TimerCollectibleSpawn)
		color := PickColor(w.Rng, w.Queue.Counts(w.Palette), w.Palette)
		return w.spawnCollectible(color)
	default:
		return nil
	}
}

// Reset forgets the timer handles. The clock itself is reset by the world.
func (s *SpawnScheduler) Reset() {
	*s = SpawnScheduler{}
}

func (s *SpawnScheduler) obstacleDelay(w *World) float64 {
	return uniform(w.Rng, w.Cfg.ObstacleIntervalMin, w.Cfg.ObstacleIntervalMax)
}

func (s *SpawnScheduler) collectibleDelay(w *World) float64 {
	return uniform(w.Rng, w.Cfg.CollectibleIntervalMin, w.Cfg.CollectibleIntervalMax)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// newEntityPool builds the entity free list shared by both kinds.
func newEntityPool() *Pool[EntityKind, *Entity] {
	return NewPool(func(k EntityKind) *Entity {
		return &Entity{Kind: k}
	})
}

func (w *World) activate(kind EntityKind) *Entity {
	e := w.pool.Acquire(kind)
	w.nextID++
	*e = Entity{ID: w.nextID, Kind: kind, VX: -w.Speed.WorldSpeed}
	w.Entities = append(w.Entities, e)
	return e
}

func (w *World) spawnObstacle(typ ObstacleType) *Entity {
	e := w.activate(KindObstacle)
	e.Obstacle = typ
	e.W, e.H = typ.Size()
	e.X = w.Cfg.SpawnX
	if typ.Low() {
		e.Y = w.Cfg.GroundY - e.H/2
	} else {
		e.Y = w.Cfg.GroundY - w.Cfg.DroneHeight
	}
	return e
}

func (w *World) spawnCollectible(color Token) *Entity {
	e := w.activate(KindCollectible)
	e.Color = color
	e.W, e.H = CollectibleSize, CollectibleSize
	e.X = w.Cfg.SpawnX
	top := w.Cfg.GroundY - w.Cfg.CollectibleBandTop
	bottom := w.Cfg.GroundY - w.Cfg.CollectibleBandBottom
	e.Y = uniform(w.Rng, top, bottom)
	return e
}

// moveEntities advances every entity at the current world speed and
// releases those that left the track or were collected.
func (w *World) moveEntities(dt float64, released func(Entity)) {
	kept := w.Entities[:0]
	for _, e := range w.Entities {
		e.VX = -w.Speed.WorldSpeed
		e.X += e.VX * dt
		if w.recyclable(e) {
			if released != nil {
				released(*e)
			}
			w.pool.Release(e.Kind, e)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(w.Entities); i++ {
		w.Entities[i] = nil
	}
	w.Entities = kept
}

func (w *World) recyclable(e *Entity) bool {
	if e.Kind == KindObstacle {
		return e.X < w.Cfg.ObstacleRecycleX
	}
	return e.Collected || e.X < w.Cfg.CollectibleRecycleX
}

// releaseAll returns every active entity to the pool.
func (w *World) releaseAll() {
	for i, e := range w.Entities {
		w.pool.Release(e.Kind, e)
		w.Entities[i] = nil
	}
	w.Entities = w.Entities[:0]
}
