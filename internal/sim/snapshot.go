package sim

// Snapshot is a copy of everything a presentation layer needs for a frame.
// It shares no memory with the run.
type Snapshot struct {
	RunID string
	Tick  int
	Phase Phase
	Loss  LossReason

	Elapsed  float64
	Distance float64
	Score    int

	PlayerX  float64
	PlayerY  float64
	Grounded bool
	Ducking  bool

	Speed       SpeedState
	TensionRate float64

	Palette Palette
	Queue   []Token
	Counts  map[Token]int

	ObstaclesEnabled bool
	NextObstacleIn   float64 // -1 while the obstacle timer is not running
	Entities         []Entity

	RivalActive bool
	Rival       Rival

	Stats RunStats
}

// Snapshot captures the current run state.
func (r *Run) Snapshot() Snapshot {
	w := r.world
	s := Snapshot{
		Tick:             w.Tick,
		Phase:            r.phase,
		Loss:             r.loss,
		Elapsed:          w.Elapsed,
		Distance:         w.Distance,
		Score:            r.Score(),
		PlayerX:          w.PlayerX,
		PlayerY:          r.physics.PlayerY(),
		Grounded:         r.physics.IsGrounded(),
		Ducking:          w.Ducking,
		Speed:            w.Speed,
		TensionRate:      TensionRate(w.Speed),
		Palette:          append(Palette(nil), w.Palette...),
		Queue:            w.Queue.Tokens(),
		Counts:           w.Counts(),
		ObstaclesEnabled: w.ObstaclesEnabled,
		Entities:         make([]Entity, len(w.Entities)),
		RivalActive:      w.Rival.Active(),
		Rival:            w.Rival.Rival(),
		Stats:            r.Stats(),
	}
	if r.started {
		s.RunID = r.id.String()
	}
	s.NextObstacleIn = -1
	if d, ok := w.Spawner.NextObstacle(w); ok {
		s.NextObstacleIn = d
	}
	for i, e := range w.Entities {
		s.Entities[i] = *e
	}
	return s
}
