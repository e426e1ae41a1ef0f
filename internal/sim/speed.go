package sim

import (
	"github.com/vovakirdan/balance-runner/internal/config"
	"github.com/vovakirdan/balance-runner/internal/core"
)

// SpeedState is recomputed from scratch every frame and swapped in whole.
type SpeedState struct {
	CharacterSpeed float64
	WorldSpeed     float64
	TimeBonus      float64
	Adjustment     float64 // signed effect of the balance policy on character speed
	Assessment     Assessment
	EdgeCapped     bool
}

// Differential is character minus world speed: the player's drift rate.
func (s SpeedState) Differential() float64 {
	return s.CharacterSpeed - s.WorldSpeed
}

// SpeedController derives SpeedState from the queue, the time bonus and
// the player position.
type SpeedController struct {
	policy        BalancePolicy
	baseCharacter float64
	baseWorld     float64
	maxSpeed      float64
	unitBonus     float64
	edgeCap       bool
	edgeCapX      float64
}

// NewSpeedController creates a controller for cfg using policy.
func NewSpeedController(cfg config.RunnerConfig, policy BalancePolicy) *SpeedController {
	return &SpeedController{
		policy:        policy,
		baseCharacter: cfg.BaseCharacterSpeed,
		baseWorld:     cfg.BaseWorldSpeed,
		maxSpeed:      cfg.MaxSpeed,
		unitBonus:     cfg.SpeedBonusPerUnit,
		edgeCap:       cfg.EdgeCap,
		edgeCapX:      cfg.EdgeCapX,
	}
}

// Policy returns the balance policy in use.
func (sc *SpeedController) Policy() BalancePolicy {
	return sc.policy
}

// Recompute returns a new SpeedState for the world as it stands.
// Both speeds are clamped into [0, maxSpeed].
func (sc *SpeedController) Recompute(w *World) SpeedState {
	total := w.Queue.Len()
	counts := w.Queue.Counts(w.Palette)
	a := sc.policy.Evaluate(counts, w.Palette, total)

	shared := w.TimeBonus + float64(total)*sc.unitBonus
	base := sc.baseCharacter + shared
	adjusted := sc.policy.Adjust(base, a)

	s := SpeedState{
		CharacterSpeed: core.ClampF(adjusted, 0, sc.maxSpeed),
		WorldSpeed:     core.ClampF(sc.baseWorld+shared, 0, sc.maxSpeed),
		TimeBonus:      w.TimeBonus,
		Adjustment:     adjusted - base,
		Assessment:     a,
	}

	if sc.edgeCap && w.PlayerX >= sc.edgeCapX && s.CharacterSpeed > s.WorldSpeed {
		s.CharacterSpeed = s.WorldSpeed
		s.EdgeCapped = true
	}
	return s
}

// TensionRate maps falling behind onto a music playback rate in [1, 3].
// Running level with the world plays at 1.25.
func TensionRate(s SpeedState) float64 {
	gap := s.WorldSpeed - s.CharacterSpeed
	return core.ClampF(1.25+gap/200*1.25, 1, 3)
}
