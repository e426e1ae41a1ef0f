package config

// presetScale holds the factors a difficulty preset applies to the loaded
// tuning. Factors above one on threshold and boost make a run more forgiving.
type presetScale struct {
	threshold float64 // imbalance_threshold and neutral_threshold
	penalty   float64 // penalty_multiplier and penalty_dampening
	boost     float64
	timeBonus float64
	obstacles float64 // both obstacle interval bounds
}

var presetScales = map[DifficultyPreset]presetScale{
	DifficultyEasy: {threshold: 1.5, penalty: 0.5, boost: 1.5, timeBonus: 0.5, obstacles: 1.3},
	DifficultyHard: {threshold: 0.5, penalty: 2, boost: 0.5, timeBonus: 1.5, obstacles: 0.7},
}

// ApplyDifficultyPreset scales the tuning knobs of an already loaded config.
// Empty and normal presets leave the config untouched, so values from a
// custom file survive and are only scaled by easy or hard.
func ApplyDifficultyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	s, ok := presetScales[preset]
	if !ok {
		return
	}
	cfg.ImbalanceThreshold *= s.threshold
	cfg.NeutralThreshold *= s.threshold
	cfg.PenaltyMultiplier *= s.penalty
	cfg.PenaltyDampening *= s.penalty
	cfg.MaxBoost *= s.boost
	cfg.TimeBonusStep *= s.timeBonus
	cfg.ObstacleIntervalMin *= s.obstacles
	cfg.ObstacleIntervalMax *= s.obstacles
}
