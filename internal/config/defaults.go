package config

import (
	_ "embed"
)

//go:embed defaults/color-rush.yaml
var defaultColorRushYAML []byte

//go:embed defaults/ghost-run.yaml
var defaultGhostRunYAML []byte

// DefaultColorRushConfig returns the penalty-only variant: four colors, a
// strict 10% spread tolerance and the sync reset at 75% of the track.
func DefaultColorRushConfig() RunnerConfig {
	return RunnerConfig{
		Variant: VariantColorRush,
		Colors:  []string{"red", "blue", "green", "yellow"},
		TokenColors: map[string]string{
			"red":    "red",
			"blue":   "blue",
			"green":  "green",
			"yellow": "yellow",
		},
		QueueCapacity: 13,

		BalancePolicy:      PolicyStrict,
		ImbalanceThreshold: 10,
		PenaltyMultiplier:  1,

		BaseCharacterSpeed:  300,
		BaseWorldSpeed:      300,
		MaxSpeed:            800,
		SpeedBonusPerUnit:   0,
		TimeBonusStep:       20,
		TimeBonusInterval:   5,
		AutoEnableObstacles: true,

		TrackWidth:     800,
		TrackHeight:    450,
		GroundY:        404,
		StartX:         400,
		SyncReset:      true,
		SyncThresholdX: 600,
		FallMargin:     50,

		ObstacleIntervalMin:    1.5,
		ObstacleIntervalMax:    2.5,
		CollectibleIntervalMin: 0.4,
		CollectibleIntervalMax: 0.9,
		LowObstacleChance:      0.6,
		SpawnX:                 850,
		ObstacleRecycleX:       -100,
		CollectibleRecycleX:    -50,
		CollectibleBandTop:     200,
		CollectibleBandBottom:  10,
		DroneHeight:            48,

		JumpForce:     450,
		Gravity:       1200,
		MaxJumps:      2,
		PlayerWidth:   32,
		PlayerHeight:  48,
		DuckHeight:    24,
		DuckHoldTicks: 20,
	}
}

// DefaultGhostRunConfig returns the boost/penalty variant: three colors,
// a pre-filled balanced queue, the edge cap and the rival ghost.
func DefaultGhostRunConfig() RunnerConfig {
	cfg := DefaultColorRushConfig()
	cfg.Variant = VariantGhostRun
	cfg.Colors = []string{"identity", "approval", "money"}
	cfg.TokenColors = map[string]string{
		"identity": "cyan",
		"approval": "pink",
		"money":    "yellow",
	}
	cfg.SeedBalanced = true

	cfg.BalancePolicy = PolicyDualZone
	cfg.ImbalanceThreshold = 0
	cfg.PenaltyMultiplier = 0
	cfg.NeutralThreshold = 100.0 / 6.0
	cfg.MaxBoost = 15
	cfg.PenaltyDampening = 0.8

	cfg.SyncReset = false
	cfg.SyncThresholdX = 0
	cfg.EdgeCap = true
	cfg.EdgeCapX = 640

	cfg.RivalEnabled = true
	cfg.RivalTriggerX = 200
	cfg.RivalSpawnX = -60
	cfg.RivalApproachSpeed = 600
	cfg.RivalRunAwaySpeed = 500
	cfg.RivalLeadOffset = 60
	cfg.RivalCueDuration = 3
	cfg.RivalDespawnMargin = 60
	return cfg
}

// DefaultConfig returns the hard-coded defaults for a variant.
func DefaultConfig(variant string) (RunnerConfig, bool) {
	switch variant {
	case VariantColorRush:
		return DefaultColorRushConfig(), true
	case VariantGhostRun:
		return DefaultGhostRunConfig(), true
	default:
		return RunnerConfig{}, false
	}
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantColorRush:
		return defaultColorRushYAML
	case VariantGhostRun:
		return defaultGhostRunYAML
	default:
		return nil
	}
}
