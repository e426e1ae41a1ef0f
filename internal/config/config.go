// Package config provides YAML-based configuration loading and difficulty
// presets for the balance runner variants.
package config

import (
	"errors"
	"fmt"
)

// Variant identifiers. They double as registry game IDs and config file names.
const (
	VariantColorRush = "color-rush" // strict imbalance penalty, sync reset
	VariantGhostRun  = "ghost-run"  // boost/penalty zones, edge cap, rival ghost
)

// Balance policy names accepted in RunnerConfig.BalancePolicy.
const (
	PolicyStrict   = "strict"
	PolicyDualZone = "dual_zone"
)

// RunnerConfig is the flat tuning record consumed by the simulation core.
// Positions are track units (the original 800x450 playfield), speeds are
// track units per second and intervals are seconds.
type RunnerConfig struct {
	Variant string `yaml:"variant"`
	Debug   bool   `yaml:"debug"` // panic on programmer errors such as unknown tokens

	// Tokens
	Colors        []string          `yaml:"colors"`
	TokenColors   map[string]string `yaml:"token_colors"` // display color per token
	QueueCapacity int               `yaml:"queue_capacity"`
	SeedBalanced  bool              `yaml:"seed_balanced"` // start with a balanced queue

	// Balance
	BalancePolicy      string  `yaml:"balance_policy"`
	ImbalanceThreshold float64 `yaml:"imbalance_threshold"` // strict: tolerated spread in percent
	PenaltyMultiplier  float64 `yaml:"penalty_multiplier"`  // strict: speed lost per percent over threshold
	NeutralThreshold   float64 `yaml:"neutral_threshold"`   // dual_zone: boost zone width in percent
	MaxBoost           float64 `yaml:"max_boost"`           // dual_zone: flat bonus at perfect balance
	PenaltyDampening   float64 `yaml:"penalty_dampening"`   // dual_zone: scale of the multiplicative penalty

	// Speed
	BaseCharacterSpeed  float64 `yaml:"base_character_speed"`
	BaseWorldSpeed      float64 `yaml:"base_world_speed"`
	MaxSpeed            float64 `yaml:"max_speed"`
	SpeedBonusPerUnit   float64 `yaml:"speed_bonus_per_unit"`
	TimeBonusStep       float64 `yaml:"time_bonus_step"`
	TimeBonusInterval   float64 `yaml:"time_bonus_interval"`
	AutoEnableObstacles bool    `yaml:"auto_enable_obstacles"`

	// Track
	TrackWidth     float64 `yaml:"track_width"`
	TrackHeight    float64 `yaml:"track_height"`
	GroundY        float64 `yaml:"ground_y"`
	StartX         float64 `yaml:"start_x"`
	SyncReset      bool    `yaml:"sync_reset"`
	SyncThresholdX float64 `yaml:"sync_threshold_x"`
	EdgeCap        bool    `yaml:"edge_cap"`
	EdgeCapX       float64 `yaml:"edge_cap_x"`
	FallMargin     float64 `yaml:"fall_margin"`
	Floorless      bool    `yaml:"floorless"` // no ground line: the runner falls at once

	// Spawning
	ObstacleIntervalMin    float64 `yaml:"obstacle_interval_min"`
	ObstacleIntervalMax    float64 `yaml:"obstacle_interval_max"`
	CollectibleIntervalMin float64 `yaml:"collectible_interval_min"`
	CollectibleIntervalMax float64 `yaml:"collectible_interval_max"`
	LowObstacleChance      float64 `yaml:"low_obstacle_chance"`
	SpawnX                 float64 `yaml:"spawn_x"`
	ObstacleRecycleX       float64 `yaml:"obstacle_recycle_x"`
	CollectibleRecycleX    float64 `yaml:"collectible_recycle_x"`
	CollectibleBandTop     float64 `yaml:"collectible_band_top"`    // highest pickup, above ground
	CollectibleBandBottom  float64 `yaml:"collectible_band_bottom"` // lowest pickup, above ground
	DroneHeight            float64 `yaml:"drone_height"`            // drone center above ground

	// Player
	JumpForce     float64 `yaml:"jump_force"`
	Gravity       float64 `yaml:"gravity"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"` // 0 means unlimited
	MaxJumps      int     `yaml:"max_jumps"`
	PlayerWidth   float64 `yaml:"player_width"`
	PlayerHeight  float64 `yaml:"player_height"`
	DuckHeight    float64 `yaml:"duck_height"`
	DuckHoldTicks int     `yaml:"duck_hold_ticks"` // terminal has no key-up; duck ends after this many ticks

	// Rival
	RivalEnabled       bool    `yaml:"rival_enabled"`
	RivalTriggerX      float64 `yaml:"rival_trigger_x"`
	RivalSpawnX        float64 `yaml:"rival_spawn_x"`
	RivalApproachSpeed float64 `yaml:"rival_approach_speed"`
	RivalRunAwaySpeed  float64 `yaml:"rival_run_away_speed"`
	RivalLeadOffset    float64 `yaml:"rival_lead_offset"`
	RivalCueDuration   float64 `yaml:"rival_cue_duration"`
	RivalDespawnMargin float64 `yaml:"rival_despawn_margin"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficultyPreset maps a CLI value to a preset. Empty or unknown values
// yield "" which means "keep the config as loaded".
func ParseDifficultyPreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// Validate reports every inconsistency in the record.
func (c *RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.QueueCapacity >= 1, "queue_capacity must be at least 1, got %d", c.QueueCapacity)
	check(len(c.Colors) >= 2, "need at least 2 colors, got %d", len(c.Colors))
	seen := make(map[string]bool, len(c.Colors))
	for _, name := range c.Colors {
		check(name != "", "color names must not be empty")
		check(!seen[name], "duplicate color %q", name)
		seen[name] = true
	}
	check(c.BalancePolicy == PolicyStrict || c.BalancePolicy == PolicyDualZone,
		"unknown balance_policy %q", c.BalancePolicy)
	if c.BalancePolicy == PolicyDualZone {
		check(c.NeutralThreshold > 0, "neutral_threshold must be positive")
	}
	check(c.MaxSpeed > 0, "max_speed must be positive")
	check(c.TimeBonusInterval > 0, "time_bonus_interval must be positive")
	check(c.TrackWidth > 0 && c.TrackHeight > 0, "track dimensions must be positive")
	check(c.StartX > 0 && c.StartX <= c.TrackWidth, "start_x %.1f outside track", c.StartX)
	if c.SyncReset {
		check(c.SyncThresholdX > c.StartX && c.SyncThresholdX <= c.TrackWidth,
			"sync_threshold_x %.1f must lie between start_x and track_width", c.SyncThresholdX)
	}
	if c.EdgeCap {
		check(c.EdgeCapX > 0 && c.EdgeCapX <= c.TrackWidth, "edge_cap_x %.1f outside track", c.EdgeCapX)
	}
	check(c.ObstacleIntervalMin > 0 && c.ObstacleIntervalMin <= c.ObstacleIntervalMax,
		"obstacle interval [%.2f, %.2f] invalid", c.ObstacleIntervalMin, c.ObstacleIntervalMax)
	check(c.CollectibleIntervalMin > 0 && c.CollectibleIntervalMin <= c.CollectibleIntervalMax,
		"collectible interval [%.2f, %.2f] invalid", c.CollectibleIntervalMin, c.CollectibleIntervalMax)
	check(c.LowObstacleChance >= 0 && c.LowObstacleChance <= 1, "low_obstacle_chance must be in [0, 1]")
	check(c.CollectibleBandTop >= c.CollectibleBandBottom, "collectible band top must be above bottom")
	check(c.MaxJumps >= 1, "max_jumps must be at least 1")
	check(c.MaxFallSpeed >= 0, "max_fall_speed must not be negative")
	if c.RivalEnabled {
		check(c.RivalTriggerX > 0 && c.RivalTriggerX < c.StartX,
			"rival_trigger_x %.1f must lie between 0 and start_x", c.RivalTriggerX)
		check(c.RivalApproachSpeed > 0 && c.RivalRunAwaySpeed > 0, "rival speeds must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid %s config: %w", c.Variant, errors.Join(errs...))
	}
	return nil
}
