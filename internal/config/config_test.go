package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	for _, variant := range []string{VariantColorRush, VariantGhostRun} {
		t.Run(variant, func(t *testing.T) {
			want, ok := DefaultConfig(variant)
			if !ok {
				t.Fatalf("DefaultConfig(%q) not found", variant)
			}
			got, err := decodeOver(RunnerConfig{}, GetDefaultYAML(variant))
			if err != nil {
				t.Fatalf("decode embedded yaml: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("embedded yaml = %+v, expected %+v", got, want)
			}
		})
	}
}

func TestDefaultsValidate(t *testing.T) {
	for _, cfg := range []RunnerConfig{DefaultColorRushConfig(), DefaultGhostRunConfig()} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s defaults invalid: %v", cfg.Variant, err)
		}
	}
}

func TestValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
		want   string
	}{
		{"capacity", func(c *RunnerConfig) { c.QueueCapacity = 0 }, "queue_capacity"},
		{"single color", func(c *RunnerConfig) { c.Colors = []string{"red"} }, "at least 2 colors"},
		{"duplicate color", func(c *RunnerConfig) { c.Colors = []string{"red", "red"} }, "duplicate color"},
		{"policy", func(c *RunnerConfig) { c.BalancePolicy = "fuzzy" }, "balance_policy"},
		{"sync threshold", func(c *RunnerConfig) { c.SyncThresholdX = 100 }, "sync_threshold_x"},
		{"obstacle interval", func(c *RunnerConfig) { c.ObstacleIntervalMax = 0.1 }, "obstacle interval"},
		{"low chance", func(c *RunnerConfig) { c.LowObstacleChance = 1.5 }, "low_obstacle_chance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultColorRushConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, expected error mentioning %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, expected mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "queue_capacity: 7\ncolors: [red, blue]\nimbalance_threshold: 20\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(VariantColorRush, path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.QueueCapacity != 7 {
		t.Errorf("QueueCapacity = %d, expected 7", cfg.QueueCapacity)
	}
	if !reflect.DeepEqual(cfg.Colors, []string{"red", "blue"}) {
		t.Errorf("Colors = %v, expected [red blue]", cfg.Colors)
	}
	if cfg.ImbalanceThreshold != 20 {
		t.Errorf("ImbalanceThreshold = %v, expected 20", cfg.ImbalanceThreshold)
	}
	// Untouched fields keep their defaults
	if cfg.StartX != 400 {
		t.Errorf("StartX = %v, expected 400", cfg.StartX)
	}
	if !cfg.SyncReset {
		t.Error("SyncReset should keep its default")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("pacman", ""); err == nil {
		t.Error("Load with unknown variant should fail")
	}
	if _, err := Load(VariantGhostRun, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load with missing custom path should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("queue_capacity: 0\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(VariantGhostRun, path); err == nil {
		t.Error("Load should reject a config that fails validation")
	}
}

func TestDecodeOverDoesNotAliasBase(t *testing.T) {
	base := DefaultGhostRunConfig()
	cfg, err := decodeOver(base, []byte("token_colors:\n  money: green\n"))
	if err != nil {
		t.Fatalf("decodeOver failed: %v", err)
	}
	if cfg.TokenColors["money"] != "green" {
		t.Errorf("TokenColors[money] = %q, expected green", cfg.TokenColors["money"])
	}
	if base.TokenColors["money"] != "yellow" {
		t.Errorf("base was modified: TokenColors[money] = %q", base.TokenColors["money"])
	}
	if cfg.TokenColors["identity"] != "cyan" {
		t.Errorf("unrelated token color lost: %q", cfg.TokenColors["identity"])
	}
}

func TestApplyDifficultyPreset(t *testing.T) {
	tests := []struct {
		preset        DifficultyPreset
		wantThreshold float64
		wantPenalty   float64
	}{
		{"", 30, 4},
		{DifficultyNormal, 30, 4},
		{DifficultyEasy, 45, 2},
		{DifficultyHard, 15, 8},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultColorRushConfig()
			cfg.ImbalanceThreshold = 30
			cfg.PenaltyMultiplier = 4
			ApplyDifficultyPreset(&cfg, tt.preset)
			if cfg.ImbalanceThreshold != tt.wantThreshold {
				t.Errorf("ImbalanceThreshold = %v, expected %v", cfg.ImbalanceThreshold, tt.wantThreshold)
			}
			if cfg.PenaltyMultiplier != tt.wantPenalty {
				t.Errorf("PenaltyMultiplier = %v, expected %v", cfg.PenaltyMultiplier, tt.wantPenalty)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestDifficultyPresetTunesDualZone(t *testing.T) {
	tests := []struct {
		preset        DifficultyPreset
		wantNeutral   float64
		wantDampening float64
	}{
		{DifficultyNormal, 20, 0.8},
		{DifficultyEasy, 30, 0.4},
		{DifficultyHard, 10, 1.6},
	}

	for _, tt := range tests {
		cfg := DefaultGhostRunConfig()
		cfg.NeutralThreshold = 20
		ApplyDifficultyPreset(&cfg, tt.preset)
		if cfg.NeutralThreshold != tt.wantNeutral {
			t.Errorf("%s: NeutralThreshold = %v, expected %v", tt.preset, cfg.NeutralThreshold, tt.wantNeutral)
		}
		if cfg.PenaltyDampening != tt.wantDampening {
			t.Errorf("%s: PenaltyDampening = %v, expected %v", tt.preset, cfg.PenaltyDampening, tt.wantDampening)
		}
	}
}

func TestDifficultyPresetKeepsCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuned.yaml")
	data := "imbalance_threshold: 5\npenalty_multiplier: 3\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	tests := []struct {
		preset        DifficultyPreset
		wantThreshold float64
		wantPenalty   float64
	}{
		{DifficultyNormal, 5, 3},
		{DifficultyEasy, 7.5, 1.5},
		{DifficultyHard, 2.5, 6},
	}
	for _, tt := range tests {
		cfg, err := Load(VariantColorRush, path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		ApplyDifficultyPreset(&cfg, tt.preset)
		if cfg.ImbalanceThreshold != tt.wantThreshold || cfg.PenaltyMultiplier != tt.wantPenalty {
			t.Errorf("%s: threshold/penalty = %v/%v, expected %v/%v",
				tt.preset, cfg.ImbalanceThreshold, cfg.PenaltyMultiplier, tt.wantThreshold, tt.wantPenalty)
		}
	}
}

func TestParseDifficultyPreset(t *testing.T) {
	if got := ParseDifficultyPreset("hard"); got != DifficultyHard {
		t.Errorf("ParseDifficultyPreset(hard) = %q, expected hard", got)
	}
	if got := ParseDifficultyPreset("nightmare"); got != "" {
		t.Errorf("ParseDifficultyPreset(nightmare) = %q, expected empty", got)
	}
}
