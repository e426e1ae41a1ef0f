package sim

import (
	"testing"

	"github.com/vovakirdan/balance-runner/internal/config"
)

func newTestWorld(t *testing.T, cfg config.RunnerConfig) *World {
	t.Helper()
	w, err := NewWorld(cfg, 42)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	return w
}

func fillQueue(w *World, tokens ...Token) {
	w.Queue.Reset()
	for _, tok := range tokens {
		w.Queue.Enqueue(tok)
	}
}

func repeat(tok Token, n int) []Token {
	out := make([]Token, n)
	for i := range out {
		out[i] = tok
	}
	return out
}

func TestRecomputeClampsSpeeds(t *testing.T) {
	tests := []struct {
		name      string
		cfg       func() config.RunnerConfig
		timeBonus float64
		tokens    []Token
	}{
		{"huge bonus", config.DefaultColorRushConfig, 1e9, repeat("red", 13)},
		{"huge penalty", func() config.RunnerConfig {
			c := config.DefaultColorRushConfig()
			c.PenaltyMultiplier = 1e6
			return c
		}, 0, append(repeat("red", 12), "blue")},
		{"negative bonus", config.DefaultColorRushConfig, -1e9, nil},
		{"dual zone penalty", config.DefaultGhostRunConfig, 0, repeat("money", 13)},
		{"dual zone boost at cap", config.DefaultGhostRunConfig, 1e6, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg()
			w := newTestWorld(t, cfg)
			if tt.tokens != nil {
				fillQueue(w, tt.tokens...)
			}
			w.TimeBonus = tt.timeBonus
			s := w.speedCtl.Recompute(w)
			for name, v := range map[string]float64{"character": s.CharacterSpeed, "world": s.WorldSpeed} {
				if v < 0 || v > cfg.MaxSpeed {
					t.Errorf("%s speed = %v, expected within [0, %v]", name, v, cfg.MaxSpeed)
				}
			}
		})
	}
}

func TestRecomputeStrict(t *testing.T) {
	w := newTestWorld(t, config.DefaultColorRushConfig())
	fillQueue(w, append(repeat("red", 10), "blue", "green", "yellow")...)
	w.TimeBonus = 40

	s := w.speedCtl.Recompute(w)
	if !near(s.WorldSpeed, 340, eps) {
		t.Errorf("WorldSpeed = %v, expected 340", s.WorldSpeed)
	}
	want := 340 - (900.0/13 - 10)
	if !near(s.CharacterSpeed, want, 1e-6) {
		t.Errorf("CharacterSpeed = %v, expected %v", s.CharacterSpeed, want)
	}
	if !near(s.Adjustment, -(900.0/13 - 10), 1e-6) {
		t.Errorf("Adjustment = %v, expected %v", s.Adjustment, -(900.0/13 - 10))
	}
	if s.TimeBonus != 40 {
		t.Errorf("TimeBonus = %v, expected 40", s.TimeBonus)
	}
}

func TestRecomputeUnitBonusIsShared(t *testing.T) {
	cfg := config.DefaultColorRushConfig()
	cfg.SpeedBonusPerUnit = 2
	w := newTestWorld(t, cfg)
	fillQueue(w, repeat("red", 5)...)

	s := w.speedCtl.Recompute(w)
	if !near(s.CharacterSpeed, 310, eps) || !near(s.WorldSpeed, 310, eps) {
		t.Errorf("speeds = (%v, %v), expected (310, 310)", s.CharacterSpeed, s.WorldSpeed)
	}
}

func TestRecomputeEdgeCap(t *testing.T) {
	w := newTestWorld(t, config.DefaultGhostRunConfig())
	// Seeded balanced queue: full boost

	w.PlayerX = 600
	s := w.speedCtl.Recompute(w)
	if !near(s.CharacterSpeed, 315, eps) || s.EdgeCapped {
		t.Errorf("below edge: CharacterSpeed = %v, EdgeCapped = %v, expected 315, false", s.CharacterSpeed, s.EdgeCapped)
	}

	w.PlayerX = 640
	s = w.speedCtl.Recompute(w)
	if s.CharacterSpeed != s.WorldSpeed || !s.EdgeCapped {
		t.Errorf("at edge: CharacterSpeed = %v, WorldSpeed = %v, EdgeCapped = %v", s.CharacterSpeed, s.WorldSpeed, s.EdgeCapped)
	}

	// A penalized player is never raised by the cap
	fillQueue(w, repeat("money", 12)...)
	s = w.speedCtl.Recompute(w)
	if !near(s.CharacterSpeed, 60, 1e-6) || s.EdgeCapped {
		t.Errorf("penalized at edge: CharacterSpeed = %v, EdgeCapped = %v, expected 60, false", s.CharacterSpeed, s.EdgeCapped)
	}
}

func TestTensionRate(t *testing.T) {
	tests := []struct {
		char, world float64
		want        float64
	}{
		{300, 300, 1.25},
		{300, 500, 2.5},
		{0, 800, 3},
		{400, 300, 1},
	}
	for _, tt := range tests {
		got := TensionRate(SpeedState{CharacterSpeed: tt.char, WorldSpeed: tt.world})
		if !near(got, tt.want, eps) {
			t.Errorf("TensionRate(%v, %v) = %v, expected %v", tt.char, tt.world, got, tt.want)
		}
	}
}
