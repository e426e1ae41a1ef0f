package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/balance-runner/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "plain")
	s.DrawTextColored(6, 0, "red", core.ColorRed)
	s.DrawHLine(0, 2, 12, '=', core.ColorGray)
	s.SetColored(4, 1, '●', core.Color(99))

	// Tests run without a terminal, so styles render as plain text
	if got, want := RenderScreen(s), s.String(); got != want {
		t.Errorf("RenderScreen() = %q, expected %q", got, want)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	if got := styleFor(core.Color(99)).Render("x"); got != "x" {
		t.Errorf("styleFor(unknown).Render() = %q, expected plain text", got)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate     int
		expected time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
	}
	for _, tt := range tests {
		cfg := core.DefaultConfig()
		cfg.TickRate = tt.rate
		got := tickInterval(cfg)
		if diff := got - tt.expected; diff < -time.Microsecond || diff > time.Microsecond {
			t.Errorf("tickInterval(%d) = %v, expected %v", tt.rate, got, tt.expected)
		}
	}
}
