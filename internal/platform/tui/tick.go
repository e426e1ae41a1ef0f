// Package tui runs the balance runner in a terminal: the Bubble Tea game
// and menu models, the scoreboard, run history recording and the SSH
// server that hosts them.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/balance-runner/internal/core"
)

// TickMsg drives one simulation step.
type TickMsg time.Time

// tickInterval is the wall-clock length of one simulated frame, so the run
// advances in real time at any tick rate.
func tickInterval(cfg core.RuntimeConfig) time.Duration {
	return time.Duration(cfg.FrameDelta() * float64(time.Second))
}

func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(tickInterval(cfg), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
