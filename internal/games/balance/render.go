package balance

import (
	"fmt"
	"math"

	"github.com/vovakirdan/balance-runner/internal/core"
	"github.com/vovakirdan/balance-runner/internal/sim"
)

// Visual characters for rendering
const (
	RunnerBody   = '█'
	RunnerHead   = '◆'
	RunnerLeg1   = '╱'
	RunnerLeg2   = '╲'
	RunnerCrouch = '▄'
	GroundChar   = '═'
	HydrantChar  = '▲'
	TrashChar    = '▓'
	DroneChar    = '═'
	GhostHead    = 'o'
	GhostBody    = 'Ω'
	SlotFull     = '■'
	SlotEmpty    = '·'
)

var collectibleFrames = [sim.AnimationFrames]rune{'●', '◉', '○', '◉'}

// viewport maps track units onto the screen. Row 0 holds the HUD and the
// last row the key hints.
type viewport struct {
	w, h           int
	trackW, trackH float64
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x / v.trackW * float64(v.w)))
}

func (v viewport) row(y float64) int {
	return 1 + int(math.Floor(y/v.trackH*float64(v.h-2)))
}

// span returns the cells covered by a track rectangle, at least one each way.
func (v viewport) span(r core.RectF) core.Rect {
	x0, x1 := v.col(r.X), v.col(r.Right())
	y0, y1 := v.row(r.Y), v.row(r.Bottom())
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.run == nil {
		return
	}
	s := g.run.Snapshot()
	v := viewport{w: dst.Width(), h: dst.Height(), trackW: g.cfg.TrackWidth, trackH: g.cfg.TrackHeight}

	if warning(s) {
		dst.DrawBoxColored(core.NewRect(0, 0, dst.Width(), dst.Height()), core.ColorRed)
	}

	// Draw ground
	groundRow := v.row(g.cfg.GroundY)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGray)

	for _, e := range s.Entities {
		g.drawEntity(dst, v, e)
	}
	if s.RivalActive {
		g.drawGhost(dst, v, s.Rival, groundRow)
	}
	g.drawRunner(dst, v, s)
	g.drawHUD(dst, s)

	if g.showDebug {
		g.drawDebug(dst, s)
	}

	switch s.Phase {
	case sim.PhaseStart:
		g.drawCenteredMessage(dst, g.title, fmt.Sprintf("Space to start  |  O obstacles: %s", onOff(s.ObstaclesEnabled)))
	case sim.PhasePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case sim.PhaseGameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d (%s)  |  Press R to restart", s.Score, s.Loss))
	}
}

// warning reports whether the imbalance warning border is shown.
func warning(s sim.Snapshot) bool {
	return s.Speed.Assessment.Imbalanced || s.Speed.Assessment.Zone == sim.ZonePenalty
}

func (g *Game) drawEntity(dst *core.Screen, v viewport, e sim.Entity) {
	r := v.span(e.Body())
	if e.Kind == sim.KindCollectible {
		if e.Collected {
			return
		}
		x, y := r.Center()
		dst.SetColored(x, y, collectibleFrames[e.AnimFrame%sim.AnimationFrames], g.tokenColor(e.Color))
		return
	}

	switch e.Obstacle {
	case sim.ObstacleHydrant:
		dst.DrawRectColored(r, HydrantChar, core.ColorRed)
	case sim.ObstacleTrash:
		dst.DrawRectColored(r, TrashChar, core.ColorGray)
	default:
		dst.DrawRectColored(r, DroneChar, core.ColorCyan)
		dst.SetColored(r.X, r.Y, '◄', core.ColorCyan)
		dst.SetColored(r.Right()-1, r.Y, '►', core.ColorCyan)
	}
}

// drawRunner renders the player character and the token stack above it.
func (g *Game) drawRunner(dst *core.Screen, v viewport, s sim.Snapshot) {
	x := v.col(s.PlayerX) - 1
	feet := v.row(s.PlayerY) - 1

	var top int
	if s.Ducking {
		for dx := 0; dx < 3; dx++ {
			dst.Set(x+dx, feet, RunnerCrouch)
		}
		dst.Set(x+2, feet, RunnerHead)
		top = feet
	} else {
		// Simple runner sprite (3x3)
		//  ◆█
		// ███
		// ╱ ╲
		dst.Set(x+1, feet-2, RunnerHead)
		dst.Set(x+2, feet-2, RunnerBody)
		for dx := 0; dx < 3; dx++ {
			dst.Set(x+dx, feet-1, RunnerBody)
		}
		switch {
		case !s.Grounded:
			// In air - legs tucked
			dst.Set(x, feet, RunnerLeg1)
			dst.Set(x+1, feet, RunnerLeg2)
		case g.legFrame < 5:
			dst.Set(x, feet, RunnerLeg1)
			dst.Set(x+2, feet, RunnerLeg2)
		default:
			dst.Set(x+1, feet, RunnerLeg1)
			dst.Set(x+2, feet, RunnerLeg2)
		}
		top = feet - 2
	}

	// Token stack, oldest on the left
	capacity := g.cfg.QueueCapacity
	sx := core.Clamp(x+1-capacity/2, 0, core.Max(0, dst.Width()-capacity))
	for i := 0; i < capacity; i++ {
		if i < len(s.Queue) {
			dst.SetColored(sx+i, top-2, SlotFull, g.tokenColor(s.Queue[i]))
		} else {
			dst.SetColored(sx+i, top-2, SlotEmpty, core.ColorGray)
		}
	}
}

// drawGhost renders the rival in the color the queue lacks most.
func (g *Game) drawGhost(dst *core.Screen, v viewport, r sim.Rival, groundRow int) {
	x := v.col(r.X)
	c := g.tokenColor(r.Color)
	if r.Phase == sim.RivalApproaching {
		c = core.ColorGray
	}
	dst.SetColored(x, groundRow-2, GhostHead, c)
	dst.SetColored(x, groundRow-1, GhostBody, c)
}

func (g *Game) drawHUD(dst *core.Screen, s sim.Snapshot) {
	dst.DrawText(2, 0, fmt.Sprintf(" Distance: %d ", s.Score))

	speedText := fmt.Sprintf(" Spd: %.0f  World: %.0f ", s.Speed.CharacterSpeed, s.Speed.WorldSpeed)
	dst.DrawText(dst.Width()-len(speedText)-2, 0, speedText)

	if s.ObstaclesEnabled {
		dst.DrawTextColored(dst.Width()/2-5, 0, " obstacles ", core.ColorOrange)
	}

	hint := "Space jump  Down duck  P pause  O obstacles  D debug  M mute  Q quit"
	dst.DrawTextColored(1, dst.Height()-1, hint, core.ColorGray)
}

// drawDebug prints the balance internals in the top-left corner.
func (g *Game) drawDebug(dst *core.Screen, s sim.Snapshot) {
	a := s.Speed.Assessment
	lines := []string{
		fmt.Sprintf("%s  %s  zone=%s", g.variant, g.run.World().Policy().Name(), a.Zone),
		fmt.Sprintf("diff %.1f%%  penalty %.1f  boost %.1f  pm %.2f", a.Difference, a.Penalty, a.Boost, a.PenaltyMultiplier),
		fmt.Sprintf("time bonus %.0f  differential %+.1f%%", s.Speed.TimeBonus, differentialPercent(s.Speed)),
		fmt.Sprintf("x %.0f  tick %d  tension %.2f", s.PlayerX, s.Tick, s.TensionRate),
	}
	if s.NextObstacleIn >= 0 {
		lines = append(lines, fmt.Sprintf("next obstacle %.1fs", s.NextObstacleIn))
	}
	if s.RivalActive {
		lines = append(lines, fmt.Sprintf("rival %s at %.0f", s.Rival.Phase, s.Rival.X))
	}

	y := 2
	for _, l := range lines {
		dst.DrawTextColored(2, y, l, core.ColorBrightWhite)
		y++
	}
	x := 2
	for _, c := range s.Palette {
		text := fmt.Sprintf("%s:%d ", c, s.Counts[c])
		dst.DrawTextColored(x, y, text, g.tokenColor(c))
		x += len(text)
	}
}

// differentialPercent is the character/world speed gap relative to the world.
func differentialPercent(sp sim.SpeedState) float64 {
	if sp.WorldSpeed == 0 {
		return 0
	}
	return sp.Differential() / sp.WorldSpeed * 100
}

// tokenColor resolves the display color of a token.
func (g *Game) tokenColor(t sim.Token) core.Color {
	if name, ok := g.cfg.TokenColors[string(t)]; ok {
		if c, ok := core.ParseColor(name); ok {
			return c
		}
	}
	if c, ok := core.ParseColor(string(t)); ok {
		return c
	}
	return core.ColorWhite
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextCentered(boxY+1, title)
	dst.DrawTextCentered(boxY+3, subtitle)
}
