package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/balance-runner/internal/config"
	"github.com/vovakirdan/balance-runner/internal/core"
	"github.com/vovakirdan/balance-runner/internal/games/balance"
	"github.com/vovakirdan/balance-runner/internal/registry"
	"github.com/vovakirdan/balance-runner/internal/sim"
	"github.com/vovakirdan/balance-runner/internal/storage"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	state  core.GameState
	resets []core.RuntimeConfig
	frames []core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
	g.state = core.GameState{}
}
func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a := range in.Actions {
		frame.Set(a)
	}
	g.frames = append(g.frames, frame)
	return core.StepResult{State: g.state}
}

func testConfig(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model
}

func TestModelForwardsActions(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig(5), nil)

	m = update(t, m, runeKey('o'))
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, TickMsg{})

	if len(game.frames) != 1 {
		t.Fatalf("game stepped %d times, expected 1", len(game.frames))
	}
	f := game.frames[0]
	if !f.Has(core.ActionToggleObstacles) || !f.Has(core.ActionJump) {
		t.Errorf("frame = %v, expected obstacles toggle and jump", f.Actions)
	}

	// Input is cleared after each tick
	m = update(t, m, TickMsg{})
	if len(game.frames[1].Actions) != 0 {
		t.Errorf("second frame = %v, expected no actions", game.frames[1].Actions)
	}
}

func TestModelBack(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig(5), nil)

	// Back while running pauses
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back while running should not leave the game")
	}
	m = update(t, m, TickMsg{})
	if !game.frames[0].Has(core.ActionPause) {
		t.Error("back while running should pause")
	}

	game.state.Paused = true
	m = update(t, m, TickMsg{})

	embedded := m
	embedded.embedded = true
	embedded = update(t, embedded, tea.KeyMsg{Type: tea.KeyEsc})
	if !embedded.BackToMenu() || embedded.IsQuitting() {
		t.Errorf("embedded back = menu %v quit %v, expected menu only", embedded.BackToMenu(), embedded.IsQuitting())
	}

	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() || !m.IsQuitting() {
		t.Errorf("standalone back = menu %v quit %v, expected both", m.BackToMenu(), m.IsQuitting())
	}
}

func TestModelMuteWithoutAudio(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig(5), nil)
	m = update(t, m, runeKey('m'))
	m = update(t, m, TickMsg{})
	if game.frames[0].Has(core.ActionMute) {
		t.Error("mute is handled by the model, not the game")
	}
}

func TestModelRestart(t *testing.T) {
	t.Run("ignored while running", func(t *testing.T) {
		game := &fakeGame{}
		m := NewModel(game, nil, testConfig(5), nil)
		m = update(t, m, runeKey('r'))
		m = update(t, m, TickMsg{})
		if game.frames[0].Has(core.ActionRestart) {
			t.Error("restart should only reach the game after game over")
		}
	})

	t.Run("fixed seed replays through the game", func(t *testing.T) {
		game := &fakeGame{state: core.GameState{GameOver: true}}
		m := NewModel(game, nil, testConfig(5), nil)
		m = update(t, m, TickMsg{})
		m = update(t, m, runeKey('r'))
		m = update(t, m, TickMsg{})
		if len(game.resets) != 0 {
			t.Errorf("game reset %d times, expected the game to restart itself", len(game.resets))
		}
		if !game.frames[1].Has(core.ActionRestart) {
			t.Error("restart should be forwarded")
		}
	})

	t.Run("random seed starts a fresh track", func(t *testing.T) {
		game := &fakeGame{state: core.GameState{GameOver: true}}
		m := NewModel(game, nil, testConfig(0), nil)
		m = update(t, m, TickMsg{})
		m = update(t, m, runeKey('r'))
		m = update(t, m, TickMsg{})
		if len(game.resets) != 1 {
			t.Fatalf("game reset %d times, expected 1", len(game.resets))
		}
		if game.resets[0].Seed == 0 {
			t.Error("reset should use a time-based seed")
		}
		last := game.frames[len(game.frames)-1]
		if last.Has(core.ActionConfirm) || last.Has(core.ActionRestart) {
			t.Error("the new run should wait on the start screen")
		}
	})
}

func TestModelResizeKeepsRun(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, nil, testConfig(5), nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if len(game.resets) != 0 {
		t.Error("resize should not reset the run")
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 120x40", m.screen.Width(), m.screen.Height())
	}
}

func TestHistorySinkRecordsFinishedRuns(t *testing.T) {
	store := openTestStore(t)
	g, err := registry.Create(config.VariantColorRush)
	if err != nil {
		t.Fatalf("registry.Create() error: %v", err)
	}
	game := g.(*balance.Game)

	cfg := testConfig(7)
	m := NewModel(game, store, cfg, nil)
	m.Init()

	start := core.NewInputFrame()
	start.Set(core.ActionConfirm)
	game.Step(start)
	for i := 0; i < 60; i++ {
		game.Step(core.NewInputFrame())
	}
	score := game.State().Score
	game.Run().Fall()

	runs, err := store.RecentRuns(config.VariantColorRush, 10)
	if err != nil {
		t.Fatalf("RecentRuns() error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("RecentRuns() = %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.RunID != game.Run().ID() || r.Seed != 7 || r.LossReason != sim.LossFell.String() || r.Score != score {
		t.Errorf("saved run = %+v, expected id %v seed 7 loss fell score %d", r, game.Run().ID(), score)
	}

	scores, err := store.TopScores(config.VariantColorRush, 10)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != score {
		t.Errorf("TopScores() = %+v, expected one entry of %d", scores, score)
	}
}

func TestHistorySinkSkipsZeroScores(t *testing.T) {
	store := openTestStore(t)
	h := NewHistorySink(store, config.VariantGhostRun, nil)
	h.Handle(sim.PhaseChanged{From: sim.PhaseStart, To: sim.PhasePlaying})
	h.Handle(sim.GameOver{Reason: sim.LossPushedOff})

	if best, _ := store.HighScore(config.VariantGhostRun); best != 0 {
		t.Errorf("HighScore() = %d, expected no score saved", best)
	}
	runs, _ := store.RecentRuns(config.VariantGhostRun, 10)
	if len(runs) != 1 || runs[0].LossReason != "pushed-off" {
		t.Errorf("RecentRuns() = %+v, expected one pushed-off run", runs)
	}
}
