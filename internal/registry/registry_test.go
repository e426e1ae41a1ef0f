package registry

import (
	"testing"

	"github.com/vovakirdan/balance-runner/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return "Stub" }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

// registerStub registers a stub variant and removes it when the test ends.
func registerStub(t *testing.T, info GameInfo) {
	t.Helper()
	Register(info, func() Game { return stubGame{id: info.ID} })
	t.Cleanup(func() {
		mu.Lock()
		delete(entries, info.ID)
		mu.Unlock()
	})
}

func TestRegisterAndCreate(t *testing.T) {
	registerStub(t, GameInfo{ID: "zz-stub", Tagline: "test only"})

	info, ok := Lookup("zz-stub")
	if !ok {
		t.Fatal("Lookup() did not find the registered variant")
	}
	if info.Title != "zz-stub" || info.Tagline != "test only" {
		t.Errorf("Lookup() = %+v, expected the ID as fallback title", info)
	}

	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("Create().ID() = %q, expected zz-stub", g.ID())
	}
	if _, err := Create("missing"); err == nil {
		t.Error("Create(missing) should fail")
	}
	if Exists("missing") {
		t.Error("Exists(missing) = true, expected false")
	}
}

func TestListIsSorted(t *testing.T) {
	registerStub(t, GameInfo{ID: "zb-stub"})
	registerStub(t, GameInfo{ID: "za-stub"})

	list := List()
	if len(list) < 2 {
		t.Fatalf("List() = %v, expected both stubs", list)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted at %d: %q before %q", i, list[i-1].ID, list[i].ID)
		}
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		info GameInfo
		f    Factory
	}{
		{"duplicate", GameInfo{ID: "zc-stub"}, func() Game { return stubGame{} }},
		{"empty id", GameInfo{}, func() Game { return stubGame{} }},
		{"nil factory", GameInfo{ID: "zd-stub"}, nil},
	}
	registerStub(t, GameInfo{ID: "zc-stub"})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%+v) should panic", tt.info)
				}
			}()
			Register(tt.info, tt.f)
		})
	}
}
