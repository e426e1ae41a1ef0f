// Package registry lets runner variants announce themselves from init()
// so the CLI, menu and SSH server can list and build them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/balance-runner/internal/core"
)

// Game is one playable variant as seen by the platform. It never touches
// Bubble Tea: the platform maps keys to actions, drives ticks and paints
// the screen buffer.
type Game interface {
	ID() string
	Title() string

	// Reset builds a fresh run in its start phase. RuntimeConfig carries
	// the tick rate and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions pressed since the last.
	Step(in core.InputFrame) core.StepResult

	// Render paints the run into dst.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID      string
	Title   string
	Tagline string // one line shown next to the title in listings
}

// Factory builds a new, not yet reset, game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a variant. It panics on an empty or duplicate ID, which
// only happens through a programming error in an init function.
func Register(info GameInfo, f Factory) {
	if info.ID == "" || f == nil {
		panic("registry: variant needs an ID and a factory")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[info.ID]; dup {
		panic(fmt.Sprintf("registry: variant %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns the registered variants ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns the metadata of a variant.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Create builds a new game for the variant id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
