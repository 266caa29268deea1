// Package registry lets games register factories from init() so the CLI,
// menu and SSH server can list and create them by ID.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Game is the interface the terminal host drives.
// Implementations hold pure game logic; the host owns input mapping, timing
// and drawing to the terminal.
type Game interface {
	// ID is the stable identifier used by the CLI and run storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset prepares a fresh game for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick. elapsed is the wall-clock time since the
	// previous tick; real-time clocks drain by it rather than by tick count.
	Step(in core.InputFrame, elapsed time.Duration) core.StepResult

	// Render draws into dst. The buffer may hold the previous frame.
	Render(dst *core.Screen)

	// State reports progress, pause and whether a run is active.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a game ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
