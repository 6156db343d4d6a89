// Package registry provides a global registry for puzzle factories.
// Puzzles register themselves in init() functions, allowing the platform
// to discover and instantiate puzzles without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-puzzles/internal/minigame"
)

// PuzzleInfo contains metadata about a registered puzzle.
type PuzzleInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new puzzle instance from its environment.
type Factory = minigame.Builder

type entry struct {
	info    PuzzleInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a puzzle factory to the registry.
// Typically called from a puzzle's init() function.
// Panics if a puzzle with the same ID is already registered.
func Register(info PuzzleInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: puzzle registered without an id")
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: puzzle %q already registered", info.ID))
	}

	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered puzzles, sorted by ID.
func List() []PuzzleInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PuzzleInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the factory registered under id.
// Returns an error if the puzzle ID is not registered.
func Lookup(id string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown puzzle %q", id)
	}
	return e.factory, nil
}

// Info returns the metadata registered under id.
func Info(id string) (PuzzleInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new puzzle by its ID.
func Create(id string, env minigame.Env) (minigame.Puzzle, error) {
	f, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return f(env)
}

// Exists checks if a puzzle with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
