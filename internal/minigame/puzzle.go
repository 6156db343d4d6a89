// Package minigame implements the lifecycle every puzzle plugs into.
// A Session wraps a Puzzle, owns the forfeit flow, the ending dwell and the
// optional time limit, and translates host input into puzzle-local events.
package minigame

import (
	"math/rand"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
)

// Clock is the elapsed-time oracle. Elapsed must be monotonic and must not
// advance while the host is paused.
type Clock interface {
	Elapsed() float64
}

// EventKind identifies a raw input event.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventKey
)

// Event is a single raw input event in puzzle-local coordinates.
// Pos is set for pointer-down, Delta for pointer-move, Action for keys.
type Event struct {
	Kind   EventKind
	Pos    core.Vec
	Delta  core.Vec
	Action core.Action
}

// Puzzle is the capability set a concrete puzzle provides to its Session.
// Puzzles never see lifecycle state directly; they report completion
// through Env.Finish and the Session stops feeding them afterwards.
type Puzzle interface {
	// ID returns the registry id, e.g. "defrag".
	ID() string

	// Size returns the puzzle viewport in terminal cells.
	Size() (w, h int)

	// Lifecycle returns the dwell and time limit for this instance.
	Lifecycle() config.LifecycleConfig

	// Update advances the puzzle by one frame.
	Update()

	// HandleClick receives a pointer-down the lifecycle buttons did not use.
	HandleClick(pos core.Vec)

	// HandleEvent receives pointer-move, pointer-up and gameplay keys.
	HandleEvent(ev Event)

	// Draw renders the puzzle into a cleared screen of Size().
	Draw(dst *core.Screen)
}

// Env is everything a puzzle gets at construction. No puzzle reaches for
// globals; clock, randomness and the finish callback all come from here.
type Env struct {
	Clock      Clock
	Rand       *rand.Rand
	Finish     func(success bool, message string)
	IDs        *Sequence
	ConfigPath string
	Difficulty string
}

// Builder constructs a puzzle from its environment.
type Builder func(env Env) (Puzzle, error)

// Sequence hands out monotonically increasing ids, starting at 1.
type Sequence struct {
	last int
}

// Next returns the next id.
func (s *Sequence) Next() int {
	s.last++
	return s.last
}
