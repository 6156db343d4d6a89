// Package drivers implements "Organise Drivers": a planar graph whose nodes
// have been scrambled until links cross. Drag nodes until no link crosses
// another.
package drivers

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/minigame"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

const (
	// ID is the registry id of the puzzle.
	ID = "drivers"

	messageCompleted = "Puzzle Completed!"
	instruction      = "Move the nodes to remove line crossings!"

	hudRow = 1

	// generateRounds bounds how many graphs are tried when none scrambles.
	generateRounds = 5
)

// Game implements the Organise Drivers puzzle.
type Game struct {
	env minigame.Env
	cfg config.DriversConfig

	graph     *Graph
	crossings []core.Vec

	width, height int
}

func init() {
	registry.Register(registry.PuzzleInfo{
		ID:          ID,
		Title:       "Organise Drivers",
		Description: "Untangle the driver graph so no two links cross",
	}, func(env minigame.Env) (minigame.Puzzle, error) {
		return New(env)
	})
}

// New loads the configuration named by env and generates a puzzle.
func New(env minigame.Env) (*Game, error) {
	cfg, err := config.LoadDrivers(env.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(env.Difficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyDriversPreset(&cfg, preset)
	return NewWithConfig(env, cfg)
}

// NewWithConfig generates a puzzle from an explicit configuration.
func NewWithConfig(env minigame.Env, cfg config.DriversConfig) (*Game, error) {
	if cfg.Nodes.RingRadiusX <= 0 || cfg.Nodes.RingRadiusY <= 0 {
		return nil, fmt.Errorf("drivers: invalid ring radius %+v", cfg.Nodes)
	}

	g := &Game{
		env:    env,
		cfg:    cfg,
		width:  int(math.Ceil(2*cfg.Nodes.RingRadiusX)) + 18,
		height: int(math.Ceil(2*cfg.Nodes.RingRadiusY)) + 6,
	}

	// Some graphs cannot be drawn tangled inside the region; try a new one
	scrambled := false
	for round := 0; round < generateRounds && !scrambled; round++ {
		g.graph = generate(env.Rand, cfg, g.center())
		scrambled = scramble(env.Rand, g.graph, g.scrambleRegion(), cfg.Graph.ScrambleAttempts)
	}
	if !scrambled {
		return nil, fmt.Errorf("drivers: no crossing layout after %d graphs of %d attempts",
			generateRounds, cfg.Graph.ScrambleAttempts)
	}
	g.crossings = g.graph.Crossings()
	return g, nil
}

func (g *Game) center() core.Vec {
	return core.V(float64(g.width/2), float64(g.height/2))
}

// scrambleRegion is the central 10%-90% of the viewport, kept clear of the
// HUD rows and the border.
func (g *Game) scrambleRegion() core.Rect {
	x0 := max(int(math.Ceil(0.1*float64(g.width))), 1)
	y0 := max(int(math.Ceil(0.1*float64(g.height))), hudRow+2)
	x1 := min(int(0.9*float64(g.width)), g.width-2)
	y1 := min(int(0.9*float64(g.height)), g.height-3)
	return core.NewRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
}

// clampToBoard keeps a dragged node inside the border and below the HUD.
func (g *Game) clampToBoard(p core.Vec) core.Vec {
	return core.V(
		core.ClampF(p.X, 1, float64(g.width-2)),
		core.ClampF(p.Y, hudRow+1, float64(g.height-2)),
	)
}

// ID returns the registry id.
func (g *Game) ID() string { return ID }

// Size returns the viewport size.
func (g *Game) Size() (int, int) { return g.width, g.height }

// Lifecycle returns the dwell and time limit.
func (g *Game) Lifecycle() config.LifecycleConfig { return g.cfg.Lifecycle }

// Graph returns the live graph.
func (g *Game) Graph() *Graph { return g.graph }

// Crossings returns the number of crossings found on the last update.
func (g *Game) Crossings() int { return len(g.crossings) }

// Update recomputes every crossing from scratch.
func (g *Game) Update() {
	g.crossings = g.graph.Crossings()
}

// HandleClick grabs the topmost node within reach of pos.
func (g *Game) HandleClick(pos core.Vec) {
	for i := len(g.graph.Nodes) - 1; i >= 0; i-- {
		n := &g.graph.Nodes[i]
		if core.Distance(pos, n.Pos) <= g.cfg.Nodes.GrabRadius {
			n.Grabbed = true
			return
		}
	}
}

// HandleEvent drags and releases nodes.
func (g *Game) HandleEvent(ev minigame.Event) {
	switch ev.Kind {
	case minigame.EventPointerMove:
		for i := range g.graph.Nodes {
			if g.graph.Nodes[i].Grabbed {
				g.graph.Nodes[i].Pos = g.clampToBoard(g.graph.Nodes[i].Pos.Add(ev.Delta))
			}
		}
	case minigame.EventPointerUp:
		for i := range g.graph.Nodes {
			g.graph.Nodes[i].Grabbed = false
		}
		g.crossings = g.graph.Crossings()
		if len(g.crossings) == 0 {
			g.env.Finish(true, messageCompleted)
		}
	}
}

// Draw renders links, crossing markers, nodes and the HUD.
func (g *Game) Draw(dst *core.Screen) {
	for _, e := range g.graph.Edges {
		a, b := g.graph.Segment(e)
		dst.DrawLine(a, b, '·', core.ColorCyan)
	}

	for _, pt := range g.crossings {
		dst.SetColored(int(math.Floor(pt.X)), int(math.Floor(pt.Y)), '✕', core.ColorRed)
	}

	nodeColor := core.ColorYellow
	if len(g.crossings) == 0 {
		nodeColor = core.ColorGreen
	}
	for _, n := range g.graph.Nodes {
		r, c := '●', nodeColor
		if n.Grabbed {
			r, c = '◉', core.ColorBrightWhite
		}
		dst.SetColored(int(math.Floor(n.Pos.X)), int(math.Floor(n.Pos.Y)), r, c)
	}

	dst.DrawText(2, hudRow, fmt.Sprintf("Line Crossings: %d", len(g.crossings)))
	x := (g.width - len([]rune(instruction))) / 2
	dst.DrawTextColored(x, g.height-2, instruction, core.ColorGray)
}
