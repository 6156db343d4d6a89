// Package defrag implements "Defragment Disk": a randomly partitioned 8×8
// grid whose pieces have been scattered and must be packed back in.
package defrag

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
	ID = "defrag"

	messageCompleted = "Puzzle Completed!"

	// sideWidth is the room left and right of the grid for home slots.
	sideWidth = 31
	minHeight = 23
	hudRow    = 1
	homeTop   = 3
)

// pieceColors cycle across generated pieces.
var pieceColors = []core.Color{
	core.ColorBlue,
	core.ColorGreen,
	core.ColorPink,
	core.ColorRed,
	core.ColorYellow,
	core.ColorPurple,
}

// Game implements the Defragment Disk puzzle.
type Game struct {
	env minigame.Env
	cfg config.DefragConfig

	pieces    []*Piece // Draw order, last is topmost
	occupancy *core.Occupancy
	overflow  bool // Some home slots had to be shared

	width, height int
	grid          core.RectF
	cw, ch        float64

	resetBtn minigame.Button
}

func init() {
	registry.Register(registry.PuzzleInfo{
		ID:          ID,
		Title:       "Defragment Disk",
		Description: "Drag the scattered blocks back into the 8×8 disk",
	}, func(env minigame.Env) (minigame.Puzzle, error) {
		return New(env)
	})
}

// New loads the configuration named by env and generates a puzzle.
func New(env minigame.Env) (*Game, error) {
	cfg, err := config.LoadDefrag(env.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(env.Difficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyDefragPreset(&cfg, preset)
	return NewWithConfig(env, cfg)
}

// NewWithConfig generates a puzzle from an explicit configuration.
func NewWithConfig(env minigame.Env, cfg config.DefragConfig) (*Game, error) {
	if cfg.Grid.Size <= 0 || cfg.Grid.CellWidth <= 0 || cfg.Grid.CellHeight <= 0 {
		return nil, fmt.Errorf("defrag: invalid grid %+v", cfg.Grid)
	}

	g := &Game{
		env:       env,
		cfg:       cfg,
		occupancy: core.NewOccupancy(),
		cw:        float64(cfg.Grid.CellWidth),
		ch:        float64(cfg.Grid.CellHeight),
	}

	gridW := cfg.Grid.Size * cfg.Grid.CellWidth
	gridH := cfg.Grid.Size * cfg.Grid.CellHeight
	g.width = gridW + 2*sideWidth
	g.height = max(minHeight, gridH+homeTop+4)
	g.grid = core.RectF{
		X: float64((g.width - gridW) / 2),
		Y: float64((g.height - gridH) / 2),
		W: float64(gridW),
		H: float64(gridH),
	}
	g.resetBtn = minigame.NewButton("Reset", 20, hudRow, core.ColorWhite)

	g.setupPieces()
	return g, nil
}

// setupPieces partitions the grid and assigns shuffled home slots.
func (g *Game) setupPieces() {
	rng := g.env.Rand
	shapes := partition(rng, g.cfg.Grid.Size, g.cfg.Generation)

	g.pieces = make([]*Piece, len(shapes))
	for i, cells := range shapes {
		g.pieces[i] = newPiece(g.env.IDs.Next(), cells, pieceColors[i%len(pieceColors)])
	}

	// Place pieces irrespective of generation order
	order := rng.Perm(len(g.pieces))
	sizes := make([]core.Coord, len(order))
	for i, idx := range order {
		p := g.pieces[idx]
		sizes[i] = core.C(p.cols*g.cfg.Grid.CellWidth, p.rows*g.cfg.Grid.CellHeight)
	}

	gridLeft := int(g.grid.X)
	gridRight := int(g.grid.Right())
	regions := []core.Rect{
		core.NewRect(2, homeTop, gridLeft-4, g.height-homeTop-1),
		core.NewRect(gridRight+2, homeTop, g.width-gridRight-4, g.height-homeTop-1),
	}

	var slots []core.Vec
	slots, g.overflow = shelfLayout(sizes, regions)
	for i, idx := range order {
		g.pieces[idx].Home = slots[i]
		g.pieces[idx].GoHome()
	}
}

// ID returns the registry id.
func (g *Game) ID() string { return ID }

// Size returns the viewport size.
func (g *Game) Size() (int, int) { return g.width, g.height }

// Lifecycle returns the dwell and time limit.
func (g *Game) Lifecycle() config.LifecycleConfig { return g.cfg.Lifecycle }

// Pieces returns the pieces in draw order.
func (g *Game) Pieces() []*Piece { return g.pieces }

// Occupancy returns the grid occupancy.
func (g *Game) Occupancy() *core.Occupancy { return g.occupancy }

// Update checks the win condition.
func (g *Game) Update() {
	if g.occupancy.Len() == g.cfg.Grid.Size*g.cfg.Grid.Size {
		g.env.Finish(true, messageCompleted)
	}
}

// HandleClick grabs the topmost piece under pos.
func (g *Game) HandleClick(pos core.Vec) {
	if g.resetBtn.Contains(pos) {
		g.Reset()
		return
	}

	for i := len(g.pieces) - 1; i >= 0; i-- {
		p := g.pieces[i]
		if !p.Hit(pos, g.cw, g.ch) {
			continue
		}
		// Move to the top of the draw order
		copy(g.pieces[i:], g.pieces[i+1:])
		g.pieces[len(g.pieces)-1] = p
		p.Grabbed = true
		if p.Placed {
			for _, c := range p.GridCells() {
				g.occupancy.Remove(c)
			}
			p.Placed = false
		}
		return
	}
}

// HandleEvent drags, drops and resets.
func (g *Game) HandleEvent(ev minigame.Event) {
	switch ev.Kind {
	case minigame.EventPointerMove:
		for _, p := range g.pieces {
			if p.Grabbed {
				p.Anchor = p.Anchor.Add(ev.Delta)
			}
		}
	case minigame.EventPointerUp:
		for _, p := range g.pieces {
			if p.Grabbed {
				g.drop(p)
			}
		}
	case minigame.EventKey:
		if ev.Action == core.ActionReset {
			g.Reset()
		}
	}
}

// drop releases p and either snaps it onto free grid cells or sends it home.
func (g *Game) drop(p *Piece) {
	p.Grabbed = false

	tol := g.cfg.Grid.SnapTolerance
	if !g.grid.Inflate(tol*g.cw, tol*g.ch).ContainsRect(p.Bounds(g.cw, g.ch)) {
		p.GoHome()
		return
	}

	// Nearest cell center to the reference cell; ties go to the lower column
	ref := p.CellRect(0, g.cw, g.ch)
	refCenter := core.V(ref.X+ref.W/2, ref.Y+ref.H/2)
	best := core.C(0, 0)
	bestDist := math.Inf(1)
	for x := 0; x < g.cfg.Grid.Size; x++ {
		for y := 0; y < g.cfg.Grid.Size; y++ {
			d := core.Distance(refCenter, g.cellCenter(core.C(x, y)))
			if d < bestDist {
				best, bestDist = core.C(x, y), d
			}
		}
	}

	gridPos := best.Add(-p.Cells[0].X, -p.Cells[0].Y)
	for _, c := range p.Cells {
		dest := gridPos.AddCoord(c)
		if !g.inGrid(dest) || g.occupancy.Occupied(dest) {
			p.GoHome()
			return
		}
	}

	p.GridPos = gridPos
	p.Anchor = core.V(g.grid.X+float64(gridPos.X)*g.cw, g.grid.Y+float64(gridPos.Y)*g.ch)
	p.Placed = true
	for _, c := range p.GridCells() {
		g.occupancy.Set(c, p.Color)
	}
}

func (g *Game) cellCenter(c core.Coord) core.Vec {
	return core.V(g.grid.X+(float64(c.X)+0.5)*g.cw, g.grid.Y+(float64(c.Y)+0.5)*g.ch)
}

func (g *Game) inGrid(c core.Coord) bool {
	return c.X >= 0 && c.X < g.cfg.Grid.Size && c.Y >= 0 && c.Y < g.cfg.Grid.Size
}

// Reset clears the grid and sends every piece home.
func (g *Game) Reset() {
	g.occupancy.Clear()
	for _, p := range g.pieces {
		p.GoHome()
	}
}

// Draw renders the grid, the pieces and the HUD.
func (g *Game) Draw(dst *core.Screen) {
	size := g.cfg.Grid.Size
	total := size * size
	dst.DrawText(2, hudRow, fmt.Sprintf("Placed: %d/%d", g.occupancy.Len(), total))
	g.resetBtn.Draw(dst)

	cw, ch := g.cfg.Grid.CellWidth, g.cfg.Grid.CellHeight
	gx, gy := int(g.grid.X), int(g.grid.Y)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			dst.DrawRectColored(core.NewRect(gx+x*cw, gy+y*ch, cw, ch), '░', core.ColorGray)
		}
	}

	for _, p := range g.pieces {
		fill := '█'
		if p.Grabbed {
			fill = '▓'
		}
		ax, ay := int(math.Floor(p.Anchor.X)), int(math.Floor(p.Anchor.Y))
		for _, c := range p.Cells {
			dst.DrawRectColored(core.NewRect(ax+c.X*cw, ay+c.Y*ch, cw, ch), fill, p.Color)
		}
	}
}
