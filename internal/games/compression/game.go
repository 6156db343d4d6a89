// Package compression implements "Data Compression": falling four-cell
// blocks are stacked in a narrow well and full rows are cleared until the
// compression target is reached.
package compression

import (
	"fmt"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/minigame"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

const (
	// ID is the registry id of the puzzle.
	ID = "compression"

	messageCompressed = "Data Successfully Compressed!"
	messageOverflow   = "Overflow: Data Corrupted!"

	minWidth = 60
	hudRow   = 1
	boardTop = 2
)

// pieceColors cycle across spawned pieces.
var pieceColors = []core.Color{
	core.ColorBlue,
	core.ColorGreen,
	core.ColorPink,
	core.ColorPurple,
	core.ColorRed,
	core.ColorYellow,
}

var controls = []string{
	"A/D  move",
	"E/Z  rotate",
	"S    drop",
}

// Game implements the Data Compression puzzle.
type Game struct {
	env minigame.Env
	cfg config.CompressionConfig

	board   *Board
	piece   *Piece
	spawned int

	cleared int
	target  int
	done    bool

	lastFall float64

	width, height int
	boardX        int
}

func init() {
	registry.Register(registry.PuzzleInfo{
		ID:          ID,
		Title:       "Data Compression",
		Description: "Stack falling blocks and clear full rows",
	}, func(env minigame.Env) (minigame.Puzzle, error) {
		return New(env)
	})
}

// New loads the configuration named by env and starts a puzzle.
func New(env minigame.Env) (*Game, error) {
	cfg, err := config.LoadCompression(env.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(env.Difficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyCompressionPreset(&cfg, preset)
	return NewWithConfig(env, cfg)
}

// NewWithConfig starts a puzzle from an explicit configuration.
func NewWithConfig(env minigame.Env, cfg config.CompressionConfig) (*Game, error) {
	b := cfg.Board
	if b.Width < 4 || b.Height < 4 || b.CellWidth <= 0 {
		return nil, fmt.Errorf("compression: invalid board %+v", b)
	}
	if b.SpawnX < 0 || b.SpawnX+4 > b.Width {
		return nil, fmt.Errorf("compression: spawn column %d does not fit a %d wide board", b.SpawnX, b.Width)
	}
	if cfg.Gravity.Interval <= 0 {
		return nil, fmt.Errorf("compression: gravity interval must be positive, got %v", cfg.Gravity.Interval)
	}
	if cfg.Target.MinRows <= 0 || cfg.Target.MaxRows < cfg.Target.MinRows {
		return nil, fmt.Errorf("compression: invalid target %+v", cfg.Target)
	}

	g := &Game{
		env:      env,
		cfg:      cfg,
		board:    NewBoard(b.Width, b.Height),
		target:   cfg.Target.MinRows + env.Rand.Intn(cfg.Target.MaxRows-cfg.Target.MinRows+1),
		lastFall: env.Clock.Elapsed(),
	}
	g.width = max(minWidth, b.Width*b.CellWidth+38)
	g.height = b.Height + 4
	g.boardX = (g.width - b.Width*b.CellWidth) / 2

	g.spawn()
	return g, nil
}

// ID returns the registry id.
func (g *Game) ID() string { return ID }

// Size returns the viewport size.
func (g *Game) Size() (int, int) { return g.width, g.height }

// Lifecycle returns the dwell and time limit.
func (g *Game) Lifecycle() config.LifecycleConfig { return g.cfg.Lifecycle }

// Board returns the well.
func (g *Game) Board() *Board { return g.board }

// Piece returns the falling piece.
func (g *Game) Piece() *Piece { return g.piece }

// Cleared returns the number of rows cleared so far.
func (g *Game) Cleared() int { return g.cleared }

// Target returns the number of rows to clear.
func (g *Game) Target() int { return g.target }

// spawn places a new piece at the top of the well. A piece that cannot
// appear overflows the well.
func (g *Game) spawn() {
	shape := Shape(g.env.Rand.Intn(int(shapeCount)))
	g.piece = &Piece{
		ID:     g.env.IDs.Next(),
		Shape:  shape,
		Offset: core.C(g.cfg.Board.SpawnX, 0),
		Color:  pieceColors[g.spawned%len(pieceColors)],
	}
	g.spawned++

	if g.board.Cells.AnyOccupied(g.piece.Cells()) {
		g.end(false, messageOverflow)
	}
}

func (g *Game) end(success bool, message string) {
	g.done = true
	g.env.Finish(success, message)
}

// Update applies gravity once per interval of elapsed time.
func (g *Game) Update() {
	if g.done {
		return
	}
	now := g.env.Clock.Elapsed()
	if now-g.lastFall < g.cfg.Gravity.Interval {
		return
	}
	g.lastFall += g.cfg.Gravity.Interval
	g.fall()
}

// fall moves the piece down one row or locks it where it is.
func (g *Game) fall() {
	next := cellsAt(g.piece.Shape, g.piece.Rotation, g.piece.Offset.Add(0, 1))
	if g.board.CanFall(next) {
		g.piece.Offset = g.piece.Offset.Add(0, 1)
		return
	}
	g.lock()
}

// lock copies the piece into the well, clears rows and spawns the next
// piece unless the puzzle is over.
func (g *Game) lock() {
	p := g.piece
	cells := p.Cells()

	// A piece stuck above the top row never reaches the board
	for _, c := range cells {
		if c.Y < 0 {
			g.end(false, messageOverflow)
			return
		}
	}

	p.Locked = true
	g.board.Lock(cells, p.Color)
	g.cleared += g.board.ClearRows()
	if g.cleared >= g.target {
		g.end(true, messageCompressed)
		return
	}
	g.spawn()
}

// HandleClick does nothing; the puzzle is keyboard driven.
func (g *Game) HandleClick(core.Vec) {}

// HandleEvent moves, rotates and drops the falling piece.
func (g *Game) HandleEvent(ev minigame.Event) {
	if g.done || ev.Kind != minigame.EventKey {
		return
	}
	switch ev.Action {
	case core.ActionLeft:
		g.try(g.piece.Rotation, g.piece.Offset.Add(-1, 0))
	case core.ActionRight:
		g.try(g.piece.Rotation, g.piece.Offset.Add(1, 0))
	case core.ActionRotateCW:
		g.try((g.piece.Rotation+1)%4, g.piece.Offset)
	case core.ActionRotateCCW:
		g.try((g.piece.Rotation+3)%4, g.piece.Offset)
	case core.ActionDrop:
		g.fall()
	}
}

// try moves the piece to the given rotation and offset if it fits.
func (g *Game) try(rotation int, offset core.Coord) bool {
	if !g.board.Fits(cellsAt(g.piece.Shape, rotation, offset)) {
		return false
	}
	g.piece.Rotation = rotation
	g.piece.Offset = offset
	return true
}

// Draw renders the well, the falling piece and the HUD.
func (g *Game) Draw(dst *core.Screen) {
	dst.DrawText(2, hudRow, fmt.Sprintf("Rows to clear: %d", max(g.target-g.cleared, 0)))
	for i, line := range controls {
		dst.DrawTextColored(2, boardTop+2+i, line, core.ColorGray)
	}

	b := g.cfg.Board
	dst.DrawBoxColored(core.NewRect(g.boardX-1, boardTop-1, b.Width*b.CellWidth+2, b.Height+2), core.ColorCyan)

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			sx, sy := g.boardX+x*b.CellWidth, boardTop+y
			if col, ok := g.board.Cells.Get(core.C(x, y)); ok {
				dst.DrawRectColored(core.NewRect(sx, sy, b.CellWidth, 1), '█', col)
			} else {
				dst.SetColored(sx, sy, '·', core.ColorGray)
			}
		}
	}

	if g.piece == nil || g.piece.Locked {
		return
	}
	for _, c := range g.piece.Cells() {
		if c.Y < 0 {
			continue
		}
		dst.DrawRectColored(core.NewRect(g.boardX+c.X*b.CellWidth, boardTop+c.Y, b.CellWidth, 1), '▓', g.piece.Color)
	}
}
