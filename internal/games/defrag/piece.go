package defrag

import (
	"github.com/vovakirdan/tui-puzzles/internal/core"
)

// Piece is a draggable polyomino.
type Piece struct {
	ID      int
	Cells   []core.Coord // Normalized; Cells[0] is the snap reference
	Anchor  core.Vec     // Top-left of the bounding box in puzzle-local units
	Home    core.Vec
	Color   core.Color
	Grabbed bool
	Placed  bool
	GridPos core.Coord // Grid cell under Anchor, valid while Placed

	cols, rows int // Bounding box in cells
}

func newPiece(id int, cells []core.Coord, color core.Color) *Piece {
	p := &Piece{
		ID:    id,
		Cells: normalize(cells),
		Color: color,
	}
	for _, c := range p.Cells {
		p.cols = max(p.cols, c.X+1)
		p.rows = max(p.rows, c.Y+1)
	}
	return p
}

// Bounds returns the bounding box for the given cell size.
func (p *Piece) Bounds(cw, ch float64) core.RectF {
	return core.RectF{X: p.Anchor.X, Y: p.Anchor.Y, W: float64(p.cols) * cw, H: float64(p.rows) * ch}
}

// CellRect returns the on-screen rectangle of cell i.
func (p *Piece) CellRect(i int, cw, ch float64) core.RectF {
	c := p.Cells[i]
	return core.RectF{X: p.Anchor.X + float64(c.X)*cw, Y: p.Anchor.Y + float64(c.Y)*ch, W: cw, H: ch}
}

// Hit reports whether pos lies on one of the piece's cells.
func (p *Piece) Hit(pos core.Vec, cw, ch float64) bool {
	for i := range p.Cells {
		if p.CellRect(i, cw, ch).ContainsVec(pos) {
			return true
		}
	}
	return false
}

// GridCells returns the grid cells covered while placed.
func (p *Piece) GridCells() []core.Coord {
	out := make([]core.Coord, len(p.Cells))
	for i, c := range p.Cells {
		out[i] = p.GridPos.AddCoord(c)
	}
	return out
}

// GoHome drops the piece back at its home slot, unplaced.
func (p *Piece) GoHome() {
	p.Anchor = p.Home
	p.Grabbed = false
	p.Placed = false
}
