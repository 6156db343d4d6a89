package compression

import (
	"fmt"

	"github.com/vovakirdan/tui-puzzles/internal/core"
)

// Board is the well: fixed dimensions plus the cells of locked pieces.
type Board struct {
	Width, Height int
	Cells         *core.Occupancy
}

// NewBoard creates an empty well.
func NewBoard(width, height int) *Board {
	return &Board{Width: width, Height: height, Cells: core.NewOccupancy()}
}

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c core.Coord) bool {
	return c.X >= 0 && c.X < b.Width && c.Y >= 0 && c.Y < b.Height
}

// Fits reports whether every cell is on the board and free.
// Player moves and rotations use this.
func (b *Board) Fits(cells []core.Coord) bool {
	for _, c := range cells {
		if !b.InBounds(c) || b.Cells.Occupied(c) {
			return false
		}
	}
	return true
}

// CanFall reports whether cells may occupy their positions while falling.
// Rows above the board are open so pieces can enter from the top.
func (b *Board) CanFall(cells []core.Coord) bool {
	for _, c := range cells {
		if c.X < 0 || c.X >= b.Width || c.Y >= b.Height || b.Cells.Occupied(c) {
			return false
		}
	}
	return true
}

// Lock copies cells into the well.
func (b *Board) Lock(cells []core.Coord, col core.Color) {
	for _, c := range cells {
		if !b.InBounds(c) {
			panic(fmt.Sprintf("compression: locking cell %v outside the board", c))
		}
		b.Cells.Set(c, col)
	}
}

// ClearRows removes every full row and drops the cells above by the number
// of cleared rows beneath them. Rows are shifted bottom-most first so no
// cell lands on one that has not moved yet. Returns the number of rows
// cleared.
func (b *Board) ClearRows() int {
	full := make(map[int]bool)
	for y := 0; y < b.Height; y++ {
		if b.Cells.RowCount(y) == b.Width {
			full[y] = true
		}
	}
	if len(full) == 0 {
		return 0
	}

	for y := range full {
		for x := 0; x < b.Width; x++ {
			b.Cells.Remove(core.C(x, y))
		}
	}

	drop := 0
	for y := b.Height - 1; y >= 0; y-- {
		if full[y] {
			drop++
			continue
		}
		if drop == 0 {
			continue
		}
		for x := 0; x < b.Width; x++ {
			from := core.C(x, y)
			col, ok := b.Cells.Get(from)
			if !ok {
				continue
			}
			to := core.C(x, y+drop)
			if b.Cells.Occupied(to) {
				panic(fmt.Sprintf("compression: row compaction onto occupied cell %v", to))
			}
			b.Cells.Remove(from)
			b.Cells.Set(to, col)
		}
	}
	return len(full)
}
