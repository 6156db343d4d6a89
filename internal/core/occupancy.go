package core

import (
	"fmt"
	"sort"
)

// Coord is a discrete grid cell address (column, row).
// X increases to the right, Y increases downward.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// AddCoord returns the sum of two coordinates.
func (c Coord) AddCoord(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Occupancy is a sparse map from grid cell to the color of whatever
// permanently fills it. A cell is free iff it is absent.
type Occupancy struct {
	cells map[Coord]Color
}

// NewOccupancy creates an empty occupancy model.
func NewOccupancy() *Occupancy {
	return &Occupancy{cells: make(map[Coord]Color)}
}

// Occupied reports whether c is filled.
func (o *Occupancy) Occupied(c Coord) bool {
	_, ok := o.cells[c]
	return ok
}

// Get returns the tag stored at c.
func (o *Occupancy) Get(c Coord) (Color, bool) {
	col, ok := o.cells[c]
	return col, ok
}

// Set fills c with the given tag, replacing any previous tag.
func (o *Occupancy) Set(c Coord, col Color) {
	o.cells[c] = col
}

// Remove frees c. Removing a free cell is a no-op.
func (o *Occupancy) Remove(c Coord) {
	delete(o.cells, c)
}

// AnyOccupied reports whether at least one of cells is filled.
func (o *Occupancy) AnyOccupied(cells []Coord) bool {
	for _, c := range cells {
		if o.Occupied(c) {
			return true
		}
	}
	return false
}

// Len returns the number of filled cells.
func (o *Occupancy) Len() int {
	return len(o.cells)
}

// Clear frees every cell.
func (o *Occupancy) Clear() {
	for c := range o.cells {
		delete(o.cells, c)
	}
}

// RowCount returns the number of filled cells in row y.
func (o *Occupancy) RowCount(y int) int {
	n := 0
	for c := range o.cells {
		if c.Y == y {
			n++
		}
	}
	return n
}

// Coords returns all filled cells ordered by row then column.
func (o *Occupancy) Coords() []Coord {
	coords := make([]Coord, 0, len(o.cells))
	for c := range o.cells {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}
