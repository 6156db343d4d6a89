package defrag

import (
	"math/rand"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
)

var neighbours = [4]core.Coord{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// partition splits a size×size grid into random polyominoes that cover
// every cell exactly once. Each shape keeps its seed cell first.
//
// A growth step proposes up to GrowthRetries neighbours of a random member
// and is skipped if none are free, so single cells are valid shapes.
func partition(rng *rand.Rand, size int, gen config.DefragGeneration) [][]core.Coord {
	unallocated := make([]core.Coord, 0, size*size)
	free := make(map[core.Coord]bool, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			c := core.C(x, y)
			unallocated = append(unallocated, c)
			free[c] = true
		}
	}

	take := func(c core.Coord) {
		delete(free, c)
		for i, u := range unallocated {
			if u == c {
				unallocated = append(unallocated[:i], unallocated[i+1:]...)
				return
			}
		}
	}

	minGrowth := max(gen.MinGrowth, 0)
	maxGrowth := max(gen.MaxGrowth, minGrowth)

	var shapes [][]core.Coord
	for len(unallocated) > 0 {
		seed := unallocated[rng.Intn(len(unallocated))]
		take(seed)
		cells := []core.Coord{seed}

		steps := minGrowth + rng.Intn(maxGrowth-minGrowth+1)
		for s := 0; s < steps; s++ {
			from := cells[rng.Intn(len(cells))]
			for attempt := 0; attempt < gen.GrowthRetries; attempt++ {
				next := from.AddCoord(neighbours[rng.Intn(len(neighbours))])
				if !free[next] {
					continue
				}
				take(next)
				cells = append(cells, next)
				break
			}
		}
		shapes = append(shapes, cells)
	}
	return shapes
}

// normalize shifts cells so the minimum column and row are both zero,
// keeping their order.
func normalize(cells []core.Coord) []core.Coord {
	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}
	out := make([]core.Coord, len(cells))
	for i, c := range cells {
		out[i] = core.C(c.X-minX, c.Y-minY)
	}
	return out
}

// shelfLayout assigns each box a top-left position inside regions, filling
// each region left to right in rows ("shelves") before moving on. Boxes that
// do not fit anywhere share the last assigned slot. The returned flag
// reports whether that happened.
func shelfLayout(sizes []core.Coord, regions []core.Rect) ([]core.Vec, bool) {
	slots := make([]core.Vec, len(sizes))
	if len(regions) == 0 {
		return slots, len(sizes) > 0
	}

	r := 0
	x, y := regions[0].X, regions[0].Y
	shelfH := 0
	last := core.V(float64(x), float64(y))
	overflow := false

	for i, sz := range sizes {
		placed := false
		for r < len(regions) {
			reg := regions[r]
			if x > reg.X && x+sz.X > reg.Right() {
				x = reg.X
				y += shelfH + 1
				shelfH = 0
			}
			if x+sz.X <= reg.Right() && y+sz.Y <= reg.Bottom() {
				placed = true
				break
			}
			r++
			if r < len(regions) {
				x, y = regions[r].X, regions[r].Y
				shelfH = 0
			}
		}

		if !placed {
			slots[i] = last
			overflow = true
			continue
		}

		slots[i] = core.V(float64(x), float64(y))
		last = slots[i]
		x += sz.X + 1
		shelfH = max(shelfH, sz.Y)
	}
	return slots, overflow
}
