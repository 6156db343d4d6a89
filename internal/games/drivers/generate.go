package drivers

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
)

// generate builds a planar graph: a ring of nodes on an ellipse joined in a
// cycle, non-crossing chords, and interior nodes linked where they fit.
// Every retry loop is bounded; an exhausted loop leaves fewer edges.
func generate(rng *rand.Rand, cfg config.DriversConfig, center core.Vec) *Graph {
	gc := cfg.Graph
	minRing := max(gc.MinRingNodes, 3)
	maxRing := max(gc.MaxRingNodes, minRing)
	n := minRing + rng.Intn(maxRing-minRing+1)

	g := &Graph{}
	for i := 0; i < n; i++ {
		theta := float64(i) * 2 * math.Pi / float64(n)
		g.Nodes = append(g.Nodes, Node{Pos: core.V(
			center.X+cfg.Nodes.RingRadiusX*math.Cos(theta),
			center.Y+cfg.Nodes.RingRadiusY*math.Sin(theta),
		)})
	}

	// The cycle keeps the graph connected
	for i := 0; i < n; i++ {
		g.Edges = append(g.Edges, Edge{A: i, B: (i + 1) % n})
	}

	// A convex n-gon holds at most n-3 non-crossing chords
	lo := min(4, n-3)
	chords := lo + rng.Intn(n-3-lo+1)
	for attempt := 0; chords > 0 && attempt < gc.ChordAttempts; attempt++ {
		if g.tryAdd(Edge{A: rng.Intn(n), B: rng.Intn(n)}) {
			chords--
		}
	}

	for i := 0; i < gc.InteriorNodes; i++ {
		step := float64(i/2 + 1)
		offset := core.V(3*step, step)
		if i%2 == 1 {
			offset = offset.Scale(-1)
		}
		g.Nodes = append(g.Nodes, Node{Pos: center.Add(offset)})
	}

	for i := 0; i < gc.InteriorNodes; i++ {
		idx := len(g.Nodes) - 1 - i
		for attempt := 0; attempt < gc.InteriorAttempts; attempt++ {
			g.tryAdd(Edge{A: idx, B: rng.Intn(len(g.Nodes))})
		}
	}

	return g
}

// scramble moves every node to a random cell inside region until at least
// one crossing exists. It reports false if attempts ran out first.
func scramble(rng *rand.Rand, g *Graph, region core.Rect, attempts int) bool {
	for attempt := 0; attempt < attempts; attempt++ {
		for i := range g.Nodes {
			g.Nodes[i].Pos = core.V(
				float64(region.X+rng.Intn(max(region.W, 1))),
				float64(region.Y+rng.Intn(max(region.H, 1))),
			)
		}
		if g.CrossingCount() > 0 {
			return true
		}
	}
	return false
}
