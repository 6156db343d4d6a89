package drivers

import (
	"github.com/vovakirdan/tui-puzzles/internal/core"
)

// Node is a draggable graph vertex.
type Node struct {
	Pos     core.Vec
	Grabbed bool
}

// Edge joins two node indices. Edges are undirected.
type Edge struct {
	A, B int
}

// Graph is a set of nodes with fixed edges. Only node positions change
// after generation.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// HasEdge reports whether a and b are already joined, in either direction.
func (g *Graph) HasEdge(a, b int) bool {
	for _, e := range g.Edges {
		if (e.A == a && e.B == b) || (e.A == b && e.B == a) {
			return true
		}
	}
	return false
}

// Segment returns the endpoints of e.
func (g *Graph) Segment(e Edge) (core.Vec, core.Vec) {
	return g.Nodes[e.A].Pos, g.Nodes[e.B].Pos
}

// Crossings returns every pairwise edge crossing, recomputed from scratch.
func (g *Graph) Crossings() []core.Vec {
	var points []core.Vec
	for i := 0; i < len(g.Edges); i++ {
		p1, p2 := g.Segment(g.Edges[i])
		for j := i + 1; j < len(g.Edges); j++ {
			p3, p4 := g.Segment(g.Edges[j])
			if pt, ok := core.SegmentIntersection(p1, p2, p3, p4); ok {
				points = append(points, pt)
			}
		}
	}
	return points
}

// CrossingCount returns len(Crossings()).
func (g *Graph) CrossingCount() int {
	return len(g.Crossings())
}

// crossesAny reports whether e would cross any existing edge. The existing
// edge goes first, matching the pair order Crossings uses once e is added.
func (g *Graph) crossesAny(e Edge) bool {
	p3, p4 := g.Segment(e)
	for _, other := range g.Edges {
		p1, p2 := g.Segment(other)
		if _, ok := core.SegmentIntersection(p1, p2, p3, p4); ok {
			return true
		}
	}
	return false
}

// tryAdd appends e unless it is a self-loop, a duplicate, or crosses an
// existing edge.
func (g *Graph) tryAdd(e Edge) bool {
	if e.A == e.B || g.HasEdge(e.A, e.B) || g.crossesAny(e) {
		return false
	}
	g.Edges = append(g.Edges, e)
	return true
}
