// Package connect answers electrical reachability questions over a
// schematic's wires and junctions. Two points are the same electrical
// node only when their coordinates match exactly; the document's grid
// snapping is what makes "same point" mean "identical coordinates".
package connect

import (
	"sort"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
)

// Graph is the electrical adjacency structure: wire endpoints and
// junction positions are nodes, wire segments are edges. It holds no
// entity references and must be rebuilt after any document mutation.
type Graph struct {
	adj map[geometry.Point][]geometry.Point
}

// NewGraph creates an empty connectivity graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[geometry.Point][]geometry.Point)}
}

// AddNode registers a point with no edges, such as a junction that no
// wire reaches yet. Adding an existing node is a no-op.
func (g *Graph) AddNode(p geometry.Point) {
	if _, ok := g.adj[p]; !ok {
		g.adj[p] = nil
	}
}

// AddSegment adds an undirected edge between the two endpoints of a
// wire segment. Zero-length segments are ignored.
func (g *Graph) AddSegment(a, b geometry.Point) {
	if a == b {
		return
	}
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
}

// HasNode reports whether p is a node of the graph.
func (g *Graph) HasNode(p geometry.Point) bool {
	_, ok := g.adj[p]
	return ok
}

// DirectlyConnected reports whether a single wire segment joins a and
// b.
func (g *Graph) DirectlyConnected(a, b geometry.Point) bool {
	for _, n := range g.adj[a] {
		if n == b {
			return true
		}
	}
	return false
}

// Connected reports whether a and b are transitively joined through
// wire segments. A point is always connected to itself; a point with
// no incident edges is reachable only from itself. The relation is
// symmetric.
func (g *Graph) Connected(a, b geometry.Point) bool {
	if a == b {
		return true
	}
	if !g.HasNode(a) || !g.HasNode(b) {
		return false
	}

	// Breadth-first search from a
	visited := map[geometry.Point]bool{a: true}
	queue := []geometry.Point{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.adj[cur] {
			if next == b {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// Net returns every node mutually reachable from p, p included, in
// deterministic order. An unknown point yields a net of just itself.
func (g *Graph) Net(p geometry.Point) []geometry.Point {
	visited := map[geometry.Point]bool{p: true}
	queue := []geometry.Point{p}
	net := []geometry.Point{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.adj[cur] {
			if !visited[next] {
				visited[next] = true
				net = append(net, next)
				queue = append(queue, next)
			}
		}
	}
	sortPoints(net)
	return net
}

// Nodes returns every node of the graph in deterministic order.
func (g *Graph) Nodes() []geometry.Point {
	nodes := make([]geometry.Point, 0, len(g.adj))
	for p := range g.adj {
		nodes = append(nodes, p)
	}
	sortPoints(nodes)
	return nodes
}

func sortPoints(pts []geometry.Point) {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
}
