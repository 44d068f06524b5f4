package connect

import (
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/schematic"
)

// FromSchematic builds the connectivity graph of a document's wires
// and junctions. Wire segments are split at junctions lying on them,
// so two wires crossing at a junction share a node. The graph is a
// snapshot: rebuild it after mutating the document.
func FromSchematic(sch *schematic.Schematic) *Graph {
	g := NewGraph()

	var junctions []geometry.Point
	for _, j := range sch.Junctions() {
		junctions = append(junctions, j.Position)
		g.AddNode(j.Position)
	}

	for _, w := range sch.Wires() {
		for i := 1; i < len(w.Points); i++ {
			addSplitSegment(g, w.Points[i-1], w.Points[i], junctions)
		}
	}
	return g
}

// NetlistOf builds the union-find net partition of the document, one
// set per electrically joined group of points.
func NetlistOf(sch *schematic.Schematic) *Netlist {
	nl := NewNetlist()

	var junctions []geometry.Point
	for _, j := range sch.Junctions() {
		junctions = append(junctions, j.Position)
		nl.Add(j.Position)
	}

	for _, w := range sch.Wires() {
		for i := 1; i < len(w.Points); i++ {
			a, b := w.Points[i-1], w.Points[i]
			if a == b {
				continue
			}
			prev := a
			for _, j := range splitPoints(a, b, junctions) {
				nl.Connect(prev, j)
				prev = j
			}
			nl.Connect(prev, b)
		}
	}
	return nl
}

// addSplitSegment adds the segment a-b, broken at every junction that
// lies strictly between its endpoints.
func addSplitSegment(g *Graph, a, b geometry.Point, junctions []geometry.Point) {
	prev := a
	for _, j := range splitPoints(a, b, junctions) {
		g.AddSegment(prev, j)
		prev = j
	}
	g.AddSegment(prev, b)
}

// splitPoints returns the junctions lying strictly between a and b, in
// walking order from a.
func splitPoints(a, b geometry.Point, junctions []geometry.Point) []geometry.Point {
	var on []geometry.Point
	for _, j := range junctions {
		if j != a && j != b && onSegment(a, b, j) {
			on = append(on, j)
		}
	}
	if len(on) > 1 {
		// order by distance from a, so consecutive pairs form segments
		for i := 1; i < len(on); i++ {
			for k := i; k > 0 && a.ManhattanDistance(on[k]) < a.ManhattanDistance(on[k-1]); k-- {
				on[k], on[k-1] = on[k-1], on[k]
			}
		}
	}
	return on
}

// onSegment reports whether p lies on the segment a-b. Collinearity is
// exact: schematic wires are axis-aligned on grid coordinates, so no
// epsilon is needed.
func onSegment(a, b, p geometry.Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if cross != 0 {
		return false
	}
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}
