package connect

import (
	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
)

// Net is one equivalence class of electrically joined points. Nets are
// derived data: they are recomputed on demand and never stored in the
// document.
type Net struct {
	ID     int
	Points []geometry.Point
}

// Netlist groups points into nets using a union-find structure. It is
// the bulk counterpart to Graph.Connected: one pass over the wires
// yields every net at once.
type Netlist struct {
	parent map[geometry.Point]geometry.Point
	rank   map[geometry.Point]int
	points []geometry.Point
	seen   map[geometry.Point]bool
}

// NewNetlist creates an empty netlist. Each point starts in its own
// isolated net.
func NewNetlist() *Netlist {
	return &Netlist{
		parent: make(map[geometry.Point]geometry.Point),
		rank:   make(map[geometry.Point]int),
		seen:   make(map[geometry.Point]bool),
	}
}

// Add registers a point without connecting it to anything.
func (nl *Netlist) Add(p geometry.Point) {
	if nl.seen[p] {
		return
	}
	nl.seen[p] = true
	nl.points = append(nl.points, p)
	nl.parent[p] = p
	nl.rank[p] = 0
}

// Connect marks two points as electrically joined, merging their nets.
func (nl *Netlist) Connect(a, b geometry.Point) {
	nl.Add(a)
	nl.Add(b)

	rootA := nl.Find(a)
	rootB := nl.Find(b)
	if rootA == rootB {
		return
	}

	// Union by rank
	if nl.rank[rootA] < nl.rank[rootB] {
		nl.parent[rootA] = rootB
	} else if nl.rank[rootA] > nl.rank[rootB] {
		nl.parent[rootB] = rootA
	} else {
		nl.parent[rootB] = rootA
		nl.rank[rootA]++
	}
}

// Find returns the representative point of the net containing p, with
// path compression.
func (nl *Netlist) Find(p geometry.Point) geometry.Point {
	nl.Add(p)

	root := p
	for nl.parent[root] != root {
		root = nl.parent[root]
	}
	cur := p
	for cur != root {
		next := nl.parent[cur]
		nl.parent[cur] = root
		cur = next
	}
	return root
}

// Nets returns every net with two or more points, ordered by their
// lowest point so repeated runs produce identical output.
func (nl *Netlist) Nets() []*Net {
	groups := make(map[geometry.Point][]geometry.Point)
	for _, p := range nl.points {
		root := nl.Find(p)
		groups[root] = append(groups[root], p)
	}

	var nets []*Net
	for _, pts := range groups {
		if len(pts) < 2 {
			continue
		}
		sortPoints(pts)
		nets = append(nets, &Net{Points: pts})
	}
	sortNets(nets)
	for i, n := range nets {
		n.ID = i
	}
	return nets
}

func sortNets(nets []*Net) {
	for i := 1; i < len(nets); i++ {
		for j := i; j > 0 && lessPoint(nets[j].Points[0], nets[j-1].Points[0]); j-- {
			nets[j], nets[j-1] = nets[j-1], nets[j]
		}
	}
}

func lessPoint(a, b geometry.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
