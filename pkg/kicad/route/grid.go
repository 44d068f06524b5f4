package route

import (
	"container/heap"
	"math"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
)

// cell is a lattice coordinate: world position = (x*grid, y*grid).
type cell struct {
	x int
	y int
}

// searchGrid discretizes the routing area onto a lattice anchored at
// the world origin, so snapped endpoints always land exactly on cells.
// The search area covers the endpoints and every inflated obstacle,
// padded by two cells so paths can wrap around outer obstacles.
type searchGrid struct {
	cfg     Config
	minX    int
	maxX    int
	minY    int
	maxY    int
	blocked map[cell]bool
}

const boundsPadding = 2

func newSearchGrid(cfg Config, s, e geometry.Point, obstacles []geometry.Rect) *searchGrid {
	g := &searchGrid{cfg: cfg, blocked: make(map[cell]bool)}

	area := geometry.NewRect(s, e)
	inflated := make([]geometry.Rect, 0, len(obstacles))
	for _, ob := range obstacles {
		r := ob.Inflate(cfg.Clearance)
		inflated = append(inflated, r)
		area = area.Expand(r.Min)
		area = area.Expand(r.Max)
	}

	g.minX = int(math.Floor(area.Min.X/cfg.GridSize)) - boundsPadding
	g.maxX = int(math.Ceil(area.Max.X/cfg.GridSize)) + boundsPadding
	g.minY = int(math.Floor(area.Min.Y/cfg.GridSize)) - boundsPadding
	g.maxY = int(math.Ceil(area.Max.Y/cfg.GridSize)) + boundsPadding

	// A cell is blocked when its half-cell region overlaps the
	// rectangle, not just when its center lies inside: an obstacle
	// narrower than a cell still blocks the cells it sits between.
	half := cfg.GridSize / 2
	for _, r := range inflated {
		x0 := int(math.Ceil((r.Min.X - half) / cfg.GridSize))
		x1 := int(math.Floor((r.Max.X + half) / cfg.GridSize))
		y0 := int(math.Ceil((r.Min.Y - half) / cfg.GridSize))
		y1 := int(math.Floor((r.Max.Y + half) / cfg.GridSize))
		for x := x0; x <= x1; x++ {
			for y := y0; y <= y1; y++ {
				g.blocked[cell{x, y}] = true
			}
		}
	}

	return g
}

func (g *searchGrid) cellOf(p geometry.Point) cell {
	return cell{
		x: int(math.Round(p.X / g.cfg.GridSize)),
		y: int(math.Round(p.Y / g.cfg.GridSize)),
	}
}

func (g *searchGrid) pointOf(c cell) geometry.Point {
	return geometry.Point{
		X: float64(c.x) * g.cfg.GridSize,
		Y: float64(c.y) * g.cfg.GridSize,
	}
}

func (g *searchGrid) inBounds(c cell) bool {
	return c.x >= g.minX && c.x <= g.maxX && c.y >= g.minY && c.y <= g.maxY
}

func (g *searchGrid) blockedAt(c cell) bool {
	return g.blocked[c]
}

// search runs A* from s to e over the 4-connected lattice using
// Manhattan distance as the heuristic. Diagonal moves are not
// generated, so the result is axis-aligned by construction.
func (g *searchGrid) search(s, e cell) ([]cell, bool) {
	open := &cellHeap{}
	heap.Init(open)
	heap.Push(open, &cellNode{cell: s, g: 0, f: manhattan(s, e)})

	gScore := map[cell]int{s: 0}
	cameFrom := make(map[cell]cell)
	done := make(map[cell]bool)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*cellNode)
		if cur.cell == e {
			return reconstruct(cameFrom, e), true
		}
		if done[cur.cell] {
			continue
		}
		done[cur.cell] = true

		for _, next := range [4]cell{
			{cur.cell.x + 1, cur.cell.y},
			{cur.cell.x - 1, cur.cell.y},
			{cur.cell.x, cur.cell.y + 1},
			{cur.cell.x, cur.cell.y - 1},
		} {
			if !g.inBounds(next) || g.blocked[next] || done[next] {
				continue
			}
			tentative := gScore[cur.cell] + 1
			if prev, seen := gScore[next]; seen && tentative >= prev {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = cur.cell
			heap.Push(open, &cellNode{cell: next, g: tentative, f: tentative + manhattan(next, e)})
		}
	}

	return nil, false
}

func reconstruct(cameFrom map[cell]cell, end cell) []cell {
	path := []cell{end}
	cur := end
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		path = append(path, prev)
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func manhattan(a, b cell) int {
	dx := a.x - b.x
	if dx < 0 {
		dx = -dx
	}
	dy := a.y - b.y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// cellNode is an open-list entry; f = g + heuristic.
type cellNode struct {
	cell cell
	g    int
	f    int
}

type cellHeap []*cellNode

func (h cellHeap) Len() int            { return len(h) }
func (h cellHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h cellHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cellHeap) Push(x interface{}) { *h = append(*h, x.(*cellNode)) }
func (h *cellHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
