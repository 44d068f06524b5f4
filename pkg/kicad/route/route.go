// Package route produces orthogonal wire paths between two schematic
// points. Two modes are provided: an A* pathfinder over a discretized
// grid that avoids rectangular obstacle regions, and a cheap direct
// mode that places at most one bend with no obstacle awareness. Callers
// choose the mode explicitly; there is no automatic fallback.
package route

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/OpenTraceSchematic/pkg/kicad/geometry"
)

// Config holds the routing parameters. GridSize is required and must be
// positive; there is no default because the right spacing depends on
// the document grid the caller is editing.
type Config struct {
	GridSize  float64 // cell size of the search lattice, in mm
	Clearance float64 // margin added around every obstacle, in mm
}

// ErrGridSize is returned when Config.GridSize is zero or negative.
var ErrGridSize = errors.New("route: grid size must be positive")

// NoPathError is returned when the search exhausts the grid without
// reaching the destination, or when an endpoint itself is blocked.
// Callers are expected to treat it as a normal outcome.
type NoPathError struct {
	Start  geometry.Point
	End    geometry.Point
	Reason string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("route: no path from (%g, %g) to (%g, %g): %s",
		e.Start.X, e.Start.Y, e.End.X, e.End.Y, e.Reason)
}

// Direct returns a path from start to end through at most one
// intermediate bend (horizontal leg first, then vertical). Both
// endpoints are snapped to the grid and zero-length segments are
// elided, so colinear endpoints produce a two-point path.
func Direct(cfg Config, start, end geometry.Point) ([]geometry.Point, error) {
	if cfg.GridSize <= 0 {
		return nil, ErrGridSize
	}
	s := geometry.SnapToGrid(start, cfg.GridSize)
	e := geometry.SnapToGrid(end, cfg.GridSize)

	path := []geometry.Point{s, {X: e.X, Y: s.Y}, e}
	return compress(path), nil
}

// FindPath runs an A* search over the 4-connected grid graph between
// start and end, treating every obstacle rectangle inflated by the
// clearance margin as blocked. The returned path is strictly
// axis-aligned, snapped to the grid, with colinear runs and zero-length
// segments removed.
func FindPath(cfg Config, start, end geometry.Point, obstacles []geometry.Rect) ([]geometry.Point, error) {
	if cfg.GridSize <= 0 {
		return nil, ErrGridSize
	}

	s := geometry.SnapToGrid(start, cfg.GridSize)
	e := geometry.SnapToGrid(end, cfg.GridSize)

	grid := newSearchGrid(cfg, s, e, obstacles)

	if grid.blockedAt(grid.cellOf(s)) {
		return nil, &NoPathError{Start: start, End: end, Reason: "start cell is blocked"}
	}
	if grid.blockedAt(grid.cellOf(e)) {
		return nil, &NoPathError{Start: start, End: end, Reason: "end cell is blocked"}
	}

	cells, ok := grid.search(grid.cellOf(s), grid.cellOf(e))
	if !ok {
		return nil, &NoPathError{Start: start, End: end, Reason: "search exhausted"}
	}

	path := make([]geometry.Point, len(cells))
	for i, c := range cells {
		path[i] = grid.pointOf(c)
	}
	return compress(path), nil
}

// compress removes consecutive duplicate points and folds colinear runs,
// leaving only the endpoints and direction changes.
func compress(path []geometry.Point) []geometry.Point {
	out := path[:0:0]
	for _, p := range path {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		if len(out) >= 2 {
			a, b := out[len(out)-2], out[len(out)-1]
			if (a.X == b.X && b.X == p.X) || (a.Y == b.Y && b.Y == p.Y) {
				out[len(out)-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
