// Package geometry provides the 2D primitives used across the
// schematic model: points in millimeter design units, placement
// transforms for symbol pins, grid snapping, and axis-aligned
// rectangles.
package geometry

import "math"

// DefaultGrid is the native schematic placement grid in millimeters
// (50 mil). Snapping helpers take the grid explicitly; this constant is
// only a convenience for callers that want the native spacing.
const DefaultGrid = 1.27

// Point is a 2D coordinate in millimeters. The Y axis points down, as
// in the native file format.
type Point struct {
	X float64
	Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// ManhattanDistance returns |dx| + |dy| between p and q.
func (p Point) ManhattanDistance(q Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

// Snap rounds v to the nearest multiple of grid. Snapping is
// idempotent: an already snapped value is returned unchanged.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// SnapToGrid rounds both coordinates to the nearest grid multiple.
func SnapToGrid(p Point, grid float64) Point {
	return Point{X: Snap(p.X, grid), Y: Snap(p.Y, grid)}
}
