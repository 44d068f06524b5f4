package geometry

import "math"

// Mirror selects the axis a placed symbol is flipped across.
type Mirror string

const (
	MirrorNone Mirror = ""
	MirrorX    Mirror = "x" // flip across the X axis (y negates)
	MirrorY    Mirror = "y" // flip across the Y axis (x negates)
)

// Placement is the world-frame placement of a symbol: absolute
// position, rotation in degrees, and optional mirror axis. Rotation is
// one of 0, 90, 180, 270 for schematic symbols.
type Placement struct {
	Position Point
	Rotation float64
	Mirror   Mirror
}

// Apply maps a symbol-local offset to world coordinates. The order is
// fixed: rotate about the local origin, mirror, then translate. With
// the Y axis pointing down, a positive rotation turns counter-clockwise
// on screen, so a pin at local (d, 0) lands at (0, -d) under 90
// degrees.
func (pl Placement) Apply(local Point) Point {
	cos, sin := cosSin(pl.Rotation)
	p := Point{
		X: local.X*cos + local.Y*sin,
		Y: -local.X*sin + local.Y*cos,
	}
	switch pl.Mirror {
	case MirrorX:
		p.Y = -p.Y
	case MirrorY:
		p.X = -p.X
	}
	return p.Add(pl.Position)
}

// Rotate rotates a point about the origin by the given angle in
// degrees, counter-clockwise on screen.
func Rotate(p Point, degrees float64) Point {
	cos, sin := cosSin(degrees)
	return Point{
		X: p.X*cos + p.Y*sin,
		Y: -p.X*sin + p.Y*cos,
	}
}

// cosSin returns exact values for the four right angles so that
// rotated grid coordinates stay exact; other angles fall back to the
// math package.
func cosSin(degrees float64) (cos, sin float64) {
	deg := NormalizeAngle(degrees)
	switch deg {
	case 0:
		return 1, 0
	case 90:
		return 0, 1
	case 180:
		return -1, 0
	case 270:
		return 0, -1
	}
	rad := deg * math.Pi / 180.0
	return math.Cos(rad), math.Sin(rad)
}

// NormalizeAngle folds an angle in degrees into [0, 360).
func NormalizeAngle(degrees float64) float64 {
	deg := math.Mod(degrees, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// IsRightAngle reports whether the angle is one of the four rotations
// the schematic model supports.
func IsRightAngle(degrees float64) bool {
	deg := NormalizeAngle(degrees)
	return deg == 0 || deg == 90 || deg == 180 || deg == 270
}
