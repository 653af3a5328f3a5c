// Package core provides fundamental types and utilities for the flappy platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// overlapEpsilon is the minimum projection overlap (in world units) that
// counts as a collision. Exact and near-exact boundary touches are not hits.
const overlapEpsilon = 1e-9

// Vec2 is a 2D vector in world units. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// V creates a vector from its components.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Perp returns v rotated by +90 degrees.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Rotate returns v rotated counter-clockwise by angle radians about the origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// AABB is an axis-aligned box stored as min/max corners.
// Min is the bottom-left corner, Max the top-right one (Y up).
type AABB struct {
	Min, Max Vec2
}

// NewAABB builds a box from its center and half extents.
// Negative half extents are folded to their absolute value.
func NewAABB(center, half Vec2) AABB {
	hx, hy := math.Abs(half.X), math.Abs(half.Y)
	return AABB{
		Min: Vec2{X: center.X - hx, Y: center.Y - hy},
		Max: Vec2{X: center.X + hx, Y: center.Y + hy},
	}
}

// Center returns the center point of the box.
func (b AABB) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Width returns the horizontal extent of the box.
func (b AABB) Width() float64 {
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent of the box.
func (b AABB) Height() float64 {
	return b.Max.Y - b.Min.Y
}

// Corners returns the four corners counter-clockwise from Min.
func (b AABB) Corners() Quad {
	return Quad{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// Intersects reports whether two boxes strictly overlap.
func (b AABB) Intersects(o AABB) bool {
	if b.Max.X-o.Min.X <= overlapEpsilon || o.Max.X-b.Min.X <= overlapEpsilon {
		return false
	}
	if b.Max.Y-o.Min.Y <= overlapEpsilon || o.Max.Y-b.Min.Y <= overlapEpsilon {
		return false
	}
	return true
}

// Quad is a convex quadrilateral given by its corners in winding order.
type Quad [4]Vec2

// RotatedBox returns the corners of a box centered on center with the given
// half extents, rotated by angle radians about the center.
func RotatedBox(center, half Vec2, angle float64) Quad {
	local := Quad{
		{X: -half.X, Y: -half.Y},
		{X: half.X, Y: -half.Y},
		{X: half.X, Y: half.Y},
		{X: -half.X, Y: half.Y},
	}
	var q Quad
	for i, c := range local {
		q[i] = center.Add(c.Rotate(angle))
	}
	return q
}

// Bounds returns the axis-aligned box enclosing the quad.
func (q Quad) Bounds() AABB {
	b := AABB{Min: q[0], Max: q[0]}
	for _, p := range q[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// project returns the interval covered by the quad along axis.
func (q Quad) project(axis Vec2) (lo, hi float64) {
	lo = q[0].Dot(axis)
	hi = lo
	for _, p := range q[1:] {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// OverlapsAABB runs the separating-axis test between the quad and an
// axis-aligned box. Candidate axes are the quad's two unique edge normals and
// the box's X and Y axes. Boundary touches are not reported as overlaps.
func (q Quad) OverlapsAABB(b AABB) bool {
	axes := [4]Vec2{
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		q[1].Sub(q[0]).Perp(),
		q[2].Sub(q[1]).Perp(),
	}
	box := b.Corners()

	for _, axis := range axes {
		l := axis.Len()
		if l < overlapEpsilon {
			// Degenerate edge carries no direction to test.
			continue
		}
		axis = axis.Scale(1 / l)

		qLo, qHi := q.project(axis)
		bLo, bHi := box.project(axis)
		if qHi-bLo <= overlapEpsilon || bHi-qLo <= overlapEpsilon {
			return false
		}
	}
	return true
}

// Rect represents an axis-aligned rectangle of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
