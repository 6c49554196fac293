package geom

import "math"

// Vec2 captures a 2D vector shared across the simulation packages.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns the scalar product of two vectors.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns a unit vector, or the zero vector when the input has no
// length.
func (v Vec2) Normalized() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rect is an axis-aligned box addressed by its top-left corner, matching the
// representation used for structure footprints.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Circle is a collision disc addressed by its center.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Clamp limits value to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x1-x2, y1-y2)
}

// ClosestPointOnRect returns the point on (or inside) the rectangle nearest to
// the given position.
func ClosestPointOnRect(x, y float64, r Rect) (float64, float64) {
	return Clamp(x, r.X, r.X+r.Width), Clamp(y, r.Y, r.Y+r.Height)
}

// CircleRectOverlap reports whether a circle intersects a rectangle.
func CircleRectOverlap(cx, cy, radius float64, r Rect) bool {
	closestX, closestY := ClosestPointOnRect(cx, cy, r)
	dx := cx - closestX
	dy := cy - closestY
	return dx*dx+dy*dy < radius*radius
}

// CirclesOverlap reports whether two discs intersect.
func CirclesOverlap(a, b Circle) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	combined := a.Radius + b.Radius
	return dx*dx+dy*dy < combined*combined
}

// RectsOverlap checks for AABB overlap with optional padding.
func RectsOverlap(a, b Rect, padding float64) bool {
	return a.X-padding < b.X+b.Width+padding &&
		a.X+a.Width+padding > b.X-padding &&
		a.Y-padding < b.Y+b.Height+padding &&
		a.Y+a.Height+padding > b.Y-padding
}

// SegmentCircleHit reports whether the segment from (x1,y1) to (x2,y2) passes
// within radius of the center point. Used for swept projectile checks.
func SegmentCircleHit(x1, y1, x2, y2, cx, cy, radius float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	lengthSq := dx*dx + dy*dy
	t := 0.0
	if lengthSq > 0 {
		t = Clamp(((cx-x1)*dx+(cy-y1)*dy)/lengthSq, 0, 1)
	}
	nearestX := x1 + t*dx
	nearestY := y1 + t*dy
	ddx := cx - nearestX
	ddy := cy - nearestY
	return ddx*ddx+ddy*ddy <= radius*radius
}
