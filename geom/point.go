package geom

import (
	"fmt"
	"math"
)

// Point is a location in a y-up model space.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) Splat() (float64, float64) {
	return pt.X, pt.Y
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

func (pt Point) Translate(o Vec2) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
	}
}

// Offset returns the point moved by dx and dy.
func (pt Point) Offset(dx, dy float64) Point {
	return Point{X: pt.X + dx, Y: pt.Y + dy}
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

// Sub computes pt−o.
// To subtract a vector from pt, use Translate and negate the vector.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point(Vec2(pt).Lerp(Vec2(o), t))
}

// Midpoint returns the midpoint of two points.
func (pt Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}

// Equal reports whether pt and o are within tol.Point of each other.
func (pt Point) Equal(o Point, tol Tol) bool {
	return pt.DistanceSquared(o) <= tol.Point*tol.Point
}

// PolarPoint returns the point at distance dist from pt in direction angle.
func (pt Point) PolarPoint(angle, dist float64) Point {
	s, c := math.Sincos(angle)
	return Point{X: pt.X + dist*c, Y: pt.Y + dist*s}
}

// RulerPoint measures xoff along the direction from pt to dir, then yoff to the
// left of it. If pt and dir coincide, the offsets are applied to the axes.
func (pt Point) RulerPoint(dir Point, xoff, yoff float64) Point {
	l := pt.Distance(dir)
	if l < MinDist {
		return Point{X: pt.X + xoff, Y: pt.Y + yoff}
	}
	c := (dir.X - pt.X) / l
	s := (dir.Y - pt.Y) / l
	return Point{
		X: pt.X + xoff*c - yoff*s,
		Y: pt.Y + xoff*s + yoff*c,
	}
}

// Round returns a new point with x and y rounded to the nearest integers.
func (pt Point) Round() Point {
	return Point{
		X: math.Round(pt.X),
		Y: math.Round(pt.Y),
	}
}

// IsInf reports whether at least one of x and y is infinite.
func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

// IsNaN reports whether at least one of x and y is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

// IsDegenerate reports whether pt has a NaN coordinate.
func (pt Point) IsDegenerate() bool {
	return pt.IsNaN()
}

// TransformPoints applies aff to every point of pts in place.
func TransformPoints(pts []Point, aff Affine) {
	for i := range pts {
		pts[i] = pts[i].Transform(aff)
	}
}
