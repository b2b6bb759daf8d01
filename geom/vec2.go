package geom

import (
	"fmt"
	"math"
)

type Vec2 struct {
	X float64
	Y float64
}

// Vec returns the vector ⟨x, y⟩.
func Vec(x, y float64) Vec2 {
	return Vec2{
		X: x,
		Y: y,
	}
}

// Splat returns the vector's x and y coordinates.
func (v Vec2) Splat() (float64, float64) {
	return v.X, v.Y
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Hypot returns the magnitude of the vector.
func (v Vec2) Hypot() float64 {
	return math.Hypot(v.X, v.Y)
}

// Hypot2 returns the squared magnitude of the vector.
//
// This function is more efficient than squaring the result of [Vec2.Hypot].
func (v Vec2) Hypot2() float64 {
	return v.Dot(v)
}

// Angle returns the angle in radians between the vector and ⟨1, 0⟩ in the positive y
// direction. This is atan2(y, x). The zero vector has angle 0.
func (v Vec2) Angle() float64 {
	if isZero(v.X) && isZero(v.Y) {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// AngleTo returns the unsigned angle between v and o, in [0, π].
func (v Vec2) AngleTo(o Vec2) float64 {
	l := v.Hypot() * o.Hypot()
	if l < MinDist {
		return 0
	}
	return math.Acos(max(-1, min(1, v.Dot(o)/l)))
}

// AngleTo2 returns the signed angle from v to o, in [-π, π]. Positive angles
// are anticlockwise in a y-up space.
func (v Vec2) AngleTo2(o Vec2) float64 {
	cosfz := v.Dot(o)
	sinfz := v.Cross(o)
	if isZero(cosfz) && isZero(sinfz) {
		return 0
	}
	return math.Atan2(sinfz, cosfz)
}

// VecFromAngle returns a unit vector of the given angle, which is expressed in radians.
// With θ = 0, the result is the positive x unit vector. At π/2, it is the positive y unit
// vector.
func VecFromAngle(th float64) Vec2 {
	y, x := math.Sincos(th)
	return Vec2{
		X: x,
		Y: y,
	}
}

// Lerp linearly interpolates between two vectors.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	// v + t * (o-v)
	return v.Add(o.Sub(v).Mul(t))
}

// Normalize returns a vector of magnitude 1.0 with the same angle as v.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Hypot()
	if l < MinDist {
		return v
	}
	return v.Mul(1.0 / l)
}

// ScaleTo returns a vector with the direction of v and length l.
func (v Vec2) ScaleTo(l float64) Vec2 {
	return v.Normalize().Mul(l)
}

// Perp returns v rotated anticlockwise by 90°.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Rotate returns v rotated anticlockwise by th radians.
func (v Vec2) Rotate(th float64) Vec2 {
	s, c := math.Sincos(th)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

func (v Vec2) Transform(aff Affine) Vec2 {
	return Vec2{
		X: aff.N0*v.X + aff.N2*v.Y,
		Y: aff.N1*v.X + aff.N3*v.Y,
	}
}

// IsZero reports whether the length of v is below tol.Point.
func (v Vec2) IsZero(tol Tol) bool {
	return v.Hypot() < tol.Point
}

// IsParallel reports whether v and o are parallel within tol.Vector.
func (v Vec2) IsParallel(o Vec2, tol Tol) bool {
	return math.Abs(v.Cross(o)) <= math.Abs(v.Dot(o))*tol.Vector
}

// IsCodirectional reports whether v and o are parallel and point the same way.
func (v Vec2) IsCodirectional(o Vec2, tol Tol) bool {
	cosfz := v.Dot(o)
	if cosfz < -MinDist {
		return false
	}
	return math.Abs(v.Cross(o)) <= cosfz*tol.Vector
}

// IsPerpendicular reports whether v and o are perpendicular within
// tol.Vector. Zero vectors are never perpendicular.
func (v Vec2) IsPerpendicular(o Vec2, tol Tol) bool {
	sinfz := math.Abs(v.Cross(o))
	if sinfz < MinDist {
		return false
	}
	return math.Abs(v.Dot(o)) <= sinfz*tol.Vector
}

// DistanceToVector returns the signed perpendicular distance of v from the
// line along axis. Positive values are to the left of axis.
func (v Vec2) DistanceToVector(axis Vec2) float64 {
	l := axis.Hypot()
	if l < MinDist {
		return v.Hypot()
	}
	return axis.Cross(v) / l
}

// ProjectScale returns the signed ratio of v's projection onto axis to the
// length of axis.
func (v Vec2) ProjectScale(axis Vec2) float64 {
	d2 := axis.Hypot2()
	if d2 < MinDist {
		return 0
	}
	return v.Dot(axis) / d2
}

// ProjectResolve splits v into a part along axis and a perpendicular part.
func (v Vec2) ProjectResolve(axis Vec2) (proj, perp Vec2, scale float64) {
	scale = v.ProjectScale(axis)
	proj = axis.Mul(scale)
	perp = v.Sub(proj)
	return proj, perp, scale
}

// Resolve expresses v in the basis (u, w). It fails if u and w are colinear.
func (v Vec2) Resolve(u, w Vec2) (Vec2, bool) {
	denom := u.Cross(w)
	if isZero(denom) {
		return Vec2{}, false
	}
	return Vec2{X: v.Cross(w) / denom, Y: u.Cross(v) / denom}, true
}

// IsInf reports whether at least one of x and y is infinite.
func (v Vec2) IsInf() bool {
	return math.IsInf(v.X, 0) || math.IsInf(v.Y, 0)
}

// IsNaN reports whether at least one of x and y is NaN.
func (v Vec2) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

// Add adds two vectors and returns the resulting vector.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{
		X: v.X + o.X,
		Y: v.Y + o.Y,
	}
}

// Sub subtracts two vectors and returns the resulting vector.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{
		X: v.X - o.X,
		Y: v.Y - o.Y,
	}
}

func (v Vec2) Mul(f float64) Vec2 {
	return Vec2{
		X: v.X * f,
		Y: v.Y * f,
	}
}

func (v Vec2) Div(f float64) Vec2 {
	return Vec2{
		X: v.X / f,
		Y: v.Y / f,
	}
}

// Negate returns a new vector with the signs of x and y flipped.
func (v Vec2) Negate() Vec2 {
	return Vec2{
		X: -v.X,
		Y: -v.Y,
	}
}
