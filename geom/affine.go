package geom

import (
	"math"
)

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// A point (x, y) maps to (a x + c y + e, b x + d y + f). (A.Mul(B)) applied to
// a point is A applied to B applied to the point; use [Affine.Then] to chain
// transforms in the order they are applied.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipY is a transform that is flipped on the y-axis. Useful for converting
// between y-up and y-down spaces.
var FlipY = Affine{1, 0, 0, -1, 0, 0}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate creates an affine transform representing an anticlockwise rotation
// by th radians about the origin, in a y-up space.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout creates an affine transform representing a rotation of th radians
// about center.
func RotateAbout(th float64, center Point) Affine {
	s, c := math.Sincos(th)
	return Affine{c, s, -s, c, (1-c)*center.X + s*center.Y, (1-c)*center.Y - s*center.X}
}

// ScaleAbout scales by (sx, sy) with center fixed. A zero sy means sx.
func ScaleAbout(sx, sy float64, center Point) Affine {
	if isZero(sy) {
		sy = sx
	}
	return Affine{sx, 0, 0, sy, (1 - sx) * center.X, (1 - sy) * center.Y}
}

// MirrorAbout reflects through the point pt.
func MirrorAbout(pt Point) Affine {
	return Affine{-1, 0, 0, -1, 2 * pt.X, 2 * pt.Y}
}

// Reflect creates an affine transform that represents reflection about the line
// through pt with the given direction. A zero direction yields the identity.
func Reflect(pt Point, dir Vec2) Affine {
	d2 := dir.Hypot2()
	if isZero(d2) {
		return Identity
	}
	s2 := 2 * dir.X * dir.Y / d2
	c2 := (dir.X*dir.X - dir.Y*dir.Y) / d2
	return Affine{c2, s2, s2, -c2, (1-c2)*pt.X - s2*pt.Y, (1+c2)*pt.Y - s2*pt.X}
}

// Shear creates a shearing transform with pt fixed. A zero sy means sx.
func Shear(sx, sy float64, pt Point) Affine {
	if isZero(sy) {
		sy = sx
	}
	return Affine{1, sx, sy, 1, -sy * pt.Y, -sx * pt.X}
}

// CoordSystem returns the transform from a local frame with origin, scale and
// rotation into the parent frame. A zero sy means sx.
func CoordSystem(origin Point, sx, sy, angle float64) Affine {
	if isZero(sy) {
		sy = sx
	}
	s, c := math.Sincos(angle)
	return Affine{c * sx, s * sx, -s * sy, c * sy, origin.X, origin.Y}
}

// TransformWith2P returns the similarity transform mapping the segment
// from1-from2 onto to1-to2. Degenerate segments yield the identity.
func TransformWith2P(from1, from2, to1, to2 Point) Affine {
	if from1 == from2 || to1 == to2 ||
		from1.IsNaN() || from2.IsNaN() || to1.IsNaN() || to2.IsNaN() {
		return Identity
	}
	return Translate(to1.Sub(from1)).
		Then(ScaleAbout(to2.Distance(to1)/from2.Distance(from1), 0, to1)).
		Then(RotateAbout(to2.Sub(to1).Angle()-from2.Sub(from1).Angle(), to1))
}

// Coefficients returns the the coefficients of the transform.
func (aff Affine) Coefficients() [6]float64 {
	return [6]float64{aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5}
}

// NewAffine creates a new affine transformation from an array of coefficients.
// Alternatively, you can initialize the fields of [Affine] manually.
func NewAffine(n [6]float64) Affine {
	return Affine{n[0], n[1], n[2], n[3], n[4], n[5]}
}

// Mul returns the transform that applies o, then aff.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// Then returns the transform that applies aff, then o.
func (aff Affine) Then(o Affine) Affine {
	return o.Mul(aff)
}

// ThenTranslate creates aff followed by a translation of v.
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// ThenScale creates aff followed by a scale of (x, y) about the origin.
func (aff Affine) ThenScale(x, y float64) Affine {
	return Scale(x, y).Mul(aff)
}

// ThenRotateAbout creates aff followed by a rotation of th about center.
func (aff Affine) ThenRotateAbout(th float64, center Point) Affine {
	return RotateAbout(th, center).Mul(aff)
}

// Determinant computes the determinant.
func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// IsInvertible reports whether the determinant is distinguishable from zero.
func (aff Affine) IsInvertible() bool {
	return math.Abs(aff.Determinant()) > MinDist
}

// Invert computes the inverse transform. A singular transform yields the
// identity and false.
func (aff Affine) Invert() (Affine, bool) {
	d := aff.Determinant()
	if isZero(d) {
		return Identity, false
	}
	invDet := 1 / d
	return Affine{
		+invDet * aff.N3,
		-invDet * aff.N1,
		-invDet * aff.N2,
		+invDet * aff.N0,
		+invDet * (aff.N2*aff.N5 - aff.N3*aff.N4),
		+invDet * (aff.N1*aff.N4 - aff.N0*aff.N5),
	}, true
}

// IsIdentity reports whether aff is the identity within [MinDist].
func (aff Affine) IsIdentity() bool {
	return equals(aff.N0, 1) && isZero(aff.N1) && isZero(aff.N2) &&
		equals(aff.N3, 1) && isZero(aff.N4) && isZero(aff.N5)
}

// IsOrtho reports whether aff maps axis-aligned boxes to axis-aligned boxes
// without swapping axes.
func (aff Affine) IsOrtho() bool {
	return isZero(aff.N1) && isZero(aff.N2)
}

// Equal compares two transforms column by column within tol.Vector.
func (aff Affine) Equal(o Affine, tol Tol) bool {
	return math.Hypot(aff.N0-o.N0, aff.N1-o.N1) <= tol.Vector &&
		math.Hypot(aff.N2-o.N2, aff.N3-o.N3) <= tol.Vector &&
		math.Hypot(aff.N4-o.N4, aff.N5-o.N5) <= tol.Vector
}

// ScaleX returns the length of the transformed x unit vector.
func (aff Affine) ScaleX() float64 {
	if isZero(aff.N1) {
		return math.Abs(aff.N0)
	}
	return math.Hypot(aff.N0, aff.N1)
}

// ScaleY returns the length of the transformed y unit vector.
func (aff Affine) ScaleY() float64 {
	if isZero(aff.N2) {
		return math.Abs(aff.N3)
	}
	return math.Hypot(aff.N2, aff.N3)
}

// UniformScale returns the common scale when both axes scale alike, or the
// hypotenuse of the two scales otherwise.
func (aff Affine) UniformScale() float64 {
	sx, sy := aff.ScaleX(), aff.ScaleY()
	if math.Abs(sx-sy) < MinDist {
		return sx
	}
	return math.Hypot(sx, sy)
}

// Angle returns the rotation of the transformed x axis.
func (aff Affine) Angle() float64 {
	return Vec2{aff.N0, aff.N1}.Angle()
}

// HasMirror reports whether aff is conformal and flips orientation. The
// returned vector is the mirror axis.
func (aff Affine) HasMirror() (Vec2, bool) {
	e0 := Vec2{aff.N0, aff.N1}
	e1 := Vec2{aff.N2, aff.N3}
	if e0.Hypot() < MinDist || e1.Hypot() < MinDist {
		return Vec2{}, false
	}
	e0, e1 = e0.Normalize(), e1.Normalize()
	if !e0.IsPerpendicular(e1, DefaultTol) {
		return Vec2{}, false
	}
	if isZero(e0.X-e1.Y) && isZero(e0.Y+e1.X) {
		return Vec2{}, false
	}
	return VecFromAngle(e0.Angle() / 2), true
}

func (aff Affine) IsInf() bool {
	return math.IsInf(aff.N0, 0) ||
		math.IsInf(aff.N1, 0) ||
		math.IsInf(aff.N2, 0) ||
		math.IsInf(aff.N3, 0) ||
		math.IsInf(aff.N4, 0) ||
		math.IsInf(aff.N5, 0)
}

func (aff Affine) IsNaN() bool {
	return math.IsNaN(aff.N0) ||
		math.IsNaN(aff.N1) ||
		math.IsNaN(aff.N2) ||
		math.IsNaN(aff.N3) ||
		math.IsNaN(aff.N4) ||
		math.IsNaN(aff.N5)
}

// Translation returns the translation component of this affine transformation.
func (aff Affine) Translation() Vec2 {
	return Vec2{
		X: aff.N4,
		Y: aff.N5,
	}
}

// WithTranslation replaces the translation portion of this affine
// transformation.
func (aff Affine) WithTranslation(v Vec2) Affine {
	aff.N4 = v.X
	aff.N5 = v.Y
	return aff
}
