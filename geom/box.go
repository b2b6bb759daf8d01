package geom

import (
	"fmt"
	"math"
)

// Box is an axis-aligned rectangle in y-up space. A normalized box has
// XMin ≤ XMax and YMin ≤ YMax. The zero Box is the null box, which marks an
// empty extent.
type Box struct {
	XMin, YMin float64
	XMax, YMax float64
}

// NewBox returns the normalized box spanned by p1 and p2.
func NewBox(p1, p2 Point) Box {
	return Box{
		XMin: min(p1.X, p2.X),
		YMin: min(p1.Y, p2.Y),
		XMax: max(p1.X, p2.X),
		YMax: max(p1.Y, p2.Y),
	}
}

// BoxFromCenter returns the box of the given size around center. A zero
// height means a square.
func BoxFromCenter(center Point, width, height float64) Box {
	if isZero(height) {
		height = width
	}
	return Box{
		XMin: center.X - width*0.5,
		YMin: center.Y - height*0.5,
		XMax: center.X + width*0.5,
		YMax: center.Y + height*0.5,
	}
}

// BoxOfPoints returns the bounding box of pts, or the null box if pts is empty.
func BoxOfPoints(pts ...Point) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, pt := range pts[1:] {
		b = b.UnionPoint(pt)
	}
	return b
}

func (b Box) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", b.XMin, b.YMin, b.XMax, b.YMax)
}

// Normalize swaps the bounds where needed so that min ≤ max.
func (b Box) Normalize() Box {
	if b.XMin > b.XMax {
		b.XMin, b.XMax = b.XMax, b.XMin
	}
	if b.YMin > b.YMax {
		b.YMin, b.YMax = b.YMax, b.YMin
	}
	return b
}

func (b Box) IsNormalized() bool {
	return b.XMin <= b.XMax && b.YMin <= b.YMax
}

// IsNull reports whether b is the null box.
func (b Box) IsNull() bool {
	return isZero(b.XMin) && isZero(b.YMin) && isZero(b.XMax) && isZero(b.YMax)
}

// IsEmpty reports whether the width or the height is below tol.Point.
func (b Box) IsEmpty(tol Tol) bool {
	return math.Abs(b.XMax-b.XMin) < tol.Point || math.Abs(b.YMax-b.YMin) < tol.Point
}

// IsDegenerate reports whether both width and height are below tol.Point.
func (b Box) IsDegenerate(tol Tol) bool {
	return math.Abs(b.XMax-b.XMin) < tol.Point && math.Abs(b.YMax-b.YMin) < tol.Point
}

func (b Box) isEmptyMinus(tol Tol) bool {
	return b.XMax-b.XMin < tol.Point || b.YMax-b.YMin < tol.Point
}

func (b Box) Width() float64  { return math.Abs(b.XMax - b.XMin) }
func (b Box) Height() float64 { return math.Abs(b.YMax - b.YMin) }

func (b Box) Size() Vec2 {
	return Vec2{X: b.Width(), Y: b.Height()}
}

func (b Box) Center() Point {
	return Point{
		X: 0.5 * (b.XMin + b.XMax),
		Y: 0.5 * (b.YMin + b.YMax),
	}
}

func (b Box) LeftTop() Point     { return Point{b.XMin, b.YMax} }
func (b Box) RightTop() Point    { return Point{b.XMax, b.YMax} }
func (b Box) LeftBottom() Point  { return Point{b.XMin, b.YMin} }
func (b Box) RightBottom() Point { return Point{b.XMax, b.YMin} }

// Corners returns the corners anticlockwise from the bottom left.
func (b Box) Corners() [4]Point {
	return [4]Point{b.LeftBottom(), b.RightBottom(), b.RightTop(), b.LeftTop()}
}

// ContainsPoint reports whether pt lies inside b or within tol.Point of its
// border.
func (b Box) ContainsPoint(pt Point, tol Tol) bool {
	return pt.X >= b.XMin-tol.Point &&
		pt.Y >= b.YMin-tol.Point &&
		pt.X <= b.XMax+tol.Point &&
		pt.Y <= b.YMax+tol.Point
}

// Contains reports whether o lies inside b, borders included.
func (b Box) Contains(o Box) bool {
	return o.XMin >= b.XMin && o.YMin >= b.YMin &&
		o.XMax <= b.XMax && o.YMax <= b.YMax
}

// IsIntersect reports whether the two boxes overlap or touch. Null and
// inverted boxes intersect nothing.
func (b Box) IsIntersect(o Box) bool {
	if b.XMax-b.XMin < -MinDist || b.YMax-b.YMin < -MinDist || b.IsNull() {
		return false
	}
	if o.XMax-o.XMin < -MinDist || o.YMax-o.YMin < -MinDist || o.IsNull() {
		return false
	}
	if min(b.XMax, o.XMax) < max(b.XMin, o.XMin) {
		return false
	}
	if min(b.YMax, o.YMax) < max(b.YMin, o.YMin) {
		return false
	}
	return true
}

// Intersect returns the overlap of b and o, or the null box.
func (b Box) Intersect(o Box) Box {
	if b.isEmptyMinus(DefaultTol) || o.isEmptyMinus(DefaultTol) {
		return Box{}
	}
	l := max(b.XMin, o.XMin)
	bt := max(b.YMin, o.YMin)
	r := min(b.XMax, o.XMax)
	t := min(b.YMax, o.YMax)
	if r < l || t < bt {
		return Box{}
	}
	return Box{l, bt, r, t}
}

// Union returns the smallest box enclosing b and o. A degenerate operand
// (empty in both directions) is ignored.
func (b Box) Union(o Box) Box {
	if o.IsDegenerate(DefaultTol) {
		return b.Normalize()
	}
	if b.IsDegenerate(DefaultTol) {
		return o.Normalize()
	}
	return Box{
		XMin: min(b.XMin, o.XMin),
		YMin: min(b.YMin, o.YMin),
		XMax: max(b.XMax, o.XMax),
		YMax: max(b.YMax, o.YMax),
	}
}

// UnionPoint extends b to include pt.
func (b Box) UnionPoint(pt Point) Box {
	return Box{
		XMin: min(b.XMin, pt.X),
		YMin: min(b.YMin, pt.Y),
		XMax: max(b.XMax, pt.X),
		YMax: max(b.YMax, pt.Y),
	}
}

// Inflate expands the box by dx on the left and right and dy at the top and
// bottom.
func (b Box) Inflate(dx, dy float64) Box {
	return Box{
		XMin: b.XMin - dx,
		YMin: b.YMin - dy,
		XMax: b.XMax + dx,
		YMax: b.YMax + dy,
	}
}

// Offset moves the box by v.
func (b Box) Offset(v Vec2) Box {
	return Box{b.XMin + v.X, b.YMin + v.Y, b.XMax + v.X, b.YMax + v.Y}
}

// Transform returns the bounding box of b after aff.
func (b Box) Transform(aff Affine) Box {
	if aff.IsOrtho() {
		return NewBox(b.LeftBottom().Transform(aff), b.RightTop().Transform(aff))
	}
	return BoxOfPoints(
		b.LeftBottom().Transform(aff),
		b.RightTop().Transform(aff),
		b.LeftTop().Transform(aff),
		b.RightBottom().Transform(aff),
	)
}

// Equal compares the corners within tol.Point.
func (b Box) Equal(o Box, tol Tol) bool {
	return b.LeftBottom().Equal(o.LeftBottom(), tol) && b.RightTop().Equal(o.RightTop(), tol)
}
