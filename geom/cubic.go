package geom

import (
	"math"
	"sort"
)

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

// CubicFromPoints returns the segment starting at pts[0]. pts must hold at
// least four points.
func CubicFromPoints(pts []Point) CubicBez {
	return CubicBez{pts[0], pts[1], pts[2], pts[3]}
}

// CubicThrough returns the cubic that passes through p1, p2, p3 and p4 at
// t = 0, 1/3, 2/3 and 1.
func CubicThrough(p1, p2, p3, p4 Point) CubicBez {
	c1 := Vec2(p1).Mul(-5).Add(Vec2(p2).Mul(18)).Sub(Vec2(p3).Mul(9)).Add(Vec2(p4).Mul(2)).Div(6)
	c2 := Vec2(p4).Mul(-5).Add(Vec2(p3).Mul(18)).Sub(Vec2(p2).Mul(9)).Add(Vec2(p1).Mul(2)).Div(6)
	return CubicBez{p1, Point(c1), Point(c2), p4}
}

func (c CubicBez) Points() [4]Point {
	return [4]Point{c.P0, c.P1, c.P2, c.P3}
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Tangent returns the first derivative at t.
func (c CubicBez) Tangent(t float64) Vec2 {
	return Vec2(c.Differentiate().Eval(t))
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.Split(0.5)
}

// Split cuts the cubic at t using de Casteljau.
func (c CubicBez) Split(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	pm := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, pm}, CubicBez{pm, p123, p23, c.P3}
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d := c.Differentiate()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(Vec2(d.Eval(t0)).Mul(scale))
	p2 := p3.Translate(Vec2(d.Eval(t1)).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

// Differentiate returns the derivative as a quadratic whose control points
// are vectors.
func (c CubicBez) Differentiate() QuadBez {
	return QuadBez{
		Point(c.P1.Sub(c.P0).Mul(3)),
		Point(c.P2.Sub(c.P1).Mul(3)),
		Point(c.P3.Sub(c.P2).Mul(3)),
	}
}

func (c CubicBez) Reverse() CubicBez {
	return CubicBez{c.P3, c.P2, c.P1, c.P0}
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// IsStraight reports whether both control points lie on the chord's line.
func (c CubicBez) IsStraight() bool {
	return IsColinear(c.P0, c.P3, c.P1) && IsColinear(c.P0, c.P3, c.P2)
}

// Length returns the arc length using a fixed 24-point Legendre-Gauss
// quadrature. Straight segments return their chord.
func (c CubicBez) Length() float64 {
	if c.IsStraight() {
		return c.P0.Distance(c.P3)
	}
	d := c.Differentiate()
	var sum float64
	for _, coeff := range gaussLegendreCoeffs24Half {
		wi, xi := coeff[0], coeff[1]
		sum += wi * Vec2(d.Eval(0.5+0.5*xi)).Hypot()
		sum += wi * Vec2(d.Eval(0.5-0.5*xi)).Hypot()
	}
	return 0.5 * sum
}

// Arclen returns the arc length of the segment to within accuracy.
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature.
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d03 := c.P3.Sub(c.P0)
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	lplc := d01.Hypot() + d12.Hypot() + d23.Hypot() - d03.Hypot()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// The following values don't have the factor of 3 for first deriv
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5)) // first derivative at midpoint
	dm1 := dd2.Add(dd1).Mul(0.5)                   // second derivative at midpoint
	dm2 := dd2.Sub(dd1).Mul(0.25)                  // 0.5 * (third derivative at midpoint)

	var est float64
	for _, coeff := range gaussLegendreCoeffs8Half {
		wi, xi := coeff[0], coeff[1]
		for _, x := range [2]float64{-xi, xi} {
			dNorm2 := dm.Add(dm1.Mul(x)).Add(dm2.Mul(x * x)).Hypot2()
			ddNorm2 := dm1.Add(dm2.Mul(2.0 * x)).Hypot2()
			est += wi * ddNorm2 / dNorm2
		}
	}
	if math.IsNaN(est) {
		// dNorm2 is 0 as c approaches a singularity
		est = 0
	}

	if min(math.Pow(est, 3)*2.5e-6, 3e-2)*lplc < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	if min(math.Pow(est, 6)*1.5e-11, 9e-3)*lplc < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	if min(math.Pow(est, 9)*3.5e-16, 3.5e-3)*lplc < accuracy || depth >= 20 {
		return arclenQuadratureCore(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(accuracy*0.5, depth+1) + c1.arclen(accuracy*0.5, depth+1)
}

func arclenQuadratureCore(coeffs [][2]float64, dm Vec2, dm1 Vec2, dm2 Vec2) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Hypot()
		dmx := d.Sub(dm1.Mul(xi)).Hypot()
		sum += 1.5 * wi * (dpx + dmx)
	}
	return sum
}

// ParamAtLength returns the parameter at which the arc length measured from
// the start equals length. Lengths outside the curve clamp to 0 or 1.
func (c CubicBez) ParamAtLength(length float64) float64 {
	if length <= 0 {
		return 0
	}
	total := c.Length()
	if length >= total {
		return 1
	}
	f := func(t float64) float64 {
		left, _ := c.Split(t)
		return left.Length() - length
	}
	return SolveITP(f, 0, 1, 1e-5, 1, 0.2, -length, total-length)
}

// PointAtDistance walks the curve from its start and returns the first point
// that is at least dist away from pt, along with its parameter. It reports
// false when the whole curve stays within dist.
func (c CubicBez) PointAtDistance(dist float64, pt Point) (Point, float64, bool) {
	const coarse = 0.1
	for t := coarse; t < 1+coarse; t += coarse {
		t = min(t, 1)
		if c.Eval(t).Distance(pt) < dist {
			if t == 1 {
				break
			}
			continue
		}
		f := func(u float64) float64 { return c.Eval(u).Distance(pt) - dist }
		lo := t - coarse
		flo := f(lo)
		if flo >= 0 {
			return c.Eval(lo), lo, true
		}
		u := SolveITP(f, lo, t, 1e-5, 1, 0.2/coarse, flo, f(t))
		return c.Eval(u), u, true
	}
	return Point{}, 0, false
}

// Extrema returns the parameters in (0, 1) where the tangent is horizontal or
// vertical, in increasing order.
func (c CubicBez) Extrema() ([4]float64, int) {
	var out [4]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		c := d0
		roots, n := SolveQuadratic(c, b, a)
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

// BoundingBox returns the tight box of the curve, found by evaluating the
// curve at its extrema rather than bounding the control polygon.
func (c CubicBez) BoundingBox() Box {
	bbox := NewBox(c.P0, c.P3)
	ex, n := c.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(c.Eval(t))
	}
	return bbox
}

// ControlBox returns the box of the four control points.
func (c CubicBez) ControlBox() Box {
	return BoxOfPoints(c.P0, c.P1, c.P2, c.P3)
}

// Tangents returns the start and end directions, skipping control points that
// coincide with their endpoint.
func (c CubicBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := c.P1.Sub(c.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d02 := c.P2.Sub(c.P0)
		if d02.Hypot2() > epsilon {
			d0 = d02
		} else {
			d0 = c.P3.Sub(c.P0)
		}
	}
	d23 := c.P3.Sub(c.P2)
	if d23.Hypot2() > epsilon {
		d1 = d23
	} else {
		d13 := c.P3.Sub(c.P1)
		if d13.Hypot2() > epsilon {
			d1 = d13
		} else {
			d1 = c.P3.Sub(c.P0)
		}
	}
	return d0, d1
}

// IntersectLine returns the parameters on the curve, in increasing order,
// where it crosses the segment a-b.
func (c CubicBez) IntersectLine(a, b Point) ([3]float64, int) {
	const epsilon = 1e-9
	var ret [3]float64
	var retN int
	if !c.ControlBox().IsIntersect(NewBox(a, b)) {
		return ret, 0
	}
	dx := b.X - a.X
	dy := b.Y - a.Y
	invlen2 := 1.0 / (dx*dx + dy*dy)
	if math.IsInf(invlen2, 0) {
		return ret, 0
	}

	// Express x and y as cubic polynomials in t, plug them into the line
	// equation of the probe and solve for t.
	px0, px1, px2, px3 := cubicBezCoefficients(c.P0.X, c.P1.X, c.P2.X, c.P3.X)
	py0, py1, py2, py3 := cubicBezCoefficients(c.P0.Y, c.P1.Y, c.P2.Y, c.P3.Y)
	c0 := dy*(px0-a.X) - dx*(py0-a.Y)
	c1 := dy*px1 - dx*py1
	c2 := dy*px2 - dx*py2
	c3 := dy*px3 - dx*py3
	ts, n := SolveCubic(c0, c1, c2, c3)
	for _, t := range ts[:n] {
		if t >= -epsilon && t <= 1+epsilon {
			t = max(0, min(1, t))
			x := px0 + t*px1 + t*t*px2 + t*t*t*px3
			y := py0 + t*py1 + t*t*py2 + t*t*t*py3
			u := ((x-a.X)*dx + (y-a.Y)*dy) * invlen2
			if u >= 0.0 && u <= 1.0 {
				ret[retN] = t
				retN++
			}
		}
	}
	sort.Float64s(ret[:retN])
	return ret, retN
}

// Return polynomial coefficients given cubic bezier coordinates.
func cubicBezCoefficients(x0, x1, x2, x3 float64) (_, _, _, _ float64) {
	p0 := x0
	p1 := 3.0*x1 - 3.0*x0
	p2 := 3.0*x2 - 6.0*x1 + 3.0*x0
	p3 := x3 - 3.0*x2 + 3.0*x1 - x0
	return p0, p1, p2, p3
}
