package geom

import (
	"math"
	"slices"
)

// Kappa is the control arm length, relative to the radius, of a cubic
// Bézier approximating a quarter circle: 4(√2−1)/3.
const Kappa = 0.5522847498307934

// EllipseToBezier returns four cubic segments approximating the axis-aligned
// ellipse. The points run anticlockwise from (cx+rx, cy) and the last point
// repeats the first.
func EllipseToBezier(center Point, rx, ry float64) [13]Point {
	dx := rx * Kappa
	dy := ry * Kappa
	cx, cy := center.X, center.Y
	return [13]Point{
		{cx + rx, cy},
		{cx + rx, cy + dy},
		{cx + dx, cy + ry},
		{cx, cy + ry},
		{cx - dx, cy + ry},
		{cx - rx, cy + dy},
		{cx - rx, cy},
		{cx - rx, cy - dy},
		{cx - dx, cy - ry},
		{cx, cy - ry},
		{cx + dx, cy - ry},
		{cx + rx, cy - dy},
		{cx + rx, cy},
	}
}

// RoundRectToBeziers returns the four corner arcs of a rounded rectangle as
// independent cubic segments, starting with the top right corner and going
// anticlockwise. The radii are clamped to half the box size. The straight
// edges join the end of one corner to the start of the next.
func RoundRectToBeziers(rect Box, rx, ry float64) [16]Point {
	rect = rect.Normalize()
	w, h := rect.Width(), rect.Height()
	rx = min(rx, w/2)
	ry = min(ry, h/2)
	dx := w/2 - rx
	dy := h/2 - ry

	ell := EllipseToBezier(rect.Center(), rx, ry)
	var pts [16]Point
	for i := range 4 {
		ox, oy := -dx, -dy
		if i == 0 || i == 3 {
			ox = dx
		}
		if i == 0 || i == 1 {
			oy = dy
		}
		for j := range 4 {
			pts[4*i+j] = ell[3*i+j].Offset(ox, oy)
		}
	}
	return pts
}

// arcSegment writes the single cubic for an elliptic arc of at most 90°
// into pts[0:4].
func arcSegment(pts []Point, center Point, rx, ry, startAngle, sweepAngle float64) {
	sy := ry / rx
	r := rx
	b := r * math.Sin(sweepAngle/2)
	c := r * math.Cos(sweepAngle/2)
	a := r - c
	x := a * 4 / 3
	y := b - x*(r-a)/b

	local := [4]Point{{c, -b}, {c + x, -y}, {c + x, y}, {c, b}}
	s, co := math.Sincos(startAngle + sweepAngle/2)
	for i, p := range local {
		pts[i] = Point{
			X: center.X + p.X*co - p.Y*s,
			Y: center.Y + p.X*s*sy + p.Y*co*sy,
		}
	}
}

// arcPlusSweep converts a positive sweep starting in [0, 2π). The first piece
// runs up to the next axis, then whole quadrants, then the remainder.
func arcPlusSweep(pts []Point, center Point, rx, ry, startAngle, sweepAngle float64) int {
	dx := rx * Kappa
	dy := ry * Kappa
	cx, cy := center.X, center.Y

	var k int
	var endAngle float64
	switch {
	case startAngle < HalfPi:
		endAngle, k = HalfPi, 1
	case startAngle < math.Pi:
		endAngle, k = math.Pi, 2
	case startAngle < 3*HalfPi:
		endAngle, k = 3*HalfPi, 3
	default:
		endAngle, k = TwoPi, 0
	}

	n := 1
	if endAngle-startAngle > 1e-5 {
		arcSegment(pts, center, rx, ry, startAngle, endAngle-startAngle)
		n = 4
	}
	sweepAngle -= endAngle - startAngle
	startAngle = endAngle

	for sweepAngle >= HalfPi {
		var q [4]Point
		switch k {
		case 0:
			q = [4]Point{{cx + rx, cy}, {cx + rx, cy + dy}, {cx + dx, cy + ry}, {cx, cy + ry}}
		case 1:
			q = [4]Point{{cx, cy + ry}, {cx - dx, cy + ry}, {cx - rx, cy + dy}, {cx - rx, cy}}
		case 2:
			q = [4]Point{{cx - rx, cy}, {cx - rx, cy - dy}, {cx - dx, cy - ry}, {cx, cy - ry}}
		default:
			q = [4]Point{{cx, cy - ry}, {cx + dx, cy - ry}, {cx + rx, cy - dy}, {cx + rx, cy}}
		}
		copy(pts[n-1:], q[:])
		k = (k + 1) % 4
		n += 3
		sweepAngle -= HalfPi
		startAngle += HalfPi
	}
	if sweepAngle > 1e-5 {
		arcSegment(pts[n-1:], center, rx, ry, startAngle, sweepAngle)
		n += 3
	}
	return n
}

// ArcToBezier converts an elliptic arc to a run of cubic segments (1+3k
// points). The sweep is clamped to ±2π; a negative sweep runs clockwise. A
// zero rx or a negligible sweep yields nil. A zero ry means a circle.
func ArcToBezier(center Point, rx, ry, startAngle, sweepAngle float64) []Point {
	if isZero(rx) || math.Abs(sweepAngle) < 1e-5 {
		return nil
	}
	if isZero(ry) {
		ry = rx
	}
	sweepAngle = max(-TwoPi, min(TwoPi, sweepAngle))

	pts := make([]Point, 16)
	var n int
	switch {
	case math.Abs(sweepAngle) < HalfPi+1e-5:
		arcSegment(pts, center, rx, ry, startAngle, sweepAngle)
		n = 4
	case sweepAngle > 0:
		n = arcPlusSweep(pts, center, rx, ry, To0To2Pi(startAngle), sweepAngle)
	default:
		n = arcPlusSweep(pts, center, rx, ry, To0To2Pi(startAngle+sweepAngle), -sweepAngle)
		slices.Reverse(pts[:n])
	}
	return pts[:n]
}

// Arc is a circular arc. A positive sweep runs anticlockwise.
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	SweepAngle float64
}

func (a Arc) StartPoint() Point {
	return a.Center.PolarPoint(a.StartAngle, a.Radius)
}

func (a Arc) EndPoint() Point {
	return a.Center.PolarPoint(a.StartAngle+a.SweepAngle, a.Radius)
}

func (a Arc) MidPoint() Point {
	return a.Center.PolarPoint(a.StartAngle+a.SweepAngle/2, a.Radius)
}

// Beziers returns the arc as cubic segments; see [ArcToBezier].
func (a Arc) Beziers() []Point {
	return ArcToBezier(a.Center, a.Radius, a.Radius, a.StartAngle, a.SweepAngle)
}

// Arc3P returns the arc that starts at start, passes through mid and ends at
// end. It fails for colinear points.
func Arc3P(start, mid, end Point) (Arc, bool) {
	a1 := end.X - start.X
	b1 := end.Y - start.Y
	c1 := -0.5 * (a1*(end.X+start.X) + b1*(end.Y+start.Y))
	a2 := end.X - mid.X
	b2 := end.Y - mid.Y
	c2 := -0.5 * (a2*(end.X+mid.X) + b2*(end.Y+mid.Y))
	center, ok := CrossLineAbc(a1, b1, c1, a2, b2, c2, DefaultTol)
	if !ok {
		return Arc{}, false
	}

	a := start.Sub(center).Angle()
	b := mid.Sub(center).Angle()
	c := end.Sub(center).Angle()
	var sweep float64
	if a < c {
		if a < b && b < c {
			sweep = c - a
		} else {
			sweep = c - a - TwoPi
		}
	} else {
		if a > b && b > c {
			sweep = c - a
		} else {
			sweep = TwoPi - (a - c)
		}
	}
	return Arc{
		Center:     center,
		Radius:     center.Distance(start),
		StartAngle: a,
		SweepAngle: sweep,
	}, true
}

// ArcTan returns the arc from start to end whose tangent at start is tan.
func ArcTan(start, end Point, tan Vec2) (Arc, bool) {
	a := end.X - start.X
	b := end.Y - start.Y
	c := -0.5 * (a*(end.X+start.X) + b*(end.Y+start.Y))
	center, ok := CrossLineAbc(a, b, c, tan.X, tan.Y, -tan.X*start.X-tan.Y*start.Y, DefaultTol)
	if !ok {
		return Arc{}, false
	}

	sa := start.Sub(center).Angle()
	ea := end.Sub(center).Angle()
	var sweep float64
	if tan.Cross(start.Sub(center)) > 0 {
		sweep = -To0To2Pi(sa - ea)
	} else {
		sweep = To0To2Pi(ea - sa)
	}
	return Arc{
		Center:     center,
		Radius:     center.Distance(start),
		StartAngle: sa,
		SweepAngle: sweep,
	}, true
}

// ArcBulge returns the arc from start to end whose midpoint lies bulge to
// the left of the chord's midpoint.
func ArcBulge(start, end Point, bulge float64) (Arc, bool) {
	mid := start.Midpoint(end).RulerPoint(end, 0, bulge)
	return Arc3P(start, mid, end)
}
