package raster

import (
	"math"

	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
)

// Flatness is the maximum distance, in pixels, between a curve and the
// polyline that replaces it.
const Flatness = 0.25

// subpath is a flattened contour in display pixels.
type subpath struct {
	pts    []geom.Point
	closed bool
}

// flattenCubic appends the polyline approximating c, without its first
// point. The number of pieces follows Wang's formula.
func flattenCubic(dst []geom.Point, c geom.CubicBez) []geom.Point {
	d1 := geom.Vec2(c.P0).Sub(geom.Vec2(c.P1).Mul(2)).Add(geom.Vec2(c.P2))
	d2 := geom.Vec2(c.P1).Sub(geom.Vec2(c.P2).Mul(2)).Add(geom.Vec2(c.P3))
	m := max(d1.Hypot(), d2.Hypot())
	n := 1
	if m > 0 {
		if f := math.Sqrt(3 * m / (4 * Flatness)); f > 1 {
			n = int(math.Ceil(f))
		}
	}
	n = min(n, 1000)
	for i := 1; i < n; i++ {
		dst = append(dst, c.Eval(float64(i)/float64(n)))
	}
	return append(dst, c.P3)
}

// dashPattern returns the on/off lengths of style for a pen width w, or
// nil for solid lines.
func dashPattern(style graphics.LineStyle, w float64) []float64 {
	var pat []float64
	switch style {
	case graphics.DashLine:
		pat = []float64{5, 3}
	case graphics.DotLine:
		pat = []float64{1, 2}
	case graphics.DashDot:
		pat = []float64{5, 2, 1, 2}
	case graphics.DashDotDot:
		pat = []float64{5, 2, 1, 2, 1, 2}
	default:
		return nil
	}
	s := max(w, 1)
	for i := range pat {
		pat[i] *= s
	}
	return pat
}

// dashPolyline splits the polyline pts into its dashes.
func dashPolyline(pts []geom.Point, pattern []float64, phase float64, emit func([]geom.Point)) {
	total := 0.0
	for _, l := range pattern {
		total += l
	}
	if total <= 0 || len(pts) < 2 {
		emit(pts)
		return
	}

	i := 0
	rem := math.Mod(phase, total)
	for rem >= pattern[i] {
		rem -= pattern[i]
		i = (i + 1) % len(pattern)
	}
	rem = pattern[i] - rem
	on := i%2 == 0

	var cur []geom.Point
	if on {
		cur = append(cur, pts[0])
	}
	for k := 1; k < len(pts); k++ {
		a, b := pts[k-1], pts[k]
		l := a.Distance(b)
		t := 0.0
		for l-t > rem {
			t += rem
			p := a.Lerp(b, t/l)
			if on {
				emit(append(cur, p))
				cur = nil
			} else {
				cur = []geom.Point{p}
			}
			on = !on
			i = (i + 1) % len(pattern)
			rem = pattern[i]
		}
		rem -= l - t
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		emit(cur)
	}
}

// outline appends to polys the polygons whose union is the stroke of the
// polyline pts: one quad per segment and, for wide pens, a disc at every
// vertex. All polygons wind the same way so that their overlaps add up.
func outline(polys [][]geom.Point, pts []geom.Point, w float64) [][]geom.Point {
	hw := w / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		if d.Hypot() < 1e-9 {
			continue
		}
		n := d.Normalize().Perp().Mul(hw)
		polys = append(polys, positive([]geom.Point{
			a.Translate(n), b.Translate(n), b.Translate(n.Negate()), a.Translate(n.Negate()),
		}))
	}
	if w > 2 {
		for _, p := range pts {
			polys = append(polys, disc(p, hw))
		}
	}
	return polys
}

// disc returns an anticlockwise polygon approximating a circle.
func disc(c geom.Point, r float64) []geom.Point {
	n := max(8, min(64, int(r*2)))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = c.PolarPoint(geom.TwoPi*float64(i)/float64(n), r)
	}
	return pts
}

func signedArea(pts []geom.Point) float64 {
	a := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// positive reverses pts in place if it winds clockwise.
func positive(pts []geom.Point) []geom.Point {
	if signedArea(pts) < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}
