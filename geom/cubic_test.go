package geom

import (
	"math"
	"testing"
)

func TestCubicBezDeriv(t *testing.T) {
	// y = x^2
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0, 1.0),
	}
	deriv := c.Differentiate()

	const n = 10
	const delta = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		p := c.Eval(ts)
		p1 := c.Eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		d := Vec2(deriv.Eval(ts))
		if l := d.Sub(dApprox).Hypot(); l >= delta*2 {
			t.Errorf("got difference of %g, want at most %g", l, delta*2)
		}
	}
}

func TestCubicBezSplit(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	const epsilon = 1e-12
	left, right := c.Split(0.3)
	assertNear(t, left.P3, c.Eval(0.3), epsilon)
	assertNear(t, right.P0, c.Eval(0.3), epsilon)
	for i := range 5 {
		ts := float64(i) / 4
		assertNear(t, left.Eval(ts), c.Eval(0.3*ts), epsilon)
		assertNear(t, right.Eval(ts), c.Eval(0.3+0.7*ts), epsilon)
	}

	sub := c.Subsegment(0.25, 0.75)
	assertNear(t, sub.P0, c.Eval(0.25), epsilon)
	assertNear(t, sub.P3, c.Eval(0.75), epsilon)

	rev := c.Reverse()
	assertNear(t, rev.Eval(0.2), c.Eval(0.8), epsilon)
}

func TestIntersectCubic(t *testing.T) {
	c := CubicBez{Pt(0.0, -10.0), Pt(10.0, 20.0), Pt(20.0, -20.0), Pt(30.0, 10.0)}
	xs, n := c.IntersectLine(Pt(10.0, -10.0), Pt(10.0, 10.0))
	diff(t, []float64{1.0 / 3.0}, xs[:n], approx(1e-8))

	if _, n := c.IntersectLine(Pt(0.0, 0.0), Pt(100.0, 0.0)); n != 3 {
		t.Errorf("got %d intersections, want 3", n)
	}
	if _, n := c.IntersectLine(Pt(50.0, 0.0), Pt(100.0, 0.0)); n != 0 {
		t.Errorf("got %d intersections, want 0", n)
	}

	arch := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	xs, n = arch.IntersectLine(Pt(0, 5), Pt(10, 5))
	h := math.Sqrt(1.0/3.0) / 2
	diff(t, []float64{0.5 - h, 0.5 + h}, xs[:n], approx(1e-9))
}

func TestCubicBezExtrema(t *testing.T) {
	q := CubicBez{Pt(0.0, 0.0), Pt(0.0, 1.0), Pt(1.0, 1.0), Pt(1.0, 0.0)}
	extrema, n := q.Extrema()
	if n != 1 {
		t.Fatalf("got %d extrema, expected 1", n)
	}
	if want := 0.5; math.Abs(extrema[0]-want) > 1e-6 {
		t.Errorf("got extrema %v, want %v", extrema[0], want)
	}

	q = CubicBez{Pt(0.4, 0.5), Pt(0.0, 1.0), Pt(1.0, 0.0), Pt(0.5, 0.4)}
	extrema, n = q.Extrema()
	if n != 4 {
		t.Fatalf("got %d extrema, expected 4", n)
	}
	for i := 1; i < n; i++ {
		if extrema[i-1] > extrema[i] {
			t.Errorf("extrema not sorted: %v", extrema[:n])
		}
	}
}

func TestCubicBezBoundingBox(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	diff(t, Box{0, 0, 10, 7.5}, c.BoundingBox(), approx(1e-12))
	diff(t, Box{0, 0, 10, 10}, c.ControlBox())

	pts := []Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0), Pt(10, -10), Pt(20, -10), Pt(20, 0)}
	diff(t, Box{0, -7.5, 20, 7.5}, BeziersBox(pts, false), approx(1e-12))
}

func TestCubicBezArclen(t *testing.T) {
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0, 1.0),
	}
	trueArclen := 0.5*math.Sqrt(5.0) + 0.25*math.Log(2.0+math.Sqrt(5.0))
	for i := range 10 {
		accuracy := math.Pow(0.1, float64(i))
		diff(t, trueArclen, c.Arclen(accuracy), approx(accuracy))
	}
	assertFloat(t, c.Length(), trueArclen, 1e-6)
}

func TestCubicBezLength(t *testing.T) {
	line := CubicBez{Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3)}
	assertFloat(t, line.Length(), 3*math.Sqrt2, 1e-9)
	if !line.IsStraight() {
		t.Error("colinear controls should be straight")
	}

	quarter := EllipseToBezier(Point{}, 10, 10)
	c := CubicFromPoints(quarter[:4])
	if c.IsStraight() {
		t.Error("quarter circle should not be straight")
	}
	assertFloat(t, c.Length(), 5*math.Pi, 1e-2)
}

func TestCubicBezParamAtLength(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}
	total := c.Length()
	if got := c.ParamAtLength(-1); got != 0 {
		t.Errorf("got %v for a negative length, want 0", got)
	}
	if got := c.ParamAtLength(total + 1); got != 1 {
		t.Errorf("got %v past the end, want 1", got)
	}

	ts := c.ParamAtLength(total / 2)
	assertFloat(t, ts, 0.5, 1e-4)
	for _, frac := range []float64{0.1, 0.3, 0.8} {
		ts := c.ParamAtLength(total * frac)
		left, _ := c.Split(ts)
		assertFloat(t, left.Length(), total*frac, 1e-3)
	}
}

func TestCubicBezPointAtDistance(t *testing.T) {
	line := CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	pt, ts, ok := line.PointAtDistance(1.5, Pt(0, 0))
	if !ok {
		t.Fatal("point should be found")
	}
	assertNear(t, pt, Pt(1.5, 0), 1e-4)
	assertFloat(t, ts, 0.5, 1e-4)

	if _, _, ok := line.PointAtDistance(5, Pt(0, 0)); ok {
		t.Error("curve never leaves the circle")
	}
}

func TestCubicBezTangents(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 0), Pt(5, 5), Pt(10, 0)}
	d0, d1 := c.Tangents()
	diff(t, Vec(5, 5), d0)
	diff(t, Vec(5, -5), d1)
}
