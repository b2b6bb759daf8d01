package geom

import (
	"math"
	"slices"
	"testing"
)

func arcSamples(center Point, r, from, to float64, n int) []Point {
	pts := make([]Point, n+1)
	for i := range n + 1 {
		pts[i] = center.PolarPoint(from+(to-from)*float64(i)/float64(n), r)
	}
	return pts
}

func nearestOnAny(pt Point, curves []CubicBez) float64 {
	best := math.MaxFloat64
	for _, c := range curves {
		near, _ := NearestOnBezier(pt, c)
		best = min(best, pt.Distance(near))
	}
	return best
}

func TestFitCurve(t *testing.T) {
	pts := arcSamples(Point{}, 100, 0, math.Pi/2, 50)
	curves := slices.Collect(FitCurve(pts, 1))
	if len(curves) == 0 {
		t.Fatal("got no curves")
	}
	assertNear(t, curves[0].P0, pts[0], 1e-9)
	assertNear(t, curves[len(curves)-1].P3, pts[len(pts)-1], 1e-9)
	for i := 1; i < len(curves); i++ {
		assertNear(t, curves[i].P0, curves[i-1].P3, 1e-9)
	}
	limit := math.Sqrt(minFitError) + 1e-6
	for _, pt := range pts {
		if d := nearestOnAny(pt, curves); d > limit {
			t.Errorf("point %v is %g from the fitted curves", pt, d)
		}
	}
}

func TestFitCurveTwoPoints(t *testing.T) {
	curves := slices.Collect(FitCurve([]Point{Pt(0, 0), Pt(9, 0)}, 1))
	if len(curves) != 1 {
		t.Fatalf("got %d curves, want 1", len(curves))
	}
	diff(t, CubicBez{Pt(0, 0), Pt(3, 0), Pt(6, 0), Pt(9, 0)}, curves[0], approx(1e-12))
}

func TestFitCurvePenUp(t *testing.T) {
	nan := Pt(math.NaN(), math.NaN())
	first := arcSamples(Point{}, 50, 0, math.Pi/2, 20)
	second := arcSamples(Pt(200, 0), 50, 0, math.Pi, 30)
	pts := slices.Concat(first, []Point{nan}, second)

	curves := slices.Collect(FitCurve(pts, 1))
	starts := 0
	for i, c := range curves {
		if c.IsNaN() {
			t.Fatalf("curve %d has NaN coordinates", i)
		}
		if i == 0 || curves[i-1].P3 != c.P0 {
			starts++
		}
	}
	if starts != 2 {
		t.Errorf("got %d runs, want 2", starts)
	}

	knots, knotvs := FitCurveKnots(pts, 1)
	if len(knots) != len(knotvs) {
		t.Fatalf("got %d knots and %d tangents", len(knots), len(knotvs))
	}
	if want := len(curves) + 2; len(knots) != want {
		t.Errorf("got %d knots, want %d", len(knots), want)
	}
	assertNear(t, knots[0], first[0], 1e-9)
	assertNear(t, knots[len(knots)-1], second[len(second)-1], 1e-9)
}

func TestFitCurveEarlyStop(t *testing.T) {
	pts := arcSamples(Point{}, 100, 0, 2*math.Pi, 200)
	n := 0
	for range FitCurve(pts, 1) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("got %d iterations, want 1", n)
	}
}
