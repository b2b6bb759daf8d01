package geom

import (
	"math"
	"testing"
)

func TestNearestOnBezier(t *testing.T) {
	curves := []CubicBez{
		{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)},
		{Pt(0.0, -10.0), Pt(10.0, 20.0), Pt(20.0, -20.0), Pt(30.0, 10.0)},
		{Pt(0, 0), Pt(30, 30), Pt(-20, 30), Pt(10, 0)},
	}
	probes := []Point{Pt(5, 5), Pt(5, 20), Pt(-3, 2), Pt(12, -1), Pt(15, 3), Pt(3, 7.4)}

	const samples = 2000
	for ci, c := range curves {
		for _, pt := range probes {
			got, ts := NearestOnBezier(pt, c)
			assertNear(t, got, c.Eval(ts), 1e-9)

			best := math.MaxFloat64
			for i := range samples + 1 {
				best = min(best, pt.Distance(c.Eval(float64(i)/samples)))
			}
			if d := pt.Distance(got); d > best+1e-6 {
				t.Errorf("curve %d, probe %v: got distance %g, sampling found %g", ci, pt, d, best)
			}
		}
	}
}

func TestNearestOnBezierEndpoints(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0)}
	got, ts := NearestOnBezier(Pt(-5, 1), c)
	assertNear(t, got, Pt(0, 0), 1e-9)
	assertFloat(t, ts, 0, 1e-9)

	got, ts = NearestOnBezier(Pt(8, -1), c)
	assertNear(t, got, Pt(3, 0), 1e-9)
	assertFloat(t, ts, 1, 1e-9)

	got, _ = NearestOnBezier(Pt(1.5, 2), c)
	assertNear(t, got, Pt(1.5, 0), 1e-6)
}
