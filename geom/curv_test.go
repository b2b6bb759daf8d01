package geom

import (
	"math"
	"testing"
)

func TestEllipseToBezier(t *testing.T) {
	const epsilon = 1e-9
	center := Pt(1, 2)
	pts := EllipseToBezier(center, 4, 2)
	assertNear(t, pts[0], Pt(5, 2), epsilon)
	assertNear(t, pts[3], Pt(1, 4), epsilon)
	assertNear(t, pts[6], Pt(-3, 2), epsilon)
	assertNear(t, pts[9], Pt(1, 0), epsilon)
	assertNear(t, pts[12], pts[0], epsilon)

	circle := EllipseToBezier(Point{}, 10, 10)
	for i := 0; i < 12; i += 3 {
		c := CubicFromPoints(circle[i:])
		for j := range 9 {
			p := c.Eval(float64(j) / 8)
			if d := math.Abs(p.Distance(Point{}) - 10); d > 10*3e-4 {
				t.Errorf("quadrant %d: got radius error %g", i/3, d)
			}
		}
	}
}

func TestRoundRectToBeziers(t *testing.T) {
	const epsilon = 1e-9
	pts := RoundRectToBeziers(Box{0, 0, 100, 50}, 10, 10)
	// Top right corner first, then anticlockwise.
	assertNear(t, pts[0], Pt(100, 40), epsilon)
	assertNear(t, pts[3], Pt(90, 50), epsilon)
	assertNear(t, pts[4], Pt(10, 50), epsilon)
	assertNear(t, pts[7], Pt(0, 40), epsilon)
	assertNear(t, pts[8], Pt(0, 10), epsilon)
	assertNear(t, pts[11], Pt(10, 0), epsilon)
	assertNear(t, pts[12], Pt(90, 0), epsilon)
	assertNear(t, pts[15], Pt(100, 10), epsilon)

	// Radii are clamped to half the size.
	pts = RoundRectToBeziers(Box{0, 0, 10, 10}, 20, 20)
	assertNear(t, pts[0], Pt(10, 5), epsilon)
	assertNear(t, pts[3], Pt(5, 10), epsilon)
}

func TestArcToBezier(t *testing.T) {
	const epsilon = 1e-9
	if pts := ArcToBezier(Point{}, 0, 1, 0, math.Pi); pts != nil {
		t.Errorf("got %v for a zero radius, want nil", pts)
	}
	if pts := ArcToBezier(Point{}, 1, 1, 0, 1e-6); pts != nil {
		t.Errorf("got %v for a negligible sweep, want nil", pts)
	}

	pts := ArcToBezier(Point{}, 2, 2, 0, math.Pi)
	if len(pts) != 7 {
		t.Fatalf("got %d points, want 7", len(pts))
	}
	assertNear(t, pts[0], Pt(2, 0), epsilon)
	assertNear(t, pts[3], Pt(0, 2), epsilon)
	assertNear(t, pts[6], Pt(-2, 0), epsilon)

	// A clockwise sweep runs the other way round.
	pts = ArcToBezier(Point{}, 2, 2, 0, -math.Pi)
	assertNear(t, pts[0], Pt(2, 0), epsilon)
	assertNear(t, pts[len(pts)-1], Pt(-2, 0), epsilon)
	mid := CubicFromPoints(pts[:4]).Eval(1)
	if mid.Y > 0 {
		t.Errorf("clockwise arc went through %v", mid)
	}

	// Odd angles are split at the axes.
	pts = ArcToBezier(Pt(1, 1), 3, 0, math.Pi/4, math.Pi)
	if (len(pts)-1)%3 != 0 {
		t.Fatalf("got %d points, want 1+3k", len(pts))
	}
	assertNear(t, pts[0], Pt(1, 1).PolarPoint(math.Pi/4, 3), 1e-6)
	assertNear(t, pts[len(pts)-1], Pt(1, 1).PolarPoint(5*math.Pi/4, 3), 1e-6)
	for i := 0; i+3 < len(pts); i += 3 {
		p := CubicFromPoints(pts[i:]).Eval(0.5)
		if d := math.Abs(p.Distance(Pt(1, 1)) - 3); d > 3*3e-4 {
			t.Errorf("segment %d: got radius error %g", i/3, d)
		}
	}
}

func TestArc3P(t *testing.T) {
	const epsilon = 1e-9
	arc, ok := Arc3P(Pt(1, 0), Pt(0, 1), Pt(-1, 0))
	if !ok {
		t.Fatal("arc should exist")
	}
	assertNear(t, arc.Center, Pt(0, 0), epsilon)
	assertFloat(t, arc.Radius, 1, epsilon)
	assertFloat(t, arc.StartAngle, 0, epsilon)
	assertFloat(t, arc.SweepAngle, math.Pi, epsilon)
	assertNear(t, arc.MidPoint(), Pt(0, 1), epsilon)

	arc, ok = Arc3P(Pt(-1, 0), Pt(0, 1), Pt(1, 0))
	if !ok {
		t.Fatal("arc should exist")
	}
	assertFloat(t, arc.SweepAngle, -math.Pi, epsilon)
	assertNear(t, arc.EndPoint(), Pt(1, 0), epsilon)

	if _, ok := Arc3P(Pt(0, 0), Pt(1, 1), Pt(2, 2)); ok {
		t.Error("colinear points should not form an arc")
	}
}

func TestArcTan(t *testing.T) {
	const epsilon = 1e-9
	arc, ok := ArcTan(Pt(1, 0), Pt(0, 1), Vec(0, 1))
	if !ok {
		t.Fatal("arc should exist")
	}
	assertNear(t, arc.Center, Pt(0, 0), epsilon)
	assertFloat(t, arc.SweepAngle, math.Pi/2, epsilon)

	arc, ok = ArcTan(Pt(1, 0), Pt(0, -1), Vec(0, -1))
	if !ok {
		t.Fatal("arc should exist")
	}
	assertNear(t, arc.Center, Pt(0, 0), epsilon)
	assertFloat(t, arc.SweepAngle, -math.Pi/2, epsilon)
}

func TestArcBulge(t *testing.T) {
	const epsilon = 1e-9
	arc, ok := ArcBulge(Pt(-1, 0), Pt(1, 0), -1)
	if !ok {
		t.Fatal("arc should exist")
	}
	assertNear(t, arc.Center, Pt(0, 0), epsilon)
	assertNear(t, arc.MidPoint(), Pt(0, -1), epsilon)
}
