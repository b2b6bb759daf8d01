package geom

import (
	"math"
	"testing"
)

func TestCrossTwoCircles(t *testing.T) {
	const epsilon = 1e-9
	p1, p2, n := CrossTwoCircles(Pt(0, 0), 1, Pt(1, 0), 1)
	if n != 2 {
		t.Fatalf("got %d intersections, want 2", n)
	}
	h := math.Sqrt(3) / 2
	if p1.Y < p2.Y {
		p1, p2 = p2, p1
	}
	assertNear(t, p1, Pt(0.5, h), epsilon)
	assertNear(t, p2, Pt(0.5, -h), epsilon)

	_, _, n = CrossTwoCircles(Pt(0, 0), 1, Pt(3, 0), 1)
	if n != 0 {
		t.Errorf("got %d intersections for separate circles, want 0", n)
	}
	_, _, n = CrossTwoCircles(Pt(0, 0), 5, Pt(1, 0), 1)
	if n != 0 {
		t.Errorf("got %d intersections for nested circles, want 0", n)
	}
	_, _, n = CrossTwoCircles(Pt(2, 2), 1, Pt(2, 2), 1)
	if n != -1 {
		t.Errorf("got %d intersections for identical circles, want -1", n)
	}

	p1, _, n = CrossTwoCircles(Pt(0, 0), 1, Pt(2, 0), 1)
	if n != 1 {
		t.Fatalf("got %d intersections for touching circles, want 1", n)
	}
	assertNear(t, p1, Pt(1, 0), 1e-6)
}

func TestCrossTwoCirclesOnBothCircles(t *testing.T) {
	c1, r1 := Pt(1, 2), 3.0
	c2, r2 := Pt(4, 6), 4.0
	p1, p2, n := CrossTwoCircles(c1, r1, c2, r2)
	if n != 2 {
		t.Fatalf("got %d intersections, want 2", n)
	}
	for _, p := range []Point{p1, p2} {
		assertFloat(t, p.Distance(c1), r1, 1e-9)
		assertFloat(t, p.Distance(c2), r2, 1e-9)
	}
	if p1.Equal(p2, DefaultTol) {
		t.Errorf("got the same point twice: %v", p1)
	}
}

func TestCrossLineCircle(t *testing.T) {
	const epsilon = 1e-9
	p1, p2, n := CrossLineCircle(Pt(-2, 0), Pt(2, 0), Pt(0, 0), 1, false)
	if n != 2 {
		t.Fatalf("got %d intersections, want 2", n)
	}
	assertNear(t, p1, Pt(1, 0), epsilon)
	assertNear(t, p2, Pt(-1, 0), epsilon)

	p1, _, n = CrossLineCircle(Pt(-2, 1), Pt(2, 1), Pt(0, 0), 1, false)
	if n != 1 {
		t.Fatalf("got %d intersections for a tangent, want 1", n)
	}
	assertNear(t, p1, Pt(0, 1), epsilon)

	p1, p2, n = CrossLineCircle(Pt(0, 0), Pt(2, 0), Pt(0, 0), 1, true)
	if n != 1 {
		t.Fatalf("got %d intersections on the ray, want 1", n)
	}
	assertNear(t, p1, Pt(1, 0), epsilon)
	assertNear(t, p2, Pt(1, 0), epsilon)

	_, _, n = CrossLineCircle(Pt(-2, 3), Pt(2, 3), Pt(0, 0), 1, false)
	if n != 0 {
		t.Errorf("got %d intersections for a distant line, want 0", n)
	}
}
