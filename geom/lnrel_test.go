package geom

import (
	"testing"
)

func TestSideOfLine(t *testing.T) {
	a, b := Pt(0, 0), Pt(1, 0)
	if !IsLeft(a, b, Pt(0, 1)) {
		t.Error("(0, 1) should be left of the x axis")
	}
	if IsLeft(a, b, Pt(0, -1)) {
		t.Error("(0, -1) should be right of the x axis")
	}
	if !IsColinear(a, b, Pt(5, 0)) {
		t.Error("(5, 0) should be colinear")
	}
	if !IsBetweenLine(a, Pt(10, 0), Pt(5, 0)) {
		t.Error("(5, 0) should be between the endpoints")
	}
	if IsBetweenLine(a, Pt(10, 0), Pt(11, 0)) {
		t.Error("(11, 0) should not be between the endpoints")
	}
}

func TestPtToLine(t *testing.T) {
	const epsilon = 1e-9
	d, near := PtToLine(Pt(0, 0), Pt(10, 0), Pt(5, 3))
	assertFloat(t, d, 3, epsilon)
	assertNear(t, near, Pt(5, 0), epsilon)

	// Beyond the end the nearest point is the endpoint.
	d, near = PtToLine(Pt(0, 0), Pt(10, 0), Pt(13, 4))
	assertFloat(t, d, 5, epsilon)
	assertNear(t, near, Pt(10, 0), epsilon)

	d, near = PtToBeeline2(Pt(0, 0), Pt(1, 1), Pt(2, 0))
	assertFloat(t, d, 1.4142135623730951, epsilon)
	assertNear(t, near, Pt(1, 1), epsilon)
}

func TestCross2Line(t *testing.T) {
	const epsilon = 1e-9
	pt, ok := Cross2Line(Pt(0, 0), Pt(2, 2), Pt(0, 2), Pt(2, 0), DefaultTol)
	if !ok {
		t.Fatal("segments should cross")
	}
	assertNear(t, pt, Pt(1, 1), epsilon)

	pt, ok = Cross2Line(Pt(0, 2), Pt(2, 0), Pt(0, 0), Pt(2, 2), DefaultTol)
	if !ok {
		t.Fatal("segments should cross")
	}
	assertNear(t, pt, Pt(1, 1), epsilon)

	if _, ok := Cross2Line(Pt(0, 0), Pt(1, 1), Pt(0, 2), Pt(2, 0), DefaultTol); ok {
		t.Error("segments touching only at an endpoint should not cross")
	}
	if _, ok := Cross2Line(Pt(0, 0), Pt(2, 0), Pt(0, 1), Pt(2, 1), DefaultTol); ok {
		t.Error("parallel segments should not cross")
	}

	// Far-away endpoints are clipped first.
	pt, ok = Cross2Line(Pt(-1e7, 0), Pt(1e7, 0), Pt(3, -1), Pt(3, 1), DefaultTol)
	if !ok {
		t.Fatal("long segment should cross")
	}
	assertNear(t, pt, Pt(3, 0), 1e-6)

	pt, ok = CrossLineAbc(1, 0, -2, 0, 1, -3, DefaultTol)
	if !ok {
		t.Fatal("x=2 and y=3 should cross")
	}
	assertNear(t, pt, Pt(2, 3), epsilon)
}

func TestClipLine(t *testing.T) {
	box := Box{0, 0, 5, 5}
	p1, p2, ok := ClipLine(Pt(-10, 0), Pt(10, 0), box)
	if !ok {
		t.Fatal("segment should intersect the box")
	}
	diff(t, Pt(0, 0), p1)
	diff(t, Pt(5, 0), p2)

	q1, q2, ok := ClipLine(p1, p2, box)
	if !ok {
		t.Fatal("clipping twice should keep the segment")
	}
	diff(t, p1, q1)
	diff(t, p2, q2)

	if _, _, ok := ClipLine(Pt(-10, 6), Pt(10, 6), box); ok {
		t.Error("segment above the box should be rejected")
	}

	p1, p2, ok = ClipLine(Pt(-5, -5), Pt(10, 10), box)
	if !ok {
		t.Fatal("diagonal should intersect the box")
	}
	assertNear(t, p1, Pt(0, 0), 1e-9)
	assertNear(t, p2, Pt(5, 5), 1e-9)
}

func TestPtInArea(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	tol := Tol{Point: 0.1, Vector: 1e-4}

	tests := []struct {
		pt    Point
		want  AreaResult
		index int
	}{
		{Pt(5, 5), AreaInside, -1},
		{Pt(10.05, 10), AreaAtVertex, 2},
		{Pt(5, 0.05), AreaOnEdge, 0},
		{Pt(0.05, 5), AreaOnEdge, 3},
		{Pt(15, 5), AreaOutside, -1},
		{Pt(-1, -1), AreaOutside, -1},
	}
	for _, tt := range tests {
		got, index := PtInArea(tt.pt, square, tol, true, CheckAll, -1)
		if got != tt.want || index != tt.index {
			t.Errorf("PtInArea(%v) = %v, %d; want %v, %d", tt.pt, got, index, tt.want, tt.index)
		}
	}

	// The closing edge is not an edge of an open polyline.
	if got, _ := PtInArea(Pt(0.05, 5), square, tol, false, CheckEdge, -1); got != AreaOutside {
		t.Errorf("got %v, want %v", got, AreaOutside)
	}
	// Ignoring a vertex also ignores its edges.
	if got, _ := PtInArea(Pt(10.05, 10), square, tol, true, CheckVertex|CheckEdge, 2); got != AreaOutside {
		t.Errorf("got %v, want %v", got, AreaOutside)
	}
	// Two points never enclose anything.
	if got, _ := PtInArea(Pt(5, 5), square[:2], tol, true, CheckInside, -1); got != AreaOutside {
		t.Errorf("got %v, want %v", got, AreaOutside)
	}
}

func TestIsConvex(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	convex, acw := IsConvex(square)
	if !convex || !acw {
		t.Errorf("got %t, %t; want true, true", convex, acw)
	}

	reversed := []Point{Pt(0, 10), Pt(10, 10), Pt(10, 0), Pt(0, 0)}
	convex, acw = IsConvex(reversed)
	if !convex || acw {
		t.Errorf("got %t, %t; want true, false", convex, acw)
	}

	dart := []Point{Pt(0, 0), Pt(10, 0), Pt(5, 2), Pt(5, 10)}
	if convex, _ := IsConvex(dart); convex {
		t.Error("dart should not be convex")
	}
}
