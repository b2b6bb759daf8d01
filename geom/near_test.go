package geom

import (
	"math"
	"testing"
)

func TestLinesHit(t *testing.T) {
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}

	res := LinesHit(square, true, Pt(5, 0.5), 1, CheckAll, -1)
	if res.Type != AreaOnEdge || res.Segment != 0 {
		t.Errorf("got %v on segment %d, want edge 0", res.Type, res.Segment)
	}
	assertFloat(t, res.Dist, 0.5, 1e-9)
	assertNear(t, res.Point, Pt(5, 0), 1e-9)

	res = LinesHit(square, true, Pt(10.2, 9.9), 1, CheckAll, -1)
	if res.Type != AreaAtVertex || res.Segment != 2 {
		t.Errorf("got %v on segment %d, want vertex 2", res.Type, res.Segment)
	}

	// Deep inside: the nearest edge is reported, but not as a hit.
	res = LinesHit(square, true, Pt(5, 3), 1, CheckAll, -1)
	if !res.Inside || res.Segment != -1 {
		t.Errorf("got inside=%t segment=%d, want inside and no segment", res.Inside, res.Segment)
	}
	assertFloat(t, res.Dist, 3, 1e-9)
	assertNear(t, res.Point, Pt(5, 0), 1e-9)
	if res.Hit(1) {
		t.Error("inside point should not count as a hit")
	}

	res = LinesHit(square, true, Pt(20, 20), 1, CheckAll, -1)
	if res.Segment != -1 || res.Dist != math.MaxFloat64 {
		t.Errorf("got %+v, want a miss", res)
	}

	// An open polyline has no inside.
	res = LinesHit(square, false, Pt(5, 3), 1, CheckAll, -1)
	if res.Inside || res.Hit(1) {
		t.Errorf("got %+v, want a miss", res)
	}
}

func TestCubicSplinesHit(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0), Pt(10, -10), Pt(20, -10), Pt(20, 0)}
	res := CubicSplinesHit(pts, nil, false, Pt(15, -8), 1, false)
	if res.Segment != 3 {
		t.Fatalf("got segment %d, want 3", res.Segment)
	}
	assertFloat(t, res.Dist, 0.5, 1e-6)

	res = CubicSplinesHit(pts, nil, false, Pt(5, 50), 1, false)
	if res.Hit(1) {
		t.Errorf("got %+v, want a miss", res)
	}

	knots := []Point{Pt(0, 0), Pt(10, 0)}
	knotvs := []Vec2{Vec(10, 0), Vec(10, 0)}
	res = CubicSplinesHit(knots, knotvs, false, Pt(5, 0.25), 1, true)
	if res.Segment != 0 {
		t.Fatalf("got segment %d, want 0", res.Segment)
	}
	assertFloat(t, res.Dist, 0.25, 1e-6)
}

func TestQuadSplinesHit(t *testing.T) {
	knots := []Point{Pt(0, 0), Pt(10, 10), Pt(20, 0)}
	res := QuadSplinesHit(knots, false, Pt(10, 6), 2)
	if res.Segment != 0 {
		t.Fatalf("got segment %d, want 0", res.Segment)
	}
	assertFloat(t, res.Dist, 1, 1e-6)
	assertNear(t, res.Point, Pt(10, 5), 1e-6)

	if res := QuadSplinesHit(knots[:2], false, Pt(0, 0), 2); res.Segment != -1 {
		t.Errorf("got segment %d for two knots, want -1", res.Segment)
	}
}

func TestMoveRectHandle(t *testing.T) {
	rect := Box{0, 0, 10, 10}
	diff(t, Box{0, -5, 20, 10}, MoveRectHandle(rect, 2, Pt(20, -5), false))
	diff(t, Box{0, 0, 30, 10}, MoveRectHandle(rect, 5, Pt(30, 3), false))
	diff(t, Box{-4, 0, 10, 10}, MoveRectHandle(rect, 7, Pt(-4, 8), false))
	diff(t, rect, MoveRectHandle(rect, 8, Pt(30, 3), false))

	wide := Box{0, 0, 10, 5}
	diff(t, Box{0, 0, 20, 10}, MoveRectHandle(wide, 1, Pt(20, 6), true))
	diff(t, Box{0, 0, 20, 6}, MoveRectHandle(wide, 1, Pt(20, 6), false))

	diff(t, Pt(5, 10), RectHandle(rect, 4))
	diff(t, Pt(5, 5), RectHandle(rect, 9))
}

func TestRoundRectHit(t *testing.T) {
	rect := Box{0, 0, 100, 50}

	res := RoundRectHit(rect, 10, 10, Pt(50, 50.5), 1)
	if res.Segment != 4 {
		t.Fatalf("got segment %d, want the top edge", res.Segment)
	}
	assertFloat(t, res.Dist, 0.5, 1e-9)

	res = RoundRectHit(rect, 10, 10, Pt(100.5, 25), 1)
	if res.Segment != 5 {
		t.Fatalf("got segment %d, want the right edge", res.Segment)
	}

	s := math.Sqrt2 / 2
	corners := []struct {
		pt   Point
		want int
	}{
		{Pt(10-10*s, 40+10*s), 0},
		{Pt(90+10*s, 40+10*s), 1},
		{Pt(90+10*s, 10-10*s), 2},
		{Pt(10-10*s, 10-10*s), 3},
	}
	for _, c := range corners {
		res := RoundRectHit(rect, 10, 10, c.pt, 1)
		if res.Segment != c.want {
			t.Errorf("probe %v: got segment %d, want %d", c.pt, res.Segment, c.want)
		}
		if res.Dist > 0.01 {
			t.Errorf("probe %v: got distance %g", c.pt, res.Dist)
		}
	}

	// The square corner is cut off by the arc.
	if res := RoundRectHit(rect, 10, 10, Pt(0, 50), 1); res.Hit(1) {
		t.Errorf("got %+v for the cut corner, want a miss", res)
	}
}
