package geom

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Pt(1, 2).Offset(3, 4), Pt(4, 6))
	diff(t, Pt(4, 6).Sub(Pt(1, 2)), Vec(3, 4))
	diff(t, Pt(0, 0).Midpoint(Pt(4, 2)), Pt(2, 1))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
}

func TestPointEqual(t *testing.T) {
	if !Pt(1, 1).Equal(Pt(1, 1+MinDist), DefaultTol) {
		t.Error("points within tolerance should be equal")
	}
	if Pt(1, 1).Equal(Pt(1, 1.1), DefaultTol) {
		t.Error("points 0.1 apart should differ")
	}
}

func TestRulerPoint(t *testing.T) {
	const epsilon = 1e-9
	assertNear(t, Pt(0, 0).RulerPoint(Pt(10, 0), 3, 0), Pt(3, 0), epsilon)
	assertNear(t, Pt(0, 0).RulerPoint(Pt(10, 0), 3, 2), Pt(3, 2), epsilon)
	assertNear(t, Pt(1, 1).RulerPoint(Pt(1, 5), 2, 1), Pt(0, 3), epsilon)
	// Coincident points offset along the axes.
	assertNear(t, Pt(1, 1).RulerPoint(Pt(1, 1), 2, 1), Pt(3, 2), epsilon)
	assertNear(t, Pt(0, 0).PolarPoint(math.Pi/2, 2), Pt(0, 2), epsilon)
}

func TestVecAngles(t *testing.T) {
	const epsilon = 1e-12
	assertFloat(t, Vec(1, 0).AngleTo(Vec(0, 1)), math.Pi/2, epsilon)
	assertFloat(t, Vec(1, 0).AngleTo2(Vec(0, 1)), math.Pi/2, epsilon)
	assertFloat(t, Vec(1, 0).AngleTo2(Vec(0, -1)), -math.Pi/2, epsilon)
	assertFloat(t, Vec(0, 0).Angle(), 0, epsilon)

	if !Vec(1, 0).IsParallel(Vec(-3, 0), DefaultTol) {
		t.Error("opposite vectors should be parallel")
	}
	if Vec(1, 0).IsCodirectional(Vec(-3, 0), DefaultTol) {
		t.Error("opposite vectors should not be codirectional")
	}
	if !Vec(1, 1).IsPerpendicular(Vec(-1, 1), DefaultTol) {
		t.Error("vectors should be perpendicular")
	}
}

func TestAngleHelpers(t *testing.T) {
	const epsilon = 1e-12
	assertFloat(t, To0To2Pi(-math.Pi/2), 3*math.Pi/2, epsilon)
	assertFloat(t, ToPi(3*math.Pi/2), -math.Pi/2, epsilon)
	assertFloat(t, MidAngle(0, math.Pi/2), math.Pi/4, epsilon)
	assertFloat(t, MidAngle(3*math.Pi/2, 0), 7*math.Pi/4, epsilon)
	assertFloat(t, DiffAngle(3*math.Pi/2, 0), math.Pi/2, epsilon)
	assertFloat(t, RoundReal(1.23456, 2), 1.23, epsilon)
	assertFloat(t, Rad2Deg(Deg2Rad(30)), 30, epsilon)
}

func TestBox(t *testing.T) {
	var null Box
	if !null.IsNull() {
		t.Error("zero box should be null")
	}
	b := NewBox(Pt(10, 10), Pt(0, 0))
	diff(t, Box{0, 0, 10, 10}, b)
	if null.IsIntersect(b) || b.IsIntersect(null) {
		t.Error("null box intersects nothing")
	}
	diff(t, b, b.Union(null))
	diff(t, Box{0, 0, 20, 15}, b.Union(Box{5, 5, 20, 15}))
	diff(t, Box{5, 5, 10, 10}, b.Intersect(Box{5, 5, 20, 15}))
	diff(t, Box{}, b.Intersect(Box{11, 11, 20, 15}))
	diff(t, Box{-1, 0, 10, 12}, BoxOfPoints(Pt(-1, 3), Pt(10, 0), Pt(4, 12)))
	diff(t, Box{-1, -2, 1, 2}, BoxFromCenter(Pt(0, 0), 2, 4))
	diff(t, Box{-1, -1, 1, 1}, BoxFromCenter(Pt(0, 0), 2, 0))
	if !b.ContainsPoint(Pt(10.05, 5), Tol{Point: 0.1}) {
		t.Error("point within tolerance of the border should be contained")
	}
	if b.ContainsPoint(Pt(10.5, 5), Tol{Point: 0.1}) {
		t.Error("point outside should not be contained")
	}
}
