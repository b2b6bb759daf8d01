package geom

import (
	"testing"
)

// secondDerivative returns the second derivative of Hermite segment i at t.
func secondDerivative(knots []Point, knotvs []Vec2, i int, t float64) Vec2 {
	n := len(knots)
	p1, p2 := Vec2(knots[i%n]), Vec2(knots[(i+1)%n])
	d1, d2 := knotvs[i%n], knotvs[(i+1)%n]
	b2 := p2.Sub(p1).Mul(3).Sub(d1.Mul(2)).Sub(d2)
	b3 := p1.Sub(p2).Mul(2).Add(d1).Add(d2)
	return b2.Mul(2).Add(b3.Mul(6 * t))
}

func TestTriEquations(t *testing.T) {
	vs := []Vec2{Vec(3, 6), Vec(3, 6)}
	if !TriEquations([]float64{1}, []float64{2, 2}, []float64{1}, vs) {
		t.Fatal("system should be solvable")
	}
	diff(t, []Vec2{Vec(1, 2), Vec(1, 2)}, vs, approx(1e-12))

	vs = []Vec2{Vec(1, 1), Vec(1, 1)}
	if TriEquations([]float64{1}, []float64{0, 1}, []float64{1}, vs) {
		t.Error("zero pivot should fail")
	}
	diff(t, []Vec2{Vec(1, 1), Vec(1, 1)}, vs)
}

func TestGaussJordan(t *testing.T) {
	mat := []float64{
		0, 1,
		1, 0,
	}
	vs := []Vec2{Vec(2, 0), Vec(3, 0)}
	if !GaussJordan(2, mat, vs) {
		t.Fatal("system should be solvable")
	}
	diff(t, []Vec2{Vec(3, 0), Vec(2, 0)}, vs, approx(1e-12))

	mat = []float64{
		2, 1, 0,
		1, 3, 1,
		0, 1, 2,
	}
	vs = []Vec2{Vec(3, 0), Vec(5, 0), Vec(3, 0)}
	if !GaussJordan(3, mat, vs) {
		t.Fatal("system should be solvable")
	}
	diff(t, []Vec2{Vec(1, 0), Vec(1, 0), Vec(1, 0)}, vs, approx(1e-12))

	mat = []float64{
		1, 2,
		2, 4,
	}
	if GaussJordan(2, mat, []Vec2{{}, {}}) {
		t.Error("singular system should fail")
	}
}

func TestCubicSplinesOpen(t *testing.T) {
	const epsilon = 1e-9
	knots := []Point{Pt(0, 0), Pt(1, 1), Pt(2, 0), Pt(3, 1), Pt(5, -1)}
	knotvs := make([]Vec2, len(knots))
	if !CubicSplines(knots, knotvs, 0, 1) {
		t.Fatal("spline should solve")
	}
	for i := range len(knots) - 1 {
		assertNear(t, FitCubicSpline(knots, knotvs, i, 0), knots[i], epsilon)
		assertNear(t, FitCubicSpline(knots, knotvs, i, 1), knots[i+1], epsilon)
	}
	// C² at the interior knots.
	for i := 1; i < len(knots)-1; i++ {
		left := secondDerivative(knots, knotvs, i-1, 1)
		right := secondDerivative(knots, knotvs, i, 0)
		if d := left.Sub(right).Hypot(); d > epsilon {
			t.Errorf("knot %d: second derivatives differ by %g", i, d)
		}
	}
	// Natural ends.
	if d := secondDerivative(knots, knotvs, 0, 0).Hypot(); d > epsilon {
		t.Errorf("got start curvature %g, want 0", d)
	}
	if d := secondDerivative(knots, knotvs, len(knots)-2, 1).Hypot(); d > epsilon {
		t.Errorf("got end curvature %g, want 0", d)
	}
}

func TestCubicSplinesClamped(t *testing.T) {
	knots := []Point{Pt(0, 0), Pt(1, 1), Pt(2, 0)}
	knotvs := []Vec2{Vec(0, 5), {}, Vec(0, -5)}
	if !CubicSplines(knots, knotvs, CubicTan1|CubicTan2, 1) {
		t.Fatal("spline should solve")
	}
	diff(t, Vec(0, 5), knotvs[0], approx(1e-12))
	diff(t, Vec(0, -5), knotvs[2], approx(1e-12))
}

func TestCubicSplinesClosed(t *testing.T) {
	const epsilon = 1e-9
	knots := []Point{Pt(0, 0), Pt(10, 0), Pt(12, 8), Pt(3, 10)}
	knotvs := make([]Vec2, len(knots))
	if !CubicSplines(knots, knotvs, CubicLoop, 1) {
		t.Fatal("spline should solve")
	}
	n := len(knots)
	for i := range n {
		assertNear(t, FitCubicSpline(knots, knotvs, i, 1), knots[(i+1)%n], epsilon)
		left := secondDerivative(knots, knotvs, i+n-1, 1)
		right := secondDerivative(knots, knotvs, i, 0)
		if d := left.Sub(right).Hypot(); d > epsilon {
			t.Errorf("knot %d: second derivatives differ by %g", i, d)
		}
	}

	bez := CubicSplinesToBeziers(knots, knotvs, true, true)
	if len(bez) != 1+3*n {
		t.Fatalf("got %d points, want %d", len(bez), 1+3*n)
	}
	assertNear(t, bez[len(bez)-1], bez[0], epsilon)
	for i := range n {
		c := CubicFromPoints(bez[3*i:])
		assertNear(t, c.Eval(0.3), FitCubicSpline(knots, knotvs, i, 0.3), 1e-9)
	}
}

func TestCubicSplinesTension(t *testing.T) {
	knots := []Point{Pt(0, 0), Pt(1, 1), Pt(2, 0)}
	loose := make([]Vec2, 3)
	tight := make([]Vec2, 3)
	if !CubicSplines(knots, loose, 0, 1) || !CubicSplines(knots, tight, 0, 0.5) {
		t.Fatal("spline should solve")
	}
	for i := range knots {
		diff(t, loose[i].Mul(0.5), tight[i], approx(1e-12))
	}

	untouched := []Vec2{Vec(7, 7)}
	if CubicSplines(knots[:1], untouched, 0, 1) {
		t.Error("a single knot should fail")
	}
	diff(t, []Vec2{Vec(7, 7)}, untouched)
}

func TestBSplinesToBeziers(t *testing.T) {
	const epsilon = 1e-9
	ctl := []Point{Pt(0, 0), Pt(6, 0), Pt(6, 6), Pt(0, 6)}
	if got := BSplinesToBeziers(ctl[:3], false); got != nil {
		t.Errorf("got %v for three open control points, want nil", got)
	}

	open := BSplinesToBeziers(ctl, false)
	if len(open) != 4 {
		t.Fatalf("got %d points, want 4", len(open))
	}
	assertNear(t, open[0], Pt(5, 1), epsilon)
	assertNear(t, open[3], Pt(5, 5), epsilon)

	closed := BSplinesToBeziers(ctl, true)
	if len(closed) != 13 {
		t.Fatalf("got %d points, want 13", len(closed))
	}
	assertNear(t, closed[12], closed[0], epsilon)
	// Tangent continuity at the seam.
	in := closed[12].Sub(closed[11])
	out := closed[1].Sub(closed[0])
	if !in.IsCodirectional(out, DefaultTol) {
		t.Errorf("seam tangents %v and %v differ", in, out)
	}
}
