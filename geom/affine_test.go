package geom

import (
	"math"
	"testing"
)

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(Shear(0, 0, Point{})), p, epsilon)
	assertNear(t, p.Transform(Shear(2, 4, Point{})), Pt(19, 10), epsilon)
	assertNear(t, p.Transform(RotateAbout(math.Pi, Pt(1, 1))), Pt(-1, -2), epsilon)
	assertNear(t, p.Transform(ScaleAbout(2, 0, Pt(1, 1))), Pt(5, 7), epsilon)
	assertNear(t, p.Transform(MirrorAbout(Pt(1, 1))), Pt(-1, -2), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(a2).Transform(a1), p.Transform(a1.Mul(a2)), epsilon)
		assertNear(t, p.Transform(a1).Transform(a2), p.Transform(a1.Then(a2)), epsilon)
	}
}

func TestAffineInvert(t *testing.T) {
	const epsilon = 1e-9
	a := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}
	aInv, ok := a.Invert()
	if !ok {
		t.Fatal("transform should be invertible")
	}

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(aInv).Transform(a), p, epsilon)
		assertNear(t, p.Transform(a).Transform(aInv), p, epsilon)
	}

	inv, ok := Scale(0, 1).Invert()
	if ok {
		t.Error("singular transform reported as invertible")
	}
	diff(t, Identity, inv)
}

func TestReflection(t *testing.T) {
	affineAssertNear := func(a0, a1 Affine) {
		t.Helper()
		if !a0.Equal(a1, Tol{Vector: 1e-9}) {
			t.Fatalf("got %v, want %v", a0, a1)
		}
	}

	affineAssertNear(Reflect(Point{}, Vec(1, 0)), Affine{1, 0, 0, -1, 0, 0})
	affineAssertNear(Reflect(Point{}, Vec(0, 1)), Affine{-1, 0, 0, 1, 0, 0})
	affineAssertNear(Reflect(Point{}, Vec(1, 1)), Affine{0, 1, 1, 0, 0, 0})
	affineAssertNear(Reflect(Pt(4, 4), Vec(0, 0)), Identity)

	const epsilon = 1e-9
	{
		// No translation
		aff := Reflect(Pt(0, 0), Vec(1, 1))
		assertNear(t, Pt(0, 0).Transform(aff), Pt(0, 0), epsilon)
		assertNear(t, Pt(1, 1).Transform(aff), Pt(1, 1), epsilon)
		assertNear(t, Pt(1, 2).Transform(aff), Pt(2, 1), epsilon)
	}

	{
		// With translation
		aff := Reflect(Pt(1, 0), Vec(1, 1))
		assertNear(t, Pt(1, 0).Transform(aff), Pt(1, 0), epsilon)
		assertNear(t, Pt(2, 1).Transform(aff), Pt(2, 1), epsilon)
		assertNear(t, Pt(2, 2).Transform(aff), Pt(3, 1), epsilon)
	}

	if _, ok := Reflect(Point{}, Vec(1, 0)).HasMirror(); !ok {
		t.Error("reflection should report a mirror")
	}
	if _, ok := Rotate(1).HasMirror(); ok {
		t.Error("rotation should not report a mirror")
	}
}

func TestTransformWith2P(t *testing.T) {
	const epsilon = 1e-9
	aff := TransformWith2P(Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(1, 3))
	assertNear(t, Pt(0, 0).Transform(aff), Pt(1, 1), epsilon)
	assertNear(t, Pt(1, 0).Transform(aff), Pt(1, 3), epsilon)
	assertNear(t, Pt(0, 1).Transform(aff), Pt(-1, 1), epsilon)

	diff(t, Identity, TransformWith2P(Pt(1, 1), Pt(1, 1), Pt(0, 0), Pt(1, 0)))
}

func TestCoordSystem(t *testing.T) {
	const epsilon = 1e-9
	aff := CoordSystem(Pt(10, 0), 2, 0, math.Pi/2)
	assertNear(t, Pt(1, 0).Transform(aff), Pt(10, 2), epsilon)
	assertNear(t, Pt(0, 1).Transform(aff), Pt(8, 0), epsilon)
	assertFloat(t, aff.ScaleX(), 2, epsilon)
	assertFloat(t, aff.Angle(), math.Pi/2, epsilon)
}

func TestBoxTransform(t *testing.T) {
	b := NewBox(Pt(0, 0), Pt(2, 1))
	diff(t, Box{-1, 0, 0, 2}, b.Transform(Rotate(math.Pi/2)), approx(1e-9))
	diff(t, Box{1, 1, 5, 3}, b.Transform(Scale(2, 2).Then(Translate(Vec(1, 1)))), approx(1e-9))
}
