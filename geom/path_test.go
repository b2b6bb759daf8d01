package geom

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestPathNeedsFigure(t *testing.T) {
	var p Path
	if p.LineTo(Pt(1, 1), false) {
		t.Error("LineTo without a figure should fail")
	}
	if p.BezierTo(Pt(1, 1), Pt(2, 2), Pt(3, 3), false) {
		t.Error("BezierTo without a figure should fail")
	}
	if p.QuadTo(Pt(1, 1), Pt(2, 2), false) {
		t.Error("QuadTo without a figure should fail")
	}
	if p.CloseFigure() {
		t.Error("CloseFigure without a figure should fail")
	}
	if p.Len() != 0 {
		t.Errorf("got %d nodes, want 0", p.Len())
	}

	p.MoveTo(Pt(0, 0), false)
	if p.ArcTo(Pt(1, 1), false) {
		t.Error("ArcTo needs a previous segment")
	}
	p.LineTo(Pt(1, 0), false)
	if p.CloseFigure() {
		t.Error("a single segment should not close")
	}
}

func TestPathPolygon(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0), false)
	p.LineTo(Pt(10, 0), false)
	p.LineTo(Pt(10, 10), false)
	if !p.CloseFigure() {
		t.Fatal("figure should close")
	}
	if !p.IsLines() || !p.IsClosed() || p.IsCurve() {
		t.Errorf("got lines=%t closed=%t curve=%t", p.IsLines(), p.IsClosed(), p.IsCurve())
	}
	if p.LineTo(Pt(5, 5), false) {
		t.Error("a closed figure takes no more segments")
	}
	assertFloat(t, p.Length(), 20+10*math.Sqrt2, 1e-9)
	diff(t, Box{0, 0, 10, 10}, p.Extent())
	diff(t, "M0,0 L10,0 L10,10 Z", p.SVG(SVGOptions{}))

	res := p.HitTest(Pt(7, 3), 5)
	if !res.Inside {
		t.Error("point should be inside")
	}
	if res.Segment != 2 {
		t.Errorf("got segment %d, want the closing segment", res.Segment)
	}
	assertFloat(t, res.Dist, 2*math.Sqrt2, 1e-9)

	bez := p.Beziers()
	if len(bez) != 1 || len(bez[0]) != 10 {
		t.Fatalf("got %d runs, want one run of 10 points", len(bez))
	}
	assertNear(t, bez[0][9], Pt(0, 0), 1e-12)
}

func TestPathSegments(t *testing.T) {
	p, err := ParseSVGPath("M0,0 C0,10 10,10 10,0 Z")
	if err != nil {
		t.Fatal(err)
	}
	segs := slices.Collect(p.Segments())
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if segs[1].Start != 3 || segs[1].End != 0 {
		t.Errorf("got closing segment %d-%d, want 3-0", segs[1].Start, segs[1].End)
	}
	diff(t, Box{0, -7.5, 10, 7.5}, p.Extent(), approx(1e-12))

	n := 0
	for range p.Segments() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("got %d iterations, want 1", n)
	}
}

func TestParseSVGPath(t *testing.T) {
	p, err := ParseSVGPath("M0,0 C0,10 10,10 10,0 S20,-10 20,0")
	if err != nil {
		t.Fatal(err)
	}
	want := []NodeType{MoveTo, BezierTo, BezierTo, BezierTo, BezierTo, BezierTo, BezierTo}
	diff(t, want, p.Types())
	diff(t, Pt(10, -10), p.Point(4))
	diff(t, Box{0, -7.5, 20, 7.5}, p.Extent(), approx(1e-12))

	p, err = ParseSVGPath("m1,1 l2,0 h3 v4")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Point{Pt(1, 1), Pt(3, 1), Pt(6, 1), Pt(6, 5)}, p.Points())

	p, err = ParseSVGPath("M0 0 10 0 10 10")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []NodeType{MoveTo, LineTo, LineTo}, p.Types())

	p, err = ParseSVGPath("M0,0 Q5,5 10,0 T20,0")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(15, -5), p.Point(3))
	diff(t, "M0,0 Q5,5 10,0 Q15,-5 20,0", p.SVG(SVGOptions{}))

	p, err = ParseSVGPath("M0 0 L10 0 L10 10 Z L20 20")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.SubPathCount(); got != 2 {
		t.Errorf("got %d figures, want 2", got)
	}
	diff(t, "M0,0 L10,0 L10,10 Z M0,0 L20,20", p.SVG(SVGOptions{}))
}

func TestParseSVGPathArc(t *testing.T) {
	p, err := ParseSVGPath("M10,0 A10,10 0 0,1 -10,0")
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsCurve() {
		t.Error("arc should become curves")
	}
	diff(t, Pt(-10, 0), p.EndPoint())
	diff(t, Box{-10, 0, 10, 10}, p.Extent(), approx(1e-9))

	p, err = ParseSVGPath("M10,0 A10,10 0 0,0 -10,0")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Box{-10, -10, 10, 0}, p.Extent(), approx(1e-9))

	// Radii too small for the chord are scaled up.
	p, err = ParseSVGPath("M10,0 A1,1 0 0,1 -10,0")
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Box{-10, 0, 10, 10}, p.Extent(), approx(1e-9))
}

func TestParseSVGPathErrors(t *testing.T) {
	for _, d := range []string{
		"L0",
		"M0 0 X 1 2",
		"10 10",
		"M0 0 A1 1 0 2 0 5 5",
	} {
		if _, err := ParseSVGPath(d); !errors.Is(err, ErrSVGPath) {
			t.Errorf("%q: got error %v, want ErrSVGPath", d, err)
		}
	}
	if p, err := ParseSVGPath("  "); err != nil || p.Len() != 0 {
		t.Errorf("got %v, %v for blank data", p, err)
	}
}

func TestWriteSVGPrecision(t *testing.T) {
	p := PathFromNodes([]Point{Pt(0.123456, 0), Pt(1, 0)}, "ml")
	diff(t, "M0.12,0 L1,0", p.SVG(SVGOptions{MaxPrecision: 2}))
}

func TestPathReverse(t *testing.T) {
	p := PathFromNodes([]Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(2, 1)}, "mlqq")
	p.Reverse()
	diff(t, []Point{Pt(2, 1), Pt(2, 0), Pt(1, 0), Pt(0, 0)}, p.Points())
	diff(t, []NodeType{MoveTo, QuadTo, QuadTo, LineTo}, p.Types())

	sq := PathFromNodes([]Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}, "mllL")
	sq.Reverse()
	if !sq.IsClosed() {
		t.Error("reversed polygon should stay closed")
	}
	diff(t, []Point{Pt(0, 10), Pt(10, 10), Pt(10, 0), Pt(0, 0)}, sq.Points())

	two := PathFromNodes([]Point{Pt(0, 0), Pt(1, 0), Pt(5, 5), Pt(6, 5)}, "mlml")
	two.Reverse()
	diff(t, []Point{Pt(6, 5), Pt(5, 5), Pt(1, 0), Pt(0, 0)}, two.Points())
	diff(t, []NodeType{MoveTo, LineTo, MoveTo, LineTo}, two.Types())
}

func TestPathAppend(t *testing.T) {
	var a, b Path
	a.MoveTo(Pt(0, 0), false)
	a.LineTo(Pt(1, 0), false)
	b.MoveTo(Pt(1, 0), false)
	b.LineTo(Pt(1, 1), false)
	a.Append(&b)
	diff(t, []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)}, a.Points())
	if got := a.SubPathCount(); got != 1 {
		t.Errorf("got %d figures, want 1", got)
	}
	if !a.LineTo(Pt(0, 1), false) {
		t.Error("joined figure should stay open")
	}

	var c Path
	c.MoveTo(Pt(5, 5), false)
	c.LineTo(Pt(6, 6), false)
	a.Append(&c)
	if got := a.SubPathCount(); got != 2 {
		t.Errorf("got %d figures, want 2", got)
	}
}

func TestPathArcs(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0), false)
	p.LineTo(Pt(1, 0), false)
	if !p.ArcTo(Pt(2, 1), false) {
		t.Fatal("tangent arc should be added")
	}
	assertNear(t, p.EndPoint(), Pt(2, 1), 1e-9)
	// The arc leaves in the direction of the previous segment.
	segs := slices.Collect(p.Segments())
	d0, _ := segs[1].Tangents()
	if !d0.IsCodirectional(Vec(1, 0), DefaultTol) {
		t.Errorf("got start tangent %v", d0)
	}

	var q Path
	q.MoveTo(Pt(1, 0), false)
	if !q.ArcTo3P(Pt(0, 1), Pt(-1, 0), false) {
		t.Fatal("three point arc should be added")
	}
	assertNear(t, q.EndPoint(), Pt(-1, 0), 1e-9)
	diff(t, Box{-1, 0, 1, 1}, q.Extent(), approx(1e-9))
}

func TestPathTrimStart(t *testing.T) {
	p := PathFromNodes([]Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}, "mll")
	if !p.TrimStart(Pt(0, 0), 5) {
		t.Fatal("trim should succeed")
	}
	diff(t, []Point{Pt(5, 0), Pt(10, 0), Pt(10, 10)}, p.Points(), approx(1e-12))

	p = PathFromNodes([]Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}, "mll")
	if !p.TrimStart(Pt(0, 0), 12) {
		t.Fatal("trim should succeed")
	}
	diff(t, []Point{Pt(10, math.Sqrt(44)), Pt(10, 10)}, p.Points(), approx(1e-12))
	diff(t, []NodeType{MoveTo, LineTo}, p.Types())

	c := PathFromNodes([]Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}, "mccc")
	if !c.TrimStart(Pt(0, 0), 5) {
		t.Fatal("trim should succeed")
	}
	if c.Len() != 4 {
		t.Fatalf("got %d nodes, want 4", c.Len())
	}
	assertFloat(t, c.StartPoint().Distance(Pt(0, 0)), 5, 1e-3)
	diff(t, Pt(10, 0), c.EndPoint())

	closed := PathFromNodes([]Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)}, "mlL")
	if closed.TrimStart(Pt(0, 0), 5) {
		t.Error("closed paths should not trim")
	}
}

func TestPathCrossWithPath(t *testing.T) {
	a := PathFromNodes([]Point{Pt(0, 0), Pt(10, 10)}, "ml")
	b := PathFromNodes([]Point{Pt(0, 10), Pt(10, 0)}, "ml")
	pt, ok := a.CrossWithPath(b, Box{0, 0, 10, 10})
	if !ok {
		t.Fatal("lines should cross")
	}
	assertNear(t, pt, Pt(5, 5), 1e-9)

	line := PathFromNodes([]Point{Pt(0, 5), Pt(10, 5)}, "ml")
	arch := PathFromNodes([]Point{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}, "mccc")
	pt, ok = line.CrossWithPath(arch, Box{-1, -1, 11, 11})
	if !ok {
		t.Fatal("line should cross the curve")
	}
	assertFloat(t, pt.Y, 5, 1e-9)
	if d := min(math.Abs(pt.X-1.1509982054024945), math.Abs(pt.X-8.849001794597505)); d > 1e-6 {
		t.Errorf("got crossing %v", pt)
	}

	if _, ok := line.CrossWithPath(arch, Box{20, 20, 30, 30}); ok {
		t.Error("crossing outside the box should not count")
	}
}

func TestRoundLines(t *testing.T) {
	var p Path
	square := []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
	if !p.RoundLines(square, 1, true) {
		t.Fatal("rounding should succeed")
	}
	if !p.IsClosed() {
		t.Error("rounded polygon should stay closed")
	}
	diff(t, Box{0, 0, 10, 10}, p.Extent(), approx(1e-9))
	assertNear(t, p.StartPoint(), Pt(0, 1), 1e-9)
	wantLen := 40 - 8 + 2*math.Pi
	assertFloat(t, p.Length(), wantLen, 1e-2)

	if p.RoundLines(square[:2], 1, false) {
		t.Error("two points have no corner")
	}
}
