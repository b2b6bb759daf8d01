package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/vgcore/geom"
)

func assertPoint(t *testing.T, want, got geom.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-6, "y of %v", got)
}

func TestRectDragCorner(t *testing.T) {
	r := NewRect(geom.Pt(0, 0), geom.Pt(10, 5))
	require.True(t, r.SetHandlePoint(2, geom.Pt(20, -5), 0))
	ext := r.Extent()
	assert.InDelta(t, 20, ext.Width(), 1e-6)
	assert.InDelta(t, 10, ext.Height(), 1e-6)
	assert.InDelta(t, 20, r.Width(), 1e-6)
}

func TestArcDerivedSweep(t *testing.T) {
	a := NewArc(geom.Pt(0, 0), 10, 0, math.Pi/2)
	assertPoint(t, geom.Pt(0, 10), a.EndPoint())
	assert.InDelta(t, math.Pi/2, a.SweepAngle(), 1e-9)

	// SetPoint drops the stored sweep, which is then read from the points.
	a.SetPoint(3, a.MidPoint())
	assert.InDelta(t, math.Pi/2, a.SweepAngle(), 1e-6)
}

func TestArcThreePoints(t *testing.T) {
	var a Arc
	require.True(t, a.SetStartMidEnd(geom.Pt(10, 0), geom.Pt(0, 10), geom.Pt(-10, 0)))
	assertPoint(t, geom.Pt(0, 0), a.Center())
	assert.InDelta(t, 10, a.Radius(), 1e-6)
	assert.InDelta(t, math.Pi, a.SweepAngle(), 1e-6)
}

func TestArcFullTurn(t *testing.T) {
	a := NewArc(geom.Pt(3, 4), 2, 0, geom.TwoPi-1e-4)
	assert.Equal(t, geom.TwoPi, a.SweepAngle())
	assert.True(t, a.IsClosed())

	b := NewArc(geom.Pt(3, 4), 2, 0, 1)
	assert.False(t, b.IsClosed())
	b.SetArcKind(ArcSector)
	assert.True(t, b.IsClosed())
}

func TestArcDragKeepsDirection(t *testing.T) {
	a := NewArc(geom.Pt(0, 0), 10, 0, math.Pi/2)
	var data int
	require.True(t, a.SetHandlePoint2(5, geom.Pt(-10, 0), 0, &data))
	assert.InDelta(t, math.Pi, a.SweepAngle(), 1e-6)
	require.True(t, a.SetHandlePoint2(5, geom.Pt(0, -10), 0, &data))
	assert.InDelta(t, 1.5*math.Pi, a.SweepAngle(), 1e-6)
}

func TestArcReverse(t *testing.T) {
	a := NewArc(geom.Pt(0, 0), 10, 0, math.Pi/2)
	a.Reverse()
	assertPoint(t, geom.Pt(0, 10), a.StartPoint())
	assertPoint(t, geom.Pt(10, 0), a.EndPoint())
	assert.InDelta(t, -math.Pi/2, a.SweepAngle(), 1e-6)
}

func newTestList(t *testing.T) (*List, []*Element) {
	t.Helper()
	l := NewList(0)
	elems := []*Element{
		NewElement(NewRect(geom.Pt(0, 0), geom.Pt(10, 10))),
		NewElement(NewLine(geom.Pt(0, 0), geom.Pt(10, 0))),
		NewElement(NewCircle(geom.Pt(50, 50), 5)),
	}
	for _, e := range elems {
		require.True(t, l.AddDirect(e))
	}
	return l, elems
}

func TestListIDs(t *testing.T) {
	l, elems := newTestList(t)
	for i, e := range elems {
		assert.Equal(t, i+1, e.ID())
		assert.Same(t, l, e.Parent())
		assert.Same(t, e, l.Find(e.ID()))
	}
	assert.Nil(t, l.Find(0))
	assert.Nil(t, l.Find(-1))

	// A copy whose id is taken gets a fresh one.
	c := l.Add(elems[0])
	assert.Equal(t, 4, c.ID())
	assert.NotSame(t, elems[0], c)

	// AddDirect refuses elements owned by another list.
	other := NewList(1)
	assert.False(t, other.AddDirect(elems[1]))
}

func TestListOrder(t *testing.T) {
	l, _ := newTestList(t)
	ids := func() []int {
		var out []int
		for e := range l.All() {
			out = append(out, e.ID())
		}
		return out
	}

	require.True(t, l.BringToBack(3))
	assert.Equal(t, []int{3, 1, 2}, ids())
	require.True(t, l.BringToFront(3))
	assert.Equal(t, []int{1, 2, 3}, ids())
	require.True(t, l.BringToIndex(1, 1))
	assert.Equal(t, []int{2, 1, 3}, ids())

	assert.False(t, l.Reorder([]int{3, 1}))
	assert.Equal(t, []int{2, 1, 3}, ids())
	require.True(t, l.Reorder([]int{3, 1, 2, 99}))
	assert.Equal(t, []int{3, 1, 2}, ids())

	require.True(t, l.Remove(1))
	assert.False(t, l.Remove(1))
	assert.Equal(t, []int{3, 2}, ids())
	assert.Equal(t, 1, l.IndexOf(2))
}

func TestListUpdateContinuesChangeCount(t *testing.T) {
	l, elems := newTestList(t)
	before := elems[0].Shape().ChangeCount()

	edit := elems[0].Clone()
	edit.Shape().Offset(geom.Vec(1, 1), -1)
	require.True(t, l.Update(edit))
	assert.Same(t, edit, l.Find(1))
	assert.Greater(t, edit.Shape().ChangeCount(), before)
}

func TestListExtentSkipsRays(t *testing.T) {
	l, _ := newTestList(t)
	want := l.Extent()

	ray := NewLine(geom.Pt(0, 0), geom.Pt(1, 0))
	ray.SetLineKind(LineRay)
	require.True(t, l.AddDirect(NewElement(ray)))
	assert.True(t, want.Equal(l.Extent(), geom.DefaultTol), "%v != %v", want, l.Extent())
}

func TestListHitTestPrefersContained(t *testing.T) {
	l := NewList(0)
	big := NewElement(NewRect(geom.Pt(-1, -100), geom.Pt(200, 100)))
	small := NewElement(NewRect(geom.Pt(2, 2), geom.Pt(4, 4)))
	require.True(t, l.AddDirect(big))
	require.True(t, l.AddDirect(small))

	res := NewHitResult()
	got := l.HitTest(geom.BoxFromCenter(geom.Pt(0, 0), 10, 0), &res, nil)
	require.NotNil(t, got)
	assert.Same(t, small, got)
	assert.True(t, res.Contained)

	// Hidden shapes are skipped unless a filter decides otherwise.
	small.Shape().SetFlag(FlagHidden, true)
	res = NewHitResult()
	assert.Same(t, big, l.HitTest(geom.BoxFromCenter(geom.Pt(0, 0), 10, 0), &res, nil))
	res = NewHitResult()
	all := func(*Element) bool { return true }
	assert.Same(t, small, l.HitTest(geom.BoxFromCenter(geom.Pt(0, 0), 10, 0), &res, all))
}

func TestListSaveLoad(t *testing.T) {
	l, _ := newTestList(t)
	s := newMemStorage()
	require.True(t, l.Save(s))
	s.rewind()

	loaded := NewList(0)
	n, err := loaded.Load(NewFactory(), s, false)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, KindLine, loaded.Find(2).Kind())
	assert.True(t, l.Extent().Equal(loaded.Extent(), geom.DefaultTol))

	f := NewFactory()
	f.Register(KindLine, nil)
	s.rewind()
	partial := NewList(0)
	n, err = partial.Load(f, s, false)
	assert.Equal(t, 2, n)
	assert.True(t, errors.Is(err, ErrUnknownKind), "got %v", err)
	assert.Nil(t, partial.Find(2))
}

func TestListLoadMissingNode(t *testing.T) {
	s := newMemStorage()
	n, err := NewList(0).Load(NewFactory(), s, false)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrNoShapesNode)
	assert.ErrorIs(t, s.err, ErrNoShapesNode)
}

func TestFactory(t *testing.T) {
	f := NewFactory()
	sp := f.Create(KindArc)
	require.NotNil(t, sp)
	assert.Equal(t, KindArc, sp.Kind())

	f.Register(KindArc, nil)
	assert.Nil(t, f.Create(KindArc))
	assert.NotContains(t, f.Kinds(), KindArc)
	assert.Contains(t, f.Kinds(), KindRect)

	// Other factories are unaffected.
	assert.NotNil(t, NewFactory().Create(KindArc))
}

func TestGroupOffsetChild(t *testing.T) {
	g := NewGroup()
	require.True(t, g.AddElement(NewElement(NewRect(geom.Pt(0, 0), geom.Pt(10, 10)))))
	require.True(t, g.AddElement(NewElement(NewRect(geom.Pt(20, 0), geom.Pt(30, 10)))))
	g.Update()
	assert.Equal(t, 2, g.ShapeCount())
	assert.Zero(t, g.HandleCount())

	first, second := g.List().At(0), g.List().At(1)
	require.True(t, g.Offset(geom.Vec(5, 0), first.ID()))
	assert.InDelta(t, 5, first.Shape().Extent().XMin, 1e-3)
	assert.InDelta(t, 20, second.Shape().Extent().XMin, 1e-3)

	g.SetInsertionPoint(geom.Pt(-10, -10))
	assert.Equal(t, 2, g.HandleCount())
	require.True(t, g.Offset(geom.Vec(0, 1), -1))
	assertPoint(t, geom.Pt(-10, -9), g.InsertionPoint())
	assert.InDelta(t, 1, second.Shape().Extent().YMin, 1e-3)
}

func TestCompositeHandles(t *testing.T) {
	c := NewComposite()
	c.List().Add(NewElement(NewLine(geom.Pt(0, 0), geom.Pt(10, 0))))
	c.List().Add(NewElement(NewDot(geom.Pt(5, 5))))
	c.Update()

	line := c.List().At(0).Shape()
	assert.Equal(t, line.HandleCount()+1, c.HandleCount())
	assertPoint(t, geom.Pt(5, 5), c.HandlePoint(line.HandleCount()))
	assert.Equal(t, 2, c.PointCount())
	assertPoint(t, geom.Pt(10, 0), c.Point(1))
}
