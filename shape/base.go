package shape

import (
	"math"

	"honnef.co/go/vgcore/geom"
)

// Shape is a geometric shape without drawing attributes.
//
// Points are the persistent control points of a shape. Handles are the
// points a user can drag; they usually include the points and may add
// derived ones such as edge midpoints. A shape's extent is only current
// after Update, which every mutating method of the concrete kinds calls.
type Shape interface {
	Kind() Kind
	Clone() Shape
	Extent() geom.Box
	// ChangeCount increases with every Update and AfterChanged.
	ChangeCount() int64
	ResetChangeCount(count int64)
	AfterChanged()
	Update()
	Transform(aff geom.Affine)
	Clear()
	Flag(f Flag) bool
	SetFlag(f Flag, on bool)

	IsClosed() bool
	IsCurve() bool
	PointCount() int
	Point(i int) geom.Point
	SetPoint(i int, pt geom.Point)

	// HitTest returns the distance from pt to the shape and fills res.
	// Distances beyond tol may be reported as math.MaxFloat64.
	HitTest(pt geom.Point, tol float64, res *HitResult) float64
	HitTestBox(rect geom.Box) bool

	HandleCount() int
	HandlePoint(i int) geom.Point
	HandleType(i int) HandleType
	IsHandleFixed(i int) bool
	SetHandlePoint(i int, pt geom.Point, tol float64) bool

	// Offset moves the shape, or only the part named by segment as reported
	// by HitTest, by v.
	Offset(v geom.Vec2, segment int) bool
	// Output appends the outline of the shape to p.
	Output(p *geom.Path) bool
	Save(s Storage) bool
	Load(f *Factory, s Storage) bool
}

// HandleDragger is implemented by shapes whose handle drags carry state
// across the moves of one gesture. data is zero at the first move.
type HandleDragger interface {
	SetHandlePoint2(i int, pt geom.Point, tol float64, data *int) bool
}

// SetHandlePoint2 drags a handle with gesture state when sp supports it.
func SetHandlePoint2(sp Shape, i int, pt geom.Point, tol float64, data *int) bool {
	if d, ok := sp.(HandleDragger); ok {
		return d.SetHandlePoint2(i, pt, tol, data)
	}
	return sp.SetHandlePoint(i, pt, tol)
}

// Base holds the state common to all shapes. Concrete kinds embed it.
type Base struct {
	extent      geom.Box
	flags       uint32
	changeCount int64
}

// minExtent is the size an empty extent is inflated to.
const minExtent = 1e-4

// Extent returns the cached bounding box. Boxes thinner than minExtent are
// inflated so that they still intersect their neighbourhood.
func (b *Base) Extent() geom.Box {
	r := b.extent
	if r.IsNull() {
		return r
	}
	if r.Width() < minExtent {
		r = r.Inflate(minExtent/2, 0)
	}
	if r.Height() < minExtent {
		r = r.Inflate(0, minExtent/2)
	}
	return r
}

func (b *Base) ChangeCount() int64           { return b.changeCount }
func (b *Base) ResetChangeCount(count int64) { b.changeCount = count }
func (b *Base) AfterChanged()                { b.changeCount++ }
func (b *Base) Flag(f Flag) bool             { return b.flags&(1<<f) != 0 }
func (b *Base) IsVisible() bool              { return !b.Flag(FlagHidden) }
func (b *Base) IsLocked() bool               { return b.Flag(FlagLocked) }
func (b *Base) copyBase(src *Base)           { *b = *src }

// setExtent is the tail of every Update.
func (b *Base) setExtent(r geom.Box) {
	b.extent = r
	b.AfterChanged()
}

func (b *Base) SetFlag(f Flag, on bool) {
	if on {
		b.flags |= 1 << f
	} else {
		b.flags &^= 1 << f
	}
}

func (b *Base) clearBase() { b.extent = geom.Box{} }

func (b *Base) saveBase(s Storage) bool {
	s.WriteInt("flags", int(b.flags))
	return true
}

func (b *Base) loadBase(s Storage) bool {
	b.flags = uint32(s.ReadInt("flags", int(b.flags)))
	return true
}

// rotateHandle implements the fixed-length drag rule shared by all kinds:
// instead of moving handle index, the whole shape is rotated so that the
// handle points at pt, or translated if rotation is disabled. It reports
// whether the rule applied.
func rotateHandle(sp Shape, index int, pt geom.Point) bool {
	if !sp.Flag(FlagFixedLength) {
		return false
	}
	if sp.Flag(FlagRotateDisabled) {
		sp.Offset(pt.Sub(sp.HandlePoint(index)), -1)
		return true
	}
	base := sp.Extent().Center()
	if !sp.Flag(FlagSquare) {
		bi := index - 1
		if index <= 0 {
			bi = sp.HandleCount() - 1
		}
		for bi > 0 && sp.IsHandleFixed(bi) {
			bi--
		}
		base = sp.HandlePoint(bi)
	}
	a1 := pt.Sub(base).Angle()
	a2 := sp.HandlePoint(index).Sub(base).Angle()
	sp.Transform(geom.RotateAbout(a1-a2, base))
	return true
}

// linesHit hit-tests a polyline, honouring the snap mask of res.
func linesHit(pts []geom.Point, closed bool, pt geom.Point, tol float64, res *HitResult) float64 {
	flags := 0
	if res.SnapVertexEnabled() {
		flags |= geom.CheckVertex
	}
	if res.SnapEdgeEnabled() {
		flags |= geom.CheckEdge
	}
	if closed {
		flags |= geom.CheckInside
	}
	r := geom.LinesHit(pts, closed, pt, tol, flags, res.IgnoreHandle)
	res.Inside = r.Inside
	res.Segment = r.Segment
	if r.Dist < math.MaxFloat64 {
		res.NearPt = r.Point
	}
	return r.Dist
}

// edgesHitBox reports whether any edge of the polyline crosses rect.
func edgesHitBox(pts []geom.Point, closed bool, rect geom.Box) bool {
	n := len(pts)
	edges := n - 1
	if closed {
		edges = n
	}
	for i := range edges {
		a, b := pts[i], pts[(i+1)%n]
		if _, _, ok := geom.ClipLine(a, b, rect); ok {
			return true
		}
	}
	return false
}
