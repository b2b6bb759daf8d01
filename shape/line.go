package shape

import (
	"math"

	"honnef.co/go/vgcore/geom"
)

// LineKind selects how far a Line extends past its two points.
type LineKind int

const (
	LineSegment LineKind = iota
	// LineRay extends past the second point.
	LineRay
	// LineBeeline extends past both points.
	LineBeeline
)

// rayMul is how far rays and beelines are extended, in multiples of their
// defining segment, for bounds and output.
const rayMul = 1e5

// Line is a segment, ray or infinite line through two points. A segment
// has a third, fixed handle at its midpoint.
type Line struct {
	Base
	pts     [2]geom.Point
	subtype LineKind
}

// NewLine returns the segment from start to end.
func NewLine(start, end geom.Point) *Line {
	l := &Line{pts: [2]geom.Point{start, end}}
	l.Update()
	return l
}

func (l *Line) Kind() Kind               { return KindLine }
func (l *Line) IsClosed() bool           { return false }
func (l *Line) IsCurve() bool            { return false }
func (l *Line) PointCount() int          { return 2 }
func (l *Line) LineKind() LineKind       { return l.subtype }
func (l *Line) IsRayline() bool          { return l.subtype == LineRay }
func (l *Line) IsBeeline() bool          { return l.subtype == LineBeeline }
func (l *Line) Start() geom.Point        { return l.pts[0] }
func (l *Line) End() geom.Point          { return l.pts[1] }
func (l *Line) Length() float64          { return l.pts[0].Distance(l.pts[1]) }
func (l *Line) Angle() float64           { return l.pts[1].Sub(l.pts[0]).Angle() }
func (l *Line) Center() geom.Point       { return l.pts[0].Midpoint(l.pts[1]) }
func (l *Line) IsHandleFixed(i int) bool { return i >= 2 }

// SetLineKind changes between segment, ray and beeline.
func (l *Line) SetLineKind(k LineKind) {
	l.subtype = k
	l.Update()
}

func (l *Line) Point(i int) geom.Point {
	if i != 0 {
		return l.pts[1]
	}
	return l.pts[0]
}

func (l *Line) SetPoint(i int, pt geom.Point) {
	if i != 0 {
		l.pts[1] = pt
	} else {
		l.pts[0] = pt
	}
}

func (l *Line) Clone() Shape {
	c := *l
	return &c
}

// extended returns the two points as drawn: rays and beelines are pushed
// far out along their direction.
func (l *Line) extended() (geom.Point, geom.Point) {
	v := l.pts[1].Sub(l.pts[0]).Mul(rayMul)
	a, b := l.pts[0], l.pts[1]
	if l.IsBeeline() {
		a = a.Translate(v.Negate())
	}
	if l.subtype != LineSegment {
		b = b.Translate(v)
	}
	return a, b
}

func (l *Line) Update() {
	a, b := l.extended()
	l.setExtent(geom.NewBox(a, b))
}

func (l *Line) Transform(aff geom.Affine) {
	l.pts[0] = l.pts[0].Transform(aff)
	l.pts[1] = l.pts[1].Transform(aff)
	l.Update()
}

func (l *Line) Clear() {
	l.pts[1] = l.pts[0]
	l.clearBase()
}

func (l *Line) HandleCount() int {
	if l.subtype != LineSegment {
		return 2
	}
	return 3
}

func (l *Line) HandlePoint(i int) geom.Point {
	if i < 2 {
		return l.Point(i)
	}
	return l.Center()
}

func (l *Line) HandleType(i int) HandleType {
	if i >= 2 {
		return HandleMidPoint
	}
	return HandleVertex
}

func (l *Line) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	if i >= 2 {
		return false
	}
	if rotateHandle(l, i, pt) {
		return true
	}
	l.SetPoint(i, pt)
	l.Update()
	return true
}

func (l *Line) Offset(v geom.Vec2, _ int) bool {
	l.Transform(geom.Translate(v))
	return true
}

// HitTest measures to the segment, ray or beeline. A segment whose first
// point is being dragged does not hit at all.
func (l *Line) HitTest(pt geom.Point, _ float64, res *HitResult) float64 {
	a, b := l.pts[0], l.pts[1]
	switch l.subtype {
	case LineRay:
		d, near := geom.PtToBeeline2(a, b, pt)
		if near.Sub(a).ProjectScale(b.Sub(a)) < 0 {
			near = a
			d = pt.Distance(a)
		}
		res.NearPt = near
		return d
	case LineBeeline:
		d, near := geom.PtToBeeline2(a, b, pt)
		res.NearPt = near
		return d
	}
	if res.IgnoreHandle == 0 {
		return math.MaxFloat64
	}
	d, near := geom.PtToLine(a, b, pt)
	res.NearPt = near
	return d
}

func (l *Line) HitTestBox(rect geom.Box) bool {
	if !l.Extent().IsIntersect(rect) {
		return false
	}
	a, b := l.extended()
	_, _, ok := geom.ClipLine(a, b, rect)
	return ok
}

func (l *Line) Output(p *geom.Path) bool {
	a, b := l.extended()
	p.MoveTo(a, false)
	return p.LineTo(b, false)
}

func (l *Line) Save(s Storage) bool {
	ret := l.saveBase(s)
	writePoints(s, "points", l.pts[:])
	s.WriteInt("subtype", int(l.subtype))
	return ret
}

func (l *Line) Load(_ *Factory, s Storage) bool {
	ret := l.loadBase(s)
	l.subtype = LineKind(s.ReadInt("subtype", int(l.subtype)))
	return readPoints(s, "points", l.pts[:]) == 2 && ret
}

// Dot is a single point. Its type selects a handle glyph when positive and
// a filled disc otherwise.
type Dot struct {
	Base
	pt    geom.Point
	ptype int
}

// NewDot returns a dot at pt.
func NewDot(pt geom.Point) *Dot {
	d := &Dot{pt: pt}
	d.Update()
	return d
}

func (d *Dot) Kind() Kind                    { return KindDot }
func (d *Dot) IsClosed() bool                { return false }
func (d *Dot) IsCurve() bool                 { return false }
func (d *Dot) PointCount() int               { return 1 }
func (d *Dot) Point(int) geom.Point          { return d.pt }
func (d *Dot) SetPoint(_ int, pt geom.Point) { d.pt = pt }
func (d *Dot) PointType() int                { return d.ptype }
func (d *Dot) SetPointType(t int)            { d.ptype = t }
func (d *Dot) HandleCount() int              { return 1 }
func (d *Dot) HandlePoint(int) geom.Point    { return d.pt }
func (d *Dot) HandleType(int) HandleType     { return HandleVertex }
func (d *Dot) IsHandleFixed(int) bool        { return false }
func (d *Dot) Update()                       { d.setExtent(geom.BoxFromCenter(d.pt, 0.1, 0)) }
func (d *Dot) Output(*geom.Path) bool        { return false }

func (d *Dot) Clone() Shape {
	c := *d
	return &c
}

func (d *Dot) Clear() {
	d.pt = geom.Point{}
	d.clearBase()
}

func (d *Dot) Transform(aff geom.Affine) {
	d.pt = d.pt.Transform(aff)
	d.Update()
}

func (d *Dot) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	if rotateHandle(d, i, pt) {
		return true
	}
	d.pt = pt
	d.Update()
	return true
}

func (d *Dot) Offset(v geom.Vec2, _ int) bool {
	d.Transform(geom.Translate(v))
	return true
}

func (d *Dot) HitTest(pt geom.Point, _ float64, res *HitResult) float64 {
	res.NearPt = d.pt
	return pt.Distance(d.pt)
}

func (d *Dot) HitTestBox(rect geom.Box) bool {
	return d.Extent().IsIntersect(rect)
}

func (d *Dot) Save(s Storage) bool {
	ret := d.saveBase(s)
	s.WriteInt("ptype", d.ptype)
	s.WriteFloat("x", d.pt.X)
	s.WriteFloat("y", d.pt.Y)
	return ret
}

func (d *Dot) Load(_ *Factory, s Storage) bool {
	ret := d.loadBase(s)
	d.ptype = s.ReadInt("ptype", d.ptype)
	d.pt = geom.Pt(s.ReadFloat("x", d.pt.X), s.ReadFloat("y", d.pt.Y))
	return ret
}
