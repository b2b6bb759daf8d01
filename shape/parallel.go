package shape

import "honnef.co/go/vgcore/geom"

// Parallel is a parallelogram. The fourth vertex is always derived from
// the other three.
type Parallel struct {
	Base
	pts [4]geom.Point
}

// NewParallel returns the parallelogram with vertices p0, p1, p2 and the
// implied fourth.
func NewParallel(p0, p1, p2 geom.Point) *Parallel {
	p := &Parallel{pts: [4]geom.Point{p0, p1, p2}}
	p.Update()
	return p
}

func (p *Parallel) Kind() Kind                    { return KindParallel }
func (p *Parallel) IsClosed() bool                { return true }
func (p *Parallel) IsCurve() bool                 { return false }
func (p *Parallel) PointCount() int               { return 4 }
func (p *Parallel) Point(i int) geom.Point        { return p.pts[i%4] }
func (p *Parallel) SetPoint(i int, pt geom.Point) { p.pts[i%4] = pt }
func (p *Parallel) Points() []geom.Point          { return p.pts[:] }
func (p *Parallel) HandleCount() int              { return 8 }
func (p *Parallel) IsHandleFixed(i int) bool      { return i >= 4 }

func (p *Parallel) Clone() Shape {
	c := *p
	return &c
}

func (p *Parallel) Update() {
	p.pts[3] = p.pts[0].Translate(p.pts[2].Sub(p.pts[1]))
	ext := geom.BoxOfPoints(p.pts[:]...)
	if ext.IsEmpty(geom.DefaultTol) {
		ext = geom.BoxFromCenter(p.pts[0], 2*geom.DefaultTol.Point, 0)
	}
	p.setExtent(ext)
}

func (p *Parallel) Transform(aff geom.Affine) {
	geom.TransformPoints(p.pts[:], aff)
	p.Update()
}

func (p *Parallel) Clear() {
	for i := 1; i < 4; i++ {
		p.pts[i] = p.pts[0]
	}
	p.clearBase()
}

func (p *Parallel) HandlePoint(i int) geom.Point {
	if i < 4 {
		return p.pts[i]
	}
	return p.pts[i%4].Midpoint(p.pts[(i+1)%4])
}

func (p *Parallel) HandleType(i int) HandleType {
	if i < 4 {
		return HandleVertex
	}
	return HandleMidPoint
}

// SetHandlePoint moves vertex i and shears the following vertex along. With
// FlagFixedLength the moved edge keeps its length and only turns. With
// FlagFixedSize the whole shape rotates instead.
func (p *Parallel) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	if p.Flag(FlagFixedSize) && rotateHandle(p, i, pt) {
		return true
	}
	p.moveVertex(i, pt)
	return true
}

func (p *Parallel) moveVertex(i int, pt geom.Point) {
	i %= 4
	if p.Flag(FlagFixedLength) {
		base := p.pts[(i+3)%4]
		p.pts[i] = base.RulerPoint(pt, p.pts[i].Distance(base), 0)
	} else {
		p.pts[i] = pt
	}
	p.pts[(i+1)%4] = p.pts[i].Translate(p.pts[(i+2)%4].Sub(p.pts[(i+3)%4]))
	p.Update()
}

// Offset moves the whole shape, or only the vertex segment unless the
// shape has FlagFixedSize.
func (p *Parallel) Offset(v geom.Vec2, segment int) bool {
	if segment < 0 || segment >= 4 || p.Flag(FlagFixedSize) {
		p.Transform(geom.Translate(v))
		return true
	}
	p.moveVertex(segment, p.pts[segment].Translate(v))
	return true
}

func (p *Parallel) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	return linesHit(p.pts[:], true, pt, tol, res)
}

func (p *Parallel) HitTestBox(rect geom.Box) bool {
	if !p.Extent().IsIntersect(rect) {
		return false
	}
	for i := range 4 {
		if geom.NewBox(p.pts[i], p.pts[(i+1)%4]).IsIntersect(rect) {
			return true
		}
	}
	return false
}

func (p *Parallel) Output(path *geom.Path) bool {
	path.MoveTo(p.pts[0], false)
	path.LinesTo(p.pts[1:], false)
	return path.CloseFigure()
}

func (p *Parallel) Save(s Storage) bool {
	ret := p.saveBase(s)
	writePoints(s, "points", p.pts[:])
	return ret
}

func (p *Parallel) Load(_ *Factory, s Storage) bool {
	ret := p.loadBase(s)
	return readPoints(s, "points", p.pts[:]) == 4 && ret
}
