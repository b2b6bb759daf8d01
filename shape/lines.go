package shape

import (
	"fmt"
	"slices"

	"honnef.co/go/vgcore/geom"
)

// polyline is the vertex list shared by Lines and Splines.
type polyline struct {
	Base
	pts []geom.Point
}

func (l *polyline) PointCount() int       { return len(l.pts) }
func (l *polyline) Points() []geom.Point  { return l.pts }
func (l *polyline) IsClosed() bool        { return len(l.pts) > 2 && l.Flag(FlagClosed) }
func (l *polyline) SetClosed(closed bool) { l.SetFlag(FlagClosed, closed) }
func (l *polyline) maxEdgeIndex() int     { return len(l.pts) - l.edgeBias() }
func (l *polyline) clone() []geom.Point   { return slices.Clone(l.pts) }

func (l *polyline) clear() {
	l.pts = l.pts[:0]
	l.clearBase()
}

func (l *polyline) edgeBias() int {
	if l.IsClosed() {
		return 1
	}
	return 2
}

// Point returns vertex i, wrapping around past the end.
func (l *polyline) Point(i int) geom.Point {
	if len(l.pts) == 0 || i < 0 {
		return geom.Point{}
	}
	return l.pts[i%len(l.pts)]
}

func (l *polyline) setPoint(i int, pt geom.Point) {
	if i >= 0 && i < len(l.pts) {
		l.pts[i] = pt
	}
}

// EndPoint returns the last vertex.
func (l *polyline) EndPoint() geom.Point {
	if len(l.pts) == 0 {
		return geom.Point{}
	}
	return l.pts[len(l.pts)-1]
}

func (l *polyline) resize(n int) {
	if n <= cap(l.pts) {
		l.pts = l.pts[:n]
		return
	}
	l.pts = append(l.pts, make([]geom.Point, n-len(l.pts))...)
}

func (l *polyline) addPoint(pt geom.Point) {
	l.pts = append(l.pts, pt)
}

// insertPoint inserts pt after vertex segment.
func (l *polyline) insertPoint(segment int, pt geom.Point) bool {
	if segment < 0 || segment > l.maxEdgeIndex() {
		return false
	}
	l.pts = slices.Insert(l.pts, segment+1, pt)
	return true
}

// removePoint deletes vertex i but always keeps one.
func (l *polyline) removePoint(i int) bool {
	if i < 0 || i >= len(l.pts) || len(l.pts) < 2 {
		return false
	}
	l.pts = slices.Delete(l.pts, i, i+1)
	return true
}

// IsIncrementFrom reports whether l starts with the vertices of src and
// has more of them.
func (l *polyline) IsIncrementFrom(src *polyline) bool {
	if len(l.pts) <= len(src.pts) {
		return false
	}
	for i, pt := range src.pts {
		if !l.pts[i].Equal(pt, geom.DefaultTol) {
			return false
		}
	}
	return true
}

func (l *polyline) update() geom.Box {
	ext := geom.BoxOfPoints(l.pts...)
	if len(l.pts) > 0 && ext.IsEmpty(geom.DefaultTol) {
		ext = geom.BoxFromCenter(l.pts[0], 2*geom.DefaultTol.Point, 0)
	}
	return ext
}

func (l *polyline) hitTestBox(rect geom.Box) bool {
	if !l.Extent().IsIntersect(rect) {
		return false
	}
	n := len(l.pts)
	edges := n - 1
	if l.IsClosed() {
		edges = n
	}
	for i := range edges {
		if geom.NewBox(l.pts[i], l.pts[(i+1)%n]).IsIntersect(rect) {
			return true
		}
	}
	return n < 2
}

func (l *polyline) save(s Storage) bool {
	ret := l.saveBase(s)
	s.WriteInt("count", len(l.pts))
	writePoints(s, "points", l.pts)
	return ret
}

func (l *polyline) load(s Storage) bool {
	ret := l.loadBase(s)
	n := s.ReadInt("count", 0)
	switch {
	case n < 1:
		return s.SetError(fmt.Errorf("load %d points: %w", n, ErrNoPoint))
	case n > maxPoints:
		return s.SetError(fmt.Errorf("load %d points: %w", n, ErrTooManyPoints))
	}
	l.pts = make([]geom.Point, n)
	if got := readPoints(s, "points", l.pts); got != n {
		return s.SetError(fmt.Errorf("read %d of %d points: %w", got, n, ErrShortArray))
	}
	return ret
}

// Lines is a polyline, or a polygon when closed. Handles past the vertices
// are the fixed midpoints of the edges.
type Lines struct {
	polyline
}

// NewLines returns a polyline through pts.
func NewLines(pts []geom.Point, closed bool) *Lines {
	l := &Lines{}
	l.pts = slices.Clone(pts)
	l.SetClosed(closed)
	l.Update()
	return l
}

func (l *Lines) Kind() Kind                      { return KindLines }
func (l *Lines) IsCurve() bool                   { return false }
func (l *Lines) SetPoint(i int, pt geom.Point)   { l.setPoint(i, pt) }
func (l *Lines) Update()                         { l.setExtent(l.update()) }
func (l *Lines) Clear()                          { l.clear() }
func (l *Lines) IsHandleFixed(i int) bool        { return i >= len(l.pts) }
func (l *Lines) HitTestBox(rect geom.Box) bool   { return l.hitTestBox(rect) }
func (l *Lines) Save(s Storage) bool             { return l.save(s) }
func (l *Lines) Load(_ *Factory, s Storage) bool { return l.load(s) }

func (l *Lines) AddPoint(pt geom.Point)                  { l.addPoint(pt) }
func (l *Lines) InsertPoint(seg int, pt geom.Point) bool { return l.insertPoint(seg, pt) }
func (l *Lines) RemovePoint(i int) bool                  { return l.removePoint(i) }
func (l *Lines) Resize(n int)                            { l.resize(n) }

func (l *Lines) Clone() Shape {
	c := *l
	c.pts = l.clone()
	return &c
}

func (l *Lines) Transform(aff geom.Affine) {
	geom.TransformPoints(l.pts, aff)
	l.Update()
}

func (l *Lines) Offset(v geom.Vec2, _ int) bool {
	l.Transform(geom.Translate(v))
	return true
}

func (l *Lines) HandleCount() int {
	if l.IsClosed() {
		return 2 * len(l.pts)
	}
	return 2*len(l.pts) - 1
}

func (l *Lines) HandlePoint(i int) geom.Point {
	n := len(l.pts)
	if i < n {
		return l.Point(i)
	}
	return l.pts[i%n].Midpoint(l.pts[(i+1)%n])
}

func (l *Lines) HandleType(i int) HandleType {
	if i < len(l.pts) {
		return HandleVertex
	}
	return HandleMidPoint
}

func (l *Lines) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	if i >= len(l.pts) {
		return false
	}
	if rotateHandle(l, i, pt) {
		return true
	}
	l.setPoint(i, pt)
	l.Update()
	return true
}

func (l *Lines) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	return linesHit(l.pts, l.IsClosed(), pt, tol, res)
}

func (l *Lines) Output(p *geom.Path) bool {
	if len(l.pts) < 2 {
		return false
	}
	p.MoveTo(l.pts[0], false)
	p.LinesTo(l.pts[1:], false)
	if l.IsClosed() {
		p.CloseFigure()
	}
	return true
}

// Splines is a smooth curve through or near its vertices. Without arm
// vectors it is a quadratic B-spline on the vertices as control points;
// with arm vectors it is a chain of cubic Béziers through the vertices,
// vertex i having control points pts[i]+knotvs[i] and pts[i]-knotvs[i].
// Editing a vertex drops the arm vectors.
type Splines struct {
	polyline
	knotvs []geom.Vec2
}

// NewSplines returns a quadratic B-spline on pts.
func NewSplines(pts []geom.Point, closed bool) *Splines {
	s := &Splines{}
	s.pts = slices.Clone(pts)
	s.SetClosed(closed)
	s.Update()
	return s
}

func (s *Splines) Kind() Kind                   { return KindSplines }
func (s *Splines) IsCurve() bool                { return true }
func (s *Splines) Vectors() []geom.Vec2         { return s.knotvs }
func (s *Splines) IsHandleFixed(int) bool       { return false }
func (s *Splines) HandleCount() int             { return len(s.pts) }
func (s *Splines) HandlePoint(i int) geom.Point { return s.Point(i) }
func (s *Splines) HandleType(int) HandleType    { return HandleVertex }
func (s *Splines) clearVectors()                { s.knotvs = nil }

func (s *Splines) Update() {
	ext := s.update()
	if s.knotvs != nil {
		ext = ext.Union(geom.CubicSplinesBox(s.pts, s.knotvs, s.IsClosed(), false))
	}
	s.setExtent(ext)
}

func (s *Splines) SetPoint(i int, pt geom.Point) {
	s.clearVectors()
	s.setPoint(i, pt)
}

func (s *Splines) AddPoint(pt geom.Point) {
	s.clearVectors()
	s.addPoint(pt)
}

func (s *Splines) InsertPoint(seg int, pt geom.Point) bool {
	s.clearVectors()
	return s.insertPoint(seg, pt)
}

func (s *Splines) RemovePoint(i int) bool {
	s.clearVectors()
	return s.removePoint(i)
}

func (s *Splines) Resize(n int) {
	if n != len(s.pts) {
		s.clearVectors()
	}
	s.resize(n)
}

// SetKnots replaces the vertices and arm vectors. knotvs must be nil or as
// long as knots.
func (s *Splines) SetKnots(knots []geom.Point, knotvs []geom.Vec2) {
	s.pts = slices.Clone(knots)
	s.knotvs = nil
	if len(knotvs) == len(knots) {
		s.knotvs = slices.Clone(knotvs)
	}
	s.Update()
}

func (s *Splines) Clone() Shape {
	c := *s
	c.pts = s.clone()
	c.knotvs = slices.Clone(s.knotvs)
	return &c
}

func (s *Splines) Clear() {
	s.clearVectors()
	s.clear()
}

func (s *Splines) Transform(aff geom.Affine) {
	for i, v := range s.knotvs {
		s.knotvs[i] = v.Transform(aff)
	}
	geom.TransformPoints(s.pts, aff)
	s.Update()
}

func (s *Splines) Offset(v geom.Vec2, _ int) bool {
	s.Transform(geom.Translate(v))
	return true
}

// SetHandlePoint moves a vertex. Dropping a vertex onto a neighbour removes
// it, and dropping an open end onto the other end closes the curve.
func (s *Splines) SetHandlePoint(i int, pt geom.Point, tol float64) bool {
	if rotateHandle(s, i, pt) {
		return true
	}
	n := len(s.pts)
	closed := s.IsClosed()
	pre := i - 1
	if closed && i == 0 {
		pre = n - 1
	}
	post := i + 1
	if closed && i+1 == n {
		post = 0
	}
	near := func(j int) bool {
		return j >= 0 && j < n && s.pts[j].Distance(pt) < tol
	}

	switch {
	case near(pre) || near(post):
		if n <= 3 {
			return false
		}
		s.RemovePoint(i)
	case !closed && ((i == 0 && s.pts[n-1].Distance(pt) < tol) ||
		(i == n-1 && s.pts[0].Distance(pt) < tol)):
		s.RemovePoint(i)
		s.SetClosed(true)
	default:
		s.SetPoint(i, pt)
	}
	s.Update()
	return true
}

func (s *Splines) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	var r geom.NearestResult
	switch {
	case len(s.pts) == 2:
		d, near := geom.PtToLine(s.pts[0], s.pts[1], pt)
		res.NearPt = near
		return d
	case len(s.pts) < 2:
		return linesHit(s.pts, false, pt, tol, res)
	case s.knotvs != nil:
		r = geom.CubicSplinesHit(s.pts, s.knotvs, s.IsClosed(), pt, tol, false)
	default:
		r = geom.QuadSplinesHit(s.pts, s.IsClosed(), pt, tol)
	}
	if r.Segment >= 0 {
		res.NearPt = r.Point
		res.Segment = r.Segment
	}
	return r.Dist
}

func (s *Splines) HitTestBox(rect geom.Box) bool {
	if !s.hitTestBox(rect) {
		return false
	}
	if s.knotvs != nil {
		return geom.CubicSplinesIntersectBox(rect, s.pts, s.knotvs, s.IsClosed(), false)
	}
	return true
}

func (s *Splines) Output(p *geom.Path) bool {
	n := len(s.pts)
	closed := s.IsClosed()
	switch {
	case n < 2:
		return false
	case n == 2:
		p.MoveTo(s.pts[0], false)
		return p.LineTo(s.pts[1], false)
	case s.knotvs != nil:
		bz := geom.CubicSplinesToBeziers(s.pts, s.knotvs, closed, false)
		p.MoveTo(bz[0], false)
		p.BeziersTo(bz[1:], false, false)
	default:
		segs := n - 2
		if closed {
			segs = n
			p.MoveTo(s.pts[0].Midpoint(s.pts[1]), false)
		} else {
			p.MoveTo(s.pts[0], false)
		}
		for i := range segs {
			var mid geom.Point
			if closed || i+3 < n {
				mid = s.pts[(i+1)%n].Midpoint(s.pts[(i+2)%n])
			} else {
				mid = s.pts[i+2]
			}
			p.QuadTo(s.pts[(i+1)%n], mid, false)
		}
	}
	if closed {
		p.CloseFigure()
	}
	return true
}

// Smooth replaces the vertices by a cubic fit of the curve as seen on
// screen. m2d maps model to display coordinates, where tol is measured.
func (s *Splines) Smooth(m2d geom.Affine, tol float64) bool {
	if len(s.pts) < 3 || tol < geom.MinDist {
		return false
	}
	d2m, ok := m2d.Invert()
	if !ok {
		return false
	}
	pts := slices.Clone(s.pts)
	geom.TransformPoints(pts, m2d)
	knots, knotvs := geom.FitCurveKnots(pts, tol)
	if len(knots) < 2 {
		return false
	}
	geom.TransformPoints(knots, d2m)
	for i, v := range knotvs {
		knotvs[i] = v.Transform(d2m)
	}
	s.pts, s.knotvs = knots, knotvs
	s.Update()
	return true
}

func (s *Splines) Save(st Storage) bool {
	ret := s.save(st)
	if s.knotvs != nil {
		writeVecs(st, "vec", s.knotvs)
	}
	return ret
}

func (s *Splines) Load(_ *Factory, st Storage) bool {
	ret := s.load(st)
	s.knotvs = nil
	if ret && len(s.pts) > 0 && st.ReadFloatArray("vec", nil) > 0 {
		s.knotvs = make([]geom.Vec2, len(s.pts))
		if got := readVecs(st, "vec", s.knotvs); got != len(s.pts) {
			s.knotvs = nil
			return st.SetError(fmt.Errorf("read %d of %d vectors: %w", got, len(s.pts), ErrShortArray))
		}
	}
	return ret
}
