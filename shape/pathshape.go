package shape

import (
	"fmt"
	"math"

	"honnef.co/go/vgcore/geom"
)

// Path is a free-form shape holding a geom.Path. Its points are the nodes of
// the path, and every node is a handle.
type Path struct {
	Base
	path geom.Path
}

// NewPath returns a shape holding a copy of p.
func NewPath(p *geom.Path) *Path {
	s := &Path{}
	if p != nil {
		s.path = *p.Clone()
	}
	s.Update()
	return s
}

func (s *Path) Kind() Kind                    { return KindPath }
func (s *Path) IsClosed() bool                { return s.path.IsClosed() }
func (s *Path) IsCurve() bool                 { return s.path.IsCurve() }
func (s *Path) PointCount() int               { return s.path.Len() }
func (s *Path) Point(i int) geom.Point        { return s.path.Point(i) }
func (s *Path) SetPoint(i int, pt geom.Point) { s.path.SetPoint(i, pt) }
func (s *Path) HandleCount() int              { return s.path.Len() }
func (s *Path) HandlePoint(i int) geom.Point  { return s.path.Point(i) }
func (s *Path) HandleType(int) HandleType     { return HandleVertex }
func (s *Path) IsHandleFixed(int) bool        { return false }

// GeomPath returns the path. Callers that modify it must call Update.
func (s *Path) GeomPath() *geom.Path { return &s.path }

// SetPath replaces the path with a copy of p.
func (s *Path) SetPath(p *geom.Path) {
	s.path = *p.Clone()
	s.Update()
}

func (s *Path) Clone() Shape {
	c := &Path{Base: s.Base}
	c.path = *s.path.Clone()
	return c
}

func (s *Path) Update() {
	s.setExtent(s.path.Extent())
}

func (s *Path) Transform(aff geom.Affine) {
	s.path.Transform(aff)
	s.Update()
}

func (s *Path) Clear() {
	s.path.Clear()
	s.clearBase()
}

func (s *Path) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	if rotateHandle(s, i, pt) {
		return true
	}
	s.path.SetPoint(i, pt)
	s.Update()
	return true
}

func (s *Path) Offset(v geom.Vec2, _ int) bool {
	s.Transform(geom.Translate(v))
	return true
}

func (s *Path) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	r := s.path.HitTest(pt, tol)
	res.Inside = r.Inside
	if r.Dist == math.MaxFloat64 {
		return r.Dist
	}
	res.NearPt = r.Point
	res.Segment = r.Segment
	return r.Dist
}

func (s *Path) HitTestBox(rect geom.Box) bool {
	if !s.Extent().IsIntersect(rect) {
		return false
	}
	for seg := range s.path.Segments() {
		if seg.Line {
			if _, _, ok := geom.ClipLine(seg.P0, seg.P3, rect); ok {
				return true
			}
		} else if rect.IsIntersect(seg.BoundingBox()) {
			return true
		}
	}
	return false
}

func (s *Path) Output(p *geom.Path) bool {
	if s.path.Len() == 0 {
		return false
	}
	p.Append(&s.path)
	return true
}

func (s *Path) Save(st Storage) bool {
	ret := s.saveBase(st)
	st.WriteString("d", s.path.SVG(geom.SVGOptions{}))
	return ret
}

func (s *Path) Load(_ *Factory, st Storage) bool {
	ret := s.loadBase(st)
	d := st.ReadString("d")
	p, err := geom.ParseSVGPath(d)
	if err != nil {
		return st.SetError(fmt.Errorf("path shape: %w", err))
	}
	if p.Len() == 0 {
		return st.SetError(fmt.Errorf("path shape: %w", ErrNoPoint))
	}
	s.path = *p
	return ret
}
