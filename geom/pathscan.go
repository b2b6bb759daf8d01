package geom

import (
	"iter"
	"math"
	"slices"
)

// SegmentVisitor receives the segments of a [Path] from
// [Path.ScanSegments]. start and end are the indices of the nodes that
// begin and end each segment; the closing segment of a closed figure ends at
// the figure's first node. Returning false stops the scan.
type SegmentVisitor interface {
	BeginSubPath()
	EndSubPath(closed bool)
	Line(start, end int, p0, p1 Point) bool
	// Bezier receives cubic segments; quadratic segments arrive degree
	// elevated.
	Bezier(start, end int, c CubicBez) bool
}

// ScanSegments walks every segment of every figure of p in order. It
// reports false if v stopped the scan or the path is malformed.
func (p *Path) ScanSegments(v SegmentVisitor) bool {
	for s, e := range p.figures() {
		if !p.scanFigure(s, e, v) {
			return false
		}
	}
	return true
}

func (p *Path) scanFigure(s, e int, v SegmentVisitor) bool {
	pts := p.points
	var p0 Point
	kind := NodeType(0)
	start := s
	v.BeginSubPath()
	for i := s; i < e; i++ {
		kind = p.types[i].Kind()
		switch {
		case i == s:
			p0 = pts[i]
		case kind == LineTo:
			if !v.Line(start, i, p0, pts[i]) {
				return false
			}
			p0 = pts[i]
		case kind == BezierTo:
			if i+2 >= e {
				return false
			}
			c := CubicBez{p0, pts[i], pts[i+1], pts[i+2]}
			i += 2
			if !v.Bezier(start, i, c) {
				return false
			}
			p0 = c.P3
		case kind == QuadTo:
			if i+1 >= e {
				return false
			}
			c := QuadBez{p0, pts[i], pts[i+1]}.Raise()
			i++
			if !v.Bezier(start, i, c) {
				return false
			}
			p0 = c.P3
		default:
			return false
		}
		start = i
	}

	closed := e-s > 2 && p.types[e-1] != MoveTo && p.types[e-1]&CloseFigure != 0
	if closed {
		first := pts[s]
		var ok bool
		switch kind {
		case LineTo:
			ok = v.Line(start, s, p0, first)
		case BezierTo:
			ok = v.Bezier(start, s, CubicBez{
				p0,
				p0.Translate(p0.Sub(pts[e-2])),
				first.Translate(first.Sub(pts[s+1])),
				first,
			})
		case QuadTo:
			ok = v.Bezier(start, s, QuadBez{
				p0,
				first.Translate(first.Sub(pts[s+1])),
				first,
			}.Raise())
		default:
			ok = true
		}
		if !ok {
			return false
		}
	}
	v.EndSubPath(closed)
	return true
}

// Segment is one piece of a path as yielded by [Path.Segments]. A straight
// segment has Line set and its control points on the chord.
type Segment struct {
	Start, End int
	Line       bool
	CubicBez
}

type funcVisitor func(Segment) bool

func (funcVisitor) BeginSubPath()   {}
func (funcVisitor) EndSubPath(bool) {}

func (f funcVisitor) Line(start, end int, p0, p1 Point) bool {
	return f(Segment{
		Start:    start,
		End:      end,
		Line:     true,
		CubicBez: CubicBez{p0, p0.Lerp(p1, 1.0/3), p0.Lerp(p1, 2.0/3), p1},
	})
}

func (f funcVisitor) Bezier(start, end int, c CubicBez) bool {
	return f(Segment{Start: start, End: end, CubicBez: c})
}

// Segments returns an iterator over the segments of p.
func (p *Path) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		p.ScanSegments(funcVisitor(yield))
	}
}

// Length returns the total arc length of p.
func (p *Path) Length() float64 {
	var total float64
	p.ScanSegments(funcVisitor(func(s Segment) bool {
		if s.Line {
			total += s.P0.Distance(s.P3)
		} else {
			total += s.CubicBez.Length()
		}
		return true
	}))
	return total
}

// Extent returns the tight bounding box of p.
func (p *Path) Extent() Box {
	if len(p.points) == 0 {
		return Box{}
	}
	box := BoxOfPoints(p.points[0])
	for s := range p.Segments() {
		if s.Line {
			box = box.UnionPoint(s.P0).UnionPoint(s.P3)
		} else {
			bb := s.BoundingBox()
			box = box.UnionPoint(bb.LeftBottom()).UnionPoint(bb.RightTop())
		}
	}
	return box
}

// HitTest finds the point of p nearest to pt among the segments whose bounds
// come within tol. Segment is the start node of the segment hit, and Inside
// reports whether pt lies inside a closed polyline.
func (p *Path) HitTest(pt Point, tol float64) NearestResult {
	res := Miss()
	rect := hitBox(pt, tol)
	for s := range p.Segments() {
		if s.Line {
			if !rect.IsIntersect(NewBox(s.P0, s.P3)) {
				continue
			}
			if d, near := PtToLine(s.P0, s.P3, pt); d < res.Dist {
				res.Dist, res.Point, res.Segment = d, near, s.Start
			}
			continue
		}
		if !rect.IsIntersect(s.BoundingBox()) {
			continue
		}
		near, _ := NearestOnBezier(pt, s.CubicBez)
		if d := pt.Distance(near); d < res.Dist {
			res.Dist, res.Point, res.Segment = d, near, s.Start
		}
	}
	if p.IsLines() && p.IsClosed() {
		typ, _ := PtInArea(pt, p.points, NewTol(tol, DefaultTol.Vector), true, CheckInside, -1)
		res.Inside = typ == AreaInside
	}
	return res
}

// TrimStart removes the beginning of an open single-figure path up to the
// first point at distance dist from pt, which is usually the start point.
// Segments that lie entirely within dist are dropped.
func (p *Path) TrimStart(pt Point, dist float64) bool {
	if len(p.points) < 2 || p.types[0] != MoveTo || p.IsClosed() ||
		dist < MinDist || p.SubPathCount() != 1 {
		return false
	}

	start := p.points[0]
	cut := 1
	var head []Point
	var headType NodeType
	p.ScanSegments(funcVisitor(func(s Segment) bool {
		if s.Line {
			if pt.Distance(s.P3) <= dist {
				start, cut = s.P3, s.End+1
				return true
			}
			start, cut = lineAtDistance(s.P0, s.P3, pt, dist), s.End
			return false
		}
		_, t, ok := s.PointAtDistance(dist, pt)
		if !ok || t > 0.99 {
			start, cut = s.P3, s.End+1
			return true
		}
		_, rest := s.Split(t)
		start, cut = rest.P0, s.End+1
		head, headType = []Point{rest.P1, rest.P2, rest.P3}, BezierTo
		return false
	}))

	pts := []Point{start}
	types := []NodeType{MoveTo}
	for _, h := range head {
		pts = append(pts, h)
		types = append(types, headType)
	}
	pts = append(pts, p.points[cut:]...)
	types = append(types, p.types[cut:]...)
	p.points, p.types = pts, types
	if p.figure > 0 {
		p.figure = 1
	}
	return true
}

// lineAtDistance returns the last point of the segment p0-p1 that is dist
// away from pt, or p0 when the segment never gets that far.
func lineAtDistance(p0, p1, pt Point, dist float64) Point {
	d := p1.Sub(p0)
	f := p0.Sub(pt)
	a := d.Hypot2()
	b := 2 * f.Dot(d)
	c := f.Hypot2() - dist*dist
	disc := b*b - 4*a*c
	if a < MinDist || disc < 0 {
		return p0
	}
	t := (-b + math.Sqrt(disc)) / (2 * a)
	return p0.Lerp(p1, max(0, min(1, t)))
}

// CrossWithPath finds the intersection of p and o inside box that is nearest
// to the box center. One of the paths must be a single line or both must be
// polylines.
func (p *Path) CrossWithPath(o *Path, box Box) (Point, bool) {
	best := Point{}
	minDist := math.MaxFloat64
	consider := func(pt Point) {
		if d := pt.Distance(box.Center()); d < minDist {
			minDist, best = d, pt
		}
	}

	switch {
	case p.IsLine() && o.IsLine():
		pt, ok := Cross2Line(p.points[0], p.points[1], o.points[0], o.points[1], DefaultTol)
		return pt, ok && box.ContainsPoint(pt, Tol{})

	case p.IsLines() && o.IsLines():
		for i := range polyEdges(p) {
			a, b := p.Point(i), p.Point(i+1)
			for j := range polyEdges(o) {
				pt, ok := Cross2Line(a, b, o.Point(j), o.Point(j+1), DefaultTol)
				if ok && box.ContainsPoint(pt, Tol{}) {
					consider(pt)
				}
			}
		}

	case p.IsLine() && o.SubPathCount() == 1:
		crossLineWithSegments(p.points[0], p.points[1], o, box, consider)

	case o.IsLine() && p.SubPathCount() == 1:
		crossLineWithSegments(o.points[0], o.points[1], p, box, consider)
	}
	return best, minDist < box.Width()
}

func polyEdges(p *Path) int {
	if p.IsClosed() {
		return p.Len()
	}
	return p.Len() - 1
}

func crossLineWithSegments(a, b Point, p *Path, box Box, consider func(Point)) {
	for s := range p.Segments() {
		if s.Line {
			if !box.Contains(NewBox(s.P0, s.P3)) {
				continue
			}
			if pt, ok := Cross2Line(s.P0, s.P3, a, b, DefaultTol); ok {
				consider(pt)
			}
			continue
		}
		if !box.Contains(s.ControlBox()) {
			continue
		}
		ts, n := s.IntersectLine(a, b)
		for _, t := range ts[:n] {
			consider(s.Eval(t))
		}
	}
}

// Beziers converts p into one run of cubic segments per figure, with lines
// raised to straight cubics.
func (p *Path) Beziers() [][]Point {
	b := &bezierCollector{}
	p.ScanSegments(b)
	return b.out
}

type bezierCollector struct {
	out [][]Point
	cur []Point
}

func (b *bezierCollector) BeginSubPath() { b.cur = nil }

func (b *bezierCollector) EndSubPath(bool) {
	if len(b.cur) > 0 {
		b.out = append(b.out, slices.Clip(b.cur))
	}
}

func (b *bezierCollector) Line(start, end int, p0, p1 Point) bool {
	return b.Bezier(start, end, CubicBez{p0, p0.Lerp(p1, 1.0/3), p0.Lerp(p1, 2.0/3), p1})
}

func (b *bezierCollector) Bezier(_, _ int, c CubicBez) bool {
	if len(b.cur) == 0 {
		b.cur = append(b.cur, c.P0)
	}
	b.cur = append(b.cur, c.P1, c.P2, c.P3)
	return true
}
