package geom

import (
	"iter"
	"math"
	"slices"
)

// NodeType tags each node of a [Path] with how it is reached from the
// previous node.
type NodeType uint8

const (
	// CloseFigure is or'ed into the last node of a closed figure.
	CloseFigure NodeType = 1
	LineTo      NodeType = 2
	BezierTo    NodeType = 4
	QuadTo      NodeType = 8
	MoveTo      NodeType = 6
)

// Kind returns the node type without the CloseFigure bit.
func (t NodeType) Kind() NodeType {
	if t == MoveTo {
		return t
	}
	return t &^ CloseFigure
}

// nodeTypeFromByte maps the compact letters m, l, c and q to node types. The
// upper case L, C and Q also close the figure.
func nodeTypeFromByte(c byte) NodeType {
	switch c {
	case 'm', 'M':
		return MoveTo
	case 'l':
		return LineTo
	case 'c':
		return BezierTo
	case 'q':
		return QuadTo
	case 'L':
		return LineTo | CloseFigure
	case 'C':
		return BezierTo | CloseFigure
	case 'Q':
		return QuadTo | CloseFigure
	default:
		return NodeType(c)
	}
}

// Path is a sequence of figures made of straight lines, cubic Béziers and
// quadratic Béziers. A BezierTo segment takes three nodes (two controls and
// the end), a QuadTo segment takes two.
//
// Figures are built by calling MoveTo first and then any of the other
// builders; every builder reports false and leaves the path unchanged when
// there is no open figure. The zero Path is empty and ready to use.
type Path struct {
	points []Point
	types  []NodeType
	// figure is one more than the index of the MoveTo node of the open
	// figure, or 0 when no figure is open.
	figure int
}

// PathFromNodes builds a path from points and their node types given as
// letters, see [Path.SetNodes].
func PathFromNodes(pts []Point, types string) *Path {
	p := &Path{}
	p.SetNodes(pts, types)
	return p
}

// SetNodes replaces the content of p. types holds one letter per point: m
// for a move, l, c and q for line, cubic and quadratic nodes, and L, C and Q
// for the last node of a closed figure.
func (p *Path) SetNodes(pts []Point, types string) {
	p.Clear()
	n := min(len(pts), len(types))
	p.points = slices.Clone(pts[:n])
	p.types = make([]NodeType, n)
	for i := range n {
		p.types[i] = nodeTypeFromByte(types[i])
	}
}

// SetPath replaces the content of p with copies of pts and types.
func (p *Path) SetPath(pts []Point, types []NodeType) {
	p.Clear()
	n := min(len(pts), len(types))
	p.points = slices.Clone(pts[:n])
	p.types = slices.Clone(types[:n])
}

func (p *Path) Clone() *Path {
	return &Path{
		points: slices.Clone(p.points),
		types:  slices.Clone(p.types),
		figure: p.figure,
	}
}

// Append adds the nodes of o. When o starts with a move to the end point of
// an open figure of p, that move is dropped and the figures are joined.
func (p *Path) Append(o *Path) *Path {
	if p == o || o.Len() == 0 {
		return p
	}
	i := 0
	if n := len(p.types); n > 0 && o.types[0] == MoveTo &&
		p.types[n-1]&CloseFigure == 0 && p.types[n-1] != MoveTo &&
		p.EndPoint() == o.points[0] {
		i = 1
	}
	base := len(p.points)
	p.points = append(p.points, o.points[i:]...)
	p.types = append(p.types, o.types[i:]...)
	switch {
	case o.figure == 0:
		p.figure = 0
	case i == 1 && o.figure == 1:
		// The open figure of o continues the last figure of p.
	default:
		p.figure = base + o.figure - i
	}
	return p
}

func (p *Path) Len() int { return len(p.points) }

func (p *Path) Points() []Point { return p.points }

func (p *Path) Types() []NodeType { return p.types }

// NodeType returns the type of node i, or 0 if i is out of range.
func (p *Path) NodeType(i int) NodeType {
	if i < 0 || i >= len(p.types) {
		return 0
	}
	return p.types[i]
}

// Point returns node i, wrapping indices past the end. A negative index or
// an empty path yields the zero point.
func (p *Path) Point(i int) Point {
	if i < 0 || len(p.points) == 0 {
		return Point{}
	}
	return p.points[i%len(p.points)]
}

func (p *Path) SetPoint(i int, pt Point) {
	if i >= 0 && i < len(p.points) {
		p.points[i] = pt
	}
}

func (p *Path) Clear() {
	p.points = p.points[:0]
	p.types = p.types[:0]
	p.figure = 0
}

func (p *Path) Transform(aff Affine) {
	TransformPoints(p.points, aff)
}

// SubPathCount returns the number of figures.
func (p *Path) SubPathCount() int {
	n := 0
	for _, t := range p.types {
		if t == MoveTo {
			n++
		}
	}
	return n
}

func (p *Path) StartPoint() Point {
	if len(p.points) == 0 {
		return Point{}
	}
	return p.points[0]
}

func (p *Path) EndPoint() Point {
	if len(p.points) == 0 {
		return Point{}
	}
	return p.points[len(p.points)-1]
}

// StartTangent returns the vector from the first node to the second.
func (p *Path) StartTangent() Vec2 {
	if len(p.points) < 2 {
		return Vec2{}
	}
	return p.points[1].Sub(p.points[0])
}

// EndTangent returns the vector from the second to last node to the last.
func (p *Path) EndTangent() Vec2 {
	n := len(p.points)
	if n < 2 {
		return Vec2{}
	}
	return p.points[n-1].Sub(p.points[n-2])
}

// IsLine reports whether p is a single straight segment.
func (p *Path) IsLine() bool {
	return len(p.types) == 2 && p.types[0] == MoveTo && p.types[1] == LineTo
}

// IsLines reports whether p is a single polyline, closed or not.
func (p *Path) IsLines() bool {
	n := len(p.types)
	if n < 2 || p.types[0] != MoveTo {
		return false
	}
	for i, t := range p.types[1:] {
		if t != LineTo {
			return i+1 == n-1 && t == LineTo|CloseFigure
		}
	}
	return true
}

// IsCurve reports whether p is a single figure made of curves only.
func (p *Path) IsCurve() bool {
	n := len(p.types)
	if n < 2 || p.types[0] != MoveTo {
		return false
	}
	for _, t := range p.types[1:] {
		if t.Kind()&(BezierTo|QuadTo) == 0 || t.Kind() == MoveTo {
			return false
		}
	}
	return true
}

// IsClosed reports whether the last figure is closed.
func (p *Path) IsClosed() bool {
	n := len(p.types)
	return n > 2 && p.types[n-1] != MoveTo && p.types[n-1]&CloseFigure != 0
}

// StartFigure forgets the open figure; the next builder must be MoveTo.
func (p *Path) StartFigure() {
	p.figure = 0
}

func (p *Path) resolve(pt Point, rel bool) Point {
	if rel {
		return pt.Translate(Vec2(p.EndPoint()))
	}
	return pt
}

func (p *Path) push(t NodeType, pts ...Point) {
	for _, pt := range pts {
		p.points = append(p.points, pt)
		p.types = append(p.types, t)
	}
}

// MoveTo starts a new figure at pt. A trailing move without segments is
// replaced.
func (p *Path) MoveTo(pt Point, rel bool) bool {
	pt = p.resolve(pt, rel)
	if n := len(p.types); n > 0 && p.types[n-1] == MoveTo {
		p.points = p.points[:n-1]
		p.types = p.types[:n-1]
	}
	p.push(MoveTo, pt)
	p.figure = len(p.points)
	return true
}

func (p *Path) LineTo(pt Point, rel bool) bool {
	if p.figure == 0 {
		return false
	}
	p.push(LineTo, p.resolve(pt, rel))
	return true
}

// HorzTo draws a horizontal line to x.
func (p *Path) HorzTo(x float64, rel bool) bool {
	pt := p.EndPoint()
	if rel {
		x += pt.X
	}
	return p.LineTo(Point{x, pt.Y}, false)
}

// VertTo draws a vertical line to y.
func (p *Path) VertTo(y float64, rel bool) bool {
	pt := p.EndPoint()
	if rel {
		y += pt.Y
	}
	return p.LineTo(Point{pt.X, y}, false)
}

// LinesTo appends a polyline; pts excludes the current point.
func (p *Path) LinesTo(pts []Point, rel bool) bool {
	if p.figure == 0 || len(pts) == 0 {
		return false
	}
	last := p.EndPoint()
	for _, pt := range pts {
		if rel {
			pt = pt.Translate(Vec2(last))
		}
		p.push(LineTo, pt)
	}
	return true
}

// BeziersTo appends cubic segments; pts excludes the current point and holds
// three points per segment. With reverse set the points are taken from the
// end of pts.
func (p *Path) BeziersTo(pts []Point, reverse, rel bool) bool {
	if p.figure == 0 || len(pts) == 0 || len(pts)%3 != 0 {
		return false
	}
	last := p.EndPoint()
	for i := range pts {
		pt := pts[i]
		if reverse {
			pt = pts[len(pts)-1-i]
		}
		if rel {
			pt = pt.Translate(Vec2(last))
		}
		p.push(BezierTo, pt)
	}
	return true
}

func (p *Path) BezierTo(cp1, cp2, end Point, rel bool) bool {
	if p.figure == 0 {
		return false
	}
	p.push(BezierTo, p.resolve(cp1, rel), p.resolve(cp2, rel), p.resolve(end, rel))
	return true
}

// mirroredControl reflects the node before the current point through it,
// or returns the current point when there is none.
func (p *Path) mirroredControl() Point {
	n := len(p.points)
	last := p.EndPoint()
	if n < 2 {
		return last
	}
	return last.Translate(last.Sub(p.points[n-2]))
}

// SmoothBezierTo appends a cubic segment whose first control mirrors the
// previous node through the current point.
func (p *Path) SmoothBezierTo(cp2, end Point, rel bool) bool {
	if p.figure == 0 {
		return false
	}
	cp1 := p.mirroredControl()
	p.push(BezierTo, cp1, p.resolve(cp2, rel), p.resolve(end, rel))
	return true
}

// QuadsTo appends quadratic segments; pts holds two points per segment.
func (p *Path) QuadsTo(pts []Point, rel bool) bool {
	if p.figure == 0 || len(pts) == 0 || len(pts)%2 != 0 {
		return false
	}
	last := p.EndPoint()
	for _, pt := range pts {
		if rel {
			pt = pt.Translate(Vec2(last))
		}
		p.push(QuadTo, pt)
	}
	return true
}

func (p *Path) QuadTo(cp, end Point, rel bool) bool {
	if p.figure == 0 {
		return false
	}
	p.push(QuadTo, p.resolve(cp, rel), p.resolve(end, rel))
	return true
}

// SmoothQuadTo appends a quadratic segment whose control mirrors the
// previous node through the current point.
func (p *Path) SmoothQuadTo(end Point, rel bool) bool {
	if p.figure == 0 {
		return false
	}
	cp := p.mirroredControl()
	p.push(QuadTo, cp, p.resolve(end, rel))
	return true
}

func (p *Path) pushArc(a Arc) bool {
	pts := a.Beziers()
	if len(pts) < 4 {
		return false
	}
	p.push(BezierTo, pts[1:]...)
	return true
}

// ArcTo appends a circular arc from the current point to pt, tangent to the
// last segment. The figure needs at least one segment.
func (p *Path) ArcTo(pt Point, rel bool) bool {
	n := len(p.points)
	if p.figure == 0 || n < p.figure+1 {
		return false
	}
	start := p.points[n-1]
	a, ok := ArcTan(start, p.resolve(pt, rel), start.Sub(p.points[n-2]))
	return ok && p.pushArc(a)
}

// ArcTo3P appends a circular arc from the current point through mid to end.
func (p *Path) ArcTo3P(mid, end Point, rel bool) bool {
	if p.figure == 0 {
		return false
	}
	a, ok := Arc3P(p.EndPoint(), p.resolve(mid, rel), p.resolve(end, rel))
	return ok && p.pushArc(a)
}

// CloseFigure closes the open figure, which needs at least two segment
// nodes.
func (p *Path) CloseFigure() bool {
	n := len(p.points)
	if p.figure == 0 || n < p.figure+2 {
		return false
	}
	switch p.types[n-1] {
	case LineTo, BezierTo, QuadTo:
		p.types[n-1] |= CloseFigure
		p.figure = 0
		return true
	}
	return false
}

// figures yields the [start, end) node ranges of the figures of p.
func (p *Path) figures() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		start := 0
		for i := 1; i <= len(p.types); i++ {
			if i == len(p.types) || p.types[i] == MoveTo {
				if !yield(start, i) {
					return
				}
				start = i
			}
		}
	}
}

// Reverse reverses the direction of every figure and the order of the
// figures. A closed figure stays closed.
func (p *Path) Reverse() *Path {
	if len(p.points) < 2 {
		return p
	}
	var ranges [][2]int
	for s, e := range p.figures() {
		ranges = append(ranges, [2]int{s, e})
	}
	pts := make([]Point, 0, len(p.points))
	types := make([]NodeType, 0, len(p.types))
	for _, r := range slices.Backward(ranges) {
		s, e := r[0], r[1]
		n := e - s
		closed := n > 2 && p.types[e-1]&CloseFigure != 0
		for k := range n {
			pts = append(pts, p.points[e-1-k])
			if k == 0 {
				types = append(types, MoveTo)
				continue
			}
			// The segment into the new node k was described by the old
			// node it started from.
			t := p.types[e-k].Kind()
			if t == MoveTo {
				t = LineTo
			}
			types = append(types, t)
		}
		if closed {
			types[len(types)-1] |= CloseFigure
		}
	}
	p.points, p.types = pts, types
	p.figure = 0
	return p
}

// angleToBezier rounds the corner pts[1] of the polyline pts[0]-pts[1]-pts[2]
// with an arc of radius. It returns nil when the corner should stay sharp.
func angleToBezier(pts [3]Point, radius float64) []Point {
	vec1 := pts[1].Sub(pts[0])
	vec2 := pts[2].Sub(pts[1])

	halfAngle := 0.5 * math.Abs(vec1.AngleTo2(vec2))
	if halfAngle < 1e-4 || math.Abs(halfAngle-HalfPi) < 1e-4 {
		return nil
	}

	dist1 := 0.5 * vec1.Hypot()
	dist2 := 0.5 * vec2.Hypot()
	arc := radius / math.Tan(halfAngle)
	if arc > dist1 || arc > dist2 {
		old := arc
		arc = min(dist1, dist2)
		if arc < old*0.5 {
			return nil
		}
	}

	start := pts[1].RulerPoint(pts[0], arc, 0)
	end := pts[1].RulerPoint(pts[2], arc, 0)
	a, ok := ArcTan(start, end, pts[1].Sub(start))
	if !ok {
		return nil
	}
	if bez := a.Beziers(); len(bez) >= 4 {
		return bez
	}
	return nil
}

// RoundLines replaces p with the polyline pts whose corners are rounded with
// arcs of at most radius.
func (p *Path) RoundLines(pts []Point, radius float64, closed bool) bool {
	p.Clear()
	n := len(pts)
	if n < 3 || radius < MinDist {
		return false
	}

	if closed {
		if bez := angleToBezier([3]Point{pts[n-1], pts[0], pts[1]}, radius); bez != nil {
			p.MoveTo(bez[0], false)
			p.BeziersTo(bez[1:], false, false)
		} else {
			p.MoveTo(pts[0], false)
		}
	} else {
		p.MoveTo(pts[0], false)
	}

	end := n - 1
	if closed {
		end = n
	}
	for i := 1; i < end; i++ {
		bez := angleToBezier([3]Point{pts[i-1], pts[i], pts[(i+1)%n]}, radius)
		if bez == nil {
			p.LineTo(pts[i], false)
		} else {
			p.LineTo(bez[0], false)
			p.BeziersTo(bez[1:], false, false)
		}
	}

	if closed {
		p.CloseFigure()
	} else {
		p.LineTo(pts[n-1], false)
	}
	return true
}
