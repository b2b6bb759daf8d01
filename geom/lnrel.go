package geom

import "math"

// Relations between points, lines and polygons. A "line" is the finite
// segment between two points; a "beeline" is the infinite line through them.

// IsLeft reports whether pt lies strictly to the left of the directed line
// a→b.
func IsLeft(a, b, pt Point) bool {
	return b.Sub(a).Cross(pt.Sub(a)) > 0
}

// IsLeft2 is like IsLeft but requires pt to be more than tol.Point away from
// the line.
func IsLeft2(a, b, pt Point, tol Tol) bool {
	return b.Sub(a).DistanceToVector(pt.Sub(a)) > tol.Point
}

// IsLeftOn reports whether pt lies to the left of a→b or on it.
func IsLeftOn(a, b, pt Point) bool {
	return b.Sub(a).Cross(pt.Sub(a)) >= 0
}

// IsLeftOn2 is like IsLeftOn with tol.Point of slack.
func IsLeftOn2(a, b, pt Point, tol Tol) bool {
	return b.Sub(a).DistanceToVector(pt.Sub(a)) > -tol.Point
}

// IsColinear reports whether a, b and pt lie on one line.
func IsColinear(a, b, pt Point) bool {
	return isZero(b.Sub(a).Cross(pt.Sub(a)))
}

// IsColinear2 is like IsColinear with the cross product compared against
// tol.Point.
func IsColinear2(a, b, pt Point, tol Tol) bool {
	return math.Abs(b.Sub(a).Cross(pt.Sub(a))) < tol.Point
}

// IsIntersectProp reports whether segments ab and cd cross at a point
// interior to both.
func IsIntersectProp(a, b, c, d Point) bool {
	if IsColinear(a, b, c) || IsColinear(a, b, d) || IsColinear(c, d, a) || IsColinear(c, d, b) {
		return false
	}
	return (IsLeft(a, b, c) != IsLeft(a, b, d)) && (IsLeft(c, d, a) != IsLeft(c, d, b))
}

// IsIntersect reports whether segments ab and cd share a point.
func IsIntersect(a, b, c, d Point) bool {
	if IsIntersectProp(a, b, c, d) {
		return true
	}
	return IsBetweenLine(a, b, c) || IsBetweenLine(a, b, d) ||
		IsBetweenLine(c, d, a) || IsBetweenLine(c, d, b)
}

// IsBetweenLine reports whether pt lies on the segment ab.
func IsBetweenLine(a, b, pt Point) bool {
	if !IsColinear(a, b, pt) {
		return false
	}
	return between(a, b, pt, 0)
}

// IsBetweenLine2 is like IsBetweenLine with tolerances on both the
// colinearity and the range tests.
func IsBetweenLine2(a, b, pt Point, tol Tol) bool {
	if !IsColinear2(a, b, pt, tol) {
		return false
	}
	return between(a, b, pt, tol.Point)
}

func between(a, b, pt Point, eps float64) bool {
	if a.X != b.X {
		return (a.X <= pt.X+eps && pt.X <= b.X+eps) || (a.X >= pt.X-eps && pt.X >= b.X-eps)
	}
	return (a.Y <= pt.Y+eps && pt.Y <= b.Y+eps) || (a.Y >= pt.Y-eps && pt.Y >= b.Y-eps)
}

// IsBetweenLine3 assumes pt is colinear with ab and reports whether it lies
// within the segment. It also returns the endpoint nearer to pt.
func IsBetweenLine3(a, b, pt Point) (bool, Point) {
	if a.X != b.X {
		near := b
		if math.Abs(pt.X-a.X) < math.Abs(pt.X-b.X) {
			near = a
		}
		return (a.X <= pt.X && pt.X <= b.X) || (a.X >= pt.X && pt.X >= b.X), near
	}
	near := b
	if math.Abs(pt.Y-a.Y) < math.Abs(pt.Y-b.Y) {
		near = a
	}
	return (a.Y <= pt.Y && pt.Y <= b.Y) || (a.Y >= pt.Y && pt.Y >= b.Y), near
}

// IsProjectBetweenLine reports whether the projection of pt onto the
// beeline ab falls within the segment.
func IsProjectBetweenLine(a, b, pt Point) bool {
	proj := pt.Sub(a).ProjectScale(b.Sub(a))
	return proj >= 0 && proj <= 1
}

// IsProjectBetweenRayline reports whether the projection of pt onto the
// ray from a through b falls on the ray.
func IsProjectBetweenRayline(a, b, pt Point) bool {
	return pt.Sub(a).ProjectScale(b.Sub(a)) >= 0
}

// PtToBeeline returns the cross product of b−a and pt−a, which is the signed
// distance of pt from the beeline scaled by |ab|.
func PtToBeeline(a, b, pt Point) float64 {
	return b.Sub(a).Cross(pt.Sub(a))
}

// PtToBeeline2 returns the distance from pt to the beeline through a and b,
// and the foot of the perpendicular. Coincident a and b give the distance
// to a.
func PtToBeeline2(a, b, pt Point) (float64, Point) {
	switch {
	case a == b:
		return a.Distance(pt), a
	case equals(a.X, b.X):
		return math.Abs(a.X - pt.X), Point{a.X, pt.Y}
	case equals(a.Y, b.Y):
		return math.Abs(a.Y - pt.Y), Point{pt.X, a.Y}
	default:
		t1 := (b.Y - a.Y) / (b.X - a.X)
		t2 := -1 / t1
		var perp Point
		perp.X = (pt.Y - a.Y + a.X*t1 - pt.X*t2) / (t1 - t2)
		perp.Y = a.Y + (perp.X-a.X)*t1
		return pt.Distance(perp), perp
	}
}

// PtToLine returns the distance from pt to the segment ab and the nearest
// point on it.
func PtToLine(a, b, pt Point) (float64, Point) {
	dist, near := PtToBeeline2(a, b, pt)
	if ok, end := IsBetweenLine3(a, b, near); !ok {
		return pt.Distance(end), end
	}
	return dist, near
}

// nearParallel reports whether the sine/cosine ratio of two directions is
// below tol.Vector.
func nearParallel(sinnum, cosnum float64, tol Tol) bool {
	return !isZero(cosnum) && math.Abs(sinnum/cosnum) < tol.Vector
}

// CrossLineAbc intersects the lines a1 x + b1 y + c1 = 0 and
// a2 x + b2 y + c2 = 0. Near-parallel lines fail.
func CrossLineAbc(a1, b1, c1, a2, b2, c2 float64, tol Tol) (Point, bool) {
	sinnum := a1*b2 - a2*b1
	if isZero(sinnum) {
		return Point{}, false
	}
	if nearParallel(sinnum, a1*a2+b1*b2, tol) {
		return Point{}, false
	}
	return Point{
		X: (b1*c2 - b2*c1) / sinnum,
		Y: (a2*c1 - a1*c2) / sinnum,
	}, true
}

// Cross2Beeline intersects the beelines ab and cd. u and v are the
// parameters of the intersection along ab and cd.
func Cross2Beeline(a, b, c, d Point, tol Tol) (pt Point, u, v float64, ok bool) {
	denom := (c.X-d.X)*(b.Y-a.Y) - (c.Y-d.Y)*(b.X-a.X)
	if isZero(denom) {
		return Point{}, 0, 0, false
	}
	if nearParallel(denom, (b.X-a.X)*(d.X-c.X)+(b.Y-a.Y)*(d.Y-c.Y), tol) {
		return Point{}, 0, 0, false
	}
	u = ((c.X-a.X)*(d.Y-c.Y) - (c.Y-a.Y)*(d.X-c.X)) / denom
	v = ((c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)) / denom
	return a.Lerp(b, u), u, v, true
}

// LineLimit is the coordinate magnitude beyond which segments are clipped
// before intersecting them.
const LineLimit = 1e5 - 1

// Cross2Line intersects the segments ab and cd. The intersection must be
// interior to both segments.
func Cross2Line(a, b, c, d Point, tol Tol) (Point, bool) {
	box := Box{-LineLimit, -LineLimit, LineLimit, LineLimit}
	clip := Box{-LineLimit / 2, -LineLimit / 2, LineLimit / 2, LineLimit / 2}
	if !box.ContainsPoint(a, Tol{}) || !box.ContainsPoint(b, Tol{}) {
		a2, b2, ok := ClipLine(a, b, clip)
		if !ok {
			return Point{}, false
		}
		return Cross2Line(a2, b2, c, d, tol)
	}
	if !box.ContainsPoint(c, Tol{}) || !box.ContainsPoint(d, Tol{}) {
		c2, d2, ok := ClipLine(c, d, clip)
		if !ok {
			return Point{}, false
		}
		return Cross2Line(a, b, c2, d2, tol)
	}

	if min(a.X, b.X)-max(c.X, d.X) > MinDist ||
		min(c.X, d.X)-max(a.X, b.X) > MinDist ||
		min(a.Y, b.Y)-max(c.Y, d.Y) > MinDist ||
		min(c.Y, d.Y)-max(a.Y, b.Y) > MinDist {
		return Point{}, false
	}

	denom := (c.X-d.X)*(b.Y-a.Y) - (c.Y-d.Y)*(b.X-a.X)
	if isZero(denom) {
		return Point{}, false
	}
	if nearParallel(denom, (b.X-a.X)*(d.X-c.X)+(b.Y-a.Y)*(d.Y-c.Y), tol) {
		return Point{}, false
	}
	u := ((c.X-a.X)*(d.Y-c.Y) - (c.Y-a.Y)*(d.X-c.X)) / denom
	if u < MinDist || u > 1-MinDist {
		return Point{}, false
	}
	v := ((c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)) / denom
	if v < MinDist || v > 1-MinDist {
		return Point{}, false
	}
	return a.Lerp(b, u), true
}

// Cross2LineV returns the parameters of the intersection of the beelines ab
// and cd, and whether both lie in [0, 1].
func Cross2LineV(a, b, c, d Point) (u, v float64, ok bool) {
	denom := (b.X-a.X)*(d.Y-c.Y) - (b.Y-a.Y)*(d.X-c.X)
	if isZero(denom) {
		return 0, 0, false
	}
	u = ((a.Y-c.Y)*(d.X-c.X) - (a.X-c.X)*(d.Y-c.Y)) / denom
	v = ((a.Y-c.Y)*(b.X-a.X) - (a.X-c.X)*(b.Y-a.Y)) / denom
	return u, v, !(u < 0 || u > 1 || v < 0 || v > 1)
}

// CrossLineBeeline intersects the segment ab with the beeline cd. v is the
// parameter along cd.
func CrossLineBeeline(a, b, c, d Point, tol Tol) (pt Point, v float64, ok bool) {
	denom := (c.X-d.X)*(b.Y-a.Y) - (c.Y-d.Y)*(b.X-a.X)
	if isZero(denom) {
		return Point{}, 0, false
	}
	if nearParallel(denom, (b.X-a.X)*(d.X-c.X)+(b.Y-a.Y)*(d.Y-c.Y), tol) {
		return Point{}, 0, false
	}
	u := ((c.X-a.X)*(d.Y-c.Y) - (c.Y-a.Y)*(d.X-c.X)) / denom
	if u < MinDist || u > 1-MinDist {
		return Point{}, 0, false
	}
	v = ((c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)) / denom
	return a.Lerp(b, u), v, true
}

const (
	outTop = 1 << (iota + 1)
	outBottom
	outLeft
	outRight
)

func outcode(pt Point, box Box) int {
	var ret int
	if pt.Y > box.YMax {
		ret |= outTop
	} else if pt.Y < box.YMin {
		ret |= outBottom
	}
	if pt.X < box.XMin {
		ret |= outLeft
	} else if pt.X > box.XMax {
		ret |= outRight
	}
	return ret
}

// ClipLine clips the segment p1p2 to box using Cohen–Sutherland outcodes.
// It returns false if the segment lies entirely outside.
func ClipLine(p1, p2 Point, box Box) (Point, Point, bool) {
	box = box.Normalize()
	v1 := outcode(p1, box)
	v2 := outcode(p2, box)
	for {
		if v1 == 0 && v2 == 0 {
			return p1, p2, true
		}
		if v1&v2 != 0 {
			return p1, p2, false
		}
		v := v1
		if v == 0 {
			v = v2
		}
		var x, y float64
		switch {
		case v&outTop != 0:
			x = p1.X + (p2.X-p1.X)*(box.YMax-p1.Y)/(p2.Y-p1.Y)
			y = box.YMax
		case v&outBottom != 0:
			x = p1.X + (p2.X-p1.X)*(box.YMin-p1.Y)/(p2.Y-p1.Y)
			y = box.YMin
		case v&outLeft != 0:
			y = p1.Y + (p2.Y-p1.Y)*(box.XMin-p1.X)/(p2.X-p1.X)
			x = box.XMin
		case v&outRight != 0:
			y = p1.Y + (p2.Y-p1.Y)*(box.XMax-p1.X)/(p2.X-p1.X)
			x = box.XMax
		}
		if v == v1 {
			p1 = Point{x, y}
			v1 = outcode(p1, box)
		} else {
			p2 = Point{x, y}
			v2 = outcode(p2, box)
		}
	}
}

// AreaResult classifies a point against a polygon.
type AreaResult int

const (
	AreaOutside AreaResult = iota
	AreaAtVertex
	AreaOnEdge
	AreaInside
)

// Selection bits for [PtInArea].
const (
	CheckVertex = 1 << AreaAtVertex
	CheckEdge   = 1 << AreaOnEdge
	CheckInside = 1 << AreaInside
	CheckAll    = CheckVertex | CheckEdge | CheckInside
)

// crossesUp toggles the parity for the edge p1p2 under a vertical ray going
// down from pt. prev is the vertex before p1, used to count a vertex touched
// by the ray once.
func crossesUp(pt, p1, p2, prev Point) bool {
	if !(p2.X > p1.X && pt.X >= p1.X && pt.X < p2.X) &&
		!(p1.X > p2.X && pt.X <= p1.X && pt.X > p2.X) {
		return false
	}
	if pt.Y > p1.Y+(pt.X-p1.X)*(p2.Y-p1.Y)/(p2.X-p1.X) {
		if equals(pt.X, p1.X) {
			if (prev.X > pt.X && p2.X > pt.X) || (prev.X < pt.X && p2.X < pt.X) {
				return false
			}
		}
		return true
	}
	return false
}

// PtInArea classifies pt against the polygon pts. Vertex coincidence is
// checked first, then edge coincidence, then ray parity; flags selects which
// of these run. ignoreVertex excludes one vertex and its adjacent edges from
// the vertex and edge checks (pass -1 for none). The returned index is the
// vertex or the edge start, or -1.
func PtInArea(pt Point, pts []Point, tol Tol, closed bool, flags int, ignoreVertex int) (AreaResult, int) {
	n := len(pts)
	if flags&CheckVertex != 0 && tol.Point < 1e5 {
		order := -1
		minDist := tol.Point
		for i, p := range pts {
			if i == ignoreVertex {
				continue
			}
			if d := pt.Distance(p); minDist > d {
				minDist = d
				order = i
			}
		}
		if order >= 0 {
			return AreaAtVertex, order
		}
	}

	if flags&CheckEdge != 0 {
		order := -1
		minDist := tol.Point
		edges := n - 1
		if closed {
			edges = n
		}
		for i := 0; i < edges; i++ {
			ei := (i + 1) % n
			if i == ignoreVertex || ei == ignoreVertex {
				continue
			}
			if d, _ := PtToLine(pts[i], pts[ei], pt); minDist > d {
				minDist = d
				order = i
			}
		}
		if order >= 0 {
			return AreaOnEdge, order
		}
	}

	if flags&CheckInside != 0 && n > 2 {
		inside := false
		for i := range n {
			if crossesUp(pt, pts[i], pts[(i+1)%n], pts[(i+n-1)%n]) {
				inside = !inside
			}
		}
		if inside {
			return AreaInside, -1
		}
	}
	return AreaOutside, -1
}

// IsConvex reports whether the polygon pts is convex, and if so whether its
// vertices run anticlockwise. Fewer than three points count as convex.
func IsConvex(pts []Point) (convex, acw bool) {
	n := len(pts)
	if n < 3 {
		return true, false
	}
	turn := func(i int) bool {
		prev := pts[(i+n-1)%n]
		cur := pts[i]
		next := pts[(i+1)%n]
		return (cur.X-prev.X)*(next.Y-cur.Y) > (cur.Y-prev.Y)*(next.X-cur.X)
	}
	z := turn(0)
	for i := 1; i < n; i++ {
		if turn(i) != z {
			return false, false
		}
	}
	return true, z
}
