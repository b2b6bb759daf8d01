package geom

import "math"

// NearestResult describes the outcome of a hit test. A miss has Dist set to
// math.MaxFloat64 and Segment set to -1.
type NearestResult struct {
	// Point is the nearest point found.
	Point Point
	Dist  float64
	// Segment is the index of the segment or vertex that was hit. Its
	// meaning depends on the function that produced the result.
	Segment int
	// Inside reports whether the point lies inside a closed figure.
	Inside bool
	Type   AreaResult
}

// Miss returns the result of a hit test that found nothing.
func Miss() NearestResult {
	return NearestResult{Dist: math.MaxFloat64, Segment: -1}
}

// Hit reports whether r found anything within tol.
func (r NearestResult) Hit(tol float64) bool {
	return r.Segment >= 0 && r.Dist <= tol
}

// closingBezier returns the segment that closes a run of Bézier points,
// mirroring the arms at both ends.
func closingBezier(pts []Point) CubicBez {
	n := len(pts)
	last, first := pts[n-1], pts[0]
	return CubicBez{
		last,
		last.Translate(last.Sub(pts[n-2])),
		first.Translate(first.Sub(pts[1])),
		first,
	}
}

// BeziersBox returns the bounding box of the run of cubic segments pts
// (1+3k points).
func BeziersBox(pts []Point, closed bool) Box {
	var box Box
	for i := 0; i+3 < len(pts); i += 3 {
		box = box.Union(CubicFromPoints(pts[i:]).BoundingBox())
	}
	if closed && len(pts) > 3 {
		box = box.Union(closingBezier(pts).BoundingBox())
	}
	return box
}

// BeziersIntersectBox reports whether any segment of pts touches box.
func BeziersIntersectBox(box Box, pts []Point, closed bool) bool {
	for i := 0; i+3 < len(pts); i += 3 {
		if box.IsIntersect(CubicFromPoints(pts[i:]).BoundingBox()) {
			return true
		}
	}
	return closed && len(pts) > 3 && box.IsIntersect(closingBezier(pts).BoundingBox())
}

// CubicSplinesBox returns the bounding box of the spline through knots.
func CubicSplinesBox(knots []Point, knotvs []Vec2, closed, hermite bool) Box {
	var box Box
	for i := range splineSegments(len(knots), closed) {
		box = box.Union(CubicSplineToBezier(knots, knotvs, i, hermite).BoundingBox())
	}
	return box
}

// CubicSplinesIntersectBox reports whether any segment of the spline touches
// box.
func CubicSplinesIntersectBox(box Box, knots []Point, knotvs []Vec2, closed, hermite bool) bool {
	for i := range splineSegments(len(knots), closed) {
		if box.IsIntersect(CubicSplineToBezier(knots, knotvs, i, hermite).BoundingBox()) {
			return true
		}
	}
	return false
}

func hitBox(pt Point, tol float64) Box {
	return BoxFromCenter(pt, 2*tol, 2*tol)
}

// CubicSplinesHit finds the point of a spline nearest to pt. Only segments
// whose bounds come within tol are examined. With nil knotvs, knots are
// Bézier points (1+3k) and Segment is the index of the segment's first
// point; otherwise Segment is the knot index.
func CubicSplinesHit(knots []Point, knotvs []Vec2, closed bool, pt Point, tol float64, hermite bool) NearestResult {
	res := Miss()
	rect := hitBox(pt, tol)
	try := func(c CubicBez, seg int) {
		if !rect.IsIntersect(c.BoundingBox()) {
			return
		}
		near, _ := NearestOnBezier(pt, c)
		if d := pt.Distance(near); d < res.Dist {
			res.Dist, res.Point, res.Segment = d, near, seg
		}
	}
	if knotvs != nil {
		for i := range splineSegments(len(knots), closed) {
			try(CubicSplineToBezier(knots, knotvs, i, hermite), i)
		}
	} else {
		for i := 0; i+3 < len(knots); i += 3 {
			try(CubicFromPoints(knots[i:]), i)
		}
	}
	return res
}

// QuadSplinesHit finds the point nearest to pt on the quadratic B-spline
// with control points knots. Segment i runs between the midpoints of the
// control polygon around knots[i+1].
func QuadSplinesHit(knots []Point, closed bool, pt Point, tol float64) NearestResult {
	res := Miss()
	n := len(knots)
	if n < 3 {
		return res
	}
	rect := hitBox(pt, tol)
	segs := n - 2
	if closed {
		segs = n
	}
	var q QuadBez
	for i := range segs {
		if i == 0 {
			q.P0 = knots[0]
			if closed {
				q.P0 = knots[0].Midpoint(knots[1])
			}
		} else {
			q.P0 = q.P2
		}
		q.P1 = knots[(i+1)%n]
		if closed || i+3 < n {
			q.P2 = knots[(i+1)%n].Midpoint(knots[(i+2)%n])
		} else {
			q.P2 = knots[i+2]
		}

		c := q.Raise()
		if !rect.IsIntersect(c.BoundingBox()) {
			continue
		}
		near, _ := NearestOnBezier(pt, c)
		if d := pt.Distance(near); d < res.Dist {
			res.Dist, res.Point, res.Segment = d, near, i
		}
	}
	return res
}

// LinesHit hit-tests a polyline or polygon. A vertex or edge within tol is
// reported first, with Segment set to its index. A point inside a closed
// polygon reports the nearest edge, with Segment set only if that edge is
// within tol. Anything else is a miss. flags and ignoreVertex are passed to
// [PtInArea].
func LinesHit(pts []Point, closed bool, pt Point, tol float64, flags int, ignoreVertex int) NearestResult {
	res := Miss()
	n := len(pts)
	if n == 0 {
		return res
	}
	typ, idx := PtInArea(pt, pts, Tol{Point: tol, Vector: DefaultTol.Vector}, closed, flags, ignoreVertex)
	res.Type = typ
	res.Inside = closed && typ == AreaInside

	switch typ {
	case AreaAtVertex:
		res.Point = pts[idx]
		res.Dist = pt.Distance(res.Point)
		res.Segment = idx
		return res
	case AreaOnEdge:
		res.Dist, res.Point = PtToLine(pts[idx], pts[(idx+1)%n], pt)
		res.Segment = idx
		return res
	}
	if !res.Inside {
		return res
	}

	for i := range n {
		d, near := PtToLine(pts[i], pts[(i+1)%n], pt)
		if d < res.Dist {
			res.Dist, res.Point = d, near
			if d <= tol {
				res.Segment = i
			}
		}
	}
	return res
}

// RectHandle returns the handle point of rect: 0..3 are the corners from
// the top left clockwise, 4..7 are the midpoints of the top, right, bottom
// and left sides. Any other index is the center.
func RectHandle(rect Box, index int) Point {
	switch index {
	case 0:
		return rect.LeftTop()
	case 1:
		return rect.RightTop()
	case 2:
		return rect.RightBottom()
	case 3:
		return rect.LeftBottom()
	case 4:
		return Point{rect.Center().X, rect.YMax}
	case 5:
		return Point{rect.XMax, rect.Center().Y}
	case 6:
		return Point{rect.Center().X, rect.YMin}
	case 7:
		return Point{rect.XMin, rect.Center().Y}
	default:
		return rect.Center()
	}
}

// MoveRectHandle drags handle index of rect to pt and returns the new box.
// Dragging a corner with lockCornerScale keeps the aspect ratio.
func MoveRectHandle(rect Box, index int, pt Point, lockCornerScale bool) Box {
	if index < 0 || index >= 8 {
		return rect
	}
	var pts [4]Point
	for i := range pts {
		pts[i] = RectHandle(rect, index/4*4+i)
	}
	pts[index%4] = pt

	if index >= 4 {
		return NewBox(Point{pts[3].X, pts[2].Y}, Point{pts[1].X, pts[0].Y})
	}

	pt1 := pt
	if lockCornerScale && !rect.IsEmpty(DefaultTol) {
		pt2 := pts[(index+2)%4]
		w := math.Abs(pt2.X - pt.X)
		h := math.Abs(pt2.Y - pt.Y)
		if w*rect.Height() > h*rect.Width() {
			h = w * rect.Height() / rect.Width()
		} else {
			w = h * rect.Width() / rect.Height()
		}
		pt1.X = pt2.X + math.Copysign(w, pt.X-pt2.X)
		pt1.Y = pt2.Y + math.Copysign(h, pt.Y-pt2.Y)
		pts[index] = pt1
	}
	if index%2 == 0 {
		pts[(index+1)%4].Y = pt1.Y
		pts[(index+3)%4].X = pt1.X
	} else {
		pts[(index+1)%4].X = pt1.X
		pts[(index+3)%4].Y = pt1.Y
	}
	return BoxOfPoints(pts[:]...)
}

// RoundRectHit hit-tests the outline of a rounded rectangle with corner
// radii rx and ry. Segments 0..3 are the corner arcs from the top left
// clockwise; 4..7 are the top, right, bottom and left edges.
func RoundRectHit(rect Box, rx, ry float64, pt Point, tol float64) NearestResult {
	res := Miss()
	rx = math.Abs(rx)
	if ry < MinDist {
		ry = rx
	}
	rx = min(rx, rect.Width()*0.5)
	ry = min(ry, rect.Height()*0.5)
	rectTol := hitBox(pt, tol)

	tan := func(from, to int, r float64) Point {
		return RectHandle(rect, from).RulerPoint(RectHandle(rect, to), r, 0)
	}
	edges := [4][2]Point{
		{tan(0, 1, rx), tan(1, 0, rx)},
		{tan(1, 2, ry), tan(2, 1, ry)},
		{tan(2, 3, rx), tan(3, 2, rx)},
		{tan(3, 0, ry), tan(0, 3, ry)},
	}
	for i, e := range edges {
		line := NewBox(e[0], e[1])
		if !line.IsEmpty(DefaultTol) && !rectTol.IsIntersect(line) {
			continue
		}
		if d, near := PtToLine(e[0], e[1], pt); d <= tol && d < res.Dist {
			res.Dist, res.Point, res.Segment = d, near, 4+i
		}
	}

	if rx > MinDist && ry > MinDist {
		dx := rect.Width()*0.5 - rx
		dy := rect.Height()*0.5 - ry
		ell := EllipseToBezier(rect.Center(), rx, ry)
		offsets := [4]Vec2{{dx, dy}, {-dx, dy}, {-dx, -dy}, {dx, -dy}}
		for i, off := range offsets {
			c := CubicFromPoints(ell[3*i:]).Transform(Translate(off))
			if !rectTol.IsIntersect(c.ControlBox()) {
				continue
			}
			near, _ := NearestOnBezier(pt, c)
			if d := pt.Distance(near); d <= tol && d < res.Dist {
				res.Dist, res.Point, res.Segment = d, near, (5-i)%4
			}
		}
	}
	return res
}
