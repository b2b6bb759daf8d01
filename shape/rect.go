package shape

import (
	"math"

	"honnef.co/go/vgcore/geom"
)

// rectGeom is the geometry shared by the rectangle-like kinds: four
// corners, possibly rotated, ordered top left, top right, bottom right,
// bottom left in the unrotated frame.
type rectGeom struct {
	Base
	pts [4]geom.Point
}

func (r *rectGeom) PointCount() int               { return 4 }
func (r *rectGeom) Point(i int) geom.Point        { return r.pts[i%4] }
func (r *rectGeom) SetPoint(i int, pt geom.Point) { r.pts[i%4] = pt }
func (r *rectGeom) Center() geom.Point            { return r.pts[0].Midpoint(r.pts[2]) }
func (r *rectGeom) Width() float64                { return r.pts[0].Distance(r.pts[1]) }
func (r *rectGeom) Height() float64               { return r.pts[1].Distance(r.pts[2]) }
func (r *rectGeom) Angle() float64                { return r.pts[1].Sub(r.pts[0]).Angle() }
func (r *rectGeom) Corners() []geom.Point         { return r.pts[:] }

// Rect returns the unrotated rectangle around the center.
func (r *rectGeom) Rect() geom.Box {
	c := r.Center()
	w, h := r.Width()/2, r.Height()/2
	return geom.Box{XMin: c.X - w, YMin: c.Y - h, XMax: c.X + w, YMax: c.Y + h}
}

// IsEmpty reports whether the diagonal is shorter than minDist.
func (r *rectGeom) IsEmpty(minDist float64) bool {
	return r.pts[2].Distance(r.pts[0]) < max(minDist, geom.MinDist)
}

// IsOrtho reports whether the top edge is horizontal.
func (r *rectGeom) IsOrtho() bool {
	return math.Abs(r.pts[1].Y-r.pts[0].Y) < geom.MinDist
}

// squareRect builds the rectangle spanned by pt1 and pt2 rotated by angle
// about base. With square set the result is forced to a square whose
// construction depends on whether base is pt1 and whether the shape is a
// curve.
func (r *rectGeom) squareRect(pt1, pt2 geom.Point, angle float64, base geom.Point, square, curve bool) {
	rect := geom.NewBox(pt1, pt2)
	if square {
		switch {
		case base == pt1 && curve:
			rect = geom.BoxFromCenter(base, 2*base.Distance(pt2), 0)
		case base == pt1:
			l := max(math.Abs(pt2.X-pt1.X), math.Abs(pt2.Y-pt1.Y))
			rect = geom.NewBox(pt1, pt1.Offset(signedLen(l, pt2.X > pt1.X), signedLen(l, pt2.Y > pt1.Y)))
		default:
			l := max(math.Abs(pt2.X-pt1.X), math.Abs(pt2.Y-pt1.Y))
			rect = geom.BoxFromCenter(base, l, 0)
		}
	}
	r.pts = [4]geom.Point{rect.LeftTop(), rect.RightTop(), rect.RightBottom(), rect.LeftBottom()}
	if math.Abs(angle) >= geom.MinDist {
		aff := geom.RotateAbout(angle, base)
		geom.TransformPoints(r.pts[:], aff)
	}
}

func signedLen(l float64, positive bool) float64 {
	if positive {
		return l
	}
	return -l
}

// update squares the corners up and returns the extent.
func (r *rectGeom) update() geom.Box {
	yoff := r.pts[2].Distance(r.pts[1])
	r.pts[2] = r.pts[1].RulerPoint(r.pts[0], 0, yoff)
	r.pts[3] = r.pts[0].RulerPoint(r.pts[1], 0, -yoff)
	ext := geom.BoxOfPoints(r.pts[:]...)
	if ext.IsEmpty(geom.DefaultTol) {
		ext = geom.BoxFromCenter(r.pts[0], 2*geom.DefaultTol.Point, 0)
	}
	return ext
}

func (r *rectGeom) transform(aff geom.Affine, square, curve bool) {
	geom.TransformPoints(r.pts[:], aff)
	rect := r.Rect()
	r.squareRect(rect.LeftTop(), rect.RightBottom(), r.Angle(), rect.Center(), square, curve)
}

func (r *rectGeom) clear() {
	c := r.Center()
	r.pts = [4]geom.Point{c, c, c, c}
	r.clearBase()
}

// SetCenter moves the rectangle without changing its size or angle.
func (r *rectGeom) SetCenter(pt geom.Point) {
	v := pt.Sub(r.Center())
	for i := range r.pts {
		r.pts[i] = r.pts[i].Translate(v)
	}
}

// SetRect4P sets the corners directly.
func (r *rectGeom) SetRect4P(pts [4]geom.Point) { r.pts = pts }

// rectHandle returns handle index of the unrotated rectangle, rotated into
// place.
func (r *rectGeom) rectHandle(index int) geom.Point {
	pt := geom.RectHandle(r.Rect(), index)
	return pt.Transform(geom.RotateAbout(r.Angle(), r.Center()))
}

func (r *rectGeom) rectHandleType(index int) HandleType {
	if index >= 4 && index < 8 {
		return HandleMidPoint
	}
	return HandleVertex
}

// moveHandle drags a corner or side handle. Square shapes stay square;
// curved square shapes scale about their center.
func (r *rectGeom) moveHandle(index int, pt geom.Point, square, curve bool) {
	if square {
		if curve && !r.IsEmpty(geom.MinDist) {
			c := r.Center()
			old := r.rectHandle(index).Distance(c)
			s := pt.Distance(c) / old
			r.transform(geom.ScaleAbout(s, s, c), square, curve)
			return
		}
		c := r.Center()
		rot := geom.RotateAbout(-r.Angle(), c)
		rect := geom.MoveRectHandle(r.Rect(), index, pt.Transform(rot), false)
		side := rect.Width()
		if index == 4 || index == 6 {
			side = rect.Height()
		}
		rect = geom.BoxFromCenter(rect.Center(), side, side)
		inv, _ := rot.Invert()
		r.squareRect(rect.LeftTop(), rect.RightBottom(), r.Angle(), rect.Center().Transform(inv), square, curve)
		return
	}
	index2 := index/4*4 + (index%4+2)%4
	corner := r.rectHandle(index2)
	rot := geom.RotateAbout(-r.Angle(), corner)
	rect := geom.NewBox(r.rectHandle(0).Transform(rot), r.rectHandle(2).Transform(rot))
	rect = geom.MoveRectHandle(rect, index, pt.Transform(rot), false)
	r.squareRect(rect.LeftTop(), rect.RightBottom(), r.Angle(), corner, square, curve)
}

// TransformWith2P maps corners i1 and i2, which must be adjacent, onto pt1
// and pt2.
func (r *rectGeom) transformWith2P(pt1 geom.Point, i1 int, pt2 geom.Point, i2 int) (geom.Affine, bool) {
	lo, hi := min(i1, i2), max(i1, i2)
	beside := hi-lo == 1 || (lo == 0 && hi == 3)
	if !beside || pt1 == pt2 {
		return geom.Affine{}, false
	}
	return geom.TransformWith2P(r.pts[i1], r.pts[i2], pt1, pt2), true
}

func (r *rectGeom) hitTestBox(rect geom.Box, pts []geom.Point) bool {
	if !r.Extent().IsIntersect(rect) {
		return false
	}
	for i := range pts {
		if geom.NewBox(pts[i], pts[(i+1)%len(pts)]).IsIntersect(rect) {
			return true
		}
	}
	return false
}

func (r *rectGeom) save(s Storage) bool {
	ret := r.saveBase(s)
	writePoints(s, "points", r.pts[:])
	return ret
}

func (r *rectGeom) load(s Storage) bool {
	return r.loadBase(s) && readPoints(s, "points", r.pts[:]) == 4
}

func (r *rectGeom) outputPolygon(p *geom.Path, pts []geom.Point) bool {
	p.MoveTo(pts[0], false)
	p.LinesTo(pts[1:], false)
	return p.CloseFigure()
}

// Rect is a rectangle, optionally rotated. With FlagSquare it is a square.
type Rect struct {
	rectGeom
}

// NewRect returns the rectangle spanned by two corners.
func NewRect(pt1, pt2 geom.Point) *Rect {
	r := &Rect{}
	r.SetRect2P(pt1, pt2)
	return r
}

// SetRect2P sets the rectangle spanned by two corners, with no rotation.
func (r *Rect) SetRect2P(pt1, pt2 geom.Point) {
	r.SetRectWithAngle(pt1, pt2, 0, pt1)
}

// SetRectWithAngle sets the rectangle spanned by pt1 and pt2 rotated by
// angle about base.
func (r *Rect) SetRectWithAngle(pt1, pt2 geom.Point, angle float64, base geom.Point) {
	r.squareRect(pt1, pt2, angle, base, r.Flag(FlagSquare), false)
	r.Update()
}

func (r *Rect) Kind() Kind                      { return KindRect }
func (r *Rect) IsClosed() bool                  { return true }
func (r *Rect) IsCurve() bool                   { return false }
func (r *Rect) Update()                         { r.setExtent(r.update()) }
func (r *Rect) HandleCount() int                { return 8 }
func (r *Rect) HandlePoint(i int) geom.Point    { return r.rectHandle(i) }
func (r *Rect) HandleType(i int) HandleType     { return r.rectHandleType(i) }
func (r *Rect) IsHandleFixed(i int) bool        { return false }
func (r *Rect) Save(s Storage) bool             { return r.save(s) }
func (r *Rect) Load(_ *Factory, s Storage) bool { return r.load(s) }
func (r *Rect) Output(p *geom.Path) bool        { return r.outputPolygon(p, r.pts[:]) }
func (r *Rect) HitTestBox(rect geom.Box) bool   { return r.hitTestBox(rect, r.pts[:]) }

func (r *Rect) Clone() Shape {
	c := *r
	return &c
}

func (r *Rect) Clear() {
	r.clear()
}

func (r *Rect) Transform(aff geom.Affine) {
	r.transform(aff, r.Flag(FlagSquare), false)
	r.Update()
}

func (r *Rect) Offset(v geom.Vec2, _ int) bool {
	r.Transform(geom.Translate(v))
	return true
}

func (r *Rect) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	if rotateHandle(r, i, pt) {
		return true
	}
	r.moveHandle(i, pt, r.Flag(FlagSquare), false)
	r.Update()
	return true
}

func (r *Rect) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	return linesHit(r.pts[:], true, pt, tol, res)
}

// TransformWith2P maps the adjacent corners i1 and i2 onto pt1 and pt2.
func (r *Rect) TransformWith2P(pt1 geom.Point, i1 int, pt2 geom.Point, i2 int) bool {
	aff, ok := r.transformWith2P(pt1, i1, pt2, i2)
	if ok {
		r.Transform(aff)
	}
	return ok
}

// Ellipse is an ellipse inscribed in a possibly rotated rectangle. With
// FlagSquare it is a circle.
type Ellipse struct {
	rectGeom
	bz [13]geom.Point
}

// NewCircle returns a circle, or nil if radius is not positive.
func NewCircle(center geom.Point, radius float64) *Ellipse {
	e := &Ellipse{}
	e.SetFlag(FlagSquare, true)
	if !e.SetCircle(center, radius) {
		return nil
	}
	return e
}

// NewEllipse returns the axis-aligned ellipse with the given radii.
func NewEllipse(center geom.Point, rx, ry float64) *Ellipse {
	e := &Ellipse{}
	e.SetRectWithAngle(center.Offset(-rx, ry), center.Offset(rx, -ry), 0, center)
	return e
}

func (e *Ellipse) IsCircle() bool        { return e.Flag(FlagSquare) }
func (e *Ellipse) RadiusX() float64      { return e.Width() / 2 }
func (e *Ellipse) RadiusY() float64      { return e.Height() / 2 }
func (e *Ellipse) Beziers() []geom.Point { return e.bz[:] }

func (e *Ellipse) SetRectWithAngle(pt1, pt2 geom.Point, angle float64, base geom.Point) {
	e.squareRect(pt1, pt2, angle, base, e.IsCircle(), true)
	e.Update()
}

// SetRadius changes the radii about the center. A zero ry means a circle.
func (e *Ellipse) SetRadius(rx, ry float64) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if ry < geom.MinDist {
		ry = rx
	}
	c := e.Center()
	rect := geom.BoxFromCenter(c, rx*2, ry*2)
	e.SetRectWithAngle(rect.LeftTop(), rect.RightBottom(), e.Angle(), c)
}

func (e *Ellipse) SetCircle(center geom.Point, radius float64) bool {
	if radius < geom.MinDist {
		return false
	}
	rect := geom.BoxFromCenter(center, radius*2, 0)
	e.SetRectWithAngle(rect.LeftTop(), rect.RightBottom(), e.Angle(), center)
	return true
}

// SetCircle2P sets the circle whose diameter is start-end.
func (e *Ellipse) SetCircle2P(start, end geom.Point) bool {
	return e.SetCircle(start.Midpoint(end), start.Distance(end)/2)
}

// SetCircle3P sets the circle through three points.
func (e *Ellipse) SetCircle3P(start, mid, end geom.Point) bool {
	arc, ok := geom.Arc3P(start, mid, end)
	return ok && e.SetCircle(arc.Center, arc.Radius)
}

func (e *Ellipse) Kind() Kind             { return KindEllipse }
func (e *Ellipse) IsClosed() bool         { return true }
func (e *Ellipse) IsCurve() bool          { return true }
func (e *Ellipse) IsHandleFixed(int) bool { return false }
func (e *Ellipse) Save(s Storage) bool    { return e.save(s) }

func (e *Ellipse) Load(_ *Factory, s Storage) bool { return e.load(s) }

func (e *Ellipse) Clone() Shape {
	c := *e
	return &c
}

func (e *Ellipse) Clear() {
	e.clear()
	e.bz = [13]geom.Point{}
}

func (e *Ellipse) Update() {
	ext := e.update()
	c := e.Center()
	e.bz = geom.EllipseToBezier(c, e.Width()/2, e.Height()/2)
	geom.TransformPoints(e.bz[:], geom.RotateAbout(e.Angle(), c))
	if bz := geom.BeziersBox(e.bz[:], false); !bz.IsNull() {
		ext = bz
	}
	e.setExtent(ext)
}

func (e *Ellipse) Transform(aff geom.Affine) {
	e.transform(aff, e.IsCircle(), true)
	e.Update()
}

func (e *Ellipse) Offset(v geom.Vec2, _ int) bool {
	e.Transform(geom.Translate(v))
	return true
}

func (e *Ellipse) HandleCount() int {
	if e.IsCircle() {
		return 5
	}
	return 9
}

func (e *Ellipse) handleIndex(i int) int {
	if e.IsCircle() {
		return i + 4
	}
	return i
}

func (e *Ellipse) HandlePoint(i int) geom.Point {
	if i < e.HandleCount()-1 {
		return e.rectHandle(e.handleIndex(i))
	}
	return e.Center()
}

func (e *Ellipse) HandleType(i int) HandleType {
	i2 := e.handleIndex(i)
	switch {
	case i == e.HandleCount()-1:
		return HandleCenter
	case i2 >= 4 && i2 < 8:
		return HandleQuadrant
	default:
		return HandleVertex
	}
}

func (e *Ellipse) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	if rotateHandle(e, i, pt) {
		return true
	}
	if i >= e.HandleCount()-1 {
		return e.Offset(pt.Sub(e.Center()), -1)
	}
	e.moveHandle(e.handleIndex(i), pt, e.IsCircle(), true)
	e.Update()
	return true
}

func (e *Ellipse) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	if e.IsCircle() {
		c := e.Center()
		r := e.Width() / 2
		d := pt.Sub(c)
		if d.Hypot() < geom.MinDist {
			res.NearPt = c.PolarPoint(0, r)
		} else {
			res.NearPt = c.Translate(d.ScaleTo(r))
		}
		return pt.Distance(res.NearPt)
	}

	dist := math.MaxFloat64
	rect := geom.BoxFromCenter(pt, 2*tol, 2*tol)
	for i := range 4 {
		c := geom.CubicBez{P0: e.bz[3*i], P1: e.bz[3*i+1], P2: e.bz[3*i+2], P3: e.bz[3*i+3]}
		if !rect.IsIntersect(c.BoundingBox()) {
			continue
		}
		near, _ := geom.NearestOnBezier(pt, c)
		if d := pt.Distance(near); d <= tol && d < dist {
			dist = d
			res.NearPt = near
			res.Segment = i
		}
	}
	return dist
}

func (e *Ellipse) HitTestBox(rect geom.Box) bool {
	if !e.Extent().IsIntersect(rect) {
		return false
	}
	return geom.BeziersIntersectBox(rect, e.bz[:], false)
}

func (e *Ellipse) Output(p *geom.Path) bool {
	p.MoveTo(e.bz[0], false)
	p.BeziersTo(e.bz[1:], false, false)
	return p.CloseFigure()
}

// RoundRect is a rectangle with elliptic corners of radii rx and ry.
type RoundRect struct {
	rectGeom
	rx, ry float64
}

// NewRoundRect returns an axis-aligned rounded rectangle.
func NewRoundRect(rect geom.Box, rx, ry float64) *RoundRect {
	r := &RoundRect{}
	r.squareRect(rect.LeftTop(), rect.RightBottom(), 0, rect.LeftTop(), false, false)
	r.SetRadius(rx, ry)
	return r
}

func (r *RoundRect) RadiusX() float64 { return r.rx }
func (r *RoundRect) RadiusY() float64 { return r.ry }

// SetRadius sets the corner radii. A zero ry equals rx.
func (r *RoundRect) SetRadius(rx, ry float64) {
	r.rx = math.Abs(rx)
	r.ry = math.Abs(ry)
	if r.ry < geom.MinDist {
		r.ry = r.rx
	}
	r.Update()
}

func (r *RoundRect) SetRectWithAngle(pt1, pt2 geom.Point, angle float64, base geom.Point) {
	r.squareRect(pt1, pt2, angle, base, r.Flag(FlagSquare), r.IsCurve())
	r.Update()
}

func (r *RoundRect) Kind() Kind                    { return KindRoundRect }
func (r *RoundRect) IsClosed() bool                { return true }
func (r *RoundRect) Update()                       { r.setExtent(r.update()) }
func (r *RoundRect) HandleCount() int              { return 8 }
func (r *RoundRect) HandlePoint(i int) geom.Point  { return r.rectHandle(i) }
func (r *RoundRect) HandleType(i int) HandleType   { return r.rectHandleType(i) }
func (r *RoundRect) IsHandleFixed(int) bool        { return false }
func (r *RoundRect) HitTestBox(rect geom.Box) bool { return r.hitTestBox(rect, r.pts[:]) }

// IsCurve reports whether the corners are large enough to draw the shape
// as a curve.
func (r *RoundRect) IsCurve() bool {
	return r.rx > r.Width()/6 || r.ry > r.Height()/6
}

func (r *RoundRect) Clone() Shape {
	c := *r
	return &c
}

func (r *RoundRect) Clear() {
	r.clear()
	r.rx, r.ry = 0, 0
}

func (r *RoundRect) Transform(aff geom.Affine) {
	r.transform(aff, r.Flag(FlagSquare), r.IsCurve())
	r.Update()
}

func (r *RoundRect) Offset(v geom.Vec2, _ int) bool {
	r.Transform(geom.Translate(v))
	return true
}

func (r *RoundRect) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	if rotateHandle(r, i, pt) {
		return true
	}
	r.moveHandle(i, pt, r.Flag(FlagSquare), r.IsCurve())
	r.Update()
	return true
}

func (r *RoundRect) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	if r.IsOrtho() {
		hit := geom.RoundRectHit(geom.NewBox(r.pts[0], r.pts[2]), r.rx, r.ry, pt, tol)
		res.Segment = hit.Segment
		if hit.Segment >= 0 {
			res.NearPt = hit.Point
		}
		return hit.Dist
	}

	rot := geom.RotateAbout(r.Angle(), r.Center())
	inv, _ := rot.Invert()
	hit := geom.RoundRectHit(r.Rect(), r.rx, r.ry, pt.Transform(inv), tol)
	res.Segment = hit.Segment
	if hit.Segment >= 0 {
		res.NearPt = hit.Point.Transform(rot)
	}
	return hit.Dist
}

func (r *RoundRect) Output(p *geom.Path) bool {
	if r.rx < geom.MinDist {
		return r.outputPolygon(p, r.pts[:])
	}
	var tmp geom.Path
	if !tmp.RoundLines(r.pts[:], r.rx, true) {
		return r.outputPolygon(p, r.pts[:])
	}
	p.Append(&tmp)
	return true
}

func (r *RoundRect) Save(s Storage) bool {
	ret := r.save(s)
	s.WriteFloat("rx", r.rx)
	s.WriteFloat("ry", r.ry)
	return ret
}

func (r *RoundRect) Load(_ *Factory, s Storage) bool {
	ret := r.load(s)
	r.rx = s.ReadFloat("rx", 0)
	r.ry = s.ReadFloat("ry", 0)
	return ret
}

// Diamond is the rhombus through the side midpoints of a possibly rotated
// rectangle. Handles 0..3 are its vertices from the top clockwise; 4..7 are
// the fixed midpoints of its edges.
type Diamond struct {
	rectGeom
}

// NewDiamond returns the diamond inscribed in rect.
func NewDiamond(rect geom.Box) *Diamond {
	d := &Diamond{}
	d.SetRectWithAngle(rect.LeftTop(), rect.RightBottom(), 0, rect.LeftTop())
	return d
}

func (d *Diamond) SetRectWithAngle(pt1, pt2 geom.Point, angle float64, base geom.Point) {
	d.squareRect(pt1, pt2, angle, base, d.Flag(FlagSquare), false)
	d.Update()
}

func (d *Diamond) vertices() []geom.Point {
	return []geom.Point{d.rectHandle(4), d.rectHandle(5), d.rectHandle(6), d.rectHandle(7)}
}

func (d *Diamond) Kind() Kind               { return KindDiamond }
func (d *Diamond) IsClosed() bool           { return true }
func (d *Diamond) IsCurve() bool            { return false }
func (d *Diamond) HandleCount() int         { return 8 }
func (d *Diamond) IsHandleFixed(i int) bool { return i >= 4 }
func (d *Diamond) Save(s Storage) bool      { return d.save(s) }
func (d *Diamond) Output(p *geom.Path) bool { return d.outputPolygon(p, d.vertices()) }

func (d *Diamond) Load(_ *Factory, s Storage) bool { return d.load(s) }

func (d *Diamond) Clone() Shape {
	c := *d
	return &c
}

func (d *Diamond) Clear() { d.clear() }

func (d *Diamond) Update() {
	d.update()
	ext := geom.BoxOfPoints(d.vertices()...)
	if ext.IsEmpty(geom.DefaultTol) {
		ext = geom.BoxFromCenter(d.rectHandle(4), 2*geom.DefaultTol.Point, 0)
	}
	d.setExtent(ext)
}

func (d *Diamond) Transform(aff geom.Affine) {
	d.transform(aff, d.Flag(FlagSquare), false)
	d.Update()
}

func (d *Diamond) Offset(v geom.Vec2, _ int) bool {
	d.Transform(geom.Translate(v))
	return true
}

func (d *Diamond) HandlePoint(i int) geom.Point {
	if i < 4 {
		return d.rectHandle(4 + i)
	}
	return d.rectHandle(4 + i%4).Midpoint(d.rectHandle(4 + (i+1)%4))
}

func (d *Diamond) HandleType(i int) HandleType {
	if i < 4 {
		return HandleVertex
	}
	return HandleMidPoint
}

// SetHandlePoint moves a vertex. With FlagFixedLength the edge length is
// kept and the diamond changes its proportions instead.
func (d *Diamond) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	if !d.Flag(FlagFixedLength) {
		d.moveHandle(4+i%4, pt, d.Flag(FlagSquare), false)
		d.Update()
		return true
	}

	c := d.Center()
	pnt := pt.Transform(geom.RotateAbout(-d.Angle(), c))
	rect := d.Rect()
	up := geom.RectHandle(rect, 4+(i+2)%4)
	side := geom.RectHandle(rect, 4+(i+1)%4)
	l := up.Distance(side)

	along := pnt.Y - up.Y
	if i%2 == 1 {
		along = pnt.X - up.X
	}
	a := min(l, math.Abs(along)/2)
	b := math.Sqrt(l*l - a*a)
	w, h := 2*b, 2*a
	if i%2 == 1 {
		w, h = h, w
	}
	box := geom.BoxFromCenter(c, w, h)
	d.squareRect(box.LeftTop(), box.RightBottom(), d.Angle(), c, false, false)
	d.Update()
	return true
}

func (d *Diamond) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	return linesHit(d.vertices(), true, pt, tol, res)
}

func (d *Diamond) HitTestBox(rect geom.Box) bool {
	return d.hitTestBox(rect, d.vertices())
}

// Grid is a rectangle divided into square cells that points can snap to.
// Handle 8, present unless the grid is locked or of fixed length, sets the
// cell size. Grids never rotate.
type Grid struct {
	rectGeom
	cell geom.Vec2
}

// NewGrid returns a grid over rect with the given cell size.
func NewGrid(rect geom.Box, cell float64) *Grid {
	g := &Grid{}
	g.SetFlag(FlagRotateDisabled, true)
	g.squareRect(rect.LeftTop(), rect.RightBottom(), 0, rect.LeftTop(), false, false)
	g.cell = geom.Vec(cell, cell)
	g.Update()
	return g
}

func (g *Grid) Cell() geom.Vec2 { return g.cell }

func (g *Grid) SetCell(cell geom.Vec2) { g.cell = cell }

// SetFlag keeps FlagRotateDisabled set.
func (g *Grid) SetFlag(f Flag, on bool) {
	g.Base.SetFlag(f, f == FlagRotateDisabled || on)
}

func (g *Grid) SetRectWithAngle(pt1, pt2 geom.Point, angle float64, base geom.Point) {
	g.squareRect(pt1, pt2, angle, base, g.Flag(FlagSquare), false)
	g.Update()
}

func (g *Grid) Kind() Kind                    { return KindGrid }
func (g *Grid) IsClosed() bool                { return true }
func (g *Grid) IsCurve() bool                 { return false }
func (g *Grid) Update()                       { g.setExtent(g.update()) }
func (g *Grid) HandleType(i int) HandleType   { return g.rectHandleType(i) }
func (g *Grid) IsHandleFixed(int) bool        { return false }
func (g *Grid) Output(p *geom.Path) bool      { return g.outputPolygon(p, g.pts[:]) }
func (g *Grid) HitTestBox(rect geom.Box) bool { return g.hitTestBox(rect, g.pts[:]) }

func (g *Grid) Clone() Shape {
	c := *g
	return &c
}

func (g *Grid) Clear() {
	g.clear()
	g.cell = geom.Vec2{}
}

func (g *Grid) Transform(aff geom.Affine) {
	g.transform(aff, g.Flag(FlagSquare), false)
	g.Update()
}

func (g *Grid) Offset(v geom.Vec2, _ int) bool {
	g.Transform(geom.Translate(v))
	return true
}

func (g *Grid) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	return linesHit(g.pts[:], true, pt, tol, res)
}

func (g *Grid) HandleCount() int {
	if g.Flag(FlagFixedLength) || g.Flag(FlagLocked) {
		return 8
	}
	return 9
}

// displayCell is the cell size, or a quarter of the grid while unset.
func (g *Grid) displayCell() geom.Vec2 {
	if g.cell == (geom.Vec2{}) {
		return geom.Vec(g.Width()/4, g.Height()/4)
	}
	return g.cell
}

func (g *Grid) HandlePoint(i int) geom.Point {
	if i < 8 {
		return g.rectHandle(i)
	}
	return g.pts[3].Translate(g.displayCell())
}

// SetHandlePoint drags the frame, or with handle 8 sets a square cell
// whose size is rounded to one decimal.
func (g *Grid) SetHandlePoint(i int, pt geom.Point, tol float64) bool {
	if i < 8 {
		if rotateHandle(g, i, pt) {
			return true
		}
		g.moveHandle(i, pt, g.Flag(FlagSquare), false)
		g.Update()
		return true
	}
	cx := math.Abs(pt.X - g.pts[3].X)
	cy := math.Abs(pt.Y - g.pts[3].Y)
	if cx >= geom.MinDist {
		cx = max(cx, tol/3)
	}
	if cy >= geom.MinDist {
		cy = max(cy, tol/3)
	}
	c := geom.RoundReal(max(cx, cy), 1)
	g.cell = geom.Vec(c, c)
	g.AfterChanged()
	return true
}

// IsValid reports whether the cells are larger than tol and smaller than
// the grid.
func (g *Grid) IsValid(tol float64) bool {
	return g.cell.X > tol && g.cell.Y > tol && g.cell.X < g.Width() && g.cell.Y < g.Height()
}

// Snap moves pt to the nearest grid line within dist, per axis. The
// returned mask has bit 0 set if x snapped and bit 1 if y snapped; dist is
// updated to the remaining distance on snapped axes.
func (g *Grid) Snap(pt geom.Point, dist geom.Vec2) (geom.Point, geom.Vec2, int) {
	ret := 0
	newpt := pt
	org := g.pts[3]
	cell := g.cell.Div(2)
	if g.cell == (geom.Vec2{}) {
		cell = geom.Vec(g.Width()/4, g.Height()/4)
	}
	if cell.X < geom.MinDist || cell.Y < geom.MinDist {
		return pt, dist, 0
	}

	dist = dist.Mul(3)
	for x := cell.X; x < g.Width()-geom.MinDist; x += cell.X {
		if d := math.Abs(pt.X - (org.X + x)); dist.X > d {
			newpt.X = org.X + x
			dist.X = d
			ret |= 1
		}
	}
	for y := cell.Y; y < g.Height()-geom.MinDist; y += cell.Y {
		if d := math.Abs(pt.Y - (org.Y + y)); dist.Y > d {
			newpt.Y = org.Y + y
			dist.Y = d
			ret |= 2
		}
	}
	if ret&1 == 0 {
		dist.X /= 3
	}
	if ret&2 == 0 {
		dist.Y /= 3
	}
	return newpt, dist, ret
}

func (g *Grid) Save(s Storage) bool {
	ret := g.save(s)
	s.WriteFloat("cellw", g.cell.X)
	s.WriteFloat("celly", g.cell.Y)
	return ret
}

func (g *Grid) Load(_ *Factory, s Storage) bool {
	ret := g.load(s)
	g.cell = geom.Vec(s.ReadFloat("cellw", g.cell.X), s.ReadFloat("celly", g.cell.Y))
	return ret
}
