package command

import (
	"math"

	"honnef.co/go/vgcore"
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
	"honnef.co/go/vgcore/shape"
)

// SnapType is the kind of point a position snapped to. The order matters:
// everything from SnapPoint on is a point feature of another shape.
type SnapType int

const (
	SnapNone SnapType = iota
	SnapSameX
	SnapSameY
	SnapGridX
	SnapGridY
	SnapGrid
	SnapPoint
	SnapCenter
	SnapMidPoint
	SnapQuadrant
	SnapIntersect
	SnapParallel
	SnapPerp
	SnapNearPt
)

// SnapOptions selects the snapping rules.
type SnapOptions uint

const (
	SnapOptGrid SnapOptions = 1 << iota
	// SnapOptStartVertex only lets the first point of a new shape snap to
	// vertices, at any distance.
	SnapOptStartVertex
	SnapOptVertex
	SnapOptCenter
	SnapOptMidPoint
	SnapOptQuadrant
	SnapOptCross
	SnapOptPerp
	// SnapOptPerpOut allows feet of perpendiculars beyond the ends of an
	// edge.
	SnapOptPerpOut
	SnapOptNear
	SnapOptParallel
)

const DefaultSnapOptions = SnapOptGrid | SnapOptVertex | SnapOptCenter | SnapOptMidPoint |
	SnapOptCross | SnapOptPerp | SnapOptNear | SnapOptParallel

type snapItem struct {
	pt, base  geom.Point
	startPt   geom.Point
	maxDist   float64
	dist      float64
	typ       SnapType
	shapeID   int
	handle    int
	handleSrc int
}

func newSnapItem(pt geom.Point, dist float64) snapItem {
	return snapItem{
		pt:        pt,
		base:      pt,
		startPt:   geom.Pt(math.NaN(), math.NaN()),
		maxDist:   dist,
		dist:      dist,
		handle:    -1,
		handleSrc: -1,
	}
}

// Snapper replaces pointer positions by nearby significant points of the
// drawing: handles, intersections, feet of perpendiculars, nearest points
// on edges and grid lines. It remembers the last result for feedback.
type Snapper struct {
	Options SnapOptions
	// PointTolMM is the reach of point features, NearTolMM the reach of
	// edges and XTolMM that of horizontal and vertical alignment.
	PointTolMM float64
	NearTolMM  float64
	XTolMM     float64
	// RoundCell rounds positions that snapped to nothing to a tenth of a
	// display millimetre.
	RoundCell bool

	pt        geom.Point
	base      [2]geom.Point
	typ       [2]SnapType
	startPt   geom.Point
	shapeID   int
	handle    int
	handleSrc int

	ignoreStart geom.Point
}

// NewSnapper returns a snapper with the default rules and the tolerances
// of cfg.
func NewSnapper(cfg *vgcore.Config) *Snapper {
	s := &Snapper{
		Options:    DefaultSnapOptions,
		PointTolMM: cfg.SnapTolMM + 1,
		NearTolMM:  cfg.SnapTolMM,
		XTolMM:     1,
		RoundCell:  cfg.Grid,
	}
	s.Clear()
	return s
}

// Clear forgets the last result and the ignored start point.
func (s *Snapper) Clear() {
	s.ignoreStart = geom.Pt(math.MaxFloat64, math.MaxFloat64)
	s.typ = [2]SnapType{}
	s.shapeID, s.handle, s.handleSrc = 0, -1, -1
}

// SetIgnoreStartPoint names a point that edges must not snap to: the fixed
// end of the segment being drawn.
func (s *Snapper) SetIgnoreStartPoint(pt geom.Point) { s.ignoreStart = pt }

// SnappedType returns the type of the last point feature found, SnapGrid
// for a grid crossing, or SnapNone.
func (s *Snapper) SnappedType() SnapType {
	if s.typ[0] >= SnapPoint {
		return s.typ[0]
	}
	if s.typ[0] == SnapGridX && s.typ[1] == SnapGridY {
		return SnapGrid
	}
	return SnapNone
}

// SnappedPoint returns the position before and after the last snap.
func (s *Snapper) SnappedPoint() (from, to geom.Point, typ SnapType) {
	return s.base[0], s.pt, s.SnappedType()
}

// SnappedHandle returns the shape and handle snapped to, if any.
func (s *Snapper) SnappedHandle() (shapeID, handle, handleSrc int, ok bool) {
	return s.shapeID, s.handle, s.handleSrc, s.shapeID != 0
}

// Snap returns orgpt moved to the best feature of the session's shapes.
// cur is the shape being placed, or nil before it exists; hotHandle is the
// handle of cur that orgpt is for.
func (s *Snapper) Snap(m *Motion, orgpt geom.Point, cur *shape.Element, hotHandle int) geom.Point {
	startMustVertex := cur == nil && s.Options&SnapOptStartVertex != 0
	if cur == nil || hotHandle >= cur.Shape().HandleCount() {
		hotHandle = -1
	}
	s.pt = orgpt

	xytol := m.DisplayMmToModel(s.PointTolMM)
	if startMustVertex {
		xytol = 1e5
	}
	xtol := m.DisplayMmToModel(s.XTolMM)
	arr := [3]snapItem{
		newSnapItem(orgpt, xytol),
		newSnapItem(orgpt, xtol),
		newSnapItem(orgpt, xtol),
	}

	if cur != nil && cur.ID() == 0 && hotHandle > 0 && !cur.Shape().IsCurve() && !isRectLike(cur.Shape()) {
		snapHV(cur.Shape().Point(hotHandle-1), orgpt, &arr)
	}
	if s.Options != 0 && (cur == nil || hotHandle < 0 || cur.Shape().HandleType(hotHandle) <= shape.HandleOutside) {
		s.snapPoints(m, orgpt, cur, hotHandle, &arr, startMustVertex)
	}
	s.checkResult(&arr, hotHandle)

	pnt := s.pt
	if arr[0].typ == SnapNone && s.RoundCell {
		mm := m.DisplayMmToModel(1)
		pnt.X = geom.RoundReal(pnt.X/mm, 1) * mm
		pnt.Y = geom.RoundReal(pnt.Y/mm, 1) * mm
	}
	return pnt
}

func (s *Snapper) checkResult(arr *[3]snapItem, hotHandle int) {
	if arr[0].typ > SnapNone {
		s.pt = arr[0].pt
		s.base[0] = arr[0].base
		s.typ[0] = arr[0].typ
		s.typ[1] = SnapNone
		s.shapeID = arr[0].shapeID
		s.handle = arr[0].handle
		s.handleSrc = arr[0].handleSrc
		s.startPt = arr[0].startPt
		if s.handleSrc < 0 && (s.typ[0] == SnapNearPt || s.typ[0] == SnapPoint) {
			s.handleSrc = hotHandle
		}
		return
	}
	s.shapeID, s.handle, s.handleSrc = 0, -1, -1
	s.typ[0] = arr[1].typ
	if arr[1].typ > SnapNone {
		s.pt.X = arr[1].pt.X
		s.base[0] = arr[1].base
	}
	s.typ[1] = arr[2].typ
	if arr[2].typ > SnapNone {
		s.pt.Y = arr[2].pt.Y
		s.base[1] = arr[2].base
	}
}

// snapHV aligns newPt with basePt horizontally and vertically.
func snapHV(basePt, newPt geom.Point, arr *[3]snapItem) {
	dx, dy := math.Abs(newPt.X-basePt.X), math.Abs(newPt.Y-basePt.Y)

	d := arr[1].dist - dx
	if d > geom.MinDist || (d > -geom.MinDist && dy < math.Abs(newPt.Y-arr[1].base.Y)) {
		arr[1].dist = dx
		arr[1].base = basePt
		newPt.X = basePt.X
		arr[1].pt = newPt
		arr[1].typ = SnapSameX
	}
	d = arr[2].dist - dy
	if d > geom.MinDist || (d > -geom.MinDist && dx < math.Abs(newPt.X-arr[2].base.X)) {
		arr[2].dist = dy
		arr[2].base = basePt
		newPt.Y = basePt.Y
		arr[2].pt = newPt
		arr[2].typ = SnapSameY
	}
}

func (s *Snapper) handleMask(startMustVertex bool) int {
	if startMustVertex {
		return 1 << shape.HandleVertex
	}
	mask := 0
	if s.Options&SnapOptVertex != 0 {
		mask |= 1 << shape.HandleVertex
	}
	if s.Options&SnapOptCenter != 0 {
		mask |= 1 << shape.HandleCenter
	}
	if s.Options&SnapOptMidPoint != 0 {
		mask |= 1 << shape.HandleMidPoint
	}
	if s.Options&SnapOptQuadrant != 0 {
		mask |= 1 << shape.HandleQuadrant
	}
	return mask
}

// snapContext carries what one Snap call shares between the shapes it
// visits.
type snapContext struct {
	m          *Motion
	orgpt      geom.Point
	cur        *shape.Element
	ignoreHd   int
	handleMask int
	tolNear    float64
	tolPerp    geom.Tol
	minBox     float64
	snapBox    geom.Box
	wndBox     geom.Box
}

func (s *Snapper) snapPoints(m *Motion, orgpt geom.Point, cur *shape.Element, ignoreHd int, arr *[3]snapItem, startMustVertex bool) {
	c := snapContext{
		m:          m,
		orgpt:      orgpt,
		cur:        cur,
		ignoreHd:   ignoreHd,
		handleMask: s.handleMask(startMustVertex),
		tolNear:    m.DisplayMmToModel(s.NearTolMM),
		tolPerp:    geom.NewTol(m.DisplayMmToModel(1), geom.DefaultTol.Vector),
		minBox:     m.DisplayMmToModel(2),
		snapBox:    geom.BoxFromCenter(orgpt, 2*arr[0].dist, 0),
		wndBox:     m.Session.Xform.WndRectM(),
	}
	if cur != nil {
		ext := cur.Shape().Extent()
		c.wndBox = c.wndBox.Union(ext.Inflate(arr[0].dist, arr[0].dist))
	}
	for target := range m.shapes().All() {
		s.snapShape(&c, target, arr)
	}
}

func skipShape(target, cur *shape.Element) bool {
	sp := target.Shape()
	if sp.Flag(shape.FlagNoSnap) || sp.Flag(shape.FlagHidden) {
		return true
	}
	return target == cur || (cur != nil && cur.ID() != 0 && target.ID() == cur.ID())
}

func (s *Snapper) snapShape(c *snapContext, target *shape.Element, arr *[3]snapItem) {
	if skipShape(target, c.cur) {
		return
	}
	ext := target.Shape().Extent()
	if target.Shape().PointCount() > 1 && ext.Width() < c.minBox && ext.Height() < c.minBox {
		return
	}

	found := false
	if ext.IsIntersect(c.wndBox) {
		if c.handleMask != 0 && s.snapHandle(c, target, &arr[0]) {
			found = true
		}
		if s.Options&SnapOptPerp != 0 && s.snapPerp(c, target, &arr[0]) {
			found = true
		}
		if s.Options&SnapOptCross != 0 && snapCross(c, target, &arr[0]) {
			found = true
		}
		if s.Options&SnapOptParallel != 0 && c.cur != nil && snapParallel(c, target, &arr[0]) {
			found = true
		}
		if !found && s.Options&SnapOptNear != 0 {
			s.snapNear(c, target, &arr[0])
		}
	}
	if !found && s.Options&SnapOptGrid != 0 && ext.IsIntersect(c.snapBox) {
		snapGrid(c, target, arr)
	}
}

func (s *Snapper) snapHandle(c *snapContext, target *shape.Element, item *snapItem) bool {
	sp := target.Shape()
	n := sp.HandleCount()
	if sp.Kind() == shape.KindArc || sp.Kind() == shape.KindSplines {
		n = 0
	}
	dragHandle := c.cur == nil || c.cur.ID() == 0 || n == 1
	found := false

	for i := range n {
		pnt := sp.HandlePoint(i)
		ht := sp.HandleType(i)
		if c.handleMask&(1<<ht) == 0 {
			continue
		}
		dist := pnt.Distance(c.orgpt)
		if ht == shape.HandleMidPoint {
			// intersections win over midpoints
			dist += c.m.DisplayMmToModel(0.5)
		}
		if dragHandle && dist < item.maxDist && item.dist > dist-geom.MinDist &&
			ht < shape.HandleOutside && !s.isNewStart(c.cur, pnt) {
			item.dist = dist
			item.base = c.orgpt
			item.pt = pnt
			item.typ = SnapPoint + SnapType(ht-shape.HandleVertex)
			item.shapeID = target.ID()
			item.handle = i
			item.handleSrc = c.ignoreHd
			found = true
		}
	}
	return found
}

// isNewStart reports whether pnt is the first point of the shape being
// drawn, which its other points must not snap to.
func (s *Snapper) isNewStart(cur *shape.Element, pnt geom.Point) bool {
	return cur != nil && cur.ID() == 0 && cur.Shape().PointCount() > 1 && pnt == cur.Shape().Point(0)
}

// snapPerp makes a new line perpendicular to an edge of target, either
// starting on the edge or ending on it.
func (s *Snapper) snapPerp(c *snapContext, target *shape.Element, item *snapItem) bool {
	if c.cur == nil || c.cur.ID() != 0 || c.cur.Kind() != shape.KindLine || target.Shape().IsCurve() {
		return false
	}
	sp := target.Shape()
	n := sp.PointCount()
	start := c.cur.Shape().Point(0)
	perpOut := s.Options&SnapOptPerpOut != 0
	edges := n - 1
	if sp.IsClosed() {
		edges = n
	}
	found := false

	for i := range max(edges, 0) {
		pt1, pt2 := sp.HandlePoint(i), sp.HandlePoint((i+1)%n)
		d2, perp2 := geom.PtToBeeline2(pt1, pt2, c.orgpt)

		if geom.IsColinear2(pt1, pt2, start, c.tolPerp) {
			dist := perp2.Distance(start) * 2
			if d2 > 2*item.maxDist && dist < item.maxDist && item.dist > dist &&
				(perpOut || geom.IsProjectBetweenLine(pt1, pt2, perp2)) {
				item.startPt = start
				item.dist = dist
				item.base = start
				item.pt = c.orgpt.Translate(start.Sub(perp2))
				item.typ = SnapPerp
				item.shapeID = target.ID()
				item.handle = i
				item.handleSrc = -1
				found = true
			}
		} else if d2 < item.maxDist {
			_, perp1 := geom.PtToBeeline2(pt1, pt2, start)
			dist := perp1.Distance(c.orgpt)
			if dist < item.maxDist && item.dist > dist &&
				(perpOut || geom.IsProjectBetweenLine(pt1, pt2, perp1)) {
				item.startPt = start
				item.dist = dist
				item.base = perp1
				item.pt = perp1
				item.typ = SnapPerp
				item.shapeID = target.ID()
				item.handle = i
				item.handleSrc = target.ID()
				found = true
			}
		}
	}
	return found
}

func asCircle(sp shape.Shape) (*shape.Ellipse, bool) {
	e, ok := sp.(*shape.Ellipse)
	return e, ok && e.IsCircle()
}

// crossCircle intersects two shapes analytically when one is a circle and
// the other a circle or a line. n is negative when that does not apply.
func crossCircle(a, b shape.Shape) (p1, p2 geom.Point, n int) {
	c1, ok1 := asCircle(a)
	c2, ok2 := asCircle(b)
	if ok1 && ok2 {
		return geom.CrossTwoCircles(c1.Center(), c1.RadiusX(), c2.Center(), c2.RadiusX())
	}
	if ok2 {
		c1, ok1, b = c2, true, a
	}
	line, ok := b.(*shape.Line)
	if !ok1 || !ok {
		return geom.Point{}, geom.Point{}, -1
	}
	p1, p2, n = geom.CrossLineCircle(line.Start(), line.End(), c1.Center(), c1.RadiusX(), line.IsRayline())
	if n > 0 && line.LineKind() == shape.LineSegment {
		in1 := geom.IsProjectBetweenLine(line.Start(), line.End(), p1)
		in2 := geom.IsProjectBetweenLine(line.Start(), line.End(), p2)
		switch {
		case !in1 && !in2:
			n = 0
		case !in1:
			p1, n = p2, 1
		case !in2:
			p2, n = p1, 1
		}
	}
	return p1, p2, n
}

func snapCross(c *snapContext, sp1 *shape.Element, item *snapItem) bool {
	snapBox := geom.BoxFromCenter(c.orgpt, 2*item.maxDist, 0)
	if sp1.Shape().PointCount() < 2 || !sp1.Shape().HitTestBox(snapBox) {
		return false
	}
	var path1 geom.Path
	sp1.Shape().Output(&path1)
	found := false

	for sp2 := range c.m.shapes().All() {
		if skipShape(sp2, c.cur) || sp2 == sp1 || sp2.Shape().PointCount() < 2 || !sp2.Shape().HitTestBox(snapBox) {
			continue
		}
		var cross geom.Point
		p1, p2, n := crossCircle(sp1.Shape(), sp2.Shape())
		if n < 0 {
			var path2 geom.Path
			sp2.Shape().Output(&path2)
			var ok bool
			cross, ok = path1.CrossWithPath(&path2, snapBox)
			n = 0
			if ok {
				n = 1
			}
		} else if n > 0 {
			cross = p1
			if p2.Distance(c.orgpt) < p1.Distance(c.orgpt) {
				cross = p2
			}
			if !snapBox.ContainsPoint(cross, geom.Tol{}) {
				n = 0
			}
		}
		if n <= 0 {
			continue
		}
		// intersections win over vertices at the same distance
		dist := cross.Distance(c.orgpt) - geom.MinDist
		if dist < item.maxDist && item.dist > dist {
			item.dist = dist
			item.base = c.orgpt
			item.pt = cross
			item.typ = SnapIntersect
			item.shapeID = sp1.ID()
			item.handle = sp2.ID()
			item.handleSrc = -1
			found = true
		}
	}
	return found
}

// snapParallel turns a new line parallel to an existing line when their
// angles differ by less than 3°.
func snapParallel(c *snapContext, target *shape.Element, item *snapItem) bool {
	if item.typ == SnapNearPt || c.cur.ID() != 0 || c.cur.Kind() != shape.KindLine || target.Kind() != shape.KindLine {
		return false
	}
	line := target.Shape().(*shape.Line)
	start := c.cur.Shape().Point(0)
	angle1 := c.orgpt.Sub(start).Angle()
	angle2 := line.Angle()
	diff := math.Abs(geom.DiffAngle(angle1, angle2))

	switch {
	case diff < geom.Deg2Rad(3):
		angle1 = angle2
	case math.Abs(diff-math.Pi) < geom.Deg2Rad(3):
		angle1 = angle2 + math.Pi
	default:
		return false
	}

	minLen := c.m.DisplayMmToModel(5)
	l := c.orgpt.Distance(start)
	if l < minLen || line.Length() < minLen {
		return false
	}
	to := start.PolarPoint(angle1, l)
	dist := c.orgpt.Distance(to)
	if dist < item.maxDist && item.dist > dist {
		item.dist = dist
		item.base = c.orgpt
		item.pt = to
		item.typ = SnapParallel
		item.shapeID = target.ID()
		item.handle = -1
		item.handleSrc = 1
		return true
	}
	return false
}

// snapNear moves the point onto the nearest edge of target, unless a point
// feature was already found. The vertex at the ignored start point is
// skipped so that a segment cannot snap onto its own start.
func (s *Snapper) snapNear(c *snapContext, target *shape.Element, item *snapItem) {
	sp := target.Shape()
	n := sp.PointCount()
	if (item.typ >= SnapGrid && item.typ < SnapNearPt && item.typ != SnapParallel) || n < 2 {
		return
	}
	mind := c.m.DisplayMmToModel(4)
	minDist := c.tolNear
	if item.typ >= SnapNearPt {
		minDist = item.dist - mind
	}

	res := shape.NewHitResult()
	res.DisableSnapVertex()
	if sp.Extent().ContainsPoint(s.ignoreStart, geom.Tol{}) {
		for i := n - 1; i >= 0; i-- {
			if sp.HandlePoint(i) == s.ignoreStart {
				res.IgnoreHandle = i
				break
			}
		}
	}

	dist := sp.HitTest(c.orgpt, c.tolNear, &res)
	if minDist > dist {
		item.dist = dist + mind
		item.base = c.orgpt
		item.pt = res.NearPt
		item.typ = SnapNearPt
		item.shapeID = target.ID()
		item.handle = res.Segment
		item.handleSrc = -1
	}
}

func snapGrid(c *snapContext, target *shape.Element, arr *[3]snapItem) {
	grid, ok := target.Shape().(*shape.Grid)
	if !ok {
		return
	}
	newPt, dists, typ := grid.Snap(c.orgpt, geom.Vec(arr[1].dist, arr[2].dist))
	if typ&1 != 0 {
		arr[1].base = newPt
		arr[1].pt = newPt
		arr[1].typ = SnapGridX
		arr[1].dist = dists.X
	}
	if typ&2 != 0 {
		arr[2].base = newPt
		arr[2].pt = newPt
		arr[2].typ = SnapGridY
		arr[2].dist = dists.Y
	}
}

var snapLabels = map[SnapType]string{
	SnapPoint:     "nodept",
	SnapCenter:    "centerpt",
	SnapMidPoint:  "midpt",
	SnapQuadrant:  "quadpt",
	SnapIntersect: "crosspt",
	SnapParallel:  "parallelpt",
	SnapPerp:      "perppt",
}

func snapHandleKind(t SnapType) graphics.HandleKind {
	switch t {
	case SnapPoint:
		return graphics.HandleVertex
	case SnapCenter:
		return graphics.HandleCenter
	case SnapMidPoint:
		return graphics.HandleMidPoint
	default:
		return graphics.HandleActiveVertex
	}
}

// Draw shows the last snap while the pointer is down: a circle and label
// for point features, guide lines for alignment and grid lines.
func (s *Snapper) Draw(m *Motion, gs *graphics.Graphics) bool {
	if !m.Dragging() {
		return false
	}
	if s.typ[0] >= SnapGrid {
		if e := m.shapes().Find(s.shapeID); e != nil && e.Shape().Flag(shape.FlagNotShowSnap) {
			return false
		}
		return s.drawPoint(m, gs)
	}

	ctx := graphics.Context{
		Style:     graphics.DashLine,
		LineColor: graphics.ARGB(200, 0, 255, 0),
		FillColor: graphics.ARGB(64, 0, 255, 0),
	}
	cross := graphics.Context{LineWidth: -2, LineColor: graphics.ARGB(200, 0, 255, 0), FillColor: graphics.Invalid}
	ret := false
	for i, axis := range []geom.Vec2{geom.Vec(0, 1), geom.Vec(1, 0)} {
		switch {
		case s.typ[i] == SnapNone:
		case s.base[i] != s.pt:
			ret = gs.DrawLine(&ctx, s.base[i], s.pt)
			gs.DrawCircle(&ctx, s.base[i], m.DisplayMmToModel(2.5))
		case s.typ[i] == SnapGridX || s.typ[i] == SnapGridY:
			v := axis.Mul(m.DisplayMmToModel(12))
			ret = gs.DrawLine(&cross, s.pt.Translate(v.Negate()), s.pt.Translate(v))
			gs.DrawCircle(&ctx, s.base[i], m.DisplayMmToModel(4))
		}
	}
	return ret
}

func (s *Snapper) drawPoint(m *Motion, gs *graphics.Graphics) bool {
	small := s.typ[0] >= SnapNearPt || s.typ[0] < SnapPoint
	r := m.DisplayMmToModel(8)
	if small {
		r = m.DisplayMmToModel(3)
	}
	ctx := graphics.Context{
		Style:     graphics.DashLine,
		LineWidth: -2,
		LineColor: graphics.ARGB(200, 0, 255, 0),
		FillColor: graphics.ARGB(32, 0, 200, 200),
	}

	if s.typ[0] == SnapPerp {
		ret := gs.DrawCircle(&ctx, s.base[0], r)
		s.drawPerpMark(m, gs)
		return ret
	}
	if s.typ[0] == SnapParallel {
		if e := m.shapes().Find(s.shapeID); e != nil {
			p1, p2 := e.Shape().Point(0), e.Shape().Point(1)
			aux := ctx
			aux.LineWidth = 0
			gs.DrawBeeline(&aux, p1, p2)
			gs.DrawHandle(p1.Midpoint(p2), graphics.HandleMidPoint, 0)
		}
	}
	ret := gs.DrawCircle(&ctx, s.pt, r)
	if key, ok := snapLabels[s.typ[0]]; ok {
		gs.DrawText(graphics.Invalid, m.Session.Text(key),
			s.pt.Translate(geom.Vec(0, m.DisplayMmToModel(10))),
			m.DisplayMmToModel(3), graphics.AlignCenter|graphics.AlignBottom, 0)
	}
	gs.DrawHandle(s.pt, snapHandleKind(s.typ[0]), 0)
	return ret
}

// drawPerpMark draws the right-angle mark at the foot of the
// perpendicular and extends the edge it stands on.
func (s *Snapper) drawPerpMark(m *Motion, gs *graphics.Graphics) {
	e := m.shapes().Find(s.shapeID)
	if e == nil || s.handle < 0 {
		return
	}
	n := e.Shape().PointCount()
	if n < 2 {
		return
	}
	pt1 := e.Shape().HandlePoint(s.handle)
	pt2 := e.Shape().HandlePoint((s.handle + 1) % n)
	perp := s.base[0]
	other := s.pt
	if other == perp {
		other = s.startPt
	}
	l := 2 * m.DisplayMmToModel(1.2)
	far := pt2
	if pt1.Distance(perp) > pt2.Distance(perp) {
		far = pt1
	}
	mark1 := perp.RulerPoint(far, l, 0)
	mark3 := perp.RulerPoint(other, l, 0)
	mark := graphics.Context{LineWidth: -2, LineColor: graphics.ARGB(200, 255, 255, 0), FillColor: graphics.Invalid}
	gs.DrawLines(&mark, []geom.Point{mark1, mark1.Translate(mark3.Sub(perp)), mark3})

	edge := graphics.Context{Style: graphics.DashLine, LineColor: graphics.ARGB(200, 0, 255, 0), FillColor: graphics.Invalid}
	gs.DrawBeeline(&edge, pt1, pt2)
	gs.DrawText(graphics.Invalid, m.Session.Text("perppt"),
		perp.Translate(geom.Vec(0, m.DisplayMmToModel(12))),
		m.DisplayMmToModel(3), graphics.AlignCenter|graphics.AlignBottom, 0)
}
