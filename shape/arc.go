package shape

import (
	"math"

	"honnef.co/go/vgcore/geom"
)

// ArcKind distinguishes open arcs from sectors.
type ArcKind int

const (
	ArcOpen ArcKind = iota
	// ArcSector closes the arc through its center.
	ArcSector
)

// Arc is a circular arc stored as center, start, end and mid points plus
// the sweep angle. The stored sweep is authoritative; it is reset by
// SetPoint and then derived from the four points.
//
// Handles 0..3 are center, start, end and the fixed mid point. Handles
// 4..7 are not counted by HandleCount but may be dragged: 4 and 5 change
// the start and end angles, 6 and 7 set the tangent at either end.
type Arc struct {
	Base
	pts     [4]geom.Point
	sweep   float64
	subtype ArcKind

	// lastSweep is the sweep before the current angle drag.
	lastSweep float64
}

// NewArc returns the arc of the given center and radius.
func NewArc(center geom.Point, radius, startAngle, sweepAngle float64) *Arc {
	a := &Arc{}
	a.SetCenterRadius(center, radius, startAngle, sweepAngle)
	return a
}

func (a *Arc) Kind() Kind               { return KindArc }
func (a *Arc) IsCurve() bool            { return true }
func (a *Arc) PointCount() int          { return 4 }
func (a *Arc) HandleCount() int         { return 4 }
func (a *Arc) IsHandleFixed(i int) bool { return i > 2 }
func (a *Arc) Center() geom.Point       { return a.pts[0] }
func (a *Arc) StartPoint() geom.Point   { return a.pts[1] }
func (a *Arc) EndPoint() geom.Point     { return a.pts[2] }
func (a *Arc) MidPoint() geom.Point     { return a.pts[3] }
func (a *Arc) Radius() float64          { return a.pts[1].Distance(a.pts[0]) }
func (a *Arc) StartAngle() float64      { return a.pts[1].Sub(a.pts[0]).Angle() }
func (a *Arc) EndAngle() float64        { return a.pts[2].Sub(a.pts[0]).Angle() }
func (a *Arc) ArcKind() ArcKind         { return a.subtype }
func (a *Arc) IsSector() bool           { return a.subtype > ArcOpen }

func (a *Arc) Point(i int) geom.Point {
	if i < 0 {
		i = 0
	}
	return a.pts[i%4]
}

func (a *Arc) SetPoint(i int, pt geom.Point) {
	a.pts[i%4] = pt
	a.sweep = 0
}

// SetArcKind switches between an open arc and a sector.
func (a *Arc) SetArcKind(k ArcKind) {
	a.subtype = k
	a.Update()
}

func (a *Arc) IsClosed() bool {
	return a.IsSector() || math.Abs(a.SweepAngle()) > geom.TwoPi-1e-3
}

// SweepAngle returns the stored sweep, or derives it from the points. The
// derivation tries an anticlockwise and then a clockwise reading; a
// reading is accepted when the mid point lies within π/6 of halfway.
func (a *Arc) SweepAngle() float64 {
	if math.Abs(a.sweep) >= geom.MinDist {
		return a.sweep
	}

	mid := a.pts[3].Sub(a.pts[0]).Angle()
	start := a.StartAngle()
	end := a.EndAngle()
	if math.Abs(mid-start) < geom.MinDist && math.Abs(start-end) < geom.MinDist {
		return end - start
	}

	tol := geom.Tol{Point: a.Radius() * 1e-3, Vector: 1e-4}
	chordMid := a.pts[1].Midpoint(a.pts[2])
	opposite := geom.Pt(a.pts[3].X+chordMid.X, a.pts[3].Y+chordMid.Y)
	twiceCenter := geom.Pt(2*a.pts[0].X, 2*a.pts[0].Y)
	if a.pts[1].Equal(a.pts[2], tol) && opposite.Equal(twiceCenter, tol) {
		return geom.TwoPi
	}

	s2, m2, e2 := start, mid, end
	if s2 < 0 {
		s2 += geom.TwoPi
	}
	for m2 < s2 {
		m2 += geom.TwoPi
	}
	for e2 < m2 {
		e2 += geom.TwoPi
	}
	if math.Abs(s2+e2-2*m2) < math.Pi/6 && e2-s2 < geom.TwoPi {
		return e2 - s2
	}

	s2, m2, e2 = start, mid, end
	if s2 > 0 {
		s2 -= geom.TwoPi
	}
	for m2 > s2 {
		m2 -= geom.TwoPi
	}
	for e2 > m2 {
		e2 -= geom.TwoPi
	}
	if math.Abs(s2+e2-2*m2) < math.Pi/6 {
		if e2-s2 > -geom.TwoPi {
			return e2 - s2
		}
		return geom.ToRange(e2-s2, -geom.TwoPi, 0)
	}

	return end - start
}

func (a *Arc) tangentSign() float64 {
	if a.SweepAngle() > 0 {
		return 1
	}
	return -1
}

// StartTangent is the direction of travel at the start point, as long as
// the radius.
func (a *Arc) StartTangent() geom.Vec2 {
	return a.pts[1].Sub(a.pts[0]).Perp().Mul(a.tangentSign())
}

func (a *Arc) EndTangent() geom.Vec2 {
	return a.pts[2].Sub(a.pts[0]).Perp().Mul(a.tangentSign())
}

// SetCenterRadius sets the arc from its polar description. Sweeps within
// 1e-3 of a full turn become a full turn.
func (a *Arc) SetCenterRadius(center geom.Point, radius, startAngle, sweepAngle float64) bool {
	if sweepAngle > geom.TwoPi-1e-3 {
		sweepAngle = geom.TwoPi
	} else if sweepAngle < 1e-3-geom.TwoPi {
		sweepAngle = -geom.TwoPi
	}
	a.sweep = sweepAngle
	a.pts[0] = center
	a.pts[1] = center.PolarPoint(startAngle, radius)
	a.pts[2] = center.PolarPoint(startAngle+sweepAngle, radius)
	a.pts[3] = center.PolarPoint(startAngle+sweepAngle/2, radius)
	a.Update()
	return true
}

// SetStartMidEnd sets the arc through three points.
func (a *Arc) SetStartMidEnd(start, mid, end geom.Point) bool {
	arc, ok := geom.Arc3P(start, mid, end)
	return ok && a.SetCenterRadius(arc.Center, arc.Radius, arc.StartAngle, arc.SweepAngle)
}

// SetCenterStart sets a zero-sweep arc, the first step of drawing by
// center, start and end.
func (a *Arc) SetCenterStart(center, start geom.Point) bool {
	return a.SetCenterRadius(center, start.Distance(center), start.Sub(center).Angle(), 0)
}

// SetCenterStartEnd sets the arc around center from start towards the
// direction of end, keeping the turning direction of the current sweep.
func (a *Arc) SetCenterStartEnd(center, start, end geom.Point) bool {
	return a.setCSE(center, start, end, a.SweepAngle())
}

// setCSE picks the sweep closest to lastSweep, so that dragging the end
// around the center keeps going in the same direction, and snaps to a full
// turn when an arc of more than 1.5π comes within 5° of closing.
func (a *Arc) setCSE(center, start, end geom.Point, lastSweep float64) bool {
	startAngle := start.Sub(center).Angle()
	endAngle := end.Sub(center).Angle()
	sweep := geom.ToRange(endAngle-startAngle, -geom.TwoPi, geom.TwoPi)

	if math.Abs(sweep-lastSweep) > math.Pi {
		if math.Abs(sweep) < geom.Deg2Rad(5) && math.Abs(lastSweep) > math.Pi+geom.HalfPi {
			sweep = math.Copysign(geom.TwoPi, lastSweep)
		} else if sweep > 0 {
			sweep -= geom.TwoPi
		} else {
			sweep += geom.TwoPi
		}
	}
	return a.SetCenterRadius(center, start.Distance(center), startAngle, sweep)
}

// SetTanStartEnd sets the arc from start to end whose direction at start
// is tan.
func (a *Arc) SetTanStartEnd(tan geom.Vec2, start, end geom.Point) bool {
	arc, ok := geom.ArcTan(start, end, tan)
	return ok && a.SetCenterRadius(arc.Center, arc.Radius, arc.StartAngle, arc.SweepAngle)
}

// Reverse swaps the start and end points.
func (a *Arc) Reverse() {
	a.pts[1], a.pts[2] = a.pts[2], a.pts[1]
	a.sweep = -a.sweep
}

func (a *Arc) beziers() []geom.Point {
	r := a.Radius()
	return geom.ArcToBezier(a.pts[0], r, r, a.StartAngle(), a.SweepAngle())
}

func (a *Arc) Clone() Shape {
	c := *a
	return &c
}

func (a *Arc) Update() {
	ext := geom.BeziersBox(a.beziers(), false)
	if ext.IsNull() {
		ext = geom.BoxOfPoints(a.pts[1], a.pts[2])
	}
	if a.IsSector() {
		ext = ext.UnionPoint(a.pts[0])
	}
	a.setExtent(ext)
}

func (a *Arc) Transform(aff geom.Affine) {
	geom.TransformPoints(a.pts[:], aff)
	if _, mirror := aff.HasMirror(); mirror {
		a.sweep = -a.sweep
	}
	a.Update()
}

func (a *Arc) Clear() {
	a.pts = [4]geom.Point{}
	a.sweep = 0
	a.clearBase()
}

func (a *Arc) Offset(v geom.Vec2, _ int) bool {
	a.Transform(geom.Translate(v))
	return true
}

func (a *Arc) HandlePoint(i int) geom.Point {
	switch i {
	case 1:
		return a.pts[1]
	case 2:
		return a.pts[2]
	case 3:
		return a.pts[3]
	case 4:
		return a.pts[0].Lerp(a.pts[1], 2.0/3)
	case 5:
		return a.pts[0].Lerp(a.pts[2], 2.0/3)
	case 6:
		return a.pts[1].Translate(a.StartTangent())
	case 7:
		return a.pts[2].Translate(a.EndTangent())
	default:
		return a.pts[0]
	}
}

func (a *Arc) HandleType(i int) HandleType {
	switch {
	case i == 0:
		return HandleCenter
	case i == 3:
		return HandleMidPoint
	case i >= 4 && i <= 7:
		return HandleOutside
	default:
		return HandleVertex
	}
}

func (a *Arc) SetHandlePoint(i int, pt geom.Point, tol float64) bool {
	var data int
	return a.SetHandlePoint2(i, pt, tol, &data)
}

// SetHandlePoint2 drags handle i. data counts the moves of the current
// gesture; the angle handles remember the sweep of the previous move so
// that the arc does not flip direction while the pointer circles the
// center.
func (a *Arc) SetHandlePoint2(i int, pt geom.Point, _ float64, data *int) bool {
	if rotateHandle(a, i, pt) {
		return true
	}
	c := a.pts[0]
	switch i {
	case 1, 2:
		return a.SetCenterRadius(c, pt.Distance(c), a.StartAngle(), a.SweepAngle())
	case 3:
		return a.SetStartMidEnd(a.pts[1], pt, a.pts[2])
	case 4, 5:
		if *data == 0 {
			a.lastSweep = a.SweepAngle()
			*data++
		}
		onArc := c.PolarPoint(pt.Sub(c).Angle(), a.Radius())
		var ok bool
		if i == 4 {
			ok = a.setCSE(c, onArc, a.pts[2], a.lastSweep)
		} else {
			ok = a.setCSE(c, a.pts[1], onArc, a.lastSweep)
		}
		a.lastSweep = a.SweepAngle()
		return ok
	case 6:
		return a.SetTanStartEnd(pt.Sub(a.pts[1]), a.pts[1], a.pts[2])
	case 7:
		if !a.SetTanStartEnd(a.pts[2].Sub(pt), a.pts[2], a.pts[1]) {
			return false
		}
		a.Reverse()
		a.Update()
		return true
	}
	return a.Offset(pt.Sub(c), -1)
}

func (a *Arc) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	dist := math.MaxFloat64
	consider := func(d float64, near geom.Point) {
		if d <= tol && d < dist {
			dist = d
			res.NearPt = near
		}
	}
	if a.IsSector() {
		consider(geom.PtToLine(a.pts[0], a.pts[1], pt))
		consider(geom.PtToLine(a.pts[0], a.pts[2], pt))
	}
	bz := a.beziers()
	for i := 0; i+3 < len(bz); i += 3 {
		c := geom.CubicBez{P0: bz[i], P1: bz[i+1], P2: bz[i+2], P3: bz[i+3]}
		near, _ := geom.NearestOnBezier(pt, c)
		consider(pt.Distance(near), near)
	}
	return dist
}

func (a *Arc) HitTestBox(rect geom.Box) bool {
	if !a.Extent().IsIntersect(rect) {
		return false
	}
	return rect.ContainsPoint(a.pts[0], geom.Tol{}) || geom.BeziersIntersectBox(rect, a.beziers(), false)
}

func (a *Arc) Output(p *geom.Path) bool {
	if a.Radius() < geom.MinDist || math.Abs(a.SweepAngle()) < geom.MinDist {
		return false
	}
	bz := a.beziers()
	if a.IsSector() {
		p.MoveTo(a.pts[0], false)
		p.LineTo(bz[0], false)
		p.BeziersTo(bz[1:], false, false)
		return p.CloseFigure()
	}
	p.MoveTo(bz[0], false)
	return p.BeziersTo(bz[1:], false, false)
}

func (a *Arc) Save(s Storage) bool {
	ret := a.saveBase(s)
	writePoints(s, "points", a.pts[:])
	s.WriteInt("subtype", int(a.subtype))
	return ret
}

func (a *Arc) Load(_ *Factory, s Storage) bool {
	a.subtype = ArcKind(s.ReadInt("subtype", int(a.subtype)))
	a.sweep = 0
	return a.loadBase(s) && readPoints(s, "points", a.pts[:]) == 4
}
