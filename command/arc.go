package command

import (
	"fmt"
	"math"

	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
	"honnef.co/go/vgcore/shape"
)

// threePoints keeps the points picked by the three-step commands, which
// differ from the control points of the shapes they build.
type threePoints struct {
	DrawBase
	pts [3]geom.Point
}

func (c *threePoints) MaxStep() int { return 3 }

func (c *threePoints) pickedPoint(i int) geom.Point { return c.pts[i] }

// drawHotPoint marks the point being placed unless it snapped to something.
func (c *threePoints) drawHotPoint(m *Motion, gs *graphics.Graphics) {
	if c.step > 0 && c.step < 3 && m.Dragging() && m.snap().SnappedType() == SnapNone {
		gs.DrawHandle(c.pts[c.step], graphics.HandleActiveVertex, 0)
	}
}

type arcMode int

const (
	arc3P arcMode = iota
	arcCSE
	arcCompass
	arcTan
)

// DrawArc draws arcs and sectors in three steps. Depending on the command
// the points are start, middle and end; center, start and end; or the two
// ends of a tangent line followed by the end of the arc.
type DrawArc struct {
	threePoints
	mode arcMode

	// compass only
	radius  float64
	decimal int
}

func newDrawArc(name string, mode arcMode, kind shape.ArcKind) *DrawArc {
	c := &DrawArc{mode: mode}
	c.Init(name, func() shape.Shape {
		a := &shape.Arc{}
		a.SetArcKind(kind)
		return a
	}, c)
	return c
}

// NewDrawArc3P returns the "arc3p" command: start, middle and end.
func NewDrawArc3P() Command { return newDrawArc("arc3p", arc3P, shape.ArcOpen) }

// NewDrawArcCSE returns the "arccse" command: center, start and end.
func NewDrawArcCSE() Command { return newDrawArc("arccse", arcCSE, shape.ArcOpen) }

// NewDrawSector returns the "sector" command, drawn like "arccse".
func NewDrawSector() Command { return newDrawArc("sector", arcCSE, shape.ArcSector) }

// NewDrawArcTan returns the "arctan" command: a tangent line, then the end
// of the arc that continues it.
func NewDrawArcTan() Command { return newDrawArc("arctan", arcTan, shape.ArcOpen) }

// NewDrawCompass returns the "compass" command. It keeps the radius of the
// last arc, so that after the first arc a click moves the center and a
// drag picks the start direction. Sweep angles are rounded to the number
// of decimal degrees of the "decimal" option.
func NewDrawCompass() Command {
	return newDrawArc("compass", arcCompass, shape.ArcOpen)
}

func (c *DrawArc) arc() *shape.Arc { return c.dynShape().(*shape.Arc) }

func (c *DrawArc) Prepare(m *Motion, s shape.Storage) {
	c.pts = [3]geom.Point{}
	c.radius = 0
	if s != nil && c.mode == arcCompass {
		c.decimal = s.ReadInt("decimal", c.decimal)
	}
}

func (c *DrawArc) SetStepPoint(m *Motion, step int, pt geom.Point) {
	a := c.arc()
	switch step {
	case 0:
		if c.mode == arcCompass && c.pts[1] != c.pts[2] {
			// aim the start at pt keeping center and radius
			c.pts[1] = c.pts[0].RulerPoint(pt, c.radius, 0)
			if c.pts[1] == c.pts[2] {
				c.pts[2] = c.pts[0].RulerPoint(pt, -c.radius, 0)
			}
			a.SetCenterStart(c.pts[0], c.pts[1])
			c.step = 2
			return
		}
		c.pts[0] = pt
		if c.mode == arcCSE || c.mode == arcCompass {
			a.Offset(pt.Sub(a.Center()), -1)
		}
	case 1:
		c.pts[1], c.pts[2] = pt, pt
		switch c.mode {
		case arc3P:
			a.SetStartMidEnd(c.pts[0], pt, pt)
		case arcTan:
			a.SetTanStartEnd(pt.Sub(c.pts[0]), pt, pt)
		default:
			a.SetCenterStart(c.pts[0], pt)
			c.radius = a.Radius()
		}
	case 2:
		switch c.mode {
		case arc3P:
			a.SetStartMidEnd(c.pts[0], c.pts[1], pt)
			c.pts[2] = pt
		case arcTan:
			a.SetTanStartEnd(c.pts[1].Sub(c.pts[0]), c.pts[1], pt)
			c.pts[2] = pt
		case arcCSE:
			a.SetCenterStartEnd(c.pts[0], c.pts[1], pt)
			c.pts[2] = pt
		case arcCompass:
			a.SetCenterStartEnd(c.pts[0], c.pts[1], pt)
			sweep := geom.Deg2Rad(geom.RoundReal(geom.Rad2Deg(a.SweepAngle()), c.decimal))
			a.SetCenterRadius(a.Center(), c.radius, a.StartAngle(), sweep)
			c.pts[2] = a.EndPoint()
		}
	}
}

// Click moves the center of a compass that already has a radius.
func (c *DrawArc) Click(m *Motion) bool {
	if c.mode != arcCompass {
		return c.DrawBase.Click(m)
	}
	if c.pts[1] != c.pts[2] || c.step > 1 {
		pt := c.snapPoint(m, true)
		v := pt.Sub(c.pts[0])
		c.pts[1] = c.pts[1].Translate(v)
		c.pts[0] = pt
		c.pts[2] = c.pts[0].Translate(c.pts[0].Sub(c.pts[1]))
		c.arc().Offset(pt.Sub(c.arc().Center()), -1)
		c.step = 0
	}
	return true
}

func (c *DrawArc) Draw(m *Motion, gs *graphics.Graphics) bool {
	if c.mode == arcCSE || c.mode == arcCompass {
		if c.step == 2 && m.Dragging() {
			ctx := graphics.Context{LineColor: graphics.ARGB(64, 0, 126, 0), Style: graphics.DotLine, FillColor: graphics.Invalid}
			gs.DrawLine(&ctx, c.pts[0], c.pts[2])
			c.drawAngleText(m, gs, math.Abs(c.arc().SweepAngle()))
		}
		if c.pts[0] != c.pts[1] {
			gs.DrawHandle(c.pts[0], graphics.HandleCenter, 0)
			if c.step == 0 {
				ctx := graphics.Context{LineWidth: -2, LineColor: graphics.ARGB(32, 0, 126, 0), Style: graphics.DashLine, FillColor: graphics.Invalid}
				gs.DrawCircle(&ctx, c.pts[0], c.pts[0].Distance(c.pts[1]))
			}
		}
	}
	c.drawHotPoint(m, gs)
	if c.step > 0 {
		ctx := graphics.Context{LineWidth: -2, LineColor: graphics.ARGB(32, 0, 126, 0), Style: graphics.DotLine, FillColor: graphics.Invalid}
		gs.DrawLine(&ctx, c.pts[0], c.pts[1])
		a := c.arc()
		gs.DrawCircle(&ctx, a.Center(), a.Radius())
	}
	return c.DrawBase.Draw(m, gs)
}

// drawAngleText shows an angle in degrees above the pointer.
func (c *DrawArc) drawAngleText(m *Motion, gs *graphics.Graphics, angle float64) {
	pt := m.PointM.Translate(geom.Vec(0, m.DisplayMmToModel(12)))
	pt.Y = min(pt.Y, m.Session.Xform.WndRectM().YMax)
	text := fmt.Sprint(geom.RoundReal(geom.Rad2Deg(angle), 2)) + m.Session.Text("degrees")
	gs.DrawText(graphics.Red, text, pt, m.DisplayMmToModel(5), graphics.AlignCenter|graphics.AlignBottom, 0)
}

// DrawCircle3P draws the circle through three points.
type DrawCircle3P struct {
	threePoints
}

// NewDrawCircle3P returns the "circle3p" command.
func NewDrawCircle3P() Command {
	c := &DrawCircle3P{}
	c.Init("circle3p", func() shape.Shape { return squared(&shape.Ellipse{}) }, c)
	return c
}

func (c *DrawCircle3P) Prepare(m *Motion, s shape.Storage) { c.pts = [3]geom.Point{} }

func (c *DrawCircle3P) SetStepPoint(m *Motion, step int, pt geom.Point) {
	e := c.dynShape().(*shape.Ellipse)
	switch step {
	case 0:
		c.pts[0] = pt
	case 1:
		c.pts[1], c.pts[2] = pt, pt
		e.SetCircle2P(c.pts[0], pt)
	case 2:
		c.pts[2] = pt
		e.SetCircle3P(c.pts[0], c.pts[1], pt)
	}
}

func (c *DrawCircle3P) Draw(m *Motion, gs *graphics.Graphics) bool {
	c.drawHotPoint(m, gs)
	if c.step > 0 {
		ctx := graphics.Context{LineColor: c.dyn.Context().LineColor, Style: graphics.DotLine, FillColor: graphics.Invalid}
		gs.DrawLine(&ctx, c.pts[0], c.pts[1])
	}
	return c.DrawBase.Draw(m, gs)
}
