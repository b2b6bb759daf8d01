package command

import (
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/shape"
)

// DrawLine draws a line segment, ray or beeline with one drag.
type DrawLine struct {
	DrawBase
	kind shape.LineKind
}

func newDrawLine(name string, kind shape.LineKind) *DrawLine {
	c := &DrawLine{kind: kind}
	c.Init(name, func() shape.Shape { return &shape.Line{} }, c)
	return c
}

// NewDrawLine returns the "line" command.
func NewDrawLine() Command { return newDrawLine("line", shape.LineSegment) }

// NewDrawRay returns the "ray" command.
func NewDrawRay() Command { return newDrawLine("ray", shape.LineRay) }

// NewDrawBeeline returns the "beeline" command.
func NewDrawBeeline() Command { return newDrawLine("beeline", shape.LineBeeline) }

func (c *DrawLine) line() *shape.Line { return c.dynShape().(*shape.Line) }

// Prepare applies the "rayline" and "beeline" options.
func (c *DrawLine) Prepare(m *Motion, s shape.Storage) {
	kind := c.kind
	if s != nil {
		switch {
		case s.ReadBool("rayline", false):
			kind = shape.LineRay
		case s.ReadBool("beeline", false):
			kind = shape.LineBeeline
		}
	}
	c.line().SetLineKind(kind)
}

func (c *DrawLine) TouchBegan(m *Motion) bool {
	c.step = 1
	pt := c.snapPoint(m, true)
	l := c.line()
	l.SetPoint(0, pt)
	l.SetPoint(1, pt)
	l.Update()
	return true
}

func (c *DrawLine) TouchMoved(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	c.ignoreStartPoint(m, 0)
	l := c.line()
	l.SetPoint(1, c.snapPoint(m, false))
	l.Update()
	return true
}

func (c *DrawLine) TouchEnded(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	l := c.line()
	l.SetPoint(1, c.snapPoint(m, false))
	l.Update()
	if l.Length() > c.minShape(m) {
		c.addShape(m)
	} else {
		l.Clear()
		m.Session.ShowMessage("shape_too_small")
	}
	c.step = 0
	m.snap().Clear()
	return true
}

// DrawDot places points. Every press commits one.
type DrawDot struct {
	DrawBase
	ptype int
}

// NewDrawDot returns the "dot" command.
func NewDrawDot() Command {
	c := &DrawDot{}
	c.Init("dot", func() shape.Shape { return shape.NewDot(geom.Point{}) }, c)
	return c
}

// Prepare reads the "pttype" option, the symbol drawn for the points.
func (c *DrawDot) Prepare(m *Motion, s shape.Storage) {
	if s != nil {
		c.ptype = s.ReadInt("pttype", c.ptype)
	}
	c.dynShape().(*shape.Dot).SetPointType(c.ptype)
}

func (c *DrawDot) Click(m *Motion) bool {
	return c.TouchBegan(m) && c.TouchEnded(m)
}

func (c *DrawDot) TouchBegan(m *Motion) bool {
	c.step = 1
	c.place(c.snapPoint(m, true))
	return true
}

func (c *DrawDot) TouchMoved(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	c.place(c.snapPoint(m, false))
	return true
}

func (c *DrawDot) TouchEnded(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	c.place(c.snapPoint(m, false))
	c.dynShape().(*shape.Dot).SetPointType(c.ptype)
	c.addShape(m)
	c.step = 0
	m.snap().Clear()
	return true
}

func (c *DrawDot) place(pt geom.Point) {
	sp := c.dynShape()
	sp.SetPoint(0, pt)
	sp.Update()
}
