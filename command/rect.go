package command

import (
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
	"honnef.co/go/vgcore/shape"
)

// rectShape is implemented by the shapes spanned by two corners.
type rectShape interface {
	shape.Shape
	SetRectWithAngle(pt1, pt2 geom.Point, angle float64, base geom.Point)
	Width() float64
	Height() float64
}

// DrawRect draws the rectangle kinds with one drag from corner to corner.
type DrawRect struct {
	DrawBase
	startPt geom.Point
	// dashed draws the bounding box of the shape in progress.
	dashed bool
	// commit is called with a shape large enough to keep.
	commit func(m *Motion)
}

func newDrawRect(name string, newShape func() shape.Shape) *DrawRect {
	c := &DrawRect{}
	c.Init(name, newShape, c)
	c.commit = c.addRectShape
	return c
}

func squared(sp shape.Shape) shape.Shape {
	sp.SetFlag(shape.FlagSquare, true)
	return sp
}

// NewDrawRect returns the "rect" command.
func NewDrawRect() Command {
	return newDrawRect("rect", func() shape.Shape { return &shape.Rect{} })
}

// NewDrawSquare returns the "square" command.
func NewDrawSquare() Command {
	return newDrawRect("square", func() shape.Shape { return squared(&shape.Rect{}) })
}

// NewDrawEllipse returns the "ellipse" command.
func NewDrawEllipse() Command {
	c := newDrawRect("ellipse", func() shape.Shape { return &shape.Ellipse{} })
	c.dashed = true
	return c
}

// NewDrawCircle returns the "circle" command, which drags a circle by the
// corners of its bounding square.
func NewDrawCircle() Command {
	c := newDrawRect("circle", func() shape.Shape { return squared(&shape.Ellipse{}) })
	c.dashed = true
	return c
}

// NewDrawDiamond returns the "diamond" command.
func NewDrawDiamond() Command {
	return newDrawRect("diamond", func() shape.Shape { return &shape.Diamond{} })
}

// NewDrawRoundRect returns the "roundrect" command.
func NewDrawRoundRect() Command {
	return newDrawRect("roundrect", func() shape.Shape { return &shape.RoundRect{} })
}

func (c *DrawRect) rect() rectShape { return c.dynShape().(rectShape) }

// Prepare reads the corner radius of rounded rectangles, in model units.
// It defaults to three display millimetres.
func (c *DrawRect) Prepare(m *Motion, s shape.Storage) {
	rr, ok := c.dynShape().(*shape.RoundRect)
	if !ok {
		return
	}
	r := m.DisplayMmToModel(3)
	if s != nil {
		r = s.ReadFloat("radius", r)
	}
	rr.SetRadius(r, 0)
}

func (c *DrawRect) setRect(pt1, pt2 geom.Point) {
	c.rect().SetRectWithAngle(pt1, pt2, 0, pt1)
}

func (c *DrawRect) Draw(m *Motion, gs *graphics.Graphics) bool {
	if c.dashed && c.step > 0 {
		ctx := graphics.Context{
			Style:     graphics.DashLine,
			LineColor: graphics.ARGB(128, 0, 0, 0),
			FillColor: graphics.Invalid,
		}
		gs.DrawRect(&ctx, c.dynShape().Extent())
	}
	return c.DrawBase.Draw(m, gs)
}

func (c *DrawRect) TouchBegan(m *Motion) bool {
	c.step = 1
	c.startPt = c.snapPoint(m, true)
	c.setRect(c.startPt, c.startPt)
	return true
}

func (c *DrawRect) TouchMoved(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	c.setRect(c.startPt, c.snapPoint(m, false))
	return true
}

// TouchEnded keeps the shape when both sides exceed the minimum size. A
// press that hardly moved selects the shape under it instead.
func (c *DrawRect) TouchEnded(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	c.setRect(c.startPt, c.snapPoint(m, false))
	r := c.rect()
	tol := c.minShape(m)

	switch {
	case r.Width() > tol && r.Height() > tol && r.Point(0).Distance(r.Point(2)) > 2*tol:
		c.commit(m)
	case m.Point.Distance(m.StartPt) < m.Session.cfg.ClickPx:
		r.Clear()
		c.step = 0
		c.clickSelect(m)
	default:
		r.Clear()
		c.step = 0
		m.Session.ShowMessage("shape_too_small")
	}
	m.snap().Clear()
	return true
}

func (c *DrawRect) addRectShape(m *Motion) {
	c.addShape(m)
	c.step = 0
}

// DrawGrid draws a grid in two gestures: a drag for the frame, then a drag
// of the cell handle.
type DrawGrid struct {
	*DrawRect
}

// NewDrawGrid returns the "grid" command.
func NewDrawGrid() Command {
	c := &DrawGrid{DrawRect: &DrawRect{}}
	c.Init("grid", func() shape.Shape { return shape.NewGrid(geom.Box{}, 0) }, c)
	c.commit = func(*Motion) { c.step = 2 }
	return c
}

func (c *DrawGrid) grid() *shape.Grid { return c.dynShape().(*shape.Grid) }

func (c *DrawGrid) TouchBegan(m *Motion) bool {
	if c.step == 0 {
		return c.DrawRect.TouchBegan(m)
	}
	c.step = 3
	return true
}

func (c *DrawGrid) TouchMoved(m *Motion) bool {
	if c.step < 3 {
		return c.DrawRect.TouchMoved(m)
	}
	c.grid().SetHandlePoint(8, c.snapPoint(m, false), 0)
	return true
}

// TouchEnded commits the grid once the cell is valid. An invalid cell
// falls back to the default and waits for another drag.
func (c *DrawGrid) TouchEnded(m *Motion) bool {
	if c.step < 3 {
		return c.DrawRect.TouchEnded(m)
	}
	g := c.grid()
	if g.IsValid(c.mm(m, 1)) {
		c.dyn.CopyContext(graphics.Context{}, graphics.FillARGB)
		c.addShape(m)
		c.step = 0
		m.Session.endCommand()
	} else {
		g.SetHandlePoint(8, g.Point(3), 0)
		c.step = 2
		m.Session.ShowMessage("invalid_gridcell")
	}
	m.snap().Clear()
	return true
}
