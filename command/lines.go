package command

import (
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
	"honnef.co/go/vgcore/shape"
)

// polyShape is implemented by Lines and Splines.
type polyShape interface {
	shape.Shape
	Resize(n int)
	AddPoint(pt geom.Point)
	RemovePoint(i int) bool
	SetClosed(closed bool)
	EndPoint() geom.Point
}

// DrawLines draws polylines and polygons one vertex per gesture. The last
// vertex follows the pointer until it is released. An open polyline closes
// itself when its end is brought back to its start; a polygon with a
// vertex limit is committed when the limit is reached.
type DrawLines struct {
	DrawBase
	// index is the vertex being placed.
	index int
	// maxEdges is zero for polylines.
	maxEdges    int
	lastClicked bool
}

func newDrawLines(name string, closed bool, maxEdges int) *DrawLines {
	c := &DrawLines{maxEdges: maxEdges}
	c.Init(name, func() shape.Shape { return shape.NewLines(nil, closed) }, c)
	return c
}

// NewDrawLines returns the "lines" command.
func NewDrawLines() Command { return newDrawLines("lines", false, 0) }

// NewDrawPolygon returns the "polygon" command, limited to 20 vertices.
func NewDrawPolygon() Command { return newDrawLines("polygon", true, 20) }

// NewDrawQuadrangle returns the "quadrangle" command.
func NewDrawQuadrangle() Command { return newDrawLines("quadrangle", true, 4) }

func (c *DrawLines) lines() polyShape { return c.dynShape().(polyShape) }

func (c *DrawLines) needCheckClosed() bool { return c.maxEdges == 0 }
func (c *DrawLines) needEnded() bool       { return c.maxEdges > 0 && c.step >= c.maxEdges-1 }

// minSteps is the step from which the shape is worth keeping.
func (c *DrawLines) minSteps() int {
	if c.lines().IsClosed() {
		return 2
	}
	return 1
}

func (c *DrawLines) BackStep(m *Motion) bool {
	if c.step > 2 {
		i := c.index
		if c.index == c.step {
			i = c.step - 1
		}
		c.lines().RemovePoint(i)
		c.lines().Update()
	}
	return c.DrawBase.BackStep(m)
}

func (c *DrawLines) Draw(m *Motion, gs *graphics.Graphics) bool {
	if c.step > c.acceptStep() && !m.Dragging() {
		gs.DrawHandle(c.dynShape().Extent().Center(), graphics.HandleAccept, 0)
	}
	return c.DrawBase.Draw(m, gs)
}

func (c *DrawLines) acceptStep() int {
	if c.needEnded() {
		return 3
	}
	return 2
}

// Click on the accept mark at the middle of the shape commits it.
func (c *DrawLines) Click(m *Motion) bool {
	if c.step > c.acceptStep() &&
		m.PointM.Distance(c.dynShape().Extent().Center()) < m.DisplayMmToModel(5) {
		return c.Cancel(m)
	}
	return c.DrawBase.Click(m)
}

func (c *DrawLines) TouchBegan(m *Motion) bool {
	pt := c.snapPoint(m, c.step == 0)
	l := c.lines()
	if c.step == 0 {
		c.step = 1
		c.index = 1
		l.Resize(2)
		l.SetClosed(c.maxEdges > 0)
		l.SetPoint(0, pt)
		l.SetPoint(1, pt)
	} else {
		if c.step >= l.PointCount() {
			l.AddPoint(pt)
			c.step = min(c.step, l.PointCount()-1)
			c.index = c.step
		}
		l.SetPoint(c.index, pt)
	}
	l.Update()
	c.lastClicked = true
	return true
}

func (c *DrawLines) TouchMoved(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	c.ignoreStartPoint(m, c.index-1)
	pt := c.snapPoint(m, false)
	l := c.lines()
	l.SetPoint(c.index, pt)
	c.checkClosed(m, pt)
	l.Update()
	c.lastClicked = false
	return true
}

func (c *DrawLines) TouchEnded(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	pt := c.snapPoint(m, false)
	l := c.lines()
	l.SetPoint(c.index, pt)
	closed := c.checkClosed(m, pt)
	l.Update()

	switch {
	case closed:
		// the closing vertex duplicates the first one
		l.RemovePoint(c.step)
		c.commit(m)
	case c.canAddPoint(m, pt):
		if c.needEnded() {
			c.commit(m)
		} else if c.step <= l.PointCount() {
			c.step++
		}
	case c.step > 1:
		if c.step >= l.PointCount() {
			c.step--
		}
		l.RemovePoint(c.index)
		l.Update()
	}
	m.snap().Clear()
	return true
}

func (c *DrawLines) commit(m *Motion) {
	c.addShape(m)
	c.step = 0
	c.lastClicked = false
}

// checkClosed closes a polyline whose moving end meets its other end.
func (c *DrawLines) checkClosed(m *Motion, pt geom.Point) bool {
	if (c.index != 0 && c.index != c.step) || !c.needCheckClosed() {
		return false
	}
	l := c.lines()
	other := l.Point(0)
	if c.index == 0 {
		other = l.EndPoint()
	}
	closed := c.step > 2 && pt.Distance(other) < m.DisplayMmToModel(2)
	l.SetClosed(closed)
	return closed
}

// canAddPoint rejects a vertex too close to its neighbours or on the line
// through them.
func (c *DrawLines) canAddPoint(m *Motion, pt geom.Point) bool {
	l := c.lines()
	n := l.PointCount()
	minDist := m.DisplayMmToModel(3)
	maxIndex := n - 2
	if l.IsClosed() {
		maxIndex = n - 1
	}

	prev := l.Point(c.index - 1)
	if prev.Distance(pt) < minDist {
		return false
	}
	if c.index < maxIndex && l.Point(c.index+1).Distance(pt) < minDist {
		return false
	}
	if l.IsClosed() || c.index < maxIndex {
		next := l.Point((c.index + 1) % n)
		if d, _ := geom.PtToLine(prev, next, pt); d < m.DisplayMmToModel(1) {
			return false
		}
	}
	return true
}

// DoubleClick commits the shape, dropping the vertex the first click of
// the double click left behind.
func (c *DrawLines) DoubleClick(m *Motion) bool {
	l := c.lines()
	pt := m.PointM
	if c.lastClicked {
		pt = l.Point(c.index)
	}
	if c.step > c.minSteps() {
		if l.PointCount() > c.minSteps() && m.DisplayMmToModel(5) > pt.Distance(l.Point(c.index)) {
			l.RemovePoint(c.index)
			c.index--
		}
		c.addShape(m)
		c.step = 0
	}
	return true
}

// Cancel commits what was drawn so far when it forms a shape.
func (c *DrawLines) Cancel(m *Motion) bool {
	if c.step > c.minSteps() && c.lines().PointCount() > 2 {
		c.addShape(m)
		c.step = 0
		return true
	}
	return c.DrawBase.Cancel(m)
}

// DrawTriangle draws a closed polyline of three vertices.
type DrawTriangle struct {
	DrawBase
}

// NewDrawTriangle returns the "triangle" command.
func NewDrawTriangle() Command {
	c := &DrawTriangle{}
	c.Init("triangle", func() shape.Shape { return shape.NewLines(nil, true) }, c)
	return c
}

func (c *DrawTriangle) MaxStep() int { return 3 }

func (c *DrawTriangle) SetStepPoint(m *Motion, step int, pt geom.Point) {
	c.dynShape().SetPoint(step, pt)
}

func (c *DrawTriangle) TouchBegan(m *Motion) bool {
	if c.step == 0 {
		c.dynShape().(*shape.Lines).Resize(3)
	}
	return c.DrawBase.TouchBegan(m)
}

// DrawParallel draws a parallelogram from three of its vertices.
type DrawParallel struct {
	DrawBase
}

// NewDrawParallel returns the "parallel" command.
func NewDrawParallel() Command {
	c := &DrawParallel{}
	c.Init("parallel", func() shape.Shape { return &shape.Parallel{} }, c)
	return c
}

func (c *DrawParallel) MaxStep() int { return 3 }

// SetStepPoint places vertex step. The second vertex drags the third along
// until the third is placed on its own.
func (c *DrawParallel) SetStepPoint(m *Motion, step int, pt geom.Point) {
	sp := c.dynShape()
	switch step {
	case 0:
		sp.SetPoint(0, pt)
	case 1:
		sp.SetPoint(1, pt)
		sp.SetPoint(2, pt)
	default:
		sp.SetPoint(2, pt)
	}
}

// DrawFreeLines records the pointer path as a polyline. The path closes
// when it returns near its start after enclosing some area.
type DrawFreeLines struct {
	DrawBase
}

// NewDrawFreeLines returns the "freelines" command.
func NewDrawFreeLines() Command {
	c := &DrawFreeLines{}
	c.Init("freelines", func() shape.Shape { return shape.NewLines(nil, false) }, c)
	return c
}

func (c *DrawFreeLines) lines() *shape.Lines { return c.dynShape().(*shape.Lines) }

func (c *DrawFreeLines) BackStep(m *Motion) bool {
	if c.step > 2 {
		c.lines().RemovePoint(c.step - 1)
		c.lines().Update()
	}
	return c.DrawBase.BackStep(m)
}

func (c *DrawFreeLines) TouchBegan(m *Motion) bool {
	l := c.lines()
	l.Resize(2)
	l.SetClosed(false)
	c.step = 1
	l.SetPoint(0, m.StartPtM)
	l.SetPoint(1, m.PointM)
	l.Update()
	return true
}

func (c *DrawFreeLines) TouchMoved(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	l := c.lines()
	closeLen := m.DisplayMmToModel(5)
	closeDist := m.PointM.Distance(l.Point(0))
	ext := l.Extent()
	closed := c.step > 2 && closeDist < closeLen &&
		ext.Width() > closeDist*1.5 && ext.Height() > closeDist*1.5

	if c.step > 2 && l.IsClosed() != closed {
		l.SetClosed(closed)
		if closed {
			l.RemovePoint(c.step)
		} else {
			l.AddPoint(m.PointM)
		}
	}
	if !closed {
		l.SetPoint(c.step, m.PointM)
		c.step++
		if c.step >= l.PointCount() {
			l.AddPoint(m.PointM)
		}
	}
	l.Update()
	return true
}

func (c *DrawFreeLines) TouchEnded(m *Motion) bool {
	if c.step > 1 {
		c.addShape(m)
	} else {
		c.lines().Clear()
		c.clickSelect(m)
	}
	c.step = 0
	m.snap().Clear()
	return true
}

// DrawSplines draws a spline curve. In freehand mode the curve follows one
// drag; otherwise every press adds a vertex and the curve is committed
// when it is closed or cancelled.
type DrawSplines struct {
	DrawBase
	freehand bool
	smooth   bool
}

// NewDrawSplines returns the freehand "splines" command.
func NewDrawSplines() Command { return newDrawSplines("splines", true) }

// NewDrawSplineMouse returns the "spline_mouse" command.
func NewDrawSplineMouse() Command { return newDrawSplines("spline_mouse", false) }

func newDrawSplines(name string, freehand bool) *DrawSplines {
	c := &DrawSplines{freehand: freehand}
	c.Init(name, func() shape.Shape { return shape.NewSplines(nil, false) }, c)
	return c
}

func (c *DrawSplines) splines() *shape.Splines { return c.dynShape().(*shape.Splines) }

// Prepare reads the "smooth" option. Smoothed freehand strokes are fitted
// with cubic segments within half a screen millimetre before they are added.
func (c *DrawSplines) Prepare(m *Motion, s shape.Storage) {
	c.smooth = s != nil && c.freehand && s.ReadBool("smooth", false)
}

func (c *DrawSplines) BackStep(m *Motion) bool {
	if c.step > 1 {
		i := c.step
		if c.freehand {
			i--
		}
		c.splines().RemovePoint(i)
		c.splines().Update()
	}
	return c.DrawBase.BackStep(m)
}

// Draw marks the first vertex and the last few while placing vertices.
func (c *DrawSplines) Draw(m *Motion, gs *graphics.Graphics) bool {
	if c.step > 0 && !c.freehand {
		ctx := graphics.Context{
			LineColor: graphics.ARGB(64, 128, 64, 172),
			FillColor: graphics.ARGB(0, 64, 64, 128),
		}
		r := m.DisplayMmToModel(0.8)
		sp := c.splines()
		n := sp.PointCount()
		for i := 1; i < 6 && n >= i; i++ {
			gs.DrawCircle(&ctx, sp.Point(n-i), r)
		}
		gs.DrawCircle(&ctx, sp.Point(0), r*1.5)
	}
	return c.DrawBase.Draw(m, gs)
}

func (c *DrawSplines) TouchBegan(m *Motion) bool {
	sp := c.splines()
	pt := m.StartPtM
	if !c.freehand {
		pt = c.snapPoint(m, c.step == 0)
	}
	if c.step > 0 && !c.freehand {
		c.step++
		if c.step >= sp.PointCount() {
			sp.AddPoint(pt)
			sp.Update()
		}
		return true
	}
	c.step = 1
	if c.freehand {
		sp.Resize(1)
	} else {
		sp.Resize(2)
		sp.SetPoint(1, pt)
	}
	sp.SetClosed(false)
	sp.SetPoint(0, pt)
	sp.Update()
	return true
}

func (c *DrawSplines) TouchMoved(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	sp := c.splines()
	if c.freehand {
		pt := m.PointM.Midpoint(m.LastPtM)
		if pt.Distance(sp.EndPoint()) >= m.DisplayMmToModel(0.5) {
			sp.AddPoint(pt)
			c.step++
		}
	} else {
		sp.SetPoint(c.step, c.snapPoint(m, false))
	}
	sp.Update()
	return true
}

func (c *DrawSplines) TouchEnded(m *Motion) bool {
	if c.step == 0 {
		return false
	}
	sp := c.splines()
	if c.freehand {
		tol := geom.NewTol(m.DisplayMmToModel(1), geom.DefaultTol.Vector)
		if !sp.Extent().IsDegenerate(tol) {
			if c.smooth {
				xf := m.Session.Xform
				sp.Smooth(xf.ModelToDisplay(), xf.WorldToDisplayY(false)*0.5)
			}
			c.addShape(m)
		} else {
			c.Click(m)
		}
		c.step = 0
	} else {
		tol := m.DisplayMmToModel(1)
		for c.step > 1 && sp.EndPoint().Distance(sp.Point(0)) < tol {
			sp.SetClosed(true)
			sp.RemovePoint(c.step)
			c.step--
		}
		sp.Update()
		if c.step > 1 && sp.IsClosed() {
			c.addShape(m)
			c.step = 0
		}
	}
	m.snap().Clear()
	return true
}

// Cancel commits the vertices placed so far.
func (c *DrawSplines) Cancel(m *Motion) bool {
	if !c.freehand && c.step > 1 {
		c.splines().RemovePoint(c.step)
		c.step--
		c.addShape(m)
	}
	return c.DrawBase.Cancel(m)
}

// Click in freehand mode draws a dot-like short line where the pointer
// was pressed.
func (c *DrawSplines) Click(m *Motion) bool {
	if !c.freehand {
		return c.DrawBase.Click(m)
	}
	pt := m.PointM
	if m.Point.Distance(m.StartPt) < 1 {
		pt = m.Point.Translate(geom.Vec(1, 1)).Transform(m.Session.Xform.DisplayToModel())
	}
	e := shape.NewElement(shape.NewLine(m.StartPtM, pt))
	e.SetContext(c.dyn.Context())
	for _, f := range m.Session.NewShapeFlags {
		e.Shape().SetFlag(f, true)
	}
	e.Shape().Update()
	added := m.shapes().Add(e)
	m.Session.newShapeID = added.ID()
	c.splines().Clear()
	return true
}
