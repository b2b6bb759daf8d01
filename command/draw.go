package command

import (
	"honnef.co/go/vgcore"
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
	"honnef.co/go/vgcore/shape"
)

// maxReplayPoints bounds the points an Initialize option replays.
const maxReplayPoints = 20

// Stepper is implemented by commands that use the generic step handlers
// of [DrawBase]. SetStepPoint places the point of the given step; MaxStep is
// the number of points that completes the shape.
type Stepper interface {
	SetStepPoint(m *Motion, step int, pt geom.Point)
	MaxStep() int
}

// Preparer is implemented by commands that read their own options. Prepare
// runs after the shape in progress was created and before the common
// options are applied. s may be nil.
type Preparer interface {
	Prepare(m *Motion, s shape.Storage)
}

// DrawBase is the base of the drawing commands. It holds the shape in
// progress and the step reached, and implements Command with handlers
// that a concrete command overrides in part.
//
// Concrete commands embed DrawBase and call Init from their constructor with
// the embedding command as outer, so that DrawBase can reach the overrides.
type DrawBase struct {
	name     string
	newShape func() shape.Shape
	outer    Command

	dyn       *shape.Element
	step      int
	customCtx bool
	oneShape  bool
}

// Init sets the command name, the constructor of the shape in progress
// and the command embedding d.
func (d *DrawBase) Init(name string, newShape func() shape.Shape, outer Command) {
	d.name = name
	d.newShape = newShape
	d.outer = outer
}

func (d *DrawBase) Name() string { return d.name }
func (d *DrawBase) Step() int    { return d.step }

// Dynamic returns the shape in progress.
func (d *DrawBase) Dynamic() *shape.Element { return d.dyn }

func (d *DrawBase) dynShape() shape.Shape { return d.dyn.Shape() }

func (d *DrawBase) Initialize(m *Motion, s shape.Storage) bool {
	d.dyn = shape.NewElement(d.newShape())
	d.dyn.SetContext(m.Session.Context)
	d.dyn.Shape().Update()
	m.Session.newShapeID = 0
	d.step = 0
	d.customCtx = false
	d.oneShape = m.Session.DrawOneShape
	m.snap().Clear()

	if p, ok := d.outer.(Preparer); ok {
		p.Prepare(m, s)
	}
	if s == nil {
		return true
	}

	sp := d.dynShape()
	for name, f := range map[string]shape.Flag{
		"fixedlen":  shape.FlagFixedLength,
		"fixedsize": shape.FlagFixedSize,
		"locked":    shape.FlagLocked,
		"hidden":    shape.FlagHidden,
	} {
		sp.SetFlag(f, s.ReadBool(name, sp.Flag(f)))
	}

	ctx := d.dyn.Context()
	if w := s.ReadFloat("lineWidth", -1000); w > -999 {
		ctx.LineWidth = w
		ctx.AutoScale = true
	}
	if style := s.ReadInt("lineStyle", -10); style > -10 {
		ctx.Style = graphics.LineStyle(style)
	}
	if a := s.ReadInt("lineAlpha", 0); a > 0 {
		ctx.LineColor = ctx.LineColor.WithAlpha(uint8(min(a, 255)))
	}
	if rgb := s.ReadInt("lineRGB", 0); rgb != 0 {
		ctx.LineColor = graphics.Color(rgb&0xFFFFFF) | ctx.LineColor&0xFF000000
	}
	if argb := s.ReadInt("lineARGB", 0); argb != 0 {
		ctx.LineColor = graphics.Color(uint32(argb))
	}
	ctx.SetArrowHeads(
		graphics.ArrowHead(s.ReadInt("startArrayHead", int(ctx.StartArrow))),
		graphics.ArrowHead(s.ReadInt("endArrayHead", int(ctx.EndArrow))))
	d.dyn.SetContext(ctx)
	d.customCtx = !ctx.Equal(m.Session.Context)

	d.replay(m, s)
	return true
}

// replay feeds the "points" option through the gesture handlers with
// snapping disabled. With "multiMoved" set the points form one drag,
// otherwise every pair of points is a drag from the first to the second.
func (d *DrawBase) replay(m *Motion, s shape.Storage) {
	n := min(s.ReadFloatArray("points", nil), 2*maxReplayPoints)
	if n < 2 {
		return
	}
	vals := make([]float64, n)
	n = s.ReadFloatArray("points", vals) / 2
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(vals[2*i], vals[2*i+1])
	}

	saved := *m
	opts := m.snap().Options
	m.snap().Options = 0
	m2d := m.Session.Xform.ModelToDisplay()
	at := func(state GestureState, pt geom.Point, start bool) {
		m.LastPt, m.LastPtM = m.Point, m.PointM
		m.Point, m.PointM = pt.Transform(m2d), pt
		if start {
			m.StartPt, m.StartPtM = m.Point, m.PointM
			m.LastPt, m.LastPtM = m.Point, m.PointM
		}
		m.State = state
	}

	if s.ReadBool("multiMoved", false) {
		at(GestureBegan, pts[0], true)
		d.outer.TouchBegan(m)
		for _, pt := range pts[1:] {
			at(GestureMoved, pt, false)
			d.outer.TouchMoved(m)
		}
		at(GestureEnded, pts[len(pts)-1], false)
		d.outer.TouchEnded(m)
	} else {
		for i := 0; i+1 < len(pts); i += 2 {
			at(GestureBegan, pts[i], true)
			d.outer.TouchBegan(m)
			at(GestureMoved, pts[i+1], false)
			d.outer.TouchMoved(m)
			at(GestureEnded, pts[i+1], false)
			d.outer.TouchEnded(m)
		}
	}

	if m.Session.cmd == d.outer {
		d.outer.Cancel(m)
	}
	m.snap().Options = opts
	*m = saved
}

func (d *DrawBase) Cancel(m *Motion) bool {
	if d.step == 0 {
		return false
	}
	d.step = 0
	d.dynShape().Clear()
	m.snap().Clear()
	return true
}

func (d *DrawBase) BackStep(m *Motion) bool {
	if d.step > 1 {
		d.step--
		return true
	}
	return false
}

func (d *DrawBase) Draw(m *Motion, gs *graphics.Graphics) bool {
	if d.step > 0 && d.dyn != nil {
		d.dyn.Draw(0, gs, nil, -1)
	}
	m.snap().Draw(m, gs)
	return true
}

func (d *DrawBase) Click(m *Motion) bool {
	if d.step == 0 && d.clickSelect(m) {
		return true
	}
	return d.outer.TouchBegan(m) && d.outer.TouchEnded(m)
}

func (d *DrawBase) DoubleClick(m *Motion) bool { return false }

func (d *DrawBase) TouchBegan(m *Motion) bool { return d.touchBeganStep(m) }
func (d *DrawBase) TouchMoved(m *Motion) bool { return d.touchMovedStep(m) }
func (d *DrawBase) TouchEnded(m *Motion) bool { return d.touchEndedStep(m) }

// clickSelect picks the shape under the pointer instead of drawing, and
// ends the command when there is one.
func (d *DrawBase) clickSelect(m *Motion) bool {
	res := shape.NewHitResult()
	e := m.shapes().HitTest(m.DisplayMmToModelBox(2*m.Session.cfg.NearTolMM), &res, nil)
	if e == nil {
		return false
	}
	m.Session.newShapeID = e.ID()
	m.Session.endCommand()
	return true
}

// snapPoint snaps the pointer for the current step. The first step of a
// shape snaps the press position; later steps snap the current position
// as a handle of the shape in progress.
func (d *DrawBase) snapPoint(m *Motion, firstStep bool) geom.Point {
	orgpt := m.PointM
	var cur *shape.Element
	if firstStep {
		orgpt = m.StartPtM
	} else {
		cur = d.dyn
	}
	pt := m.snap().Snap(m, orgpt, cur, d.step)
	if firstStep || m.snap().SnappedType() >= SnapPoint {
		m.Session.lastSnapped = [2]geom.Point{pt, orgpt}
	}
	return pt
}

// ignoreStartPoint keeps the pointer from snapping onto the fixed end of
// the segment being drawn.
func (d *DrawBase) ignoreStartPoint(m *Motion, handle int) {
	m.snap().SetIgnoreStartPoint(d.dynShape().HandlePoint(handle))
}

func (d *DrawBase) mm(m *Motion, mm float64) float64 { return m.DisplayMmToModel(mm) }

func (d *DrawBase) minShape(m *Motion) float64 { return m.DisplayMmToModel(m.Session.cfg.MinShapeMM) }

// addShape commits a copy of the shape in progress and clears it.
func (d *DrawBase) addShape(m *Motion) *shape.Element {
	sp := d.dynShape()
	for _, f := range m.Session.NewShapeFlags {
		sp.SetFlag(f, true)
	}
	sp.Update()
	e := m.shapes().Add(d.dyn)
	sp.Clear()
	if d.name != "splines" {
		m.Session.newShapeID = e.ID()
	}
	if !d.customCtx {
		d.dyn.SetContext(m.Session.Context)
	}
	vgcore.Logger().Debug("shape added", "command", d.name, "id", e.ID(), "kind", e.Kind(), "extent", e.Shape().Extent())
	if d.oneShape {
		m.Session.endCommand()
	}
	return e
}

func (d *DrawBase) setStepPoint(m *Motion, step int, pt geom.Point) {
	if st, ok := d.outer.(Stepper); ok {
		st.SetStepPoint(m, step, pt)
		return
	}
	if step > 0 {
		d.dynShape().SetHandlePoint(step, pt, 0)
	}
}

// stepPointer is implemented by commands whose picked points are not
// handles of the shape in progress: the three-point arc and circle
// commands. DrawBase must not implement it.
type stepPointer interface {
	pickedPoint(i int) geom.Point
}

// stepPoint returns the point accepted at step i.
func (d *DrawBase) stepPoint(i int) geom.Point {
	if p, ok := d.outer.(stepPointer); ok {
		return p.pickedPoint(i)
	}
	return d.dynShape().HandlePoint(i)
}

func (d *DrawBase) maxStep() int {
	if st, ok := d.outer.(Stepper); ok {
		return st.MaxStep()
	}
	return 3
}

// touchBeganStep starts a shape at step 0 by placing all of its points at
// the snapped position.
func (d *DrawBase) touchBeganStep(m *Motion) bool {
	if d.step == 0 {
		d.step = 1
		pt := d.snapPoint(m, true)
		sp := d.dynShape()
		for i := range sp.PointCount() {
			sp.SetPoint(i, pt)
		}
		d.setStepPoint(m, 0, pt)
	} else {
		d.setStepPoint(m, d.step, d.snapPoint(m, false))
	}
	d.dynShape().Update()
	return true
}

func (d *DrawBase) touchMovedStep(m *Motion) bool {
	if d.step > 0 {
		d.setStepPoint(m, d.step, d.snapPoint(m, false))
		d.dynShape().Update()
	}
	return true
}

// touchEndedStep accepts the point of the current step when it is away
// from the previous one and commits the shape once MaxStep points are
// collected.
func (d *DrawBase) touchEndedStep(m *Motion) bool {
	if d.step == 0 {
		return false
	}
	sp := d.dynShape()
	pt := d.snapPoint(m, false)
	prev := d.stepPoint(d.step - 1)
	if !pt.Equal(prev, geom.NewTol(d.minShape(m), geom.DefaultTol.Vector)) {
		d.setStepPoint(m, d.step, pt)
		sp.Update()
		d.step++
		if d.step >= d.maxStep() {
			d.step = 0
			if !sp.Extent().IsEmpty(geom.NewTol(d.minShape(m), geom.DefaultTol.Vector)) {
				d.addShape(m)
			}
		}
	}
	m.snap().Clear()
	return true
}

// isRectLike reports whether sp is one of the rectangle kinds, whose
// second point is a diagonal corner and must not align with the first.
func isRectLike(sp shape.Shape) bool {
	switch sp.Kind() {
	case shape.KindRect, shape.KindEllipse, shape.KindRoundRect, shape.KindDiamond, shape.KindGrid:
		return true
	}
	return false
}
