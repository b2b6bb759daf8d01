package graphics

import (
	"math"
	"sync"
	"sync/atomic"

	"honnef.co/go/vgcore/geom"
)

// clipInflate is how far, in pixels, the culling box extends past the clip
// box so that wide pens at the border are not cut off.
const clipInflate = 10

// rayMul extends rays and beelines far enough to cross any view.
const rayMul = 1e5

// maxDrawPoints bounds the points of one polyline or Bézier draw call.
const maxDrawPoints = 0x2000

type clipState struct {
	clipBox             geom.Box
	rectDraw, rectDrawM geom.Box
	rectDrawW           geom.Box
}

// Graphics translates model geometry into [Canvas] calls. It owns the view
// [Transform], culls against the clip box and converts line widths into
// pixels.
//
// A Graphics draws on one canvas at a time, between BeginPaint and
// EndPaint. StopDrawing may be called from any goroutine to make the
// current paint return early.
type Graphics struct {
	xf     *Transform
	canvas Canvas

	// ctx is the pen and brush last sent to the canvas.
	ctx      Context
	penSet   bool
	brushSet bool

	bkColor        Color
	phase          float64
	maxPenWidth    float64
	minPenWidth    float64
	penWidthFactor float64
	grayMode       bool

	stopping atomic.Int32

	clipBox0     geom.Box
	clipBox      geom.Box
	rectDraw     geom.Box
	rectDrawM    geom.Box
	rectDrawW    geom.Box
	rectDrawMaxM geom.Box
	rectDrawMaxW geom.Box
	clipStack    []clipState
}

// New returns a Graphics drawing through xf. A nil xf gets a fresh y-down
// transform.
func New(xf *Transform) *Graphics {
	if xf == nil {
		xf = NewTransform(true)
	}
	return &Graphics{
		xf:             xf,
		bkColor:        White,
		phase:          -1,
		maxPenWidth:    100,
		minPenWidth:    1,
		penWidthFactor: 1,
	}
}

// Transform returns the view transform. Changes to it take effect at the
// next BeginPaint.
func (gs *Graphics) Transform() *Transform { return gs.xf }

// SetPenWidthFactor scales pixel line widths. Factors outside (0.1, 10) are
// ignored.
func (gs *Graphics) SetPenWidthFactor(factor float64) {
	if factor > 0.1 && factor < 10 {
		gs.penWidthFactor = factor
	}
}

func (gs *Graphics) PenWidthFactor() float64 { return gs.penWidthFactor }

// SetPhaseEnabled turns the marching dash phase on or off and reports the
// previous state.
func (gs *Graphics) SetPhaseEnabled(enabled bool) bool {
	old := gs.phase > 0
	if enabled {
		gs.phase = math.Abs(gs.phase)
	} else {
		gs.phase = -math.Abs(gs.phase)
	}
	return old
}

// BeginPaint starts drawing on canvas, clipped to clip in display
// coordinates. An empty clip means the whole view. It fails if a paint is
// already in progress or drawing has been stopped.
func (gs *Graphics) BeginPaint(canvas Canvas, clip geom.Box) bool {
	if canvas == nil || gs.canvas != nil || gs.IsStopping() {
		return false
	}
	gs.canvas = canvas
	gs.penSet, gs.brushSet = false, false

	phase := math.Abs(gs.phase)
	if phase < 1e4 {
		phase += 0.5
	} else {
		phase = 0.5
	}
	if gs.phase < 0 {
		phase = -phase
	}
	gs.phase = phase

	gs.clipBox0 = clip
	if clip.IsEmpty(geom.DefaultTol) {
		gs.clipBox0 = gs.xf.WndRect()
	}
	gs.clipBox = gs.clipBox0
	gs.rectDraw = gs.clipBox0.Inflate(clipInflate, clipInflate)
	gs.zoomChanged()
	gs.clipStack = gs.clipStack[:0]
	return true
}

func (gs *Graphics) zoomChanged() {
	gs.rectDrawM = gs.rectDraw.Transform(gs.xf.DisplayToModel())
	gs.rectDrawMaxM = gs.xf.WndRectM()
	gs.rectDrawW = gs.rectDrawM.Transform(gs.xf.ModelToWorld())
	gs.rectDrawMaxW = gs.rectDrawMaxM.Transform(gs.xf.ModelToWorld())
}

// EndPaint finishes the current paint. Unbalanced SaveClip calls are
// restored here.
func (gs *Graphics) EndPaint() {
	for len(gs.clipStack) > 0 {
		gs.RestoreClip()
	}
	gs.canvas = nil
}

func (gs *Graphics) IsDrawing() bool { return gs.canvas != nil }

func (gs *Graphics) IsStopping() bool { return gs.stopping.Load() > 0 }

// StopDrawing requests that the current paint stop as soon as possible, or
// clears the request.
func (gs *Graphics) StopDrawing(stop bool) {
	if stop {
		gs.stopping.CompareAndSwap(0, 1)
	} else {
		gs.stopping.Store(0)
	}
}

// Canvas returns the canvas being drawn on, or nil.
func (gs *Graphics) Canvas() Canvas { return gs.canvas }

// ClipModel returns the culling box in model coordinates.
func (gs *Graphics) ClipModel() geom.Box { return gs.rectDrawM }

// ClipWorld returns the culling box in world coordinates.
func (gs *Graphics) ClipWorld() geom.Box { return gs.rectDrawW }

// ClipBox returns the clip box in display coordinates.
func (gs *Graphics) ClipBox() geom.Box { return gs.clipBox }

// SaveClip pushes the clip state. It must be paired with RestoreClip.
func (gs *Graphics) SaveClip() bool {
	if gs.canvas == nil || !gs.canvas.SaveClip() {
		return false
	}
	gs.clipStack = append(gs.clipStack, clipState{
		clipBox:   gs.clipBox,
		rectDraw:  gs.rectDraw,
		rectDrawM: gs.rectDrawM,
		rectDrawW: gs.rectDrawW,
	})
	return true
}

// RestoreClip pops the state pushed by SaveClip. Extra calls are ignored.
func (gs *Graphics) RestoreClip() {
	n := len(gs.clipStack)
	if n == 0 {
		return
	}
	st := gs.clipStack[n-1]
	gs.clipStack = gs.clipStack[:n-1]
	gs.clipBox = st.clipBox
	gs.rectDraw = st.rectDraw
	gs.rectDrawM = st.rectDrawM
	gs.rectDrawW = st.rectDrawW
	if gs.canvas != nil {
		gs.canvas.RestoreClip()
	}
}

// SetClipBox narrows the clip to rc, in display coordinates, intersected
// with the clip box of the paint. It fails if nothing would be visible.
func (gs *Graphics) SetClipBox(rc geom.Box) bool {
	if !gs.IsDrawing() || gs.IsStopping() {
		return false
	}
	rect := rc.Normalize().Intersect(gs.clipBox0)
	if rect.IsEmpty(geom.DefaultTol) {
		return false
	}
	if !rect.Equal(gs.clipBox, geom.DefaultTol) {
		gs.applyClip(rect)
	}
	return true
}

// SetClipWorld is SetClipBox with a box in world coordinates.
func (gs *Graphics) SetClipWorld(rectW geom.Box) bool {
	if !gs.IsDrawing() || rectW.IsEmpty(geom.DefaultTol) {
		return false
	}
	box := rectW.Transform(gs.xf.WorldToDisplay()).Intersect(gs.clipBox0)
	if box.IsEmpty(geom.Tol{Point: 1}) {
		return false
	}
	if !box.Equal(gs.clipBox, geom.DefaultTol) {
		gs.applyClip(box)
	}
	return true
}

func (gs *Graphics) applyClip(rect geom.Box) {
	gs.clipBox = rect
	gs.rectDraw = rect.Inflate(clipInflate, clipInflate)
	gs.rectDrawM = gs.rectDraw.Transform(gs.xf.DisplayToModel())
	gs.rectDrawW = gs.rectDrawM.Transform(gs.xf.ModelToWorld())
	gs.canvas.ClipRect(rect.XMin, rect.YMin, rect.Width(), rect.Height())
}

func (gs *Graphics) IsGrayMode() bool      { return gs.grayMode }
func (gs *Graphics) SetGrayMode(gray bool) { gs.grayMode = gray }
func (gs *Graphics) BkColor() Color        { return gs.bkColor }
func (gs *Graphics) SetBkColor(c Color)    { gs.bkColor = c }

// CalcPenColor applies gray mode to c.
func (gs *Graphics) CalcPenColor(c Color) Color {
	if gs.grayMode {
		return c.Gray()
	}
	return c
}

// CalcPenWidth converts a context line width into pixels. Positive widths
// are hundredths of a millimetre, negative widths are pixels scaled by the
// pen width factor, and zero is the thinnest pen. The result is clamped to
// the pen width range.
func (gs *Graphics) CalcPenWidth(lineWidth float64, useViewScale bool) float64 {
	w := min(gs.minPenWidth, 1)
	if gs.maxPenWidth <= 1 {
		lineWidth = 0
	}
	switch {
	case lineWidth > 0:
		_, dpiY := gs.xf.DPI()
		w = lineWidth / 2540 * dpiY
		if useViewScale {
			w *= gs.xf.ViewScale()
		}
	case lineWidth < 0:
		if lineWidth < -1e3 {
			w = 1e3 - lineWidth
		} else {
			w = -lineWidth * gs.penWidthFactor
		}
		if useViewScale {
			w *= gs.xf.ViewScale()
		}
	}
	return max(min(w, gs.maxPenWidth), gs.minPenWidth)
}

// SetMaxPenWidth sets the pen width range in pixels. Negative arguments
// keep the current value.
func (gs *Graphics) SetMaxPenWidth(pixels, minw float64) {
	if minw < 0 {
		minw = gs.minPenWidth
	}
	switch {
	case pixels < 0:
		pixels = gs.maxPenWidth
	case pixels < minw:
		pixels = minw
	case pixels > 1024:
		pixels = 1024
	}
	gs.maxPenWidth = pixels
	gs.minPenWidth = minw
}

// setPen sends ctx's pen to the canvas if it differs from the last one. It
// reports whether the pen draws anything.
func (gs *Graphics) setPen(ctx *Context) bool {
	changed := !gs.penSet
	if ctx != nil {
		if math.Abs(ctx.LineWidth-gs.ctx.LineWidth) > 1e-7 || ctx.IsAutoScale() != gs.ctx.IsAutoScale() {
			gs.ctx.LineWidth, gs.ctx.AutoScale = ctx.LineWidth, ctx.AutoScale
			changed = true
		}
		if ctx.LineColor != gs.ctx.LineColor {
			gs.ctx.LineColor = ctx.LineColor
			changed = true
		}
		if ctx.Style != gs.ctx.Style {
			gs.ctx.Style = ctx.Style
			changed = true
		}
	}
	if gs.canvas != nil && changed {
		gs.penSet = true
		w := gs.CalcPenWidth(gs.ctx.LineWidth, gs.ctx.IsAutoScale())
		gs.canvas.SetPen(gs.CalcPenColor(gs.ctx.LineColor), w, gs.ctx.LineStyleOrNull(), max(gs.phase, 0))
	}
	return !gs.ctx.IsNullLine()
}

func (gs *Graphics) setBrush(ctx *Context) bool {
	changed := !gs.brushSet
	if ctx != nil && ctx.FillColor != gs.ctx.FillColor {
		gs.ctx.FillColor = ctx.FillColor
		changed = true
	}
	if gs.canvas != nil && changed {
		gs.brushSet = true
		gs.canvas.SetBrush(gs.CalcPenColor(gs.ctx.FillColor))
	}
	return gs.ctx.HasFillColor()
}

func (gs *Graphics) m2d() geom.Affine { return gs.xf.ModelToDisplay() }

func (gs *Graphics) ready() bool {
	return gs.canvas != nil && !gs.IsStopping()
}

func (gs *Graphics) rawLine(ctx *Context, p1, p2 geom.Point) bool {
	if !gs.ready() || !gs.setPen(ctx) || p1.IsNaN() || p2.IsNaN() {
		return false
	}
	gs.canvas.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	return true
}

func (gs *Graphics) rawLines(ctx *Context, pxs []geom.Point) bool {
	if !gs.ready() || !gs.setPen(ctx) || len(pxs) == 0 {
		return false
	}
	gs.canvas.BeginPath()
	for i, pt := range pxs {
		if pt.IsNaN() {
			return false
		}
		if i == 0 {
			gs.canvas.MoveTo(pt.X, pt.Y)
		} else {
			gs.canvas.LineTo(pt.X, pt.Y)
		}
	}
	gs.canvas.DrawPath(true, false)
	return true
}

func (gs *Graphics) rawBeziers(ctx *Context, pxs []geom.Point, closed, fill bool) bool {
	if !gs.ready() || len(pxs) == 0 {
		return false
	}
	usePen := gs.setPen(ctx)
	useBrush := fill && closed && gs.setBrush(ctx)
	if !usePen && !useBrush {
		return false
	}
	gs.canvas.BeginPath()
	if pxs[0].IsNaN() {
		return false
	}
	gs.canvas.MoveTo(pxs[0].X, pxs[0].Y)
	for i := 1; i+2 < len(pxs) && !gs.IsStopping(); i += 3 {
		c1, c2, end := pxs[i], pxs[i+1], pxs[i+2]
		if c1.IsNaN() || c2.IsNaN() || end.IsNaN() {
			return false
		}
		gs.canvas.BezierTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
	}
	if closed {
		gs.canvas.ClosePath()
	}
	gs.canvas.DrawPath(usePen, useBrush)
	return true
}

func (gs *Graphics) rawPolygon(ctx *Context, pxs []geom.Point) bool {
	if !gs.ready() || len(pxs) == 0 {
		return false
	}
	usePen := gs.setPen(ctx)
	useBrush := gs.setBrush(ctx)
	gs.canvas.BeginPath()
	for i, pt := range pxs {
		if pt.IsNaN() {
			return false
		}
		if i == 0 {
			gs.canvas.MoveTo(pt.X, pt.Y)
		} else {
			gs.canvas.LineTo(pt.X, pt.Y)
		}
	}
	gs.canvas.ClosePath()
	gs.canvas.DrawPath(usePen, useBrush)
	return true
}

func (gs *Graphics) rawEllipse(ctx *Context, x, y, w, h float64) bool {
	usePen := gs.setPen(ctx)
	useBrush := gs.setBrush(ctx)
	if !gs.ready() || math.IsNaN(x+y+w+h) {
		return false
	}
	gs.canvas.DrawEllipse(x, y, w, h, usePen, useBrush)
	return true
}

func (gs *Graphics) rawRect(ctx *Context, x, y, w, h float64) bool {
	usePen := gs.setPen(ctx)
	useBrush := gs.setBrush(ctx)
	if !gs.ready() || math.IsNaN(x+y+w+h) {
		return false
	}
	gs.canvas.DrawRect(x, y, w, h, usePen, useBrush)
	return true
}

// toDisplay transforms pts into a new slice of display points.
func (gs *Graphics) toDisplay(pts []geom.Point) []geom.Point {
	m := gs.m2d()
	pxs := make([]geom.Point, len(pts))
	for i, pt := range pts {
		pxs[i] = pt.Transform(m)
	}
	return pxs
}

// thin drops display points within 2 pixels of the previous kept point.
func thin(pxs []geom.Point) []geom.Point {
	out := pxs[:0]
	var last geom.Point
	for i, pt := range pxs {
		if i == 0 || math.Abs(last.X-pt.X) > 2 || math.Abs(last.Y-pt.Y) > 2 {
			last = pt
			out = append(out, pt)
		}
	}
	return out
}

// DrawLine draws a segment given in model coordinates.
func (gs *Graphics) DrawLine(ctx *Context, start, end geom.Point) bool {
	if !gs.rectDrawM.IsIntersect(geom.NewBox(start, end)) {
		return false
	}
	p1, p2, ok := geom.ClipLine(start.Transform(gs.m2d()), end.Transform(gs.m2d()), gs.rectDraw)
	if !ok {
		return false
	}
	return gs.rawLine(ctx, p1, p2)
}

// DrawRayline draws the ray from start through end.
func (gs *Graphics) DrawRayline(ctx *Context, start, end geom.Point) bool {
	v := end.Sub(start).Mul(rayMul)
	p1, p2, ok := geom.ClipLine(start.Transform(gs.m2d()), end.Translate(v).Transform(gs.m2d()), gs.rectDraw)
	if !ok {
		return false
	}
	return gs.rawLine(ctx, p1, p2)
}

// DrawBeeline draws the infinite line through start and end.
func (gs *Graphics) DrawBeeline(ctx *Context, start, end geom.Point) bool {
	v := end.Sub(start).Mul(rayMul)
	p1, p2, ok := geom.ClipLine(start.Translate(v.Negate()).Transform(gs.m2d()), end.Translate(v).Transform(gs.m2d()), gs.rectDraw)
	if !ok {
		return false
	}
	return gs.rawLine(ctx, p1, p2)
}

// DrawLines draws an open polyline. Parts outside the view are clipped away
// and the visible runs drawn separately.
func (gs *Graphics) DrawLines(ctx *Context, pts []geom.Point) bool {
	if len(pts) < 2 || gs.IsStopping() {
		return false
	}
	pts = pts[:min(len(pts), maxDrawPoints)]
	extent := geom.BoxOfPoints(pts...)
	if !gs.rectDrawM.IsIntersect(extent) {
		return false
	}
	pxs := gs.toDisplay(pts)
	if gs.rectDrawMaxM.Contains(extent) {
		return gs.rawLines(ctx, thin(pxs))
	}

	ret := false
	var run []geom.Point
	flush := func() {
		if len(run) > 1 {
			ret = gs.rawLines(ctx, thin(run)) || ret
		}
		run = nil
	}
	for i := 0; i+1 < len(pxs); i++ {
		p1, p2, ok := geom.ClipLine(pxs[i], pxs[i+1], gs.rectDraw)
		if !ok {
			flush()
			continue
		}
		if len(run) == 0 || p1 != pxs[i] {
			flush()
			run = append(run, p1)
		}
		run = append(run, p2)
		if p2 != pxs[i+1] {
			flush()
		}
	}
	flush()
	return ret
}

// DrawPolygon draws and fills a closed polygon.
func (gs *Graphics) DrawPolygon(ctx *Context, pts []geom.Point) bool {
	if len(pts) < 2 || gs.IsStopping() {
		return false
	}
	pts = pts[:min(len(pts), maxDrawPoints)]
	if !gs.rectDrawM.IsIntersect(geom.BoxOfPoints(pts...)) {
		return false
	}
	c := gs.ctxOrCurrent(ctx)
	if c.IsNullLine() && !c.HasFillColor() {
		return false
	}
	pxs := gs.toDisplay(pts)
	if len(pxs) > 4 {
		pxs = thin(pxs)
	}
	if len(pxs) == 4 && isAxisRect(pxs) {
		rc := geom.NewBox(pxs[0], pxs[2])
		return gs.rawRect(&c, rc.XMin, rc.YMin, rc.Width(), rc.Height())
	}
	return gs.rawPolygon(&c, pxs)
}

func isAxisRect(p []geom.Point) bool {
	eq := func(a, b float64) bool { return math.Abs(a-b) < geom.MinDist }
	return eq(p[0].X, p[3].X) && eq(p[1].X, p[2].X) && eq(p[0].Y, p[1].Y) && eq(p[2].Y, p[3].Y)
}

func (gs *Graphics) ctxOrCurrent(ctx *Context) Context {
	if ctx != nil {
		return *ctx
	}
	return gs.ctx
}

// DrawRect draws a box given in model coordinates.
func (gs *Graphics) DrawRect(ctx *Context, rect geom.Box) bool {
	if rect.IsEmpty(geom.DefaultTol) {
		return false
	}
	pts := rect.Corners()
	return gs.DrawPolygon(ctx, pts[:])
}

// DrawBeziers draws a run of cubic Béziers: a start point followed by groups
// of two controls and an end point.
func (gs *Graphics) DrawBeziers(ctx *Context, pts []geom.Point, closed bool) bool {
	if len(pts) < 4 || gs.IsStopping() {
		return false
	}
	n := min(len(pts), maxDrawPoints)
	n = 1 + (n-1)/3*3
	pts = pts[:n]
	extent := geom.BoxOfPoints(pts...)
	if !gs.rectDrawM.IsIntersect(extent) {
		return false
	}
	pxs := gs.toDisplay(pts)
	if closed || gs.rectDrawMaxM.Contains(extent) {
		return gs.rawBeziers(ctx, pxs, closed, closed)
	}

	// Draw only the runs of segments whose control boxes are visible.
	ret := false
	for i := 0; i+3 < len(pxs); {
		for i+3 < len(pxs) && !gs.rectDraw.IsIntersect(geom.BoxOfPoints(pxs[i:i+4]...)) {
			i += 3
		}
		si, ei := i, i
		for i+3 < len(pxs) && gs.rectDraw.IsIntersect(geom.BoxOfPoints(pxs[i:i+4]...)) {
			i += 3
			ei = i
		}
		if ei > si {
			ret = gs.rawBeziers(ctx, pxs[si:ei+1], false, false) || ret
		}
	}
	return ret
}

// DrawSplines draws a cubic spline given by knots and the Bézier arms in
// knotvs.
func (gs *Graphics) DrawSplines(ctx *Context, knots []geom.Point, knotvs []geom.Vec2, closed bool) bool {
	if len(knots) < 2 || len(knotvs) < len(knots) {
		return false
	}
	return gs.DrawBeziers(ctx, geom.CubicSplinesToBeziers(knots, knotvs, closed, false), closed)
}

// DrawHermiteSplines is DrawSplines with knotvs holding tangents, as
// computed by [geom.CubicSplines].
func (gs *Graphics) DrawHermiteSplines(ctx *Context, knots []geom.Point, knotvs []geom.Vec2, closed bool) bool {
	if len(knots) < 2 || len(knotvs) < len(knots) {
		return false
	}
	return gs.DrawBeziers(ctx, geom.CubicSplinesToBeziers(knots, knotvs, closed, true), closed)
}

// DrawBSplines draws a uniform cubic B-spline through its control points.
func (gs *Graphics) DrawBSplines(ctx *Context, ctlpts []geom.Point, closed bool) bool {
	pts := geom.BSplinesToBeziers(ctlpts, closed)
	if len(pts) < 4 {
		return false
	}
	return gs.DrawBeziers(ctx, pts, closed)
}

// DrawQuadSplines draws the quadratic spline whose segments join at the
// midpoints of the control polygon.
func (gs *Graphics) DrawQuadSplines(ctx *Context, ctlpts []geom.Point, closed bool) bool {
	n := len(ctlpts)
	if n < 3 || !gs.ready() {
		return false
	}
	if !gs.rectDrawM.IsIntersect(geom.BoxOfPoints(ctlpts...)) {
		return false
	}
	m := gs.m2d()
	usePen := gs.setPen(ctx)
	useBrush := closed && gs.setBrush(ctx)
	gs.canvas.BeginPath()
	end := n - 2
	if closed {
		end = n
	}
	for i := range end {
		if i == 0 {
			start := ctlpts[0]
			if closed {
				start = ctlpts[0].Midpoint(ctlpts[1])
			}
			pt := start.Transform(m)
			gs.canvas.MoveTo(pt.X, pt.Y)
		}
		cp := ctlpts[(i+1)%n].Transform(m)
		var mid geom.Point
		if closed || i+3 < n {
			mid = ctlpts[(i+1)%n].Midpoint(ctlpts[(i+2)%n]).Transform(m)
		} else {
			mid = ctlpts[i+2].Transform(m)
		}
		gs.canvas.QuadTo(cp.X, cp.Y, mid.X, mid.Y)
	}
	if closed {
		gs.canvas.ClosePath()
	}
	gs.canvas.DrawPath(usePen, useBrush)
	return true
}

// DrawArc draws an elliptical arc. A zero ry means rx.
func (gs *Graphics) DrawArc(ctx *Context, center geom.Point, rx, ry, startAngle, sweepAngle float64) bool {
	if rx < geom.MinDist || math.Abs(sweepAngle) < 1e-5 || gs.IsStopping() {
		return false
	}
	if ry < geom.MinDist {
		ry = rx
	}
	if !gs.rectDrawM.IsIntersect(geom.BoxFromCenter(center, 2*rx, 2*ry)) {
		return false
	}
	pts := geom.ArcToBezier(center, rx, ry, startAngle, sweepAngle)
	return len(pts) > 3 && gs.rawBeziers(ctx, gs.toDisplay(pts), false, false)
}

// DrawArc3P draws the arc through three points.
func (gs *Graphics) DrawArc3P(ctx *Context, start, mid, end geom.Point) bool {
	arc, ok := geom.Arc3P(start, mid, end)
	return ok && gs.DrawArc(ctx, arc.Center, arc.Radius, arc.Radius, arc.StartAngle, arc.SweepAngle)
}

// DrawPie draws an arc closed through its center.
func (gs *Graphics) DrawPie(ctx *Context, center geom.Point, rx, ry, startAngle, sweepAngle float64) bool {
	if rx < geom.MinDist || math.Abs(sweepAngle) < 1e-5 || !gs.ready() {
		return false
	}
	if ry < geom.MinDist {
		ry = rx
	}
	if !gs.rectDrawM.IsIntersect(geom.BoxFromCenter(center, 2*rx, 2*ry)) {
		return false
	}
	pts := geom.ArcToBezier(center, rx, ry, startAngle, sweepAngle)
	if len(pts) < 4 {
		return false
	}
	pxs := gs.toDisplay(pts)
	cen := center.Transform(gs.m2d())

	usePen := gs.setPen(ctx)
	useBrush := gs.setBrush(ctx)
	gs.canvas.BeginPath()
	gs.canvas.MoveTo(cen.X, cen.Y)
	gs.canvas.LineTo(pxs[0].X, pxs[0].Y)
	for i := 1; i+2 < len(pxs); i += 3 {
		gs.canvas.BezierTo(pxs[i].X, pxs[i].Y, pxs[i+1].X, pxs[i+1].Y, pxs[i+2].X, pxs[i+2].Y)
	}
	gs.canvas.ClosePath()
	gs.canvas.DrawPath(usePen, useBrush)
	return true
}

// DrawEllipse draws an axis-aligned ellipse in model coordinates. A zero ry
// draws a circle on screen.
func (gs *Graphics) DrawEllipse(ctx *Context, center geom.Point, rx, ry float64) bool {
	if rx < geom.MinDist || gs.IsStopping() {
		return false
	}
	m := gs.m2d()
	if ry < geom.MinDist {
		ry = math.Abs(geom.Vec(rx, rx).Transform(m).X)
		inv, _ := m.Invert()
		ry = math.Abs(geom.Vec(ry, ry).Transform(inv).Y)
	}
	if !gs.rectDrawM.IsIntersect(geom.BoxFromCenter(center, 2*rx, 2*ry)) {
		return false
	}
	if math.Abs(m.N1) < geom.MinDist && math.Abs(m.N2) < geom.MinDist {
		cen := center.Transform(m)
		rx *= math.Abs(m.N0)
		ry *= math.Abs(m.N3)
		return gs.rawEllipse(ctx, cen.X-rx, cen.Y-ry, 2*rx, 2*ry)
	}
	pts := geom.EllipseToBezier(center, rx, ry)
	return gs.rawBeziers(ctx, gs.toDisplay(pts[:]), true, true)
}

// DrawCircle draws a circle of radius r.
func (gs *Graphics) DrawCircle(ctx *Context, center geom.Point, r float64) bool {
	return gs.DrawEllipse(ctx, center, r, r)
}

// DrawRoundRect draws a rectangle with elliptical corners. A zero ry means
// rx; a zero rx draws square corners.
func (gs *Graphics) DrawRoundRect(ctx *Context, rect geom.Box, rx, ry float64) bool {
	if rect.IsEmpty(geom.DefaultTol) || gs.IsStopping() {
		return false
	}
	if ry < geom.MinDist {
		ry = rx
	}
	if !gs.rectDrawM.IsIntersect(rect) {
		return false
	}
	if rx < geom.MinDist {
		return gs.DrawRect(ctx, rect)
	}
	bez := geom.RoundRectToBeziers(rect, rx, ry)
	pxs := gs.toDisplay(bez[:])
	if !gs.ready() {
		return false
	}
	usePen := gs.setPen(ctx)
	useBrush := gs.setBrush(ctx)
	gs.canvas.BeginPath()
	gs.canvas.MoveTo(pxs[0].X, pxs[0].Y)
	for i := 0; i < 16; i += 4 {
		if i > 0 {
			gs.canvas.LineTo(pxs[i].X, pxs[i].Y)
		}
		gs.canvas.BezierTo(pxs[i+1].X, pxs[i+1].Y, pxs[i+2].X, pxs[i+2].Y, pxs[i+3].X, pxs[i+3].Y)
	}
	gs.canvas.ClosePath()
	gs.canvas.DrawPath(usePen, useBrush)
	return true
}

// DrawPath draws a path in model coordinates, filling closed figures when
// fill is set. A single open figure gets the arrowheads of ctx.
func (gs *Graphics) DrawPath(ctx *Context, path *geom.Path, fill bool) bool {
	if ctx != nil && ctx.HasArrowHead() && path.SubPathCount() == 1 && !path.IsClosed() {
		pathw := path.Clone()
		pathw.Transform(gs.m2d())
		ctx2 := *ctx
		ctx2.SetNoFillColor()
		ctx2.SetArrowHeads(ArrowNone, ArrowNone)
		return gs.drawPathWithArrowHeads(ctx2, pathw, ctx.StartArrow, ctx.EndArrow)
	}
	return gs.drawPath(ctx, path, fill, gs.m2d())
}

func (gs *Graphics) drawPath(ctx *Context, path *geom.Path, fill bool, m geom.Affine) bool {
	n := path.Len()
	if n == 0 || !gs.ready() {
		return false
	}
	pts := path.Points()
	types := path.Types()
	ident := m.IsIdentity()
	tr := func(pt geom.Point) geom.Point {
		if ident {
			return pt
		}
		return pt.Transform(m)
	}

	gs.canvas.BeginPath()
	for i := 0; i < n; i++ {
		last := i
		switch types[i].Kind() {
		case geom.MoveTo:
			pt := tr(pts[i])
			gs.canvas.MoveTo(pt.X, pt.Y)
		case geom.LineTo:
			pt := tr(pts[i])
			gs.canvas.LineTo(pt.X, pt.Y)
		case geom.BezierTo:
			if i+2 >= n {
				return false
			}
			c1, c2, end := tr(pts[i]), tr(pts[i+1]), tr(pts[i+2])
			gs.canvas.BezierTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			last = i + 2
		case geom.QuadTo:
			if i+1 >= n {
				return false
			}
			cp, end := tr(pts[i]), tr(pts[i+1])
			gs.canvas.QuadTo(cp.X, cp.Y, end.X, end.Y)
			last = i + 1
		default:
			return false
		}
		i = last
		if types[i] != geom.MoveTo && types[i]&geom.CloseFigure != 0 {
			gs.canvas.ClosePath()
		}
	}
	usePen := gs.setPen(ctx)
	useBrush := fill && gs.setBrush(ctx)
	gs.canvas.DrawPath(usePen, useBrush)
	return true
}

type arrowHeadShape struct {
	fill    bool
	xoffset float64
	path    *geom.Path
}

// arrowHeads are unit glyphs pointing along -x with the tip at the origin.
var arrowHeads = sync.OnceValue(func() []arrowHeadShape {
	defs := []struct {
		fill    bool
		xoffset float64
		d       string
	}{
		{true, 1.87, "M1.87 0L3 1.2 0 0 3 -1.2Z"},
		{false, 0, "M3 1.2L0 0 3 -1.2"},
		{false, 0, "M0 1.5L0 -1.5"},
		{false, 0, "M1.5 -1.5L-1.5 1.5"},
		{true, 0.8, "M0.8 0A0.8 0.8 0 0 0 -0.8 0A0.8 0.8 0 0 0 0.8 0Z"},
		{false, 0.8, "M0.8 0A0.8 0.8 0 0 0 -0.8 0A0.8 0.8 0 0 0 0.8 0Z"},
	}
	out := make([]arrowHeadShape, len(defs))
	for i, d := range defs {
		p, err := geom.ParseSVGPath(d.d)
		if err != nil {
			panic(err)
		}
		out[i] = arrowHeadShape{d.fill, d.xoffset, p}
	}
	return out
})

func (gs *Graphics) drawArrowHead(ctx Context, path *geom.Path, kind ArrowHead, px, scale float64) {
	head := arrowHeads()[kind-1]
	xoffset := head.xoffset * scale
	startpt := path.StartPoint()
	path.TrimStart(startpt, xoffset+px/2)

	var dir geom.Vec2
	if xoffset < geom.MinDist {
		dir = path.StartTangent()
	} else {
		dir = path.StartPoint().Sub(startpt)
	}
	m := geom.Scale(scale, scale).
		Then(geom.Rotate(dir.Angle())).
		Then(geom.Translate(geom.Vec2(startpt)))

	glyph := head.path.Clone()
	glyph.Transform(m)
	ctxhead := ctx
	if head.fill {
		ctxhead.FillColor = ctxhead.LineColor
		ctxhead.SetNullLine()
	}
	gs.drawPath(&ctxhead, glyph, ctxhead.HasFillColor(), geom.Identity)
}

// drawPathWithArrowHeads draws path, already in display coordinates, after
// trimming its ends to make room for the arrowheads.
func (gs *Graphics) drawPathWithArrowHeads(ctx Context, path *geom.Path, start, end ArrowHead) bool {
	px := gs.CalcPenWidth(ctx.LineWidth, ctx.IsAutoScale())
	scale := 0.5 * gs.xf.WorldToDisplayX(true) * (1 + max(0, (px-4)/5))

	if start > ArrowNone && start <= ArrowOpenedCircle {
		gs.drawArrowHead(ctx, path, start, px, scale)
	}
	if end > ArrowNone && end <= ArrowOpenedCircle {
		path = path.Reverse()
		gs.drawArrowHead(ctx, path, end, px, scale)
		path = path.Reverse()
	}
	return gs.drawPath(&ctx, path, false, geom.Identity)
}

// DrawHandle draws a handle glyph at a model point.
func (gs *Graphics) DrawHandle(pt geom.Point, kind HandleKind, angle float64) bool {
	if !gs.ready() || kind < 0 || pt.IsNaN() {
		return false
	}
	ptd := pt.Transform(gs.m2d())
	return gs.canvas.DrawHandle(ptd.X, ptd.Y, kind, angle)
}

// DrawImage draws a named bitmap centered at a model point, with its size in
// model units.
func (gs *Graphics) DrawImage(name string, center geom.Point, w, h, angle float64) bool {
	if !gs.ready() || name == "" || center.IsNaN() {
		return false
	}
	m := gs.m2d()
	ptd := center.Transform(m)
	size := geom.Vec(w, h).Transform(m)
	return gs.canvas.DrawBitmap(name, ptd.X, ptd.Y, math.Abs(size.X), math.Abs(size.Y), angle)
}

// DrawText draws text of height h, in model units, anchored at pt, and
// returns its width in model units.
func (gs *Graphics) DrawText(argb Color, text string, pt geom.Point, h float64, align int, angle float64) float64 {
	if !gs.ready() || text == "" || h <= 0 || pt.IsNaN() {
		return 0
	}
	ptd := pt.Transform(gs.m2d())
	w2d := gs.xf.WorldToDisplayY(true)
	if math.Abs(angle) > geom.MinDist {
		angle = geom.VecFromAngle(angle).Transform(gs.xf.ModelToWorld()).Angle()
	}
	if argb == Invalid {
		argb = Black
	}
	ctx := NewContext()
	ctx.FillColor = argb
	if !gs.setBrush(&ctx) {
		return 0
	}
	return gs.canvas.DrawTextAt(text, ptd.X, ptd.Y, h*w2d, align, angle) / w2d
}
