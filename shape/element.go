package shape

import (
	"sync/atomic"

	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
)

// Element is a shape in a document: the geometry plus its drawing
// attributes, id and tag. Elements are owned by at most one List.
//
// The reference count lets several holders share an element; it starts at
// one and the last Release detaches it from its list.
type Element struct {
	shape  Shape
	ctx    graphics.Context
	id     int
	tag    int
	parent *List
	refs   atomic.Int32
}

// NewElement wraps sp with the default drawing context.
func NewElement(sp Shape) *Element {
	e := &Element{shape: sp, ctx: graphics.NewContext()}
	e.refs.Store(1)
	return e
}

func (e *Element) Shape() Shape                  { return e.shape }
func (e *Element) Context() graphics.Context     { return e.ctx }
func (e *Element) SetContext(c graphics.Context) { e.setContext(c, graphics.CopyAll) }
func (e *Element) ID() int                       { return e.id }
func (e *Element) Tag() int                      { return e.tag }
func (e *Element) SetTag(tag int)                { e.tag = tag }
func (e *Element) Parent() *List                 { return e.parent }
func (e *Element) Kind() Kind                    { return e.shape.Kind() }
func (e *Element) Retain()                       { e.refs.Add(1) }

// Release drops a reference and reports whether it was the last one.
func (e *Element) Release() bool {
	if e.refs.Add(-1) > 0 {
		return false
	}
	e.parent = nil
	return true
}

// CopyContext copies the attributes of c selected by mask.
func (e *Element) CopyContext(c graphics.Context, mask graphics.CopyMask) {
	e.setContext(c, mask)
}

// setContext applies c. Partial copies into a composite reach its
// children instead of the composite itself.
func (e *Element) setContext(c graphics.Context, mask graphics.CopyMask) {
	e.ctx.Copy(c, mask)
	if mask == graphics.CopyAll {
		return
	}
	if comp := compositeOf(e.shape); comp != nil {
		for child := range comp.list.All() {
			child.setContext(c, mask)
		}
	}
}

func (e *Element) setParent(l *List, id int) {
	e.parent = l
	e.id = id
}

// Clone returns a deep copy with a fresh reference count, still naming
// the same parent and id until it is added to a list.
func (e *Element) Clone() *Element {
	c := &Element{
		shape:  e.shape.Clone(),
		ctx:    e.ctx,
		id:     e.id,
		tag:    e.tag,
		parent: e.parent,
	}
	c.refs.Store(1)
	return c
}

// HasFillColor reports whether the element is drawn filled.
func (e *Element) HasFillColor() bool {
	return e.ctx.HasFillColor() && e.shape.IsClosed()
}

// Save writes the attributes and then the shape.
func (e *Element) Save(s Storage) bool {
	s.WriteInt("tag", e.tag)
	s.WriteInt("lineStyle", int(e.ctx.Style))
	s.WriteFloat("lineWidth", e.ctx.LineWidth)
	s.WriteInt("lineColor", int(e.ctx.LineColor))
	s.WriteInt("fillColor", int(e.ctx.FillColor))
	if e.ctx.StartArrow != graphics.ArrowNone {
		s.WriteInt("startArrayHead", int(e.ctx.StartArrow))
	}
	if e.ctx.EndArrow != graphics.ArrowNone {
		s.WriteInt("endArrayHead", int(e.ctx.EndArrow))
	}
	return e.shape.Save(s)
}

// Load reads the attributes and the shape, and updates the shape on
// success. Missing attributes take the document defaults: an opaque black
// line and no fill.
func (e *Element) Load(f *Factory, s Storage) bool {
	e.tag = s.ReadInt("tag", e.tag)

	var c graphics.Context
	c.Style = graphics.LineStyle(s.ReadInt("lineStyle", 0))
	c.LineWidth = s.ReadFloat("lineWidth", 0)
	c.AutoScale = true
	c.LineColor = graphics.Color(uint32(s.ReadInt("lineColor", int(graphics.Black))))
	c.FillColor = graphics.Color(uint32(s.ReadInt("fillColor", 0)))
	c.SetArrowHeads(
		graphics.ArrowHead(s.ReadInt("startArrayHead", 0)),
		graphics.ArrowHead(s.ReadInt("endArrayHead", 0)),
	)
	e.ctx = c

	if !e.shape.Load(f, s) {
		return false
	}
	e.shape.Update()
	return true
}

// Draw renders the element. A non-nil ctx overrides attributes of the
// element's own context: a negative width adds to the pen, a positive one
// replaces it by that many pixels, and a visible color, non-null style or
// fill replace the element's. Composites draw their children with ctx
// alone.
//
// mode 0 draws the document; higher modes draw feedback during editing.
// segment names the part being edited, as reported by HitTest.
func (e *Element) Draw(mode int, gs *graphics.Graphics, ctx *graphics.Context, segment int) bool {
	tmp := e.ctx
	if compositeOf(e.shape) != nil {
		if ctx != nil {
			tmp = *ctx
		} else {
			tmp = graphics.Context{Style: graphics.NullLine}
		}
	} else if ctx != nil {
		switch addw := ctx.LineWidth; {
		case addw < -0.1 && tmp.LineWidth <= 0:
			tmp.LineWidth += addw
		case addw > 0.1:
			tmp.LineWidth = -addw
			tmp.AutoScale = ctx.IsAutoScale()
		}
		if ctx.LineColor.A() > 0 {
			tmp.LineColor = ctx.LineColor
		}
		if !ctx.IsNullLine() {
			tmp.Style = ctx.Style
		}
		if ctx.HasFillColor() {
			tmp.FillColor = ctx.FillColor
		}
	}

	xf := gs.Transform()
	rect := e.shape.Extent().Transform(xf.ModelToDisplay())
	grow := 1 + gs.CalcPenWidth(tmp.LineWidth, tmp.IsAutoScale())/2
	rect = rect.Inflate(grow, grow)
	clip := gs.ClipBox()
	if !clip.IsNull() && !rect.IsIntersect(clip) {
		return false
	}
	return drawShape(e.shape, mode, gs, &tmp, segment)
}

// HitTest is a convenience for hit-testing the shape with a fresh result.
func (e *Element) HitTest(pt geom.Point, tol float64) (float64, HitResult) {
	res := NewHitResult()
	res.Dist = e.shape.HitTest(pt, tol, &res)
	return res.Dist, res
}
