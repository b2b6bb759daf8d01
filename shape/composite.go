package shape

import (
	"math"

	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
)

// Composite is a shape made of the elements of its own list. Its points
// are those of the first child, and its handles are the handles of all
// children in order.
type Composite struct {
	Base
	list *List
}

// NewComposite returns an empty composite.
func NewComposite() *Composite {
	return &Composite{list: NewList(-1)}
}

func compositeOf(sp Shape) *Composite {
	switch c := sp.(type) {
	case *Composite:
		return c
	case *Group:
		return &c.Composite
	}
	return nil
}

func (c *Composite) Kind() Kind      { return KindComposite }
func (c *Composite) List() *List     { return c.list }
func (c *Composite) ShapeCount() int { return c.list.Len() }
func (c *Composite) IsCurve() bool   { return false }
func (c *Composite) IsClosed() bool  { return false }

// SetPoint does nothing; composites are edited through their children.
func (c *Composite) SetPoint(int, geom.Point) {}

func (c *Composite) PointCount() int {
	if h := c.list.Head(); h != nil {
		return h.shape.PointCount()
	}
	return 0
}

func (c *Composite) Point(i int) geom.Point {
	if h := c.list.Head(); h != nil {
		return h.shape.Point(i)
	}
	return geom.Point{}
}

func (c *Composite) Clone() Shape {
	n := &Composite{Base: c.Base}
	n.list = c.list.Clone()
	return n
}

func (c *Composite) Update() {
	c.setExtent(c.list.Extent())
}

func (c *Composite) Transform(aff geom.Affine) {
	c.list.Transform(aff)
	c.Update()
}

func (c *Composite) Clear() {
	c.list.Clear()
	c.clearBase()
}

// child returns the child owning composite handle i and its index there.
func (c *Composite) child(i int) (Shape, int) {
	n := 0
	for e := range c.list.All() {
		k := e.shape.HandleCount()
		if i < n+k {
			return e.shape, i - n
		}
		n += k
	}
	return nil, 0
}

func (c *Composite) HandleCount() int {
	n := 0
	for e := range c.list.All() {
		n += e.shape.HandleCount()
	}
	return n
}

func (c *Composite) HandlePoint(i int) geom.Point {
	if sp, j := c.child(i); sp != nil {
		return sp.HandlePoint(j)
	}
	return c.Extent().Center()
}

func (c *Composite) HandleType(i int) HandleType {
	if sp, j := c.child(i); sp != nil {
		return sp.HandleType(j)
	}
	return HandleNoSnap
}

func (c *Composite) IsHandleFixed(i int) bool {
	if sp, j := c.child(i); sp != nil {
		return sp.IsHandleFixed(j)
	}
	return true
}

// SetHandlePoint moves the whole composite so that handle i reaches pt.
func (c *Composite) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	return c.Offset(pt.Sub(c.HandlePoint(i)), -1)
}

func (c *Composite) Offset(v geom.Vec2, _ int) bool {
	n := 0
	for e := range c.list.All() {
		if e.shape.Offset(v, -1) {
			n++
		}
	}
	c.Update()
	return n > 0
}

// HitTest reports the nearest child; Segment is set to the child's id.
func (c *Composite) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	limits := geom.BoxFromCenter(pt, 2*tol, 0)
	res.Segment = 0
	res.Dist = math.MaxFloat64
	for e := range c.list.All() {
		if !limits.IsIntersect(e.shape.Extent()) {
			continue
		}
		tmp := NewHitResult()
		tmp.Mask = res.Mask
		d := e.shape.HitTest(pt, tol, &tmp)
		if res.Dist > d-geom.MinDist {
			tmp.Mask, tmp.IgnoreHandle = res.Mask, res.IgnoreHandle
			*res = tmp
			res.Dist = d
			res.Segment = e.id
		}
	}
	return res.Dist
}

func (c *Composite) HitTestBox(rect geom.Box) bool {
	res := NewHitResult()
	return c.list.HitTest(rect, &res, nil) != nil
}

func (c *Composite) Output(p *geom.Path) bool {
	ret := false
	for e := range c.list.All() {
		if e.shape.Output(p) {
			ret = true
		}
	}
	return ret
}

func (c *Composite) draw(mode int, gs *graphics.Graphics, ctx *graphics.Context) bool {
	var override *graphics.Context
	if !ctx.IsNullLine() {
		override = ctx
	}
	return c.list.Draw(mode, gs, override, -1) > 0
}

func (c *Composite) Save(s Storage) bool {
	return c.saveBase(s) && c.list.Save(s)
}

func (c *Composite) Load(f *Factory, s Storage) bool {
	if !c.loadBase(s) {
		return false
	}
	n, _ := c.list.Load(f, s, false)
	return n > 0
}

// Group is a named composite with an optional insertion point. Point 0 is
// the center of the children and point 1 the insertion point, which is
// NaN when unset.
type Group struct {
	Composite
	insert geom.Point
	name   string
}

// NewGroup returns an empty group without an insertion point.
func NewGroup() *Group {
	return &Group{
		Composite: Composite{list: NewList(-1)},
		insert:    geom.Pt(math.NaN(), math.NaN()),
	}
}

func (g *Group) Kind() Kind                   { return KindGroup }
func (g *Group) Name() string                 { return g.name }
func (g *Group) SetName(name string)          { g.name = name }
func (g *Group) InsertionPoint() geom.Point   { return g.insert }
func (g *Group) HasInsertionPoint() bool      { return !g.insert.IsNaN() }
func (g *Group) PointCount() int              { return 2 }
func (g *Group) IsHandleFixed(int) bool       { return false }
func (g *Group) HandlePoint(i int) geom.Point { return g.Point(i) }

func (g *Group) Point(i int) geom.Point {
	if box := g.list.Extent(); i == 0 && !box.IsNull() {
		return box.Center()
	}
	return g.insert
}

func (g *Group) SetPoint(i int, pt geom.Point) {
	if i == 1 {
		g.insert = pt
	}
}

// SetInsertionPoint sets point 1.
func (g *Group) SetInsertionPoint(pt geom.Point) {
	g.insert = pt
	g.Update()
}

// AddElement adds e to the group: moved from its own list when it has one,
// copied otherwise.
func (g *Group) AddElement(e *Element) bool {
	if e == nil {
		return false
	}
	if e.parent != nil {
		return e.parent.MoveTo(e.id, g.list)
	}
	g.list.Add(e)
	return true
}

func (g *Group) Clone() Shape {
	n := &Group{insert: g.insert, name: g.name}
	n.Base = g.Base
	n.list = g.list.Clone()
	return n
}

func (g *Group) Update() {
	ext := g.list.Extent()
	if g.HasInsertionPoint() {
		ext = ext.UnionPoint(g.insert)
	}
	g.setExtent(ext)
}

func (g *Group) Transform(aff geom.Affine) {
	g.list.Transform(aff)
	if g.HasInsertionPoint() {
		g.insert = g.insert.Transform(aff)
	}
	g.Update()
}

func (g *Group) Clear() {
	g.insert = geom.Pt(math.NaN(), math.NaN())
	g.name = ""
	g.Composite.Clear()
}

func (g *Group) HandleCount() int {
	if g.HasInsertionPoint() {
		return 2
	}
	return 0
}

func (g *Group) HandleType(i int) HandleType {
	if i == 0 {
		return HandleNoSnap
	}
	return HandleVertex
}

// SetHandlePoint moves everything with handle 1 and only the children with
// handle 0.
func (g *Group) SetHandlePoint(i int, pt geom.Point, _ float64) bool {
	v := pt.Sub(g.HandlePoint(i))
	if v.IsZero(geom.DefaultTol) {
		return false
	}
	if i == 1 {
		return g.Offset(v, -1)
	}
	ret := g.Composite.Offset(v, -1)
	g.Update()
	return ret
}

// Offset moves only the child whose id is segment, if there is one, and
// the whole group otherwise.
func (g *Group) Offset(v geom.Vec2, segment int) bool {
	if e := g.list.Find(segment); e != nil {
		ret := e.shape.Offset(v, -1)
		g.Update()
		return ret
	}
	if g.HasInsertionPoint() {
		g.insert = g.insert.Translate(v)
	}
	ret := g.Composite.Offset(v, segment)
	g.Update()
	return ret
}

// HitTest also considers the insertion point, reported with segment -1.
func (g *Group) HitTest(pt geom.Point, tol float64, res *HitResult) float64 {
	g.Composite.HitTest(pt, tol, res)
	if g.HasInsertionPoint() {
		if d := g.insert.Distance(pt); res.Dist > d {
			res.Dist = d
			res.NearPt = g.insert
			res.Segment = -1
		}
	}
	return res.Dist
}

func (g *Group) HitTestBox(rect geom.Box) bool {
	return (g.HasInsertionPoint() && rect.ContainsPoint(g.insert, geom.Tol{})) || g.Composite.HitTestBox(rect)
}

// draw adds, while a child is being edited, a dotted frame around the
// children and a line to the insertion point.
func (g *Group) draw(mode int, gs *graphics.Graphics, ctx *graphics.Context, segment int) bool {
	if g.list.Find(segment) != nil && mode > 0 {
		box := g.list.Extent()
		frame := graphics.Context{
			Style:     graphics.DotLine,
			LineColor: graphics.ARGB(128, 0, 126, 0),
		}
		if c := box.Center(); g.HasInsertionPoint() && g.insert != c {
			gs.DrawLine(&frame, g.insert, c)
		}
		gs.DrawRect(&frame, box)
	}
	return g.Composite.draw(mode, gs, ctx)
}

func (g *Group) Save(s Storage) bool {
	if g.HasInsertionPoint() {
		s.WriteFloat("x", g.insert.X)
		s.WriteFloat("y", g.insert.Y)
		if g.name != "" {
			s.WriteString("name", g.name)
		}
	}
	return g.Composite.Save(s)
}

func (g *Group) Load(f *Factory, s Storage) bool {
	ret := g.Composite.Load(f, s)
	g.insert = geom.Pt(s.ReadFloat("x", g.insert.X), s.ReadFloat("y", g.insert.Y))
	g.name = s.ReadString("name")
	return ret
}
