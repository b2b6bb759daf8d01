package shape

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"honnef.co/go/vgcore"
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
)

var (
	ErrUnknownKind = errors.New("unknown shape kind")
	ErrShapeLoad   = errors.New("shape failed to load")
)

// extentLimit bounds the coordinates that count towards a list's extent,
// so that rays and beelines do not swamp it.
const extentLimit = 1e5 - 1

// List is an ordered collection of elements with unique ids. Ids start at
// 1 and are never 0 or -1. The order is the drawing order, back to front.
type List struct {
	elems  []*Element
	byID   map[int]*Element
	index  int
	nextID int
}

// NewList returns an empty list. index distinguishes the lists of one
// document when they are saved side by side; it is 0 for the main list.
func NewList(index int) *List {
	return &List{byID: make(map[int]*Element), index: index, nextID: 1}
}

func (l *List) Len() int   { return len(l.elems) }
func (l *List) Index() int { return l.index }

// newID returns id if it is free, or the next free id.
func (l *List) newID(id int) int {
	if id == 0 || id == -1 || l.byID[id] != nil {
		for l.byID[l.nextID] != nil {
			l.nextID++
		}
		id = l.nextID
		l.nextID++
	}
	return id
}

// SetNextID sets the id tried first for new elements.
func (l *List) SetNextID(id int) { l.nextID = id }

func (l *List) push(e *Element, id int) {
	e.setParent(l, l.newID(id))
	l.elems = append(l.elems, e)
	l.byID[e.id] = e
}

func (l *List) position(id int) int {
	return slices.IndexFunc(l.elems, func(e *Element) bool { return e.id == id })
}

// Add appends a copy of src, keeping its id when that is free.
func (l *List) Add(src *Element) *Element {
	e := src.Clone()
	l.push(e, src.id)
	return e
}

// AddDirect appends e itself and gives it a new id. It fails if e belongs
// to another list.
func (l *List) AddDirect(e *Element) bool {
	if e == nil || (e.parent != nil && e.parent != l) {
		return false
	}
	e.shape.Update()
	l.push(e, 0)
	return true
}

// Update replaces the element that has the id of e by e, typically an
// edited clone. The change count continues from the replaced element.
func (l *List) Update(e *Element) bool {
	if e == nil || (e.parent != nil && e.parent != l) {
		return false
	}
	i := l.position(e.id)
	if i < 0 {
		return false
	}
	old := l.elems[i]
	e.shape.Update()
	e.shape.ResetChangeCount(old.shape.ChangeCount() + 1)
	if old != e {
		old.Release()
	}
	l.elems[i] = e
	e.setParent(l, e.id)
	l.byID[e.id] = e
	return true
}

// Remove removes and releases the element with the given id.
func (l *List) Remove(id int) bool {
	i := l.position(id)
	if i < 0 {
		return false
	}
	e := l.elems[i]
	l.elems = slices.Delete(l.elems, i, i+1)
	delete(l.byID, id)
	e.Release()
	return true
}

// Clear removes all elements.
func (l *List) Clear() {
	for _, e := range l.elems {
		e.Release()
	}
	l.elems = nil
	clear(l.byID)
}

// MoveTo moves the element with the given id to dest, where it may get a
// new id.
func (l *List) MoveTo(id int, dest *List) bool {
	i := l.position(id)
	if dest == nil || dest == l || i < 0 {
		return false
	}
	dest.push(l.elems[i].Clone(), id)
	return l.Remove(id)
}

// CopyTo appends copies of all elements to dest.
func (l *List) CopyTo(dest *List) {
	if dest == nil || dest == l {
		return
	}
	for _, e := range l.elems {
		dest.push(e.Clone(), e.id)
	}
}

// CopyFrom replaces the contents with those of src. Deep copies are
// independent; shallow copies share the elements of src, which keep
// their parent.
func (l *List) CopyFrom(src *List, deep bool) int {
	l.Clear()
	for _, e := range src.elems {
		if deep {
			l.Add(e)
		} else {
			e.Retain()
			l.elems = append(l.elems, e)
			l.byID[e.id] = e
		}
	}
	return len(l.elems)
}

// Clone returns a deep copy of the list.
func (l *List) Clone() *List {
	c := NewList(l.index)
	c.CopyFrom(l, true)
	return c
}

func (l *List) moveElem(id, to int) bool {
	i := l.position(id)
	if i < 0 {
		return false
	}
	e := l.elems[i]
	l.elems = slices.Delete(l.elems, i, i+1)
	to = min(max(to, 0), len(l.elems))
	l.elems = slices.Insert(l.elems, to, e)
	return true
}

func (l *List) BringToFront(id int) bool { return l.moveElem(id, len(l.elems)) }
func (l *List) BringToBack(id int) bool  { return l.moveElem(id, 0) }

// BringToIndex moves the element so that it ends up at index.
func (l *List) BringToIndex(id, index int) bool { return l.moveElem(id, index) }

// Reorder sets the drawing order to ids. Unknown ids are ignored; the
// remaining ids must name every element exactly once.
func (l *List) Reorder(ids []int) bool {
	elems := make([]*Element, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if e := l.Find(id); e != nil && !seen[id] {
			elems = append(elems, e)
			seen[id] = true
		}
	}
	if len(elems) == 0 || len(elems) != len(l.elems) {
		return false
	}
	l.elems = elems
	return true
}

// Find returns the element with the given id, or nil.
func (l *List) Find(id int) *Element {
	if id == 0 || id == -1 {
		return nil
	}
	return l.byID[id]
}

// FindByTag returns the first element with a nonzero tag.
func (l *List) FindByTag(tag int) *Element {
	if tag == 0 {
		return nil
	}
	for _, e := range l.elems {
		if e.tag == tag {
			return e
		}
	}
	return nil
}

// FindByKind returns the first element of kind k.
func (l *List) FindByKind(k Kind) *Element {
	for _, e := range l.elems {
		if e.Kind() == k {
			return e
		}
	}
	return nil
}

// CountByKindOrTag counts the elements of kind k or with tag; zero
// arguments match nothing.
func (l *List) CountByKindOrTag(k Kind, tag int) int {
	n := 0
	for _, e := range l.elems {
		if (k != 0 && e.Kind() == k) || (tag != 0 && e.tag == tag) {
			n++
		}
	}
	return n
}

// IndexOf returns the drawing position of the element, or -1.
func (l *List) IndexOf(id int) int { return l.position(id) }

// At returns the element at drawing position i, or nil.
func (l *List) At(i int) *Element {
	if i < 0 || i >= len(l.elems) {
		return nil
	}
	return l.elems[i]
}

// Head returns the bottom-most element, or nil.
func (l *List) Head() *Element { return l.At(0) }

// Last returns the top-most element, or nil.
func (l *List) Last() *Element { return l.At(len(l.elems) - 1) }

// All iterates over the elements in drawing order.
func (l *List) All() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		for _, e := range l.elems {
			if !yield(e) {
				return
			}
		}
	}
}

func isKindOf(e *Element, k Kind) bool {
	return k == 0 || e.Kind() == k || (k == KindComposite && compositeOf(e.shape) != nil)
}

// Traverse calls fn for each element of kind k, or all elements if k is 0,
// descending into composites that do not match. It returns the number of
// calls.
func (l *List) Traverse(k Kind, fn func(*Element)) int {
	n := 0
	for _, e := range l.elems {
		if isKindOf(e, k) {
			fn(e)
			n++
		} else if comp := compositeOf(e.shape); comp != nil {
			n += comp.list.Traverse(k, fn)
		}
	}
	return n
}

// Transform applies aff to every element.
func (l *List) Transform(aff geom.Affine) {
	for _, e := range l.elems {
		e.shape.Transform(aff)
	}
}

// Extent is the union of the element extents, skipping elements that
// reach beyond ±1e5.
func (l *List) Extent() geom.Box {
	var ext geom.Box
	for _, e := range l.elems {
		b := e.shape.Extent()
		if b.XMin > -extentLimit && b.YMin > -extentLimit && b.XMax < extentLimit && b.YMax < extentLimit {
			ext = ext.Union(b)
		}
	}
	return ext
}

func selectable(sp Shape) bool {
	return !sp.Flag(FlagHidden) && (!sp.Flag(FlagLocked) || sp.Flag(FlagCanSelLocked))
}

// HitTest returns the element nearest to the center of limits. Filled
// shapes are hit from anywhere inside their extent. Shapes entirely inside
// limits win over those that are not, and among equals the top-most wins.
// Without a filter hidden shapes and locked ones not marked
// FlagCanSelLocked are skipped; a filter decides alone.
func (l *List) HitTest(limits geom.Box, res *HitResult, filter func(*Element) bool) *Element {
	var found *Element
	w := limits.Width()
	res.Dist = w * 20
	if w > 1e4 {
		res.Dist = w
	}
	res.Contained = false
	center := limits.Center()

	for _, e := range l.elems {
		ext := e.shape.Extent()
		if filter == nil && !selectable(e.shape) {
			continue
		}
		if !ext.IsIntersect(limits) || (filter != nil && !filter(e)) {
			continue
		}
		tmp := NewHitResult()
		tmp.Mask = res.Mask
		tol := w / 2
		if e.HasFillColor() {
			tol = max(ext.Width(), ext.Height())
		}
		dist := e.shape.HitTest(center, tol, &tmp)
		tmp.Contained = limits.Contains(ext)
		var better bool
		if res.Contained == tmp.Contained {
			better = res.Dist > dist-geom.MinDist
		} else {
			better = tmp.Contained
		}
		if better {
			tmp.Mask, tmp.IgnoreHandle = res.Mask, res.IgnoreHandle
			*res = tmp
			res.Dist = dist
			found = e
		}
	}
	return found
}

// Draw draws the visible elements that intersect the clip box, skipping
// ignoreIDs, until drawing is stopped. It returns the number drawn.
func (l *List) Draw(mode int, gs *graphics.Graphics, ctx *graphics.Context, segment int, ignoreIDs ...int) int {
	clip := gs.ClipModel()
	n := 0
	for _, e := range l.elems {
		if gs.IsStopping() {
			break
		}
		if slices.Contains(ignoreIDs, e.id) || e.shape.Flag(FlagHidden) {
			continue
		}
		if !e.shape.Extent().IsIntersect(clip) {
			continue
		}
		if e.Draw(mode, gs, ctx, segment) {
			n++
		}
	}
	return n
}

func boxArray(b geom.Box) []float64 {
	return []float64{b.XMin, b.YMin, b.XMax, b.YMax}
}

// Save writes the list as a "shapes" node holding one "shape" node per
// element.
func (l *List) Save(s Storage) bool {
	if !s.WriteNode("shapes", l.index, false) {
		return false
	}
	s.WriteFloatArray("extent", boxArray(l.Extent()))
	s.WriteInt("count", len(l.elems))
	ret := true
	for i, e := range l.elems {
		if !saveElement(s, e, i) {
			ret = false
			break
		}
	}
	s.WriteNode("shapes", l.index, true)
	return ret
}

func saveElement(s Storage, e *Element, index int) bool {
	if !s.WriteNode("shape", index, false) {
		return false
	}
	s.WriteInt("type", int(e.Kind())&0xFFFF)
	s.WriteInt("id", e.id)
	s.WriteFloatArray("extent", boxArray(e.shape.Extent()))
	ret := e.Save(s)
	s.WriteNode("shape", index, true)
	return ret
}

// Load reads the elements saved by Save. Unless addOnly is set the list is
// cleared first; with addOnly an element whose id and kind match an
// existing one replaces it.
//
// Elements of unknown kinds and elements that fail to load are skipped and
// logged. Load returns the number of elements loaded and the joined errors
// of the skipped ones.
func (l *List) Load(f *Factory, s Storage, addOnly bool) (int, error) {
	if !s.ReadNode("shapes", l.index, false) {
		if l.index == 0 {
			s.SetError(ErrNoShapesNode)
		}
		return 0, ErrNoShapesNode
	}
	if !addOnly {
		l.Clear()
	}

	var errs []error
	count := 0
	for index := 0; s.ReadNode("shape", index, false); index++ {
		kind := Kind(s.ReadInt("type", 0))
		id := s.ReadInt("id", 0)

		var old *Element
		if addOnly && id != 0 {
			if old = l.Find(id); old != nil && old.Kind() != kind {
				old = nil
			}
		}

		sp := f.Create(kind)
		if sp == nil {
			vgcore.Logger().Warn("ignoring shape of unknown kind", "kind", int(kind), "id", id)
			errs = append(errs, fmt.Errorf("shape %d: %w %d", id, ErrUnknownKind, int(kind)))
			s.ReadNode("shape", index, true)
			continue
		}

		e := NewElement(sp)
		if old != nil {
			e.setParent(l, id)
		} else {
			e.setParent(l, l.newID(id))
		}
		if e.Load(f, s) {
			count++
			sp.SetFlag(FlagClosed, sp.IsClosed())
			if old != nil {
				l.Update(e)
			} else {
				l.elems = append(l.elems, e)
				l.byID[e.id] = e
			}
		} else {
			vgcore.Logger().Warn("failed to load shape", "kind", kind.String(), "id", id)
			errs = append(errs, fmt.Errorf("shape %d (%s): %w", id, kind, ErrShapeLoad))
		}
		s.ReadNode("shape", index, true)
	}
	s.ReadNode("shapes", l.index, true)
	return count, errors.Join(errs...)
}
