package shape

import (
	"maps"
	"slices"
	"sync"

	"honnef.co/go/vgcore/geom"
)

// Factory creates empty shapes by kind, for loading documents. The builtin
// kinds are always available; Register adds or overrides kinds.
//
// A Factory is safe for concurrent use.
type Factory struct {
	mu       sync.RWMutex
	creators map[Kind]func() Shape
}

var builtinKinds = map[Kind]func() Shape{
	KindComposite: func() Shape { return NewComposite() },
	KindGroup:     func() Shape { return NewGroup() },
	KindLine:      func() Shape { return &Line{} },
	KindRect:      func() Shape { return &Rect{} },
	KindEllipse:   func() Shape { return &Ellipse{} },
	KindRoundRect: func() Shape { return &RoundRect{} },
	KindDiamond:   func() Shape { return &Diamond{} },
	KindLines:     func() Shape { return &Lines{} },
	KindSplines:   func() Shape { return &Splines{} },
	KindParallel:  func() Shape { return &Parallel{} },
	KindArc:       func() Shape { return &Arc{} },
	KindGrid:      func() Shape { return NewGrid(geom.Box{}, 0) },
	KindDot:       func() Shape { return &Dot{} },
	KindPath:      func() Shape { return &Path{} },
}

// NewFactory returns a factory for the builtin kinds.
func NewFactory() *Factory {
	return &Factory{creators: maps.Clone(builtinKinds)}
}

// Register sets the constructor of kind. A nil fn removes the kind.
func (f *Factory) Register(kind Kind, fn func() Shape) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fn == nil {
		delete(f.creators, kind)
	} else {
		f.creators[kind] = fn
	}
}

// Create returns an empty shape of kind, or nil if the kind is unknown.
func (f *Factory) Create(kind Kind) Shape {
	f.mu.RLock()
	fn := f.creators[kind]
	f.mu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn()
}

// Kinds returns the registered kinds in ascending order.
func (f *Factory) Kinds() []Kind {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Sorted(maps.Keys(f.creators))
}
