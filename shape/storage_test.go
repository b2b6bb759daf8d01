package shape

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/vgcore/geom"
)

type memNode struct {
	vals   map[string]any
	kids   map[string]*memNode
	parent *memNode
}

func newMemNode(parent *memNode) *memNode {
	return &memNode{vals: map[string]any{}, kids: map[string]*memNode{}, parent: parent}
}

// memStorage is a minimal in-memory Storage.
type memStorage struct {
	root *memNode
	cur  *memNode
	err  error
}

func newMemStorage() *memStorage {
	n := newMemNode(nil)
	return &memStorage{root: n, cur: n}
}

func nodeKey(name string, index int) string {
	if index < 0 {
		return name
	}
	return fmt.Sprintf("%s%d", name, index+1)
}

func (s *memStorage) rewind() { s.cur = s.root }

func (s *memStorage) ReadNode(name string, index int, ended bool) bool {
	if ended {
		s.cur = s.cur.parent
		return true
	}
	n := s.cur.kids[nodeKey(name, index)]
	if n == nil {
		return false
	}
	s.cur = n
	return true
}

func (s *memStorage) WriteNode(name string, index int, ended bool) bool {
	if ended {
		s.cur = s.cur.parent
		return true
	}
	n := newMemNode(s.cur)
	s.cur.kids[nodeKey(name, index)] = n
	s.cur = n
	return true
}

func (s *memStorage) ReadInt(name string, def int) int {
	if v, ok := s.cur.vals[name].(int); ok {
		return v
	}
	return def
}

func (s *memStorage) ReadFloat(name string, def float64) float64 {
	if v, ok := s.cur.vals[name].(float64); ok {
		return v
	}
	return def
}

func (s *memStorage) ReadBool(name string, def bool) bool {
	if v, ok := s.cur.vals[name].(bool); ok {
		return v
	}
	return def
}

func (s *memStorage) ReadString(name string) string {
	v, _ := s.cur.vals[name].(string)
	return v
}

func (s *memStorage) ReadFloatArray(name string, values []float64) int {
	v, _ := s.cur.vals[name].([]float64)
	if values == nil {
		return len(v)
	}
	return copy(values, v)
}

func (s *memStorage) WriteInt(name string, v int)       { s.cur.vals[name] = v }
func (s *memStorage) WriteFloat(name string, v float64) { s.cur.vals[name] = v }
func (s *memStorage) WriteBool(name string, v bool)     { s.cur.vals[name] = v }
func (s *memStorage) WriteString(name, v string)        { s.cur.vals[name] = v }

func (s *memStorage) WriteFloatArray(name string, v []float64) {
	s.cur.vals[name] = append([]float64(nil), v...)
}

func (s *memStorage) SetError(err error) bool {
	s.err = err
	return false
}

func TestLoadPointCountErrors(t *testing.T) {
	tests := []struct {
		name  string
		count int
		pts   []float64
		want  error
	}{
		{"empty", 0, nil, ErrNoPoint},
		{"huge", maxPoints + 1, nil, ErrTooManyPoints},
		{"short", 3, []float64{0, 0, 1, 1}, ErrShortArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMemStorage()
			s.WriteInt("count", tt.count)
			s.WriteFloatArray("points", tt.pts)

			var l Lines
			assert.False(t, l.Load(NewFactory(), s))
			assert.True(t, errors.Is(s.err, tt.want), "got %v", s.err)
		})
	}
}

func TestLoadPathErrors(t *testing.T) {
	s := newMemStorage()
	s.WriteString("d", "M0 0 X 1 2")
	var p Path
	assert.False(t, p.Load(NewFactory(), s))
	require.Error(t, s.err)

	s = newMemStorage()
	s.WriteString("d", "M0,0 L10,0 L10,10 Z")
	require.True(t, p.Load(NewFactory(), s))
	p.Update()
	assert.True(t, p.IsClosed())
	assert.InDelta(t, 10, p.Extent().Width(), 1e-9)
}

func TestArcSaveLoad(t *testing.T) {
	a := NewArc(geom.Pt(1, 2), 5, 0.5, -2)
	a.SetArcKind(ArcSector)

	s := newMemStorage()
	require.True(t, a.Save(s))
	s.rewind()

	var b Arc
	require.True(t, b.Load(NewFactory(), s))
	b.Update()
	assert.True(t, b.IsSector())
	assert.InDelta(t, -2, b.SweepAngle(), 1e-6)
	assert.InDelta(t, 5, b.Radius(), 1e-9)
}

func TestSplinesSmooth(t *testing.T) {
	var pts []geom.Point
	for i := range 61 {
		a := math.Pi * float64(i) / 60
		pts = append(pts, geom.Pt(50*math.Cos(a), 50*math.Sin(a)))
	}
	sp := NewSplines(pts, false)
	assert.Nil(t, sp.Vectors())
	require.True(t, sp.Smooth(geom.Identity, 0.5))

	n := sp.PointCount()
	assert.GreaterOrEqual(t, n, 2)
	assert.Less(t, n, len(pts))
	require.Len(t, sp.Vectors(), n)
	assert.InDelta(t, 50, sp.Point(0).X, 1e-9)
	assert.InDelta(t, -50, sp.Point(n-1).X, 1e-9)

	ext := sp.Extent()
	assert.InDelta(t, 100, ext.Width(), 5)
	assert.InDelta(t, 50, ext.Height(), 5)

	s := newMemStorage()
	require.True(t, sp.Save(s))
	s.rewind()
	var loaded Splines
	require.True(t, loaded.Load(NewFactory(), s), "%v", s.err)
	loaded.Update()
	require.Equal(t, n, loaded.PointCount())
	require.Len(t, loaded.Vectors(), n)
	for i, v := range sp.Vectors() {
		assert.InDelta(t, v.X, loaded.Vectors()[i].X, 1e-9)
		assert.InDelta(t, v.Y, loaded.Vectors()[i].Y, 1e-9)
	}

	// moving a knot drops the fitted arms
	loaded.SetPoint(0, geom.Pt(60, 0))
	assert.Nil(t, loaded.Vectors())
}

func TestSplinesSmoothTooFewPoints(t *testing.T) {
	sp := NewSplines([]geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, false)
	assert.False(t, sp.Smooth(geom.Identity, 0.5))
	assert.Nil(t, sp.Vectors())
}
