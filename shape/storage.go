package shape

import (
	"errors"

	"honnef.co/go/vgcore/geom"
)

var (
	ErrNoPoint       = errors.New("shape has no points")
	ErrTooManyPoints = errors.New("shape has too many points")
	ErrShortArray    = errors.New("point array is shorter than its count")
	ErrNoShapesNode  = errors.New("document has no shapes node")
)

// maxPoints bounds the point count accepted when loading a polyline.
const maxPoints = 9999

// Storage is a hierarchical key/value document that shapes serialize
// themselves into.
//
// Nodes are entered with ReadNode or WriteNode(name, index, false) and left
// with the same call and ended set to true. A non-negative index
// distinguishes sibling nodes of the same name. Reads take a default that
// is returned when the key is missing.
type Storage interface {
	ReadNode(name string, index int, ended bool) bool
	WriteNode(name string, index int, ended bool) bool

	ReadInt(name string, def int) int
	WriteInt(name string, v int)
	ReadFloat(name string, def float64) float64
	WriteFloat(name string, v float64)
	ReadBool(name string, def bool) bool
	WriteBool(name string, v bool)
	ReadString(name string) string
	WriteString(name, v string)

	// ReadFloatArray copies the array into values and returns the number
	// of elements copied. With nil values it returns the length of the
	// stored array.
	ReadFloatArray(name string, values []float64) int
	WriteFloatArray(name string, values []float64)

	// SetError records a load failure. It always returns false so that
	// loaders can return its result.
	SetError(err error) bool
}

func writePoints(s Storage, name string, pts []geom.Point) {
	vs := make([]float64, 0, len(pts)*2)
	for _, pt := range pts {
		vs = append(vs, pt.X, pt.Y)
	}
	s.WriteFloatArray(name, vs)
}

// readPoints fills pts from the array name and returns the number of whole
// points read.
func readPoints(s Storage, name string, pts []geom.Point) int {
	vs := make([]float64, len(pts)*2)
	n := s.ReadFloatArray(name, vs) / 2
	for i := range n {
		pts[i] = geom.Pt(vs[2*i], vs[2*i+1])
	}
	return n
}

func writeVecs(s Storage, name string, vs []geom.Vec2) {
	fs := make([]float64, 0, len(vs)*2)
	for _, v := range vs {
		fs = append(fs, v.X, v.Y)
	}
	s.WriteFloatArray(name, fs)
}

func readVecs(s Storage, name string, vs []geom.Vec2) int {
	fs := make([]float64, len(vs)*2)
	n := s.ReadFloatArray(name, fs) / 2
	for i := range n {
		vs[i] = geom.Vec(fs[2*i], fs[2*i+1])
	}
	return n
}
