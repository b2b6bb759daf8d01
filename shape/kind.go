// Package shape implements the document model: the concrete shape kinds,
// the elements that attach drawing attributes to them and the ordered
// lists that hold a drawing.
//
// Shapes are not safe for concurrent mutation. A List may be read by
// several goroutines while no goroutine writes to it.
package shape

import (
	"fmt"
	"math"

	"honnef.co/go/vgcore/geom"
)

// Kind is the persistent type tag of a shape.
type Kind int

const (
	KindComposite Kind = 6
	KindGroup     Kind = 9
	KindLine      Kind = 10
	KindRect      Kind = 11
	KindEllipse   Kind = 12
	KindRoundRect Kind = 13
	KindDiamond   Kind = 14
	KindLines     Kind = 15
	KindSplines   Kind = 16
	KindParallel  Kind = 17
	KindArc       Kind = 19
	KindGrid      Kind = 20
	KindDot       Kind = 31
	KindPath      Kind = 32
)

var kindNames = map[Kind]string{
	KindComposite: "composite",
	KindGroup:     "group",
	KindLine:      "line",
	KindRect:      "rect",
	KindEllipse:   "ellipse",
	KindRoundRect: "roundrect",
	KindDiamond:   "diamond",
	KindLines:     "lines",
	KindSplines:   "splines",
	KindParallel:  "parallel",
	KindArc:       "arc",
	KindGrid:      "grid",
	KindDot:       "dot",
	KindPath:      "path",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Flag is a bit of the persistent shape flags.
type Flag uint

const (
	// FlagSquare keeps width and height equal (rectangles, circles).
	FlagSquare Flag = iota
	FlagClosed
	// FlagFixedLength makes vertex drags rotate instead of stretch.
	FlagFixedLength
	FlagFixedSize
	FlagRotateDisabled
	FlagLocked
	FlagNoSnap
	FlagNoAction
	FlagNoClone
	FlagHidden
	FlagNoDel
	FlagCanSelLocked
	FlagNotAddRel
	FlagNotShowSnap
	FlagCanAddVertex
)

// HandleType classifies a handle for snapping.
type HandleType int

const (
	HandleVertex HandleType = iota
	HandleCenter
	HandleMidPoint
	HandleQuadrant
	HandleOutside
	HandleNoSnap
)

// HitResult carries the in and out parameters of [Shape.HitTest].
//
// Mask and IgnoreHandle are inputs: Mask holds one bit per HandleType that
// may be reported, and IgnoreHandle names a vertex to skip while a handle
// of the same shape is being dragged. The other fields are outputs.
type HitResult struct {
	NearPt    geom.Point
	Segment   int
	Inside    bool
	Contained bool
	Dist      float64

	Mask         int
	IgnoreHandle int
}

// NewHitResult returns a HitResult that has found nothing yet and accepts
// every handle type.
func NewHitResult() HitResult {
	return HitResult{
		Segment:      -1,
		Dist:         math.MaxFloat64,
		Mask:         -1,
		IgnoreHandle: -1,
	}
}

func (r *HitResult) SnapVertexEnabled() bool { return r.Mask&(1<<HandleVertex) != 0 }
func (r *HitResult) SnapEdgeEnabled() bool   { return r.Mask&(1<<HandleOutside) != 0 }
func (r *HitResult) DisableSnapVertex()      { r.Mask &^= 1 << HandleVertex }
func (r *HitResult) DisableSnapEdge()        { r.Mask &^= 1 << HandleOutside }
