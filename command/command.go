// Package command turns pointer gestures into shapes.
//
// A [Session] owns a document and the view transform and dispatches
// gestures to the current [Command]. Drawing commands are built on [DrawBase],
// a step machine: step 0 means nothing has been collected yet, and every
// accepted point advances the step until the shape is complete and added
// to the document. Points are snapped to the existing drawing by the
// session's [Snapper] before a command sees them.
package command

import (
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
	"honnef.co/go/vgcore/shape"
)

// Command reacts to the gestures of one view. Every method reports whether
// the gesture was consumed.
type Command interface {
	Name() string
	// Initialize prepares the command. s may be nil; otherwise it carries
	// options and possibly points to replay.
	Initialize(m *Motion, s shape.Storage) bool
	Step() int
	Cancel(m *Motion) bool
	BackStep(m *Motion) bool
	Draw(m *Motion, gs *graphics.Graphics) bool
	Click(m *Motion) bool
	DoubleClick(m *Motion) bool
	TouchBegan(m *Motion) bool
	TouchMoved(m *Motion) bool
	TouchEnded(m *Motion) bool
}

// GestureState is the phase of the gesture a Motion describes.
type GestureState int

const (
	GesturePossible GestureState = iota
	GestureBegan
	GestureMoved
	GestureEnded
	GestureCancelled
)

// Motion describes the pointer. Points without the M suffix are display
// pixels, the others are model coordinates.
type Motion struct {
	Session *Session
	State   GestureState

	StartPt, LastPt, Point    geom.Point
	StartPtM, LastPtM, PointM geom.Point
}

// Dragging reports whether the pointer is down.
func (m *Motion) Dragging() bool {
	return m.State >= GestureBegan && m.State <= GestureMoved
}

// DisplayMmToModel converts millimetres of the screen to model units.
func (m *Motion) DisplayMmToModel(mm float64) float64 {
	return m.Session.Xform.LengthToModel(mm, true)
}

// DisplayMmToModelBox returns the square of side mm around the pointer.
func (m *Motion) DisplayMmToModelBox(mm float64) geom.Box {
	return geom.BoxFromCenter(m.PointM, m.DisplayMmToModel(mm), 0)
}

func (m *Motion) shapes() *shape.List { return m.Session.Shapes }
func (m *Motion) snap() *Snapper      { return m.Session.Snap }
