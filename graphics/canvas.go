package graphics

// HandleKind selects the glyph drawn by [Canvas.DrawHandle].
type HandleKind int

const (
	HandleVertex HandleKind = iota
	HandleActiveVertex
	HandleCenter
	HandleMidPoint
	HandleRotate
	HandleLocked
	// HandleAccept confirms the shape in progress.
	HandleAccept
)

// Text alignment flags for [Canvas.DrawTextAt].
const (
	AlignLeft    = 0
	AlignCenter  = 1
	AlignRight   = 2
	AlignTop     = 0
	AlignBottom  = 4
	AlignVCenter = 8
)

// Canvas is the device that [Graphics] draws on. All coordinates are
// display pixels, y-down. Paths are built with BeginPath and the *To
// methods and rendered by DrawPath with the current pen and brush.
//
// A Canvas is driven by a single goroutine.
type Canvas interface {
	// SetPen sets the stroke color, width in pixels, dash style and dash
	// phase. An invalid color or NullLine disables stroking.
	SetPen(argb Color, width float64, style LineStyle, phase float64)
	// SetBrush sets the fill color. An invalid color disables filling.
	SetBrush(argb Color)

	ClearRect(x, y, w, h float64)
	DrawRect(x, y, w, h float64, stroke, fill bool)
	DrawLine(x1, y1, x2, y2 float64)
	DrawEllipse(x, y, w, h float64, stroke, fill bool)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierTo(c1x, c1y, c2x, c2y, x, y float64)
	QuadTo(cpx, cpy, x, y float64)
	ClosePath()
	DrawPath(stroke, fill bool)

	// SaveClip pushes the clip region; every successful SaveClip is paired
	// with a RestoreClip.
	SaveClip() bool
	RestoreClip()
	// ClipRect intersects the clip region with a rectangle. It reports
	// false if the result is empty.
	ClipRect(x, y, w, h float64) bool

	DrawHandle(x, y float64, kind HandleKind, angle float64) bool
	DrawBitmap(name string, xc, yc, w, h, angle float64) bool
	// DrawTextAt draws text of height h anchored at (x, y) and returns its
	// width in pixels.
	DrawTextAt(text string, x, y, h float64, align int, angle float64) float64
}
