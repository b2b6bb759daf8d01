package graphics

import "math"

// LineStyle selects the dash pattern of a pen.
type LineStyle int

const (
	SolidLine LineStyle = iota
	DashLine
	DotLine
	DashDot
	DashDotDot
	NullLine
)

// ArrowHead is the decoration drawn at an end of an open path.
type ArrowHead int

const (
	ArrowNone ArrowHead = iota
	ArrowSharpClosed
	ArrowSharpLine
	ArrowTLine
	ArrowSlashLine
	ArrowClosedCircle
	ArrowOpenedCircle
)

func (a ArrowHead) valid() bool {
	return a >= ArrowNone && a <= ArrowOpenedCircle
}

// CopyMask selects the attributes copied by [Context.Copy].
type CopyMask int

const (
	CopyNone   CopyMask = 0
	LineRGB    CopyMask = 0x01
	LineAlpha  CopyMask = 0x02
	LineARGB   CopyMask = 0x03
	LineWidth  CopyMask = 0x04
	LineStyleM CopyMask = 0x08
	FillRGB    CopyMask = 0x10
	FillAlpha  CopyMask = 0x20
	FillARGB   CopyMask = 0x30
	ArrowHeads CopyMask = 0x40
	CopyAll    CopyMask = 0xFF
)

// Context holds the drawing attributes of a shape.
//
// LineWidth is in hundredths of a millimetre when positive and in pixels
// when negative; zero means a hairline of one pixel. Pixel widths only scale
// with the view when AutoScale is set; millimetre widths always do.
type Context struct {
	Style      LineStyle
	LineWidth  float64
	LineColor  Color
	FillColor  Color
	AutoScale  bool
	StartArrow ArrowHead
	EndArrow   ArrowHead
}

// NewContext returns the default context: a translucent black solid line
// three pixels wide and no fill.
func NewContext() Context {
	return Context{
		Style:     SolidLine,
		LineWidth: -3,
		LineColor: ARGB(168, 0, 0, 0),
		FillColor: Invalid,
	}
}

// Copy copies the attributes of src selected by mask into ctx.
func (ctx *Context) Copy(src Context, mask CopyMask) {
	if mask&LineRGB != 0 {
		a := ctx.LineColor.A()
		if a == 0 {
			a = 255
		}
		ctx.LineColor = src.LineColor.WithAlpha(a)
	}
	if mask&LineAlpha != 0 {
		ctx.LineColor = ctx.LineColor.WithAlpha(src.LineColor.A())
	}
	if mask&LineWidth != 0 {
		ctx.LineWidth = src.LineWidth
		ctx.AutoScale = src.AutoScale
	}
	if mask&LineStyleM != 0 {
		ctx.Style = src.Style
	}
	if mask&FillRGB != 0 {
		a := ctx.FillColor.A()
		if a == 0 {
			a = 255
		}
		ctx.FillColor = src.FillColor.WithAlpha(a)
	}
	if mask&FillAlpha != 0 {
		ctx.FillColor = ctx.FillColor.WithAlpha(src.FillColor.A())
	}
	if mask&ArrowHeads != 0 {
		ctx.StartArrow = src.StartArrow
		ctx.EndArrow = src.EndArrow
	}
}

// LineStyleOrNull returns the style, or NullLine if the line color is
// invalid.
func (ctx Context) LineStyleOrNull() LineStyle {
	if ctx.LineColor.IsInvalid() {
		return NullLine
	}
	return ctx.Style
}

func (ctx Context) IsNullLine() bool {
	return ctx.Style == NullLine || ctx.LineColor.IsInvalid()
}

func (ctx *Context) SetNullLine() { ctx.Style = NullLine }

func (ctx Context) HasFillColor() bool { return !ctx.FillColor.IsInvalid() }

func (ctx *Context) SetNoFillColor() { ctx.FillColor = Invalid }

// SetFillAlpha sets the fill opacity. Turning on an invalid fill starts from
// the line color.
func (ctx *Context) SetFillAlpha(alpha uint8) {
	if ctx.FillColor.A() == 0 && alpha > 0 {
		ctx.FillColor = ctx.LineColor
	}
	ctx.FillColor = ctx.FillColor.WithAlpha(alpha)
}

// IsAutoScale reports whether the pen width follows the view scale.
func (ctx Context) IsAutoScale() bool {
	return ctx.AutoScale || ctx.LineWidth > 0
}

func (ctx Context) HasArrowHead() bool {
	return ctx.StartArrow > ArrowNone || ctx.EndArrow > ArrowNone
}

// SetArrowHeads sets both ends, ignoring unknown kinds.
func (ctx *Context) SetArrowHeads(start, end ArrowHead) {
	if start.valid() {
		ctx.StartArrow = start
	}
	if end.valid() {
		ctx.EndArrow = end
	}
}

// ArrowHeadCode packs both arrowheads as start + end*100.
func (ctx Context) ArrowHeadCode() int {
	return int(ctx.StartArrow) + int(ctx.EndArrow)*100
}

// SetArrowHeadCode is the inverse of ArrowHeadCode.
func (ctx *Context) SetArrowHeadCode(code int) {
	ctx.SetArrowHeads(ArrowHead(code%100), ArrowHead(code/100))
}

// Equal compares all attributes; line widths compare within a micrometre.
func (ctx Context) Equal(o Context) bool {
	return ctx.Style == o.Style &&
		math.Abs(ctx.LineWidth-o.LineWidth) < 1e-3 &&
		ctx.AutoScale == o.AutoScale &&
		ctx.LineColor == o.LineColor &&
		ctx.FillColor == o.FillColor &&
		ctx.StartArrow == o.StartArrow &&
		ctx.EndArrow == o.EndArrow
}
