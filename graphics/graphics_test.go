package graphics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/vgcore/geom"
)

// recorder is a Canvas that logs the calls it receives.
type recorder struct {
	calls []string
	clips int
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) SetPen(argb Color, width float64, style LineStyle, phase float64) {
	r.log("pen %s %.1f %d", argb, width, style)
}
func (r *recorder) SetBrush(argb Color)             { r.log("brush %s", argb) }
func (r *recorder) ClearRect(x, y, w, h float64)    { r.log("clear") }
func (r *recorder) DrawLine(x1, y1, x2, y2 float64) { r.log("line %.0f,%.0f %.0f,%.0f", x1, y1, x2, y2) }
func (r *recorder) BeginPath()                      { r.log("begin") }
func (r *recorder) MoveTo(x, y float64)             { r.log("M%.0f,%.0f", x, y) }
func (r *recorder) LineTo(x, y float64)             { r.log("L%.0f,%.0f", x, y) }
func (r *recorder) ClosePath()                      { r.log("Z") }
func (r *recorder) RestoreClip()                    { r.clips--; r.log("restore") }

func (r *recorder) DrawRect(x, y, w, h float64, stroke, fill bool) {
	r.log("rect %.0f,%.0f %.0fx%.0f %t %t", x, y, w, h, stroke, fill)
}

func (r *recorder) DrawEllipse(x, y, w, h float64, stroke, fill bool) {
	r.log("ellipse %.0f,%.0f %.0fx%.0f", x, y, w, h)
}

func (r *recorder) BezierTo(c1x, c1y, c2x, c2y, x, y float64) { r.log("C%.0f,%.0f", x, y) }
func (r *recorder) QuadTo(cpx, cpy, x, y float64)             { r.log("Q%.0f,%.0f", x, y) }
func (r *recorder) DrawPath(stroke, fill bool)                { r.log("path %t %t", stroke, fill) }

func (r *recorder) SaveClip() bool {
	r.clips++
	r.log("save")
	return true
}

func (r *recorder) ClipRect(x, y, w, h float64) bool {
	r.log("clip %.0f,%.0f %.0fx%.0f", x, y, w, h)
	return true
}

func (r *recorder) DrawHandle(x, y float64, kind HandleKind, angle float64) bool {
	r.log("handle %.0f,%.0f %d", x, y, kind)
	return true
}

func (r *recorder) DrawBitmap(name string, xc, yc, w, h, angle float64) bool { return false }

func (r *recorder) DrawTextAt(text string, x, y, h float64, align int, angle float64) float64 {
	r.log("text %s", text)
	return float64(len(text)) * h / 2
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// newView returns a 200×100 pixel view where one model unit is one pixel.
func newView() *Graphics {
	xf := NewTransform(true)
	xf.SetWndSize(200, 100)
	xf.SetResolution(25.4, 0)
	return New(xf)
}

func TestTransformMapping(t *testing.T) {
	xf := NewTransform(true)
	require.True(t, xf.SetWndSize(200, 100))
	assert.False(t, xf.SetWndSize(200, 100))

	pt := geom.Pt(0, 0).Transform(xf.ModelToDisplay())
	assert.InDelta(t, 100, pt.X, 1e-9)
	assert.InDelta(t, 50, pt.Y, 1e-9)

	pt = geom.Pt(25.4, 25.4).Transform(xf.ModelToDisplay())
	assert.InDelta(t, 196, pt.X, 1e-9)
	assert.InDelta(t, -46, pt.Y, 1e-9)

	back := pt.Transform(xf.DisplayToModel())
	assert.InDelta(t, 25.4, back.X, 1e-9)
	assert.InDelta(t, 25.4, back.Y, 1e-9)

	assert.InDelta(t, 25.4/96, xf.LengthToModel(1, false), 1e-9)
	assert.InDelta(t, 96.0, xf.MmToDisplay(25.4), 1e-9)
}

func TestTransformModelMatrix(t *testing.T) {
	xf := NewTransform(true)
	xf.SetWndSize(100, 100)
	assert.False(t, xf.SetModelTransform(geom.Scale(0, 1)))
	require.True(t, xf.SetModelTransform(geom.Scale(2, 2)))

	pt := geom.Pt(1, 0).Transform(xf.ModelToWorld())
	assert.InDelta(t, 2, pt.X, 1e-9)
	d := geom.Pt(10, 0).Transform(xf.ModelToDisplay()).Transform(xf.DisplayToModel())
	assert.InDelta(t, 10, d.X, 1e-9)
}

func TestTransformZoomTo(t *testing.T) {
	xf := NewTransform(true)
	xf.SetWndSize(200, 100)
	box := geom.NewBox(geom.Pt(0, 0), geom.Pt(100, 50))
	before := xf.ZoomTimes()
	require.True(t, xf.ZoomTo(box))
	assert.Greater(t, xf.ZoomTimes(), before)

	c := box.Center().Transform(xf.ModelToDisplay())
	assert.InDelta(t, 100, c.X, 1e-6)
	assert.InDelta(t, 50, c.Y, 1e-6)
	assert.True(t, xf.WndRect().Inflate(1e-6, 1e-6).Contains(box.Transform(xf.ModelToDisplay())))

	assert.False(t, xf.ZoomTo(geom.Box{}))
}

func TestTransformZoomScale(t *testing.T) {
	xf := NewTransform(true)
	xf.SetWndSize(200, 100)
	at := geom.Pt(150, 20)
	fixed := at.Transform(xf.DisplayToModel())
	require.True(t, xf.ZoomScale(2, &at))
	assert.InDelta(t, 2, xf.ViewScale(), 1e-9)
	got := fixed.Transform(xf.ModelToDisplay())
	assert.InDelta(t, at.X, got.X, 1e-6)
	assert.InDelta(t, at.Y, got.Y, 1e-6)

	assert.False(t, xf.ZoomScale(100, nil))
	assert.True(t, xf.ZoomByFactor(-0.5, nil))
	assert.InDelta(t, 2/1.5, xf.ViewScale(), 1e-9)
}

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Color
	}{
		{"red", Red},
		{"Black", Black},
		{"none", Invalid},
		{"#abc", 0xFFAABBCC},
		{"#102030", 0xFF102030},
		{"#80102030", 0x80102030},
	} {
		got, err := ParseColor(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
	_, err := ParseColor("#12345")
	assert.Error(t, err)
	_, err = ParseColor("no-such-color")
	assert.Error(t, err)

	assert.Equal(t, "#102030", Color(0xFF102030).String())
	assert.Equal(t, "#80102030", Color(0x80102030).String())
	assert.Equal(t, uint8(0x80), Color(0x80102030).NRGBA().A)
}

func TestContextCopy(t *testing.T) {
	src := NewContext()
	src.LineColor = ARGB(10, 1, 2, 3)
	src.LineWidth = 50
	src.Style = DashLine
	src.SetArrowHeads(ArrowSharpClosed, ArrowTLine)

	dst := NewContext()
	dst.Copy(src, LineRGB)
	assert.Equal(t, ARGB(168, 1, 2, 3), dst.LineColor)
	dst.Copy(src, LineAlpha|LineWidth)
	assert.Equal(t, src.LineColor, dst.LineColor)
	assert.Equal(t, 50.0, dst.LineWidth)
	assert.True(t, dst.IsAutoScale())
	assert.Equal(t, SolidLine, dst.Style)

	dst.Copy(src, CopyAll)
	assert.True(t, dst.Equal(src))
	assert.Equal(t, 301, dst.ArrowHeadCode())

	var c Context
	c.SetArrowHeadCode(205)
	assert.Equal(t, ArrowClosedCircle, c.StartArrow)
	assert.Equal(t, ArrowSharpLine, c.EndArrow)
	c.SetArrowHeads(ArrowHead(42), ArrowNone)
	assert.Equal(t, ArrowClosedCircle, c.StartArrow)
}

func TestCalcPenWidth(t *testing.T) {
	gs := New(nil)
	assert.InDelta(t, 9.6, gs.CalcPenWidth(254, false), 1e-9)
	assert.InDelta(t, 3, gs.CalcPenWidth(-3, false), 1e-9)
	assert.InDelta(t, 1, gs.CalcPenWidth(0, false), 1e-9)
	assert.InDelta(t, 100, gs.CalcPenWidth(-500, false), 1e-9)

	gs.SetPenWidthFactor(2)
	assert.InDelta(t, 6, gs.CalcPenWidth(-3, false), 1e-9)
	gs.SetPenWidthFactor(20)
	assert.Equal(t, 2.0, gs.PenWidthFactor())

	other := New(nil)
	assert.InDelta(t, 3, other.CalcPenWidth(-3, false), 1e-9)
}

func TestDrawLineCulling(t *testing.T) {
	gs := newView()
	rec := &recorder{}
	require.True(t, gs.BeginPaint(rec, geom.Box{}))
	assert.False(t, gs.BeginPaint(rec, geom.Box{}))
	defer gs.EndPaint()

	ctx := NewContext()
	assert.True(t, gs.DrawLine(&ctx, geom.Pt(-10, 0), geom.Pt(10, 0)))
	assert.Equal(t, "line 90,50 110,50", rec.calls[len(rec.calls)-1])
	assert.Equal(t, 1, rec.count("pen"))

	assert.False(t, gs.DrawLine(&ctx, geom.Pt(500, 500), geom.Pt(600, 600)))

	// Only the visible part of a long line reaches the canvas.
	assert.True(t, gs.DrawLine(&ctx, geom.Pt(-1000, 0), geom.Pt(1000, 0)))
	assert.Equal(t, "line -10,50 210,50", rec.calls[len(rec.calls)-1])
	assert.Equal(t, 1, rec.count("pen"))
}

func TestDrawStopping(t *testing.T) {
	gs := newView()
	rec := &recorder{}
	require.True(t, gs.BeginPaint(rec, geom.Box{}))
	gs.StopDrawing(true)
	ctx := NewContext()
	assert.False(t, gs.DrawLine(&ctx, geom.Pt(0, 0), geom.Pt(10, 0)))
	assert.False(t, gs.DrawRect(&ctx, geom.NewBox(geom.Pt(0, 0), geom.Pt(10, 10))))
	gs.EndPaint()
	assert.False(t, gs.BeginPaint(rec, geom.Box{}))
	gs.StopDrawing(false)
	assert.True(t, gs.BeginPaint(rec, geom.Box{}))
	gs.EndPaint()
}

func TestDrawRectAndEllipse(t *testing.T) {
	gs := newView()
	rec := &recorder{}
	require.True(t, gs.BeginPaint(rec, geom.Box{}))
	defer gs.EndPaint()

	ctx := NewContext()
	ctx.FillColor = Red
	assert.True(t, gs.DrawRect(&ctx, geom.NewBox(geom.Pt(0, 0), geom.Pt(20, 10))))
	assert.Equal(t, "rect 100,40 20x10 true true", rec.calls[len(rec.calls)-1])

	assert.True(t, gs.DrawEllipse(&ctx, geom.Pt(0, 0), 10, 5))
	assert.Equal(t, "ellipse 90,45 20x10", rec.calls[len(rec.calls)-1])
}

func TestClipStack(t *testing.T) {
	gs := newView()
	rec := &recorder{}
	require.True(t, gs.BeginPaint(rec, geom.Box{}))

	require.True(t, gs.SaveClip())
	require.True(t, gs.SetClipBox(geom.NewBox(geom.Pt(0, 0), geom.Pt(50, 50))))
	assert.Equal(t, geom.NewBox(geom.Pt(0, 0), geom.Pt(50, 50)), gs.ClipBox())
	assert.False(t, gs.SetClipBox(geom.NewBox(geom.Pt(300, 300), geom.Pt(400, 400))))

	require.True(t, gs.SaveClip())
	gs.EndPaint()
	assert.Equal(t, 0, rec.clips)
	assert.Equal(t, gs.xf.WndRect(), gs.ClipBox())
}

func TestDrawPathArrowHeads(t *testing.T) {
	gs := newView()
	rec := &recorder{}
	require.True(t, gs.BeginPaint(rec, geom.Box{}))
	defer gs.EndPaint()

	p := &geom.Path{}
	p.MoveTo(geom.Pt(-50, 0), false)
	p.LineTo(geom.Pt(50, 0), false)

	ctx := NewContext()
	assert.True(t, gs.DrawPath(&ctx, p, false))
	assert.Equal(t, 1, rec.count("path"))

	ctx.SetArrowHeads(ArrowSharpClosed, ArrowSharpLine)
	assert.True(t, gs.DrawPath(&ctx, p, false))
	// The two heads and the trimmed shaft.
	assert.Equal(t, 4, rec.count("path"))
	// The path itself is left untouched.
	assert.Equal(t, geom.Pt(-50, 0), p.StartPoint())
}

func TestDrawText(t *testing.T) {
	gs := newView()
	rec := &recorder{}
	require.True(t, gs.BeginPaint(rec, geom.Box{}))
	defer gs.EndPaint()

	w := gs.DrawText(Invalid, "abcd", geom.Pt(0, 0), 10, AlignCenter, 0)
	assert.InDelta(t, 20, w, 1e-9)
	assert.Equal(t, "brush #000000", rec.calls[0])
	assert.Zero(t, gs.DrawText(Black, "", geom.Pt(0, 0), 10, 0, 0))
}
