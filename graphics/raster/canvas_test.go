package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
)

func TestFillRect(t *testing.T) {
	c := New(20, 20)
	c.SetBrush(graphics.Red)
	c.DrawRect(5, 5, 10, 10, false, true)

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c.Image().RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{}, c.Image().RGBAAt(16, 10))
}

func TestStrokeLine(t *testing.T) {
	c := New(20, 20)
	c.SetPen(graphics.Black, 2, graphics.SolidLine, 0)
	c.DrawLine(0, 10, 20, 10)

	assert.Equal(t, uint8(255), c.Image().RGBAAt(10, 9).A)
	assert.Equal(t, uint8(255), c.Image().RGBAAt(10, 10).A)
	assert.Zero(t, c.Image().RGBAAt(10, 4).A)

	c.SetPen(graphics.Black, 2, graphics.NullLine, 0)
	c.DrawLine(10, 0, 10, 20)
	assert.Zero(t, c.Image().RGBAAt(10, 4).A)
}

func TestClipStack(t *testing.T) {
	c := New(20, 20)
	c.SetBrush(graphics.Blue)

	require.True(t, c.SaveClip())
	require.True(t, c.ClipRect(0, 0, 10, 20))
	c.DrawRect(0, 0, 20, 20, false, true)
	c.RestoreClip()

	assert.Equal(t, uint8(255), c.Image().RGBAAt(5, 5).A)
	assert.Zero(t, c.Image().RGBAAt(15, 5).A)
	assert.Equal(t, image.Rect(0, 0, 20, 20), c.ClipBounds())

	require.True(t, c.SaveClip())
	assert.False(t, c.ClipRect(30, 30, 5, 5))
	c.RestoreClip()
}

func TestDashPolyline(t *testing.T) {
	var dashes [][]geom.Point
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(20, 0)}
	dashPolyline(pts, []float64{5, 3}, 0, func(d []geom.Point) {
		dashes = append(dashes, d)
	})
	require.Len(t, dashes, 3)
	want := [][2]float64{{0, 5}, {8, 13}, {16, 20}}
	for i, d := range dashes {
		assert.InDelta(t, want[i][0], d[0].X, 1e-9)
		assert.InDelta(t, want[i][1], d[len(d)-1].X, 1e-9)
	}
}

func TestDashPattern(t *testing.T) {
	assert.Nil(t, dashPattern(graphics.SolidLine, 3))
	assert.Equal(t, []float64{15, 9}, dashPattern(graphics.DashLine, 3))
	assert.Equal(t, []float64{1, 2}, dashPattern(graphics.DotLine, 0.5))
}

func TestOutlineWinding(t *testing.T) {
	// A hairpin: the two quads overlap and must wind the same way.
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 0.5)}
	for _, poly := range outline(nil, pts, 4) {
		assert.Greater(t, signedArea(poly), 0.0)
	}
}

func TestTextWidth(t *testing.T) {
	c := New(40, 20)
	assert.Zero(t, c.DrawTextAt("Hi", 0, 0, 13, graphics.AlignLeft, 0))

	c.SetBrush(graphics.Black)
	assert.InDelta(t, 14, c.DrawTextAt("Hi", 0, 0, 13, graphics.AlignLeft, 0), 1e-9)
	assert.InDelta(t, 28, c.DrawTextAt("Hi", 0, 0, 26, graphics.AlignLeft, 0), 1e-9)
}

func TestBitmap(t *testing.T) {
	c := New(20, 20)
	assert.False(t, c.DrawBitmap("logo", 10, 10, 4, 4, 0))

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			src.SetRGBA(x, y, color.RGBA{0, 255, 0, 255})
		}
	}
	c.SetBitmap("logo", src)
	require.True(t, c.DrawBitmap("logo", 10, 10, 8, 8, 0))
	assert.Greater(t, c.Image().RGBAAt(10, 10).G, uint8(200))
	assert.Zero(t, c.Image().RGBAAt(1, 1).A)
}

func TestGraphicsOnRaster(t *testing.T) {
	xf := graphics.NewTransform(true)
	require.True(t, xf.SetWndSize(100, 100))
	gs := graphics.New(xf)

	c := New(100, 100)
	require.True(t, gs.BeginPaint(c, geom.Box{}))
	ctx := graphics.NewContext()
	ctx.LineColor = graphics.Black
	assert.True(t, gs.DrawLine(&ctx, geom.Pt(-5, 0), geom.Pt(5, 0)))
	gs.EndPaint()

	assert.NotZero(t, c.Image().RGBAAt(50, 50).A)

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
}
