package raster

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"honnef.co/go/vgcore/graphics"
)

// handleRadius is the half size of handle glyphs in pixels.
const handleRadius = 4

var handleColors = [...]graphics.Color{
	graphics.HandleVertex:       graphics.ARGB(255, 0, 120, 215),
	graphics.HandleActiveVertex: graphics.ARGB(255, 230, 40, 40),
	graphics.HandleCenter:       graphics.ARGB(255, 0, 150, 60),
	graphics.HandleMidPoint:     graphics.ARGB(255, 0, 120, 215),
	graphics.HandleRotate:       graphics.ARGB(255, 230, 140, 0),
	graphics.HandleLocked:       graphics.ARGB(255, 128, 128, 128),
	graphics.HandleAccept:       graphics.ARGB(255, 0, 160, 0),
}

// DrawHandle draws a fixed-size glyph: discs for vertices, a cross for
// centers, squares for midpoints and locked points, a ring for rotation.
// The pen and brush are left as they were.
func (c *Canvas) DrawHandle(x, y float64, kind graphics.HandleKind, angle float64) bool {
	if kind < 0 || int(kind) >= len(handleColors) || math.IsNaN(x+y) {
		return false
	}
	savedPen, savedBrush, savedFill := c.pen, c.brush, c.fill
	defer func() { c.pen, c.brush, c.fill = savedPen, savedBrush, savedFill }()

	col := handleColors[kind]
	c.SetPen(col, 1, graphics.SolidLine, 0)
	c.SetBrush(graphics.White)
	const r = handleRadius
	switch kind {
	case graphics.HandleCenter:
		c.DrawLine(x-r, y, x+r, y)
		c.DrawLine(x, y-r, x, y+r)
	case graphics.HandleMidPoint, graphics.HandleLocked:
		s, co := math.Sincos(angle)
		c.BeginPath()
		for i, d := range [4][2]float64{{-r, -r}, {r, -r}, {r, r}, {-r, r}} {
			px := x + co*d[0] + s*d[1]
			py := y - s*d[0] + co*d[1]
			if i == 0 {
				c.MoveTo(px, py)
			} else {
				c.LineTo(px, py)
			}
		}
		c.ClosePath()
		if kind == graphics.HandleLocked {
			c.SetBrush(col)
		}
		c.DrawPath(true, true)
	case graphics.HandleAccept:
		c.SetPen(col, 2, graphics.SolidLine, 0)
		c.DrawEllipse(x-2*r, y-2*r, 4*r, 4*r, true, true)
		c.BeginPath()
		c.MoveTo(x-r, y)
		c.LineTo(x-r/3.0, y+r*2/3.0)
		c.LineTo(x+r, y-r*2/3.0)
		c.DrawPath(true, false)
	case graphics.HandleRotate:
		c.SetBrush(graphics.Invalid)
		c.DrawEllipse(x-r, y-r, 2*r, 2*r, true, false)
	case graphics.HandleActiveVertex:
		c.SetBrush(col)
		c.DrawEllipse(x-r-1, y-r-1, 2*r+2, 2*r+2, true, true)
	default:
		c.DrawEllipse(x-r, y-r, 2*r, 2*r, true, true)
	}
	return true
}

// placement returns the affine transform that scales source pixels by
// (sx, sy), offsets them by (ax, ay), rotates them anticlockwise on screen
// by angle and moves them to (x, y).
func placement(x, y, sx, sy, ax, ay, angle float64) f64.Aff3 {
	s, co := math.Sincos(angle)
	return f64.Aff3{
		co * sx, s * sy, x + co*ax + s*ay,
		-s * sx, co * sy, y - s*ax + co*ay,
	}
}

// DrawBitmap draws the image registered as name, scaled to w×h pixels
// and centered at (xc, yc).
func (c *Canvas) DrawBitmap(name string, xc, yc, w, h, angle float64) bool {
	src, ok := c.bitmaps[name]
	if !ok || w <= 0 || h <= 0 || c.clip.Empty() {
		return false
	}
	b := src.Bounds()
	m := placement(xc, yc, w/float64(b.Dx()), h/float64(b.Dy()), -w/2, -h/2, angle)
	m[2] -= m[0]*float64(b.Min.X) + m[1]*float64(b.Min.Y)
	m[5] -= m[3]*float64(b.Min.X) + m[4]*float64(b.Min.Y)
	dst := c.img.SubImage(c.clip).(*image.RGBA)
	draw.BiLinear.Transform(dst, m, src, b, draw.Over, nil)
	return true
}

// DrawTextAt renders text with a fixed bitmap face scaled to height h,
// filled with the brush.
func (c *Canvas) DrawTextAt(text string, x, y, h float64, align int, angle float64) float64 {
	if text == "" || h <= 0 || !c.fill {
		return 0
	}
	metrics := c.face.Metrics()
	lineH := (metrics.Ascent + metrics.Descent).Ceil()
	adv := font.MeasureString(c.face, text).Ceil()
	if adv <= 0 || lineH <= 0 {
		return 0
	}

	tmp := image.NewRGBA(image.Rect(0, 0, adv, lineH))
	d := font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(c.brush),
		Face: c.face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	d.DrawString(text)

	scale := h / float64(lineH)
	width := float64(adv) * scale
	var ax, ay float64
	switch {
	case align&graphics.AlignRight != 0:
		ax = -width
	case align&graphics.AlignCenter != 0:
		ax = -width / 2
	}
	switch {
	case align&graphics.AlignBottom != 0:
		ay = -h
	case align&graphics.AlignVCenter != 0:
		ay = -h / 2
	}
	if !c.clip.Empty() {
		dst := c.img.SubImage(c.clip).(*image.RGBA)
		draw.BiLinear.Transform(dst, placement(x, y, scale, scale, ax, ay, angle), tmp, tmp.Bounds(), draw.Over, nil)
	}
	return width
}
