// Package raster implements [graphics.Canvas] on an in-memory RGBA image.
//
// Coverage is computed by golang.org/x/image/vector. Strokes are built from
// the flattened path as one quad per segment plus round joins; dashes are
// cut from the flattened polyline.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/vector"

	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
)

type pen struct {
	col   color.NRGBA
	width float64
	dash  []float64
	phase float64
	on    bool
}

// Canvas draws into an *image.RGBA. The zero value is not usable; use
// [New] or [NewFromImage].
type Canvas struct {
	img   *image.RGBA
	ras   vector.Rasterizer
	pen   pen
	brush color.NRGBA
	fill  bool

	paths []subpath
	cur   *subpath
	last  geom.Point

	clip      image.Rectangle
	clipStack []image.Rectangle

	bitmaps map[string]image.Image
	face    font.Face
}

var _ graphics.Canvas = (*Canvas)(nil)

// New returns a canvas of w×h transparent pixels.
func New(w, h int) *Canvas {
	return NewFromImage(image.NewRGBA(image.Rect(0, 0, w, h)))
}

// NewFromImage returns a canvas drawing into img.
func NewFromImage(img *image.RGBA) *Canvas {
	return &Canvas{
		img:     img,
		clip:    img.Bounds(),
		pen:     pen{col: color.NRGBA{A: 255}, width: 1, on: true},
		bitmaps: make(map[string]image.Image),
		face:    basicfont.Face7x13,
	}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

// WritePNG encodes the image as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// SetBitmap registers img under name for DrawBitmap. A nil img removes it.
func (c *Canvas) SetBitmap(name string, img image.Image) {
	if img == nil {
		delete(c.bitmaps, name)
		return
	}
	c.bitmaps[name] = img
}

// Fill paints the whole image, ignoring the clip.
func (c *Canvas) Fill(argb graphics.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(argb.NRGBA()), image.Point{}, draw.Src)
}

func (c *Canvas) SetPen(argb graphics.Color, width float64, style graphics.LineStyle, phase float64) {
	c.pen = pen{
		col:   argb.NRGBA(),
		width: max(width, 1),
		phase: phase,
		on:    !argb.IsInvalid() && style != graphics.NullLine,
	}
	c.pen.dash = dashPattern(style, c.pen.width)
}

func (c *Canvas) SetBrush(argb graphics.Color) {
	c.brush = argb.NRGBA()
	c.fill = !argb.IsInvalid()
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := pixelRect(x, y, w, h).Intersect(c.clip)
	draw.Draw(c.img, r, image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) DrawRect(x, y, w, h float64, stroke, fill bool) {
	c.BeginPath()
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
	c.DrawPath(stroke, fill)
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64) {
	c.BeginPath()
	c.MoveTo(x1, y1)
	c.LineTo(x2, y2)
	c.DrawPath(true, false)
}

func (c *Canvas) DrawEllipse(x, y, w, h float64, stroke, fill bool) {
	pts := geom.EllipseToBezier(geom.Pt(x+w/2, y+h/2), w/2, h/2)
	c.BeginPath()
	c.MoveTo(pts[0].X, pts[0].Y)
	for i := 1; i+2 < len(pts); i += 3 {
		c.BezierTo(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y, pts[i+2].X, pts[i+2].Y)
	}
	c.ClosePath()
	c.DrawPath(stroke, fill)
}

func (c *Canvas) BeginPath() {
	c.paths = c.paths[:0]
	c.cur = nil
}

func (c *Canvas) MoveTo(x, y float64) {
	c.last = geom.Pt(x, y)
	c.paths = append(c.paths, subpath{pts: []geom.Point{c.last}})
	c.cur = &c.paths[len(c.paths)-1]
}

func (c *Canvas) LineTo(x, y float64) {
	if c.cur == nil {
		c.MoveTo(x, y)
		return
	}
	c.last = geom.Pt(x, y)
	c.cur.pts = append(c.cur.pts, c.last)
}

func (c *Canvas) BezierTo(c1x, c1y, c2x, c2y, x, y float64) {
	if c.cur == nil {
		c.MoveTo(c1x, c1y)
	}
	bez := geom.CubicBez{P0: c.last, P1: geom.Pt(c1x, c1y), P2: geom.Pt(c2x, c2y), P3: geom.Pt(x, y)}
	c.cur.pts = flattenCubic(c.cur.pts, bez)
	c.last = bez.P3
}

func (c *Canvas) QuadTo(cpx, cpy, x, y float64) {
	if c.cur == nil {
		c.MoveTo(cpx, cpy)
	}
	q := geom.QuadBez{P0: c.last, P1: geom.Pt(cpx, cpy), P2: geom.Pt(x, y)}
	c.cur.pts = flattenCubic(c.cur.pts, q.Raise())
	c.last = q.P2
}

func (c *Canvas) ClosePath() {
	if c.cur == nil {
		return
	}
	c.cur.closed = true
	c.last = c.cur.pts[0]
	c.cur = nil
}

// DrawPath fills and then strokes the current path. Filling closes every
// subpath implicitly.
func (c *Canvas) DrawPath(stroke, fill bool) {
	if fill && c.fill {
		polys := make([][]geom.Point, 0, len(c.paths))
		for _, sp := range c.paths {
			if len(sp.pts) > 2 {
				polys = append(polys, sp.pts)
			}
		}
		c.rasterize(polys, c.brush)
	}
	if stroke && c.pen.on {
		c.rasterize(c.strokePolys(), c.pen.col)
	}
}

func (c *Canvas) strokePolys() [][]geom.Point {
	var polys [][]geom.Point
	for _, sp := range c.paths {
		pts := sp.pts
		if sp.closed && len(pts) > 1 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		if len(pts) == 1 {
			polys = append(polys, disc(pts[0], c.pen.width/2))
			continue
		}
		if c.pen.dash == nil {
			polys = outline(polys, pts, c.pen.width)
			continue
		}
		dashPolyline(pts, c.pen.dash, c.pen.phase, func(dash []geom.Point) {
			polys = outline(polys, dash, c.pen.width)
		})
	}
	return polys
}

// rasterize composites the union of polys in col over the clipped image.
func (c *Canvas) rasterize(polys [][]geom.Point, col color.NRGBA) {
	r := c.clip
	if r.Empty() || len(polys) == 0 || col.A == 0 {
		return
	}
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	c.ras.Reset(r.Dx(), r.Dy())
	for _, poly := range polys {
		if !finite(poly) {
			continue
		}
		c.ras.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
		for _, p := range poly[1:] {
			c.ras.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		c.ras.ClosePath()
	}
	c.ras.Draw(c.img, r, image.NewUniform(col), image.Point{})
}

func finite(pts []geom.Point) bool {
	for _, p := range pts {
		if p.IsNaN() || p.IsInf() || math.Abs(p.X) > 1e7 || math.Abs(p.Y) > 1e7 {
			return false
		}
	}
	return true
}

func (c *Canvas) SaveClip() bool {
	c.clipStack = append(c.clipStack, c.clip)
	return true
}

func (c *Canvas) RestoreClip() {
	if n := len(c.clipStack); n > 0 {
		c.clip = c.clipStack[n-1]
		c.clipStack = c.clipStack[:n-1]
	}
}

func (c *Canvas) ClipRect(x, y, w, h float64) bool {
	c.clip = c.clip.Intersect(pixelRect(x, y, w, h))
	return !c.clip.Empty()
}

// ClipBounds returns the current clip rectangle.
func (c *Canvas) ClipBounds() image.Rectangle { return c.clip }

func pixelRect(x, y, w, h float64) image.Rectangle {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
}
