package graphics

import (
	"math"

	"honnef.co/go/vgcore/geom"
)

// Transform maps between three coordinate spaces. Model coordinates are
// those of the shapes. World coordinates are millimetres on the drawing,
// y-up. Display coordinates are pixels of the view, y-down by default.
//
// The zero Transform is not usable; use [NewTransform].
type Transform struct {
	width, height int
	dpiX, dpiY    float64
	ydown         bool
	centerW       geom.Point
	viewScale     float64
	w2dx, w2dy    float64

	m2w, w2m geom.Affine
	d2w, w2d geom.Affine
	d2m, m2d geom.Affine

	minScale, maxScale float64
	limitsW            geom.Box
	zoomTimes          int
}

// NewTransform returns a 1×1 pixel view at 96 DPI, centered on the world
// origin at 100%.
func NewTransform(ydown bool) *Transform {
	xf := &Transform{
		width:     1,
		height:    1,
		dpiX:      96,
		dpiY:      96,
		ydown:     ydown,
		viewScale: 1,
		m2w:       geom.Identity,
		w2m:       geom.Identity,
		minScale:  0.01,
		maxScale:  5,
		limitsW:   geom.BoxFromCenter(geom.Point{}, 2e5, 2e5),
	}
	xf.update()
	return xf
}

// Clone returns an independent copy of xf.
func (xf *Transform) Clone() *Transform {
	c := *xf
	return &c
}

func (xf *Transform) update() {
	xf.w2dx = xf.viewScale * xf.dpiX / 25.4
	xf.w2dy = xf.viewScale * xf.dpiY / 25.4

	wdy := xf.w2dy
	if xf.ydown {
		wdy = -wdy
	}
	xc := float64(xf.width) * 0.5
	yc := float64(xf.height) * 0.5

	xf.d2w = geom.Affine{
		N0: 1 / xf.w2dx, N3: 1 / wdy,
		N4: xf.centerW.X - xc/xf.w2dx, N5: xf.centerW.Y - yc/wdy,
	}
	xf.w2d = geom.Affine{
		N0: xf.w2dx, N3: wdy,
		N4: xc - xf.w2dx*xf.centerW.X, N5: yc - wdy*xf.centerW.Y,
	}
	xf.d2m = xf.d2w.Then(xf.w2m)
	xf.m2d = xf.m2w.Then(xf.w2d)
}

func (xf *Transform) changed() { xf.zoomTimes++ }

func (xf *Transform) DPI() (x, y float64) { return xf.dpiX, xf.dpiY }
func (xf *Transform) Width() int          { return xf.width }
func (xf *Transform) Height() int         { return xf.height }
func (xf *Transform) CenterW() geom.Point { return xf.centerW }
func (xf *Transform) ViewScale() float64  { return xf.viewScale }

func (xf *Transform) ModelToWorld() geom.Affine   { return xf.m2w }
func (xf *Transform) WorldToModel() geom.Affine   { return xf.w2m }
func (xf *Transform) DisplayToWorld() geom.Affine { return xf.d2w }
func (xf *Transform) WorldToDisplay() geom.Affine { return xf.w2d }
func (xf *Transform) DisplayToModel() geom.Affine { return xf.d2m }
func (xf *Transform) ModelToDisplay() geom.Affine { return xf.m2d }

// ZoomTimes counts the changes to the mapping. Caches keyed on the view
// compare it to detect staleness.
func (xf *Transform) ZoomTimes() int { return xf.zoomTimes }

// WorldToDisplayX returns the pixels per world unit along x, with or without
// the view scale applied.
func (xf *Transform) WorldToDisplayX(useViewScale bool) float64 {
	if useViewScale {
		return math.Abs(xf.w2dx)
	}
	return math.Abs(xf.w2dx / xf.viewScale)
}

func (xf *Transform) WorldToDisplayY(useViewScale bool) float64 {
	if useViewScale {
		return math.Abs(xf.w2dy)
	}
	return math.Abs(xf.w2dy / xf.viewScale)
}

// LengthToModel converts a length on the screen into model units. With mm
// set, the length is in millimetres of the screen; otherwise it is pixels.
func (xf *Transform) LengthToModel(length float64, mm bool) float64 {
	v := geom.Vec(length, length)
	if mm {
		return v.Transform(xf.w2m).Hypot() * math.Sqrt2 / 2 / xf.viewScale
	}
	return v.Transform(xf.d2m).Hypot() * math.Sqrt2 / 2
}

// MmToDisplay converts screen millimetres to pixels.
func (xf *Transform) MmToDisplay(mm float64) float64 {
	return mm * xf.dpiY / 25.4
}

// SetWndSize resizes the view. Sizes of one pixel or less are ignored.
func (xf *Transform) SetWndSize(width, height int) bool {
	if (xf.width != width || xf.height != height) && width > 1 && height > 1 {
		xf.width, xf.height = width, height
		xf.update()
		xf.changed()
		return true
	}
	return false
}

// SetModelTransform sets the model to world mapping. It fails for singular
// transforms.
func (xf *Transform) SetModelTransform(m geom.Affine) bool {
	inv, ok := m.Invert()
	if !ok || m == xf.m2w {
		return false
	}
	xf.m2w, xf.w2m = m, inv
	xf.d2m = xf.d2w.Then(xf.w2m)
	xf.m2d = xf.m2w.Then(xf.w2d)
	xf.changed()
	return true
}

// SetResolution sets the device resolution. A dpiY below 0.1 means dpiX.
func (xf *Transform) SetResolution(dpiX, dpiY float64) {
	if dpiY < 0.1 {
		dpiY = dpiX
	}
	if dpiX > 0.1 && dpiY > 0.1 && (xf.dpiX != dpiX || xf.dpiY != dpiY) {
		xf.dpiX, xf.dpiY = dpiX, dpiY
		xf.update()
		xf.changed()
	}
}

// WndRect returns the view in display coordinates.
func (xf *Transform) WndRect() geom.Box {
	return geom.Box{XMax: float64(xf.width), YMax: float64(xf.height)}
}

func (xf *Transform) WndRectW() geom.Box { return xf.WndRect().Transform(xf.d2w) }
func (xf *Transform) WndRectM() geom.Box { return xf.WndRect().Transform(xf.d2m) }

// SetViewScaleRange bounds the zoom factor. The minimum is clamped to
// [1e-5, 0.5] and the maximum to [1, 50].
func (xf *Transform) SetViewScaleRange(minScale, maxScale float64) {
	if minScale > maxScale {
		minScale, maxScale = maxScale, minScale
	}
	xf.minScale = min(max(minScale, 1e-5), 0.5)
	xf.maxScale = min(max(maxScale, 1), 50)
}

// SetWorldLimits bounds panning. An empty box restores the default
// 200m square.
func (xf *Transform) SetWorldLimits(rect geom.Box) geom.Box {
	old := xf.limitsW
	if rect.IsEmpty(geom.DefaultTol) {
		xf.limitsW = geom.BoxFromCenter(geom.Point{}, 2e5, 2e5)
	} else {
		xf.limitsW = rect.Normalize()
	}
	return old
}

func (xf *Transform) setZoom(centerW geom.Point, scale float64) bool {
	if centerW == xf.centerW && math.Abs(scale-xf.viewScale) < 1e-7 {
		return false
	}
	xf.centerW = centerW
	xf.viewScale = scale
	xf.update()
	xf.changed()
	return true
}

func (xf *Transform) clampScale(scale float64) float64 {
	return min(max(scale, xf.minScale), xf.maxScale)
}

func (xf *Transform) scaleOutOfRange(scale float64) bool {
	return scale < geom.MinDist || scale < xf.minScale-geom.MinDist || scale > xf.maxScale+geom.MinDist
}

// adjustCenter moves ptW so that a view of half size (halfw, halfh) stays
// inside the world limits.
func (xf *Transform) adjustCenter(ptW geom.Point, halfw, halfh float64) geom.Point {
	rectW := xf.limitsW.Inflate(2, 2)
	if ptW.X-halfw < rectW.XMin {
		ptW.X += rectW.XMin - (ptW.X - halfw)
	}
	if ptW.X+halfw > rectW.XMax {
		ptW.X += rectW.XMax - (ptW.X + halfw)
	}
	if 2*halfw >= rectW.Width() {
		ptW.X = rectW.Center().X
	}
	if ptW.Y-halfh < rectW.YMin {
		ptW.Y += rectW.YMin - (ptW.Y - halfh)
	}
	if ptW.Y+halfh > rectW.YMax {
		ptW.Y += rectW.YMax - (ptW.Y + halfh)
	}
	if 2*halfh >= rectW.Height() {
		ptW.Y = rectW.Center().Y
	}
	return ptW
}

// Zoom centers the view on centerW at the given scale, keeping the view
// inside the world limits.
func (xf *Transform) Zoom(centerW geom.Point, scale float64) bool {
	scale = xf.clampScale(scale)
	halfw := float64(xf.width) / xf.w2dx * 0.5
	halfh := float64(xf.height) / xf.w2dy * 0.5
	centerW = xf.adjustCenter(centerW, halfw, halfh)

	rectW := xf.limitsW.Inflate(2, 2)
	if 2*halfw > rectW.Width() && 2*halfh > rectW.Height() {
		scale = min(scale*min(2*halfw/rectW.Width(), 2*halfh/rectW.Height()), xf.maxScale)
	}
	return xf.setZoom(centerW, scale)
}

// ZoomTo fits rectW, in world coordinates, into the view less a 4 pixel
// margin on each side. It fails for empty boxes.
func (xf *Transform) ZoomTo(rectW geom.Box) bool {
	if rectW.IsEmpty(geom.DefaultTol) {
		return false
	}
	d2mmX := xf.viewScale / xf.w2dx
	d2mmY := xf.viewScale / xf.w2dy

	w := float64(xf.width)
	h := float64(xf.height)
	cen := geom.Pt(w*0.5, h*0.5)
	w -= 8
	h -= 8
	if w < 4 || h < 4 {
		return false
	}
	w *= d2mmX
	h *= d2mmY
	cen = geom.Pt(cen.X*d2mmX, cen.Y*d2mmY)

	var scale float64
	if h*rectW.Width() > w*rectW.Height() {
		scale = w / rectW.Width()
	} else {
		scale = h / rectW.Height()
	}
	scale = xf.clampScale(scale)

	ptW := geom.Point{
		X: rectW.Center().X + (float64(xf.width)*d2mmX*0.5-cen.X)/scale,
		Y: rectW.Center().Y - (float64(xf.height)*d2mmY*0.5-cen.Y)/scale,
	}
	halfw := float64(xf.width) * d2mmX / scale * 0.5
	halfh := float64(xf.height) * d2mmY / scale * 0.5
	if !xf.limitsW.Inflate(2, 2).Contains(geom.BoxFromCenter(ptW, 2*halfw, 2*halfh)) {
		ptW = xf.adjustCenter(ptW, halfw, halfh)
	}
	return xf.setZoom(ptW, scale)
}

// ZoomPan scrolls the view by a display offset.
func (xf *Transform) ZoomPan(dxPixel, dyPixel float64) bool {
	v := geom.Vec(dxPixel, dyPixel).Transform(xf.d2w)
	ptW := xf.centerW.Translate(v.Negate())
	halfw := float64(xf.width) / xf.w2dx * 0.5
	halfh := float64(xf.height) / xf.w2dy * 0.5
	ptW = xf.adjustCenter(ptW, halfw, halfh)
	if ptW == xf.centerW {
		return false
	}
	return xf.setZoom(ptW, xf.viewScale)
}

// ZoomScale changes the view scale keeping the display point at fixed, or
// the view center if at is nil.
func (xf *Transform) ZoomScale(scale float64, at *geom.Point) bool {
	if xf.scaleOutOfRange(scale) {
		return false
	}
	ptAt := geom.Pt(float64(xf.width)*0.5, float64(xf.height)*0.5)
	if at != nil {
		ptAt = *at
	}
	ptAtW := ptAt.Transform(xf.d2w)

	w2dx := xf.w2dx / xf.viewScale * scale
	w2dy := xf.w2dy / xf.viewScale * scale
	ptW := geom.Point{
		X: ptAtW.X + (float64(xf.width)*0.5-ptAt.X)/w2dx,
		Y: ptAtW.Y - (float64(xf.height)*0.5-ptAt.Y)/w2dy,
	}
	if !xf.ydown {
		ptW.Y = ptAtW.Y + (float64(xf.height)*0.5-ptAt.Y)/w2dy
	}
	return xf.setZoom(ptW, scale)
}

// ZoomByFactor grows the view scale by 1+factor, or shrinks it for negative
// factors.
func (xf *Transform) ZoomByFactor(factor float64, at *geom.Point) bool {
	scale := xf.viewScale
	if factor > 0 {
		scale *= 1 + math.Abs(factor)
	} else {
		scale /= 1 + math.Abs(factor)
	}
	scale = xf.clampScale(scale)
	if math.Abs(scale-xf.viewScale) < 1e-7 {
		return false
	}
	return xf.ZoomScale(scale, at)
}
