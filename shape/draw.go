package shape

import (
	"honnef.co/go/vgcore/geom"
	"honnef.co/go/vgcore/graphics"
)

// drawShape renders sp with ctx. Shapes with arrowheads are drawn from
// their outline so that the heads follow the path ends.
func drawShape(sp Shape, mode int, gs *graphics.Graphics, ctx *graphics.Context, segment int) bool {
	if ctx.HasArrowHead() && sp.Kind() != KindPath {
		var p geom.Path
		sp.Output(&p)
		if p.Len() > 0 {
			return gs.DrawPath(ctx, &p, mode == 0)
		}
	}

	switch sp := sp.(type) {
	case *Grid:
		return drawGrid(sp, gs, ctx)
	case *Dot:
		return drawDot(sp, gs, ctx)
	case *Line:
		switch {
		case sp.IsRayline():
			return gs.DrawRayline(ctx, sp.Start(), sp.End())
		case sp.IsBeeline():
			return gs.DrawBeeline(ctx, sp.Start(), sp.End())
		}
		return gs.DrawLine(ctx, sp.Start(), sp.End())
	case *Rect:
		return gs.DrawPolygon(ctx, sp.Corners())
	case *Ellipse:
		if sp.IsOrtho() {
			return gs.DrawEllipse(ctx, sp.Center(), sp.RadiusX(), sp.RadiusY())
		}
		return gs.DrawBeziers(ctx, sp.Beziers(), true)
	case *RoundRect:
		if sp.IsOrtho() {
			return gs.DrawRoundRect(ctx, sp.Rect(), sp.RadiusX(), sp.RadiusY())
		}
		var p geom.Path
		sp.Output(&p)
		return gs.DrawPath(ctx, &p, true)
	case *Diamond:
		return gs.DrawPolygon(ctx, sp.vertices())
	case *Parallel:
		return gs.DrawPolygon(ctx, sp.Points())
	case *Lines:
		if sp.IsClosed() {
			return gs.DrawPolygon(ctx, sp.Points())
		}
		return gs.DrawLines(ctx, sp.Points())
	case *Splines:
		pts := sp.Points()
		switch {
		case len(pts) == 2:
			return gs.DrawLine(ctx, pts[0], pts[1])
		case sp.Vectors() != nil:
			return gs.DrawSplines(ctx, pts, sp.Vectors(), sp.IsClosed())
		}
		return gs.DrawQuadSplines(ctx, pts, sp.IsClosed())
	case *Arc:
		r := sp.Radius()
		if sp.IsSector() {
			return gs.DrawPie(ctx, sp.Center(), r, r, sp.StartAngle(), sp.SweepAngle())
		}
		return gs.DrawArc(ctx, sp.Center(), r, r, sp.StartAngle(), sp.SweepAngle())
	case *Path:
		return gs.DrawPath(ctx, sp.GeomPath(), mode == 0)
	case *Group:
		return sp.draw(mode, gs, ctx, segment)
	case *Composite:
		return sp.draw(mode, gs, ctx)
	}
	return false
}

// drawDot draws a filled disc slightly wider than the pen, or a handle
// glyph for positive point types.
func drawDot(sp *Dot, gs *graphics.Graphics, ctx *graphics.Context) bool {
	if t := sp.PointType(); t > 0 {
		return gs.DrawHandle(sp.Point(0), graphics.HandleKind(t-1), 0)
	}
	disc := graphics.Context{Style: graphics.NullLine, FillColor: ctx.LineColor}
	if ctx.HasFillColor() {
		disc.FillColor = ctx.FillColor
	}
	w := gs.CalcPenWidth(1.1*ctx.LineWidth, false)
	return gs.DrawCircle(&disc, sp.Point(0), gs.Transform().LengthToModel(w, false))
}

// drawGrid draws the cells of a valid grid with every fifth line
// emphasised when cells get dense. An invalid grid is drawn as its frame,
// crossed out in red if a cell size is set.
func drawGrid(sp *Grid, gs *graphics.Graphics, ctx *graphics.Context) bool {
	if !sp.IsValid(geom.MinDist) {
		rect := sp.Rect()
		edge := *ctx
		edge.SetNoFillColor()
		gs.DrawRect(&edge, rect)
		if sp.Cell() != (geom.Vec2{}) {
			bad := *ctx
			bad.LineColor = graphics.Red
			bad.Style = graphics.DashLine
			bad.LineWidth = 0
			bad.AutoScale = false
			gs.DrawLine(&bad, rect.LeftTop(), rect.RightBottom())
			gs.DrawLine(&bad, rect.LeftBottom(), rect.RightTop())
		}
		return !rect.IsEmpty(geom.DefaultTol)
	}

	cell := sp.Cell().Div(2)
	nx := int(sp.Width()/cell.X + geom.MinDist)
	ny := int(sp.Height()/cell.Y + geom.MinDist)
	org := sp.Point(3)
	rect := geom.NewBox(org, org.Offset(cell.X*float64(nx), cell.Y*float64(ny)))

	w := gs.CalcPenWidth(ctx.LineWidth, ctx.IsAutoScale()) / -2
	grid := graphics.Context{Style: graphics.SolidLine, LineWidth: w, LineColor: ctx.LineColor, FillColor: graphics.Invalid}
	n := 0
	if gs.DrawRect(&grid, rect) {
		n++
	}

	dense := gs.Transform().LengthToModel(20, false)
	switchX := nx >= 10 && cell.X < dense
	switchY := ny >= 10 && cell.Y < dense
	alpha := ctx.LineColor.A()
	line := func(minor bool, a, b geom.Point) {
		grid.LineWidth = w
		grid.LineColor = ctx.LineColor
		if minor {
			grid.LineWidth = w / 2
		}
		if -w < 0.9 && minor {
			grid.LineColor = ctx.LineColor.WithAlpha(alpha / 2)
		}
		if gs.DrawLine(&grid, a, b) {
			n++
		}
	}

	a, b := rect.LeftTop(), rect.LeftBottom()
	for i := 1; i < nx; i++ {
		a.X += cell.X
		b.X += cell.X
		line(!switchX || i%5 > 0, a, b)
	}
	a, b = rect.LeftBottom(), rect.RightBottom()
	for j := 1; j < ny; j++ {
		a.Y += cell.Y
		b.Y += cell.Y
		line(!switchY || j%5 > 0, a, b)
	}
	return n > 0
}
