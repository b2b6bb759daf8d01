package geom

// QuadBez is a quadratic Bézier segment.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// Raise returns the cubic Bézier that exactly represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	v := Vec2(q.P0).Mul(mt * mt).
		Add(Vec2(q.P1).Mul(mt * 2.0).
			Add(Vec2(q.P2).Mul(t)).
			Mul(t))
	return Point(v)
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{
		P0: q.P0.Transform(aff),
		P1: q.P1.Transform(aff),
		P2: q.P2.Transform(aff),
	}
}

// Extrema returns the parameters in (0, 1) where the tangent is horizontal or
// vertical.
func (q QuadBez) Extrema() ([2]float64, int) {
	var out [2]float64
	var n int
	d0 := q.P1.Sub(q.P0)
	d1 := q.P2.Sub(q.P1)
	dd := d1.Sub(d0)
	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			out[n] = t
			n++
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			out[n] = t
			n++
			if n == 2 && out[0] > out[1] {
				out[0], out[1] = out[1], out[0]
			}
		}
	}
	return out, n
}

func (q QuadBez) BoundingBox() Box {
	b := NewBox(q.P0, q.P2)
	ex, n := q.Extrema()
	for _, t := range ex[:n] {
		b = b.UnionPoint(q.Eval(t))
	}
	return b
}
