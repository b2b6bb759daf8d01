package geom

import "math"

// CrossTwoCircles intersects two circles. It returns -1 for identical
// circles, 0 when they don't meet, 1 when they touch and 2 otherwise.
func CrossTwoCircles(c1 Point, r1 float64, c2 Point, r2 float64) (p1, p2 Point, n int) {
	if equals(c1.X, c2.X) && equals(c1.Y, c2.Y) && equals(r1, r2) {
		return Point{}, Point{}, -1
	}
	d := c1.Distance(c2)
	if d > r1+r2 || d < math.Abs(r1-r2) {
		return Point{}, Point{}, 0
	}

	a := 2 * r1 * (c1.X - c2.X)
	b := 2 * r1 * (c1.Y - c2.Y)
	c := r2*r2 - r1*r1 - c1.DistanceSquared(c2)
	p := a*a + b*b
	q := -2 * a * c

	// onCircle picks the sign of the sine that puts the point on circle 2.
	onCircle := func(cos float64) Point {
		sin := math.Sqrt(max(0, 1-cos*cos))
		up := Point{c1.X + r1*cos, c1.Y + r1*sin}
		down := Point{c1.X + r1*cos, c1.Y - r1*sin}
		if math.Abs(up.Distance(c2)-r2) <= math.Abs(down.Distance(c2)-r2) {
			return up
		}
		return down
	}

	tol := MinDist * max(1, r1+r2)
	if math.Abs(d-(r1+r2)) < tol || math.Abs(d-math.Abs(r1-r2)) < tol {
		p1 = onCircle(-q / p / 2)
		return p1, p1, 1
	}

	r := c*c - b*b
	disc := math.Sqrt(max(0, q*q-4*p*r))
	p1 = onCircle((disc - q) / p / 2)
	p2 = onCircle((-disc - q) / p / 2)
	if p1.Equal(p2, MinTol) {
		// Both roots picked the same side; the other point mirrors p1 about
		// the line of centers.
		p2 = p1.Transform(Reflect(c1, c2.Sub(c1)))
	}
	return p1, p2, 2
}

// CrossLineCircle intersects the line through a and b with the circle. With
// ray set, only points on the ray from a through b count. It returns the
// number of intersections; a tangent line gives one.
func CrossLineCircle(a, b, c Point, r float64, ray bool) (p1, p2 Point, n int) {
	if a == b {
		return Point{}, Point{}, 0
	}
	dist, perp := PtToBeeline2(a, b, c)
	if math.Abs(dist-r) < r*1e-3 {
		p1 = c.RulerPoint(perp, r, 0)
		return p1, p1, 1
	}

	// Solve with the circle at the origin.
	la := a.Sub(c)
	lb := b.Sub(c)
	d := lb.Sub(la)
	d2 := d.Hypot2()
	dz := la.Cross(lb)
	delta := r*r*d2 - dz*dz
	if delta < 0 {
		return Point{}, Point{}, 0
	}
	s := math.Sqrt(delta) / d2
	sx := d.X * s
	if d.Y < 0 {
		sx = -sx
	}
	sy := math.Abs(d.Y) * s
	tx := dz * d.Y / d2
	ty := -dz * d.X / d2
	p1 = Point{c.X + tx + sx, c.Y + ty + sy}
	p2 = Point{c.X + tx - sx, c.Y + ty - sy}
	n = 2
	if delta < 1e-8 {
		n = 1
	}

	if ray {
		b1 := IsProjectBetweenRayline(a, b, p1)
		b2 := IsProjectBetweenRayline(a, b, p2)
		switch {
		case !b1 && !b2:
			n = 0
		case !b1:
			n, p1 = 1, p2
		case !b2:
			n, p2 = 1, p1
		}
	}
	return p1, p2, n
}
