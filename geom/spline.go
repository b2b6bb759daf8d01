package geom

import "math"

// SplineFlags select the end conditions of an open cubic spline, or a closed
// loop.
type SplineFlags int

const (
	// CubicTan1 clamps the start to the tangent already in knotvs[0].
	CubicTan1 SplineFlags = 1 << iota
	// CubicArm1 makes the start a cantilever.
	CubicArm1
	// CubicTan2 clamps the end to the tangent already in knotvs[n-1].
	CubicTan2
	// CubicArm2 makes the end a cantilever.
	CubicArm2
	// CubicLoop closes the spline; other flags are ignored.
	CubicLoop
)

// maxLoopKnots bounds the dense solve used for closed splines.
const maxLoopKnots = 512

// TriEquations solves the tridiagonal system with sub-diagonal a, diagonal b
// and super-diagonal c for the paired right-hand sides vs, in place. b is
// overwritten. It fails on a zero pivot.
func TriEquations(a, b, c []float64, vs []Vec2) bool {
	n := len(vs)
	if n < 2 || len(a) < n-1 || len(b) < n || len(c) < n-1 {
		return false
	}
	w := b[0]
	if isZero(w) {
		return false
	}
	w = 1 / w
	vs[0] = vs[0].Mul(w)
	for i := 0; i <= n-2; i++ {
		b[i] = c[i] * w
		w = b[i+1] - a[i]*b[i]
		if isZero(w) {
			return false
		}
		w = 1 / w
		vs[i+1] = vs[i+1].Sub(vs[i].Mul(a[i])).Mul(w)
	}
	for i := n - 2; i >= 0; i-- {
		vs[i] = vs[i].Sub(vs[i+1].Mul(b[i]))
	}
	return true
}

// GaussJordan solves the dense n×n system mat (row-major) for the paired
// right-hand sides vs, in place, using partial pivoting. mat is overwritten.
func GaussJordan(n int, mat []float64, vs []Vec2) bool {
	if n < 2 || len(mat) < n*n || len(vs) < n {
		return false
	}
	for k := range n {
		m := k
		c := mat[k*n+k]
		for i := k + 1; i < n; i++ {
			if math.Abs(mat[i*n+k]) > math.Abs(c) {
				m = i
				c = mat[i*n+k]
			}
		}
		if m != k {
			for j := k; j < n; j++ {
				mat[m*n+j], mat[k*n+j] = mat[k*n+j], mat[m*n+j]
			}
			vs[m], vs[k] = vs[k], vs[m]
		}

		c = mat[k*n+k]
		if isZero(c) {
			return false
		}
		c = 1 / c
		for j := k; j < n; j++ {
			mat[k*n+j] *= c
		}
		vs[k] = vs[k].Mul(c)
		for i := k + 1; i < n; i++ {
			c = mat[i*n+k]
			for j := k; j < n; j++ {
				mat[i*n+j] -= mat[k*n+j] * c
			}
			vs[i] = vs[i].Sub(vs[k].Mul(c))
		}
	}
	for i := n - 2; i >= 0; i-- {
		for j := i; j < n-1; j++ {
			vs[i] = vs[i].Sub(vs[j+1].Mul(mat[i*n+j+1]))
		}
	}
	return true
}

// CubicSplines computes the knot tangents of the C² cubic spline through
// knots and stores them in knotvs, which must be as long as knots. Tangents
// that flags clamp are read from knotvs. All tangents are scaled by tension.
// On failure knotvs is left untouched.
func CubicSplines(knots []Point, knotvs []Vec2, flags SplineFlags, tension float64) bool {
	n := len(knots)
	if n < 2 || len(knotvs) < n {
		return false
	}
	vs := make([]Vec2, n)
	copy(vs, knotvs)

	var ok bool
	if flags&CubicLoop != 0 && n > 2 && n <= maxLoopKnots {
		ok = cubicClosed(knots, vs)
	} else {
		ok = cubicOpen(knots, vs, flags)
	}
	if !ok {
		return false
	}
	if !equals(tension, 1) {
		for i := range vs {
			vs[i] = vs[i].Mul(tension)
		}
	}
	copy(knotvs, vs)
	return true
}

func cubicClosed(knots []Point, vs []Vec2) bool {
	n := len(knots)
	n1 := n - 1
	a := make([]float64, n*n)
	a[0] = 4
	a[1] = 1
	a[n1] = 1
	a[n1*n+n1-1] = 1
	a[n1*n+n1] = 4
	a[n1*n] = 1
	vs[0] = knots[1].Sub(knots[n1]).Mul(3)
	vs[n1] = knots[0].Sub(knots[n1-1]).Mul(3)
	for i := 1; i < n1; i++ {
		a[i*n+i-1] = 1
		a[i*n+i] = 4
		a[i*n+i+1] = 1
		vs[i] = knots[i+1].Sub(knots[i-1]).Mul(3)
	}
	return GaussJordan(n, a, vs)
}

func cubicOpen(knots []Point, vs []Vec2, flags SplineFlags) bool {
	n := len(knots)
	buf := make([]float64, 3*n)
	a, b, c := buf[:n], buf[n:2*n], buf[2*n:]

	switch {
	case flags&CubicTan1 != 0:
		b[0], c[0] = 1, 0
	case flags&CubicArm1 != 0:
		b[0], c[0] = 1, 1
		vs[0] = knots[1].Sub(knots[0]).Mul(2)
	default:
		b[0], c[0] = 1, 0.5
		vs[0] = knots[1].Sub(knots[0]).Mul(1.5)
	}
	switch {
	case flags&CubicTan2 != 0:
		a[n-2], b[n-1] = 0, 1
	case flags&CubicArm2 != 0:
		a[n-2], b[n-1] = 1, 1
		vs[n-1] = knots[n-1].Sub(knots[n-2]).Mul(2)
	default:
		a[n-2], b[n-1] = 0.5, 1
		vs[n-1] = knots[n-1].Sub(knots[n-2]).Mul(1.5)
	}
	for i := 1; i < n-1; i++ {
		a[i-1] = 1
		b[i] = 4
		c[i] = 1
		vs[i] = knots[i+1].Sub(knots[i-1]).Mul(3)
	}
	return TriEquations(a, b, c, vs)
}

// FitCubicSpline evaluates segment i of a Hermite spline at t. Indices wrap,
// so i = n-1 is the closing segment of a loop.
func FitCubicSpline(knots []Point, knotvs []Vec2, i int, t float64) Point {
	n := len(knots)
	i1 := i % n
	i2 := (i + 1) % n
	k1, k2 := knots[i1], knots[i2]
	v1, v2 := knotvs[i1], knotvs[i2]

	eval := func(p1, p2, d1, d2 float64) float64 {
		b2 := 3*(p2-p1) - 2*d1 - d2
		b3 := 2*(p1-p2) + d1 + d2
		return p1 + (d1+(b2+b3*t)*t)*t
	}
	return Point{
		X: eval(k1.X, k2.X, v1.X, v2.X),
		Y: eval(k1.Y, k2.Y, v1.Y, v2.Y),
	}
}

// CubicSplineToBezier returns segment i as a cubic Bézier. For a Hermite
// spline the arms are a third of the tangents; otherwise the tangents are the
// arms themselves.
func CubicSplineToBezier(knots []Point, knotvs []Vec2, i int, hermite bool) CubicBez {
	n := len(knots)
	i1 := i % n
	i2 := (i + 1) % n
	d := 1.0
	if hermite {
		d = 1.0 / 3.0
	}
	return CubicBez{
		knots[i1],
		knots[i1].Translate(knotvs[i1].Mul(d)),
		knots[i2].Translate(knotvs[i2].Mul(-d)),
		knots[i2],
	}
}

// splineSegments returns the number of Bézier segments of a spline of n
// knots.
func splineSegments(n int, closed bool) int {
	switch {
	case n < 2:
		return 0
	case closed:
		return n
	default:
		return n - 1
	}
}

// CubicSplinesToBeziers converts the whole spline to a run of cubic
// segments (1+3k points).
func CubicSplinesToBeziers(knots []Point, knotvs []Vec2, closed, hermite bool) []Point {
	segs := splineSegments(len(knots), closed)
	if segs == 0 {
		return nil
	}
	out := make([]Point, 0, 1+3*segs)
	for i := range segs {
		c := CubicSplineToBezier(knots, knotvs, i, hermite)
		if i == 0 {
			out = append(out, c.P0)
		}
		out = append(out, c.P1, c.P2, c.P3)
	}
	return out
}

// BSplinesToBeziers converts a uniform cubic B-spline with the given control
// points to a run of cubic segments. An open spline needs four control
// points and a closed one three; fewer yield nil.
func BSplinesToBeziers(ctlpts []Point, closed bool) []Point {
	n := len(ctlpts)
	if n < 3 || (!closed && n < 4) {
		return nil
	}
	const d6 = 1.0 / 6.0
	combine := func(w1 float64, p1 Point, w2 float64, p2 Point, w3 float64, p3 Point) Point {
		return Point{
			X: (w1*p1.X + w2*p2.X + w3*p3.X) * d6,
			Y: (w1*p1.Y + w2*p2.Y + w3*p3.Y) * d6,
		}
	}

	pt1, pt2, pt3, pt4 := ctlpts[0], ctlpts[1], ctlpts[2], ctlpts[3%n]
	out := []Point{
		combine(1, pt1, 4, pt2, 1, pt3),
		combine(4, pt2, 2, pt3, 0, pt4),
		combine(2, pt2, 4, pt3, 0, pt4),
		combine(1, pt2, 4, pt3, 1, pt4),
	}
	end := n
	if closed {
		end = n + 3
	}
	for ci := 4; ci < end; ci++ {
		pt2, pt3, pt4 = pt3, pt4, ctlpts[ci%n]
		out = append(out,
			combine(4, pt2, 2, pt3, 0, pt4),
			combine(2, pt2, 4, pt3, 0, pt4),
			combine(1, pt2, 4, pt3, 1, pt4),
		)
	}
	return out
}
