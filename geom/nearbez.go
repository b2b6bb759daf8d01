package geom

import "math"

const (
	nearBezDegree   = 3
	nearBezW        = 2*nearBezDegree - 1
	nearBezMaxDepth = 64
)

var nearBezZ = [3][4]float64{
	{1.0, 0.6, 0.3, 0.1},
	{0.4, 0.6, 0.6, 0.4},
	{0.1, 0.3, 0.6, 1.0},
}

// NearestOnBezier returns the point on c closest to pt and its parameter,
// following Schneider's "Solving the Nearest-Point-On-Curve Problem" from
// Graphics Gems. The dot product of c(t)-pt and c'(t) is a quintic whose roots
// are found by recursive subdivision.
func NearestOnBezier(pt Point, c CubicBez) (Point, float64) {
	w := toBezierForm(pt, c)
	roots := make([]float64, 0, nearBezW)
	roots = findRoots(w[:], 0, roots)

	bestT := 0.0
	bestDist := pt.DistanceSquared(c.P0)
	for _, t := range roots {
		if d := pt.DistanceSquared(c.Eval(t)); d < bestDist {
			bestDist, bestT = d, t
		}
	}
	if d := pt.DistanceSquared(c.P3); d < bestDist {
		bestT = 1
	}
	return c.Eval(bestT), bestT
}

// toBezierForm returns the control points of the quintic
// (c(t)-pt)·c'(t) as (t, value) pairs.
func toBezierForm(pt Point, c CubicBez) [nearBezW + 1]Point {
	v := c.Points()
	var cv [nearBezDegree + 1]Vec2
	for i := range cv {
		cv[i] = v[i].Sub(pt)
	}
	var d [nearBezDegree]Vec2
	for i := range d {
		d[i] = v[i+1].Sub(v[i]).Mul(nearBezDegree)
	}

	var w [nearBezW + 1]Point
	for i := range w {
		w[i].X = float64(i) / nearBezW
	}
	for k := 0; k <= nearBezW; k++ {
		lb := max(0, k-(nearBezDegree-1))
		ub := min(k, nearBezDegree)
		for i := lb; i <= ub; i++ {
			j := k - i
			w[i+j].Y += d[j].Dot(cv[i]) * nearBezZ[j][i]
		}
	}
	return w
}

func findRoots(w []Point, depth int, roots []float64) []float64 {
	switch crossingCount(w) {
	case 0:
		return roots
	case 1:
		if depth >= nearBezMaxDepth {
			return append(roots, (w[0].X+w[nearBezW].X)/2)
		}
		if controlPolygonFlatEnough(w) {
			return append(roots, computeXIntercept(w))
		}
	}
	if depth >= nearBezMaxDepth {
		return append(roots, (w[0].X+w[nearBezW].X)/2)
	}

	left, right := splitQuintic(w, 0.5)
	roots = findRoots(left[:], depth+1, roots)
	return findRoots(right[:], depth+1, roots)
}

func crossingCount(w []Point) int {
	n := 0
	neg := w[0].Y < 0
	for _, p := range w[1:] {
		if (p.Y < 0) != neg {
			n++
		}
		neg = p.Y < 0
	}
	return n
}

// controlPolygonFlatEnough reports whether the control polygon is close
// enough to its chord for the chord's x intercept to stand in for the root.
func controlPolygonFlatEnough(w []Point) bool {
	last := len(w) - 1
	a := w[0].Y - w[last].Y
	b := w[last].X - w[0].X
	c := w[0].X*w[last].Y - w[last].X*w[0].Y
	if a == 0 {
		return true
	}

	above, below := 0.0, 0.0
	for _, p := range w[1:last] {
		v := a*p.X + b*p.Y + c
		above = max(above, v)
		below = min(below, v)
	}

	// x intercepts of the chord's parallels through the extreme points.
	i1 := (above - c) / a
	i2 := (below - c) / a
	return math.Abs(i1-i2)*0.5 < MinDist
}

func computeXIntercept(w []Point) float64 {
	last := len(w) - 1
	dy := w[last].Y - w[0].Y
	if dy == 0 {
		return (w[0].X + w[last].X) / 2
	}
	return w[0].X - w[0].Y*(w[last].X-w[0].X)/dy
}

func splitQuintic(w []Point, t float64) (left, right [nearBezW + 1]Point) {
	var tmp [nearBezW + 1][nearBezW + 1]Point
	copy(tmp[0][:], w)
	for i := 1; i <= nearBezW; i++ {
		for j := 0; j <= nearBezW-i; j++ {
			tmp[i][j] = tmp[i-1][j].Lerp(tmp[i-1][j+1], t)
		}
	}
	for j := 0; j <= nearBezW; j++ {
		left[j] = tmp[j][0]
		right[j] = tmp[nearBezW-j][j]
	}
	return left, right
}
