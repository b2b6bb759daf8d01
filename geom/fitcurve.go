package geom

import "iter"

// minFitError is the smallest squared error FitCurve accepts.
const minFitError = 1.1

// FitCurve fits a sequence of cubic Béziers to the digitized points pts,
// using Philip J. Schneider's algorithm from Graphics Gems (1990). tol bounds
// the squared distance between the points and the fitted curve.
//
// A NaN point lifts the pen: the points on either side of it are fitted
// independently, and the curve sequence is discontinuous there.
func FitCurve(pts []Point, tol float64) iter.Seq[CubicBez] {
	return func(yield func(CubicBez) bool) {
		f := fitter{yield: yield, tol: max(tol, minFitError)}
		start := 0
		for i := 0; i <= len(pts); i++ {
			if i < len(pts) && !pts[i].IsNaN() {
				continue
			}
			if i-start >= 2 {
				f.pts = pts[start:i]
				f.run()
				if f.stopped {
					return
				}
			}
			start = i + 1
		}
	}
}

// FitCurveKnots fits pts and returns the result as knots with
// non-Hermite tangents: segment i runs from knots[i] with arm knotvs[i] to
// knots[i+1] with arm -knotvs[i+1]. A discontinuity starts a new pair of
// knots.
func FitCurveKnots(pts []Point, tol float64) ([]Point, []Vec2) {
	var knots []Point
	var knotvs []Vec2
	for c := range FitCurve(pts, tol) {
		if n := len(knots); n > 0 && knots[n-1] == c.P0 {
			knots = append(knots, c.P3)
			knotvs = append(knotvs, c.P3.Sub(c.P2))
			continue
		}
		knots = append(knots, c.P0, c.P3)
		knotvs = append(knotvs, c.P1.Sub(c.P0), c.P3.Sub(c.P2))
	}
	return knots, knotvs
}

type fitter struct {
	pts     []Point
	tol     float64
	yield   func(CubicBez) bool
	stopped bool
}

func (f *fitter) emit(c CubicBez) {
	if !f.stopped && !f.yield(c) {
		f.stopped = true
	}
}

func degenerateTangent(v Vec2) bool {
	return v.IsNaN() || v.IsZero(MinTol)
}

func (f *fitter) run() {
	first, last := 0, len(f.pts)-1
	tHat1 := f.leftTangent(first)
	for degenerateTangent(tHat1) && first < last-1 {
		first++
		tHat1 = f.leftTangent(first)
	}
	tHat2 := f.rightTangent(last)
	for degenerateTangent(tHat2) && last > first+1 {
		last--
		tHat2 = f.rightTangent(last)
	}
	if first < last && !degenerateTangent(tHat1) && !degenerateTangent(tHat2) {
		f.fitCubic(first, last, tHat1, tHat2, f.tol)
	}
}

func (f *fitter) leftTangent(end int) Vec2 {
	return f.pts[end+1].Sub(f.pts[end]).Normalize()
}

func (f *fitter) rightTangent(end int) Vec2 {
	return f.pts[end-1].Sub(f.pts[end]).Normalize()
}

func (f *fitter) centerTangent(center int) Vec2 {
	return f.pts[center-1].Sub(f.pts[center+1]).Normalize()
}

func (f *fitter) fitCubic(first, last int, tHat1, tHat2 Vec2, maxErr float64) {
	if f.stopped {
		return
	}
	d := f.pts
	if last-first == 1 {
		dist := d[last].Distance(d[first]) / 3
		f.emit(CubicBez{
			d[first],
			d[first].Translate(tHat1.Mul(dist)),
			d[last].Translate(tHat2.Mul(dist)),
			d[last],
		})
		return
	}

	u := f.chordLengthParameterize(first, last)
	bez := f.generateBezier(first, last, u, tHat1, tHat2)
	err, split := f.computeMaxError(first, last, bez, u)
	if err < maxErr {
		f.emit(bez)
		return
	}

	// Close enough to try reparameterizing with Newton-Raphson.
	if err < maxErr*maxErr {
		for range 5 {
			u = f.reparameterize(first, last, u, bez)
			bez = f.generateBezier(first, last, u, tHat1, tHat2)
			err, split = f.computeMaxError(first, last, bez, u)
			if err < maxErr {
				f.emit(bez)
				return
			}
		}
	}

	tHatCenter := f.centerTangent(split)
	f.fitCubic(first, split, tHat1, tHatCenter, maxErr)
	f.fitCubic(split, last, tHatCenter.Negate(), tHat2, maxErr)
}

func (f *fitter) chordLengthParameterize(first, last int) []float64 {
	u := make([]float64, last-first+1)
	for i := first + 1; i <= last; i++ {
		u[i-first] = u[i-first-1] + f.pts[i].Distance(f.pts[i-1])
	}
	total := u[last-first]
	if total > 0 {
		for i := range u[1:] {
			u[i+1] /= total
		}
	}
	return u
}

func bernstein(u float64) (b0, b1, b2, b3 float64) {
	mt := 1 - u
	return mt * mt * mt, 3 * u * mt * mt, 3 * u * u * mt, u * u * u
}

// generateBezier finds the control arm lengths by least squares. When the
// normal equations are singular or an arm comes out too short, the Wu/Barsky
// heuristic of a third of the chord is used instead.
func (f *fitter) generateBezier(first, last int, u []float64, tHat1, tHat2 Vec2) CubicBez {
	d := f.pts
	var c00, c01, c11, x0, x1 float64
	for i, ui := range u {
		b0, b1, b2, b3 := bernstein(ui)
		a0 := tHat1.Mul(b1)
		a1 := tHat2.Mul(b2)
		c00 += a0.Dot(a0)
		c01 += a0.Dot(a1)
		c11 += a1.Dot(a1)
		tmp := d[first+i].Sub(Point{}).
			Sub(Vec2(d[first]).Mul(b0 + b1)).
			Sub(Vec2(d[last]).Mul(b2 + b3))
		x0 += a0.Dot(tmp)
		x1 += a1.Dot(tmp)
	}

	detC0C1 := c00*c11 - c01*c01
	detC0X := c00*x1 - c01*x0
	detXC1 := x0*c11 - x1*c01
	var alphaL, alphaR float64
	if detC0C1 != 0 {
		alphaL = detXC1 / detC0C1
		alphaR = detC0X / detC0C1
	}

	segLength := d[last].Distance(d[first])
	epsilon := 1.0e-6 * segLength
	if alphaL < epsilon || alphaR < epsilon {
		alphaL = segLength / 3
		alphaR = alphaL
	}
	return CubicBez{
		d[first],
		d[first].Translate(tHat1.Mul(alphaL)),
		d[last].Translate(tHat2.Mul(alphaR)),
		d[last],
	}
}

func (f *fitter) reparameterize(first, last int, u []float64, bez CubicBez) []float64 {
	uPrime := make([]float64, len(u))
	for i := first; i <= last; i++ {
		uPrime[i-first] = newtonRaphsonRootFind(bez, f.pts[i], u[i-first])
	}
	return uPrime
}

// newtonRaphsonRootFind improves the parameter u of p on q.
func newtonRaphsonRootFind(q CubicBez, p Point, u float64) float64 {
	d1 := q.Differentiate()
	d20 := d1.P1.Sub(d1.P0).Mul(2)
	d21 := d1.P2.Sub(d1.P1).Mul(2)
	qu := q.Eval(u).Sub(p)
	q1u := Vec2(d1.Eval(u))
	q2u := d20.Lerp(d21, u)

	numerator := qu.Dot(q1u)
	denominator := q1u.Dot(q1u) + qu.Dot(q2u)
	if denominator == 0 {
		return u
	}
	return u - numerator/denominator
}

func (f *fitter) computeMaxError(first, last int, bez CubicBez, u []float64) (float64, int) {
	maxDist := 0.0
	split := first + (last-first+1)/2
	for i := first + 1; i < last; i++ {
		dist := bez.Eval(u[i-first]).DistanceSquared(f.pts[i])
		if dist >= maxDist {
			maxDist = dist
			split = i
		}
	}
	return maxDist, split
}
