package geom

import "math"

// MinDist is the magnitude below which a length or a determinant counts as
// zero.
const MinDist = 2e-6

// Tol holds the tolerances threaded through the geometric predicates.
//
// Point is a length: two points closer than Point are coincident. Vector is
// an angle in radians, small enough that a ≈ sin(a) ≈ tan(a): two directions
// closer than Vector are parallel.
type Tol struct {
	Point  float64
	Vector float64
}

// DefaultTol is the tolerance used when the caller has no better one.
var DefaultTol = Tol{Point: MinDist * 2, Vector: 1e-4}

// MinTol is the smallest tolerance accepted by [NewTol].
var MinTol = Tol{Point: MinDist, Vector: MinDist}

// NewTol returns a tolerance, raising values below [MinDist] to MinDist.
func NewTol(point, vector float64) Tol {
	return Tol{Point: max(point, MinDist), Vector: max(vector, MinDist)}
}

func isZero(v float64) bool {
	return math.Abs(v) < MinDist
}

func equals(a, b float64) bool {
	return isZero(a - b)
}
