// Package geom is the geometry kernel of the drawing engine. It provides
// points, vectors, boxes and affine transforms in a y-up coordinate space,
// along with the curve routines that shapes are built from.
//
// # Tolerances
//
// Most predicates take a [Tol], which carries a length tolerance for points
// and an angular tolerance for directions. [MinDist] is the hard floor below
// which lengths and determinants count as zero; [DefaultTol] is used when the
// caller has nothing better.
//
// # Curves
//
// The primary curve is the cubic Bézier, [CubicBez]. Ellipses, rounded
// rectangles and arcs are approximated by cubic Béziers using [Kappa], and
// spline shapes are evaluated by converting each span to a Bézier (see
// [CubicSplines], [CubicSplinesToBeziers] and [BSplinesToBeziers]). Freehand
// input is turned into Béziers with [FitCurve].
//
// Bézier chains are passed around as flat point slices: the first point is
// the start, and every following group of three points is two control points
// and an end point.
//
// # Paths
//
// [Path] is a compound figure made of lines, cubic Béziers and quadratic
// Béziers, split into figures by MoveTo nodes. Paths can be built with the
// *To methods, parsed from SVG path data with [ParseSVGPath], and walked with
// [Path.ScanSegments] or [Path.Segments].
//
// # Literature
//
//   - [A Primer on Bézier Curves]
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//   - "An Algorithm for Automatically Fitting Digitized Curves" by Philip J. Schneider, Graphics Gems
//   - "Solving the Nearest Point-on-Curve Problem" by Philip J. Schneider, Graphics Gems
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
package geom
