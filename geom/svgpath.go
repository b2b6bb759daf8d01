package geom

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	parsestrconv "github.com/tdewolff/parse/v2/strconv"
)

// ErrSVGPath is wrapped by the errors returned from [Path.AddSVGPath].
var ErrSVGPath = errors.New("bad SVG path")

var svgArgCount = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

func skipCommaWhitespace(d []byte) int {
	i := 0
	for i < len(d) && (d[i] == ' ' || d[i] == ',' || d[i] == '\n' || d[i] == '\r' || d[i] == '\t') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// ParseSVGPath parses SVG path data into a new path.
func ParseSVGPath(d string) (*Path, error) {
	p := &Path{}
	if err := p.AddSVGPath(d); err != nil {
		return nil, err
	}
	return p, nil
}

// AddSVGPath appends the figures described by the SVG path data d. Every
// command of the SVG path grammar is understood in both its absolute and
// relative form; elliptical arcs are converted to cubic Béziers.
func (p *Path) AddSVGPath(d string) error {
	b := []byte(d)
	i := skipCommaWhitespace(b)
	if i == len(b) {
		return nil
	}
	if isNumberStart(b[i]) {
		return fmt.Errorf("%w: data should start with a command", ErrSVGPath)
	}

	var args [7]float64
	var lastCtl Point
	prev := byte('z')
	closedLast := false
	for {
		i += skipCommaWhitespace(b[i:])
		if i >= len(b) {
			break
		}

		cmd := prev
		repeat := true
		if cmd == 'z' || cmd == 'Z' || !isNumberStart(b[i]) {
			cmd = b[i]
			repeat = false
			i++
			i += skipCommaWhitespace(b[i:])
		}
		upper := cmd
		if 'a' <= cmd && cmd <= 'z' {
			upper -= 'a' - 'A'
		}
		nargs, known := svgArgCount[upper]
		if !known {
			return fmt.Errorf("%w: unknown command %q at position %d", ErrSVGPath, cmd, i)
		}

		for j := range nargs {
			if upper == 'A' && (j == 3 || j == 4) {
				if i >= len(b) || (b[i] != '0' && b[i] != '1') {
					return fmt.Errorf("%w: arc flags should be 0 or 1 at position %d", ErrSVGPath, i+1)
				}
				args[j] = float64(b[i] - '0')
				i++
			} else {
				num, n := parsestrconv.ParseFloat(b[i:])
				if n == 0 {
					if repeat && j == 0 {
						return fmt.Errorf("%w: unknown command %q at position %d", ErrSVGPath, b[i], i+1)
					}
					return fmt.Errorf("%w: %d numbers should follow %q at position %d", ErrSVGPath, nargs, cmd, i+1)
				}
				args[j] = num
				i += n
			}
			i += skipCommaWhitespace(b[i:])
		}

		if upper != 'Z' {
			closedLast = false
		}
		rel := upper != cmd
		cur := p.EndPoint()
		pt := func(k int) Point {
			q := Point{args[k], args[k+1]}
			if rel {
				q = q.Translate(Vec2(cur))
			}
			return q
		}

		switch upper {
		case 'M':
			p.MoveTo(pt(0), false)
			// Further coordinate pairs are implicit line commands.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			// Later commands continue from the start of the closed figure.
			if start := p.figureStart(); start >= 0 {
				p.CloseFigure()
				p.MoveTo(p.points[start], false)
				closedLast = true
			}
		case 'L':
			p.LineTo(pt(0), false)
		case 'H':
			p.HorzTo(args[0], rel)
		case 'V':
			p.VertTo(args[0], rel)
		case 'C':
			cp2 := pt(2)
			p.BezierTo(pt(0), cp2, pt(4), false)
			lastCtl = cp2
		case 'S':
			cp1 := cur
			if prev == 'C' || prev == 'c' || prev == 'S' || prev == 's' {
				cp1 = cur.Translate(cur.Sub(lastCtl))
			}
			cp2 := pt(0)
			p.BezierTo(cp1, cp2, pt(2), false)
			lastCtl = cp2
		case 'Q':
			cp := pt(0)
			p.QuadTo(cp, pt(2), false)
			lastCtl = cp
		case 'T':
			cp := cur
			if prev == 'Q' || prev == 'q' || prev == 'T' || prev == 't' {
				cp = cur.Translate(cur.Sub(lastCtl))
			}
			p.QuadTo(cp, pt(0), false)
			lastCtl = cp
		case 'A':
			p.svgArcTo(cur, args[0], args[1], Deg2Rad(args[2]), args[3] != 0, args[4] != 0, pt(5))
		}
		prev = cmd
	}
	if n := len(p.types); closedLast && n > 0 && p.types[n-1] == MoveTo {
		p.points = p.points[:n-1]
		p.types = p.types[:n-1]
		p.figure = 0
	}
	return nil
}

// figureStart returns the index of the MoveTo of the last figure, or -1.
func (p *Path) figureStart() int {
	for i := len(p.types) - 1; i >= 0; i-- {
		if p.types[i] == MoveTo {
			return i
		}
	}
	return -1
}

// svgArcTo appends an SVG elliptical arc, converted from the endpoint to the
// center parameterization as described in the SVG implementation notes.
func (p *Path) svgArcTo(from Point, rx, ry, phi float64, large, sweep bool, to Point) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if from.Distance(to) < 1e-6 || rx < 1e-6 || ry < 1e-6 {
		p.LineTo(to, false)
		return
	}

	sinPhi, cosPhi := math.Sincos(phi)
	dx := (from.X - to.X) / 2
	dy := (from.Y - to.Y) / 2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	if lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry); lambda > 1 {
		lambda = math.Sqrt(lambda)
		rx *= lambda
		ry *= lambda
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	s := 0.0
	if num > 0 && den > 0 {
		s = math.Sqrt(num / den)
	}
	if large == sweep {
		s = -s
	}
	cxp := s * rx * y1p / ry
	cyp := -s * ry * x1p / rx
	center := Point{
		X: (from.X+to.X)/2 + cosPhi*cxp - sinPhi*cyp,
		Y: (from.Y+to.Y)/2 + sinPhi*cxp + cosPhi*cyp,
	}

	u := Vec2{(x1p - cxp) / rx, (y1p - cyp) / ry}
	v := Vec2{(-x1p - cxp) / rx, (-y1p - cyp) / ry}
	theta := u.Angle()
	delta := u.AngleTo2(v)
	if !sweep && delta > 0 {
		delta -= TwoPi
	} else if sweep && delta < 0 {
		delta += TwoPi
	}

	pts := ArcToBezier(Point{}, rx, ry, theta, delta)
	if len(pts) < 4 {
		p.LineTo(to, false)
		return
	}
	aff := Rotate(phi).Then(Translate(Vec2(center)))
	TransformPoints(pts, aff)
	pts[len(pts)-1] = to
	p.BeziersTo(pts[1:], false, false)
}

// SVGOptions specifies optional settings for [Path.SVG] and [Path.WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
}

// SVG converts p to a string of SVG path commands.
//
// See [Path.WriteSVG] for a version that writes to an [io.Writer] instead of
// returning a string.
func (p *Path) SVG(opts SVGOptions) string {
	sb := &strings.Builder{}
	p.WriteSVG(sb, opts)
	return sb.String()
}

// WriteSVG converts p to a string of SVG path commands and writes it to w.
// Quadratic nodes are written as Q commands and cubic nodes as C commands.
//
// The current implementation doesn't take any special care to produce a
// short string (reducing precision, using relative movement).
func (p *Path) WriteSVG(w io.Writer, opts SVGOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		return s
	}
	xy := func(pt Point) string {
		return format(pt.X) + "," + format(pt.Y)
	}

	for i := 0; i < len(p.points) && err == nil; i++ {
		if i > 0 {
			writef(" ")
		}
		t := p.types[i]
		switch t.Kind() {
		case MoveTo:
			writef("M%s", xy(p.points[i]))
		case LineTo:
			writef("L%s", xy(p.points[i]))
		case BezierTo:
			if i+2 >= len(p.points) {
				return fmt.Errorf("%w: truncated cubic at node %d", ErrSVGPath, i)
			}
			writef("C%s %s %s", xy(p.points[i]), xy(p.points[i+1]), xy(p.points[i+2]))
			i += 2
			t = p.types[i]
		case QuadTo:
			if i+1 >= len(p.points) {
				return fmt.Errorf("%w: truncated quadratic at node %d", ErrSVGPath, i)
			}
			writef("Q%s %s", xy(p.points[i]), xy(p.points[i+1]))
			i++
			t = p.types[i]
		default:
			return fmt.Errorf("%w: unknown node type %d", ErrSVGPath, t)
		}
		if t != MoveTo && t&CloseFigure != 0 {
			writef(" Z")
		}
	}
	return err
}
