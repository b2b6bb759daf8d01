package geom

import "math"

const (
	TwoPi  = 2 * math.Pi
	HalfPi = math.Pi / 2
)

// ToRange wraps value into [lo, hi) by adding or subtracting the period
// hi−lo.
func ToRange(value, lo, hi float64) float64 {
	p := hi - lo
	if p <= 0 {
		return value
	}
	for value < lo {
		value += p
	}
	for value >= hi {
		value -= p
	}
	return value
}

// To0To2Pi wraps an angle into [0, 2π).
func To0To2Pi(angle float64) float64 {
	return ToRange(angle, 0, TwoPi)
}

// ToPi wraps an angle into [-π, π).
func ToPi(angle float64) float64 {
	return ToRange(angle, -math.Pi, math.Pi)
}

func Deg2Rad(deg float64) float64 { return deg * math.Pi / 180 }
func Rad2Deg(rad float64) float64 { return rad * 180 / math.Pi }

// MidAngle returns the angle halfway along the anticlockwise turn from
// from to to, in [0, 2π).
func MidAngle(from, to float64) float64 {
	from = To0To2Pi(from)
	to = To0To2Pi(to)
	if !equals(from, to) && to < from {
		return To0To2Pi((from + to + TwoPi) / 2)
	}
	return (from + to) / 2
}

// MidAngle2 returns whichever of the two bisectors of from and to is closer
// to both.
func MidAngle2(a1, a2 float64) float64 {
	mid1 := MidAngle(a1, a2)
	diff1 := math.Abs(DiffAngle(a1, mid1))
	mid2 := MidAngle(a2, a1)
	diff2 := math.Abs(DiffAngle(a2, mid2))
	if diff1 < diff2 {
		return mid1
	}
	return mid2
}

// DiffAngle returns the signed turn from from to to, in [-π, π).
func DiffAngle(from, to float64) float64 {
	from = To0To2Pi(from)
	to = To0To2Pi(to)
	if equals(from, to) {
		return 0
	}
	if to < from {
		to += TwoPi
	}
	return ToPi(to - from)
}

// RoundReal rounds value to decimals places; decimals is clamped to [-6, 7].
func RoundReal(value float64, decimals int) float64 {
	decimals = max(-6, min(7, decimals))
	e := math.Pow(10, float64(decimals))
	return math.Floor(e*value+0.5) / e
}
