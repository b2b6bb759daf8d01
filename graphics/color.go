package graphics

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a 32-bit color packed as 0xAARRGGBB. The zero Color is Invalid,
// which means "do not draw" when used as a line or fill color.
type Color uint32

const (
	Invalid Color = 0
	Black   Color = 0xFF000000
	White   Color = 0xFFFFFFFF
	Red     Color = 0xFFFF0000
	Green   Color = 0xFF00FF00
	Blue    Color = 0xFF0000FF
)

// ARGB packs the four components of a color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return ARGB(255, r, g, b)
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// IsInvalid reports whether c is the no-draw color.
func (c Color) IsInvalid() bool { return c == Invalid }

// WithAlpha returns c with its alpha component replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&0x00FFFFFF | Color(a)<<24
}

// Gray returns the luminance-weighted gray of c, keeping its alpha.
func (c Color) Gray() Color {
	y := uint8((77*uint32(c.R()) + 151*uint32(c.G()) + 28*uint32(c.B()) + 128) / 256)
	return ARGB(c.A(), y, y, y)
}

// NRGBA converts c to a non-premultiplied image color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// FromColor converts any image color.
func FromColor(col color.Color) Color {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

func (c Color) String() string {
	if c.IsInvalid() {
		return "none"
	}
	if c.A() == 255 {
		return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
	}
	return fmt.Sprintf("#%08x", uint32(c))
}

// ParseColor accepts an SVG color keyword, "none", "#rgb", "#rrggbb" or
// "#aarrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none":
		return Invalid, nil
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Invalid, fmt.Errorf("bad color %q: %w", s, err)
		}
		switch len(hex) {
		case 6:
			return Color(v) | 0xFF000000, nil
		case 8:
			return Color(v), nil
		}
		return Invalid, fmt.Errorf("bad color %q", s)
	}
	if col, ok := colornames.Map[s]; ok {
		return FromColor(col), nil
	}
	return Invalid, fmt.Errorf("unknown color %q", s)
}
