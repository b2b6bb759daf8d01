package command

import (
	"maps"
	"slices"
)

var builtins = map[string]func() Command{
	"rect":         NewDrawRect,
	"square":       NewDrawSquare,
	"ellipse":      NewDrawEllipse,
	"circle":       NewDrawCircle,
	"circle3p":     NewDrawCircle3P,
	"diamond":      NewDrawDiamond,
	"roundrect":    NewDrawRoundRect,
	"grid":         NewDrawGrid,
	"line":         NewDrawLine,
	"ray":          NewDrawRay,
	"beeline":      NewDrawBeeline,
	"dot":          NewDrawDot,
	"lines":        NewDrawLines,
	"polygon":      NewDrawPolygon,
	"quadrangle":   NewDrawQuadrangle,
	"triangle":     NewDrawTriangle,
	"parallel":     NewDrawParallel,
	"freelines":    NewDrawFreeLines,
	"splines":      NewDrawSplines,
	"spline_mouse": NewDrawSplineMouse,
	"arc3p":        NewDrawArc3P,
	"arccse":       NewDrawArcCSE,
	"arctan":       NewDrawArcTan,
	"sector":       NewDrawSector,
	"compass":      NewDrawCompass,
}

// Builtins returns the sorted names of the commands every session starts
// with.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}
