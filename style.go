package profile

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// String2Float parses s as a float and clamps it to [low, high]. A
// trailing "%" divides by 100. Unparsable input yields def.
func String2Float(s string, low, high, def float64) float64 {
	factor := 1.0
	if strings.HasSuffix(s, "%") {
		s = s[:len(s)-1]
		factor = 100
	}
	value, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	value /= factor

	if value < low {
		return low
	} else if value > high {
		return high
	}
	return value
}

// Set alpha to a in color c.
func SetAlpha(c color.Color, a float64) color.Color {
	r, g, b, _ := c.RGBA()
	r >>= 8
	g >>= 8
	b >>= 8
	a *= float64(0xff)
	return color.NRGBA{uint8(r), uint8(g), uint8(b), uint8(a)}
}

// -------------------------------------------------------------------------
// Points

type PointShape int

const (
	BlankPoint PointShape = iota
	CirclePoint
	SquarePoint
	DeltaPoint
	NablaPoint
	SolidCirclePoint
	SolidSquarePoint
	SolidDeltaPoint
	CrossPoint
	PlusPoint
)

// String2PointShape understands names ("circle", "solid-square", "plus")
// as well as the one letter marker codes "o", ".", "s", "^", "v", "x" and "+".
func String2PointShape(s string) PointShape {
	n, err := strconv.Atoi(s)
	if err == nil {
		return PointShape(n % (int(PlusPoint) + 1))
	}
	switch s {
	case "circle", "o":
		return CirclePoint
	case "square", "s":
		return SquarePoint
	case "delta", "^":
		return DeltaPoint
	case "nabla", "v":
		return NablaPoint
	case "solid-circle", "dot", ".":
		return SolidCirclePoint
	case "solid-square":
		return SolidSquarePoint
	case "solid-delta":
		return SolidDeltaPoint
	case "cross", "x":
		return CrossPoint
	case "plus", "+":
		return PlusPoint
	}
	return BlankPoint
}

func (s PointShape) String() string {
	switch s {
	case CirclePoint:
		return "circle"
	case SquarePoint:
		return "square"
	case DeltaPoint:
		return "delta"
	case NablaPoint:
		return "nabla"
	case SolidCirclePoint:
		return "solid-circle"
	case SolidSquarePoint:
		return "solid-square"
	case SolidDeltaPoint:
		return "solid-delta"
	case CrossPoint:
		return "cross"
	case PlusPoint:
		return "plus"
	}
	return "blank"
}

// Glyph returns the glyph drawer for s or nil for BlankPoint.
func (s PointShape) Glyph() draw.GlyphDrawer {
	switch s {
	case CirclePoint:
		return draw.RingGlyph{}
	case SquarePoint:
		return draw.SquareGlyph{}
	case DeltaPoint:
		return draw.TriangleGlyph{}
	case NablaPoint:
		return nablaGlyph{}
	case SolidCirclePoint:
		return draw.CircleGlyph{}
	case SolidSquarePoint:
		return draw.BoxGlyph{}
	case SolidDeltaPoint:
		return draw.PyramidGlyph{}
	case CrossPoint:
		return draw.CrossGlyph{}
	case PlusPoint:
		return draw.PlusGlyph{}
	}
	return nil
}

// nablaGlyph is an outlined, downward pointing triangle.
type nablaGlyph struct{}

func (nablaGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(0.5)})
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r*0.866, Y: pt.Y + r*0.5})
	p.Line(vg.Point{X: pt.X - r*0.866, Y: pt.Y + r*0.5})
	p.Close()
	c.Stroke(p)
}

// -------------------------------------------------------------------------
// Lines

type LineType int

const (
	BlankLine LineType = iota
	SolidLine
	DashedLine
	DottedLine
	DotDashLine
	LongdashLine
)

// String2LineType understands names like "dashed" and the short codes
// "-", "--", ":" and "-.".
func String2LineType(s string) LineType {
	n, err := strconv.Atoi(s)
	if err == nil {
		return LineType(n % (int(LongdashLine) + 1))
	}
	switch s {
	case "blank":
		return BlankLine
	case "solid", "-":
		return SolidLine
	case "dashed", "--":
		return DashedLine
	case "dotted", ":":
		return DottedLine
	case "dotdash", "-.":
		return DotDashLine
	case "longdash":
		return LongdashLine
	default:
		return BlankLine
	}
}

// Dashes returns the dash pattern of lt for a line of width w.
func (lt LineType) Dashes(w vg.Length) []vg.Length {
	if w < 1 {
		w = 1
	}
	switch lt {
	case DashedLine:
		return []vg.Length{4 * w, 3 * w}
	case DottedLine:
		return []vg.Length{w, 2 * w}
	case DotDashLine:
		return []vg.Length{w, 2 * w, 4 * w, 2 * w}
	case LongdashLine:
		return []vg.Length{8 * w, 3 * w}
	}
	return nil
}

// -------------------------------------------------------------------------
// Colors

var BuiltinColors = map[string]color.RGBA{
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"cyan":    {0x00, 0xbf, 0xbf, 0xff},
	"magenta": {0xbf, 0x00, 0xbf, 0xff},
	"yellow":  {0xbf, 0xbf, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"gray20":  {0x33, 0x33, 0x33, 0xff},
	"gray40":  {0x66, 0x66, 0x66, 0xff},
	"gray":    {0x7f, 0x7f, 0x7f, 0xff},
	"gray60":  {0x99, 0x99, 0x99, 0xff},
	"gray80":  {0xcc, 0xcc, 0xcc, 0xff},
	"black":   {0x00, 0x00, 0x00, 0xff},
}

// shortColors maps the one letter color codes to BuiltinColors.
var shortColors = map[string]string{
	"r": "red",
	"g": "green",
	"b": "blue",
	"c": "cyan",
	"m": "magenta",
	"y": "yellow",
	"k": "black",
	"w": "white",
}

// String2Color parses "#rrggbb", "#rrggbbaa", a builtin color name or a
// one letter color code. Unknown colors come out as a translucent pink
// which is hard to overlook.
func String2Color(s string) color.Color {
	if strings.HasPrefix(s, "#") && len(s) >= 7 {
		var r, g, b, a uint8
		fmt.Sscanf(s[1:3], "%2x", &r)
		fmt.Sscanf(s[3:5], "%2x", &g)
		fmt.Sscanf(s[5:7], "%2x", &b)
		a = 0xff
		if len(s) >= 9 {
			fmt.Sscanf(s[7:9], "%2x", &a)
		}
		return color.RGBA{r, g, b, a}
	}
	if long, ok := shortColors[s]; ok {
		s = long
	}
	if col, ok := BuiltinColors[s]; ok {
		return col
	}

	return color.RGBA{0xaa, 0x66, 0x77, 0x7f}
}
