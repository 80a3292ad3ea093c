package profile

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/commerr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Geom is the geometric representation of one series in a figure.
type Geom interface {
	Name() string

	// Plotters turns the points of a series into plotters. Points with a
	// NaN coordinate are not drawn; there may be no plotter at all.
	Plotters(pts plotter.XYs) ([]plot.Plotter, error)

	// Thumbnail draws the legend entry. It works even if the series has
	// nothing to draw.
	plot.Thumbnailer
}

// NewGeom sets up the geom described by style. The aesthetic "geom"
// selects "line" (the default) or "point"; unset aesthetics are taken
// from the theme.
func NewGeom(style AesMapping, theme Theme) (Geom, error) {
	switch style["geom"] {
	case "", "line":
		return newGeomLine(MergeAes(theme.LineStyle, style)), nil
	case "point", "points", "scatter":
		return newGeomPoint(MergeAes(theme.PointStyle, style)), nil
	}
	return nil, fmt.Errorf("%w: unknown geom %q", commerr.ErrInvalidArgument, style["geom"])
}

func styleColor(style AesMapping) draw.LineStyle {
	col := String2Color(style["color"])
	if a, ok := style["alpha"]; ok {
		col = SetAlpha(col, String2Float(a, 0, 1, 1))
	}
	return draw.LineStyle{Color: col}
}

// undefined reports whether pt cannot be drawn.
func undefined(pt plotter.XY) bool { return !finite(pt.X) || !finite(pt.Y) }

// -------------------------------------------------------------------------
// Geom Line

// GeomLine connects consecutive points. A NaN ends the current segment.
type GeomLine struct {
	Style draw.LineStyle
}

func newGeomLine(style AesMapping) GeomLine {
	ls := styleColor(style)
	ls.Width = vg.Points(String2Float(style["size"], 0, 20, 1))
	ls.Dashes = String2LineType(style["linetype"]).Dashes(ls.Width)
	return GeomLine{Style: ls}
}

func (g GeomLine) Name() string { return "GeomLine" }

// Plotters returns one line per run of at least two consecutive defined
// points. Isolated points are not drawn.
func (g GeomLine) Plotters(pts plotter.XYs) ([]plot.Plotter, error) {
	var result []plot.Plotter
	for _, seg := range segments(pts) {
		if len(seg) < 2 {
			continue
		}
		line, err := plotter.NewLine(seg)
		if err != nil {
			return nil, err
		}
		line.LineStyle = g.Style
		result = append(result, line)
	}
	return result, nil
}

func (g GeomLine) Thumbnail(c *draw.Canvas) {
	if g.Style.Width == 0 {
		return
	}
	y := c.Center().Y
	c.StrokeLine2(g.Style, c.Min.X, y, c.Max.X, y)
}

// segments splits pts at undefined entries.
func segments(pts plotter.XYs) []plotter.XYs {
	var segs []plotter.XYs
	start := -1
	for i, pt := range pts {
		if undefined(pt) {
			if start >= 0 {
				segs = append(segs, pts[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		segs = append(segs, pts[start:])
	}
	return segs
}

// -------------------------------------------------------------------------
// Geom Point

// GeomPoint draws a glyph at every Every'th point, counted from the
// first point of the series. Every <= 1 draws all points.
type GeomPoint struct {
	Style draw.GlyphStyle
	Every int
}

func newGeomPoint(style AesMapping) GeomPoint {
	shape := String2PointShape(style["shape"]).Glyph()
	if shape == nil {
		shape = draw.CircleGlyph{}
	}
	return GeomPoint{
		Style: draw.GlyphStyle{
			Color:  styleColor(style).Color,
			Radius: vg.Points(String2Float(style["size"], 0.5, 20, 3)),
			Shape:  shape,
		},
		Every: int(String2Float(style["every"], 1, math.MaxInt32, 1)),
	}
}

func (g GeomPoint) Name() string { return "GeomPoint" }

func (g GeomPoint) Plotters(pts plotter.XYs) ([]plot.Plotter, error) {
	every := g.Every
	if every < 1 {
		every = 1
	}
	var keep plotter.XYs
	for i := 0; i < len(pts); i += every {
		if !undefined(pts[i]) {
			keep = append(keep, pts[i])
		}
	}
	if len(keep) == 0 {
		return nil, nil
	}
	sc, err := plotter.NewScatter(keep)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle = g.Style
	return []plot.Plotter{sc}, nil
}

func (g GeomPoint) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(g.Style, c.Center())
}
