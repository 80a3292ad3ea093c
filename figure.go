package profile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sgostarter/i/commerr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// FigureOptions controls the layout of a comparison figure. The zero
// value gives the default figure.
type FigureOptions struct {
	// Title overrides the title of the comparison.
	Title string

	// ValueLabel and PositionLabel override the axis labels. The default
	// value label is "<field> at <axis>=<fixed><unit>", the default
	// position label "<axis>/<unit>" or just "<axis>" without a unit.
	ValueLabel, PositionLabel string

	// Unit of length the coordinates are measured in, e.g. "D".
	Unit string

	// Transpose puts the line position on the horizontal axis. By
	// default values run horizontally and positions vertically.
	Transpose bool

	// ValueMin and ValueMax fix the limits of the value axis.
	ValueMin, ValueMax *float64

	// Legend is one of "upper right" (default), "upper left",
	// "lower left", "lower right" or "none".
	Legend string

	// Grid draws grid lines at the major ticks.
	Grid bool

	// Theme provides default styles and the figure size. Nil uses
	// DefaultTheme.
	Theme *Theme
}

func (o FigureOptions) valueLabel(cmp *Comparison) string {
	if o.ValueLabel != "" {
		return o.ValueLabel
	}
	return fmt.Sprintf("%s at %s=%g%s", cmp.Field, cmp.Line.Axis.Other(), cmp.Line.Fixed, o.Unit)
}

func (o FigureOptions) positionLabel(cmp *Comparison) string {
	if o.PositionLabel != "" {
		return o.PositionLabel
	}
	if o.Unit == "" {
		return cmp.Line.Axis.String()
	}
	return cmp.Line.Axis.String() + "/" + o.Unit
}

// Figure is a rendered comparison ready to be written. Each Figure is
// independent; there is no notion of a current figure.
type Figure struct {
	Plot *plot.Plot

	Width, Height vg.Length
	DPI           int

	// Output is the path the comparison asked to be written to.
	Output string
}

// Assemble lays out the profiles of cmp as one figure: one legend entry
// per series in series order, each drawn with the geom its style asks
// for. All profiles must be computed on cmp.Line.
func Assemble(cmp *Comparison, opts FigureOptions) (*Figure, error) {
	if cmp == nil || len(cmp.Series) == 0 {
		return nil, fmt.Errorf("%w: nothing to draw", ErrMissingSource)
	}
	for _, s := range cmp.Series {
		if s.Profile == nil || !s.Profile.Line.Same(cmp.Line) || s.Profile.Len() != cmp.Line.Len() {
			dataset := ""
			if s.Profile != nil {
				dataset = s.Profile.Dataset
			}
			return nil, newError(ErrRangeMismatch, dataset, cmp.Field,
				fmt.Errorf("series %q is not sampled on %s", s.Label, cmp.Line))
		}
	}
	top, left, legend := false, false, true
	switch opts.Legend {
	case "", "upper right":
		top = true
	case "upper left":
		top, left = true, true
	case "lower left":
		left = true
	case "lower right":
	case "none":
		legend = false
	default:
		return nil, fmt.Errorf("%w: unknown legend position %q", commerr.ErrInvalidArgument, opts.Legend)
	}
	theme := DefaultTheme
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	if theme.Width <= 0 || theme.Height <= 0 {
		theme.Width, theme.Height = DefaultTheme.Width, DefaultTheme.Height
	}

	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Legend.Top, p.Legend.Left = top, left
	p.Title.Text = cmp.Title
	if opts.Title != "" {
		p.Title.Text = opts.Title
	}
	valueAxis, posAxis := &p.X, &p.Y
	if opts.Transpose {
		valueAxis, posAxis = &p.Y, &p.X
	}
	valueAxis.Label.Text = opts.valueLabel(cmp)
	posAxis.Label.Text = opts.positionLabel(cmp)
	if opts.Grid {
		p.Add(plotter.NewGrid())
	}

	values, positions := NewScale(), NewScale()
	if opts.ValueMin != nil {
		values.FixedMin = *opts.ValueMin
	}
	if opts.ValueMax != nil {
		values.FixedMax = *opts.ValueMax
	}
	pos := cmp.Line.Positions()
	positions.Train(pos)

	for _, s := range cmp.Series {
		geom, err := NewGeom(s.Style, theme)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Label, err)
		}
		values.Train(s.Profile.Values)

		pts := make(plotter.XYs, len(pos))
		for i, v := range s.Profile.Values {
			if opts.Transpose {
				pts[i] = plotter.XY{X: pos[i], Y: v}
			} else {
				pts[i] = plotter.XY{X: v, Y: pos[i]}
			}
		}
		plotters, err := geom.Plotters(pts)
		if err != nil {
			return nil, newError(ErrArtifactWrite, s.Profile.Dataset, cmp.Field, err)
		}
		p.Add(plotters...)
		if legend {
			p.Legend.Add(s.Label, geom)
		}
	}

	valueAxis.Min, valueAxis.Max = values.Limits()
	posAxis.Min, posAxis.Max = positions.Limits()

	dpi := theme.DPI
	if dpi <= 0 {
		dpi = vgimg.DefaultDPI
	}
	return &Figure{
		Plot:   p,
		Width:  theme.Width,
		Height: theme.Height,
		DPI:    dpi,
		Output: cmp.Output,
	}, nil
}

// Encode renders f in the given raster format ("png", "jpg", "jpeg",
// "tif" or "tiff") to w.
func (f *Figure) Encode(w io.Writer, format string) error {
	var wrap func(*vgimg.Canvas) io.WriterTo
	switch strings.ToLower(format) {
	case "png":
		wrap = func(c *vgimg.Canvas) io.WriterTo { return vgimg.PngCanvas{Canvas: c} }
	case "jpg", "jpeg":
		wrap = func(c *vgimg.Canvas) io.WriterTo { return vgimg.JpegCanvas{Canvas: c} }
	case "tif", "tiff":
		wrap = func(c *vgimg.Canvas) io.WriterTo { return vgimg.TiffCanvas{Canvas: c} }
	default:
		return fmt.Errorf("%w: unsupported image format %q", commerr.ErrInvalidArgument, format)
	}

	c := vgimg.NewWith(vgimg.UseWH(f.Width, f.Height), vgimg.UseDPI(f.DPI))
	f.Plot.Draw(draw.New(c))
	_, err := wrap(c).WriteTo(w)
	return err
}

// Save writes f to path, the format taken from the extension. A path
// without extension is written as PNG. Any failure is reported as
// ErrArtifactWrite.
func (f *Figure) Save(path string) (err error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = "png"
	}
	switch strings.ToLower(format) {
	case "png", "jpg", "jpeg", "tif", "tiff":
	default:
		return newError(ErrArtifactWrite, path, "",
			fmt.Errorf("unsupported image format %q", format))
	}

	out, err := os.Create(path)
	if err != nil {
		return newError(ErrArtifactWrite, path, "", err)
	}
	defer func() {
		if e := out.Close(); e != nil && err == nil {
			err = newError(ErrArtifactWrite, path, "", e)
		}
	}()
	if err := f.Encode(out, format); err != nil {
		return newError(ErrArtifactWrite, path, "", err)
	}
	return nil
}

// Render assembles cmp and saves the figure to cmp.Output.
func Render(cmp *Comparison, opts FigureOptions) (*Figure, error) {
	fig, err := Assemble(cmp, opts)
	if err != nil {
		return nil, err
	}
	if fig.Output == "" {
		return nil, newError(ErrArtifactWrite, "", cmp.Field, errors.New("no output path"))
	}
	if err := fig.Save(fig.Output); err != nil {
		return nil, err
	}
	return fig, nil
}
