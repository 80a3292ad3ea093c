package profile

import (
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sgostarter/i/commerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func testComparison(t *testing.T) *Comparison {
	spec := samplingSpec(t)
	spec.Series[0].Style = AesMapping{"color": "red", "size": "1"}
	spec.Series[1].Style = AesMapping{"geom": "point", "color": "green", "shape": "cross", "every": "2"}
	spec.Series[2].Style = AesMapping{"color": "blue", "linetype": "dashed"}
	spec.Series[3].Style = AesMapping{"geom": "point", "color": "m", "shape": "dot", "every": "4"}
	cmp, err := NewComparator(nil).Compare(spec, "E[u]")
	require.NoError(t, err)
	return cmp
}

func TestAssembleAndSave(t *testing.T) {
	cmp := testComparison(t)
	min, max := 0.5, 2.0
	fig, err := Assemble(cmp, FigureOptions{
		Unit:     "D",
		Legend:   "upper left",
		Grid:     true,
		ValueMin: &min,
		ValueMax: &max,
	})
	require.NoError(t, err)
	assert.Equal(t, "E[u] at x=1D", fig.Plot.X.Label.Text)
	assert.Equal(t, "y/D", fig.Plot.Y.Label.Text)
	assert.Equal(t, "sampling", fig.Plot.Title.Text)
	assert.Equal(t, 0.5, fig.Plot.X.Min)
	assert.Equal(t, 2.0, fig.Plot.X.Max)
	assert.True(t, fig.Plot.Legend.Top && fig.Plot.Legend.Left)

	path := filepath.Join(t.TempDir(), "E[u].png")
	require.NoError(t, fig.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dx(), "5 inch at 100 dpi")
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestAssembleDefaults(t *testing.T) {
	cmp := testComparison(t)
	fig, err := Assemble(cmp, FigureOptions{Transpose: true, Title: "other"})
	require.NoError(t, err)
	assert.Equal(t, "other", fig.Plot.Title.Text)
	assert.Equal(t, "y", fig.Plot.X.Label.Text)
	assert.Equal(t, "E[u] at x=1", fig.Plot.Y.Label.Text)
	// Positions span [0,2], expanded by 5% on both sides.
	assert.InDelta(t, -0.1, fig.Plot.X.Min, 1e-12)
	assert.InDelta(t, 2.1, fig.Plot.X.Max, 1e-12)
	assert.Equal(t, DefaultTheme.Width, fig.Width)
	assert.Equal(t, "out/E[u].png", fig.Output)
}

func TestAssembleNaNSeries(t *testing.T) {
	line := mustLine(t, AxisY, 0, 0, 1, 6)
	nan := math.NaN()
	cmp := &Comparison{
		Field: "u",
		Line:  line,
		Series: []SeriesProfile{
			{Label: "gappy", Profile: &Profile{Dataset: "a", Line: line, Values: []float64{1, 2, nan, 4, 5, nan}}},
			{Label: "points", Style: AesMapping{"geom": "point"},
				Profile: &Profile{Dataset: "b", Line: line, Values: []float64{nan, 1, nan, 3, nan, 5}}},
			{Label: "empty", Profile: &Profile{Dataset: "c", Line: line, Values: []float64{nan, nan, nan, nan, nan, nan}}},
		},
	}
	fig, err := Assemble(cmp, FigureOptions{})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "gaps.png")
	require.NoError(t, fig.Save(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	for _, format := range []string{"jpg", "tiff"} {
		require.NoError(t, fig.Save(filepath.Join(t.TempDir(), "gaps."+format)))
	}
}

func TestAssembleErrors(t *testing.T) {
	cmp := testComparison(t)

	_, err := Assemble(&Comparison{Line: cmp.Line}, FigureOptions{})
	assert.True(t, errors.Is(err, ErrMissingSource))

	_, err = Assemble(cmp, FigureOptions{Legend: "middle"})
	assert.True(t, errors.Is(err, commerr.ErrInvalidArgument))

	other := mustLine(t, AxisY, 1, 0, 2, 24)
	moved := *cmp
	moved.Series = append([]SeriesProfile(nil), cmp.Series...)
	moved.Series[2].Profile = &Profile{Dataset: "nipce", Field: "E[u]", Line: other, Values: make([]float64, 24)}
	_, err = Assemble(&moved, FigureOptions{})
	assert.True(t, errors.Is(err, ErrRangeMismatch))
	assert.Equal(t, "nipce", DatasetOf(err))

	bad := *cmp
	bad.Series = append([]SeriesProfile(nil), cmp.Series...)
	bad.Series[0].Style = AesMapping{"geom": "violin"}
	_, err = Assemble(&bad, FigureOptions{})
	assert.True(t, errors.Is(err, commerr.ErrInvalidArgument))
}

func TestSaveErrors(t *testing.T) {
	fig, err := Assemble(testComparison(t), FigureOptions{})
	require.NoError(t, err)
	dir := t.TempDir()

	err = fig.Save(filepath.Join(dir, "no", "such", "dir", "out.png"))
	assert.True(t, errors.Is(err, ErrArtifactWrite))
	assert.True(t, errors.Is(err, commerr.ErrFailed))

	err = fig.Save(filepath.Join(dir, "out.svg"))
	assert.True(t, errors.Is(err, ErrArtifactWrite))

	cmp := testComparison(t)
	cmp.Output = ""
	_, err = Render(cmp, FigureOptions{})
	assert.True(t, errors.Is(err, ErrArtifactWrite))

	cmp.Output = filepath.Join(dir, "rendered.png")
	_, err = Render(cmp, FigureOptions{Legend: "none"})
	require.NoError(t, err)
	assert.FileExists(t, cmp.Output)
}

func TestScaleLimits(t *testing.T) {
	s := NewScale()
	min, max := s.Limits()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)

	s.Train([]float64{math.NaN(), 4})
	min, max = s.Limits()
	assert.InDelta(t, 3.8, min, 1e-12)
	assert.InDelta(t, 4.2, max, 1e-12)

	s.Train([]float64{-6})
	min, max = s.Limits()
	assert.InDelta(t, -6.5, min, 1e-12)
	assert.InDelta(t, 4.5, max, 1e-12)

	s.FixedMax = 10
	_, max = s.Limits()
	assert.Equal(t, 10.0, max)

	zero := NewScale()
	zero.Train([]float64{0, 0})
	min, max = zero.Limits()
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 1.0, max)
}

func TestGeomPlotters(t *testing.T) {
	nan := math.NaN()
	pts := plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: nan, Y: 2}, {X: 3, Y: 3},
		{X: 4, Y: 4}, {X: 5, Y: 5}, {X: nan, Y: 6}, {X: 7, Y: 7}}

	line, err := NewGeom(AesMapping{"linetype": "dotted"}, DefaultTheme)
	require.NoError(t, err)
	assert.Equal(t, "GeomLine", line.Name())
	ps, err := line.Plotters(pts)
	require.NoError(t, err)
	assert.Len(t, ps, 2, "two runs of at least two points, the lone last point is dropped")
	assert.NotEmpty(t, line.(GeomLine).Style.Dashes)

	point, err := NewGeom(AesMapping{"geom": "point", "every": "3"}, DefaultTheme)
	require.NoError(t, err)
	ps, err = point.Plotters(pts)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	sc := ps[0].(*plotter.Scatter)
	// Indices 0, 3 and 6 are drawn except the NaN at 6.
	assert.Equal(t, plotter.XYs{{X: 0, Y: 0}, {X: 3, Y: 3}}, sc.XYs)
	assert.Equal(t, vg.Points(3), sc.GlyphStyle.Radius)

	ps, err = point.Plotters(plotter.XYs{{X: nan, Y: 0}})
	require.NoError(t, err)
	assert.Empty(t, ps)
}
