package config

import (
	"fmt"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/pathutils"
	"gonum.org/v1/plot/vg"

	"github.com/vdobler/profile"
)

// LoadOptions returns the options to read the datasets of c with.
func (c *Config) LoadOptions() profile.LoadOptions {
	opts := profile.DefaultLoadOptions
	if c.XColumn != "" {
		opts.XColumn = c.XColumn
	}
	if c.YColumn != "" {
		opts.YColumn = c.YColumn
	}
	return opts
}

// SamplingLine builds the line of c. Datasets must be index aligned with
// c.Datasets.
func (c *Config) SamplingLine(datasets []*profile.Dataset) (*profile.SamplingLine, error) {
	axis, err := c.Axis()
	if err != nil {
		return nil, err
	}
	m := c.Line.Points
	if m == 0 {
		m = profile.DefaultPoints
	}
	if c.Line.Min != nil && c.Line.Max != nil {
		return profile.NewSamplingLine(axis, c.Line.Fixed, *c.Line.Min, *c.Line.Max, m)
	}
	ref := 0
	for i, d := range c.Datasets {
		if c.Line.From != "" && d.Key == c.Line.From {
			ref = i
			break
		}
	}
	if ref >= len(datasets) || datasets[ref] == nil {
		return nil, fmt.Errorf("%w: no dataset to take the line range from", profile.ErrMissingSource)
	}
	return profile.LineFromReference(datasets[ref], axis, c.Line.Fixed, m)
}

// Spec assembles the comparison of c from the loaded datasets.
func (c *Config) Spec(datasets []*profile.Dataset, line *profile.SamplingLine) *profile.ComparisonSpec {
	spec := &profile.ComparisonSpec{
		Title:  c.Figure.Title,
		Line:   line,
		Output: c.OutputPattern(),
	}
	for i, d := range c.Datasets {
		label := d.Label
		if label == "" {
			label = d.Key
		}
		var ds *profile.Dataset
		if i < len(datasets) {
			ds = datasets[i]
		}
		spec.Series = append(spec.Series, profile.Series{
			Label:     label,
			Style:     profile.AesMapping(d.Style),
			Dataset:   ds,
			Field:     d.Field,
			Reference: d.Reference,
			Fields:    d.Fields,
		})
	}
	return spec
}

// FigureOptions returns the layout for the figure of field.
func (c *Config) FigureOptions(field string) profile.FigureOptions {
	f := c.Figure
	opts := profile.FigureOptions{
		ValueLabel:    f.ValueLabel,
		PositionLabel: f.PositionLabel,
		Unit:          f.Unit,
		Transpose:     f.Transpose,
		Legend:        f.Legend,
		Grid:          f.Grid,
	}
	if lim, ok := f.Limits[field]; ok {
		opts.ValueMin, opts.ValueMax = lim.Min, lim.Max
	}
	theme := profile.DefaultTheme
	if f.Width > 0 && f.Height > 0 {
		theme.Width, theme.Height = vg.Length(f.Width)*vg.Inch, vg.Length(f.Height)*vg.Inch
	}
	if f.DPI > 0 {
		theme.DPI = f.DPI
	}
	opts.Theme = &theme
	return opts
}

// Run executes c: it validates c, loads every dataset, compares all
// fields and writes one figure per field. It returns the paths written.
// Nothing is interpolated before all datasets are loaded and every
// field is known to exist.
func Run(c *Config, logger l.Wrapper) ([]string, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	loader := profile.NewLoader(logger)
	loader.Options = c.LoadOptions()
	datasets, err := loader.LoadAll(c.Sources())
	if err != nil {
		return nil, err
	}
	line, err := c.SamplingLine(datasets)
	if err != nil {
		return nil, err
	}
	logger.WithFields(l.StringField("run", c.Name), l.StringField("line", line.String())).Info("sampling line ready")

	cmp := profile.NewComparator(logger)
	cmp.Strict = c.Strict
	if c.Workers > 0 {
		cmp.Workers = c.Workers
	}
	spec := c.Spec(datasets, line)
	comparisons, err := cmp.CompareAll(spec, c.Fields)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, comparison := range comparisons {
		if err := pathutils.MustDirOfFileExists(comparison.Output); err != nil {
			return written, &profile.Error{Kind: profile.ErrArtifactWrite, Dataset: comparison.Output, Err: err}
		}
		if _, err := profile.Render(comparison, c.FigureOptions(comparison.Field)); err != nil {
			return written, err
		}
		logger.WithFields(l.StringField("field", comparison.Field),
			l.StringField("path", comparison.Output)).Info("figure written")
		written = append(written, comparison.Output)
	}
	return written, nil
}
