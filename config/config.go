// Package config describes comparison runs in YAML or TOML files and
// turns them into the sources, sampling line and comparison spec the
// profile package works on.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libconfig"
	"gopkg.in/yaml.v3"

	"github.com/vdobler/profile"
)

// EnvPrefix prefixes the environment variables which override values
// read by LoadFile, e.g. PROFILECMP_DATA_DIR.
const EnvPrefix = "PROFILECMP"

// Dataset is one series of a run. The file is Path if set, otherwise
// Template expanded with Key and the run's Vars.
type Dataset struct {
	Key      string `yaml:"key" toml:"key"`
	Path     string `yaml:"path" toml:"path"`
	Template string `yaml:"template" toml:"template"`

	Label string            `yaml:"label" toml:"label"`
	Style map[string]string `yaml:"style" toml:"style"`

	// Field is the column used in place of every compared field.
	Field string `yaml:"field" toml:"field"`

	// Reference marks an overlay series, Fields restricts the fields it
	// is shown for.
	Reference bool     `yaml:"reference" toml:"reference"`
	Fields    []string `yaml:"fields" toml:"fields"`
}

// Line describes the sampling line. Without explicit Min and Max the
// range is the extent of the dataset with key From, or of the first
// dataset.
type Line struct {
	Axis   string   `yaml:"axis" toml:"axis"` // varying axis, "x" or "y"
	Fixed  float64  `yaml:"fixed" toml:"fixed"`
	Points int      `yaml:"points" toml:"points"`
	From   string   `yaml:"from" toml:"from"`
	Min    *float64 `yaml:"min" toml:"min"`
	Max    *float64 `yaml:"max" toml:"max"`
}

// Limits fix the value axis for one field.
type Limits struct {
	Min *float64 `yaml:"min" toml:"min"`
	Max *float64 `yaml:"max" toml:"max"`
}

// Figure holds the layout of the produced figures.
type Figure struct {
	Title         string            `yaml:"title" toml:"title" envconfig:"TITLE"`
	ValueLabel    string            `yaml:"value_label" toml:"value_label"`
	PositionLabel string            `yaml:"position_label" toml:"position_label"`
	Unit          string            `yaml:"unit" toml:"unit"`
	Transpose     bool              `yaml:"transpose" toml:"transpose"`
	Legend        string            `yaml:"legend" toml:"legend"`
	Grid          bool              `yaml:"grid" toml:"grid"`
	Width         float64           `yaml:"width" toml:"width"`   // inches
	Height        float64           `yaml:"height" toml:"height"` // inches
	DPI           int               `yaml:"dpi" toml:"dpi" envconfig:"DPI"`
	Limits        map[string]Limits `yaml:"limits" toml:"limits" ignored:"true"`
}

// Config describes one comparison run: which datasets to load, which
// fields to compare along which line and how to draw the result.
type Config struct {
	Name    string            `yaml:"name" toml:"name"`
	DataDir string            `yaml:"data_dir" toml:"data_dir" envconfig:"DATA_DIR"`
	Vars    map[string]string `yaml:"vars" toml:"vars" ignored:"true"`

	XColumn string `yaml:"x_column" toml:"x_column"`
	YColumn string `yaml:"y_column" toml:"y_column"`

	Datasets []Dataset `yaml:"datasets" toml:"datasets" ignored:"true"`
	Fields   []string  `yaml:"fields" toml:"fields"`
	Line     Line      `yaml:"line" toml:"line"`
	Figure   Figure    `yaml:"figure" toml:"figure"`

	// Output is the image path relative to DataDir. It may use the Vars
	// and "{field}".
	Output string `yaml:"output" toml:"output" envconfig:"OUTPUT"`

	Workers int  `yaml:"workers" toml:"workers" envconfig:"WORKERS"`
	Strict  bool `yaml:"strict" toml:"strict" envconfig:"STRICT"`
}

// Load searches the standard configuration directories for a YAML file
// called name.
func Load(name string) (*Config, error) {
	cfg := &Config{}
	used, err := libconfig.Load(name, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", used, err)
	}
	if used == "" {
		return nil, fmt.Errorf("config %s: %w", name, profile.ErrSourceNotFound)
	}
	return cfg, nil
}

// LoadFile reads a YAML (.yaml, .yml) or TOML (.toml) file. Unknown keys
// are an error. Environment variables prefixed with EnvPrefix override
// the values from the file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config %s: %w", path, profile.ErrSourceNotFound)
		}
		return nil, err
	}
	defer f.Close()

	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	case ".toml":
		dec := toml.NewDecoder(f)
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		return nil, fmt.Errorf("config %s: unknown format %q: %w", path, ext, commerr.ErrInvalidArgument)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w: %v", path, commerr.ErrBadFormat, err)
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config %s: environment: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) replacer() *strings.Replacer {
	names := make([]string, 0, len(c.Vars))
	for k := range c.Vars {
		names = append(names, k)
	}
	sort.Strings(names)
	pairs := make([]string, 0, 2*len(names))
	for _, k := range names {
		pairs = append(pairs, "{"+k+"}", c.Vars[k])
	}
	return strings.NewReplacer(pairs...)
}

// Source returns the source of dataset i.
func (c *Config) Source(i int) profile.Source {
	d := c.Datasets[i]
	if d.Path != "" {
		p := c.replacer().Replace(d.Path)
		if c.DataDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(c.DataDir, p)
		}
		return profile.Source{Key: p}
	}
	return profile.Source{
		Key: d.Key,
		Resolver: profile.Template{
			Dir:     c.DataDir,
			Pattern: d.Template,
			Vars:    c.Vars,
		},
	}
}

// Sources returns the sources of all datasets in order.
func (c *Config) Sources() []profile.Source {
	sources := make([]profile.Source, len(c.Datasets))
	for i := range c.Datasets {
		sources[i] = c.Source(i)
	}
	return sources
}

// OutputPattern returns the output path with the Vars expanded. It still
// contains "{field}" if Output does.
func (c *Config) OutputPattern() string {
	p := c.replacer().Replace(c.Output)
	if c.DataDir != "" && !filepath.IsAbs(p) {
		p = filepath.Join(c.DataDir, p)
	}
	return p
}

// Axis returns the varying axis of the sampling line.
func (c *Config) Axis() (profile.Axis, error) {
	switch c.Line.Axis {
	case "", "y":
		return profile.AxisY, nil
	case "x":
		return profile.AxisX, nil
	}
	return 0, fmt.Errorf("%w: axis %q", profile.ErrInvalidLine, c.Line.Axis)
}

// Validate checks c without touching any file. Every dataset needs a
// resolvable identifier; the line, the fields, the styles and the output
// must be usable.
func (c *Config) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("%w: no datasets", profile.ErrMissingSource)
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("%w: no fields to compare", profile.ErrMissingField)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: no output", profile.ErrArtifactWrite)
	}
	if len(c.Fields) > 1 && !strings.Contains(c.Output, "{field}") {
		return fmt.Errorf("%w: output %q would be overwritten for each field", profile.ErrArtifactWrite, c.Output)
	}

	labels := profile.NewStringSet()
	keys := profile.NewStringSet()
	for i, d := range c.Datasets {
		if d.Path == "" && d.Template == "" {
			return fmt.Errorf("%w: dataset %d (%q) has neither path nor template", profile.ErrMissingSource, i, d.Label)
		}
		if _, err := c.Source(i).Path(); err != nil {
			return err
		}
		label := d.Label
		if label == "" {
			label = d.Key
		}
		if labels.Contains(label) {
			return fmt.Errorf("%w: duplicate label %q", commerr.ErrAlreadyExists, label)
		}
		labels.Add(label)
		keys.Add(d.Key)
		if _, err := profile.NewGeom(d.Style, profile.DefaultTheme); err != nil {
			return fmt.Errorf("dataset %q: %w", label, err)
		}
	}

	if _, err := c.Axis(); err != nil {
		return err
	}
	if c.Line.Points == 1 || c.Line.Points < 0 {
		return fmt.Errorf("%w: %d points", profile.ErrInvalidLine, c.Line.Points)
	}
	if (c.Line.Min == nil) != (c.Line.Max == nil) {
		return fmt.Errorf("%w: give both min and max or neither", profile.ErrInvalidLine)
	}
	if c.Line.From != "" && !keys.Contains(c.Line.From) {
		return fmt.Errorf("%w: line range from unknown dataset %q, known keys are %s",
			profile.ErrMissingSource, c.Line.From, strings.Join(keys.Elements(), ", "))
	}
	return nil
}
