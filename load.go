package profile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

// LoadOptions controls how a tabular text file is read into a Dataset.
type LoadOptions struct {
	// XColumn and YColumn name the coordinate columns.
	XColumn, YColumn string

	// Comma is the field delimiter. Zero detects comma, semicolon or tab
	// from the header line.
	Comma rune

	// Comment starts a comment line if it is the first character.
	Comment rune
}

// DefaultLoadOptions reads comma, semicolon or tab separated files with coordinate
// columns "x" and "y".
var DefaultLoadOptions = LoadOptions{
	XColumn: "x",
	YColumn: "y",
	Comment: '#',
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.XColumn == "" {
		o.XColumn = DefaultLoadOptions.XColumn
	}
	if o.YColumn == "" {
		o.YColumn = DefaultLoadOptions.YColumn
	}
	return o
}

// Load reads the dataset stored at path using DefaultLoadOptions.
func Load(path string) (*Dataset, error) {
	return LoadWith(path, DefaultLoadOptions)
}

// LoadWith reads the dataset stored at path. A missing file results in
// ErrSourceNotFound.
func LoadWith(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrSourceNotFound, path, "", err)
		}
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()
	return Read(bufio.NewReader(f), path, opts)
}

// Read parses a header-prefixed table from r. Only the coordinate columns
// are validated here; other columns which cannot be converted are kept
// and reported as ErrBadField once requested.
func Read(r *bufio.Reader, name string, opts LoadOptions) (*Dataset, error) {
	opts = opts.withDefaults()
	comma := opts.Comma
	if comma == 0 {
		comma = detectComma(r, opts.Comment)
	}

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = opts.Comment
	cr.TrimLeadingSpace = comma != '\t' && comma != ' '
	records, err := cr.ReadAll()
	if err != nil {
		return nil, newError(ErrBadField, name, "", err)
	}
	if len(records) == 0 {
		return nil, newError(ErrBadField, name, "", errors.New("no header row"))
	}

	header := records[0]
	rows := records[1:]
	seen := NewStringSet()
	xi, yi := -1, -1
	for i, h := range header {
		h = strings.Trim(strings.TrimSpace(h), `"'`)
		header[i] = h
		if h == "" {
			continue // unnamed index column
		}
		if seen.Contains(h) {
			return nil, newError(ErrBadField, name, h, errors.New("duplicate column"))
		}
		seen.Add(h)
		switch h {
		case opts.XColumn:
			xi = i
		case opts.YColumn:
			yi = i
		}
	}
	if xi == -1 {
		return nil, newError(ErrMissingField, name, opts.XColumn, nil)
	}
	if yi == -1 {
		return nil, newError(ErrMissingField, name, opts.YColumn, nil)
	}

	columns := make([][]float64, len(header))
	broken := make([]error, len(header))
	for c := range header {
		columns[c] = make([]float64, len(rows))
	}
	for r, row := range rows {
		for c := range header {
			if broken[c] != nil || header[c] == "" {
				continue
			}
			cell := strings.TrimSpace(row[c])
			if cell == "" {
				if c == xi || c == yi {
					broken[c] = fmt.Errorf("row %d: empty coordinate", r+2)
					continue
				}
				columns[c][r] = math.NaN()
				continue
			}
			v, err := cast.ToFloat64E(cell)
			if err != nil {
				broken[c] = fmt.Errorf("row %d: %w", r+2, err)
				continue
			}
			columns[c][r] = v
		}
	}
	for _, c := range []int{xi, yi} {
		if broken[c] != nil {
			return nil, newError(ErrBadField, name, header[c], broken[c])
		}
	}

	ds, err := NewDataset(name, columns[xi], columns[yi])
	if err != nil {
		return nil, err
	}
	for c, h := range header {
		if h == "" || c == xi || c == yi {
			continue
		}
		ds.addField(Field{Name: h, Data: columns[c], err: broken[c]})
	}
	return ds, nil
}

// detectComma peeks at the header line and picks whichever of comma,
// semicolon and tab it contains most often. Ties and lines without any of
// them give comma. Leading comment and blank lines are skipped.
func detectComma(r *bufio.Reader, comment rune) rune {
	buf, _ := r.Peek(4096)
	for _, line := range strings.Split(string(buf), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || (comment != 0 && strings.HasPrefix(line, string(comment))) {
			continue
		}
		best, n := ',', strings.Count(line, ",")
		for _, c := range []rune{';', '\t'} {
			if k := strings.Count(line, string(c)); k > n {
				best, n = c, k
			}
		}
		return best
	}
	return ','
}

// -------------------------------------------------------------------------
// Path resolution

// Resolver turns a dataset key (a sample count, a resolution tag, a plain
// file name) into the path of the file to load.
type Resolver interface {
	Resolve(key string) (string, error)
}

// PathMap resolves keys by lookup.
type PathMap map[string]string

func (m PathMap) Resolve(key string) (string, error) {
	p := m[key]
	if p == "" {
		return "", newError(ErrMissingSource, key, "", nil)
	}
	return p, nil
}

// Template resolves a key by expanding Pattern: "{key}" is replaced by
// the key, "{name}" by Vars[name]. The result is joined to Dir unless it
// is absolute.
//
// Examples of patterns:
//     "simple_res{key}.csv"
//     "{prefix}-mc-{key}-samples/statistics.csv"
//     "{prefix}_mc_sample.statistics-{key}.csv"
type Template struct {
	Dir     string
	Pattern string
	Vars    map[string]string
}

func (t Template) Resolve(key string) (string, error) {
	if t.Pattern == "" {
		return "", newError(ErrMissingSource, key, "", errors.New("empty pattern"))
	}
	if strings.Contains(t.Pattern, "{key}") && key == "" {
		return "", newError(ErrMissingSource, t.Pattern, "", errors.New("empty key"))
	}
	names := make([]string, 0, len(t.Vars))
	for k := range t.Vars {
		names = append(names, k)
	}
	sort.Strings(names)
	pairs := []string{"{key}", key}
	for _, k := range names {
		pairs = append(pairs, "{"+k+"}", t.Vars[k])
	}
	p := strings.NewReplacer(pairs...).Replace(t.Pattern)
	if i := strings.IndexByte(p, '{'); i >= 0 && strings.IndexByte(p[i:], '}') > 0 {
		return "", newError(ErrMissingSource, p, "", errors.New("unexpanded placeholder"))
	}
	if t.Dir != "" && !filepath.IsAbs(p) {
		p = filepath.Join(t.Dir, p)
	}
	return p, nil
}

// Source names one dataset to load: Key resolved by Resolver. A nil
// Resolver uses Key as the path.
type Source struct {
	Key      string
	Resolver Resolver
}

// Path resolves s.
func (s Source) Path() (string, error) {
	if s.Resolver == nil {
		if s.Key == "" {
			return "", newError(ErrMissingSource, "", "", nil)
		}
		return s.Key, nil
	}
	return s.Resolver.Resolve(s.Key)
}

// Loader loads the datasets of one comparison run.
type Loader struct {
	Options LoadOptions
	Logger  l.Wrapper
}

// NewLoader returns a Loader with default options. A nil logger discards
// all output.
func NewLoader(logger l.Wrapper) *Loader {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	return &Loader{
		Options: DefaultLoadOptions,
		Logger:  logger.WithFields(l.StringField(l.ClsKey, "Loader")),
	}
}

// LoadAll resolves every source first and fails on the first missing
// identifier before reading any file. Then all files are read; a file
// named by several sources is read once. The result is index aligned
// with sources.
func (ld *Loader) LoadAll(sources []Source) ([]*Dataset, error) {
	paths := make([]string, len(sources))
	for i, s := range sources {
		p, err := s.Path()
		if err != nil {
			return nil, err
		}
		paths[i] = p
	}

	loaded := make(map[string]*Dataset)
	result := make([]*Dataset, len(sources))
	for i, p := range paths {
		if ds, ok := loaded[p]; ok {
			result[i] = ds
			continue
		}
		ds, err := LoadWith(p, ld.Options)
		if err != nil {
			ld.Logger.WithFields(l.StringField("path", p), l.ErrorField(err)).Error("load dataset failed")
			return nil, err
		}
		ld.Logger.WithFields(l.StringField("path", p), l.IntField("points", ds.N),
			l.IntField("fields", len(ds.Columns))).Debug("dataset loaded")
		loaded[p] = ds
		result[i] = ds
	}
	return result, nil
}
