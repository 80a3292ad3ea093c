package profile

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sgostarter/i/l"
)

// Series is one curve of a comparison: a dataset, how to label it and
// how to draw it.
type Series struct {
	Label   string
	Style   AesMapping
	Dataset *Dataset

	// Field is the column to use instead of the compared field, e.g. the
	// plain "u" of a deterministic run shown next to "E[u]".
	Field string

	// Reference marks an overlay which is not one of the compared
	// sources. Fields restricts the compared fields a series takes part
	// in; empty means all.
	Reference bool
	Fields    []string
}

// AppliesTo reports whether s takes part in the comparison of field.
func (s Series) AppliesTo(field string) bool {
	if len(s.Fields) == 0 {
		return true
	}
	for _, f := range s.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Column returns the dataset column compared as field.
func (s Series) Column(field string) string {
	if s.Field != "" {
		return s.Field
	}
	return field
}

// ComparisonSpec describes what to compare and where to put the result.
// It is not modified by the Comparator.
type ComparisonSpec struct {
	Title  string
	Line   *SamplingLine
	Series []Series

	// Output is the path of the image to write. A "{field}" in it is
	// replaced by the compared field.
	Output string
}

// OutputFor returns the output path for field.
func (cs *ComparisonSpec) OutputFor(field string) string {
	return strings.ReplaceAll(cs.Output, "{field}", field)
}

// SeriesProfile is the profile of one series.
type SeriesProfile struct {
	Label     string
	Style     AesMapping
	Reference bool
	Profile   *Profile
}

// Comparison collects the profiles of one field along one shared line.
type Comparison struct {
	ID     string // run id, shows up in the log
	Title  string
	Field  string
	Line   *SamplingLine
	Output string
	Series []SeriesProfile
}

// Profile returns the profile labeled label or nil.
func (c *Comparison) Profile(label string) *Profile {
	for _, s := range c.Series {
		if s.Label == label {
			return s.Profile
		}
	}
	return nil
}

// Comparator computes the profiles of a ComparisonSpec.
type Comparator struct {
	Logger l.Wrapper

	// Cache keeps triangulations between comparisons. Nil triangulates
	// each dataset anew.
	Cache *TriangulationCache

	// Workers is the number of series interpolated concurrently.
	Workers int

	// Strict rejects datasets whose extent does not cover the line
	// instead of producing NaN where the line leaves the data.
	Strict bool
}

// NewComparator returns a sequential, caching Comparator.
func NewComparator(logger l.Wrapper) *Comparator {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	return &Comparator{
		Logger:  logger.WithFields(l.StringField(l.ClsKey, "Comparator")),
		Cache:   NewTriangulationCache(0),
		Workers: 1,
	}
}

// Validate checks spec for field without interpolating anything: every
// applicable series needs a dataset holding a usable column, and in
// strict mode the dataset has to cover the line.
func (c *Comparator) Validate(spec *ComparisonSpec, field string) error {
	if spec.Line == nil {
		return fmt.Errorf("%w: no sampling line", ErrInvalidLine)
	}
	if len(spec.Series) == 0 {
		return fmt.Errorf("%w: no series to compare", ErrMissingSource)
	}
	applicable := 0
	for _, s := range spec.Series {
		if !s.AppliesTo(field) {
			continue
		}
		applicable++
		if s.Dataset == nil {
			return newError(ErrMissingSource, "", s.Column(field),
				fmt.Errorf("series %q has no dataset", s.Label))
		}
		if _, err := s.Dataset.Field(s.Column(field)); err != nil {
			return err
		}
		if c.Strict {
			if err := covers(s.Dataset, s.Column(field), spec.Line); err != nil {
				return err
			}
		}
	}
	if applicable == 0 {
		return newError(ErrMissingSource, "", field, errors.New("no series takes part in this field"))
	}
	return nil
}

// covers checks that the bounding box of ds contains every point of line.
func covers(ds *Dataset, field string, line *SamplingLine) error {
	lo, hi := line.Range()
	dlo, dhi := ds.Extent(line.Axis)
	flo, fhi := ds.Extent(line.Axis.Other())
	if !(dlo <= lo && hi <= dhi) {
		return newError(ErrRangeMismatch, ds.Name, field,
			fmt.Errorf("%s range [%g, %g] exceeds data [%g, %g]", line.Axis, lo, hi, dlo, dhi))
	}
	if !(flo <= line.Fixed && line.Fixed <= fhi) {
		return newError(ErrRangeMismatch, ds.Name, field,
			fmt.Errorf("%s=%g outside data [%g, %g]", line.Axis.Other(), line.Fixed, flo, fhi))
	}
	return nil
}

// Compare computes one profile per applicable series of spec for field,
// all on spec.Line. Nothing is interpolated unless the whole spec
// validates.
func (c *Comparator) Compare(spec *ComparisonSpec, field string) (*Comparison, error) {
	if err := c.Validate(spec, field); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := c.Logger
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	logger = logger.WithFields(l.StringField("run", id), l.StringField("field", field))

	var series []Series
	for _, s := range spec.Series {
		if s.AppliesTo(field) {
			series = append(series, s)
		}
	}

	start := time.Now()
	profiles := make([]*Profile, len(series))
	errs := make([]error, len(series))
	work := func(i int) {
		profiles[i], errs[i] = c.profile(series[i], field, spec.Line)
	}

	workers := c.Workers
	if workers > len(series) {
		workers = len(series)
	}
	if workers <= 1 {
		for i := range series {
			work(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					work(i)
				}
			}()
		}
		for i := range series {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}
	if err := errors.Join(errs...); err != nil {
		logger.WithFields(l.ErrorField(err)).Error("comparison failed")
		return nil, err
	}

	cmp := &Comparison{
		ID:     id,
		Title:  spec.Title,
		Field:  field,
		Line:   spec.Line,
		Output: spec.OutputFor(field),
		Series: make([]SeriesProfile, len(series)),
	}
	for i, s := range series {
		cmp.Series[i] = SeriesProfile{
			Label:     s.Label,
			Style:     s.Style,
			Reference: s.Reference,
			Profile:   profiles[i],
		}
		logger.WithFields(l.StringField("series", s.Label), l.StringField("dataset", s.Dataset.Name),
			l.IntField("valid", profiles[i].Valid())).Debug("profile computed")
	}
	logger.WithFields(l.IntField("series", len(series)), l.IntField("points", spec.Line.Len()),
		l.DurationField("took", time.Since(start))).Info("comparison done")
	return cmp, nil
}

func (c *Comparator) profile(s Series, field string, line *SamplingLine) (*Profile, error) {
	col := s.Column(field)
	values, err := s.Dataset.Field(col)
	if err != nil {
		return nil, err
	}
	var tri *Triangulation
	if c.Cache != nil {
		tri, err = c.Cache.Get(s.Dataset)
	} else {
		tri, err = Triangulate(s.Dataset)
	}
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Field == "" {
			return nil, newError(e.Kind, e.Dataset, col, e.Err)
		}
		return nil, err
	}
	return tri.Profile(values, s.Dataset.Name, col, line)
}

// CompareAll compares every field in turn. All fields are validated
// before the first interpolation.
func (c *Comparator) CompareAll(spec *ComparisonSpec, fields []string) ([]*Comparison, error) {
	for _, f := range fields {
		if err := c.Validate(spec, f); err != nil {
			return nil, err
		}
	}
	result := make([]*Comparison, 0, len(fields))
	for _, f := range fields {
		cmp, err := c.Compare(spec, f)
		if err != nil {
			return nil, err
		}
		result = append(result, cmp)
	}
	return result, nil
}
