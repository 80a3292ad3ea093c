package profile

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultPoints is the number of query points on a sampling line if
// nothing else is requested.
const DefaultPoints = 100

// SamplingLine is an ordered set of query points: the coordinate along
// Axis increases monotonically, the other coordinate is Fixed.
//
// A SamplingLine is immutable and is shared by all interpolations of one
// comparison run so that index i denotes the same physical location in
// every profile.
type SamplingLine struct {
	Axis  Axis    // the varying axis
	Fixed float64 // coordinate on the other axis

	positions []float64
}

// NewSamplingLine returns m points evenly spaced in [lo, hi] along axis,
// each paired with the fixed coordinate on the other axis.
func NewSamplingLine(axis Axis, fixed, lo, hi float64, m int) (*SamplingLine, error) {
	switch {
	case m < 2:
		return nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidLine, m)
	case !finite(lo) || !finite(hi) || !finite(fixed):
		return nil, fmt.Errorf("%w: non-finite bounds lo=%g hi=%g fixed=%g", ErrInvalidLine, lo, hi, fixed)
	case lo >= hi:
		return nil, fmt.Errorf("%w: empty range [%g, %g]", ErrInvalidLine, lo, hi)
	}
	pos := floats.Span(make([]float64, m), lo, hi)
	pos[m-1] = hi
	return &SamplingLine{Axis: axis, Fixed: fixed, positions: pos}, nil
}

// LineFromReference builds a line whose range is the extent of the
// reference dataset along axis.
func LineFromReference(ref *Dataset, axis Axis, fixed float64, m int) (*SamplingLine, error) {
	lo, hi := ref.Extent(axis)
	line, err := NewSamplingLine(axis, fixed, lo, hi, m)
	if err != nil {
		return nil, newError(ErrInvalidLine, ref.Name, "", err)
	}
	return line, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Len returns the number of query points.
func (s *SamplingLine) Len() int { return len(s.positions) }

// Range returns the first and last position along the varying axis.
func (s *SamplingLine) Range() (lo, hi float64) {
	return s.positions[0], s.positions[len(s.positions)-1]
}

// Positions returns the coordinates along the varying axis. The slice is
// shared and must not be modified.
func (s *SamplingLine) Positions() []float64 { return s.positions }

// Point returns the i'th query point.
func (s *SamplingLine) Point(i int) (x, y float64) {
	if s.Axis == AxisX {
		return s.positions[i], s.Fixed
	}
	return s.Fixed, s.positions[i]
}

// Same reports whether s and t describe identical query points.
func (s *SamplingLine) Same(t *SamplingLine) bool {
	if s == t {
		return true
	}
	if s == nil || t == nil {
		return false
	}
	return s.Axis == t.Axis && s.Fixed == t.Fixed && floats.Same(s.positions, t.positions)
}

func (s *SamplingLine) String() string {
	lo, hi := s.Range()
	return fmt.Sprintf("%s=%g, %s in [%g, %g], %d points",
		s.Axis.Other(), s.Fixed, s.Axis, lo, hi, s.Len())
}
