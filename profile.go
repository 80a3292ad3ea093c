package profile

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Profile is the sequence of a field's values along a SamplingLine.
// Values[i] belongs to Line.Point(i); NaN marks query points outside the
// convex hull of the source dataset.
type Profile struct {
	Dataset string
	Field   string
	Line    *SamplingLine
	Values  []float64
}

// Len returns the number of values.
func (p *Profile) Len() int { return len(p.Values) }

// Valid returns the number of non-NaN values.
func (p *Profile) Valid() int {
	n := 0
	for _, v := range p.Values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Same reports whether p and q are identical, NaN compared equal to NaN.
func (p *Profile) Same(q *Profile) bool {
	return p.Line.Same(q.Line) && floats.Same(p.Values, q.Values)
}

// MaxAbsDiff returns the largest absolute difference between a and b over
// the indices where both are defined. It returns NaN if there is no such
// index or the profiles were not computed on the same line.
func MaxAbsDiff(a, b *Profile) float64 {
	if !a.Line.Same(b.Line) || len(a.Values) != len(b.Values) {
		return math.NaN()
	}
	max, n := 0.0, 0
	for i, va := range a.Values {
		vb := b.Values[i]
		if math.IsNaN(va) || math.IsNaN(vb) {
			continue
		}
		n++
		if d := math.Abs(va - vb); d > max {
			max = d
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return max
}
