package profile

import (
	"math"
)

// Scale is a continuous position scale. It is trained on the data of all
// series and then yields the axis limits.
type Scale struct {
	DomainMin float64
	DomainMax float64

	// Expand widens the trained domain by this fraction on both sides.
	Expand float64

	// Fixed limits override the trained domain. NaN means unset.
	FixedMin, FixedMax float64
}

// NewScale returns an untrained scale with a 5% expansion.
func NewScale() *Scale {
	return &Scale{
		DomainMin: math.Inf(+1),
		DomainMax: math.Inf(-1),
		Expand:    0.05,
		FixedMin:  math.NaN(),
		FixedMax:  math.NaN(),
	}
}

// Train updates the domain of s with data. NaN values are ignored.
func (s *Scale) Train(data []float64) {
	min, max, mini, maxi := minMax(data)
	if mini != -1 && min < s.DomainMin {
		s.DomainMin = min
	}
	if maxi != -1 && max > s.DomainMax {
		s.DomainMax = max
	}
}

// Trained reports whether s has seen any defined value.
func (s *Scale) Trained() bool { return s.DomainMin <= s.DomainMax }

// Limits returns the expanded domain, replaced by the fixed limits where
// set. An untrained scale yields [0, 1]; a single value v is widened to
// v +/- 1 resp. v +/- 5% of |v|.
func (s *Scale) Limits() (min, max float64) {
	if s.Trained() {
		min, max = s.DomainMin, s.DomainMax
		if min == max {
			d := math.Abs(min) * 0.05
			if d == 0 {
				d = 1
			}
			min, max = min-d, max+d
		} else {
			expand := (max - min) * s.Expand
			min, max = min-expand, max+expand
		}
	} else {
		min, max = 0, 1
	}
	if !math.IsNaN(s.FixedMin) {
		min = s.FixedMin
	}
	if !math.IsNaN(s.FixedMax) {
		max = s.FixedMax
	}
	return min, max
}
