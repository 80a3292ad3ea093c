package profile

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// gridDataset samples f on a regular n by n grid over [lo,hi]^2 and
// stores it as field "u".
func gridDataset(t *testing.T, name string, n int, lo, hi float64, f func(x, y float64) float64) *Dataset {
	t.Helper()
	coords := floats.Span(make([]float64, n), lo, hi)
	var x, y, u []float64
	for _, cy := range coords {
		for _, cx := range coords {
			x = append(x, cx)
			y = append(y, cy)
			u = append(u, f(cx, cy))
		}
	}
	ds, err := NewDataset(name, x, y)
	require.NoError(t, err)
	require.NoError(t, ds.AddField("u", u))
	return ds
}

// scatterDataset places n pseudo random points in the unit square.
func scatterDataset(t *testing.T, seed int64, n int, f func(x, y float64) float64) *Dataset {
	t.Helper()
	rnd := rand.New(rand.NewSource(seed))
	x, y, u := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range x {
		x[i], y[i] = rnd.Float64(), rnd.Float64()
		u[i] = f(x[i], y[i])
	}
	ds, err := NewDataset("scatter", x, y)
	require.NoError(t, err)
	require.NoError(t, ds.AddField("u", u))
	return ds
}

func smooth(x, y float64) float64 { return math.Sin(x)*math.Cos(y) + x*y }

func TestUnitSquare(t *testing.T) {
	ds, err := NewDataset("square", []float64{0, 1, 0, 1}, []float64{0, 0, 1, 1})
	require.NoError(t, err)
	require.NoError(t, ds.AddField("u", []float64{0, 0, 1, 1}))

	tri, err := Triangulate(ds)
	require.NoError(t, err)
	assert.Equal(t, 2, tri.NumTriangles())

	u, _ := ds.Field("u")
	assert.InDelta(t, 0.5, tri.At(u, 0.5, 0.5), 1e-15)
	assert.InDelta(t, 0.25, tri.At(u, 0.9, 0.25), 1e-15)
	assert.Equal(t, 1.0, tri.At(u, 1, 1))
	assert.True(t, math.IsNaN(tri.At(u, 1.5, 0.5)))
}

func TestPassThrough(t *testing.T) {
	ds := scatterDataset(t, 1, 200, smooth)
	tri, err := Triangulate(ds)
	require.NoError(t, err)

	u, _ := ds.Field("u")
	for i := 0; i < ds.N; i++ {
		if got := tri.At(u, ds.X[i], ds.Y[i]); got != u[i] {
			t.Errorf("point %d (%g, %g): got %.17g, want %.17g", i, ds.X[i], ds.Y[i], got, u[i])
		}
	}
}

func TestOutsideHull(t *testing.T) {
	ds, err := NewDataset("triangle", []float64{0, 1, 0}, []float64{0, 0, 1})
	require.NoError(t, err)
	require.NoError(t, ds.AddField("u", []float64{1, 2, 3}))
	tri, err := Triangulate(ds)
	require.NoError(t, err)
	u, _ := ds.Field("u")

	for _, q := range [][2]float64{{0.6, 0.6}, {-0.1, 0.5}, {0.5, -1e-6}, {2, 2}, {-5, -5}} {
		if got := tri.At(u, q[0], q[1]); !math.IsNaN(got) {
			t.Errorf("(%g, %g) outside the hull: got %g, want NaN", q[0], q[1], got)
		}
	}
	// Points on the hull boundary are inside.
	assert.InDelta(t, 2.5, tri.At(u, 0.5, 0.5), 1e-12)
	assert.InDelta(t, 1.5, tri.At(u, 0.5, 0), 1e-12)

	// A line crossing the hull has defined values only inside.
	line, err := NewSamplingLine(AxisY, 0.25, -1, 2, 13)
	require.NoError(t, err)
	p, err := Interpolate(ds, "u", line)
	require.NoError(t, err)
	for i, v := range p.Values {
		_, y := line.Point(i)
		inside := y >= 0 && y <= 0.75
		if inside == math.IsNaN(v) {
			t.Errorf("y=%g: got %g", y, v)
		}
	}
	assert.Equal(t, 4, p.Valid())
}

func TestInterpolateDeterministic(t *testing.T) {
	ds := scatterDataset(t, 7, 500, smooth)
	line, err := NewSamplingLine(AxisY, 0.5, 0, 1, DefaultPoints)
	require.NoError(t, err)

	p1, err := Interpolate(ds, "u", line)
	require.NoError(t, err)
	p2, err := Interpolate(ds, "u", line)
	require.NoError(t, err)
	require.Equal(t, line.Len(), p1.Len())
	assert.True(t, p1.Same(p2))
	for i := range p1.Values {
		if math.Float64bits(p1.Values[i]) != math.Float64bits(p2.Values[i]) {
			t.Fatalf("index %d: %x != %x", i, math.Float64bits(p1.Values[i]), math.Float64bits(p2.Values[i]))
		}
	}
}

func TestConvergence(t *testing.T) {
	line, err := NewSamplingLine(AxisY, 1.03, 0, 2, DefaultPoints)
	require.NoError(t, err)
	exact := &Profile{Line: line, Values: make([]float64, line.Len())}
	for i := range exact.Values {
		x, y := line.Point(i)
		exact.Values[i] = smooth(x, y)
	}

	prev := math.Inf(1)
	for _, n := range []int{5, 10, 20, 40} {
		ds := gridDataset(t, "grid", n, 0, 2, smooth)
		p, err := Interpolate(ds, "u", line)
		require.NoError(t, err)
		require.Equal(t, line.Len(), p.Valid(), "line lies within the grid")
		diff := MaxAbsDiff(p, exact)
		if !(diff < prev) {
			t.Errorf("n=%d: max abs diff %g did not decrease from %g", n, diff, prev)
		}
		prev = diff
	}
	assert.Less(t, prev, 1e-2)
}

func TestBucketGridMatchesBruteForce(t *testing.T) {
	ds := scatterDataset(t, 3, 300, smooth)
	tri, err := Triangulate(ds)
	require.NoError(t, err)
	u, _ := ds.Field("u")

	brute := func(x, y float64) float64 {
		for k := 0; k < tri.NumTriangles(); k++ {
			l1, l2, l3, ok := tri.barycentric(k, x, y)
			if ok && l1 >= 0 && l2 >= 0 && l3 >= 0 {
				return l1*u[tri.triangles[3*k]] + l2*u[tri.triangles[3*k+1]] + l3*u[tri.triangles[3*k+2]]
			}
		}
		return math.NaN()
	}

	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		x, y := rnd.Float64()*1.2-0.1, rnd.Float64()*1.2-0.1
		got, want := tri.At(u, x, y), brute(x, y)
		if math.IsNaN(want) {
			// Only points within the tolerance may be found by At alone.
			continue
		}
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("(%g, %g): got %g, want %g", x, y, got, want)
		}
	}
}

func TestDuplicatePoints(t *testing.T) {
	ds, err := NewDataset("dup", []float64{0, 1, 0, 1, 0}, []float64{0, 0, 1, 1, 0})
	require.NoError(t, err)
	require.NoError(t, ds.AddField("u", []float64{5, 1, 1, 1, 9}))

	p, err := Interpolate(ds, "u", mustLine(t, AxisY, 0, 0, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.Values[0], "the first of two coincident points wins")
}

func TestInsufficientGeometry(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"empty", nil, nil},
		{"two", []float64{0, 1}, []float64{0, 1}},
		{"collinear", []float64{0, 1, 2, 3}, []float64{0, 1, 2, 3}},
		{"same", []float64{1, 1, 1}, []float64{2, 2, 2}},
	}
	for _, tc := range tests {
		ds, err := NewDataset(tc.name, tc.x, tc.y)
		require.NoError(t, err)
		_, err = Triangulate(ds)
		if !errors.Is(err, ErrInsufficientGeometry) {
			t.Errorf("%s: got %v, want ErrInsufficientGeometry", tc.name, err)
		}
		if DatasetOf(err) != tc.name {
			t.Errorf("%s: error names dataset %q", tc.name, DatasetOf(err))
		}
	}

	ds, _ := NewDataset("nan", []float64{0, 1, math.NaN()}, []float64{0, 0, 1})
	_, err := Triangulate(ds)
	assert.True(t, errors.Is(err, ErrBadField))
}

func TestInterpolateErrors(t *testing.T) {
	ds := gridDataset(t, "grid", 3, 0, 1, smooth)
	line := mustLine(t, AxisY, 0.5, 0, 1, 5)

	_, err := Interpolate(ds, "p", line)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Equal(t, "p", FieldOf(err))

	tri, err := Triangulate(ds)
	require.NoError(t, err)
	_, err = tri.Profile([]float64{1, 2}, ds.Name, "short", line)
	assert.True(t, errors.Is(err, ErrBadField))
	assert.Equal(t, "short", FieldOf(err))
}

func mustLine(t *testing.T, axis Axis, fixed, lo, hi float64, m int) *SamplingLine {
	t.Helper()
	line, err := NewSamplingLine(axis, fixed, lo, hi, m)
	require.NoError(t, err)
	return line
}
