package profile

import (
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
)

// baryTol is the tolerance on barycentric coordinates below which a query
// point still counts as inside a triangle. It lets points on edges and on
// the convex hull boundary survive rounding.
const baryTol = 1e-10

// Triangulation is the Delaunay triangulation of the points of one
// Dataset together with a bucket index for point location.
// It depends only on the coordinates, so it can be reused for every field
// of the dataset. A Triangulation is read-only after construction.
type Triangulation struct {
	Name string // name of the triangulated dataset
	N    int    // number of points

	points    []delaunay.Point
	triangles []int // three vertex indices per triangle
	grid      bucketGrid
}

// Triangulate computes the Delaunay triangulation of the coordinates of
// ds. Fewer than three distinct points or only collinear points result in
// ErrInsufficientGeometry. Of several points with identical coordinates
// only the first one becomes a vertex.
func Triangulate(ds *Dataset) (*Triangulation, error) {
	if ds.N < 3 {
		return nil, newError(ErrInsufficientGeometry, ds.Name, "",
			fmt.Errorf("%d points", ds.N))
	}
	points := make([]delaunay.Point, ds.N)
	var unique []delaunay.Point
	var orig []int // index in points of each unique point
	seen := make(map[delaunay.Point]bool, ds.N)
	for i := range points {
		x, y := ds.X[i], ds.Y[i]
		if !finite(x) || !finite(y) {
			return nil, newError(ErrBadField, ds.Name, "",
				fmt.Errorf("non-finite coordinate (%g, %g) at point %d", x, y, i))
		}
		points[i] = delaunay.Point{X: x, Y: y}
		if seen[points[i]] {
			continue // the first of several coincident points wins
		}
		seen[points[i]] = true
		unique = append(unique, points[i])
		orig = append(orig, i)
	}
	if len(unique) < 3 {
		return nil, newError(ErrInsufficientGeometry, ds.Name, "",
			fmt.Errorf("%d distinct points", len(unique)))
	}

	tri, err := delaunay.Triangulate(unique)
	if err != nil {
		return nil, newError(ErrInsufficientGeometry, ds.Name, "", err)
	}
	if len(tri.Triangles) == 0 {
		return nil, newError(ErrInsufficientGeometry, ds.Name, "",
			errors.New("no triangles"))
	}
	triangles := make([]int, len(tri.Triangles))
	for i, v := range tri.Triangles {
		triangles[i] = orig[v]
	}

	t := &Triangulation{
		Name:      ds.Name,
		N:         ds.N,
		points:    points,
		triangles: triangles,
	}
	t.grid = newBucketGrid(points, triangles)
	return t, nil
}

// NumTriangles returns the number of triangles.
func (t *Triangulation) NumTriangles() int { return len(t.triangles) / 3 }

// barycentric returns the barycentric coordinates of (x,y) with respect
// to triangle k. ok is false for degenerate triangles.
func (t *Triangulation) barycentric(k int, x, y float64) (l1, l2, l3 float64, ok bool) {
	a := t.points[t.triangles[3*k]]
	b := t.points[t.triangles[3*k+1]]
	c := t.points[t.triangles[3*k+2]]

	d := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if d == 0 {
		return 0, 0, 0, false
	}
	l1 = ((b.Y-c.Y)*(x-c.X) + (c.X-b.X)*(y-c.Y)) / d
	l2 = ((c.Y-a.Y)*(x-c.X) + (a.X-c.X)*(y-c.Y)) / d
	l3 = 1 - l1 - l2
	return l1, l2, l3, true
}

// locate finds the triangle containing (x,y). Candidates are checked in
// triangle order; a triangle containing the point without tolerance is
// preferred over one which contains it only within baryTol. The result
// is -1 if the point lies outside the convex hull.
func (t *Triangulation) locate(x, y float64) (k int, l1, l2, l3 float64) {
	fallback := -1
	var f1, f2, f3 float64
	for _, cand := range t.grid.candidates(x, y) {
		b1, b2, b3, ok := t.barycentric(int(cand), x, y)
		if !ok {
			continue
		}
		if b1 >= 0 && b2 >= 0 && b3 >= 0 {
			return int(cand), b1, b2, b3
		}
		if fallback == -1 && b1 >= -baryTol && b2 >= -baryTol && b3 >= -baryTol {
			fallback, f1, f2, f3 = int(cand), b1, b2, b3
		}
	}
	return fallback, f1, f2, f3
}

// At evaluates the piecewise linear interpolant of values at (x,y).
// Values must be index aligned with the triangulated points. The result
// is NaN outside the convex hull.
func (t *Triangulation) At(values []float64, x, y float64) float64 {
	k, l1, l2, l3 := t.locate(x, y)
	if k < 0 {
		return math.NaN()
	}
	v := 0.0
	for i, w := range [3]float64{l1, l2, l3} {
		if w == 0 {
			continue // an exact vertex or edge hit ignores the opposite values
		}
		v += w * values[t.triangles[3*k+i]]
	}
	return v
}

// Interpolate evaluates values at every point of line.
func (t *Triangulation) Interpolate(values []float64, line *SamplingLine) ([]float64, error) {
	if len(values) != t.N {
		return nil, newError(ErrBadField, t.Name, "",
			fmt.Errorf("got %d values for %d points", len(values), t.N))
	}
	out := make([]float64, line.Len())
	for i := range out {
		x, y := line.Point(i)
		out[i] = t.At(values, x, y)
	}
	return out, nil
}

// Interpolate computes the profile of field of ds along line.
func Interpolate(ds *Dataset, field string, line *SamplingLine) (*Profile, error) {
	values, err := ds.Field(field)
	if err != nil {
		return nil, err
	}
	t, err := Triangulate(ds)
	if err != nil {
		return nil, err
	}
	return t.Profile(values, ds.Name, field, line)
}

// Profile evaluates values along line and labels the result.
func (t *Triangulation) Profile(values []float64, dataset, field string, line *SamplingLine) (*Profile, error) {
	out, err := t.Interpolate(values, line)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Field = field
		}
		return nil, err
	}
	return &Profile{Dataset: dataset, Field: field, Line: line, Values: out}, nil
}

// -------------------------------------------------------------------------
// Bucket grid

// bucketGrid is a uniform grid over the bounding box of the points. Each
// cell lists, in ascending order, the triangles whose bounding box
// overlaps the cell.
type bucketGrid struct {
	x0, y0, x1, y1 float64
	nx, ny         int
	cw, ch         float64
	cells          [][]int32
}

func newBucketGrid(points []delaunay.Point, triangles []int) bucketGrid {
	g := bucketGrid{x0: points[0].X, y0: points[0].Y, x1: points[0].X, y1: points[0].Y}
	for _, p := range points {
		g.x0, g.x1 = math.Min(g.x0, p.X), math.Max(g.x1, p.X)
		g.y0, g.y1 = math.Min(g.y0, p.Y), math.Max(g.y1, p.Y)
	}

	nt := len(triangles) / 3
	n := int(math.Ceil(math.Sqrt(float64(nt) / 2)))
	if n < 1 {
		n = 1
	}
	g.nx, g.ny = n, n
	g.cw = (g.x1 - g.x0) / float64(n)
	g.ch = (g.y1 - g.y0) / float64(n)
	g.cells = make([][]int32, n*n)

	for k := 0; k < nt; k++ {
		a, b, c := points[triangles[3*k]], points[triangles[3*k+1]], points[triangles[3*k+2]]
		i0 := g.col(math.Min(a.X, math.Min(b.X, c.X)))
		i1 := g.col(math.Max(a.X, math.Max(b.X, c.X)))
		j0 := g.row(math.Min(a.Y, math.Min(b.Y, c.Y)))
		j1 := g.row(math.Max(a.Y, math.Max(b.Y, c.Y)))
		for j := j0; j <= j1; j++ {
			for i := i0; i <= i1; i++ {
				g.cells[j*g.nx+i] = append(g.cells[j*g.nx+i], int32(k))
			}
		}
	}
	return g
}

func (g bucketGrid) col(x float64) int { return clampCell((x-g.x0)/g.cw, g.nx) }
func (g bucketGrid) row(y float64) int { return clampCell((y-g.y0)/g.ch, g.ny) }

func clampCell(f float64, n int) int {
	if math.IsNaN(f) || f < 0 {
		return 0 // also covers a zero cell size
	}
	i := int(f)
	if i >= n {
		return n - 1
	}
	return i
}

// candidates returns the triangles which may contain (x,y).
func (g bucketGrid) candidates(x, y float64) []int32 {
	tx := baryTol * math.Max(1, g.x1-g.x0)
	ty := baryTol * math.Max(1, g.y1-g.y0)
	if x < g.x0-tx || x > g.x1+tx || y < g.y0-ty || y > g.y1+ty {
		return nil
	}
	return g.cells[g.row(y)*g.nx+g.col(x)]
}
