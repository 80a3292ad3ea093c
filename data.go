package profile

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
)

// Axis names one of the two coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// Field is a named column of scalar values, index aligned with the
// coordinates of the Dataset it belongs to.
type Field struct {
	// Name of the column as found in the header.
	Name string

	// Data contains one value per point.
	Data []float64

	// err is set for columns which could not be converted. It is only
	// reported once the field is actually requested.
	err error
}

// MinMax returns the minimum and maximum of f together with their
// indices. NaN values are skipped; if f has no non-NaN value the indices
// are -1.
func (f Field) MinMax() (min, max float64, mini, maxi int) {
	return minMax(f.Data)
}

func minMax(data []float64) (min, max float64, mini, maxi int) {
	min, max, mini, maxi = math.NaN(), math.NaN(), -1, -1
	for i, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if mini == -1 || v < min {
			min, mini = v, i
		}
		if maxi == -1 || v > max {
			max, maxi = v, i
		}
	}
	return min, max, mini, maxi
}

// Dataset is a scattered point set: N coordinates (X[i], Y[i]) plus any
// number of named fields with N values each.
//
// A Dataset is set up once by Load (or NewDataset and AddField) and must
// not be modified afterwards; it may then be shared freely between
// goroutines.
type Dataset struct {
	// Name identifies the dataset in errors and logs, usually the path.
	Name string

	// N is the number of points.
	N int

	// X and Y are the point coordinates.
	X, Y []float64

	// Columns maps field names to the fields.
	Columns map[string]Field

	order []string // field names in header order
}

// NewDataset constructs a dataset without fields from the coordinates.
func NewDataset(name string, x, y []float64) (*Dataset, error) {
	if len(x) != len(y) {
		return nil, newError(ErrBadField, name, "",
			fmt.Errorf("got %d x but %d y coordinates", len(x), len(y)))
	}
	return &Dataset{
		Name:    name,
		N:       len(x),
		X:       x,
		Y:       y,
		Columns: make(map[string]Field),
	}, nil
}

// AddField adds the column name to ds. Data must have exactly ds.N entries.
func (ds *Dataset) AddField(name string, data []float64) error {
	if len(data) != ds.N {
		return newError(ErrBadField, ds.Name, name,
			fmt.Errorf("got %d values for %d points", len(data), ds.N))
	}
	ds.addField(Field{Name: name, Data: data})
	return nil
}

func (ds *Dataset) addField(f Field) {
	if _, ok := ds.Columns[f.Name]; !ok {
		ds.order = append(ds.order, f.Name)
	}
	ds.Columns[f.Name] = f
}

// Has reports whether ds contains a usable field name.
func (ds *Dataset) Has(name string) bool {
	f, ok := ds.Columns[name]
	return ok && f.err == nil
}

// Field returns the values of the named field. The returned slice is
// shared and must not be modified.
func (ds *Dataset) Field(name string) ([]float64, error) {
	f, ok := ds.Columns[name]
	if !ok {
		return nil, newError(ErrMissingField, ds.Name, name, nil)
	}
	if f.err != nil {
		return nil, newError(ErrBadField, ds.Name, name, f.err)
	}
	return f.Data, nil
}

// FieldNames returns the names of all fields in header order.
func (ds *Dataset) FieldNames() []string {
	names := make([]string, len(ds.order))
	copy(names, ds.order)
	return names
}

// Coords returns the coordinates along axis.
func (ds *Dataset) Coords(axis Axis) []float64 {
	if axis == AxisX {
		return ds.X
	}
	return ds.Y
}

// Extent returns the minimum and maximum coordinate along axis.
// Both are NaN for an empty dataset.
func (ds *Dataset) Extent(axis Axis) (lo, hi float64) {
	lo, hi, _, _ = minMax(ds.Coords(axis))
	return lo, hi
}

// Print dumps ds in tabular form to w.
func (ds *Dataset) Print(w io.Writer) {
	tw := tabwriter.NewWriter(w, 4, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "Dataset %q (%d points)\n", ds.Name, ds.N)
	fmt.Fprint(tw, "i\tx\ty\t")
	for _, name := range ds.order {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintln(tw)
	for i := 0; i < ds.N; i++ {
		fmt.Fprintf(tw, "%d\t%g\t%g\t", i, ds.X[i], ds.Y[i])
		for _, name := range ds.order {
			f := ds.Columns[name]
			if f.err != nil {
				fmt.Fprint(tw, "--NA--\t")
				continue
			}
			fmt.Fprintf(tw, "%g\t", f.Data[i])
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
