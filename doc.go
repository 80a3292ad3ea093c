// Profile compares scattered 2D field data along straight sampling lines.
//
//
// Data Representation: Datasets
//
// A dataset is one CSV file of scattered points. Two columns hold the
// coordinates (x and y by default), every other column is a field:
//     x,y,E[u],Var[u]
//     0.0,-2.0,0.81,0.013
//     ...
// The separator (comma, semicolon or tab) is detected from the header
// line. Lines starting with '#' are skipped and a leading index
// column without name is ignored.
//
// Field columns are parsed lazily: a broken column makes only that
// field unusable, the rest of the dataset can still be compared. Empty
// field cells (as pandas writes NaN) read as NaN.
//
//
// Sampling Lines
//
// A SamplingLine fixes one coordinate and samples the other one at M
// evenly spaced positions, the last one pinned to the upper bound. Its
// range is either given explicitly or taken from the extent of a
// reference dataset, see LineFromReference.
//
//
// Interpolation
//
// Each dataset is triangulated (Delaunay) over its distinct points and
// fields are interpolated linearly inside the triangles. Positions
// outside the convex hull yield NaN; a Comparator in Strict mode refuses
// lines which leave a dataset instead. Values at data points are
// reproduced exactly.
//
//
// Comparisons and Figures
//
// A ComparisonSpec lists the series to compare, each a dataset plus a
// label and a style. Comparator.Compare samples all series of one field
// on the same line; Assemble and Render turn the result into a figure
// with one legend entry per series, written as PNG, JPEG or TIFF.
//
// Styles are AesMapping values like
//     {"geom": "point", "color": "red", "shape": "+", "every": "5"}
// where unset aesthetics are taken from the Theme.
package profile
