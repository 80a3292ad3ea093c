package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sgostarter/i/commerr"
)

// Error kinds. Each kind wraps one of the generic commerr categories so
// callers may test either.
var (
	ErrSourceNotFound       = fmt.Errorf("source not found: %w", commerr.ErrNotFound)
	ErrMissingSource        = fmt.Errorf("missing dataset identifier: %w", commerr.ErrInvalidArgument)
	ErrMissingField         = fmt.Errorf("missing field: %w", commerr.ErrNotFound)
	ErrBadField             = fmt.Errorf("bad field: %w", commerr.ErrBadFormat)
	ErrInsufficientGeometry = fmt.Errorf("insufficient geometry: %w", commerr.ErrInvalidArgument)
	ErrRangeMismatch        = fmt.Errorf("range mismatch: %w", commerr.ErrOutOfRange)
	ErrInvalidLine          = fmt.Errorf("invalid sampling line: %w", commerr.ErrInvalidArgument)
	ErrArtifactWrite        = fmt.Errorf("artifact write failure: %w", commerr.ErrFailed)
)

// Error attaches the offending dataset and field to an error kind.
type Error struct {
	Kind    error  // one of the Err* kinds above
	Dataset string // dataset identifier, typically the file path
	Field   string // field name, may be empty
	Err     error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Dataset != "" {
		fmt.Fprintf(&b, " (dataset %q", e.Dataset)
		if e.Field != "" {
			fmt.Fprintf(&b, ", field %q", e.Field)
		}
		b.WriteString(")")
	} else if e.Field != "" {
		fmt.Fprintf(&b, " (field %q)", e.Field)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap makes both the kind and the cause visible to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, dataset, field string, cause error) error {
	return &Error{Kind: kind, Dataset: dataset, Field: field, Err: cause}
}

// DatasetOf returns the dataset identifier attached to err, if any.
func DatasetOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Dataset
	}
	return ""
}

// FieldOf returns the field name attached to err, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
