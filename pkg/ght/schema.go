package ght

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Schema is the ordered list of dimensions shared by every point in a
// tree. By convention the first two dimensions are the X and Y used for
// hashing; the rest are payload. Schemas are immutable once built:
// NewSchema validates and returns an opaque value, with no setters.
type Schema struct {
	dims []Dimension
}

// NewSchema validates dims and returns an immutable Schema.
//
// Every problem found — duplicate names, unknown types, bad
// scale/offset for a dimension's type — is collected and returned
// together as a single *SchemaError whose Reason is the combined
// message of a multierror.Error, rather than failing fast on the first bad dimension (SPEC_FULL.md
// §4.2).
func NewSchema(dims []Dimension) (Schema, error) {
	if len(dims) < 2 {
		return Schema{}, &SchemaError{Reason: "schema must have at least two dimensions (X and Y)"}
	}

	var errs *multierror.Error
	seen := make(map[string]bool, len(dims))
	for _, d := range dims {
		if err := d.validate(); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if seen[d.Name] {
			errs = multierror.Append(errs, &SchemaError{Reason: fmt.Sprintf("duplicate dimension name %q", d.Name)})
			continue
		}
		seen[d.Name] = true
	}
	if errs != nil {
		return Schema{}, &SchemaError{Reason: errs.Error()}
	}

	out := make([]Dimension, len(dims))
	copy(out, dims)
	return Schema{dims: out}, nil
}

// Dimensions returns the schema's dimensions in order. The returned
// slice is a copy; mutating it does not affect the schema.
func (s Schema) Dimensions() []Dimension {
	out := make([]Dimension, len(s.dims))
	copy(out, s.dims)
	return out
}

// NumDimensions returns the number of dimensions in the schema.
func (s Schema) NumDimensions() int { return len(s.dims) }

// DimensionByName returns the dimension named name, or *NotFoundError
// if no such dimension exists.
func (s Schema) DimensionByName(name string) (Dimension, error) {
	for _, d := range s.dims {
		if d.Name == name {
			return d, nil
		}
	}
	return Dimension{}, &NotFoundError{Name: name}
}

// DimensionByIndex returns the dimension at position i in schema
// order, or *NotFoundError if i is out of range.
func (s Schema) DimensionByIndex(i int) (Dimension, error) {
	if i < 0 || i >= len(s.dims) {
		return Dimension{}, &NotFoundError{Index: i}
	}
	return s.dims[i], nil
}

// XDimension and YDimension return the first two (by convention,
// hash-bearing) dimensions.
func (s Schema) XDimension() Dimension { return s.dims[0] }
func (s Schema) YDimension() Dimension { return s.dims[1] }

// Same reports whether two schemas have the same dimensions, in the
// same order.
func (s Schema) Same(other Schema) bool {
	if len(s.dims) != len(other.dims) {
		return false
	}
	for i, d := range s.dims {
		if !d.Same(other.dims[i]) {
			return false
		}
	}
	return true
}
