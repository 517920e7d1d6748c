package vtkxml

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-vtkxml/internal/dtype"
)

// Kind is the numeric element type of an array.
type Kind = dtype.Kind

// Numeric kinds.
const (
	Int8    = dtype.Int8
	UInt8   = dtype.UInt8
	Int16   = dtype.Int16
	UInt16  = dtype.UInt16
	Int32   = dtype.Int32
	UInt32  = dtype.UInt32
	Int64   = dtype.Int64
	UInt64  = dtype.UInt64
	Float32 = dtype.Float32
	Float64 = dtype.Float64
)

// Array is the decoded payload of a DataArray. Values are stored flat;
// arrays with more than one component are viewed as rows of Components
// values in row-major order.
type Array struct {
	Kind       Kind
	Components int
	values     any
}

// newArray wraps a decoded slice, checking it splits evenly into rows.
func newArray(kind Kind, values any, components int) (*Array, error) {
	n := dtype.Len(values)
	if n < 0 {
		return nil, errors.Errorf("unsupported value type %T", values)
	}
	if components < 1 {
		components = 1
	}
	if n%components != 0 {
		return nil, errors.Wrapf(ErrShape, "%d values do not split into rows of %d components", n, components)
	}
	return &Array{Kind: kind, Components: components, values: values}, nil
}

// Len returns the total number of values.
func (a *Array) Len() int {
	return dtype.Len(a.values)
}

// Tuples returns the number of rows.
func (a *Array) Tuples() int {
	return a.Len() / a.Components
}

// Shape returns [n] for single-component arrays and [rows, components]
// otherwise.
func (a *Array) Shape() []int {
	if a.Components == 1 {
		return []int{a.Len()}
	}
	return []int{a.Tuples(), a.Components}
}

// ByteSize returns the size of the values in bytes.
func (a *Array) ByteSize() int {
	return a.Len() * a.Kind.Size()
}

// Values returns the flat slice of values, e.g. []float32 for Float32.
func (a *Array) Values() any {
	return a.values
}

// Row returns the values of row i as a slice of the array's element type.
func (a *Array) Row(i int) any {
	return dtype.Slice(a.values, i*a.Components, (i+1)*a.Components)
}

// Slice returns values i through j-1 of the flat values.
func (a *Array) Slice(i, j int) any {
	return dtype.Slice(a.values, i, j)
}

// Float64s returns a copy of the values converted to float64.
func (a *Array) Float64s() []float64 {
	return dtype.Float64s(a.values)
}

// String formats the array like a nested list, one list per row when the
// array has more than one component.
func (a *Array) String() string {
	if a.Components == 1 {
		return fmt.Sprint(a.values)
	}
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < a.Tuples(); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, a.Row(i))
	}
	b.WriteByte(']')
	return b.String()
}

// Values returns the flat values of a as []T. It reports false if T does
// not match the array's kind.
func Values[T dtype.Number](a *Array) ([]T, bool) {
	v, ok := a.values.([]T)
	return v, ok
}

// Rows returns the values of a split into rows of a.Components values.
// The rows share memory with the array. It reports false if T does not
// match the array's kind.
func Rows[T dtype.Number](a *Array) ([][]T, bool) {
	v, ok := a.values.([]T)
	if !ok {
		return nil, false
	}
	rows := make([][]T, a.Tuples())
	for i := range rows {
		rows[i] = v[i*a.Components : (i+1)*a.Components : (i+1)*a.Components]
	}
	return rows, true
}
