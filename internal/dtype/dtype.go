// Package dtype provides VTK numeric kind handling and conversion to Go slices.
package dtype

import (
	"fmt"
)

// Kind identifies one of the numeric element types a VTK DataArray may declare.
type Kind uint8

const (
	Invalid Kind = iota
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float32
	Float64
)

var kindNames = [...]string{
	Invalid: "Invalid",
	Int8:    "Int8",
	UInt8:   "UInt8",
	Int16:   "Int16",
	UInt16:  "UInt16",
	Int32:   "Int32",
	UInt32:  "UInt32",
	Int64:   "Int64",
	UInt64:  "UInt64",
	Float32: "Float32",
	Float64: "Float64",
}

var kindSizes = [...]int{
	Int8:    1,
	UInt8:   1,
	Int16:   2,
	UInt16:  2,
	Int32:   4,
	UInt32:  4,
	Int64:   8,
	UInt64:  8,
	Float32: 4,
	Float64: 8,
}

// Number is the set of Go element types a decoded array can hold.
type Number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// ParseKind maps a VTK type name such as "Float32" to its Kind.
func ParseKind(name string) (Kind, error) {
	for k := Int8; k <= Float64; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("unknown numeric type %q", name)
}

// String returns the VTK type name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the ten numeric kinds.
func (k Kind) Valid() bool {
	return k >= Int8 && k <= Float64
}

// Size returns the size of a single element in bytes, or 0 for Invalid.
func (k Kind) Size() int {
	if !k.Valid() {
		return 0
	}
	return kindSizes[k]
}

// IsInteger reports whether k is a signed or unsigned integer kind.
func (k Kind) IsInteger() bool {
	return k >= Int8 && k <= UInt64
}
