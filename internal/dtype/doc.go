// Package dtype provides VTK numeric kind handling and Go type conversion.
//
// VTK DataArray elements declare their element type by name in the "type"
// attribute. This package maps those names to a [Kind] and converts raw
// payloads to Go slices:
//
//	VTK type | Go type
//	---------|---------
//	Int8     | int8
//	UInt8    | uint8
//	Int16    | int16
//	UInt16   | uint16
//	Int32    | int32
//	UInt32   | uint32
//	Int64    | int64
//	UInt64   | uint64
//	Float32  | float32
//	Float64  | float64
//
// # Reading Data
//
// Use [Decode] for binary payloads and [ParseASCII] for inline text:
//
//	values, err := dtype.Decode(dtype.Float32, binary.LittleEndian, raw, n)
//	values, err := dtype.ParseASCII(dtype.Int32, "1 2 3")
//
// Both return the slice type matching the kind as an any. [Len], [Slice]
// and [Float64s] operate on such values without a type switch at the call
// site.
package dtype
