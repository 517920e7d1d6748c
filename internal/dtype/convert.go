package dtype

// Conversion from raw VTK payloads to Go slices.
//
// Decoded values are always returned as the slice type matching the kind
// ([]int8 for Int8, []float32 for Float32, ...) wrapped in an any. Binary
// payloads are read element by element with the document byte order; ascii
// payloads are whitespace-separated literals parsed with the kind's bit size.

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Decode converts n elements of kind k from data using the given byte order.
// data must hold at least n*k.Size() bytes; extra bytes are ignored.
func Decode(k Kind, order binary.ByteOrder, data []byte, n int) (any, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("unsupported kind: %s", k)
	}
	if n < 0 {
		return nil, fmt.Errorf("negative element count %d", n)
	}
	if need := n * k.Size(); len(data) < need {
		return nil, fmt.Errorf("need %d bytes for %d %s values, have %d", need, n, k, len(data))
	}

	switch k {
	case Int8:
		return decodeFixed(data, n, 1, func(b []byte) int8 { return int8(b[0]) }), nil
	case UInt8:
		out := make([]uint8, n)
		copy(out, data)
		return out, nil
	case Int16:
		return decodeFixed(data, n, 2, func(b []byte) int16 { return int16(order.Uint16(b)) }), nil
	case UInt16:
		return decodeFixed(data, n, 2, order.Uint16), nil
	case Int32:
		return decodeFixed(data, n, 4, func(b []byte) int32 { return int32(order.Uint32(b)) }), nil
	case UInt32:
		return decodeFixed(data, n, 4, order.Uint32), nil
	case Int64:
		return decodeFixed(data, n, 8, func(b []byte) int64 { return int64(order.Uint64(b)) }), nil
	case UInt64:
		return decodeFixed(data, n, 8, order.Uint64), nil
	case Float32:
		return decodeFixed(data, n, 4, func(b []byte) float32 { return math.Float32frombits(order.Uint32(b)) }), nil
	case Float64:
		return decodeFixed(data, n, 8, func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) }), nil
	}
	return nil, fmt.Errorf("unsupported kind: %s", k)
}

func decodeFixed[T Number](data []byte, n, size int, get func([]byte) T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = get(data[i*size : (i+1)*size])
	}
	return out
}

// ParseASCII parses whitespace-separated literals of kind k.
func ParseASCII(k Kind, text string) (any, error) {
	fields := strings.Fields(text)

	switch k {
	case Int8:
		return parseFields(fields, func(s string) (int8, error) { v, err := strconv.ParseInt(s, 10, 8); return int8(v), err })
	case UInt8:
		return parseFields(fields, func(s string) (uint8, error) { v, err := strconv.ParseUint(s, 10, 8); return uint8(v), err })
	case Int16:
		return parseFields(fields, func(s string) (int16, error) { v, err := strconv.ParseInt(s, 10, 16); return int16(v), err })
	case UInt16:
		return parseFields(fields, func(s string) (uint16, error) { v, err := strconv.ParseUint(s, 10, 16); return uint16(v), err })
	case Int32:
		return parseFields(fields, func(s string) (int32, error) { v, err := strconv.ParseInt(s, 10, 32); return int32(v), err })
	case UInt32:
		return parseFields(fields, func(s string) (uint32, error) { v, err := strconv.ParseUint(s, 10, 32); return uint32(v), err })
	case Int64:
		return parseFields(fields, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
	case UInt64:
		return parseFields(fields, func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) })
	case Float32:
		return parseFields(fields, func(s string) (float32, error) { v, err := strconv.ParseFloat(s, 32); return float32(v), err })
	case Float64:
		return parseFields(fields, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
	default:
		return nil, fmt.Errorf("unsupported kind: %s", k)
	}
}

func parseFields[T Number](fields []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, len(fields))
	for i, f := range fields {
		v, err := parse(f)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Len returns the number of elements in a decoded slice, or -1 if values
// is not one of the decoded slice types.
func Len(values any) int {
	switch v := values.(type) {
	case []int8:
		return len(v)
	case []uint8:
		return len(v)
	case []int16:
		return len(v)
	case []uint16:
		return len(v)
	case []int32:
		return len(v)
	case []uint32:
		return len(v)
	case []int64:
		return len(v)
	case []uint64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	default:
		return -1
	}
}

// Slice returns values[i:j] for a decoded slice.
func Slice(values any, i, j int) any {
	switch v := values.(type) {
	case []int8:
		return v[i:j]
	case []uint8:
		return v[i:j]
	case []int16:
		return v[i:j]
	case []uint16:
		return v[i:j]
	case []int32:
		return v[i:j]
	case []uint32:
		return v[i:j]
	case []int64:
		return v[i:j]
	case []uint64:
		return v[i:j]
	case []float32:
		return v[i:j]
	case []float64:
		return v[i:j]
	default:
		return nil
	}
}

// Float64s converts a decoded slice to float64 values.
func Float64s(values any) []float64 {
	switch v := values.(type) {
	case []int8:
		return convertAll[int8, float64](v)
	case []uint8:
		return convertAll[uint8, float64](v)
	case []int16:
		return convertAll[int16, float64](v)
	case []uint16:
		return convertAll[uint16, float64](v)
	case []int32:
		return convertAll[int32, float64](v)
	case []uint32:
		return convertAll[uint32, float64](v)
	case []int64:
		return convertAll[int64, float64](v)
	case []uint64:
		return convertAll[uint64, float64](v)
	case []float32:
		return convertAll[float32, float64](v)
	case []float64:
		return append([]float64(nil), v...)
	default:
		return nil
	}
}

func convertAll[S, D Number](src []S) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = D(v)
	}
	return out
}
