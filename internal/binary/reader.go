// Package binary provides low-level binary reads for VTK array payloads.
package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidSize is returned when an invalid header size is specified.
var ErrInvalidSize = errors.New("invalid header size: must be 1, 2, 4, or 8")

// ErrShortRead is returned when a read extends past the end of the data.
var ErrShortRead = errors.New("read past end of data")

// Reader reads fixed-width values with a document-wide byte order and
// header width. VTK length prefixes use the header width, array elements
// use their own sizes.
type Reader struct {
	r          io.ReaderAt
	size       int64 // -1 when unknown
	order      binary.ByteOrder
	headerSize int
	pos        int64
}

// Config holds reader configuration, typically derived from the VTKFile tag.
type Config struct {
	ByteOrder  binary.ByteOrder
	HeaderSize int // 1, 2, 4, or 8 bytes
}

// Validate reports whether the configuration can be used for reading.
func (c Config) Validate() error {
	if c.ByteOrder == nil {
		return errors.New("missing byte order")
	}
	switch c.HeaderSize {
	case 1, 2, 4, 8:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidSize, c.HeaderSize)
	}
}

// NewReader creates a binary reader with the given configuration.
func NewReader(r io.ReaderAt, cfg Config) *Reader {
	return &Reader{
		r:          r,
		size:       -1,
		order:      cfg.ByteOrder,
		headerSize: cfg.HeaderSize,
	}
}

// NewBytesReader creates a reader over an in-memory blob. Reads past the
// end of b fail with ErrShortRead before any allocation happens.
func NewBytesReader(b []byte, cfg Config) *Reader {
	r := NewReader(bytes.NewReader(b), cfg)
	r.size = int64(len(b))
	return r
}

// At returns a new reader positioned at the given offset.
// The new reader shares the underlying io.ReaderAt but has independent position.
func (r *Reader) At(offset int64) *Reader {
	return &Reader{
		r:          r.r,
		size:       r.size,
		order:      r.order,
		headerSize: r.headerSize,
		pos:        offset,
	}
}

// Pos returns the current read position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Remaining returns the number of bytes left after the current position,
// or -1 if the underlying size is unknown.
func (r *Reader) Remaining() int64 {
	if r.size < 0 {
		return -1
	}
	if r.pos >= r.size {
		return 0
	}
	return r.size - r.pos
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if r.pos < 0 || (r.size >= 0 && int64(n) > r.Remaining()) {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrShortRead, n, r.pos)
	}
	buf := make([]byte, n)
	read, err := r.r.ReadAt(buf, r.pos)
	if read < n {
		if err == nil || errors.Is(err, io.EOF) {
			err = ErrShortRead
		}
		return nil, fmt.Errorf("%w: %d bytes at offset %d", err, n, r.pos)
	}
	r.pos += int64(n)
	return buf, nil
}

// ReadUintN reads an unsigned integer of n bytes (1, 2, 4, or 8).
func (r *Reader) ReadUintN(n int) (uint64, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return 0, err
	}
	return DecodeUint(r.order, buf), nil
}

// ReadHeader reads a length prefix using the configured header size.
func (r *Reader) ReadHeader() (uint64, error) {
	return r.ReadUintN(r.headerSize)
}

// ReadHeaders reads n consecutive length prefixes.
func (r *Reader) ReadHeaders(n int) ([]uint64, error) {
	out := make([]uint64, n)
	for i := range out {
		v, err := r.ReadHeader()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// DecodeUint decodes an unsigned integer whose width is len(buf).
func DecodeUint(order binary.ByteOrder, buf []byte) uint64 {
	switch len(buf) {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	case 8:
		return order.Uint64(buf)
	default:
		// Handle arbitrary sizes (little-endian assumed for non-standard)
		var val uint64
		for i := len(buf) - 1; i >= 0; i-- {
			val = (val << 8) | uint64(buf[i])
		}
		return val
	}
}

// HeaderSize returns the configured header size in bytes.
func (r *Reader) HeaderSize() int {
	return r.headerSize
}
