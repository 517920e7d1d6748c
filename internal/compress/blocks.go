package compress

import (
	"errors"
	"fmt"
	"math"

	"github.com/robert-malhotra/go-vtkxml/internal/binary"
)

// ErrCorrupt is returned when a block header is inconsistent with the data
// it describes.
var ErrCorrupt = errors.New("corrupt compressed array")

// BlockHeader describes the compressed blocks of one array.
type BlockHeader struct {
	BlockSize       uint64   // Uncompressed size of every full block.
	LastBlockSize   uint64   // Uncompressed size of the last block, 0 if it is full.
	CompressedSizes []uint64 // Compressed size of each block.
}

// HeaderWords returns the number of fixed words preceding the per-block
// compressed sizes.
const HeaderWords = 3

// Blocks returns the number of blocks.
func (h BlockHeader) Blocks() int {
	return len(h.CompressedSizes)
}

// Words returns the number of header-width words the header occupies.
func (h BlockHeader) Words() int {
	return HeaderWords + len(h.CompressedSizes)
}

// RawSize returns the uncompressed size of block i.
func (h BlockHeader) RawSize(i int) uint64 {
	if i == len(h.CompressedSizes)-1 && h.LastBlockSize != 0 {
		return h.LastBlockSize
	}
	return h.BlockSize
}

// UncompressedSize returns the total uncompressed size of all blocks.
func (h BlockHeader) UncompressedSize() uint64 {
	var total uint64
	for i := range h.CompressedSizes {
		total += h.RawSize(i)
	}
	return total
}

// CompressedSize returns the total size of all compressed blocks.
func (h BlockHeader) CompressedSize() uint64 {
	var total uint64
	for _, s := range h.CompressedSizes {
		total += s
	}
	return total
}

// ReadBlockHeader reads a block header at the reader's position.
func ReadBlockHeader(r *binary.Reader) (BlockHeader, error) {
	fixed, err := r.ReadHeaders(HeaderWords)
	if err != nil {
		return BlockHeader{}, fmt.Errorf("reading block header: %w", err)
	}
	nblocks := fixed[0]

	// Reject counts the remaining data cannot hold before allocating.
	if rem := r.Remaining(); rem >= 0 && nblocks > uint64(rem)/uint64(r.HeaderSize()) {
		return BlockHeader{}, fmt.Errorf("reading block sizes: %w: %d blocks", binary.ErrShortRead, nblocks)
	}
	if nblocks > math.MaxInt32 {
		return BlockHeader{}, fmt.Errorf("%w: %d blocks", ErrCorrupt, nblocks)
	}

	sizes, err := r.ReadHeaders(int(nblocks))
	if err != nil {
		return BlockHeader{}, fmt.Errorf("reading block sizes: %w", err)
	}

	h := BlockHeader{
		BlockSize:       fixed[1],
		LastBlockSize:   fixed[2],
		CompressedSizes: sizes,
	}
	if h.BlockSize > math.MaxInt32 || h.LastBlockSize > h.BlockSize {
		return BlockHeader{}, fmt.Errorf("%w: block size %d, last block size %d", ErrCorrupt, h.BlockSize, h.LastBlockSize)
	}
	// CompressedSize must not wrap.
	var total uint64
	for i, s := range sizes {
		if s > math.MaxInt64-total {
			return BlockHeader{}, fmt.Errorf("%w: compressed size of block %d overflows the total", ErrCorrupt, i)
		}
		total += s
	}
	return h, nil
}

// ParseBlockHeader parses a block header from decoded header bytes.
func ParseBlockHeader(b []byte, cfg binary.Config) (BlockHeader, error) {
	return ReadBlockHeader(binary.NewBytesReader(b, cfg))
}

// Inflate decompresses every block described by h from data and returns
// the concatenated result.
func Inflate(d Decompressor, h BlockHeader, data []byte) ([]byte, error) {
	if need := h.CompressedSize(); need > uint64(len(data)) {
		return nil, fmt.Errorf("%w: blocks need %d bytes, have %d", binary.ErrShortRead, need, len(data))
	}

	out := make([]byte, 0, h.UncompressedSize())
	var pos uint64
	for i, size := range h.CompressedSizes {
		if size > uint64(len(data))-pos {
			return nil, fmt.Errorf("%w: block %d needs %d bytes, have %d", binary.ErrShortRead, i, size, uint64(len(data))-pos)
		}
		block, err := d.Decompress(data[pos:pos+size], int(h.RawSize(i)))
		if err != nil {
			return nil, fmt.Errorf("%s block %d: %w", d.Name(), i, err)
		}
		out = append(out, block...)
		pos += size
	}
	return out, nil
}
