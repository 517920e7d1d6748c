package compress

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// LZ4 decompresses vtkLZ4DataCompressor blocks, which are raw LZ4 blocks
// without frame headers.
type LZ4 struct{}

// NewLZ4 creates an LZ4 block decompressor.
func NewLZ4() *LZ4 {
	return &LZ4{}
}

func (l *LZ4) Name() string {
	return NameLZ4
}

func (l *LZ4) Decompress(src []byte, rawSize int) ([]byte, error) {
	dst := make([]byte, rawSize)
	if rawSize == 0 {
		return dst, nil
	}
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if n != rawSize {
		return nil, fmt.Errorf("lz4 block inflated to %d bytes, expected %d", n, rawSize)
	}
	return dst, nil
}
