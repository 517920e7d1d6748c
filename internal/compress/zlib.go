package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Zlib decompresses vtkZLibDataCompressor blocks.
type Zlib struct{}

// NewZlib creates a zlib decompressor.
func NewZlib() *Zlib {
	return &Zlib{}
}

func (z *Zlib) Name() string {
	return NameZlib
}

func (z *Zlib) Decompress(src []byte, rawSize int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	out := bytes.NewBuffer(make([]byte, 0, rawSize))
	// One extra byte detects blocks that inflate past their declared size.
	if _, err := io.CopyN(out, r, int64(rawSize)+1); err != nil && err != io.EOF {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	if out.Len() != rawSize {
		return nil, fmt.Errorf("zlib block inflated to %d bytes, expected %d", out.Len(), rawSize)
	}
	return out.Bytes(), nil
}
