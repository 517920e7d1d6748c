package patch

import (
	"errors"
	"io"
)

// DefaultChunkSize is the read size used when NewReader is given a
// non-positive chunk size.
const DefaultChunkSize = 64 * 1024

// Reader pulls chunks from an underlying reader through a Patcher and
// serves the patched stream.
type Reader struct {
	src   io.Reader
	p     Patcher
	chunk []byte
	out   []byte
	err   error
}

// NewReader returns a Reader that reads src in chunks of chunkSize bytes.
func NewReader(src io.Reader, chunkSize int) *Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Reader{
		src:   src,
		chunk: make([]byte, chunkSize),
	}
}

// Read implements io.Reader.
func (r *Reader) Read(b []byte) (int, error) {
	for len(r.out) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.fill()
	}
	n := copy(b, r.out)
	r.out = r.out[n:]
	return n, nil
}

func (r *Reader) fill() {
	n, err := r.src.Read(r.chunk)
	if n > 0 {
		out, perr := r.p.Feed(r.chunk[:n])
		if perr != nil {
			r.err = perr
			return
		}
		r.out = out
	}
	switch {
	case errors.Is(err, io.EOF):
		tail, ferr := r.p.Flush()
		if ferr != nil {
			r.err = ferr
			return
		}
		r.out = append(r.out, tail...)
		r.err = io.EOF
	case err != nil:
		r.err = err
	}
}
