// Package patch rewrites raw appended data in a VTK XML byte stream into
// base64 before the stream reaches an XML tokenizer.
//
// A VTK writer using encoding="raw" emits
//
//	<AppendedData encoding="raw">
//	   _<binary bytes></AppendedData>
//
// The binary bytes are not valid character data. The [Patcher] buffers the
// section until it is complete and replaces the bytes between the
// underscore and the end tag with their standard base64 encoding. All
// other input passes through unchanged.
package patch

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrUnterminated is returned by Flush when the input ended inside a
	// raw appended section.
	ErrUnterminated = errors.New("unterminated raw AppendedData section")

	// ErrMissingMarker is returned when a raw appended section does not
	// start with the '_' marker.
	ErrMissingMarker = errors.New("raw AppendedData section missing '_' marker")
)

var (
	startTag = []byte(`<AppendedData encoding="raw">`)
	endTag   = []byte(`</AppendedData>`)
)

type state uint8

const (
	// stateIdle forwards input, holding back at most a partial start tag.
	stateIdle state = iota
	// stateAccumulating buffers input until the end tag arrives.
	stateAccumulating
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAccumulating:
		return "accumulating-raw"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Patcher is the pre-tokenization rewriting stage. The zero value is ready
// to use. A Patcher is not safe for concurrent use.
type Patcher struct {
	state state
	buf   []byte
	err   error
}

// Feed accepts the next chunk of the document and returns the bytes that
// may be forwarded to the tokenizer, which may be empty while a raw section
// or a possible start tag prefix is being buffered. The returned slice is
// owned by the caller.
func (p *Patcher) Feed(chunk []byte) ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.buf = append(p.buf, chunk...)

	switch p.state {
	case stateIdle:
		if bytes.Index(p.buf, startTag) < 0 {
			keep := partialPrefix(p.buf, startTag)
			return p.take(len(p.buf) - keep), nil
		}
		p.state = stateAccumulating
		return p.complete()
	case stateAccumulating:
		return p.complete()
	default:
		return nil, fmt.Errorf("patch: invalid state %s", p.state)
	}
}

// Flush signals the end of input and returns any held-back bytes.
func (p *Patcher) Flush() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.state == stateAccumulating {
		p.err = ErrUnterminated
		return nil, p.err
	}
	return p.take(len(p.buf)), nil
}

// complete substitutes the buffered raw section once its end tag is
// present. The whole buffer is re-scanned on every call so tags that
// straddle chunk boundaries are found.
func (p *Patcher) complete() ([]byte, error) {
	start := bytes.Index(p.buf, startTag)
	body := start + len(startTag)
	if bytes.Index(p.buf[body:], endTag) < 0 {
		return nil, nil
	}

	out, err := substitute(p.buf, body)
	if err != nil {
		p.err = err
		return nil, err
	}
	p.state = stateIdle
	p.buf = p.buf[:0]
	return out, nil
}

// take removes and returns the first n buffered bytes.
func (p *Patcher) take(n int) []byte {
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, p.buf)
	p.buf = append(p.buf[:0], p.buf[n:]...)
	return out
}

// substitute rewrites buf, in which the raw section body starts at body and
// an end tag follows it.
func substitute(buf []byte, body int) ([]byte, error) {
	marker := body
	for marker < len(buf) && isSpace(buf[marker]) {
		marker++
	}
	if marker >= len(buf) || buf[marker] != '_' {
		return nil, ErrMissingMarker
	}
	raw := marker + 1
	end := raw + bytes.Index(buf[raw:], endTag)
	if end < raw {
		return nil, fmt.Errorf("%w after marker", ErrUnterminated)
	}

	payload := buf[raw:end]
	out := make([]byte, 0, raw+base64.StdEncoding.EncodedLen(len(payload))+len(buf)-end)
	out = append(out, buf[:raw]...)
	enc := make([]byte, base64.StdEncoding.EncodedLen(len(payload)))
	base64.StdEncoding.Encode(enc, payload)
	out = append(out, enc...)
	out = append(out, buf[end:]...)
	return out, nil
}

// partialPrefix returns the length of the longest suffix of b that is a
// proper prefix of tag.
func partialPrefix(b, tag []byte) int {
	n := min(len(b), len(tag)-1)
	for ; n > 0; n-- {
		if bytes.HasSuffix(b, tag[:n]) {
			return n
		}
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
