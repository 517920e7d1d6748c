package vtkxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-vtkxml/internal/patch"
)

// Parser decodes a document fed to it in chunks of any size. Raw appended
// data is patched as the chunks arrive; the markup is tokenized and decoded
// by Close.
//
// After the first error every call returns it again.
type Parser struct {
	patcher patch.Patcher
	stream  bytes.Buffer
	decoder *Decoder
	closed  bool
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	return &Parser{decoder: newDecoder(buildOptions(opts))}
}

// Feed passes the next chunk of the document to the parser. Feed only
// reports failures of the raw appended data patching; markup and array
// errors are reported by Close, since the document is decoded there.
func (p *Parser) Feed(chunk []byte) error {
	if err := p.decoder.err; err != nil {
		return err
	}
	if p.closed {
		return errors.New("vtkxml: Feed after Close")
	}
	out, err := p.patcher.Feed(chunk)
	if err != nil {
		return p.decoder.fail(streamError(err))
	}
	p.stream.Write(out)
	return nil
}

// Close signals the end of input and returns the decoded document.
func (p *Parser) Close() (*Document, error) {
	if err := p.decoder.err; err != nil {
		return nil, err
	}
	if p.closed {
		return nil, errors.New("vtkxml: parser already closed")
	}
	p.closed = true

	tail, err := p.patcher.Flush()
	if err != nil {
		return nil, p.decoder.fail(streamError(err))
	}
	p.stream.Write(tail)
	return decode(&p.stream, p.decoder)
}

// Parse decodes a document read from r. The input is read and patched in
// chunks and tokenized as it streams.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	o := buildOptions(opts)
	return decode(patch.NewReader(r, o.chunkSize), newDecoder(o))
}

// ParseFile decodes the document stored at path.
func ParseFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening document")
	}
	defer f.Close()

	doc, err := Parse(f, opts...)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return doc, nil
}

// decode tokenizes r and drives d with the resulting events.
func decode(r io.Reader, d *Decoder) (*Document, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, d.fail(streamError(err))
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.Start(t.Name.Local, attrMap(t.Attr)); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if err := d.End(t.Name.Local); err != nil {
				return nil, err
			}
		case xml.CharData:
			d.Data(t)
		}
	}

	doc, err := d.Close()
	if err != nil {
		return nil, err
	}
	level.Debug(d.logger).Log("msg", "decoded document", "type", doc.Type, "arrays", len(doc.Arrays()))
	return doc, nil
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

// streamError classifies a failure below the decoder. Malformed markup and
// broken raw sections are format errors; read errors are passed through.
func streamError(err error) error {
	var syntax *xml.SyntaxError
	switch {
	case errors.As(err, &syntax):
		return &DecodeError{Err: errors.Wrap(ErrFormat, err.Error())}
	case errors.Is(err, patch.ErrUnterminated), errors.Is(err, patch.ErrMissingMarker):
		return &DecodeError{Tag: "AppendedData", Err: errors.Wrap(ErrFormat, err.Error())}
	default:
		return errors.Wrap(err, "reading document")
	}
}
