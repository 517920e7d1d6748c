package vtkxml

import (
	"bytes"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	vbinary "github.com/robert-malhotra/go-vtkxml/internal/binary"
	"github.com/robert-malhotra/go-vtkxml/internal/compress"
	"github.com/robert-malhotra/go-vtkxml/internal/dtype"
)

// format is the encoding of a DataArray payload.
type format uint8

const (
	formatASCII format = iota
	formatBinary
	formatAppended
)

func parseFormat(s string) (format, error) {
	switch s {
	case "ascii":
		return formatASCII, nil
	case "binary":
		return formatBinary, nil
	case "appended":
		return formatAppended, nil
	default:
		return 0, errors.Wrapf(ErrFormat, "format must be 'ascii', 'binary' or 'appended', got %q", s)
	}
}

func (f format) String() string {
	switch f {
	case formatASCII:
		return "ascii"
	case formatBinary:
		return "binary"
	case formatAppended:
		return "appended"
	default:
		return "format(" + strconv.Itoa(int(f)) + ")"
	}
}

// descriptor holds the attributes of one DataArray that drive its decoding.
type descriptor struct {
	name       string
	kind       Kind
	format     format
	offset     uint64 // valid when format is formatAppended
	components int
}

// registration is an appended array waiting for the AppendedData blob.
type registration struct {
	desc    descriptor
	element *Element
}

// Decoder turns Start/Data/End events into a Document, decoding every
// DataArray payload as its element closes. It wraps a TreeBuilder for the
// generic tree assembly.
//
// The first error aborts decoding: every later call returns it again.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	tree    *TreeBuilder
	logger  log.Logger
	metrics *Metrics

	doc        Document
	configured bool
	reader     vbinary.Config
	compressor compress.Decompressor

	current  *descriptor  // open DataArray
	text     bytes.Buffer // payload text of the open DataArray or AppendedData
	pending  []registration
	appended bool // an AppendedData element has been opened

	err error
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...Option) *Decoder {
	return newDecoder(buildOptions(opts))
}

func newDecoder(o *options) *Decoder {
	return &Decoder{
		tree:    NewTreeBuilder(),
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Start handles an element start tag.
func (d *Decoder) Start(name string, attr map[string]string) error {
	if d.err != nil {
		return d.err
	}

	e, err := d.tree.Start(name, attr)
	if err != nil {
		return d.fail(&DecodeError{Tag: name, Err: errors.Wrap(ErrFormat, err.Error())})
	}
	e.Kind = elementKindOf(name)

	switch e.Kind {
	case ElementVTKFile:
		err = d.configure(e)
	case ElementDataArray:
		err = d.describe(e)
	case ElementAppendedData:
		err = d.openAppended(e)
	case ElementOther:
	}
	if err != nil {
		return d.fail(err)
	}
	return nil
}

// Data handles character data. Text inside DataArray and AppendedData
// elements is collected for decoding; other text goes to the tree.
func (d *Decoder) Data(text []byte) {
	if d.err != nil {
		return
	}
	if cur := d.tree.Current(); cur != nil && cur.Kind.carriesPayload() {
		d.text.Write(text)
		return
	}
	d.tree.Data(text)
}

// End handles an element end tag.
func (d *Decoder) End(name string) error {
	if d.err != nil {
		return d.err
	}

	e, err := d.tree.End(name)
	if err != nil {
		return d.fail(&DecodeError{Tag: name, Err: errors.Wrap(ErrFormat, err.Error())})
	}

	switch e.Kind {
	case ElementDataArray:
		desc := d.current
		d.current = nil
		err = d.decodeDataArray(e, desc, d.text.String())
		d.text.Reset()
	case ElementAppendedData:
		err = d.resolveAppended(e, d.text.String())
		d.text.Reset()
	case ElementVTKFile, ElementOther:
	}
	if err != nil {
		return d.fail(err)
	}
	return nil
}

// Close finishes decoding and returns the document.
func (d *Decoder) Close() (*Document, error) {
	if d.err != nil {
		return nil, d.err
	}

	root, err := d.tree.Close()
	if err != nil {
		return nil, d.fail(&DecodeError{Err: errors.Wrap(ErrFormat, err.Error())})
	}
	if !d.configured {
		return nil, d.fail(&DecodeError{Tag: root.Name, Err: errors.Wrap(ErrConfiguration, "no VTKFile element")})
	}
	if len(d.pending) > 0 {
		reg := d.pending[0]
		return nil, d.fail(d.errorf(reg.element, "offset", ErrOffset,
			"%d appended arrays but no AppendedData element", len(d.pending)))
	}

	d.doc.Root = root
	d.metrics.documents.Inc()
	doc := d.doc
	return &doc, nil
}

func (d *Decoder) fail(err error) error {
	d.err = err
	d.metrics.observeFailure(err)
	return err
}

// errorf builds a DecodeError for e wrapping kind.
func (d *Decoder) errorf(e *Element, attr string, kind error, format string, args ...any) error {
	return &DecodeError{
		Tag:  e.Name,
		Name: e.Attr["Name"],
		Attr: attr,
		Err:  errors.Wrapf(kind, format, args...),
	}
}

// configure reads the document-wide decode parameters from the VTKFile tag.
func (d *Decoder) configure(e *Element) error {
	if d.configured {
		return d.errorf(e, "", ErrConfiguration, "nested VTKFile element")
	}

	version, ok := e.Attr["version"]
	if !ok {
		return d.errorf(e, "version", ErrConfiguration, "missing version attribute")
	}

	var order binary.ByteOrder
	switch bo := e.Attr["byte_order"]; bo {
	case "LittleEndian":
		order = binary.LittleEndian
	case "BigEndian":
		order = binary.BigEndian
	default:
		return d.errorf(e, "byte_order", ErrConfiguration, "unknown byte order %q", bo)
	}

	header := UInt32
	if ht, ok := e.Attr["header_type"]; ok {
		k, err := dtype.ParseKind(ht)
		if err != nil || !k.IsInteger() {
			return d.errorf(e, "header_type", ErrConfiguration, "header type must be an integer type, got %q", ht)
		}
		header = k
	}
	cfg := vbinary.Config{ByteOrder: order, HeaderSize: header.Size()}
	if err := cfg.Validate(); err != nil {
		return d.errorf(e, "header_type", ErrConfiguration, "%v", err)
	}

	if name := e.Attr["compressor"]; name != "" {
		c, err := compress.New(name)
		if err != nil {
			return d.errorf(e, "compressor", ErrConfiguration, "%v", err)
		}
		d.compressor = c
	}

	d.doc = Document{
		Type:       e.Attr["type"],
		Version:    version,
		Layout:     layoutFor(version),
		ByteOrder:  order,
		HeaderType: header,
		Compressor: e.Attr["compressor"],
	}
	d.reader = cfg
	d.configured = true

	level.Debug(d.logger).Log("msg", "read VTKFile header", "type", d.doc.Type, "version", version,
		"layout", d.doc.Layout, "byte_order", order, "header_type", header, "compressor", d.doc.Compressor)
	return nil
}

// describe validates a DataArray start tag and queues appended arrays.
func (d *Decoder) describe(e *Element) error {
	if !d.configured {
		return d.errorf(e, "", ErrConfiguration, "DataArray outside VTKFile")
	}
	if d.current != nil {
		return d.errorf(e, "", ErrFormat, "nested DataArray")
	}

	f, err := parseFormat(e.Attr["format"])
	if err != nil {
		return &DecodeError{Tag: e.Name, Name: e.Attr["Name"], Attr: "format", Err: err}
	}

	kind, err := dtype.ParseKind(e.Attr["type"])
	if err != nil {
		return d.errorf(e, "type", ErrFormat, "%v", err)
	}

	components := 1
	if v, ok := e.Attr["NumberOfComponents"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			return d.errorf(e, "NumberOfComponents", ErrFormat, "must be a positive integer, got %q", v)
		}
		components = n
	}

	desc := descriptor{
		name:       e.Attr["Name"],
		kind:       kind,
		format:     f,
		components: components,
	}

	if f == formatAppended {
		v, ok := e.Attr["offset"]
		if !ok {
			return d.errorf(e, "offset", ErrFormat, "appended array without offset")
		}
		off, err := strconv.ParseUint(strings.TrimSpace(v), 10, 63)
		if err != nil {
			return d.errorf(e, "offset", ErrFormat, "offset must be a non-negative integer, got %q", v)
		}
		if d.appended {
			return d.errorf(e, "offset", ErrOffset, "appended array after the AppendedData element")
		}
		desc.offset = off
		d.pending = append(d.pending, registration{desc: desc, element: e})
	}

	d.current = &desc
	d.text.Reset()
	return nil
}

// openAppended checks the AppendedData element is the only one.
func (d *Decoder) openAppended(e *Element) error {
	if !d.configured {
		return d.errorf(e, "", ErrConfiguration, "AppendedData outside VTKFile")
	}
	if d.appended {
		return d.errorf(e, "", ErrFormat, "more than one AppendedData element")
	}
	d.appended = true
	d.text.Reset()
	return nil
}

// assign stores the decoded values as the element payload.
func (d *Decoder) assign(e *Element, desc descriptor, values any) error {
	if e.Data != nil {
		return d.errorf(e, "", ErrFormat, "payload decoded twice")
	}
	arr, err := newArray(desc.kind, values, desc.components)
	if err != nil {
		return &DecodeError{Tag: e.Name, Name: desc.name, Attr: "NumberOfComponents", Err: err}
	}
	e.Data = arr

	d.metrics.observeArray(desc.format.String())
	level.Debug(d.logger).Log("msg", "decoded data array", "name", desc.name, "format", desc.format,
		"type", desc.kind, "values", arr.Len(), "components", arr.Components)
	return nil
}
