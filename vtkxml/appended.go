package vtkxml

import (
	"strings"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	vbinary "github.com/robert-malhotra/go-vtkxml/internal/binary"
	"github.com/robert-malhotra/go-vtkxml/internal/compress"
)

// resolveAppended decodes the AppendedData blob once and fills in every
// queued appended array from it.
func (d *Decoder) resolveAppended(e *Element, text string) error {
	s := strings.TrimPrefix(stripSpace(text), "_")
	blob, err := decodeBase64(s)
	if err != nil {
		return &DecodeError{Tag: e.Name, Err: err}
	}
	d.metrics.appendedBytes.Add(float64(len(blob)))
	level.Debug(d.logger).Log("msg", "decoded appended data", "encoding", e.Attr["encoding"],
		"bytes", len(blob), "arrays", len(d.pending))

	for _, reg := range d.pending {
		values, err := d.readAppended(blob, reg.desc)
		if err != nil {
			return &DecodeError{Tag: reg.element.Name, Name: reg.desc.name, Attr: "offset", Err: err}
		}
		if err := d.assign(reg.element, reg.desc, values); err != nil {
			return err
		}
	}
	d.pending = nil
	return nil
}

// readAppended reads the array registered at desc.offset from blob.
func (d *Decoder) readAppended(blob []byte, desc descriptor) (any, error) {
	if desc.offset > uint64(len(blob)) {
		return nil, errors.Wrapf(ErrOffset, "offset %d is past the end of %d bytes of appended data", desc.offset, len(blob))
	}
	r := vbinary.NewBytesReader(blob, d.reader).At(int64(desc.offset))

	var content []byte
	if d.compressor != nil {
		h, err := compress.ReadBlockHeader(r)
		if err != nil {
			return nil, d.offsetError(err, desc)
		}
		if h.CompressedSize() > uint64(r.Remaining()) {
			return nil, errors.Wrapf(ErrOffset, "compressed blocks of %d bytes at offset %d run past the end of appended data", h.CompressedSize(), r.Pos())
		}
		data, err := r.ReadBytes(int(h.CompressedSize()))
		if err != nil {
			return nil, d.offsetError(err, desc)
		}
		if content, err = compress.Inflate(d.compressor, h, data); err != nil {
			return nil, errors.Wrap(ErrFormat, err.Error())
		}
	} else {
		size, err := r.ReadHeader()
		if err != nil {
			return nil, d.offsetError(err, desc)
		}
		if size > uint64(r.Remaining()) {
			return nil, errors.Wrapf(ErrOffset, "array of %d bytes at offset %d runs past the end of %d bytes of appended data", size, desc.offset, len(blob))
		}
		if content, err = r.ReadBytes(int(size)); err != nil {
			return nil, d.offsetError(err, desc)
		}
	}
	return d.decodeValues(desc.kind, content)
}

// offsetError classifies a read failure inside the appended blob.
func (d *Decoder) offsetError(err error, desc descriptor) error {
	if errors.Is(err, vbinary.ErrShortRead) {
		return errors.Wrapf(ErrOffset, "reading at offset %d: %v", desc.offset, err)
	}
	return errors.Wrapf(ErrFormat, "reading at offset %d: %v", desc.offset, err)
}
