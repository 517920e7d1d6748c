package vtkxml

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"

	vbinary "github.com/robert-malhotra/go-vtkxml/internal/binary"
	"github.com/robert-malhotra/go-vtkxml/internal/compress"
	"github.com/robert-malhotra/go-vtkxml/internal/dtype"
)

// encodedHeaderLen returns the number of base64 characters occupied by one
// header value of kind k when it is encoded on its own: the length of the
// encoding of a zero value of that width.
func encodedHeaderLen(k Kind) int {
	zero := make([]byte, k.Size())
	return len(base64.StdEncoding.EncodeToString(zero))
}

// decodeDataArray decodes the collected text of a closing DataArray.
// Appended arrays are left untouched; resolveAppended fills them in.
func (d *Decoder) decodeDataArray(e *Element, desc *descriptor, text string) error {
	var values any
	switch desc.format {
	case formatAppended:
		return nil
	case formatASCII:
		v, err := dtype.ParseASCII(desc.kind, text)
		if err != nil {
			return d.errorf(e, "", ErrFormat, "parsing ascii %s values: %v", desc.kind, err)
		}
		values = v
	case formatBinary:
		content, err := d.binaryContent(stripSpace(text))
		if err != nil {
			return &DecodeError{Tag: e.Name, Name: desc.name, Err: err}
		}
		v, err := d.decodeValues(desc.kind, content)
		if err != nil {
			return &DecodeError{Tag: e.Name, Name: desc.name, Err: err}
		}
		values = v
	}
	return d.assign(e, *desc, values)
}

// binaryContent decodes a base64 binary payload and returns exactly the
// content bytes its header declares.
func (d *Decoder) binaryContent(s string) ([]byte, error) {
	if d.compressor != nil {
		return d.inflateInline(s)
	}

	hw := d.doc.HeaderType.Size()
	var size uint64
	var body []byte

	switch d.doc.Layout {
	case LayoutSplit:
		n := encodedHeaderLen(d.doc.HeaderType)
		if len(s) < n {
			return nil, errors.Wrapf(ErrFormat, "binary payload of %d characters is shorter than its %d-character header", len(s), n)
		}
		head, err := decodeBase64(s[:n])
		if err != nil {
			return nil, errors.Wrap(err, "header")
		}
		// Padding inside the header characters can shorten it.
		if len(head) < hw {
			return nil, errors.Wrapf(ErrFormat, "header decodes to %d bytes, want %d", len(head), hw)
		}
		size = vbinary.DecodeUint(d.doc.ByteOrder, head[:hw])
		if body, err = decodeBase64(s[n:]); err != nil {
			return nil, errors.Wrap(err, "content")
		}
	case LayoutCombined:
		all, err := decodeBase64(s)
		if err != nil {
			return nil, err
		}
		if len(all) < hw {
			return nil, errors.Wrapf(ErrFormat, "binary payload of %d bytes is shorter than its %d-byte header", len(all), hw)
		}
		size = vbinary.DecodeUint(d.doc.ByteOrder, all[:hw])
		body = all[hw:]
	}

	if size > uint64(len(body)) {
		return nil, errors.Wrapf(ErrFormat, "header declares %d bytes, payload holds %d", size, len(body))
	}
	return body[:size], nil
}

// inflateInline decodes a compressed binary payload. The block header is
// base64-encoded on its own, followed by the base64 of the concatenated
// compressed blocks.
func (d *Decoder) inflateInline(s string) ([]byte, error) {
	hw := d.doc.HeaderType.Size()

	// The fixed words are a multiple of three bytes, so their characters
	// decode independently of the rest of the header.
	fixedLen := base64.StdEncoding.EncodedLen(compress.HeaderWords * hw)
	if len(s) < fixedLen {
		return nil, errors.Wrapf(ErrFormat, "compressed payload of %d characters is shorter than its block header", len(s))
	}
	fixed, err := decodeBase64(s[:fixedLen])
	if err != nil {
		return nil, errors.Wrap(err, "block header")
	}
	if len(fixed) < hw {
		return nil, errors.Wrapf(ErrFormat, "block header decodes to %d bytes, want at least %d", len(fixed), hw)
	}
	nblocks := vbinary.DecodeUint(d.doc.ByteOrder, fixed[:hw])
	if nblocks > uint64(len(s)) {
		return nil, errors.Wrapf(ErrFormat, "block count %d exceeds payload size", nblocks)
	}

	headerLen := base64.StdEncoding.EncodedLen((compress.HeaderWords + int(nblocks)) * hw)
	if len(s) < headerLen {
		return nil, errors.Wrapf(ErrFormat, "compressed payload of %d characters is shorter than its %d-character block header", len(s), headerLen)
	}
	raw, err := decodeBase64(s[:headerLen])
	if err != nil {
		return nil, errors.Wrap(err, "block header")
	}
	h, err := compress.ParseBlockHeader(raw, d.reader)
	if err != nil {
		return nil, errors.Wrap(ErrFormat, err.Error())
	}

	blocks, err := decodeBase64(s[headerLen:])
	if err != nil {
		return nil, errors.Wrap(err, "compressed blocks")
	}
	out, err := compress.Inflate(d.compressor, h, blocks)
	if err != nil {
		return nil, errors.Wrap(ErrFormat, err.Error())
	}
	return out, nil
}

// decodeValues converts content bytes to values of kind k.
func (d *Decoder) decodeValues(k Kind, content []byte) (any, error) {
	size := k.Size()
	if len(content)%size != 0 {
		return nil, errors.Wrapf(ErrFormat, "%d bytes is not a whole number of %s values", len(content), k)
	}
	values, err := dtype.Decode(k, d.doc.ByteOrder, content, len(content)/size)
	if err != nil {
		return nil, errors.Wrap(ErrFormat, err.Error())
	}
	return values, nil
}

func decodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "invalid base64: %v", err)
	}
	return b, nil
}

// stripSpace removes all whitespace from s.
func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
