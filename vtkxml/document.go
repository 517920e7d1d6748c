package vtkxml

import (
	"encoding/binary"
	"fmt"
)

// HeaderLayout selects how binary array headers are base64-encoded.
type HeaderLayout uint8

const (
	// LayoutCombined encodes the length header and the content as one
	// base64 string. Used by every version except "0.1".
	LayoutCombined HeaderLayout = iota
	// LayoutSplit encodes the length header and the content as two
	// independent base64 strings. Used by version "0.1".
	LayoutSplit
)

func (l HeaderLayout) String() string {
	switch l {
	case LayoutCombined:
		return "combined"
	case LayoutSplit:
		return "split"
	default:
		return fmt.Sprintf("HeaderLayout(%d)", uint8(l))
	}
}

// layoutFor returns the header layout used by a file version.
func layoutFor(version string) HeaderLayout {
	if version == "0.1" {
		return LayoutSplit
	}
	return LayoutCombined
}

// Document is a decoded VTK XML file. The header fields are read from the
// VTKFile tag and apply to every array in the document.
type Document struct {
	Root *Element

	Type       string           // Dataset type, e.g. "UnstructuredGrid".
	Version    string           // File format version.
	Layout     HeaderLayout     // Derived from Version.
	ByteOrder  binary.ByteOrder // Byte order of every binary value.
	HeaderType Kind             // Width of length headers; UInt32 unless header_type says otherwise.
	Compressor string           // Compressor name, empty for uncompressed files.
}

// Arrays returns every DataArray element in document order.
func (d *Document) Arrays() []*Element {
	if d.Root == nil {
		return nil
	}
	return d.Root.FindAll("DataArray")
}
