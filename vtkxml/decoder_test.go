package vtkxml

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const littleEndian = `version="1.0" byte_order="LittleEndian"`

func TestDocumentHeader(t *testing.T) {
	doc := parseString(t, vtkFile(`version="0.1" byte_order="BigEndian" header_type="UInt64"`, ""))

	assert.Equal(t, "VTKFile", doc.Root.Name)
	assert.Equal(t, ElementVTKFile, doc.Root.Kind)
	assert.Equal(t, "PolyData", doc.Type)
	assert.Equal(t, "0.1", doc.Version)
	assert.Equal(t, LayoutSplit, doc.Layout)
	assert.Equal(t, binary.BigEndian, doc.ByteOrder)
	assert.Equal(t, UInt64, doc.HeaderType)
	assert.Empty(t, doc.Compressor)
}

func TestDefaultHeaderType(t *testing.T) {
	doc := parseString(t, vtkFile(littleEndian, ""))
	assert.Equal(t, UInt32, doc.HeaderType)
	assert.Equal(t, LayoutCombined, doc.Layout)
}

func TestASCIIAllKinds(t *testing.T) {
	tests := []struct {
		typ  string
		text string
		want any
	}{
		{"Int8", "-1 2 -128", []int8{-1, 2, -128}},
		{"UInt8", "0 255", []uint8{0, 255}},
		{"Int16", "-300 300", []int16{-300, 300}},
		{"UInt16", "65535 1", []uint16{65535, 1}},
		{"Int32", "-2147483648 7", []int32{-2147483648, 7}},
		{"UInt32", "4294967295", []uint32{4294967295}},
		{"Int64", "-9223372036854775808 0", []int64{-9223372036854775808, 0}},
		{"UInt64", "18446744073709551615", []uint64{18446744073709551615}},
		{"Float32", "1.5 -2.25", []float32{1.5, -2.25}},
		{"Float64", "1e-3\n 3.5\t-1", []float64{1e-3, 3.5, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			attrs := fmt.Sprintf(`Name="a" type="%s" format="ascii"`, tt.typ)
			doc := parseString(t, vtkFile(littleEndian, dataArray(attrs, tt.text)))

			arr := firstArray(t, doc)
			assert.Equal(t, tt.typ, arr.Kind.String())
			assert.Equal(t, tt.want, arr.Values())
			assert.Equal(t, 1, arr.Components)
		})
	}
}

func TestASCIIComponents(t *testing.T) {
	doc := parseString(t, vtkFile(littleEndian,
		dataArray(`type="Float32" NumberOfComponents="3" format="ascii"`, "0 0 0  1 0 0\n 1 1 0  0 1 0")))

	arr := firstArray(t, doc)
	assert.Equal(t, []int{4, 3}, arr.Shape())

	rows, ok := Rows[float32](arr)
	require.True(t, ok)
	assert.Equal(t, [][]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}, rows)
}

func TestASCIIEmpty(t *testing.T) {
	doc := parseString(t, vtkFile(littleEndian, dataArray(`type="Int32" format="ascii"`, "\n  ")))
	arr := firstArray(t, doc)
	assert.Equal(t, 0, arr.Len())
	assert.Equal(t, []int{0}, arr.Shape())
}

func TestBinaryLayouts(t *testing.T) {
	values := []float64{1.5, -2, 3.25, 4, 5, 6}

	for _, version := range []string{"0.1", "1.0", "2.2"} {
		for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
			for _, header := range []Kind{UInt8, UInt16, UInt32, UInt64} {
				name := fmt.Sprintf("v%s/%s/%s", version, order, header)
				t.Run(name, func(t *testing.T) {
					content := encodeValues(t, order, values)
					payload := combinedPayload(order, header.Size(), content)
					if version == "0.1" {
						payload = splitPayload(order, header.Size(), content)
					}

					byteOrder := "LittleEndian"
					if order == binary.BigEndian {
						byteOrder = "BigEndian"
					}
					attrs := fmt.Sprintf(`version=%q byte_order=%q header_type="%s"`, version, byteOrder, header)
					doc := parseString(t, vtkFile(attrs,
						dataArray(`Name="v" type="Float64" NumberOfComponents="2" format="binary"`, "\n   "+payload+"\n  ")))

					arr := firstArray(t, doc)
					assert.Equal(t, values, arr.Values())
					assert.Equal(t, []int{3, 2}, arr.Shape())
				})
			}
		}
	}
}

func TestEncodedHeaderLen(t *testing.T) {
	assert.Equal(t, 4, encodedHeaderLen(UInt8))
	assert.Equal(t, 4, encodedHeaderLen(UInt16))
	assert.Equal(t, 8, encodedHeaderLen(UInt32))
	assert.Equal(t, 12, encodedHeaderLen(UInt64))
	assert.Equal(t, 8, encodedHeaderLen(Int32))
}

func TestSplitHeaderPadding(t *testing.T) {
	tests := []struct {
		header  Kind
		chars   string
		wantErr bool
	}{
		{UInt8, "AA==", false},
		{UInt16, "AA==", true},
		{UInt16, "AAA=", false},
		{UInt32, "AAAAAA==", false},
		{UInt64, "AAAAAAAAAA==", true},
		{UInt64, "AAAAAAAAAAA=", false},
	}

	for _, tt := range tests {
		t.Run(tt.header.String()+"/"+tt.chars, func(t *testing.T) {
			require.Len(t, tt.chars, encodedHeaderLen(tt.header))
			attrs := fmt.Sprintf(`version="0.1" byte_order="LittleEndian" header_type="%s"`, tt.header)
			doc := vtkFile(attrs, dataArray(`Name="h" type="Int8" format="binary"`, tt.chars))

			if !tt.wantErr {
				assert.Equal(t, 0, firstArray(t, parseString(t, doc)).Len())
				return
			}
			err := parseError(t, doc)
			assert.True(t, errors.Is(err, ErrFormat), err)
			assert.ErrorContains(t, err, "header decodes to")
		})
	}
}

func TestBinaryEmpty(t *testing.T) {
	for _, version := range []string{"0.1", "1.0"} {
		t.Run(version, func(t *testing.T) {
			payload := combinedPayload(binary.LittleEndian, 4, nil)
			if version == "0.1" {
				payload = splitPayload(binary.LittleEndian, 4, nil)
			}
			doc := parseString(t, vtkFile(`version="`+version+`" byte_order="LittleEndian"`,
				dataArray(`type="Int16" format="binary"`, payload)))
			assert.Equal(t, 0, firstArray(t, doc).Len())
		})
	}
}

func TestBinaryTruncated(t *testing.T) {
	content := encodeValues(t, binary.LittleEndian, []int32{1, 2, 3})
	// The header claims one more value than the content holds.
	payload := b64(append(putUint(binary.LittleEndian, 4, 16), content...))

	err := parseError(t, vtkFile(littleEndian, dataArray(`Name="ids" type="Int32" format="binary"`, payload)))
	assert.True(t, errors.Is(err, ErrFormat), err)
	assert.ErrorContains(t, err, `"ids"`)
}

func TestBinaryPartialValue(t *testing.T) {
	payload := b64(append(putUint(binary.LittleEndian, 4, 6), 1, 2, 3, 4, 5, 6))
	err := parseError(t, vtkFile(littleEndian, dataArray(`type="Float32" format="binary"`, payload)))
	assert.True(t, errors.Is(err, ErrFormat), err)
}

func TestShapeError(t *testing.T) {
	err := parseError(t, vtkFile(littleEndian,
		dataArray(`Name="pts" type="Int32" NumberOfComponents="2" format="ascii"`, "1 2 3 4 5")))
	assert.True(t, errors.Is(err, ErrShape), err)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "DataArray", de.Tag)
	assert.Equal(t, "pts", de.Name)
	assert.Equal(t, "NumberOfComponents", de.Attr)
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		attr string
	}{
		{"missing version", vtkFile(`byte_order="LittleEndian"`, ""), "version"},
		{"missing byte order", vtkFile(`version="1.0"`, ""), "byte_order"},
		{"unknown byte order", vtkFile(`version="1.0" byte_order="Middle"`, ""), "byte_order"},
		{"float header type", vtkFile(littleEndian+` header_type="Float32"`, ""), "header_type"},
		{"unknown header type", vtkFile(littleEndian+` header_type="UInt128"`, ""), "header_type"},
		{"unknown compressor", vtkFile(littleEndian+` compressor="vtkFooCompressor"`, ""), "compressor"},
		{"lzma compressor", vtkFile(littleEndian+` compressor="vtkLZMADataCompressor"`, ""), "compressor"},
		{"no VTKFile", xmlHeader + `<PolyData></PolyData>`, ""},
		{"DataArray outside VTKFile", `<Other>` + dataArray(`type="Int8" format="ascii"`, "1") + `</Other>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, tt.doc)
			assert.True(t, errors.Is(err, ErrConfiguration), err)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.attr, de.Attr)
		})
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown format", dataArray(`type="Int32" format="zip"`, "1")},
		{"missing format", dataArray(`type="Int32"`, "1")},
		{"unknown type", dataArray(`type="Int128" format="ascii"`, "1")},
		{"missing type", dataArray(`format="ascii"`, "1")},
		{"zero components", dataArray(`type="Int32" NumberOfComponents="0" format="ascii"`, "1")},
		{"bad components", dataArray(`type="Int32" NumberOfComponents="three" format="ascii"`, "1")},
		{"bad ascii literal", dataArray(`type="Int32" format="ascii"`, "1 two 3")},
		{"ascii out of range", dataArray(`type="UInt8" format="ascii"`, "256")},
		{"invalid base64", dataArray(`type="Int32" format="binary"`, "!!!!")},
		{"binary shorter than header", dataArray(`type="Int32" format="binary"`, "AAA=")},
		{"appended without offset", dataArray(`type="Int32" format="appended"`, "")},
		{"negative offset", dataArray(`type="Int32" format="appended" offset="-4"`, "")},
		{"nested DataArray", `<DataArray type="Int32" format="ascii">` + dataArray(`type="Int32" format="ascii"`, "1") + `</DataArray>`},
		{"two AppendedData", `<AppendedData encoding="base64">_</AppendedData><AppendedData encoding="base64">_</AppendedData>`},
		{"unclosed element", `<PolyData>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, vtkFile(littleEndian, tt.body))
			assert.True(t, errors.Is(err, ErrFormat), err)
		})
	}
}

func TestMalformedMarkup(t *testing.T) {
	err := parseError(t, `<VTKFile version="1.0" byte_order="LittleEndian"><PolyData></VTKFile>`)
	assert.True(t, errors.Is(err, ErrFormat), err)
}

func TestElementTextOutsidePayload(t *testing.T) {
	doc := parseString(t, vtkFile(littleEndian,
		`<FieldData><Note>hello</Note>`+dataArray(`type="Int8" format="ascii"`, " 1 2 ")+`</FieldData>`))

	assert.Equal(t, "hello", doc.Root.Find("Note").Text)
	el := doc.Root.Find("DataArray")
	assert.Equal(t, ElementDataArray, el.Kind)
	assert.Empty(t, el.Text)
	assert.Equal(t, []int8{1, 2}, el.Data.Values())
	assert.Nil(t, doc.Root.Find("Note").Data)
}

func TestDecoderEvents(t *testing.T) {
	d := NewDecoder()
	require.NoError(t, d.Start("VTKFile", map[string]string{"version": "1.0", "byte_order": "LittleEndian"}))
	require.NoError(t, d.Start("DataArray", map[string]string{"type": "UInt16", "format": "ascii"}))
	d.Data([]byte("1 2"))
	d.Data([]byte(" 3"))
	require.NoError(t, d.End("DataArray"))
	require.NoError(t, d.End("VTKFile"))

	doc, err := d.Close()
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 3}, firstArray(t, doc).Values())
}

func TestDecoderStickyError(t *testing.T) {
	d := NewDecoder()
	err := d.Start("VTKFile", map[string]string{"byte_order": "LittleEndian"})
	require.True(t, errors.Is(err, ErrConfiguration), err)

	assert.Equal(t, err, d.Start("DataArray", nil))
	assert.Equal(t, err, d.End("VTKFile"))
	_, closeErr := d.Close()
	assert.Equal(t, err, closeErr)
}

func TestDecoderMismatchedEnd(t *testing.T) {
	d := NewDecoder()
	require.NoError(t, d.Start("VTKFile", map[string]string{"version": "1.0", "byte_order": "LittleEndian"}))
	err := d.End("PolyData")
	assert.True(t, errors.Is(err, ErrFormat), err)
}

func TestDecodeErrorMessage(t *testing.T) {
	err := &DecodeError{Tag: "DataArray", Name: "pts", Attr: "offset", Err: ErrOffset}
	assert.Equal(t, `vtkxml: <DataArray> "pts" attribute offset: offset error`, err.Error())

	err = &DecodeError{Err: ErrFormat}
	assert.Equal(t, "vtkxml: format error", err.Error())
}
