package vtkxml

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

const xmlHeader = `<?xml version="1.0"?>` + "\n"

// vtkFile wraps body in a VTKFile element with the given attributes.
func vtkFile(attrs, body string) string {
	return xmlHeader + `<VTKFile type="PolyData" ` + attrs + ">\n" + body + "\n</VTKFile>\n"
}

func dataArray(attrs, payload string) string {
	return "<DataArray " + attrs + ">" + payload + "</DataArray>"
}

func parseString(t *testing.T, doc string, opts ...Option) *Document {
	t.Helper()
	d, err := Parse(strings.NewReader(doc), opts...)
	require.NoError(t, err)
	require.NotNil(t, d)
	return d
}

func parseError(t *testing.T, doc string) error {
	t.Helper()
	d, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	require.Nil(t, d)
	return err
}

func firstArray(t *testing.T, doc *Document) *Array {
	t.Helper()
	el := doc.Root.Find("DataArray")
	require.NotNil(t, el, "no DataArray element")
	require.NotNil(t, el.Data, "DataArray has no payload")
	return el.Data
}

// putUint encodes v as an unsigned integer of size bytes.
func putUint(order binary.ByteOrder, size int, v uint64) []byte {
	b := make([]byte, size)
	switch size {
	case 1:
		b[0] = byte(v)
	case 2:
		order.PutUint16(b, uint16(v))
	case 4:
		order.PutUint32(b, uint32(v))
	case 8:
		order.PutUint64(b, v)
	default:
		panic(fmt.Sprintf("bad header size %d", size))
	}
	return b
}

func encodeValues(t *testing.T, order binary.ByteOrder, values any) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, order, values))
	return buf.Bytes()
}

func b64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// combinedPayload encodes the length header and content as one base64 string.
func combinedPayload(order binary.ByteOrder, hw int, content []byte) string {
	return b64(append(putUint(order, hw, uint64(len(content))), content...))
}

// splitPayload encodes the length header and content as two base64 strings.
func splitPayload(order binary.ByteOrder, hw int, content []byte) string {
	return b64(putUint(order, hw, uint64(len(content)))) + b64(content)
}

// appendedEntry returns the raw bytes of one array in an appended blob.
func appendedEntry(order binary.ByteOrder, hw int, content []byte) []byte {
	return append(putUint(order, hw, uint64(len(content))), content...)
}

func zlibBlock(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func lz4Block(t *testing.T, raw []byte) []byte {
	t.Helper()
	dst := make([]byte, lz4.CompressBlockBound(len(raw)))
	var c lz4.Compressor
	n, err := c.CompressBlock(raw, dst)
	require.NoError(t, err)
	require.NotZero(t, n, "test data must be compressible")
	return dst[:n]
}

// compressBlocks compresses raw in blocks of blockSize and returns the
// encoded block header and the concatenated blocks.
func compressBlocks(t *testing.T, order binary.ByteOrder, hw int, raw []byte, blockSize int,
	compress func(*testing.T, []byte) []byte) (header, blocks []byte) {
	t.Helper()
	var sizes []uint64
	var last uint64
	for start := 0; start < len(raw); start += blockSize {
		end := min(start+blockSize, len(raw))
		block := compress(t, raw[start:end])
		sizes = append(sizes, uint64(len(block)))
		blocks = append(blocks, block...)
		if end-start < blockSize {
			last = uint64(end - start)
		}
	}
	header = putUint(order, hw, uint64(len(sizes)))
	header = append(header, putUint(order, hw, uint64(blockSize))...)
	header = append(header, putUint(order, hw, last)...)
	for _, s := range sizes {
		header = append(header, putUint(order, hw, s)...)
	}
	return header, blocks
}

// repeating returns n int32 values cycling through 0..6.
func repeating(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i % 7)
	}
	return out
}
