// Package vtkxml decodes VTK XML data files into an element tree whose
// DataArray elements carry typed numeric payloads.
//
// Arrays may be stored as ascii text, as inline base64 ("binary"), or in a
// trailing AppendedData section referenced by byte offset. Appended data
// may be base64 or raw bytes; raw sections are rewritten to base64 before
// tokenization, so documents can be fed in chunks split at any byte.
//
// Basic usage:
//
//	doc, err := vtkxml.ParseFile("mesh.vtu")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	points := doc.Root.Find("Points").Find("DataArray")
//	xyz, _ := vtkxml.Rows[float32](points.Data)
//
// Decoding stops at the first error. Errors wrap one of ErrConfiguration,
// ErrFormat, ErrShape or ErrOffset.
package vtkxml
