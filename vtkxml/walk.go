package vtkxml

import (
	"path"
)

// WalkFunc is called for each element during traversal.
// path is the slash-separated list of tag names from the root to el.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path string, el *Element) error

// Walk traverses the tree rooted at root in document order, calling fn for
// every element including root.
//
// Example:
//
//	Walk(doc.Root, func(path string, el *Element) error {
//	    if el.Data != nil {
//	        fmt.Println(path, el.Data.Shape())
//	    }
//	    return nil
//	})
func Walk(root *Element, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	return walkElement(root, "/"+root.Name, fn)
}

// walkElement recursively walks an element and its children.
func walkElement(el *Element, p string, fn WalkFunc) error {
	if err := fn(p, el); err != nil {
		return err
	}
	for _, c := range el.Children {
		if err := walkElement(c, path.Join(p, c.Name), fn); err != nil {
			return err
		}
	}
	return nil
}

// ArrayInfo describes a decoded DataArray during WalkArrays.
type ArrayInfo struct {
	// Path is the element path (e.g., "/VTKFile/PolyData/Piece/Points/DataArray")
	Path string

	// Name is the DataArray Name attribute, empty if absent
	Name string

	// Element is the DataArray element
	Element *Element

	// Array is the decoded payload
	Array *Array
}

// WalkArraysFunc is the callback function type for WalkArrays.
// Return nil to continue walking, or an error to stop.
type WalkArraysFunc func(info ArrayInfo) error

// WalkArrays calls fn for every DataArray element that carries a decoded
// payload, in document order.
//
// Example:
//
//	doc.WalkArrays(func(info vtkxml.ArrayInfo) error {
//	    fmt.Printf("%s %v\n", info.Name, info.Array.Shape())
//	    return nil
//	})
func (d *Document) WalkArrays(fn WalkArraysFunc) error {
	return Walk(d.Root, func(p string, el *Element) error {
		if el.Kind != ElementDataArray || el.Data == nil {
			return nil
		}
		return fn(ArrayInfo{
			Path:    p,
			Name:    el.Attr["Name"],
			Element: el,
			Array:   el.Data,
		})
	})
}
