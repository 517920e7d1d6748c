package vtkxml

import "fmt"

// ElementKind classifies elements the decoder treats specially.
type ElementKind uint8

const (
	ElementOther ElementKind = iota
	ElementVTKFile
	ElementDataArray
	ElementAppendedData
)

// elementKindOf resolves a tag name to its kind.
func elementKindOf(name string) ElementKind {
	switch name {
	case "VTKFile":
		return ElementVTKFile
	case "DataArray":
		return ElementDataArray
	case "AppendedData":
		return ElementAppendedData
	default:
		return ElementOther
	}
}

func (k ElementKind) String() string {
	switch k {
	case ElementOther:
		return "Other"
	case ElementVTKFile:
		return "VTKFile"
	case ElementDataArray:
		return "DataArray"
	case ElementAppendedData:
		return "AppendedData"
	default:
		return fmt.Sprintf("ElementKind(%d)", uint8(k))
	}
}

// carriesPayload reports whether character data of the element belongs to
// an array payload rather than to the element text.
func (k ElementKind) carriesPayload() bool {
	return k == ElementDataArray || k == ElementAppendedData
}

// Element is a node of the decoded document tree.
type Element struct {
	Name     string
	Kind     ElementKind
	Attr     map[string]string
	Children []*Element

	// Text holds the character data of elements that do not carry an
	// array payload.
	Text string

	// Data holds the decoded array of a DataArray element. It is set once,
	// when the element closes or, for appended arrays, when the
	// AppendedData element closes.
	Data *Array
}

// Find returns the first element named name in depth-first order,
// including e itself, or nil.
func (e *Element) Find(name string) *Element {
	if e.Name == name {
		return e
	}
	for _, c := range e.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element named name in depth-first order.
func (e *Element) FindAll(name string) []*Element {
	var out []*Element
	_ = Walk(e, func(_ string, el *Element) error {
		if el.Name == name {
			out = append(out, el)
		}
		return nil
	})
	return out
}
