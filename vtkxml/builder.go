package vtkxml

import (
	"github.com/pkg/errors"
)

// TreeBuilder assembles Start/Data/End events into an element tree.
// It knows nothing about VTK; Decoder layers the array semantics on top.
type TreeBuilder struct {
	root  *Element
	stack []*Element
}

// NewTreeBuilder creates an empty builder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// Start opens a new element as a child of the current one.
func (b *TreeBuilder) Start(name string, attr map[string]string) (*Element, error) {
	if attr == nil {
		attr = map[string]string{}
	}
	e := &Element{Name: name, Attr: attr}

	if len(b.stack) == 0 {
		if b.root != nil {
			return nil, errors.Errorf("second root element <%s> after <%s>", name, b.root.Name)
		}
		b.root = e
	} else {
		parent := b.stack[len(b.stack)-1]
		parent.Children = append(parent.Children, e)
	}
	b.stack = append(b.stack, e)
	return e, nil
}

// Data appends character data to the current element's text. Data outside
// the root element is dropped.
func (b *TreeBuilder) Data(text []byte) {
	if cur := b.Current(); cur != nil {
		cur.Text += string(text)
	}
}

// End closes the current element, which must be named name.
func (b *TreeBuilder) End(name string) (*Element, error) {
	cur := b.Current()
	if cur == nil {
		return nil, errors.Errorf("unexpected end tag </%s>", name)
	}
	if cur.Name != name {
		return nil, errors.Errorf("end tag </%s> does not match <%s>", name, cur.Name)
	}
	b.stack = b.stack[:len(b.stack)-1]
	return cur, nil
}

// Current returns the innermost open element, or nil.
func (b *TreeBuilder) Current() *Element {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

// Close finishes the tree and returns its root.
func (b *TreeBuilder) Close() (*Element, error) {
	if b.root == nil {
		return nil, errors.New("document has no root element")
	}
	if cur := b.Current(); cur != nil {
		return nil, errors.Errorf("unclosed element <%s>", cur.Name)
	}
	return b.root, nil
}
