package vtkxml

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every decode failure wraps exactly one of them; match with
// errors.Is.
var (
	ErrConfiguration = errors.New("configuration error") // missing or unknown VTKFile attribute
	ErrFormat        = errors.New("format error")        // malformed DataArray, payload or markup
	ErrShape         = errors.New("shape error")         // element count not divisible by component count
	ErrOffset        = errors.New("offset error")        // appended data read out of bounds
)

// DecodeError reports the element and attribute where decoding failed.
type DecodeError struct {
	Tag  string // Tag of the element being decoded.
	Name string // Name attribute of the element, if any.
	Attr string // Offending attribute, if any.
	Err  error  // Underlying error; wraps one of the error kinds.
}

func (e *DecodeError) Error() string {
	var where []string
	if e.Tag != "" {
		where = append(where, "<"+e.Tag+">")
	}
	if e.Name != "" {
		where = append(where, fmt.Sprintf("%q", e.Name))
	}
	if e.Attr != "" {
		where = append(where, "attribute "+e.Attr)
	}
	if len(where) == 0 {
		return "vtkxml: " + e.Err.Error()
	}
	return "vtkxml: " + strings.Join(where, " ") + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// errorKind returns a short label for the kind err wraps.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrShape):
		return "shape"
	case errors.Is(err, ErrOffset):
		return "offset"
	default:
		return "other"
	}
}
