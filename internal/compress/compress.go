package compress

import (
	"fmt"
	"sort"
)

// Decompressor is the interface implemented by all VTK compressors.
type Decompressor interface {
	// Name returns the compressor name used in the VTKFile tag.
	Name() string

	// Decompress inflates one block whose uncompressed size is rawSize.
	Decompress(src []byte, rawSize int) ([]byte, error)
}

// Compressor names as written by VTK.
const (
	NameZlib = "vtkZLibDataCompressor"
	NameLZ4  = "vtkLZ4DataCompressor"
	NameLZMA = "vtkLZMADataCompressor"
)

// Registry maps compressor names to constructors.
var Registry = map[string]func() Decompressor{
	NameZlib: func() Decompressor { return NewZlib() },
	NameLZ4:  func() Decompressor { return NewLZ4() },
}

// New creates the decompressor registered under name.
func New(name string) (Decompressor, error) {
	constructor, ok := Registry[name]
	if !ok {
		if name == NameLZMA {
			return nil, fmt.Errorf("%s is not supported; this file cannot be read", name)
		}
		return nil, fmt.Errorf("unknown compressor %q (supported: %v)", name, Names())
	}
	return constructor(), nil
}

// Names returns the registered compressor names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
