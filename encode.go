package upcean

import (
	"fmt"

	"github.com/ericlevine/upcean/bitutil"
)

// EncodeOptions configures barcode encoding behavior.
type EncodeOptions struct {
	// Margin specifies the quiet zone in modules on each side of the barcode.
	Margin *int

	// ModuleWidth is the width in pixels of one module. Values below 1 mean 1.
	ModuleWidth int
}

// Writer encodes data into a barcode row.
type Writer interface {
	// Encode encodes the given contents into a row of pixels.
	Encode(contents string, format Format, opts *EncodeOptions) (*bitutil.BitArray, error)
}

// writerFactory is a function that creates a Writer.
type writerFactory func() Writer

var writerFactories = map[Format]writerFactory{}

// RegisterWriter registers a writer factory for the given format. This should
// be called from an init() function in format-specific packages.
func RegisterWriter(format Format, factory writerFactory) {
	writerFactories[format] = factory
}

// Encode encodes contents into a row of the specified format using the
// registered writer.
func Encode(contents string, format Format, opts *EncodeOptions) (*bitutil.BitArray, error) {
	factory, ok := writerFactories[format]
	if !ok {
		return nil, fmt.Errorf("no writer registered for format %s: %w", format, ErrWriter)
	}
	return factory().Encode(contents, format, opts)
}
