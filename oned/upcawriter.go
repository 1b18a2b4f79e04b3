package oned

import (
	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// UPCAWriter encodes UPC-A barcodes by delegating to EAN-13.
type UPCAWriter struct {
	ean13 *EAN13Writer
}

// NewUPCAWriter creates a new UPC-A writer.
func NewUPCAWriter() *UPCAWriter {
	return &UPCAWriter{ean13: NewEAN13Writer()}
}

// Encode encodes 11 or 12 UPC-A digits into a row.
func (w *UPCAWriter) Encode(contents string, format upcean.Format, opts *upcean.EncodeOptions) (*bitutil.BitArray, error) {
	if err := checkWriterFormat(format, upcean.FormatUPCA); err != nil {
		return nil, err
	}
	return EncodeUPCEAN(contents, w, opts)
}

// EncodeContents encodes UPC-A contents as the EAN-13 code with a leading 0.
func (w *UPCAWriter) EncodeContents(contents string) ([]bool, error) {
	return w.ean13.EncodeContents("0" + contents)
}
