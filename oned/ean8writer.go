package oned

import (
	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

const ean8CodeWidth = 3 + (7 * 4) + 5 + (7 * 4) + 3 // = 67

// EAN8Writer encodes EAN-8 barcodes.
type EAN8Writer struct{}

// NewEAN8Writer creates a new EAN-8 writer.
func NewEAN8Writer() *EAN8Writer {
	return &EAN8Writer{}
}

// Encode encodes the given contents into an EAN-8 row.
func (w *EAN8Writer) Encode(contents string, format upcean.Format, opts *upcean.EncodeOptions) (*bitutil.BitArray, error) {
	if err := checkWriterFormat(format, upcean.FormatEAN8); err != nil {
		return nil, err
	}
	return EncodeUPCEAN(contents, w, opts)
}

// EncodeContents encodes 7 or 8 EAN-8 digits into modules.
func (w *EAN8Writer) EncodeContents(contents string) ([]bool, error) {
	var err error
	contents, err = CheckUPCEANLength(contents, 7, 8)
	if err != nil {
		return nil, err
	}

	result := make([]bool, ean8CodeWidth)
	pos := 0

	pos += AppendPattern(result, pos, StartEndPattern, true)

	for i := 0; i <= 3; i++ {
		digit := int(contents[i] - '0')
		pos += AppendPattern(result, pos, LPatterns[digit][:], false)
	}

	pos += AppendPattern(result, pos, MiddlePattern, false)

	for i := 4; i <= 7; i++ {
		digit := int(contents[i] - '0')
		pos += AppendPattern(result, pos, LPatterns[digit][:], true)
	}

	AppendPattern(result, pos, StartEndPattern, true)
	return result, nil
}
