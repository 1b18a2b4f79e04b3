package oned

import (
	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

const ean13CodeWidth = 3 + (7 * 6) + 5 + (7 * 6) + 3 // = 95

// EAN13Writer encodes EAN-13 barcodes.
type EAN13Writer struct{}

// NewEAN13Writer creates a new EAN-13 writer.
func NewEAN13Writer() *EAN13Writer {
	return &EAN13Writer{}
}

// Encode encodes the given contents into an EAN-13 row.
func (w *EAN13Writer) Encode(contents string, format upcean.Format, opts *upcean.EncodeOptions) (*bitutil.BitArray, error) {
	if err := checkWriterFormat(format, upcean.FormatEAN13); err != nil {
		return nil, err
	}
	return EncodeUPCEAN(contents, w, opts)
}

// EncodeContents encodes 12 or 13 EAN-13 digits into modules. The first
// digit picks the L/G parity sequence of the left half.
func (w *EAN13Writer) EncodeContents(contents string) ([]bool, error) {
	var err error
	contents, err = CheckUPCEANLength(contents, 12, 13)
	if err != nil {
		return nil, err
	}

	firstDigit := int(contents[0] - '0')
	parities := ean13FirstDigitEncodings[firstDigit]
	result := make([]bool, ean13CodeWidth)
	pos := 0

	pos += AppendPattern(result, pos, StartEndPattern, true)

	for i := 1; i <= 6; i++ {
		digit := int(contents[i] - '0')
		if (parities>>(6-i))&1 == 1 {
			digit += 10
		}
		pos += AppendPattern(result, pos, LAndGPatterns[digit][:], false)
	}

	pos += AppendPattern(result, pos, MiddlePattern, false)

	for i := 7; i <= 12; i++ {
		digit := int(contents[i] - '0')
		pos += AppendPattern(result, pos, LPatterns[digit][:], true)
	}

	AppendPattern(result, pos, StartEndPattern, true)
	return result, nil
}
