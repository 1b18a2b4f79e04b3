package oned

import (
	"fmt"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

const upceCodeWidth = 3 + (7 * 6) + 6 // = 51

// UPCEWriter encodes UPC-E barcodes.
type UPCEWriter struct{}

// NewUPCEWriter creates a new UPC-E writer.
func NewUPCEWriter() *UPCEWriter {
	return &UPCEWriter{}
}

// Encode encodes the given contents into a UPC-E row.
func (w *UPCEWriter) Encode(contents string, format upcean.Format, opts *upcean.EncodeOptions) (*bitutil.BitArray, error) {
	if err := checkWriterFormat(format, upcean.FormatUPCE); err != nil {
		return nil, err
	}
	return EncodeUPCEAN(contents, w, opts)
}

// EncodeContents encodes 7 or 8 UPC-E digits into modules. The number system
// and check digit are not drawn; they select the parities of the six others.
func (w *UPCEWriter) EncodeContents(contents string) ([]bool, error) {
	if err := checkDigits(contents); err != nil {
		return nil, fmt.Errorf("contents contain a non-digit: %w", upcean.ErrWriter)
	}
	length := len(contents)
	switch length {
	case 7:
		check, err := GetStandardUPCEANChecksum(ConvertUPCEtoUPCA(contents))
		if err != nil {
			return nil, err
		}
		contents += string(rune('0' + check))
	case 8:
		if err := CheckStandardUPCEANChecksum(ConvertUPCEtoUPCA(contents)); err != nil {
			return nil, fmt.Errorf("contents do not pass checksum: %w", upcean.ErrWriter)
		}
	default:
		return nil, fmt.Errorf("requested contents should be 7 or 8 digits long, but got %d: %w", length, upcean.ErrWriter)
	}

	firstDigit := int(contents[0] - '0')
	if firstDigit != 0 && firstDigit != 1 {
		return nil, fmt.Errorf("number system must be 0 or 1: %w", upcean.ErrWriter)
	}
	checkDigit := int(contents[7] - '0')
	parities := upceNumSysAndCheckDigitPatterns[firstDigit][checkDigit]
	result := make([]bool, upceCodeWidth)
	pos := AppendPattern(result, 0, StartEndPattern, true)
	for i := 1; i <= 6; i++ {
		digit := int(contents[i] - '0')
		if (parities>>(6-i))&1 == 1 {
			digit += 10
		}
		pos += AppendPattern(result, pos, LAndGPatterns[digit][:], false)
	}
	AppendPattern(result, pos, UPCEEndPattern, false)
	return result, nil
}
