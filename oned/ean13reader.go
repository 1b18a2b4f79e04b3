package oned

import (
	"strings"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// EAN13Reader decodes EAN-13 barcodes.
type EAN13Reader struct{}

// NewEAN13Reader creates a new EAN-13 reader.
func NewEAN13Reader() *EAN13Reader {
	return &EAN13Reader{}
}

// BarcodeFormat returns FormatEAN13.
func (r *EAN13Reader) BarcodeFormat() upcean.Format {
	return upcean.FormatEAN13
}

// DecodeRow decodes an EAN-13 barcode from a single row.
func (r *EAN13Reader) DecodeRow(rowNumber int, row *bitutil.BitArray, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	return DecodeUPCEAN(rowNumber, row, r, opts)
}

// DecodeRowWithStartGuard decodes an EAN-13 barcode whose start guard is known.
func (r *EAN13Reader) DecodeRowWithStartGuard(rowNumber int, row *bitutil.BitArray, startRange [2]int, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	return DecodeUPCEANWithStartGuard(rowNumber, row, startRange, r, opts)
}

// DecodeMiddle decodes the middle portion of an EAN-13 barcode. The left half
// mixes L and G patterns; their order encodes the leading digit.
func (r *EAN13Reader) DecodeMiddle(row *bitutil.BitArray, startRange [2]int, result *strings.Builder) (int, error) {
	rowOffset, lgPatternFound, err := decodeDigits(row, startRange[1], 6, LAndGPatterns[:], result)
	if err != nil {
		return 0, err
	}

	if err := determineEAN13FirstDigit(result, lgPatternFound); err != nil {
		return 0, err
	}

	middleRange, err := FindMiddleGuardPattern(row, rowOffset)
	if err != nil {
		return 0, err
	}

	rowOffset, _, err = decodeDigits(row, middleRange[1], 6, LPatterns[:], result)
	if err != nil {
		return 0, err
	}
	return rowOffset, nil
}

// CheckChecksum requires 13 digits before the standard check.
func (r *EAN13Reader) CheckChecksum(s string) error {
	return checkLengthAndChecksum(s, upcean.FormatEAN13, 13)
}

func determineEAN13FirstDigit(result *strings.Builder, lgPatternFound int) error {
	for d := 0; d < 10; d++ {
		if lgPatternFound == ean13FirstDigitEncodings[d] {
			s := result.String()
			result.Reset()
			result.WriteByte('0' + byte(d))
			result.WriteString(s)
			return nil
		}
	}
	return upcean.ErrNotFound
}
