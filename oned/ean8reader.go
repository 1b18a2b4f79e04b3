package oned

import (
	"strings"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// EAN8Reader decodes EAN-8 barcodes.
type EAN8Reader struct{}

// NewEAN8Reader creates a new EAN-8 reader.
func NewEAN8Reader() *EAN8Reader {
	return &EAN8Reader{}
}

// BarcodeFormat returns FormatEAN8.
func (r *EAN8Reader) BarcodeFormat() upcean.Format {
	return upcean.FormatEAN8
}

// DecodeRow decodes an EAN-8 barcode from a single row.
func (r *EAN8Reader) DecodeRow(rowNumber int, row *bitutil.BitArray, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	return DecodeUPCEAN(rowNumber, row, r, opts)
}

// DecodeRowWithStartGuard decodes an EAN-8 barcode whose start guard is known.
func (r *EAN8Reader) DecodeRowWithStartGuard(rowNumber int, row *bitutil.BitArray, startRange [2]int, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	return DecodeUPCEANWithStartGuard(rowNumber, row, startRange, r, opts)
}

// DecodeMiddle decodes the middle portion of an EAN-8 barcode.
func (r *EAN8Reader) DecodeMiddle(row *bitutil.BitArray, startRange [2]int, result *strings.Builder) (int, error) {
	rowOffset, _, err := decodeDigits(row, startRange[1], 4, LPatterns[:], result)
	if err != nil {
		return 0, err
	}

	middleRange, err := FindMiddleGuardPattern(row, rowOffset)
	if err != nil {
		return 0, err
	}

	rowOffset, _, err = decodeDigits(row, middleRange[1], 4, LPatterns[:], result)
	if err != nil {
		return 0, err
	}
	return rowOffset, nil
}

// CheckChecksum requires 8 digits before the standard check.
func (r *EAN8Reader) CheckChecksum(s string) error {
	return checkLengthAndChecksum(s, upcean.FormatEAN8, 8)
}
