package oned

import (
	"fmt"
	"strings"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// UPCEReader decodes UPC-E barcodes.
type UPCEReader struct{}

// NewUPCEReader creates a new UPC-E reader.
func NewUPCEReader() *UPCEReader {
	return &UPCEReader{}
}

// BarcodeFormat returns FormatUPCE.
func (r *UPCEReader) BarcodeFormat() upcean.Format {
	return upcean.FormatUPCE
}

// DecodeRow decodes a UPC-E barcode from a single row.
func (r *UPCEReader) DecodeRow(rowNumber int, row *bitutil.BitArray, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	return DecodeUPCEAN(rowNumber, row, r, opts)
}

// DecodeRowWithStartGuard decodes a UPC-E barcode whose start guard is known.
func (r *UPCEReader) DecodeRowWithStartGuard(rowNumber int, row *bitutil.BitArray, startRange [2]int, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	return DecodeUPCEANWithStartGuard(rowNumber, row, startRange, r, opts)
}

// DecodeMiddle decodes the six symbol digits of a UPC-E barcode. Their L/G
// parities carry the number system and the check digit, which are added to
// either end of the result.
func (r *UPCEReader) DecodeMiddle(row *bitutil.BitArray, startRange [2]int, result *strings.Builder) (int, error) {
	rowOffset, lgPatternFound, err := decodeDigits(row, startRange[1], 6, LAndGPatterns[:], result)
	if err != nil {
		return 0, err
	}

	if err := determineUPCENumSysAndCheckDigit(result, lgPatternFound); err != nil {
		return 0, err
	}
	return rowOffset, nil
}

// DecodeEnd matches the six-run space-first end guard of UPC-E.
func (r *UPCEReader) DecodeEnd(row *bitutil.BitArray, endStart int) ([2]int, error) {
	return MatchGuardPatternAt(row, endStart, true, UPCEEndPattern)
}

// CheckChecksum expands the 8 digit UPC-E code to UPC-A before the standard check.
func (r *UPCEReader) CheckChecksum(s string) error {
	if len(s) != 8 {
		return fmt.Errorf("%s needs 8 digits, got %d: %w", upcean.FormatUPCE, len(s), upcean.ErrFormat)
	}
	if err := checkDigits(s); err != nil {
		return err
	}
	return CheckStandardUPCEANChecksum(ConvertUPCEtoUPCA(s))
}

func determineUPCENumSysAndCheckDigit(result *strings.Builder, lgPatternFound int) error {
	for numSys := 0; numSys <= 1; numSys++ {
		for d := 0; d < 10; d++ {
			if lgPatternFound == upceNumSysAndCheckDigitPatterns[numSys][d] {
				s := result.String()
				result.Reset()
				result.WriteByte('0' + byte(numSys))
				result.WriteString(s)
				result.WriteByte('0' + byte(d))
				return nil
			}
		}
	}
	return upcean.ErrNotFound
}

// ConvertUPCEtoUPCA expands a UPC-E value back into its full UPC-A equivalent.
// Shorter inputs are returned unchanged.
func ConvertUPCEtoUPCA(upce string) string {
	if len(upce) < 7 {
		return upce
	}
	upceChars := upce[1:7]
	var result strings.Builder
	result.WriteByte(upce[0])

	lastChar := upceChars[5]
	switch lastChar {
	case '0', '1', '2':
		result.WriteString(upceChars[0:2])
		result.WriteByte(lastChar)
		result.WriteString("0000")
		result.WriteString(upceChars[2:5])
	case '3':
		result.WriteString(upceChars[0:3])
		result.WriteString("00000")
		result.WriteString(upceChars[3:5])
	case '4':
		result.WriteString(upceChars[0:4])
		result.WriteString("00000")
		result.WriteByte(upceChars[4])
	default:
		result.WriteString(upceChars[0:5])
		result.WriteString("0000")
		result.WriteByte(lastChar)
	}
	if len(upce) >= 8 {
		result.WriteByte(upce[7])
	}
	return result.String()
}
