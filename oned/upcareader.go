package oned

import (
	"fmt"
	"strings"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// UPCAReader decodes UPC-A barcodes by delegating to EAN-13. A UPC-A symbol
// is an EAN-13 symbol whose implicit first digit is 0.
type UPCAReader struct {
	ean13 *EAN13Reader
}

// NewUPCAReader creates a new UPC-A reader.
func NewUPCAReader() *UPCAReader {
	return &UPCAReader{ean13: NewEAN13Reader()}
}

// BarcodeFormat returns FormatUPCA.
func (r *UPCAReader) BarcodeFormat() upcean.Format {
	return upcean.FormatUPCA
}

// DecodeRow decodes a UPC-A barcode from a single row.
func (r *UPCAReader) DecodeRow(rowNumber int, row *bitutil.BitArray, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	return DecodeUPCEAN(rowNumber, row, r, opts)
}

// DecodeRowWithStartGuard decodes a UPC-A barcode whose start guard is known.
func (r *UPCAReader) DecodeRowWithStartGuard(rowNumber int, row *bitutil.BitArray, startRange [2]int, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	return DecodeUPCEANWithStartGuard(rowNumber, row, startRange, r, opts)
}

// DecodeMiddle decodes the symbol as EAN-13 and appends the twelve digits
// that follow the implicit leading 0.
func (r *UPCAReader) DecodeMiddle(row *bitutil.BitArray, startRange [2]int, result *strings.Builder) (int, error) {
	var ean13 strings.Builder
	rowOffset, err := r.ean13.DecodeMiddle(row, startRange, &ean13)
	if err != nil {
		return 0, err
	}
	text := ean13.String()
	if text[0] != '0' {
		return 0, fmt.Errorf("EAN-13 %q has no leading 0 to drop for UPC-A: %w", text, upcean.ErrFormat)
	}
	result.WriteString(text[1:])
	return rowOffset, nil
}

// CheckChecksum requires the 12 digits of a UPC-A code before the standard check.
func (r *UPCAReader) CheckChecksum(s string) error {
	return checkLengthAndChecksum(s, upcean.FormatUPCA, 12)
}

// maybeReturnUPCAResult restates an EAN-13 result with a leading 0 as UPC-A.
func maybeReturnUPCAResult(result *upcean.Result) (*upcean.Result, bool) {
	text := result.Text
	if result.Format != upcean.FormatEAN13 || len(text) == 0 || text[0] != '0' {
		return result, false
	}
	upcaResult := upcean.NewResult(text[1:], result.Points, upcean.FormatUPCA)
	upcaResult.PutAllMetadata(result.Metadata)
	return upcaResult, true
}
