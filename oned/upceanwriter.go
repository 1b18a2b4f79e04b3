package oned

import (
	"fmt"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// UPCEANEncoder encodes the modules of a UPC/EAN barcode.
type UPCEANEncoder interface {
	// EncodeContents encodes the full barcode contents into a boolean array.
	EncodeContents(contents string) ([]bool, error)
}

// EncodeUPCEAN encodes contents with encoder and renders the row.
func EncodeUPCEAN(contents string, encoder UPCEANEncoder, opts *upcean.EncodeOptions) (*bitutil.BitArray, error) {
	code, err := encoder.EncodeContents(contents)
	if err != nil {
		return nil, err
	}
	moduleWidth, margin := renderOptions(opts)
	return RenderRow(code, moduleWidth, margin), nil
}

// checkWriterFormat rejects a format other than the writer's own.
func checkWriterFormat(got, want upcean.Format) error {
	if got != want {
		return fmt.Errorf("can only encode %s, but got %s: %w", want, got, upcean.ErrWriter)
	}
	return nil
}

// CheckUPCEANLength validates the length and computes or validates the check digit.
// expectedWithout is the length without check digit, expectedWith is the length with check digit.
func CheckUPCEANLength(contents string, expectedWithout, expectedWith int) (string, error) {
	if err := checkDigits(contents); err != nil {
		return "", fmt.Errorf("contents contain a non-digit: %w", upcean.ErrWriter)
	}
	length := len(contents)
	switch length {
	case expectedWithout:
		check, err := GetStandardUPCEANChecksum(contents)
		if err != nil {
			return "", err
		}
		contents += string(rune('0' + check))
	case expectedWith:
		if err := CheckStandardUPCEANChecksum(contents); err != nil {
			return "", fmt.Errorf("contents do not pass checksum: %w", upcean.ErrWriter)
		}
	default:
		return "", fmt.Errorf("requested contents should be %d or %d digits long, but got %d: %w",
			expectedWithout, expectedWith, length, upcean.ErrWriter)
	}
	return contents, nil
}
