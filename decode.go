package upcean

import "github.com/ericlevine/upcean/bitutil"

// DecodeOptions configures barcode decoding behavior.
type DecodeOptions struct {
	// PossibleFormats limits which formats to look for. Empty means all.
	PossibleFormats []Format

	// TryReverse also decodes each row right to left.
	TryReverse bool

	// AlsoInverted also decodes each row with black and white swapped.
	AlsoInverted bool
}

// Allows reports whether format may be returned under these options.
func (o *DecodeOptions) Allows(format Format) bool {
	if o == nil || len(o.PossibleFormats) == 0 {
		return true
	}
	for _, f := range o.PossibleFormats {
		if f == format {
			return true
		}
	}
	return false
}

// RowReader decodes a barcode from a single row.
type RowReader interface {
	// DecodeRow attempts to decode a barcode from row. rowNumber is only
	// used to place result points.
	DecodeRow(rowNumber int, row *bitutil.BitArray, opts *DecodeOptions) (*Result, error)
}
