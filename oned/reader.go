package oned

import (
	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// MultiFormatUPCEANReader decodes any of the UPC/EAN formats allowed by its
// options. It locates the start guard once per row and hands it to each
// format-specific reader in turn.
type MultiFormatUPCEANReader struct {
	readers []UPCEANReader
	opts    *upcean.DecodeOptions
}

// NewMultiFormatUPCEANReader creates a reader for the formats in
// opts.PossibleFormats, or for every UPC/EAN format when none are given.
// UPC-A is found through EAN-13 unless EAN-13 itself is excluded.
func NewMultiFormatUPCEANReader(opts *upcean.DecodeOptions) *MultiFormatUPCEANReader {
	var readers []UPCEANReader
	if opts != nil && len(opts.PossibleFormats) > 0 {
		if opts.Allows(upcean.FormatEAN13) {
			readers = append(readers, NewEAN13Reader())
		} else if opts.Allows(upcean.FormatUPCA) {
			readers = append(readers, NewUPCAReader())
		}
		if opts.Allows(upcean.FormatEAN8) {
			readers = append(readers, NewEAN8Reader())
		}
		if opts.Allows(upcean.FormatUPCE) {
			readers = append(readers, NewUPCEReader())
		}
	}
	if len(readers) == 0 {
		readers = []UPCEANReader{
			NewEAN13Reader(),
			NewEAN8Reader(),
			NewUPCEReader(),
		}
	}
	return &MultiFormatUPCEANReader{readers: readers, opts: opts}
}

// DecodeRow tries each reader against the shared start guard until one
// succeeds. When all fail, the most informative error is returned.
// opts replaces the constructor's options for this call, except that a
// format excluded at construction stays excluded.
func (r *MultiFormatUPCEANReader) DecodeRow(rowNumber int, row *bitutil.BitArray, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	if opts == nil {
		opts = r.opts
	}
	startRange, err := FindStartGuardPattern(row)
	if err != nil {
		return nil, &DecodeError{Stage: StageSearching, Format: r.readers[0].BarcodeFormat(), Err: err}
	}

	var lastErr error
	for _, reader := range r.readers {
		result, err := reader.DecodeRowWithStartGuard(rowNumber, row, startRange, opts)
		if err != nil {
			lastErr = upcean.MostSevere(lastErr, err)
			continue
		}
		// An EAN-13 code starting with 0 is the UPC-A code of the other
		// eleven digits plus check digit; report it as such when allowed.
		if r.opts.Allows(upcean.FormatUPCA) && opts.Allows(upcean.FormatUPCA) {
			result, _ = maybeReturnUPCAResult(result)
		}
		return result, nil
	}
	return nil, lastErr
}

// Formats returns the formats of the readers in the order they are tried.
func (r *MultiFormatUPCEANReader) Formats() []upcean.Format {
	formats := make([]upcean.Format, len(r.readers))
	for i, reader := range r.readers {
		formats[i] = reader.BarcodeFormat()
	}
	return formats
}
