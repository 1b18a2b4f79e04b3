package oned

import (
	"fmt"
	"strings"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// UPCEANMiddleDecoder decodes the middle portion of a UPC/EAN barcode.
type UPCEANMiddleDecoder interface {
	// DecodeMiddle decodes the digits between the start guard and the end
	// guard, appending them to result. It returns the offset of the first
	// pixel after the last digit.
	DecodeMiddle(row *bitutil.BitArray, startRange [2]int, result *strings.Builder) (int, error)

	// BarcodeFormat returns the format this decoder handles.
	BarcodeFormat() upcean.Format
}

// EndDecoder is implemented by decoders whose end guard differs from the
// bar-space-bar used by EAN-13, EAN-8 and UPC-A.
type EndDecoder interface {
	// DecodeEnd matches the end guard anchored at endStart.
	DecodeEnd(row *bitutil.BitArray, endStart int) ([2]int, error)
}

// UPCEANReader is implemented by every UPC/EAN symbology reader.
type UPCEANReader interface {
	upcean.RowReader

	// DecodeRowWithStartGuard is DecodeRow with the start guard already
	// located, so one guard search can serve several symbologies.
	DecodeRowWithStartGuard(rowNumber int, row *bitutil.BitArray, startRange [2]int, opts *upcean.DecodeOptions) (*upcean.Result, error)

	BarcodeFormat() upcean.Format
}

// Stage names the step of a row decode.
type Stage int

const (
	StageSearching Stage = iota
	StageMiddleDecoding
	StageEndGuardCheck
	StageChecksumCheck
)

func (s Stage) String() string {
	switch s {
	case StageSearching:
		return "searching"
	case StageMiddleDecoding:
		return "middle"
	case StageEndGuardCheck:
		return "end_guard"
	case StageChecksumCheck:
		return "checksum"
	default:
		return "unknown"
	}
}

// DecodeError reports the stage at which a row decode gave up. Err is one of
// the upcean sentinel errors, possibly wrapped.
type DecodeError struct {
	Stage  Stage
	Format upcean.Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Format, e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeUPCEAN decodes a UPC/EAN barcode from a row using the given middle decoder.
func DecodeUPCEAN(rowNumber int, row *bitutil.BitArray, decoder UPCEANMiddleDecoder, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	startRange, err := FindStartGuardPattern(row)
	if err != nil {
		return nil, &DecodeError{Stage: StageSearching, Format: decoder.BarcodeFormat(), Err: err}
	}
	return DecodeUPCEANWithStartGuard(rowNumber, row, startRange, decoder, opts)
}

// DecodeUPCEANWithStartGuard decodes a UPC/EAN barcode whose start guard
// occupies startRange. Every failure is a *DecodeError; no partial result is
// ever returned.
func DecodeUPCEANWithStartGuard(rowNumber int, row *bitutil.BitArray, startRange [2]int, decoder UPCEANMiddleDecoder, opts *upcean.DecodeOptions) (*upcean.Result, error) {
	format := decoder.BarcodeFormat()
	fail := func(stage Stage, err error) (*upcean.Result, error) {
		return nil, &DecodeError{Stage: stage, Format: format, Err: err}
	}

	if startRange[0] < 0 || startRange[0] >= startRange[1] || startRange[1] > row.Size() {
		return fail(StageSearching, fmt.Errorf("start guard %v outside row of %d: %w", startRange, row.Size(), upcean.ErrNotFound))
	}

	var result strings.Builder
	endStart, err := decoder.DecodeMiddle(row, startRange, &result)
	if err != nil {
		return fail(StageMiddleDecoding, err)
	}

	var endRange [2]int
	if ed, ok := decoder.(EndDecoder); ok {
		endRange, err = ed.DecodeEnd(row, endStart)
	} else {
		endRange, err = MatchGuardPatternAt(row, endStart, false, StartEndPattern)
	}
	if err != nil {
		return fail(StageEndGuardCheck, err)
	}

	// Quiet zone check after barcode
	end := endRange[1]
	quietEnd := end + (end - endRange[0])
	if quietEnd >= row.Size() || !row.IsRange(end, quietEnd, false) {
		return fail(StageEndGuardCheck, upcean.ErrNotFound)
	}

	resultString := result.String()
	if cc, ok := decoder.(ChecksumChecker); ok {
		err = cc.CheckChecksum(resultString)
	} else {
		err = CheckStandardUPCEANChecksum(resultString)
	}
	if err != nil {
		return fail(StageChecksumCheck, err)
	}

	left := float64(startRange[1]+startRange[0]) / 2.0
	right := float64(endRange[1]+endRange[0]) / 2.0
	res := upcean.NewResult(
		resultString,
		[]upcean.ResultPoint{
			{X: left, Y: float64(rowNumber)},
			{X: right, Y: float64(rowNumber)},
		},
		format,
	)

	symbologyID := "0"
	if format == upcean.FormatEAN8 {
		symbologyID = "4"
	}
	res.PutMetadata(upcean.MetadataSymbologyIdentifier, "]E"+symbologyID)
	return res, nil
}

// decodeDigits decodes count digit cells starting at rowOffset, appending
// each digit to result. It returns the offset after the last cell and a bit
// mask with bit count-1-x set when cell x used a G pattern.
func decodeDigits(row *bitutil.BitArray, rowOffset, count int, patterns []DigitPattern, result *strings.Builder) (int, int, error) {
	lgPatternFound := 0
	for x := 0; x < count; x++ {
		bestMatch, next, err := DecodeDigit(row, rowOffset, patterns)
		if err != nil {
			return 0, 0, err
		}
		result.WriteByte('0' + byte(bestMatch%10))
		rowOffset = next
		if bestMatch >= 10 {
			lgPatternFound |= 1 << uint(count-1-x)
		}
	}
	return rowOffset, lgPatternFound, nil
}
