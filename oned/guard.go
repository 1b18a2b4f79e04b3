package oned

import (
	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

const (
	// A window matches when its summed deviation stays under
	// upceanMaxAvgVariance of the span and no single run strays more than
	// upceanMaxIndividualVariance modules from its expected width.
	upceanMaxAvgVariance        = 0.48
	upceanMaxIndividualVariance = 0.7
)

// FindStartGuardPattern finds the first bar-space-bar start guard that is
// preceded by a white quiet zone at least as wide as the guard itself.
// Only dark-on-light rows are searched; a light-on-dark row must be
// inverted first, which the row scanner does when AlsoInverted is set.
func FindStartGuardPattern(row *bitutil.BitArray) ([2]int, error) {
	nextStart := 0
	for {
		startRange, err := FindGuardPattern(row, nextStart, false, StartEndPattern)
		if err != nil {
			return [2]int{}, err
		}
		start := startRange[0]
		nextStart = startRange[1]
		quietStart := start - (nextStart - start)
		if quietStart >= 0 && row.IsRange(quietStart, start, false) {
			return startRange, nil
		}
	}
}

// FindMiddleGuardPattern finds the space-bar-space-bar-space guard that
// separates the two halves of EAN-13, EAN-8 and UPC-A symbols.
func FindMiddleGuardPattern(row *bitutil.BitArray, rowOffset int) ([2]int, error) {
	return FindGuardPattern(row, rowOffset, true, MiddlePattern)
}

// FindGuardPattern slides a window of len(pattern) runs along the row,
// starting at the first pixel of the requested colour at or after rowOffset,
// and returns the half-open column range of the first window that matches.
// The window moves one bar/space pair at a time so its first run keeps the
// requested colour.
func FindGuardPattern(row *bitutil.BitArray, rowOffset int, whiteFirst bool, pattern []int) ([2]int, error) {
	width := row.Size()
	if rowOffset < 0 {
		rowOffset = 0
	}
	if whiteFirst {
		rowOffset = row.GetNextUnset(rowOffset)
	} else {
		rowOffset = row.GetNextSet(rowOffset)
	}
	counters := make([]int, len(pattern))
	counterPosition := 0
	patternStart := rowOffset
	patternLength := len(pattern)
	isWhite := whiteFirst

	for x := rowOffset; x < width; x++ {
		if row.Get(x) != isWhite {
			counters[counterPosition]++
			continue
		}
		if counterPosition == patternLength-1 {
			if PatternMatchVariance(counters, pattern, upceanMaxIndividualVariance) < upceanMaxAvgVariance {
				return [2]int{patternStart, x}, nil
			}
			patternStart += counters[0] + counters[1]
			copy(counters, counters[2:counterPosition+1])
			counters[counterPosition-1] = 0
			counters[counterPosition] = 0
			counterPosition--
		} else {
			counterPosition++
		}
		counters[counterPosition] = 1
		isWhite = !isWhite
	}
	return [2]int{}, upcean.ErrNotFound
}

// MatchGuardPatternAt checks that a guard pattern starts exactly at offset:
// the pixel there must have the requested colour and the runs that follow
// must pass the same tolerance test as FindGuardPattern. Nothing slides.
func MatchGuardPatternAt(row *bitutil.BitArray, offset int, whiteFirst bool, pattern []int) ([2]int, error) {
	if offset < 0 || offset >= row.Size() || row.Get(offset) == whiteFirst {
		return [2]int{}, upcean.ErrNotFound
	}
	counters := make([]int, len(pattern))
	if err := RecordPattern(row, offset, counters); err != nil {
		return [2]int{}, err
	}
	if PatternMatchVariance(counters, pattern, upceanMaxIndividualVariance) >= upceanMaxAvgVariance {
		return [2]int{}, upcean.ErrNotFound
	}
	return [2]int{offset, offset + sumCounters(counters)}, nil
}
