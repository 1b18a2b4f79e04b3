package oned

import (
	"math"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// upceanAmbiguityMargin is the least variance gap between the best and the
// runner-up digit pattern. Closer calls are rejected rather than guessed.
const upceanAmbiguityMargin = 0.05

// DecodeDigit decodes the digit cell of four runs starting at rowOffset.
// It returns the index of the matching entry in patterns, so with
// LAndGPatterns the digit is bestMatch%10 and bestMatch >= 10 marks G parity,
// along with the offset of the first pixel after the cell.
func DecodeDigit(row *bitutil.BitArray, rowOffset int, patterns []DigitPattern) (bestMatch, nextOffset int, err error) {
	var counters [4]int
	if err := RecordPattern(row, rowOffset, counters[:]); err != nil {
		return 0, 0, err
	}
	bestMatch, err = matchDigitPattern(counters, patterns)
	if err != nil {
		return 0, 0, err
	}
	return bestMatch, rowOffset + sumCounters(counters[:]), nil
}

// matchDigitPattern picks the pattern closest to counters, refusing when the
// best fit is too loose or a second pattern fits nearly as well.
func matchDigitPattern(counters DigitPattern, patterns []DigitPattern) (int, error) {
	bestVariance := math.Inf(1)
	secondVariance := math.Inf(1)
	bestMatch := -1
	for i := range patterns {
		variance := PatternMatchVariance(counters[:], patterns[i][:], upceanMaxIndividualVariance)
		switch {
		case variance < bestVariance:
			secondVariance = bestVariance
			bestVariance = variance
			bestMatch = i
		case variance < secondVariance:
			secondVariance = variance
		}
	}
	if bestMatch < 0 || bestVariance >= upceanMaxAvgVariance {
		return 0, upcean.ErrNotFound
	}
	if secondVariance-bestVariance < upceanAmbiguityMargin {
		return 0, upcean.ErrNotFound
	}
	return bestMatch, nil
}
