// Package oned implements the UPC/EAN family of one-dimensional barcodes:
// guard pattern search, digit matching, checksum validation and the
// per-symbology readers and writers built on them.
package oned

import (
	"math"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// RecordPattern records the widths of successive runs of black and white
// pixels in a row, starting at the given position. The counters always sum to
// the number of pixels consumed; a last run that reaches the row end counts.
func RecordPattern(row *bitutil.BitArray, start int, counters []int) error {
	numCounters := len(counters)
	for i := range counters {
		counters[i] = 0
	}
	end := row.Size()
	if start < 0 || start >= end {
		return upcean.ErrNotFound
	}
	isWhite := !row.Get(start)
	counterPosition := 0
	i := start
	for i < end {
		if row.Get(i) != isWhite {
			counters[counterPosition]++
		} else {
			counterPosition++
			if counterPosition == numCounters {
				break
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
		i++
	}
	if !(counterPosition == numCounters || (counterPosition == numCounters-1 && i == end)) {
		return upcean.ErrNotFound
	}
	return nil
}

// PatternMatchVariance determines how closely observed counter widths match
// a target pattern. The unit width is the measured span divided by the sum of
// the pattern weights. Returns +Inf if any counter strays from its scaled
// weight by more than maxIndividualVariance units, otherwise the summed
// deviation divided by the span.
func PatternMatchVariance(counters []int, pattern []int, maxIndividualVariance float64) float64 {
	numCounters := len(counters)
	total := 0
	patternLength := 0
	for i := 0; i < numCounters; i++ {
		total += counters[i]
		patternLength += pattern[i]
	}
	if total < patternLength {
		// Fewer pixels than modules: no sensible unit width.
		return math.Inf(1)
	}

	unitBarWidth := float64(total) / float64(patternLength)
	maxIndividualVariance *= unitBarWidth

	totalVariance := 0.0
	for i := 0; i < numCounters; i++ {
		counter := float64(counters[i])
		scaledPattern := float64(pattern[i]) * unitBarWidth
		variance := counter - scaledPattern
		if variance < 0 {
			variance = -variance
		}
		if variance > maxIndividualVariance {
			return math.Inf(1)
		}
		totalVariance += variance
	}
	return totalVariance / float64(total)
}

func sumCounters(counters []int) int {
	sum := 0
	for _, c := range counters {
		sum += c
	}
	return sum
}
