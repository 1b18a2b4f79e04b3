package oned

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

// middleGuardRow is a 2u bar, the five unit runs of the middle guard
// starting white, and a closing 2u bar.
func middleGuardRow(t *testing.T, u int) *bitutil.BitArray {
	t.Helper()
	row, err := bitutil.NewBitArrayFromRuns([]int{2 * u, u, u, u, u, u, 2 * u}, true)
	require.NoError(t, err)
	return row
}

func TestFindMiddleGuardScales(t *testing.T) {
	for _, u := range []int{1, 2, 3, 7} {
		row := middleGuardRow(t, u)
		got, err := FindGuardPattern(row, 0, true, MiddlePattern)
		require.NoError(t, err, "unit %d", u)
		assert.Equal(t, [2]int{2 * u, 7 * u}, got, "unit %d", u)
		assert.Equal(t, 5*u, got[1]-got[0])

		got, err = FindMiddleGuardPattern(row, 0)
		require.NoError(t, err)
		assert.Equal(t, [2]int{2 * u, 7 * u}, got)
	}
}

func TestFindGuardPatternSlidesPastNoise(t *testing.T) {
	// A wide bar and gap before a unit start guard.
	row, err := bitutil.NewBitArrayFromRuns([]int{5, 4, 1, 1, 1, 1, 5}, false)
	require.NoError(t, err)
	got, err := FindGuardPattern(row, 0, false, StartEndPattern)
	require.NoError(t, err)
	assert.Equal(t, [2]int{10, 13}, got)
}

func TestFindGuardPatternTooShort(t *testing.T) {
	for _, runs := range [][]int{{}, {1}, {0, 1, 1}, {3, 2, 2}} {
		row, err := bitutil.NewBitArrayFromRuns(runs, false)
		require.NoError(t, err)
		_, err = FindGuardPattern(row, 0, false, StartEndPattern)
		assert.ErrorIs(t, err, upcean.ErrNotFound, "runs %v", runs)
	}
	_, err := FindGuardPattern(bitutil.NewBitArray(0), -4, true, MiddlePattern)
	assert.ErrorIs(t, err, upcean.ErrNotFound)
}

func TestFindStartGuardNeedsQuietZone(t *testing.T) {
	// The first guard touches the left edge; the second has room.
	row, err := bitutil.NewBitArrayFromRuns([]int{0, 1, 1, 1, 4, 1, 1, 1, 2}, false)
	require.NoError(t, err)
	got, err := FindStartGuardPattern(row)
	require.NoError(t, err)
	assert.Equal(t, [2]int{7, 10}, got)

	row, err = bitutil.NewBitArrayFromRuns([]int{0, 1, 1, 1, 2}, false)
	require.NoError(t, err)
	_, err = FindStartGuardPattern(row)
	assert.ErrorIs(t, err, upcean.ErrNotFound)
}

func TestFindStartGuardDarkOnLightOnly(t *testing.T) {
	// Light guard on a dark background.
	row, err := bitutil.NewBitArrayFromRuns([]int{4, 1, 1, 1, 4}, true)
	require.NoError(t, err)
	_, err = FindStartGuardPattern(row)
	assert.ErrorIs(t, err, upcean.ErrNotFound)

	row.Invert()
	got, err := FindStartGuardPattern(row)
	require.NoError(t, err)
	assert.Equal(t, [2]int{4, 7}, got)
}

func TestMatchGuardPatternAt(t *testing.T) {
	row := middleGuardRow(t, 2)

	got, err := MatchGuardPatternAt(row, 4, true, MiddlePattern)
	require.NoError(t, err)
	assert.Equal(t, [2]int{4, 14}, got)

	// Wrong colour under the anchor.
	_, err = MatchGuardPatternAt(row, 0, true, MiddlePattern)
	assert.ErrorIs(t, err, upcean.ErrNotFound)

	// Anchored on the closing bar there is nothing left to record.
	_, err = MatchGuardPatternAt(row, 14, false, StartEndPattern)
	assert.ErrorIs(t, err, upcean.ErrNotFound)

	for _, offset := range []int{-1, row.Size(), row.Size() + 3} {
		_, err = MatchGuardPatternAt(row, offset, true, MiddlePattern)
		assert.ErrorIs(t, err, upcean.ErrNotFound, "offset %d", offset)
	}
}

func TestMatchGuardPatternAtRejectsDistortion(t *testing.T) {
	row, err := bitutil.NewBitArrayFromRuns([]int{3, 1, 1, 3, 3}, false)
	require.NoError(t, err)
	_, err = MatchGuardPatternAt(row, 3, false, StartEndPattern)
	assert.ErrorIs(t, err, upcean.ErrNotFound)
}

func TestPatternMatchVariance(t *testing.T) {
	assert.Equal(t, 0.0, PatternMatchVariance([]int{2, 2, 2}, []int{1, 1, 1}, upceanMaxIndividualVariance))
	assert.InDelta(t, 0.2, PatternMatchVariance([]int{3, 3, 2, 2}, []int{2, 1, 1, 1}, upceanMaxIndividualVariance), 1e-9)
	assert.True(t, PatternMatchVariance([]int{1, 1, 3}, []int{1, 1, 1}, upceanMaxIndividualVariance) > upceanMaxAvgVariance)
	assert.True(t, PatternMatchVariance([]int{0, 0, 0}, []int{1, 1, 1}, upceanMaxIndividualVariance) > upceanMaxAvgVariance)
}
