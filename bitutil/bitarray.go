// Package bitutil provides the packed pixel row that barcode readers scan.
package bitutil

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"unicode"
)

const loadFactor = 0.75

// BitArray is a row of pixels packed into uint32 words. A set bit is a black
// pixel, an unset bit a white one.
type BitArray struct {
	bits []uint32
	size int
}

// NewBitArray creates a new all-white BitArray with the given size.
func NewBitArray(size int) *BitArray {
	if size <= 0 {
		return &BitArray{}
	}
	return &BitArray{
		bits: makeArray(size),
		size: size,
	}
}

// NewBitArrayFromRuns builds a row from alternating run lengths. The first
// run is black when blackFirst is set. Runs must not be negative.
func NewBitArrayFromRuns(runs []int, blackFirst bool) (*BitArray, error) {
	size := 0
	for i, r := range runs {
		if r < 0 {
			return nil, fmt.Errorf("run %d has negative length %d", i, r)
		}
		size += r
	}
	ba := NewBitArray(size)
	black := blackFirst
	pos := 0
	for _, r := range runs {
		if black && r > 0 {
			ba.SetRange(pos, pos+r)
		}
		pos += r
		black = !black
	}
	return ba, nil
}

// ParseBitArray parses a row written with 'X' or '1' for black pixels and
// '.' or '0' for white ones. Whitespace is ignored, so the output of String
// parses back to the same row.
func ParseBitArray(s string) (*BitArray, error) {
	ba := &BitArray{}
	for i, c := range s {
		switch {
		case c == 'X' || c == 'x' || c == '1':
			ba.AppendBit(true)
		case c == '.' || c == '0':
			ba.AppendBit(false)
		case unicode.IsSpace(c):
		default:
			return nil, fmt.Errorf("invalid pixel %q at offset %d", c, i)
		}
	}
	return ba, nil
}

// ParseRuns parses whitespace or comma separated run lengths.
func ParseRuns(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	runs := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid run length %q: %w", f, err)
		}
		runs = append(runs, n)
	}
	return runs, nil
}

// Size returns the number of bits in the array.
func (ba *BitArray) Size() int {
	return ba.size
}

func (ba *BitArray) ensureCapacity(newSize int) {
	if newSize > len(ba.bits)*32 {
		newBits := makeArray(int(float64(newSize) / loadFactor))
		copy(newBits, ba.bits)
		ba.bits = newBits
	}
}

// Get returns true if bit i is set.
func (ba *BitArray) Get(i int) bool {
	return (ba.bits[i/32] & (1 << uint(i&0x1F))) != 0
}

// Set sets bit i.
func (ba *BitArray) Set(i int) {
	ba.bits[i/32] |= 1 << uint(i&0x1F)
}

// Flip flips bit i.
func (ba *BitArray) Flip(i int) {
	ba.bits[i/32] ^= 1 << uint(i&0x1F)
}

// GetNextSet returns the index of the first set bit starting from the given
// index, or size if none are set.
func (ba *BitArray) GetNextSet(from int) int {
	if from >= ba.size {
		return ba.size
	}
	bitsOffset := from / 32
	currentBits := ba.bits[bitsOffset]
	// mask off lesser bits
	currentBits &= ^uint32(0) << uint(from&0x1F)
	for currentBits == 0 {
		bitsOffset++
		if bitsOffset == len(ba.bits) {
			return ba.size
		}
		currentBits = ba.bits[bitsOffset]
	}
	result := bitsOffset*32 + bits.TrailingZeros32(currentBits)
	if result > ba.size {
		return ba.size
	}
	return result
}

// GetNextUnset returns the index of the first unset bit starting from the
// given index, or size if none are unset.
func (ba *BitArray) GetNextUnset(from int) int {
	if from >= ba.size {
		return ba.size
	}
	bitsOffset := from / 32
	currentBits := ^ba.bits[bitsOffset]
	// mask off lesser bits
	currentBits &= ^uint32(0) << uint(from&0x1F)
	for currentBits == 0 {
		bitsOffset++
		if bitsOffset == len(ba.bits) {
			return ba.size
		}
		currentBits = ^ba.bits[bitsOffset]
	}
	result := bitsOffset*32 + bits.TrailingZeros32(currentBits)
	if result > ba.size {
		return ba.size
	}
	return result
}

// SetRange sets a range of bits [start, end).
func (ba *BitArray) SetRange(start, end int) {
	if end < start || start < 0 || end > ba.size {
		panic("bitarray: invalid range")
	}
	if end == start {
		return
	}
	end-- // inclusive from here on
	firstInt := start / 32
	lastInt := end / 32
	for i := firstInt; i <= lastInt; i++ {
		firstBit := 0
		if i == firstInt {
			firstBit = start & 0x1F
		}
		lastBit := 31
		if i == lastInt {
			lastBit = end & 0x1F
		}
		mask := uint32((2 << uint(lastBit)) - (1 << uint(firstBit)))
		ba.bits[i] |= mask
	}
}

// IsRange checks if all bits in [start, end) have the given value.
func (ba *BitArray) IsRange(start, end int, value bool) bool {
	if end < start || start < 0 || end > ba.size {
		panic("bitarray: invalid range")
	}
	if end == start {
		return true
	}
	end--
	firstInt := start / 32
	lastInt := end / 32
	for i := firstInt; i <= lastInt; i++ {
		firstBit := 0
		if i == firstInt {
			firstBit = start & 0x1F
		}
		lastBit := 31
		if i == lastInt {
			lastBit = end & 0x1F
		}
		mask := uint32((2 << uint(lastBit)) - (1 << uint(firstBit)))
		if value {
			if (ba.bits[i] & mask) != mask {
				return false
			}
		} else {
			if (ba.bits[i] & mask) != 0 {
				return false
			}
		}
	}
	return true
}

// AppendBit appends a single bit.
func (ba *BitArray) AppendBit(bit bool) {
	ba.ensureCapacity(ba.size + 1)
	if bit {
		ba.bits[ba.size/32] |= 1 << uint(ba.size&0x1F)
	}
	ba.size++
}

// Reverse reverses all bits in the array.
func (ba *BitArray) Reverse() {
	if ba.size == 0 {
		return
	}
	newBits := make([]uint32, len(ba.bits))
	ln := (ba.size - 1) / 32
	oldBitsLen := ln + 1
	for i := 0; i < oldBitsLen; i++ {
		newBits[ln-i] = bits.Reverse32(ba.bits[i])
	}
	if ba.size != oldBitsLen*32 {
		leftOffset := uint(oldBitsLen*32 - ba.size)
		currentInt := newBits[0] >> leftOffset
		for i := 1; i < oldBitsLen; i++ {
			nextInt := newBits[i]
			currentInt |= nextInt << (32 - leftOffset)
			newBits[i-1] = currentInt
			currentInt = nextInt >> leftOffset
		}
		newBits[oldBitsLen-1] = currentInt
	}
	ba.bits = newBits
}

// Invert swaps black and white for every pixel of the row.
func (ba *BitArray) Invert() {
	for i := range ba.bits {
		ba.bits[i] = ^ba.bits[i]
	}
	// Keep the padding past size clear so GetNextSet never lands there.
	if tail := ba.size & 0x1F; tail != 0 {
		ba.bits[ba.size/32] &= (1 << uint(tail)) - 1
	}
	for i := (ba.size + 31) / 32; i < len(ba.bits); i++ {
		ba.bits[i] = 0
	}
}

// Runs returns the lengths of the alternating runs of the row, starting with
// a white run that is zero when the row begins with black.
func (ba *BitArray) Runs() []int {
	var runs []int
	pos := 0
	black := false
	for pos < ba.size {
		var next int
		if black {
			next = ba.GetNextUnset(pos)
		} else {
			next = ba.GetNextSet(pos)
		}
		runs = append(runs, next-pos)
		pos = next
		black = !black
	}
	return runs
}

// Clone returns a copy of this BitArray.
func (ba *BitArray) Clone() *BitArray {
	b := make([]uint32, len(ba.bits))
	copy(b, ba.bits)
	return &BitArray{bits: b, size: ba.size}
}

// String returns a string representation using 'X' for set and '.' for unset.
func (ba *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(ba.size + ba.size/8 + 1)
	for i := 0; i < ba.size; i++ {
		if i&0x07 == 0 {
			sb.WriteByte(' ')
		}
		if ba.Get(i) {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func makeArray(size int) []uint32 {
	return make([]uint32, (size+31)/32)
}
