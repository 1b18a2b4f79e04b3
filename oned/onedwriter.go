package oned

import (
	"github.com/ericlevine/upcean"
	"github.com/ericlevine/upcean/bitutil"
)

const defaultOneDMargin = 10 // quiet zone in modules

// RenderRow renders a module pattern as a row of pixels, each module
// moduleWidth pixels wide, with margin white modules on both sides.
func RenderRow(code []bool, moduleWidth, margin int) *bitutil.BitArray {
	if moduleWidth < 1 {
		moduleWidth = 1
	}
	if margin < 0 {
		margin = 0
	}
	row := bitutil.NewBitArray((len(code) + 2*margin) * moduleWidth)
	for i, black := range code {
		if black {
			x := (margin + i) * moduleWidth
			row.SetRange(x, x+moduleWidth)
		}
	}
	return row
}

// renderOptions resolves module width and margin from opts.
func renderOptions(opts *upcean.EncodeOptions) (moduleWidth, margin int) {
	moduleWidth, margin = 1, defaultOneDMargin
	if opts == nil {
		return
	}
	if opts.ModuleWidth > 1 {
		moduleWidth = opts.ModuleWidth
	}
	if opts.Margin != nil {
		margin = *opts.Margin
	}
	return
}

// AppendPattern appends a pattern of bars/spaces to a boolean array.
// If startColor is true, the first element is a bar (black); otherwise space (white).
// Returns the total width appended.
func AppendPattern(target []bool, pos int, pattern []int, startColor bool) int {
	color := startColor
	numAdded := 0
	for _, p := range pattern {
		for j := 0; j < p; j++ {
			target[pos] = color
			pos++
			numAdded++
		}
		color = !color
	}
	return numAdded
}
