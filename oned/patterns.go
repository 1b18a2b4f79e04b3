package oned

// DigitPattern holds the relative widths of the four runs that encode one
// UPC/EAN digit. Every digit pattern spans seven modules.
type DigitPattern = [4]int

// UPC/EAN guard patterns.
var (
	StartEndPattern = []int{1, 1, 1}
	MiddlePattern   = []int{1, 1, 1, 1, 1}
	UPCEEndPattern  = []int{1, 1, 1, 1, 1, 1}
)

// LPatterns contains the "odd" or "L" patterns for encoding UPC/EAN digits.
var LPatterns = [10]DigitPattern{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
}

// LAndGPatterns holds the L patterns at indices 0-9 followed by the "even"
// or "G" patterns, each an L pattern read backwards, at indices 10-19.
var LAndGPatterns = [20]DigitPattern{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
	{1, 1, 2, 3}, // 0
	{1, 2, 2, 2}, // 1
	{2, 2, 1, 2}, // 2
	{1, 1, 4, 1}, // 3
	{2, 3, 1, 1}, // 4
	{1, 3, 2, 1}, // 5
	{4, 1, 1, 1}, // 6
	{2, 1, 3, 1}, // 7
	{3, 1, 2, 1}, // 8
	{2, 1, 1, 3}, // 9
}

// EAN-13 first digit encodings: the first digit is encoded by the parity pattern
// used for the next 6 digits. Odd=0, Even=1.
var ean13FirstDigitEncodings = [10]int{
	0x00, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A,
}

// UPC-E parity patterns indexed by [numSys][checkDigit].
var upceNumSysAndCheckDigitPatterns = [2][10]int{
	{0x38, 0x34, 0x32, 0x31, 0x2C, 0x26, 0x23, 0x2A, 0x29, 0x25},
	{0x07, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A},
}
